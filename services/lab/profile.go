package lab

import (
	"context"
	"fmt"
	"time"

	"lablink/models"

	"go.mongodb.org/mongo-driver/bson"
)

func (s *DefaultLabService) GetLab(ctx context.Context, id string) (*models.Lab, error) {
	return s.LabRepo.GetByID(id)
}

func (s *DefaultLabService) ListActiveLabs(ctx context.Context) ([]models.Lab, error) {
	return s.LabRepo.GetActive()
}

// UpdateProfile patches the editable profile fields. Scoring inputs such as
// trust_score, visibility_tier and the load counters are maintained by the
// platform and cannot be set here.
func (s *DefaultLabService) UpdateProfile(ctx context.Context, lab *models.Lab) (*models.Lab, error) {
	current, err := s.LabRepo.GetByID(lab.ID)
	if err != nil {
		return nil, err
	}

	patch := bson.M{"updated_at": time.Now()}
	if lab.Name != "" {
		patch["name"] = lab.Name
	}
	if lab.PhoneNumber != "" {
		patch["phone_number"] = lab.PhoneNumber
	}
	if lab.Address != "" {
		patch["address"] = lab.Address
	}
	if lab.Description != "" {
		patch["description"] = lab.Description
	}
	if lab.MinPriceEGP > 0 {
		patch["min_price_egp"] = lab.MinPriceEGP
	}
	if lab.MaxPriceEGP > 0 {
		patch["max_price_egp"] = lab.MaxPriceEGP
	}
	if lab.StandardSLADays > 0 {
		patch["standard_sla_days"] = lab.StandardSLADays
	}
	if lab.UrgentSLADays > 0 {
		patch["urgent_sla_days"] = lab.UrgentSLADays
	}
	if lab.MaxCapacity > 0 {
		patch["max_capacity"] = lab.MaxCapacity
	}

	if err := s.LabRepo.UpdateWithDocument(lab.ID, bson.M{"$set": patch}); err != nil {
		return nil, err
	}
	return s.LabRepo.GetByID(current.ID)
}

func (s *DefaultLabService) Deactivate(ctx context.Context, id string) error {
	return s.LabRepo.Deactivate(id)
}

func (s *DefaultLabService) UpdateFCMToken(ctx context.Context, labID, token string) error {
	return s.LabRepo.UpdateWithDocument(labID, bson.M{"$set": bson.M{"fcm_token": token, "updated_at": time.Now()}})
}

func (s *DefaultLabService) SetPricing(ctx context.Context, p *models.LabPricing) error {
	if !models.ValidRestorationType(p.RestorationType) {
		return fmt.Errorf("unknown restoration type %q", p.RestorationType)
	}
	if p.FixedPrice < 0 || p.MinPrice < 0 || p.MaxPrice < 0 {
		return fmt.Errorf("prices cannot be negative")
	}
	if p.MinPrice > 0 && p.MaxPrice > 0 && p.MinPrice > p.MaxPrice {
		return fmt.Errorf("minimum price exceeds maximum price")
	}
	return s.LabRepo.UpsertPricing(p)
}

func (s *DefaultLabService) ListPricing(ctx context.Context, labID string) ([]models.LabPricing, error) {
	return s.LabRepo.GetPricingByLab(labID)
}

func (s *DefaultLabService) SetSpecialization(ctx context.Context, sp *models.LabSpecialization) error {
	if !models.ValidRestorationType(sp.RestorationType) {
		return fmt.Errorf("unknown restoration type %q", sp.RestorationType)
	}
	switch sp.ExpertiseLevel {
	case models.ExpertiseBasic, models.ExpertiseIntermediate, models.ExpertiseExpert:
	default:
		return fmt.Errorf("unknown expertise level %q", sp.ExpertiseLevel)
	}
	if sp.TurnaroundDays < 0 {
		return fmt.Errorf("turnaround days cannot be negative")
	}
	return s.LabRepo.UpsertSpecialization(sp)
}

func (s *DefaultLabService) ListSpecializations(ctx context.Context, labID string) ([]models.LabSpecialization, error) {
	return s.LabRepo.GetSpecializationsByLab(labID)
}
