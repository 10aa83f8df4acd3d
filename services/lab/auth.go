package lab

import (
	"context"
	"fmt"
	"time"

	"lablink/models"
	"lablink/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const sessionDuration = 72 * time.Hour

func (s *DefaultLabService) Register(ctx context.Context, lab *models.Lab) (*models.Lab, string, error) {
	if lab.Email == "" || lab.Password == "" || lab.Name == "" {
		return nil, "", fmt.Errorf("lab registration requires a name, email and password")
	}

	existing, err := s.LabRepo.GetByEmail(lab.Email)
	if err != nil {
		return nil, "", fmt.Errorf("checking for existing lab: %w", err)
	}
	if existing != nil {
		return nil, "", fmt.Errorf("a lab with email %s already exists", lab.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(lab.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	lab.ID = uuid.New().String()
	lab.PasswordHash = string(hashed)
	lab.Password = ""
	lab.IsActive = true
	lab.IsNewLab = true
	if lab.VisibilityTier == "" {
		lab.VisibilityTier = models.TierEmerging
	}
	lab.CreatedAt = now
	lab.UpdatedAt = now

	token, err := utils.GenerateToken(lab.ID, models.RoleLab, sessionDuration)
	if err != nil {
		return nil, "", fmt.Errorf("generating session token: %w", err)
	}
	lab.TokenHash = utils.HashToken(token)

	if err := s.LabRepo.Create(lab); err != nil {
		return nil, "", fmt.Errorf("creating lab: %w", err)
	}
	return lab, token, nil
}

func (s *DefaultLabService) Login(ctx context.Context, email, password string) (*models.Lab, string, error) {
	lab, err := s.LabRepo.GetByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("looking up lab: %w", err)
	}
	if lab == nil || !lab.IsActive {
		return nil, "", fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(lab.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	token, err := utils.GenerateToken(lab.ID, models.RoleLab, sessionDuration)
	if err != nil {
		return nil, "", fmt.Errorf("generating session token: %w", err)
	}
	lab.TokenHash = utils.HashToken(token)
	if err := s.LabRepo.UpdateWithDocument(lab.ID, bson.M{"$set": bson.M{"token_hash": lab.TokenHash, "updated_at": time.Now()}}); err != nil {
		return nil, "", fmt.Errorf("storing session: %w", err)
	}
	return lab, token, nil
}

func (s *DefaultLabService) Revoke(ctx context.Context, labID string) error {
	return s.LabRepo.UpdateWithDocument(labID, bson.M{"$set": bson.M{"token_hash": "", "updated_at": time.Now()}})
}
