package lab

import (
	"context"
	"fmt"

	"lablink/models"
)

func (s *DefaultLabService) GetPreferredLabs(ctx context.Context, dentistID string) ([]models.PreferredLab, error) {
	return s.LabRepo.GetPreferredLabs(dentistID)
}

// SetPreferredLabs replaces the dentist's ordered preference list. Every lab
// in the list must exist; position in the slice becomes priority_order.
func (s *DefaultLabService) SetPreferredLabs(ctx context.Context, dentistID string, labIDs []string) error {
	seen := make(map[string]bool, len(labIDs))
	for _, labID := range labIDs {
		if seen[labID] {
			return fmt.Errorf("lab %s appears more than once in the preference list", labID)
		}
		seen[labID] = true
		if _, err := s.LabRepo.GetByID(labID); err != nil {
			return fmt.Errorf("unknown lab %s: %w", labID, err)
		}
	}
	return s.LabRepo.SetPreferredLabs(dentistID, labIDs)
}

func (s *DefaultLabService) RemovePreferredLab(ctx context.Context, dentistID, labID string) error {
	return s.LabRepo.RemovePreferredLab(dentistID, labID)
}
