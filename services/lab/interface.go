package lab

import (
	"context"

	labRepo "lablink/database/repository/lab"
	orderRepo "lablink/database/repository/order"
	"lablink/models"
)

// LabService defines lab onboarding, profile and catalogue operations.
type LabService interface {
	// Register creates a lab account and returns it with a session token.
	Register(ctx context.Context, lab *models.Lab) (*models.Lab, string, error)
	// Login authenticates a lab and returns it with a fresh session token.
	Login(ctx context.Context, email, password string) (*models.Lab, string, error)
	// Revoke invalidates the lab's current session token.
	Revoke(ctx context.Context, labID string) error

	// GetLab retrieves a lab profile.
	GetLab(ctx context.Context, id string) (*models.Lab, error)
	// ListActiveLabs returns every active lab (the directory view).
	ListActiveLabs(ctx context.Context) ([]models.Lab, error)
	// UpdateProfile applies profile field changes to a lab.
	UpdateProfile(ctx context.Context, lab *models.Lab) (*models.Lab, error)
	// Deactivate retires a lab. Records are never deleted.
	Deactivate(ctx context.Context, id string) error
	// UpdateFCMToken stores the lab's push token.
	UpdateFCMToken(ctx context.Context, labID, token string) error

	// SetPricing creates or replaces price terms per restoration type.
	SetPricing(ctx context.Context, p *models.LabPricing) error
	// ListPricing returns a lab's price terms.
	ListPricing(ctx context.Context, labID string) ([]models.LabPricing, error)
	// SetSpecialization creates or replaces a specialization row.
	SetSpecialization(ctx context.Context, sp *models.LabSpecialization) error
	// ListSpecializations returns a lab's specializations.
	ListSpecializations(ctx context.Context, labID string) ([]models.LabSpecialization, error)

	// SubmitReview records a dentist's rating of a delivered order's lab.
	SubmitReview(ctx context.Context, r *models.LabReview) (*models.LabReview, error)
	// ListReviews returns one lab's reviews plus their mean, nil when none.
	ListReviews(ctx context.Context, labID string) ([]models.LabReview, *float64, error)

	// GetPreferredLabs returns a dentist's preference list, most preferred first.
	GetPreferredLabs(ctx context.Context, dentistID string) ([]models.PreferredLab, error)
	// SetPreferredLabs replaces a dentist's preference list with the given order.
	SetPreferredLabs(ctx context.Context, dentistID string, labIDs []string) error
	// RemovePreferredLab drops one lab from a dentist's preference list.
	RemovePreferredLab(ctx context.Context, dentistID, labID string) error
}

// DefaultLabService is the production implementation.
type DefaultLabService struct {
	LabRepo   labRepo.LabRepository
	OrderRepo orderRepo.OrderRepository
}

var _ LabService = (*DefaultLabService)(nil)
