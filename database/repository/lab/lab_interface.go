package labRepo

import (
	"lablink/models"

	"go.mongodb.org/mongo-driver/bson"
)

// LabRepository defines data access for labs and their auxiliary facts
// (pricing, specializations, reviews, performance metrics, dentist preferences).
type LabRepository interface {
	// GetByID retrieves a lab by its unique ID.
	GetByID(id string) (*models.Lab, error)
	// GetByEmail retrieves a lab by its email address, nil when absent.
	GetByEmail(email string) (*models.Lab, error)
	// GetByTokenHash retrieves a lab whose token_hash matches the provided hash.
	GetByTokenHash(tokenHash string) (*models.Lab, error)
	// GetActive retrieves all active labs.
	GetActive() ([]models.Lab, error)
	// Create inserts a new lab record.
	Create(lab *models.Lab) error
	// Update replaces an existing lab record.
	Update(lab *models.Lab) error
	// UpdateWithDocument patches a lab document with the specified update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
	// Deactivate flags a lab inactive. Labs are never deleted.
	Deactivate(id string) error
	// AdjustLoad increments (or decrements, with a negative delta) current_load.
	AdjustLoad(id string, delta int) error

	// GetPricingByType returns every lab's price terms for one restoration type.
	GetPricingByType(restorationType string) ([]models.LabPricing, error)
	// GetPricing returns the price terms of one (lab, restoration type) pair.
	GetPricing(labID, restorationType string) (*models.LabPricing, error)
	// GetPricingByLab returns all of one lab's price terms.
	GetPricingByLab(labID string) ([]models.LabPricing, error)
	// UpsertPricing creates or replaces the price terms for (lab, restoration type).
	UpsertPricing(p *models.LabPricing) error

	// GetSpecializationsByType returns every lab's specialization row for one
	// restoration type. At most one row exists per (lab, restoration type).
	GetSpecializationsByType(restorationType string) ([]models.LabSpecialization, error)
	// GetSpecializationsByLab returns all of one lab's specializations.
	GetSpecializationsByLab(labID string) ([]models.LabSpecialization, error)
	// UpsertSpecialization creates or replaces a specialization row.
	UpsertSpecialization(s *models.LabSpecialization) error

	// ListReviews returns all review events.
	ListReviews() ([]models.LabReview, error)
	// GetReviewsByLab returns one lab's review events.
	GetReviewsByLab(labID string) ([]models.LabReview, error)
	// CreateReview inserts a review event.
	CreateReview(r *models.LabReview) error

	// ListMetrics returns all per-lab performance counters.
	ListMetrics() ([]models.LabPerformanceMetrics, error)
	// RecordDelivery bumps completed/total counters, and on-time when onTime is set.
	RecordDelivery(labID string, onTime bool) error
	// RecordOrder bumps total_orders for a newly assigned order.
	RecordOrder(labID string) error

	// GetPreferredLabs returns a dentist's preference list, most preferred first.
	GetPreferredLabs(dentistID string) ([]models.PreferredLab, error)
	// SetPreferredLabs replaces a dentist's preference list with the given order.
	SetPreferredLabs(dentistID string, labIDs []string) error
	// RemovePreferredLab drops one lab from a dentist's preference list.
	RemovePreferredLab(dentistID, labID string) error
}
