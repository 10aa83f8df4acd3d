package userRepo

import (
	"lablink/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for dentist/admin account data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by email, nil when absent.
	GetByEmail(email string) (*models.User, error)
	// GetByTokenHash retrieves a user whose token_hash matches the provided hash.
	GetByTokenHash(tokenHash string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update replaces an existing user record.
	Update(user *models.User) error
	// UpdateWithDocument patches a user document with the specified update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// GetAll retrieves all users (admin view).
	GetAll() ([]models.User, error)
}
