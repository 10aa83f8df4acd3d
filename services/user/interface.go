package user

import (
	"context"

	userRepo "lablink/database/repository/user"
	"lablink/models"
)

// UserService defines dentist and admin account operations.
type UserService interface {
	// Register creates a dentist account and returns it with a session token.
	Register(ctx context.Context, u *models.User) (*models.User, string, error)
	// Login authenticates a user and returns it with a fresh session token.
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	// Revoke invalidates the user's current session token.
	Revoke(ctx context.Context, userID string) error
	// GetUser retrieves one account.
	GetUser(ctx context.Context, id string) (*models.User, error)
	// UpdateFCMToken stores the user's push token.
	UpdateFCMToken(ctx context.Context, userID, token string) error
	// ListUsers returns every account (admin view).
	ListUsers(ctx context.Context) ([]models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	UserRepo userRepo.UserRepository
}

var _ UserService = (*DefaultUserService)(nil)
