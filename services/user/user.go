package user

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

func (s *DefaultUserService) Register(ctx context.Context, u *models.User) (*models.User, string, error) {
	if u.Email == "" || u.Password == "" || u.Name == "" {
		return nil, "", fmt.Errorf("registration requires a name, email and password")
	}
	switch u.Role {
	case "":
		u.Role = models.RoleDentist
	case models.RoleDentist, models.RoleAdmin:
	default:
		return nil, "", fmt.Errorf("unknown role %q", u.Role)
	}

	existing, err := s.UserRepo.GetByEmail(u.Email)
	if err != nil {
		return nil, "", fmt.Errorf("checking for existing user: %w", err)
	}
	if existing != nil {
		return nil, "", fmt.Errorf("an account with email %s already exists", u.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	u.ID = uuid.New().String()
	u.PasswordHash = string(hashed)
	u.Password = ""
	u.CreatedAt = now
	u.UpdatedAt = now

	token, err := utils.GenerateToken(u.ID, u.Role, sessionDuration)
	if err != nil {
		return nil, "", fmt.Errorf("generating session token: %w", err)
	}
	u.TokenHash = utils.HashToken(token)

	if err := s.UserRepo.Create(u); err != nil {
		return nil, "", fmt.Errorf("creating user: %w", err)
	}
	return u, token, nil
}

func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.UserRepo.GetByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("looking up user: %w", err)
	}
	if u == nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	token, err := utils.GenerateToken(u.ID, u.Role, sessionDuration)
	if err != nil {
		return nil, "", fmt.Errorf("generating session token: %w", err)
	}
	u.TokenHash = utils.HashToken(token)
	if err := s.UserRepo.UpdateWithDocument(u.ID, bson.M{"$set": bson.M{"token_hash": u.TokenHash, "updated_at": time.Now()}}); err != nil {
		return nil, "", fmt.Errorf("storing session: %w", err)
	}
	return u, token, nil
}

func (s *DefaultUserService) Revoke(ctx context.Context, userID string) error {
	return s.UserRepo.UpdateWithDocument(userID, bson.M{"$set": bson.M{"token_hash": "", "updated_at": time.Now()}})
}

func (s *DefaultUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.UserRepo.GetByID(id)
}

func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	return s.UserRepo.UpdateWithDocument(userID, bson.M{"$set": bson.M{"fcm_token": token, "updated_at": time.Now()}})
}

func (s *DefaultUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.UserRepo.GetAll()
}
