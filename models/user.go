package models

import "time"

// User roles.
const (
	RoleDentist = "dentist"
	RoleLab     = "lab"
	RoleAdmin   = "admin"
)

// User is a dentist or admin account. Lab staff authenticate through the Lab record.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	Role         string    `bson:"role" json:"role"`
	Clinic       string    `bson:"clinic" json:"clinic,omitempty"`
	PhoneNumber  string    `bson:"phone_number" json:"phoneNumber,omitempty"`
	Password     string    `bson:"-" json:"password,omitempty"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	TokenHash    string    `bson:"token_hash" json:"-"`
	FCMToken     string    `bson:"fcm_token" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt,omitzero"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt,omitzero"`
}
