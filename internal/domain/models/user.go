package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. Accounts are created either by
// email/password registration or on first Google sign-in.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`

	// AuthMethod is "password" or "google".
	AuthMethod string `bson:"auth_method" json:"auth_method"`

	// PasswordHash is set only for password accounts (bcrypt).
	PasswordHash []byte `bson:"password_hash,omitempty" json:"-"`

	// GoogleID is Google's stable subject identifier, linked on the first
	// federated sign-in.
	GoogleID *string `bson:"google_id,omitempty" json:"-"`

	PhotoURL string `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	Status   string `bson:"status,omitempty" json:"status,omitempty"` // "active" or "disabled"

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Auth methods.
const (
	AuthPassword = "password"
	AuthGoogle   = "google"
)
