package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Login record types.
const (
	LoginTypeSignIn  = "sign_in"
	LoginTypeSignOut = "sign_out"
)

// LoginRecord captures one sign-in or sign-out for auditing.
type LoginRecord struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID string             `bson:"user_id"`
	Email  string             `bson:"email,omitempty"`
	Method string             `bson:"method,omitempty"`
	Type   string             `bson:"type"`
	At     time.Time          `bson:"at"`
}
