package models

import (
	"time"

	"github.com/google/uuid"
)

// PendingRegistration is an unverified signup awaiting email confirmation.
// Rows expire ExpiresAt and are swept by the cleanup job; reads must filter
// on ExpiresAt themselves.
type PendingRegistration struct {
	ID                uuid.UUID
	Name              string
	Email             string
	PasswordHash      string
	VerificationToken string
	CreatedAt         time.Time
	ExpiresAt         time.Time
}
