package models

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetCode is a one-time reset code. At most one active row exists
// per email; creating a new code deletes any prior ones.
type PasswordResetCode struct {
	ID        uuid.UUID
	Email     string
	Code      string
	CreatedAt time.Time
	ExpiresAt time.Time
}
