package utils

import "errors"

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrUserExists             = errors.New("user_exists")
	ErrPendingExists          = errors.New("pending_registration_exists")
	ErrInvalidToken           = errors.New("invalid_or_expired_token")
	ErrInvalidCredentials     = errors.New("invalid_credentials")
	ErrInvalidResetCode       = errors.New("invalid_or_expired_code")
	ErrUserNotFound           = errors.New("user_not_found")
	ErrQuizNotFound           = errors.New("quiz_not_found")
	ErrAlreadyAttempted       = errors.New("already_attempted")
	ErrNoAttemptFound         = errors.New("no_attempt_found")
	ErrNotAuthorized          = errors.New("not_authorized")
	ErrShareCodeExhausted     = errors.New("share_code_generation_exhausted")
	ErrExternalServiceFailure = errors.New("external_service_failure")
)
