package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/shivam7147/Quizio-backend/internal/middleware"
)

// userIDFromContext parses the authenticated user id placed in the request
// context by the auth middleware. Returns nil when absent or malformed.
func userIDFromContext(r *http.Request) *uuid.UUID {
	userID, ok := r.Context().Value(middleware.ContextKeyUserID).(string)
	if !ok || userID == "" {
		return nil
	}
	parsed, err := uuid.Parse(userID)
	if err != nil {
		return nil
	}
	return &parsed
}

func userEmailFromContext(r *http.Request) string {
	email, _ := r.Context().Value(middleware.ContextKeyUserEmail).(string)
	return email
}
