package services

import (
	"context"

	"github.com/shivam7147/Quizio-backend/internal/repositories"
	"github.com/shivam7147/Quizio-backend/internal/utils"
)

// CleanupService sweeps expired ephemeral rows. Reads already filter on
// expires_at, so the sweeper is garbage collection, not correctness.
type CleanupService struct {
	pendingRepo repositories.PendingRegistrationRepository
	resetRepo   repositories.PasswordResetRepository
}

func NewCleanupService(
	pendingRepo repositories.PendingRegistrationRepository,
	resetRepo repositories.PasswordResetRepository,
) *CleanupService {
	return &CleanupService{
		pendingRepo: pendingRepo,
		resetRepo:   resetRepo,
	}
}

func (s *CleanupService) CleanupExpired(ctx context.Context) error {
	if err := s.pendingRepo.CleanupExpired(ctx); err != nil {
		utils.Logger.WithError(err).Error("Failed to clean up expired pending registrations")
		return err
	}
	if err := s.resetRepo.CleanupExpired(ctx); err != nil {
		utils.Logger.WithError(err).Error("Failed to clean up expired password reset codes")
		return err
	}
	return nil
}
