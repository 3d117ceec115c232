package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/shivam7147/Quizio-backend/internal/config"
	"github.com/shivam7147/Quizio-backend/internal/dtos"
	"github.com/shivam7147/Quizio-backend/internal/models"
	"github.com/shivam7147/Quizio-backend/internal/repositories"
	"github.com/shivam7147/Quizio-backend/internal/utils"
)

// AuthService covers registration, email verification, login, and the
// password-reset flow.
type AuthService interface {
	Register(ctx context.Context, req dtos.RegisterRequest) error
	VerifyEmail(ctx context.Context, token string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)

	SendResetCode(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, req dtos.ResetPasswordRequest) error
}

type authService struct {
	userRepo    repositories.UserRepository
	pendingRepo repositories.PendingRegistrationRepository
	resetRepo   repositories.PasswordResetRepository
	jwtService  JWTService
	mailer      Mailer
	cfg         *config.Config
}

func NewAuthService(
	userRepo repositories.UserRepository,
	pendingRepo repositories.PendingRegistrationRepository,
	resetRepo repositories.PasswordResetRepository,
	jwtService JWTService,
	mailer Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		pendingRepo: pendingRepo,
		resetRepo:   resetRepo,
		jwtService:  jwtService,
		mailer:      mailer,
		cfg:         cfg,
	}
}

// ---------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------
//
// Create-then-send with a compensating delete: if the verification email
// fails, the freshly created pending row is removed so the caller can retry
// registration cleanly.
func (s *authService) Register(ctx context.Context, req dtos.RegisterRequest) error {
	existingUser, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if existingUser != nil {
		return utils.ErrUserExists
	}

	existingPending, err := s.pendingRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if existingPending != nil {
		return utils.ErrPendingExists
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	pending := &models.PendingRegistration{
		ID:                uuid.New(),
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      passwordHash,
		VerificationToken: utils.RandomToken(s.cfg.VerificationTokenLength),
		ExpiresAt:         time.Now().Add(s.cfg.PendingRegistrationTTL),
	}
	if err := s.pendingRepo.Create(ctx, pending); err != nil {
		return err
	}

	if sendErr := s.mailer.SendVerificationEmail(pending.Email, pending.VerificationToken); sendErr != nil {
		if delErr := s.pendingRepo.Delete(ctx, pending.ID); delErr != nil {
			utils.Logger.WithError(delErr).Error("Failed to roll back pending registration after send failure")
		}
		return sendErr
	}
	return nil
}

// ---------------------------------------------------------------------
// VerifyEmail
// ---------------------------------------------------------------------
func (s *authService) VerifyEmail(ctx context.Context, token string) (*models.User, string, error) {
	pending, err := s.pendingRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, "", err
	}
	if pending == nil {
		return nil, "", utils.ErrInvalidToken
	}

	existingUser, err := s.userRepo.GetByEmail(ctx, pending.Email)
	if err != nil {
		return nil, "", err
	}
	if existingUser != nil {
		// An account appeared for this email in the meantime; the pending
		// record is spent either way.
		if delErr := s.pendingRepo.Delete(ctx, pending.ID); delErr != nil {
			utils.Logger.WithError(delErr).Error("Failed to discard stale pending registration")
		}
		return nil, "", utils.ErrUserExists
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         pending.Name,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	if delErr := s.pendingRepo.Delete(ctx, pending.ID); delErr != nil {
		utils.Logger.WithError(delErr).Error("Failed to delete consumed pending registration")
	}

	sessionToken, err := s.jwtService.GenerateSessionToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, sessionToken, nil
}

// ---------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", utils.ErrInvalidCredentials
	}

	sessionToken, err := s.jwtService.GenerateSessionToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, sessionToken, nil
}

// ---------------------------------------------------------------------
// Password reset flow
// ---------------------------------------------------------------------
func (s *authService) SendResetCode(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return utils.ErrUserNotFound
	}

	code := &models.PasswordResetCode{
		ID:        uuid.New(),
		Email:     email,
		Code:      utils.RandomNumericString(s.cfg.ResetCodeLength),
		ExpiresAt: time.Now().Add(s.cfg.ResetCodeTTL),
	}
	if err := s.resetRepo.CreateCode(ctx, code); err != nil {
		return err
	}

	return s.mailer.SendResetCodeEmail(email, code.Code)
}

// VerifyResetCode is a pure existence check; no state changes.
func (s *authService) VerifyResetCode(ctx context.Context, email, code string) error {
	rec, err := s.resetRepo.GetCode(ctx, email, code)
	if err != nil {
		return err
	}
	if rec == nil {
		return utils.ErrInvalidResetCode
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req dtos.ResetPasswordRequest) error {
	rec, err := s.resetRepo.GetCode(ctx, req.Email, req.Code)
	if err != nil {
		return err
	}
	if rec == nil {
		return utils.ErrInvalidResetCode
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return utils.ErrUserNotFound
	}

	passwordHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePasswordByEmail(ctx, req.Email, passwordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.ErrUserNotFound
		}
		return err
	}

	return s.resetRepo.Delete(ctx, rec.ID)
}
