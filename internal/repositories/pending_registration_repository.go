package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/shivam7147/Quizio-backend/internal/models"
)

type PendingRegistrationRepository interface {
	Create(ctx context.Context, pending *models.PendingRegistration) error
	GetByEmail(ctx context.Context, email string) (*models.PendingRegistration, error)
	GetByToken(ctx context.Context, token string) (*models.PendingRegistration, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CleanupExpired(ctx context.Context) error
}

type pendingRegistrationRepository struct {
	db DB
}

func NewPendingRegistrationRepository(db DB) PendingRegistrationRepository {
	return &pendingRegistrationRepository{db: db}
}

func (r *pendingRegistrationRepository) Create(ctx context.Context, pending *models.PendingRegistration) error {
	q := `
        INSERT INTO pending_registrations
            (id, name, email, password_hash, verification_token, created_at, expires_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), $6)
    `
	_, err := r.db.Exec(ctx, q,
		pending.ID, pending.Name, pending.Email, pending.PasswordHash,
		pending.VerificationToken, pending.ExpiresAt,
	)
	return err
}

func (r *pendingRegistrationRepository) GetByEmail(ctx context.Context, email string) (*models.PendingRegistration, error) {
	q := `
        SELECT id, name, email, password_hash, verification_token, created_at, expires_at
        FROM pending_registrations
        WHERE email = $1
          AND expires_at > NOW()
    `
	return r.scanOne(r.db.QueryRow(ctx, q, email))
}

func (r *pendingRegistrationRepository) GetByToken(ctx context.Context, token string) (*models.PendingRegistration, error) {
	q := `
        SELECT id, name, email, password_hash, verification_token, created_at, expires_at
        FROM pending_registrations
        WHERE verification_token = $1
          AND expires_at > NOW()
    `
	return r.scanOne(r.db.QueryRow(ctx, q, token))
}

func (r *pendingRegistrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM pending_registrations WHERE id = $1`
	_, err := r.db.Exec(ctx, q, id)
	return err
}

func (r *pendingRegistrationRepository) CleanupExpired(ctx context.Context) error {
	q := `DELETE FROM pending_registrations WHERE expires_at < NOW()`
	_, err := r.db.Exec(ctx, q)
	return err
}

func (r *pendingRegistrationRepository) scanOne(row pgx.Row) (*models.PendingRegistration, error) {
	var p models.PendingRegistration
	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.PasswordHash,
		&p.VerificationToken, &p.CreatedAt, &p.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
