package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/shivam7147/Quizio-backend/internal/models"
)

type PasswordResetRepository interface {
	// CreateCode replaces any prior codes for the email with the new one.
	CreateCode(ctx context.Context, code *models.PasswordResetCode) error
	GetCode(ctx context.Context, email, code string) (*models.PasswordResetCode, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CleanupExpired(ctx context.Context) error
}

type passwordResetRepository struct {
	db DB
}

func NewPasswordResetRepository(db DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) CreateCode(ctx context.Context, code *models.PasswordResetCode) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM password_reset_codes WHERE email = $1`, code.Email); err != nil {
		return err
	}

	q := `
        INSERT INTO password_reset_codes (id, email, code, created_at, expires_at)
        VALUES ($1, $2, $3, NOW(), $4)
    `
	if _, err := tx.Exec(ctx, q, code.ID, code.Email, code.Code, code.ExpiresAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *passwordResetRepository) GetCode(ctx context.Context, email, code string) (*models.PasswordResetCode, error) {
	q := `
        SELECT id, email, code, created_at, expires_at
        FROM password_reset_codes
        WHERE email = $1
          AND code = $2
          AND expires_at > NOW()
    `
	row := r.db.QueryRow(ctx, q, email, code)
	var rec models.PasswordResetCode
	err := row.Scan(&rec.ID, &rec.Email, &rec.Code, &rec.CreatedAt, &rec.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *passwordResetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM password_reset_codes WHERE id = $1`
	_, err := r.db.Exec(ctx, q, id)
	return err
}

func (r *passwordResetRepository) CleanupExpired(ctx context.Context) error {
	q := `DELETE FROM password_reset_codes WHERE expires_at < NOW()`
	_, err := r.db.Exec(ctx, q)
	return err
}
