package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/shivam7147/Quizio-backend/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
}

type userRepository struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	q := `
        INSERT INTO users (id, name, email, password_hash, created_at)
        VALUES ($1, $2, $3, $4, NOW())
    `
	_, err := r.db.Exec(ctx, q, user.ID, user.Name, user.Email, user.PasswordHash)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	q := `
        SELECT id, name, email, password_hash, created_at
        FROM users
        WHERE id = $1
    `
	return r.scanOne(r.db.QueryRow(ctx, q, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	q := `
        SELECT id, name, email, password_hash, created_at
        FROM users
        WHERE email = $1
    `
	return r.scanOne(r.db.QueryRow(ctx, q, email))
}

func (r *userRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	q := `UPDATE users SET password_hash = $2 WHERE email = $1`
	tag, err := r.db.Exec(ctx, q, email, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// scanOne distinguishes "not found" (nil, nil) from other DB errors.
func (r *userRepository) scanOne(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
