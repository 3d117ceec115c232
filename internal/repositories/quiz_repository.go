package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/shivam7147/Quizio-backend/internal/models"
	"github.com/shivam7147/Quizio-backend/internal/utils"
)

// maxShareCodeRetries bounds the regenerate-on-collision loop. Six digits
// give a million codes; a handful of retries is plenty until the table grows
// far beyond this application's scale.
const maxShareCodeRetries = 5

const uniqueViolationCode = "23505"

type QuizRepository interface {
	// Create persists the quiz, regenerating the share code on a uniqueness
	// violation. The quiz's ShareCode field holds the finally accepted code.
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error)
	GetByShareCode(ctx context.Context, shareCode string) (*models.Quiz, error)
	ListByCreator(ctx context.Context, createdBy uuid.UUID) ([]*models.Quiz, error)
	// SaveAttempts replaces the quiz's attempt list wholesale, mirroring the
	// append-and-save lifecycle attempts have inside their quiz.
	SaveAttempts(ctx context.Context, quizID uuid.UUID, attempts []models.Attempt) error
}

type quizRepository struct {
	db           DB
	newShareCode func() string
}

func NewQuizRepository(db DB, newShareCode func() string) QuizRepository {
	return &quizRepository{db: db, newShareCode: newShareCode}
}

func (r *quizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	questionsJSON, err := json.Marshal(quiz.Questions)
	if err != nil {
		return err
	}

	q := `
        INSERT INTO quizzes
            (id, title, questions, duration_minutes, visible_from, auto_submit_at,
             expires_at, created_by, share_code, quiz_uuid, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
    `
	for attempt := 0; attempt < maxShareCodeRetries; attempt++ {
		_, err = r.db.Exec(ctx, q,
			quiz.ID, quiz.Title, questionsJSON, quiz.DurationMinutes,
			quiz.VisibleFrom, quiz.AutoSubmitAt, quiz.ExpiresAt,
			quiz.CreatedBy, quiz.ShareCode, quiz.UUID,
		)
		if err == nil {
			return nil
		}
		if !isShareCodeConflict(err) {
			return err
		}
		utils.Logger.Warnf("Share code %s already taken, regenerating", quiz.ShareCode)
		quiz.ShareCode = r.newShareCode()
	}
	return utils.ErrShareCodeExhausted
}

func (r *quizRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	q := selectQuiz + ` WHERE id = $1`
	return r.getOne(ctx, q, id)
}

func (r *quizRepository) GetByShareCode(ctx context.Context, shareCode string) (*models.Quiz, error) {
	q := selectQuiz + ` WHERE share_code = $1`
	return r.getOne(ctx, q, shareCode)
}

func (r *quizRepository) ListByCreator(ctx context.Context, createdBy uuid.UUID) ([]*models.Quiz, error) {
	q := selectQuiz + ` WHERE created_by = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, q, createdBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []*models.Quiz
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, quiz := range quizzes {
		if err := r.loadAttempts(ctx, quiz); err != nil {
			return nil, err
		}
	}
	return quizzes, nil
}

func (r *quizRepository) SaveAttempts(ctx context.Context, quizID uuid.UUID, attempts []models.Attempt) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM quiz_attempts WHERE quiz_id = $1`, quizID); err != nil {
		return err
	}

	q := `
        INSERT INTO quiz_attempts (id, quiz_id, username, email, score, submitted_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (quiz_id, email, username) DO NOTHING
    `
	for _, a := range attempts {
		id := a.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		if _, err := tx.Exec(ctx, q, id, quizID, a.Username, a.Email, a.Score, a.SubmittedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const selectQuiz = `
        SELECT id, title, questions, duration_minutes, visible_from, auto_submit_at,
               expires_at, created_by, share_code, quiz_uuid, created_at
        FROM quizzes`

func (r *quizRepository) getOne(ctx context.Context, q string, arg interface{}) (*models.Quiz, error) {
	quiz, err := scanQuiz(r.db.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadAttempts(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (r *quizRepository) loadAttempts(ctx context.Context, quiz *models.Quiz) error {
	q := `
        SELECT id, username, email, score, submitted_at
        FROM quiz_attempts
        WHERE quiz_id = $1
        ORDER BY submitted_at ASC
    `
	rows, err := r.db.Query(ctx, q, quiz.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Attempt
		if err := rows.Scan(&a.ID, &a.Username, &a.Email, &a.Score, &a.SubmittedAt); err != nil {
			return err
		}
		quiz.Attempts = append(quiz.Attempts, a)
	}
	return rows.Err()
}

func scanQuiz(row pgx.Row) (*models.Quiz, error) {
	var quiz models.Quiz
	var questionsJSON []byte
	err := row.Scan(
		&quiz.ID, &quiz.Title, &questionsJSON, &quiz.DurationMinutes,
		&quiz.VisibleFrom, &quiz.AutoSubmitAt, &quiz.ExpiresAt,
		&quiz.CreatedBy, &quiz.ShareCode, &quiz.UUID, &quiz.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questionsJSON, &quiz.Questions); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func isShareCodeConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode && strings.Contains(pgErr.ConstraintName, "share_code")
	}
	return false
}
