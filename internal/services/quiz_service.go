package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shivam7147/Quizio-backend/internal/config"
	"github.com/shivam7147/Quizio-backend/internal/dtos"
	"github.com/shivam7147/Quizio-backend/internal/models"
	"github.com/shivam7147/Quizio-backend/internal/repositories"
	"github.com/shivam7147/Quizio-backend/internal/utils"
)

// QuizService covers quiz creation, attempt submission and scoring, listing,
// and the result-access policy.
type QuizService interface {
	Create(ctx context.Context, req dtos.CreateQuizRequest, createdBy uuid.UUID) (*models.Quiz, error)
	SubmitAttempt(ctx context.Context, quizID uuid.UUID, req dtos.SubmitQuizRequest) (score, totalQuestions int, err error)
	GetResults(ctx context.Context, quizID, requesterID uuid.UUID, requesterEmail string) ([]models.Attempt, error)
	ListByCreator(ctx context.Context, createdBy uuid.UUID) ([]*models.Quiz, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error)
	GetByShareCode(ctx context.Context, shareCode string) (*models.Quiz, error)
}

type quizService struct {
	quizRepo repositories.QuizRepository
	cfg      *config.Config
}

func NewQuizService(quizRepo repositories.QuizRepository, cfg *config.Config) QuizService {
	return &quizService{quizRepo: quizRepo, cfg: cfg}
}

// ---------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------
func (s *quizService) Create(ctx context.Context, req dtos.CreateQuizRequest, createdBy uuid.UUID) (*models.Quiz, error) {
	now := time.Now()

	duration := req.Duration
	if duration <= 0 {
		duration = config.DefaultQuizDurationMinutes
	}

	visibleFrom := now
	if req.VisibleFrom != nil {
		visibleFrom = *req.VisibleFrom
	}
	expiresAt := now.Add(config.DefaultQuizExpiry)
	if req.ExpiresAt != nil {
		expiresAt = *req.ExpiresAt
	}
	autoSubmitAt := now.Add(time.Duration(duration) * time.Minute)
	if req.AutoSubmitAt != nil {
		autoSubmitAt = *req.AutoSubmitAt
	}

	questions := make([]models.Question, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, models.Question{
			Text:          q.QuestionText,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}

	quiz := &models.Quiz{
		ID:              uuid.New(),
		Title:           req.Title,
		Questions:       questions,
		DurationMinutes: duration,
		VisibleFrom:     visibleFrom,
		AutoSubmitAt:    autoSubmitAt,
		ExpiresAt:       expiresAt,
		CreatedBy:       createdBy,
		ShareCode:       utils.RandomNumericString(s.cfg.ShareCodeLength),
		UUID:            uuid.New(),
		CreatedAt:       now,
	}

	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// ---------------------------------------------------------------------
// SubmitAttempt
// ---------------------------------------------------------------------
func (s *quizService) SubmitAttempt(ctx context.Context, quizID uuid.UUID, req dtos.SubmitQuizRequest) (int, int, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return 0, 0, err
	}
	if quiz == nil {
		return 0, 0, utils.ErrQuizNotFound
	}

	if quiz.HasAttemptBy(req.Email, req.Username) {
		return 0, 0, utils.ErrAlreadyAttempted
	}

	score := quiz.Score(req.Answers)

	quiz.Attempts = append(quiz.Attempts, models.Attempt{
		ID:          uuid.New(),
		Username:    req.Username,
		Email:       req.Email,
		Score:       score,
		SubmittedAt: time.Now(),
	})
	quiz.DeduplicateAttempts()

	if err := s.quizRepo.SaveAttempts(ctx, quiz.ID, quiz.Attempts); err != nil {
		return 0, 0, err
	}
	return score, len(quiz.Questions), nil
}

// ---------------------------------------------------------------------
// Result access
// ---------------------------------------------------------------------

type ResultAccess int

const (
	AccessDenied ResultAccess = iota
	AccessAllAttempts
	AccessOwnAttempt
)

// DecideResultAccess is the result-visibility policy: the creator sees every
// attempt; anyone else sees only the attempt matching their email, if one
// exists.
func DecideResultAccess(quiz *models.Quiz, requesterID uuid.UUID, requesterEmail string) (ResultAccess, *models.Attempt) {
	if quiz.CreatedBy == requesterID {
		return AccessAllAttempts, nil
	}
	if requesterEmail != "" {
		for i := range quiz.Attempts {
			if quiz.Attempts[i].Email == requesterEmail {
				return AccessOwnAttempt, &quiz.Attempts[i]
			}
		}
	}
	return AccessDenied, nil
}

func (s *quizService) GetResults(ctx context.Context, quizID, requesterID uuid.UUID, requesterEmail string) ([]models.Attempt, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, utils.ErrQuizNotFound
	}

	access, attempt := DecideResultAccess(quiz, requesterID, requesterEmail)
	switch access {
	case AccessAllAttempts:
		return quiz.Attempts, nil
	case AccessOwnAttempt:
		return []models.Attempt{*attempt}, nil
	default:
		if requesterEmail != "" {
			return nil, utils.ErrNoAttemptFound
		}
		return nil, utils.ErrNotAuthorized
	}
}

// ---------------------------------------------------------------------
// Lookups
// ---------------------------------------------------------------------
func (s *quizService) ListByCreator(ctx context.Context, createdBy uuid.UUID) ([]*models.Quiz, error) {
	return s.quizRepo.ListByCreator(ctx, createdBy)
}

func (s *quizService) GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, utils.ErrQuizNotFound
	}
	return quiz, nil
}

func (s *quizService) GetByShareCode(ctx context.Context, shareCode string) (*models.Quiz, error) {
	quiz, err := s.quizRepo.GetByShareCode(ctx, shareCode)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, utils.ErrQuizNotFound
	}
	return quiz, nil
}
