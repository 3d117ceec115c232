package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/shivam7147/Quizio-backend/internal/config"
	"github.com/shivam7147/Quizio-backend/internal/dtos"
	"github.com/shivam7147/Quizio-backend/internal/models"
	"github.com/shivam7147/Quizio-backend/internal/utils"
)

// fakeQuizRepo keeps quizzes in memory; the methods mirror the store's
// nil-on-not-found convention.
type fakeQuizRepo struct {
	quizzes map[uuid.UUID]*models.Quiz
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: make(map[uuid.UUID]*models.Quiz)}
}

func (r *fakeQuizRepo) Create(ctx context.Context, quiz *models.Quiz) error {
	cp := *quiz
	r.quizzes[quiz.ID] = &cp
	return nil
}

func (r *fakeQuizRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	q, ok := r.quizzes[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	cp.Attempts = append([]models.Attempt(nil), q.Attempts...)
	return &cp, nil
}

func (r *fakeQuizRepo) GetByShareCode(ctx context.Context, shareCode string) (*models.Quiz, error) {
	for _, q := range r.quizzes {
		if q.ShareCode == shareCode {
			cp := *q
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeQuizRepo) ListByCreator(ctx context.Context, createdBy uuid.UUID) ([]*models.Quiz, error) {
	var out []*models.Quiz
	for _, q := range r.quizzes {
		if q.CreatedBy == createdBy {
			cp := *q
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeQuizRepo) SaveAttempts(ctx context.Context, quizID uuid.UUID, attempts []models.Attempt) error {
	q, ok := r.quizzes[quizID]
	if !ok {
		return nil
	}
	q.Attempts = append([]models.Attempt(nil), attempts...)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		ShareCodeLength:         config.ShareCodeLength,
		ResetCodeLength:         config.ResetCodeLength,
		VerificationTokenLength: config.VerificationTokenLength,
		SessionTokenExpiry:      config.DefaultSessionTokenExpiry,
		PendingRegistrationTTL:  config.DefaultPendingRegistrationTTL,
		ResetCodeTTL:            config.DefaultResetCodeTTL,
	}
}

func geographyQuizRequest() dtos.CreateQuizRequest {
	return dtos.CreateQuizRequest{
		Title: "Geography",
		Questions: []dtos.QuestionPayload{
			{QuestionText: "Capital of France?", Options: []string{"Paris", "Lyon"}, CorrectAnswer: "Paris"},
			{QuestionText: "2 + 2?", Options: []string{"3", "4"}, CorrectAnswer: "4"},
		},
	}
}

func TestCreateQuizAppliesDefaults(t *testing.T) {
	repo := newFakeQuizRepo()
	svc := NewQuizService(repo, testConfig())
	creator := uuid.New()

	before := time.Now()
	quiz, err := svc.Create(context.Background(), geographyQuizRequest(), creator)
	require.NoError(t, err)

	require.Equal(t, creator, quiz.CreatedBy)
	require.Len(t, quiz.ShareCode, 6)
	require.NotEqual(t, uuid.Nil, quiz.UUID)
	require.Equal(t, config.DefaultQuizDurationMinutes, quiz.DurationMinutes)

	// visibleFrom defaults to now, expiresAt to now+24h, autoSubmitAt to
	// now + duration minutes.
	require.WithinDuration(t, before, quiz.VisibleFrom, 2*time.Second)
	require.WithinDuration(t, before.Add(config.DefaultQuizExpiry), quiz.ExpiresAt, 2*time.Second)
	require.WithinDuration(t, before.Add(config.DefaultQuizDurationMinutes*time.Minute), quiz.AutoSubmitAt, 2*time.Second)

	stored, err := repo.GetByID(context.Background(), quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestCreateQuizHonorsExplicitTimestamps(t *testing.T) {
	repo := newFakeQuizRepo()
	svc := NewQuizService(repo, testConfig())

	visibleFrom := time.Now().Add(1 * time.Hour)
	autoSubmitAt := time.Now().Add(2 * time.Hour)
	expiresAt := time.Now().Add(3 * time.Hour)

	req := geographyQuizRequest()
	req.Duration = 15
	req.VisibleFrom = &visibleFrom
	req.AutoSubmitAt = &autoSubmitAt
	req.ExpiresAt = &expiresAt

	quiz, err := svc.Create(context.Background(), req, uuid.New())
	require.NoError(t, err)
	require.Equal(t, 15, quiz.DurationMinutes)
	require.True(t, quiz.VisibleFrom.Equal(visibleFrom))
	require.True(t, quiz.AutoSubmitAt.Equal(autoSubmitAt))
	require.True(t, quiz.ExpiresAt.Equal(expiresAt))
}

func TestSubmitAttemptScoresExactMatches(t *testing.T) {
	repo := newFakeQuizRepo()
	svc := NewQuizService(repo, testConfig())

	quiz, err := svc.Create(context.Background(), geographyQuizRequest(), uuid.New())
	require.NoError(t, err)

	score, total, err := svc.SubmitAttempt(context.Background(), quiz.ID, dtos.SubmitQuizRequest{
		Answers:  []string{"Paris", "4"},
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, 2, score)
	require.Equal(t, 2, total)
}

func TestSubmitAttemptNoPartialCredit(t *testing.T) {
	repo := newFakeQuizRepo()
	svc := NewQuizService(repo, testConfig())

	quiz, err := svc.Create(context.Background(), geographyQuizRequest(), uuid.New())
	require.NoError(t, err)

	// "paris" is case-sensitive wrong; "4" is right.
	score, total, err := svc.SubmitAttempt(context.Background(), quiz.ID, dtos.SubmitQuizRequest{
		Answers:  []string{"paris", "4"},
		Username: "bob",
		Email:    "bob@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, 1, score)
	require.Equal(t, 2, total)
}

func TestSubmitAttemptUnknownQuiz(t *testing.T) {
	svc := NewQuizService(newFakeQuizRepo(), testConfig())

	_, _, err := svc.SubmitAttempt(context.Background(), uuid.New(), dtos.SubmitQuizRequest{
		Answers:  []string{"Paris"},
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.ErrorIs(t, err, utils.ErrQuizNotFound)
}

func TestSubmitAttemptBlocksRepeatByEmailOrUsername(t *testing.T) {
	repo := newFakeQuizRepo()
	svc := NewQuizService(repo, testConfig())

	quiz, err := svc.Create(context.Background(), geographyQuizRequest(), uuid.New())
	require.NoError(t, err)

	_, _, err = svc.SubmitAttempt(context.Background(), quiz.ID, dtos.SubmitQuizRequest{
		Answers: []string{"Paris", "4"}, Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	// Same email, different username.
	_, _, err = svc.SubmitAttempt(context.Background(), quiz.ID, dtos.SubmitQuizRequest{
		Answers: []string{"Paris", "4"}, Username: "alice2", Email: "alice@example.com",
	})
	require.ErrorIs(t, err, utils.ErrAlreadyAttempted)

	// Same username, different email.
	_, _, err = svc.SubmitAttempt(context.Background(), quiz.ID, dtos.SubmitQuizRequest{
		Answers: []string{"Paris", "4"}, Username: "alice", Email: "other@example.com",
	})
	require.ErrorIs(t, err, utils.ErrAlreadyAttempted)

	stored, err := repo.GetByID(context.Background(), quiz.ID)
	require.NoError(t, err)
	require.Len(t, stored.Attempts, 1)
}

func TestDecideResultAccess(t *testing.T) {
	creator := uuid.New()
	quiz := &models.Quiz{
		CreatedBy: creator,
		Attempts: []models.Attempt{
			{Username: "alice", Email: "alice@example.com", Score: 2},
			{Username: "bob", Email: "bob@example.com", Score: 1},
		},
	}

	access, attempt := DecideResultAccess(quiz, creator, "")
	require.Equal(t, AccessAllAttempts, access)
	require.Nil(t, attempt)

	access, attempt = DecideResultAccess(quiz, uuid.New(), "bob@example.com")
	require.Equal(t, AccessOwnAttempt, access)
	require.NotNil(t, attempt)
	require.Equal(t, "bob", attempt.Username)

	access, attempt = DecideResultAccess(quiz, uuid.New(), "stranger@example.com")
	require.Equal(t, AccessDenied, access)
	require.Nil(t, attempt)

	access, attempt = DecideResultAccess(quiz, uuid.New(), "")
	require.Equal(t, AccessDenied, access)
	require.Nil(t, attempt)
}

func TestGetResults(t *testing.T) {
	repo := newFakeQuizRepo()
	svc := NewQuizService(repo, testConfig())
	creator := uuid.New()

	quiz, err := svc.Create(context.Background(), geographyQuizRequest(), creator)
	require.NoError(t, err)

	_, _, err = svc.SubmitAttempt(context.Background(), quiz.ID, dtos.SubmitQuizRequest{
		Answers: []string{"Paris", "4"}, Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)
	_, _, err = svc.SubmitAttempt(context.Background(), quiz.ID, dtos.SubmitQuizRequest{
		Answers: []string{"Lyon", "3"}, Username: "bob", Email: "bob@example.com",
	})
	require.NoError(t, err)

	// Creator sees everything.
	attempts, err := svc.GetResults(context.Background(), quiz.ID, creator, "")
	require.NoError(t, err)
	require.Len(t, attempts, 2)

	// A participant sees only their own attempt.
	attempts, err = svc.GetResults(context.Background(), quiz.ID, uuid.New(), "bob@example.com")
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	require.Equal(t, "bob", attempts[0].Username)

	// Known email with no attempt.
	_, err = svc.GetResults(context.Background(), quiz.ID, uuid.New(), "stranger@example.com")
	require.ErrorIs(t, err, utils.ErrNoAttemptFound)

	// No email, not the creator.
	_, err = svc.GetResults(context.Background(), quiz.ID, uuid.New(), "")
	require.ErrorIs(t, err, utils.ErrNotAuthorized)
}
