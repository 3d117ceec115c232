package models

import (
	"time"

	"github.com/google/uuid"
)

type Question struct {
	Text          string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Attempt is one participant's single scored submission for a quiz.
type Attempt struct {
	ID          uuid.UUID `json:"-"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type Quiz struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Questions       []Question `json:"questions"`
	DurationMinutes int        `json:"duration"`
	VisibleFrom     time.Time  `json:"visibleFrom"`
	AutoSubmitAt    time.Time  `json:"autoSubmitAt"`
	ExpiresAt       time.Time  `json:"expiresAt"`
	CreatedBy       uuid.UUID  `json:"createdBy"`
	Attempts        []Attempt  `json:"attempts"`
	ShareCode       string     `json:"shareCode"`
	UUID            uuid.UUID  `json:"uuid"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// HasAttemptBy reports whether any existing attempt matches the email OR the
// username. Either match blocks a resubmission; changing just one of the two
// is not enough to attempt again.
func (q *Quiz) HasAttemptBy(email, username string) bool {
	for _, a := range q.Attempts {
		if a.Email == email || a.Username == username {
			return true
		}
	}
	return false
}

// DeduplicateAttempts removes attempts sharing the same (email, username)
// composite key, keeping the first seen. It restores the uniqueness invariant
// before persistence, independently of the submission-time pre-check.
func (q *Quiz) DeduplicateAttempts() {
	if len(q.Attempts) < 2 {
		return
	}
	seen := make(map[string]struct{}, len(q.Attempts))
	kept := q.Attempts[:0]
	for _, a := range q.Attempts {
		key := a.Email + "|" + a.Username
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, a)
	}
	q.Attempts = kept
}

// Score counts the positionally aligned answers that exactly equal the
// question's correct answer text. No normalization, no partial credit.
func (q *Quiz) Score(answers []string) int {
	score := 0
	for i, question := range q.Questions {
		if i >= len(answers) {
			break
		}
		if answers[i] == question.CorrectAnswer {
			score++
		}
	}
	return score
}
