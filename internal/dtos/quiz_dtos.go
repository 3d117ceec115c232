package dtos

import "time"

type QuestionPayload struct {
	QuestionText  string   `json:"questionText" validate:"required"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
}

type CreateQuizRequest struct {
	Title     string            `json:"title" validate:"required"`
	Questions []QuestionPayload `json:"questions" validate:"required,min=1,dive"`
	// Duration is in minutes; zero falls back to the default.
	Duration     int        `json:"duration" validate:"gte=0"`
	VisibleFrom  *time.Time `json:"visibleFrom,omitempty"`
	AutoSubmitAt *time.Time `json:"autoSubmitAt,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}

type CreateQuizResponse struct {
	Message   string `json:"message"`
	QuizID    string `json:"quizId"`
	ShareCode string `json:"shareId"`
}

type SubmitQuizRequest struct {
	Answers  []string `json:"answers" validate:"required"`
	Username string   `json:"username" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
}

type SubmitQuizResponse struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"totalQuestions"`
}

// QuizSummary is the trimmed projection returned by the created-by-me listing.
type QuizSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ShareCode     string    `json:"shareId"`
	QuestionCount int       `json:"questionCount"`
	AttemptCount  int       `json:"attemptCount"`
	CreatedAt     time.Time `json:"createdAt"`
}
