package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/shivam7147/Quizio-backend/internal/dtos"
	"github.com/shivam7147/Quizio-backend/internal/services"
	"github.com/shivam7147/Quizio-backend/internal/utils"
)

type QuizController struct {
	quizService services.QuizService
	validator   *validator.Validate
}

func NewQuizController(quizService services.QuizService, validator *validator.Validate) *QuizController {
	return &QuizController{
		quizService: quizService,
		validator:   validator,
	}
}

func (c *QuizController) Create(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	if userID == nil {
		utils.RespondError(w, http.StatusUnauthorized, "Access denied. No token.")
		return
	}

	var req dtos.CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Title and at least one question are required.", err)
		return
	}

	quiz, err := c.quizService.Create(r.Context(), req, *userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create quiz.", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dtos.CreateQuizResponse{
		Message:   "Quiz created successfully.",
		QuizID:    quiz.ID.String(),
		ShareCode: quiz.ShareCode,
	})
}

func (c *QuizController) ListCreatedByMe(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	if userID == nil {
		utils.RespondError(w, http.StatusUnauthorized, "Access denied. No token.")
		return
	}

	quizzes, err := c.quizService.ListByCreator(r.Context(), *userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to list quizzes.", err)
		return
	}

	summaries := make([]dtos.QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		summaries = append(summaries, dtos.QuizSummary{
			ID:            q.ID.String(),
			Title:         q.Title,
			ShareCode:     q.ShareCode,
			QuestionCount: len(q.Questions),
			AttemptCount:  len(q.Attempts),
			CreatedAt:     q.CreatedAt,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, summaries)
}

func (c *QuizController) GetByShareCode(w http.ResponseWriter, r *http.Request) {
	shareCode := mux.Vars(r)["shareId"]

	quiz, err := c.quizService.GetByShareCode(r.Context(), shareCode)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrQuizNotFound):
			utils.RespondError(w, http.StatusNotFound, "Quiz not found.")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch quiz.", err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, quiz)
}

func (c *QuizController) GetByID(w http.ResponseWriter, r *http.Request) {
	quizID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid quiz id.", err)
		return
	}

	quiz, err := c.quizService.GetByID(r.Context(), quizID)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrQuizNotFound):
			utils.RespondError(w, http.StatusNotFound, "Quiz not found.")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch quiz.", err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, quiz)
}

func (c *QuizController) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	quizID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid quiz id.", err)
		return
	}

	var req dtos.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Answers, username and a valid email are required.", err)
		return
	}

	score, total, err := c.quizService.SubmitAttempt(r.Context(), quizID, req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrQuizNotFound):
			utils.RespondError(w, http.StatusNotFound, "Quiz not found.")
		case errors.Is(err, utils.ErrAlreadyAttempted):
			utils.RespondError(w, http.StatusBadRequest, "You have already attempted this quiz.")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Failed to submit attempt.", err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.SubmitQuizResponse{
		Score:          score,
		TotalQuestions: total,
	})
}

func (c *QuizController) GetResults(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	if userID == nil {
		utils.RespondError(w, http.StatusUnauthorized, "Access denied. No token.")
		return
	}

	quizID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid quiz id.", err)
		return
	}

	// Token claims carry the requester's email; a query parameter can stand
	// in for it when the claim is empty.
	email := userEmailFromContext(r)
	if email == "" {
		email = r.URL.Query().Get("email")
	}

	attempts, err := c.quizService.GetResults(r.Context(), quizID, *userID, email)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrQuizNotFound):
			utils.RespondError(w, http.StatusNotFound, "Quiz not found.")
		case errors.Is(err, utils.ErrNoAttemptFound):
			utils.RespondError(w, http.StatusForbidden, "No attempt found for this quiz.")
		case errors.Is(err, utils.ErrNotAuthorized):
			utils.RespondError(w, http.StatusForbidden, "Not authorized to view these results.")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch results.", err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, attempts)
}
