package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/shivam7147/Quizio-backend/internal/dtos"
	"github.com/shivam7147/Quizio-backend/internal/services"
	"github.com/shivam7147/Quizio-backend/internal/utils"
)

type GeminiController struct {
	geminiService services.GeminiService
	validator     *validator.Validate
}

func NewGeminiController(geminiService services.GeminiService, validator *validator.Validate) *GeminiController {
	return &GeminiController{
		geminiService: geminiService,
		validator:     validator,
	}
}

// Ask relays a prompt to the generative-AI provider and returns the
// provider's response body untouched.
func (c *GeminiController) Ask(w http.ResponseWriter, r *http.Request) {
	var req dtos.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Prompt is required.", err)
		return
	}

	raw, err := c.geminiService.Ask(r.Context(), req.Prompt)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Generative AI request failed.", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
