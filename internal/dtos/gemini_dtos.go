package dtos

type AskRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}
