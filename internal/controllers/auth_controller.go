package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/shivam7147/Quizio-backend/internal/dtos"
	"github.com/shivam7147/Quizio-backend/internal/services"
	"github.com/shivam7147/Quizio-backend/internal/utils"
)

type AuthController struct {
	authService services.AuthService
	validator   *validator.Validate
}

func NewAuthController(authService services.AuthService, validator *validator.Validate) *AuthController {
	return &AuthController{
		authService: authService,
		validator:   validator,
	}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "All fields are required.", err)
		return
	}

	if err := c.authService.Register(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, utils.ErrUserExists):
			utils.RespondError(w, http.StatusBadRequest, "User already exists.")
		case errors.Is(err, utils.ErrPendingExists):
			utils.RespondError(w, http.StatusBadRequest, "Verification already pending. Please check your email.")
		case errors.Is(err, utils.ErrExternalServiceFailure):
			utils.RespondError(w, http.StatusInternalServerError, "Failed to send verification email.", err)
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Registration failed.", err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.RegisterResponse{
		Message: "Verification email sent. Please check your inbox.",
	})
}

func (c *AuthController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req dtos.VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Token is required.", err)
		return
	}

	user, token, err := c.authService.VerifyEmail(r.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrInvalidToken):
			utils.RespondError(w, http.StatusBadRequest, "Invalid or expired token.")
		case errors.Is(err, utils.ErrUserExists):
			utils.RespondError(w, http.StatusBadRequest, "User already exists.")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Email verification failed.", err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dtos.AuthResponse{
		Message: "Email verified successfully.",
		Token:   token,
		User: dtos.UserPayload{
			ID:    user.ID.String(),
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Email and password are required.", err)
		return
	}

	user, token, err := c.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrInvalidCredentials):
			utils.RespondError(w, http.StatusBadRequest, "Invalid credentials.")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Login failed.", err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.AuthResponse{
		Message: "Login successful.",
		Token:   token,
		User: dtos.UserPayload{
			ID:    user.ID.String(),
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

func (c *AuthController) SendResetCode(w http.ResponseWriter, r *http.Request) {
	var req dtos.SendResetCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "A valid email is required.", err)
		return
	}

	if err := c.authService.SendResetCode(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, utils.ErrUserNotFound):
			utils.RespondError(w, http.StatusBadRequest, "No account found with that email.")
		case errors.Is(err, utils.ErrExternalServiceFailure):
			utils.RespondError(w, http.StatusInternalServerError, "Failed to send reset code email.", err)
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Failed to send reset code.", err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Reset code sent to your email."})
}

func (c *AuthController) VerifyResetCode(w http.ResponseWriter, r *http.Request) {
	var req dtos.VerifyResetCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Email and a 6-digit code are required.", err)
		return
	}

	if err := c.authService.VerifyResetCode(r.Context(), req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, utils.ErrInvalidResetCode):
			utils.RespondError(w, http.StatusBadRequest, "Invalid or expired code.")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Code verification failed.", err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Code verified."})
}

func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dtos.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Email, code and a new password of at least 6 characters are required.", err)
		return
	}

	if err := c.authService.ResetPassword(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, utils.ErrInvalidResetCode):
			utils.RespondError(w, http.StatusBadRequest, "Invalid or expired code.")
		case errors.Is(err, utils.ErrUserNotFound):
			utils.RespondError(w, http.StatusBadRequest, "No account found with that email.")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Password reset failed.", err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Password reset successful."})
}
