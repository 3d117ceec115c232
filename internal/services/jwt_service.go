package services

import (
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shivam7147/Quizio-backend/internal/config"
	"github.com/shivam7147/Quizio-backend/internal/middleware"
	"github.com/shivam7147/Quizio-backend/internal/models"
)

// JWTService issues the signed session tokens carried as bearer credentials
// on protected routes.
type JWTService interface {
	GenerateSessionToken(user *models.User) (string, error)
}

type jwtService struct {
	privateKey  *rsa.PrivateKey
	tokenExpiry time.Duration
}

func NewJWTService(cfg *config.Config) JWTService {
	return &jwtService{
		privateKey:  cfg.RSAPrivateKey,
		tokenExpiry: cfg.SessionTokenExpiry,
	}
}

func (j *jwtService) GenerateSessionToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   middleware.TokenIssuer,
		"sub":   user.ID.String(),
		"name":  user.Name,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(j.tokenExpiry).Unix(),
		"jti":   uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(j.privateKey)
}
