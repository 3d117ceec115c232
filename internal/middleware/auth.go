package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shivam7147/Quizio-backend/internal/utils"
)

type contextKey string

const (
	ContextKeyUserID    = contextKey("userID")
	ContextKeyUserName  = contextKey("userName")
	ContextKeyUserEmail = contextKey("userEmail")
)

// TokenIssuer identifies the service that issues all session tokens.
const TokenIssuer = "Quizio"

// AuthMiddleware guards protected endpoints. The session token is read from
// the Authorization header as "Bearer <token>"; a missing, invalid, or
// expired token short-circuits with 401.
func AuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractBearerToken(r)
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "Access denied. No token.")
				return
			}

			tok, vErr := ValidateToken(tokenStr, pub)
			if vErr != nil || !tok.Valid {
				utils.RespondError(w, http.StatusUnauthorized, "Invalid token.", vErr)
				return
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				utils.RespondError(w, http.StatusUnauthorized, "Invalid token.")
				return
			}
			sub, ok := claims["sub"].(string)
			if !ok || sub == "" {
				utils.RespondError(w, http.StatusUnauthorized, "Invalid token.")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, sub)
			if name, ok := claims["name"].(string); ok {
				ctx = context.WithValue(ctx, ContextKeyUserName, name)
			}
			if email, ok := claims["email"].(string); ok {
				ctx = context.WithValue(ctx, ContextKeyUserEmail, email)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ValidateToken checks the token's signature, issuer, and expiry.
func ValidateToken(tokenString string, publicKey *rsa.PublicKey) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return publicKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	iss, ok := claims["iss"].(string)
	if !ok {
		return nil, errors.New("missing issuer claim")
	}
	if iss != TokenIssuer {
		return nil, errors.New("invalid token issuer")
	}

	return token, nil
}

func extractBearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", errors.New("missing Authorization header")
	}
	return strings.TrimPrefix(h, "Bearer "), nil
}
