package config

import (
	"crypto/rsa"
	"encoding/base64"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shivam7147/Quizio-backend/internal/utils"
)

// Config holds all application configuration, including secrets and keys.
type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	FrontendURL      string
	DBUrl            string

	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridSandbox   bool

	GeminiAPIKey string

	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey

	SessionTokenExpiry      time.Duration
	PendingRegistrationTTL  time.Duration
	ResetCodeTTL            time.Duration
	ShareCodeLength         int
	ResetCodeLength         int
	VerificationTokenLength int
}

// Time-based and sizing defaults.
const (
	OrganizationName = "Quizio"
	AppName          = "quiz-service"

	DefaultSessionTokenExpiry     = 7 * 24 * time.Hour
	DefaultPendingRegistrationTTL = 24 * time.Hour
	DefaultResetCodeTTL           = 10 * time.Minute
	ShareCodeLength               = 6
	ResetCodeLength               = 6
	VerificationTokenLength       = 32

	DefaultQuizDurationMinutes = 60
	DefaultQuizExpiry          = 24 * time.Hour
)

// LoadConfig reads all required environment variables and returns a *Config.
// Missing required configuration is fatal.
func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		utils.Logger.Fatal("FRONTEND_URL env var is missing")
	}
	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	sendGridAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sendGridAPIKey == "" {
		utils.Logger.Fatal("SENDGRID_API_KEY env var is missing")
	}
	sendGridFromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if sendGridFromEmail == "" {
		utils.Logger.Fatal("SENDGRID_FROM_EMAIL env var is missing")
	}
	sendGridSandbox := os.Getenv("SENDGRID_SANDBOX_MODE") == "true"

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		utils.Logger.Warn("GEMINI_API_KEY env var is missing; /api/gemini/ask will be disabled")
	}

	privateKeyBase64 := os.Getenv("JWT_RSA_PRIVATE_KEY_BASE64")
	if privateKeyBase64 == "" {
		utils.Logger.Fatal("JWT_RSA_PRIVATE_KEY_BASE64 env var is missing")
	}
	privateKeyPEM, err := base64.StdEncoding.DecodeString(privateKeyBase64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to decode base64 private key")
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA private key")
	}

	publicKeyBase64 := os.Getenv("JWT_RSA_PUBLIC_KEY_BASE64")
	if publicKeyBase64 == "" {
		utils.Logger.Fatal("JWT_RSA_PUBLIC_KEY_BASE64 env var is missing")
	}
	publicKeyPEM, err := base64.StdEncoding.DecodeString(publicKeyBase64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to decode base64 public key")
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	return &Config{
		OrganizationName: OrganizationName,
		AppName:          AppName,
		AppPort:          appPort,
		FrontendURL:      frontendURL,
		DBUrl:            dbUrl,

		SendGridAPIKey:    sendGridAPIKey,
		SendGridFromEmail: sendGridFromEmail,
		SendGridSandbox:   sendGridSandbox,

		GeminiAPIKey: geminiAPIKey,

		RSAPrivateKey: privateKey,
		RSAPublicKey:  publicKey,

		SessionTokenExpiry:      DefaultSessionTokenExpiry,
		PendingRegistrationTTL:  DefaultPendingRegistrationTTL,
		ResetCodeTTL:            DefaultResetCodeTTL,
		ShareCodeLength:         ShareCodeLength,
		ResetCodeLength:         ResetCodeLength,
		VerificationTokenLength: VerificationTokenLength,
	}
}
