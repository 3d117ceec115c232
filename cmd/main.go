package main

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/shivam7147/Quizio-backend/internal/app"
	"github.com/shivam7147/Quizio-backend/internal/config"
	"github.com/shivam7147/Quizio-backend/internal/controllers"
	"github.com/shivam7147/Quizio-backend/internal/middleware"
	"github.com/shivam7147/Quizio-backend/internal/repositories"
	"github.com/shivam7147/Quizio-backend/internal/routes"
	"github.com/shivam7147/Quizio-backend/internal/services"
	"github.com/shivam7147/Quizio-backend/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize application:", err)
	}
	defer application.Close()

	//----------------------------------------------------------------------
	// Repositories
	//----------------------------------------------------------------------
	userRepo := repositories.NewUserRepository(application.DB)
	pendingRepo := repositories.NewPendingRegistrationRepository(application.DB)
	resetRepo := repositories.NewPasswordResetRepository(application.DB)
	quizRepo := repositories.NewQuizRepository(application.DB, func() string {
		return utils.RandomNumericString(cfg.ShareCodeLength)
	})

	//----------------------------------------------------------------------
	// Services
	//----------------------------------------------------------------------
	jwtService := services.NewJWTService(cfg)
	mailer := services.NewSendGridMailer(cfg)
	authService := services.NewAuthService(userRepo, pendingRepo, resetRepo, jwtService, mailer, cfg)
	quizService := services.NewQuizService(quizRepo, cfg)
	geminiService := services.NewGeminiService(cfg.GeminiAPIKey)
	cleanupService := services.NewCleanupService(pendingRepo, resetRepo)

	//----------------------------------------------------------------------
	// Controllers
	//----------------------------------------------------------------------
	validate := validator.New()
	authController := controllers.NewAuthController(authService, validate)
	quizController := controllers.NewQuizController(quizService, validate)
	geminiController := controllers.NewGeminiController(geminiService, validate)
	healthController := controllers.NewHealthController(application)

	//----------------------------------------------------------------------
	// Router & Endpoints
	//----------------------------------------------------------------------
	router := mux.NewRouter()

	// Health
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	// Public auth endpoints
	router.HandleFunc(routes.AuthRegister, authController.Register).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthVerifyEmail, authController.VerifyEmail).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthLogin, authController.Login).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthSendResetCode, authController.SendResetCode).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthVerifyResetCode, authController.VerifyResetCode).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthResetPassword, authController.ResetPassword).Methods(http.MethodPost)

	// Public quiz endpoints
	router.HandleFunc(routes.QuizByShareCode, quizController.GetByShareCode).Methods(http.MethodGet)
	router.HandleFunc(routes.QuizSubmit, quizController.SubmitAttempt).Methods(http.MethodPost)

	// Gemini passthrough
	router.HandleFunc(routes.GeminiAsk, geminiController.Ask).Methods(http.MethodPost)

	// Protected quiz endpoints require a valid token
	auth := middleware.AuthMiddleware(cfg.RSAPublicKey)
	router.Handle(routes.QuizCreate, auth(http.HandlerFunc(quizController.Create))).Methods(http.MethodPost)
	router.Handle(routes.QuizCreatedByMe, auth(http.HandlerFunc(quizController.ListCreatedByMe))).Methods(http.MethodGet)
	router.Handle(routes.QuizResults, auth(http.HandlerFunc(quizController.GetResults))).Methods(http.MethodGet)
	router.Handle(routes.QuizByID, auth(http.HandlerFunc(quizController.GetByID))).Methods(http.MethodGet)

	//----------------------------------------------------------------------
	// Setup daily cleanup via cron
	//----------------------------------------------------------------------
	c := cron.New()
	_, schErr := c.AddFunc("0 3 * * *", func() {
		if e := cleanupService.CleanupExpired(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled expired-records cleanup failed")
		}
	})
	if schErr != nil {
		utils.Logger.WithError(schErr).Fatal("Failed to schedule expired-records cleanup job")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Failed to start server:", err)
	}
}
