package routes

const (
	Health = "/health"

	AuthRegister        = "/api/auth/register"
	AuthVerifyEmail     = "/api/auth/verify-email"
	AuthLogin           = "/api/auth/login"
	AuthSendResetCode   = "/api/auth/forgot-password/send-code"
	AuthVerifyResetCode = "/api/auth/forgot-password/verify-code"
	AuthResetPassword   = "/api/auth/forgot-password/reset"

	QuizCreate      = "/api/quiz/create"
	QuizCreatedByMe = "/api/quiz/created-by-me"
	QuizByShareCode = "/api/quiz/code/{shareId}"
	QuizSubmit      = "/api/quiz/{id}/submit"
	QuizResults     = "/api/quiz/{id}/results"
	QuizByID        = "/api/quiz/{id}"

	GeminiAsk = "/api/gemini/ask"
)
