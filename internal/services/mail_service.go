package services

import (
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/shivam7147/Quizio-backend/internal/config"
	"github.com/shivam7147/Quizio-backend/internal/utils"
)

// Mailer delivers verification tokens and reset codes. Failures surface as
// ErrExternalServiceFailure so controllers can classify them.
type Mailer interface {
	SendVerificationEmail(to, token string) error
	SendResetCodeEmail(to, code string) error
}

type sendGridMailer struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
	sandbox   bool
}

func NewSendGridMailer(cfg *config.Config) Mailer {
	return &sendGridMailer{
		client:    sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromName:  cfg.OrganizationName,
		fromEmail: cfg.SendGridFromEmail,
		sandbox:   cfg.SendGridSandbox,
	}
}

func (m *sendGridMailer) SendVerificationEmail(to, token string) error {
	subject := "Verify your email for Quizio"
	plain := fmt.Sprintf("Use the following code to verify your email and complete registration: %s", token)
	html := fmt.Sprintf(verificationEmailHTML,
		"Your Email Verification Code",
		"Your Email Verification Code",
		"Use the following code to verify your email and complete registration. It expires in 24 hours.",
		token,
		time.Now().Year(),
	)
	return m.send(to, subject, plain, html)
}

func (m *sendGridMailer) SendResetCodeEmail(to, code string) error {
	subject := "Quizio - Password Reset Code"
	plain := fmt.Sprintf("Your password reset code is %s", code)
	html := fmt.Sprintf(verificationEmailHTML,
		"Your Password Reset Code",
		"Your Password Reset Code",
		"Use the following code to reset your password. It expires in 10 minutes.",
		code,
		time.Now().Year(),
	)
	return m.send(to, subject, plain, html)
}

func (m *sendGridMailer) send(to, subject, plain, html string) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plain, html)

	if m.sandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		message.MailSettings = ms
	}

	_, err := m.client.Send(message)
	if err != nil {
		utils.Logger.WithError(err).Errorf("Failed to send email to %s via SendGrid", to)
		return fmt.Errorf("%w: failed to send email via sendgrid: %v", utils.ErrExternalServiceFailure, err)
	}
	return nil
}
