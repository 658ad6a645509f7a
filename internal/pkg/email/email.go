package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/aarambh-hq/attendance-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const sendAttempts = 3

// EmailService sends transactional mail. When SMTP is unconfigured the
// implementation logs and drops messages instead of failing requests.
type EmailService interface {
	SendPasswordReset(to, resetLink, expiresAt string) error
}

type emailService struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return &emailService{cfg: cfg, templates: tmpl}, nil
}

func (s *emailService) SendPasswordReset(to, resetLink, expiresAt string) error {
	var body bytes.Buffer
	err := s.templates.ExecuteTemplate(&body, "password_reset.html", struct {
		ResetLink string
		ExpiresAt string
	}{resetLink, expiresAt})
	if err != nil {
		return fmt.Errorf("render password reset email: %w", err)
	}
	return s.send(to, "Reset your password", body.Bytes())
}

func (s *emailService) send(to, subject string, htmlBody []byte) error {
	if s.cfg.Host == "" {
		slog.Warn("smtp not configured, dropping email", "to", to, "subject", subject)
		return nil
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.Write(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	var lastErr error
	for attempt := 1; attempt <= sendAttempts; attempt++ {
		lastErr = smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg.Bytes())
		if lastErr == nil {
			slog.Info("email sent", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}
		slog.Error("email send failed", "to", to, "subject", subject, "attempt", attempt, "error", lastErr)
		if attempt < sendAttempts {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}
	return fmt.Errorf("send email after %d attempts: %w", sendAttempts, lastErr)
}
