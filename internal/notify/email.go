// Package notify delivers account emails. The reset token travels only here,
// never in an HTTP response body.
package notify

import (
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"

	"account-credential-service/internal/config"
)

// EmailNotifier sends password-reset links over SMTP.
type EmailNotifier struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewEmailNotifier returns a mailer using the SMTP settings in cfg.
func NewEmailNotifier(cfg *config.Config, logger *slog.Logger) *EmailNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailNotifier{cfg: cfg, logger: logger}
}

// SendPasswordReset emails the recipient a link embedding the raw reset
// token. When SMTP is not configured the send is skipped with a warning so
// local development works without a mail server. The token itself is never
// logged.
func (n *EmailNotifier) SendPasswordReset(email, rawToken string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("empty recipient")
	}
	if n.cfg.SMTPHost == "" || n.cfg.SMTPFrom == "" {
		n.logger.Warn("smtp not configured, skipping reset email", slog.String("to", email))
		return nil
	}

	resetURL := fmt.Sprintf("%s?token=%s", strings.TrimRight(n.cfg.ResetURLBase, "/"), rawToken)

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.SMTPFrom)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Reset your password")
	m.SetBody("text/html", fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Password reset requested</h2>
    <p>Click the link below to choose a new password. The link expires in one hour.</p>
    <p><a href="%s">Reset password</a></p>
    <p>If you did not request this, you can ignore this email.</p>
  </div>
</body>
</html>`, resetURL))

	d := gomail.NewDialer(n.cfg.SMTPHost, n.cfg.SMTPPort, n.cfg.SMTPUser, n.cfg.SMTPPass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	n.logger.Info("reset email sent", slog.String("to", email))
	return nil
}
