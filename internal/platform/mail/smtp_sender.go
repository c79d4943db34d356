// Package mail implements outbound notification delivery over SMTP.
package mail

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"

	"github.com/jswirski/tms-api/internal/config"
	"github.com/jswirski/tms-api/internal/redact"
	"github.com/jswirski/tms-api/internal/service/account"
)

// SMTPSender delivers confirmation and password-reset links via SMTP.
type SMTPSender struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
}

// Ensure SMTPSender implements the account.NotificationSender interface
var _ account.NotificationSender = (*SMTPSender)(nil)

// NewSMTPSender creates an SMTPSender from the given configuration.
// If logger is nil, the process default is used.
func NewSMTPSender(cfg config.SMTPConfig, logger *slog.Logger) *SMTPSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPSender{
		cfg:    cfg,
		logger: logger.With("component", "smtp_sender"),
	}
}

// SendConfirmation mails the registration confirmation link.
func (s *SMTPSender) SendConfirmation(
	ctx context.Context,
	email string,
	userID uuid.UUID,
	token string,
) error {
	link := fmt.Sprintf("%s/api/auth/confirm/registration/%s/%s", s.cfg.BaseURL, userID, token)
	return s.send(ctx, email,
		"Confirm registration",
		fmt.Sprintf("Confirm your registration by opening this link:\n\n%s\n", link),
		renderLinkHTML("Confirm registration", link))
}

// SendPasswordReset mails the password-reset link.
func (s *SMTPSender) SendPasswordReset(
	ctx context.Context,
	email string,
	userID uuid.UUID,
	token string,
) error {
	link := fmt.Sprintf("%s/api/auth/reset/password/%s/%s", s.cfg.BaseURL, userID, token)
	return s.send(ctx, email,
		"Reset profile password",
		fmt.Sprintf("Reset your password by opening this link:\n\n%s\n", link),
		renderLinkHTML("Reset password", link))
}

func (s *SMTPSender) send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	if timeout := s.cfg.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	m := gomail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	m.Subject(subject)

	// Text fallback + HTML alternative
	m.SetBodyString(gomail.TypeTextPlain, textBody)
	m.AddAlternativeString(gomail.TypeTextHTML, htmlBody)

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}

	client, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client init failed: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.Error("smtp send failed",
			"error", redact.Error(err),
			"to", redact.String(to),
			"subject", subject)
		return fmt.Errorf("smtp send failed: %w", err)
	}

	s.logger.Info("notification sent",
		"to", redact.String(to),
		"subject", subject)
	return nil
}

// renderLinkHTML renders the minimal single-link HTML body used by both
// notification kinds.
func renderLinkHTML(label, link string) string {
	escLink := html.EscapeString(link)
	escLabel := html.EscapeString(label)
	return `<a href="` + escLink + `"><b>` + escLabel + `</b></a>`
}
