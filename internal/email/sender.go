// Package email delivers transactional notifications over SMTP.
package email

import (
	"context"

	"fitconnect-backend/platform/config"
)

// Sender sends the platform's notification emails.
type Sender interface {
	SendProfessionalSelectedEmail(ctx context.Context, toEmail, clientName, category string) error
	SendAppointmentAcceptedEmail(ctx context.Context, toEmail, professionalName string) error
	SendAppointmentDeclinedEmail(ctx context.Context, toEmail, professionalName string) error
}

// NewSender picks the SMTP sender when email is configured and the no-op
// sender otherwise.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}

// NoopSender drops every email. Used when email delivery is not configured.
type NoopSender struct{}

func (NoopSender) SendProfessionalSelectedEmail(context.Context, string, string, string) error {
	return nil
}

func (NoopSender) SendAppointmentAcceptedEmail(context.Context, string, string) error {
	return nil
}

func (NoopSender) SendAppointmentDeclinedEmail(context.Context, string, string) error {
	return nil
}

var _ Sender = NoopSender{}
