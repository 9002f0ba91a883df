package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendProfessionalSelectedEmail(ctx context.Context, toEmail, clientName, category string) error {
	content, err := renderEmailTemplate("professional_selected", emailData{
		Heading:    "You have been selected",
		ClientName: clientName,
		Category:   category,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectProfessionalSelected, content)
}

func (s *SMTPSender) SendAppointmentAcceptedEmail(ctx context.Context, toEmail, professionalName string) error {
	content, err := renderEmailTemplate("appointment_accepted", emailData{
		Heading:          "Appointment accepted",
		ProfessionalName: professionalName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectAppointmentAccepted, content)
}

func (s *SMTPSender) SendAppointmentDeclinedEmail(ctx context.Context, toEmail, professionalName string) error {
	content, err := renderEmailTemplate("appointment_declined", emailData{
		Heading:          "Appointment declined",
		ProfessionalName: professionalName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectAppointmentDeclined, content)
}

var _ Sender = (*SMTPSender)(nil)
