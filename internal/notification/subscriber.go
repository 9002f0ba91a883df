// Package notification reacts to domain events by sending emails. It is
// not HTTP-facing; it subscribes to the in-process event bus.
package notification

import (
	"context"
	"fmt"

	"fitconnect-backend/internal/email"
	"fitconnect-backend/internal/events"
	"fitconnect-backend/platform/logger"
)

// Subscriber wires domain events to email delivery.
type Subscriber struct {
	sender email.Sender
	log    *logger.Logger
}

func NewSubscriber(sender email.Sender, log *logger.Logger) *Subscriber {
	return &Subscriber{sender: sender, log: log}
}

// Register subscribes all notification handlers on the bus.
func (s *Subscriber) Register(bus events.Bus) {
	bus.Subscribe(events.ProfessionalSelected{}.EventName(), events.HandlerFunc(s.onProfessionalSelected))
	bus.Subscribe(events.AppointmentAccepted{}.EventName(), events.HandlerFunc(s.onAppointmentAccepted))
	bus.Subscribe(events.AppointmentDeclined{}.EventName(), events.HandlerFunc(s.onAppointmentDeclined))
}

func (s *Subscriber) onProfessionalSelected(ctx context.Context, event events.Event) error {
	e, ok := event.(events.ProfessionalSelected)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if err := s.sender.SendProfessionalSelectedEmail(ctx, e.ProfessionalEmail, e.ClientName, e.Category); err != nil {
		s.log.Error("send selection email", "appointment_id", e.AppointmentID, "error", err.Error())
		return err
	}
	return nil
}

func (s *Subscriber) onAppointmentAccepted(ctx context.Context, event events.Event) error {
	e, ok := event.(events.AppointmentAccepted)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if err := s.sender.SendAppointmentAcceptedEmail(ctx, e.ClientEmail, e.ProfessionalName); err != nil {
		s.log.Error("send acceptance email", "appointment_id", e.AppointmentID, "error", err.Error())
		return err
	}
	return nil
}

func (s *Subscriber) onAppointmentDeclined(ctx context.Context, event events.Event) error {
	e, ok := event.(events.AppointmentDeclined)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if err := s.sender.SendAppointmentDeclinedEmail(ctx, e.ClientEmail, e.ProfessionalName); err != nil {
		s.log.Error("send decline email", "appointment_id", e.AppointmentID, "error", err.Error())
		return err
	}
	return nil
}
