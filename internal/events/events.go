// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"fitconnect-backend/platform/events"
	"fitconnect-backend/platform/logger"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Professional Domain Events
// =============================================================================

// ProfessionalRegistered is published when a professional completes registration.
// The scheduler module enqueues the screening task in response.
type ProfessionalRegistered struct {
	BaseEvent
	ProfessionalID string `json:"professionalId"`
	Email          string `json:"email"`
}

func (e ProfessionalRegistered) EventName() string { return "professionals.registered" }

// ProfessionalScreened is published when the verification pipeline finishes
// screening a professional, whether or not the profile reached VERIFIED.
type ProfessionalScreened struct {
	BaseEvent
	ProfessionalID string `json:"professionalId"`
	ProfileStatus  string `json:"profileStatus"`
}

func (e ProfessionalScreened) EventName() string { return "professionals.screened" }

// =============================================================================
// Request Lifecycle Events
// =============================================================================

// ProfessionalSelected is published when a client selects a professional for
// a service request and the appointment is created.
type ProfessionalSelected struct {
	BaseEvent
	ServiceRequestID  string `json:"serviceRequestId"`
	AppointmentID     string `json:"appointmentId"`
	ClientID          string `json:"clientId"`
	ProfessionalID    string `json:"professionalId"`
	ProfessionalEmail string `json:"professionalEmail"`
	ClientName        string `json:"clientName"`
	Category          string `json:"category"`
}

func (e ProfessionalSelected) EventName() string { return "requests.professional.selected" }

// AppointmentAccepted is published when a professional accepts an appointment.
type AppointmentAccepted struct {
	BaseEvent
	AppointmentID    string `json:"appointmentId"`
	ServiceRequestID string `json:"serviceRequestId"`
	ClientEmail      string `json:"clientEmail"`
	ProfessionalName string `json:"professionalName"`
}

func (e AppointmentAccepted) EventName() string { return "appointments.accepted" }

// AppointmentDeclined is published when a professional declines an appointment.
type AppointmentDeclined struct {
	BaseEvent
	AppointmentID    string `json:"appointmentId"`
	ServiceRequestID string `json:"serviceRequestId"`
	ClientEmail      string `json:"clientEmail"`
	ProfessionalName string `json:"professionalName"`
}

func (e AppointmentDeclined) EventName() string { return "appointments.declined" }
