package domain

import (
	"time"

	"github.com/google/uuid"
)

// ServiceRequest is a client's ask for help in a service category.
type ServiceRequest struct {
	ID                  uuid.UUID
	ClientID            uuid.UUID
	Category            string
	Description         string
	Budget              string
	Status              RequestStatus
	MatchingExplanation *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Appointment links a service request to the professional the client chose.
// At most one appointment ever exists per service request.
type Appointment struct {
	ID                   uuid.UUID
	ServiceRequestID     uuid.UUID
	ClientID             uuid.UUID
	ProfessionalID       uuid.UUID
	Status               AppointmentStatus
	CommunicationDetails *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
