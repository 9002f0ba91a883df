// Package domain provides core business rules for the service request
// bounded context: the request and appointment state machines.
package domain

// RequestStatus is the lifecycle state of a service request.
type RequestStatus string

const (
	// RequestOpen is a newly created request, not yet matched.
	RequestOpen RequestStatus = "OPEN"
	// RequestMatched means a shortlist was produced; the client must pick.
	RequestMatched RequestStatus = "MATCHED"
	// RequestPendingContact means a professional was selected and must respond.
	RequestPendingContact RequestStatus = "PENDING_CONTACT"
	// RequestAccepted means the professional accepted the engagement.
	RequestAccepted RequestStatus = "ACCEPTED"
	// RequestRejectedByProfessional means the selected professional declined.
	RequestRejectedByProfessional RequestStatus = "REJECTED_BY_PROFESSIONAL"
	// RequestCompleted means the service was delivered.
	RequestCompleted RequestStatus = "COMPLETED"
	// RequestCancelled means the client cancelled before completion.
	RequestCancelled RequestStatus = "CANCELLED"
)

// requestTransitions lists every legal forward edge. Status only ever moves
// along these edges; there is no path back.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestOpen:           {RequestMatched, RequestCancelled},
	RequestMatched:        {RequestPendingContact, RequestCancelled},
	RequestPendingContact: {RequestAccepted, RequestRejectedByProfessional, RequestCancelled},
	RequestAccepted:       {RequestCompleted},
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
// A new request must be submitted to retry from a terminal state.
func (s RequestStatus) IsTerminal() bool {
	return len(requestTransitions[s]) == 0
}

// Valid reports whether s is a known request status.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestOpen, RequestMatched, RequestPendingContact, RequestAccepted,
		RequestRejectedByProfessional, RequestCompleted, RequestCancelled:
		return true
	}
	return false
}

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	// AppointmentRequested: the client selected this professional.
	AppointmentRequested AppointmentStatus = "REQUESTED"
	// AppointmentAcceptedByProfessional: the professional acknowledged.
	AppointmentAcceptedByProfessional AppointmentStatus = "ACCEPTED_BY_PROFESSIONAL"
	// AppointmentConfirmed: both parties confirmed.
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	// AppointmentCompleted: the engagement was delivered.
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	// AppointmentCancelledByClient: cancelled by the client.
	AppointmentCancelledByClient AppointmentStatus = "CANCELLED_BY_CLIENT"
	// AppointmentCancelledByProfessional: cancelled or declined by the professional.
	AppointmentCancelledByProfessional AppointmentStatus = "CANCELLED_BY_PROFESSIONAL"
)

var appointmentForward = map[AppointmentStatus]AppointmentStatus{
	AppointmentRequested:              AppointmentAcceptedByProfessional,
	AppointmentAcceptedByProfessional: AppointmentConfirmed,
	AppointmentConfirmed:              AppointmentCompleted,
}

var appointmentTerminal = map[AppointmentStatus]bool{
	AppointmentCompleted:               true,
	AppointmentCancelledByClient:       true,
	AppointmentCancelledByProfessional: true,
}

// CanTransitionTo reports whether moving from s to next is legal. The forward
// chain is REQUESTED, ACCEPTED_BY_PROFESSIONAL, CONFIRMED, COMPLETED;
// cancellation by either party is reachable from any non-terminal state.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if appointmentTerminal[s] {
		return false
	}
	if next == AppointmentCancelledByClient || next == AppointmentCancelledByProfessional {
		return true
	}
	return appointmentForward[s] == next
}

// IsTerminal reports whether no further transitions are possible.
func (s AppointmentStatus) IsTerminal() bool {
	return appointmentTerminal[s]
}
