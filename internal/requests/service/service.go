package service

import (
	"context"
	"fmt"

	"fitconnect-backend/internal/events"
	"fitconnect-backend/internal/requests/domain"
	"fitconnect-backend/internal/requests/ports"
	"fitconnect-backend/platform/apperr"
	"fitconnect-backend/platform/logger"

	"github.com/google/uuid"
)

// Store is the persistence surface the request lifecycle needs.
type Store interface {
	CreateRequest(ctx context.Context, clientID uuid.UUID, category, description, budget string) (domain.ServiceRequest, error)
	GetRequest(ctx context.Context, requestID uuid.UUID) (domain.ServiceRequest, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.ServiceRequest, error)
	ListOpenExcluding(ctx context.Context, userID uuid.UUID) ([]domain.ServiceRequest, error)
	SetMatched(ctx context.Context, requestID uuid.UUID, explanation string) (domain.ServiceRequest, error)
	SetStatus(ctx context.Context, requestID uuid.UUID, status domain.RequestStatus) error
	SelectProfessional(ctx context.Context, requestID, professionalID uuid.UUID) (domain.Appointment, error)
	GetAppointment(ctx context.Context, appointmentID uuid.UUID) (domain.Appointment, error)
	GetAppointmentByRequest(ctx context.Context, requestID uuid.UUID) (domain.Appointment, error)
	ListAppointmentsByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Appointment, error)
	ListAppointmentsByProfessional(ctx context.Context, professionalID uuid.UUID) ([]domain.Appointment, error)
	SetAppointmentStatus(ctx context.Context, appointmentID uuid.UUID, status domain.AppointmentStatus, communicationDetails *string) error
}

type Service struct {
	store         Store
	matcher       ports.MatchFinder
	professionals ports.ProfessionalDirectory
	users         ports.UserDirectory
	bus           events.Bus
	log           *logger.Logger
}

func New(store Store, matcher ports.MatchFinder, professionals ports.ProfessionalDirectory, users ports.UserDirectory, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store:         store,
		matcher:       matcher,
		professionals: professionals,
		users:         users,
		bus:           bus,
		log:           log,
	}
}

// Create opens a new service request for the client.
func (s *Service) Create(ctx context.Context, clientID uuid.UUID, category, description, budget string) (domain.ServiceRequest, error) {
	if _, err := s.users.GetContact(ctx, clientID); err != nil {
		return domain.ServiceRequest{}, err
	}
	return s.store.CreateRequest(ctx, clientID, category, description, budget)
}

// MatchOutcomeResult pairs the updated request with its shortlist.
type MatchOutcomeResult struct {
	Request    domain.ServiceRequest
	Candidates []ports.MatchCandidate
}

// RequestMatches runs matching for the caller's OPEN request and persists
// the outcome. The request moves to MATCHED even when the shortlist is
// empty; the explanation records why.
func (s *Service) RequestMatches(ctx context.Context, callerID, requestID uuid.UUID) (MatchOutcomeResult, error) {
	request, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return MatchOutcomeResult{}, err
	}
	if request.ClientID != callerID {
		return MatchOutcomeResult{}, apperr.Forbidden("not your service request")
	}
	if request.Status != domain.RequestOpen {
		return MatchOutcomeResult{}, apperr.Conflict("matches can only be requested for an open request")
	}

	outcome, err := s.matcher.FindMatches(ctx, request.Category, request.Description, request.Budget)
	if err != nil {
		return MatchOutcomeResult{}, fmt.Errorf("find matches: %w", err)
	}

	updated, err := s.store.SetMatched(ctx, requestID, outcome.Explanation)
	if err != nil {
		return MatchOutcomeResult{}, err
	}

	s.log.Info("request matched",
		"request_id", requestID.String(),
		"candidates", len(outcome.Candidates),
	)
	return MatchOutcomeResult{Request: updated, Candidates: outcome.Candidates}, nil
}

// SelectProfessional commits the client's pick. The request must be MATCHED
// and the professional VERIFIED; at most one selection ever succeeds per
// request, enforced transactionally in the store.
func (s *Service) SelectProfessional(ctx context.Context, callerID, requestID, professionalID uuid.UUID) (domain.Appointment, error) {
	request, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if request.ClientID != callerID {
		return domain.Appointment{}, apperr.Forbidden("not your service request")
	}

	verified, err := s.professionals.IsVerified(ctx, professionalID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if !verified {
		return domain.Appointment{}, apperr.Validation("selected professional is not verified")
	}

	appointment, err := s.store.SelectProfessional(ctx, requestID, professionalID)
	if err != nil {
		return domain.Appointment{}, err
	}

	s.publishSelected(ctx, request, appointment)
	return appointment, nil
}

// Cancel cancels the caller's request if the lifecycle still allows it.
// An open appointment is cancelled alongside.
func (s *Service) Cancel(ctx context.Context, callerID, requestID uuid.UUID) (domain.ServiceRequest, error) {
	request, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return domain.ServiceRequest{}, err
	}
	if request.ClientID != callerID {
		return domain.ServiceRequest{}, apperr.Forbidden("not your service request")
	}
	if !request.Status.CanTransitionTo(domain.RequestCancelled) {
		return domain.ServiceRequest{}, apperr.Conflict(fmt.Sprintf("request in status %s cannot be cancelled", request.Status))
	}

	if appointment, err := s.store.GetAppointmentByRequest(ctx, requestID); err == nil {
		if appointment.Status.CanTransitionTo(domain.AppointmentCancelledByClient) {
			if err := s.store.SetAppointmentStatus(ctx, appointment.ID, domain.AppointmentCancelledByClient, nil); err != nil {
				return domain.ServiceRequest{}, err
			}
		}
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return domain.ServiceRequest{}, err
	}

	if err := s.store.SetStatus(ctx, requestID, domain.RequestCancelled); err != nil {
		return domain.ServiceRequest{}, err
	}
	return s.store.GetRequest(ctx, requestID)
}

// Get returns a request if the caller is its client or its appointed
// professional.
func (s *Service) Get(ctx context.Context, callerID, requestID uuid.UUID) (domain.ServiceRequest, error) {
	request, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return domain.ServiceRequest{}, err
	}
	if request.ClientID == callerID {
		return request, nil
	}
	if appointment, err := s.store.GetAppointmentByRequest(ctx, requestID); err == nil && appointment.ProfessionalID == callerID {
		return request, nil
	}
	return domain.ServiceRequest{}, apperr.Forbidden("not your service request")
}

// ListForClient returns the caller's own requests.
func (s *Service) ListForClient(ctx context.Context, clientID uuid.UUID) ([]domain.ServiceRequest, error) {
	return s.store.ListByClient(ctx, clientID)
}

// ListOpenForProfessional returns OPEN requests the professional could
// serve, excluding any the professional created as a client.
func (s *Service) ListOpenForProfessional(ctx context.Context, professionalID uuid.UUID) ([]domain.ServiceRequest, error) {
	return s.store.ListOpenExcluding(ctx, professionalID)
}

// ListAppointmentsForClient returns the caller's appointments as client.
func (s *Service) ListAppointmentsForClient(ctx context.Context, clientID uuid.UUID) ([]domain.Appointment, error) {
	return s.store.ListAppointmentsByClient(ctx, clientID)
}

// ListAppointmentsForProfessional returns the caller's appointments as
// professional.
func (s *Service) ListAppointmentsForProfessional(ctx context.Context, professionalID uuid.UUID) ([]domain.Appointment, error) {
	return s.store.ListAppointmentsByProfessional(ctx, professionalID)
}

// AcceptAppointment is the professional's acknowledgement. Communication
// details, when provided, are shared with the client.
func (s *Service) AcceptAppointment(ctx context.Context, professionalID, appointmentID uuid.UUID, communicationDetails string) (domain.Appointment, error) {
	appointment, err := s.appointmentForProfessional(ctx, professionalID, appointmentID)
	if err != nil {
		return domain.Appointment{}, err
	}

	var details *string
	if communicationDetails != "" {
		details = &communicationDetails
	}
	appointment, err = s.transitionAppointment(ctx, appointment, domain.AppointmentAcceptedByProfessional, details)
	if err != nil {
		return domain.Appointment{}, err
	}

	s.applyRequestTransition(ctx, appointment.ServiceRequestID, domain.RequestAccepted)
	s.publishAppointmentEvent(ctx, appointment, true)
	return appointment, nil
}

// DeclineAppointment is the professional's refusal; the request records the
// rejection so the client can try again with a new request.
func (s *Service) DeclineAppointment(ctx context.Context, professionalID, appointmentID uuid.UUID) (domain.Appointment, error) {
	appointment, err := s.appointmentForProfessional(ctx, professionalID, appointmentID)
	if err != nil {
		return domain.Appointment{}, err
	}

	appointment, err = s.transitionAppointment(ctx, appointment, domain.AppointmentCancelledByProfessional, nil)
	if err != nil {
		return domain.Appointment{}, err
	}

	s.applyRequestTransition(ctx, appointment.ServiceRequestID, domain.RequestRejectedByProfessional)
	s.publishAppointmentEvent(ctx, appointment, false)
	return appointment, nil
}

// ConfirmAppointment is the client's confirmation after the professional
// accepted.
func (s *Service) ConfirmAppointment(ctx context.Context, clientID, appointmentID uuid.UUID) (domain.Appointment, error) {
	appointment, err := s.appointmentForClient(ctx, clientID, appointmentID)
	if err != nil {
		return domain.Appointment{}, err
	}
	return s.transitionAppointment(ctx, appointment, domain.AppointmentConfirmed, nil)
}

// CompleteAppointment closes out a confirmed appointment and the request
// behind it.
func (s *Service) CompleteAppointment(ctx context.Context, clientID, appointmentID uuid.UUID) (domain.Appointment, error) {
	appointment, err := s.appointmentForClient(ctx, clientID, appointmentID)
	if err != nil {
		return domain.Appointment{}, err
	}

	appointment, err = s.transitionAppointment(ctx, appointment, domain.AppointmentCompleted, nil)
	if err != nil {
		return domain.Appointment{}, err
	}

	s.applyRequestTransition(ctx, appointment.ServiceRequestID, domain.RequestCompleted)
	return appointment, nil
}

// CancelAppointment lets either party back out. The request side effect
// depends on who cancels and is applied only when the lifecycle allows it.
func (s *Service) CancelAppointment(ctx context.Context, callerID, appointmentID uuid.UUID) (domain.Appointment, error) {
	appointment, err := s.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return domain.Appointment{}, err
	}

	var target domain.AppointmentStatus
	var requestEffect domain.RequestStatus
	switch callerID {
	case appointment.ClientID:
		target = domain.AppointmentCancelledByClient
		requestEffect = domain.RequestCancelled
	case appointment.ProfessionalID:
		target = domain.AppointmentCancelledByProfessional
		requestEffect = domain.RequestRejectedByProfessional
	default:
		return domain.Appointment{}, apperr.Forbidden("not your appointment")
	}

	appointment, err = s.transitionAppointment(ctx, appointment, target, nil)
	if err != nil {
		return domain.Appointment{}, err
	}

	s.applyRequestTransition(ctx, appointment.ServiceRequestID, requestEffect)
	return appointment, nil
}

func (s *Service) appointmentForProfessional(ctx context.Context, professionalID, appointmentID uuid.UUID) (domain.Appointment, error) {
	appointment, err := s.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if appointment.ProfessionalID != professionalID {
		return domain.Appointment{}, apperr.Forbidden("not your appointment")
	}
	return appointment, nil
}

func (s *Service) appointmentForClient(ctx context.Context, clientID, appointmentID uuid.UUID) (domain.Appointment, error) {
	appointment, err := s.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if appointment.ClientID != clientID {
		return domain.Appointment{}, apperr.Forbidden("not your appointment")
	}
	return appointment, nil
}

func (s *Service) transitionAppointment(ctx context.Context, appointment domain.Appointment, target domain.AppointmentStatus, communicationDetails *string) (domain.Appointment, error) {
	if !appointment.Status.CanTransitionTo(target) {
		return domain.Appointment{}, apperr.Conflict(fmt.Sprintf("appointment in status %s cannot move to %s", appointment.Status, target))
	}
	if err := s.store.SetAppointmentStatus(ctx, appointment.ID, target, communicationDetails); err != nil {
		return domain.Appointment{}, err
	}
	return s.store.GetAppointment(ctx, appointment.ID)
}

// applyRequestTransition applies an appointment-driven request side effect
// when the request lifecycle allows it; an illegal side effect is skipped,
// not an error, because the appointment transition already committed.
func (s *Service) applyRequestTransition(ctx context.Context, requestID uuid.UUID, target domain.RequestStatus) {
	request, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		s.log.Error("load request for side effect", "request_id", requestID.String(), "error", err.Error())
		return
	}
	if !request.Status.CanTransitionTo(target) {
		return
	}
	if err := s.store.SetStatus(ctx, requestID, target); err != nil {
		s.log.DatabaseError("set request status", err)
	}
}

func (s *Service) publishSelected(ctx context.Context, request domain.ServiceRequest, appointment domain.Appointment) {
	professional, err := s.users.GetContact(ctx, appointment.ProfessionalID)
	if err != nil {
		s.log.Error("resolve professional contact", "error", err.Error())
		return
	}
	client, err := s.users.GetContact(ctx, request.ClientID)
	if err != nil {
		s.log.Error("resolve client contact", "error", err.Error())
		return
	}
	s.bus.Publish(ctx, events.ProfessionalSelected{
		BaseEvent:         events.NewBaseEvent(),
		ServiceRequestID:  request.ID.String(),
		AppointmentID:     appointment.ID.String(),
		ClientID:          request.ClientID.String(),
		ProfessionalID:    appointment.ProfessionalID.String(),
		ProfessionalEmail: professional.Email,
		ClientName:        client.DisplayName,
		Category:          request.Category,
	})
}

func (s *Service) publishAppointmentEvent(ctx context.Context, appointment domain.Appointment, accepted bool) {
	client, err := s.users.GetContact(ctx, appointment.ClientID)
	if err != nil {
		s.log.Error("resolve client contact", "error", err.Error())
		return
	}
	professional, err := s.users.GetContact(ctx, appointment.ProfessionalID)
	if err != nil {
		s.log.Error("resolve professional contact", "error", err.Error())
		return
	}

	if accepted {
		s.bus.Publish(ctx, events.AppointmentAccepted{
			BaseEvent:        events.NewBaseEvent(),
			AppointmentID:    appointment.ID.String(),
			ServiceRequestID: appointment.ServiceRequestID.String(),
			ClientEmail:      client.Email,
			ProfessionalName: professional.DisplayName,
		})
		return
	}
	s.bus.Publish(ctx, events.AppointmentDeclined{
		BaseEvent:        events.NewBaseEvent(),
		AppointmentID:    appointment.ID.String(),
		ServiceRequestID: appointment.ServiceRequestID.String(),
		ClientEmail:      client.Email,
		ProfessionalName: professional.DisplayName,
	})
}
