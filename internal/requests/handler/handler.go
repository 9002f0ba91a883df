package handler

import (
	"context"
	"net/http"

	"fitconnect-backend/internal/requests/domain"
	"fitconnect-backend/internal/requests/service"
	"fitconnect-backend/internal/requests/transport"
	"fitconnect-backend/platform/httpkit"
	"fitconnect-backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) Create(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	var req transport.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	request, err := h.svc.Create(c.Request.Context(), identity.UserID(), req.Category, req.Description, req.Budget)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.ToServiceRequestResponse(request))
}

func (h *Handler) ListMine(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	requests, err := h.svc.ListForClient(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToServiceRequestResponses(requests))
}

func (h *Handler) ListOpen(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	requests, err := h.svc.ListOpenForProfessional(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToServiceRequestResponses(requests))
}

func (h *Handler) Get(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	requestID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	request, err := h.svc.Get(c.Request.Context(), identity.UserID(), requestID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToServiceRequestResponse(request))
}

func (h *Handler) RequestMatches(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	requestID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	outcome, err := h.svc.RequestMatches(c.Request.Context(), identity.UserID(), requestID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.MatchOutcomeResponse{
		Request:    transport.ToServiceRequestResponse(outcome.Request),
		Candidates: transport.ToMatchCandidateResponses(outcome.Candidates),
	})
}

func (h *Handler) SelectProfessional(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	requestID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req transport.SelectProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	professionalID, err := uuid.Parse(req.ProfessionalID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid professionalId", nil)
		return
	}

	appointment, err := h.svc.SelectProfessional(c.Request.Context(), identity.UserID(), requestID, professionalID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.ToAppointmentResponse(appointment))
}

func (h *Handler) Cancel(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	requestID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	request, err := h.svc.Cancel(c.Request.Context(), identity.UserID(), requestID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToServiceRequestResponse(request))
}

func (h *Handler) ListAppointmentsAsClient(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	appointments, err := h.svc.ListAppointmentsForClient(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToAppointmentResponses(appointments))
}

func (h *Handler) ListAppointmentsAsProfessional(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	appointments, err := h.svc.ListAppointmentsForProfessional(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToAppointmentResponses(appointments))
}

func (h *Handler) Accept(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	appointmentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	// Body optional; communication details may be shared on acceptance.
	var req transport.AcceptAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
		if err := h.val.Struct(req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
			return
		}
	}

	appointment, err := h.svc.AcceptAppointment(c.Request.Context(), identity.UserID(), appointmentID, req.CommunicationDetails)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToAppointmentResponse(appointment))
}

func (h *Handler) Decline(c *gin.Context) {
	h.simpleTransition(c, h.svc.DeclineAppointment)
}

func (h *Handler) Confirm(c *gin.Context) {
	h.simpleTransition(c, h.svc.ConfirmAppointment)
}

func (h *Handler) Complete(c *gin.Context) {
	h.simpleTransition(c, h.svc.CompleteAppointment)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	h.simpleTransition(c, h.svc.CancelAppointment)
}

// simpleTransition handles the bodyless appointment transitions, which all
// share the caller-id + appointment-id shape.
func (h *Handler) simpleTransition(c *gin.Context, fn func(ctx context.Context, callerID, appointmentID uuid.UUID) (domain.Appointment, error)) {
	identity := httpkit.MustGetIdentity(c)
	appointmentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	appointment, err := fn(c.Request.Context(), identity.UserID(), appointmentID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToAppointmentResponse(appointment))
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}
