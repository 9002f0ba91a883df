// Package transport defines request/response DTOs for the request
// lifecycle endpoints.
package transport

import (
	"time"

	"fitconnect-backend/internal/requests/domain"
	"fitconnect-backend/internal/requests/ports"
)

type CreateRequestRequest struct {
	Category    string `json:"category" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"required,min=10,max=5000"`
	Budget      string `json:"budget" validate:"max=100"`
}

type SelectProfessionalRequest struct {
	ProfessionalID string `json:"professionalId" validate:"required,uuid"`
}

type AcceptAppointmentRequest struct {
	CommunicationDetails string `json:"communicationDetails" validate:"max=2000"`
}

type ServiceRequestResponse struct {
	ID                  string    `json:"id"`
	ClientID            string    `json:"clientId"`
	Category            string    `json:"category"`
	Description         string    `json:"description"`
	Budget              string    `json:"budget,omitempty"`
	Status              string    `json:"status"`
	MatchingExplanation *string   `json:"matchingExplanation,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type MatchCandidateResponse struct {
	ProfessionalID string `json:"professionalId"`
	DisplayName    string `json:"displayName"`
	Profession     string `json:"profession"`
	Rank           int    `json:"rank"`
	Rationale      string `json:"rationale,omitempty"`
}

type MatchOutcomeResponse struct {
	Request    ServiceRequestResponse   `json:"request"`
	Candidates []MatchCandidateResponse `json:"candidates"`
}

type AppointmentResponse struct {
	ID                   string    `json:"id"`
	ServiceRequestID     string    `json:"serviceRequestId"`
	ClientID             string    `json:"clientId"`
	ProfessionalID       string    `json:"professionalId"`
	Status               string    `json:"status"`
	CommunicationDetails *string   `json:"communicationDetails,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func ToServiceRequestResponse(r domain.ServiceRequest) ServiceRequestResponse {
	return ServiceRequestResponse{
		ID:                  r.ID.String(),
		ClientID:            r.ClientID.String(),
		Category:            r.Category,
		Description:         r.Description,
		Budget:              r.Budget,
		Status:              string(r.Status),
		MatchingExplanation: r.MatchingExplanation,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func ToServiceRequestResponses(requests []domain.ServiceRequest) []ServiceRequestResponse {
	out := make([]ServiceRequestResponse, len(requests))
	for i, r := range requests {
		out[i] = ToServiceRequestResponse(r)
	}
	return out
}

func ToMatchCandidateResponses(candidates []ports.MatchCandidate) []MatchCandidateResponse {
	out := make([]MatchCandidateResponse, len(candidates))
	for i, c := range candidates {
		out[i] = MatchCandidateResponse{
			ProfessionalID: c.ProfessionalID.String(),
			DisplayName:    c.DisplayName,
			Profession:     c.Profession,
			Rank:           c.Rank,
			Rationale:      c.Rationale,
		}
	}
	return out
}

func ToAppointmentResponse(a domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:                   a.ID.String(),
		ServiceRequestID:     a.ServiceRequestID.String(),
		ClientID:             a.ClientID.String(),
		ProfessionalID:       a.ProfessionalID.String(),
		Status:               string(a.Status),
		CommunicationDetails: a.CommunicationDetails,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

func ToAppointmentResponses(appointments []domain.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, len(appointments))
	for i, a := range appointments {
		out[i] = ToAppointmentResponse(a)
	}
	return out
}
