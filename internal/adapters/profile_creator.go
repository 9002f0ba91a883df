// Package adapters connects the ports of one context to the services of
// another. Each adapter is a thin translation layer; no business rules
// live here.
package adapters

import (
	"context"

	authsvc "fitconnect-backend/internal/auth/service"
	professionalssvc "fitconnect-backend/internal/professionals/service"

	"github.com/google/uuid"
)

// ProfileCreatorAdapter lets the auth context create the professional
// profile that accompanies a PROFESSIONAL registration.
type ProfileCreatorAdapter struct {
	svc *professionalssvc.Service
}

func NewProfileCreatorAdapter(svc *professionalssvc.Service) *ProfileCreatorAdapter {
	return &ProfileCreatorAdapter{svc: svc}
}

func (a *ProfileCreatorAdapter) CreateProfile(ctx context.Context, userID uuid.UUID, input authsvc.ProfessionalProfileInput) error {
	return a.svc.CreateProfile(ctx, userID, input.Profession, input.YearsOfExperience, input.Qualifications, input.AboutYou, input.SocialLinks)
}

var _ authsvc.ProfileCreator = (*ProfileCreatorAdapter)(nil)
