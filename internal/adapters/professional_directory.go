package adapters

import (
	"context"

	"fitconnect-backend/internal/professionals/domain"
	professionalssvc "fitconnect-backend/internal/professionals/service"
	"fitconnect-backend/internal/requests/ports"
	"fitconnect-backend/platform/apperr"

	"github.com/google/uuid"
)

// ProfessionalDirectoryAdapter answers verification lookups for the request
// lifecycle. A missing profile is reported as not verified, not as an error.
type ProfessionalDirectoryAdapter struct {
	svc *professionalssvc.Service
}

func NewProfessionalDirectoryAdapter(svc *professionalssvc.Service) *ProfessionalDirectoryAdapter {
	return &ProfessionalDirectoryAdapter{svc: svc}
}

func (a *ProfessionalDirectoryAdapter) IsVerified(ctx context.Context, professionalID uuid.UUID) (bool, error) {
	profile, err := a.svc.GetOwnProfile(ctx, professionalID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return false, nil
		}
		return false, err
	}
	return profile.Status == domain.StatusVerified, nil
}

var _ ports.ProfessionalDirectory = (*ProfessionalDirectoryAdapter)(nil)
