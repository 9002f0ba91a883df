package adapters

import (
	"context"

	authrepo "fitconnect-backend/internal/auth/repository"
	"fitconnect-backend/internal/requests/ports"

	"github.com/google/uuid"
)

// UserDirectoryAdapter resolves user ids to contact data for notifications.
type UserDirectoryAdapter struct {
	repo *authrepo.Repository
}

func NewUserDirectoryAdapter(repo *authrepo.Repository) *UserDirectoryAdapter {
	return &UserDirectoryAdapter{repo: repo}
}

func (a *UserDirectoryAdapter) GetContact(ctx context.Context, userID uuid.UUID) (ports.Contact, error) {
	user, err := a.repo.GetUserByID(ctx, userID)
	if err != nil {
		return ports.Contact{}, err
	}
	return ports.Contact{Email: user.Email, DisplayName: user.DisplayName}, nil
}

var _ ports.UserDirectory = (*UserDirectoryAdapter)(nil)
