// Package ports defines the outbound interfaces of the request lifecycle
// context. Adapters in internal/adapters connect them to the matching and
// identity contexts.
package ports

import (
	"context"

	"github.com/google/uuid"
)

// MatchCandidate is one shortlisted professional, already sanitized.
type MatchCandidate struct {
	ProfessionalID uuid.UUID
	DisplayName    string
	Profession     string
	Rank           int
	Rationale      string
}

// MatchOutcome is the matching adapter's result. An empty candidate list
// with an explanation is a normal outcome.
type MatchOutcome struct {
	Explanation string
	Candidates  []MatchCandidate
}

// MatchFinder produces a shortlist for a request. It never fails for
// capability reasons; only infrastructure errors are returned.
type MatchFinder interface {
	FindMatches(ctx context.Context, category, description, budget string) (MatchOutcome, error)
}

// ProfessionalDirectory answers verification questions about professionals.
type ProfessionalDirectory interface {
	IsVerified(ctx context.Context, professionalID uuid.UUID) (bool, error)
}

// Contact is the minimal identity data notifications need.
type Contact struct {
	Email       string
	DisplayName string
}

// UserDirectory resolves user ids to contact data across contexts.
type UserDirectory interface {
	GetContact(ctx context.Context, userID uuid.UUID) (Contact, error)
}
