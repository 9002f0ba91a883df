package adapters

import (
	"context"

	"fitconnect-backend/internal/matching"
	"fitconnect-backend/internal/requests/ports"
)

// MatchFinderAdapter exposes the matching service to the request lifecycle,
// flattening domain profiles into the candidates the requests context needs.
type MatchFinderAdapter struct {
	svc *matching.Service
}

func NewMatchFinderAdapter(svc *matching.Service) *MatchFinderAdapter {
	return &MatchFinderAdapter{svc: svc}
}

func (a *MatchFinderAdapter) FindMatches(ctx context.Context, category, description, budget string) (ports.MatchOutcome, error) {
	result, err := a.svc.FindMatches(ctx, category, description, budget)
	if err != nil {
		return ports.MatchOutcome{}, err
	}

	candidates := make([]ports.MatchCandidate, 0, len(result.Matches))
	for _, match := range result.Matches {
		candidates = append(candidates, ports.MatchCandidate{
			ProfessionalID: match.Professional.UserID,
			DisplayName:    match.Professional.DisplayName,
			Profession:     match.Professional.Profession,
			Rank:           match.Rank,
			Rationale:      match.Rationale,
		})
	}

	return ports.MatchOutcome{
		Explanation: result.Rationale,
		Candidates:  candidates,
	}, nil
}

var _ ports.MatchFinder = (*MatchFinderAdapter)(nil)
