package adapters

import (
	"context"
	"testing"

	"fitconnect-backend/internal/matching"
	"fitconnect-backend/internal/professionals/domain"
	"fitconnect-backend/platform/logger"

	"github.com/google/uuid"
)

type staticPool struct{ profiles []domain.Profile }

func (p *staticPool) ListVerified(context.Context) ([]domain.Profile, error) {
	return p.profiles, nil
}

type staticRanker struct{ ranking matching.Ranking }

func (r *staticRanker) Rank(context.Context, string, string, string, string) (matching.Ranking, error) {
	return r.ranking, nil
}

func (r *staticRanker) Available() bool { return true }

func TestMatchFinderAdapterFlattensMatches(t *testing.T) {
	proID := uuid.New()
	pool := &staticPool{profiles: []domain.Profile{{
		UserID:      proID,
		DisplayName: "Ann",
		Profession:  "Electrician",
		Status:      domain.StatusVerified,
	}}}
	ranker := &staticRanker{ranking: matching.Ranking{
		RankingRationale: "one strong candidate",
		RankedProfessionals: []matching.RankedCandidate{
			{ProfessionalID: proID.String(), Rank: 1, Rationale: "direct trade match"},
		},
	}}

	adapter := NewMatchFinderAdapter(matching.NewService(pool, ranker, logger.New("test")))
	outcome, err := adapter.FindMatches(context.Background(), "Electrical", "rewire garage", "under 500 EUR")
	if err != nil {
		t.Fatalf("find matches: %v", err)
	}

	if outcome.Explanation != "one strong candidate" {
		t.Errorf("explanation = %q", outcome.Explanation)
	}
	if len(outcome.Candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(outcome.Candidates))
	}
	got := outcome.Candidates[0]
	if got.ProfessionalID != proID || got.DisplayName != "Ann" || got.Profession != "Electrician" || got.Rank != 1 || got.Rationale != "direct trade match" {
		t.Errorf("unexpected candidate: %+v", got)
	}
}
