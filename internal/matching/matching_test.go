package matching

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fitconnect-backend/internal/professionals/domain"
	"fitconnect-backend/platform/logger"

	"github.com/google/uuid"
)

type fakePool struct {
	profiles []domain.Profile
	err      error
}

func (f *fakePool) ListVerified(_ context.Context) ([]domain.Profile, error) {
	return f.profiles, f.err
}

type fakeRanker struct {
	available bool
	ranking   Ranking
	err       error
	gotBudget string
	gotData   string
}

func (f *fakeRanker) Available() bool { return f.available }

func (f *fakeRanker) Rank(_ context.Context, _, _, budget, profilesData string) (Ranking, error) {
	f.gotBudget = budget
	f.gotData = profilesData
	return f.ranking, f.err
}

func verifiedProfile(name string) domain.Profile {
	summary := name + " summary"
	return domain.Profile{
		UserID:            uuid.New(),
		DisplayName:       name,
		Profession:        "Electrician",
		YearsOfExperience: 5,
		AboutYou:          "About " + name,
		Status:            domain.StatusVerified,
		SummarizedSkills:  &summary,
		Skills:            []domain.Skill{{ID: uuid.New(), Name: "Wiring"}},
	}
}

func newService(pool *fakePool, ranker *fakeRanker) *Service {
	return NewService(pool, ranker, logger.New("test"))
}

func TestFindMatchesRankerUnavailable(t *testing.T) {
	svc := newService(&fakePool{}, &fakeRanker{available: false})

	result, err := svc.FindMatches(context.Background(), "electrical", "fix outlet", "")
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if result.Rationale != RationaleSkipped {
		t.Errorf("rationale = %q, want skipped sentinel", result.Rationale)
	}
	if len(result.Matches) != 0 {
		t.Errorf("matches = %d, want 0", len(result.Matches))
	}
}

func TestFindMatchesEmptyPool(t *testing.T) {
	svc := newService(&fakePool{}, &fakeRanker{available: true})

	result, err := svc.FindMatches(context.Background(), "electrical", "fix outlet", "")
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if result.Rationale != RationaleNoPool {
		t.Errorf("rationale = %q, want %q", result.Rationale, RationaleNoPool)
	}
}

func TestFindMatchesRankerFailure(t *testing.T) {
	pool := &fakePool{profiles: []domain.Profile{verifiedProfile("Ann")}}
	svc := newService(pool, &fakeRanker{available: true, err: errors.New("timeout")})

	result, err := svc.FindMatches(context.Background(), "electrical", "fix outlet", "")
	if err != nil {
		t.Fatalf("capability failure must not propagate: %v", err)
	}
	if result.Rationale != RationaleError {
		t.Errorf("rationale = %q, want %q", result.Rationale, RationaleError)
	}
	if len(result.Matches) != 0 {
		t.Errorf("matches = %d, want 0", len(result.Matches))
	}
}

func TestFindMatchesProfileSerialization(t *testing.T) {
	ann := verifiedProfile("Ann")
	bob := verifiedProfile("Bob")
	ranker := &fakeRanker{available: true}
	svc := newService(&fakePool{profiles: []domain.Profile{ann, bob}}, ranker)

	if _, err := svc.FindMatches(context.Background(), "electrical", "fix outlet", ""); err != nil {
		t.Fatalf("FindMatches: %v", err)
	}

	blocks := strings.Split(ranker.gotData, "\n---\n")
	if len(blocks) != 2 {
		t.Fatalf("profile blocks = %d, want 2", len(blocks))
	}
	want := "ID: " + ann.UserID.String() + ", Name: Ann, Profession: Electrician, YearsExp: 5, Summary: Ann summary, About: About Ann, Skills: [Wiring]"
	if blocks[0] != want {
		t.Errorf("block[0] =\n%s\nwant\n%s", blocks[0], want)
	}
}

func TestFindMatchesPassesBudgetToRanker(t *testing.T) {
	ranker := &fakeRanker{available: true}
	svc := newService(&fakePool{profiles: []domain.Profile{verifiedProfile("Ann")}}, ranker)

	if _, err := svc.FindMatches(context.Background(), "yoga", "need a yoga coach soon", "about 50 EUR/h"); err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if ranker.gotBudget != "about 50 EUR/h" {
		t.Errorf("budget = %q, want %q", ranker.gotBudget, "about 50 EUR/h")
	}
}

func TestFindMatchesSanitization(t *testing.T) {
	ann := verifiedProfile("Ann")
	bob := verifiedProfile("Bob")
	cee := verifiedProfile("Cee")
	dee := verifiedProfile("Dee")
	ranker := &fakeRanker{
		available: true,
		ranking: Ranking{
			RankingRationale: "ranked by fit",
			RankedProfessionals: []RankedCandidate{
				{ProfessionalID: uuid.NewString(), Rank: 1},       // unknown, dropped
				{ProfessionalID: "not-a-uuid", Rank: 1},           // malformed, dropped
				{ProfessionalID: dee.UserID.String(), Rank: 3},
				{ProfessionalID: bob.UserID.String(), Rank: 2},
				{ProfessionalID: ann.UserID.String(), Rank: 1},
				{ProfessionalID: cee.UserID.String(), Rank: 4},
			},
		},
	}
	svc := newService(&fakePool{profiles: []domain.Profile{ann, bob, cee, dee}}, ranker)

	result, err := svc.FindMatches(context.Background(), "electrical", "fix outlet", "")
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if result.Rationale != "ranked by fit" {
		t.Errorf("rationale = %q", result.Rationale)
	}
	if len(result.Matches) != maxMatches {
		t.Fatalf("matches = %d, want %d", len(result.Matches), maxMatches)
	}
	gotOrder := []string{
		result.Matches[0].Professional.DisplayName,
		result.Matches[1].Professional.DisplayName,
		result.Matches[2].Professional.DisplayName,
	}
	wantOrder := []string{"Ann", "Bob", "Dee"}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Errorf("order[%d] = %s, want %s", i, gotOrder[i], wantOrder[i])
		}
	}
}

func TestFindMatchesTieKeepsSubmissionOrder(t *testing.T) {
	ann := verifiedProfile("Ann")
	bob := verifiedProfile("Bob")
	ranker := &fakeRanker{
		available: true,
		ranking: Ranking{
			RankingRationale: "tied",
			RankedProfessionals: []RankedCandidate{
				{ProfessionalID: bob.UserID.String(), Rank: 1},
				{ProfessionalID: ann.UserID.String(), Rank: 1},
			},
		},
	}
	svc := newService(&fakePool{profiles: []domain.Profile{ann, bob}}, ranker)

	result, err := svc.FindMatches(context.Background(), "electrical", "fix outlet", "")
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if result.Matches[0].Professional.DisplayName != "Bob" {
		t.Errorf("tie broken against submission order: got %s first", result.Matches[0].Professional.DisplayName)
	}
}

func TestFindMatchesEmptyRankingUsesFallbackRationale(t *testing.T) {
	ann := verifiedProfile("Ann")
	ranker := &fakeRanker{available: true, ranking: Ranking{}}
	svc := newService(&fakePool{profiles: []domain.Profile{ann}}, ranker)

	result, err := svc.FindMatches(context.Background(), "electrical", "fix outlet", "")
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if result.Rationale != RationaleNoMatches {
		t.Errorf("rationale = %q, want %q", result.Rationale, RationaleNoMatches)
	}
}
