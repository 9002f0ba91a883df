// Package matching turns a service request into a ranked shortlist of
// verified professionals. It sits between the request lifecycle and the
// ranking capability and never lets a capability failure escape: every
// outcome is a valid MatchResult.
package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"fitconnect-backend/internal/professionals/domain"
	"fitconnect-backend/platform/logger"

	"github.com/google/uuid"
)

// Degraded-path rationales. These are persisted on the request as the
// matching explanation, so clients see why the shortlist is empty.
const (
	RationaleSkipped   = "LLM matching skipped: API key not configured."
	RationaleNoPool    = "No verified professionals available."
	RationaleError     = "Error during LLM matching process."
	RationaleNoMatches = "LLM provided no suitable matches."
)

// maxMatches caps the shortlist regardless of what the ranker returns.
const maxMatches = 3

// CandidatePool supplies the verified professionals eligible for matching.
type CandidatePool interface {
	ListVerified(ctx context.Context) ([]domain.Profile, error)
}

// RankedCandidate is one entry of the ranker's response.
type RankedCandidate struct {
	ProfessionalID string `json:"professionalId"`
	Rank           int    `json:"rank"`
	Rationale      string `json:"individualRationale,omitempty"`
}

// Ranking is the ranker's full response.
type Ranking struct {
	RankingRationale    string            `json:"rankingRationale"`
	RankedProfessionals []RankedCandidate `json:"rankedProfessionals"`
}

// Ranker is the LLM ranking capability.
type Ranker interface {
	Rank(ctx context.Context, category, description, budget, profilesData string) (Ranking, error)
	Available() bool
}

// Match is one shortlisted professional.
type Match struct {
	Professional domain.Profile
	Rank         int
	Rationale    string
}

// MatchResult is the adapter's outcome. An empty Matches slice with a
// rationale is a legitimate result, not an error.
type MatchResult struct {
	Rationale string
	Matches   []Match
}

type Service struct {
	pool   CandidatePool
	ranker Ranker
	log    *logger.Logger
}

func NewService(pool CandidatePool, ranker Ranker, log *logger.Logger) *Service {
	return &Service{pool: pool, ranker: ranker, log: log}
}

// FindMatches produces the shortlist for a request. The ranker's output is
// sanitized: ids that don't resolve to a pool member are dropped, order is
// by ascending rank with submission order breaking ties, and the list is
// capped at maxMatches.
func (s *Service) FindMatches(ctx context.Context, category, description, budget string) (MatchResult, error) {
	if !s.ranker.Available() {
		s.log.Warn("match ranking capability unavailable")
		return MatchResult{Rationale: RationaleSkipped}, nil
	}

	pool, err := s.pool.ListVerified(ctx)
	if err != nil {
		return MatchResult{}, fmt.Errorf("load candidate pool: %w", err)
	}
	if len(pool) == 0 {
		return MatchResult{Rationale: RationaleNoPool}, nil
	}

	byID := make(map[uuid.UUID]domain.Profile, len(pool))
	for _, p := range pool {
		byID[p.UserID] = p
	}

	ranking, err := s.ranker.Rank(ctx, category, description, budget, serializeProfiles(pool))
	if err != nil {
		s.log.CapabilityFailure("match_ranking", err)
		return MatchResult{Rationale: RationaleError}, nil
	}

	if len(ranking.RankedProfessionals) == 0 {
		rationale := ranking.RankingRationale
		if rationale == "" {
			rationale = RationaleNoMatches
		}
		return MatchResult{Rationale: rationale}, nil
	}

	matches := s.sanitize(ranking.RankedProfessionals, byID)
	return MatchResult{Rationale: ranking.RankingRationale, Matches: matches}, nil
}

func (s *Service) sanitize(ranked []RankedCandidate, byID map[uuid.UUID]domain.Profile) []Match {
	// Stable sort keeps the ranker's submission order for equal ranks.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rank < ranked[j].Rank
	})

	var matches []Match
	for _, candidate := range ranked {
		id, err := uuid.Parse(candidate.ProfessionalID)
		if err != nil {
			s.log.Warn("ranker returned malformed professional id", "id", candidate.ProfessionalID)
			continue
		}
		profile, ok := byID[id]
		if !ok {
			s.log.Warn("ranker returned unknown professional id", "id", candidate.ProfessionalID)
			continue
		}
		matches = append(matches, Match{
			Professional: profile,
			Rank:         candidate.Rank,
			Rationale:    candidate.Rationale,
		})
		if len(matches) == maxMatches {
			break
		}
	}
	return matches
}

// serializeProfiles renders the pool in the line format the ranking prompt
// expects, one profile per block.
func serializeProfiles(pool []domain.Profile) string {
	blocks := make([]string, len(pool))
	for i, p := range pool {
		blocks[i] = fmt.Sprintf("ID: %s, Name: %s, Profession: %s, YearsExp: %d, Summary: %s, About: %s, Skills: [%s]",
			p.UserID,
			p.DisplayName,
			p.Profession,
			p.YearsOfExperience,
			orNA(stringOrEmpty(p.SummarizedSkills)),
			orNA(p.AboutYou),
			skillList(p.Skills),
		)
	}
	return strings.Join(blocks, "\n---\n")
}

func skillList(skills []domain.Skill) string {
	if len(skills) == 0 {
		return "N/A"
	}
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
