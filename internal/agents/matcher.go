package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fitconnect-backend/internal/matching"
	"fitconnect-backend/platform/ai/openaichat"
	"fitconnect-backend/platform/config"
)

// ProfessionalMatcher is the ranking capability behind the matching
// adapter. The model is forced into JSON output mode and the response is
// parsed strictly; anything that doesn't deserialize is an error, which the
// matching adapter converts to its sentinel rationale.
type ProfessionalMatcher struct {
	runner *agentRunner
}

// NewProfessionalMatcher creates the matcher. A nil runner means disabled.
func NewProfessionalMatcher(cfg config.AIConfig) (*ProfessionalMatcher, error) {
	if !cfg.IsAIEnabled() {
		return &ProfessionalMatcher{}, nil
	}

	llm := openaichat.New(openaichat.Config{
		APIKey:    cfg.GetAIAPIKey(),
		BaseURL:   cfg.GetAIBaseURL(),
		Model:     cfg.GetAIModel(),
		ForceJSON: true,
		Timeout:   cfg.GetAITimeout(),
	})

	r, err := newAgentRunner(
		"professional-matcher",
		"ProfessionalMatcher",
		"Ranks verified professionals against a client's service request.",
		matcherSystemPrompt(),
		llm,
	)
	if err != nil {
		return nil, err
	}
	return &ProfessionalMatcher{runner: r}, nil
}

// Available reports whether the capability can be called.
func (m *ProfessionalMatcher) Available() bool {
	return m.runner != nil
}

// Rank asks the model for a ranked shortlist and parses its JSON response.
func (m *ProfessionalMatcher) Rank(ctx context.Context, category, description, budget, profilesData string) (matching.Ranking, error) {
	raw, err := m.runner.run(ctx, buildMatcherPrompt(category, description, budget, profilesData))
	if err != nil {
		return matching.Ranking{}, err
	}
	return parseRanking(raw)
}

// parseRanking deserializes the model output. Markdown code fences are
// stripped first; some models wrap JSON in them even when told not to.
func parseRanking(raw string) (matching.Ranking, error) {
	cleaned := stripCodeFence(raw)
	var ranking matching.Ranking
	if err := json.Unmarshal([]byte(cleaned), &ranking); err != nil {
		return matching.Ranking{}, fmt.Errorf("parse ranking response: %w", err)
	}
	return ranking, nil
}

func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
