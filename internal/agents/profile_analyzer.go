package agents

import (
	"context"
	"strings"

	"fitconnect-backend/platform/ai/openaichat"
	"fitconnect-backend/platform/config"
)

// ProfileAnalyzer is the screening capability: it summarizes a
// professional's corpus and extracts a skill list. When no API key is
// configured the analyzer reports unavailable and the screening pipeline
// stores a sentinel summary instead.
type ProfileAnalyzer struct {
	runner *agentRunner
}

// NewProfileAnalyzer creates the analyzer. A nil runner means disabled.
func NewProfileAnalyzer(cfg config.AIConfig) (*ProfileAnalyzer, error) {
	if !cfg.IsAIEnabled() {
		return &ProfileAnalyzer{}, nil
	}

	llm := openaichat.New(openaichat.Config{
		APIKey:  cfg.GetAIAPIKey(),
		BaseURL: cfg.GetAIBaseURL(),
		Model:   cfg.GetAIModel(),
		Timeout: cfg.GetAITimeout(),
	})

	r, err := newAgentRunner(
		"profile-analyzer",
		"ProfileAnalyzer",
		"Summarizes professional expertise and extracts skill lists for verification screening.",
		profileAnalyzerSystemPrompt(),
		llm,
	)
	if err != nil {
		return nil, err
	}
	return &ProfileAnalyzer{runner: r}, nil
}

// Available reports whether the capability can be called.
func (a *ProfileAnalyzer) Available() bool {
	return a.runner != nil
}

// Summarize produces the capability summary for the corpus.
func (a *ProfileAnalyzer) Summarize(ctx context.Context, corpus string) (string, error) {
	return a.runner.run(ctx, buildSummaryPrompt(corpus))
}

// ExtractSkills pulls distinct skill names out of the corpus. The model
// answers with a comma-separated list; parsing tolerates newlines and
// leading list markers.
func (a *ProfileAnalyzer) ExtractSkills(ctx context.Context, corpus string) ([]string, error) {
	raw, err := a.runner.run(ctx, buildSkillsPrompt(corpus))
	if err != nil {
		return nil, err
	}
	return parseSkillList(raw), nil
}

func parseSkillList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	var skills []string
	for _, field := range fields {
		skill := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(field), "-*• "))
		if skill == "" || skill == "." {
			continue
		}
		skills = append(skills, strings.TrimSuffix(skill, "."))
	}
	return skills
}
