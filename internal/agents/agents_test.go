package agents

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseRanking(t *testing.T) {
	raw := `{
		"rankingRationale": "Ranked by skill alignment.",
		"rankedProfessionals": [
			{"professionalId": "5b4c9d1e-0000-0000-0000-000000000001", "rank": 1, "individualRationale": "Direct match."},
			{"professionalId": "5b4c9d1e-0000-0000-0000-000000000002", "rank": 2}
		]
	}`

	ranking, err := parseRanking(raw)
	if err != nil {
		t.Fatalf("parseRanking: %v", err)
	}
	if ranking.RankingRationale != "Ranked by skill alignment." {
		t.Errorf("rationale = %q", ranking.RankingRationale)
	}
	if len(ranking.RankedProfessionals) != 2 {
		t.Fatalf("ranked = %d, want 2", len(ranking.RankedProfessionals))
	}
	if ranking.RankedProfessionals[0].Rank != 1 || ranking.RankedProfessionals[0].Rationale != "Direct match." {
		t.Errorf("first candidate = %+v", ranking.RankedProfessionals[0])
	}
}

func TestParseRankingCodeFence(t *testing.T) {
	raw := "```json\n{\"rankingRationale\": \"r\", \"rankedProfessionals\": []}\n```"
	ranking, err := parseRanking(raw)
	if err != nil {
		t.Fatalf("parseRanking: %v", err)
	}
	if ranking.RankingRationale != "r" {
		t.Errorf("rationale = %q", ranking.RankingRationale)
	}
}

func TestParseRankingMalformed(t *testing.T) {
	for _, raw := range []string{"", "not json", "{\"rankingRationale\": 3}"} {
		if _, err := parseRanking(raw); err == nil {
			t.Errorf("parseRanking(%q) should fail", raw)
		}
	}
}

func TestParseSkillList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Yoga Instruction, Strength Training, Nutrition Planning", []string{"Yoga Instruction", "Strength Training", "Nutrition Planning"}},
		{"- Pipe Fitting\n- Leak Detection", []string{"Pipe Fitting", "Leak Detection"}},
		{"Wiring.", []string{"Wiring"}},
		{"  ", nil},
	}
	for _, tc := range cases {
		if got := parseSkillList(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("parseSkillList(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMatcherPromptCarriesRequestFields(t *testing.T) {
	prompt := buildMatcherPrompt("Yoga", "need a yoga coach soon", "about 50 EUR/h", "ID: 1")
	for _, want := range []string{
		"Category: Yoga",
		"Description: need a yoga coach soon",
		"Budget: about 50 EUR/h",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestDisabledAgentsReportUnavailable(t *testing.T) {
	analyzer := &ProfileAnalyzer{}
	if analyzer.Available() {
		t.Error("analyzer without runner should be unavailable")
	}
	matcher := &ProfessionalMatcher{}
	if matcher.Available() {
		t.Error("matcher without runner should be unavailable")
	}
}
