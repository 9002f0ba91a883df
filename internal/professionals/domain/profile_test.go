package domain

import (
	"reflect"
	"testing"
)

func TestCanonicalSkillNames(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"trims whitespace", []string{"  Wiring  ", "Pipe Fitting"}, []string{"Wiring", "Pipe Fitting"}},
		{"drops empties", []string{"Wiring", "", "   "}, []string{"Wiring"}},
		{"dedupes case-insensitively", []string{"Wiring", "wiring", "WIRING"}, []string{"Wiring"}},
		{"first casing wins", []string{"yoga instruction", "Yoga Instruction"}, []string{"yoga instruction"}},
		{"preserves order", []string{"C", "a", "B", "A"}, []string{"C", "a", "B"}},
		{"nil input", nil, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CanonicalSkillNames(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("CanonicalSkillNames(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestCanonicalSkillNamesIdempotent(t *testing.T) {
	once := CanonicalSkillNames([]string{" Strength Training ", "strength training", "Nutrition", ""})
	twice := CanonicalSkillNames(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed the set: %v -> %v", once, twice)
	}
}
