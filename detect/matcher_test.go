package detect

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tsawler/reveal/model"
)

func texts(ss ...string) []model.TextFragment {
	out := make([]model.TextFragment, len(ss))
	for i, s := range ss {
		out[i] = model.TextFragment{Text: s}
	}
	return out
}

func TestNormalizePatterns(t *testing.T) {
	got := NormalizePatterns([]string{"  Answer: ", "", "   ", "ANSWER:", "Key", "Réponse"})
	want := []string{"answer:", "key", "réponse"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NormalizePatterns() mismatch (-want +got):\n%s", diff)
	}
}

func TestMatcherEmptyPatterns(t *testing.T) {
	m := NewMatcher(nil)
	if got := m.Match(texts("Answer: 42")); got != nil {
		t.Errorf("Match() = %v, want nil", got)
	}
	if m.ContainsAny("Answer: 42") {
		t.Error("ContainsAny() with no patterns should be false")
	}
}

func TestMatcherFirstPatternWins(t *testing.T) {
	m := NewMatcher([]string{"ans", "answer"})
	got := m.Match(texts("Answer here"))

	want := []Match{{FragmentIndex: 0, Pattern: "ans", MatchEnd: 3, TextLength: 11}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Match() mismatch (-want +got):\n%s", diff)
	}
}

func TestMatcherOneMatchPerFragment(t *testing.T) {
	m := NewMatcher([]string{"answer:", "key:"})
	got := m.Match(texts(
		"Key: a  Answer: b",
		"nothing here",
		"ANSWER: c",
		"key: d",
	))

	want := []Match{
		{FragmentIndex: 0, Pattern: "answer:", MatchEnd: 15, TextLength: 17},
		{FragmentIndex: 2, Pattern: "answer:", MatchEnd: 7, TextLength: 9},
		{FragmentIndex: 3, Pattern: "key:", MatchEnd: 4, TextLength: 6},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Match() mismatch (-want +got):\n%s", diff)
	}
}

func TestMatcherRuneOffsets(t *testing.T) {
	m := NewMatcher(NormalizePatterns([]string{"Réponse:"}))
	got := m.Match(texts("RÉPONSE: oui"))

	want := []Match{{FragmentIndex: 0, Pattern: "réponse:", MatchEnd: 8, TextLength: 12}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Match() mismatch (-want +got):\n%s", diff)
	}
}

func TestMatcherOffsetsInRawText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Match
	}{
		// Lower-casing U+0130 produces more runes than the raw text has.
		{"dotted capital I", "İstanbul answer: x", Match{Pattern: "answer:", MatchEnd: 16, TextLength: 18}},
		{"decomposed accent", "Re\u0301ponse answer: x", Match{Pattern: "answer:", MatchEnd: 16, TextLength: 18}},
		{"ascii", "ANSWER: 42", Match{Pattern: "answer:", MatchEnd: 7, TextLength: 10}},
	}

	m := NewMatcher([]string{"answer:"})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(texts(tt.text))
			if diff := cmp.Diff([]Match{tt.want}, got); diff != "" {
				t.Errorf("Match() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatcherNoMatch(t *testing.T) {
	m := NewMatcher([]string{"xyz"})
	if got := m.Match(texts("Answer: 42", "other")); len(got) != 0 {
		t.Errorf("Match() = %v, want none", got)
	}
}

func TestMatchRatio(t *testing.T) {
	tests := []struct {
		m    Match
		want float64
	}{
		{Match{MatchEnd: 5, TextLength: 10}, 0.5},
		{Match{MatchEnd: 10, TextLength: 10}, 1},
		{Match{MatchEnd: 0, TextLength: 0}, 0},
	}

	for _, tt := range tests {
		if got := tt.m.Ratio(); got != tt.want {
			t.Errorf("%+v.Ratio() = %v, want %v", tt.m, got, tt.want)
		}
	}
}
