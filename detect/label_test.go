package detect

import (
	"regexp"
	"testing"
)

func TestLabelKindString(t *testing.T) {
	tests := []struct {
		kind     LabelKind
		expected string
	}{
		{LabelNone, "none"},
		{LabelNumbered, "numbered"},
		{LabelLettered, "lettered"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("LabelKind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestLabelClassifier(t *testing.T) {
	c := NewLabelClassifier()

	tests := []struct {
		text string
		want LabelKind
	}{
		{"1. First question", LabelNumbered},
		{"12) Twelfth", LabelNumbered},
		{"   3. indented", LabelNumbered},
		{"(a) label line", LabelLettered},
		{"[b] bracketed", LabelLettered},
		{"c. dotted", LabelLettered},
		{"d) paren", LabelLettered},
		{"Q1. marker text", LabelNone},
		{"A. uppercase", LabelNone},
		{"(a)", LabelNone},
		{"1.5 metres", LabelNone},
		{"ab) two letters", LabelNone},
		{"continuation text", LabelNone},
		{"", LabelNone},
	}

	for _, tt := range tests {
		if got := c.Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
		}
		if got := c.IsLabel(tt.text); got != (tt.want != LabelNone) {
			t.Errorf("IsLabel(%q) = %v", tt.text, got)
		}
	}
}

func TestLabelClassifierWithConfig(t *testing.T) {
	c := NewLabelClassifierWithConfig(LabelConfig{
		NumberedPatterns: []*regexp.Regexp{regexp.MustCompile(`^Part \d+\s`)},
	})

	if !c.IsLabel("Part 2 Mechanics") {
		t.Error("expected custom numbered pattern to match")
	}
	if c.IsLabel("(a) lettered") {
		t.Error("expected lettered labels to be disabled")
	}
}
