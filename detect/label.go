package detect

import (
	"regexp"
	"strings"
)

// LabelKind identifies the kind of section or sub-part label
type LabelKind int

const (
	LabelNone     LabelKind = iota
	LabelNumbered           // 1. or 12)
	LabelLettered           // a. (b) [c]
)

// String returns a string representation of the label kind
func (k LabelKind) String() string {
	switch k {
	case LabelNumbered:
		return "numbered"
	case LabelLettered:
		return "lettered"
	default:
		return "none"
	}
}

// LabelConfig holds the patterns that mark the start of a numbered item or
// lettered sub-item. Patterns are matched against trimmed fragment text.
type LabelConfig struct {
	NumberedPatterns []*regexp.Regexp
	LetterPatterns   []*regexp.Regexp
}

// DefaultLabelConfig returns the numbered and lettered item patterns
func DefaultLabelConfig() LabelConfig {
	return LabelConfig{
		NumberedPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\d+[.)]\s`),
		},
		LetterPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^[(\[]?[a-z][)\].]\s`),
		},
	}
}

// LabelClassifier recognizes list-style labels that bound an answer
type LabelClassifier struct {
	config LabelConfig
}

// NewLabelClassifier creates a classifier with the default patterns
func NewLabelClassifier() *LabelClassifier {
	return &LabelClassifier{config: DefaultLabelConfig()}
}

// NewLabelClassifierWithConfig creates a classifier with custom patterns
func NewLabelClassifierWithConfig(config LabelConfig) *LabelClassifier {
	return &LabelClassifier{config: config}
}

// Classify returns the kind of label text starts with, if any
func (c *LabelClassifier) Classify(text string) LabelKind {
	text = strings.TrimSpace(text)
	if text == "" {
		return LabelNone
	}
	for _, pattern := range c.config.NumberedPatterns {
		if pattern.MatchString(text) {
			return LabelNumbered
		}
	}
	for _, pattern := range c.config.LetterPatterns {
		if pattern.MatchString(text) {
			return LabelLettered
		}
	}
	return LabelNone
}

// IsLabel reports whether text starts with a numbered or lettered label
func (c *LabelClassifier) IsLabel(text string) bool {
	return c.Classify(text) != LabelNone
}
