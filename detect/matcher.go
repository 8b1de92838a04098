package detect

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/reveal/model"
)

// Match records a pattern occurrence inside one fragment
type Match struct {
	// FragmentIndex is the index of the fragment within the page
	FragmentIndex int

	// Pattern is the pattern that matched
	Pattern string

	// MatchEnd is the rune offset just past the matched text, measured in the
	// fragment text as given. Matching runs on folded text, whose rune count
	// can differ (lower-casing "İ" yields two runes).
	MatchEnd int

	// TextLength is the rune length of the fragment text as given
	TextLength int
}

// Ratio is the fraction of the fragment that precedes the end of the match
func (m Match) Ratio() float64 {
	if m.TextLength == 0 {
		return 0
	}
	return float64(m.MatchEnd) / float64(m.TextLength)
}

// folder maps text to the form patterns are compared in: NFC, lower case.
type folder struct {
	lower cases.Caser
}

func newFolder() *folder {
	return &folder{lower: cases.Lower(language.Und)}
}

func (f *folder) fold(s string) string {
	return f.lower.String(norm.NFC.String(s))
}

// rawOffset returns how many runes of raw it takes for their folded form to
// cover the first end bytes of fold(raw).
func (f *folder) rawOffset(raw string, end int) int {
	n := 0
	for i := range raw {
		if len(f.fold(raw[:i])) >= end {
			return n
		}
		n++
	}
	return n
}

// NormalizePatterns prepares user-supplied patterns: each is trimmed,
// normalized and lower-cased; empty patterns and repeats are dropped. Order
// is preserved since it decides which pattern wins.
func NormalizePatterns(patterns []string) []string {
	f := newFolder()
	seen := make(map[string]bool, len(patterns))
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = f.fold(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Matcher finds pattern occurrences among a page's fragments.
// A Matcher is not safe for concurrent use.
type Matcher struct {
	patterns []string
	folder   *folder
}

// NewMatcher creates a matcher for patterns already passed through
// NormalizePatterns
func NewMatcher(patterns []string) *Matcher {
	return &Matcher{
		patterns: patterns,
		folder:   newFolder(),
	}
}

// Patterns returns the patterns in priority order
func (m *Matcher) Patterns() []string {
	return m.patterns
}

// Match scans fragments in order and records at most one match per
// fragment: the first pattern, in list order, found in its text.
func (m *Matcher) Match(fragments []model.TextFragment) []Match {
	if len(m.patterns) == 0 {
		return nil
	}

	var matches []Match
	for i, f := range fragments {
		text := m.folder.fold(f.Text)
		for _, p := range m.patterns {
			idx := strings.Index(text, p)
			if idx < 0 {
				continue
			}
			matches = append(matches, Match{
				FragmentIndex: i,
				Pattern:       p,
				MatchEnd:      m.folder.rawOffset(f.Text, idx+len(p)),
				TextLength:    utf8.RuneCountInString(f.Text),
			})
			break
		}
	}
	return matches
}

// ContainsAny reports whether text contains any of the patterns
func (m *Matcher) ContainsAny(text string) bool {
	if len(m.patterns) == 0 {
		return false
	}
	text = m.folder.fold(text)
	for _, p := range m.patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
