package detect

import "fmt"

// Config holds the geometric tolerances used when building answer regions.
// Distances are in page pixels; factors are multiples of the matched
// fragment's font height.
type Config struct {
	// AnswerLeftPad is added after the interpolated end of the marker so the
	// region clears the marker glyphs (default: 4px)
	AnswerLeftPad float64 `yaml:"answer_left_pad" toml:"answer_left_pad"`

	// RightMarginRatio places the right edge of every region at this fraction
	// of the viewport width (default: 0.92)
	RightMarginRatio float64 `yaml:"right_margin_ratio" toml:"right_margin_ratio"`

	// ColumnSlack is how far left of the answer start a fragment may begin and
	// still count as part of the answer column (default: 5px)
	ColumnSlack float64 `yaml:"column_slack" toml:"column_slack"`

	// AboveTolerance is the fraction of font height a fragment's bottom must
	// clear the match top by to count as a line above. The same fraction pads
	// the top edge of the region (default: 0.3)
	AboveTolerance float64 `yaml:"above_tolerance" toml:"above_tolerance"`

	// LineMergeFactor bounds how far apart, in font heights, two line tops
	// may be and still merge during the backward scan (default: 2)
	LineMergeFactor float64 `yaml:"line_merge_factor" toml:"line_merge_factor"`

	// ContinuationFactor bounds how far below the match, in font heights, a
	// fragment may start and still continue the answer (default: 1.5)
	ContinuationFactor float64 `yaml:"continuation_factor" toml:"continuation_factor"`

	// EdgePad is added above and below the final region (default: 2px)
	EdgePad float64 `yaml:"edge_pad" toml:"edge_pad"`
}

// DefaultConfig returns the tolerances the heuristics were tuned with
func DefaultConfig() Config {
	return Config{
		AnswerLeftPad:      4,
		RightMarginRatio:   0.92,
		ColumnSlack:        5,
		AboveTolerance:     0.3,
		LineMergeFactor:    2,
		ContinuationFactor: 1.5,
		EdgePad:            2,
	}
}

// Validate reports the first out-of-range setting
func (c Config) Validate() error {
	if c.RightMarginRatio <= 0 || c.RightMarginRatio > 1 {
		return fmt.Errorf("right_margin_ratio must be in (0, 1], got %v", c.RightMarginRatio)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"answer_left_pad", c.AnswerLeftPad},
		{"column_slack", c.ColumnSlack},
		{"above_tolerance", c.AboveTolerance},
		{"line_merge_factor", c.LineMergeFactor},
		{"continuation_factor", c.ContinuationFactor},
		{"edge_pad", c.EdgePad},
	} {
		if f.value < 0 {
			return fmt.Errorf("%s must be non-negative, got %v", f.name, f.value)
		}
	}
	return nil
}
