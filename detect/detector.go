package detect

import "github.com/tsawler/reveal/model"

// Result is the outcome of detection on one page
type Result struct {
	// Regions are the answer regions in fragment order
	Regions []model.AnswerRegion

	// Matches is the number of fragments that matched a pattern
	Matches int

	// Dropped counts matches whose fragment could not be positioned
	Dropped int
}

// Detector runs the matcher and region builder over a page. A Detector
// holds only configuration and is safe for concurrent use.
type Detector struct {
	config Config
	labels LabelConfig
}

// NewDetector creates a detector with default configuration
func NewDetector() *Detector {
	return &Detector{
		config: DefaultConfig(),
		labels: DefaultLabelConfig(),
	}
}

// NewDetectorWithConfig creates a detector with custom tolerances
func NewDetectorWithConfig(config Config) *Detector {
	return &Detector{
		config: config,
		labels: DefaultLabelConfig(),
	}
}

// WithLabels returns a copy of the detector using custom label patterns
func (d *Detector) WithLabels(labels LabelConfig) *Detector {
	return &Detector{config: d.config, labels: labels}
}

// Config returns the detector's tolerances
func (d *Detector) Config() Config {
	return d.config
}

// Detect returns the answer regions on page for the given patterns, which
// must already be normalized with NormalizePatterns.
func (d *Detector) Detect(page *model.Page, patterns []string) []model.AnswerRegion {
	return d.Analyze(page, patterns).Regions
}

// Analyze is Detect with match statistics
func (d *Detector) Analyze(page *model.Page, patterns []string) Result {
	if page == nil || len(patterns) == 0 {
		return Result{}
	}

	matcher := NewMatcher(patterns)
	builder := NewRegionBuilder(d.config, NewLabelClassifierWithConfig(d.labels), matcher)

	matches := matcher.Match(page.Fragments)
	result := Result{Matches: len(matches)}
	for _, m := range matches {
		bbox, ok := builder.Build(page.Fragments, page.Viewport, m)
		if !ok {
			result.Dropped++
			continue
		}
		result.Regions = append(result.Regions, model.AnswerRegion{
			Page:          page.Number,
			FragmentIndex: m.FragmentIndex,
			Pattern:       m.Pattern,
			BBox:          bbox,
		})
	}
	return result
}
