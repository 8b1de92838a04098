package reveal

import (
	"github.com/tsawler/reveal/detect"
	"github.com/tsawler/reveal/format"
	"github.com/tsawler/reveal/model"
)

// ExtractOptions holds configuration for region detection.
type ExtractOptions struct {
	// Page selection (1-indexed, nil means all pages)
	pages []int

	// Patterns in priority order, as supplied
	patterns []string

	// Decoding
	format format.Format
	scale  float64

	// Detection tolerances and label patterns
	config detect.Config
	labels detect.LabelConfig

	// Maximum pages processed at once (0 means GOMAXPROCS)
	concurrency int
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:       nil,
		patterns:    nil,
		format:      format.Unknown,
		scale:       model.DefaultScale,
		config:      detect.DefaultConfig(),
		labels:      detect.DefaultLabelConfig(),
		concurrency: 0,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		format:      o.format,
		scale:       o.scale,
		config:      o.config,
		labels:      o.labels,
		concurrency: o.concurrency,
	}

	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	if o.patterns != nil {
		newOpts.patterns = make([]string, len(o.patterns))
		copy(newOpts.patterns, o.patterns)
	}

	return newOpts
}
