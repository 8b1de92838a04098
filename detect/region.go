package detect

import (
	"math"

	"github.com/tsawler/reveal/model"
)

// anchor is the geometry of the matched fragment the scans are measured from
type anchor struct {
	bbox       model.BBox
	fontHeight float64
	answerLeft float64
}

// columnEdge is the leftmost start a fragment may have and still belong to
// the answer column
func (a anchor) columnEdge(cfg Config) float64 {
	return a.answerLeft - cfg.ColumnSlack
}

// lineScan accumulates the backward scan. Once done is set no further
// fragment changes it.
type lineScan struct {
	found      bool    // a line above or a label was seen
	done       bool    // the scan reached its boundary
	lineTop    float64 // top of the topmost line merged so far
	lineBottom float64 // bottom of that line, or of the label
}

// step folds one positioned fragment, preceding the match, into the scan
func (s lineScan) step(bbox model.BBox, isLabel bool, a anchor, cfg Config) lineScan {
	if s.done {
		return s
	}

	above := bbox.Bottom < a.bbox.Top-cfg.AboveTolerance*a.fontHeight
	if !above {
		if bbox.Left < a.columnEdge(cfg) {
			// A different column or a margin note such as a question number.
			return s
		}
		if isLabel {
			return lineScan{found: true, done: true, lineTop: bbox.Top, lineBottom: bbox.Bottom}
		}
		return s
	}

	if !s.found {
		return lineScan{found: true, lineTop: bbox.Top, lineBottom: bbox.Bottom}
	}
	if math.Abs(bbox.Top-s.lineTop) > cfg.LineMergeFactor*a.fontHeight {
		s.done = true
		return s
	}
	if bbox.Top < s.lineTop {
		s.lineTop = bbox.Top
		s.lineBottom = bbox.Bottom
	}
	return s
}

// RegionBuilder computes the answer region for one match. It keeps no state
// between calls.
type RegionBuilder struct {
	config  Config
	labels  *LabelClassifier
	matcher *Matcher
}

// NewRegionBuilder creates a builder. The matcher supplies the patterns that
// end an answer when they occur below it.
func NewRegionBuilder(config Config, labels *LabelClassifier, matcher *Matcher) *RegionBuilder {
	return &RegionBuilder{
		config:  config,
		labels:  labels,
		matcher: matcher,
	}
}

// Build returns the answer region for match, or false when the matched
// fragment cannot be positioned.
func (b *RegionBuilder) Build(fragments []model.TextFragment, vp model.Viewport, match Match) (model.BBox, bool) {
	if match.FragmentIndex < 0 || match.FragmentIndex >= len(fragments) {
		return model.BBox{}, false
	}
	bbox, ok := FragmentBBox(fragments[match.FragmentIndex], vp)
	if !ok {
		return model.BBox{}, false
	}

	a := anchor{
		bbox:       bbox,
		fontHeight: bbox.Height(),
		// Assumes uniform glyph widths within the fragment.
		answerLeft: bbox.Left + bbox.Width()*match.Ratio() + b.config.AnswerLeftPad,
	}

	top := b.scanBackward(fragments, vp, match.FragmentIndex, a)
	bottom := b.scanForward(fragments, vp, match.FragmentIndex, a)

	return model.BBox{
		Left:   a.answerLeft,
		Top:    top - b.config.EdgePad,
		Right:  b.config.RightMarginRatio * vp.Width,
		Bottom: bottom + b.config.EdgePad,
	}, true
}

// scanBackward walks the fragments before the match in reverse and returns
// the unpadded top edge of the answer.
func (b *RegionBuilder) scanBackward(fragments []model.TextFragment, vp model.Viewport, index int, a anchor) float64 {
	var s lineScan
	for i := index - 1; i >= 0 && !s.done; i-- {
		f := fragments[i]
		bbox, ok := FragmentBBox(f, vp)
		if !ok {
			continue
		}
		s = s.step(bbox, b.labels.IsLabel(f.Text), a, b.config)
	}

	pad := b.config.AboveTolerance * a.fontHeight
	if !s.found {
		return a.bbox.Top - pad
	}
	// A label on the match's own line must not push the top below the match.
	return math.Min(s.lineBottom+pad, a.bbox.Top)
}

// scanForward walks the fragments after the match and returns the unpadded
// bottom edge of the answer.
func (b *RegionBuilder) scanForward(fragments []model.TextFragment, vp model.Viewport, index int, a anchor) float64 {
	bottom := a.bbox.Bottom
	limit := a.bbox.Bottom + b.config.ContinuationFactor*a.fontHeight

	for _, f := range fragments[index+1:] {
		bbox, ok := FragmentBBox(f, vp)
		if !ok {
			continue
		}
		if bbox.Top > limit || b.labels.IsLabel(f.Text) || b.matcher.ContainsAny(f.Text) {
			break
		}
		if bbox.Left >= a.columnEdge(b.config) && bbox.Bottom > bottom {
			bottom = bbox.Bottom
		}
	}
	return bottom
}
