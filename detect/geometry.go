package detect

import (
	"math"

	"github.com/tsawler/reveal/model"
)

// FragmentBBox places a fragment in page-pixel space. The second result is
// false when the fragment cannot be positioned: blank text, or a transform
// that collapses its width or font height to zero.
func FragmentBBox(f model.TextFragment, vp model.Viewport) (model.BBox, bool) {
	if f.IsBlank() {
		return model.BBox{}, false
	}

	m := f.Transform.Mul(vp.Transform)

	// The length of the vertical basis vector approximates the glyph height.
	fontHeight := math.Hypot(m[2], m[3])
	width := f.Width * vp.Scale
	if !(width > 0) || !(fontHeight > 0) {
		return model.BBox{}, false
	}

	left := m[4]
	top := m[5] - fontHeight
	return model.BBox{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + fontHeight,
	}, true
}
