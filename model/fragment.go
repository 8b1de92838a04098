package model

import (
	"strings"

	"seehuhn.de/go/geom/matrix"
)

// TextFragment is one run of text at a fixed position and orientation, as
// produced by the document decoder. The detection code never modifies it.
type TextFragment struct {
	// Text is the raw fragment content, possibly with surrounding whitespace
	Text string

	// Transform maps fragment-local coordinates to page space
	Transform matrix.Matrix

	// Width is the advance width of the run in unscaled text space
	Width float64

	// Height is the height reported by the decoder (informational)
	Height float64

	// FontName is the decoder's font identifier, if any
	FontName string

	// HasEOL is set when the decoder saw a line break after this run
	HasEOL bool
}

// IsBlank reports whether the fragment has no visible text
func (f TextFragment) IsBlank() bool {
	return strings.TrimSpace(f.Text) == ""
}
