package model

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
)

// DefaultScale is the CSS scale pages are rendered at when none is given
const DefaultScale = 1.5

// Viewport maps page space (PDF user units, Y up) to page-pixel space
// (Y down, origin at the top-left corner of the rendered page).
type Viewport struct {
	// Transform composes after a fragment's own transform
	Transform matrix.Matrix

	// Scale is the user-unit to pixel factor
	Scale float64

	// Width and Height are the rendered page size in pixels
	Width  float64
	Height float64

	// Rotation is the clockwise page rotation in degrees (0, 90, 180, 270)
	Rotation int
}

// NewViewport builds the viewport for a page whose visible area is viewBox
// ([x0 y0 x1 y1] in user units), rendered at the given scale and rotation.
func NewViewport(viewBox [4]float64, scale float64, rotation int) (Viewport, error) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return Viewport{}, fmt.Errorf("invalid viewport scale %v", scale)
	}

	rotation %= 360
	if rotation < 0 {
		rotation += 360
	}

	var a, b, c, d float64
	switch rotation {
	case 0:
		a, b, c, d = 1, 0, 0, -1
	case 90:
		a, b, c, d = 0, 1, 1, 0
	case 180:
		a, b, c, d = -1, 0, 0, 1
	case 270:
		a, b, c, d = 0, -1, -1, 0
	default:
		return Viewport{}, fmt.Errorf("invalid page rotation %d: must be a multiple of 90", rotation)
	}

	centerX := (viewBox[0] + viewBox[2]) / 2
	centerY := (viewBox[1] + viewBox[3]) / 2
	boxWidth := math.Abs(viewBox[2] - viewBox[0])
	boxHeight := math.Abs(viewBox[3] - viewBox[1])

	var offsetX, offsetY, width, height float64
	if a == 0 {
		// Quarter turns swap the axes.
		offsetX = math.Abs(centerY-viewBox[1]) * scale
		offsetY = math.Abs(centerX-viewBox[0]) * scale
		width = boxHeight * scale
		height = boxWidth * scale
	} else {
		offsetX = math.Abs(centerX-viewBox[0]) * scale
		offsetY = math.Abs(centerY-viewBox[1]) * scale
		width = boxWidth * scale
		height = boxHeight * scale
	}

	return Viewport{
		Transform: matrix.Matrix{
			a * scale,
			b * scale,
			c * scale,
			d * scale,
			offsetX - a*scale*centerX - c*scale*centerY,
			offsetY - b*scale*centerX - d*scale*centerY,
		},
		Scale:    scale,
		Width:    width,
		Height:   height,
		Rotation: rotation,
	}, nil
}
