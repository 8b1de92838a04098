package model

// BBox represents an axis-aligned rectangle in page-pixel space.
// The Y axis grows downwards, so Top <= Bottom for a valid box.
type BBox struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// NewBBox creates a bounding box from its top-left corner and size
func NewBBox(left, top, width, height float64) BBox {
	return BBox{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

// Width returns the horizontal extent
func (b BBox) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent
func (b BBox) Height() float64 {
	return b.Bottom - b.Top
}

// Intersects checks if two bounding boxes intersect
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right < other.Left ||
		b.Left > other.Right ||
		b.Bottom < other.Top ||
		b.Top > other.Bottom)
}

// Expand grows the bounding box by a margin on all sides
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		Left:   b.Left - margin,
		Top:    b.Top - margin,
		Right:  b.Right + margin,
		Bottom: b.Bottom + margin,
	}
}

// IsValid returns true if the bounding box has positive dimensions
func (b BBox) IsValid() bool {
	return b.Right > b.Left && b.Bottom > b.Top
}
