package detect

import (
	"testing"

	"seehuhn.de/go/geom/matrix"

	"github.com/tsawler/reveal/model"
)

const (
	testPageWidth  = 600
	testPageHeight = 800
)

// testViewport renders a 600x800 page at scale 1, so page pixels equal
// user units with the Y axis flipped.
func testViewport(t *testing.T) model.Viewport {
	t.Helper()
	vp, err := model.NewViewport([4]float64{0, 0, testPageWidth, testPageHeight}, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	return vp
}

// frag builds a fragment whose pixel box is (left, top, width, height) in
// testViewport.
func frag(text string, left, top, width, height float64) model.TextFragment {
	return model.TextFragment{
		Text:      text,
		Transform: matrix.Matrix{height, 0, 0, height, left, testPageHeight - (top + height)},
		Width:     width,
		Height:    height,
	}
}

func TestFragmentBBox(t *testing.T) {
	vp := testViewport(t)

	bbox, ok := FragmentBBox(frag("Answer: 42", 10, 88, 120, 12), vp)
	if !ok {
		t.Fatal("expected fragment to be positionable")
	}
	want := model.BBox{Left: 10, Top: 88, Right: 130, Bottom: 100}
	if bbox != want {
		t.Errorf("FragmentBBox() = %+v, want %+v", bbox, want)
	}
}

func TestFragmentBBoxScalesWidth(t *testing.T) {
	vp, err := model.NewViewport([4]float64{0, 0, 612, 792}, 1.5, 0)
	if err != nil {
		t.Fatal(err)
	}
	f := model.TextFragment{Text: "x", Transform: matrix.Matrix{10, 0, 0, 10, 100, 700}, Width: 40}

	bbox, ok := FragmentBBox(f, vp)
	if !ok {
		t.Fatal("expected fragment to be positionable")
	}
	// 10pt glyphs at scale 1.5; baseline at (792-700)*1.5 = 138.
	want := model.BBox{Left: 150, Top: 123, Right: 210, Bottom: 138}
	if bbox != want {
		t.Errorf("FragmentBBox() = %+v, want %+v", bbox, want)
	}
}

func TestFragmentBBoxNotPositionable(t *testing.T) {
	vp := testViewport(t)

	tests := []struct {
		name string
		f    model.TextFragment
	}{
		{"empty text", frag("", 10, 10, 50, 12)},
		{"whitespace only", frag("   ", 10, 10, 50, 12)},
		{"zero width", frag("abc", 10, 10, 0, 12)},
		{"negative width", frag("abc", 10, 10, -5, 12)},
		{"degenerate transform", model.TextFragment{Text: "abc", Transform: matrix.Zero, Width: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := FragmentBBox(tt.f, vp); ok {
				t.Error("expected fragment to be rejected")
			}
		})
	}
}
