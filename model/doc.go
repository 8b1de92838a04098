// Package model provides the data types shared by the decoder, the detector
// and the overlay renderers.
//
// # Fragments and Pages
//
// A [Page] holds the [Viewport] it is rendered with and its [TextFragment]
// values in content order:
//
//	vp, err := model.NewViewport([4]float64{0, 0, 612, 792}, model.DefaultScale, 0)
//	page := model.NewPage(vp)
//	page.AddFragment(model.TextFragment{Text: "Answer: 42", Transform: m, Width: 60})
//
// A fragment's Transform maps its local coordinates to page space; the
// viewport's Transform maps page space to page pixels. Both are
// [seehuhn.de/go/geom/matrix.Matrix] values in the PDF row-vector convention,
// so a.Mul(b) applies a first.
//
// # Geometry
//
// [BBox] is a rectangle in page-pixel space (Y grows downwards).
//
// # Regions
//
// [AnswerRegion] is the output of detection: one rectangle per pattern match,
// tagged with its page, fragment index, and pattern.
package model
