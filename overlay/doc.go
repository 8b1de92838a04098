// Package overlay draws answer regions over decoded pages.
//
// Two [Renderer] implementations are provided:
//
//   - [HTMLRenderer] writes a standalone page with one clickable mask per
//     region; clicking a mask toggles its "revealed" class
//   - [PNGRenderer] writes a preview image with fragment outlines and
//     numbered masks, useful for checking detection on a new document
//
// Both pad each region by [DefaultOuterPad] unless told otherwise:
//
//	r := overlay.NewHTMLRenderer(overlay.HTMLOptions{TextLayer: true})
//	err := r.Render(w, doc, regions)
package overlay
