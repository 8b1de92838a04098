package overlay

import (
	"io"

	"github.com/tsawler/reveal/model"
)

// DefaultOuterPad is the padding added around every answer region when it
// is drawn
const DefaultOuterPad = 4.0

// Renderer draws answer regions over a document's pages
type Renderer interface {
	Render(w io.Writer, doc *model.Document, regions []model.AnswerRegion) error
}

// groupByPage splits regions by page number, preserving order
func groupByPage(regions []model.AnswerRegion) map[int][]model.AnswerRegion {
	byPage := make(map[int][]model.AnswerRegion)
	for _, r := range regions {
		byPage[r.Page] = append(byPage[r.Page], r)
	}
	return byPage
}
