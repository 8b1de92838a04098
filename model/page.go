package model

// Page is one decoded page: its viewport and its text fragments in
// content order.
type Page struct {
	Number    int // 1-indexed page number
	Viewport  Viewport
	Fragments []TextFragment
}

// NewPage creates an empty page with the given viewport
func NewPage(viewport Viewport) *Page {
	return &Page{
		Viewport:  viewport,
		Fragments: make([]TextFragment, 0),
	}
}

// AddFragment appends a fragment in content order
func (p *Page) AddFragment(f TextFragment) {
	p.Fragments = append(p.Fragments, f)
}
