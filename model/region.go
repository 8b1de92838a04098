package model

// AnswerRegion is the rectangle covering the answer that follows one
// pattern match. Regions are recomputed on every detection pass.
type AnswerRegion struct {
	// Page is the 1-indexed page number
	Page int `json:"page" msgpack:"page"`

	// FragmentIndex is the index of the matched fragment within the page
	FragmentIndex int `json:"fragment" msgpack:"fragment"`

	// Pattern is the pattern that matched
	Pattern string `json:"pattern" msgpack:"pattern"`

	// BBox is the region in page-pixel space
	BBox BBox `json:"bbox" msgpack:"bbox"`
}
