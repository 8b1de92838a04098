package reveal

import (
	"fmt"
	"sync"

	"github.com/tsawler/reveal/format"
	"github.com/tsawler/reveal/model"
	"github.com/tsawler/reveal/textcontent"
)

// source decodes the input at most once. Extractors cloned from each other
// share a source until a decoding option changes, so concurrent terminal
// operations on one Extractor decode the file once.
type source struct {
	once     sync.Once
	filename string
	opts     textcontent.Options

	doc      *model.Document
	warnings []Warning
	err      error
}

func newFileSource(filename string, f format.Format, scale float64) *source {
	return &source{
		filename: filename,
		opts:     textcontent.Options{Format: f, Scale: scale},
	}
}

func newDocumentSource(doc *model.Document) *source {
	s := &source{doc: doc}
	s.once.Do(func() {})
	return s
}

// load returns the decoded document. The warnings slice is a copy and may
// be modified by the caller.
func (s *source) load() (*model.Document, []Warning, error) {
	s.once.Do(func() {
		if s.filename == "" {
			s.err = fmt.Errorf("no filename specified")
			return
		}
		s.doc, s.warnings, s.err = textcontent.Load(s.filename, s.opts)
	})
	return s.doc, append([]Warning(nil), s.warnings...), s.err
}
