// Package reveal provides a fluent API for finding answer regions in
// decoded documents: wherever a marker such as "Answer:" appears, the text
// that follows it is located by geometry alone so it can be masked.
//
// Basic usage:
//
//	regions, warnings, err := reveal.Open("answer-key.json").
//	    Patterns("Answer:").
//	    Regions()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", reveal.FormatWarnings(warnings))
//	}
//
// With options:
//
//	var buf bytes.Buffer
//	_, err := reveal.Open("answer-key.msgpack").
//	    Patterns("answer:", "solution:").
//	    Pages(1, 2).
//	    Scale(2).
//	    Render(&buf, overlay.NewHTMLRenderer(overlay.HTMLOptions{}))
//
// Input files are per-page text content batches (see package textcontent).
// The lower-level detect package works on a single [model.Page].
package reveal

import (
	"github.com/tsawler/reveal/model"
)

// Open returns an Extractor for a text content file. Nothing is read until
// a terminal operation such as Regions() is called.
//
// Example:
//
//	regions, _, err := reveal.Open("answer-key.json").Patterns("answer:").Regions()
func Open(filename string) *Extractor {
	opts := defaultOptions()
	return &Extractor{
		filename: filename,
		src:      newFileSource(filename, opts.format, opts.scale),
		options:  opts,
	}
}

// FromDocument creates an Extractor for an already decoded document.
//
// Example:
//
//	doc, _, err := textcontent.Load("answer-key.json", textcontent.Options{})
//	if err != nil {
//	    // handle error
//	}
//	regions, _, err := reveal.FromDocument(doc).Patterns("answer:").Regions()
func FromDocument(doc *model.Document) *Extractor {
	return &Extractor{
		src:     newDocumentSource(doc),
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := reveal.Must(reveal.Open("answer-key.json").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRegions is a helper that wraps a call to Regions() or Document() and
// panics if the error is non-nil. It discards warnings and returns just the
// value.
//
// Example:
//
//	regions := reveal.MustRegions(reveal.Open("answer-key.json").Patterns("answer:").Regions())
func MustRegions[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
