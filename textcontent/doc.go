// Package textcontent decodes per-page text content batches into
// [model.Document] values.
//
// A batch lists, for every page, the visible page area and the positioned
// text runs a document decoder extracted from it (the shape of a pdf.js
// getTextContent result):
//
//	{
//	  "pages": [{
//	    "pageNumber": 1,
//	    "view": [0, 0, 612, 792],
//	    "items": [{"str": "Answer: 42", "transform": [12, 0, 0, 12, 72, 684], "width": 62}]
//	  }]
//	}
//
// Batches may be JSON or MessagePack, and may be a bare array of pages:
//
//	doc, warnings, err := textcontent.Load("answers.json", textcontent.Options{})
//
// Items with a malformed transform are skipped and reported as [Warning]
// values; structural problems such as a missing view box are errors.
package textcontent
