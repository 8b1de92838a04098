package reveal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/reveal/detect"
	"github.com/tsawler/reveal/format"
	"github.com/tsawler/reveal/model"
	"github.com/tsawler/reveal/overlay"
)

// ErrPageOutOfRange is returned when a selected page is not in the document
var ErrPageOutOfRange = errors.New("page out of range")

// PageResult holds the detection outcome for one page
type PageResult struct {
	Page    int
	Regions []model.AnswerRegion

	// Matches is the number of fragments that matched a pattern
	Matches int

	// Dropped counts matches whose fragment could not be positioned
	Dropped int
}

// Extractor provides a fluent interface for finding answer regions.
// Each configuration method returns a new Extractor instance, and the
// input is decoded at most once, so an Extractor is safe for concurrent use.
type Extractor struct {
	// Source
	filename string
	src      *source

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// The source is shared; its document is never mutated after loading.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		src:      e.src,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// reopen gives a file-backed Extractor a fresh source after a decoding
// option changed.
func (e *Extractor) reopen() {
	if e.filename != "" {
		e.src = newFileSource(e.filename, e.options.format, e.options.scale)
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Patterns sets the answer markers to search for, in priority order.
// Patterns are trimmed and lower-cased; empty entries are dropped.
// Each call replaces the previous list.
//
// Example:
//
//	regions, _, err := reveal.Open("key.json").Patterns("answer:", "solution:").Regions()
func (e *Extractor) Patterns(patterns ...string) *Extractor {
	newExt := e.clone()
	newExt.options.patterns = append([]string(nil), patterns...)
	return newExt
}

// Pages specifies which pages to search (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	regions, _, err := reveal.Open("key.json").Patterns("answer:").Pages(1, 3).Regions()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to search (1-indexed, inclusive).
//
// Example:
//
//	regions, _, err := reveal.Open("key.json").Patterns("answer:").PageRange(2, 5).Regions()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	if start > end {
		newExt.err = fmt.Errorf("invalid page range %d-%d: start is after end", start, end)
		return newExt
	}
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// Scale sets the viewport pixel scale used when decoding the input file.
// It has no effect on an Extractor created with FromDocument.
func (e *Extractor) Scale(scale float64) *Extractor {
	newExt := e.clone()
	if scale <= 0 {
		newExt.err = fmt.Errorf("invalid scale %v: must be positive", scale)
		return newExt
	}
	newExt.options.scale = scale
	newExt.reopen()
	return newExt
}

// Format forces the input format instead of detecting it from the file
// extension or content.
func (e *Extractor) Format(f format.Format) *Extractor {
	newExt := e.clone()
	newExt.options.format = f
	newExt.reopen()
	return newExt
}

// WithConfig sets the detection tolerances.
//
// Example:
//
//	cfg := detect.DefaultConfig()
//	cfg.ColumnSlack = 8
//	regions, _, err := reveal.Open("key.json").Patterns("answer:").WithConfig(cfg).Regions()
func (e *Extractor) WithConfig(config detect.Config) *Extractor {
	newExt := e.clone()
	if err := config.Validate(); err != nil {
		newExt.err = err
		return newExt
	}
	newExt.options.config = config
	return newExt
}

// WithLabels sets the patterns that recognize numbered and lettered items,
// which bound answers.
func (e *Extractor) WithLabels(labels detect.LabelConfig) *Extractor {
	newExt := e.clone()
	newExt.options.labels = labels
	return newExt
}

// Concurrency limits how many pages are processed at once. Zero or a
// negative value means runtime.GOMAXPROCS(0).
func (e *Extractor) Concurrency(n int) *Extractor {
	newExt := e.clone()
	newExt.options.concurrency = n
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Document returns the decoded document.
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	return e.src.load()
}

// PageCount returns the number of pages in the document.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	doc, _, err := e.src.load()
	if err != nil {
		return 0, err
	}
	return doc.PageCount(), nil
}

// Regions returns the answer regions of the selected pages in page order,
// and within a page in fragment order.
//
// Example:
//
//	regions, warnings, err := reveal.Open("key.json").Patterns("answer:").Regions()
func (e *Extractor) Regions() ([]model.AnswerRegion, []Warning, error) {
	return e.RegionsContext(context.Background())
}

// RegionsContext is Regions with cancellation. The context is checked
// between pages.
func (e *Extractor) RegionsContext(ctx context.Context) ([]model.AnswerRegion, []Warning, error) {
	results, warnings, err := e.PageResults(ctx)
	if err != nil {
		return nil, warnings, err
	}

	var regions []model.AnswerRegion
	for _, r := range results {
		regions = append(regions, r.Regions...)
	}
	return regions, warnings, nil
}

// PageResults runs detection on every selected page and returns one
// result per page in page order. Pages are processed concurrently; the
// output is identical to a sequential run.
func (e *Extractor) PageResults(ctx context.Context) ([]PageResult, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	doc, warnings, err := e.src.load()
	if err != nil {
		return nil, warnings, err
	}

	pages, err := e.resolvePages(doc)
	if err != nil {
		return nil, warnings, err
	}

	patterns := detect.NormalizePatterns(e.options.patterns)
	detector := detect.NewDetectorWithConfig(e.options.config).WithLabels(e.options.labels)
	results := make([]PageResult, len(pages))

	limit := e.options.concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, page := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := detector.Analyze(page, patterns)
			results[i] = PageResult{
				Page:    page.Number,
				Regions: res.Regions,
				Matches: res.Matches,
				Dropped: res.Dropped,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, warnings, err
	}

	return results, warnings, nil
}

// Render detects regions and writes them through renderer. Only the
// selected pages are rendered.
//
// Example:
//
//	f, _ := os.Create("key.html")
//	defer f.Close()
//	_, err := reveal.Open("key.json").
//	    Patterns("answer:").
//	    Render(f, overlay.NewHTMLRenderer(overlay.HTMLOptions{}))
func (e *Extractor) Render(w io.Writer, renderer overlay.Renderer) ([]Warning, error) {
	regions, warnings, err := e.Regions()
	if err != nil {
		return warnings, err
	}

	doc, _, err := e.src.load()
	if err != nil {
		return warnings, err
	}
	pages, err := e.resolvePages(doc)
	if err != nil {
		return warnings, err
	}
	view := &model.Document{Metadata: doc.Metadata, Pages: pages}

	if err := renderer.Render(w, view, regions); err != nil {
		return warnings, fmt.Errorf("failed to render overlay: %w", err)
	}
	return warnings, nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// resolvePages returns the selected pages in page-number order. If no
// pages were specified, all pages are returned.
func (e *Extractor) resolvePages(doc *model.Document) ([]*model.Page, error) {
	if len(e.options.pages) == 0 {
		return doc.Pages, nil
	}

	numbers := make([]int, 0, len(e.options.pages))
	seen := make(map[int]bool)
	for _, n := range e.options.pages {
		if !seen[n] {
			seen[n] = true
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)

	selected := make([]*model.Page, 0, len(numbers))
	for _, n := range numbers {
		page := doc.GetPage(n)
		if page == nil {
			return nil, fmt.Errorf("page %d (document has %d pages): %w", n, doc.PageCount(), ErrPageOutOfRange)
		}
		selected = append(selected, page)
	}
	return selected, nil
}
