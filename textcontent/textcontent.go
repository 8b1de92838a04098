package textcontent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
	"seehuhn.de/go/geom/matrix"

	"github.com/tsawler/reveal/format"
	"github.com/tsawler/reveal/model"
)

var (
	// ErrUnknownFormat is returned when the input format cannot be determined
	ErrUnknownFormat = errors.New("unknown text content format")

	// ErrUnsupportedFormat is returned for inputs that need a document decoder
	// first, such as raw PDF files
	ErrUnsupportedFormat = errors.New("unsupported input format")

	// ErrNoPages is returned when a batch contains no pages
	ErrNoPages = errors.New("text content has no pages")
)

// Item is one positioned text run
type Item struct {
	Str       string    `json:"str" msgpack:"str"`
	Transform []float64 `json:"transform" msgpack:"transform"`
	Width     float64   `json:"width" msgpack:"width"`
	Height    float64   `json:"height" msgpack:"height"`
	FontName  string    `json:"fontName,omitempty" msgpack:"fontName,omitempty"`
	HasEOL    bool      `json:"hasEOL,omitempty" msgpack:"hasEOL,omitempty"`
}

// PageContent is the text content of one page
type PageContent struct {
	// PageNumber is 1-indexed; zero means "position in the batch"
	PageNumber int `json:"pageNumber,omitempty" msgpack:"pageNumber,omitempty"`

	// View is the visible page area [x0 y0 x1 y1] in user units
	View []float64 `json:"view" msgpack:"view"`

	// Rotate is the page rotation in degrees
	Rotate int `json:"rotate,omitempty" msgpack:"rotate,omitempty"`

	Items []Item `json:"items" msgpack:"items"`
}

// Batch is a document's worth of page content
type Batch struct {
	Title string        `json:"title,omitempty" msgpack:"title,omitempty"`
	Pages []PageContent `json:"pages" msgpack:"pages"`
}

// Warning describes an item that was skipped while decoding
type Warning struct {
	Page    int
	Item    int
	Message string
}

// String formats the warning for display
func (w Warning) String() string {
	return fmt.Sprintf("page %d, item %d: %s", w.Page, w.Item, w.Message)
}

// Options controls decoding
type Options struct {
	// Format of the input; Unknown means detect from content
	Format format.Format

	// Scale is the pixel scale of the viewport (default: model.DefaultScale)
	Scale float64
}

// Load decodes a text content file. The format is taken from opts, then from
// the file extension, then from the content.
func Load(path string, opts Options) (*model.Document, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read text content: %w", err)
	}
	defer f.Close()

	if opts.Format == format.Unknown {
		opts.Format = format.Detect(path)
	}
	if opts.Format == format.Unknown {
		if opts.Format, err = format.DetectFromReader(f); err != nil {
			return nil, nil, fmt.Errorf("failed to read text content: %w", err)
		}
		if opts.Format == format.Unknown {
			return nil, nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
		}
	}

	doc, warnings, err := Decode(f, opts)
	if err != nil {
		return nil, warnings, fmt.Errorf("%s: %w", path, err)
	}
	doc.Metadata.Source = path
	if doc.Metadata.Title == "" {
		doc.Metadata.Title = filepath.Base(path)
	}
	return doc, warnings, nil
}

// Decode reads a batch from r and converts it into a document
func Decode(r io.Reader, opts Options) (*model.Document, []Warning, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read text content: %w", err)
	}
	return DecodeBytes(data, opts)
}

// DecodeBytes converts an encoded batch into a document
func DecodeBytes(data []byte, opts Options) (*model.Document, []Warning, error) {
	f := opts.Format
	if f == format.Unknown {
		f = format.DetectFromMagic(data)
	}

	batch, err := unmarshal(data, f)
	if err != nil {
		return nil, nil, err
	}
	return Convert(batch, opts.Scale)
}

func unmarshal(data []byte, f format.Format) (*Batch, error) {
	var batch Batch
	switch f {
	case format.JSON:
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &batch.Pages); err != nil {
				return nil, fmt.Errorf("failed to parse JSON text content: %w", err)
			}
			return &batch, nil
		}
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("failed to parse JSON text content: %w", err)
		}
	case format.Msgpack:
		if format.DetectFromMagic(data) == format.Msgpack && isMsgpackArray(data[0]) {
			if err := msgpack.Unmarshal(data, &batch.Pages); err != nil {
				return nil, fmt.Errorf("failed to parse MessagePack text content: %w", err)
			}
			return &batch, nil
		}
		if err := msgpack.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("failed to parse MessagePack text content: %w", err)
		}
	case format.PDF:
		return nil, fmt.Errorf("%w: %s input must be converted to text content first", ErrUnsupportedFormat, f)
	default:
		return nil, ErrUnknownFormat
	}
	return &batch, nil
}

func isMsgpackArray(b byte) bool {
	return b&0xf0 == 0x90 || b == 0xdc || b == 0xdd
}

// Convert builds a document from a decoded batch. Items whose transform does
// not have six entries are skipped with a warning.
func Convert(batch *Batch, scale float64) (*model.Document, []Warning, error) {
	if batch == nil || len(batch.Pages) == 0 {
		return nil, nil, ErrNoPages
	}
	if scale == 0 {
		scale = model.DefaultScale
	}

	doc := model.NewDocument()
	doc.Metadata.Title = batch.Title

	var warnings []Warning
	for i, pc := range batch.Pages {
		number := pc.PageNumber
		if number == 0 {
			number = i + 1
		}
		if len(pc.View) != 4 {
			return nil, warnings, fmt.Errorf("page %d: view must have 4 entries, got %d", number, len(pc.View))
		}

		vp, err := model.NewViewport([4]float64{pc.View[0], pc.View[1], pc.View[2], pc.View[3]}, scale, pc.Rotate)
		if err != nil {
			return nil, warnings, fmt.Errorf("page %d: %w", number, err)
		}

		page := model.NewPage(vp)
		page.Number = number
		for j, item := range pc.Items {
			if len(item.Transform) != 6 {
				warnings = append(warnings, Warning{
					Page:    number,
					Item:    j,
					Message: fmt.Sprintf("transform has %d entries, want 6", len(item.Transform)),
				})
				continue
			}
			var m matrix.Matrix
			copy(m[:], item.Transform)
			page.AddFragment(model.TextFragment{
				Text:      item.Str,
				Transform: m,
				Width:     item.Width,
				Height:    item.Height,
				FontName:  item.FontName,
				HasEOL:    item.HasEOL,
			})
		}
		doc.AddPage(page)
	}
	return doc, warnings, nil
}

// FromDocument converts a document back into a batch. View boxes are
// reconstructed from the viewport, which is exact for unrotated pages whose
// view box starts at the origin.
func FromDocument(doc *model.Document) *Batch {
	batch := &Batch{Title: doc.Metadata.Title}
	for _, p := range doc.Pages {
		vp := p.Viewport
		w, h := vp.Width/vp.Scale, vp.Height/vp.Scale
		if vp.Rotation == 90 || vp.Rotation == 270 {
			w, h = h, w
		}
		pc := PageContent{
			PageNumber: p.Number,
			View:       []float64{0, 0, w, h},
			Rotate:     vp.Rotation,
			Items:      make([]Item, 0, len(p.Fragments)),
		}
		for _, f := range p.Fragments {
			pc.Items = append(pc.Items, Item{
				Str:       f.Text,
				Transform: append([]float64(nil), f.Transform[:]...),
				Width:     f.Width,
				Height:    f.Height,
				FontName:  f.FontName,
				HasEOL:    f.HasEOL,
			})
		}
		batch.Pages = append(batch.Pages, pc)
	}
	return batch
}

// Encode writes a batch in the given format
func Encode(w io.Writer, batch *Batch, f format.Format) error {
	switch f {
	case format.JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(batch)
	case format.Msgpack:
		return msgpack.NewEncoder(w).Encode(batch)
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, f)
	}
}
