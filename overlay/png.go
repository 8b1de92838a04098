package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"

	"fortio.org/safecast"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/reveal/detect"
	"github.com/tsawler/reveal/model"
)

var (
	pageBackground = color.RGBA{0xff, 0xff, 0xff, 0xff}
	pageGap        = color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
	fragmentColor  = color.RGBA{0x9a, 0xb4, 0xd8, 0xff}
	maskColor      = color.RGBA{0x3a, 0x3f, 0x4b, 0xe0}
	labelColor     = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// PNGOptions controls the preview image
type PNGOptions struct {
	// OuterPad is added around each region (default: DefaultOuterPad)
	OuterPad float64

	// Gap is the number of pixels between stacked pages (default: 16)
	Gap int

	// MaxWidth scales the finished preview down to at most this many pixels
	// wide; zero keeps page-pixel size
	MaxWidth int
}

// PNGRenderer draws a preview of all pages stacked vertically: fragment
// outlines in blue, answer masks filled and numbered in page order.
type PNGRenderer struct {
	opts PNGOptions
}

// NewPNGRenderer creates a preview renderer
func NewPNGRenderer(opts PNGOptions) *PNGRenderer {
	if opts.OuterPad == 0 {
		opts.OuterPad = DefaultOuterPad
	}
	if opts.Gap == 0 {
		opts.Gap = 16
	}
	return &PNGRenderer{opts: opts}
}

// Render implements Renderer
func (r *PNGRenderer) Render(w io.Writer, doc *model.Document, regions []model.AnswerRegion) error {
	img, err := r.Image(doc, regions)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return nil
}

// Image draws the preview without encoding it
func (r *PNGRenderer) Image(doc *model.Document, regions []model.AnswerRegion) (image.Image, error) {
	if doc.PageCount() == 0 {
		return nil, fmt.Errorf("cannot render preview of an empty document")
	}

	width, height := 0, 0
	sizes := make([]image.Point, len(doc.Pages))
	for i, page := range doc.Pages {
		pw, err := toPixel(page.Viewport.Width)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page.Number, err)
		}
		ph, err := toPixel(page.Viewport.Height)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page.Number, err)
		}
		sizes[i] = image.Pt(pw, ph)
		width = max(width, pw)
		height += ph
		if i > 0 {
			height += r.opts.Gap
		}
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(canvas, canvas.Bounds(), image.NewUniform(pageGap), image.Point{}, xdraw.Src)

	byPage := groupByPage(regions)
	offsetY := 0
	for i, page := range doc.Pages {
		pageRect := image.Rect(0, offsetY, sizes[i].X, offsetY+sizes[i].Y)
		xdraw.Draw(canvas, pageRect, image.NewUniform(pageBackground), image.Point{}, xdraw.Src)

		pageBox := model.NewBBox(0, 0, page.Viewport.Width, page.Viewport.Height)
		for _, f := range page.Fragments {
			bbox, ok := detect.FragmentBBox(f, page.Viewport)
			if !ok || !bbox.Intersects(pageBox) {
				continue
			}
			if rect, err := r.rect(bbox, offsetY); err == nil {
				outline(canvas, rect.Intersect(pageRect), fragmentColor)
			}
		}

		for n, region := range byPage[page.Number] {
			// Masks that miss the page entirely are not drawn.
			padded := region.BBox.Expand(r.opts.OuterPad)
			if !padded.IsValid() || !padded.Intersects(pageBox) {
				continue
			}
			rect, err := r.rect(padded, offsetY)
			if err != nil {
				return nil, fmt.Errorf("page %d, region %d: %w", page.Number, n, err)
			}
			rect = rect.Intersect(pageRect)
			xdraw.Draw(canvas, rect, image.NewUniform(maskColor), image.Point{}, xdraw.Over)
			label(canvas, rect, strconv.Itoa(n+1))
		}

		offsetY += sizes[i].Y + r.opts.Gap
	}

	if r.opts.MaxWidth > 0 && width > r.opts.MaxWidth {
		scaledH := height * r.opts.MaxWidth / width
		dst := image.NewRGBA(image.Rect(0, 0, r.opts.MaxWidth, max(scaledH, 1)))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), canvas, canvas.Bounds(), xdraw.Src, nil)
		return dst, nil
	}
	return canvas, nil
}

func (r *PNGRenderer) rect(b model.BBox, offsetY int) (image.Rectangle, error) {
	x0, err := toPixel(b.Left)
	if err != nil {
		return image.Rectangle{}, err
	}
	y0, err := toPixel(b.Top)
	if err != nil {
		return image.Rectangle{}, err
	}
	x1, err := toPixel(b.Right)
	if err != nil {
		return image.Rectangle{}, err
	}
	y1, err := toPixel(b.Bottom)
	if err != nil {
		return image.Rectangle{}, err
	}
	return image.Rect(x0, y0+offsetY, x1, y1+offsetY), nil
}

// toPixel rounds a page-pixel coordinate to an image coordinate
func toPixel(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("coordinate %v is not finite", v)
	}
	return safecast.Conv[int](math.Round(v))
}

func outline(img *image.RGBA, rect image.Rectangle, c color.Color) {
	if rect.Empty() {
		return
	}
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.Set(x, rect.Min.Y, c)
		img.Set(x, rect.Max.Y-1, c)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.Set(rect.Min.X, y, c)
		img.Set(rect.Max.X-1, y, c)
	}
}

// label writes text in the top-left corner of rect when it fits
func label(img *image.RGBA, rect image.Rectangle, text string) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	if rect.Dy() < metrics.Height.Ceil() || rect.Dx() < 7*len(text)+4 {
		return
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: face,
		Dot:  fixed.P(rect.Min.X+2, rect.Min.Y+metrics.Ascent.Ceil()),
	}
	d.DrawString(text)
}
