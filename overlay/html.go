package overlay

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/reveal/detect"
	"github.com/tsawler/reveal/model"
)

const maskStyle = `
body { background: #eee; margin: 0; padding: 16px; font-family: sans-serif; }
.page-wrapper { position: relative; margin: 0 auto 16px; background: #fff; box-shadow: 0 1px 4px rgba(0,0,0,.3); overflow: hidden; }
.textLayer { position: absolute; inset: 0; }
.textLayer span { position: absolute; white-space: pre; line-height: 1; color: #000; }
.reveal-mask { position: absolute; border: 0; padding: 0; margin: 0; background: #3a3f4b; cursor: pointer; border-radius: 3px; }
.reveal-mask:hover { background: #4b5263; }
.reveal-mask.revealed { background: transparent; outline: 1px dashed #7a8; }
`

const toggleScript = `
document.addEventListener("click", function (e) {
  var mask = e.target.closest(".reveal-mask");
  if (mask) { mask.classList.toggle("revealed"); }
});
`

// HTMLOptions controls the HTML overlay
type HTMLOptions struct {
	// Title of the generated page
	Title string

	// OuterPad is added around each region (default: DefaultOuterPad)
	OuterPad float64

	// TextLayer draws the page text under the masks
	TextLayer bool
}

// HTMLRenderer writes a standalone HTML page with one positioned container
// per document page and one clickable mask per answer region. Clicking a
// mask toggles its "revealed" class.
type HTMLRenderer struct {
	opts HTMLOptions
}

// NewHTMLRenderer creates an HTML renderer
func NewHTMLRenderer(opts HTMLOptions) *HTMLRenderer {
	if opts.OuterPad == 0 {
		opts.OuterPad = DefaultOuterPad
	}
	return &HTMLRenderer{opts: opts}
}

// Render implements Renderer
func (r *HTMLRenderer) Render(w io.Writer, doc *model.Document, regions []model.AnswerRegion) error {
	title := r.opts.Title
	if title == "" {
		title = doc.Metadata.Title
	}

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlNode := element(atom.Html)
	root.AppendChild(htmlNode)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(withText(element(atom.Title), title))
	head.AppendChild(withText(element(atom.Style), maskStyle))
	htmlNode.AppendChild(head)

	body := element(atom.Body)
	htmlNode.AppendChild(body)

	byPage := groupByPage(regions)
	for _, page := range doc.Pages {
		body.AppendChild(r.pageNode(page, byPage[page.Number]))
	}
	body.AppendChild(withText(element(atom.Script), toggleScript))

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("failed to render HTML overlay: %w", err)
	}
	return nil
}

func (r *HTMLRenderer) pageNode(page *model.Page, regions []model.AnswerRegion) *html.Node {
	vp := page.Viewport
	wrapper := element(atom.Div,
		attr("class", "page-wrapper"),
		attr("id", "page-"+strconv.Itoa(page.Number)),
		attr("style", css("width", px(vp.Width), "height", px(vp.Height))),
	)

	if r.opts.TextLayer {
		layer := element(atom.Div, attr("class", "textLayer"))
		for _, f := range page.Fragments {
			bbox, ok := detect.FragmentBBox(f, vp)
			if !ok {
				continue
			}
			span := element(atom.Span, attr("style", css(
				"left", px(bbox.Left),
				"top", px(bbox.Top),
				"font-size", px(bbox.Height()),
			)))
			layer.AppendChild(withText(span, f.Text))
		}
		wrapper.AppendChild(layer)
	}

	for i, region := range regions {
		box := region.BBox.Expand(r.opts.OuterPad)
		wrapper.AppendChild(element(atom.Button,
			attr("type", "button"),
			attr("class", "reveal-mask"),
			attr("title", "Click to reveal"),
			attr("data-page", strconv.Itoa(region.Page)),
			attr("data-index", strconv.Itoa(i)),
			attr("data-pattern", region.Pattern),
			attr("style", css(
				"left", px(box.Left),
				"top", px(box.Top),
				"width", px(box.Width()),
				"height", px(box.Height()),
			)),
		))
	}
	return wrapper
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "px"
}

// css joins property/value pairs into a style attribute
func css(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(pairs[i])
		b.WriteString(": ")
		b.WriteString(pairs[i+1])
		b.WriteByte(';')
	}
	return b.String()
}
