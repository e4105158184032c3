package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/wordpages/pkg/layout"
	"github.com/matzehuels/wordpages/pkg/render/styles"
)

// DefaultSVGScale is the default number of pixels per layout unit.
const DefaultSVGScale = 8.0

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style  styles.Style
	text   bool
	frames bool
	fill   string
	scale  float64
	margin float64
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithText() SVGOption                { return func(r *svgRenderer) { r.text = true } }
func WithFrames() SVGOption              { return func(r *svgRenderer) { r.frames = true } }
func WithFill(column string) SVGOption   { return func(r *svgRenderer) { r.fill = column } }

// WithScale sets the pixels per layout unit of the SVG width and height.
func WithScale(s float64) SVGOption {
	return func(r *svgRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithMargin sets the blank border in layout units.
func WithMargin(m float64) SVGOption {
	return func(r *svgRenderer) {
		if m >= 0 {
			r.margin = m
		}
	}
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, scale: DefaultSVGScale, margin: DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = styles.Simple{}
	}
	return r
}

// RenderSVG draws l as an SVG document. It fails only when the fill column
// is not an annotation of l.
func RenderSVG(l *layout.Layout, opts ...SVGOption) ([]byte, error) {
	r := newSVGRenderer(opts...)

	fills, err := fillColors(l, r.fill)
	if err != nil {
		return nil, err
	}
	c := newCanvas(l, r.margin)
	w, h := c.width(), c.height()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		w, h, w*r.scale, h*r.scale)

	r.style.RenderDefs(&buf)
	if r.frames {
		for _, p := range c.pages(l.Grid) {
			r.style.RenderPage(&buf, p)
		}
	}
	words := c.words(l, fills)
	for _, wd := range words {
		r.style.RenderWord(&buf, wd)
	}
	if r.text {
		for _, wd := range words {
			r.style.RenderText(&buf, wd)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}
