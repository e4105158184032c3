package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/wordpages/pkg/errors"
	"github.com/matzehuels/wordpages/pkg/layout"
)

const (
	// DefaultPNGScale is the default number of pixels per layout unit.
	DefaultPNGScale = 4.0
	// MaxPNGPixels bounds the raster size.
	MaxPNGPixels = 64 << 20
)

var (
	pngBackground = color.RGBA{0xff, 0xff, 0xff, 0xff}
	pngWordFill   = color.RGBA{0xd9, 0xd9, 0xd9, 0xff}
	pngOutline    = color.RGBA{0x33, 0x33, 0x33, 0xff}
	pngPageFrame  = color.RGBA{0xbb, 0xbb, 0xbb, 0xff}
	pngLabel      = color.RGBA{0x11, 0x11, 0x11, 0xff}
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	text   bool
	frames bool
	fill   string
	scale  float64
	margin float64
}

// WithPNGText draws each word's text inside its box where it fits.
func WithPNGText() PNGOption { return func(r *pngRenderer) { r.text = true } }

// WithPNGFrames outlines every page.
func WithPNGFrames() PNGOption { return func(r *pngRenderer) { r.frames = true } }

// WithPNGFill colors words by an annotation column, like [WithFill].
func WithPNGFill(column string) PNGOption { return func(r *pngRenderer) { r.fill = column } }

// WithPNGScale sets the pixels per layout unit (default 4).
func WithPNGScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGMargin sets the blank border in layout units.
func WithPNGMargin(m float64) PNGOption {
	return func(r *pngRenderer) {
		if m >= 0 {
			r.margin = m
		}
	}
}

// RenderPNG rasterizes the layout. Images larger than [MaxPNGPixels] are
// rejected with an INVALID_OPTIONS error.
func RenderPNG(l *layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultPNGScale, margin: DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}

	fills, err := fillColors(l, r.fill)
	if err != nil {
		return nil, err
	}
	c := newCanvas(l, r.margin)
	wpx := int(math.Ceil(c.width() * r.scale))
	hpx := int(math.Ceil(c.height() * r.scale))
	if wpx*hpx > MaxPNGPixels {
		return nil, errors.New(errors.ErrCodeInvalidOptions,
			"image of %dx%d pixels exceeds the %d pixel limit, lower the scale", wpx, hpx, MaxPNGPixels)
	}

	img := image.NewRGBA(image.Rect(0, 0, wpx, hpx))
	draw.Draw(img, img.Bounds(), &image.Uniform{pngBackground}, image.Point{}, draw.Src)

	if r.frames {
		for _, p := range c.pages(l.Grid) {
			strokeRect(img, r.rect(p.X, p.Y, p.W, p.H), pngPageFrame)
		}
	}

	words := c.words(l, fills)
	for _, w := range words {
		box := r.rect(w.X, w.Y, w.W, w.H)
		fill := color.Color(pngWordFill)
		if w.Fill != "" {
			if hex, err := colorful.Hex(w.Fill); err == nil {
				fill = hex
			}
		}
		draw.Draw(img, box, &image.Uniform{fill}, image.Point{}, draw.Src)
		strokeRect(img, box, pngOutline)
	}

	if r.text {
		face := basicfont.Face7x13
		for _, w := range words {
			box := r.rect(w.X, w.Y, w.W, w.H)
			tw := utf8.RuneCountInString(w.Label) * face.Advance
			if tw > box.Dx()-2 || face.Height > box.Dy() {
				continue
			}
			d := font.Drawer{
				Dst:  img,
				Src:  &image.Uniform{pngLabel},
				Face: face,
				Dot: fixed.P(
					box.Min.X+(box.Dx()-tw)/2,
					box.Min.Y+(box.Dy()+face.Ascent-face.Descent)/2,
				),
			}
			d.DrawString(w.Label)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r pngRenderer) rect(x, y, w, h float64) image.Rectangle {
	return image.Rect(
		int(math.Round(x*r.scale)), int(math.Round(y*r.scale)),
		int(math.Round((x+w)*r.scale)), int(math.Round((y+h)*r.scale)),
	)
}

func strokeRect(img draw.Image, b image.Rectangle, c color.Color) {
	src := &image.Uniform{c}
	edges := []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+1),
		image.Rect(b.Min.X, b.Max.Y-1, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X, b.Min.Y, b.Min.X+1, b.Max.Y),
		image.Rect(b.Max.X-1, b.Min.Y, b.Max.X, b.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(img, e.Intersect(b), src, image.Point{}, draw.Src)
	}
}
