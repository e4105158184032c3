package sink

import (
	"encoding/json"

	"github.com/matzehuels/wordpages/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style  string
	fill   string
	margin float64
}

// WithJSONStyle records the style name (e.g., "simple", "wireframe") in the
// JSON output for documentation or round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONFill resolves word colors from an annotation column, like [WithFill].
func WithJSONFill(column string) JSONOption { return func(r *jsonRenderer) { r.fill = column } }

// WithJSONMargin sets the blank border in layout units.
func WithJSONMargin(m float64) JSONOption {
	return func(r *jsonRenderer) {
		if m >= 0 {
			r.margin = m
		}
	}
}

type jsonOutput struct {
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Margin float64    `json:"margin"`
	Style  string     `json:"style,omitempty"`
	Fill   string     `json:"fill,omitempty"`
	Pages  []jsonPage `json:"pages"`
	Words  []jsonWord `json:"words"`
}

type jsonPage struct {
	Number int     `json:"number"`
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonWord struct {
	Label  string  `json:"label"`
	Page   int     `json:"page"`
	Line   int     `json:"line"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   string  `json:"fill,omitempty"`
}

// RenderJSON exports the drawing coordinates of l: the same boxes the SVG
// sink draws, with y growing downward from the top-left corner.
func RenderJSON(l *layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{margin: DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}

	fills, err := fillColors(l, r.fill)
	if err != nil {
		return nil, err
	}
	c := newCanvas(l, r.margin)
	out := jsonOutput{
		Width:  c.width(),
		Height: c.height(),
		Margin: r.margin,
		Style:  r.style,
		Fill:   r.fill,
		Pages:  make([]jsonPage, 0, len(l.Grid.Cells)),
		Words:  make([]jsonWord, 0, len(l.Tokens)),
	}

	for i, p := range c.pages(l.Grid) {
		cell := l.Grid.Cells[i]
		out.Pages = append(out.Pages, jsonPage{
			Number: p.Number, Row: cell.Y, Col: cell.X,
			X: p.X, Y: p.Y, Width: p.W, Height: p.H,
		})
	}
	for i, w := range c.words(l, fills) {
		out.Words = append(out.Words, jsonWord{
			Label: w.Label, Page: w.Page, Line: l.Tokens[i].Line,
			X: w.X, Y: w.Y, Width: w.W, Height: w.H,
			Fill: w.Fill,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
