package sink

import (
	"github.com/matzehuels/wordpages/pkg/errors"
	"github.com/matzehuels/wordpages/pkg/layout"
	"github.com/matzehuels/wordpages/pkg/render/styles"
)

// DefaultMargin is the blank border around the drawing, in layout units.
const DefaultMargin = 2.0

// canvas maps layout coordinates to drawing coordinates.
type canvas struct {
	bounds layout.Rect
	margin float64
}

func newCanvas(l *layout.Layout, margin float64) canvas {
	return canvas{bounds: l.Grid.Bounds(), margin: margin}
}

func (c canvas) width() float64  { return c.bounds.Width() + 2*c.margin }
func (c canvas) height() float64 { return c.bounds.Height() + 2*c.margin }

func (c canvas) x(v float64) float64 { return v - c.bounds.MinX + c.margin }
func (c canvas) y(v float64) float64 { return c.bounds.MaxY - v + c.margin }

// words converts tokens to drawing boxes. fills maps token index to color.
func (c canvas) words(l *layout.Layout, fills []string) []styles.Word {
	out := make([]styles.Word, len(l.Tokens))
	for i, t := range l.Tokens {
		w := styles.Word{
			Index: i,
			Label: t.Word,
			Page:  t.Page,
			X:     c.x(t.XMin), Y: c.y(t.YMin),
			W: t.Width(), H: t.Height(),
			CX: c.x(t.CenterX()), CY: c.y(t.CenterY()),
		}
		if fills != nil {
			w.Fill = fills[i]
		}
		out[i] = w
	}
	return out
}

// pages returns one frame per page. A frame spans the page width and runs
// from the page origin down to the bottom edge of its last line.
func (c canvas) pages(g layout.Grid) []styles.Page {
	out := make([]styles.Page, len(g.Cells))
	for i, cell := range g.Cells {
		x0, y0 := g.PageOrigin(cell)
		out[i] = styles.Page{
			Number: cell.Page,
			X:      c.x(x0),
			Y:      c.y(y0),
			W:      g.PageWidth,
			H:      g.PageHeight + g.CharacterHeight,
		}
	}
	return out
}

// fillColors resolves per-token fills from an annotation column.
// It returns nil when column is empty.
func fillColors(l *layout.Layout, column string) ([]string, error) {
	if column == "" {
		return nil, nil
	}
	c, ok := l.Annotation(column)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidColumn, "no annotation column %q to fill by", column)
	}
	values := c.Strings()
	palette := styles.CategoryFills(values)
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = palette[v]
	}
	return out, nil
}
