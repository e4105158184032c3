package layout

import (
	"github.com/matzehuels/wordpages/pkg/errors"
)

// Cell is the position of one page in the page grid.
// X counts columns from the left and Y counts rows from the top, both from 0.
type Cell struct {
	Page int `json:"page" yaml:"page"`
	X    int `json:"x" yaml:"x"`
	Y    int `json:"y" yaml:"y"`
}

// Grid describes how pages are tiled.
type Grid struct {
	Pages     int  `json:"pages" yaml:"pages"`
	Rows      int  `json:"rows" yaml:"rows"`
	Cols      int  `json:"cols" yaml:"cols"`
	FillByRow bool `json:"fill_by_row,omitempty" yaml:"fill_by_row,omitempty"`

	LinesPerPage    int     `json:"lines_per_page" yaml:"lines_per_page"`
	CharacterHeight float64 `json:"character_height" yaml:"character_height"`
	VerticalSpace   float64 `json:"vertical_space" yaml:"vertical_space"`

	// PageWidth is the widest input line; every page uses it.
	PageWidth float64 `json:"page_width" yaml:"page_width"`
	// PageHeight is LinesPerPage * (CharacterHeight + VerticalSpace).
	PageHeight float64 `json:"page_height" yaml:"page_height"`
	XSpace     float64 `json:"x_space" yaml:"x_space"`
	YSpace     float64 `json:"y_space" yaml:"y_space"`

	// Cells holds one entry per page; Cells[p-1] is page p.
	Cells []Cell `json:"cells,omitempty" yaml:"cells,omitempty"`
}

// Rect is an axis-aligned rectangle in layout units.
type Rect struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Width returns MaxX - MinX.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns MaxY - MinY.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Bounds returns the rectangle enclosing every page of the grid, from the
// top-left corner (0, 0) to the bottom edge of the last possible line.
func (g Grid) Bounds() Rect {
	if g.Pages == 0 {
		return Rect{}
	}
	return Rect{
		MinX: 0,
		MaxX: float64(g.Cols)*g.PageWidth + float64(g.Cols-1)*g.XSpace,
		MinY: -(float64(g.Rows)*g.PageHeight + float64(g.Rows-1)*g.YSpace + g.CharacterHeight),
		MaxY: 0,
	}
}

// PageOrigin returns the x offset and y offset of a page's cell.
func (g Grid) PageOrigin(c Cell) (x, y float64) {
	return float64(c.X) * (g.PageWidth + g.XSpace),
		-float64(c.Y) * (g.PageHeight + g.YSpace)
}

// GridSize derives the page grid dimensions for numPages pages.
//
// A given row or column count fixes that dimension and the other becomes
// ceil(numPages / given). With neither given both are ceil(sqrt(numPages)).
// With both given they are used as-is and must hold every page.
func GridSize(numPages, rows, cols int) (int, int, error) {
	if numPages < 0 || rows < 0 || cols < 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidOptions,
			"grid size arguments must not be negative (pages=%d rows=%d cols=%d)", numPages, rows, cols)
	}
	if numPages == 0 {
		return rows, cols, nil
	}
	switch {
	case rows > 0 && cols > 0:
		if rows*cols < numPages {
			return 0, 0, errors.New(errors.ErrCodeInvalidOptions,
				"grid of %d rows x %d cols cannot hold %d pages", rows, cols, numPages)
		}
	case rows > 0:
		cols = ceilDiv(numPages, rows)
	case cols > 0:
		rows = ceilDiv(numPages, cols)
	default:
		rows = ceilSqrt(numPages)
		cols = rows
	}
	return rows, cols, nil
}

// PlaceCell returns the grid cell of page (1-based).
// Column-major placement fills rows cells down a column before moving right;
// row-major placement fills cols cells across a row before moving down.
func PlaceCell(page, rows, cols int, byRow bool) Cell {
	idx := page - 1
	if byRow {
		return Cell{Page: page, X: idx % cols, Y: idx / cols}
	}
	return Cell{Page: page, X: idx / rows, Y: idx % rows}
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// ceilSqrt returns the smallest s with s*s >= n.
func ceilSqrt(n int) int {
	s := 0
	for s*s < n {
		s++
	}
	return s
}
