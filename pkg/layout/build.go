package layout

import (
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/wordpages/pkg/errors"
	"github.com/matzehuels/wordpages/pkg/table"
	"github.com/matzehuels/wordpages/pkg/text"
)

// Build lays out input, which must be one of:
//   - []string: records that are either lines or words
//   - []*string: the same, with nil entries treated as empty strings
//   - *table.Frame or table.Frame: a table with a "text" column
//
// Any other input type is rejected with an INVALID_INPUT error before any
// work is done. Empty input yields an empty layout.
func Build(input any, cfg Config) (*Layout, error) {
	records, err := Records(input)
	if err != nil {
		return nil, err
	}
	return BuildRecords(records, cfg)
}

// Records extracts the text records from a supported input value.
func Records(input any) ([]string, error) {
	switch v := input.(type) {
	case []string:
		return v, nil
	case []*string:
		return table.FromNullable(table.TextColumn, v).Text()
	case *table.Frame:
		if v == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "nil table")
		}
		return v.Text()
	case table.Frame:
		return v.Text()
	}
	return nil, errors.New(errors.ErrCodeInvalidInput,
		"unsupported input type %T (want []string, []*string or a table with a %q column)", input, table.TextColumn)
}

// BuildRecords classifies records as lines or words (unless cfg.Shape fixes
// it), reflows word input into lines of cfg.WrapWidth, and paginates.
func BuildRecords(records []string, cfg Config) (*Layout, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	measure, _ := text.MeasureFor(cfg.Measure)

	if cfg.NormalizeUnicode {
		normalized := make([]string, len(records))
		for i, r := range records {
			normalized[i] = text.NormalizeNFC(r)
		}
		records = normalized
	}

	shape, _ := text.ParseShape(string(cfg.Shape))
	if shape == text.ShapeAuto {
		shape = text.Classify(records)
	}

	lines := records
	if shape == text.ShapeWords {
		lines = text.Reflower{
			Width:     cfg.WrapWidth,
			ChunkSize: cfg.ChunkSize,
			Measure:   measure,
		}.Reflow(records)
	}

	l, err := paginate(lines, cfg, measure)
	if err != nil {
		return nil, err
	}
	l.Shape = shape
	return l, nil
}

// Paginate lays out lines without classification or reflow.
func Paginate(lines []string, cfg Config) (*Layout, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	measure, _ := text.MeasureFor(cfg.Measure)

	l, err := paginate(lines, cfg, measure)
	if err != nil {
		return nil, err
	}
	l.Shape = text.ShapeLines
	return l, nil
}

func paginate(lines []string, cfg Config, measure text.Measure) (*Layout, error) {
	lpp := cfg.LinesPerPage
	l := &Layout{
		Lines: len(lines),
		Grid: Grid{
			FillByRow:       cfg.FillByRow,
			LinesPerPage:    lpp,
			CharacterHeight: cfg.CharacterHeight,
			VerticalSpace:   cfg.VerticalSpace,
			PageHeight:      float64(lpp) * cfg.lineHeight(),
			XSpace:          cfg.XSpacePages,
			YSpace:          cfg.YSpacePages,
		},
	}
	if len(lines) == 0 {
		l.Tokens = []Token{}
		return l, nil
	}

	numPages := ceilDiv(len(lines), lpp)
	rows, cols, err := GridSize(numPages, cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, err
	}
	l.Grid.Pages, l.Grid.Rows, l.Grid.Cols = numPages, rows, cols
	l.Grid.Cells = make([]Cell, numPages)
	for p := 1; p <= numPages; p++ {
		l.Grid.Cells[p-1] = PlaceCell(p, rows, cols, cfg.FillByRow)
	}

	var widest int
	for _, line := range lines {
		widest = max(widest, measure(line))
	}
	l.Grid.PageWidth = float64(widest)

	perLine := make([][]Token, len(lines))
	place := func(i int) {
		perLine[i] = placeLine(i, lines[i], l.Grid, cfg.Tokenizer, measure)
	}
	if cfg.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(cfg.Workers)
		for i := range lines {
			g.Go(func() error {
				place(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range lines {
			place(i)
		}
	}

	var n int
	for _, ts := range perLine {
		n += len(ts)
	}
	l.Tokens = make([]Token, 0, n)
	for _, ts := range perLine {
		l.Tokens = append(l.Tokens, ts...)
	}
	return l, nil
}

// placeLine tokenizes the i-th (0-based) line and positions its words.
//
// Words advance left to right: each starts one unit after the previous word
// ends, and the first starts at the line origin.
func placeLine(i int, line string, g Grid, tok text.Tokenizer, measure text.Measure) []Token {
	words := tok.Tokenize(line)
	if len(words) == 0 {
		return nil
	}

	page := i/g.LinesPerPage + 1
	lineNo := i%g.LinesPerPage + 1
	cell := g.Cells[page-1]
	xOff, yOff := g.PageOrigin(cell)

	ymin := -float64(lineNo)*(g.CharacterHeight+g.VerticalSpace) + yOff
	ymax := ymin - g.CharacterHeight

	out := make([]Token, 0, len(words))
	left := 0
	for _, w := range words {
		if w == "" {
			continue
		}
		right := left + measure(w)
		out = append(out, Token{
			Word:      w,
			LineIndex: i + 1,
			Page:      page,
			Line:      lineNo,
			XMin:      float64(left) + xOff,
			XMax:      float64(right) + xOff,
			YMin:      ymin,
			YMax:      ymax,
		})
		left = right + 1
	}
	return out
}
