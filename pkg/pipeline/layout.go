package pipeline

import (
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/wordpages/pkg/errors"
	"github.com/matzehuels/wordpages/pkg/layout"
	"github.com/matzehuels/wordpages/pkg/table"
	"github.com/matzehuels/wordpages/pkg/text"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout lays out the text column of f and attaches the derived and
// carried columns requested in opts.
//
// Carried columns copy a record-level value of f onto every word of that
// record's line. They need line-shaped input: once words are reflowed, a
// line no longer corresponds to a record.
func GenerateLayout(f *table.Frame, opts Options) (*layout.Layout, error) {
	if f == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil table")
	}
	records, err := f.Text()
	if err != nil {
		return nil, err
	}
	l, err := layout.BuildRecords(records, opts.Config)
	if err != nil {
		return nil, err
	}

	for _, name := range opts.Derive {
		derive, ok := derivers[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidColumn, "unknown derived column %q", name)
		}
		if err := l.Annotate(name, derive(l, opts.Config)); err != nil {
			return nil, err
		}
	}

	if len(opts.Carry) > 0 && l.Shape != text.ShapeLines {
		return nil, errors.New(errors.ErrCodeInvalidOptions,
			"cannot carry columns %v: input was laid out as %s, not lines", opts.Carry, l.Shape)
	}
	for _, name := range opts.Carry {
		src, ok := f.Column(name)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidColumn, "no input column %q to carry", name)
		}
		if err := l.AnnotateColumn(carry(l, src)); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// carry maps a record-level column onto the tokens. Token.LineIndex is the
// 1-based record position when the input is line-shaped.
func carry(l *layout.Layout, src table.Column) table.Column {
	out := table.Column{
		Name:    src.Name,
		Values:  make([]string, len(l.Tokens)),
		Missing: make([]bool, len(l.Tokens)),
	}
	for i, t := range l.Tokens {
		v, ok := src.At(t.LineIndex - 1)
		out.Values[i] = v
		out.Missing[i] = !ok
	}
	return out
}

// =============================================================================
// Derived Columns
// =============================================================================

// Derived column names.
const (
	DeriveLength = "length"
	DeriveParity = "parity"
	DeriveColumn = "column"
	DeriveRow    = "row"
)

// DerivedColumns lists the columns that can be requested in Options.Derive.
var DerivedColumns = []string{DeriveLength, DeriveParity, DeriveColumn, DeriveRow}

type deriver func(l *layout.Layout, cfg layout.Config) []string

var derivers = map[string]deriver{
	// length is the measured word length.
	DeriveLength: func(l *layout.Layout, cfg layout.Config) []string {
		measure, err := text.MeasureFor(cfg.Measure)
		if err != nil {
			measure = text.RuneCount
		}
		return tokenValues(l, func(t layout.Token) string {
			return strconv.Itoa(measure(t.Word))
		})
	},
	// parity tells facing pages apart: "odd" or "even".
	DeriveParity: func(l *layout.Layout, _ layout.Config) []string {
		return tokenValues(l, func(t layout.Token) string {
			if t.Page%2 == 0 {
				return "even"
			}
			return "odd"
		})
	},
	// column and row are the 0-based grid cell of the word's page.
	DeriveColumn: func(l *layout.Layout, _ layout.Config) []string {
		return tokenValues(l, func(t layout.Token) string {
			return strconv.Itoa(l.Grid.Cells[t.Page-1].X)
		})
	},
	DeriveRow: func(l *layout.Layout, _ layout.Config) []string {
		return tokenValues(l, func(t layout.Token) string {
			return strconv.Itoa(l.Grid.Cells[t.Page-1].Y)
		})
	},
}

func tokenValues(l *layout.Layout, fn func(layout.Token) string) []string {
	out := make([]string, len(l.Tokens))
	for i, t := range l.Tokens {
		out[i] = fn(t)
	}
	return out
}

func joinNames(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}
