package layout

import (
	"slices"
	"sort"
	"strconv"

	"github.com/matzehuels/wordpages/pkg/errors"
	"github.com/matzehuels/wordpages/pkg/table"
	"github.com/matzehuels/wordpages/pkg/text"
)

// Core column names, in display order.
var Columns = []string{"word", "page", "line", "xmin", "xmax", "ymin", "ymax"}

// Layout is the result of laying out a document: one Token per word in
// reading order, plus the page grid they were placed on.
//
// A Layout is owned by the caller. Callers may attach derived per-word
// columns with Annotate before handing the layout to a renderer.
type Layout struct {
	Tokens []Token `json:"tokens" yaml:"tokens"`
	Grid   Grid    `json:"grid" yaml:"grid"`
	// Shape is the granularity the input was treated as.
	Shape text.Shape `json:"shape" yaml:"shape"`
	// Lines is the number of lines after reflow.
	Lines int `json:"lines" yaml:"lines"`

	annotations []table.Column
}

// Len returns the number of tokens.
func (l *Layout) Len() int { return len(l.Tokens) }

// PageTokens returns the tokens on page p, in reading order.
// The result aliases l.Tokens.
func (l *Layout) PageTokens(p int) []Token {
	lo := sort.Search(len(l.Tokens), func(i int) bool { return l.Tokens[i].Page >= p })
	hi := sort.Search(len(l.Tokens), func(i int) bool { return l.Tokens[i].Page > p })
	return l.Tokens[lo:hi]
}

// Annotate attaches a derived column with one value per token.
func (l *Layout) Annotate(name string, values []string) error {
	return l.AnnotateColumn(table.Column{Name: name, Values: values})
}

// AnnotateColumn attaches c as a derived column. The column length must match
// the token count and its name must not collide with a core column or an
// existing annotation.
func (l *Layout) AnnotateColumn(c table.Column) error {
	if err := errors.ValidateColumnName(c.Name); err != nil {
		return err
	}
	if slices.Contains(Columns, c.Name) {
		return errors.New(errors.ErrCodeInvalidColumn, "column %q is reserved", c.Name)
	}
	if _, ok := l.Annotation(c.Name); ok {
		return errors.New(errors.ErrCodeInvalidColumn, "duplicate column %q", c.Name)
	}
	if c.Len() != len(l.Tokens) {
		return errors.New(errors.ErrCodeInvalidColumn,
			"column %q has %d values, layout has %d words", c.Name, c.Len(), len(l.Tokens))
	}
	c.Values = slices.Clone(c.Values)
	c.Missing = slices.Clone(c.Missing)
	l.annotations = append(l.annotations, c)
	return nil
}

// Annotation returns the derived column called name.
func (l *Layout) Annotation(name string) (table.Column, bool) {
	for _, c := range l.annotations {
		if c.Name == name {
			return c, true
		}
	}
	return table.Column{}, false
}

// Annotations returns the derived columns in the order they were added.
func (l *Layout) Annotations() []table.Column {
	return l.annotations
}

// Frame returns the layout as a table with the core columns followed by
// the annotations. Numbers are formatted in their shortest exact form.
func (l *Layout) Frame() *table.Frame {
	n := len(l.Tokens)
	cols := make([][]string, len(Columns))
	for i := range cols {
		cols[i] = make([]string, n)
	}
	for i, t := range l.Tokens {
		cols[0][i] = t.Word
		cols[1][i] = strconv.Itoa(t.Page)
		cols[2][i] = strconv.Itoa(t.Line)
		cols[3][i] = formatFloat(t.XMin)
		cols[4][i] = formatFloat(t.XMax)
		cols[5][i] = formatFloat(t.YMin)
		cols[6][i] = formatFloat(t.YMax)
	}

	f := &table.Frame{}
	for i, name := range Columns {
		// Core names are valid and distinct, and all columns have n rows.
		_ = f.AddColumn(table.Column{Name: name, Values: cols[i]})
	}
	for _, c := range l.annotations {
		_ = f.AddColumn(c)
	}
	return f
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
