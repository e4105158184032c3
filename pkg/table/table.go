// Package table provides a small column-oriented table of strings.
//
// A [Frame] is the tabular input shape accepted by the layout engine (any
// frame with a "text" column) and the shape layouts are exported to when a
// caller wants to attach derived columns before rendering.
//
// Cells can be marked missing. Missing cells read back as the empty string
// through [Column.Strings], which keeps batch transforms total over input
// with holes in it.
package table

import (
	"slices"

	"github.com/matzehuels/wordpages/pkg/errors"
)

// TextColumn is the column the layout engine reads from a Frame.
const TextColumn = "text"

// Column is a named column of string cells.
type Column struct {
	Name    string
	Values  []string
	Missing []bool // nil when no cell is missing
}

// Len returns the number of cells.
func (c Column) Len() int { return len(c.Values) }

// At returns the i-th cell and whether it is present.
func (c Column) At(i int) (string, bool) {
	if c.IsMissing(i) {
		return "", false
	}
	return c.Values[i], true
}

// IsMissing reports whether the i-th cell is missing.
func (c Column) IsMissing(i int) bool {
	return i < len(c.Missing) && c.Missing[i]
}

// Strings returns the cells with missing values replaced by "".
func (c Column) Strings() []string {
	out := make([]string, len(c.Values))
	for i := range c.Values {
		out[i], _ = c.At(i)
	}
	return out
}

// Frame is an ordered set of equally long columns.
// The zero value is an empty frame with no columns.
type Frame struct {
	columns []Column
}

// New builds a Frame from cols.
// Column names must be valid and unique, and all columns must have the same length.
func New(cols ...Column) (*Frame, error) {
	f := &Frame{}
	for _, c := range cols {
		if err := f.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// FromStrings returns a single-column frame.
func FromStrings(name string, values []string) *Frame {
	return &Frame{columns: []Column{{Name: name, Values: slices.Clone(values)}}}
}

// FromNullable returns a single-column frame where nil entries are missing.
func FromNullable(name string, values []*string) *Frame {
	c := Column{Name: name, Values: make([]string, len(values))}
	for i, v := range values {
		if v == nil {
			if c.Missing == nil {
				c.Missing = make([]bool, len(values))
			}
			c.Missing[i] = true
			continue
		}
		c.Values[i] = *v
	}
	return &Frame{columns: []Column{c}}
}

// NumRows returns the number of rows, or 0 for a frame without columns.
func (f *Frame) NumRows() int {
	if f == nil || len(f.columns) == 0 {
		return 0
	}
	return f.columns[0].Len()
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	if f == nil {
		return nil
	}
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column called name.
func (f *Frame) Column(name string) (Column, bool) {
	if f == nil {
		return Column{}, false
	}
	for _, c := range f.columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Columns returns the columns in order. The returned slice must not be modified.
func (f *Frame) Columns() []Column {
	if f == nil {
		return nil
	}
	return f.columns
}

// AddColumn appends c to the frame.
func (f *Frame) AddColumn(c Column) error {
	if err := errors.ValidateColumnName(c.Name); err != nil {
		return err
	}
	if _, dup := f.Column(c.Name); dup {
		return errors.New(errors.ErrCodeInvalidColumn, "duplicate column %q", c.Name)
	}
	if len(f.columns) > 0 && c.Len() != f.NumRows() {
		return errors.New(errors.ErrCodeInvalidColumn,
			"column %q has %d rows, frame has %d", c.Name, c.Len(), f.NumRows())
	}
	if c.Missing != nil && len(c.Missing) != c.Len() {
		return errors.New(errors.ErrCodeInvalidColumn,
			"column %q missing mask has %d entries, want %d", c.Name, len(c.Missing), c.Len())
	}
	f.columns = append(f.columns, c)
	return nil
}

// Text returns the "text" column with missing cells as "".
// It reports an INVALID_INPUT error when the frame has no such column.
func (f *Frame) Text() ([]string, error) {
	c, ok := f.Column(TextColumn)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"table has no %q column (columns: %v)", TextColumn, f.Names())
	}
	return c.Strings(), nil
}
