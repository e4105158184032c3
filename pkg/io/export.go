package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/wordpages/pkg/errors"
	"github.com/matzehuels/wordpages/pkg/layout"
	"github.com/matzehuels/wordpages/pkg/table"
	"github.com/matzehuels/wordpages/pkg/text"
)

// OutputFormat names a supported layout encoding.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
	OutputCSV  OutputFormat = "csv"
)

// OutputFormats lists the layout encodings in display order.
var OutputFormats = []OutputFormat{OutputJSON, OutputYAML, OutputCSV}

// ParseOutputFormat converts a user-supplied format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case OutputJSON, OutputYAML, OutputCSV:
		return f, nil
	case "yml":
		return OutputYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown layout format %q (must be json, yaml or csv)", s)
}

// Document is the serialized form of a layout.
type Document struct {
	Shape       text.Shape     `json:"shape" yaml:"shape"`
	Lines       int            `json:"lines" yaml:"lines"`
	Grid        layout.Grid    `json:"grid" yaml:"grid"`
	Words       []layout.Token `json:"words" yaml:"words"`
	Annotations []Annotation   `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// Annotation is a derived column; nil values are missing.
type Annotation struct {
	Name   string    `json:"name" yaml:"name"`
	Values []*string `json:"values" yaml:"values"`
}

// NewDocument converts a layout into its serialized form.
func NewDocument(l *layout.Layout) Document {
	doc := Document{
		Shape: l.Shape,
		Lines: l.Lines,
		Grid:  l.Grid,
		Words: l.Tokens,
	}
	if doc.Words == nil {
		doc.Words = []layout.Token{}
	}
	for _, c := range l.Annotations() {
		a := Annotation{Name: c.Name, Values: make([]*string, c.Len())}
		for i := range c.Values {
			if v, ok := c.At(i); ok {
				a.Values[i] = &v
			}
		}
		doc.Annotations = append(doc.Annotations, a)
	}
	return doc
}

// Layout converts the document back into a layout.
func (d Document) Layout() (*layout.Layout, error) {
	l := &layout.Layout{
		Tokens: d.Words,
		Grid:   d.Grid,
		Shape:  d.Shape,
		Lines:  d.Lines,
	}
	if l.Tokens == nil {
		l.Tokens = []layout.Token{}
	}
	for _, a := range d.Annotations {
		if err := l.AnnotateColumn(table.FromNullable(a.Name, a.Values).Columns()[0]); err != nil {
			return nil, fmt.Errorf("annotation %s: %w", a.Name, err)
		}
	}
	return l, nil
}

// Write encodes l to w in the given format.
func Write(l *layout.Layout, w io.Writer, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return WriteJSON(l, w)
	case OutputYAML:
		return WriteYAML(l, w)
	case OutputCSV:
		return WriteCSV(l, w)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown layout format %q", format)
}

// WriteJSON encodes l as an indented JSON [Document].
// The output can be read back with [ReadLayout].
func WriteJSON(l *layout.Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(l)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes l as a YAML [Document].
func WriteYAML(l *layout.Layout, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(l)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// WriteCSV writes the flat word table of l, annotations included.
// Missing annotation cells are written as [MissingCSV].
func WriteCSV(l *layout.Layout, w io.Writer) error {
	f := l.Frame()
	cols := f.Columns()

	cw := csv.NewWriter(w)
	if err := cw.Write(f.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(cols))
	for i := range f.NumRows() {
		for j, c := range cols {
			v, ok := c.At(i)
			if !ok {
				v = MissingCSV
			}
			row[j] = v
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadLayout decodes a JSON document written by [WriteJSON].
func ReadLayout(r io.Reader) (*layout.Layout, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout")
	}
	return doc.Layout()
}

// Export writes l to a file at path.
func Export(l *layout.Layout, path string, format OutputFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(l, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ImportLayout reads a layout JSON file at path.
func ImportLayout(path string) (*layout.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayout(f)
}
