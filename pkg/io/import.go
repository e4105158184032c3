package io

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/wordpages/pkg/errors"
	"github.com/matzehuels/wordpages/pkg/table"
)

// InputFormat names a supported input encoding.
type InputFormat string

const (
	FormatText InputFormat = "text"
	FormatCSV  InputFormat = "csv"
	FormatJSON InputFormat = "json"
)

// MissingCSV is the CSV cell value read as a missing record.
const MissingCSV = "NA"

// maxLine bounds a single input line.
const maxLine = 16 << 20

// DetectFormat picks the input format from a file name.
func DetectFormat(path string) InputFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	}
	return FormatText
}

// ParseInputFormat converts a user-supplied format name.
func ParseInputFormat(s string) (InputFormat, error) {
	switch f := InputFormat(strings.ToLower(s)); f {
	case FormatText, FormatCSV, FormatJSON:
		return f, nil
	case "txt":
		return FormatText, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q (must be text, csv or json)", s)
}

// Import reads the file at path in the format implied by its extension.
func Import(path string) (*table.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	frame, err := Read(f, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frame, nil
}

// Read decodes r in the given format.
func Read(r io.Reader, format InputFormat) (*table.Frame, error) {
	switch format {
	case FormatText, "":
		lines, err := ReadText(r)
		if err != nil {
			return nil, err
		}
		return table.FromStrings(table.TextColumn, lines), nil
	case FormatCSV:
		return ReadCSV(r)
	case FormatJSON:
		return ReadJSON(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", format)
}

// ReadText returns the lines of r without their terminators.
// A trailing newline does not produce an empty final record.
func ReadText(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return lines, nil
}

// ReadCSV decodes a CSV document with a header row. Every column is kept;
// the document must contain a "text" column. Cells equal to [MissingCSV]
// are marked missing.
func ReadCSV(r io.Reader) (*table.Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode csv")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "csv has no header row")
	}

	header, rows := records[0], records[1:]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if !slices.Contains(header, table.TextColumn) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "csv has no %q column (found %s)",
			table.TextColumn, strings.Join(header, ", "))
	}

	cols := make([]table.Column, len(header))
	for j, name := range header {
		cols[j] = table.Column{Name: name, Values: make([]string, len(rows))}
	}
	for i, row := range rows {
		for j, v := range row {
			if v == MissingCSV {
				markMissing(&cols[j], i, len(rows))
				continue
			}
			cols[j].Values[i] = v
		}
	}
	return table.New(cols...)
}

// ReadJSON decodes a JSON array of strings or of objects.
//
// For string arrays null entries are missing. For object arrays every key
// becomes a column, "text" first and the rest sorted by name; strings are
// taken as-is, null or absent keys are missing, and other values keep their
// JSON encoding.
func ReadJSON(r io.Reader) (*table.Frame, error) {
	var items []json.RawMessage
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json (want an array)")
	}

	kind := byte('"')
	for _, it := range items {
		if b := firstByte(it); b != 'n' {
			kind = b
			break
		}
	}

	switch kind {
	case '"':
		values := make([]*string, len(items))
		for i, it := range items {
			if err := json.Unmarshal(it, &values[i]); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "element %d", i)
			}
		}
		return table.FromNullable(table.TextColumn, values), nil
	case '{':
		return readObjects(items)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "json array must hold strings or objects")
}

func readObjects(items []json.RawMessage) (*table.Frame, error) {
	objects := make([]map[string]json.RawMessage, len(items))
	keys := map[string]bool{}
	for i, it := range items {
		if firstByte(it) == 'n' {
			continue
		}
		if err := json.Unmarshal(it, &objects[i]); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "element %d", i)
		}
		for k := range objects[i] {
			keys[k] = true
		}
	}
	if !keys[table.TextColumn] {
		return nil, errors.New(errors.ErrCodeInvalidInput, "json objects have no %q key", table.TextColumn)
	}

	names := make([]string, 0, len(keys))
	for k := range keys {
		if k != table.TextColumn {
			names = append(names, k)
		}
	}
	slices.Sort(names)
	names = append([]string{table.TextColumn}, names...)

	cols := make([]table.Column, len(names))
	for j, name := range names {
		c := table.Column{Name: name, Values: make([]string, len(items))}
		for i, obj := range objects {
			raw, ok := obj[name]
			if !ok || firstByte(raw) == 'n' {
				markMissing(&c, i, len(items))
				continue
			}
			if firstByte(raw) == '"' {
				if err := json.Unmarshal(raw, &c.Values[i]); err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "element %d key %q", i, name)
				}
				continue
			}
			c.Values[i] = string(raw)
		}
		cols[j] = c
	}
	return table.New(cols...)
}

func markMissing(c *table.Column, i, n int) {
	if c.Missing == nil {
		c.Missing = make([]bool, n)
	}
	c.Missing[i] = true
}

func firstByte(raw json.RawMessage) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}
