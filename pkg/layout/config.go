package layout

import (
	"github.com/matzehuels/wordpages/pkg/errors"
	"github.com/matzehuels/wordpages/pkg/text"
)

// Default configuration values.
const (
	DefaultLinesPerPage    = 25
	DefaultCharacterHeight = 3.0
	DefaultVerticalSpace   = 1.0
	DefaultXSpacePages     = 10.0
	DefaultYSpacePages     = 10.0
	DefaultWrapWidth       = text.DefaultWrapWidth
	DefaultChunkSize       = text.DefaultChunkSize
)

// Config controls how text is paginated and placed.
//
// Start from [DefaultConfig]: the spacing fields accept zero as a real value,
// so a zero Config lays pages out edge to edge. [Config.WithDefaults] only
// fills fields for which zero is meaningless.
type Config struct {
	// LinesPerPage is the page capacity in lines.
	LinesPerPage int `json:"lines_per_page" toml:"lines_per_page" yaml:"lines_per_page"`
	// CharacterHeight is the height of a word box.
	CharacterHeight float64 `json:"character_height" toml:"character_height" yaml:"character_height"`
	// VerticalSpace is the gap between consecutive lines.
	VerticalSpace float64 `json:"vertical_space" toml:"vertical_space" yaml:"vertical_space"`
	// XSpacePages and YSpacePages separate neighbouring pages in the grid.
	XSpacePages float64 `json:"x_space_pages" toml:"x_space_pages" yaml:"x_space_pages"`
	YSpacePages float64 `json:"y_space_pages" toml:"y_space_pages" yaml:"y_space_pages"`

	// Rows and Cols size the page grid; zero means derive it.
	// With neither set the grid is square.
	Rows int `json:"rows,omitempty" toml:"rows,omitempty" yaml:"rows,omitempty"`
	Cols int `json:"cols,omitempty" toml:"cols,omitempty" yaml:"cols,omitempty"`
	// FillByRow places pages left to right before moving down.
	// The default fills each column top to bottom first.
	FillByRow bool `json:"fill_by_row,omitempty" toml:"fill_by_row,omitempty" yaml:"fill_by_row,omitempty"`

	// WrapWidth is the reflow width used when the input is word-granular.
	WrapWidth int `json:"wrap_width" toml:"wrap_width" yaml:"wrap_width"`
	// ChunkSize is the reflow batch size in words.
	ChunkSize int `json:"chunk_size,omitempty" toml:"chunk_size,omitempty" yaml:"chunk_size,omitempty"`

	// Shape forces line or word interpretation; "auto" classifies the input.
	Shape text.Shape `json:"shape,omitempty" toml:"shape,omitempty" yaml:"shape,omitempty"`
	// Measure names the width measure: "runes" or "cells".
	Measure string `json:"measure,omitempty" toml:"measure,omitempty" yaml:"measure,omitempty"`
	// NormalizeUnicode converts input to NFC before measuring.
	NormalizeUnicode bool `json:"normalize_unicode,omitempty" toml:"normalize_unicode,omitempty" yaml:"normalize_unicode,omitempty"`

	// Workers bounds the goroutines used to tokenize lines. Values below 2
	// run sequentially. Output does not depend on it.
	Workers int `json:"workers,omitempty" toml:"workers,omitempty" yaml:"workers,omitempty"`

	// Tokenizer splits lines into words. It must be safe for concurrent use
	// when Workers > 1. Nil selects text.Whitespace.
	Tokenizer text.Tokenizer `json:"-" toml:"-" yaml:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		LinesPerPage:    DefaultLinesPerPage,
		CharacterHeight: DefaultCharacterHeight,
		VerticalSpace:   DefaultVerticalSpace,
		XSpacePages:     DefaultXSpacePages,
		YSpacePages:     DefaultYSpacePages,
		WrapWidth:       DefaultWrapWidth,
		ChunkSize:       DefaultChunkSize,
		Shape:           text.ShapeAuto,
		Measure:         text.MeasureRunes,
	}
}

// WithDefaults returns a copy of c with unset fields filled in.
func (c Config) WithDefaults() Config {
	if c.LinesPerPage == 0 {
		c.LinesPerPage = DefaultLinesPerPage
	}
	if c.CharacterHeight == 0 {
		c.CharacterHeight = DefaultCharacterHeight
	}
	if c.WrapWidth == 0 {
		c.WrapWidth = DefaultWrapWidth
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.Shape == "" {
		c.Shape = text.ShapeAuto
	}
	if c.Measure == "" {
		c.Measure = text.MeasureRunes
	}
	if c.Tokenizer == nil {
		c.Tokenizer = text.Whitespace{}
	}
	return c
}

// Validate reports the first invalid field as an INVALID_OPTIONS error.
func (c Config) Validate() error {
	switch {
	case c.LinesPerPage < 1:
		return invalid("lines_per_page must be at least 1, got %d", c.LinesPerPage)
	case c.CharacterHeight <= 0:
		return invalid("character_height must be positive, got %g", c.CharacterHeight)
	case c.VerticalSpace < 0:
		return invalid("vertical_space cannot be negative, got %g", c.VerticalSpace)
	case c.XSpacePages < 0 || c.YSpacePages < 0:
		return invalid("page spacing cannot be negative, got x=%g y=%g", c.XSpacePages, c.YSpacePages)
	case c.Rows < 0 || c.Cols < 0:
		return invalid("rows and cols cannot be negative, got rows=%d cols=%d", c.Rows, c.Cols)
	case c.WrapWidth < 1:
		return invalid("wrap_width must be at least 1, got %d", c.WrapWidth)
	case c.ChunkSize < 1:
		return invalid("chunk_size must be at least 1, got %d", c.ChunkSize)
	case c.Workers < 0:
		return invalid("workers cannot be negative, got %d", c.Workers)
	}
	if _, err := text.ParseShape(string(c.Shape)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOptions, err, "shape")
	}
	if _, err := text.MeasureFor(c.Measure); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOptions, err, "measure")
	}
	return nil
}

// lineHeight is the vertical advance from one line to the next.
func (c Config) lineHeight() float64 { return c.CharacterHeight + c.VerticalSpace }

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidOptions, format, args...)
}
