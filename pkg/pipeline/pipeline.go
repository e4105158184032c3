// Package pipeline provides the layout → render pipeline for wordpages.
//
// This package implements the complete pipeline that is shared by the CLI
// and the HTTP server. By centralizing this logic, both entry points apply
// the same defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: classify the records, reflow word input, paginate, place the
//     pages on a grid and attach derived columns
//  2. Render: draw the layout in one or more formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{"svg", "png"}
//	result, err := runner.Execute(ctx, frame, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	l, err := runner.Layout(ctx, frame, opts)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordpages/pkg/cache"
	"github.com/matzehuels/wordpages/pkg/errors"
	"github.com/matzehuels/wordpages/pkg/layout"
	"github.com/matzehuels/wordpages/pkg/render/styles"
	"github.com/matzehuels/wordpages/pkg/text"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultStyle is the default visual style.
const DefaultStyle = styles.NameSimple

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	styles.NameSimple:    true,
	styles.NameWireframe: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// It is decoded from config files and HTTP request bodies.
type Options struct {
	layout.Config `yaml:",inline"`

	// Annotation options
	Derive []string `json:"derive,omitempty" toml:"derive,omitempty" yaml:"derive,omitempty"`
	Carry  []string `json:"carry,omitempty" toml:"carry,omitempty" yaml:"carry,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty" toml:"formats,omitempty" yaml:"formats,omitempty"`
	Style    string   `json:"style,omitempty" toml:"style,omitempty" yaml:"style,omitempty"`
	ShowText bool     `json:"show_text,omitempty" toml:"show_text,omitempty" yaml:"show_text,omitempty"`
	Frames   bool     `json:"frames,omitempty" toml:"frames,omitempty" yaml:"frames,omitempty"`
	Fill     string   `json:"fill,omitempty" toml:"fill,omitempty" yaml:"fill,omitempty"`
	Scale    float64  `json:"scale,omitempty" toml:"scale,omitempty" yaml:"scale,omitempty"`

	// Refresh skips cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty" toml:"-" yaml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-" yaml:"-"`
}

// DefaultOptions returns the default layout configuration with SVG output
// in the default style.
func DefaultOptions() Options {
	return Options{
		Config:  layout.DefaultConfig(),
		Formats: []string{FormatSVG},
		Style:   DefaultStyle,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and HTTP responses.
	RunID string

	// InputHash is the content hash of the input records.
	InputHash string

	// LayoutKey is the cache key of the layout.
	LayoutKey string

	// Layout is the computed layout.
	Layout *layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int
	Words      int
	Lines      int
	Pages      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: simple, wireframe)", style)
	}
	return nil
}

// ValidateDerive checks that every derived column name is known.
func ValidateDerive(names []string) error {
	for _, name := range names {
		if _, ok := derivers[name]; !ok {
			return errors.New(errors.ErrCodeInvalidColumn,
				"unknown derived column %q (must be one of: %s)", name, joinNames(DerivedColumns))
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
// Spacing fields keep their values since zero spacing is valid.
func (o *Options) SetLayoutDefaults() {
	o.Config = o.Config.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if err := ValidateDerive(o.Derive); err != nil {
		return err
	}
	for _, name := range o.Carry {
		if err := errors.ValidateColumnName(name); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "scale cannot be negative, got %g", o.Scale)
	}
	return nil
}

// Validate checks and defaults the options for the full pipeline.
func (o *Options) Validate() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		LinesPerPage:     o.LinesPerPage,
		CharacterHeight:  o.CharacterHeight,
		VerticalSpace:    o.VerticalSpace,
		XSpacePages:      o.XSpacePages,
		YSpacePages:      o.YSpacePages,
		Rows:             o.Rows,
		Cols:             o.Cols,
		FillByRow:        o.FillByRow,
		WrapWidth:        o.WrapWidth,
		ChunkSize:        o.ChunkSize,
		Shape:            string(o.Shape),
		Measure:          o.Measure,
		NormalizeUnicode: o.NormalizeUnicode,
		Derive:           o.Derive,
		Carry:            o.Carry,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Style:    o.Style,
		ShowText: o.ShowText,
		Frames:   o.Frames,
		Fill:     o.Fill,
		Scale:    o.Scale,
	}
}

// Cacheable reports whether layouts built with these options can be cached.
// A custom tokenizer is opaque to the cache key.
func (o *Options) Cacheable() bool {
	return o.Tokenizer == nil || o.Tokenizer == text.Tokenizer(text.Whitespace{})
}
