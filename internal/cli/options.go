package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordpages/pkg/io"
	"github.com/matzehuels/wordpages/pkg/layout"
	"github.com/matzehuels/wordpages/pkg/pipeline"
	"github.com/matzehuels/wordpages/pkg/table"
	"github.com/matzehuels/wordpages/pkg/text"
)

// optionFlags binds pipeline options to command flags. Values come from
// the defaults, then the config file, then flags the user set explicitly.
type optionFlags struct {
	config  string
	shape   string
	formats string
	opts    pipeline.Options
	setters map[string]func(*pipeline.Options)
}

func newOptionFlags() *optionFlags {
	return &optionFlags{
		opts:    pipeline.DefaultOptions(),
		shape:   string(text.ShapeAuto),
		setters: make(map[string]func(*pipeline.Options)),
	}
}

// set registers how a changed flag is copied onto resolved options.
func (f *optionFlags) set(name string, fn func(*pipeline.Options)) {
	f.setters[name] = fn
}

// addLayoutFlags registers the layout, reflow and annotation flags.
func (f *optionFlags) addLayoutFlags(cmd *cobra.Command) {
	fl := cmd.Flags()
	o := &f.opts

	fl.StringVarP(&f.config, "config", "c", "", "config file, TOML or YAML (default: ~/.config/wordpages/config.toml if present)")

	fl.IntVarP(&o.LinesPerPage, "lines-per-page", "n", o.LinesPerPage, "lines on each page")
	f.set("lines-per-page", func(d *pipeline.Options) { d.LinesPerPage = o.LinesPerPage })
	fl.Float64Var(&o.CharacterHeight, "char-height", o.CharacterHeight, "height of a word box")
	f.set("char-height", func(d *pipeline.Options) { d.CharacterHeight = o.CharacterHeight })
	fl.Float64Var(&o.VerticalSpace, "vertical-space", o.VerticalSpace, "gap between lines")
	f.set("vertical-space", func(d *pipeline.Options) { d.VerticalSpace = o.VerticalSpace })
	fl.Float64Var(&o.XSpacePages, "x-space", o.XSpacePages, "horizontal gap between pages")
	f.set("x-space", func(d *pipeline.Options) { d.XSpacePages = o.XSpacePages })
	fl.Float64Var(&o.YSpacePages, "y-space", o.YSpacePages, "vertical gap between pages")
	f.set("y-space", func(d *pipeline.Options) { d.YSpacePages = o.YSpacePages })
	fl.IntVar(&o.Rows, "rows", o.Rows, "page grid rows (default: derived)")
	f.set("rows", func(d *pipeline.Options) { d.Rows = o.Rows })
	fl.IntVar(&o.Cols, "cols", o.Cols, "page grid columns (default: derived)")
	f.set("cols", func(d *pipeline.Options) { d.Cols = o.Cols })
	fl.BoolVar(&o.FillByRow, "by-row", o.FillByRow, "place pages row by row instead of column by column")
	f.set("by-row", func(d *pipeline.Options) { d.FillByRow = o.FillByRow })

	fl.StringVar(&f.shape, "shape", f.shape, "input shape: auto, lines, words")
	f.set("shape", func(d *pipeline.Options) { d.Shape = text.Shape(f.shape) })
	fl.IntVar(&o.WrapWidth, "wrap", o.WrapWidth, "reflow width for word input")
	f.set("wrap", func(d *pipeline.Options) { d.WrapWidth = o.WrapWidth })
	fl.IntVar(&o.ChunkSize, "chunk-size", o.ChunkSize, "reflow batch size in words")
	f.set("chunk-size", func(d *pipeline.Options) { d.ChunkSize = o.ChunkSize })
	fl.StringVar(&o.Measure, "measure", o.Measure, "width measure: runes, cells")
	f.set("measure", func(d *pipeline.Options) { d.Measure = o.Measure })
	fl.BoolVar(&o.NormalizeUnicode, "nfc", o.NormalizeUnicode, "normalize input to Unicode NFC")
	f.set("nfc", func(d *pipeline.Options) { d.NormalizeUnicode = o.NormalizeUnicode })
	fl.IntVar(&o.Workers, "workers", o.Workers, "goroutines used to place lines")
	f.set("workers", func(d *pipeline.Options) { d.Workers = o.Workers })

	fl.StringSliceVar(&o.Derive, "derive", o.Derive, "derived columns: length, parity, column, row")
	f.set("derive", func(d *pipeline.Options) { d.Derive = o.Derive })
	fl.StringSliceVar(&o.Carry, "carry", o.Carry, "input columns copied onto each word")
	f.set("carry", func(d *pipeline.Options) { d.Carry = o.Carry })
}

// addRenderFlags registers the output format and drawing flags.
func (f *optionFlags) addRenderFlags(cmd *cobra.Command) {
	fl := cmd.Flags()
	o := &f.opts

	fl.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	f.set("format", func(d *pipeline.Options) { d.Formats = parseFormats(f.formats) })
	fl.StringVar(&o.Style, "style", o.Style, "visual style: simple (default), wireframe")
	f.set("style", func(d *pipeline.Options) { d.Style = o.Style })
	fl.BoolVar(&o.ShowText, "text", o.ShowText, "draw each word inside its box")
	f.set("text", func(d *pipeline.Options) { d.ShowText = o.ShowText })
	fl.BoolVar(&o.Frames, "frames", o.Frames, "outline every page")
	f.set("frames", func(d *pipeline.Options) { d.Frames = o.Frames })
	fl.StringVar(&o.Fill, "fill", o.Fill, "color words by a derived or carried column")
	f.set("fill", func(d *pipeline.Options) { d.Fill = o.Fill })
	fl.Float64Var(&o.Scale, "scale", o.Scale, "PNG pixels per layout unit")
	f.set("scale", func(d *pipeline.Options) { d.Scale = o.Scale })
}

// resolve returns the effective options for cmd.
func (f *optionFlags) resolve(cmd *cobra.Command) (pipeline.Options, error) {
	opts, err := loadConfig(f.config)
	if err != nil {
		return pipeline.Options{}, err
	}
	for name, apply := range f.setters {
		if cmd.Flags().Changed(name) {
			apply(&opts)
		}
	}
	return opts, nil
}

// loadConfig reads path, or the default config file when path is empty.
// Without either it returns the defaults.
func loadConfig(path string) (pipeline.Options, error) {
	if path != "" {
		return pipeline.LoadOptions(path)
	}
	def, err := configPath()
	if err != nil {
		return pipeline.DefaultOptions(), nil
	}
	if _, err := os.Stat(def); errors.Is(err, fs.ErrNotExist) {
		return pipeline.DefaultOptions(), nil
	}
	return pipeline.LoadOptions(def)
}

// =============================================================================
// Input
// =============================================================================

// inputFlags selects how the input file is decoded.
type inputFlags struct {
	format string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "input-format", "", "input format: text, csv, json (default: from extension)")
}

// readInput reads records from path, or from stdin when path is "-".
func readInput(path string, f inputFlags) (*table.Frame, error) {
	format := io.DetectFormat(path)
	if f.format != "" {
		parsed, err := io.ParseInputFormat(f.format)
		if err != nil {
			return nil, err
		}
		format = parsed
	}

	if path == "-" {
		frame, err := io.Read(os.Stdin, format)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return frame, nil
	}

	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()
	frame, err := io.Read(r, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frame, nil
}

// readLayout reads a JSON layout document from path, or from stdin when
// path is "-".
func readLayout(path string) (*layout.Layout, error) {
	if path == "-" {
		l, err := io.ReadLayout(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return l, nil
	}
	return io.ImportLayout(path)
}
