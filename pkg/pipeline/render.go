package pipeline

import (
	"bytes"
	"fmt"

	pkgio "github.com/matzehuels/wordpages/pkg/io"
	"github.com/matzehuels/wordpages/pkg/layout"
	"github.com/matzehuels/wordpages/pkg/render/sink"
	"github.com/matzehuels/wordpages/pkg/render/styles"
)

// Render generates output artifacts in the requested formats.
func Render(l *layout.Layout, opts Options) (map[string][]byte, error) {
	svgOpts, err := buildSVGOptions(opts)
	if err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, buildPNGOptions(opts)...)
		case FormatPDF:
			data, err = sink.RenderPDF(l, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(l, buildJSONOptions(opts)...)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options. PDF reuses them.
func buildSVGOptions(opts Options) ([]sink.SVGOption, error) {
	style, err := styles.Parse(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := []sink.SVGOption{sink.WithStyle(style)}

	if opts.ShowText {
		svgOpts = append(svgOpts, sink.WithText())
	}
	if opts.Frames {
		svgOpts = append(svgOpts, sink.WithFrames())
	}
	if opts.Fill != "" {
		svgOpts = append(svgOpts, sink.WithFill(opts.Fill))
	}
	if opts.Scale > 0 {
		svgOpts = append(svgOpts, sink.WithScale(opts.Scale))
	}
	return svgOpts, nil
}

func buildPNGOptions(opts Options) []sink.PNGOption {
	var pngOpts []sink.PNGOption
	if opts.ShowText {
		pngOpts = append(pngOpts, sink.WithPNGText())
	}
	if opts.Frames {
		pngOpts = append(pngOpts, sink.WithPNGFrames())
	}
	if opts.Fill != "" {
		pngOpts = append(pngOpts, sink.WithPNGFill(opts.Fill))
	}
	if opts.Scale > 0 {
		pngOpts = append(pngOpts, sink.WithPNGScale(opts.Scale))
	}
	return pngOpts
}

func buildJSONOptions(opts Options) []sink.JSONOption {
	jsonOpts := []sink.JSONOption{sink.WithJSONStyle(opts.Style)}
	if opts.Fill != "" {
		jsonOpts = append(jsonOpts, sink.WithJSONFill(opts.Fill))
	}
	return jsonOpts
}

// =============================================================================
// Layout Serialization
// =============================================================================

func encodeLayout(l *layout.Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(l, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeLayout(data []byte) (*layout.Layout, error) {
	return pkgio.ReadLayout(bytes.NewReader(data))
}
