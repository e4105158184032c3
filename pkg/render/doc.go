// Package render converts rendered layouts between output formats.
//
// # Overview
//
// Layouts are drawn by the [sink] subpackage. Vector output is produced as
// SVG; [ToPDF] and [ToPNG] convert any SVG to other formats using the
// external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(l, sink.WithText())
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// The [sink] package also has a native PNG renderer that needs no external
// tools, and a JSON sink for external visualization tools.
//
// Visual styles live in the [styles] subpackage.
//
// [sink]: github.com/matzehuels/wordpages/pkg/render/sink
// [styles]: github.com/matzehuels/wordpages/pkg/render/styles
package render
