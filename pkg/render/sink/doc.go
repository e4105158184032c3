// Package sink provides output format renderers for word layouts.
//
// # Overview
//
// A "sink" transforms a computed [layout.Layout] into a final output format.
// Every sink draws one rectangle per word at [xmin, xmax] x [ymax, ymin],
// optionally with page frames and the word text. This package provides
// renderers for:
//
//   - SVG: Scalable vector graphics
//   - PNG: Native raster output (no external tools)
//   - PDF: Print-ready output (requires rsvg-convert)
//   - JSON: Drawing coordinates for external tools
//
// # Coordinates
//
// Layouts grow downward into negative y. Sinks flip the vertical axis and
// shift the layout's [layout.Grid.Bounds] by a margin, so the top-left page
// corner lands at (margin, margin) in drawing units. One drawing unit is one
// layout unit; the scale option sets pixels per unit.
//
// # SVG Output
//
//	svg, err := sink.RenderSVG(l,
//	    sink.WithStyle(styles.Wireframe{}),
//	    sink.WithText(),
//	    sink.WithFrames(),
//	    sink.WithFill("pos"),
//	)
//
// [WithFill] colors each word by the value of an annotation column, one
// palette color per distinct value; words with a missing or empty value use
// the style default.
//
// # PDF and PNG Output
//
// [RenderPDF] renders SVG and converts it via [render.ToPDF]. [RenderPNG]
// rasterizes directly with golang.org/x/image, drawing labels in a fixed
// 7x13 bitmap face where they fit.
//
// [layout.Layout]: github.com/matzehuels/wordpages/pkg/layout.Layout
// [layout.Grid.Bounds]: github.com/matzehuels/wordpages/pkg/layout.Grid.Bounds
// [render.ToPDF]: github.com/matzehuels/wordpages/pkg/render.ToPDF
package sink
