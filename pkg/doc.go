// Package pkg provides the core libraries for wordpages page layouts.
//
// # Overview
//
// wordpages places every word of a text on a grid of pages, giving each word
// a bounding box in a shared coordinate space. The result can be exported as
// a flat table (one row per word) or drawn as SVG, PNG, PDF or JSON. The pkg
// directory is organized into four main areas:
//
//  1. [text] and [table] - Input handling (classification, reflow, columns)
//  2. [layout] - Pagination and page placement
//  3. [io] and [render] - Serialization and drawing
//  4. [pipeline] - Orchestration (input → layout → render) with caching
//
// # Architecture
//
// The typical data flow through wordpages:
//
//	Text, CSV or JSON records
//	         ↓
//	    [io] package (read records into a [table] frame)
//	         ↓
//	    [text] package (classify lines or words, reflow words into lines)
//	         ↓
//	    [layout] package (paginate, place pages, assign word boxes)
//	         ↓
//	    CSV/JSON/YAML table or SVG/PNG/PDF/JSON drawing
//
// # Quick Start
//
// Lay out two lines, one per page, and draw the result:
//
//	import (
//	    "github.com/matzehuels/wordpages/pkg/layout"
//	    "github.com/matzehuels/wordpages/pkg/render/sink"
//	)
//
//	cfg := layout.DefaultConfig()
//	cfg.LinesPerPage = 1
//
//	l, _ := layout.Build([]string{"the cat sat", "on the mat"}, cfg)
//	svg, _ := sink.RenderSVG(l, sink.WithText(), sink.WithFrames())
//
// # Main Packages
//
// [text] - The input classifier ([text.Classify]) decides whether records are
// lines or single words from the share of records containing a space. The
// reflow engine ([text.Reflow]) joins words into lines no wider than a width
// limit.
//
// [layout] - Splits lines into pages, sizes the page grid, and computes the
// bounding box of every word. [layout.Build] accepts strings, nullable
// strings or a [table] frame.
//
// [table] - A small column store for tabular input. Extra columns travel with
// each word and can be derived or carried onto the layout.
//
// [io] - Reads plain text, CSV and JSON input; writes layouts as CSV, JSON
// or YAML.
//
// [render] - Draws layouts. [render/sink] produces SVG, PNG, PDF and JSON;
// [render/styles] holds the visual styles.
//
// [pipeline] - The layout and render pipeline used by the CLI and the HTTP
// server, with cache lookups around each stage.
//
// [cache] - Result caching on the filesystem, in Redis or in MongoDB.
//
// [server] - HTTP API over the pipeline.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/layout/...    # Specific package
//	go test -run Example ./...  # Examples only
//
// [text]: https://pkg.go.dev/github.com/matzehuels/wordpages/pkg/text
// [table]: https://pkg.go.dev/github.com/matzehuels/wordpages/pkg/table
// [layout]: https://pkg.go.dev/github.com/matzehuels/wordpages/pkg/layout
// [io]: https://pkg.go.dev/github.com/matzehuels/wordpages/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/wordpages/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/wordpages/pkg/render/sink
// [render/styles]: https://pkg.go.dev/github.com/matzehuels/wordpages/pkg/render/styles
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/wordpages/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/wordpages/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/wordpages/pkg/server
// [text.Classify]: https://pkg.go.dev/github.com/matzehuels/wordpages/pkg/text#Classify
// [text.Reflow]: https://pkg.go.dev/github.com/matzehuels/wordpages/pkg/text#Reflow
// [layout.Build]: https://pkg.go.dev/github.com/matzehuels/wordpages/pkg/layout#Build
package pkg
