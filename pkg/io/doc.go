// Package io reads input documents and writes computed layouts.
//
// # Input
//
// Three input formats are recognised, by file extension:
//
//   - text (.txt, or any unknown extension): one record per line
//   - csv (.csv): a header row followed by records; the "text" column holds
//     the records and cells equal to NA are treated as missing
//   - json (.json): an array of strings (null entries are missing), or an
//     array of objects with a "text" key
//
// All readers return a [table.Frame] so callers can keep the extra columns
// of a CSV or JSON document and attach them to the layout as annotations:
//
//	f, err := io.Import("chapter.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	l, err := layout.Build(f, layout.DefaultConfig())
//
// # Output
//
// A layout can be written as JSON, YAML or CSV. JSON and YAML carry the grid
// metadata and annotations alongside the words:
//
//	{
//	  "shape": "lines",
//	  "lines": 2,
//	  "grid": {"pages": 2, "rows": 2, "cols": 2, ...},
//	  "words": [
//	    {"word": "the", "page": 1, "line": 1, "xmin": 0, "xmax": 3, "ymin": -4, "ymax": -7},
//	    ...
//	  ],
//	  "annotations": [{"name": "pos", "values": ["DET", ...]}]
//	}
//
// CSV writes the flat table word,page,line,xmin,xmax,ymin,ymax followed by
// one column per annotation. JSON documents can be read back with
// [ReadLayout], which restores everything except the source line index.
//
// [table.Frame]: github.com/matzehuels/wordpages/pkg/table.Frame
package io
