// Package text prepares raw text records for page layout.
//
// It contains the pieces that run before any geometry is computed:
//
//   - [Classify] decides whether a collection of records holds whole lines or
//     individual words, by sampling the first [SampleSize] records and checking
//     which fraction of them contain an interior space.
//   - [Reflower] joins a word stream into lines no wider than a target width
//     using a greedy wrap that only breaks at spaces.
//   - [Tokenizer] splits a line into words. The default [Whitespace]
//     tokenizer splits on runs of whitespace and keeps punctuation attached.
//   - [Measure] defines how long a string is in layout units. [RuneCount]
//     counts characters; [CellWidth] counts terminal display cells.
//
// # Example
//
//	records := []string{"It", "was", "the", "best", "of", "times"}
//	if text.Classify(records) == text.ShapeWords {
//	    lines := text.Reflower{Width: 12}.Reflow(records)
//	    // lines: ["It was the", "best of", "times"]
//	}
package text
