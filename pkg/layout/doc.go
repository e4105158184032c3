// Package layout turns text into a grid of pages made of word rectangles.
//
// # Overview
//
// The engine is a pure, single-pass transform. Given records that are either
// whole lines or single words, it produces one [Token] per word carrying the
// word's page, its line within the page, and a bounding box in layout units:
//
//  1. Classify the records (see [text.Classify]) unless [Config.Shape] fixes
//     the shape, and reflow word input into lines of [Config.WrapWidth].
//  2. Group lines into pages of [Config.LinesPerPage]; the last page may be
//     partially filled. Line numbers restart at 1 on every page.
//  3. Size the page grid with [GridSize] and give every page a [Cell] with
//     [PlaceCell], column by column unless [Config.FillByRow] is set.
//  4. Tokenize each line and place its words left to right, one unit apart.
//
// # Coordinates
//
// One horizontal unit is one character as counted by the configured measure.
// Every page is as wide as the widest line of the whole document, so pages
// line up in the grid. For a word on line n of a page in cell (x, y):
//
//	xmin = offset + x*(pageWidth + xSpace)
//	xmax = xmin + len(word)
//	ymin = -n*(H + V) - y*(linesPerPage*(H + V) + ySpace)
//	ymax = ymin - H
//
// where offset is the sum of len+1 over the preceding words on the line,
// H is [Config.CharacterHeight] and V is [Config.VerticalSpace].
//
// # Usage
//
//	l, err := layout.Build([]string{"the cat sat", "on the mat"}, layout.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	for _, t := range l.Tokens {
//	    fmt.Println(t.Word, t.Page, t.Line, t.XMin, t.XMax)
//	}
//
// Renderers in [github.com/matzehuels/wordpages/pkg/render/sink] draw one
// rectangle per token. Derived columns added with [Layout.Annotate] can drive
// their fill color.
package layout
