package styles

import (
	"bytes"
	"fmt"
)

const (
	simpleFill   = "#d9d9d9"
	simpleStroke = "#333333"
	pageStroke   = "#bbbbbb"
)

// Simple draws filled grey word boxes with a thin outline.
type Simple struct{}

func (Simple) Name() string { return NameSimple }

func (Simple) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <style>
    .page { fill: none; stroke: ` + pageStroke + `; stroke-dasharray: 4 2; }
    .word-text { font-family: monospace; fill: #111; dominant-baseline: central; text-anchor: middle; }
  </style>
`)
}

func (Simple) RenderPage(buf *bytes.Buffer, p Page) {
	fmt.Fprintf(buf, `  <rect class="page" id="page-%d" x="%s" y="%s" width="%s" height="%s"/>`+"\n",
		p.Number, num(p.X), num(p.Y), num(p.W), num(p.H))
}

func (Simple) RenderWord(buf *bytes.Buffer, w Word) {
	fill := w.Fill
	if fill == "" {
		fill = simpleFill
	}
	fmt.Fprintf(buf, `  <rect class="word" id="word-%d" data-page="%d" x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="0.1"/>`+"\n",
		w.Index, w.Page, num(w.X), num(w.Y), num(w.W), num(w.H), fill, simpleStroke)
}

func (Simple) RenderText(buf *bytes.Buffer, w Word) {
	renderLabel(buf, w)
}
