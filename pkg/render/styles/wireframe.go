package styles

import (
	"bytes"
	"fmt"
)

// Wireframe draws word boxes as outlines only. A fill color, when set,
// becomes the outline color.
type Wireframe struct{}

func (Wireframe) Name() string { return NameWireframe }

func (Wireframe) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <style>
    .page { fill: none; stroke: #dddddd; }
    .word-text { font-family: monospace; fill: #555; dominant-baseline: central; text-anchor: middle; }
  </style>
`)
}

func (Wireframe) RenderPage(buf *bytes.Buffer, p Page) {
	fmt.Fprintf(buf, `  <rect class="page" id="page-%d" x="%s" y="%s" width="%s" height="%s"/>`+"\n",
		p.Number, num(p.X), num(p.Y), num(p.W), num(p.H))
}

func (Wireframe) RenderWord(buf *bytes.Buffer, w Word) {
	stroke := w.Fill
	if stroke == "" {
		stroke = "#000000"
	}
	fmt.Fprintf(buf, `  <rect class="word" id="word-%d" data-page="%d" x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="0.15"/>`+"\n",
		w.Index, w.Page, num(w.X), num(w.Y), num(w.W), num(w.H), stroke)
}

func (Wireframe) RenderText(buf *bytes.Buffer, w Word) {
	renderLabel(buf, w)
}
