package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

const (
	fontHeightRatio = 0.7
	fontCharWidth   = 0.6
	fontSizeMin     = 0.5
)

// FontSize returns a monospace font size that fits the label inside the box.
func FontSize(w Word) float64 {
	n := max(1, utf8.RuneCountInString(w.Label))
	byHeight := w.H * fontHeightRatio
	byWidth := w.W / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(byHeight, byWidth))
}

func renderLabel(buf *bytes.Buffer, w Word) {
	if w.Label == "" {
		return
	}
	fmt.Fprintf(buf, `  <text class="word-text" x="%s" y="%s" font-size="%s">%s</text>`+"\n",
		num(w.CX), num(w.CY), num(FontSize(w)), EscapeXML(w.Label))
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
