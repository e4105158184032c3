package sink

import (
	"bytes"
	"encoding/json"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/wordpages/pkg/errors"
	"github.com/matzehuels/wordpages/pkg/layout"
	"github.com/matzehuels/wordpages/pkg/render"
	"github.com/matzehuels/wordpages/pkg/render/styles"
)

func sample(t *testing.T) *layout.Layout {
	t.Helper()
	cfg := layout.DefaultConfig()
	cfg.LinesPerPage = 1
	l, err := layout.Build([]string{"the cat sat", "on the mat"}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Annotate("pos", []string{"DET", "NOUN", "VERB", "ADP", "DET", "NOUN"}); err != nil {
		t.Fatal(err)
	}
	return l
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(sample(t), WithText(), WithFrames())
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	out := string(svg)

	for _, want := range []string{
		`viewBox="0 0 36.00 25.00" width="288" height="200"`,
		`id="word-0" data-page="1" x="2" y="6" width="3" height="3"`,
		`id="word-3" data-page="2" x="2" y="20" width="2" height="3"`,
		`id="page-2" x="2" y="16" width="11" height="7"`,
		`>mat</text>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %s\n%s", want, out)
		}
	}
	if n := strings.Count(out, `class="word"`); n != 6 {
		t.Errorf("SVG has %d word boxes, want 6", n)
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("SVG not terminated")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	l := sample(t)

	plain, _ := RenderSVG(l)
	if bytes.Contains(plain, []byte("<text")) || bytes.Contains(plain, []byte(`class="page"`)) {
		t.Error("text and frames should be off by default")
	}

	scaled, _ := RenderSVG(l, WithScale(1), WithMargin(0))
	if !bytes.Contains(scaled, []byte(`viewBox="0 0 32.00 21.00" width="32" height="21"`)) {
		t.Errorf("scale/margin not applied:\n%s", scaled)
	}

	wire, _ := RenderSVG(l, WithStyle(styles.Wireframe{}))
	if !bytes.Contains(wire, []byte(`fill="none"`)) {
		t.Error("wireframe style not applied")
	}

	filled, err := RenderSVG(l, WithFill("pos"))
	if err != nil {
		t.Fatal(err)
	}
	fills := styles.CategoryFills([]string{"DET", "NOUN", "VERB", "ADP"})
	if !bytes.Contains(filled, []byte(`fill="`+fills["VERB"]+`"`)) {
		t.Error("fill color for VERB not used")
	}

	_, err = RenderSVG(l, WithFill("missing"))
	if !errors.Is(err, errors.ErrCodeInvalidColumn) {
		t.Errorf("RenderSVG(missing fill) error = %v, want INVALID_COLUMN", err)
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	l, err := layout.Build([]string{}, layout.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	svg, err := RenderSVG(l)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte(`viewBox="0 0 4.00 4.00"`)) {
		t.Errorf("empty layout SVG = %s", svg)
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(sample(t), WithPNGText(), WithPNGFrames())
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 144 || b.Dy() != 100 {
		t.Errorf("image size = %dx%d, want 144x100", b.Dx(), b.Dy())
	}
	if got := color.RGBAModel.Convert(img.At(1, 1)); got != pngBackground {
		t.Errorf("background pixel = %v, want %v", got, pngBackground)
	}
	// Inside the box of "the", away from the outline and the label.
	if got := color.RGBAModel.Convert(img.At(9, 26)); got != pngWordFill {
		t.Errorf("word pixel = %v, want %v", got, pngWordFill)
	}
}

func TestRenderPNGFill(t *testing.T) {
	data, err := RenderPNG(sample(t), WithPNGFill("pos"), WithPNGScale(2))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if got := color.RGBAModel.Convert(img.At(7, 15)); got == pngWordFill || got == pngBackground {
		t.Errorf("filled word pixel = %v, want a palette color", got)
	}
}

func TestRenderPNGTooLarge(t *testing.T) {
	_, err := RenderPNG(sample(t), WithPNGScale(1000))
	if !errors.Is(err, errors.ErrCodeInvalidOptions) {
		t.Errorf("RenderPNG() error = %v, want INVALID_OPTIONS", err)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sample(t), WithJSONStyle("simple"), WithJSONFill("pos"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Width != 36 || out.Height != 25 || out.Style != "simple" {
		t.Errorf("canvas = %vx%v style %q", out.Width, out.Height, out.Style)
	}
	if len(out.Pages) != 2 || out.Pages[1].Row != 1 || out.Pages[1].Y != 16 {
		t.Errorf("pages = %+v", out.Pages)
	}
	w := out.Words[0]
	if w.Label != "the" || w.X != 2 || w.Y != 6 || w.Width != 3 || w.Fill == "" {
		t.Errorf("first word = %+v", w)
	}
}

func TestRenderPDF(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	pdf, err := RenderPDF(sample(t), WithPDFSVGOptions(WithText()))
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("RenderPDF() output is not a PDF")
	}
}
