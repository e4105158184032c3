package styles

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/wordpages/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", NameSimple},
		{"simple", NameSimple},
		{"Wireframe", NameWireframe},
	}
	for _, tt := range tests {
		s, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.in, err)
		}
		if s.Name() != tt.want {
			t.Errorf("Parse(%q).Name() = %q, want %q", tt.in, s.Name(), tt.want)
		}
	}

	if _, err := Parse("handdrawn"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("Parse(handdrawn) error = %v, want INVALID_STYLE", err)
	}
}

func TestRenderWord(t *testing.T) {
	w := Word{Index: 3, Label: "cat", Page: 1, X: 4, Y: 4, W: 3, H: 3, CX: 5.5, CY: 5.5}

	tests := []struct {
		style Style
		fill  string
		want  []string
	}{
		{Simple{}, "", []string{`id="word-3"`, `x="4"`, `width="3"`, `fill="#d9d9d9"`}},
		{Simple{}, "#ff0000", []string{`fill="#ff0000"`}},
		{Wireframe{}, "", []string{`fill="none"`, `stroke="#000000"`}},
		{Wireframe{}, "#00ff00", []string{`stroke="#00ff00"`}},
	}
	for _, tt := range tests {
		t.Run(tt.style.Name()+tt.fill, func(t *testing.T) {
			var buf bytes.Buffer
			w := w
			w.Fill = tt.fill
			tt.style.RenderWord(&buf, w)
			for _, s := range tt.want {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("RenderWord() = %s, missing %s", buf.String(), s)
				}
			}
		})
	}
}

func TestRenderTextEscapes(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderText(&buf, Word{Label: "<a&b>", W: 5, H: 3})
	if !strings.Contains(buf.String(), "&lt;a&amp;b&gt;") {
		t.Errorf("RenderText() did not escape label: %s", buf.String())
	}

	buf.Reset()
	Simple{}.RenderText(&buf, Word{W: 5, H: 3})
	if buf.Len() != 0 {
		t.Errorf("RenderText() with empty label wrote %q", buf.String())
	}
}

func TestFontSize(t *testing.T) {
	// Height bound: a long box with a short label.
	h := 3.0
	if got, want := FontSize(Word{Label: "a", W: 10, H: h}), h*fontHeightRatio; got != want {
		t.Errorf("FontSize(tall) = %v, want %v", got, want)
	}
	// Width bound: the label must fit its box.
	w := Word{Label: "abcd", W: 4, H: 3}
	if got := FontSize(w); got*fontCharWidth*4 > w.W+1e-9 {
		t.Errorf("FontSize(narrow) = %v overflows width %v", got, w.W)
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{0: "0", -4: "-4", 1.005: "1", 2.25: "2.25", -0.001: "0", 10.126: "10.13"}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPalette(t *testing.T) {
	hex := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	colors := Palette(8)
	seen := map[string]bool{}
	for _, c := range colors {
		if !hex.MatchString(c) {
			t.Errorf("Palette() color %q is not a hex color", c)
		}
		if seen[c] {
			t.Errorf("Palette() repeats %q", c)
		}
		seen[c] = true
	}
	if len(Palette(0)) != 0 {
		t.Error("Palette(0) should be empty")
	}
}

func TestCategoryFills(t *testing.T) {
	a := CategoryFills([]string{"NOUN", "", "VERB", "NOUN"})
	b := CategoryFills([]string{"VERB", "NOUN"})
	if len(a) != 2 {
		t.Fatalf("CategoryFills() has %d entries, want 2", len(a))
	}
	if a["NOUN"] != b["NOUN"] || a["VERB"] != b["VERB"] {
		t.Error("CategoryFills() should not depend on input order")
	}
	if _, ok := a[""]; ok {
		t.Error("empty values should not get a fill")
	}
}
