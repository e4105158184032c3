package styles

import (
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette returns n visually distinct fill colors as hex strings.
// Hues are spread evenly around the HCL circle at fixed chroma and
// lightness.
func Palette(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		h := 360 * float64(i) / float64(max(n, 1))
		colors[i] = colorful.Hcl(h, 0.35, 0.82).Clamped().Hex()
	}
	return colors
}

// CategoryFills assigns a palette color to each distinct non-empty value.
// Categories are ordered by value so the mapping does not depend on the
// order words appear in.
func CategoryFills(values []string) map[string]string {
	var cats []string
	seen := map[string]bool{}
	for _, v := range values {
		if v != "" && !seen[v] {
			seen[v] = true
			cats = append(cats, v)
		}
	}
	slices.Sort(cats)

	palette := Palette(len(cats))
	fills := make(map[string]string, len(cats))
	for i, c := range cats {
		fills[c] = palette[i]
	}
	return fills
}
