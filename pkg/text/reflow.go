package text

import "strings"

// Reflow defaults.
const (
	DefaultWrapWidth = 80
	DefaultChunkSize = 1000
)

// Reflower joins word tokens into lines of bounded width.
//
// Words are processed in chunks of ChunkSize; a line never spans two chunks.
// Within a chunk the words are joined with single spaces and wrapped greedily
// at Width, breaking only at spaces. A word wider than Width is placed on a
// line of its own.
type Reflower struct {
	Width     int     // maximum line width in layout units (default 80)
	ChunkSize int     // words per batch (default 1000)
	Measure   Measure // width measure (default RuneCount)
}

// Reflow wraps words into lines using the default chunk size and measure.
func Reflow(words []string, width int) []string {
	return Reflower{Width: width}.Reflow(words)
}

// Reflow returns the wrapped lines for words. Re-joining the result with
// spaces yields strings.Join(words, " ") up to whitespace normalization.
func (r Reflower) Reflow(words []string) []string {
	r = r.withDefaults()

	var lines []string
	for start := 0; start < len(words); start += r.ChunkSize {
		end := min(start+r.ChunkSize, len(words))
		joined := strings.Join(words[start:end], " ")
		lines = append(lines, Wrap(joined, r.Width, r.Measure)...)
	}
	return lines
}

func (r Reflower) withDefaults() Reflower {
	if r.Width <= 0 {
		r.Width = DefaultWrapWidth
	}
	if r.ChunkSize <= 0 {
		r.ChunkSize = DefaultChunkSize
	}
	if r.Measure == nil {
		r.Measure = RuneCount
	}
	return r
}

// Wrap greedily breaks s into lines no wider than width, measured with m.
// Runs of whitespace collapse to a single space. A nil measure counts runes.
func Wrap(s string, width int, m Measure) []string {
	if m == nil {
		m = RuneCount
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var (
		lines []string
		b     strings.Builder
		col   int
	)
	for _, w := range words {
		wLen := m(w)
		if b.Len() > 0 && col+1+wLen <= width {
			b.WriteByte(' ')
			b.WriteString(w)
			col += 1 + wLen
			continue
		}
		if b.Len() > 0 {
			lines = append(lines, b.String())
			b.Reset()
		}
		b.WriteString(w)
		col = wLen
	}
	return append(lines, b.String())
}
