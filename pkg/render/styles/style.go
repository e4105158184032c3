// Package styles defines how word boxes and pages are drawn in SVG output.
package styles

import (
	"bytes"
	"strings"

	"github.com/matzehuels/wordpages/pkg/errors"
)

// Style defines the visual appearance of a rendered layout.
// Implementations control how pages, word boxes and labels are drawn.
type Style interface {
	// Name is the identifier used on the command line.
	Name() string
	// RenderDefs writes SVG <defs> and <style> content.
	RenderDefs(buf *bytes.Buffer)
	// RenderPage writes the frame of a single page.
	RenderPage(buf *bytes.Buffer, p Page)
	// RenderWord writes the box of a single word.
	RenderWord(buf *bytes.Buffer, w Word)
	// RenderText writes the label of a single word.
	RenderText(buf *bytes.Buffer, w Word)
}

// Word contains all data needed to render one word box, in SVG coordinates
// (y grows downward).
type Word struct {
	Index      int     // Position in reading order
	Label      string  // The word itself
	Page       int     // 1-based page number
	X, Y, W, H float64 // Top-left corner and size
	CX, CY     float64 // Center coordinates (for text)
	Fill       string  // Fill color, empty for the style default
}

// Page contains the frame of one page, in SVG coordinates.
type Page struct {
	Number     int
	X, Y, W, H float64
}

// Style names.
const (
	NameSimple    = "simple"
	NameWireframe = "wireframe"
)

// Names lists the available styles.
var Names = []string{NameSimple, NameWireframe}

// Parse returns the style called name. The empty string selects Simple.
func Parse(name string) (Style, error) {
	switch strings.ToLower(name) {
	case "", NameSimple:
		return Simple{}, nil
	case NameWireframe:
		return Wireframe{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle,
		"unknown style %q (must be one of %s)", name, strings.Join(Names, ", "))
}
