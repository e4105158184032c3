package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// statusOut receives status lines. Layout documents and other command
// output go to the command's stdout, so they can be piped.
var statusOut io.Writer = os.Stderr

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent = lipgloss.Color("36")  // page frames, titles, spinner
	colorOK     = lipgloss.Color("35")  // success, cache hits
	colorWarn   = lipgloss.Color("220") // warnings
	colorFail   = lipgloss.Color("167") // errors
	colorHint   = lipgloss.Color("75")  // suggested commands
	colorText   = lipgloss.Color("255") // paths and values
	colorMuted  = lipgloss.Color("240") // secondary text
)

var (
	// StyleTitle renders headings, such as the page viewer title.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	stylePath        = lipgloss.NewStyle().Foreground(colorText)
	styleHint        = lipgloss.NewStyle().Foreground(colorHint)
	styleWarnText    = lipgloss.NewStyle().Foreground(colorWarn)
)

// statusKind is the leading icon of a status line.
type statusKind struct {
	icon  string
	style lipgloss.Style
}

var (
	statusOK   = statusKind{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	statusFail = statusKind{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	statusWarn = statusKind{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	statusInfo = statusKind{"›", lipgloss.NewStyle().Foreground(colorMuted)}
)

func (k statusKind) print(msg string) {
	fmt.Fprintln(statusOut, k.style.Render(k.icon)+" "+msg)
}

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) { statusOK.print(fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { statusFail.print(fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { statusInfo.print(fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	statusWarn.print(styleWarnText.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written file.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render("→")+" "+stylePath.Render(path))
}

// printStats prints word and page counts and whether the layout came from
// the cache, e.g. "6 words · 2 pages · cached".
func printStats(words, pages int, cached bool) {
	source := StyleDim.Render("fresh")
	if cached {
		source = statusOK.style.Render("cached")
	}
	parts := []string{
		StyleDim.Render(plural(words, "word")),
		StyleDim.Render(plural(pages, "page")),
		source,
	}
	fmt.Fprintln(statusOut, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests a follow-up command after a blank line.
func printNextStep(description, cmd string) {
	fmt.Fprintln(statusOut)
	fmt.Fprintln(statusOut, StyleDim.Render(description+":")+" "+styleHint.Render(cmd))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
