package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordpages/pkg/layout"
)

// Page viewer styles
var (
	pageFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
	pageWordStyle  = lipgloss.NewStyle().Foreground(colorText)
	pageFooterText = lipgloss.NewStyle().Foreground(colorMuted)
)

// viewCommand creates the view command, an interactive page browser.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		input  inputFlags
		caches cacheFlags
	)
	flags := newOptionFlags()

	cmd := &cobra.Command{
		Use:   "view [input]",
		Short: "Browse the page layout of a text in the terminal",
		Long: `Browse the page layout of a text in the terminal.

Each page is drawn with its words at their layout positions, one text row per
line. Use ←/→ (or h/l) to turn pages, g/G to jump to the first or last page
and q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			opts.Refresh = caches.refresh
			frame, err := readInput(args[0], input)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), caches)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts.Logger = c.Logger
			l, err := runner.Layout(cmd.Context(), frame, opts)
			if err != nil {
				return fmt.Errorf("compute layout: %w", err)
			}
			if l.Grid.Pages == 0 {
				printInfo("Nothing to show: the input has no lines")
				return nil
			}

			p := tea.NewProgram(newPageViewer(l, args[0]), tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	input.register(cmd)
	caches.register(cmd)
	flags.addLayoutFlags(cmd)

	return cmd
}

// =============================================================================
// PageViewer - Interactive page browser
// =============================================================================

// PageViewer is the bubbletea model that shows one page of a layout at a time.
type PageViewer struct {
	Layout *layout.Layout
	Title  string
	Page   int // 1-based
}

func newPageViewer(l *layout.Layout, title string) PageViewer {
	return PageViewer{Layout: l, Title: title, Page: 1}
}

func (m PageViewer) Init() tea.Cmd {
	return nil
}

func (m PageViewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		last := m.Layout.Grid.Pages
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n", "pgdown", " ":
			if m.Page < last {
				m.Page++
			}
		case "left", "h", "p", "pgup":
			if m.Page > 1 {
				m.Page--
			}
		case "home", "g":
			m.Page = 1
		case "end", "G":
			m.Page = last
		}
	}
	return m, nil
}

func (m PageViewer) View() string {
	var b strings.Builder

	g := m.Layout.Grid
	cell := g.Cells[m.Page-1]
	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString(pageFooterText.Render(fmt.Sprintf("  page %d of %d · grid cell (%d, %d)", m.Page, g.Pages, cell.X, cell.Y)))
	b.WriteString("\n")

	b.WriteString(pageFrameStyle.Render(strings.Join(pageRows(m.Layout, m.Page), "\n")))
	b.WriteString("\n")
	b.WriteString(pageFooterText.Render("←/→ turn page  g/G first/last  q quit"))
	return b.String()
}

// pageRows draws page p as text: one row per line slot, each word starting
// at its horizontal offset from the page origin.
func pageRows(l *layout.Layout, p int) []string {
	g := l.Grid
	xOff, _ := g.PageOrigin(g.Cells[p-1])

	byLine := make([][]layout.Token, g.LinesPerPage)
	for _, t := range l.PageTokens(p) {
		byLine[t.Line-1] = append(byLine[t.Line-1], t)
	}

	rows := make([]string, g.LinesPerPage)
	for i, words := range byLine {
		sort.Slice(words, func(a, b int) bool { return words[a].XMin < words[b].XMin })

		var row strings.Builder
		col := 0
		for _, t := range words {
			start := int(t.XMin - xOff)
			if start > col {
				row.WriteString(strings.Repeat(" ", start-col))
				col = start
			}
			row.WriteString(pageWordStyle.Render(t.Word))
			col += runewidth.StringWidth(t.Word)
		}
		if pad := int(g.PageWidth) - col; pad > 0 {
			row.WriteString(strings.Repeat(" ", pad))
		}
		rows[i] = row.String()
	}
	return rows
}
