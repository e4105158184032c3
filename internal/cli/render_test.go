package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordpages/pkg/pipeline"
	"github.com/matzehuels/wordpages/pkg/table"
	"github.com/matzehuels/wordpages/pkg/text"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", " SVG, json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "speech.txt", "speech"},
		{"", "dir/speech.csv", "dir/speech"},
		{"out.svg", "speech.txt", "out"},
		{"out.png", "speech.txt", "out"},
		{"out", "speech.txt", "out"},
		{"out.v2", "speech.txt", "out.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name   string
		p      artifactWriteParams
		format string
		n      int
		want   string
	}{
		{"next to input", artifactWriteParams{input: "a/speech.txt"}, "svg", 1, "a/speech.svg"},
		{"explicit single file", artifactWriteParams{input: "speech.txt", output: "pages.svg"}, "svg", 1, "pages.svg"},
		{"base path for many", artifactWriteParams{input: "speech.txt", output: "pages.svg"}, "png", 2, "pages.png"},
		{"stdin", artifactWriteParams{input: "-"}, "json", 1, "wordpages.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artifactPath(tt.p, tt.format, tt.n); got != tt.want {
				t.Errorf("artifactPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLayoutFormat(t *testing.T) {
	tests := []struct {
		output, explicit string
		want             string
		wantErr          bool
	}{
		{"out.layout.json", "", "json", false},
		{"out.yaml", "", "yaml", false},
		{"out.csv", "", "csv", false},
		{"-", "", "json", false},
		{"out.json", "csv", "csv", false},
		{"out.json", "xml", "", true},
	}
	for _, tt := range tests {
		got, err := layoutFormat(tt.output, tt.explicit)
		if (err != nil) != tt.wantErr {
			t.Errorf("layoutFormat(%q, %q) error = %v, wantErr %v", tt.output, tt.explicit, err, tt.wantErr)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("layoutFormat(%q, %q) = %q, want %q", tt.output, tt.explicit, got, tt.want)
		}
	}
}

func TestOptionFlagsResolve(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	config := filepath.Join(dir, "wordpages.toml")
	if err := os.WriteFile(config, []byte("lines_per_page = 40\nstyle = \"wireframe\"\nwrap_width = 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, o pipeline.Options)
	}{
		{"defaults", nil, func(t *testing.T, o pipeline.Options) {
			if !reflect.DeepEqual(o, pipeline.DefaultOptions()) {
				t.Errorf("got %+v, want defaults", o)
			}
		}},
		{"flags", []string{"-n", "7", "--shape", "words", "--derive", "parity,row", "-f", "svg,png", "--fill", "parity"}, func(t *testing.T, o pipeline.Options) {
			if o.LinesPerPage != 7 || o.Shape != text.ShapeWords {
				t.Errorf("layout options = %d %s", o.LinesPerPage, o.Shape)
			}
			if !reflect.DeepEqual(o.Derive, []string{"parity", "row"}) || o.Fill != "parity" {
				t.Errorf("annotation options = %v %q", o.Derive, o.Fill)
			}
			if !reflect.DeepEqual(o.Formats, []string{"svg", "png"}) {
				t.Errorf("Formats = %v", o.Formats)
			}
		}},
		{"config file", []string{"-c", config}, func(t *testing.T, o pipeline.Options) {
			if o.LinesPerPage != 40 || o.Style != "wireframe" || o.WrapWidth != 30 {
				t.Errorf("config values lost: %d %q %d", o.LinesPerPage, o.Style, o.WrapWidth)
			}
		}},
		{"flags override config file", []string{"-c", config, "-n", "3", "--vertical-space", "0"}, func(t *testing.T, o pipeline.Options) {
			if o.LinesPerPage != 3 || o.VerticalSpace != 0 {
				t.Errorf("flags not applied: %d %g", o.LinesPerPage, o.VerticalSpace)
			}
			if o.Style != "wireframe" || o.WrapWidth != 30 {
				t.Errorf("untouched config values lost: %q %d", o.Style, o.WrapWidth)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			f := newOptionFlags()
			f.addLayoutFlags(cmd)
			f.addRenderFlags(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			opts, err := f.resolve(cmd)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			tt.check(t, opts)
		})
	}
}

// runCLI executes the root command with args and returns what it printed
// through cobra's output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "speech.txt")
	if err := os.WriteFile(path, []byte("the cat sat\non the mat\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderCommand(t *testing.T) {
	input := writeInput(t)

	if _, err := runCLI(t, "render", input, "-n", "1", "-f", "svg,json", "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	base := strings.TrimSuffix(input, ".txt")

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg output starts %.20q", svg)
	}
	doc, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(doc, []byte(`"label": "mat"`)) {
		t.Errorf("json output lacks the last word: %.200s", doc)
	}
}

func TestRenderCommandFromLayout(t *testing.T) {
	input := writeInput(t)
	doc := filepath.Join(t.TempDir(), "pages.json")

	if _, err := runCLI(t, "layout", input, "-n", "1", "-o", doc, "--no-cache"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if _, err := runCLI(t, "render", doc, "--from-layout", "-f", "svg", "--frames", "--no-cache"); err != nil {
		t.Fatalf("render --from-layout: %v", err)
	}

	svg, err := os.ReadFile(strings.TrimSuffix(doc, ".json") + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg output starts %.20q", svg)
	}

	if _, err := runCLI(t, "render", input, "--from-layout", "--no-cache"); err == nil {
		t.Error("expected an error for a text file read as a layout document")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	input := writeInput(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"render", input, "-f", "gif", "--no-cache"}},
		{"unknown style", []string{"render", input, "--style", "sketch", "--no-cache"}},
		{"grid too small", []string{"render", input, "-n", "1", "--rows", "1", "--cols", "1", "--no-cache"}},
		{"missing input", []string{"render", filepath.Join(t.TempDir(), "absent.txt"), "--no-cache"}},
		{"watch stdin", []string{"render", "-", "--watch"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLayoutCommand(t *testing.T) {
	input := writeInput(t)
	out := filepath.Join(t.TempDir(), "words.csv")
	cacheDir := t.TempDir()

	for range 2 {
		if _, err := runCLI(t, "layout", input, "-n", "1", "-o", out, "--cache", cacheDir); err != nil {
			t.Fatalf("layout: %v", err)
		}
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := "word,page,line,xmin,xmax,ymin,ymax\nthe,1,1,0,3,-4,-7\n"
	if !strings.HasPrefix(string(data), want) {
		t.Errorf("csv = %q, want prefix %q", data, want)
	}

	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Error("layout should be written to the cache directory")
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordpages.yaml")

	if _, err := runCLI(t, "config", "init", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := runCLI(t, "config", "init", path); err == nil {
		t.Error("config init should refuse to overwrite")
	}
	if _, err := runCLI(t, "config", "init", path, "--force"); err != nil {
		t.Errorf("config init --force: %v", err)
	}

	out, err := runCLI(t, "config", "show", "-c", path, "--format", "yaml")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "lines_per_page: 25") {
		t.Errorf("config show output:\n%s", out)
	}
}

func TestCacheCommands(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q", out)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "entry.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "cache", "clear", "--cache", dir); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("cache clear left %d entries", len(entries))
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "wordpages") {
		t.Error("bash completion should mention the program name")
	}
	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("unknown shell should fail")
	}
}

func TestWatchFile(t *testing.T) {
	path := writeInput(t)
	c := New(io.Discard, LogInfo)

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- c.watchFile(ctx, path, func() { changed <- struct{}{} })
	}()

	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(path, []byte("a new line\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported after writing the watched file")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("watchFile returned %v", err)
	}
}

func TestPageViewer(t *testing.T) {
	opts := pipeline.DefaultOptions()
	opts.LinesPerPage = 1
	l, err := pipeline.GenerateLayout(table.FromStrings(table.TextColumn, []string{"the cat sat", "on the mat"}), opts)
	if err != nil {
		t.Fatal(err)
	}

	var m tea.Model = newPageViewer(l, "speech")
	if v := m.View(); !strings.Contains(v, "the cat sat") || !strings.Contains(v, "page 1 of 2") {
		t.Errorf("first page view:\n%s", v)
	}

	steps := []struct {
		key  tea.KeyMsg
		page int
	}{
		{tea.KeyMsg{Type: tea.KeyRight}, 2},
		{tea.KeyMsg{Type: tea.KeyRight}, 2},
		{tea.KeyMsg{Type: tea.KeyLeft}, 1},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}}, 2},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}}, 1},
		{tea.KeyMsg{Type: tea.KeyEnd}, 2},
	}
	for i, s := range steps {
		m, _ = m.Update(s.key)
		if got := m.(PageViewer).Page; got != s.page {
			t.Fatalf("step %d (%s): page = %d, want %d", i, s.key, got, s.page)
		}
	}
	if v := m.View(); !strings.Contains(v, "on the mat") || !strings.Contains(v, "grid cell (0, 1)") {
		t.Errorf("second page view:\n%s", v)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q returned %T, want tea.QuitMsg", cmd())
	}
}

func TestPageRows(t *testing.T) {
	opts := pipeline.DefaultOptions()
	opts.LinesPerPage = 3
	opts.Shape = text.ShapeLines
	l, err := pipeline.GenerateLayout(table.FromStrings(table.TextColumn, []string{"a  bb", "", "ccc d"}), opts)
	if err != nil {
		t.Fatal(err)
	}
	rows := pageRows(l, 1)
	want := []string{"a bb ", "     ", "ccc d"}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("pageRows = %q, want %q", rows, want)
	}
}
