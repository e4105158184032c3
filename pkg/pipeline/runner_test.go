package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/wordpages/pkg/cache"
	"github.com/matzehuels/wordpages/pkg/errors"
	"github.com/matzehuels/wordpages/pkg/observability"
	"github.com/matzehuels/wordpages/pkg/table"
	"github.com/matzehuels/wordpages/pkg/text"
)

// memCache is an in-memory cache that counts writes.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func twoLines() *table.Frame {
	return table.FromStrings(table.TextColumn, []string{"the cat sat", "on the mat"})
}

func onePerPage() Options {
	opts := DefaultOptions()
	opts.LinesPerPage = 1
	return opts
}

func TestRunnerExecute(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()

	first, err := r.Execute(ctx, twoLines(), onePerPage())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("First run should miss the cache: %+v", first.CacheInfo)
	}
	if first.Stats.Records != 2 || first.Stats.Words != 6 || first.Stats.Pages != 2 || first.Stats.Lines != 2 {
		t.Errorf("Stats = %+v", first.Stats)
	}
	if first.RunID == "" {
		t.Error("RunID should be set")
	}
	if !bytes.HasPrefix(first.Artifacts[FormatSVG], []byte("<svg")) {
		t.Errorf("svg artifact = %.40q", first.Artifacts[FormatSVG])
	}
	if c.sets != 2 {
		t.Errorf("Expected a layout and an artifact write, got %d", c.sets)
	}

	second, err := r.Execute(ctx, twoLines(), onePerPage())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("Second run should hit the cache: %+v", second.CacheInfo)
	}
	if second.RunID == first.RunID {
		t.Error("Each run should get its own RunID")
	}
	if second.LayoutKey != first.LayoutKey || second.InputHash != first.InputHash {
		t.Error("Same input and options should give the same keys")
	}
	if !bytes.Equal(second.Artifacts[FormatSVG], first.Artifacts[FormatSVG]) {
		t.Error("Cached artifact differs from the rendered one")
	}
	if second.Layout.Len() != 6 || second.Layout.Grid.Pages != 2 {
		t.Errorf("Cached layout has %d words on %d pages", second.Layout.Len(), second.Layout.Grid.Pages)
	}
}

func TestRunnerOptionsChangeKey(t *testing.T) {
	r := NewRunner(newMemCache(), nil, nil)
	ctx := context.Background()

	a, err := r.Execute(ctx, twoLines(), onePerPage())
	if err != nil {
		t.Fatal(err)
	}
	opts := onePerPage()
	opts.VerticalSpace = 2
	b, err := r.Execute(ctx, twoLines(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if a.LayoutKey == b.LayoutKey {
		t.Error("Changing vertical space should change the layout key")
	}
	if b.CacheInfo.LayoutHit {
		t.Error("Changed options should miss the cache")
	}
}

func TestRunnerRefresh(t *testing.T) {
	r := NewRunner(newMemCache(), nil, nil)
	ctx := context.Background()

	if _, err := r.Execute(ctx, twoLines(), onePerPage()); err != nil {
		t.Fatal(err)
	}
	opts := onePerPage()
	opts.Refresh = true
	res, err := r.Execute(ctx, twoLines(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("Refresh should bypass cache reads: %+v", res.CacheInfo)
	}
}

func TestRunnerCustomTokenizerNotCached(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := onePerPage()
	opts.Formats = []string{FormatJSON}
	opts.Tokenizer = text.TokenizerFunc(func(s string) []string { return strings.Split(s, "a") })

	res, err := r.Execute(context.Background(), twoLines(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.LayoutKey != "" {
		t.Errorf("LayoutKey = %q, want empty for a custom tokenizer", res.LayoutKey)
	}
	if res.Layout.Tokens[0].Word != "the c" {
		t.Errorf("first word = %q, want %q", res.Layout.Tokens[0].Word, "the c")
	}
	// Only the artifact is cached.
	if c.sets != 1 {
		t.Errorf("sets = %d, want 1", c.sets)
	}
}

func TestRunnerErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	noText, _ := table.New(table.Column{Name: "body", Values: []string{"x"}})
	if _, err := r.Execute(ctx, noText, DefaultOptions()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing text column: got %v, want INVALID_INPUT", err)
	}

	opts := DefaultOptions()
	opts.Formats = []string{"gif"}
	if _, err := r.Execute(ctx, twoLines(), opts); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format: got %v, want INVALID_FORMAT", err)
	}

	opts = onePerPage()
	opts.Rows, opts.Cols = 1, 1
	if _, err := r.Execute(ctx, twoLines(), opts); !errors.Is(err, errors.ErrCodeInvalidOptions) {
		t.Errorf("small grid: got %v, want INVALID_OPTIONS", err)
	}

	opts = DefaultOptions()
	opts.Fill = "missing"
	if _, err := r.Execute(ctx, twoLines(), opts); !errors.Is(err, errors.ErrCodeInvalidColumn) {
		t.Errorf("unknown fill column: got %v, want INVALID_COLUMN", err)
	}
}

func TestRunnerNilInput(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := DefaultOptions()
	opts.Formats = []string{FormatJSON}
	res, err := r.Execute(context.Background(), nil, opts)
	if err != nil {
		t.Fatalf("Execute(nil): %v", err)
	}
	if res.Layout.Len() != 0 || res.Stats.Pages != 0 {
		t.Errorf("empty input gave %d words on %d pages", res.Layout.Len(), res.Stats.Pages)
	}
}

func TestRunnerStages(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, cache.NewScopedKeyer(nil, "test:"), nil)
	ctx := context.Background()

	opts := onePerPage()
	opts.Derive = []string{DeriveParity}
	l, hit, err := r.LayoutWithCacheInfo(ctx, twoLines(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first layout should miss")
	}
	if _, ok := l.Annotation(DeriveParity); !ok {
		t.Error("layout should carry the derived column")
	}

	opts.Formats = []string{FormatSVG, FormatJSON}
	opts.Fill = DeriveParity
	artifacts, err := r.Render(ctx, l, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(artifacts) != 2 {
		t.Errorf("got %d artifacts, want 2", len(artifacts))
	}
	_, hit, err = r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second render should hit")
	}
	for key := range c.data {
		if !strings.HasPrefix(key, "test:") {
			t.Errorf("key %q lacks the scope prefix", key)
		}
	}

	// A layout served from cache keeps its annotations.
	cached, hit, err := r.LayoutWithCacheInfo(ctx, twoLines(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second layout should hit")
	}
	if col, ok := cached.Annotation(DeriveParity); !ok || col.Values[3] != "even" {
		t.Errorf("cached annotation = %v, %v", col.Values, ok)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu       sync.Mutex
	starts   []int
	words    []int
	rendered [][]string
}

func (h *recordingHooks) OnLayoutStart(_ context.Context, records int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts = append(h.starts, records)
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, words, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.words = append(h.words, words)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, formats []string, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rendered = append(h.rendered, formats)
}

func TestRunnerHooks(t *testing.T) {
	defer observability.Reset()
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), twoLines(), onePerPage()); err != nil {
		t.Fatal(err)
	}
	if len(h.starts) != 1 || h.starts[0] != 2 {
		t.Errorf("OnLayoutStart records = %v, want [2]", h.starts)
	}
	if len(h.words) != 1 || h.words[0] != 6 {
		t.Errorf("OnLayoutComplete words = %v, want [6]", h.words)
	}
	if len(h.rendered) != 1 || h.rendered[0][0] != FormatSVG {
		t.Errorf("OnRenderComplete formats = %v", h.rendered)
	}
}

func TestRunIDFromContext(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := WithRunID(context.Background(), "run-42")
	res, err := r.Execute(ctx, twoLines(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if res.RunID != "run-42" {
		t.Errorf("RunID = %q, want run-42", res.RunID)
	}
	if a, b := RunIDFrom(context.Background()), RunIDFrom(context.Background()); a == "" || a == b {
		t.Errorf("fresh run IDs should be unique, got %q and %q", a, b)
	}
}
