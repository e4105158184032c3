package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/wordpages/pkg/cache"
	"github.com/matzehuels/wordpages/pkg/layout"
	"github.com/matzehuels/wordpages/pkg/observability"
	"github.com/matzehuels/wordpages/pkg/table"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, input *table.Frame, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     RunIDFrom(ctx),
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run", result.RunID)

	// Stage 1: Layout
	lr, err := r.layout(ctx, input, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.InputHash = lr.inputHash
	result.LayoutKey = lr.key
	result.Layout = lr.layout
	result.Stats.Records = lr.records
	result.Stats.Words = lr.layout.Len()
	result.Stats.Lines = lr.layout.Lines
	result.Stats.Pages = lr.layout.Grid.Pages
	result.Stats.LayoutTime = lr.duration
	result.CacheInfo.LayoutHit = lr.hit

	logger.Info("computed layout",
		"words", result.Stats.Words,
		"pages", result.Stats.Pages,
		"shape", lr.layout.Shape,
		"cached", lr.hit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.render(ctx, lr.layout, lr.key, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// layoutResult carries a layout together with how it was obtained.
type layoutResult struct {
	layout    *layout.Layout
	inputHash string
	key       string
	records   int
	hit       bool
	duration  time.Duration
}

// LayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, input *table.Frame, opts Options) (*layout.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	lr, err := r.layout(ctx, input, opts)
	if err != nil {
		return nil, false, err
	}
	return lr.layout, lr.hit, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, input *table.Frame, opts Options) (*layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, input, opts)
	return l, err
}

// layout expects validated options.
func (r *Runner) layout(ctx context.Context, input *table.Frame, opts Options) (layoutResult, error) {
	start := time.Now()
	hooks := observability.Pipeline()

	if input == nil {
		input = table.FromStrings(table.TextColumn, nil)
	}
	records, err := input.Text()
	if err != nil {
		return layoutResult{}, err
	}
	lr := layoutResult{records: len(records)}
	hooks.OnLayoutStart(ctx, lr.records)

	lr.inputHash = inputHash(input, records, opts)
	cacheable := opts.Cacheable()
	if cacheable {
		lr.key = r.Keyer.LayoutKey(lr.inputHash, opts.LayoutKeyOpts())
	}

	// Try cache first (unless refresh requested)
	if cacheable && !opts.Refresh {
		if l, ok := r.cachedLayout(ctx, lr.key); ok {
			lr.layout, lr.hit = l, true
			lr.duration = time.Since(start)
			hooks.OnLayoutComplete(ctx, l.Len(), l.Grid.Pages, lr.duration, nil)
			return lr, nil
		}
	}

	l, err := GenerateLayout(input, opts)
	lr.duration = time.Since(start)
	if err != nil {
		hooks.OnLayoutComplete(ctx, 0, 0, lr.duration, err)
		return layoutResult{}, err
	}
	lr.layout = l
	hooks.OnLayoutComplete(ctx, l.Len(), l.Grid.Pages, lr.duration, nil)

	if cacheable {
		if data, err := encodeLayout(l); err == nil {
			r.store(ctx, "layout", lr.key, data, cache.TTLLayout)
		}
	}
	return lr, nil
}

// cachedLayout returns the layout stored under key. Entries that no longer
// decode are treated as misses.
func (r *Runner) cachedLayout(ctx context.Context, key string) (*layout.Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	l, err := decodeLayout(data)
	if err != nil {
		r.Logger.Debug("discarding undecodable cache entry", "key", key, "error", err)
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "layout")
	return l, true
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	return r.render(ctx, l, "", opts)
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// render expects validated options. An empty layoutKey is derived from the
// serialized layout.
func (r *Runner) render(ctx context.Context, l *layout.Layout, layoutKey string, opts Options) (map[string][]byte, bool, error) {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)

	if layoutKey == "" {
		layoutData, err := encodeLayout(l)
		if err != nil {
			return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
		}
		layoutKey = cache.Hash(layoutData)
	}

	// Try to get all formats from cache
	if !opts.Refresh {
		allCached := true
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if allCached {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil
		}
	}

	// Render all formats
	rendered, err := Render(l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(format))
		r.store(ctx, "artifact", key, data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// store writes to the cache. Failures are logged, not returned: a cache
// that cannot be written still leaves the run usable.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

type runIDKey struct{}

// WithRunID returns a context whose pipeline runs use id as their RunID.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFrom returns the run ID stored in ctx, or a fresh random one.
func RunIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// inputHash hashes the records, plus the carried columns when any are
// requested, since those become part of the layout.
func inputHash(f *table.Frame, records []string, opts Options) string {
	if len(opts.Carry) == 0 {
		return cache.HashLines(records)
	}
	cols := []table.Column{{Name: table.TextColumn, Values: records}}
	for _, name := range opts.Carry {
		if c, ok := f.Column(name); ok {
			cols = append(cols, c)
		}
	}
	data, _ := json.Marshal(cols)
	return cache.Hash(data)
}
