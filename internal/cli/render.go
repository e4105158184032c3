package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordpages/pkg/pipeline"
)

// watchDebounce groups the bursts of events editors emit for one save.
const watchDebounce = 150 * time.Millisecond

// renderCommand creates the render command: layout and render in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		watch      bool
		fromLayout bool
		input      inputFlags
		caches     cacheFlags
	)
	flags := newOptionFlags()

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render a text as pages of word boxes",
		Long: `Render a text as pages of word boxes.

The render command lays out the input (like 'layout') and draws one box per
word, page by page, as SVG, PNG, PDF or JSON. PDF output requires
rsvg-convert (librsvg) on PATH.

With --from-layout the input is a JSON layout document written by
'wordpages layout', which is drawn as is.

With --watch the input file is rendered again whenever it changes.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			opts.Refresh = caches.refresh
			if watch && args[0] == "-" {
				return fmt.Errorf("--watch needs an input file, not stdin")
			}

			render := func() error {
				if fromLayout {
					return c.runRenderLayout(cmd.Context(), args[0], opts, output, caches)
				}
				return c.runRender(cmd.Context(), args[0], input, opts, output, caches)
			}
			if !watch {
				return render()
			}
			if err := render(); err != nil {
				printWarning("%v", err)
			}
			return c.watchFile(cmd.Context(), args[0], func() {
				if err := render(); err != nil {
					printWarning("%v", err)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "render again when the input changes")
	cmd.Flags().BoolVar(&fromLayout, "from-layout", false, "input is a JSON layout document")
	input.register(cmd)
	caches.register(cmd)
	flags.addLayoutFlags(cmd)
	flags.addRenderFlags(cmd)

	return cmd
}

// runRender executes the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, inputPath string, in inputFlags, opts pipeline.Options, output string, caches cacheFlags) error {
	frame, err := readInput(inputPath, in)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, caches)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, frame, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     inputPath,
		output:    output,
		words:     result.Stats.Words,
		pages:     result.Stats.Pages,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	})
}

// runRenderLayout draws a previously computed layout document.
func (c *CLI) runRenderLayout(ctx context.Context, inputPath string, opts pipeline.Options, output string, caches cacheFlags) error {
	l, err := readLayout(inputPath)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, caches)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     inputPath,
		output:    output,
		words:     l.Len(),
		pages:     l.Grid.Pages,
		cacheHit:  hit,
	})
}

// artifactWriteParams describes rendered artifacts and where they go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	words     int
	pages     int
	cacheHit  bool
}

// writeArtifacts writes each artifact next to the input or under the
// output base path, and reports the files written.
func writeArtifacts(p artifactWriteParams) error {
	formats := append([]string(nil), p.formats...)
	sort.Strings(formats)
	formats = dedupe(formats)

	var paths []string
	for _, format := range formats {
		path := artifactPath(p, format, len(formats))
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.words, p.pages, p.cacheHit)
	return nil
}

// artifactPath names the output file of one format.
func artifactPath(p artifactWriteParams, format string, n int) string {
	if n == 1 && p.output != "" && filepath.Ext(p.output) != "" {
		return p.output
	}
	input := p.input
	if input == "-" {
		input = appName
	}
	return basePath(p.output, input) + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}

// =============================================================================
// Watch
// =============================================================================

// watchFile calls onChange after each write to path until ctx is done.
// The parent directory is watched so editors that replace the file on save
// keep triggering.
func (c *CLI) watchFile(ctx context.Context, path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	printInfo("Watching %s (Ctrl+C to stop)", path)
	c.Logger.Debug("watching", "path", abs)

	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			trigger = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "error", err)
		case <-trigger:
			trigger = nil
			c.Logger.Debug("input changed", "path", abs)
			onChange()
		}
	}
}
