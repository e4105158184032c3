package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/wordpages/pkg/io"
	"github.com/matzehuels/wordpages/pkg/pipeline"
)

// layoutCommand creates the layout command for computing word layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		format string
		input  inputFlags
		caches cacheFlags
	)
	flags := newOptionFlags()

	cmd := &cobra.Command{
		Use:   "layout [input]",
		Short: "Compute the page layout of a text",
		Long: `Compute the page layout of a text.

The layout command reads records from a text, CSV or JSON file (or stdin
with "-"), lays them out on pages and writes one row per word with its page,
line and bounding box. Word-granular input is reflowed into lines first.

The output is a JSON document by default, which 'render --from-layout' can
draw again. Use --output-format or a .yaml/.csv output name for YAML or a
flat CSV table, and "-o -" to write to stdout.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			opts.Refresh = caches.refresh
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), args[0], input, opts, output, format, caches)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or - for stdout (default: <input>.layout.json)")
	cmd.Flags().StringVar(&format, "output-format", "", "layout format: json, yaml, csv (default: from output name)")
	input.register(cmd)
	caches.register(cmd)
	flags.addLayoutFlags(cmd)

	return cmd
}

// runLayout reads the input, computes the layout, and writes output.
// Output named "-" goes to stdout.
func (c *CLI) runLayout(ctx context.Context, stdout io.Writer, inputPath string, in inputFlags, opts pipeline.Options, output, format string, caches cacheFlags) error {
	frame, err := readInput(inputPath, in)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		if inputPath == "-" {
			outputPath = "-"
		} else {
			outputPath = basePath("", inputPath) + ".layout.json"
		}
	}
	outFormat, err := layoutFormat(outputPath, format)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, caches)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, frame, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	prog.done("layout ready", "words", l.Len(), "pages", l.Grid.Pages, "cached", cacheHit)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if outputPath == "-" {
		return pkgio.Write(l, stdout, outFormat)
	}
	if err := pkgio.Export(l, outputPath, outFormat); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(l.Len(), l.Grid.Pages, cacheHit)
	printNextStep("Render", "wordpages render "+inputPath)

	return nil
}

// layoutFormat picks the layout encoding from an explicit name or from the
// output file extension.
func layoutFormat(outputPath, explicit string) (pkgio.OutputFormat, error) {
	if explicit != "" {
		return pkgio.ParseOutputFormat(explicit)
	}
	ext := strings.TrimPrefix(filepath.Ext(outputPath), ".")
	if f, err := pkgio.ParseOutputFormat(ext); err == nil {
		return f, nil
	}
	return pkgio.OutputJSON, nil
}
