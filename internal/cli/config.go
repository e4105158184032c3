package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordpages/pkg/pipeline"
)

// configCommand creates the config command for managing option files.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the options file",
		Long: `Manage the options file.

Commands read layout and render options from ~/.config/wordpages/config.toml
when it exists, or from the file given with --config. YAML files (.yaml,
.yml) are accepted as well. Flags override file values.`,
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default options to a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if len(args) == 1 {
				path, err = args[0], nil
			}
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := pipeline.WriteOptions(f, pipeline.DefaultOptions(), pipeline.ConfigFormatFor(path)); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", path, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			printSuccess("Wrote default options")
			printFile(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	var (
		path   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadConfig(path)
			if err != nil {
				return err
			}
			f := pipeline.ConfigTOML
			switch format {
			case "", string(pipeline.ConfigTOML):
			case string(pipeline.ConfigYAML), "yml":
				f = pipeline.ConfigYAML
			default:
				return fmt.Errorf("unknown config format %q (must be toml or yaml)", format)
			}
			return pipeline.WriteOptions(cmd.OutOrStdout(), opts, f)
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "config file (default: ~/.config/wordpages/config.toml if present)")
	cmd.Flags().StringVar(&format, "format", "", "output format: toml (default), yaml")

	return cmd
}
