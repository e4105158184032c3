package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordpages/pkg/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		maxBodySize int64
		caches      cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render pipeline over HTTP",
		Long: `Serve the layout and render pipeline over HTTP.

Endpoints:
  GET  /health              build information
  POST /v1/layout           layout document (?format=json|yaml|csv)
  POST /v1/render/{format}  rendered artifact (svg, png, pdf, json)

Request bodies are JSON: {"records": [...], "columns": {...}, "options": {...}}.
Use --cache with a redis:// or mongodb:// URL to share results between
server instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), caches)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := server.New(server.Config{
				Addr:        addr,
				Runner:      runner,
				Logger:      c.Logger,
				MaxBodySize: maxBodySize,
			})
			printInfo("Listening on http://%s", srv.Addr())
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().Int64Var(&maxBodySize, "max-body", server.DefaultMaxBodySize, "maximum request body in bytes")
	caches.register(cmd)

	return cmd
}
