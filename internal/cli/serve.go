package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/floorplan/internal/api"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes solve, score and run history over HTTP. Solutions are cached
in the configured cache backend and runs are recorded in the configured
store (memory or mongo).`,
		Example: `  floorplan serve --addr :9000
  curl -s localhost:9000/v1/strategies`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, cfg, runnerOpts{noCache: noCache, history: true})
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := api.New(runner, cfg.Options(), c.Logger)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the solution cache")

	return cmd
}
