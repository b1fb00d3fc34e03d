package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/floorplan/pkg/pipeline"
)

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		flags   solveFlags
		workers int
		pattern string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "batch <input-dir> <output-dir>",
		Short: "Floorplan every problem in a directory",
		Long: `Batch solves every file in input-dir matching --pattern and writes each
solution to output-dir under the same name. Problems are solved
concurrently. A file that fails to parse is reported and skipped; an
infeasible problem still gets its id-only solution file.`,
		Example: `  floorplan batch problems/ solutions/
  floorplan batch problems/ solutions/ --workers 8 --pattern 'prob_*.txt'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := flags.options(cfg)
			if err != nil {
				return err
			}
			if workers != 0 {
				opts.Workers = workers
			}
			if pattern != "" {
				opts.Pattern = pattern
			}
			opts.OnFile = func(f pipeline.FileResult) {
				logger.Info("finished", "file", f.Name, "status", f.Status, "duration", f.Duration)
			}

			runner, err := c.newRunner(ctx, cfg, runnerOpts{noCache: flags.noCache})
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(logger)
			rep, err := runner.Batch(ctx, args[0], args[1], opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Solved %d of %d files", rep.Solved, len(rep.Files)))

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}

			fmt.Fprintln(cmd.OutOrStdout(), batchTable(rep))
			printKeyValue("Solved", fmt.Sprint(rep.Solved))
			printKeyValue("Infeasible", fmt.Sprint(rep.Infeasible))
			printKeyValue("Failed", fmt.Sprint(rep.Failed))
			printKeyValue("Total score", fmt.Sprintf("%.2f", rep.TotalScore()))
			printFile(args[1])
			if rep.Failed > 0 {
				printWarning("%d files could not be solved; run with -v for details", rep.Failed)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent solves (default from config)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "glob of problem files (default *.txt)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the batch report as JSON")

	return cmd
}
