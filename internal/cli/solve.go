package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/floorplan/pkg/errors"
	fpio "github.com/matzehuels/floorplan/pkg/io"
	"github.com/matzehuels/floorplan/pkg/pipeline"
	"github.com/matzehuels/floorplan/pkg/problem"
)

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		flags    solveFlags
		output   string
		jsonOut  bool
		show     bool
		noStatus bool
	)

	cmd := &cobra.Command{
		Use:   "solve <problem>",
		Short: "Floorplan a problem file",
		Long: `Solve reads a problem file ("-" for stdin), places every region and writes
the solution in the contest format. A problem that cannot be placed yields
a solution holding only the problem id; this is reported as a warning, not
an error.`,
		Example: `  floorplan solve problem.txt
  floorplan solve problem.txt -o solution.txt --show
  floorplan solve problem.txt --strategy search --max-nodes 500000 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := flags.options(cfg)
			if err != nil {
				return err
			}

			p, err := readProblemArg(cmd, args[0])
			if err != nil {
				return err
			}
			if args[0] != "-" {
				opts.Source = args[0]
			}

			runner, err := c.newRunner(ctx, cfg, runnerOpts{noCache: flags.noCache})
			if err != nil {
				return err
			}
			defer runner.Close()

			var spinner *Spinner
			if !noStatus {
				spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d regions with %s...", p.N(), opts.Strategy))
				spinner.Start()
			}
			res, err := runner.Solve(ctx, p, opts)
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				return err
			}

			if err := writeResult(cmd.OutOrStdout(), output, res, jsonOut); err != nil {
				return err
			}
			if noStatus {
				return nil
			}
			reportResult(res)
			printStats(res.Stats, res.CacheHit)
			if output != "" {
				printFile(output)
				if res.Solved() && args[0] != "-" {
					printNextStep("Render it", fmt.Sprintf("floorplan render %s %s", args[0], output))
				}
			}
			if show && res.Solved() {
				fmt.Fprint(statusOut, "\n"+drawFloorplan(p, res.Solution, -1))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the solution to a file instead of stdout")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "write the full JSON report instead of the solution")
	cmd.Flags().BoolVar(&show, "show", false, "draw the floorplan in the terminal")
	cmd.Flags().BoolVarP(&noStatus, "quiet", "q", false, "suppress status output")

	return cmd
}

// readProblemArg reads a problem from a path, or stdin for "-".
func readProblemArg(cmd *cobra.Command, path string) (*problem.Problem, error) {
	if path == "-" {
		return fpio.ReadProblem(cmd.InOrStdin())
	}
	return fpio.ReadProblemFile(path)
}

// writeResult writes the solution (or the JSON report) to path, or to w
// when path is empty.
func writeResult(w io.Writer, path string, res *pipeline.Result, asJSON bool) error {
	write := func(w io.Writer) error {
		if asJSON {
			return pipeline.WriteReport(w, res)
		}
		return fpio.WriteSolution(w, res.Solution)
	}
	if path == "" {
		return write(w)
	}
	return writeFile(path, write)
}

// writeFile creates path, hands it to write and reports close errors.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", path)
	}
	return nil
}

// reportResult prints the outcome of a solve.
func reportResult(res *pipeline.Result) {
	if !res.Solved() {
		if res.Infeasible != nil {
			printWarning("Problem %d is infeasible: %s", res.ProblemID, res.Infeasible.Error())
		} else {
			printWarning("Problem %d has no solution", res.ProblemID)
		}
		return
	}
	msg := fmt.Sprintf("Placed %d regions of problem %d", len(res.Solution.Placements), res.ProblemID)
	if res.Score != nil {
		msg += fmt.Sprintf(" (score %s)", StyleNumber.Render(fmt.Sprintf("%.2f", res.Score.Value)))
	}
	printSuccess("%s", msg)
}
