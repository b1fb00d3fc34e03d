package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/floorplan/pkg/errors"
	fpio "github.com/matzehuels/floorplan/pkg/io"
	"github.com/matzehuels/floorplan/pkg/placer"
	"github.com/matzehuels/floorplan/pkg/problem"
	"github.com/matzehuels/floorplan/pkg/score"
)

// scoreCommand creates the score command.
func (c *CLI) scoreCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "score <problem> <solution>",
		Short: "Score a solution",
		Long: `Score checks a solution against its problem and prints the objective
P - Aw*area - Ww*wirelength. Invalid solutions are rejected with the list of
violated constraints.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, sol, err := readPair(cmd, args[0], args[1])
			if err != nil {
				return err
			}
			if err := checkSolution(p, sol); err != nil {
				return err
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, cfg, runnerOpts{})
			if err != nil {
				return err
			}
			defer runner.Close()

			b, err := runner.Score(ctx, p, sol)
			if err != nil {
				return err
			}
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(b)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.4f\n", b.Value)
			printBreakdown(p, b)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the score breakdown as JSON")

	return cmd
}

// readPair reads a problem and a solution and checks that they belong
// together.
func readPair(cmd *cobra.Command, problemPath, solutionPath string) (*problem.Problem, problem.Solution, error) {
	p, err := readProblemArg(cmd, problemPath)
	if err != nil {
		return nil, problem.Solution{}, err
	}
	sol, err := fpio.ReadSolutionFile(solutionPath)
	if err != nil {
		return nil, problem.Solution{}, err
	}
	if sol.ProblemID != p.ID {
		return nil, problem.Solution{}, errors.New(errors.ErrCodeInvalidInput,
			"solution is for problem %d, not %d", sol.ProblemID, p.ID)
	}
	return p, sol, nil
}

// checkSolution prints the violations of sol and returns an error if
// there are any.
func checkSolution(p *problem.Problem, sol problem.Solution) error {
	if sol.Failed() {
		return errors.New(errors.ErrCodeUnscorable, "problem %d has no placements", p.ID)
	}
	violations := placer.Verify(p, sol)
	if len(violations) == 0 {
		return nil
	}
	for _, v := range violations {
		printError("%s", v.String())
	}
	return errors.New(errors.ErrCodeUnscorable, "solution violates %d constraints", len(violations))
}

func printBreakdown(p *problem.Problem, b score.Breakdown) {
	w := p.Weights
	printKeyValue("Covered", fmt.Sprintf("%d CLB · %d BRAM · %d DSP", b.Covered.CLB, b.Covered.BRAM, b.Covered.DSP))
	printKeyValue("Area", fmt.Sprintf("%d (×%d)", b.Area, w.Aw))
	printKeyValue("Wirelength", fmt.Sprintf("%.4f (×%d)", b.Wirelength, w.Ww))
	printKeyValue("Score", StyleNumber.Render(fmt.Sprintf("%.4f", b.Value)))
}
