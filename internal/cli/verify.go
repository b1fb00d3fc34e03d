package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// verifyCommand creates the verify command.
func (c *CLI) verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <problem> <solution>",
		Short: "Check a solution against every placement constraint",
		Long: `Verify checks that each region is placed inside the grid on valid left and
right columns, aligned to clock regions, off forbidden tiles, without
overlap and with enough CLB, BRAM and DSP tiles. It exits non-zero when a
constraint is violated.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, sol, err := readPair(cmd, args[0], args[1])
			if err != nil {
				return err
			}
			if err := checkSolution(p, sol); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			printSuccess("All %d placements of problem %d are valid", len(sol.Placements), p.ID)
			for i, r := range sol.Placements {
				printDetail("%c  region %d  %s", regionLetter(i), i+1, describeRect(r))
			}
			return nil
		},
	}
}
