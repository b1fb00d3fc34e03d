package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/floorplan/pkg/placer"
)

var strategyDescriptions = map[string]string{
	placer.StrategyGreedy: "left-to-right sweep, one region per clock band",
	placer.StrategySearch: "depth-first search over aligned footprints, minimising area",
}

// strategiesCommand lists the registered placement strategies.
func (c *CLI) strategiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List placement strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range placer.Names() {
				marker := " "
				if name == placer.DefaultStrategy {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-8s %s\n", marker, name, StyleDim.Render(strategyDescriptions[name]))
			}
			return nil
		},
	}
}
