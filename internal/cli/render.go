package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/floorplan/pkg/errors"
	fpio "github.com/matzehuels/floorplan/pkg/io"
	"github.com/matzehuels/floorplan/pkg/problem"
	"github.com/matzehuels/floorplan/pkg/render"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  solveFlags
		output string
		tiles  bool
		scale  float64
	)

	cmd := &cobra.Command{
		Use:   "render <problem> [solution]",
		Short: "Draw a floorplan as SVG or DOT",
		Long: `Render draws the grid and the placed regions, with edges between regions
weighted by their wire counts. Without a solution file the problem is
solved first. The format follows the output extension: .svg (default) or
.dot.`,
		Example: `  floorplan render problem.txt solution.txt -o plan.svg
  floorplan render problem.txt --tiles -o plan.dot`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			p, err := readProblemArg(cmd, args[0])
			if err != nil {
				return err
			}

			var sol problem.Solution
			if len(args) == 2 {
				if sol, err = fpio.ReadSolutionFile(args[1]); err != nil {
					return err
				}
			} else {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				opts, err := flags.options(cfg)
				if err != nil {
					return err
				}
				runner, err := c.newRunner(ctx, cfg, runnerOpts{noCache: flags.noCache})
				if err != nil {
					return err
				}
				defer runner.Close()
				res, err := runner.Solve(ctx, p, opts)
				if err != nil {
					return err
				}
				reportResult(res)
				sol = res.Solution
			}

			if output == "" {
				output = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])) + ".svg"
			}
			dot := render.ToDOT(p, sol, render.Options{
				Tiles: tiles,
				Scale: scale,
				Title: fmt.Sprintf("problem %d", p.ID),
			})

			var data []byte
			switch ext := strings.ToLower(filepath.Ext(output)); ext {
			case ".dot", ".gv":
				data = []byte(dot)
			case ".svg":
				prog := newProgress(logger)
				if data, err = render.RenderSVG(ctx, dot); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "render %s", output)
				}
				prog.done("Laid out floorplan")
			default:
				return errors.New(errors.ErrCodeInvalidPath, "unsupported output format %q (use .svg or .dot)", ext)
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
			}
			printSuccess("Rendered problem %d", p.ID)
			printFile(output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.svg or .dot)")
	cmd.Flags().BoolVar(&tiles, "tiles", false, "draw every tile coloured by type")
	cmd.Flags().Float64Var(&scale, "scale", 0, "tile size in inches")

	return cmd
}
