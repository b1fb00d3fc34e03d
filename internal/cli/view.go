package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/floorplan/pkg/errors"
	"github.com/matzehuels/floorplan/pkg/fpga"
	fpio "github.com/matzehuels/floorplan/pkg/io"
	"github.com/matzehuels/floorplan/pkg/problem"
	"github.com/matzehuels/floorplan/pkg/render"
)

// viewCommand creates the interactive view command.
func (c *CLI) viewCommand() *cobra.Command {
	var flags solveFlags

	cmd := &cobra.Command{
		Use:   "view <problem> [solution]",
		Short: "Browse a floorplan in the terminal",
		Long: `View draws the floorplan in the terminal and lets you step through the
regions with the arrow keys. Without a solution file the problem is solved
first.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
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
				sol = res.Solution
			}

			if sol.Failed() {
				printWarning("Problem %d has no placements to show", p.ID)
				return nil
			}
			if len(sol.Placements) != p.N() {
				return errors.New(errors.ErrCodeInvalidInput, "solution has %d placements for %d regions", len(sol.Placements), p.N())
			}
			_, err = tea.NewProgram(newViewModel(p, sol), tea.WithContext(ctx)).Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// viewModel is the bubbletea model for browsing placed regions. A cursor
// of -1 highlights every region.
type viewModel struct {
	problem  *problem.Problem
	solution problem.Solution
	cursor   int
}

func newViewModel(p *problem.Problem, sol problem.Solution) viewModel {
	return viewModel{problem: p, solution: sol, cursor: -1}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	n := len(m.solution.Placements)
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "right", "l", "tab":
		m.cursor++
		if m.cursor >= n {
			m.cursor = -1
		}
	case "left", "h", "shift+tab":
		m.cursor--
		if m.cursor < -1 {
			m.cursor = n - 1
		}
	case "a":
		m.cursor = -1
	}
	return m, nil
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Problem %d", m.problem.ID)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ select region  a all  q quit"))
	b.WriteString("\n\n")
	b.WriteString(drawFloorplan(m.problem, m.solution, m.cursor))
	b.WriteString("\n")

	if m.cursor < 0 {
		for i, r := range m.solution.Placements {
			b.WriteString(m.regionLabel(i))
			b.WriteString("  " + StyleDim.Render(describeRect(r)) + "\n")
		}
		return b.String()
	}
	b.WriteString(m.regionDetail(m.cursor))
	return b.String()
}

func (m viewModel) regionLabel(i int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(render.RegionColor(i)))
	return style.Render(fmt.Sprintf("%c region %d", regionLetter(i), i+1))
}

func (m viewModel) regionDetail(i int) string {
	var b strings.Builder
	r := m.solution.Placements[i]
	reg := m.problem.Regions[i]

	b.WriteString(m.regionLabel(i) + "  " + StyleDim.Render(describeRect(r)) + "\n")
	fmt.Fprintf(&b, "  demand   %s\n", reg.Demand)
	if cov, err := fpga.Coverage(m.problem.Grid, r); err == nil {
		fmt.Fprintf(&b, "  covered  %d CLB, %d BRAM, %d DSP\n", cov.CLB, cov.BRAM, cov.DSP)
	}
	for j := range m.solution.Placements {
		if j == i {
			continue
		}
		if w := m.problem.Comm.Wires(i, j) + m.problem.Comm.Wires(j, i); w > 0 {
			fmt.Fprintf(&b, "  %s  %d wires\n", StyleDim.Render(fmt.Sprintf("↔ region %d", j+1)), w)
		}
	}
	return b.String()
}
