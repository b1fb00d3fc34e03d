package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/floorplan/pkg/fpga"
	"github.com/matzehuels/floorplan/pkg/pipeline"
	"github.com/matzehuels/floorplan/pkg/problem"
	"github.com/matzehuels/floorplan/pkg/render"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// statusOut receives status lines. Solutions and reports go to the
// command's stdout so they can be piped.
var statusOut io.Writer = os.Stderr

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, styleIconError.Render(iconError)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(statusOut, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints solve statistics on a single line.
func printStats(st pipeline.Stats, cached bool) {
	parts := []string{
		fmt.Sprintf("%d regions", st.Regions),
		fmt.Sprintf("%d×%d grid", st.Rows, st.Cols),
	}
	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	} else {
		parts = append(parts, st.SolveTime.String())
	}
	parts = append(parts, statusStyle.Render(status))

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Fprintln(statusOut, line)
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(statusOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Floorplan Display
// =============================================================================

// drawFloorplan renders the grid as text, one character per tile. Tiles
// covered by a region show the region's letter in its colour; free tiles
// show their type code. Row 0 is printed at the bottom. If highlight is in
// range, only that region is coloured.
func drawFloorplan(p *problem.Problem, sol problem.Solution, highlight int) string {
	g := p.Grid
	owner := make([][]int, g.Rows())
	for r := range owner {
		owner[r] = make([]int, g.Cols())
		for c := range owner[r] {
			owner[r][c] = -1
		}
	}
	for i, rect := range sol.Placements {
		for r := rect.Row; r <= rect.EndRow() && r < g.Rows(); r++ {
			for c := rect.Col; c <= rect.EndCol() && c < g.Cols(); c++ {
				owner[r][c] = i
			}
		}
	}

	styles := make([]lipgloss.Style, len(sol.Placements))
	for i := range styles {
		styles[i] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(render.RegionColor(i)))
		if highlight >= 0 && highlight < len(styles) && i != highlight {
			styles[i] = lipgloss.NewStyle().Foreground(colorGray)
		}
	}

	var b strings.Builder
	for r := g.Rows() - 1; r >= 0; r-- {
		for c := 0; c < g.Cols(); c++ {
			if i := owner[r][c]; i >= 0 {
				b.WriteString(styles[i].Render(string(regionLetter(i))))
				continue
			}
			t, _ := g.TileAt(r, c)
			b.WriteString(StyleDim.Render(string(t.Code())))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// regionLetter labels region i with a letter, cycling after Z.
func regionLetter(i int) byte {
	return byte('A' + i%26)
}

// describeRect formats a placement with 1-based coordinates as written in
// solution files.
func describeRect(r fpga.Rect) string {
	return fmt.Sprintf("col %d row %d  %d×%d", r.Col+1, r.Row+1, r.Width, r.Height)
}

// batchTable renders a batch report as a table.
func batchTable(rep *pipeline.BatchReport) string {
	rows := make([][]string, 0, len(rep.Files))
	for _, f := range rep.Files {
		id, sc := "-", "-"
		if f.ProblemID != 0 {
			id = strconv.Itoa(f.ProblemID)
		}
		if f.Score != nil {
			sc = strconv.FormatFloat(*f.Score, 'f', 2, 64)
		}
		detail := f.Reason
		if f.Error != "" {
			detail = f.Error
		}
		rows = append(rows, []string{f.Name, id, f.Status, sc, detail})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("File", "Problem", "Status", "Score", "Detail").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 2 && row < len(rows) && rows[row][2] != pipeline.StatusSolved {
				return styleCell.Foreground(colorYellow)
			}
			return styleCell
		})
	return t.Render()
}
