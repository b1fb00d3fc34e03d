package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/floorplan/pkg/fpga"
	"github.com/matzehuels/floorplan/pkg/problem"
)

// DefaultScale is the drawn size of one tile in inches.
const DefaultScale = 0.25

// MaxTiles caps the number of tiles drawn individually.
const MaxTiles = 20_000

// Options configures ToDOT.
type Options struct {
	// Tiles draws every grid tile coloured by type. Grids larger than
	// MaxTiles only draw forbidden tiles.
	Tiles bool
	// Scale is the size of a tile in inches; 0 means DefaultScale.
	Scale float64
	// Title is drawn above the grid.
	Title string
}

var tileColors = map[fpga.Tile]string{
	fpga.CLB:       "#dbeafe",
	fpga.BRAM:      "#fde68a",
	fpga.DSP:       "#bbf7d0",
	fpga.Forbidden: "#374151",
	fpga.Null:      "#f9fafb",
}

var regionColors = []string{
	"#ef4444", "#3b82f6", "#10b981", "#f59e0b", "#8b5cf6",
	"#ec4899", "#14b8a6", "#f97316", "#6366f1", "#84cc16",
}

// RegionColor returns the colour used for region i.
func RegionColor(i int) string {
	return regionColors[i%len(regionColors)]
}

// ToDOT renders p, and sol when it has placements, as neato DOT source.
func ToDOT(p *problem.Problem, sol problem.Solution, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	g := p.Grid
	d := drawer{rows: g.Rows(), scale: scale}

	var buf bytes.Buffer
	buf.WriteString("graph floorplan {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  node [shape=box, style=filled, fixedsize=true, penwidth=0, label=\"\"];\n")
	buf.WriteString("  edge [color=\"#1f2937\"];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  grid [%s, fillcolor=\"#f3f4f6\", penwidth=1, color=\"#9ca3af\"];\n",
		d.box(fpga.Rect{Width: g.Cols(), Height: g.Rows()}))

	all := opts.Tiles && g.Rows()*g.Cols() <= MaxTiles
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			t, _ := g.TileAt(r, c)
			if !all && t != fpga.Forbidden {
				continue
			}
			fmt.Fprintf(&buf, "  t_%d_%d [%s, fillcolor=%q];\n",
				r, c, d.box(fpga.Rect{Col: c, Row: r, Width: 1, Height: 1}), tileColors[t])
		}
	}

	if sol.Failed() || len(sol.Placements) != p.N() {
		buf.WriteString("}\n")
		return buf.String()
	}

	buf.WriteString("\n")
	for i, rect := range sol.Placements {
		label := fmt.Sprintf("R%d\n%s", i, p.Regions[i].Demand)
		fmt.Fprintf(&buf, "  r%d [%s, fillcolor=\"%s99\", penwidth=2, color=%q, fontsize=10, label=%q];\n",
			i, d.box(rect), RegionColor(i), RegionColor(i), label)
	}

	buf.WriteString("\n")
	for i := 0; i < p.N(); i++ {
		for j := i + 1; j < p.N(); j++ {
			wires := p.Comm.Wires(i, j) + p.Comm.Wires(j, i)
			if wires == 0 {
				continue
			}
			fmt.Fprintf(&buf, "  r%d -- r%d [penwidth=%.1f, tooltip=\"%d wires\"];\n", i, j, penWidth(wires), wires)
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

// drawer converts grid rectangles to pinned node attributes. Graphviz y
// grows upwards, grid rows grow downwards.
type drawer struct {
	rows  int
	scale float64
}

func (d drawer) box(r fpga.Rect) string {
	w := float64(r.Width) * d.scale
	h := float64(r.Height) * d.scale
	x := (float64(r.Col) + float64(r.Width)/2) * d.scale
	y := (float64(d.rows-r.Row) - float64(r.Height)/2) * d.scale
	return strings.Join([]string{
		fmt.Sprintf("pos=\"%.3f,%.3f!\"", x, y),
		fmt.Sprintf("width=%.3f", w),
		fmt.Sprintf("height=%.3f", h),
	}, ", ")
}

func penWidth(wires int) float64 {
	w := 1 + float64(wires)/4
	if w > 8 {
		return 8
	}
	return w
}
