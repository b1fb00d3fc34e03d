package placer

import (
	"context"

	"github.com/matzehuels/floorplan/pkg/fpga"
	"github.com/matzehuels/floorplan/pkg/problem"
)

// Greedy is the reference strategy. Regions are handled in id order and
// region n is given the n-th band of rows (one row, or one clock region)
// across the span from the first valid left column to the last valid right
// column. Because every region owns a different band, placements never
// overlap.
//
// The first region that runs out of bands, covers a forbidden tile or lacks
// resources fails the whole solve. I/O ports and region kinds are ignored.
type Greedy struct{}

// Name implements Strategy.
func (Greedy) Name() string { return StrategyGreedy }

// Place implements Strategy.
func (Greedy) Place(_ context.Context, p *problem.Problem) Outcome {
	g := p.Grid
	h := g.BandHeight()
	bands := g.Bands()

	placements := make([]fpga.Rect, 0, p.N())
	for n, region := range p.Regions {
		if n >= bands {
			return Infeasible(n, ReasonRowsExhausted, "only %d bands of %d rows", bands, h)
		}

		start, end := g.FirstValidLeft(), g.LastValidRight()
		if end < start {
			return Infeasible(n, ReasonEmptySpan, "last valid right column %d is left of first valid left column %d", end, start)
		}

		r := fpga.Rect{Col: start, Row: n * h, Width: end - start + 1, Height: h}
		covered, err := fpga.Coverage(g, r)
		if err != nil {
			return Infeasible(n, ReasonEmptySpan, "%v", err)
		}
		if fpga.HasForbidden(covered) {
			return Infeasible(n, ReasonForbidden, "%v covers %d forbidden tiles", r, covered.Forbidden)
		}
		if !fpga.MeetsDemand(covered, region.Demand) {
			return Infeasible(n, ReasonDemand, "%v covers CLB=%d BRAM=%d DSP=%d, need %v",
				r, covered.CLB, covered.BRAM, covered.DSP, region.Demand)
		}
		placements = append(placements, r)
	}
	return Success(placements)
}
