package placer

import (
	"cmp"
	"context"
	"slices"

	"github.com/matzehuels/floorplan/pkg/fpga"
	"github.com/matzehuels/floorplan/pkg/problem"
)

// Search is a backtracking strategy. For every region it enumerates the
// minimal feasible rectangles (valid left and right edges, band-aligned,
// no forbidden tiles, demand met), cheapest weighted area first. It then
// assigns the most constrained regions first and backtracks on overlap.
//
// The search stops after MaxNodes candidate visits or when the context is
// done; either yields an infeasible outcome with [ReasonBudget].
type Search struct {
	MaxNodes int
}

// Name implements Strategy.
func (Search) Name() string { return StrategySearch }

// Place implements Strategy.
func (s Search) Place(ctx context.Context, p *problem.Problem) Outcome {
	maxNodes := s.MaxNodes
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}
	if p.N() == 0 {
		return Success(nil)
	}

	idx := fpga.NewCoverageIndex(p.Grid)
	cands := make([][]candidate, p.N())
	for _, region := range p.Regions {
		cands[region.ID] = candidates(idx, region.Demand, p.Weights)
		if len(cands[region.ID]) == 0 {
			return Infeasible(region.ID, ReasonNoCandidate, "no rectangle on the grid satisfies %v", region.Demand)
		}
	}

	order := make([]int, p.N())
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(len(cands[a]), len(cands[b]))
	})

	st := &searchState{
		ctx:      ctx,
		cands:    cands,
		order:    order,
		placed:   make([]fpga.Rect, p.N()),
		maxNodes: maxNodes,
		failing:  order[0],
	}
	if st.place(0) {
		return Success(st.placed)
	}
	switch {
	case st.cancelled:
		return Infeasible(st.failing, ReasonBudget, "cancelled after %d nodes: %v", st.nodes, ctx.Err())
	case st.exhausted:
		return Infeasible(st.failing, ReasonBudget, "node budget of %d exhausted", maxNodes)
	}
	return Infeasible(st.failing, ReasonNoCandidate, "every candidate overlaps another region")
}

// candidate is a feasible rectangle with its weighted area cost.
type candidate struct {
	rect fpga.Rect
	cost int
}

// candidates lists the Pareto-minimal feasible rectangles for d, sorted by
// cost, then area, then position. For a fixed left column and start row,
// a taller rectangle is kept only if it is narrower than every shorter one;
// anything else contains a cheaper candidate.
func candidates(idx *fpga.CoverageIndex, d fpga.Demand, w problem.Weights) []candidate {
	g := idx.Grid()
	h := g.BandHeight()
	rights := g.ValidRightCols()

	var out []candidate
	for _, left := range g.ValidLeftCols() {
		for row := 0; row+h <= g.Rows(); row += h {
			narrowest := g.Cols() + 1
			for height := h; row+height <= g.Rows(); height += h {
				for _, right := range rights {
					if right < left {
						continue
					}
					width := right - left + 1
					if width >= narrowest {
						break
					}
					r := fpga.Rect{Col: left, Row: row, Width: width, Height: height}
					c, err := idx.Coverage(r)
					if err != nil {
						break
					}
					if fpga.HasForbidden(c) {
						// Wider rectangles on this row span still contain it.
						break
					}
					if fpga.MeetsDemand(c, d) {
						out = append(out, candidate{rect: r, cost: w.AreaCost(c)})
						narrowest = width
						break
					}
				}
			}
		}
	}

	slices.SortFunc(out, func(a, b candidate) int {
		return cmp.Or(
			cmp.Compare(a.cost, b.cost),
			cmp.Compare(a.rect.Area(), b.rect.Area()),
			cmp.Compare(a.rect.Row, b.rect.Row),
			cmp.Compare(a.rect.Col, b.rect.Col),
			cmp.Compare(a.rect.Height, b.rect.Height),
		)
	})
	return out
}

type searchState struct {
	ctx      context.Context
	cands    [][]candidate
	order    []int
	placed   []fpga.Rect
	maxNodes int

	nodes     int
	exhausted bool
	cancelled bool
	deepest   int
	failing   int
}

// place assigns order[depth:] and reports whether it succeeded.
func (st *searchState) place(depth int) bool {
	if depth == len(st.order) {
		return true
	}
	id := st.order[depth]
	for _, c := range st.cands[id] {
		if st.nodes >= st.maxNodes {
			st.exhausted = true
			st.fail(depth, id)
			return false
		}
		st.nodes++
		if st.nodes%1024 == 0 && st.ctx.Err() != nil {
			st.cancelled = true
			st.fail(depth, id)
			return false
		}
		if st.overlaps(c.rect, depth) {
			continue
		}
		st.placed[id] = c.rect
		if st.place(depth + 1) {
			return true
		}
		if st.exhausted || st.cancelled {
			return false
		}
	}
	st.fail(depth, id)
	return false
}

// fail remembers the deepest region the search got stuck on.
func (st *searchState) fail(depth, id int) {
	if depth >= st.deepest {
		st.deepest = depth
		st.failing = id
	}
}

func (st *searchState) overlaps(r fpga.Rect, depth int) bool {
	for _, other := range st.order[:depth] {
		if r.Overlaps(st.placed[other]) {
			return true
		}
	}
	return false
}
