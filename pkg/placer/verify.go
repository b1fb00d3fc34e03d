package placer

import (
	"fmt"

	"github.com/matzehuels/floorplan/pkg/errors"
	"github.com/matzehuels/floorplan/pkg/fpga"
	"github.com/matzehuels/floorplan/pkg/problem"
)

// ViolationKind classifies a broken floorplan constraint.
type ViolationKind string

const (
	ViolationCount     ViolationKind = "count"
	ViolationBounds    ViolationKind = "bounds"
	ViolationLeftEdge  ViolationKind = "left_edge"
	ViolationRightEdge ViolationKind = "right_edge"
	ViolationAlignment ViolationKind = "alignment"
	ViolationForbidden ViolationKind = "forbidden"
	ViolationDemand    ViolationKind = "demand"
	ViolationOverlap   ViolationKind = "overlap"
)

// Violation is one broken constraint. Other is the second region of an
// overlap and -1 otherwise.
type Violation struct {
	Kind   ViolationKind `json:"kind"`
	Region int           `json:"region"`
	Other  int           `json:"other"`
	Detail string        `json:"detail"`
}

func (v Violation) String() string {
	return fmt.Sprintf("region %d: %s: %s", v.Region, v.Kind, v.Detail)
}

// Verify lists every constraint a solution breaks. The empty solution is
// the failure sentinel and has no violations.
func Verify(p *problem.Problem, sol problem.Solution) []Violation {
	if sol.Failed() {
		return nil
	}
	if len(sol.Placements) != p.N() {
		return []Violation{{
			Kind:   ViolationCount,
			Region: -1,
			Other:  -1,
			Detail: fmt.Sprintf("%d placements for %d regions", len(sol.Placements), p.N()),
		}}
	}

	g := p.Grid
	var out []Violation
	add := func(kind ViolationKind, region int, format string, args ...any) {
		out = append(out, Violation{Kind: kind, Region: region, Other: -1, Detail: fmt.Sprintf(format, args...)})
	}

	for i, r := range sol.Placements {
		if !g.Contains(r) {
			add(ViolationBounds, i, "%v outside %dx%d grid", r, g.Rows(), g.Cols())
			continue
		}
		if !g.IsValidLeft(r.Col) {
			add(ViolationLeftEdge, i, "column %d is not a valid left edge", r.Col)
		}
		if !g.IsValidRight(r.EndCol()) {
			add(ViolationRightEdge, i, "column %d is not a valid right edge", r.EndCol())
		}
		if !g.Aligned(r) {
			add(ViolationAlignment, i, "%v not aligned to clock regions of %d rows", r, g.BandHeight())
		}
		c, _ := fpga.Coverage(g, r)
		if fpga.HasForbidden(c) {
			add(ViolationForbidden, i, "%v covers %d forbidden tiles", r, c.Forbidden)
		}
		if d := p.Regions[i].Demand; !fpga.MeetsDemand(c, d) {
			add(ViolationDemand, i, "covers CLB=%d BRAM=%d DSP=%d, need %v", c.CLB, c.BRAM, c.DSP, d)
		}
	}

	for i := range sol.Placements {
		for j := i + 1; j < len(sol.Placements); j++ {
			if sol.Placements[i].Overlaps(sol.Placements[j]) {
				out = append(out, Violation{
					Kind:   ViolationOverlap,
					Region: i,
					Other:  j,
					Detail: fmt.Sprintf("%v overlaps region %d at %v", sol.Placements[i], j, sol.Placements[j]),
				})
			}
		}
	}
	return out
}

// Check verifies placements for p and returns the first violation as an
// error, or nil.
func Check(p *problem.Problem, placements []fpga.Rect) error {
	vs := Verify(p, problem.Solution{ProblemID: p.ID, Placements: placements})
	if len(vs) == 0 {
		return nil
	}
	return errors.New(errors.ErrCodeInfeasible, "%s (%d violations)", vs[0], len(vs))
}
