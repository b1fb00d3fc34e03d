// Package placer turns a problem instance into region placements.
//
// Every algorithm implements [Strategy]. A strategy reports an [Outcome]:
// either one feasible rectangle per region, or the first region it gave up
// on and why. [Solve] runs a strategy, checks its output with [Verify] and
// maps an infeasible outcome to the empty solution, which is how the
// solution format expresses failure.
//
// Two strategies ship with the package:
//   - greedy: the reference baseline. Region n gets band n across the full
//     valid column span; the first region that does not fit fails the whole
//     solve, with no backtracking.
//   - search: a depth-first search over feasible rectangles with explicit
//     overlap checks, bounded by a node budget and by the context.
//
// Strategies are deterministic and share no state, so one value may be used
// from many goroutines.
package placer

import (
	"context"
	"fmt"

	"github.com/matzehuels/floorplan/pkg/errors"
	"github.com/matzehuels/floorplan/pkg/fpga"
	"github.com/matzehuels/floorplan/pkg/problem"
)

// Strategy maps every region of a problem to a footprint, or gives up.
//
// Implementations must return either exactly one feasible, pairwise
// non-overlapping rectangle per region (in region id order) or an
// infeasible outcome. Partial results are not allowed.
type Strategy interface {
	// Name identifies the strategy in logs, cache keys and the registry.
	Name() string

	// Place floorplans p. The problem has already been validated.
	Place(ctx context.Context, p *problem.Problem) Outcome
}

// Reason says why a region could not be placed.
type Reason string

const (
	// ReasonRowsExhausted: no row band is left for the region.
	ReasonRowsExhausted Reason = "rows_exhausted"
	// ReasonForbidden: the footprint covers a forbidden tile.
	ReasonForbidden Reason = "forbidden_tile"
	// ReasonDemand: the footprint lacks resources.
	ReasonDemand Reason = "demand_unmet"
	// ReasonEmptySpan: no valid left column lies at or before a valid right column.
	ReasonEmptySpan Reason = "empty_span"
	// ReasonNoCandidate: no footprint fits alongside the others.
	ReasonNoCandidate Reason = "no_candidate"
	// ReasonBudget: the search budget or the context ran out.
	ReasonBudget Reason = "budget_exhausted"
)

// InfeasibleError describes the region a strategy failed on.
type InfeasibleError struct {
	Region int    `json:"region"`
	Reason Reason `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// Error implements the error interface.
func (e *InfeasibleError) Error() string {
	msg := fmt.Sprintf("region %d: %s", e.Region, e.Reason)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Code tags the error as an infeasible placement for pkg/errors.
func (e *InfeasibleError) Code() errors.Code {
	return errors.ErrCodeInfeasible
}

// Outcome is what a strategy produces: placements on success, or the
// failing region.
type Outcome struct {
	Placements []fpga.Rect
	Infeasible *InfeasibleError
}

// Success builds a successful outcome.
func Success(placements []fpga.Rect) Outcome {
	return Outcome{Placements: placements}
}

// Infeasible builds a failed outcome for region.
func Infeasible(region int, reason Reason, format string, args ...any) Outcome {
	return Outcome{Infeasible: &InfeasibleError{
		Region: region,
		Reason: reason,
		Detail: fmt.Sprintf(format, args...),
	}}
}

// OK reports whether the outcome carries a placement for every region.
func (o Outcome) OK() bool {
	return o.Infeasible == nil
}

// Solution converts the outcome to a solution. Infeasible outcomes become
// the empty solution; no placement survives a failure.
func (o Outcome) Solution(problemID int) problem.Solution {
	if !o.OK() {
		return problem.Empty(problemID)
	}
	return problem.Solution{
		ProblemID:  problemID,
		Placements: append([]fpga.Rect(nil), o.Placements...),
	}
}

// Solve validates p, runs s and checks the result.
//
// A malformed problem is returned as an error and never as an empty
// solution. An infeasible outcome yields the empty solution together with
// the InfeasibleError that caused it. A strategy that claims success with
// placements that fail [Verify] is reported as an internal error.
func Solve(ctx context.Context, s Strategy, p *problem.Problem) (problem.Solution, *InfeasibleError, error) {
	if err := p.Validate(); err != nil {
		return problem.Solution{}, nil, err
	}

	out := s.Place(ctx, p)
	if !out.OK() {
		return problem.Empty(p.ID), out.Infeasible, nil
	}

	if len(out.Placements) != p.N() {
		return problem.Solution{}, nil, errors.New(errors.ErrCodeInternal,
			"strategy %s returned %d placements for %d regions", s.Name(), len(out.Placements), p.N())
	}
	if err := Check(p, out.Placements); err != nil {
		return problem.Solution{}, nil, errors.Wrap(errors.ErrCodeInternal, err, "strategy %s returned an invalid floorplan", s.Name())
	}
	return out.Solution(p.ID), nil, nil
}
