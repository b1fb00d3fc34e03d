package problem

import (
	"github.com/matzehuels/floorplan/pkg/fpga"
)

// Solution is the outcome of floorplanning a problem: either exactly one
// placement per region in id order, or no placements at all when the
// strategy failed. Partial solutions do not exist.
type Solution struct {
	ProblemID  int         `json:"problem_id"`
	Placements []fpga.Rect `json:"placements"`
}

// Failed reports whether the solution carries no placements.
func (s Solution) Failed() bool {
	return len(s.Placements) == 0
}

// Empty returns the failure solution for a problem.
func Empty(problemID int) Solution {
	return Solution{ProblemID: problemID}
}

// Clone returns a deep copy of s.
func (s Solution) Clone() Solution {
	return Solution{
		ProblemID:  s.ProblemID,
		Placements: append([]fpga.Rect(nil), s.Placements...),
	}
}

// Equal reports whether two solutions have the same id and placements.
func (s Solution) Equal(o Solution) bool {
	if s.ProblemID != o.ProblemID || len(s.Placements) != len(o.Placements) {
		return false
	}
	for i := range s.Placements {
		if s.Placements[i] != o.Placements[i] {
			return false
		}
	}
	return true
}
