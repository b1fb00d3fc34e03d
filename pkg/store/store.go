// Package store keeps a history of solve runs.
//
// Every solve performed by the pipeline is recorded as a [Run]. The API
// lists and fetches runs; the CLI records them only when a MongoDB store is
// configured. Two backends implement [Store]:
//   - [MemoryStore]: process-local, for the CLI and tests
//   - [MongoStore]: a MongoDB collection, for long-running servers
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/floorplan/pkg/fpga"
	"github.com/matzehuels/floorplan/pkg/problem"
)

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// Status values of a run.
const (
	StatusSolved     = "solved"
	StatusInfeasible = "infeasible"
)

// Run is the record of one solve.
type Run struct {
	ID          string        `json:"id" bson:"_id"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	ProblemID   int           `json:"problem_id" bson:"problem_id"`
	ProblemHash string        `json:"problem_hash" bson:"problem_hash"`
	Source      string        `json:"source,omitempty" bson:"source,omitempty"`
	Strategy    string        `json:"strategy" bson:"strategy"`
	Status      string        `json:"status" bson:"status"`
	Regions     int           `json:"regions" bson:"regions"`
	Placements  []fpga.Rect   `json:"placements,omitempty" bson:"placements,omitempty"`
	Reason      string        `json:"reason,omitempty" bson:"reason,omitempty"`
	Score       *float64      `json:"score,omitempty" bson:"score,omitempty"`
	CacheHit    bool          `json:"cache_hit" bson:"cache_hit"`
	Duration    time.Duration `json:"duration" bson:"duration"`
}

// Solution returns the solution recorded by the run.
func (r *Run) Solution() problem.Solution {
	return problem.Solution{ProblemID: r.ProblemID, Placements: append([]fpga.Rect(nil), r.Placements...)}
}

// ListOptions filters List.
type ListOptions struct {
	// Limit caps the number of runs; 0 means DefaultListLimit.
	Limit int
	// ProblemID, when non-nil, keeps only runs of that problem.
	ProblemID *int
}

func (o ListOptions) limit() int {
	if o.Limit <= 0 {
		return DefaultListLimit
	}
	return o.Limit
}

// Store persists runs.
type Store interface {
	// Save records run, assigning ID and CreatedAt when they are empty.
	Save(ctx context.Context, run *Run) error
	// Get returns the run with the given id, or an ErrCodeNotFound error.
	Get(ctx context.Context, id string) (*Run, error)
	// List returns runs newest first.
	List(ctx context.Context, opts ListOptions) ([]*Run, error)
	Close() error
}

func prepare(run *Run) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
}
