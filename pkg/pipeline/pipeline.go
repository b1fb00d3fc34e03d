// Package pipeline runs floorplanning end to end: parse, solve, score,
// cache and record.
//
// The CLI and the API both go through a [Runner], so caching, timeouts,
// logging and run history behave the same everywhere.
//
//	runner := pipeline.NewRunner(c, nil, nil, logger)
//	result, err := runner.SolveFile(ctx, "problem.txt", pipeline.Options{Strategy: "search"})
//	if err != nil {
//	    return err
//	}
//	io.WriteSolution(os.Stdout, result.Solution)
//
// [Runner.Batch] solves every matching file of a directory concurrently and
// writes one solution file per problem.
package pipeline

import (
	"encoding/json"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/floorplan/pkg/cache"
	"github.com/matzehuels/floorplan/pkg/errors"
	"github.com/matzehuels/floorplan/pkg/placer"
	"github.com/matzehuels/floorplan/pkg/problem"
	"github.com/matzehuels/floorplan/pkg/score"
)

// Defaults shared by the CLI, the API and the config file.
const (
	DefaultStrategy = placer.DefaultStrategy
	DefaultMaxNodes = placer.DefaultMaxNodes
	DefaultTimeout  = 30 * time.Second
	DefaultWorkers  = 4
	DefaultPattern  = "*.txt"
)

// Options configures a solve or a batch.
type Options struct {
	Strategy string        `json:"strategy,omitempty"`
	MaxNodes int           `json:"max_nodes,omitempty"`
	Timeout  time.Duration `json:"timeout,omitempty"`
	Refresh  bool          `json:"refresh,omitempty"`

	// Batch options
	Workers int    `json:"workers,omitempty"`
	Pattern string `json:"pattern,omitempty"`

	// Source names the input in logs and run records, usually a path.
	Source string `json:"-"`
	// OnFile is called after each batch file completes.
	OnFile func(FileResult) `json:"-"`
	Logger *log.Logger      `json:"-"`
}

// ValidateStrategy checks that name is a registered strategy.
func ValidateStrategy(name string) error {
	if !slices.Contains(placer.Names(), name) {
		return errors.New(errors.ErrCodeInvalidStrategy, "invalid strategy: %q (must be one of: %v)", name, placer.Names())
	}
	return nil
}

// ValidateAndSetDefaults fills defaults and checks the solve options. It
// is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.MaxNodes == 0 {
		o.MaxNodes = DefaultMaxNodes
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.MaxNodes < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_nodes must be positive, got %d", o.MaxNodes)
	}
	if o.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "timeout must be positive, got %s", o.Timeout)
	}
	return ValidateStrategy(o.Strategy)
}

// ValidateForBatch is ValidateAndSetDefaults plus the batch options.
func (o *Options) ValidateForBatch() error {
	if err := o.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.Pattern == "" {
		o.Pattern = DefaultPattern
	}
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "workers must be positive, got %d", o.Workers)
	}
	return nil
}

// KeyOpts returns the cache key options. The node budget only matters to
// the search strategy.
func (o *Options) KeyOpts() cache.SolutionKeyOpts {
	k := cache.SolutionKeyOpts{Strategy: o.Strategy}
	if o.Strategy == placer.StrategySearch {
		k.MaxNodes = o.MaxNodes
	}
	return k
}

// Result is the report of one solve. It is what the cache stores and what
// the API returns.
type Result struct {
	RunID       string                  `json:"run_id,omitempty"`
	ProblemID   int                     `json:"problem_id"`
	ProblemHash string                  `json:"problem_hash"`
	Strategy    string                  `json:"strategy"`
	Solution    problem.Solution        `json:"solution"`
	Score       *score.Breakdown        `json:"score,omitempty"`
	Infeasible  *placer.InfeasibleError `json:"infeasible,omitempty"`
	Stats       Stats                   `json:"stats"`
	CacheHit    bool                    `json:"cache_hit"`
}

// Solved reports whether every region was placed.
func (r *Result) Solved() bool {
	return r.Infeasible == nil && !r.Solution.Failed()
}

// Stats holds timings and sizes of a solve.
type Stats struct {
	Regions   int           `json:"regions"`
	Rows      int           `json:"rows"`
	Cols      int           `json:"cols"`
	SolveTime time.Duration `json:"solve_time"`
	ScoreTime time.Duration `json:"score_time"`
}

// WriteReport writes r as indented JSON.
func WriteReport(w io.Writer, r *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// ReadReport decodes a report written by WriteReport.
func ReadReport(r io.Reader) (*Result, error) {
	var res Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode report")
	}
	return &res, nil
}
