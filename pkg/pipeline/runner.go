package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/floorplan/pkg/cache"
	"github.com/matzehuels/floorplan/pkg/errors"
	fpio "github.com/matzehuels/floorplan/pkg/io"
	"github.com/matzehuels/floorplan/pkg/observability"
	"github.com/matzehuels/floorplan/pkg/placer"
	"github.com/matzehuels/floorplan/pkg/problem"
	"github.com/matzehuels/floorplan/pkg/score"
	"github.com/matzehuels/floorplan/pkg/store"
)

// Runner solves problems with caching and run history. It holds no
// per-solve state, so one Runner may serve many goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger

	// TTL overrides the expiry of cached solutions and scores.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the DefaultKeyer and a nil store skips run history.
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  st,
		Logger: logger,
	}
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// ProblemHash returns the content hash of p in its canonical text form.
func ProblemHash(p *problem.Problem) (string, error) {
	var buf bytes.Buffer
	if err := fpio.WriteProblem(&buf, p); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "serialize problem")
	}
	return cache.Hash(buf.Bytes()), nil
}

// Solve floorplans p.
//
// An infeasible problem is not an error: the result carries the empty
// solution and the reason. Errors are returned for malformed problems,
// invalid options, cancellation and internal failures.
func (r *Runner) Solve(ctx context.Context, p *problem.Problem, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	hash, err := ProblemHash(p)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.SolutionKey(hash, opts.KeyOpts())

	if !opts.Refresh {
		if res, ok := r.cached(ctx, key); ok {
			opts.Logger.Debug("solution cache hit", "problem", p.ID, "strategy", opts.Strategy)
			res.CacheHit = true
			res.RunID = ""
			r.record(ctx, res, opts)
			return res, nil
		}
	}

	res, cacheable, err := r.solve(ctx, p, hash, opts)
	if err != nil {
		return nil, err
	}

	if cacheable {
		var buf bytes.Buffer
		if err := WriteReport(&buf, res); err == nil {
			if err := r.Cache.Set(ctx, key, buf.Bytes(), r.ttl(cache.TTLSolution)); err != nil {
				opts.Logger.Warn("cache write failed", "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "solution", buf.Len())
			}
		}
	}
	r.record(ctx, res, opts)
	return res, nil
}

func (r *Runner) cached(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "solution")
		return nil, false
	}
	res, err := ReadReport(bytes.NewReader(data))
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, "solution")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "solution")
	return res, true
}

// solve runs the strategy. cacheable is false when the result depends on
// the wall clock, i.e. the timeout cut the search short.
func (r *Runner) solve(ctx context.Context, p *problem.Problem, hash string, opts Options) (*Result, bool, error) {
	strategy, err := placer.New(opts.Strategy, placer.WithMaxNodes(opts.MaxNodes))
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Solve()
	hooks.OnSolveStart(ctx, p.ID, strategy.Name(), p.N())
	opts.Logger.Debug("solving", "problem", p.ID, "strategy", strategy.Name(), "regions", p.N())

	solveCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	start := time.Now()
	sol, infeasible, err := placer.Solve(solveCtx, strategy, p)
	elapsed := time.Since(start)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		hooks.OnSolveComplete(ctx, p.ID, strategy.Name(), observability.OutcomeError, elapsed, err)
		return nil, false, err
	}

	res := &Result{
		ProblemID:   p.ID,
		ProblemHash: hash,
		Strategy:    strategy.Name(),
		Solution:    sol,
		Infeasible:  infeasible,
		Stats: Stats{
			Regions:   p.N(),
			Rows:      p.Grid.Rows(),
			Cols:      p.Grid.Cols(),
			SolveTime: elapsed,
		},
	}

	if infeasible != nil {
		hooks.OnSolveComplete(ctx, p.ID, strategy.Name(), observability.OutcomeInfeasible, elapsed, nil)
		opts.Logger.Warn("no floorplan found",
			"problem", p.ID,
			"strategy", strategy.Name(),
			"region", infeasible.Region,
			"reason", infeasible.Reason,
			"duration", elapsed)
		return res, solveCtx.Err() == nil, nil
	}

	if !sol.Failed() {
		scoreStart := time.Now()
		b, err := score.Score(p, sol)
		if err != nil {
			hooks.OnSolveComplete(ctx, p.ID, strategy.Name(), observability.OutcomeError, elapsed, err)
			return nil, false, err
		}
		res.Score = &b
		res.Stats.ScoreTime = time.Since(scoreStart)
	}

	hooks.OnSolveComplete(ctx, p.ID, strategy.Name(), observability.OutcomeSolved, elapsed, nil)
	fields := []any{"problem", p.ID, "strategy", strategy.Name(), "regions", p.N(), "duration", elapsed}
	if res.Score != nil {
		fields = append(fields, "score", res.Score.Value)
	}
	opts.Logger.Info("solved", fields...)
	return res, true, nil
}

// record saves the run to the store, if any, and sets res.RunID. Store
// failures are logged and do not fail the solve.
func (r *Runner) record(ctx context.Context, res *Result, opts Options) {
	if r.Store == nil {
		return
	}
	run := &store.Run{
		ProblemID:   res.ProblemID,
		ProblemHash: res.ProblemHash,
		Source:      opts.Source,
		Strategy:    res.Strategy,
		Status:      store.StatusSolved,
		Regions:     res.Stats.Regions,
		Placements:  res.Solution.Placements,
		CacheHit:    res.CacheHit,
		Duration:    res.Stats.SolveTime,
	}
	if res.Infeasible != nil {
		run.Status = store.StatusInfeasible
		run.Reason = string(res.Infeasible.Reason)
	}
	if res.Score != nil {
		v := res.Score.Value
		run.Score = &v
	}
	if err := r.Store.Save(ctx, run); err != nil {
		opts.Logger.Warn("failed to record run", "error", err)
		return
	}
	res.RunID = run.ID
}

// SolveFile parses the problem at path and solves it.
func (r *Runner) SolveFile(ctx context.Context, path string, opts Options) (*Result, error) {
	p, err := fpio.ReadProblemFile(path)
	if err != nil {
		return nil, err
	}
	if opts.Source == "" {
		opts.Source = path
	}
	return r.Solve(ctx, p, opts)
}

// Score scores sol against p, using the cache for repeated requests.
func (r *Runner) Score(ctx context.Context, p *problem.Problem, sol problem.Solution) (score.Breakdown, error) {
	if err := p.Validate(); err != nil {
		return score.Breakdown{}, err
	}
	hash, err := ProblemHash(p)
	if err != nil {
		return score.Breakdown{}, err
	}
	var buf bytes.Buffer
	if err := fpio.WriteSolution(&buf, sol); err != nil {
		return score.Breakdown{}, errors.Wrap(errors.ErrCodeInternal, err, "serialize solution")
	}
	key := r.Keyer.ScoreKey(hash, cache.Hash(buf.Bytes()))

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var b score.Breakdown
		if err := json.Unmarshal(data, &b); err == nil {
			observability.Cache().OnCacheHit(ctx, "score")
			return b, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "score")

	b, err := score.Score(p, sol)
	if err != nil {
		return score.Breakdown{}, err
	}
	if data, err := json.Marshal(b); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLScore)); err == nil {
			observability.Cache().OnCacheSet(ctx, "score", len(data))
		}
	}
	return b, nil
}

// Close releases the cache and the store.
func (r *Runner) Close() error {
	var firstErr error
	if r.Cache != nil {
		firstErr = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
