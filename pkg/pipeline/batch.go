package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/floorplan/pkg/errors"
	fpio "github.com/matzehuels/floorplan/pkg/io"
	"github.com/matzehuels/floorplan/pkg/observability"
	"github.com/matzehuels/floorplan/pkg/problem"
)

// File statuses in a batch report.
const (
	StatusSolved     = "solved"
	StatusInfeasible = "infeasible"
	StatusError      = "error"
)

// FileResult is the outcome for one batch input.
type FileResult struct {
	Name      string        `json:"name"`
	ProblemID int           `json:"problem_id,omitempty"`
	Status    string        `json:"status"`
	Reason    string        `json:"reason,omitempty"`
	Code      errors.Code   `json:"code,omitempty"`
	Error     string        `json:"error,omitempty"`
	Score     *float64      `json:"score,omitempty"`
	Output    string        `json:"output,omitempty"`
	CacheHit  bool          `json:"cache_hit,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// BatchReport summarises a batch run.
type BatchReport struct {
	ID         string        `json:"id"`
	InDir      string        `json:"in_dir"`
	OutDir     string        `json:"out_dir"`
	Strategy   string        `json:"strategy"`
	Files      []FileResult  `json:"files"`
	Solved     int           `json:"solved"`
	Infeasible int           `json:"infeasible"`
	Failed     int           `json:"failed"`
	Duration   time.Duration `json:"duration"`
}

// TotalScore sums the scores of the solved files.
func (b *BatchReport) TotalScore() float64 {
	var total float64
	for _, f := range b.Files {
		if f.Score != nil {
			total += *f.Score
		}
	}
	return total
}

// Batch solves every file in inDir matching opts.Pattern and writes each
// solution to outDir under the input's file name.
//
// Files are solved by opts.Workers goroutines. A file that cannot be parsed
// or solved is recorded in the report and does not stop the others; an
// infeasible problem still gets its id-only solution file. Only
// cancellation of ctx aborts the batch.
func (r *Runner) Batch(ctx context.Context, inDir, outDir string, opts Options) (*BatchReport, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForBatch(); err != nil {
		return nil, err
	}
	if err := errors.ValidateDir(inDir); err != nil {
		return nil, err
	}
	if err := errors.ValidateDir(outDir); err != nil {
		return nil, err
	}
	if info, err := os.Stat(inDir); err != nil || !info.IsDir() {
		return nil, errors.New(errors.ErrCodeFileNotFound, "input directory %s not found", inDir)
	}

	paths, err := filepath.Glob(filepath.Join(inDir, opts.Pattern))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "pattern %q", opts.Pattern)
	}
	sort.Strings(paths)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", outDir)
	}

	report := &BatchReport{
		ID:       uuid.NewString(),
		InDir:    inDir,
		OutDir:   outDir,
		Strategy: opts.Strategy,
		Files:    make([]FileResult, len(paths)),
	}
	opts.Logger.Info("starting batch", "id", report.ID, "files", len(paths), "workers", opts.Workers)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := r.batchFile(gctx, path, outDir, opts)
			report.Files[i] = res
			if opts.OnFile != nil {
				opts.OnFile(res)
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	report.Duration = time.Since(start)

	for _, f := range report.Files {
		switch f.Status {
		case StatusSolved:
			report.Solved++
		case StatusInfeasible:
			report.Infeasible++
		default:
			report.Failed++
		}
	}
	observability.Solve().OnBatchComplete(ctx, len(paths), report.Solved, report.Infeasible, report.Failed, report.Duration)
	opts.Logger.Info("batch complete",
		"id", report.ID,
		"solved", report.Solved,
		"infeasible", report.Infeasible,
		"failed", report.Failed,
		"duration", report.Duration)
	return report, nil
}

func (r *Runner) batchFile(ctx context.Context, path, outDir string, opts Options) FileResult {
	name := filepath.Base(path)
	fr := FileResult{Name: name}
	start := time.Now()

	fail := func(err error) FileResult {
		fr.Status = StatusError
		fr.Code = errors.GetCode(err)
		fr.Error = errors.UserMessage(err)
		fr.Duration = time.Since(start)
		opts.Logger.Error("batch file failed", "file", name, "code", fr.Code, "error", err)
		return fr
	}

	fileOpts := opts
	fileOpts.Source = path
	res, err := r.SolveFile(ctx, path, fileOpts)
	if err != nil {
		return fail(err)
	}
	fr.ProblemID = res.ProblemID
	fr.CacheHit = res.CacheHit

	out := filepath.Join(outDir, name)
	if err := fpio.WriteSolutionFile(out, solutionOf(res)); err != nil {
		return fail(err)
	}
	fr.Output = out

	if res.Infeasible != nil {
		fr.Status = StatusInfeasible
		fr.Reason = string(res.Infeasible.Reason)
	} else {
		fr.Status = StatusSolved
		if res.Score != nil {
			v := res.Score.Value
			fr.Score = &v
		}
	}
	fr.Duration = time.Since(start)
	return fr
}

func solutionOf(res *Result) problem.Solution {
	if res.Infeasible != nil {
		return problem.Empty(res.ProblemID)
	}
	return res.Solution
}
