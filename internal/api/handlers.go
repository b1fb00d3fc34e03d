package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/floorplan/pkg/errors"
	fpio "github.com/matzehuels/floorplan/pkg/io"
	"github.com/matzehuels/floorplan/pkg/placer"
	"github.com/matzehuels/floorplan/pkg/pipeline"
	"github.com/matzehuels/floorplan/pkg/score"
	"github.com/matzehuels/floorplan/pkg/store"
)

// SolveRequest is the body of POST /v1/solve.
type SolveRequest struct {
	// Problem is the problem file content.
	Problem  string `json:"problem"`
	Strategy string `json:"strategy,omitempty"`
	MaxNodes int    `json:"max_nodes,omitempty"`
	// Timeout is a Go duration string such as "10s".
	Timeout string `json:"timeout,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`
}

// SolveResponse is the report plus the solution in file format.
type SolveResponse struct {
	*pipeline.Result
	Output string `json:"output"`
}

// ScoreRequest is the body of POST /v1/score.
type ScoreRequest struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
}

// ScoreResponse reports the score of a valid solution, or its violations.
type ScoreResponse struct {
	Valid      bool             `json:"valid"`
	Violations []string         `json:"violations,omitempty"`
	Score      *score.Breakdown `json:"score,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"strategies": placer.Names(),
		"default":    placer.DefaultStrategy,
	})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := fpio.ReadProblem(strings.NewReader(req.Problem))
	if err != nil {
		writeError(w, err)
		return
	}

	opts, err := s.solveOptions(req)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.Solve(r.Context(), p, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	var out bytes.Buffer
	if err := fpio.WriteSolution(&out, res.Solution); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "write solution"))
		return
	}
	writeJSON(w, http.StatusOK, SolveResponse{Result: res, Output: out.String()})
}

// solveOptions merges req into the server defaults. The node budget and
// timeout may be lowered by a request but never raised.
func (s *Server) solveOptions(req SolveRequest) (pipeline.Options, error) {
	opts := s.defaults
	opts.Refresh = req.Refresh
	opts.Source = "api"
	if req.Strategy != "" {
		opts.Strategy = req.Strategy
	}
	if req.MaxNodes < 0 {
		return opts, errors.New(errors.ErrCodeInvalidInput, "max_nodes must be positive, got %d", req.MaxNodes)
	}
	if req.MaxNodes > 0 {
		opts.MaxNodes = min(req.MaxNodes, s.defaults.MaxNodes)
	}
	if req.Timeout != "" {
		d, err := time.ParseDuration(req.Timeout)
		if err != nil || d <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid timeout %q", req.Timeout)
		}
		opts.Timeout = min(d, s.defaults.Timeout)
	}
	return opts, nil
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := fpio.ReadProblem(strings.NewReader(req.Problem))
	if err != nil {
		writeError(w, err)
		return
	}
	sol, err := fpio.ReadSolution(strings.NewReader(req.Solution))
	if err != nil {
		writeError(w, err)
		return
	}
	if sol.ProblemID != p.ID {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "solution is for problem %d, not %d", sol.ProblemID, p.ID))
		return
	}

	if violations := placer.Verify(p, sol); len(violations) > 0 {
		resp := ScoreResponse{}
		for _, v := range violations {
			resp.Violations = append(resp.Violations, v.String())
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}
	b, err := s.runner.Score(r.Context(), p, sol)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ScoreResponse{Valid: true, Score: &b})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	var opts store.ListOptions
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		opts.Limit = n
	}
	if v := q.Get("problem_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid problem_id %q", v))
			return
		}
		opts.ProblemID = &id
	}

	runs, err := s.runner.Store.List(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if runs == nil {
		runs = []*store.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.runner.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	var body errorBody
	body.Error.Code = errors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = errors.ErrCodeInternal
	}
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, statusFor(err), body)
}

// statusFor maps an error to an HTTP status.
func statusFor(err error) int {
	if err == context.DeadlineExceeded {
		return http.StatusGatewayTimeout
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeParse, errors.ErrCodeMalformedGrid,
		errors.ErrCodeMalformedProblem, errors.ErrCodeInvalidStrategy, errors.ErrCodeUnscorable:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeBackend:
		return http.StatusBadGateway
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
