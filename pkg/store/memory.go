package store

import (
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/floorplan/pkg/errors"
)

// MemoryStore keeps runs in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]*Run)}
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, run *Run) error {
	if run == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil run")
	}
	prepare(run)
	cp := *run
	s.mu.Lock()
	s.runs[run.ID] = &cp
	s.mu.Unlock()
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (*Run, error) {
	s.mu.RLock()
	run, ok := s.runs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "run %s not found", id)
	}
	cp := *run
	return &cp, nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context, opts ListOptions) ([]*Run, error) {
	s.mu.RLock()
	out := make([]*Run, 0, len(s.runs))
	for _, run := range s.runs {
		if opts.ProblemID != nil && run.ProblemID != *opts.ProblemID {
			continue
		}
		cp := *run
		out = append(out, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if n := opts.limit(); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
