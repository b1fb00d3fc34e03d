package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/floorplan/pkg/errors"
	"github.com/matzehuels/floorplan/pkg/fpga"
)

func TestMemoryStoreSaveGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	run := &Run{
		ProblemID:  3,
		Strategy:   "greedy",
		Status:     StatusSolved,
		Placements: []fpga.Rect{{Col: 0, Row: 0, Width: 2, Height: 1}},
	}
	if err := s.Save(ctx, run); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if run.ID == "" || run.CreatedAt.IsZero() {
		t.Fatalf("Save() did not assign id/time: %+v", run)
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.ProblemID != 3 || !got.Solution().Equal(run.Solution()) {
		t.Errorf("Get() = %+v", got)
	}

	got.Strategy = "changed"
	again, _ := s.Get(ctx, run.ID)
	if again.Strategy != "greedy" {
		t.Error("Get() returned shared state")
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	_, err := NewMemoryStore().Get(context.Background(), "nope")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get(missing) error = %v, want not found", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := &Run{ProblemID: i % 2, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.Save(ctx, run); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.List(ctx, ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Fatalf("List() returned %d runs, want 5", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Error("List() not newest first")
		}
	}

	limited, _ := s.List(ctx, ListOptions{Limit: 2})
	if len(limited) != 2 || !limited[0].CreatedAt.Equal(base.Add(4*time.Minute)) {
		t.Errorf("List(limit 2) = %d runs", len(limited))
	}

	id := 1
	odd, _ := s.List(ctx, ListOptions{ProblemID: &id})
	if len(odd) != 2 {
		t.Errorf("List(problem 1) returned %d runs, want 2", len(odd))
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Save(ctx, &Run{ProblemID: i})
		}(i)
	}
	wg.Wait()
	runs, _ := s.List(ctx, ListOptions{Limit: 100})
	if len(runs) != 20 {
		t.Errorf("got %d runs, want 20", len(runs))
	}
}

func TestMemoryStoreNilRun(t *testing.T) {
	if err := NewMemoryStore().Save(context.Background(), nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save(nil) error = %v", err)
	}
}
