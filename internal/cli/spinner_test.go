package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func quietStatus(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := statusOut
	statusOut = &buf
	t.Cleanup(func() { statusOut = old })
	return &buf
}

func TestSpinnerStop(t *testing.T) {
	buf := quietStatus(t)
	s := newSpinner("Solving...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		t.Error("Cancelled() = true after Stop")
	}
	if !strings.Contains(buf.String(), "Solving...") {
		t.Errorf("spinner output %q lacks message", buf.String())
	}
}

func TestSpinnerContext(t *testing.T) {
	quietStatus(t)
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := newSpinnerWithContext(ctx, "Waiting...")
			s.Start()
			time.Sleep(100 * time.Millisecond)

			if !s.Cancelled() {
				t.Error("Cancelled() = false after context ended")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStopTwice(t *testing.T) {
	quietStatus(t)
	s := newSpinner("Twice...")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithMessage(t *testing.T) {
	buf := quietStatus(t)

	s := newSpinner("Solving...")
	s.Start()
	s.StopWithSuccess("Solved problem 7")
	if !strings.Contains(buf.String(), "Solved problem 7") {
		t.Errorf("output %q lacks success message", buf.String())
	}

	s = newSpinner("Solving...")
	s.Start()
	s.StopWithError("no placement for region 2")
	if !strings.Contains(buf.String(), "no placement for region 2") {
		t.Errorf("output %q lacks error message", buf.String())
	}
}
