package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports solve and cache events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnSolveStart(_ context.Context, problemID int, strategy string, regions int) {
	h.logger.Debug("solve started", "problem", problemID, "strategy", strategy, "regions", regions)
}

func (h logHooks) OnSolveComplete(_ context.Context, problemID int, strategy, outcome string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("solve failed", "problem", problemID, "strategy", strategy, "error", err)
		return
	}
	h.logger.Debug("solve finished", "problem", problemID, "strategy", strategy, "outcome", outcome, "duration", d)
}

func (h logHooks) OnBatchComplete(_ context.Context, files, solved, infeasible, failed int, d time.Duration) {
	h.logger.Debug("batch finished", "files", files, "solved", solved, "infeasible", infeasible, "failed", failed, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache write", "type", keyType, "bytes", size)
}
