// Package observability lets the application observe solves, cache
// traffic and API requests without the libraries depending on a metrics
// backend.
//
// Each event category has a hook interface with a no-op default. The
// binary registers real implementations at startup, libraries only call
// the getters:
//
//	observability.SetSolveHooks(myHooks)
//	...
//	observability.Solve().OnSolveStart(ctx, p.ID, "greedy", p.N())
package observability

import (
	"context"
	"sync"
	"time"
)

// Solve outcomes reported to OnSolveComplete.
const (
	OutcomeSolved     = "solved"
	OutcomeInfeasible = "infeasible"
	OutcomeError      = "error"
)

// SolveHooks receives events from the solve pipeline.
type SolveHooks interface {
	OnSolveStart(ctx context.Context, problemID int, strategy string, regions int)
	// OnSolveComplete reports one of the Outcome constants. err is set only
	// for OutcomeError.
	OnSolveComplete(ctx context.Context, problemID int, strategy, outcome string, duration time.Duration, err error)
	OnBatchComplete(ctx context.Context, files, solved, infeasible, failed int, duration time.Duration)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ServerHooks receives events from the HTTP API.
type ServerHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// NoopSolveHooks ignores all events.
type NoopSolveHooks struct{}

func (NoopSolveHooks) OnSolveStart(context.Context, int, string, int) {}
func (NoopSolveHooks) OnSolveComplete(context.Context, int, string, string, time.Duration, error) {
}
func (NoopSolveHooks) OnBatchComplete(context.Context, int, int, int, int, time.Duration) {}

// NoopCacheHooks ignores all events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks ignores all events.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var (
	solveHooks  SolveHooks  = NoopSolveHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	serverHooks ServerHooks = NoopServerHooks{}
	hooksMu     sync.RWMutex
)

// SetSolveHooks registers solve hooks. A nil h is ignored.
func SetSolveHooks(h SolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solveHooks = h
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetServerHooks registers API hooks. A nil h is ignored.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Solve returns the registered solve hooks.
func Solve() SolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solveHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Server returns the registered API hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solveHooks = NoopSolveHooks{}
	cacheHooks = NoopCacheHooks{}
	serverHooks = NoopServerHooks{}
}
