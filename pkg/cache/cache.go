// Package cache stores solved floorplans so identical requests are not
// solved twice.
//
// A [Cache] maps string keys to opaque bytes with an optional TTL. Three
// backends are provided:
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: a shared Redis instance, for the API server
//   - [NullCache]: never stores anything, for --no-cache and tests
//
// Keys are produced by a [Keyer]. The default keyer hashes the problem text
// together with every option that changes the result, so a cached solution
// is only reused when it would be computed identically.
package cache

import (
	"context"
	"time"
)

// TTLs for cached artifacts. Solutions are a pure function of the problem
// and the strategy options, so they can live for a long time.
const (
	TTLSolution = 30 * 24 * time.Hour
	TTLScore    = 30 * 24 * time.Hour
)

// Cache is a key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired
	// entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// SolutionKey keys a placement result.
	SolutionKey(problemHash string, opts SolutionKeyOpts) string
	// ScoreKey keys the score of a solution for a problem.
	ScoreKey(problemHash, solutionHash string) string
}

// SolutionKeyOpts lists the solve options that change the result.
type SolutionKeyOpts struct {
	Strategy string `json:"strategy"`
	MaxNodes int    `json:"max_nodes,omitempty"`
}

// DefaultKeyer produces "solution:<sha256>" and "score:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SolutionKey implements Keyer.
func (DefaultKeyer) SolutionKey(problemHash string, opts SolutionKeyOpts) string {
	return hashKey("solution", problemHash, opts)
}

// ScoreKey implements Keyer.
func (DefaultKeyer) ScoreKey(problemHash, solutionHash string) string {
	return hashKey("score", problemHash, solutionHash)
}
