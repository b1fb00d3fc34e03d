package cache

// ScopedKeyer wraps a Keyer with a prefix, giving separate namespaces to
// callers that share one backend (for example several servers on one Redis
// database).
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "floorplan:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key of
// inner. A nil inner uses the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SolutionKey implements Keyer.
func (k *ScopedKeyer) SolutionKey(problemHash string, opts SolutionKeyOpts) string {
	return k.prefix + k.inner.SolutionKey(problemHash, opts)
}

// ScoreKey implements Keyer.
func (k *ScopedKeyer) ScoreKey(problemHash, solutionHash string) string {
	return k.prefix + k.inner.ScoreKey(problemHash, solutionHash)
}
