package placer

import (
	"slices"

	"github.com/matzehuels/floorplan/pkg/errors"
)

// Strategy names.
const (
	StrategyGreedy = "greedy"
	StrategySearch = "search"
)

// DefaultStrategy is the reference baseline.
const DefaultStrategy = StrategyGreedy

// DefaultMaxNodes bounds the search strategy.
const DefaultMaxNodes = 100_000

// options configures strategies built by [New].
type options struct {
	maxNodes int
}

// Option configures a strategy built by [New].
type Option func(*options)

// WithMaxNodes sets the node budget of budgeted strategies. Values <= 0
// select [DefaultMaxNodes].
func WithMaxNodes(n int) Option {
	return func(o *options) {
		o.maxNodes = n
	}
}

var constructors = map[string]func(options) Strategy{
	StrategyGreedy: func(options) Strategy { return Greedy{} },
	StrategySearch: func(o options) Strategy { return Search{MaxNodes: o.maxNodes} },
}

// New returns the strategy registered under name. An empty name selects
// [DefaultStrategy].
func New(name string, opts ...Option) (Strategy, error) {
	if name == "" {
		name = DefaultStrategy
	}
	build, ok := constructors[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %q (must be one of: %v)", name, Names())
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxNodes <= 0 {
		o.maxNodes = DefaultMaxNodes
	}
	return build(o), nil
}

// Names returns the registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
