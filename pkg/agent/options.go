package agent

import "github.com/seekerror/stdlib/pkg/lang"

// Options are agent creation options, following the functional-options shape
// of herohde/morlock's engine.Options/engine.Option pair.
type Options struct {
	// Seed is the PRNG seed for RandomAgent. If unset, a time-derived seed is used.
	Seed lang.Optional[int64]
	// Depth is the search depth limit for MinimaxAgent. If unset, defaultDepth is used.
	Depth lang.Optional[int]
}

// Option configures Options at agent construction time.
type Option func(*Options)

// WithSeed fixes the PRNG seed, for reproducible RandomAgent play in tests.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = lang.Some(seed)
	}
}

// WithDepth overrides MinimaxAgent's search depth.
func WithDepth(depth int) Option {
	return func(o *Options) {
		o.Depth = lang.Some(depth)
	}
}

func resolveOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
