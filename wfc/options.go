package wfc

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"

	"github.com/katalvlaran/voxwfc/grid3"
	"github.com/katalvlaran/voxwfc/pattern"
)

// Option configures a Solver or Solve via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation when the
// solver is built.
type Option func(*Options)

// Options holds the tunables of a solve.
type Options struct {
	// Seed seeds the RNG when Rand is nil. Zero selects a fixed default seed.
	Seed int64

	// Rand, if set, is used instead of a seeded source. For Solve it only
	// draws the per-attempt seeds.
	Rand *rand.Rand

	// Policy picks the next cell to collapse.
	Policy Policy

	// Weights, if non-nil, biases candidate choice: pattern i is picked with
	// probability proportional to Weights[i]. Its length must equal the
	// number of patterns.
	Weights []float64

	// Fixed cells are collapsed (and propagated) before the first step.
	Fixed []Fixed

	// MaxSteps, if > 0, caps the number of collapse steps of Run.
	MaxSteps int

	// Retries is the number of extra attempts Solve makes after a contradiction.
	Retries int

	// Workers is how many attempts Solve runs concurrently (≥1).
	Workers int

	// Logger receives debug traces of steps and passes.
	Logger *slog.Logger

	// OnCollapse is called after a cell is narrowed to one pattern, before
	// propagation. With Workers > 1 it must be safe for concurrent use.
	OnCollapse func(c grid3.Coord, id pattern.ID)

	// OnPass is called after every propagation pass, including the initial one.
	// With Workers > 1 it must be safe for concurrent use.
	OnPass func(stats PassStats)

	err error
}

// DefaultOptions returns Options with:
//   - seed 0 (the fixed default seed),
//   - MinCardinality selection, uniform candidate choice,
//   - no step budget, no retries, one worker,
//   - a logger that discards everything and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Policy:     MinCardinality,
		Workers:    1,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnCollapse: func(grid3.Coord, pattern.ID) {},
		OnPass:     func(PassStats) {},
	}
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Options{}, o.err
	}
	return o, nil
}

// WithSeed seeds the solver's RNG.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithRand injects the random source. A nil r is ignored.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r != nil {
			o.Rand = r
		}
	}
}

// WithPolicy selects the cell selection policy.
func WithPolicy(p Policy) Option {
	return func(o *Options) {
		switch p {
		case MinCardinality, RandomOutstanding:
			o.Policy = p
		default:
			o.err = fmt.Errorf("%w: unknown policy %v", ErrOptionViolation, p)
		}
	}
}

// WithWeights enables frequency-weighted candidate choice.
// Weights must be finite and non-negative.
func WithWeights(w []float64) Option {
	return func(o *Options) {
		for i, v := range w {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				o.err = fmt.Errorf("%w: weight[%d] = %v", ErrOptionViolation, i, v)
				return
			}
		}
		o.Weights = append([]float64(nil), w...)
	}
}

// WithFixed pins cell c to pattern id before solving starts.
func WithFixed(c grid3.Coord, id pattern.ID) Option {
	return func(o *Options) {
		o.Fixed = append(o.Fixed, Fixed{At: c, Pattern: id})
	}
}

// WithMaxSteps caps the number of collapse steps.
//
//	n > 0: at most n steps
//	n == 0: no limit
//	n < 0: invalid option → ErrOptionViolation
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}

// WithRetries lets Solve start over on a fresh seed up to n times after a
// contradiction.
func WithRetries(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: Retries cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.Retries = n
	}
}

// WithWorkers runs up to n attempts of Solve concurrently.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: Workers must be at least 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnCollapse registers a callback run after every collapse.
func WithOnCollapse(fn func(c grid3.Coord, id pattern.ID)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnCollapse = fn
		}
	}
}

// WithOnPass registers a callback run after every propagation pass.
func WithOnPass(fn func(stats PassStats)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPass = fn
		}
	}
}
