package wfc

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/voxwfc/domain"
	"github.com/katalvlaran/voxwfc/grid3"
	"github.com/katalvlaran/voxwfc/pattern"
)

// Solver runs one solve attempt: it owns the domain grid and drives the
// collapse/propagate loop. It is not safe for concurrent use.
type Solver struct {
	model *Model
	grid  *domain.Grid
	prop  *Propagator
	opts  Options
	rng   *rand.Rand
	seed  int64
	log   *slog.Logger

	steps int
	err   error // sticky: set once the attempt is abandoned

	outstanding []grid3.Coord
}

// NewSolver prepares an attempt over an output grid of the given dims.
// Every cell starts with the full pattern set; an initial pass then removes
// candidates no neighbour can support, and any WithFixed cells are applied.
//
// Returns ErrOptionViolation for bad options, ErrInvalidInput for bad dims,
// a nil model or bad fixed cells, and ErrContradiction if the grid cannot be
// made consistent before any random choice.
func NewSolver(model *Model, dims grid3.Dims, opts ...Option) (*Solver, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	return newSolver(model, dims, o, 0)
}

func newSolver(model *Model, dims grid3.Dims, o Options, attempt int) (*Solver, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: nil model", ErrInvalidInput)
	}
	if o.Weights != nil && len(o.Weights) != model.Patterns() {
		return nil, fmt.Errorf("%w: %d weights for %d patterns", ErrOptionViolation, len(o.Weights), model.Patterns())
	}
	g, err := domain.NewGrid(dims, model.Patterns())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s := &Solver{
		model: model,
		grid:  g,
		prop:  NewPropagator(model.Adjacency, dims),
		opts:  o,
		seed:  normalizeSeed(o.Seed),
		rng:   o.Rand,
	}
	if s.rng == nil {
		s.rng = rngFromSeed(o.Seed)
	}
	s.log = o.Logger.With("attempt", attempt, "seed", s.seed)

	all := make([]grid3.Coord, 0, dims.Volume())
	dims.Each(func(c grid3.Coord) bool {
		all = append(all, c)
		return true
	})
	if err := s.propagate(all...); err != nil {
		return nil, err
	}
	for _, f := range o.Fixed {
		if err := s.Fix(f.At, f.Pattern); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Grid exposes the current domains. Callers must not modify it.
func (s *Solver) Grid() *domain.Grid { return s.grid }

// Steps returns the number of collapse steps taken so far.
func (s *Solver) Steps() int { return s.steps }

// Seed returns the seed the solver's RNG was built from (meaningless when
// WithRand was used).
func (s *Solver) Seed() int64 { return s.seed }

// Err returns the error that abandoned the attempt, if any.
func (s *Solver) Err() error { return s.err }

// Fix collapses c to id and propagates, as a caller-imposed constraint.
// Returns ErrInvalidInput if c is outside the grid or id is unknown, and
// ErrContradiction if id is no longer possible at c or propagation fails.
func (s *Solver) Fix(c grid3.Coord, id pattern.ID) error {
	if s.err != nil {
		return s.err
	}
	if !s.grid.Dims().InBounds(c) {
		return fmt.Errorf("%w: fixed cell %s outside %s", ErrInvalidInput, c, s.grid.Dims())
	}
	if !s.model.Registry.Valid(id) {
		return fmt.Errorf("%w: unknown pattern %d", ErrInvalidInput, id)
	}
	if !s.grid.At(c).Collapse(id) {
		s.err = fmt.Errorf("%w: pattern %d is not possible at %s", ErrContradiction, id, c)
		return s.err
	}
	s.log.Debug("fixed cell", "cell", c, "pattern", id)
	return s.propagate(c)
}

// Step performs one scheduling step: pick an unresolved cell, narrow it to
// one candidate, propagate. It reports done once every cell is a singleton.
// After a contradiction every call returns the same error.
func (s *Solver) Step() (done bool, err error) {
	if s.err != nil {
		return false, s.err
	}
	c, ok := s.pick()
	if !ok {
		return true, nil
	}

	d := s.grid.At(c)
	candidates := d.Len()
	id := s.choose(d)
	d.Collapse(id)
	s.steps++
	s.opts.OnCollapse(c, id)
	s.log.Debug("collapsed cell", "step", s.steps, "cell", c, "pattern", id, "candidates", candidates)

	if err := s.propagate(c); err != nil {
		return false, err
	}
	return s.grid.Done(), nil
}

// Run steps until the grid is solved, a contradiction occurs, the step
// budget runs out or ctx is done.
func (s *Solver) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.opts.MaxSteps > 0 && s.steps >= s.opts.MaxSteps && !s.grid.Done() {
			return fmt.Errorf("%w: %d steps, %d of %d cells collapsed",
				ErrBudgetExceeded, s.steps, s.grid.Collapsed(), s.grid.Dims().Volume())
		}
		done, err := s.Step()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Result returns the solved grid. It fails with domain.ErrNotCollapsed while
// any cell is unresolved, and with the attempt's error after a contradiction.
func (s *Solver) Result() (*Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	ids, err := s.grid.Values()
	if err != nil {
		return nil, err
	}
	return &Result{
		Dims:  s.grid.Dims(),
		IDs:   ids,
		Seed:  s.seed,
		Steps: s.steps,
	}, nil
}

// propagate runs a pass, reports it, and makes a contradiction sticky.
func (s *Solver) propagate(seeds ...grid3.Coord) error {
	stats, err := s.prop.Propagate(s.grid, seeds...)
	s.opts.OnPass(stats)
	if err != nil {
		s.err = fmt.Errorf("step %d: %w", s.steps, err)
		s.log.Debug("propagation failed", "step", s.steps, "error", err)
		return s.err
	}
	s.log.Debug("propagation settled",
		"step", s.steps, "visited", stats.Visited, "narrowed", stats.Narrowed, "removed", stats.Removed)
	return nil
}

// pick enumerates the unresolved cells and selects one per the policy.
func (s *Solver) pick() (grid3.Coord, bool) {
	if s.opts.Policy == RandomOutstanding {
		s.outstanding = s.outstanding[:0]
		s.grid.Dims().Each(func(c grid3.Coord) bool {
			if s.grid.At(c).Len() > 1 {
				s.outstanding = append(s.outstanding, c)
			}
			return true
		})
		if len(s.outstanding) == 0 {
			return grid3.Coord{}, false
		}
		return s.outstanding[s.rng.Intn(len(s.outstanding))], true
	}

	var (
		best   grid3.Coord
		fewest = -1
		ties   int
		found  bool
	)
	s.grid.Dims().Each(func(c grid3.Coord) bool {
		n := s.grid.At(c).Len()
		switch {
		case n <= 1:
			return true
		case !found || n < fewest:
			best, fewest, ties, found = c, n, 1, true
		case n == fewest:
			// reservoir sampling keeps every tied cell equally likely
			ties++
			if s.rng.Intn(ties) == 0 {
				best = c
			}
		}
		return true
	})
	return best, found
}

// choose picks one candidate of d, uniformly or by weight.
func (s *Solver) choose(d *domain.Domain) pattern.ID {
	values := d.Values()
	if s.opts.Weights == nil {
		return values[s.rng.Intn(len(values))]
	}

	total := 0.0
	for _, id := range values {
		total += s.opts.Weights[id]
	}
	if total <= 0 {
		return values[s.rng.Intn(len(values))]
	}
	r := s.rng.Float64() * total
	for _, id := range values {
		r -= s.opts.Weights[id]
		if r < 0 {
			return id
		}
	}
	return values[len(values)-1]
}
