package wfc

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/katalvlaran/voxwfc/grid3"
)

// attemptOutcome is what one attempt of Solve produced.
type attemptOutcome struct {
	res *Result
	err error
	// early marks a failure before any random choice: retrying cannot help.
	early bool
}

// Solve fills a dims-shaped grid using model and returns the solved lattice.
//
// Each attempt gets its own seed (see Result.Seed). On ErrContradiction Solve
// starts over, up to WithRetries extra attempts. With WithWorkers(n) up to n
// attempts run at once; the lowest-numbered successful attempt is returned, so
// the result does not depend on timing.
//
// Returns ErrInvalidInput, ErrOptionViolation, ErrBudgetExceeded or the
// context's error immediately, and ErrContradiction once every attempt failed.
func Solve(ctx context.Context, model *Model, dims grid3.Dims, opts ...Option) (*Result, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	attempts := o.Retries + 1
	seeds := attemptSeeds(o.Seed, o.Rand, attempts)

	var lastErr error
	for start := 0; start < attempts; start += o.Workers {
		end := start + o.Workers
		if end > attempts {
			end = attempts
		}
		outcomes := make([]attemptOutcome, end-start)

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				outcomes[i-start] = runAttempt(ctx, model, dims, o, i, seeds[i])
			}(i)
		}
		wg.Wait()

		for _, out := range outcomes {
			switch {
			case out.err == nil:
				o.Logger.Info("solve finished",
					"attempt", out.res.Attempt, "seed", out.res.Seed, "steps", out.res.Steps, "dims", dims.String())
				return out.res, nil
			case !errors.Is(out.err, ErrContradiction) || out.early:
				return nil, out.err
			default:
				lastErr = out.err
			}
		}
	}

	o.Logger.Warn("solve failed", "attempts", attempts, "error", lastErr)
	return nil, fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}

func runAttempt(ctx context.Context, model *Model, dims grid3.Dims, o Options, attempt int, seed int64) attemptOutcome {
	o.Seed = seed
	o.Rand = nil
	s, err := newSolver(model, dims, o, attempt)
	if err != nil {
		return attemptOutcome{err: err, early: true}
	}
	if err := s.Run(ctx); err != nil {
		s.log.Info("attempt abandoned", "steps", s.Steps(), "error", err)
		return attemptOutcome{err: fmt.Errorf("attempt %d: %w", attempt, err)}
	}
	res, err := s.Result()
	if err != nil {
		return attemptOutcome{err: err}
	}
	res.Attempt = attempt
	return attemptOutcome{res: res}
}
