// Package wfc fills a 3D grid with patterns learned from an exemplar, using
// the discrete "wave function collapse" scheme: every output cell starts as
// the full set of patterns, and the solver alternates
//
//  1. collapse: pick an unresolved cell and narrow it to one pattern;
//  2. propagate: breadth-first shrink the neighbours' candidate sets until
//     no further shrink is possible (a fixpoint).
//
// until every cell holds exactly one pattern, or some cell runs out of
// candidates (ErrContradiction).
//
// What:
//
//   - Model: pattern registry + adjacency rules learned once from the exemplar.
//   - Propagator: arc-consistency pass over a domain.Grid with a per-pass change mask.
//   - Solver: the collapse scheduler for one attempt (Step, Run, Fix, Result).
//   - Solve: one-shot driver with retries on fresh, derived seeds.
//
// Selection policies:
//
//   - MinCardinality (default): the unresolved cell with the fewest candidates,
//     ties broken by the seeded RNG.
//   - RandomOutstanding: a uniformly random unresolved cell.
//
// Both enumerate the unresolved cells explicitly, so a run always terminates
// within Dims.Volume() collapse steps.
//
// Determinism:
//
//   - All randomness comes from an injected *rand.Rand (WithRand) or a seed
//     (WithSeed). The same model, dims, options and seed give the same Result.
//
// Concurrency:
//
//   - A Solver belongs to one goroutine. Solve may run independent attempts in
//     parallel (WithWorkers); each attempt owns its grid and RNG, and the
//     lowest-numbered successful attempt wins regardless of timing.
//
// Errors:
//
//   - ErrInvalidInput: empty exemplar, empty pattern set, non-positive dims, bad fixed cell.
//   - ErrContradiction: a candidate set became empty; the attempt is abandoned.
//   - ErrBudgetExceeded: WithMaxSteps was reached before the grid was solved.
//   - ErrOptionViolation: an option was given an invalid value.
package wfc
