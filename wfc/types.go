package wfc

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/voxwfc/grid3"
	"github.com/katalvlaran/voxwfc/pattern"
)

// Sentinel errors for solving.
var (
	// ErrInvalidInput is returned for empty exemplars, empty pattern sets,
	// non-positive output dimensions and fixed cells that name unknown patterns.
	ErrInvalidInput = errors.New("wfc: invalid input")

	// ErrContradiction is returned when propagation empties a cell's domain.
	ErrContradiction = errors.New("wfc: contradiction")

	// ErrBudgetExceeded is returned when the step budget runs out first.
	ErrBudgetExceeded = errors.New("wfc: step budget exceeded")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("wfc: invalid option supplied")
)

// Policy selects which unresolved cell the scheduler collapses next.
type Policy int

const (
	// MinCardinality picks a cell with the fewest remaining candidates.
	MinCardinality Policy = iota
	// RandomOutstanding picks any unresolved cell uniformly at random.
	RandomOutstanding
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case MinCardinality:
		return "min-cardinality"
	case RandomOutstanding:
		return "random"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// PassState is the state of one propagation pass.
type PassState int

const (
	// Idle is the state before a pass starts.
	Idle PassState = iota
	// Traversing means the breadth-first queue is being drained.
	Traversing
	// Settled means the queue emptied and the grid is at a fixpoint.
	Settled
	// Contradiction means a domain became empty; the attempt is over.
	Contradiction
)

// String returns the state name.
func (s PassState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Traversing:
		return "traversing"
	case Settled:
		return "settled"
	case Contradiction:
		return "contradiction"
	default:
		return fmt.Sprintf("PassState(%d)", int(s))
	}
}

// PassStats summarises one propagation pass.
type PassStats struct {
	State    PassState
	Visited  int // cells dequeued
	Narrowed int // neighbour domains that lost at least one candidate
	Removed  int // candidates eliminated in total
}

// Fixed pins an output cell to a pattern before the first collapse.
type Fixed struct {
	At      grid3.Coord
	Pattern pattern.ID
}

// Result is a fully collapsed output grid.
type Result struct {
	// Dims are the output extents.
	Dims grid3.Dims
	// IDs holds the chosen pattern per cell, indexed [x][y][z].
	IDs [][][]pattern.ID
	// Seed reproduces this result with WithSeed and no retries.
	Seed int64
	// Attempt is the zero-based attempt that succeeded.
	Attempt int
	// Steps is the number of collapse steps that attempt took.
	Steps int
}

// At returns the pattern chosen for c.
func (r *Result) At(c grid3.Coord) pattern.ID {
	return r.IDs[c.X][c.Y][c.Z]
}
