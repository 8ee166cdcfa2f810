package domain

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/voxwfc/grid3"
	"github.com/katalvlaran/voxwfc/pattern"
)

// Sentinel errors for domain grids.
var (
	// ErrInvalidInput indicates non-positive dimensions or an empty pattern set.
	ErrInvalidInput = errors.New("domain: invalid input")
	// ErrNotCollapsed indicates a result was requested while some cell still
	// has more than one candidate (or none).
	ErrNotCollapsed = errors.New("domain: grid is not fully collapsed")
)

// Grid is the output lattice: one Domain per coordinate, stored flat.
type Grid struct {
	dims     grid3.Dims
	patterns int
	cells    []Domain
}

// NewGrid allocates a dims-shaped grid where every cell may hold any of the
// patterns 0..patterns-1.
// Returns ErrInvalidInput if a dimension is not positive or patterns < 1.
// Complexity: O(V×P/64) time and memory.
func NewGrid(dims grid3.Dims, patterns int) (*Grid, error) {
	if err := dims.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if patterns < 1 {
		return nil, fmt.Errorf("%w: empty pattern set", ErrInvalidInput)
	}
	g := &Grid{
		dims:     dims,
		patterns: patterns,
		cells:    make([]Domain, dims.Volume()),
	}
	for i := range g.cells {
		g.cells[i] = full(patterns)
	}
	return g, nil
}

// Dims returns the grid extents.
func (g *Grid) Dims() grid3.Dims { return g.dims }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Patterns returns the size of the full pattern set.
func (g *Grid) Patterns() int { return g.patterns }

// At returns the domain at c for in-place narrowing.
// It panics with grid3.ErrOutOfBounds if c is outside the grid.
func (g *Grid) At(c grid3.Coord) *Domain {
	return &g.cells[g.dims.MustIndex(c)]
}

// Collapsed returns how many cells hold exactly one candidate.
func (g *Grid) Collapsed() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Len() == 1 {
			n++
		}
	}
	return n
}

// Done reports whether every cell is a singleton.
func (g *Grid) Done() bool {
	return g.Collapsed() == len(g.cells)
}

// Cardinalities returns every cell's candidate count in index order.
func (g *Grid) Cardinalities() []int {
	out := make([]int, len(g.cells))
	for i := range g.cells {
		out[i] = g.cells[i].Len()
	}
	return out
}

// Values extracts the solved lattice indexed [x][y][z].
// Returns ErrNotCollapsed if any cell is not a singleton, so callers never
// see a partial result.
func (g *Grid) Values() ([][][]pattern.ID, error) {
	out := make([][][]pattern.ID, g.dims.X)
	for x := range out {
		out[x] = make([][]pattern.ID, g.dims.Y)
		for y := range out[x] {
			out[x][y] = make([]pattern.ID, g.dims.Z)
		}
	}
	var err error
	g.dims.Each(func(c grid3.Coord) bool {
		id, ok := g.At(c).Singleton()
		if !ok {
			err = fmt.Errorf("%w: cell %s has %d candidates", ErrNotCollapsed, c, g.At(c).Len())
			return false
		}
		out[c.X][c.Y][c.Z] = id
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cp := &Grid{
		dims:     g.dims,
		patterns: g.patterns,
		cells:    make([]Domain, len(g.cells)),
	}
	for i := range g.cells {
		cp.cells[i] = g.cells[i].Clone()
	}
	return cp
}
