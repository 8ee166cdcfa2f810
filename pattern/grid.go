package pattern

import (
	"fmt"

	"github.com/katalvlaran/voxwfc/grid3"
)

// NewGrid wraps handles, laid out in grid3.Dims index order, as an Exemplar.
// Returns ErrInvalidInput if dims are invalid or len(handles) != dims.Volume().
func NewGrid(dims grid3.Dims, handles []Handle) (*Grid, error) {
	if err := dims.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if len(handles) != dims.Volume() {
		return nil, fmt.Errorf("%w: %d handles for %s exemplar", ErrInvalidInput, len(handles), dims)
	}
	cp := make([]Handle, len(handles))
	copy(cp, handles)

	return &Grid{dims: dims, handles: cp}, nil
}

// Dims returns the exemplar extents.
func (g *Grid) Dims() grid3.Dims { return g.dims }

// Cell returns the handle at c.
func (g *Grid) Cell(c grid3.Coord) Handle {
	return g.handles[g.dims.MustIndex(c)]
}
