package pattern

import (
	"fmt"

	"github.com/katalvlaran/voxwfc/grid3"
)

// Registry assigns a stable ID to every exemplar cell.
type Registry struct {
	dims    grid3.Dims
	ids     []ID          // by exemplar arena index
	coords  []grid3.Coord // by ID
	handles []Handle      // by ID
}

// NewRegistry numbers the cells of ex in scan order (x outer, z inner).
// The numbering depends only on the exemplar's shape, so it is reproducible.
// Returns ErrInvalidInput for a nil exemplar or one with a non-positive extent.
// Complexity: O(V) time and memory, V = ex.Dims().Volume().
func NewRegistry(ex Exemplar) (*Registry, error) {
	if ex == nil {
		return nil, fmt.Errorf("%w: nil exemplar", ErrInvalidInput)
	}
	dims := ex.Dims()
	if err := dims.Validate(); err != nil {
		return nil, fmt.Errorf("%w: empty exemplar: %w", ErrInvalidInput, err)
	}

	n := dims.Volume()
	r := &Registry{
		dims:    dims,
		ids:     make([]ID, n),
		coords:  make([]grid3.Coord, 0, n),
		handles: make([]Handle, 0, n),
	}
	next := ID(0)
	dims.Each(func(c grid3.Coord) bool {
		r.ids[dims.MustIndex(c)] = next
		r.coords = append(r.coords, c)
		r.handles = append(r.handles, ex.Cell(c))
		next++
		return true
	})

	return r, nil
}

// Len returns the number of patterns.
func (r *Registry) Len() int { return len(r.coords) }

// Dims returns the exemplar extents.
func (r *Registry) Dims() grid3.Dims { return r.dims }

// ID returns the pattern of the exemplar cell at c.
// It panics with grid3.ErrOutOfBounds if c is outside the exemplar.
func (r *Registry) ID(c grid3.Coord) ID {
	return r.ids[r.dims.MustIndex(c)]
}

// Valid reports whether id was issued by this registry.
func (r *Registry) Valid(id ID) bool {
	return id >= 0 && int(id) < len(r.coords)
}

// Coord returns the exemplar coordinate that id was assigned to.
func (r *Registry) Coord(id ID) grid3.Coord { return r.coords[id] }

// Handle maps id back to the caller's cell handle.
func (r *Registry) Handle(id ID) Handle { return r.handles[id] }

// IDs returns every pattern in ascending order.
func (r *Registry) IDs() []ID {
	out := make([]ID, len(r.coords))
	for i := range out {
		out[i] = ID(i)
	}
	return out
}
