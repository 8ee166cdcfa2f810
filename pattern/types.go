package pattern

import (
	"errors"

	"github.com/katalvlaran/voxwfc/grid3"
)

// ErrInvalidInput is returned for a nil or empty exemplar.
var ErrInvalidInput = errors.New("pattern: invalid input")

// ID identifies one exemplar cell's pattern. IDs are dense: 0..Registry.Len()-1.
type ID int

// Handle is the caller's opaque value for an exemplar cell (a label, a prefab
// reference, ...). The solver never looks inside it.
type Handle any

// Exemplar is a 3D grid of cell handles the registry can enumerate.
type Exemplar interface {
	// Dims returns the exemplar extents.
	Dims() grid3.Dims
	// Cell returns the handle stored at c. c is always in bounds.
	Cell(c grid3.Coord) Handle
}

// Grid is a slice-backed Exemplar. Handles are stored in grid3 index order.
type Grid struct {
	dims    grid3.Dims
	handles []Handle
}
