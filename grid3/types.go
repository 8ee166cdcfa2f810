// Package grid3 defines core types and sentinel errors for 3D lattices.
package grid3

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid3 operations.
var (
	// ErrInvalidDims indicates a dimension is zero or negative.
	ErrInvalidDims = errors.New("grid3: every dimension must be positive")
	// ErrOutOfBounds indicates a coordinate outside the grid extents.
	// It is only ever used as a panic value: reaching it is a programming defect.
	ErrOutOfBounds = errors.New("grid3: coordinate out of bounds")
)

// Direction selects one of the six axis-aligned neighbours of a cell.
type Direction uint8

const (
	// PosX is the +X neighbour ("right").
	PosX Direction = iota
	// NegX is the −X neighbour ("left").
	NegX
	// PosY is the +Y neighbour ("up").
	PosY
	// NegY is the −Y neighbour ("down").
	NegY
	// PosZ is the +Z neighbour ("front").
	PosZ
	// NegZ is the −Z neighbour ("back").
	NegZ

	// NumDirections is the size of the enumeration; use it to size per-direction arrays.
	NumDirections = 6
)

// Directions lists every Direction in enumeration order.
var Directions = [NumDirections]Direction{PosX, NegX, PosY, NegY, PosZ, NegZ}

var (
	directionOffsets = [NumDirections]Coord{
		PosX: {1, 0, 0},
		NegX: {-1, 0, 0},
		PosY: {0, 1, 0},
		NegY: {0, -1, 0},
		PosZ: {0, 0, 1},
		NegZ: {0, 0, -1},
	}
	directionOpposites = [NumDirections]Direction{
		PosX: NegX,
		NegX: PosX,
		PosY: NegY,
		NegY: PosY,
		PosZ: NegZ,
		NegZ: PosZ,
	}
	directionNames = [NumDirections]string{
		PosX: "+x",
		NegX: "-x",
		PosY: "+y",
		NegY: "-y",
		PosZ: "+z",
		NegZ: "-z",
	}
)

// Offset returns the unit step for d.
func (d Direction) Offset() Coord { return directionOffsets[d] }

// Opposite returns the direction pointing the other way along the same axis.
func (d Direction) Opposite() Direction { return directionOpposites[d] }

// Valid reports whether d is one of the six enumerated directions.
func (d Direction) Valid() bool { return d < NumDirections }

// String returns the short axis name, e.g. "+x".
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// Coord is an integer lattice coordinate.
type Coord struct {
	X, Y, Z int
}

// Step returns the coordinate one cell away from c along d.
// The result is not bounds-checked; pair it with Dims.InBounds.
func (c Coord) Step(d Direction) Coord {
	o := directionOffsets[d]
	return Coord{c.X + o.X, c.Y + o.Y, c.Z + o.Z}
}

// String formats c as "(x,y,z)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Dims holds the extents of a 3D box. It is a value type and immutable by convention.
type Dims struct {
	X, Y, Z int
}
