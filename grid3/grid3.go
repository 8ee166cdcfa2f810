package grid3

import "fmt"

// NewDims validates and returns the extents x×y×z.
// Returns ErrInvalidDims if any extent is zero or negative.
func NewDims(x, y, z int) (Dims, error) {
	d := Dims{X: x, Y: y, Z: z}
	if err := d.Validate(); err != nil {
		return Dims{}, err
	}
	return d, nil
}

// Validate returns ErrInvalidDims (wrapped with the offending extents) if
// any dimension is not positive.
func (d Dims) Validate() error {
	if d.X <= 0 || d.Y <= 0 || d.Z <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidDims, d)
	}
	return nil
}

// Volume returns the number of cells in the box.
// Complexity: O(1).
func (d Dims) Volume() int {
	return d.X * d.Y * d.Z
}

// InBounds reports whether c lies within the box.
// Complexity: O(1).
func (d Dims) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < d.X &&
		c.Y >= 0 && c.Y < d.Y &&
		c.Z >= 0 && c.Z < d.Z
}

// Index maps c to its flat arena index. The layout is x-major: x varies
// slowest and z fastest, which matches the nested x,y,z scan order used
// to number exemplar cells.
// The second result is false when c is out of bounds.
// Complexity: O(1).
func (d Dims) Index(c Coord) (int, bool) {
	if !d.InBounds(c) {
		return 0, false
	}
	return (c.X*d.Y+c.Y)*d.Z + c.Z, true
}

// MustIndex is Index for callers that have already bounds-checked c.
// It panics with ErrOutOfBounds otherwise.
func (d Dims) MustIndex(c Coord) int {
	i, ok := d.Index(c)
	if !ok {
		panic(fmt.Errorf("%w: %s not in %s", ErrOutOfBounds, c, d))
	}
	return i
}

// Coord converts a flat arena index back to a coordinate.
// It panics with ErrOutOfBounds if idx is outside [0, Volume).
// Complexity: O(1).
func (d Dims) Coord(idx int) Coord {
	if idx < 0 || idx >= d.Volume() {
		panic(fmt.Errorf("%w: index %d not in %s", ErrOutOfBounds, idx, d))
	}
	z := idx % d.Z
	idx /= d.Z
	return Coord{X: idx / d.Y, Y: idx % d.Y, Z: z}
}

// Neighbor returns the cell one step from c along dir and whether it is in bounds.
func (d Dims) Neighbor(c Coord, dir Direction) (Coord, bool) {
	n := c.Step(dir)
	return n, d.InBounds(n)
}

// Each calls fn for every coordinate in index order (x outer, z inner).
// Iteration stops early if fn returns false.
// Complexity: O(X×Y×Z).
func (d Dims) Each(fn func(c Coord) bool) {
	for x := 0; x < d.X; x++ {
		for y := 0; y < d.Y; y++ {
			for z := 0; z < d.Z; z++ {
				if !fn(Coord{x, y, z}) {
					return
				}
			}
		}
	}
}

// String formats d as "XxYxZ".
func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%d", d.X, d.Y, d.Z)
}
