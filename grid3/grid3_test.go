package grid3_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxwfc/grid3"
)

//----------------------------------------------------------------------------//
// Dims construction and bounds
//----------------------------------------------------------------------------//

// TestNewDims_Errors verifies that NewDims rejects zero or negative extents.
func TestNewDims_Errors(t *testing.T) {
	cases := []struct {
		name    string
		x, y, z int
	}{
		{"ZeroX", 0, 1, 1},
		{"ZeroY", 1, 0, 1},
		{"NegativeZ", 1, 1, -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid3.NewDims(tc.x, tc.y, tc.z)
			if !errors.Is(err, grid3.ErrInvalidDims) {
				t.Errorf("NewDims(%d,%d,%d) error = %v; want ErrInvalidDims", tc.x, tc.y, tc.z, err)
			}
		})
	}
}

// TestInBounds checks InBounds on a 3×2×2 box.
func TestInBounds(t *testing.T) {
	d, err := grid3.NewDims(3, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 12, d.Volume())

	valid := []grid3.Coord{{0, 0, 0}, {2, 1, 1}, {1, 0, 1}}
	for _, c := range valid {
		assert.True(t, d.InBounds(c), "InBounds%s", c)
	}
	invalid := []grid3.Coord{{-1, 0, 0}, {3, 0, 0}, {0, 2, 0}, {0, 0, -1}, {0, 0, 2}}
	for _, c := range invalid {
		assert.False(t, d.InBounds(c), "InBounds%s", c)
	}
}

//----------------------------------------------------------------------------//
// Index arena
//----------------------------------------------------------------------------//

// TestIndexRoundTrip ensures Index and Coord are inverse and follow Each order.
func TestIndexRoundTrip(t *testing.T) {
	d := grid3.Dims{X: 2, Y: 3, Z: 4}
	want := 0
	d.Each(func(c grid3.Coord) bool {
		idx, ok := d.Index(c)
		require.True(t, ok)
		assert.Equal(t, want, idx, "Index%s", c)
		assert.Equal(t, c, d.Coord(idx))
		want++
		return true
	})
	assert.Equal(t, d.Volume(), want)

	_, ok := d.Index(grid3.Coord{X: 2})
	assert.False(t, ok)
}

// TestEach_StopsEarly verifies that returning false halts iteration.
func TestEach_StopsEarly(t *testing.T) {
	d := grid3.Dims{X: 4, Y: 4, Z: 4}
	n := 0
	d.Each(func(grid3.Coord) bool {
		n++
		return n < 5
	})
	assert.Equal(t, 5, n)
}

// TestMustIndex_Panics verifies out-of-bounds access is treated as a defect.
func TestMustIndex_Panics(t *testing.T) {
	d := grid3.Dims{X: 1, Y: 1, Z: 1}
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, grid3.ErrOutOfBounds)
	}()
	d.MustIndex(grid3.Coord{X: 1})
}

//----------------------------------------------------------------------------//
// Directions
//----------------------------------------------------------------------------//

// TestDirections_Tables checks offsets, opposites and names for all six directions.
func TestDirections_Tables(t *testing.T) {
	origin := grid3.Coord{X: 5, Y: 5, Z: 5}
	seen := map[grid3.Coord]bool{}
	for _, d := range grid3.Directions {
		require.True(t, d.Valid())
		n := origin.Step(d)
		assert.Equal(t, origin, n.Step(d.Opposite()), "%s then %s", d, d.Opposite())
		assert.Equal(t, d, d.Opposite().Opposite())
		o := d.Offset()
		assert.Equal(t, 1, abs(o.X)+abs(o.Y)+abs(o.Z), "offset of %s must be a unit step", d)
		seen[o] = true
	}
	assert.Len(t, seen, grid3.NumDirections)
	assert.Equal(t, "+x", grid3.PosX.String())
	assert.Equal(t, "-z", grid3.NegZ.String())
	assert.False(t, grid3.Direction(9).Valid())
	assert.Equal(t, "Direction(9)", grid3.Direction(9).String())
}

// TestNeighbor reports in-bounds status for boundary cells.
func TestNeighbor(t *testing.T) {
	d := grid3.Dims{X: 2, Y: 1, Z: 1}
	n, ok := d.Neighbor(grid3.Coord{}, grid3.PosX)
	assert.True(t, ok)
	assert.Equal(t, grid3.Coord{X: 1}, n)
	_, ok = d.Neighbor(grid3.Coord{}, grid3.NegX)
	assert.False(t, ok)
	_, ok = d.Neighbor(grid3.Coord{}, grid3.PosY)
	assert.False(t, ok)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
