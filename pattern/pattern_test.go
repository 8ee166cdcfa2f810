package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxwfc/grid3"
	"github.com/katalvlaran/voxwfc/pattern"
)

// mustGrid builds an exemplar of string handles laid out in index order.
func mustGrid(t *testing.T, dims grid3.Dims, labels ...string) *pattern.Grid {
	t.Helper()
	handles := make([]pattern.Handle, len(labels))
	for i, l := range labels {
		handles[i] = l
	}
	g, err := pattern.NewGrid(dims, handles)
	require.NoError(t, err)
	return g
}

//----------------------------------------------------------------------------//
// Registry
//----------------------------------------------------------------------------//

// TestNewRegistry_Errors verifies nil and empty exemplars are rejected.
func TestNewRegistry_Errors(t *testing.T) {
	_, err := pattern.NewRegistry(nil)
	assert.ErrorIs(t, err, pattern.ErrInvalidInput)

	_, err = pattern.NewGrid(grid3.Dims{X: 0, Y: 1, Z: 1}, nil)
	assert.ErrorIs(t, err, pattern.ErrInvalidInput)

	_, err = pattern.NewGrid(grid3.Dims{X: 2, Y: 1, Z: 1}, []pattern.Handle{"a"})
	assert.ErrorIs(t, err, pattern.ErrInvalidInput)

	_, err = pattern.NewRegistry(emptyExemplar{})
	assert.ErrorIs(t, err, pattern.ErrInvalidInput)
	assert.ErrorIs(t, err, grid3.ErrInvalidDims)
}

type emptyExemplar struct{}

func (emptyExemplar) Dims() grid3.Dims                { return grid3.Dims{} }
func (emptyExemplar) Cell(grid3.Coord) pattern.Handle { return nil }

// TestNewRegistry_ScanOrder checks IDs follow x-outer, z-inner scan order and
// map back to coordinates and handles.
func TestNewRegistry_ScanOrder(t *testing.T) {
	dims := grid3.Dims{X: 2, Y: 2, Z: 1}
	reg, err := pattern.NewRegistry(mustGrid(t, dims, "a", "b", "c", "d"))
	require.NoError(t, err)
	require.Equal(t, 4, reg.Len())

	want := map[grid3.Coord]pattern.ID{
		{X: 0, Y: 0, Z: 0}: 0,
		{X: 0, Y: 1, Z: 0}: 1,
		{X: 1, Y: 0, Z: 0}: 2,
		{X: 1, Y: 1, Z: 0}: 3,
	}
	for c, id := range want {
		assert.Equal(t, id, reg.ID(c), "ID%s", c)
		assert.Equal(t, c, reg.Coord(id))
	}
	assert.Equal(t, "c", reg.Handle(2))
	assert.Equal(t, []pattern.ID{0, 1, 2, 3}, reg.IDs())
	assert.True(t, reg.Valid(3))
	assert.False(t, reg.Valid(4))
	assert.False(t, reg.Valid(-1))
}

// TestNewRegistry_Stable ensures two registries over the same exemplar agree.
func TestNewRegistry_Stable(t *testing.T) {
	dims := grid3.Dims{X: 2, Y: 1, Z: 2}
	ex := mustGrid(t, dims, "a", "b", "c", "d")
	r1, err := pattern.NewRegistry(ex)
	require.NoError(t, err)
	r2, err := pattern.NewRegistry(ex)
	require.NoError(t, err)
	dims.Each(func(c grid3.Coord) bool {
		assert.Equal(t, r1.ID(c), r2.ID(c))
		return true
	})
}

//----------------------------------------------------------------------------//
// Adjacency
//----------------------------------------------------------------------------//

// TestBuildAdjacency_TwoCells covers the 2×1×1 exemplar A|B: B is the only
// +x neighbour of A, A the only −x neighbour of B, and nothing else is allowed.
func TestBuildAdjacency_TwoCells(t *testing.T) {
	reg, err := pattern.NewRegistry(mustGrid(t, grid3.Dims{X: 2, Y: 1, Z: 1}, "A", "B"))
	require.NoError(t, err)
	adj := pattern.BuildAdjacency(reg)
	a, b := reg.ID(grid3.Coord{X: 0}), reg.ID(grid3.Coord{X: 1})

	assert.Equal(t, []pattern.ID{b}, adj.Allowed(a, grid3.PosX))
	assert.Equal(t, []pattern.ID{a}, adj.Allowed(b, grid3.NegX))
	assert.True(t, adj.Permits(a, grid3.PosX, b))
	assert.False(t, adj.Permits(a, grid3.PosX, a))

	for _, d := range grid3.Directions {
		if d != grid3.PosX {
			assert.Empty(t, adj.Allowed(a, d), "A %s", d)
		}
		if d != grid3.NegX {
			assert.Empty(t, adj.Allowed(b, d), "B %s", d)
		}
	}
}

// TestBuildAdjacency_SelfAdjacency verifies the option adds each pattern to
// its own neighbour set in every direction and nothing more.
func TestBuildAdjacency_SelfAdjacency(t *testing.T) {
	reg, err := pattern.NewRegistry(mustGrid(t, grid3.Dims{X: 2, Y: 1, Z: 1}, "A", "B"))
	require.NoError(t, err)
	adj := pattern.BuildAdjacency(reg, pattern.WithSelfAdjacency())

	assert.Equal(t, []pattern.ID{0, 1}, adj.Allowed(0, grid3.PosX))
	assert.Equal(t, []pattern.ID{0}, adj.Allowed(0, grid3.NegX))
	assert.Equal(t, []pattern.ID{1}, adj.Allowed(1, grid3.PosZ))
	assert.Equal(t, uint(2), adj.AllowedSet(1, grid3.NegX).Count())
}

// TestBuildAdjacency_Symmetric checks that q on the d side of p implies p on
// the opposite side of q, across a 3D exemplar.
func TestBuildAdjacency_Symmetric(t *testing.T) {
	dims := grid3.Dims{X: 2, Y: 2, Z: 2}
	reg, err := pattern.NewRegistry(mustGrid(t, dims, "a", "b", "c", "d", "e", "f", "g", "h"))
	require.NoError(t, err)
	adj := pattern.BuildAdjacency(reg)
	require.Equal(t, 8, adj.Len())

	for _, p := range reg.IDs() {
		total := 0
		for _, d := range grid3.Directions {
			for _, q := range adj.Allowed(p, d) {
				assert.True(t, adj.Permits(q, d.Opposite(), p), "%d %s %d", p, d, q)
				total++
			}
		}
		// every cell of a 2×2×2 box is a corner with exactly three neighbours
		assert.Equal(t, 3, total, "pattern %d", p)
	}
}

// TestAdjacencyMap_String dumps one line per pattern and direction.
func TestAdjacencyMap_String(t *testing.T) {
	reg, err := pattern.NewRegistry(mustGrid(t, grid3.Dims{X: 2, Y: 1, Z: 1}, "A", "B"))
	require.NoError(t, err)
	got := pattern.BuildAdjacency(reg).String()
	want := "0 +x [1]\n0 -x []\n0 +y []\n0 -y []\n0 +z []\n0 -z []\n" +
		"1 +x []\n1 -x [0]\n1 +y []\n1 -y []\n1 +z []\n1 -z []\n"
	assert.Equal(t, want, got)
}
