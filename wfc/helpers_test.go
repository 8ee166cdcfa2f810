package wfc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxwfc/grid3"
	"github.com/katalvlaran/voxwfc/pattern"
	"github.com/katalvlaran/voxwfc/wfc"
)

// lineModel builds a model from a 1D exemplar along x, one label per cell.
func lineModel(t *testing.T, labels string, opts ...pattern.AdjacencyOption) *wfc.Model {
	t.Helper()
	fields := strings.Fields(labels)
	return boxModel(t, grid3.Dims{X: len(fields), Y: 1, Z: 1}, fields, opts...)
}

// boxModel builds a model from labels laid out in grid3 index order.
func boxModel(t *testing.T, dims grid3.Dims, labels []string, opts ...pattern.AdjacencyOption) *wfc.Model {
	t.Helper()
	handles := make([]pattern.Handle, len(labels))
	for i, l := range labels {
		handles[i] = l
	}
	ex, err := pattern.NewGrid(dims, handles)
	require.NoError(t, err)
	m, err := wfc.NewModel(ex, opts...)
	require.NoError(t, err)
	return m
}

// requireConsistent asserts every pair of neighbouring cells in res is
// permitted by the model's adjacency rules.
func requireConsistent(t *testing.T, m *wfc.Model, res *wfc.Result) {
	t.Helper()
	res.Dims.Each(func(c grid3.Coord) bool {
		for _, d := range grid3.Directions {
			n, ok := res.Dims.Neighbor(c, d)
			if !ok {
				continue
			}
			require.True(t, m.Adjacency.Permits(res.At(c), d, res.At(n)),
				"pattern %d at %s does not allow %d on its %s side", res.At(c), c, res.At(n), d)
		}
		return true
	})
}
