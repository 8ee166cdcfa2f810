package pattern

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/voxwfc/grid3"
)

// AdjacencyOption configures BuildAdjacency.
type AdjacencyOption func(*adjacencyOptions)

type adjacencyOptions struct {
	selfAdjacent bool
}

// WithSelfAdjacency makes every pattern an allowed neighbour of itself in all
// six directions, on top of what the exemplar shows.
func WithSelfAdjacency() AdjacencyOption {
	return func(o *adjacencyOptions) { o.selfAdjacent = true }
}

// AdjacencyMap holds, for every (pattern, direction) pair, the set of patterns
// observed adjacent in that direction. It is read-only after construction.
type AdjacencyMap struct {
	n    int
	sets [][grid3.NumDirections]*bitset.BitSet
}

// BuildAdjacency derives the adjacency rules of reg's exemplar.
// For each exemplar cell and direction whose neighbour is in bounds, the
// neighbour's pattern is recorded as allowed in that direction.
// Every pattern gets an entry for all six directions, empty at exemplar borders.
// Complexity: O(V×6) time, O(V²×6/64) memory for the bitsets.
func BuildAdjacency(reg *Registry, opts ...AdjacencyOption) *AdjacencyMap {
	var o adjacencyOptions
	for _, opt := range opts {
		opt(&o)
	}

	n := reg.Len()
	m := &AdjacencyMap{
		n:    n,
		sets: make([][grid3.NumDirections]*bitset.BitSet, n),
	}
	for id := range m.sets {
		for _, d := range grid3.Directions {
			s := bitset.New(uint(n))
			if o.selfAdjacent {
				s.Set(uint(id))
			}
			m.sets[id][d] = s
		}
	}

	dims := reg.Dims()
	dims.Each(func(c grid3.Coord) bool {
		cur := reg.ID(c)
		for _, d := range grid3.Directions {
			nc, ok := dims.Neighbor(c, d)
			if !ok {
				continue
			}
			m.sets[cur][d].Set(uint(reg.ID(nc)))
		}
		return true
	})

	return m
}

// Len returns the number of patterns covered by the map.
func (m *AdjacencyMap) Len() int { return m.n }

// Allowed returns the patterns permitted on the d side of id, ascending.
func (m *AdjacencyMap) Allowed(id ID, d grid3.Direction) []ID {
	s := m.sets[id][d]
	out := make([]ID, 0, s.Count())
	for i, ok := s.NextSet(0); ok; i, ok = s.NextSet(i + 1) {
		out = append(out, ID(i))
	}
	return out
}

// AllowedSet returns the bitset view of Allowed. The set is shared with the
// map and must not be modified.
func (m *AdjacencyMap) AllowedSet(id ID, d grid3.Direction) *bitset.BitSet {
	return m.sets[id][d]
}

// Permits reports whether other may sit on the d side of id.
func (m *AdjacencyMap) Permits(id ID, d grid3.Direction, other ID) bool {
	return m.sets[id][d].Test(uint(other))
}

// String dumps the map one line per pattern and direction, for diagnostics.
func (m *AdjacencyMap) String() string {
	var sb strings.Builder
	for id := 0; id < m.n; id++ {
		for _, d := range grid3.Directions {
			fmt.Fprintf(&sb, "%d %s %v\n", id, d, m.Allowed(ID(id), d))
		}
	}
	return sb.String()
}
