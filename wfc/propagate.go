package wfc

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/voxwfc/domain"
	"github.com/katalvlaran/voxwfc/grid3"
	"github.com/katalvlaran/voxwfc/pattern"
)

// Propagator restores arc consistency after a domain was narrowed.
//
// A pass is a breadth-first traversal from the narrowed cells. For a dequeued
// cell c and each in-bounds neighbour n = c+d, the patterns n may still hold
// are the union of adj(p, d) over every p left in c's domain; n's domain is
// intersected with that union. A neighbour that shrank is queued again unless
// it is already waiting in the queue. The change mask records "waiting in the
// queue"; it is reset at the start of each pass and cleared on dequeue, so a
// cell that shrinks after its visit is revisited and the pass ends at a true
// fixpoint.
//
// A Propagator is bound to one adjacency map and one grid shape and is not
// safe for concurrent use.
type Propagator struct {
	adj   *pattern.AdjacencyMap
	dims  grid3.Dims
	mask  []bool
	queue []grid3.Coord
	union *bitset.BitSet
}

// NewPropagator allocates a propagator for grids of the given shape.
func NewPropagator(adj *pattern.AdjacencyMap, dims grid3.Dims) *Propagator {
	return &Propagator{
		adj:   adj,
		dims:  dims,
		mask:  make([]bool, dims.Volume()),
		union: bitset.New(uint(adj.Len())),
	}
}

// Propagate runs one pass seeded with the given cells and returns its stats.
// It returns ErrContradiction (with State == Contradiction) as soon as a
// domain becomes empty; the grid is then left partially narrowed and must be
// discarded. ErrInvalidInput is returned if g does not match the
// propagator's shape or pattern count.
//
// Complexity: O(K×6×P) per visited cell, where K is the visited cell's
// domain size and P/64 the bitset width.
func (p *Propagator) Propagate(g *domain.Grid, seeds ...grid3.Coord) (PassStats, error) {
	stats := PassStats{State: Idle}
	if g.Dims() != p.dims || g.Patterns() != p.adj.Len() {
		return stats, fmt.Errorf("%w: grid %s with %d patterns, propagator expects %s with %d",
			ErrInvalidInput, g.Dims(), g.Patterns(), p.dims, p.adj.Len())
	}

	for i := range p.mask {
		p.mask[i] = false
	}
	p.queue = p.queue[:0]
	for _, s := range seeds {
		p.enqueue(s)
	}

	stats.State = Traversing
	for head := 0; head < len(p.queue); head++ {
		c := p.queue[head]
		p.mask[p.dims.MustIndex(c)] = false
		stats.Visited++

		cur := g.At(c)
		for _, d := range grid3.Directions {
			n, ok := p.dims.Neighbor(c, d)
			if !ok {
				continue
			}
			p.allowedFrom(cur, d)
			nd := g.At(n)
			removed := nd.Intersect(p.union)
			if removed == 0 {
				continue
			}
			stats.Narrowed++
			stats.Removed += removed
			if nd.Empty() {
				stats.State = Contradiction
				return stats, fmt.Errorf("%w: cell %s has no candidates left after %s shrank", ErrContradiction, n, c)
			}
			p.enqueue(n)
		}
	}
	p.queue = p.queue[:0]
	stats.State = Settled

	return stats, nil
}

// enqueue adds c unless it is already waiting.
func (p *Propagator) enqueue(c grid3.Coord) {
	i := p.dims.MustIndex(c)
	if p.mask[i] {
		return
	}
	p.mask[i] = true
	p.queue = append(p.queue, c)
}

// allowedFrom fills p.union with every pattern permitted on the d side of
// some candidate of cur.
func (p *Propagator) allowedFrom(cur *domain.Domain, d grid3.Direction) {
	p.union.ClearAll()
	cur.Each(func(id pattern.ID) {
		p.union.InPlaceUnion(p.adj.AllowedSet(id, d))
	})
}
