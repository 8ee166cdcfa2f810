package domain

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/voxwfc/pattern"
)

// Domain is the set of patterns still possible for one cell.
type Domain struct {
	set *bitset.BitSet
}

// full returns a Domain holding every pattern 0..n-1.
func full(n int) Domain {
	s := bitset.New(uint(n))
	for i := 0; i < n; i++ {
		s.Set(uint(i))
	}
	return Domain{set: s}
}

// Len returns the number of remaining candidates.
func (d *Domain) Len() int { return int(d.set.Count()) }

// Empty reports whether no candidate is left (a contradiction).
func (d *Domain) Empty() bool { return d.set.None() }

// Has reports whether id is still a candidate.
func (d *Domain) Has(id pattern.ID) bool {
	return id >= 0 && d.set.Test(uint(id))
}

// Singleton returns the only remaining candidate, if there is exactly one.
func (d *Domain) Singleton() (pattern.ID, bool) {
	if d.set.Count() != 1 {
		return 0, false
	}
	i, _ := d.set.NextSet(0)
	return pattern.ID(i), true
}

// Values returns the candidates in ascending order.
func (d *Domain) Values() []pattern.ID {
	out := make([]pattern.ID, 0, d.set.Count())
	d.Each(func(id pattern.ID) {
		out = append(out, id)
	})
	return out
}

// Each calls fn for every candidate in ascending order.
func (d *Domain) Each(fn func(id pattern.ID)) {
	for i, ok := d.set.NextSet(0); ok; i, ok = d.set.NextSet(i + 1) {
		fn(pattern.ID(i))
	}
}

// Bits exposes the underlying set. Callers must treat it as read-only.
func (d *Domain) Bits() *bitset.BitSet { return d.set }

// Intersect keeps only candidates also present in allowed and returns how
// many were removed.
func (d *Domain) Intersect(allowed *bitset.BitSet) int {
	before := d.set.Count()
	d.set.InPlaceIntersection(allowed)
	return int(before - d.set.Count())
}

// Collapse narrows the domain to {id}. It returns false and leaves the
// domain untouched if id is not a candidate.
func (d *Domain) Collapse(id pattern.ID) bool {
	if !d.Has(id) {
		return false
	}
	d.set.ClearAll()
	d.set.Set(uint(id))
	return true
}

// Clone returns an independent copy.
func (d *Domain) Clone() Domain {
	return Domain{set: d.set.Clone()}
}
