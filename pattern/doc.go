// Package pattern learns adjacency rules from an exemplar grid.
//
// Every exemplar cell is its own pattern: NewRegistry numbers the cells in
// scan order (x outer, then y, then z) and BuildAdjacency records, for each
// pattern and each of the six axis directions, which patterns were observed
// next to it.
//
//	ex := pattern.NewGrid(dims, handles)
//	reg, err := pattern.NewRegistry(ex)
//	adj := pattern.BuildAdjacency(reg)
//	adj.Allowed(0, grid3.PosX) // patterns seen on the +x side of pattern 0
//
// A pattern is not adjacent to itself unless WithSelfAdjacency is given.
//
// Registry and AdjacencyMap are immutable once built and safe for concurrent reads.
package pattern
