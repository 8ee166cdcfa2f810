// Package voxwfc generates 3D voxel grids that locally resemble a small
// labelled exemplar, using wave function collapse.
//
// 🚀 What is voxwfc?
//
//	A seedable, deterministic WFC solver for box-shaped grids:
//		• Patterns: every exemplar cell is its own pattern
//		• Adjacency: two patterns may touch along an axis only if they do in the exemplar
//		• Domains: one bitset of candidate patterns per output cell
//		• Propagation: BFS-style arc consistency until a fixpoint or a contradiction
//		• Scheduling: lowest-entropy cell first, or a random outstanding cell
//		• Retries: fresh derived seeds after a contradiction, optionally in parallel
//
// ✨ Why choose voxwfc?
//
//   - Deterministic: the same seed always yields the same grid
//   - Observable: OnCollapse/OnPass hooks and log/slog logging
//   - No partial results: a Result exists only for fully collapsed grids
//   - Replayable: the voxwfc CLI records runs in SQLite and re-solves them
//
// Packages:
//
//	grid3/      extents, coordinates, the six axis directions
//	pattern/    pattern registry and the adjacency map
//	domain/     candidate sets and the arena of per-cell domains
//	wfc/        propagator, solver, Solve with retries
//	exemplar/   YAML exemplar documents
//	store/      SQLite run store
//
// Quick example (x runs left to right):
//
//	exemplar:  sand grass water
//	adjacency: sand +x grass, grass +x water
//	output 3x1x1 collapses to: sand grass water
//
//	go install github.com/katalvlaran/voxwfc/cmd/voxwfc@latest
package voxwfc
