// Package store persists solve runs in SQLite so they can be listed and
// replayed later.
//
// A run records everything needed to reproduce it: the exemplar document,
// the base seed, the retry count, the selection policy and the output
// extents. Replaying a run re-solves with those settings and compares the
// outcome with the stored one.
//
// The database uses WAL mode and a single connection; one writer at a time.
package store
