// Package domain holds the evolving state of a solve: one candidate set of
// pattern IDs per output cell.
//
// A Domain is a bitset over pattern IDs. It only ever shrinks: Intersect and
// Collapse remove candidates, nothing adds them back. An empty Domain means
// the current choices admit no solution.
//
// Grid stores every Domain in one flat slice addressed through grid3.Dims, so
// there is a single owner for the whole lattice.
package domain
