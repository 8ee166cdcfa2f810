// Package grid3 treats a 3D box of cells as a lattice with six axis-aligned
// neighbours per cell, and provides the flat row-major indexing used by every
// grid-shaped structure in voxwfc.
//
// What:
//
//   - Dims describes a box of X×Y×Z cells and validates it.
//   - Coord is an integer (x,y,z) triple; Coord.Step moves one cell along a Direction.
//   - Direction is a closed enumeration of the six axis directions with
//     compile-time lookup tables (offset, opposite, name).
//   - Dims.Index / Dims.Coord map between coordinates and a flat arena index.
//
// Why:
//
//   - Arena storage: grids are a single slice addressed by Index, so ownership
//     is explicit and there is no aliasing between rows.
//   - Bounds are always checked: MustIndex panics with ErrOutOfBounds, which
//     signals a programming defect rather than bad user input.
//
// Complexity:
//
//   - Index, Coord, InBounds, Step: O(1).
//   - Each: O(X×Y×Z).
//
// Errors:
//
//   - ErrInvalidDims: a dimension is zero or negative.
//   - ErrOutOfBounds: panic value for coordinates outside the box.
package grid3
