// Package field implements a bit-packed Game of Life grid.
//
// Cells are stored eight to a byte ("block"): cell (r, c) is alive when bit
// c%8 of block c/8 in row r is set, bit 0 being the least significant. A
// Field keeps two buffers. The current buffer is the published generation and
// the only one callers can read or edit; the next buffer is scratch space that
// Step or StepParallel fill, and MoveNextToCurrent publishes.
//
// The grid has hard edges. Cells outside [0, rows) x [0, columns) do not
// exist and never contribute to a neighbour count.
package field
