// Package codec saves and restores fields.
//
// The binary format has no magic number or version:
//
//	offset 0, 2 bytes: rows, big-endian
//	offset 2, 1 byte:  low 3 bits hold columns%8 (0 means a multiple of 8)
//	offset 3:          rows*blocks bytes of the current generation, row by row
//
// The column count is not stored; it is inferred from the payload length and
// the offset byte. A hex text format is also provided for hand-editing, and
// Save/Load pick a format from the file extension (".txt" for text, anything
// else binary) with an optional trailing ".zst" for zstd compression.
package codec
