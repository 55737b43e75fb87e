package field

import (
	"fmt"
	"math"
	"math/bits"
)

// Field is a fixed-size Game of Life grid with a double-buffered generation
// model. A Field is not safe for concurrent use by multiple goroutines; only
// StepParallel fans out internally, and it joins before returning.
type Field struct {
	rows    int
	columns int
	blocks  int

	current [][]byte
	next    [][]byte

	// staged is true once next holds a complete generation that has not
	// been committed yet.
	staged bool
}

// TotalBlocks returns how many bytes are needed to hold one row of columns cells.
func TotalBlocks(columns int) int {
	return columns/8 + btoi(columns%8 > 0)
}

// New creates an all-dead Field. Dimensions must be in [1, 65535]; anything
// else is a programmer error and panics.
func New(rows, columns int) *Field {
	if rows < 1 || columns < 1 {
		panic(fmt.Sprintf("field: size must be larger than 0, got %dx%d", rows, columns))
	}
	if rows > math.MaxUint16 || columns > math.MaxUint16 {
		panic(fmt.Sprintf("field: size must fit in 16 bits, got %dx%d", rows, columns))
	}

	blocks := TotalBlocks(columns)
	if blocks == 0 {
		panic("field: block count became 0")
	}

	return &Field{
		rows:    rows,
		columns: columns,
		blocks:  blocks,
		current: newBuffer(rows, blocks),
		next:    newBuffer(rows, blocks),
	}
}

// newBuffer allocates rows slices that share one backing array.
func newBuffer(rows, blocks int) [][]byte {
	backing := make([]byte, rows*blocks)
	buf := make([][]byte, rows)
	for r := range buf {
		buf[r] = backing[r*blocks : (r+1)*blocks : (r+1)*blocks]
	}
	return buf
}

// Rows returns the number of rows.
func (f *Field) Rows() int { return f.rows }

// Columns returns the number of columns.
func (f *Field) Columns() int { return f.columns }

// Blocks returns the number of bytes per row.
func (f *Field) Blocks() int { return f.blocks }

// Block returns a pointer to a byte of the current generation for bulk edits.
// Callers must only set bits that map to columns inside the grid. Padding
// bits set through this pointer stay set until the next MoveNextToCurrent.
func (f *Field) Block(row, block int) *byte {
	return &f.current[row][block]
}

// Row returns the current generation's blocks for one row. The slice aliases
// the Field's storage.
func (f *Field) Row(row int) []byte {
	return f.current[row]
}

// contains reports whether (row, column) lies inside the grid.
func (f *Field) contains(row, column int) bool {
	return row >= 0 && row < f.rows && column >= 0 && column < f.columns
}

// IsAlive reports whether the cell is alive in the current generation.
// Coordinates outside the grid are always dead.
func (f *Field) IsAlive(row, column int) bool {
	if !f.contains(row, column) {
		return false
	}
	return f.current[row][column/8]&(1<<(column%8)) != 0
}

// SetAlive marks a cell alive in the current generation. It reports false,
// and changes nothing, when the cell is outside the grid.
func (f *Field) SetAlive(row, column int) bool {
	if !f.contains(row, column) {
		return false
	}
	f.current[row][column/8] |= 1 << (column % 8)
	return true
}

// SetDead marks a cell dead in the current generation. It reports false,
// and changes nothing, when the cell is outside the grid.
func (f *Field) SetDead(row, column int) bool {
	if !f.contains(row, column) {
		return false
	}
	f.current[row][column/8] &^= 1 << (column % 8)
	return true
}

// SetAllDead clears the current generation.
func (f *Field) SetAllDead() {
	for _, row := range f.current {
		clear(row)
	}
}

// Population counts the live cells of the current generation. Padding bits
// are ignored.
func (f *Field) Population() int {
	mask := f.LastBlockMask()
	n := 0
	for _, row := range f.current {
		for b := 0; b < f.blocks-1; b++ {
			n += bits.OnesCount8(row[b])
		}
		n += bits.OnesCount8(row[f.blocks-1] & mask)
	}
	return n
}

// Equal reports whether both fields have the same shape and the same bytes in
// their current generation.
func (f *Field) Equal(other *Field) bool {
	if other == nil || f.rows != other.rows || f.columns != other.columns {
		return false
	}
	for r := range f.current {
		for b := range f.current[r] {
			if f.current[r][b] != other.current[r][b] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the current generation. The copy has nothing
// staged.
func (f *Field) Clone() *Field {
	c := New(f.rows, f.columns)
	for r := range f.current {
		copy(c.current[r], f.current[r])
	}
	return c
}

// LastBlockMask returns the mask of the bits of a row's final block that map
// to real columns.
func (f *Field) LastBlockMask() byte {
	if rem := f.columns % 8; rem != 0 {
		return byte(1<<rem) - 1
	}
	return 0xFF
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
