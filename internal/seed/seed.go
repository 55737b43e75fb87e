// Package seed places initial patterns on a field: literal cell lists, a
// small catalogue of named patterns and seeded random fills.
package seed

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/specialistvlad/bitlife/internal/field"
)

// ErrUnknownPattern is returned by Apply for names missing from the catalogue.
var ErrUnknownPattern = errors.New("seed: unknown pattern")

// Cell is a coordinate relative to a pattern's origin.
type Cell struct {
	Row    int
	Column int
}

var patterns = map[string][]Cell{
	// Travels one cell down and to the right every four generations.
	"glider": {{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
	"block":  {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	// Period 2 oscillator, horizontal phase.
	"blinker": {{0, 0}, {0, 1}, {0, 2}},
	"beehive": {{0, 1}, {0, 2}, {1, 0}, {1, 3}, {2, 1}, {2, 2}},
	"toad":    {{0, 1}, {0, 2}, {0, 3}, {1, 0}, {1, 1}, {1, 2}},
}

// Names lists the catalogue in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Pattern returns a copy of the named pattern's cells.
func Pattern(name string) ([]Cell, bool) {
	cells, ok := patterns[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(cells), true
}

// Cells sets every cell alive, offset by (row, column). Cells that fall
// outside the field are skipped. It returns how many cells were placed.
func Cells(f *field.Field, row, column int, cells []Cell) int {
	placed := 0
	for _, c := range cells {
		if f.SetAlive(row+c.Row, column+c.Column) {
			placed++
		}
	}
	return placed
}

// Apply places a named pattern with its top-left corner at (row, column).
func Apply(f *field.Field, name string, row, column int) (int, error) {
	cells, ok := patterns[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	return Cells(f, row, column, cells), nil
}

// Random overwrites the current generation with pseudo-random blocks. The same
// seed always yields the same field. Padding bits are left clear.
func Random(f *field.Field, seed uint64) {
	rng := rand.New(rand.NewPCG(seed, seed))
	mask := f.LastBlockMask()
	last := f.Blocks() - 1
	for r := 0; r < f.Rows(); r++ {
		row := f.Row(r)
		for b := range row {
			row[b] = byte(rng.Uint32())
		}
		row[last] &= mask
	}
}
