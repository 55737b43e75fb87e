package field

// CountNeighbours sums the live cells in the 3x3 window centred on
// (row, column), the centre included. The window is clamped at the grid
// edges, so corner cells see at most three other cells. Callers subtract the
// centre themselves to get the neighbour-only count.
func (f *Field) CountNeighbours(row, column int) int {
	n := 0
	for r := max(row-1, 0); r <= min(row+1, f.rows-1); r++ {
		for c := max(column-1, 0); c <= min(column+1, f.columns-1); c++ {
			if f.IsAlive(r, c) {
				n++
			}
		}
	}
	return n
}

// Rule applies Conway's rule: a live cell survives with two or three
// neighbours and a dead cell is born with exactly three.
func Rule(alive bool, neighbours int) bool {
	if alive {
		return neighbours == 2 || neighbours == 3
	}
	return neighbours == 3
}

// nextState computes a cell's state in the following generation from the
// current one.
func (f *Field) nextState(row, column int) bool {
	alive := f.IsAlive(row, column)
	return Rule(alive, f.CountNeighbours(row, column)-btoi(alive))
}
