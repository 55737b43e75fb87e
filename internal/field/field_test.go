package field_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/bitlife/internal/field"
	"github.com/specialistvlad/bitlife/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshot copies every row of the current generation.
func snapshot(f *field.Field) [][]byte {
	out := make([][]byte, f.Rows())
	for r := range out {
		out[r] = append([]byte(nil), f.Row(r)...)
	}
	return out
}

func TestNew_InvalidSizePanics(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		rows, columns int
	}{
		{name: "zero rows", rows: 0, columns: 8},
		{name: "zero columns", rows: 8, columns: 0},
		{name: "negative", rows: -1, columns: 4},
		{name: "too many columns", rows: 1, columns: 1 << 16},
		{name: "too many rows", rows: 1 << 16, columns: 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Panics(t, func() { field.New(tc.rows, tc.columns) })
		})
	}
}

func TestNew_Blocks(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		columns, blocks int
	}{
		{1, 1}, {7, 1}, {8, 1}, {9, 2}, {16, 2}, {17, 3}, {65535, 8192},
	}
	for _, tc := range testCases {
		f := field.New(1, tc.columns)
		assert.Equal(t, tc.blocks, f.Blocks(), "columns=%d", tc.columns)
		assert.Equal(t, tc.columns, f.Columns())
		assert.Equal(t, 1, f.Rows())
	}
}

func TestCells_SetAndClear(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	f := field.New(4, 12)

	// --- Act ---
	require.True(t, f.SetAlive(1, 9))
	require.True(t, f.SetAlive(3, 0))
	require.False(t, f.SetAlive(4, 0), "row past the edge must be rejected")
	require.False(t, f.SetAlive(0, 12), "column past the edge must be rejected")
	require.False(t, f.SetDead(-1, 0))

	// --- Assert ---
	assert.True(t, f.IsAlive(1, 9))
	assert.Equal(t, byte(1<<1), *f.Block(1, 1))
	assert.Equal(t, byte(1), *f.Block(3, 0))
	assert.False(t, f.IsAlive(4, 0))
	assert.False(t, f.IsAlive(-1, -1))
	assert.Equal(t, 2, f.Population())

	require.True(t, f.SetDead(1, 9))
	assert.False(t, f.IsAlive(1, 9))

	f.SetAllDead()
	assert.Equal(t, 0, f.Population())
}

func TestCountNeighbours_LoneCornerCell(t *testing.T) {
	t.Parallel()

	f := field.New(8, 8)
	f.SetAlive(0, 0)

	// The count includes the centre, so the neighbour-only count is one less.
	require.Equal(t, 1, f.CountNeighbours(0, 0))
	require.Equal(t, 0, f.CountNeighbours(0, 0)-1)
	// Nothing wraps around to the opposite edges.
	require.Equal(t, 0, f.CountNeighbours(7, 7))
	require.Equal(t, 0, f.CountNeighbours(0, 7))
	require.Equal(t, 0, f.CountNeighbours(7, 0))
}

func TestCountNeighbours_ClampedAtEdges(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	f := field.New(3, 3)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			f.SetAlive(r, c)
		}
	}

	// --- Assert ---
	assert.Equal(t, 4, f.CountNeighbours(0, 0), "corner")
	assert.Equal(t, 6, f.CountNeighbours(0, 1), "edge")
	assert.Equal(t, 9, f.CountNeighbours(1, 1), "centre")
	assert.Equal(t, 4, f.CountNeighbours(2, 2), "far corner")
}

func TestRule(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 8; n++ {
		assert.Equal(t, n == 2 || n == 3, field.Rule(true, n), "alive with %d", n)
		assert.Equal(t, n == 3, field.Rule(false, n), "dead with %d", n)
	}
}

func TestStep_GliderTopLeft(t *testing.T) {
	t.Parallel()

	steppers := map[string]func(*field.Field) error{
		"sequential": func(f *field.Field) error { f.Step(); return nil },
		"parallel":   func(f *field.Field) error { return f.StepParallel(0) },
		"pooled":     func(f *field.Field) error { return f.StepParallel(2) },
	}
	for name, step := range steppers {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			f := field.New(8, 8)
			*f.Block(0, 0) = 2
			*f.Block(1, 0) = 4
			*f.Block(2, 0) = 7

			// --- Act & Assert ---
			require.NoError(t, step(f))
			require.NoError(t, f.MoveNextToCurrent())
			assert.Equal(t, byte(0), *f.Block(0, 0))
			assert.Equal(t, byte(5), *f.Block(1, 0))
			assert.Equal(t, byte(6), *f.Block(2, 0))
			assert.Equal(t, byte(2), *f.Block(3, 0))

			require.NoError(t, step(f))
			require.NoError(t, f.MoveNextToCurrent())
			assert.Equal(t, byte(4), *f.Block(1, 0))
			assert.Equal(t, byte(5), *f.Block(2, 0))
			assert.Equal(t, byte(6), *f.Block(3, 0))
		})
	}
}

func TestStep_BlockIsStill(t *testing.T) {
	t.Parallel()

	f := field.New(10, 13)
	_, err := seed.Apply(f, "block", 4, 6)
	require.NoError(t, err)
	want := snapshot(f)

	for i := 0; i < 10; i++ {
		require.NoError(t, f.Advance(i%2 == 0, 0))
		require.Empty(t, cmp.Diff(want, snapshot(f)), "block changed at step %d", i)
	}
}

func TestStep_BlinkerOscillates(t *testing.T) {
	t.Parallel()

	f := field.New(5, 5)
	_, err := seed.Apply(f, "blinker", 2, 1)
	require.NoError(t, err)
	horizontal := snapshot(f)

	require.NoError(t, f.Advance(false, 0))
	assert.True(t, f.IsAlive(1, 2))
	assert.True(t, f.IsAlive(2, 2))
	assert.True(t, f.IsAlive(3, 2))
	assert.Equal(t, 3, f.Population())

	require.NoError(t, f.Advance(true, 0))
	require.Empty(t, cmp.Diff(horizontal, snapshot(f)))
}

func TestStep_SequentialAndParallelAgree(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		rows, columns int
		seed          uint64
	}{
		{24, 24, 65535},
		{1, 1, 1},
		{1, 9, 2},
		{13, 21, 3},
		{40, 67, 4},
		{7, 64, 5},
	}
	const steps = 16

	for _, tc := range testCases {
		ref := field.New(tc.rows, tc.columns)
		got := field.New(tc.rows, tc.columns)
		seed.Random(ref, tc.seed)
		seed.Random(got, tc.seed)
		require.True(t, ref.Equal(got), "fields must start identical")

		for i := 0; i < steps; i++ {
			ref.Step()
			require.NoError(t, ref.MoveNextToCurrent())
			require.NoError(t, got.StepParallel(i%4))
			require.NoError(t, got.MoveNextToCurrent())

			if diff := cmp.Diff(snapshot(ref), snapshot(got)); diff != "" {
				t.Fatalf("%dx%d diverged at step %d (-sequential +parallel):\n%s", tc.rows, tc.columns, i, diff)
			}
		}
	}
}

func TestStep_CurrentUntouchedUntilCommit(t *testing.T) {
	t.Parallel()

	f := field.New(16, 16)
	seed.Random(f, 42)
	before := snapshot(f)

	f.Step()
	require.Empty(t, cmp.Diff(before, snapshot(f)))
	require.NoError(t, f.StepParallel(0))
	require.Empty(t, cmp.Diff(before, snapshot(f)))
}

func TestMoveNextToCurrent_PaddingStaysClear(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// 11 columns leave 5 padding bits in the second block of each row.
	f := field.New(6, 11)
	seed.Random(f, 7)
	for r := 0; r < f.Rows(); r++ {
		*f.Block(r, 1) |= 0xF8
	}

	// --- Act ---
	for i := 0; i < 4; i++ {
		require.NoError(t, f.Advance(i%2 == 1, 3))

		// --- Assert ---
		for r := 0; r < f.Rows(); r++ {
			require.Zero(t, *f.Block(r, 1)&^f.LastBlockMask(), "padding set in row %d after step %d", r, i)
		}
	}
}

func TestMoveNextToCurrent_NeedsStagedGeneration(t *testing.T) {
	t.Parallel()

	f := field.New(3, 3)
	require.ErrorIs(t, f.MoveNextToCurrent(), field.ErrNoGeneration)

	f.Step()
	require.NoError(t, f.MoveNextToCurrent())
	require.ErrorIs(t, f.MoveNextToCurrent(), field.ErrNoGeneration, "a generation is committed only once")
}

func TestClone_IsIndependent(t *testing.T) {
	t.Parallel()

	f := field.New(4, 4)
	f.SetAlive(1, 1)
	c := f.Clone()
	require.True(t, f.Equal(c))

	c.SetAlive(2, 2)
	assert.False(t, f.Equal(c))
	assert.False(t, f.Equal(field.New(4, 5)))
	assert.False(t, f.Equal(nil))
}

func benchmarkStep(b *testing.B, step func(*field.Field)) {
	f := field.New(512, 512)
	seed.Random(f, 5343542)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		step(f)
	}
}

func BenchmarkStep(b *testing.B) {
	benchmarkStep(b, func(f *field.Field) { f.Step() })
}

func BenchmarkStepParallel(b *testing.B) {
	benchmarkStep(b, func(f *field.Field) { _ = f.StepParallel(0) })
}

func BenchmarkStepParallelPooled(b *testing.B) {
	benchmarkStep(b, func(f *field.Field) { _ = f.StepParallel(8) })
}
