package sim

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/bitlife/internal/codec"
	"github.com/specialistvlad/bitlife/internal/ctxlog"
	"github.com/specialistvlad/bitlife/internal/field"
	"github.com/specialistvlad/bitlife/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(buf *bytes.Buffer) context.Context {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger)
}

func TestRun_MatchesManualSteps(t *testing.T) {
	t.Parallel()

	for _, parallel := range []bool{false, true} {
		// --- Arrange ---
		f := field.New(20, 21)
		seed.Random(f, 77)
		want := f.Clone()
		for i := 0; i < 12; i++ {
			require.NoError(t, want.Advance(false, 0))
		}
		var logs bytes.Buffer

		// --- Act ---
		res, err := New(Options{Generations: 12, Parallel: parallel, Workers: 3}).Run(testContext(&logs), f)

		// --- Assert ---
		require.NoError(t, err)
		assert.Equal(t, 12, res.Generations)
		assert.Equal(t, want.Population(), res.Population)
		assert.True(t, want.Equal(f), "parallel=%v", parallel)
		assert.Contains(t, logs.String(), "Generation committed.")
	}
}

func TestRun_Snapshots(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	final := filepath.Join(dir, "out.gol")
	f := field.New(10, 10)
	_, err := seed.Apply(f, "glider", 0, 0)
	require.NoError(t, err)

	// --- Act ---
	r := New(Options{Generations: 10, SnapshotPath: final, SnapshotEvery: 4})
	_, err = r.Run(context.Background(), f)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 10, r.Generation())
	for _, name := range []string{"out-000004.gol", "out-000008.gol", "out.gol"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}
	_, err = os.Stat(filepath.Join(dir, "out-000010.gol"))
	require.ErrorIs(t, err, os.ErrNotExist, "the last generation only goes to the final path")

	loaded, err := codec.Load(final)
	require.NoError(t, err)
	require.True(t, loaded.Equal(f))
	// A glider keeps five cells once clear of the edges it started against.
	require.Equal(t, 5, loaded.Population())
}

func TestRun_CancelledBetweenGenerations(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	saved := 0
	r := New(Options{Generations: 100, SnapshotPath: "ignored", SnapshotEvery: 3}).WithSaver(
		func(string, *field.Field) error {
			mu.Lock()
			defer mu.Unlock()
			saved++
			cancel()
			return nil
		})

	res, err := r.Run(ctx, field.New(4, 4))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, res.Generations)
	assert.Equal(t, 1, saved)
}

func TestRun_SaveFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	r := New(Options{Generations: 2, SnapshotPath: "x"}).WithSaver(func(string, *field.Field) error { return boom })

	res, err := r.Run(context.Background(), field.New(2, 2))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, res.Generations)
}

func TestRun_ZeroGenerations(t *testing.T) {
	t.Parallel()

	f := field.New(3, 3)
	f.SetAlive(1, 1)
	res, err := New(Options{}).Run(context.Background(), f)
	require.NoError(t, err)
	assert.Zero(t, res.Generations)
	assert.Equal(t, 1, res.Population)
}

func TestSnapshotPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("saves", "out-000025.gol.zst"), SnapshotPath(filepath.Join("saves", "out.gol.zst"), 25))
	assert.Equal(t, "save-000003", SnapshotPath("save", 3))
	assert.Equal(t, ".hidden-000001", SnapshotPath(".hidden", 1))
}
