package sim

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/bitlife/internal/codec"
	"github.com/specialistvlad/bitlife/internal/ctxlog"
	"github.com/specialistvlad/bitlife/internal/field"
)

// Options configures a Runner.
type Options struct {
	Generations int
	Parallel    bool
	// Workers bounds the parallel stepper; 0 runs one goroutine per block.
	Workers int
	// SnapshotPath, when set, receives the final generation. With
	// SnapshotEvery > 0 intermediate generations are also saved next to it.
	SnapshotPath  string
	SnapshotEvery int
}

// Result summarises a run.
type Result struct {
	Generations int
	Population  int
	Elapsed     time.Duration
}

// SaveFunc persists a field to a path.
type SaveFunc func(path string, f *field.Field) error

// Runner advances a field generation by generation.
type Runner struct {
	opts Options
	save SaveFunc

	generation atomic.Int64
}

// New creates a Runner that saves snapshots with codec.Save.
func New(opts Options) *Runner {
	return &Runner{opts: opts, save: codec.Save}
}

// WithSaver replaces the snapshot writer.
func (r *Runner) WithSaver(save SaveFunc) *Runner {
	r.save = save
	return r
}

// Generation returns the number of generations committed so far. It is safe
// to call while Run is in progress.
func (r *Runner) Generation() int {
	return int(r.generation.Load())
}

// Run advances f by the configured number of generations. Cancellation is
// checked between generations only; a step in progress always completes.
func (r *Runner) Run(ctx context.Context, f *field.Field) (Result, error) {
	logger := ctxlog.FromContext(ctx).With(
		"rows", f.Rows(),
		"columns", f.Columns(),
		"parallel", r.opts.Parallel,
	)
	logger.Debug("Simulation starting.", "generations", r.opts.Generations, "population", f.Population())

	start := time.Now()
	res := Result{}
	for gen := 1; gen <= r.opts.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			res.Population = f.Population()
			res.Elapsed = time.Since(start)
			return res, fmt.Errorf("stopped before generation %d: %w", gen, err)
		}

		if err := f.Advance(r.opts.Parallel, r.opts.Workers); err != nil {
			res.Population = f.Population()
			res.Elapsed = time.Since(start)
			return res, fmt.Errorf("generation %d: %w", gen, err)
		}
		res.Generations = gen
		r.generation.Store(int64(gen))
		logger.Debug("Generation committed.", "generation", gen)

		if r.opts.SnapshotPath != "" && r.opts.SnapshotEvery > 0 && gen%r.opts.SnapshotEvery == 0 && gen != r.opts.Generations {
			path := SnapshotPath(r.opts.SnapshotPath, gen)
			if err := r.save(path, f); err != nil {
				return res, fmt.Errorf("snapshot at generation %d: %w", gen, err)
			}
			logger.Info("Snapshot saved.", "generation", gen, "path", path)
		}
	}

	if r.opts.SnapshotPath != "" {
		if err := r.save(r.opts.SnapshotPath, f); err != nil {
			return res, fmt.Errorf("final snapshot: %w", err)
		}
		logger.Info("Snapshot saved.", "generation", res.Generations, "path", r.opts.SnapshotPath)
	}

	res.Population = f.Population()
	res.Elapsed = time.Since(start)
	logger.Debug("Simulation finished.", "generations", res.Generations, "population", res.Population, "elapsed", res.Elapsed)
	return res, nil
}

// SnapshotPath inserts the generation number before the first extension of
// the file name, so "saves/out.gol.zst" becomes "saves/out-000025.gol.zst".
func SnapshotPath(path string, generation int) string {
	dir, base := filepath.Split(path)
	name, ext := base, ""
	if i := strings.Index(base, "."); i > 0 {
		name, ext = base[:i], base[i:]
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%06d%s", name, generation, ext))
}
