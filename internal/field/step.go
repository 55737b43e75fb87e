package field

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrStepFailed is returned by StepParallel when any unit of work failed.
	// The scratch generation is incomplete and will not be committed.
	ErrStepFailed = errors.New("field: parallel step failed")

	// ErrNoGeneration is returned by MoveNextToCurrent when no complete
	// generation has been staged since the last commit.
	ErrNoGeneration = errors.New("field: no staged generation to commit")
)

// computeBlock is the unit of work of StepParallel. Tests replace it to
// simulate a failing unit.
var computeBlock = (*Field).nextBlock

// Step computes the next generation on the calling goroutine. The current
// generation is only read; results go to the scratch buffer until
// MoveNextToCurrent is called.
func (f *Field) Step() {
	for r := 0; r < f.rows; r++ {
		for c := 0; c < f.columns; c++ {
			if f.nextState(r, c) {
				f.next[r][c/8] |= 1 << (c % 8)
			} else {
				f.next[r][c/8] &^= 1 << (c % 8)
			}
		}
	}
	f.staged = true
}

// StepParallel computes the next generation with one unit of work per
// (row, block) pair. Each unit reads the current generation and writes exactly
// one byte of the scratch buffer that no other unit touches, so the units need
// no locking. With workers > 0 at most that many units run at once, otherwise
// every unit gets its own goroutine. StepParallel returns once all units are
// done, and its result is bit-identical to Step.
//
// A panicking unit fails the whole step with ErrStepFailed; nothing is staged.
func (f *Field) StepParallel(workers int) error {
	f.staged = false

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for r := 0; r < f.rows; r++ {
		for b := 0; b < f.blocks; b++ {
			g.Go(func() (err error) {
				defer func() {
					if p := recover(); p != nil {
						err = fmt.Errorf("unit row=%d block=%d: %v", r, b, p)
					}
				}()
				f.next[r][b] = computeBlock(f, r, b)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrStepFailed, err)
	}

	f.staged = true
	return nil
}

// nextBlock computes all the bits of one block of the next generation.
// Bits past the last column stay zero.
func (f *Field) nextBlock(row, block int) byte {
	var out byte
	first := block * 8
	for c := first; c < min(first+8, f.columns); c++ {
		if f.nextState(row, c) {
			out |= 1 << (c - first)
		}
	}
	return out
}

// MoveNextToCurrent publishes the staged generation. The final block of each
// row is masked so padding bits past the last column are always zero
// afterwards.
func (f *Field) MoveNextToCurrent() error {
	if !f.staged {
		return ErrNoGeneration
	}

	mask := f.LastBlockMask()
	last := f.blocks - 1
	for r := 0; r < f.rows; r++ {
		for b := 0; b < last; b++ {
			f.current[r][b] = f.next[r][b]
		}
		f.current[r][last] = f.next[r][last] & mask
	}

	f.staged = false
	return nil
}

// Advance runs one step with the sequential stepper, or the parallel one
// when parallel is set, and commits it.
func (f *Field) Advance(parallel bool, workers int) error {
	if parallel {
		if err := f.StepParallel(workers); err != nil {
			return err
		}
	} else {
		f.Step()
	}
	return f.MoveNextToCurrent()
}
