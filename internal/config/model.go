package config

import (
	"errors"
	"fmt"
	"math"
)

const (
	StepperSequential = "sequential"
	StepperParallel   = "parallel"

	// DefaultGenerations is used when nothing sets a generation count.
	DefaultGenerations = 1
)

// Scenario is the unified, format-agnostic description of one simulation.
type Scenario struct {
	// Rows and Columns size a fresh field. They are zero when the field
	// comes from a snapshot.
	Rows    int
	Columns int
	// Load is a snapshot path to start from instead of an empty field.
	Load string

	Random   *Random
	Patterns []*Pattern
	Cells    []*CellSet

	Run Run
}

// Random fills the whole field from a seeded generator before patterns are placed.
type Random struct {
	Seed uint64
}

// Pattern places a named pattern from the seed catalogue.
type Pattern struct {
	Name   string
	Row    int
	Column int
}

// CellSet places literal cells relative to an origin.
type CellSet struct {
	Row    int
	Column int
	Cells  []Cell
}

// Cell is one coordinate of a CellSet.
type Cell struct {
	Row    int
	Column int
}

// Run controls the generation loop.
type Run struct {
	Generations int
	Stepper     string
	// Workers limits concurrent units in the parallel stepper; 0 means one
	// goroutine per unit.
	Workers int
	// Snapshot is written after the last generation, and every SnapshotEvery
	// generations when that is positive.
	Snapshot      string
	SnapshotEvery int
}

// Parallel reports whether the parallel stepper is selected.
func (r Run) Parallel() bool {
	return r.Stepper == StepperParallel
}

// Validate checks the scenario for contradictions and out-of-range values.
func (s *Scenario) Validate() error {
	var errs []error

	if s.Load != "" {
		if s.Rows != 0 || s.Columns != 0 {
			errs = append(errs, errors.New("field: load cannot be combined with rows/columns"))
		}
		if s.Random != nil {
			errs = append(errs, errors.New("random: cannot fill a loaded snapshot"))
		}
	} else {
		if s.Rows < 1 || s.Rows > math.MaxUint16 {
			errs = append(errs, fmt.Errorf("field: rows must be in [1, %d], got %d", math.MaxUint16, s.Rows))
		}
		if s.Columns < 1 || s.Columns > math.MaxUint16 {
			errs = append(errs, fmt.Errorf("field: columns must be in [1, %d], got %d", math.MaxUint16, s.Columns))
		}
	}

	for _, p := range s.Patterns {
		if p.Name == "" {
			errs = append(errs, errors.New("pattern: name must not be empty"))
		}
	}

	switch s.Run.Stepper {
	case StepperSequential, StepperParallel:
		// valid
	default:
		errs = append(errs, fmt.Errorf("run: stepper must be %q or %q, got %q", StepperSequential, StepperParallel, s.Run.Stepper))
	}
	if s.Run.Generations < 0 {
		errs = append(errs, fmt.Errorf("run: generations must not be negative, got %d", s.Run.Generations))
	}
	if s.Run.Workers < 0 {
		errs = append(errs, fmt.Errorf("run: workers must not be negative, got %d", s.Run.Workers))
	}
	if s.Run.SnapshotEvery < 0 {
		errs = append(errs, fmt.Errorf("run: snapshot_every must not be negative, got %d", s.Run.SnapshotEvery))
	}
	if s.Run.SnapshotEvery > 0 && s.Run.Snapshot == "" {
		errs = append(errs, errors.New("run: snapshot_every needs a snapshot path"))
	}

	return errors.Join(errs...)
}
