package app

import (
	"context"

	"github.com/specialistvlad/bitlife/internal/codec"
	"github.com/specialistvlad/bitlife/internal/config"
	"github.com/specialistvlad/bitlife/internal/ctxlog"
	"github.com/specialistvlad/bitlife/internal/field"
	"github.com/specialistvlad/bitlife/internal/seed"
)

// buildField creates the initial generation: a snapshot or an empty grid,
// then the random fill, then patterns and literal cells on top.
func buildField(ctx context.Context, s *config.Scenario) (*field.Field, error) {
	logger := ctxlog.FromContext(ctx)

	var f *field.Field
	if s.Load != "" {
		loaded, err := codec.Load(s.Load)
		if err != nil {
			return nil, err
		}
		f = loaded
		logger.Info("Snapshot loaded.", "path", s.Load, "rows", f.Rows(), "columns", f.Columns())
	} else {
		f = field.New(s.Rows, s.Columns)
	}

	if s.Random != nil {
		seed.Random(f, s.Random.Seed)
		logger.Debug("Field filled randomly.", "seed", s.Random.Seed)
	}

	for _, p := range s.Patterns {
		placed, err := seed.Apply(f, p.Name, p.Row, p.Column)
		if err != nil {
			return nil, err
		}
		logger.Debug("Pattern placed.", "pattern", p.Name, "row", p.Row, "column", p.Column, "cells", placed)
	}

	for i, set := range s.Cells {
		cells := make([]seed.Cell, len(set.Cells))
		for j, c := range set.Cells {
			cells[j] = seed.Cell{Row: c.Row, Column: c.Column}
		}
		placed := seed.Cells(f, set.Row, set.Column, cells)
		if placed != len(cells) {
			logger.Warn("Some cells fell outside the field.", "set", i, "placed", placed, "requested", len(cells))
		}
	}

	if f.Population() == 0 {
		logger.Warn("Field has no live cells.")
	}
	return f, nil
}
