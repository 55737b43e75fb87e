package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/bitlife/internal/config"
)

// translatePattern converts a pattern block into the agnostic model.
func translatePattern(p *patternBlock) *config.Pattern {
	return &config.Pattern{Name: p.Name, Row: p.Row, Column: p.Column}
}

// translateCells converts a cells block, evaluating its coordinates.
func translateCells(ctx context.Context, c *cellsBlock, evalCtx *hcl.EvalContext) (*config.CellSet, error) {
	cells, err := decodeCoordinates(ctx, c.At, evalCtx)
	if err != nil {
		return nil, err
	}
	return &config.CellSet{Row: c.Row, Column: c.Column, Cells: cells}, nil
}

func translateRandom(r *randomBlock) (*config.Random, error) {
	if r.Seed < 0 {
		return nil, fmt.Errorf("random: seed must not be negative, got %d", r.Seed)
	}
	return &config.Random{Seed: uint64(r.Seed)}, nil
}

// applyRun overlays the attributes present in a run block onto the defaults.
func applyRun(dst *config.Run, r *runBlock) {
	if r.Generations != nil {
		dst.Generations = *r.Generations
	}
	if r.Stepper != "" {
		dst.Stepper = r.Stepper
	}
	if r.Workers != nil {
		dst.Workers = *r.Workers
	}
	dst.Snapshot = r.Snapshot
	dst.SnapshotEvery = r.SnapshotEvery
}
