package hcl

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/bitlife/internal/config"
	"github.com/specialistvlad/bitlife/internal/ctxlog"
	"github.com/specialistvlad/bitlife/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL scenario loader.
func NewLoader() *Loader {
	return &Loader{}
}

// parsedFile is a scenario file after the first decoding pass.
type parsedFile struct {
	name   string
	remain hcl.Body
}

// Load parses every .hcl file under paths, decodes the single `field` block,
// then decodes the remaining blocks against it and validates the result.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Scenario, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.ExpandPaths(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var parsed []parsedFile
	var fields []*fieldBlock

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fieldRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode field block in %s: %w", file, diags)
		}
		fields = append(fields, root.Fields...)
		parsed = append(parsed, parsedFile{name: file, remain: root.Remain})
	}

	switch len(fields) {
	case 0:
		return nil, errors.New("scenario has no field block")
	case 1:
	default:
		return nil, fmt.Errorf("scenario has %d field blocks, want exactly one", len(fields))
	}

	fb := fields[0]
	evalCtx := newEvalContext(fb)
	scenario := &config.Scenario{
		Rows:    fb.Rows,
		Columns: fb.Columns,
		Load:    fb.Load,
		Run: config.Run{
			Generations: config.DefaultGenerations,
			Stepper:     config.StepperSequential,
		},
	}

	var randoms []*randomBlock
	var runs []*runBlock
	for _, pf := range parsed {
		var root scenarioRoot
		if diags := gohcl.DecodeBody(pf.remain, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", pf.name, diags)
		}

		for _, p := range root.Patterns {
			scenario.Patterns = append(scenario.Patterns, translatePattern(p))
		}
		for _, c := range root.Cells {
			set, err := translateCells(ctx, c, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("in %s, cells block: %w", pf.name, err)
			}
			scenario.Cells = append(scenario.Cells, set)
		}
		randoms = append(randoms, root.Randoms...)
		runs = append(runs, root.Runs...)
	}

	if len(randoms) > 1 {
		return nil, fmt.Errorf("scenario has %d random blocks, want at most one", len(randoms))
	}
	if len(randoms) == 1 {
		r, err := translateRandom(randoms[0])
		if err != nil {
			return nil, err
		}
		scenario.Random = r
	}

	if len(runs) > 1 {
		return nil, fmt.Errorf("scenario has %d run blocks, want at most one", len(runs))
	}
	if len(runs) == 1 {
		applyRun(&scenario.Run, runs[0])
	}

	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	logger.Debug("HCL loading complete.",
		"rows", scenario.Rows,
		"columns", scenario.Columns,
		"load", scenario.Load,
		"patterns", len(scenario.Patterns),
		"cell_sets", len(scenario.Cells),
	)
	return scenario, nil
}
