package hcl

import "github.com/hashicorp/hcl/v2"

// fieldRoot is used for the first pass: it only picks up `field` blocks and
// leaves everything else for the second pass.
type fieldRoot struct {
	Fields []*fieldBlock `hcl:"field,block"`
	Remain hcl.Body      `hcl:",remain"`
}

// fieldBlock sizes the grid, or names a snapshot to start from.
type fieldBlock struct {
	Rows    int    `hcl:"rows,optional"`
	Columns int    `hcl:"columns,optional"`
	Load    string `hcl:"load,optional"`
}

// scenarioRoot holds the blocks decoded in the second pass.
type scenarioRoot struct {
	Patterns []*patternBlock `hcl:"pattern,block"`
	Cells    []*cellsBlock   `hcl:"cells,block"`
	Randoms  []*randomBlock  `hcl:"random,block"`
	Runs     []*runBlock     `hcl:"run,block"`
}

// patternBlock places a named pattern from the catalogue.
type patternBlock struct {
	Name   string `hcl:"name,label"`
	Row    int    `hcl:"row,optional"`
	Column int    `hcl:"column,optional"`
}

// cellsBlock places literal cells. `at` is kept as an expression and
// converted separately so that malformed coordinates get a precise message.
type cellsBlock struct {
	Row    int            `hcl:"row,optional"`
	Column int            `hcl:"column,optional"`
	At     hcl.Expression `hcl:"at"`
}

type randomBlock struct {
	Seed int64 `hcl:"seed"`
}

// runBlock controls the generation loop. Pointers distinguish "unset" from zero.
type runBlock struct {
	Generations   *int   `hcl:"generations,optional"`
	Stepper       string `hcl:"stepper,optional"`
	Workers       *int   `hcl:"workers,optional"`
	Snapshot      string `hcl:"snapshot,optional"`
	SnapshotEvery int    `hcl:"snapshot_every,optional"`
}
