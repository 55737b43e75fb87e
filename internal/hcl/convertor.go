package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/bitlife/internal/config"
	"github.com/specialistvlad/bitlife/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// coordinateListType is what an `at` attribute must convert to.
var coordinateListType = cty.List(cty.List(cty.Number))

// decodeCoordinates evaluates an `at` expression into a list of cells. Each
// element must be a two-number [row, column] pair.
func decodeCoordinates(ctx context.Context, expr hcl.Expression, evalCtx *hcl.EvalContext) ([]config.Cell, error) {
	logger := ctxlog.FromContext(ctx)

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("coordinates depend on values that are not known yet")
	}

	converted, err := convert.Convert(val, coordinateListType)
	if err != nil {
		return nil, fmt.Errorf("cannot convert %s to a list of [row, column] pairs: %w", val.Type().FriendlyName(), err)
	}
	if !val.Type().Equals(converted.Type()) {
		logger.Debug("Implicitly converted coordinates.",
			"from", val.Type().FriendlyName(),
			"to", converted.Type().FriendlyName(),
		)
	}

	var pairs [][]int
	if err := gocty.FromCtyValue(converted, &pairs); err != nil {
		return nil, fmt.Errorf("invalid coordinates: %w", err)
	}

	cells := make([]config.Cell, 0, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("coordinate %d has %d elements, want [row, column]", i, len(p))
		}
		cells = append(cells, config.Cell{Row: p[0], Column: p[1]})
	}
	return cells, nil
}
