package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// newEvalContext exposes the field size and a few arithmetic helpers to
// scenario expressions. A field loaded from a snapshot has an unknown size.
func newEvalContext(f *fieldBlock) *hcl.EvalContext {
	rows := cty.UnknownVal(cty.Number)
	columns := cty.UnknownVal(cty.Number)
	if f.Load == "" {
		rows = cty.NumberIntVal(int64(f.Rows))
		columns = cty.NumberIntVal(int64(f.Columns))
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"field": cty.ObjectVal(map[string]cty.Value{
				"rows":    rows,
				"columns": columns,
			}),
		},
		Functions: map[string]function.Function{
			"min": stdlib.MinFunc,
			"max": stdlib.MaxFunc,
			"abs": stdlib.AbsoluteFunc,
		},
	}
}
