// Package hcl provides the HCL implementation of config.Loader. It is
// responsible for finding and parsing scenario files, evaluating their
// expressions and translating them into the format-agnostic config model.
//
// A scenario is decoded in two passes. The `field` block is read first; its
// size is then exposed to every other block as `field.rows` and
// `field.columns`, together with the `min`, `max` and `abs` functions:
//
//	field {
//	  rows    = 32
//	  columns = 40
//	}
//
//	pattern "glider" {
//	  row    = field.rows - 3
//	  column = max(0, field.columns / 2)
//	}
//
//	cells {
//	  row = 10
//	  at  = [[0, 1], [1, 2], [2, 0], [2, 1], [2, 2]]
//	}
//
//	random {
//	  seed = 12345678
//	}
//
//	run {
//	  generations    = 100
//	  stepper        = "parallel"
//	  snapshot       = "out.gol.zst"
//	  snapshot_every = 25
//	}
//
// When the field comes from a snapshot (`load = "start.gol"`) its size is
// not known while loading, and referring to `field.rows` is an error.
package hcl
