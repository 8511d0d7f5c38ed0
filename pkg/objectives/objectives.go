// Package objectives provides adapters around core.Objective: declaring
// output arity, flipping optimization direction and weighting outputs.
// Objectives remain opaque callables; these wrappers only reshape how their
// outputs enter the score matrix.
package objectives

import (
	"context"

	"github.com/XiaoConstantine/evo-go/pkg/core"
)

// Declared pairs an objective with its declared output arity. The engine
// never inspects arity at call time; declarations exist so callers can
// compute the expected matrix width up front.
type Declared struct {
	Fn       core.Objective
	NOutputs int
}

// Declare attaches an output arity to an objective.
func Declare(fn core.Objective, nOutputs int) Declared {
	return Declared{Fn: fn, NOutputs: nOutputs}
}

// Functions strips declarations back to the bare objective list, in order.
func Functions(list []Declared) []core.Objective {
	out := make([]core.Objective, len(list))
	for i, d := range list {
		out[i] = d.Fn
	}
	return out
}

// ExpectedColumns sums the declared arities, yielding the uniform matrix
// width the dispatcher should repair failure rows to.
func ExpectedColumns(list []Declared) int {
	total := 0
	for _, d := range list {
		total += d.NOutputs
	}
	return total
}

// Negated flips the sign of every output, turning a minimization objective
// into a maximization one and vice versa. Failures pass through untouched.
func Negated(fn core.Objective) core.Objective {
	return Scaled(fn, -1)
}

// Scaled multiplies every output by weight. Failures pass through untouched.
func Scaled(fn core.Objective, weight float64) core.Objective {
	return func(ctx context.Context, ind core.Individual, args map[string]interface{}) (interface{}, error) {
		value, err := fn(ctx, ind, args)
		if err != nil {
			return nil, err
		}
		values, err := core.CoerceScores(value)
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(values))
		for i, v := range values {
			out[i] = v * weight
		}
		return out, nil
	}
}
