package core

import (
	"context"
	"reflect"

	"github.com/XiaoConstantine/evo-go/pkg/errors"
)

// Individual is one candidate solution in the search population. The engine
// treats it as opaque; it only needs to be accepted by the caller's
// objectives. Individuals that additionally implement Optimizable can be
// routed through the optimization path.
type Individual interface{}

// Objective scores one individual. It may return a bare number or a slice of
// numbers, may return an error, may panic, and may run unboundedly long; the
// invoker isolates all of that. args carries caller keywords (the staged
// path forwards the current step index under "step").
type Objective func(ctx context.Context, individual Individual, args map[string]interface{}) (interface{}, error)

// Optimizable is the capability interface for individuals that can tune
// their own parameters against an objective. Optimize mutates the individual
// in place and returns a fitness value in the same shapes an Objective may
// return.
type Optimizable interface {
	Optimize(ctx context.Context, objective Objective, steps int) (interface{}, error)
}

// CoerceScores converts an objective's raw return value into a float slice.
// A bare number wraps into a single-element slice; slices and arrays of
// numbers map elementwise. Anything else is a malformed result.
func CoerceScores(value interface{}) ([]float64, error) {
	if value == nil {
		return nil, errors.New(errors.MalformedScore, "objective returned nil")
	}

	if f, ok := toFloat(value); ok {
		return []float64{f}, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]float64, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			f, ok := toFloat(rv.Index(i).Interface())
			if !ok {
				return nil, errors.WithFields(
					errors.New(errors.MalformedScore, "objective returned a non-numeric element"),
					errors.Fields{"index": i})
			}
			out[i] = f
		}
		return out, nil
	}

	return nil, errors.WithFields(
		errors.New(errors.MalformedScore, "objective returned a non-numeric value"),
		errors.Fields{"type": reflect.TypeOf(value).String()})
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case Score:
		if n.Kind != ScoreValue {
			return 0, false
		}
		return n.value, true
	}
	return 0, false
}
