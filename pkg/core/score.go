package core

import (
	"fmt"
	"math"
)

// ScoreKind tags a Score as a real number or one of the failure sentinels.
type ScoreKind int

const (
	// ScoreValue is a finite real score produced by an objective.
	ScoreValue ScoreKind = iota
	// ScoreTimeout marks a call that exceeded its time budget.
	ScoreTimeout
	// ScoreInvalid marks a call that panicked, errored or produced a
	// malformed result.
	ScoreInvalid
)

// Score is a single fitness value. Sentinels are distinct tags, never NaN,
// so they stay distinguishable from real numbers through aggregation.
type Score struct {
	Kind  ScoreKind
	value float64
}

// Timeout and Invalid are the two failure sentinels. Downstream selection
// must treat both as maximally unfit regardless of objective direction.
var (
	Timeout = Score{Kind: ScoreTimeout}
	Invalid = Score{Kind: ScoreInvalid}
)

// Value wraps a finite real number as a Score.
func Value(v float64) Score {
	return Score{Kind: ScoreValue, value: v}
}

// Float64 returns the numeric value, or NaN for either sentinel. This is the
// bridge for consumers that want a plain float surface.
func (s Score) Float64() float64 {
	if s.Kind != ScoreValue {
		return math.NaN()
	}
	return s.value
}

// IsSentinel reports whether s is a TIMEOUT or INVALID marker.
func (s Score) IsSentinel() bool {
	return s.Kind != ScoreValue
}

func (s Score) String() string {
	switch s.Kind {
	case ScoreTimeout:
		return "TIMEOUT"
	case ScoreInvalid:
		return "INVALID"
	default:
		return fmt.Sprintf("%g", s.value)
	}
}

// ScoreVector is one individual's ordered scores, one contiguous slice per
// objective in objective-list order.
type ScoreVector []Score

// Contains reports whether any element has the given kind.
func (v ScoreVector) Contains(kind ScoreKind) bool {
	for _, s := range v {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

// Float64s renders the vector as plain floats, sentinels becoming NaN.
func (v ScoreVector) Float64s() []float64 {
	out := make([]float64, len(v))
	for i, s := range v {
		out[i] = s.Float64()
	}
	return out
}

// ScoreMatrix holds one ScoreVector per individual, in population order.
type ScoreMatrix []ScoreVector
