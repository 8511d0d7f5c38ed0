package testutil

import (
	"context"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"github.com/XiaoConstantine/evo-go/pkg/core"
)

// MockObjective is a testify mock for core.Objective.
type MockObjective struct {
	mock.Mock
}

func (m *MockObjective) Evaluate(ctx context.Context, ind core.Individual, args map[string]interface{}) (interface{}, error) {
	mockArgs := m.Called(ctx, ind, args)
	return mockArgs.Get(0), mockArgs.Error(1)
}

// Fn adapts the mock to the plain function type the engine consumes.
func (m *MockObjective) Fn() core.Objective {
	return m.Evaluate
}

// CountingObjective wraps an objective and counts invocations, for asserting
// how many calls a dispatch or an early-stopped staged loop actually made.
type CountingObjective struct {
	calls int64
	fn    core.Objective
}

func NewCountingObjective(fn core.Objective) *CountingObjective {
	return &CountingObjective{fn: fn}
}

func (c *CountingObjective) Fn() core.Objective {
	return func(ctx context.Context, ind core.Individual, args map[string]interface{}) (interface{}, error) {
		atomic.AddInt64(&c.calls, 1)
		return c.fn(ctx, ind, args)
	}
}

func (c *CountingObjective) Calls() int {
	return int(atomic.LoadInt64(&c.calls))
}

// TunableIndividual is a minimal Optimizable individual: each Optimize call
// nudges its parameter by one per step and reports the result.
type TunableIndividual struct {
	Param float64
}

func (t *TunableIndividual) Optimize(ctx context.Context, objective core.Objective, steps int) (interface{}, error) {
	for i := 0; i < steps; i++ {
		t.Param++
	}
	return t.Param, nil
}
