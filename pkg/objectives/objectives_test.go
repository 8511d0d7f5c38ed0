package objectives

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XiaoConstantine/evo-go/pkg/core"
)

func constantObjective(values ...float64) core.Objective {
	return func(ctx context.Context, ind core.Individual, args map[string]interface{}) (interface{}, error) {
		return values, nil
	}
}

func TestExpectedColumns(t *testing.T) {
	list := []Declared{
		Declare(constantObjective(1), 1),
		Declare(constantObjective(2, 3), 2),
	}

	assert.Equal(t, 3, ExpectedColumns(list))
	assert.Len(t, Functions(list), 2)
}

func TestNegated(t *testing.T) {
	fn := Negated(constantObjective(2, -3))

	value, err := fn(context.Background(), nil, nil)
	require.NoError(t, err)

	values, err := core.CoerceScores(value)
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, 3}, values)
}

func TestScaled(t *testing.T) {
	fn := Scaled(constantObjective(4), 0.5)

	value, err := fn(context.Background(), nil, nil)
	require.NoError(t, err)

	values, err := core.CoerceScores(value)
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, values)
}

func TestScaledScalarResult(t *testing.T) {
	scalar := func(ctx context.Context, ind core.Individual, args map[string]interface{}) (interface{}, error) {
		return 5, nil
	}

	value, err := Scaled(scalar, 2)(context.Background(), nil, nil)
	require.NoError(t, err)

	values, err := core.CoerceScores(value)
	require.NoError(t, err)
	assert.Equal(t, []float64{10}, values)
}

func TestScaledPropagatesFailure(t *testing.T) {
	bad := func(ctx context.Context, ind core.Individual, args map[string]interface{}) (interface{}, error) {
		return "not a number", nil
	}

	_, err := Scaled(bad, 2)(context.Background(), nil, nil)
	assert.Error(t, err)
}
