package evaluation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XiaoConstantine/evo-go/pkg/core"
	"github.com/XiaoConstantine/evo-go/pkg/errors"
)

// identityObjective scores each individual by its own integer value, which
// makes row ordering observable.
func identityObjective(ctx context.Context, ind core.Individual, args map[string]interface{}) (interface{}, error) {
	return float64(ind.(int)), nil
}

func TestParallelEvaluateOrdering(t *testing.T) {
	individuals := make([]core.Individual, 20)
	for i := range individuals {
		individuals[i] = i
	}

	// Later individuals finish first, exercising out-of-order completion
	slowIdentity := func(ctx context.Context, ind core.Individual, args map[string]interface{}) (interface{}, error) {
		time.Sleep(time.Duration(20-ind.(int)) * time.Millisecond)
		return float64(ind.(int)), nil
	}

	matrix, err := ParallelEvaluate(context.Background(), individuals, []core.Objective{slowIdentity}, Options{NJobs: 8})
	require.NoError(t, err)
	require.Len(t, matrix, 20)

	for i, row := range matrix {
		assert.Equal(t, core.ScoreVector{core.Value(float64(i))}, row, "row %d must match input position", i)
	}
}

func TestParallelEvaluateJobCountEquivalence(t *testing.T) {
	individuals := []core.Individual{0, 1, 2, 3, 4, 5, 6, 7}
	objectives := []core.Objective{identityObjective, vectorObjective(2, 3)}

	serial, err := ParallelEvaluate(context.Background(), individuals, objectives, Options{NJobs: 1})
	require.NoError(t, err)

	parallel, err := ParallelEvaluate(context.Background(), individuals, objectives, Options{NJobs: 4})
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestParallelEvaluateFailureIsolation(t *testing.T) {
	// obj1 fails only for individual B; obj2 always succeeds
	obj1 := func(ctx context.Context, ind core.Individual, args map[string]interface{}) (interface{}, error) {
		if ind.(string) == "B" {
			return nil, errors.New(errors.ObjectiveFailed, "B is broken")
		}
		return 1.0, nil
	}
	obj2 := vectorObjective(2, 3)

	matrix, err := ParallelEvaluate(context.Background(),
		[]core.Individual{"A", "B", "C"},
		[]core.Objective{obj1, obj2},
		Options{NJobs: 4, NExpectedColumns: 3})
	require.NoError(t, err)

	want := core.ScoreMatrix{
		{core.Value(1), core.Value(2), core.Value(3)},
		{core.Invalid, core.Invalid, core.Invalid},
		{core.Value(1), core.Value(2), core.Value(3)},
	}
	assert.Equal(t, want, matrix)
}

func TestParallelEvaluateTimeoutRowNormalization(t *testing.T) {
	hang := func(ctx context.Context, ind core.Individual, args map[string]interface{}) (interface{}, error) {
		if ind.(string) == "slow" {
			time.Sleep(time.Second)
		}
		return 1.0, nil
	}

	matrix, err := ParallelEvaluate(context.Background(),
		[]core.Individual{"fast", "slow"},
		[]core.Objective{hang, vectorObjective(2)},
		Options{NJobs: 2, Timeout: 50 * time.Millisecond, NExpectedColumns: 2})
	require.NoError(t, err)

	assert.Equal(t, core.ScoreVector{core.Value(1), core.Value(2)}, matrix[0])
	assert.Equal(t, core.ScoreVector{core.Timeout, core.Timeout}, matrix[1])
}

func TestParallelEvaluateCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParallelEvaluate(ctx, []core.Individual{1, 2}, []core.Objective{identityObjective}, Options{})
	require.Error(t, err)

	var coded *errors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, errors.Canceled, coded.Code())
}

func TestParallelEvaluateEmptyPopulation(t *testing.T) {
	matrix, err := ParallelEvaluate(context.Background(), nil, []core.Objective{identityObjective}, Options{})
	require.NoError(t, err)
	assert.Empty(t, matrix)
}

type recordingReporter struct {
	mu      sync.Mutex
	stages  []string
	reports int
	final   int
	total   int
}

func (r *recordingReporter) Report(stage string, processed, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, stage)
	r.reports++
	if processed > r.final {
		r.final = processed
	}
	r.total = total
}

func TestParallelEvaluateProgressReporting(t *testing.T) {
	individuals := []core.Individual{0, 1, 2, 3}
	reporter := &recordingReporter{}

	_, err := ParallelEvaluate(context.Background(), individuals, []core.Objective{identityObjective}, Options{
		NJobs:    2,
		Progress: reporter,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, reporter.reports)
	assert.Equal(t, 4, reporter.final)
	assert.Equal(t, 4, reporter.total)
	assert.Equal(t, "evaluating individuals", reporter.stages[0])
}
