package evaluation

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/XiaoConstantine/evo-go/pkg/core"
	"github.com/XiaoConstantine/evo-go/pkg/errors"
	"github.com/XiaoConstantine/evo-go/pkg/logging"
)

// ParallelEvaluate fans EvaluateObjectives out over a population with one
// independent task per individual and collects an input-ordered score
// matrix: result[i] always corresponds to individuals[i] regardless of
// completion order. A failing individual resolves to a sentinel row and
// never fails the dispatch; the returned error is reserved for
// infrastructure-level aborts (context cancellation or deadline). When
// opts.NExpectedColumns is positive the matrix is width-repaired before it
// is returned.
func ParallelEvaluate(ctx context.Context, individuals []core.Individual, objectives []core.Objective, opts Options) (core.ScoreMatrix, error) {
	if err := errors.CheckContext(ctx, "evaluation dispatch"); err != nil {
		return nil, err
	}

	nJobs := opts.NJobs
	if nJobs < 1 {
		nJobs = 1
	}

	ctx = logging.WithBatchID(ctx, uuid.NewString()[:8])
	logger := logging.GetLogger()
	total := len(individuals)

	results := make(core.ScoreMatrix, total)
	var done int32

	p := pool.New().WithMaxGoroutines(nJobs)
	for i, ind := range individuals {
		i, ind := i, ind
		p.Go(func() {
			results[i] = EvaluateObjectives(ctx, ind, objectives, opts)

			n := int(atomic.AddInt32(&done, 1))
			if opts.Progress != nil {
				opts.Progress.Report("evaluating individuals", n, total)
			} else if opts.Verbose >= 2 {
				logger.Debug(ctx, "evaluated %d/%d individuals", n, total)
			}
		})
	}
	p.Wait()

	if err := errors.CheckContext(ctx, "evaluation dispatch"); err != nil {
		return nil, err
	}

	if opts.NExpectedColumns > 0 {
		results = NormalizeScores(results, opts.NExpectedColumns)
	}
	return results, nil
}
