package evaluation

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/XiaoConstantine/evo-go/pkg/core"
	"github.com/XiaoConstantine/evo-go/pkg/errors"
	"github.com/XiaoConstantine/evo-go/pkg/logging"
)

// OptimizeOptions carries the knobs for the in-place optimization path.
type OptimizeOptions struct {
	// Steps is forwarded to Individual.Optimize. Defaults to 5.
	Steps int

	// Timeout is the wall-clock budget per optimize call; zero disables it.
	Timeout time.Duration

	// Verbose gates diagnostics: >=2 failure summaries and first captured
	// warning, >=3 stack traces.
	Verbose int

	// NJobs sizes the dispatcher worker pool.
	NJobs int
}

// OptimizeIndividual asks one individual to tune its own parameters against
// the objective, mutating it in place, and returns the fitness it reported.
// The same isolation discipline as InvokeObjective applies: a blown budget
// resolves to [TIMEOUT], any other failure to [INVALID], and nothing
// propagates. Individuals without the Optimizable capability resolve to
// [INVALID]. Callers that want the historical NaN surface of this path can
// read the vector through ScoreVector.Float64s.
func OptimizeIndividual(ctx context.Context, ind core.Individual, objective core.Objective, opts OptimizeOptions) core.ScoreVector {
	logger := logging.GetLogger()

	opt, ok := ind.(core.Optimizable)
	if !ok {
		if opts.Verbose >= 2 {
			logger.Warn(ctx, "individual does not support optimization: %v",
				errors.New(errors.NotOptimizable, "missing Optimizable capability"))
		}
		return core.ScoreVector{core.Invalid}
	}

	steps := opts.Steps
	if steps <= 0 {
		steps = 5
	}

	ctx, rec := CaptureWarnings(ctx)

	var out outcome
	if opts.Timeout <= 0 {
		out = callOptimize(ctx, opt, objective, steps)
	} else {
		cctx, cancel := context.WithTimeout(ctx, opts.Timeout)
		defer cancel()

		ch := make(chan outcome, 1)
		go func() {
			ch <- callOptimize(cctx, opt, objective, steps)
		}()

		select {
		case out = <-ch:
			if out.err != nil && cctx.Err() != nil {
				if opts.Verbose >= 2 {
					logger.Warn(ctx, "optimize call abandoned after %v", opts.Timeout)
				}
				return core.ScoreVector{core.Timeout}
			}
		case <-cctx.Done():
			if opts.Verbose >= 2 {
				logger.Warn(ctx, "optimize call abandoned after %v", opts.Timeout)
			}
			return core.ScoreVector{core.Timeout}
		}
	}

	if out.err == nil {
		var values []float64
		values, out.err = core.CoerceScores(out.value)
		if out.err == nil {
			if first, ok := rec.First(); ok && opts.Verbose >= 2 {
				logger.Warn(ctx, "optimize warning: %s", first)
			}
			scores := make(core.ScoreVector, len(values))
			for i, v := range values {
				scores[i] = core.Value(v)
			}
			return scores
		}
	}

	if opts.Verbose >= 3 && out.stack != nil {
		logger.Warn(ctx, "individual failed optimization: %v\n%s", out.err, out.stack)
	} else if opts.Verbose >= 2 {
		logger.Warn(ctx, "individual failed optimization: %v", out.err)
	}
	return core.ScoreVector{core.Invalid}
}

// callOptimize mirrors callObjective for the optimization capability.
func callOptimize(ctx context.Context, opt core.Optimizable, objective core.Objective, steps int) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome{
				err: errors.WithFields(
					errors.New(errors.ObjectivePanicked, "optimize panicked"),
					errors.Fields{"panic": r}),
				stack: debug.Stack(),
			}
		}
	}()
	value, err := opt.Optimize(ctx, objective, steps)
	return outcome{value: value, err: err}
}

// ParallelOptimize fans OptimizeIndividual out over a population. This path
// is fire and forget: its effect is the in-place mutation of each
// individual, and reported fitness values are discarded by design. No two
// tasks may target the same individual instance. Only infrastructure-level
// aborts surface as errors.
func ParallelOptimize(ctx context.Context, individuals []core.Individual, objective core.Objective, opts OptimizeOptions) error {
	if err := errors.CheckContext(ctx, "optimization dispatch"); err != nil {
		return err
	}

	nJobs := opts.NJobs
	if nJobs < 1 {
		nJobs = 1
	}

	ctx = logging.WithBatchID(ctx, uuid.NewString()[:8])

	p := pool.New().WithMaxGoroutines(nJobs)
	for _, ind := range individuals {
		ind := ind
		p.Go(func() {
			OptimizeIndividual(ctx, ind, objective, opts)
		})
	}
	p.Wait()

	return errors.CheckContext(ctx, "optimization dispatch")
}
