package evaluation

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/XiaoConstantine/evo-go/pkg/core"
	"github.com/XiaoConstantine/evo-go/pkg/errors"
	"github.com/XiaoConstantine/evo-go/pkg/logging"
)

// Options carries the knobs shared by the evaluation call paths.
type Options struct {
	// Timeout is the wall-clock budget per objective call. Zero means the
	// call runs in the caller's goroutine with no budget.
	Timeout time.Duration

	// Verbose gates operator diagnostics: >=2 progress, >=4 failure
	// summaries and first captured warning, >=5 stack traces.
	Verbose int

	// NJobs sizes the dispatcher worker pool. Values below 1 mean 1.
	NJobs int

	// NExpectedColumns, when positive, makes the dispatcher repair the
	// collected matrix to this width before returning it.
	NExpectedColumns int

	// Progress, when set, receives completion updates from the
	// dispatchers in place of verbosity-gated log lines.
	Progress core.ProgressReporter

	// Args is forwarded to every objective call.
	Args map[string]interface{}
}

type outcome struct {
	value interface{}
	err   error
	stack []byte
}

// callObjective runs one objective with panic isolation. A panic is turned
// into an ObjectivePanicked error carrying the recovered value and stack.
func callObjective(ctx context.Context, ind core.Individual, objective core.Objective, args map[string]interface{}) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome{
				err: errors.WithFields(
					errors.New(errors.ObjectivePanicked, "objective panicked"),
					errors.Fields{"panic": r}),
				stack: debug.Stack(),
			}
		}
	}()
	value, err := objective(ctx, ind, args)
	return outcome{value: value, err: err}
}

// InvokeObjective calls one objective on one individual under the configured
// time budget and returns its score vector. Every per-call failure is
// absorbed here: a blown budget resolves to [TIMEOUT], and a panic, error or
// malformed result resolves to [INVALID]. Nothing propagates, which is what
// lets one broken individual coexist with thousands of healthy ones in the
// same batch. Width reconciliation of the single-element sentinel rows
// happens later in NormalizeScores.
//
// Timeout is by abandonment: the in-flight call keeps running in its
// goroutine until it returns on its own, but its result is discarded. The
// buffered outcome channel lets the abandoned goroutine exit once it
// finishes.
func InvokeObjective(ctx context.Context, ind core.Individual, objective core.Objective, opts Options) core.ScoreVector {
	logger := logging.GetLogger()
	ctx, rec := CaptureWarnings(ctx)

	var out outcome
	if opts.Timeout <= 0 {
		out = callObjective(ctx, ind, objective, opts.Args)
	} else {
		cctx, cancel := context.WithTimeout(ctx, opts.Timeout)
		defer cancel()

		ch := make(chan outcome, 1)
		go func() {
			ch <- callObjective(cctx, ind, objective, opts.Args)
		}()

		select {
		case out = <-ch:
			// The call may have unwound with an error exactly as the
			// budget elapsed; that is still a timeout
			if out.err != nil && cctx.Err() != nil {
				if opts.Verbose >= 4 {
					logger.Warn(ctx, "objective call abandoned after %v", opts.Timeout)
				}
				return core.ScoreVector{core.Timeout}
			}
		case <-cctx.Done():
			if opts.Verbose >= 4 {
				logger.Warn(ctx, "objective call abandoned after %v", opts.Timeout)
			}
			return core.ScoreVector{core.Timeout}
		}
	}

	if out.err != nil {
		logFailure(ctx, logger, out, opts.Verbose)
		return core.ScoreVector{core.Invalid}
	}

	values, err := core.CoerceScores(out.value)
	if err != nil {
		logFailure(ctx, logger, outcome{err: err}, opts.Verbose)
		return core.ScoreVector{core.Invalid}
	}

	if first, ok := rec.First(); ok && opts.Verbose >= 4 {
		logger.Warn(ctx, "objective warning: %s", first)
	}

	scores := make(core.ScoreVector, len(values))
	for i, v := range values {
		scores[i] = core.Value(v)
	}
	return scores
}

// logFailure emits the verbosity-gated failure diagnostics: a summary at
// exactly level 4, summary plus stack trace at 5 and above.
func logFailure(ctx context.Context, logger *logging.Logger, out outcome, verbose int) {
	if verbose < 4 {
		return
	}
	if verbose >= 5 && out.stack != nil {
		logger.Warn(ctx, "individual failed evaluation: %v\n%s", out.err, out.stack)
		return
	}
	logger.Warn(ctx, "individual failed evaluation: %v", out.err)
}
