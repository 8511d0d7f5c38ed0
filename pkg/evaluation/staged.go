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

// FinalScoreStrategy selects how accumulated step scores reduce to the
// final vector.
type FinalScoreStrategy string

const (
	// FinalScoreMean averages each column across the steps run so far.
	FinalScoreMean FinalScoreStrategy = "mean"
	// FinalScoreLast uses the most recent step's vector.
	FinalScoreLast FinalScoreStrategy = "last"
)

// StagedOptions extends Options with the multi-step knobs.
type StagedOptions struct {
	Options

	// NSteps is the number of refinement steps per individual.
	NSteps int

	// ObjectiveWeights' signs encode optimization direction per column:
	// positive maximizes, negative minimizes. Used only for the
	// early-stop comparison.
	ObjectiveWeights []float64

	// FinalScoreStrategy defaults to FinalScoreMean.
	FinalScoreStrategy FinalScoreStrategy

	// Thresholds holds one comparison target vector per step. When set,
	// the loop stops early once every column of the final vector
	// satisfies its sign-adjusted threshold.
	Thresholds [][]float64
}

// StagedResult pairs the per-step score history with the reduced final
// vector for one individual.
type StagedResult struct {
	AllScores   core.ScoreMatrix
	FinalScores core.ScoreVector
}

// EvaluateStaged evaluates one individual over NSteps sequential steps,
// forwarding the step index to the objectives under the "step" keyword.
// Steps are inherently sequential per individual: each one may represent
// progressive refinement, such as more training iterations. After each step
// the history reduces to a final vector per the strategy, and when
// thresholds are configured the loop terminates as soon as every column
// satisfies its comparison, skipping the remaining steps entirely.
func EvaluateStaged(ctx context.Context, ind core.Individual, objectives []core.Objective, opts StagedOptions) StagedResult {
	strategy := opts.FinalScoreStrategy
	if strategy == "" {
		strategy = FinalScoreMean
	}

	var all core.ScoreMatrix
	var final core.ScoreVector

	for step := 0; step < opts.NSteps; step++ {
		stepOpts := opts.Options
		stepOpts.Args = withStep(opts.Args, step)

		scores := EvaluateObjectives(ctx, ind, objectives, stepOpts)
		all = append(all, scores)

		if strategy == FinalScoreLast {
			final = scores
		} else {
			final = meanScores(all)
		}

		if step < len(opts.Thresholds) && thresholdsMet(final, opts.Thresholds[step], opts.ObjectiveWeights) {
			break
		}
	}

	return StagedResult{AllScores: all, FinalScores: final}
}

// ParallelEvaluateStaged fans EvaluateStaged out over a population, one task
// per individual, preserving input order in the returned results. As with
// ParallelEvaluate, only infrastructure-level aborts surface as errors.
func ParallelEvaluateStaged(ctx context.Context, individuals []core.Individual, objectives []core.Objective, opts StagedOptions) ([]StagedResult, error) {
	if err := errors.CheckContext(ctx, "staged evaluation dispatch"); err != nil {
		return nil, err
	}

	nJobs := opts.NJobs
	if nJobs < 1 {
		nJobs = 1
	}

	ctx = logging.WithBatchID(ctx, uuid.NewString()[:8])
	logger := logging.GetLogger()
	total := len(individuals)

	results := make([]StagedResult, total)
	var done int32

	p := pool.New().WithMaxGoroutines(nJobs)
	for i, ind := range individuals {
		i, ind := i, ind
		p.Go(func() {
			results[i] = EvaluateStaged(ctx, ind, objectives, opts)

			n := int(atomic.AddInt32(&done, 1))
			if opts.Progress != nil {
				opts.Progress.Report("evaluating individuals by steps", n, total)
			} else if opts.Verbose >= 2 {
				logger.Debug(ctx, "evaluated %d/%d individuals", n, total)
			}
		})
	}
	p.Wait()

	if err := errors.CheckContext(ctx, "staged evaluation dispatch"); err != nil {
		return nil, err
	}
	return results, nil
}

// withStep copies the caller args and sets the step index. The copy keeps
// concurrent tasks from racing on a shared map.
func withStep(args map[string]interface{}, step int) map[string]interface{} {
	out := make(map[string]interface{}, len(args)+1)
	for k, v := range args {
		out[k] = v
	}
	out["step"] = step
	return out
}

// meanScores reduces the step history column-wise. Short failure rows are
// first repaired to the widest row's width, so their sentinel fill
// participates per column. A column containing any TIMEOUT reduces to
// TIMEOUT, otherwise any INVALID reduces to INVALID, otherwise to the
// arithmetic mean.
func meanScores(all core.ScoreMatrix) core.ScoreVector {
	width := 0
	for _, row := range all {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return nil
	}

	repaired := make(core.ScoreMatrix, len(all))
	copy(repaired, all)
	repaired = NormalizeScores(repaired, width)

	out := make(core.ScoreVector, width)
	for j := 0; j < width; j++ {
		var sum float64
		var sawTimeout, sawInvalid bool
		for _, row := range repaired {
			switch row[j].Kind {
			case core.ScoreTimeout:
				sawTimeout = true
			case core.ScoreInvalid:
				sawInvalid = true
			default:
				sum += row[j].Float64()
			}
		}
		switch {
		case sawTimeout:
			out[j] = core.Timeout
		case sawInvalid:
			out[j] = core.Invalid
		default:
			out[j] = core.Value(sum / float64(len(repaired)))
		}
	}
	return out
}

// thresholdsMet applies the sign-adjusted early-stop rule: with weight sign
// s, column j satisfies its threshold t when score*s > t*s, so positive
// weights must exceed the target and negative weights must fall below it.
// The rule is a strict conjunction across all compared columns; sentinel
// scores and zero weights never satisfy it. Vectors compare up to the
// shortest length.
func thresholdsMet(final core.ScoreVector, threshold, weights []float64) bool {
	n := len(final)
	if len(threshold) < n {
		n = len(threshold)
	}
	if len(weights) < n {
		n = len(weights)
	}
	if n == 0 {
		return false
	}

	for j := 0; j < n; j++ {
		if final[j].IsSentinel() {
			return false
		}
		var sign float64
		switch {
		case weights[j] > 0:
			sign = 1
		case weights[j] < 0:
			sign = -1
		default:
			return false
		}
		if final[j].Float64()*sign <= threshold[j]*sign {
			return false
		}
	}
	return true
}
