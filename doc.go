// Package evo is a fault-tolerant, parallel fitness-evaluation engine for
// population-based search. It evaluates populations of candidate solutions
// ("individuals") against one or more objective functions, where any single
// evaluation may hang, panic, return garbage, or be cancelled mid-flight,
// without ever letting one bad individual corrupt the population's score
// matrix or halt the search.
//
// Key Components:
//
//   - Core: the data model shared by every layer. Individuals are opaque
//     values, objectives are plain functions returning one or several
//     numbers, and scores are tagged values that stay distinguishable from
//     real numbers through every aggregation step (TIMEOUT and INVALID
//     sentinels rather than NaN).
//
//   - Evaluation: the engine itself:
//     * InvokeObjective: calls one objective on one individual under a
//       wall-clock budget, isolating panics, errors and warnings
//     * EvaluateObjectives: concatenates the outputs of an objective list
//       into a single score vector per individual
//     * ParallelEvaluate: fans evaluation out over a population and collects
//       an input-ordered score matrix, repairing ragged failure rows to a
//       uniform width
//     * EvaluateStaged / ParallelEvaluateStaged: multi-step evaluation with
//       mean/last reduction and sign-adjusted early stopping against
//       per-step thresholds
//     * OptimizeIndividual / ParallelOptimize: an isolated call path for
//       individuals that can tune their own parameters in place
//
//   - Objectives: adapters for declaring output arity, flipping optimization
//     direction and weighting objective outputs.
//
// Simple Example:
//
//	import (
//	    "context"
//	    "fmt"
//	    "time"
//
//	    "github.com/XiaoConstantine/evo-go/pkg/core"
//	    "github.com/XiaoConstantine/evo-go/pkg/evaluation"
//	)
//
//	func main() {
//	    accuracy := func(ctx context.Context, ind core.Individual, args map[string]interface{}) (interface{}, error) {
//	        return scorePipeline(ind), nil
//	    }
//
//	    matrix, err := evaluation.ParallelEvaluate(context.Background(),
//	        population,
//	        []core.Objective{accuracy},
//	        evaluation.Options{
//	            NJobs:            4,
//	            Timeout:          30 * time.Second,
//	            NExpectedColumns: 1,
//	        })
//	    if err != nil {
//	        // only infrastructure-level failures surface here; a broken
//	        // individual resolves to a sentinel row instead
//	        panic(err)
//	    }
//	    fmt.Println(matrix)
//	}
//
// Failure semantics: a call that exceeds its time budget resolves to a row
// of TIMEOUT sentinels, any other per-call failure resolves to INVALID, and
// neither ever propagates as an error. The returned matrix is always
// well-formed and input-ordered regardless of how many individuals failed;
// downstream selection treats sentinel rows as maximally unfit.
//
// For more examples and detailed documentation, visit:
// https://github.com/XiaoConstantine/evo-go
package evo
