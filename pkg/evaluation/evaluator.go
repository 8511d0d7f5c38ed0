package evaluation

import (
	"context"

	"github.com/XiaoConstantine/evo-go/pkg/core"
)

// EvaluateObjectives invokes every objective in list order on one individual
// and concatenates the resulting sub-vectors positionally. Each invocation
// is independently isolated, so one failing objective contributes its
// sentinel and the rest still run; the mixed row is width-repaired later by
// NormalizeScores.
func EvaluateObjectives(ctx context.Context, ind core.Individual, objectives []core.Objective, opts Options) core.ScoreVector {
	var scores core.ScoreVector
	for _, objective := range objectives {
		scores = append(scores, InvokeObjective(ctx, ind, objective, opts)...)
	}
	return scores
}
