package evaluation

import (
	"github.com/XiaoConstantine/evo-go/pkg/core"
)

// NormalizeScores repairs failure rows to a uniform width of n columns. A
// row is repaired when it is shorter than n or contains a sentinel
// anywhere: if it holds a TIMEOUT it becomes n copies of TIMEOUT, otherwise
// n copies of INVALID. A call that died mid-computation may have left a
// partial, inconsistent prefix, and an objective that failed leaves its
// neighbors' outputs meaningless for ranking, so the whole row is
// invalidated rather than trusted. Healthy rows of at least n values are
// untouched; over-length rows are caller error and are not truncated. The
// matrix is modified in place and returned. Repairing is idempotent.
func NormalizeScores(scores core.ScoreMatrix, n int) core.ScoreMatrix {
	for i, row := range scores {
		fill, needsRepair := repairFill(row, n)
		if !needsRepair {
			continue
		}
		repaired := make(core.ScoreVector, n)
		for j := range repaired {
			repaired[j] = fill
		}
		scores[i] = repaired
	}
	return scores
}

func repairFill(row core.ScoreVector, n int) (core.Score, bool) {
	if row.Contains(core.ScoreTimeout) {
		return core.Timeout, true
	}
	if len(row) < n || row.Contains(core.ScoreInvalid) {
		return core.Invalid, true
	}
	return core.Invalid, false
}
