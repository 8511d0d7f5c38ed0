package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/XiaoConstantine/evo-go/pkg/core"
)

func TestNormalizeScores(t *testing.T) {
	tests := []struct {
		name   string
		matrix core.ScoreMatrix
		n      int
		want   core.ScoreMatrix
	}{
		{
			name: "full rows untouched",
			matrix: core.ScoreMatrix{
				{core.Value(1), core.Value(2)},
			},
			n: 2,
			want: core.ScoreMatrix{
				{core.Value(1), core.Value(2)},
			},
		},
		{
			name: "short row with timeout becomes all timeout",
			matrix: core.ScoreMatrix{
				{core.Timeout},
			},
			n: 3,
			want: core.ScoreMatrix{
				{core.Timeout, core.Timeout, core.Timeout},
			},
		},
		{
			name: "short row without timeout becomes all invalid",
			matrix: core.ScoreMatrix{
				{core.Invalid},
			},
			n: 3,
			want: core.ScoreMatrix{
				{core.Invalid, core.Invalid, core.Invalid},
			},
		},
		{
			name: "partial row with real values still invalidated whole",
			matrix: core.ScoreMatrix{
				{core.Value(1), core.Invalid},
			},
			n: 3,
			want: core.ScoreMatrix{
				{core.Invalid, core.Invalid, core.Invalid},
			},
		},
		{
			name: "timeout wins over other content in short row",
			matrix: core.ScoreMatrix{
				{core.Value(1), core.Timeout},
			},
			n: 3,
			want: core.ScoreMatrix{
				{core.Timeout, core.Timeout, core.Timeout},
			},
		},
		{
			name: "full-width row with invalid is uniformized",
			matrix: core.ScoreMatrix{
				{core.Invalid, core.Value(2), core.Value(3)},
			},
			n: 3,
			want: core.ScoreMatrix{
				{core.Invalid, core.Invalid, core.Invalid},
			},
		},
		{
			name: "full-width row with timeout is uniformized",
			matrix: core.ScoreMatrix{
				{core.Value(1), core.Timeout, core.Value(3)},
			},
			n: 3,
			want: core.ScoreMatrix{
				{core.Timeout, core.Timeout, core.Timeout},
			},
		},
		{
			name: "over-length rows are not truncated",
			matrix: core.ScoreMatrix{
				{core.Value(1), core.Value(2), core.Value(3)},
			},
			n: 2,
			want: core.ScoreMatrix{
				{core.Value(1), core.Value(2), core.Value(3)},
			},
		},
		{
			name: "mixed matrix",
			matrix: core.ScoreMatrix{
				{core.Value(1), core.Value(2), core.Value(3)},
				{core.Invalid},
				{core.Timeout},
			},
			n: 3,
			want: core.ScoreMatrix{
				{core.Value(1), core.Value(2), core.Value(3)},
				{core.Invalid, core.Invalid, core.Invalid},
				{core.Timeout, core.Timeout, core.Timeout},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeScores(tt.matrix, tt.n)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeScoresIdempotent(t *testing.T) {
	matrix := core.ScoreMatrix{
		{core.Value(1), core.Value(2), core.Value(3)},
		{core.Timeout},
		{core.Invalid},
	}

	once := NormalizeScores(matrix, 3)
	want := make(core.ScoreMatrix, len(once))
	copy(want, once)

	twice := NormalizeScores(once, 3)
	assert.Equal(t, want, twice)
}
