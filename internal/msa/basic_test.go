package msa

import (
	"testing"

	"github.com/alexanderramin/timestudy/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupCells(t *testing.T, c testutil.Cells) *GroupedData {
	t.Helper()
	g, err := GroupMeasurements(c.Measurements("study"))
	require.NoError(t, err)
	return g
}

func TestComputeBasicStatistics(t *testing.T) {
	g := groupCells(t, testutil.Cells{
		"T1": {"A": {2, 4}, "B": {6}},
		"T2": {"A": {8}},
	})
	bs := ComputeBasicStatistics(g)

	assert.Equal(t, 4, bs.TotalCount)
	assert.InDelta(t, 5.0, bs.GrandMean, 1e-12)
	// deviations -3,-1,1,3 -> SS 20 / (n-1) 3
	assert.InDelta(t, 20.0/3, bs.Variance, 1e-12)
	assert.InDelta(t, 2.581988897, bs.StandardDeviation, 1e-9)
	assert.InDelta(t, 14.0/3, bs.OperatorMeans["A"], 1e-12)
	assert.InDelta(t, 6.0, bs.OperatorMeans["B"], 1e-12)
	assert.InDelta(t, 4.0, bs.TargetMeans["T1"], 1e-12)
	assert.InDelta(t, 8.0, bs.TargetMeans["T2"], 1e-12)
}

func TestComputeBasicStatistics_SingleValueHasZeroVariance(t *testing.T) {
	g := groupCells(t, testutil.Cells{"T1": {"A": {42}}})
	bs := ComputeBasicStatistics(g)
	assert.Equal(t, 1, bs.TotalCount)
	assert.Equal(t, 42.0, bs.GrandMean)
	assert.Equal(t, 0.0, bs.Variance)
	assert.Equal(t, 0.0, bs.StandardDeviation)
}

func TestMeanConfidenceInterval(t *testing.T) {
	g := groupCells(t, testutil.Cells{"T1": {"A": {2, 4}, "B": {6, 8}}})
	bs := ComputeBasicStatistics(g)

	ci := MeanConfidenceInterval(bs, 0.95)
	// t(0.975, 3) = 3.182446, s = 2.581989, n = 4
	half := 3.182446305 * bs.StandardDeviation / 2
	assert.Equal(t, 0.95, ci.Level)
	assert.InDelta(t, 5-half, ci.Lower, 1e-6)
	assert.InDelta(t, 5+half, ci.Upper, 1e-6)

	wider := MeanConfidenceInterval(bs, 0.99)
	assert.Less(t, wider.Lower, ci.Lower)
	assert.Greater(t, wider.Upper, ci.Upper)
}

func TestDetectOutliers(t *testing.T) {
	g := groupCells(t, testutil.Cells{
		"T1": {"A": {100, 101, 99, 100}, "B": {102, 98, 100, 400}},
	})
	warnings := DetectOutliers(g)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnOutlier, warnings[0].Code)
	assert.Contains(t, warnings[0].Message, "operator B")
	assert.Contains(t, warnings[0].Message, "trial 4")
}

func TestDetectOutliers_TooFewValues(t *testing.T) {
	g := groupCells(t, testutil.Cells{"T1": {"A": {1, 1000, 2}}})
	assert.Empty(t, DetectOutliers(g))
}
