package msa

import (
	"testing"

	"github.com/alexanderramin/timestudy/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateVarianceComponents_ReferenceStudy(t *testing.T) {
	g := groupCells(t, referenceStudy)
	a, d, _ := ComputeANOVA(g, ComputeBasicStatistics(g))
	vc, warnings := EstimateVarianceComponents(a, d)

	assert.Empty(t, warnings)
	assert.InDelta(t, 3.0, vc.Equipment, 1e-9)
	assert.InDelta(t, 4.666666667, vc.Interaction, 1e-6)
	assert.InDelta(t, 4.666666667, vc.Operator, 1e-6)
	assert.InDelta(t, 2473.0, vc.Part, 1e-6)
	assert.InDelta(t, vc.Sum(), vc.Total, 1e-12)
}

// Negative raw estimates are replaced by 10% of their magnitude instead of
// being floored at zero. This deliberately deviates from REML so existing
// reports stay reproducible.
func TestEstimateVarianceComponents_NegativeEstimateHeuristic(t *testing.T) {
	g := groupCells(t, testutil.Cells{
		"T1": {"A": {100, 110}, "B": {110, 100}},
		"T2": {"A": {200, 190}, "B": {190, 200}},
	})
	a, d, _ := ComputeANOVA(g, ComputeBasicStatistics(g))
	require.InDelta(t, 50.0, a.EquipmentMS, 1e-9)
	require.InDelta(t, 0.0, a.InteractionMS, 1e-9)

	vc, warnings := EstimateVarianceComponents(a, d)

	// raw interaction = (0 - 50) / 2 = -25 -> 2.5
	assert.InDelta(t, 2.5, vc.Interaction, 1e-9)
	assert.InDelta(t, 0.0, vc.Operator, 1e-9)
	assert.InDelta(t, 4050.0, vc.Part, 1e-9)
	assert.InDelta(t, 50.0, vc.Equipment, 1e-9)

	require.Len(t, warnings, 1)
	assert.Equal(t, WarnNegativeVariance, warnings[0].Code)
	assert.Contains(t, warnings[0].Message, "interaction")
}

func TestEstimateVarianceComponents_AllCorrected(t *testing.T) {
	a := ANOVAResult{PartMS: 1, OperatorMS: 1, InteractionMS: 5, EquipmentMS: 9}
	d := Design{Parts: 2, Operators: 2, Replicates: 2}
	vc, warnings := EstimateVarianceComponents(a, d)

	assert.InDelta(t, 0.2, vc.Interaction, 1e-12) // (5-9)/2 = -2
	assert.InDelta(t, 0.1, vc.Operator, 1e-12)    // (1-5)/4 = -1
	assert.InDelta(t, 0.1, vc.Part, 1e-12)        // (1-5)/4 = -1
	assert.Len(t, warnings, 3)
	for _, c := range []float64{vc.Part, vc.Operator, vc.Interaction, vc.Equipment, vc.Total} {
		assert.GreaterOrEqual(t, c, 0.0)
	}
}

func TestEstimateVarianceComponents_TotalFloor(t *testing.T) {
	vc, warnings := EstimateVarianceComponents(ANOVAResult{}, Design{Parts: 5, Operators: 2, Replicates: 2})
	assert.Empty(t, warnings)
	assert.Equal(t, 0.0, vc.Sum())
	assert.Equal(t, 0.0001, vc.Total)
}
