package msa

import (
	"fmt"
	"math"
)

// VarianceComponents are the expected-mean-square estimates of each source
// of variation. Every component is non-negative.
type VarianceComponents struct {
	Part        float64 `json:"part"`
	Operator    float64 `json:"operator"`
	Interaction float64 `json:"interaction"`
	Equipment   float64 `json:"equipment"`
	Total       float64 `json:"total"`
}

// Sum returns the unfloored sum of the four components.
func (vc VarianceComponents) Sum() float64 {
	return vc.Part + vc.Operator + vc.Interaction + vc.Equipment
}

const (
	// negativeVarianceFactor scales the magnitude of a negative raw estimate.
	// This is a heuristic, not a REML solution; existing reports depend on it.
	negativeVarianceFactor = 0.1

	// minTotalVariance keeps downstream ratios finite.
	minTotalVariance = 0.0001
)

// EstimateVarianceComponents converts ANOVA mean squares into variance
// components. A negative raw estimate is replaced by 10% of its magnitude
// and reported as a warning.
func EstimateVarianceComponents(a ANOVAResult, d Design) (VarianceComponents, []Warning) {
	p := float64(max(1, d.Parts))
	o := float64(max(1, d.Operators))
	r := float64(max(1, d.Replicates))

	var warnings []Warning
	correct := func(name string, raw float64) float64 {
		if raw >= 0 {
			return raw
		}
		fixed := math.Max(0, math.Abs(raw)*negativeVarianceFactor)
		warnings = append(warnings, Warning{
			Code:    WarnNegativeVariance,
			Message: fmt.Sprintf("%s variance estimate %.6g is negative; corrected to %.6g", name, raw, fixed),
		})
		return fixed
	}

	vc := VarianceComponents{Equipment: math.Max(0, a.EquipmentMS)}
	vc.Interaction = correct("interaction", (a.InteractionMS-a.EquipmentMS)/r)
	vc.Operator = correct("operator", (a.OperatorMS-a.InteractionMS)/(p*r))
	vc.Part = correct("part", (a.PartMS-a.InteractionMS)/(o*r))
	vc.Total = math.Max(minTotalVariance, vc.Sum())

	return vc, warnings
}
