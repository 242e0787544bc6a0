package msa

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Design describes the shape of a crossed target x operator study.
type Design struct {
	Parts      int  `json:"parts"`
	Operators  int  `json:"operators"`
	Replicates int  `json:"replicates"`
	Balanced   bool `json:"balanced"`
}

// ANOVAResult is the two-factor ANOVA table with interaction.
type ANOVAResult struct {
	PartSS        float64 `json:"partSS"`
	OperatorSS    float64 `json:"operatorSS"`
	InteractionSS float64 `json:"interactionSS"`
	EquipmentSS   float64 `json:"equipmentSS"`
	TotalSS       float64 `json:"totalSS"`

	PartDF        int `json:"partDF"`
	OperatorDF    int `json:"operatorDF"`
	InteractionDF int `json:"interactionDF"`
	EquipmentDF   int `json:"equipmentDF"`

	PartMS        float64 `json:"partMS"`
	OperatorMS    float64 `json:"operatorMS"`
	InteractionMS float64 `json:"interactionMS"`
	EquipmentMS   float64 `json:"equipmentMS"`

	FStatistic float64 `json:"fStatistic"`
	// PValue is the coarse table approximation; PValueExact is the
	// F-distribution survival probability.
	PValue      float64 `json:"pValue"`
	PValueExact float64 `json:"pValueExact"`
}

// residualTolerance snaps a residual SS within floating error of zero to
// exactly zero.
const residualTolerance = 1e-10

// StudyDesign derives p, o and r from the grouped data. r is the largest
// trial count in any cell; the design is balanced only if every
// target/operator cell holds exactly r trials.
func StudyDesign(g *GroupedData) Design {
	d := Design{Parts: len(g.Targets), Operators: len(g.Operators), Balanced: true}
	for _, t := range g.Targets {
		for _, o := range g.Operators {
			d.Replicates = max(d.Replicates, len(g.Cell(t, o)))
		}
	}
	for _, t := range g.Targets {
		for _, o := range g.Operators {
			if len(g.Cell(t, o)) != d.Replicates {
				d.Balanced = false
			}
		}
	}
	return d
}

// ComputeANOVA decomposes the total sum of squares into part, operator,
// interaction and equipment (residual) effects.
func ComputeANOVA(g *GroupedData, bs BasicStatistics) (ANOVAResult, Design, []Warning) {
	d := StudyDesign(g)
	var warnings []Warning
	if !d.Balanced {
		warnings = append(warnings, Warning{
			Code:    WarnDesignImbalance,
			Message: fmt.Sprintf("cells differ in trial count; using r=%d", d.Replicates),
		})
	}

	gm := bs.GrandMean
	var a ANOVAResult

	for _, t := range g.Targets {
		n := float64(len(g.TargetValues(t)))
		diff := bs.TargetMeans[t] - gm
		a.PartSS += n * diff * diff
	}
	for _, o := range g.Operators {
		n := float64(len(g.OperatorValues(o)))
		diff := bs.OperatorMeans[o] - gm
		a.OperatorSS += n * diff * diff
	}
	for _, t := range g.Targets {
		for _, o := range g.Operators {
			cell := g.Cell(t, o)
			if len(cell) == 0 {
				continue
			}
			dev := stat.Mean(cell, nil) - bs.TargetMeans[t] - bs.OperatorMeans[o] + gm
			a.InteractionSS += float64(len(cell)) * dev * dev
		}
	}
	for _, x := range g.Values() {
		diff := x - gm
		a.TotalSS += diff * diff
	}

	a.EquipmentSS = math.Max(0, a.TotalSS-a.PartSS-a.OperatorSS-a.InteractionSS)
	if a.EquipmentSS <= residualTolerance*a.TotalSS {
		a.EquipmentSS = 0
	}

	p, o := d.Parts, d.Operators
	a.PartDF = max(1, p-1)
	a.OperatorDF = max(1, o-1)
	a.InteractionDF = 1
	if p > 1 && o > 1 {
		a.InteractionDF = max(1, (p-1)*(o-1))
	}
	a.EquipmentDF = max(1, p*o*max(1, d.Replicates-1))

	a.PartMS = a.PartSS / float64(a.PartDF)
	a.OperatorMS = a.OperatorSS / float64(a.OperatorDF)
	a.InteractionMS = a.InteractionSS / float64(a.InteractionDF)
	a.EquipmentMS = a.EquipmentSS / float64(a.EquipmentDF)

	if a.EquipmentMS > 0 {
		a.FStatistic = a.PartMS / a.EquipmentMS
	}
	a.PValue = ApproximatePValue(a.FStatistic, a.EquipmentDF)
	a.PValueExact = exactPValue(a.FStatistic, a.PartDF, a.EquipmentDF)

	return a, d, warnings
}

// criticalF holds approximate critical F values for moderate degrees of
// freedom, ordered from the strictest significance level.
var criticalF = []struct {
	alpha float64
	value float64
}{
	{0.001, 8.25},
	{0.01, 5.39},
	{0.05, 3.29},
	{0.10, 2.49},
}

// smallSampleDF is the equipment DF below which critical values are raised.
const (
	smallSampleDF     = 15
	smallSampleFactor = 1.2
)

// ApproximatePValue maps an F statistic to a coarse p-value. It returns the
// smallest tabulated alpha whose critical value F exceeds; below the 0.10
// critical value it interpolates linearly from 0.5 (F=0) to 0.1.
func ApproximatePValue(f float64, equipmentDF int) float64 {
	adjust := 1.0
	if equipmentDF < smallSampleDF {
		adjust = smallSampleFactor
	}
	for _, c := range criticalF {
		if f > c.value*adjust {
			return c.alpha
		}
	}

	crit := criticalF[len(criticalF)-1].value * adjust
	p := 0.5 - (f/crit)*(0.5-0.1)
	return math.Min(0.5, math.Max(0.1, p))
}

func exactPValue(f float64, df1, df2 int) float64 {
	if f <= 0 {
		return 1
	}
	return distuv.F{D1: float64(df1), D2: float64(df2)}.Survival(f)
}
