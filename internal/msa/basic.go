package msa

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// BasicStatistics is the minimum output of every analysis, computable for
// any non-empty input.
type BasicStatistics struct {
	GrandMean         float64            `json:"grandMean"`
	Variance          float64            `json:"variance"`
	StandardDeviation float64            `json:"standardDeviation"`
	OperatorMeans     map[string]float64 `json:"operatorMeans"`
	TargetMeans       map[string]float64 `json:"targetMeans"`
	TotalCount        int                `json:"totalCount"`
}

// ComputeBasicStatistics returns the grand mean, the Bessel-corrected sample
// variance (0 for a single value), and per-operator and per-target means.
func ComputeBasicStatistics(g *GroupedData) BasicStatistics {
	values := g.Values()
	bs := BasicStatistics{
		OperatorMeans: make(map[string]float64, len(g.Operators)),
		TargetMeans:   make(map[string]float64, len(g.Targets)),
		TotalCount:    len(values),
	}
	if len(values) == 0 {
		return bs
	}

	bs.GrandMean = stat.Mean(values, nil)
	if len(values) > 1 {
		bs.Variance = stat.Variance(values, nil)
	}
	bs.StandardDeviation = math.Sqrt(bs.Variance)

	for _, o := range g.Operators {
		bs.OperatorMeans[o] = stat.Mean(g.OperatorValues(o), nil)
	}
	for _, t := range g.Targets {
		bs.TargetMeans[t] = stat.Mean(g.TargetValues(t), nil)
	}
	return bs
}

// ConfidenceInterval is a two-sided interval for the grand mean.
type ConfidenceInterval struct {
	Level float64 `json:"level"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// MeanConfidenceInterval returns the Student-t interval of the grand mean at
// the given confidence level. With fewer than two values it collapses to the
// mean.
func MeanConfidenceInterval(bs BasicStatistics, level float64) ConfidenceInterval {
	ci := ConfidenceInterval{Level: level, Lower: bs.GrandMean, Upper: bs.GrandMean}
	if bs.TotalCount < 2 {
		return ci
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(bs.TotalCount - 1)}.Quantile(1 - (1-level)/2)
	half := t * bs.StandardDeviation / math.Sqrt(float64(bs.TotalCount))
	ci.Lower = bs.GrandMean - half
	ci.Upper = bs.GrandMean + half
	return ci
}

// DetectOutliers flags durations outside the Tukey fences
// [Q1 - 1.5*IQR, Q3 + 1.5*IQR]. Flagged values stay in the analysis.
func DetectOutliers(g *GroupedData) []Warning {
	values := g.Values()
	if len(values) < 4 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	iqr := q3 - q1
	lo, hi := q1-1.5*iqr, q3+1.5*iqr

	var warnings []Warning
	for _, t := range g.Targets {
		for _, o := range g.Operators {
			for i, v := range g.Cell(t, o) {
				if v < lo || v > hi {
					warnings = append(warnings, Warning{
						Code: WarnOutlier,
						Message: fmt.Sprintf("target %s, operator %s, trial %d: %.4g outside [%.4g, %.4g]",
							t, o, i+1, v, lo, hi),
					})
				}
			}
		}
	}
	return warnings
}
