package msa

import "math"

// WorkType is the auto-detected character of the timed work.
type WorkType string

const (
	WorkStandardized WorkType = "standardized"
	WorkRoutine      WorkType = "routine"
	WorkVariable     WorkType = "variable"
	WorkIrregular    WorkType = "irregular"
)

// workTypeRule detects a work type from (CV, ICC) and carries the limits a
// study of that type must meet before its times can become standard times.
type workTypeRule struct {
	Type   WorkType
	MaxCV  float64
	MinICC float64
	// Reliability thresholds.
	CVLimit  float64
	ICCLimit float64
}

var workTypeRules = []workTypeRule{
	{Type: WorkStandardized, MaxCV: 10, MinICC: 0.8, CVLimit: 15, ICCLimit: 0.75},
	{Type: WorkRoutine, MaxCV: 20, MinICC: 0.6, CVLimit: 25, ICCLimit: 0.6},
	{Type: WorkVariable, MaxCV: 35, MinICC: 0.4, CVLimit: 35, ICCLimit: 0.5},
}

var irregularRule = workTypeRule{Type: WorkIrregular, CVLimit: 50, ICCLimit: 0.4}

func detectRule(cv, icc float64) workTypeRule {
	for _, r := range workTypeRules {
		if cv <= r.MaxCV && icc >= r.MinICC {
			return r
		}
	}
	return irregularRule
}

// DetectWorkType returns the first work type whose CV ceiling and ICC floor
// the study meets.
func DetectWorkType(cv, icc float64) WorkType {
	return detectRule(cv, icc).Type
}

// z quantiles of the standard normal distribution.
const (
	z95  = 1.645
	z99  = 2.326
	z999 = 3.090
)

// percentileSafetyFactor widens percentile estimates conservatively.
const percentileSafetyFactor = 1.2

// WorkTimeIndices are the logistics-specific reliability figures.
type WorkTimeIndices struct {
	ICC                   float64
	CV                    float64
	Q95                   float64
	Q99                   float64
	Q999                  float64
	WorkType              WorkType
	IsReliableForStandard bool
}

// ComputeICC returns the intraclass correlation of targets across operators,
// clamped to [0, 1]. A zero denominator yields 0.
func ComputeICC(a ANOVAResult, d Design) float64 {
	p := float64(max(1, d.Parts))
	o := float64(d.Operators)
	den := a.PartMS + (o-1)*a.EquipmentMS + o*math.Max(0, a.OperatorMS-a.EquipmentMS)/p
	if den <= 0 {
		return 0
	}
	return clamp((a.PartMS-a.EquipmentMS)/den, 0, 1)
}

// ComputeWorkTimeIndices derives CV, the percentile time estimates and the
// standard-time reliability flag from the mean, a total standard deviation
// and the ICC.
func ComputeWorkTimeIndices(mean, sigma, icc float64) WorkTimeIndices {
	idx := WorkTimeIndices{ICC: icc}
	if mean != 0 {
		idx.CV = 100 * sigma / mean
	}
	spread := sigma * percentileSafetyFactor
	idx.Q95 = mean + z95*spread
	idx.Q99 = mean + z99*spread
	idx.Q999 = mean + z999*spread

	rule := detectRule(idx.CV, icc)
	idx.WorkType = rule.Type
	idx.IsReliableForStandard = idx.CV <= rule.CVLimit && icc >= rule.ICCLimit
	return idx
}
