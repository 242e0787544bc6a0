package msa

import (
	"fmt"

	"github.com/alexanderramin/timestudy/internal/domain"
)

// %GRR band limits.
const (
	limitExcellent  = 10.0
	limitAcceptable = 30.0
	limitMarginal   = 50.0
)

// EvaluateStatus maps %GRR to a quality band.
func EvaluateStatus(percent float64) domain.GageStatus {
	switch {
	case percent < limitExcellent:
		return domain.GageExcellent
	case percent < limitAcceptable:
		return domain.GageAcceptable
	case percent < limitMarginal:
		return domain.GageMarginal
	default:
		return domain.GageUnacceptable
	}
}

// Recommendation thresholds.
const (
	minNDC         = 5
	minOperatorICC = 0.7
	maxStableCV    = 30.0
	minReportedGRR = 1e-9
)

// RecommendationInput carries the figures the recommendation rules read.
type RecommendationInput struct {
	Percent         float64
	NDC             int
	ICC             float64
	CV              float64
	Q95             float64
	Repeatability   float64
	Reproducibility float64
	Reliable        bool
	Fallback        FallbackReason
}

// GenerateRecommendations returns the narrative advice for a result. The
// rule order is fixed so identical inputs yield identical lists.
func GenerateRecommendations(in RecommendationInput) []string {
	var recs []string

	if in.Fallback != FallbackNone {
		switch in.Fallback {
		case FallbackSingleOperator:
			recs = append(recs, "Only one operator was timed; have a second operator measure the same targets to assess reproducibility.")
		case FallbackSingleTarget:
			recs = append(recs, "Only one target was timed; measure at least two different work targets to separate part variation.")
		default:
			recs = append(recs, "Too few measurements for a variance decomposition.")
		}
		recs = append(recs, "Collect at least 6 measurements from 2 or more operators across 2 or more targets to run a full Gage R&R study.")
		if in.CV > maxStableCV {
			recs = append(recs, fmt.Sprintf("Variation is high (CV %.1f%%); check that start and stop points are defined consistently.", in.CV))
		}
		return recs
	}

	switch EvaluateStatus(in.Percent) {
	case domain.GageExcellent:
		recs = append(recs, "Measurement system is acceptable; the timing method can be used as is.")
	case domain.GageAcceptable:
		recs = append(recs, "Measurement system is conditionally acceptable; improve it if the times feed critical planning decisions.")
	case domain.GageMarginal:
		recs = append(recs, "Measurement system is marginal; improve the timing method before setting standard times.")
	default:
		recs = append(recs, "Measurement system is unacceptable; the measured times do not reflect real differences between targets.")
	}

	if in.NDC < minNDC {
		recs = append(recs, fmt.Sprintf("Number of distinct categories is %d (below %d); the system cannot reliably tell targets apart.", in.NDC, minNDC))
	}

	if in.Repeatability+in.Reproducibility > minReportedGRR {
		switch {
		case in.Repeatability > in.Reproducibility:
			recs = append(recs, "Repeatability dominates: standardize the stopwatch procedure and equipment, and fix unambiguous start and stop points.")
		case in.Reproducibility > in.Repeatability:
			recs = append(recs, "Reproducibility dominates: train operators on a shared measurement method.")
		default:
			recs = append(recs, "Repeatability and reproducibility contribute equally: review both the equipment and operator training.")
		}
	}

	if in.ICC < minOperatorICC {
		recs = append(recs, fmt.Sprintf("ICC is %.2f (below %.1f); agreement between operators is weak.", in.ICC, minOperatorICC))
	}
	if in.CV > maxStableCV {
		recs = append(recs, fmt.Sprintf("Variation is high (CV %.1f%%); consider splitting the work element into shorter, well-defined steps.", in.CV))
	}

	if in.Reliable {
		recs = append(recs, fmt.Sprintf("Times are reliable for standard-time setting; use Q95 (%.1f) as the planning value.", in.Q95))
	} else {
		recs = append(recs, "Times are not yet reliable for standard-time setting; collect more trials after addressing the points above.")
	}
	return recs
}
