package msa

import (
	"fmt"
	"math"
)

// studySpread is the number of standard deviations spanned by a study
// variation (99.73% of a normal distribution).
const studySpread = 6.0

// GageRRMetrics are the study variations (6 sigma) derived from the variance
// components.
type GageRRMetrics struct {
	Repeatability   float64
	Reproducibility float64
	PartVariation   float64
	GageRR          float64
	TotalVariation  float64
	Percent         float64
	NDC             int
}

// ComputeGageRR combines variance components into repeatability (EV),
// reproducibility (AV), part variation (PV), GRR, total variation and %GRR.
func ComputeGageRR(vc VarianceComponents) GageRRMetrics {
	m := GageRRMetrics{
		Repeatability:   studySpread * math.Sqrt(vc.Equipment),
		Reproducibility: studySpread * math.Sqrt(math.Max(0, vc.Operator+vc.Interaction)),
		PartVariation:   studySpread * math.Sqrt(vc.Part),
	}
	m.GageRR = math.Hypot(m.Repeatability, m.Reproducibility)
	m.TotalVariation = math.Hypot(m.GageRR, m.PartVariation)
	if m.TotalVariation > 0 {
		m.Percent = clamp(100*m.GageRR/m.TotalVariation, 0, 100)
	}
	m.NDC = NumberOfDistinctCategories(m.PartVariation, m.GageRR)
	return m
}

const (
	ndcFactor = 1.41
	// maxNDC caps NDC when the gage contributes no variation at all.
	maxNDC = 100
)

// NumberOfDistinctCategories returns floor(1.41 * PV / GRR), clamped to
// [0, maxNDC].
func NumberOfDistinctCategories(partVariation, gageRR float64) int {
	if gageRR <= 0 {
		if partVariation > 0 {
			return maxNDC
		}
		return 0
	}
	ndc := math.Floor(ndcFactor * partVariation / gageRR)
	return int(clamp(ndc, 0, maxNDC))
}

// defaultToleranceFraction is the half-width of the default tolerance band
// around the grand mean when no specification limits are configured.
const defaultToleranceFraction = 0.15

// maxCpk caps Cpk when the process shows no variation.
const maxCpk = 10.0

// SpecLimits resolves the configured specification limits, defaulting each
// missing limit to mean -/+ 15%. A band that ends up empty or inverted
// because of a configured limit is an ErrInvalidConfig.
func SpecLimits(cfg Config, mean float64) (lsl, usl float64, err error) {
	lsl = mean * (1 - defaultToleranceFraction)
	usl = mean * (1 + defaultToleranceFraction)
	if cfg.LowerSpecLimit != nil {
		lsl = *cfg.LowerSpecLimit
	}
	if cfg.UpperSpecLimit != nil {
		usl = *cfg.UpperSpecLimit
	}
	configured := cfg.LowerSpecLimit != nil || cfg.UpperSpecLimit != nil
	if configured && lsl >= usl {
		return 0, 0, fmt.Errorf("spec limits [%v, %v] around mean %v are inverted: %w", lsl, usl, mean, ErrInvalidConfig)
	}
	return lsl, usl, nil
}

// PrecisionToTolerance returns the P/T ratio in percent.
func PrecisionToTolerance(gageRR, lsl, usl float64) float64 {
	tol := usl - lsl
	if tol <= 0 {
		return 0
	}
	return 100 * gageRR / tol
}

// ProcessCapability returns Cpk = min(USL-mean, mean-LSL) / (3 sigma),
// clamped to [-maxCpk, maxCpk].
func ProcessCapability(mean, sigma, lsl, usl float64) float64 {
	nearest := math.Min(usl-mean, mean-lsl)
	if sigma <= 0 {
		if nearest >= 0 {
			return maxCpk
		}
		return -maxCpk
	}
	return clamp(nearest/(3*sigma), -maxCpk, maxCpk)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
