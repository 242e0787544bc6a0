package msa

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/alexanderramin/timestudy/internal/domain"
)

// Minimum design for a full Gage R&R; anything smaller takes the basic path.
const (
	minMeasurements     = 2
	minFullMeasurements = 6
	minFullOperators    = 2
	minFullTargets      = 2
)

// DefaultConfidenceLevel is used when Config.ConfidenceLevel is zero.
const DefaultConfidenceLevel = 0.95

var validConfidenceLevels = map[float64]bool{0.90: true, 0.95: true, 0.99: true}

// Config controls a single analysis.
type Config struct {
	Transform        domain.Transform
	StrictMode       bool
	ConfidenceLevel  float64
	OutlierDetection bool
	LowerSpecLimit   *float64
	UpperSpecLimit   *float64
}

func (c Config) normalized() (Config, error) {
	if c.Transform == "" {
		c.Transform = domain.TransformNone
	}
	if !domain.ValidTransforms[c.Transform] {
		return c, fmt.Errorf("transform %q: %w", c.Transform, ErrInvalidConfig)
	}
	if c.ConfidenceLevel == 0 {
		c.ConfidenceLevel = DefaultConfidenceLevel
	}
	if !validConfidenceLevels[c.ConfidenceLevel] {
		return c, fmt.Errorf("confidence level %v (expected 0.90, 0.95 or 0.99): %w", c.ConfidenceLevel, ErrInvalidConfig)
	}
	if c.LowerSpecLimit != nil && c.UpperSpecLimit != nil && *c.LowerSpecLimit >= *c.UpperSpecLimit {
		return c, fmt.Errorf("lower spec limit %v must be below upper %v: %w", *c.LowerSpecLimit, *c.UpperSpecLimit, ErrInvalidConfig)
	}
	return c, nil
}

// FallbackReason names why the basic analysis replaced the full study.
type FallbackReason string

const (
	FallbackNone                FallbackReason = ""
	FallbackInsufficientSamples FallbackReason = "insufficient_samples"
	FallbackSingleOperator      FallbackReason = "single_operator"
	FallbackSingleTarget        FallbackReason = "single_target"
)

// Result is the Gage R&R report. It is built once per Analyze call and
// shares no memory with the input or with other results.
type Result struct {
	GageRRPercent   float64 `json:"gageRRPercent"`
	Repeatability   float64 `json:"repeatability"`
	Reproducibility float64 `json:"reproducibility"`
	PartVariation   float64 `json:"partVariation"`
	TotalVariation  float64 `json:"totalVariation"`
	GageRR          float64 `json:"gageRR"`

	NDC     int     `json:"ndc"`
	PTRatio float64 `json:"ptRatio"`
	Cpk     float64 `json:"cpk"`

	ICC                   float64  `json:"icc"`
	CV                    float64  `json:"cv"`
	Q95                   float64  `json:"q95"`
	Q99                   float64  `json:"q99"`
	Q999                  float64  `json:"q999"`
	WorkType              WorkType `json:"workType"`
	IsReliableForStandard bool     `json:"isReliableForStandard"`

	Status domain.GageStatus `json:"status"`

	ANOVA              ANOVAResult        `json:"anova"`
	VarianceComponents VarianceComponents `json:"varianceComponents"`
	Design             Design             `json:"design"`
	BasicStatistics    BasicStatistics    `json:"basicStatistics"`
	MeanCI             ConfidenceInterval `json:"meanConfidenceInterval"`

	Recommendations []string         `json:"recommendations"`
	Warnings        []Warning        `json:"warnings,omitempty"`
	Fallback        FallbackReason   `json:"fallback,omitempty"`
	Transform       domain.Transform `json:"transform"`
}

// Analyzer runs Gage R&R analyses. It holds no per-call state and is safe
// for concurrent use.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates an Analyzer that reports warnings to logger.
// A nil logger discards them.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Analyzer{logger: logger}
}

// Analyze runs the analysis with a discarding logger.
func Analyze(ms []domain.Measurement, cfg Config) (*Result, error) {
	return NewAnalyzer(nil).Analyze(ms, cfg)
}

// Analyze validates, transforms and groups ms, then runs either the full
// ANOVA-based Gage R&R or, for degenerate designs, the basic analysis.
func (a *Analyzer) Analyze(ms []domain.Measurement, cfg Config) (*Result, error) {
	if len(ms) < minMeasurements {
		return nil, fmt.Errorf("%d measurements, need at least %d: %w", len(ms), minMeasurements, ErrInsufficientData)
	}
	cfg, err := cfg.normalized()
	if err != nil {
		return nil, err
	}
	for i, m := range ms {
		if err := ValidateMeasurement(i, m); err != nil {
			return nil, err
		}
	}

	transformed, err := TransformMeasurements(ms, cfg.Transform)
	if err != nil {
		return nil, err
	}
	grouped, err := GroupMeasurements(transformed)
	if err != nil {
		return nil, err
	}
	basic := ComputeBasicStatistics(grouped)

	var warnings []Warning
	if cfg.OutlierDetection {
		warnings = append(warnings, DetectOutliers(grouped)...)
	}

	lsl, usl, err := SpecLimits(cfg, basic.GrandMean)
	if err != nil {
		return nil, err
	}

	var res *Result
	if reason := fallbackReason(grouped); reason != FallbackNone {
		res = basicAnalysis(grouped, basic, lsl, usl, reason)
	} else {
		res, err = fullAnalysis(grouped, basic, cfg, lsl, usl)
		if err != nil {
			return nil, err
		}
	}
	res.Warnings = append(warnings, res.Warnings...)
	res.MeanCI = MeanConfidenceInterval(basic, cfg.ConfidenceLevel)
	res.Transform = cfg.Transform

	a.logResult(res)
	return res, nil
}

func fallbackReason(g *GroupedData) FallbackReason {
	switch {
	case g.Count() < minFullMeasurements:
		return FallbackInsufficientSamples
	case len(g.Operators) < minFullOperators:
		return FallbackSingleOperator
	case len(g.Targets) < minFullTargets:
		return FallbackSingleTarget
	}
	return FallbackNone
}

func fullAnalysis(g *GroupedData, basic BasicStatistics, cfg Config, lsl, usl float64) (*Result, error) {
	anova, design, warnings := ComputeANOVA(g, basic)
	if cfg.StrictMode && !design.Balanced {
		return nil, fmt.Errorf("%d targets x %d operators with up to %d trials: %w",
			design.Parts, design.Operators, design.Replicates, ErrUnbalancedDesign)
	}
	vc, vcWarnings := EstimateVarianceComponents(anova, design)
	warnings = append(warnings, vcWarnings...)

	grr := ComputeGageRR(vc)
	sigma := math.Sqrt(vc.Sum())
	idx := ComputeWorkTimeIndices(basic.GrandMean, sigma, ComputeICC(anova, design))

	res := &Result{
		GageRRPercent:         grr.Percent,
		Repeatability:         grr.Repeatability,
		Reproducibility:       grr.Reproducibility,
		PartVariation:         grr.PartVariation,
		TotalVariation:        grr.TotalVariation,
		GageRR:                grr.GageRR,
		NDC:                   grr.NDC,
		PTRatio:               PrecisionToTolerance(grr.GageRR, lsl, usl),
		Cpk:                   ProcessCapability(basic.GrandMean, sigma, lsl, usl),
		ICC:                   idx.ICC,
		CV:                    idx.CV,
		Q95:                   idx.Q95,
		Q99:                   idx.Q99,
		Q999:                  idx.Q999,
		WorkType:              idx.WorkType,
		IsReliableForStandard: idx.IsReliableForStandard,
		Status:                EvaluateStatus(grr.Percent),
		ANOVA:                 anova,
		VarianceComponents:    vc,
		Design:                design,
		BasicStatistics:       basic,
		Warnings:              warnings,
	}
	res.Recommendations = GenerateRecommendations(RecommendationInput{
		Percent:         res.GageRRPercent,
		NDC:             res.NDC,
		ICC:             res.ICC,
		CV:              res.CV,
		Q95:             res.Q95,
		Repeatability:   res.Repeatability,
		Reproducibility: res.Reproducibility,
		Reliable:        res.IsReliableForStandard,
	})
	return res, nil
}

// basicAnalysis attributes all observed variation to the measurement system:
// %GRR is fixed at 100 and the indices come from the one-sample statistics.
func basicAnalysis(g *GroupedData, basic BasicStatistics, lsl, usl float64, reason FallbackReason) *Result {
	sd := basic.StandardDeviation
	idx := ComputeWorkTimeIndices(basic.GrandMean, sd, 0)

	status := domain.GageMarginal
	if len(g.Operators) < minFullOperators {
		status = domain.GageUnacceptable
	}

	spread := studySpread * sd
	res := &Result{
		GageRRPercent:         100,
		Repeatability:         spread,
		TotalVariation:        spread,
		GageRR:                spread,
		PTRatio:               PrecisionToTolerance(spread, lsl, usl),
		Cpk:                   ProcessCapability(basic.GrandMean, sd, lsl, usl),
		CV:                    idx.CV,
		Q95:                   idx.Q95,
		Q99:                   idx.Q99,
		Q999:                  idx.Q999,
		WorkType:              idx.WorkType,
		IsReliableForStandard: false,
		Status:                status,
		VarianceComponents: VarianceComponents{
			Equipment: basic.Variance,
			Total:     math.Max(minTotalVariance, basic.Variance),
		},
		Design:          StudyDesign(g),
		BasicStatistics: basic,
		Fallback:        reason,
	}
	res.Recommendations = GenerateRecommendations(RecommendationInput{
		CV:       res.CV,
		Fallback: reason,
	})
	return res
}

func (a *Analyzer) logResult(res *Result) {
	ctx := context.Background()
	for _, w := range res.Warnings {
		a.logger.WarnContext(ctx, "msa_warning", "code", string(w.Code), "message", w.Message)
	}
	a.logger.DebugContext(ctx, "msa_analysis",
		"count", res.BasicStatistics.TotalCount,
		"fallback", string(res.Fallback),
		"grr_pct", res.GageRRPercent,
		"status", string(res.Status),
	)
}
