package msa

import "errors"

var (
	// ErrInsufficientData indicates fewer than two measurements were supplied.
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// ErrInvalidRecord indicates a malformed measurement (non-finite or
	// negative time, missing operator or target).
	ErrInvalidRecord = errors.New("invalid measurement record")

	// ErrTransform indicates a duration transform produced a non-finite value.
	// The whole transform is rejected.
	ErrTransform = errors.New("duration transform failed")

	// ErrInvalidConfig indicates an unsupported analysis configuration.
	ErrInvalidConfig = errors.New("invalid analysis config")

	// ErrUnbalancedDesign is returned in strict mode when cells differ in
	// trial count.
	ErrUnbalancedDesign = errors.New("unbalanced study design")
)

// WarningCode classifies a non-fatal analysis finding.
type WarningCode string

const (
	WarnDesignImbalance  WarningCode = "design_imbalance"
	WarnNegativeVariance WarningCode = "negative_variance"
	WarnOutlier          WarningCode = "outlier"
)

// Warning is a non-fatal diagnostic attached to a Result.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
