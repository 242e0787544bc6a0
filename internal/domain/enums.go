package domain

import "fmt"

// GageStatus is the quality band of a measurement system, derived from %GRR.
type GageStatus string

const (
	GageExcellent    GageStatus = "excellent"
	GageAcceptable   GageStatus = "acceptable"
	GageMarginal     GageStatus = "marginal"
	GageUnacceptable GageStatus = "unacceptable"
)

// Transform is a monotonic transform applied to durations before analysis.
type Transform string

const (
	TransformNone  Transform = "none"
	TransformLn    Transform = "ln"
	TransformLog10 Transform = "log10"
	TransformSqrt  Transform = "sqrt"
)

// ValidTransforms is the canonical set of accepted transform names.
var ValidTransforms = map[Transform]bool{
	TransformNone: true, TransformLn: true, TransformLog10: true, TransformSqrt: true,
}

// ParseTransform maps a user-supplied name to a Transform. The empty string
// means no transform.
func ParseTransform(s string) (Transform, error) {
	if s == "" {
		return TransformNone, nil
	}
	t := Transform(s)
	if !ValidTransforms[t] {
		return "", fmt.Errorf("unknown transform %q (expected none, ln, log10 or sqrt)", s)
	}
	return t, nil
}
