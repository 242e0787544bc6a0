package msa

import (
	"fmt"
	"math"

	"github.com/alexanderramin/timestudy/internal/domain"
)

func transformFunc(kind domain.Transform) (func(float64) float64, error) {
	switch kind {
	case "", domain.TransformNone:
		return func(x float64) float64 { return x }, nil
	case domain.TransformLn:
		return func(x float64) float64 { return math.Log(math.Max(x, 1)) }, nil
	case domain.TransformLog10:
		return func(x float64) float64 { return math.Log10(math.Max(x, 1)) }, nil
	case domain.TransformSqrt:
		return func(x float64) float64 { return math.Sqrt(math.Max(x, 0)) }, nil
	default:
		return nil, fmt.Errorf("transform %q: %w", kind, ErrInvalidConfig)
	}
}

// TransformMeasurements returns a copy of ms with every TimeMs replaced by
// f(TimeMs). The input slice is not modified. If any single value does not
// transform to a finite number, no result is returned.
func TransformMeasurements(ms []domain.Measurement, kind domain.Transform) ([]domain.Measurement, error) {
	f, err := transformFunc(kind)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Measurement, len(ms))
	for i, m := range ms {
		v := f(m.TimeMs)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("record %d: %s(%v) is not finite: %w", i, kind, m.TimeMs, ErrTransform)
		}
		out[i] = m
		out[i].TimeMs = v
	}
	return out, nil
}
