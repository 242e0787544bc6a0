package importer

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if schema.Study != nil {
		if strings.TrimSpace(schema.Study.Name) == "" {
			errs = append(errs, fmt.Errorf("study.name is required"))
		}
	}
	if len(schema.Measurements) == 0 {
		errs = append(errs, fmt.Errorf("measurements: at least one entry is required"))
	}
	for i, m := range schema.Measurements {
		errs = append(errs, validateMeasurement(fmt.Sprintf("measurements[%d]", i), &m)...)
	}
	return errs
}

func validateMeasurement(path string, m *MeasurementImport) []error {
	var errs []error

	if strings.TrimSpace(m.Operator) == "" {
		errs = append(errs, fmt.Errorf("%s.operator is required", path))
	}
	if strings.TrimSpace(m.Target) == "" {
		errs = append(errs, fmt.Errorf("%s.target is required", path))
	}

	switch {
	case m.TimeMs == nil && len(m.TimesMs) == 0:
		errs = append(errs, fmt.Errorf("%s: one of time_ms or times_ms is required", path))
	case m.TimeMs != nil && len(m.TimesMs) > 0:
		errs = append(errs, fmt.Errorf("%s: time_ms and times_ms are mutually exclusive", path))
	case m.TimeMs != nil:
		if err := validateDuration(path+".time_ms", *m.TimeMs); err != nil {
			errs = append(errs, err)
		}
	default:
		for k, v := range m.TimesMs {
			if err := validateDuration(fmt.Sprintf("%s.times_ms[%d]", path, k), v); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if m.RecordedAt != nil {
		if _, err := time.Parse(time.RFC3339, *m.RecordedAt); err != nil {
			errs = append(errs, fmt.Errorf("%s.recorded_at: invalid timestamp %q (expected RFC3339)", path, *m.RecordedAt))
		}
	}
	return errs
}

func validateDuration(path string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: value must be finite", path)
	}
	if v < 0 {
		return fmt.Errorf("%s: %v must be non-negative", path, v)
	}
	return nil
}
