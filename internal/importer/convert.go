package importer

import (
	"strings"
	"time"

	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/google/uuid"
)

// Convert turns a validated ImportSchema into measurements of studyID.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
//
// Rows without recorded_at are stamped now, one microsecond apart in file
// order, so listing them back preserves that order.
func Convert(schema *ImportSchema, studyID string, now time.Time) []*domain.Measurement {
	var out []*domain.Measurement
	for _, row := range schema.Measurements {
		values := row.TimesMs
		if row.TimeMs != nil {
			values = []float64{*row.TimeMs}
		}

		var stamp *time.Time
		if row.RecordedAt != nil {
			if t, err := time.Parse(time.RFC3339, *row.RecordedAt); err == nil {
				stamp = &t
			}
		}

		for _, v := range values {
			recordedAt := now.Add(time.Duration(len(out)) * time.Microsecond)
			if stamp != nil {
				recordedAt = *stamp
			}
			out = append(out, &domain.Measurement{
				ID:         uuid.New().String(),
				StudyID:    studyID,
				Operator:   strings.TrimSpace(row.Operator),
				Target:     strings.TrimSpace(row.Target),
				TimeMs:     v,
				RecordedAt: recordedAt.UTC(),
			})
		}
	}
	return out
}
