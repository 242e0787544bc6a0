package testutil

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/google/uuid"
)

// BaseTime is the deterministic clock used by fixtures.
var BaseTime = time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)

// Study options
type StudyOption func(*domain.Study)

func WithDescription(d string) StudyOption {
	return func(s *domain.Study) {
		s.Description = d
	}
}

func NewTestStudy(name string, opts ...StudyOption) *domain.Study {
	now := time.Now().UTC()
	s := &domain.Study{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Measurement options
type MeasurementOption func(*domain.Measurement)

func WithRecordedAt(t time.Time) MeasurementOption {
	return func(m *domain.Measurement) {
		m.RecordedAt = t
	}
}

func NewTestMeasurement(studyID, operator, target string, timeMs float64, opts ...MeasurementOption) *domain.Measurement {
	m := &domain.Measurement{
		ID:         uuid.New().String(),
		StudyID:    studyID,
		Operator:   operator,
		Target:     target,
		TimeMs:     timeMs,
		RecordedAt: BaseTime,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Cells maps target -> operator -> trial durations in milliseconds.
type Cells map[string]map[string][]float64

// Measurements flattens cells into measurements ordered by target, operator
// and trial. IDs and timestamps are deterministic so repeated calls produce
// equal slices.
func (c Cells) Measurements(studyID string) []domain.Measurement {
	targets := make([]string, 0, len(c))
	for t := range c {
		targets = append(targets, t)
	}
	sort.Strings(targets)

	var out []domain.Measurement
	for _, t := range targets {
		ops := make([]string, 0, len(c[t]))
		for o := range c[t] {
			ops = append(ops, o)
		}
		sort.Strings(ops)
		for _, o := range ops {
			for _, v := range c[t][o] {
				n := len(out)
				out = append(out, domain.Measurement{
					ID:         uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s/%d", studyID, n))).String(),
					StudyID:    studyID,
					Operator:   o,
					Target:     t,
					TimeMs:     v,
					RecordedAt: BaseTime.Add(time.Duration(n) * time.Minute),
				})
			}
		}
	}
	return out
}

// BalancedCells builds a crossed design where every operator times every
// target `trials` times; value(t, o, k) supplies each duration.
func BalancedCells(targets, operators []string, trials int, value func(t, o, k int) float64) Cells {
	c := make(Cells, len(targets))
	for ti, t := range targets {
		c[t] = make(map[string][]float64, len(operators))
		for oi, o := range operators {
			for k := 0; k < trials; k++ {
				c[t][o] = append(c[t][o], value(ti, oi, k))
			}
		}
	}
	return c
}
