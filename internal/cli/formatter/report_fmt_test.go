package formatter

import (
	"testing"

	"github.com/alexanderramin/timestudy/internal/contract"
	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/alexanderramin/timestudy/internal/msa"
	"github.com/alexanderramin/timestudy/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyze(t *testing.T, cells testutil.Cells, cfg msa.Config) *contract.AnalysisResponse {
	t.Helper()
	ms := cells.Measurements("s1")
	res, err := msa.Analyze(ms, cfg)
	require.NoError(t, err)
	return &contract.AnalysisResponse{
		Study:            &domain.Study{ID: "s1", Name: "Picking"},
		MeasurementCount: len(ms),
		Result:           res,
	}
}

func TestFormatAnalysis_FullStudy(t *testing.T) {
	resp := analyze(t, testutil.Cells{
		"T1": {"A": {100, 102}, "B": {104, 106}},
		"T2": {"A": {200, 198}, "B": {205, 207}},
		"T3": {"A": {150, 152}, "B": {149, 153}},
	}, msa.Config{})

	out := FormatAnalysis(resp)
	assert.Contains(t, out, "GAGE R&R: PICKING")
	assert.Contains(t, out, "EXCELLENT")
	assert.Contains(t, out, "7.0%")
	assert.Contains(t, out, "ANOVA")
	assert.Contains(t, out, "19808.6667")
	assert.Contains(t, out, "Repeatability (EV)")
	assert.Contains(t, out, "Variable")
	assert.Contains(t, out, "12 measurements, 3 targets × 2 operators, up to 2 trials")
	assert.NotContains(t, out, "basic analysis")
}

func TestFormatAnalysis_FallbackOmitsANOVA(t *testing.T) {
	resp := analyze(t, testutil.Cells{"T1": {"A": {100, 110, 105}}}, msa.Config{})

	out := FormatAnalysis(resp)
	assert.Contains(t, out, "basic analysis: too few measurements")
	assert.Contains(t, out, "UNACCEPTABLE")
	assert.NotContains(t, out, "ANOVA")
	assert.Contains(t, out, "RECOMMENDATIONS")
}

func TestFormatAnalysis_TransformAndWarnings(t *testing.T) {
	resp := analyze(t, testutil.Cells{
		"T1": {"A": {100, 102, 101}, "B": {104, 106}},
		"T2": {"A": {200, 198}, "B": {205, 207}},
	}, msa.Config{Transform: domain.TransformLn})

	out := FormatAnalysis(resp)
	assert.Contains(t, out, "analysed on the ln scale")
	assert.Contains(t, out, "(unbalanced)")
	assert.Contains(t, out, "design_imbalance")
}

func TestFormatStudyList(t *testing.T) {
	assert.Equal(t, "No studies found.\n", FormatStudyList(nil))

	out := FormatStudyList([]StudySummary{{
		Study:            testutil.NewTestStudy("Packing", testutil.WithDescription("Outbound")),
		MeasurementCount: 12,
	}})
	assert.Contains(t, out, "Packing")
	assert.Contains(t, out, "12")
	assert.Contains(t, out, "Outbound")
}

func TestFormatMeasurementList(t *testing.T) {
	study := testutil.NewTestStudy("Picking")
	m := testutil.NewTestMeasurement(study.ID, "Alice", "Shelf 4", 1534)

	out := FormatMeasurementList(study, []*domain.Measurement{m})
	assert.Contains(t, out, "Picking (1 trials)")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "1.53 s")

	assert.Contains(t, FormatMeasurementList(study, nil), "No measurements")
}

func TestFormatLaps(t *testing.T) {
	out := FormatLaps("A", "T1", []float64{850, 1200})
	assert.Contains(t, out, "Recorded 2 trial(s) for A on T1")
	assert.Contains(t, out, " 1. 850 ms")
	assert.Contains(t, out, " 2. 1.20 s")
}
