package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timestudy/internal/domain"
)

// StudySummary is a study with its measurement count for listing.
type StudySummary struct {
	Study            *domain.Study
	MeasurementCount int
}

// FormatStudyList renders the studies table.
func FormatStudyList(studies []StudySummary) string {
	if len(studies) == 0 {
		return "No studies found.\n"
	}
	rows := make([][]string, 0, len(studies))
	for _, s := range studies {
		desc := s.Study.Description
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		rows = append(rows, []string{
			TruncID(s.Study.ID),
			Bold(s.Study.Name),
			fmt.Sprintf("%d", s.MeasurementCount),
			HumanDate(s.Study.CreatedAt),
			Dim(desc),
		})
	}
	return RenderBox("Studies", RenderNumericTable(
		[]string{"ID", "NAME", "TRIALS", "CREATED", "DESCRIPTION"}, rows, []int{2})) + "\n"
}

// FormatMeasurementList renders a study's measurements grouped visually by
// target and operator in recording order.
func FormatMeasurementList(study *domain.Study, ms []*domain.Measurement) string {
	if len(ms) == 0 {
		return fmt.Sprintf("No measurements recorded for %s.\n", study.Name)
	}
	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, []string{
			TruncID(m.ID),
			m.Target,
			m.Operator,
			FormatDurationMs(m.TimeMs),
			Dim(HumanTimestamp(m.RecordedAt)),
		})
	}
	title := fmt.Sprintf("%s (%d trials)", study.Name, len(ms))
	return RenderBox(title, RenderNumericTable(
		[]string{"ID", "TARGET", "OPERATOR", "TIME", "RECORDED"}, rows, []int{3})) + "\n"
}

// FormatLaps renders trials timed in one stopwatch session.
func FormatLaps(operator, target string, laps []float64) string {
	if len(laps) == 0 {
		return "No trials recorded.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Recorded %d trial(s) for %s on %s:\n", len(laps), operator, target)
	for i, l := range laps {
		fmt.Fprintf(&b, "  %2d. %s\n", i+1, FormatDurationMs(l))
	}
	return b.String()
}
