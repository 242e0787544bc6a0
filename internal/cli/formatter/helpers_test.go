package formatter

import (
	"math"
	"testing"
	"time"

	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/alexanderramin/timestudy/internal/msa"
	"github.com/stretchr/testify/assert"
)

func TestHumanDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", HumanDateFrom(now.Add(-3*time.Hour), now))
	assert.Equal(t, "Yesterday", HumanDateFrom(now.Add(-24*time.Hour), now))
	assert.Equal(t, "Sep 30, 2022", HumanDateFrom(time.Date(2022, 9, 30, 0, 0, 0, 0, time.UTC), now))
}

func TestHumanTimestampFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"just now", now.Add(-10 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-2 * time.Hour), "2h ago"},
		{"days fall back to date", now.Add(-72 * time.Hour), "Feb 4, 2026"},
		{"future", now.Add(48 * time.Hour), "Feb 9, 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestampFrom(tt.input, now))
		})
	}
}

func TestTruncID(t *testing.T) {
	got := TruncID("a1b2c3d4-e5f6-7890-abcd-ef1234567890")
	assert.Contains(t, got, "a1b2c3d4")
	assert.NotContains(t, got, "e5f6")

	assert.Contains(t, TruncID("short"), "short")
}

func TestFormatDurationMs(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0 ms"},
		{850.4, "850 ms"},
		{1234, "1.23 s"},
		{59_990, "59.99 s"},
		{125_300, "2m 05.3s"},
		{-1, "--"},
		{math.NaN(), "--"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDurationMs(tt.input))
		})
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1234.57", FormatValue(1234.5678, false))
	assert.Equal(t, "7.1185", FormatValue(7.11853, true))
}

func TestStatusIndicator(t *testing.T) {
	tests := []struct {
		status   domain.GageStatus
		contains string
	}{
		{domain.GageExcellent, "EXCELLENT"},
		{domain.GageAcceptable, "ACCEPTABLE"},
		{domain.GageMarginal, "MARGINAL"},
		{domain.GageUnacceptable, "UNACCEPTABLE"},
		{"", "UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			assert.Contains(t, StatusIndicator(tt.status), tt.contains)
		})
	}
}

func TestWorkTypeBadge(t *testing.T) {
	assert.Contains(t, WorkTypeBadge(msa.WorkRoutine), "Routine")
	assert.Contains(t, WorkTypeBadge(""), "--")
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("TEST", "content here")
	assert.Contains(t, result, "TEST")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

func TestRenderBoxWithoutTitle(t *testing.T) {
	result := RenderBox("", "just content")
	assert.Contains(t, result, "just content")
	assert.Contains(t, result, "╭")
}
