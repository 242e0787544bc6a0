package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderGauge renders a percentage bar like [███░░░░░░░] 31.2%, filled
// in the given style. pct is on a 0-100 scale and is clamped.
func RenderGauge(pct float64, width int, style lipgloss.Style) string {
	pct = min(max(pct, 0), 100)
	width = max(width, 2)

	filled := min(int(pct/100*float64(width)+0.5), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %5.1f%%", style.Render(bar), pct)
}
