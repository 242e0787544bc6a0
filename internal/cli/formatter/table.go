package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// colGap is the padding between columns.
const colGap = 2

// RenderTable renders a left-aligned table with a header separator line.
// Columns are padded to the widest visible cell, ignoring ANSI sequences.
func RenderTable(headers []string, rows [][]string) string {
	return RenderNumericTable(headers, rows, nil)
}

// RenderNumericTable is RenderTable with the listed column indexes
// right-aligned, which keeps decimal figures lined up.
func RenderNumericTable(headers []string, rows [][]string, rightAligned []int) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)
	right := make([]bool, cols)
	for _, i := range rightAligned {
		if i >= 0 && i < cols {
			right[i] = true
		}
	}

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	styled := make([]string, cols)
	for i, h := range headers {
		styled[i] = StyleHeader.Render(h)
	}
	writeRow(&b, styled, widths, right)

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		cells := make([]string, cols)
		copy(cells, row)
		writeRow(&b, cells, widths, right)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, widths []int, right []bool) {
	last := len(cells) - 1
	for i, cell := range cells {
		pad := max(0, widths[i]-lipgloss.Width(cell))
		if right[i] {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
			if i < last {
				b.WriteString(strings.Repeat(" ", colGap))
			}
			continue
		}
		b.WriteString(cell)
		if i < last {
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}
	b.WriteString("\n")
}
