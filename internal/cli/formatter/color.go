package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/alexanderramin/timestudy/internal/msa"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusColor returns the style for a gage status band.
func StatusColor(status domain.GageStatus) lipgloss.Style {
	switch status {
	case domain.GageExcellent:
		return StyleGreen
	case domain.GageAcceptable:
		return StyleBlue
	case domain.GageMarginal:
		return StyleYellow
	case domain.GageUnacceptable:
		return StyleRed
	default:
		return StyleDim
	}
}

// StatusIndicator returns a colored label such as "● ACCEPTABLE".
func StatusIndicator(status domain.GageStatus) string {
	if status == "" {
		return StyleDim.Render("● UNKNOWN")
	}
	return StatusColor(status).Render("● " + strings.ToUpper(string(status)))
}

// WorkTypeBadge renders the detected work type in purple.
func WorkTypeBadge(wt msa.WorkType) string {
	if wt == "" {
		return StyleDim.Render("--")
	}
	label := strings.ToUpper(string(wt)[:1]) + string(wt)[1:]
	return StylePurple.Render(label)
}

// YesNo renders a boolean as a green "yes" or red "no".
func YesNo(ok bool) string {
	if ok {
		return StyleGreen.Render("yes")
	}
	return StyleRed.Render("no")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
