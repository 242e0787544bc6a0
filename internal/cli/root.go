package cli

import (
	"github.com/alexanderramin/timestudy/internal/msa"
	"github.com/alexanderramin/timestudy/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Studies      service.StudyService
	Measurements service.MeasurementService
	Import       service.ImportService
	Analysis     service.AnalysisService

	// AnalysisDefaults seeds the analyze flags; flags the user sets win.
	AnalysisDefaults msa.Config

	// IsInteractive reports whether stdin is a terminal. Nil means never,
	// which disables forms and the stopwatch.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "timestudy" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "timestudy",
		Short: "Time-study recorder and Gage R&R analyzer",
		Long: "Record operator timings of logistics work elements and check\n" +
			"whether the measurement system is good enough to set standard times.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newStudyCmd(app),
		newMeasureCmd(app),
		newImportCmd(app),
		newAnalyzeCmd(app),
	)

	return root
}
