package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timestudy/internal/cli/formatter"
	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/alexanderramin/timestudy/internal/repository"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newMeasureCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Record and manage trial times",
	}

	cmd.AddCommand(
		newMeasureAddCmd(app),
		newMeasureListCmd(app),
		newMeasureRemoveCmd(app),
		newMeasureTimeCmd(app),
	)

	return cmd
}

func newMeasureAddCmd(app *App) *cobra.Command {
	var studyRef, operator, target string

	cmd := &cobra.Command{
		Use:   "add DURATION...",
		Short: "Record one or more trial times (1250, 1250ms or 1.25s)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			study, err := app.Studies.Resolve(ctx, studyRef)
			if err != nil {
				return err
			}

			times := make([]float64, len(args))
			for i, a := range args {
				if times[i], err = parseDurationMs(a); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, ms := range times {
				m := &domain.Measurement{StudyID: study.ID, Operator: operator, Target: target, TimeMs: ms}
				if err := app.Measurements.Record(ctx, m); err != nil {
					return err
				}
				fmt.Fprintf(out, "Recorded %s for %s on %s (%s)\n",
					formatter.FormatDurationMs(ms), m.Operator, m.Target, m.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&studyRef, "study", "", "Study ID, ID prefix or name")
	cmd.Flags().StringVar(&operator, "operator", "", "Operator who timed the trial")
	cmd.Flags().StringVar(&target, "target", "", "Work element (target) that was timed")
	_ = cmd.MarkFlagRequired("study")
	_ = cmd.MarkFlagRequired("operator")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newMeasureListCmd(app *App) *cobra.Command {
	var studyRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a study's measurements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			study, err := app.Studies.Resolve(ctx, studyRef)
			if err != nil {
				return err
			}
			ms, err := app.Measurements.ListByStudy(ctx, study.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMeasurementList(study, ms))
			return nil
		},
	}

	cmd.Flags().StringVar(&studyRef, "study", "", "Study ID, ID prefix or name")
	_ = cmd.MarkFlagRequired("study")

	return cmd
}

func newMeasureRemoveCmd(app *App) *cobra.Command {
	var studyRef string

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a measurement",
		Long:  "Removes a measurement by full ID, or by ID prefix when --study is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id := args[0]
			if studyRef != "" {
				study, err := app.Studies.Resolve(ctx, studyRef)
				if err != nil {
					return err
				}
				ms, err := app.Measurements.ListByStudy(ctx, study.ID)
				if err != nil {
					return err
				}
				if id, err = matchMeasurementPrefix(ms, id); err != nil {
					return err
				}
			}
			if err := app.Measurements.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed measurement %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&studyRef, "study", "", "Study to search for an ID prefix")

	return cmd
}

func matchMeasurementPrefix(ms []*domain.Measurement, prefix string) (string, error) {
	var match string
	for _, m := range ms {
		if !strings.HasPrefix(m.ID, prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("measurement prefix %q is ambiguous", prefix)
		}
		match = m.ID
	}
	if match == "" {
		return "", fmt.Errorf("measurement %q: %w", prefix, repository.ErrNotFound)
	}
	return match, nil
}

func newMeasureTimeCmd(app *App) *cobra.Command {
	var studyRef, operator, target string

	cmd := &cobra.Command{
		Use:   "time",
		Short: "Time trials live with an on-screen stopwatch",
		Long: "Starts a stopwatch. Press space or enter to stop the current trial,\n" +
			"save it, and start the next one; r restarts the trial, q quits.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("measure time needs an interactive terminal; use measure add instead")
			}
			ctx := context.Background()
			study, err := app.Studies.Resolve(ctx, studyRef)
			if err != nil {
				return err
			}

			record := func(d time.Duration) error {
				m := &domain.Measurement{
					StudyID:  study.ID,
					Operator: operator,
					Target:   target,
					TimeMs:   float64(d) / float64(time.Millisecond),
				}
				return app.Measurements.Record(ctx, m)
			}

			model := newTimerModel(study.Name, operator, target, record, time.Now)
			final, err := tea.NewProgram(model,
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			if err != nil {
				return err
			}

			tm := final.(timerModel)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLaps(operator, target, tm.lapsMs()))
			return tm.err
		},
	}

	cmd.Flags().StringVar(&studyRef, "study", "", "Study ID, ID prefix or name")
	cmd.Flags().StringVar(&operator, "operator", "", "Operator doing the timing")
	cmd.Flags().StringVar(&target, "target", "", "Work element (target) being timed")
	_ = cmd.MarkFlagRequired("study")
	_ = cmd.MarkFlagRequired("operator")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}
