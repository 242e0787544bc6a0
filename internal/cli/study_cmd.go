package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timestudy/internal/cli/formatter"
	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newStudyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "study",
		Short: "Manage time studies",
	}

	cmd.AddCommand(
		newStudyCreateCmd(app),
		newStudyListCmd(app),
		newStudyRenameCmd(app),
		newStudyRemoveCmd(app),
	)

	return cmd
}

func newStudyCreateCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a study",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				if !app.interactive() {
					return fmt.Errorf("--name is required")
				}
				if err := studyForm(&name, &description).Run(); err != nil {
					return err
				}
			}

			s := &domain.Study{Name: name, Description: description}
			if err := app.Studies.Create(context.Background(), s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created study %s (%s)\n", s.Name, s.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Study name")
	cmd.Flags().StringVar(&description, "description", "", "Work process under study")

	return cmd
}

// studyForm collects a study name and description on a terminal.
func studyForm(name, description *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Study name").
				Placeholder("Picking zone B").
				Value(name).
				Validate(func(s string) error {
					if err := validateRequired("name")(s); err != nil {
						return err
					}
					return validateMaxLen("name", 120)(s)
				}),
			huh.NewText().
				Title("Description").
				Placeholder("Work element, shift, equipment...").
				Value(description),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

func newStudyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List studies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			studies, err := app.Studies.List(ctx)
			if err != nil {
				return err
			}

			summaries := make([]formatter.StudySummary, 0, len(studies))
			for _, s := range studies {
				n, err := app.Measurements.CountByStudy(ctx, s.ID)
				if err != nil {
					return err
				}
				summaries = append(summaries, formatter.StudySummary{Study: s, MeasurementCount: n})
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStudyList(summaries))
			return nil
		},
	}
}

func newStudyRenameCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "rename STUDY",
		Short: "Rename a study or change its description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.Studies.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				s.Name = name
			}
			if cmd.Flags().Changed("description") {
				s.Description = description
			}
			if err := app.Studies.Update(ctx, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated study %s (%s)\n", s.Name, s.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New study name")
	cmd.Flags().StringVar(&description, "description", "", "New description")

	return cmd
}

func newStudyRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove STUDY",
		Short: "Remove a study and all of its measurements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.Studies.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Studies.Delete(ctx, s.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed study %s (%s)\n", s.Name, s.DisplayID())
			return nil
		},
	}
}
