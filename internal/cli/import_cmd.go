package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var studyRef string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import measurements from a JSON or YAML file",
		Long: "Imports trial times from FILE (.json, .yaml or .yml). Without --study the\n" +
			"file's study block creates a new study.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportMeasurements(context.Background(), args[0], studyRef)
			if err != nil {
				return err
			}

			verb := "into"
			if result.StudyCreated {
				verb = "into new study"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d measurements %s %s (%s)\n",
				result.MeasurementCount, verb, result.Study.Name, result.Study.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&studyRef, "study", "", "Existing study ID, ID prefix or name")

	return cmd
}
