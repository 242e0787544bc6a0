package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/timestudy/internal/cli/formatter"
	"github.com/alexanderramin/timestudy/internal/contract"
	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	var (
		studyRef, transform string
		strict, outliers    bool
		asJSON              bool
		confidence          float64
		lsl, usl            float64
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a Gage R&R analysis on a study",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			study, err := app.Studies.Resolve(ctx, studyRef)
			if err != nil {
				return err
			}

			req := contract.NewAnalysisRequest(study.ID, app.AnalysisDefaults)
			flags := cmd.Flags()
			if flags.Changed("transform") {
				t, err := domain.ParseTransform(transform)
				if err != nil {
					return err
				}
				req.Config.Transform = t
			}
			if flags.Changed("strict") {
				req.Config.StrictMode = strict
			}
			if flags.Changed("outliers") {
				req.Config.OutlierDetection = outliers
			}
			if flags.Changed("confidence") {
				req.Config.ConfidenceLevel = confidence
			}
			if flags.Changed("lsl") {
				req.Config.LowerSpecLimit = &lsl
			}
			if flags.Changed("usl") {
				req.Config.UpperSpecLimit = &usl
			}

			resp, err := app.Analysis.Analyze(ctx, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			fmt.Fprint(out, formatter.FormatAnalysis(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&studyRef, "study", "", "Study ID, ID prefix or name")
	cmd.Flags().StringVar(&transform, "transform", "", "Transform before analysis: none, ln, log10 or sqrt")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on unbalanced designs instead of warning")
	cmd.Flags().BoolVar(&outliers, "outliers", false, "Flag Tukey outliers as warnings")
	cmd.Flags().Float64Var(&confidence, "confidence", 0, "Confidence level for the mean interval: 0.90, 0.95 or 0.99")
	cmd.Flags().Float64Var(&lsl, "lsl", 0, "Lower specification limit (analysis scale)")
	cmd.Flags().Float64Var(&usl, "usl", 0, "Upper specification limit (analysis scale)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	_ = cmd.MarkFlagRequired("study")

	return cmd
}
