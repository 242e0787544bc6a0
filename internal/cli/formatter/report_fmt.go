package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timestudy/internal/contract"
	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/alexanderramin/timestudy/internal/msa"
)

const gaugeWidth = 20

var fallbackLabels = map[msa.FallbackReason]string{
	msa.FallbackInsufficientSamples: "too few measurements for a full study",
	msa.FallbackSingleOperator:      "only one operator",
	msa.FallbackSingleTarget:        "only one target",
}

// FormatAnalysis renders an analysis response as the boxed CLI report.
func FormatAnalysis(resp *contract.AnalysisResponse) string {
	res := resp.Result
	transformed := res.Transform != "" && res.Transform != domain.TransformNone

	var b strings.Builder
	b.WriteString(formatSummary(resp))
	b.WriteString("\n\n")
	b.WriteString(formatVariation(res, transformed))

	if res.Fallback == msa.FallbackNone {
		b.WriteString("\n")
		b.WriteString(formatANOVA(res.ANOVA))
	}

	b.WriteString("\n")
	b.WriteString(formatIndices(res, transformed))

	if len(res.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Warnings"))
		b.WriteString("\n")
		for _, w := range res.Warnings {
			b.WriteString(StyleYellow.Render("! "+string(w.Code)) + " " + w.Message + "\n")
		}
	}

	if len(res.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Recommendations"))
		b.WriteString("\n")
		for _, r := range res.Recommendations {
			b.WriteString("• " + r + "\n")
		}
	}

	title := "Gage R&R"
	if resp.Study != nil {
		title += ": " + resp.Study.Name
	}
	return RenderBox(title, strings.TrimRight(b.String(), "\n")) + "\n"
}

func formatSummary(resp *contract.AnalysisResponse) string {
	res := resp.Result
	d := res.Design

	lines := []string{
		fmt.Sprintf("%s  %s", StatusIndicator(res.Status), RenderGauge(res.GageRRPercent, gaugeWidth, StatusColor(res.Status))),
		fmt.Sprintf("NDC %s   P/T %s   Cpk %s",
			Bold(fmt.Sprintf("%d", res.NDC)),
			Bold(FormatPercent(res.PTRatio)),
			Bold(fmt.Sprintf("%.2f", res.Cpk))),
		Dim(fmt.Sprintf("%d measurements, %d targets × %d operators, up to %d trials%s",
			resp.MeasurementCount, d.Parts, d.Operators, d.Replicates, balanceNote(d))),
	}
	if res.Transform != "" && res.Transform != domain.TransformNone {
		lines = append(lines, Dim(fmt.Sprintf("analysed on the %s scale", res.Transform)))
	}
	if res.Fallback != msa.FallbackNone {
		lines = append(lines, StyleYellow.Render("basic analysis: "+fallbackLabels[res.Fallback]))
	}
	return strings.Join(lines, "\n")
}

func balanceNote(d msa.Design) string {
	if d.Balanced {
		return ""
	}
	return " (unbalanced)"
}

func formatVariation(res *msa.Result, transformed bool) string {
	share := func(v float64) string {
		if res.TotalVariation <= 0 {
			return Dim("--")
		}
		return FormatPercent(100 * v / res.TotalVariation)
	}
	rows := [][]string{
		{"Repeatability (EV)", FormatValue(res.Repeatability, transformed), share(res.Repeatability)},
		{"Reproducibility (AV)", FormatValue(res.Reproducibility, transformed), share(res.Reproducibility)},
		{Bold("Gage R&R"), Bold(FormatValue(res.GageRR, transformed)), Bold(share(res.GageRR))},
		{"Part variation (PV)", FormatValue(res.PartVariation, transformed), share(res.PartVariation)},
		{"Total variation (TV)", FormatValue(res.TotalVariation, transformed), share(res.TotalVariation)},
	}
	return Header("Variation") + "\n" +
		RenderNumericTable([]string{"SOURCE", "6σ SPREAD", "% TV"}, rows, []int{1, 2})
}

func formatANOVA(a msa.ANOVAResult) string {
	row := func(name string, df int, ss, ms float64) []string {
		return []string{name, fmt.Sprintf("%d", df), fmt.Sprintf("%.4f", ss), fmt.Sprintf("%.4f", ms)}
	}
	rows := [][]string{
		row("Part", a.PartDF, a.PartSS, a.PartMS),
		row("Operator", a.OperatorDF, a.OperatorSS, a.OperatorMS),
		row("Interaction", a.InteractionDF, a.InteractionSS, a.InteractionMS),
		row("Equipment", a.EquipmentDF, a.EquipmentSS, a.EquipmentMS),
		{"Total", fmt.Sprintf("%d", a.PartDF+a.OperatorDF+a.InteractionDF+a.EquipmentDF), fmt.Sprintf("%.4f", a.TotalSS), ""},
	}

	return Header("ANOVA") + "\n" +
		RenderNumericTable([]string{"SOURCE", "DF", "SS", "MS"}, rows, []int{1, 2, 3}) +
		Dim(fmt.Sprintf("F(part) = %.3f, p ≈ %.3f (exact %.4g)", a.FStatistic, a.PValue, a.PValueExact)) + "\n"
}

func formatIndices(res *msa.Result, transformed bool) string {
	ci := res.MeanCI
	rows := [][]string{
		{"Mean", FormatValue(res.BasicStatistics.GrandMean, transformed)},
		{fmt.Sprintf("%.0f%% CI", 100*ci.Level), FormatValue(ci.Lower, transformed) + " … " + FormatValue(ci.Upper, transformed)},
		{"Std deviation", FormatValue(res.BasicStatistics.StandardDeviation, transformed)},
		{"ICC", fmt.Sprintf("%.3f", res.ICC)},
		{"CV", FormatPercent(res.CV)},
		{"Q95", FormatValue(res.Q95, transformed)},
		{"Q99", FormatValue(res.Q99, transformed)},
		{"Q99.9", FormatValue(res.Q999, transformed)},
		{"Work type", WorkTypeBadge(res.WorkType)},
		{"Standard-time ready", YesNo(res.IsReliableForStandard)},
	}
	return Header("Work-time indices") + "\n" + RenderTable([]string{"INDEX", "VALUE"}, rows)
}
