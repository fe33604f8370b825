package report

import (
	"fmt"
	"io"
	"sort"

	"cdk-cost-analyzer/core/types"
)

// TextRenderer produces the plain-text report (spec §4.9).
type TextRenderer struct{}

func (TextRenderer) Format() Format { return FormatText }

func (TextRenderer) Render(w io.Writer, report Report) error {
	delta := report.Delta

	if delta.IsEmpty() {
		_, err := fmt.Fprintln(w, "No resource changes detected")
		return err
	}

	fmt.Fprintf(w, "TOTAL: %s\n", signed(delta.TotalDelta))

	if len(report.ConfigSummary) > 0 {
		fmt.Fprintln(w, "\nCONFIGURATION")
		keys := make([]string, 0, len(report.ConfigSummary))
		for k := range report.ConfigSummary {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %s\n", k, report.ConfigSummary[k])
		}
	}

	if report.ThresholdResult != nil {
		fmt.Fprintln(w, "\nTHRESHOLD STATUS")
		fmt.Fprintf(w, "  level=%s passed=%t: %s\n", report.ThresholdResult.Level, report.ThresholdResult.Passed, report.ThresholdResult.Message)
		for _, rec := range report.ThresholdResult.Recommendations {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}

	if len(delta.AddedCosts) > 0 {
		fmt.Fprintln(w, "\nADDED RESOURCES")
		for _, r := range sortedResourceCosts(delta.AddedCosts) {
			writeResourceLine(w, r)
		}
	}

	if len(delta.RemovedCosts) > 0 {
		fmt.Fprintln(w, "\nREMOVED RESOURCES")
		for _, r := range sortedResourceCosts(delta.RemovedCosts) {
			writeResourceLine(w, r)
		}
	}

	if len(delta.ModifiedCosts) > 0 {
		fmt.Fprintln(w, "\nMODIFIED RESOURCES")
		for _, m := range sortedModifiedCosts(delta.ModifiedCosts) {
			fmt.Fprintf(w, "  %s (%s): %s → %s ( %s ) %s\n",
				m.LogicalID, m.Type, currency(m.OldMonthlyCost.Amount), currency(m.NewMonthlyCost.Amount),
				signed(m.CostDelta), confidenceTag(m.Confidence))
		}
	}

	return nil
}

func writeResourceLine(w io.Writer, r types.ResourceCost) {
	fmt.Fprintf(w, "  %s (%s): %s %s\n", r.LogicalID, r.Type, currency(r.MonthlyCost.Amount), confidenceTag(r.MonthlyCost.Confidence))
}
