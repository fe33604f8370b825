package report

import (
	"fmt"
	"io"

	"github.com/mitchellh/go-wordwrap"

	"cdk-cost-analyzer/core/types"
)

const markdownWrapWidth = 100

// MarkdownRenderer produces the Markdown report: a title, a bold total,
// per-section tables, an optional collapsible configuration section, a
// threshold status heading, a Top Cost Contributors table, and — when
// multi-stack — a per-stack breakdown (spec §4.9).
type MarkdownRenderer struct{}

func (MarkdownRenderer) Format() Format { return FormatMarkdown }

func (MarkdownRenderer) Render(w io.Writer, report Report) error {
	delta := report.Delta

	fmt.Fprintln(w, "# Cost Impact Report")

	if delta.IsEmpty() {
		fmt.Fprintln(w, "\nNo resource changes detected")
		return nil
	}

	fmt.Fprintf(w, "\n**Total monthly cost change: %s**\n", signed(delta.TotalDelta))

	if len(report.ConfigSummary) > 0 {
		fmt.Fprintln(w, "\n<details>\n<summary>Configuration</summary>\n")
		for k, v := range report.ConfigSummary {
			fmt.Fprintf(w, "- `%s`: %s\n", k, v)
		}
		fmt.Fprintln(w, "\n</details>")
	}

	if report.ThresholdResult != nil {
		fmt.Fprintf(w, "\n## Threshold status: %s\n", report.ThresholdResult.Level)
		fmt.Fprintln(w, wordwrap.WrapString(string(report.ThresholdResult.Message), markdownWrapWidth))
		for _, rec := range report.ThresholdResult.Recommendations {
			fmt.Fprintf(w, "- %s\n", wordwrap.WrapString(rec, markdownWrapWidth))
		}
	}

	renderResourceTables(w, delta)

	contributors := topContributors(delta, 3)
	if len(contributors) > 0 {
		fmt.Fprintln(w, "\n## Top Cost Contributors\n")
		fmt.Fprintln(w, "| Logical ID | Type | Contribution |")
		fmt.Fprintln(w, "|---|---|---|")
		for _, c := range contributors {
			fmt.Fprintf(w, "| %s | %s | %s |\n", c.logicalID, c.cfnType, signed(c.amount))
		}
	}

	if len(report.StackBreakdowns) > 1 {
		fmt.Fprintln(w, "\n## Per-Stack Summary\n")
		fmt.Fprintln(w, "| Stack | Monthly Cost Change |")
		fmt.Fprintln(w, "|---|---|")
		for _, s := range report.StackBreakdowns {
			fmt.Fprintf(w, "| %s | %s |\n", s.StackName, signed(s.Delta.TotalDelta))
		}

		fmt.Fprintln(w, "\n<details>\n<summary>Per-stack detail</summary>\n")
		for _, s := range report.StackBreakdowns {
			fmt.Fprintf(w, "\n### %s\n\n", s.StackName)
			renderResourceTables(w, s.Delta)
		}
		fmt.Fprintln(w, "\n</details>")
	}

	return nil
}

// renderResourceTables writes the added/removed/modified tables shared by
// the top-level report and each per-stack detail section.
func renderResourceTables(w io.Writer, delta types.CostDelta) {
	if len(delta.AddedCosts) > 0 {
		fmt.Fprintln(w, "\n## Added Resources\n")
		fmt.Fprintln(w, "| Logical ID | Type | Monthly Cost |")
		fmt.Fprintln(w, "|---|---|---|")
		for _, r := range sortedResourceCosts(delta.AddedCosts) {
			fmt.Fprintf(w, "| %s | %s | %s %s |\n", r.LogicalID, r.Type, currency(r.MonthlyCost.Amount), confidenceTag(r.MonthlyCost.Confidence))
		}
	}

	if len(delta.RemovedCosts) > 0 {
		fmt.Fprintln(w, "\n## Removed Resources\n")
		fmt.Fprintln(w, "| Logical ID | Type | Monthly Cost |")
		fmt.Fprintln(w, "|---|---|---|")
		for _, r := range sortedResourceCosts(delta.RemovedCosts) {
			fmt.Fprintf(w, "| %s | %s | %s %s |\n", r.LogicalID, r.Type, currency(r.MonthlyCost.Amount), confidenceTag(r.MonthlyCost.Confidence))
		}
	}

	if len(delta.ModifiedCosts) > 0 {
		fmt.Fprintln(w, "\n## Modified Resources\n")
		fmt.Fprintln(w, "| Logical ID | Type | Monthly Cost |")
		fmt.Fprintln(w, "|---|---|---|")
		for _, m := range sortedModifiedCosts(delta.ModifiedCosts) {
			fmt.Fprintf(w, "| %s | %s | %s → %s ( %s ) %s |\n",
				m.LogicalID, m.Type, currency(m.OldMonthlyCost.Amount), currency(m.NewMonthlyCost.Amount),
				signed(m.CostDelta), confidenceTag(m.Confidence))
		}
	}
}
