// Package report implements the three CostDelta renderers (spec §4.9):
// text, JSON, and Markdown, sharing currency, sign, and sort formatting
// rules. Grounded on the teacher's core/output/formatter.go Formatter shape.
package report

import (
	"io"

	"cdk-cost-analyzer/core/threshold"
	"cdk-cost-analyzer/core/types"
)

// Format identifies a renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Renderer produces one output format for a Report.
type Renderer interface {
	Format() Format
	Render(w io.Writer, report Report) error
}

// StackBreakdown is an optional per-stack cost table, used only by the
// Markdown renderer's multi-stack section.
type StackBreakdown struct {
	StackName string
	Delta     types.CostDelta
}

// Report bundles a priced CostDelta with the optional decorations the
// renderers may include (spec §4.9).
type Report struct {
	Delta           types.CostDelta
	ConfigSummary   map[string]string
	ThresholdResult *threshold.Result
	StackBreakdowns []StackBreakdown
}

// ForFormat returns the renderer for name, or (nil, false) if unrecognized.
func ForFormat(name string) (Renderer, bool) {
	switch Format(name) {
	case FormatText:
		return TextRenderer{}, true
	case FormatJSON:
		return JSONRenderer{}, true
	case FormatMarkdown:
		return MarkdownRenderer{}, true
	default:
		return nil, false
	}
}
