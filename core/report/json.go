package report

import (
	"encoding/json"
	"io"
)

// JSONRenderer serializes the CostDelta verbatim plus optional decorations,
// stable key order, two-space indent (spec §4.9).
type JSONRenderer struct{}

func (JSONRenderer) Format() Format { return FormatJSON }

// jsonDocument controls field order and omits decorations that weren't
// supplied, rather than emitting null.
type jsonDocument struct {
	Delta           interface{} `json:"delta"`
	ConfigSummary   interface{} `json:"configSummary,omitempty"`
	ThresholdStatus interface{} `json:"thresholdStatus,omitempty"`
}

func (JSONRenderer) Render(w io.Writer, report Report) error {
	doc := jsonDocument{Delta: report.Delta}
	if len(report.ConfigSummary) > 0 {
		doc.ConfigSummary = report.ConfigSummary
	}
	if report.ThresholdResult != nil {
		doc.ThresholdStatus = report.ThresholdResult
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
