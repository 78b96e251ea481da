package report

import (
	"encoding/json"
	"io"

	"digital.vasic.reflectprobe/pkg/probe"
)

// JSONReporter generates JSON reports from probe results.
type JSONReporter struct {
	pretty bool
}

// NewJSONReporter creates a new JSON reporter. When pretty is
// true, output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

// GenerateReport creates a JSON report for a single result.
func (r *JSONReporter) GenerateReport(
	result *probe.Result,
) ([]byte, error) {
	return r.marshal(result)
}

// jsonRunSummary is the JSON structure for a run summary.
type jsonRunSummary struct {
	*RunSummary
	Results []*probe.Result `json:"results"`
}

// GenerateRunSummary creates a JSON summary of all results,
// including the full results.
func (r *JSONReporter) GenerateRunSummary(
	results []*probe.Result,
) ([]byte, error) {
	return r.marshal(jsonRunSummary{
		RunSummary: BuildRunSummary(results),
		Results:    results,
	})
}

// WriteReport writes a JSON report to the specified writer.
func (r *JSONReporter) WriteReport(
	w io.Writer, result *probe.Result,
) error {
	return writeReport(r, w, result)
}

func (r *JSONReporter) marshal(v any) ([]byte, error) {
	if r.pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
