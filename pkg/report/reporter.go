// Package report renders probe results as run summaries and
// per-probe reports in JSON, YAML or Markdown.
package report

import (
	"fmt"
	"io"

	"digital.vasic.reflectprobe/pkg/probe"
)

// Reporter defines the interface for generating probe reports.
type Reporter interface {
	// GenerateReport creates a report for a single probe result.
	GenerateReport(result *probe.Result) ([]byte, error)

	// GenerateRunSummary creates a summary of all results of a
	// run.
	GenerateRunSummary(results []*probe.Result) ([]byte, error)

	// WriteReport writes a report to the specified writer.
	WriteReport(w io.Writer, result *probe.Result) error
}

// Formats lists the names accepted by New.
var Formats = []string{"json", "yaml", "markdown"}

// New returns the reporter for a format name.
func New(format string) (Reporter, error) {
	switch format {
	case "json":
		return NewJSONReporter(true), nil
	case "yaml":
		return NewYAMLReporter(), nil
	case "markdown", "md":
		return NewMarkdownReporter(), nil
	}
	return nil, fmt.Errorf("unknown report format: %q", format)
}

func writeReport(
	r Reporter, w io.Writer, result *probe.Result,
) error {
	data, err := r.GenerateReport(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
