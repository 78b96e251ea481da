package report

import (
	"io"

	"gopkg.in/yaml.v3"

	"digital.vasic.reflectprobe/pkg/probe"
)

// YAMLReporter generates YAML reports from probe results.
type YAMLReporter struct{}

// NewYAMLReporter creates a new YAML reporter.
func NewYAMLReporter() *YAMLReporter {
	return &YAMLReporter{}
}

// GenerateReport creates a YAML report for a single result.
func (r *YAMLReporter) GenerateReport(
	result *probe.Result,
) ([]byte, error) {
	return yaml.Marshal(result)
}

type yamlRunSummary struct {
	Summary *RunSummary     `yaml:"summary"`
	Results []*probe.Result `yaml:"results"`
}

// GenerateRunSummary creates a YAML summary of all results.
func (r *YAMLReporter) GenerateRunSummary(
	results []*probe.Result,
) ([]byte, error) {
	return yaml.Marshal(yamlRunSummary{
		Summary: BuildRunSummary(results),
		Results: results,
	})
}

// WriteReport writes a YAML report to the specified writer.
func (r *YAMLReporter) WriteReport(
	w io.Writer, result *probe.Result,
) error {
	return writeReport(r, w, result)
}
