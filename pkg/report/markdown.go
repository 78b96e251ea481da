package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"digital.vasic.reflectprobe/pkg/probe"
)

// MarkdownReporter generates human-readable Markdown reports.
type MarkdownReporter struct{}

// NewMarkdownReporter creates a new Markdown reporter.
func NewMarkdownReporter() *MarkdownReporter {
	return &MarkdownReporter{}
}

// GenerateReport renders a single result with its assertions and
// observed values.
func (r *MarkdownReporter) GenerateReport(
	result *probe.Result,
) ([]byte, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", result.ProbeName)
	fmt.Fprintf(&sb, "**ID**: %s\n", result.ProbeID)
	fmt.Fprintf(&sb, "**Status**: %s\n", result.Status)
	fmt.Fprintf(&sb, "**Duration**: %s\n\n", result.Duration)

	if len(result.Assertions) > 0 {
		sb.WriteString("## Assertions\n\n")
		for _, a := range result.Assertions {
			mark := "PASS"
			if !a.Passed {
				mark = "FAIL"
			}
			fmt.Fprintf(&sb, "- [%s] %s on `%s`: %s\n",
				mark, a.Type, a.Target, a.Message)
		}
	}

	if len(result.Outputs) > 0 {
		sb.WriteString("\n## Observed values\n\n")
		names := make([]string, 0, len(result.Outputs))
		for name := range result.Outputs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&sb, "- `%s`: %s\n", name, result.Outputs[name])
		}
	}

	if result.Status != probe.StatusPassed {
		fmt.Fprintf(&sb, "\n## Failure\n\n```\n%s\n```\n",
			result.Describe())
	}

	return []byte(sb.String()), nil
}

// GenerateRunSummary renders the run summary table.
func (r *MarkdownReporter) GenerateRunSummary(
	results []*probe.Result,
) ([]byte, error) {
	return []byte(summaryMarkdown(BuildRunSummary(results))), nil
}

// WriteReport writes a Markdown report to the specified writer.
func (r *MarkdownReporter) WriteReport(
	w io.Writer, result *probe.Result,
) error {
	return writeReport(r, w, result)
}
