package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"digital.vasic.reflectprobe/pkg/probe"
)

// RunSummary represents an aggregated summary of one run.
type RunSummary struct {
	RunID         string         `json:"run_id" yaml:"run_id"`
	GeneratedAt   time.Time      `json:"generated_at" yaml:"generated_at"`
	Probes        []ProbeSummary `json:"probes" yaml:"probes"`
	TotalProbes   int            `json:"total_probes" yaml:"total_probes"`
	PassedProbes  int            `json:"passed_probes" yaml:"passed_probes"`
	FailedProbes  int            `json:"failed_probes" yaml:"failed_probes"`
	TotalDuration time.Duration  `json:"total_duration" yaml:"total_duration"`
	PassRate      float64        `json:"pass_rate" yaml:"pass_rate"`
	Failure       string         `json:"failure,omitempty" yaml:"failure,omitempty"`
}

// ProbeSummary represents a summary of a single probe.
type ProbeSummary struct {
	ProbeID          probe.ID      `json:"probe_id" yaml:"probe_id"`
	ProbeName        string        `json:"probe_name" yaml:"probe_name"`
	Status           string        `json:"status" yaml:"status"`
	Duration         time.Duration `json:"duration" yaml:"duration"`
	AssertionsPassed int           `json:"assertions_passed" yaml:"assertions_passed"`
	AssertionsTotal  int           `json:"assertions_total" yaml:"assertions_total"`
}

// BuildRunSummary creates a summary from the results of a run. The
// run ID is taken from the first result; Failure describes the
// first result that did not pass.
func BuildRunSummary(results []*probe.Result) *RunSummary {
	summary := &RunSummary{
		GeneratedAt: time.Now(),
		Probes:      make([]ProbeSummary, 0, len(results)),
	}

	for _, r := range results {
		if summary.RunID == "" {
			summary.RunID = r.RunID
		}

		summary.Probes = append(summary.Probes, ProbeSummary{
			ProbeID:          r.ProbeID,
			ProbeName:        r.ProbeName,
			Status:           r.Status,
			Duration:         r.Duration,
			AssertionsPassed: passedAssertions(r),
			AssertionsTotal:  len(r.Assertions),
		})
		summary.TotalProbes++
		summary.TotalDuration += r.Duration

		if r.Status == probe.StatusPassed {
			summary.PassedProbes++
			continue
		}
		summary.FailedProbes++
		if summary.Failure == "" {
			summary.Failure = r.Describe()
		}
	}

	if summary.TotalProbes > 0 {
		summary.PassRate = float64(summary.PassedProbes) /
			float64(summary.TotalProbes)
	}

	return summary
}

func passedAssertions(r *probe.Result) int {
	n := 0
	for _, a := range r.Assertions {
		if a.Passed {
			n++
		}
	}
	return n
}

// SaveRunSummary saves the summary to both JSON and Markdown files
// in outputDir and points latest_summary.* at them.
func SaveRunSummary(summary *RunSummary, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf(
			"failed to create output directory: %w", err,
		)
	}

	ts := summary.GeneratedAt.Format("20060102_150405")

	jsonPath := filepath.Join(
		outputDir, fmt.Sprintf("run_summary_%s.json", ts),
	)
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(jsonPath, jsonData, 0o644); err != nil {
		return fmt.Errorf("failed to write JSON summary: %w", err)
	}

	mdPath := filepath.Join(
		outputDir, fmt.Sprintf("run_summary_%s.md", ts),
	)
	if err := os.WriteFile(
		mdPath, []byte(summaryMarkdown(summary)), 0o644,
	); err != nil {
		return fmt.Errorf(
			"failed to write Markdown summary: %w", err,
		)
	}

	latestJSON := filepath.Join(outputDir, "latest_summary.json")
	latestMD := filepath.Join(outputDir, "latest_summary.md")

	_ = os.Remove(latestJSON)
	_ = os.Remove(latestMD)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(mdPath), latestMD)

	return nil
}

// summaryMarkdown renders a run summary as Markdown.
func summaryMarkdown(summary *RunSummary) string {
	var sb strings.Builder

	sb.WriteString("# Reflection Probe Run\n\n")
	if summary.RunID != "" {
		fmt.Fprintf(&sb, "**Run ID:** %s\n\n", summary.RunID)
	}
	fmt.Fprintf(&sb, "**Generated:** %s\n\n",
		summary.GeneratedAt.Format(time.RFC3339))

	sb.WriteString("## Probes\n\n")
	sb.WriteString("| Probe | Status | Duration | Assertions |\n")
	sb.WriteString("|-------|--------|----------|------------|\n")
	for _, p := range summary.Probes {
		fmt.Fprintf(&sb, "| %s | %s | %v | %d/%d |\n",
			p.ProbeID, strings.ToUpper(p.Status), p.Duration,
			p.AssertionsPassed, p.AssertionsTotal)
	}

	sb.WriteString("\n## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	fmt.Fprintf(&sb, "| Total Probes | %d |\n", summary.TotalProbes)
	fmt.Fprintf(&sb, "| Passed | %d |\n", summary.PassedProbes)
	fmt.Fprintf(&sb, "| Failed | %d |\n", summary.FailedProbes)
	fmt.Fprintf(&sb, "| Pass Rate | %.0f%% |\n", summary.PassRate*100)
	fmt.Fprintf(&sb, "| Total Duration | %v |\n", summary.TotalDuration)

	if summary.Failure != "" {
		fmt.Fprintf(&sb, "\n## Failure\n\n```\n%s\n```\n",
			summary.Failure)
	}

	return sb.String()
}
