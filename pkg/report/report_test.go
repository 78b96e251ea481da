package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"digital.vasic.reflectprobe/pkg/probe"
)

func makeTestResults() []*probe.Result {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return []*probe.Result{
		{
			RunID:     "run-1",
			ProbeID:   "apply-equivalence",
			ProbeName: "Explicit-receiver invocation",
			Status:    probe.StatusPassed,
			StartTime: start,
			EndTime:   start.Add(time.Millisecond),
			Duration:  time.Millisecond,
			Assertions: []probe.AssertionResult{
				{Type: "equals", Target: "apply", Expected: "130", Actual: "130", Passed: true, Message: "equals 130"},
				{Type: "equals", Target: "call", Expected: "130", Actual: "130", Passed: true, Message: "equals 130"},
			},
			Outputs: map[string]string{"apply": "130", "call": "130"},
		},
		{
			RunID:     "run-1",
			ProbeID:   "apply-shadowing",
			ProbeName: "Per-member apply shadowing",
			Status:    probe.StatusFailed,
			Duration:  2 * time.Millisecond,
			Assertions: []probe.AssertionResult{
				{Type: "throws", Target: "shadowed", Expected: "map[message:OMG! name:TypeError]", Actual: "130", Message: "shadowed apply: expected an error, got 130"},
			},
		},
	}
}

func TestBuildRunSummary(t *testing.T) {
	summary := BuildRunSummary(makeTestResults())

	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, 2, summary.TotalProbes)
	assert.Equal(t, 1, summary.PassedProbes)
	assert.Equal(t, 1, summary.FailedProbes)
	assert.Equal(t, 0.5, summary.PassRate)
	assert.Equal(t, 3*time.Millisecond, summary.TotalDuration)
	assert.Equal(t, 2, summary.Probes[0].AssertionsPassed)
	assert.Equal(t, 0, summary.Probes[1].AssertionsPassed)
	assert.Contains(t, summary.Failure, "apply-shadowing [failed]")
}

func TestBuildRunSummary_Empty(t *testing.T) {
	summary := BuildRunSummary(nil)

	assert.Equal(t, 0, summary.TotalProbes)
	assert.Equal(t, float64(0), summary.PassRate)
	assert.Empty(t, summary.Probes)
	assert.Empty(t, summary.Failure)
}

func TestSaveRunSummary(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	summary := BuildRunSummary(makeTestResults())

	require.NoError(t, SaveRunSummary(summary, dir))

	matches, err := filepath.Glob(filepath.Join(dir, "run_summary_*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(filepath.Join(dir, "latest_summary.json"))
	require.NoError(t, err)
	var decoded RunSummary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 2, decoded.TotalProbes)

	md, err := os.ReadFile(filepath.Join(dir, "latest_summary.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "| apply-shadowing | FAILED |")
	assert.Contains(t, string(md), "## Failure")
}

func TestNew(t *testing.T) {
	for _, f := range Formats {
		r, err := New(f)
		require.NoError(t, err, f)
		assert.NotNil(t, r)
	}
	_, err := New("html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report format")
}

func TestJSONReporter(t *testing.T) {
	results := makeTestResults()
	r := NewJSONReporter(false)

	data, err := r.GenerateReport(results[0])
	require.NoError(t, err)
	var decoded probe.Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, probe.ID("apply-equivalence"), decoded.ProbeID)
	assert.Equal(t, "130", decoded.Assertions[0].Actual)

	data, err = NewJSONReporter(true).GenerateRunSummary(results)
	require.NoError(t, err)
	var summary map[string]any
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.EqualValues(t, 2, summary["total_probes"])
	assert.Len(t, summary["results"], 2)

	var buf bytes.Buffer
	require.NoError(t, r.WriteReport(&buf, results[1]))
	assert.Contains(t, buf.String(), `"status":"failed"`)
}

func TestYAMLReporter(t *testing.T) {
	results := makeTestResults()
	r := NewYAMLReporter()

	data, err := r.GenerateReport(results[1])
	require.NoError(t, err)
	var decoded probe.Result
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, probe.StatusFailed, decoded.Status)
	assert.Equal(t, "130", decoded.Assertions[0].Actual)

	data, err = r.GenerateRunSummary(results)
	require.NoError(t, err)
	var summary yamlRunSummary
	require.NoError(t, yaml.Unmarshal(data, &summary))
	assert.Equal(t, 1, summary.Summary.FailedProbes)
	assert.Len(t, summary.Results, 2)
}

func TestMarkdownReporter(t *testing.T) {
	results := makeTestResults()
	r := NewMarkdownReporter()

	var buf bytes.Buffer
	require.NoError(t, r.WriteReport(&buf, results[0]))
	out := buf.String()
	assert.Contains(t, out, "# Explicit-receiver invocation")
	assert.Contains(t, out, "- [PASS] equals on `apply`: equals 130")
	assert.Contains(t, out, "- `call`: 130")
	assert.NotContains(t, out, "## Failure")

	data, err := r.GenerateReport(results[1])
	require.NoError(t, err)
	assert.Contains(t, string(data), "- [FAIL] throws on `shadowed`")
	assert.Contains(t, string(data), "expected: map[message:OMG! name:TypeError]")

	data, err = r.GenerateRunSummary(results)
	require.NoError(t, err)
	assert.Contains(t, string(data), "**Run ID:** run-1")
	assert.Contains(t, string(data), "| Pass Rate | 50% |")
}

func TestHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	results := makeTestResults()

	require.NoError(t, AppendToHistory(path, results[0]))
	require.NoError(t, AppendToHistory(path, results[1]))

	entries, err := LoadHistory(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "apply-equivalence", entries[0].ProbeID)
	assert.Equal(t, "run-1", entries[1].RunID)
	assert.Equal(t, 2, entries[0].AssertionsPassed)
	assert.Equal(t, "failed", entries[1].Status)

	_, err = LoadHistory(filepath.Join(t.TempDir(), "none"))
	require.Error(t, err)
}
