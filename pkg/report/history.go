package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"digital.vasic.reflectprobe/pkg/probe"
)

// HistoricalEntry represents a single probe run in the historical
// log.
type HistoricalEntry struct {
	Timestamp        time.Time `json:"timestamp"`
	RunID            string    `json:"run_id"`
	ProbeID          string    `json:"probe_id"`
	Status           string    `json:"status"`
	Duration         string    `json:"duration"`
	AssertionsPassed int       `json:"assertions_passed"`
	AssertionsTotal  int       `json:"assertions_total"`
}

// AppendToHistory adds one JSON line per result to the log at
// historyPath.
func AppendToHistory(
	historyPath string, results ...*probe.Result,
) error {
	file, err := os.OpenFile(
		historyPath,
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0o644,
	)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer func() { _ = file.Close() }()

	for _, r := range results {
		data, err := json.Marshal(HistoricalEntry{
			Timestamp:        r.EndTime,
			RunID:            r.RunID,
			ProbeID:          string(r.ProbeID),
			Status:           r.Status,
			Duration:         r.Duration.String(),
			AssertionsPassed: passedAssertions(r),
			AssertionsTotal:  len(r.Assertions),
		})
		if err != nil {
			return fmt.Errorf(
				"failed to marshal history entry: %w", err,
			)
		}
		if _, err := fmt.Fprintln(file, string(data)); err != nil {
			return fmt.Errorf(
				"failed to write history entry: %w", err,
			)
		}
	}
	return nil
}

// LoadHistory reads all entries from a history log.
func LoadHistory(historyPath string) ([]HistoricalEntry, error) {
	data, err := os.ReadFile(historyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var entries []HistoricalEntry
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var e HistoricalEntry
		if err := dec.Decode(&e); err != nil {
			return entries, fmt.Errorf(
				"failed to parse history entry: %w", err,
			)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
