package probe

import (
	"fmt"
	"strings"
	"time"
)

// Status constants for probe execution outcomes.
const (
	StatusPending = "pending"
	StatusRunning = "running"
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

// Result captures the complete outcome of a probe execution.
type Result struct {
	// RunID groups the results of one runner invocation.
	RunID string `json:"run_id,omitempty" yaml:"run_id,omitempty"`

	// ProbeID is the unique identifier of the probe.
	ProbeID ID `json:"probe_id" yaml:"probe_id"`

	// ProbeName is the human-readable name.
	ProbeName string `json:"probe_name" yaml:"probe_name"`

	// Status is one of the Status* constants.
	Status string `json:"status" yaml:"status"`

	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	Duration  time.Duration `json:"duration" yaml:"duration"`

	// Assertions holds the evaluated assertion results.
	Assertions []AssertionResult `json:"assertions" yaml:"assertions"`

	// Outputs holds a printable form of every observed value.
	Outputs map[string]string `json:"outputs" yaml:"outputs"`

	// Error contains the error message if the probe failed with
	// an unexpected error.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// AssertionResult captures the outcome of a single assertion
// evaluation.
type AssertionResult struct {
	Type     string `json:"type" yaml:"type"`
	Target   string `json:"target" yaml:"target"`
	Expected string `json:"expected" yaml:"expected"`
	Actual   string `json:"actual" yaml:"actual"`
	Passed   bool   `json:"passed" yaml:"passed"`
	Message  string `json:"message" yaml:"message"`
}

// AllPassed returns true if every assertion in the result passed.
func (r *Result) AllPassed() bool {
	for _, a := range r.Assertions {
		if !a.Passed {
			return false
		}
	}
	return true
}

// IsFinal returns true if the status is a terminal state.
func (r *Result) IsFinal() bool {
	switch r.Status {
	case StatusPassed, StatusFailed, StatusSkipped, StatusError:
		return true
	}
	return false
}

// FirstFailure returns the first assertion that did not pass.
func (r *Result) FirstFailure() (AssertionResult, bool) {
	for _, a := range r.Assertions {
		if !a.Passed {
			return a, true
		}
	}
	return AssertionResult{}, false
}

// Describe renders the failure of a result as expected vs actual.
// Passed results describe themselves as such.
func (r *Result) Describe() string {
	if r.Error != "" {
		return fmt.Sprintf("%s [%s]: %s", r.ProbeID, r.Status, r.Error)
	}
	a, ok := r.FirstFailure()
	if !ok {
		return fmt.Sprintf("%s [%s]", r.ProbeID, r.Status)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]: %s on %q failed: %s",
		r.ProbeID, r.Status, a.Type, a.Target, a.Message)
	fmt.Fprintf(&b, "\n  expected: %s", a.Expected)
	fmt.Fprintf(&b, "\n  actual:   %s", a.Actual)
	return b.String()
}

// Format prints an observed value for reports and messages.
func Format(v any) string {
	switch tv := v.(type) {
	case nil:
		return "<none>"
	case error:
		return tv.Error()
	case fmt.Stringer:
		return tv.String()
	}
	return fmt.Sprintf("%v", v)
}
