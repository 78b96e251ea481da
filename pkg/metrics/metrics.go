// Package metrics records probe execution and assertion counts.
package metrics

import "time"

// ProbeMetrics defines the interface for recording probe metrics.
type ProbeMetrics interface {
	// RecordExecution records a probe execution.
	RecordExecution(probeID, status string, duration time.Duration)
	// RecordAssertion records an assertion evaluation.
	RecordAssertion(probeID, evaluator string, passed bool)
	// IncrementRunTotal increments the total run counter.
	IncrementRunTotal()
}

// NoopMetrics is a no-op implementation of ProbeMetrics used when
// metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordExecution(_, _ string, _ time.Duration) {}
func (NoopMetrics) RecordAssertion(_, _ string, _ bool)          {}
func (NoopMetrics) IncrementRunTotal()                           {}
