package metrics

import (
	"sync"
	"time"
)

// Collector implements ProbeMetrics with in-memory counters. It is
// safe for concurrent use.
type Collector struct {
	mu         sync.Mutex
	executions map[string]int
	assertions map[string]int
	durations  map[string][]time.Duration
	runTotal   int
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		executions: make(map[string]int),
		assertions: make(map[string]int),
		durations:  make(map[string][]time.Duration),
	}
}

func (m *Collector) RecordExecution(
	probeID, status string, duration time.Duration,
) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.executions[probeID+":"+status]++
	m.durations[probeID] = append(m.durations[probeID], duration)
}

func (m *Collector) RecordAssertion(
	probeID, evaluator string, passed bool,
) {
	status := "failed"
	if passed {
		status = "passed"
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assertions[probeID+":"+evaluator+":"+status]++
}

func (m *Collector) IncrementRunTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runTotal++
}

// ExecutionCount returns the count for a probe+status combination.
func (m *Collector) ExecutionCount(probeID, status string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.executions[probeID+":"+status]
}

// AssertionCount returns how often an evaluator passed or failed
// for a probe.
func (m *Collector) AssertionCount(
	probeID, evaluator string, passed bool,
) int {
	status := "failed"
	if passed {
		status = "passed"
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assertions[probeID+":"+evaluator+":"+status]
}

// Durations returns the recorded execution durations of a probe.
func (m *Collector) Durations(probeID string) []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.durations[probeID]...)
}

// RunTotal returns the total number of runs.
func (m *Collector) RunTotal() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runTotal
}
