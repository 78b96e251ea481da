package assertion

import "digital.vasic.reflectprobe/pkg/probe"

// ProbeAdapter wraps an Engine to implement probe.AssertionEngine,
// rendering expected and observed values for the probe result.
type ProbeAdapter struct {
	engine Engine
}

// NewProbeAdapter creates an adapter from an assertion engine.
func NewProbeAdapter(engine Engine) *ProbeAdapter {
	return &ProbeAdapter{engine: engine}
}

// Evaluate delegates to the assertion engine, converting types.
func (a *ProbeAdapter) Evaluate(
	def probe.AssertionDef,
	value any,
) probe.AssertionResult {
	return toProbeResult(a.engine.Evaluate(fromProbeDef(def), value))
}

// EvaluateAll delegates to the assertion engine, converting types
// for each assertion.
func (a *ProbeAdapter) EvaluateAll(
	defs []probe.AssertionDef,
	values map[string]any,
) []probe.AssertionResult {
	converted := make([]Definition, len(defs))
	for i, d := range defs {
		converted[i] = fromProbeDef(d)
	}

	results := a.engine.EvaluateAll(converted, values)

	out := make([]probe.AssertionResult, len(results))
	for i, r := range results {
		out[i] = toProbeResult(r)
	}
	return out
}

func fromProbeDef(d probe.AssertionDef) Definition {
	return Definition{
		Type:    d.Type,
		Target:  d.Target,
		Value:   d.Value,
		Values:  d.Values,
		Message: d.Message,
	}
}

func toProbeResult(r Result) probe.AssertionResult {
	return probe.AssertionResult{
		Type:     r.Type,
		Target:   r.Target,
		Expected: describe(r.Expected),
		Actual:   describe(r.Actual),
		Passed:   r.Passed,
		Message:  r.Message,
	}
}
