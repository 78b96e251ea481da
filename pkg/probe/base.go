package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BaseProbe provides a reusable foundation for building probes
// using the template method pattern. Embed this struct, declare
// the outputs and assertions, and implement Execute to compute the
// observed values.
type BaseProbe struct {
	id           ID
	name         string
	description  string
	category     string
	dependencies []ID
	outputs      []Output
	declared     []AssertionDef
	config       *Config
	logger       Logger
	assertions   AssertionEngine
}

// NewBaseProbe creates a BaseProbe with the given identity fields.
// Logger and AssertionEngine can be set later via setters.
func NewBaseProbe(
	id ID,
	name, description, category string,
	deps []ID,
) BaseProbe {
	if deps == nil {
		deps = []ID{}
	}
	return BaseProbe{
		id:           id,
		name:         name,
		description:  description,
		category:     category,
		dependencies: deps,
	}
}

// ID returns the probe identifier.
func (b *BaseProbe) ID() ID { return b.id }

// Name returns the probe name.
func (b *BaseProbe) Name() string { return b.name }

// Description returns the probe description.
func (b *BaseProbe) Description() string {
	return b.description
}

// Category returns the probe category.
func (b *BaseProbe) Category() string { return b.category }

// Dependencies returns the probe dependency IDs.
func (b *BaseProbe) Dependencies() []ID {
	return b.dependencies
}

// Config returns the current runtime configuration, or nil if
// Configure has not been called.
func (b *BaseProbe) Config() *Config { return b.config }

// SetLogger sets the logger used by this probe.
func (b *BaseProbe) SetLogger(l Logger) {
	b.logger = l
}

// SetAssertionEngine sets the assertion engine used by this probe.
func (b *BaseProbe) SetAssertionEngine(e AssertionEngine) {
	b.assertions = e
}

// Declare records the values the probe observes and the
// assertions made about them.
func (b *BaseProbe) Declare(
	outputs []Output, assertions []AssertionDef,
) {
	b.outputs = outputs
	b.declared = assertions
}

// Assertions returns the declared assertions.
func (b *BaseProbe) Assertions() []AssertionDef {
	return b.declared
}

// Definition describes the probe declaratively.
func (b *BaseProbe) Definition() *Definition {
	return &Definition{
		ID:           b.id,
		Name:         b.name,
		Description:  b.description,
		Category:     b.category,
		Dependencies: b.dependencies,
		Outputs:      b.outputs,
		Assertions:   b.declared,
	}
}

// Configure stores the runtime config and ensures the results
// directory exists when one is set.
func (b *BaseProbe) Configure(config *Config) error {
	if config == nil {
		return fmt.Errorf("config must not be nil")
	}
	b.config = config

	if config.ResultsDir == "" {
		return nil
	}
	if err := os.MkdirAll(b.ResultsDir(), 0o755); err != nil {
		return fmt.Errorf(
			"create results dir %s: %w",
			b.ResultsDir(), err,
		)
	}
	return nil
}

// Validate performs basic precondition checks. Override to add
// custom validation; call BaseProbe.Validate first.
func (b *BaseProbe) Validate(_ context.Context) error {
	if b.config == nil {
		return fmt.Errorf("probe %s: not configured", b.id)
	}
	if len(b.declared) == 0 {
		return fmt.Errorf("probe %s: no assertions declared", b.id)
	}
	return nil
}

// Cleanup closes the probe logger if one is set.
func (b *BaseProbe) Cleanup(_ context.Context) error {
	if b.logger != nil {
		return b.logger.Close()
	}
	return nil
}

// ResultsDir returns the results directory path for this probe,
// or "" when result files are disabled.
func (b *BaseProbe) ResultsDir() string {
	if b.config == nil || b.config.ResultsDir == "" {
		return ""
	}
	return filepath.Join(b.config.ResultsDir, string(b.id))
}

// Evaluate runs the declared assertions against the observed
// values and builds the result. A missing engine fails every
// assertion.
func (b *BaseProbe) Evaluate(
	start time.Time, values map[string]any,
) *Result {
	assertions := b.EvaluateAssertions(b.declared, values)
	status := StatusPassed
	for _, a := range assertions {
		if !a.Passed {
			status = StatusFailed
			b.logError("assertion failed",
				"probe_id", b.id,
				"target", a.Target,
				"message", a.Message,
			)
			break
		}
	}
	b.logInfo("probe evaluated",
		"probe_id", b.id,
		"status", status,
		"assertions", len(assertions),
	)
	return b.CreateResult(
		status, start, assertions, FormatOutputs(values), "",
	)
}

// EvaluateAssertions uses the AssertionEngine to evaluate the
// given assertions against the provided values.
func (b *BaseProbe) EvaluateAssertions(
	defs []AssertionDef,
	values map[string]any,
) []AssertionResult {
	if b.assertions == nil {
		results := make([]AssertionResult, len(defs))
		for i, d := range defs {
			results[i] = AssertionResult{
				Type:    d.Type,
				Target:  d.Target,
				Passed:  false,
				Message: "no assertion engine configured",
			}
		}
		return results
	}
	return b.assertions.EvaluateAll(defs, values)
}

// CreateResult builds a Result pre-populated with this probe's
// identity and the given status and timing.
func (b *BaseProbe) CreateResult(
	status string,
	start time.Time,
	assertions []AssertionResult,
	outputs map[string]string,
	errMsg string,
) *Result {
	end := time.Now()
	return &Result{
		ProbeID:    b.id,
		ProbeName:  b.name,
		Status:     status,
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		Assertions: assertions,
		Outputs:    outputs,
		Error:      errMsg,
	}
}

// WriteJSONResult serializes a Result to result.json in the
// results directory. It is a no-op when result files are
// disabled.
func (b *BaseProbe) WriteJSONResult(r *Result) error {
	dir := b.ResultsDir()
	if dir == "" {
		return nil
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	path := filepath.Join(dir, "result.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result %s: %w", path, err)
	}
	return nil
}

// WriteMarkdownReport writes a human-readable Markdown summary of
// the result to report.md in the results directory.
func (b *BaseProbe) WriteMarkdownReport(r *Result) error {
	dir := b.ResultsDir()
	if dir == "" {
		return nil
	}
	md := fmt.Sprintf(
		"# %s\n\n"+
			"**ID**: %s\n"+
			"**Status**: %s\n"+
			"**Duration**: %s\n\n"+
			"## Assertions\n\n",
		r.ProbeName,
		r.ProbeID,
		r.Status,
		r.Duration,
	)
	for _, a := range r.Assertions {
		status := "PASS"
		if !a.Passed {
			status = "FAIL"
		}
		md += fmt.Sprintf(
			"- [%s] %s: %s\n",
			status, a.Target, a.Message,
		)
	}
	if r.Error != "" {
		md += fmt.Sprintf("\n## Error\n\n```\n%s\n```\n", r.Error)
	}
	path := filepath.Join(dir, "report.md")
	if err := os.WriteFile(
		path, []byte(md), 0o644,
	); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// FormatOutputs renders observed values for the result.
func FormatOutputs(values map[string]any) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = Format(v)
	}
	return out
}

func (b *BaseProbe) logInfo(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Info(msg, args...)
	}
}

func (b *BaseProbe) logError(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Error(msg, args...)
	}
}
