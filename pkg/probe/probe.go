// Package probe defines the contract for reflection probes: small,
// self-contained checks that build their own values, exercise an
// operation and assert on what they observed.
package probe

import "context"

// ID uniquely identifies a probe.
type ID string

// Probe defines the interface that all probes must implement.
// Each probe goes through a lifecycle: Configure -> Validate ->
// Execute -> Cleanup. Ordering between probes is expressed via ID
// references and resolved by the registry.
type Probe interface {
	// ID returns the unique identifier for this probe.
	ID() ID

	// Name returns the human-readable name of this probe.
	Name() string

	// Description returns what the probe demonstrates.
	Description() string

	// Category returns the category grouping for this probe
	// (e.g., "reflection").
	Category() string

	// Dependencies returns the IDs of probes that must pass
	// before this probe may execute.
	Dependencies() []ID

	// Configure applies runtime configuration to the probe.
	// Must be called before Validate or Execute.
	Configure(config *Config) error

	// Validate checks that all preconditions are met.
	Validate(ctx context.Context) error

	// Execute runs the probe and returns its result.
	Execute(ctx context.Context) (*Result, error)

	// Cleanup releases anything allocated during Configure or
	// Execute.
	Cleanup(ctx context.Context) error
}

// Logger defines the minimal logging interface used by probes.
// logging.Adapt turns a structured logging.Logger into one.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
	Close() error
}

// AssertionEngine evaluates assertions against observed values.
type AssertionEngine interface {
	// Evaluate checks a single assertion against the given value.
	Evaluate(assertion AssertionDef, value any) AssertionResult

	// EvaluateAll checks multiple assertions against a map of
	// named values. Each assertion's Target field is used as the
	// key into the values map.
	EvaluateAll(
		assertions []AssertionDef,
		values map[string]any,
	) []AssertionResult
}
