// Package assertion provides an extensible assertion evaluation
// engine for reflection probes. Built-in evaluators compare
// object-model values by identity, verify expected errors by kind
// and message, and check key lists; custom evaluators can be
// registered.
package assertion

// Definition describes a single assertion to evaluate against an
// observed value.
type Definition struct {
	// Type is the evaluator type (e.g., "equals", "throws",
	// "is_true").
	Type string `json:"type" yaml:"type"`

	// Target is the name of the observed value to check.
	Target string `json:"target" yaml:"target"`

	// Value is the expected value for single-value assertions.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Values holds expected values for multi-value assertions.
	Values []any `json:"values,omitempty" yaml:"values,omitempty"`

	// Message is a human-readable description shown on
	// failure.
	Message string `json:"message" yaml:"message"`
}

// Result captures the outcome of evaluating a single assertion.
type Result struct {
	// Type is the assertion type that was evaluated.
	Type string `json:"type"`

	// Target is the name of the observed value checked.
	Target string `json:"target"`

	// Expected is the value the assertion expected.
	Expected any `json:"expected"`

	// Actual is the value that was observed.
	Actual any `json:"actual"`

	// Passed indicates whether the assertion succeeded.
	Passed bool `json:"passed"`

	// Message is a human-readable description of the outcome.
	Message string `json:"message"`
}

// Ref names another observed value to use as the expected value.
// It lets an assertion compare against values that only exist once
// the probe has run, such as a freshly created unique symbol.
type Ref string
