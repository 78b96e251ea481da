package probe

// Definition describes a probe declaratively: its identity,
// ordering and the assertions it makes. Plan files and reports use
// it; the probe itself supplies the behaviour.
type Definition struct {
	ID           ID             `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Description  string         `json:"description" yaml:"description"`
	Category     string         `json:"category" yaml:"category"`
	Dependencies []ID           `json:"dependencies" yaml:"dependencies"`
	Outputs      []Output       `json:"outputs" yaml:"outputs"`
	Assertions   []AssertionDef `json:"assertions" yaml:"assertions"`
}

// Output describes a named value observed by a probe.
type Output struct {
	// Name is the output identifier.
	Name string `json:"name" yaml:"name"`

	// Description explains what this output represents.
	Description string `json:"description" yaml:"description"`
}

// AssertionDef defines a single assertion to evaluate against an
// observed value.
type AssertionDef struct {
	// Type is the assertion type (e.g., "equals", "throws",
	// "is_true").
	Type string `json:"type" yaml:"type"`

	// Target is the name of the observed value to check.
	Target string `json:"target" yaml:"target"`

	// Value is the expected value for single-value assertions.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Values holds expected values for multi-value assertions.
	Values []any `json:"values,omitempty" yaml:"values,omitempty"`

	// Message is a human-readable description shown on failure.
	Message string `json:"message" yaml:"message"`
}
