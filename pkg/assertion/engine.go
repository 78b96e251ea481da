package assertion

import (
	"fmt"
	"maps"
	"sync"
)

// Evaluator checks one assertion type against an observed value,
// returning whether it passed and a human-readable explanation.
type Evaluator func(assertion Definition, value any) (bool, string)

// Engine evaluates assertions against observed values.
type Engine interface {
	// Evaluate checks a single assertion against value.
	Evaluate(assertion Definition, value any) Result

	// EvaluateAll checks each assertion against the value named by
	// its Target, resolving Ref expectations from the same map.
	EvaluateAll(
		assertions []Definition,
		values map[string]any,
	) []Result

	// Register adds a custom evaluator for the given assertion
	// type. Returns an error if the type is already registered.
	Register(assertionType string, evaluator Evaluator) error
}

// builtins maps every assertion type available without
// registration to its evaluator.
var builtins = map[string]Evaluator{
	"equals":        evaluateEquals,
	"not_equals":    evaluateNotEquals,
	"is_true":       evaluateIsTrue,
	"is_false":      evaluateIsFalse,
	"is_undefined":  evaluateIsUndefined,
	"throws":        evaluateThrows,
	"no_error":      evaluateNoError,
	"not_empty":     evaluateNotEmpty,
	"contains":      evaluateContains,
	"min_count":     evaluateMinCount,
	"exact_count":   evaluateExactCount,
	"no_duplicates": evaluateNoDuplicates,
}

// DefaultEngine is the standard Engine implementation. It is
// safe for concurrent use.
type DefaultEngine struct {
	mu         sync.RWMutex
	evaluators map[string]Evaluator
}

// NewEngine creates a DefaultEngine with the built-in evaluators.
func NewEngine() *DefaultEngine {
	return &DefaultEngine{evaluators: maps.Clone(builtins)}
}

// Register adds a custom evaluator for the given assertion type.
func (e *DefaultEngine) Register(
	assertionType string,
	evaluator Evaluator,
) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.evaluators[assertionType]; exists {
		return fmt.Errorf(
			"assertion type already registered: %s",
			assertionType,
		)
	}
	e.evaluators[assertionType] = evaluator
	return nil
}

// HasEvaluator reports whether assertionType can be evaluated.
func (e *DefaultEngine) HasEvaluator(assertionType string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, exists := e.evaluators[assertionType]
	return exists
}

// Evaluate runs a single assertion against the provided value. A
// failing assertion's Message, if any, prefixes the explanation.
func (e *DefaultEngine) Evaluate(
	assertion Definition,
	value any,
) Result {
	e.mu.RLock()
	evaluator, exists := e.evaluators[assertion.Type]
	e.mu.RUnlock()

	if !exists {
		return failed(assertion, fmt.Sprintf(
			"unknown assertion type: %s", assertion.Type,
		))
	}

	passed, message := evaluator(assertion, value)
	if !passed && assertion.Message != "" {
		message = assertion.Message + ": " + message
	}
	return Result{
		Type:     assertion.Type,
		Target:   assertion.Target,
		Expected: assertion.Value,
		Actual:   value,
		Passed:   passed,
		Message:  message,
	}
}

// EvaluateAll runs assertions in order. An assertion whose target
// or referenced value is missing from values fails without being
// evaluated.
func (e *DefaultEngine) EvaluateAll(
	assertions []Definition,
	values map[string]any,
) []Result {
	results := make([]Result, 0, len(assertions))
	for _, a := range assertions {
		value, exists := values[a.Target]
		if !exists {
			results = append(results, failed(a, fmt.Sprintf(
				"target not found: %s", a.Target,
			)))
			continue
		}
		resolved, err := resolve(a, values)
		if err != nil {
			results = append(results, failed(a, err.Error()))
			continue
		}
		results = append(results, e.Evaluate(resolved, value))
	}
	return results
}

// resolve substitutes a Ref expectation with the value it names.
func resolve(a Definition, values map[string]any) (Definition, error) {
	ref, ok := a.Value.(Ref)
	if !ok {
		return a, nil
	}
	v, found := values[string(ref)]
	if !found {
		return a, fmt.Errorf("reference not found: %s", ref)
	}
	a.Value = v
	return a, nil
}

func failed(a Definition, message string) Result {
	return Result{
		Type:    a.Type,
		Target:  a.Target,
		Message: message,
	}
}
