// Package checks implements the reflection probes: each one builds
// its own values in a fresh realm, exercises a direct-style
// operation next to its reflective counterpart and asserts that
// both behave as documented.
package checks

import (
	"context"
	"fmt"
	"math"
	"time"

	"digital.vasic.reflectprobe/pkg/assertion"
	"digital.vasic.reflectprobe/pkg/object"
	"digital.vasic.reflectprobe/pkg/probe"
)

// Category is the category shared by every probe in this package.
const Category = "reflection"

// Probe identifiers, in execution order.
const (
	ApplyEquivalenceID       probe.ID = "apply-equivalence"
	ApplyShadowingID         probe.ID = "apply-shadowing"
	ReflectApplyID           probe.ID = "reflect-apply"
	DefinePropertyID         probe.ID = "define-property"
	DeletePropertyID         probe.ID = "delete-property"
	GetPrimitiveID           probe.ID = "get-primitive"
	HasMembershipID          probe.ID = "has-membership"
	OwnKeysID                probe.ID = "own-keys"
	ApplyPrototypeOverrideID probe.ID = "apply-prototype-override"
)

// observeFunc computes the named values a probe asserts on. Errors
// the probe provokes on purpose are stored as values; a returned
// error means the probe could not set up its scenario.
type observeFunc func(r *object.Realm) (map[string]any, error)

// reflectionProbe is a probe whose behaviour is a single
// observation over a fresh realm.
type reflectionProbe struct {
	probe.BaseProbe

	observe observeFunc
}

func newReflectionProbe(
	id probe.ID,
	name, description string,
	outputs []probe.Output,
	assertions []probe.AssertionDef,
	observe observeFunc,
) *reflectionProbe {
	p := &reflectionProbe{
		BaseProbe: probe.NewBaseProbe(
			id, name, description, Category, nil,
		),
		observe: observe,
	}
	p.Declare(outputs, assertions)
	p.SetAssertionEngine(assertion.NewProbeAdapter(assertion.NewEngine()))
	return p
}

// Execute observes the scenario in a new realm and evaluates the
// declared assertions.
func (p *reflectionProbe) Execute(
	ctx context.Context,
) (*probe.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	values, err := p.observe(object.NewRealm())
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", p.ID(), err)
	}

	result := p.Evaluate(start, values)

	if err := p.WriteJSONResult(result); err != nil {
		return result, err
	}
	if err := p.WriteMarkdownReport(result); err != nil {
		return result, err
	}
	return result, nil
}

// outcome folds a value-or-error pair into one observed value.
func outcome(v object.Value, err error) any {
	if err != nil {
		return err
	}
	return v
}

func boolOutcome(b bool, err error) any {
	if err != nil {
		return err
	}
	return b
}

// addFunction returns add(extra), which sums the receiver's arg1
// and arg2 fields with extra.
func addFunction(r *object.Realm) *object.Function {
	return r.NewFunction("add", 1, func(
		this object.Value, args []object.Value,
	) (object.Value, error) {
		a1, err := r.GetV(this, object.StringKey("arg1"))
		if err != nil {
			return nil, err
		}
		a2, err := r.GetV(this, object.StringKey("arg2"))
		if err != nil {
			return nil, err
		}
		return toNumber(a1) + toNumber(a2) +
			toNumber(object.Arg(args, 0)), nil
	})
}

// raiser returns a function that always throws TypeError "OMG!".
func raiser(r *object.Realm) *object.Function {
	return r.NewFunction("", 0, func(
		object.Value, []object.Value,
	) (object.Value, error) {
		return nil, object.NewTypeError("OMG!")
	})
}

// constant returns a function that ignores its arguments and
// returns s.
func constant(r *object.Realm, s string) *object.Function {
	return r.NewFunction("", 0, func(
		object.Value, []object.Value,
	) (object.Value, error) {
		return object.StringValue(s), nil
	})
}

func operands(
	r *object.Realm, arg1, arg2 float64,
) *object.Object {
	return r.NewPlainObject(
		object.Prop("arg1", object.NumberValue(arg1)),
		object.Prop("arg2", object.NumberValue(arg2)),
	)
}

func toNumber(v object.Value) object.NumberValue {
	switch n := v.(type) {
	case object.NumberValue:
		return n
	case object.BoolValue:
		if n {
			return 1
		}
		return 0
	case object.NullValue:
		return 0
	}
	return object.NumberValue(math.NaN())
}

func key(name string) object.Key { return object.StringKey(name) }

func output(name, description string) probe.Output {
	return probe.Output{Name: name, Description: description}
}

var omg = map[string]any{"name": "TypeError", "message": "OMG!"}
