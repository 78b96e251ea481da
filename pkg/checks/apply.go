package checks

import (
	"digital.vasic.reflectprobe/pkg/object"
	"digital.vasic.reflectprobe/pkg/probe"
	"digital.vasic.reflectprobe/pkg/reflection"
)

// NewApplyEquivalence checks that add.apply, add.call and a direct
// receiver.add(...) call agree.
func NewApplyEquivalence() probe.Probe {
	return newReflectionProbe(
		ApplyEquivalenceID,
		"Explicit-receiver invocation",
		"add.apply({arg1: 10, arg2: 20}, [100]) returns 130, "+
			"the same as call and a direct method call.",
		[]probe.Output{
			output("apply", "add.apply(receiver, [100])"),
			output("call", "add.call(receiver, 100)"),
			output("direct", "receiver.add(100)"),
		},
		[]probe.AssertionDef{
			{Type: "equals", Target: "apply", Value: 130,
				Message: "apply with an explicit receiver"},
			{Type: "equals", Target: "call", Value: 130,
				Message: "call with an explicit receiver"},
			{Type: "equals", Target: "direct", Value: 130,
				Message: "direct method call"},
		},
		observeApplyEquivalence,
	)
}

func observeApplyEquivalence(
	r *object.Realm,
) (map[string]any, error) {
	add := addFunction(r)
	recv := operands(r, 10, 20)

	viaApply, applyErr := r.Invoke(
		add, key("apply"), recv, r.NewArray(object.NumberValue(100)),
	)
	viaCall, callErr := r.Invoke(
		add, key("call"), recv, object.NumberValue(100),
	)

	if err := r.Assign(recv, key("add"), add); err != nil {
		return nil, err
	}
	direct, directErr := r.Invoke(
		recv, key("add"), object.NumberValue(100),
	)

	return map[string]any{
		"apply":  outcome(viaApply, applyErr),
		"call":   outcome(viaCall, callErr),
		"direct": outcome(direct, directErr),
	}, nil
}

// NewApplyShadowing checks that overwriting apply on a single
// function breaks add.apply for that function only.
func NewApplyShadowing() probe.Probe {
	return newReflectionProbe(
		ApplyShadowingID,
		"Per-member apply shadowing",
		"After add.apply is overwritten with a function throwing "+
			"TypeError \"OMG!\", add.apply raises exactly that "+
			"error while other functions still apply normally.",
		[]probe.Output{
			output("own_apply", "add has its own apply property"),
			output("shadowed", "add.apply({}, []) after shadowing"),
			output("sibling", "another function's apply"),
		},
		[]probe.AssertionDef{
			{Type: "is_true", Target: "own_apply",
				Message: "apply must be shadowed on add itself"},
			{Type: "throws", Target: "shadowed", Value: omg,
				Message: "shadowed apply"},
			{Type: "equals", Target: "sibling", Value: 130,
				Message: "Function.prototype.apply must be untouched"},
		},
		observeApplyShadowing,
	)
}

func observeApplyShadowing(
	r *object.Realm,
) (map[string]any, error) {
	add := addFunction(r)
	if err := r.Assign(add, key("apply"), raiser(r)); err != nil {
		return nil, err
	}
	own, ownErr := r.HasOwn(add, key("apply"))

	shadowed, shadowErr := r.Invoke(
		add, key("apply"), r.NewPlainObject(), r.NewArray(),
	)
	sibling, siblingErr := r.Invoke(
		addFunction(r), key("apply"),
		operands(r, 10, 20), r.NewArray(object.NumberValue(100)),
	)

	return map[string]any{
		"own_apply": boolOutcome(own, ownErr),
		"shadowed":  outcome(shadowed, shadowErr),
		"sibling":   outcome(sibling, siblingErr),
	}, nil
}

// NewReflectApply checks that Reflect.apply ignores a shadowed
// apply member.
func NewReflectApply() probe.Probe {
	return newReflectionProbe(
		ReflectApplyID,
		"Reflect.apply immunity",
		"With add.apply shadowed, Reflect.apply(add, "+
			"{arg1: 40, arg2: 20}, [200]) still returns 260.",
		[]probe.Output{
			output("shadowed", "add.apply after shadowing"),
			output("reflect", "Reflect.apply(add, receiver, [200])"),
		},
		[]probe.AssertionDef{
			{Type: "throws", Target: "shadowed", Value: omg,
				Message: "shadow must be in place"},
			{Type: "equals", Target: "reflect", Value: 260,
				Message: "Reflect.apply must not read add.apply"},
		},
		observeReflectApply,
	)
}

func observeReflectApply(
	r *object.Realm,
) (map[string]any, error) {
	add := addFunction(r)
	if err := r.Assign(add, key("apply"), raiser(r)); err != nil {
		return nil, err
	}
	recv := operands(r, 40, 20)

	shadowed, shadowErr := r.Invoke(
		add, key("apply"), recv, r.NewArray(object.NumberValue(200)),
	)
	reflected, reflectErr := reflection.Apply(
		add, recv, []object.Value{object.NumberValue(200)},
	)

	return map[string]any{
		"shadowed": outcome(shadowed, shadowErr),
		"reflect":  outcome(reflected, reflectErr),
	}, nil
}

// NewApplyPrototypeOverride checks the realm-wide hazard:
// overriding Function.prototype.apply breaks apply for every
// function, while Reflect.apply and other realms are unaffected.
func NewApplyPrototypeOverride() probe.Probe {
	return newReflectionProbe(
		ApplyPrototypeOverrideID,
		"Prototype-level apply override",
		"Overwriting Function.prototype.apply breaks .apply on "+
			"every function of the realm; Reflect.apply and a "+
			"separate realm keep working.",
		[]probe.Output{
			output("add_apply", "add.apply after the override"),
			output("other_apply", "another function's apply"),
			output("reflect", "Reflect.apply(add, receiver, [200])"),
			output("fresh_realm", "add.apply in an untouched realm"),
		},
		[]probe.AssertionDef{
			{Type: "throws", Target: "add_apply", Value: omg,
				Message: "overridden prototype apply"},
			{Type: "throws", Target: "other_apply", Value: omg,
				Message: "override must reach every function"},
			{Type: "equals", Target: "reflect", Value: 260,
				Message: "Reflect.apply must not read apply"},
			{Type: "equals", Target: "fresh_realm", Value: 130,
				Message: "override must stay within its realm"},
		},
		observeApplyPrototypeOverride,
	)
}

func observeApplyPrototypeOverride(
	r *object.Realm,
) (map[string]any, error) {
	if err := r.Assign(
		r.FunctionPrototype, key("apply"), raiser(r),
	); err != nil {
		return nil, err
	}
	add := addFunction(r)

	addApply, addErr := r.Invoke(
		add, key("apply"), r.NewPlainObject(), r.NewArray(),
	)
	otherApply, otherErr := r.Invoke(
		constant(r, "unused"), key("apply"),
		object.Undefined, r.NewArray(),
	)
	reflected, reflectErr := reflection.Apply(
		add, operands(r, 40, 20),
		[]object.Value{object.NumberValue(200)},
	)

	fresh := object.NewRealm()
	freshApply, freshErr := fresh.Invoke(
		addFunction(fresh), key("apply"),
		operands(fresh, 10, 20), fresh.NewArray(object.NumberValue(100)),
	)

	return map[string]any{
		"add_apply":   outcome(addApply, addErr),
		"other_apply": outcome(otherApply, otherErr),
		"reflect":     outcome(reflected, reflectErr),
		"fresh_realm": outcome(freshApply, freshErr),
	}, nil
}
