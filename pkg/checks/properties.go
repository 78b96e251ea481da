package checks

import (
	"digital.vasic.reflectprobe/pkg/object"
	"digital.vasic.reflectprobe/pkg/probe"
	"digital.vasic.reflectprobe/pkg/reflection"
)

// NewDefineProperty checks that Object.defineProperty and
// Reflect.defineProperty install static methods side by side.
func NewDefineProperty() probe.Probe {
	return newReflectionProbe(
		DefinePropertyID,
		"Attribute installation",
		"Object.defineProperty installs MyDate.withObject and "+
			"Reflect.defineProperty installs MyDate.withReflection; "+
			"both are callable and non-enumerable.",
		[]probe.Output{
			output("object_defined", "Object.defineProperty result"),
			output("reflect_defined", "Reflect.defineProperty result"),
			output("with_object", "MyDate.withObject()"),
			output("with_reflection", "MyDate.withReflection()"),
			output("with_object_enumerable", "withObject enumerable flag"),
			output("with_reflection_enumerable", "withReflection enumerable flag"),
		},
		[]probe.AssertionDef{
			{Type: "no_error", Target: "object_defined",
				Message: "Object.defineProperty"},
			{Type: "is_true", Target: "reflect_defined",
				Message: "Reflect.defineProperty"},
			{Type: "equals", Target: "with_object", Value: "Hey, Object!",
				Message: "MyDate.withObject()"},
			{Type: "equals", Target: "with_reflection", Value: "Hey, Reflect!",
				Message: "MyDate.withReflection()"},
			{Type: "is_false", Target: "with_object_enumerable",
				Message: "withObject must default to non-enumerable"},
			{Type: "is_false", Target: "with_reflection_enumerable",
				Message: "withReflection must default to non-enumerable"},
		},
		observeDefineProperty,
	)
}

func observeDefineProperty(
	r *object.Realm,
) (map[string]any, error) {
	myDate := r.NewFunction("MyDate", 0, func(
		object.Value, []object.Value,
	) (object.Value, error) {
		return object.Undefined, nil
	})

	defined, objectErr := object.DefineProperty(
		myDate, key("withObject"),
		object.ValueDescriptor(constant(r, "Hey, Object!")),
	)
	reflectOK, reflectErr := reflection.DefineProperty(
		myDate, key("withReflection"),
		object.ValueDescriptor(constant(r, "Hey, Reflect!")),
	)

	withObject, withObjectErr := r.Invoke(myDate, key("withObject"))
	withReflection, withReflectionErr := r.Invoke(
		myDate, key("withReflection"),
	)

	return map[string]any{
		"object_defined":             outcome(defined, objectErr),
		"reflect_defined":            boolOutcome(reflectOK, reflectErr),
		"with_object":                outcome(withObject, withObjectErr),
		"with_reflection":            outcome(withReflection, withReflectionErr),
		"with_object_enumerable":     enumerable(myDate, "withObject"),
		"with_reflection_enumerable": enumerable(myDate, "withReflection"),
	}, nil
}

// enumerable reports the enumerable flag of an own property, or an
// error when the property is missing.
func enumerable(target object.Value, name string) any {
	desc, found, err := reflection.GetOwnPropertyDescriptor(
		target, key(name),
	)
	if err != nil {
		return err
	}
	if !found || desc.Enumerable == nil {
		return object.NewTypeError("%s is not an own property", name)
	}
	return *desc.Enumerable
}

// NewDeleteProperty checks that the delete operator and
// Reflect.deleteProperty leave identical, idempotent post-states.
func NewDeleteProperty() probe.Probe {
	return newReflectionProbe(
		DeletePropertyID,
		"Attribute removal",
		"delete obj.user and Reflect.deleteProperty(obj, \"user\") "+
			"both leave hasOwnProperty(\"user\") false, and "+
			"deleting again changes nothing.",
		[]probe.Output{
			output("operator_deleted", "delete obj.user"),
			output("operator_has_own", "obj.hasOwnProperty(\"user\") afterwards"),
			output("operator_again", "second delete obj.user"),
			output("operator_lookup", "obj.user afterwards"),
			output("reflect_deleted", "Reflect.deleteProperty(obj, \"user\")"),
			output("reflect_has_own", "obj.hasOwnProperty(\"user\") afterwards"),
			output("reflect_again", "second Reflect.deleteProperty"),
		},
		[]probe.AssertionDef{
			{Type: "is_true", Target: "operator_deleted",
				Message: "delete operator"},
			{Type: "is_false", Target: "operator_has_own",
				Message: "user must be gone after delete"},
			{Type: "is_true", Target: "operator_again",
				Message: "repeated delete must succeed"},
			{Type: "is_undefined", Target: "operator_lookup",
				Message: "lookup of a deleted key"},
			{Type: "is_true", Target: "reflect_deleted",
				Message: "Reflect.deleteProperty"},
			{Type: "is_false", Target: "reflect_has_own",
				Message: "user must be gone after Reflect.deleteProperty"},
			{Type: "is_true", Target: "reflect_again",
				Message: "repeated Reflect.deleteProperty must succeed"},
		},
		observeDeleteProperty,
	)
}

func observeDeleteProperty(
	r *object.Realm,
) (map[string]any, error) {
	user := key("user")
	userName := object.StringValue("user")

	first := r.NewPlainObject(object.Prop("user", object.StringValue("John")))
	deleted, deleteErr := r.Delete(first, user)
	again, againErr := r.Delete(first, user)
	hasOwn, hasOwnErr := r.Invoke(first, key("hasOwnProperty"), userName)
	lookup, lookupErr := r.GetV(first, user)

	second := r.NewPlainObject(object.Prop("user", object.StringValue("John")))
	reflectDeleted, reflectErr := reflection.DeleteProperty(second, user)
	reflectAgain, reflectAgainErr := reflection.DeleteProperty(second, user)
	reflectHasOwn, reflectHasOwnErr := r.Invoke(
		second, key("hasOwnProperty"), userName,
	)

	return map[string]any{
		"operator_deleted": boolOutcome(deleted, deleteErr),
		"operator_has_own": outcome(hasOwn, hasOwnErr),
		"operator_again":   boolOutcome(again, againErr),
		"operator_lookup":  outcome(lookup, lookupErr),
		"reflect_deleted":  boolOutcome(reflectDeleted, reflectErr),
		"reflect_has_own":  outcome(reflectHasOwn, reflectHasOwnErr),
		"reflect_again":    boolOutcome(reflectAgain, reflectAgainErr),
	}, nil
}
