package checks

import (
	"digital.vasic.reflectprobe/pkg/object"
	"digital.vasic.reflectprobe/pkg/probe"
	"digital.vasic.reflectprobe/pkg/reflection"
)

// NewGetPrimitive checks that ordinary access boxes a number while
// Reflect.get rejects it.
func NewGetPrimitive() probe.Probe {
	return newReflectionProbe(
		GetPrimitiveID,
		"Lookup on a primitive",
		"(1)[\"userName\"] is undefined, while "+
			"Reflect.get(1, \"userName\") raises a TypeError.",
		[]probe.Output{
			output("ordinary", "(1)[\"userName\"]"),
			output("reflect", "Reflect.get(1, \"userName\")"),
		},
		[]probe.AssertionDef{
			{Type: "is_undefined", Target: "ordinary",
				Message: "ordinary access boxes the number"},
			{Type: "throws", Target: "reflect",
				Value: map[string]any{
					"name":    "TypeError",
					"message": "Reflect.get called on non-object",
				},
				Message: "Reflect.get requires an object"},
		},
		observeGetPrimitive,
	)
}

func observeGetPrimitive(
	r *object.Realm,
) (map[string]any, error) {
	one := object.NumberValue(1)
	ordinary, ordinaryErr := r.GetV(one, key("userName"))
	reflected, reflectErr := reflection.Get(one, key("userName"))

	return map[string]any{
		"ordinary": outcome(ordinary, ordinaryErr),
		"reflect":  outcome(reflected, reflectErr),
	}, nil
}

// NewHasMembership checks that the in operator and Reflect.has
// test presence rather than truthiness.
func NewHasMembership() probe.Probe {
	return newReflectionProbe(
		HasMembershipID,
		"Membership testing",
		"\"superman\" in {superman: \"\"} and "+
			"Reflect.has({superman: \"\"}, \"superman\") are both true.",
		[]probe.Output{
			output("in", "\"superman\" in obj"),
			output("reflect", "Reflect.has(obj, \"superman\")"),
			output("falsy_agree", "in and Reflect.has agree on keys holding falsy values"),
		},
		[]probe.AssertionDef{
			{Type: "is_true", Target: "in",
				Message: "in operator on an empty-string value"},
			{Type: "is_true", Target: "reflect",
				Message: "Reflect.has on an empty-string value"},
			{Type: "is_true", Target: "falsy_agree",
				Message: "presence must not depend on truthiness"},
		},
		observeHasMembership,
	)
}

func observeHasMembership(
	r *object.Realm,
) (map[string]any, error) {
	obj := r.NewPlainObject(
		object.Prop("superman", object.StringValue("")),
	)
	in, inErr := object.In(key("superman"), obj)
	has, hasErr := reflection.Has(obj, key("superman"))

	falsy := r.NewPlainObject(
		object.Prop("zero", object.NumberValue(0)),
		object.Prop("no", object.BoolValue(false)),
		object.Prop("nothing", object.Null),
		object.Prop("unset", object.Undefined),
	)
	agree := true
	for _, k := range falsy.OwnPropertyKeys() {
		a, err := object.In(k, falsy)
		if err != nil {
			return nil, err
		}
		b, err := reflection.Has(falsy, k)
		if err != nil {
			return nil, err
		}
		agree = agree && a && b
	}

	return map[string]any{
		"in":          boolOutcome(in, inErr),
		"reflect":     boolOutcome(has, hasErr),
		"falsy_agree": agree,
	}, nil
}
