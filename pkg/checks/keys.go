package checks

import (
	"digital.vasic.reflectprobe/pkg/assertion"
	"digital.vasic.reflectprobe/pkg/object"
	"digital.vasic.reflectprobe/pkg/probe"
	"digital.vasic.reflectprobe/pkg/reflection"
)

// NewOwnKeys checks that Reflect.ownKeys equals
// getOwnPropertyNames followed by getOwnPropertySymbols, with
// symbol identity preserved.
func NewOwnKeys() probe.Probe {
	return newReflectionProbe(
		OwnKeysID,
		"Own-key enumeration",
		"For {id: 1, [Symbol.for(\"password\")]: 123, "+
			"[Symbol(\"user\")]: \"John\"}, names then symbols and "+
			"Reflect.ownKeys both yield [id, password, user].",
		[]probe.Output{
			output("ordinary", "getOwnPropertyNames ++ getOwnPropertySymbols"),
			output("reflect", "Reflect.ownKeys(obj)"),
			output("expected", "[id, Symbol.for(\"password\"), user]"),
			output("impostor", "the expected list with a new Symbol(\"user\")"),
		},
		[]probe.AssertionDef{
			{Type: "equals", Target: "ordinary",
				Value:   assertion.Ref("expected"),
				Message: "names then symbols"},
			{Type: "equals", Target: "reflect",
				Value:   assertion.Ref("expected"),
				Message: "Reflect.ownKeys"},
			{Type: "equals", Target: "reflect",
				Value:   assertion.Ref("ordinary"),
				Message: "both enumeration styles must agree"},
			{Type: "not_equals", Target: "reflect",
				Value:   assertion.Ref("impostor"),
				Message: "a unique symbol must not equal one with the same description"},
			{Type: "exact_count", Target: "reflect", Value: 3,
				Message: "own key count"},
			{Type: "no_duplicates", Target: "reflect",
				Message: "own keys"},
		},
		observeOwnKeys,
	)
}

func observeOwnKeys(
	r *object.Realm,
) (map[string]any, error) {
	password := object.SymbolFor("password")
	user := object.NewSymbol("user")
	obj := r.NewPlainObject(
		object.Prop("id", object.NumberValue(1)),
		object.SymProp(password, object.NumberValue(123)),
		object.SymProp(user, object.StringValue("John")),
	)

	names, err := r.GetOwnPropertyNames(obj)
	if err != nil {
		return nil, err
	}
	symbols, err := r.GetOwnPropertySymbols(obj)
	if err != nil {
		return nil, err
	}
	ordinary := append(append([]object.Key{}, names...), symbols...)

	reflected, reflectErr := reflection.OwnKeys(obj)
	var reflectKeys any = reflected
	if reflectErr != nil {
		reflectKeys = reflectErr
	}

	// The registry lookup by name must return the same symbol.
	expected := object.Keys("id", object.SymbolFor("password"), user)
	impostor := object.Keys("id", password, object.NewSymbol("user"))

	return map[string]any{
		"ordinary": ordinary,
		"reflect":  reflectKeys,
		"expected": expected,
		"impostor": impostor,
	}, nil
}
