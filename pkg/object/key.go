package object

// Key is a property key: either a string or a symbol. The zero
// Key is the empty string key. Keys are comparable and may be used
// as map keys; two symbol keys are equal only when they hold the
// same symbol.
type Key struct {
	name string
	sym  *Symbol
}

// StringKey returns the key for a string property name.
func StringKey(name string) Key { return Key{name: name} }

// SymbolKey returns the key for a symbol.
func SymbolKey(s *Symbol) Key { return Key{sym: s} }

// IsSymbol reports whether the key is symbol-keyed.
func (k Key) IsSymbol() bool { return k.sym != nil }

// Symbol returns the symbol of a symbol key, or nil.
func (k Key) Symbol() *Symbol { return k.sym }

// Name returns the string of a string key. Symbol keys return "".
func (k Key) Name() string { return k.name }

// Equal reports whether both keys denote the same property.
func (k Key) Equal(other Key) bool { return k == other }

// Value returns the key as a runtime value.
func (k Key) Value() Value {
	if k.sym != nil {
		return k.sym
	}
	return StringValue(k.name)
}

func (k Key) String() string {
	if k.sym != nil {
		return k.sym.String()
	}
	return k.name
}

// ToPropertyKey converts a value to a property key. Symbols stay
// symbols; every other primitive is stringified. Objects are
// rejected since no toString dispatch is modelled.
func ToPropertyKey(v Value) (Key, error) {
	switch tv := v.(type) {
	case *Symbol:
		return SymbolKey(tv), nil
	case StringValue:
		return StringKey(string(tv)), nil
	case nil:
		return StringKey("undefined"), nil
	}
	if IsPrimitive(v) {
		return StringKey(v.String()), nil
	}
	return Key{}, NewTypeError(
		"cannot convert %s to a property key", v.Kind(),
	)
}

// Keys converts a mix of strings and symbols into keys. Any other
// argument type panics.
func Keys(parts ...any) []Key {
	out := make([]Key, 0, len(parts))
	for _, p := range parts {
		switch tp := p.(type) {
		case string:
			out = append(out, StringKey(tp))
		case *Symbol:
			out = append(out, SymbolKey(tp))
		case Key:
			out = append(out, tp)
		default:
			panic("object.Keys: unsupported key type")
		}
	}
	return out
}

// KeysEqual compares two key sequences element by element.
func KeysEqual(a, b []Key) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
