package object

import (
	"math"
	"unicode/utf16"
)

// Realm holds the intrinsic prototypes that ordinary values
// inherit from. Builtins such as Function.prototype.apply are
// installed as ordinary properties, so they can be overridden per
// realm without affecting other realms.
type Realm struct {
	ObjectPrototype   *Object
	FunctionPrototype *Object
	ArrayPrototype    *Object
	NumberPrototype   *Object
	StringPrototype   *Object
	BooleanPrototype  *Object
	SymbolPrototype   *Object
}

// NewRealm creates a realm with freshly installed builtins.
func NewRealm() *Realm {
	objProto := NewObject(nil)
	r := &Realm{
		ObjectPrototype:   objProto,
		FunctionPrototype: NewObject(objProto),
		ArrayPrototype:    NewObject(objProto),
		NumberPrototype:   NewObject(objProto),
		StringPrototype:   NewObject(objProto),
		BooleanPrototype:  NewObject(objProto),
		SymbolPrototype:   NewObject(objProto),
	}
	r.ArrayPrototype.class = "Array"
	r.installBuiltins()
	return r
}

func (r *Realm) installBuiltins() {
	r.defineMethod(r.FunctionPrototype, "apply", 2, functionApply)
	r.defineMethod(r.FunctionPrototype, "call", 1, functionCall)
	r.defineMethod(
		r.ObjectPrototype, "hasOwnProperty", 1, r.objectHasOwnProperty,
	)
}

// defineMethod installs a builtin the way the language does:
// writable, non-enumerable, configurable.
func (r *Realm) defineMethod(
	target *Object, name string, arity int, fn NativeFunc,
) {
	target.DefineOwnProperty(
		StringKey(name),
		DataDescriptor(
			r.NewFunction(name, arity, fn), true, false, true,
		),
	)
}

// NewFunction creates a function inheriting Function.prototype.
func (r *Realm) NewFunction(
	name string, arity int, fn NativeFunc,
) *Function {
	return NewFunction(r.FunctionPrototype, name, arity, fn)
}

// Entry is one key/value pair of an object literal.
type Entry struct {
	Key   Key
	Value Value
}

// Prop is a string-keyed literal entry.
func Prop(name string, v Value) Entry {
	return Entry{Key: StringKey(name), Value: v}
}

// SymProp is a symbol-keyed literal entry.
func SymProp(s *Symbol, v Value) Entry {
	return Entry{Key: SymbolKey(s), Value: v}
}

// NewPlainObject creates an object literal inheriting
// Object.prototype, defining entries in order.
func (r *Realm) NewPlainObject(entries ...Entry) *Object {
	o := NewObject(r.ObjectPrototype)
	for _, e := range entries {
		o.CreateDataProperty(e.Key, e.Value)
	}
	return o
}

// NewArray creates an array-like object with index properties and
// a non-enumerable length.
func (r *Realm) NewArray(elems ...Value) *Object {
	a := NewObject(r.ArrayPrototype)
	a.class = "Array"
	for i, v := range elems {
		a.CreateDataProperty(StringKey(formatNumber(float64(i))), v)
	}
	a.DefineOwnProperty(
		StringKey("length"),
		DataDescriptor(NumberValue(len(elems)), true, false, false),
	)
	return a
}

// ToObject boxes primitives into wrapper objects. Undefined and
// null raise a TypeError.
func (r *Realm) ToObject(v Value) (*Object, error) {
	if o, ok := AsObject(v); ok {
		return o, nil
	}
	if IsNullish(v) {
		return nil, NewTypeError(
			"Cannot convert undefined or null to object",
		)
	}
	proto, class := r.prototypeFor(v)
	o := NewObject(proto)
	o.class = class
	o.primitive = v
	if s, ok := v.(StringValue); ok {
		o.DefineOwnProperty(
			StringKey("length"),
			DataDescriptor(stringLength(s), false, false, false),
		)
	}
	return o, nil
}

func (r *Realm) prototypeFor(v Value) (*Object, string) {
	switch v.Kind() {
	case KindNumber:
		return r.NumberPrototype, "Number"
	case KindString:
		return r.StringPrototype, "String"
	case KindBoolean:
		return r.BooleanPrototype, "Boolean"
	case KindSymbol:
		return r.SymbolPrototype, "Symbol"
	}
	return r.ObjectPrototype, "Object"
}

func stringLength(s StringValue) NumberValue {
	return NumberValue(len(utf16.Encode([]rune(string(s)))))
}

// functionApply implements Function.prototype.apply.
func functionApply(this Value, args []Value) (Value, error) {
	if !IsCallable(this) {
		return nil, NewTypeError(
			"Function.prototype.apply was called on %s, "+
				"which is not a function",
			describe(this),
		)
	}
	argArray := Arg(args, 1)
	if IsNullish(argArray) {
		return Call(this, Arg(args, 0), nil)
	}
	list, err := CreateListFromArrayLike(argArray)
	if err != nil {
		return nil, err
	}
	return Call(this, Arg(args, 0), list)
}

// functionCall implements Function.prototype.call.
func functionCall(this Value, args []Value) (Value, error) {
	if !IsCallable(this) {
		return nil, NewTypeError(
			"Function.prototype.call was called on %s, "+
				"which is not a function",
			describe(this),
		)
	}
	var rest []Value
	if len(args) > 1 {
		rest = args[1:]
	}
	return Call(this, Arg(args, 0), rest)
}

func (r *Realm) objectHasOwnProperty(
	this Value, args []Value,
) (Value, error) {
	key, err := ToPropertyKey(Arg(args, 0))
	if err != nil {
		return nil, err
	}
	o, err := r.ToObject(this)
	if err != nil {
		return nil, err
	}
	return BoolValue(o.HasOwnProperty(key)), nil
}

// CreateListFromArrayLike reads length and the index properties of
// an array-like object into a slice.
func CreateListFromArrayLike(v Value) ([]Value, error) {
	o, ok := AsObject(v)
	if !ok {
		return nil, NewTypeError(
			"CreateListFromArrayLike called on non-object",
		)
	}
	lv, err := o.Get(StringKey("length"), v)
	if err != nil {
		return nil, err
	}
	n, err := listLength(lv)
	if err != nil {
		return nil, err
	}
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		elem, err := o.Get(StringKey(formatNumber(float64(i))), v)
		if err != nil {
			return nil, err
		}
		out[i] = elem
	}
	return out, nil
}

// MaxListLength bounds the argument lists built from array-likes.
const MaxListLength = 1 << 16

// listLength converts an array-like length to a slice length. NaN,
// negative and non-numeric lengths count as zero.
func listLength(lv Value) (int, error) {
	num, ok := lv.(NumberValue)
	if !ok {
		return 0, nil
	}
	f := math.Trunc(float64(num))
	if math.IsNaN(f) || f <= 0 {
		return 0, nil
	}
	if f > MaxListLength {
		return 0, NewError(RangeError,
			"Too many arguments in function call (only %d allowed)",
			MaxListLength,
		)
	}
	return int(f), nil
}
