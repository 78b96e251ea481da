package object

import "fmt"

// NativeFunc is the behaviour of a callable value. this is the
// explicit receiver supplied by the caller.
type NativeFunc func(this Value, args []Value) (Value, error)

// Function is a callable object. Like any object it carries own
// properties, so members inherited from its prototype (apply,
// call) can be shadowed per function.
type Function struct {
	Object

	name     string
	behavior NativeFunc
}

// NewFunction creates a function with the given prototype. The
// function gets non-enumerable "length" and "name" own properties.
func NewFunction(
	proto *Object, name string, arity int, fn NativeFunc,
) *Function {
	f := &Function{name: name, behavior: fn}
	f.init("Function", proto)
	f.DefineOwnProperty(
		StringKey("length"),
		DataDescriptor(NumberValue(arity), false, false, true),
	)
	f.DefineOwnProperty(
		StringKey("name"),
		DataDescriptor(StringValue(name), false, false, true),
	)
	return f
}

func (f *Function) Kind() Kind { return KindFunction }

func (f *Function) String() string {
	return fmt.Sprintf("function %s() { [native code] }", f.name)
}

// Name returns the name the function was created with.
func (f *Function) Name() string { return f.name }

// IsCallable reports whether v can be called.
func IsCallable(v Value) bool {
	f, ok := v.(*Function)
	return ok && f != nil && f.behavior != nil
}

// Call invokes fn with an explicit receiver and argument list. It
// never consults properties of fn, so shadowed apply or call
// members have no effect on it.
func Call(fn Value, this Value, args []Value) (Value, error) {
	if !IsCallable(fn) {
		return nil, NewTypeError("%s is not a function", describe(fn))
	}
	if this == nil {
		this = Undefined
	}
	res, err := fn.(*Function).behavior(this, args)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return Undefined, nil
	}
	return res, nil
}

// Arg returns args[i], or Undefined when absent.
func Arg(args []Value, i int) Value {
	if i < len(args) && args[i] != nil {
		return args[i]
	}
	return Undefined
}

func describe(v Value) string {
	if v == nil {
		return "undefined"
	}
	if v.Kind() == KindString {
		return fmt.Sprintf("%q", v.String())
	}
	return v.String()
}
