// Package object implements a small dynamic object model: primitive
// values, symbols, property keys and descriptors, ordinary objects,
// callable members and the realm intrinsics they inherit from. It
// also provides the ordinary "direct style" operations (property
// access, the delete and in operators, Object statics) whose
// behaviour the reflection package is contrasted against.
package object

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindSymbol
	KindObject
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
	String() string
}

// UndefinedValue is the type of Undefined.
type UndefinedValue struct{}

func (UndefinedValue) Kind() Kind     { return KindUndefined }
func (UndefinedValue) String() string { return "undefined" }

// NullValue is the type of Null.
type NullValue struct{}

func (NullValue) Kind() Kind     { return KindNull }
func (NullValue) String() string { return "null" }

// Undefined and Null are the two empty values.
var (
	Undefined Value = UndefinedValue{}
	Null      Value = NullValue{}
)

// BoolValue is a boolean primitive.
type BoolValue bool

func (BoolValue) Kind() Kind { return KindBoolean }

func (v BoolValue) String() string {
	return strconv.FormatBool(bool(v))
}

// NumberValue is an IEEE-754 double primitive.
type NumberValue float64

func (NumberValue) Kind() Kind { return KindNumber }

func (v NumberValue) String() string {
	return formatNumber(float64(v))
}

// StringValue is a string primitive.
type StringValue string

func (StringValue) Kind() Kind { return KindString }

func (v StringValue) String() string { return string(v) }

// IsPrimitive reports whether v is not an object or function.
func IsPrimitive(v Value) bool {
	switch v.Kind() {
	case KindObject, KindFunction:
		return false
	}
	return true
}

// IsNullish reports whether v is undefined or null.
func IsNullish(v Value) bool {
	if v == nil {
		return true
	}
	k := v.Kind()
	return k == KindUndefined || k == KindNull
}

// SameValue compares two values by identity for symbols, objects
// and functions and by value for primitives. NaN equals NaN and
// +0 differs from -0.
func SameValue(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case UndefinedValue, NullValue:
		return true
	case BoolValue:
		return av == b.(BoolValue)
	case StringValue:
		return av == b.(StringValue)
	case NumberValue:
		x, y := float64(av), float64(b.(NumberValue))
		if math.IsNaN(x) && math.IsNaN(y) {
			return true
		}
		if x == 0 && y == 0 {
			return math.Signbit(x) == math.Signbit(y)
		}
		return x == y
	default:
		return a == b
	}
}

// Truthy applies the language's boolean coercion.
func Truthy(v Value) bool {
	switch tv := v.(type) {
	case nil, UndefinedValue, NullValue:
		return false
	case BoolValue:
		return bool(tv)
	case NumberValue:
		f := float64(tv)
		return f != 0 && !math.IsNaN(f)
	case StringValue:
		return tv != ""
	default:
		return true
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
