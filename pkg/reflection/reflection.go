// Package reflection is the fixed reflective API over the object
// model. Every operation is a free function that works on the
// target's internal methods directly; none of them reads a
// property of its arguments to decide what to do, so per-object
// overrides such as a shadowed apply member cannot affect them.
//
// Unlike ordinary property access, every operation requires a real
// object target and raises a TypeError for primitives.
package reflection

import (
	"digital.vasic.reflectprobe/pkg/object"
)

func requireObject(
	op string, target object.Value,
) (*object.Object, error) {
	o, ok := object.AsObject(target)
	if !ok {
		return nil, object.NewTypeError(
			"Reflect.%s called on non-object", op,
		)
	}
	return o, nil
}

func receiverOr(
	receiver []object.Value, target object.Value,
) object.Value {
	if len(receiver) > 0 && receiver[0] != nil {
		return receiver[0]
	}
	return target
}

// Apply calls target with an explicit receiver and argument list.
func Apply(
	target, this object.Value, args []object.Value,
) (object.Value, error) {
	if !object.IsCallable(target) {
		return nil, object.NewTypeError(
			"Reflect.apply target is not a function",
		)
	}
	return object.Call(target, this, args)
}

// DefineProperty defines key on target. A rejected definition
// reports false instead of raising.
func DefineProperty(
	target object.Value,
	key object.Key,
	desc object.PropertyDescriptor,
) (bool, error) {
	o, err := requireObject("defineProperty", target)
	if err != nil {
		return false, err
	}
	return o.DefineOwnProperty(key, desc), nil
}

// DeleteProperty removes an own property, reporting false for a
// non-configurable one.
func DeleteProperty(
	target object.Value, key object.Key,
) (bool, error) {
	o, err := requireObject("deleteProperty", target)
	if err != nil {
		return false, err
	}
	return o.Delete(key), nil
}

// Get reads key from target. The optional receiver is passed to
// getters; it defaults to target.
func Get(
	target object.Value,
	key object.Key,
	receiver ...object.Value,
) (object.Value, error) {
	o, err := requireObject("get", target)
	if err != nil {
		return nil, err
	}
	return o.Get(key, receiverOr(receiver, target))
}

// Set assigns key on target, reporting whether it succeeded.
func Set(
	target object.Value,
	key object.Key,
	v object.Value,
	receiver ...object.Value,
) (bool, error) {
	o, err := requireObject("set", target)
	if err != nil {
		return false, err
	}
	return o.Set(key, v, receiverOr(receiver, target))
}

// Has reports whether key is present on target or its prototype
// chain, the reflective counterpart of the in operator.
func Has(target object.Value, key object.Key) (bool, error) {
	o, err := requireObject("has", target)
	if err != nil {
		return false, err
	}
	return o.HasProperty(key), nil
}

// OwnKeys returns every own key of target in one call: string keys
// in insertion order followed by symbol keys in insertion order.
func OwnKeys(target object.Value) ([]object.Key, error) {
	o, err := requireObject("ownKeys", target)
	if err != nil {
		return nil, err
	}
	return o.OwnPropertyKeys(), nil
}

// GetOwnPropertyDescriptor returns the complete descriptor of an
// own property, or false when the key is absent.
func GetOwnPropertyDescriptor(
	target object.Value, key object.Key,
) (object.PropertyDescriptor, bool, error) {
	o, err := requireObject("getOwnPropertyDescriptor", target)
	if err != nil {
		return object.PropertyDescriptor{}, false, err
	}
	p := o.GetOwnProperty(key)
	if p == nil {
		return object.PropertyDescriptor{}, false, nil
	}
	return p.Descriptor(), true, nil
}

// GetPrototypeOf returns target's prototype, or Null.
func GetPrototypeOf(target object.Value) (object.Value, error) {
	o, err := requireObject("getPrototypeOf", target)
	if err != nil {
		return nil, err
	}
	if p := o.GetPrototypeOf(); p != nil {
		return p, nil
	}
	return object.Null, nil
}

// SetPrototypeOf replaces target's prototype. proto must be an
// object or Null; a nil proto is treated as Undefined.
func SetPrototypeOf(
	target, proto object.Value,
) (bool, error) {
	o, err := requireObject("setPrototypeOf", target)
	if err != nil {
		return false, err
	}
	if proto == nil {
		proto = object.Undefined
	}
	if proto.Kind() == object.KindNull {
		return o.SetPrototypeOf(nil), nil
	}
	p, ok := object.AsObject(proto)
	if !ok {
		return false, object.NewTypeError(
			"Object prototype may only be an Object or null: %s",
			proto,
		)
	}
	return o.SetPrototypeOf(p), nil
}

// IsExtensible reports whether properties may be added to target.
func IsExtensible(target object.Value) (bool, error) {
	o, err := requireObject("isExtensible", target)
	if err != nil {
		return false, err
	}
	return o.IsExtensible(), nil
}

// PreventExtensions forbids adding properties to target.
func PreventExtensions(target object.Value) (bool, error) {
	o, err := requireObject("preventExtensions", target)
	if err != nil {
		return false, err
	}
	return o.PreventExtensions(), nil
}
