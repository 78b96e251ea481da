package object

// GetV performs ordinary property access, value[key]. Primitives
// are boxed for the lookup, so reading an absent key on a number
// yields Undefined; undefined and null raise a TypeError.
func (r *Realm) GetV(v Value, key Key) (Value, error) {
	if o, ok := AsObject(v); ok {
		return o.Get(key, v)
	}
	if IsNullish(v) {
		return nil, NewTypeError(
			"Cannot read properties of %s (reading '%s')",
			describe(v), key,
		)
	}
	if s, ok := v.(StringValue); ok && key == StringKey("length") {
		return stringLength(s), nil
	}
	proto, _ := r.prototypeFor(v)
	return proto.Get(key, v)
}

// Invoke calls the method found at value[key] with value as the
// receiver, the value.key(...args) form.
func (r *Realm) Invoke(
	v Value, key Key, args ...Value,
) (Value, error) {
	fn, err := r.GetV(v, key)
	if err != nil {
		return nil, err
	}
	if !IsCallable(fn) {
		return nil, NewTypeError(
			"%s.%s is not a function", describe(v), key,
		)
	}
	return Call(fn, v, args)
}

// Assign performs value[key] = x. Failed assignments raise a
// TypeError, matching strict-mode semantics.
func (r *Realm) Assign(v Value, key Key, x Value) error {
	o, err := r.ToObject(v)
	if err != nil {
		return err
	}
	ok, err := o.Set(key, x, v)
	if err != nil {
		return err
	}
	if !ok {
		return NewTypeError(
			"Cannot assign to read only property '%s' of %s",
			key, describe(v),
		)
	}
	return nil
}

// Delete implements the delete operator in strict mode. Deleting
// an absent key succeeds; a non-configurable property raises a
// TypeError.
func (r *Realm) Delete(v Value, key Key) (bool, error) {
	o, err := r.ToObject(v)
	if err != nil {
		return false, err
	}
	if !o.Delete(key) {
		return false, NewTypeError(
			"Cannot delete property '%s' of %s",
			key, describe(v),
		)
	}
	return true, nil
}

// In implements the in operator: key presence on the object or its
// prototype chain, regardless of the stored value.
func In(key Key, v Value) (bool, error) {
	o, ok := AsObject(v)
	if !ok {
		return false, NewTypeError(
			"Cannot use 'in' operator to search for '%s' in %s",
			key, describe(v),
		)
	}
	return o.HasProperty(key), nil
}

// DefineProperty implements Object.defineProperty. A rejected
// definition or a non-object target raises a TypeError; on success
// the target is returned.
func DefineProperty(
	v Value, key Key, desc PropertyDescriptor,
) (Value, error) {
	o, ok := AsObject(v)
	if !ok {
		return nil, NewTypeError(
			"Object.defineProperty called on non-object",
		)
	}
	if !o.DefineOwnProperty(key, desc) {
		return nil, NewTypeError(
			"Cannot redefine property: %s", key,
		)
	}
	return v, nil
}

// GetOwnPropertyNames implements Object.getOwnPropertyNames: the
// string-keyed own keys in insertion order.
func (r *Realm) GetOwnPropertyNames(v Value) ([]Key, error) {
	o, err := r.ToObject(v)
	if err != nil {
		return nil, err
	}
	return o.ownStringKeys(), nil
}

// GetOwnPropertySymbols implements Object.getOwnPropertySymbols:
// the symbol-keyed own keys in insertion order.
func (r *Realm) GetOwnPropertySymbols(v Value) ([]Key, error) {
	o, err := r.ToObject(v)
	if err != nil {
		return nil, err
	}
	return o.ownSymbolKeys(), nil
}

// HasOwn reports own-property existence. Unlike a lookup it tells
// an absent key apart from one holding Undefined.
func (r *Realm) HasOwn(v Value, key Key) (bool, error) {
	o, err := r.ToObject(v)
	if err != nil {
		return false, err
	}
	return o.HasOwnProperty(key), nil
}
