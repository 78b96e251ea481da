package object

// Object is an ordinary object: an ordered set of own properties,
// a prototype link and an extensibility flag. Own keys are kept in
// insertion order; redefining an existing key keeps its slot.
//
// Object is not safe for concurrent use.
type Object struct {
	class      string
	proto      *Object
	extensible bool
	props      map[Key]*Property
	order      []Key

	// primitive holds the wrapped value of a boxed primitive.
	primitive Value
}

// NewObject creates an empty ordinary object with the given
// prototype, which may be nil.
func NewObject(proto *Object) *Object {
	o := &Object{}
	o.init("Object", proto)
	return o
}

func (o *Object) init(class string, proto *Object) {
	o.class = class
	o.proto = proto
	o.extensible = true
	o.props = make(map[Key]*Property)
}

func (o *Object) Kind() Kind { return KindObject }

func (o *Object) String() string {
	return "[object " + o.class + "]"
}

// Class returns the object's class tag, e.g. "Object" or "Array".
func (o *Object) Class() string { return o.class }

// PrimitiveValue returns the wrapped primitive of a boxed value.
func (o *Object) PrimitiveValue() (Value, bool) {
	return o.primitive, o.primitive != nil
}

// GetPrototypeOf returns the prototype, or nil.
func (o *Object) GetPrototypeOf() *Object { return o.proto }

// SetPrototypeOf replaces the prototype. It fails on a
// non-extensible object or when the change would create a cycle.
func (o *Object) SetPrototypeOf(proto *Object) bool {
	if proto == o.proto {
		return true
	}
	if !o.extensible {
		return false
	}
	for p := proto; p != nil; p = p.proto {
		if p == o {
			return false
		}
	}
	o.proto = proto
	return true
}

// IsExtensible reports whether new properties may be added.
func (o *Object) IsExtensible() bool { return o.extensible }

// PreventExtensions forbids adding new properties.
func (o *Object) PreventExtensions() bool {
	o.extensible = false
	return true
}

// GetOwnProperty returns the own property for key, or nil.
func (o *Object) GetOwnProperty(key Key) *Property {
	return o.props[key]
}

// HasOwnProperty reports whether key is an own property.
func (o *Object) HasOwnProperty(key Key) bool {
	_, ok := o.props[key]
	return ok
}

// HasProperty reports whether key is present on the object or
// anywhere on its prototype chain.
func (o *Object) HasProperty(key Key) bool {
	for p := o; p != nil; p = p.proto {
		if p.HasOwnProperty(key) {
			return true
		}
	}
	return false
}

// DefineOwnProperty validates desc against the current property
// and applies it. It returns false when the definition is not
// allowed: adding to a non-extensible object or changing a
// non-configurable property incompatibly.
func (o *Object) DefineOwnProperty(
	key Key, desc PropertyDescriptor,
) bool {
	current := o.props[key]
	if current == nil {
		if !o.extensible {
			return false
		}
		p := &Property{
			Enumerable:   flagOr(desc.Enumerable, false),
			Configurable: flagOr(desc.Configurable, false),
		}
		if desc.IsAccessor() {
			p.Accessor = true
			p.Get = desc.Get
			p.Set = desc.Set
		} else {
			p.Value = orUndefined(desc.Value)
			p.Writable = flagOr(desc.Writable, false)
		}
		o.props[key] = p
		o.order = append(o.order, key)
		return true
	}

	if desc.IsEmpty() {
		return true
	}

	if !current.Configurable {
		if flagOr(desc.Configurable, false) {
			return false
		}
		if desc.Enumerable != nil &&
			*desc.Enumerable != current.Enumerable {
			return false
		}
		if desc.IsAccessor() != current.Accessor &&
			(desc.IsAccessor() || desc.IsData()) {
			return false
		}
		if current.Accessor {
			if desc.Get != nil &&
				!SameValue(desc.Get, orUndefined(current.Get)) {
				return false
			}
			if desc.Set != nil &&
				!SameValue(desc.Set, orUndefined(current.Set)) {
				return false
			}
		} else if !current.Writable {
			if flagOr(desc.Writable, false) {
				return false
			}
			if desc.Value != nil &&
				!SameValue(desc.Value, current.Value) {
				return false
			}
		}
	}

	switch {
	case desc.IsAccessor() && !current.Accessor:
		current.Accessor = true
		current.Value = nil
		current.Writable = false
	case desc.IsData() && current.Accessor:
		current.Accessor = false
		current.Get = nil
		current.Set = nil
		current.Value = Undefined
	}

	if desc.Value != nil {
		current.Value = desc.Value
	}
	if desc.Writable != nil {
		current.Writable = *desc.Writable
	}
	if desc.Get != nil {
		current.Get = desc.Get
	}
	if desc.Set != nil {
		current.Set = desc.Set
	}
	if desc.Enumerable != nil {
		current.Enumerable = *desc.Enumerable
	}
	if desc.Configurable != nil {
		current.Configurable = *desc.Configurable
	}
	return true
}

// CreateDataProperty defines a writable, enumerable, configurable
// data property, the way object literals and assignments do.
func (o *Object) CreateDataProperty(key Key, v Value) bool {
	return o.DefineOwnProperty(
		key, DataDescriptor(v, true, true, true),
	)
}

// Get reads key through the prototype chain. Getters are invoked
// with receiver as this.
func (o *Object) Get(key Key, receiver Value) (Value, error) {
	for p := o; p != nil; p = p.proto {
		prop := p.props[key]
		if prop == nil {
			continue
		}
		if !prop.Accessor {
			return prop.Value, nil
		}
		if prop.Get == nil || prop.Get.Kind() == KindUndefined {
			return Undefined, nil
		}
		return Call(prop.Get, receiver, nil)
	}
	return Undefined, nil
}

// Set assigns key following the ordinary set algorithm: a
// writable data property found on the chain results in an own data
// property on receiver; a setter is invoked with receiver as this.
func (o *Object) Set(
	key Key, v Value, receiver Value,
) (bool, error) {
	var found *Property
	for p := o; p != nil; p = p.proto {
		if prop := p.props[key]; prop != nil {
			found = prop
			break
		}
	}
	if found == nil {
		found = &Property{Writable: true}
	}

	if found.Accessor {
		if found.Set == nil || found.Set.Kind() == KindUndefined {
			return false, nil
		}
		if _, err := Call(found.Set, receiver, []Value{v}); err != nil {
			return false, err
		}
		return true, nil
	}

	if !found.Writable {
		return false, nil
	}
	target, ok := AsObject(receiver)
	if !ok {
		return false, nil
	}
	if existing := target.props[key]; existing != nil {
		if existing.Accessor || !existing.Writable {
			return false, nil
		}
		return target.DefineOwnProperty(
			key, PropertyDescriptor{Value: v},
		), nil
	}
	return target.CreateDataProperty(key, v), nil
}

// Delete removes an own property. It returns false when the
// property exists and is non-configurable; deleting an absent key
// succeeds.
func (o *Object) Delete(key Key) bool {
	prop := o.props[key]
	if prop == nil {
		return true
	}
	if !prop.Configurable {
		return false
	}
	delete(o.props, key)
	for i, k := range o.order {
		if k == key {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
	return true
}

// OwnPropertyKeys returns every own key: string keys in insertion
// order followed by symbol keys in insertion order.
func (o *Object) OwnPropertyKeys() []Key {
	keys := make([]Key, 0, len(o.order))
	keys = append(keys, o.ownStringKeys()...)
	keys = append(keys, o.ownSymbolKeys()...)
	return keys
}

func (o *Object) ownStringKeys() []Key {
	var out []Key
	for _, k := range o.order {
		if !k.IsSymbol() {
			out = append(out, k)
		}
	}
	return out
}

func (o *Object) ownSymbolKeys() []Key {
	var out []Key
	for _, k := range o.order {
		if k.IsSymbol() {
			out = append(out, k)
		}
	}
	return out
}

// AsObject returns the object part of an object or function value.
func AsObject(v Value) (*Object, bool) {
	switch tv := v.(type) {
	case *Object:
		return tv, tv != nil
	case *Function:
		if tv == nil {
			return nil, false
		}
		return &tv.Object, true
	}
	return nil, false
}
