package object

// PropertyDescriptor is a partial property description as passed
// to property definition. A nil field means the attribute is
// absent; absent attributes of a newly created property default to
// false (or Undefined for Value).
type PropertyDescriptor struct {
	Value        Value
	Get          Value
	Set          Value
	Writable     *bool
	Enumerable   *bool
	Configurable *bool
}

// Flag returns a pointer to b for use in descriptors.
func Flag(b bool) *bool { return &b }

// ValueDescriptor describes a data property with only its value
// present, the shape of {value: v}.
func ValueDescriptor(v Value) PropertyDescriptor {
	return PropertyDescriptor{Value: v}
}

// DataDescriptor describes a data property with every attribute
// present.
func DataDescriptor(
	v Value, writable, enumerable, configurable bool,
) PropertyDescriptor {
	return PropertyDescriptor{
		Value:        v,
		Writable:     Flag(writable),
		Enumerable:   Flag(enumerable),
		Configurable: Flag(configurable),
	}
}

// IsAccessor reports whether the descriptor has a getter or setter.
func (d PropertyDescriptor) IsAccessor() bool {
	return d.Get != nil || d.Set != nil
}

// IsData reports whether the descriptor has a value or writable
// attribute.
func (d PropertyDescriptor) IsData() bool {
	return d.Value != nil || d.Writable != nil
}

// IsEmpty reports whether no attribute is present.
func (d PropertyDescriptor) IsEmpty() bool {
	return !d.IsAccessor() && !d.IsData() &&
		d.Enumerable == nil && d.Configurable == nil
}

// Property is a fully populated own property.
type Property struct {
	Value        Value
	Get          Value
	Set          Value
	Writable     bool
	Enumerable   bool
	Configurable bool
	Accessor     bool
}

// Descriptor converts the property back into a complete descriptor.
func (p *Property) Descriptor() PropertyDescriptor {
	d := PropertyDescriptor{
		Enumerable:   Flag(p.Enumerable),
		Configurable: Flag(p.Configurable),
	}
	if p.Accessor {
		d.Get = orUndefined(p.Get)
		d.Set = orUndefined(p.Set)
		return d
	}
	d.Value = orUndefined(p.Value)
	d.Writable = Flag(p.Writable)
	return d
}

func orUndefined(v Value) Value {
	if v == nil {
		return Undefined
	}
	return v
}

func flagOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}
