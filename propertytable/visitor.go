package propertytable

// ElementType tags one concrete (base type, component type, array,
// normalized) combination (§4.A, §9). The original groups these into a
// closed set of roughly 180 cases via template instantiation; Go has no
// template monomorphization, so this package represents the same closed
// set as a plain struct value and dispatches on it with ordinary
// switches, per the redesign note in §9 ("monomorphization via generics
// or a dispatch table is an implementer choice").
type ElementType struct {
	Base       BaseType
	Component  ComponentType
	Array      bool
	Normalized bool
}

// DescribeElementType derives the ElementType tag of a class property.
func DescribeElementType(class *ClassProperty) ElementType {
	return ElementType{
		Base:       class.Type,
		Component:  class.ComponentType,
		Array:      class.Array,
		Normalized: class.Normalized,
	}
}

// ForEachProperty calls fn once per row with the row's resolved value
// (§4.A "visitor dispatch"), in index order, skipping rows where Get
// reports absence (a no-data row with no declared default).
func ForEachProperty(v *View, fn func(i int, value interface{})) {

	if v.Status() != Valid {
		return
	}
	for i := 0; i < v.Size(); i++ {
		if value, ok := v.Get(i); ok {
			fn(i, value)
		}
	}
}

// ForEachRaw is the unresolved counterpart of ForEachProperty, visiting
// GetRaw(i) for every row without applying no-data/default/
// normalization/offset-scale.
func ForEachRaw(v *View, fn func(i int, raw interface{})) {

	if v.Status() != Valid {
		return
	}
	for i := 0; i < v.Size(); i++ {
		fn(i, v.GetRaw(i))
	}
}
