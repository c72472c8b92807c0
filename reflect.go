package markup

import (
	"iter"
	"reflect"
)

var (
	errorType     = reflect.TypeFor[error]()
	classType     = reflect.TypeFor[Class]()
	mapType       = reflect.TypeFor[Map]()
	marshalerType = reflect.TypeFor[Marshaler]()
	iterableType  = reflect.TypeFor[Iterable]()
)

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// derefValue strips pointers and interfaces from v. It returns the
// zero reflect.Value if v is nil, or becomes nil along the way.
func derefValue(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// addressable returns a pointer to v. If v is not addressable, the
// pointer is to a copy of v.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v.Addr()
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p
}

// implements reports whether v, or a pointer to v, implements the
// interface type iface. If so, it returns the value to call
// interface methods on.
func implements(v reflect.Value, iface reflect.Type) (reflect.Value, bool) {
	t := v.Type()
	if t.Implements(iface) {
		return v, true
	}
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(iface) {
		return addressable(v), true
	}
	return reflect.Value{}, false
}

// allocSteps partitions a multi-hop traversal of struct fields into
// segments that end at either the final value, or at a struct pointer
// that might be nil.
//
// This partition is used by [MemberDescriptor.Value] to load embedded
// struct fields that require traversing a nil pointer.
func allocSteps(t reflect.Type, idx []int) [][]int {
	var ret [][]int
	prev := 0
	t = t.Field(idx[0]).Type
	for i := 1; i < len(idx); i++ {
		if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct {
			// Hop through a struct pointer that might be nil, cut.
			ret = append(ret, idx[prev:i])
			prev = i
			t = t.Elem()
		}
		t = t.Field(idx[i]).Type
	}
	ret = append(ret, idx[prev:])
	return ret
}

// structFields iterates over the fields of t in declaration
// order. Untagged embedded structs are flattened into their
// fields. An embedded struct carrying a markup tag is yielded as a
// single field.
func structFields(t reflect.Type, idx []int) iter.Seq[reflect.StructField] {
	return func(yield func(reflect.StructField) bool) {
		for i := range t.NumField() {
			f := t.Field(i)
			idx = append(idx, i)
			if f.Anonymous && f.Tag.Get(tagKey) == "" {
				at := f.Type
				if at.Kind() == reflect.Pointer {
					at = at.Elem()
				}
				if at.Kind() == reflect.Struct {
					for af := range structFields(at, idx) {
						if !yield(af) {
							return
						}
					}
					idx = idx[:len(idx)-1]
					continue
				}
			}
			f.Index = append([]int(nil), idx...)
			if !yield(f) {
				return
			}
			idx = idx[:len(idx)-1]
		}
	}
}
