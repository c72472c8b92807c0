package markup

import (
	"encoding"
	"fmt"
	"iter"
	"math"
	"reflect"
	"strconv"
)

// NoTag is a tag name that suppresses the wrapping element of a
// collection or fragment. Entries of the collection are written
// directly into the enclosing element.
const NoTag = "-"

// KV is one entry of a [Map].
type KV struct {
	Key   string
	Value any
}

// Map is a string-keyed mapping that serializes its entries in
// slice order.
//
// Go maps serialize with their keys sorted. Use Map when entry order
// matters.
type Map []KV

// Get returns the value of the first entry with the given key.
func (m Map) Get(key string) (any, bool) {
	for _, kv := range m {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// Iterable is implemented by objects that serialize as a collection
// of entries rather than as a set of members.
//
// Entries with integer keys are positional, and use the element tag
// name of the enclosing collection. All other keys are formatted and
// used as element names.
type Iterable interface {
	All() iter.Seq2[any, any]
}

// entry is one item of a collection being serialized.
type entry struct {
	// Name is the entry's element name. Ignored if Positional.
	Name string
	// Positional is whether the entry was keyed by an integer.
	Positional bool
	Value      reflect.Value
}

// keyEntry returns an entry for the given collection key and value.
func keyEntry(k, v reflect.Value) entry {
	k = derefValue(k)
	switch {
	case !k.IsValid():
		return entry{Name: nullName, Value: v}
	case intKinds.Has(k.Kind()):
		return entry{Positional: true, Value: v}
	case k.Kind() == reflect.String:
		return entry{Name: k.String(), Value: v}
	default:
		return entry{Name: fmt.Sprint(k.Interface()), Value: v}
	}
}

// formatScalar returns the text form of a bool, integer, float or
// string value.
func formatScalar(v reflect.Value) string {
	switch k := v.Kind(); {
	case k == reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case k == reflect.String:
		return v.String()
	case v.CanInt():
		return strconv.FormatInt(v.Int(), 10)
	case v.CanUint():
		return strconv.FormatUint(v.Uint(), 10)
	case v.CanFloat():
		return formatFloat(v.Float(), v.Type().Bits())
	}
	panic(fmt.Sprintf("formatScalar called on non-scalar kind %s", v.Kind()))
}

func formatFloat(f float64, bits int) string {
	if abs := math.Abs(f); abs == 0 || (abs >= 1e-4 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, bits)
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

// stringify returns the text form of v, for use as attribute or
// fragment content. Nil values stringify to the empty string.
func stringify(v reflect.Value) (string, error) {
	v = derefValue(v)
	if !v.IsValid() {
		return "", nil
	}
	if v.CanInterface() {
		if tv, ok := implements(v, reflect.TypeFor[encoding.TextMarshaler]()); ok {
			bs, err := tv.Interface().(encoding.TextMarshaler).MarshalText()
			if err != nil {
				return "", err
			}
			return string(bs), nil
		}
		if sv, ok := implements(v, reflect.TypeFor[fmt.Stringer]()); ok {
			return sv.Interface().(fmt.Stringer).String(), nil
		}
	}
	if scalarName(v.Kind()) != "" {
		return formatScalar(v), nil
	}
	if !v.CanInterface() {
		return "", nil
	}
	return fmt.Sprint(v.Interface()), nil
}
