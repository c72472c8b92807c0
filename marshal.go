package markup

import (
	"cmp"
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/danderson/markup/tree"
)

// Serializer converts Go values into markup.
//
// The zero value is ready to use, and configures types with
// [StructTags]. A Serializer caches the configuration of each type it
// serializes, and is safe for concurrent use.
type Serializer struct {
	// Metadata provides the markup configuration of types. If nil,
	// [StructTags] is used.
	Metadata MetadataSource
	// Locator resolves the custom serializers named by types'
	// class markers. If nil, types that name a custom serializer
	// fail to serialize.
	Locator Locator
	// Serializers maps types to the custom serializer for their
	// values. Types are matched after stripping pointers.
	Serializers map[reflect.Type]ObjectSerializer
	// Logger, if set, receives debug logs about the type
	// configuration built by the Serializer.
	Logger *log.Logger

	classes cache[*ClassDescriptor]
}

var defaultSerializer Serializer

// Marshal returns the markup encoding of v, using a Serializer with
// default settings.
func Marshal(v any) ([]byte, error) {
	return defaultSerializer.Marshal(v, "", "")
}

// MarshalIndent is like [Marshal], but indents nested elements.
func MarshalIndent(v any, indent string) ([]byte, error) {
	doc, err := defaultSerializer.Document(v, "", "")
	if err != nil {
		return nil, err
	}
	doc.Indent = indent
	return doc.Bytes(), nil
}

// Marshal returns the markup encoding of v. tag and elemTag are as
// for [Serializer.Serialize].
func (s *Serializer) Marshal(v any, tag, elemTag string) ([]byte, error) {
	doc, err := s.Document(v, tag, elemTag)
	if err != nil {
		return nil, err
	}
	return doc.Bytes(), nil
}

// Document serializes v into a new in-memory document. tag and
// elemTag are as for [Serializer.Serialize].
func (s *Serializer) Document(v any, tag, elemTag string) (*tree.Document, error) {
	doc := &tree.Document{}
	if err := s.Serialize(doc, v, tag, elemTag); err != nil {
		return nil, err
	}
	return doc, nil
}

// Serialize writes the markup encoding of v to w.
//
// tag is the name of the element that wraps v. If tag is empty, the
// element name depends on v:
//
//   - nil values, including nil pointers and interfaces, encode as an
//     element named "null" containing an empty "null" element.
//   - bool values encode as an element named "boolean" containing
//     "true" or "false".
//   - integer values encode as an element named "integer", floats as
//     "double" and strings as "string", containing the formatted
//     value.
//   - slices, arrays, maps and [Map] values encode as an element named
//     "array", containing one element per entry. Entries with integer
//     keys are named elemTag, other entries are named after their
//     key. If tag is [NoTag], the entries are written without a
//     wrapping element. Named slice, array and map types take tag and
//     elemTag from their markers when tag is empty, and use the
//     custom serializer their markers name, if any.
//   - all other values are objects, see below.
//
// Pointers encode as the value they point to.
//
// Objects are encoded by the first matching rule:
//
//   - the [ObjectSerializer] registered in s.Serializers for the
//     value's type.
//   - the value's MarshalMarkup method, if it implements [Marshaler].
//     Unlike the other object rules, this one and the rule above are
//     checked before the scalar and collection rules, so a named
//     string or slice with a custom serializer is an object.
//   - the [ObjectSerializer] resolved by s.Locator for the serializer
//     named in the type's markers.
//   - if the value implements [Iterable] and its type is not marked
//     opaque, as a collection of the entries returned by its All
//     method. The type's tag markers are used when tag is empty.
//   - as an element named after the type, containing the type's
//     members as configured by s.Metadata.
//
// Channels, functions, complex numbers and unsafe pointers are
// silently skipped.
//
// Serialize does not detect cyclic values. Serializing a value that
// refers to itself recurses until the stack is exhausted.
//
// If Serialize returns an error, w may contain a partial encoding of
// v, and should be discarded.
func (s *Serializer) Serialize(w Sink, v any, tag, elemTag string) error {
	return s.serializeValue(w, reflect.ValueOf(v), tag, elemTag)
}

func (s *Serializer) serializeValue(w Sink, v reflect.Value, tag, elemTag string) error {
	v = derefValue(v)
	if !v.IsValid() {
		return s.serializeNull(w, tag)
	}

	if s.hasCustomSerializer(v) {
		return s.serializeObject(w, v, tag)
	}

	k := v.Kind()
	if name := scalarName(k); name != "" {
		return s.serializeScalar(w, name, formatScalar(v), tag)
	}

	if v.Type() == mapType {
		return s.serializeEntries(w, mapEntries(v.Interface().(Map)), tag, elemTag)
	}
	if collectionKinds.Has(k) {
		if v.Type().Name() != "" {
			return s.serializeNamedCollection(w, v, tag, elemTag)
		}
		return s.serializeEntries(w, collectionEntries(v), tag, elemTag)
	}

	if _, ok := implements(v, iterableType); ok || k == reflect.Struct {
		return s.serializeObject(w, v, tag)
	}

	// Not representable. Skipped.
	return nil
}

func (s *Serializer) serializeNull(w Sink, tag string) error {
	if err := w.StartElement(orDefault(tag, nullName)); err != nil {
		return err
	}
	if err := w.StartElement(nullName); err != nil {
		return err
	}
	if err := w.EndElement(); err != nil {
		return err
	}
	return w.EndElement()
}

func (s *Serializer) serializeScalar(w Sink, name, text, tag string) error {
	if err := w.StartElement(orDefault(tag, name)); err != nil {
		return err
	}
	if text != "" {
		if err := w.Text(text); err != nil {
			return err
		}
	}
	return w.EndElement()
}

func (s *Serializer) serializeEntries(w Sink, entries iter.Seq[entry], tag, elemTag string) error {
	wrap := tag != NoTag
	if wrap {
		if err := w.StartElement(orDefault(tag, arrayName)); err != nil {
			return err
		}
	}
	for e := range entries {
		name := e.Name
		if e.Positional {
			name = elemTag
		}
		if err := s.serializeValue(w, e.Value, name, ""); err != nil {
			return err
		}
	}
	if wrap {
		return w.EndElement()
	}
	return nil
}

// serializeNamedCollection serializes a slice, array or map of a
// named type. The type's markers choose a custom serializer, or
// supply the tag names when the caller gave no tag.
func (s *Serializer) serializeNamedCollection(w Sink, v reflect.Value, tag, elemTag string) error {
	class, err := s.Class(v.Type())
	if err != nil {
		return err
	}
	if class.Serializer != "" {
		ser, err := s.locate(class)
		if err != nil {
			return err
		}
		return ser.SerializeMarkup(s, w, v.Interface(), tag)
	}
	if tag == "" {
		tag = class.ClassTagName
		if class.ElementTagName != "" {
			elemTag = class.ElementTagName
		}
	}
	return s.serializeEntries(w, collectionEntries(v), tag, elemTag)
}

// orDefault returns tag, or def if tag is unset.
func orDefault(tag, def string) string {
	if tag == "" || tag == NoTag {
		return def
	}
	return tag
}

func mapEntries(m Map) iter.Seq[entry] {
	return func(yield func(entry) bool) {
		for _, kv := range m {
			if !yield(entry{Name: kv.Key, Value: reflect.ValueOf(kv.Value)}) {
				return
			}
		}
	}
}

// collectionEntries returns the entries of a slice, array or map
// value. Map entries are sorted by key.
func collectionEntries(v reflect.Value) iter.Seq[entry] {
	return func(yield func(entry) bool) {
		if v.Kind() != reflect.Map {
			for i := range v.Len() {
				if !yield(entry{Positional: true, Value: v.Index(i)}) {
					return
				}
			}
			return
		}

		ks := v.MapKeys()
		slices.SortFunc(ks, mapKeyCmp(v.Type().Key()))
		for _, k := range ks {
			if !yield(keyEntry(k, v.MapIndex(k))) {
				return
			}
		}
	}
}

// iterableEntries returns the entries yielded by it.
func iterableEntries(it Iterable) iter.Seq[entry] {
	return func(yield func(entry) bool) {
		for k, v := range it.All() {
			if !yield(keyEntry(reflect.ValueOf(k), reflect.ValueOf(v))) {
				return
			}
		}
	}
}

// mapKeyCmp returns a comparison function for the given map key type.
func mapKeyCmp(t reflect.Type) func(a, b reflect.Value) int {
	switch k := t.Kind(); {
	case k == reflect.Bool:
		return func(a, b reflect.Value) int {
			if a.Bool() == b.Bool() {
				return 0
			}
			if !a.Bool() {
				return -1
			}
			return 1
		}
	case k >= reflect.Int && k <= reflect.Int64:
		return func(a, b reflect.Value) int {
			return cmp.Compare(a.Int(), b.Int())
		}
	case k >= reflect.Uint && k <= reflect.Uintptr:
		return func(a, b reflect.Value) int {
			return cmp.Compare(a.Uint(), b.Uint())
		}
	case floatKinds.Has(k):
		return func(a, b reflect.Value) int {
			return cmp.Compare(a.Float(), b.Float())
		}
	case k == reflect.String:
		return func(a, b reflect.Value) int {
			return cmp.Compare(a.String(), b.String())
		}
	default:
		return func(a, b reflect.Value) int {
			return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
		}
	}
}

// Class returns the ClassDescriptor for t, building and caching it if
// necessary. Pointer types share the descriptor of the type they
// point to.
func (s *Serializer) Class(t reflect.Type) (*ClassDescriptor, error) {
	t = derefType(t)
	if ret, ok := s.classes.Get(t); ok {
		return ret, nil
	}

	ret, err := newClassDescriptor(t, s.metadata())
	if err != nil {
		return nil, err
	}
	built := ret
	ret = s.classes.Put(t, built)
	if s.Logger != nil && ret == built {
		s.Logger.Debug("built class descriptor", "type", ret.Name, "tag", ret.DefaultTagName, "members", len(ret.Members))
	}
	return ret, nil
}

// Reset discards all cached type configuration. Subsequent
// serializations consult s.Metadata again.
func (s *Serializer) Reset() {
	s.classes.Clear()
}

func (s *Serializer) metadata() MetadataSource {
	if s.Metadata == nil {
		return StructTags{}
	}
	return s.Metadata
}
