package markup

import (
	"fmt"
	"reflect"
)

// An ObjectSerializer writes objects of a particular type to a
// [Sink].
//
// ObjectSerializers customize the encoding of types, bypassing the
// default member-by-member encoding. They are used when registered in
// [Serializer.Serializers], or when resolved by [Serializer.Locator]
// for the serializer named by a type's class markers.
type ObjectSerializer interface {
	// SerializeMarkup writes v to w. tag is the element name chosen
	// by the caller, or "" if the caller did not choose one. s may be
	// used to serialize nested values.
	SerializeMarkup(s *Serializer, w Sink, v any, tag string) error
}

// Marshaler is the interface implemented by types that can write
// themselves to a [Sink].
//
// tag is the element name chosen by the caller, or "" if the caller
// did not choose one. s may be used to serialize nested values.
type Marshaler interface {
	MarshalMarkup(s *Serializer, w Sink, tag string) error
}

// A Locator resolves the names of custom serializers.
type Locator interface {
	// Resolve returns the ObjectSerializer for name. Resolve should
	// return an error wrapping [ErrUnknownSerializer] if there is no
	// serializer by that name.
	Resolve(name string) (ObjectSerializer, error)
}

// Locators is a [Locator] that resolves names from a fixed map.
type Locators map[string]ObjectSerializer

func (l Locators) Resolve(name string) (ObjectSerializer, error) {
	if ret, ok := l[name]; ok && ret != nil {
		return ret, nil
	}
	return nil, ErrUnknownSerializer
}

// LocatorFunc adapts a function to a [Locator].
type LocatorFunc func(name string) (ObjectSerializer, error)

func (f LocatorFunc) Resolve(name string) (ObjectSerializer, error) {
	return f(name)
}

// SerializerFunc returns an ObjectSerializer for values of type
// T. Given a value of any other type, the serializer returns a
// [TargetTypeError].
func SerializerFunc[T any](fn func(s *Serializer, w Sink, v T, tag string) error) ObjectSerializer {
	return serializerFunc[T](fn)
}

type serializerFunc[T any] func(s *Serializer, w Sink, v T, tag string) error

func (f serializerFunc[T]) SerializeMarkup(s *Serializer, w Sink, v any, tag string) error {
	tv, ok := v.(T)
	if !ok {
		return TargetTypeError{
			Want: reflect.TypeFor[T]().String(),
			Got:  fmt.Sprintf("%T", v),
		}
	}
	return f(s, w, tv, tag)
}

// hasCustomSerializer reports whether v's type has a serializer in
// s.Serializers, or implements Marshaler.
func (s *Serializer) hasCustomSerializer(v reflect.Value) bool {
	if _, ok := s.Serializers[v.Type()]; ok {
		return true
	}
	_, ok := implements(v, marshalerType)
	return ok
}

func (s *Serializer) serializeObject(w Sink, v reflect.Value, tag string) error {
	ser, obj, err := s.resolve(v)
	if err != nil {
		return err
	}
	return ser.SerializeMarkup(s, w, obj, tag)
}

// resolve returns the ObjectSerializer for v, and the value to pass
// to it.
func (s *Serializer) resolve(v reflect.Value) (ObjectSerializer, any, error) {
	t := v.Type()
	if ret, ok := s.Serializers[t]; ok {
		return ret, v.Interface(), nil
	}
	if mv, ok := implements(v, marshalerType); ok {
		return marshalerSerializer{}, mv.Interface(), nil
	}

	class, err := s.Class(t)
	if err != nil {
		return nil, nil, err
	}

	if class.Serializer != "" {
		ret, err := s.locate(class)
		if err != nil {
			return nil, nil, err
		}
		return ret, v.Interface(), nil
	}

	if iv, ok := implements(v, iterableType); ok && !class.NonTraversable {
		return iterableSerializer{class}, iv.Interface(), nil
	}

	return classSerializer{class}, v.Interface(), nil
}

// locate resolves the custom serializer named by class.
func (s *Serializer) locate(class *ClassDescriptor) (ObjectSerializer, error) {
	if s.Locator == nil {
		return nil, SerializerError{class.Name, class.Serializer, fmt.Errorf("no Locator configured")}
	}
	ret, err := s.Locator.Resolve(class.Serializer)
	if err != nil {
		return nil, SerializerError{class.Name, class.Serializer, err}
	}
	if ret == nil {
		return nil, SerializerError{class.Name, class.Serializer, ErrUnknownSerializer}
	}
	return ret, nil
}

// marshalerSerializer serializes values that implement Marshaler.
type marshalerSerializer struct{}

func (marshalerSerializer) SerializeMarkup(s *Serializer, w Sink, v any, tag string) error {
	m, ok := v.(Marshaler)
	if !ok {
		return TargetTypeError{marshalerType.String(), fmt.Sprintf("%T", v)}
	}
	return m.MarshalMarkup(s, w, tag)
}

// iterableSerializer serializes Iterable objects as collections.
type iterableSerializer struct {
	class *ClassDescriptor
}

func (it iterableSerializer) SerializeMarkup(s *Serializer, w Sink, v any, tag string) error {
	i, ok := v.(Iterable)
	if !ok {
		return TargetTypeError{iterableType.String(), fmt.Sprintf("%T", v)}
	}
	elemTag := ""
	if tag == "" {
		tag, elemTag = it.class.ClassTagName, it.class.ElementTagName
	}
	return s.serializeEntries(w, iterableEntries(i), tag, elemTag)
}

// classSerializer serializes objects member by member, as described
// by their ClassDescriptor.
type classSerializer struct {
	class *ClassDescriptor
}

func (c classSerializer) SerializeMarkup(s *Serializer, w Sink, v any, tag string) error {
	obj := derefValue(reflect.ValueOf(v))
	if !obj.IsValid() {
		return s.serializeNull(w, tag)
	}
	if obj.Type() != c.class.Type {
		return TargetTypeError{c.class.Name, obj.Type().String()}
	}

	if err := w.StartElement(orDefault(tag, c.class.DefaultTagName)); err != nil {
		return err
	}
	for _, m := range c.class.Members {
		mv, err := m.Value(obj)
		if err != nil {
			return fmt.Errorf("reading %s.%s: %w", c.class.Name, m.Name, err)
		}
		if err := m.Delegate.serializeMember(s, w, mv); err != nil {
			return fmt.Errorf("serializing %s.%s: %w", c.class.Name, m.Name, err)
		}
	}
	return w.EndElement()
}
