package markup

import (
	"errors"
	"fmt"
	"reflect"
	"unicode/utf8"
)

// TypeError is the error returned when a type's markup configuration
// is invalid.
type TypeError struct {
	// Type is the name of the type that caused the error.
	Type string
	// Reason is an explanation of what is wrong with the type.
	Reason error
}

func (e TypeError) Error() string {
	return fmt.Sprintf("markup cannot serialize %s: %s", e.Type, e.Reason)
}

func (e TypeError) Unwrap() error {
	return e.Reason
}

func typeErr(t reflect.Type, reason string, args ...any) error {
	ts := ""
	if t != nil {
		ts = t.String()
	}
	return TypeError{ts, fmt.Errorf(reason, args...)}
}

// maxFragmentLen is the number of bytes of a fragment quoted in a
// FragmentError message.
const maxFragmentLen = 40

// FragmentError is the error returned when a fragment member holds
// text that is not well-formed markup.
type FragmentError struct {
	// Fragment is the offending markup text.
	Fragment string
	// Reason is the error reported by the [Sink].
	Reason error
}

func (e FragmentError) Error() string {
	frag := e.Fragment
	if len(frag) > maxFragmentLen {
		cut := maxFragmentLen
		for cut > 0 && !utf8.RuneStart(frag[cut]) {
			cut--
		}
		frag = frag[:cut] + "..."
	}
	return fmt.Sprintf("malformed markup fragment %q: %s", frag, e.Reason)
}

func (e FragmentError) Unwrap() error {
	return e.Reason
}

// ErrUnknownSerializer is returned by a [Locator] that has no
// serializer registered under the requested name.
var ErrUnknownSerializer = errors.New("unknown serializer")

// SerializerError is the error returned when a type names a custom
// serializer that cannot be resolved.
type SerializerError struct {
	// Type is the name of the type that declared the serializer.
	Type string
	// Name is the declared serializer name.
	Name string
	// Reason is why resolution failed.
	Reason error
}

func (e SerializerError) Error() string {
	return fmt.Sprintf("resolving serializer %q for %s: %s", e.Name, e.Type, e.Reason)
}

func (e SerializerError) Unwrap() error {
	return e.Reason
}

// TargetTypeError is the error returned when an [ObjectSerializer]
// built for one type is given a value of another type.
type TargetTypeError struct {
	// Want is the type the serializer handles.
	Want string
	// Got is the type of the value it received.
	Got string
}

func (e TargetTypeError) Error() string {
	return fmt.Sprintf("serializer for %s cannot serialize %s", e.Want, e.Got)
}
