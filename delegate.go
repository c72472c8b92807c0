package markup

import (
	"fmt"
	"reflect"
	"strings"
)

// A Delegate serializes one member of an object. It is one of
// [AttributeDelegate], [FragmentDelegate] or [TagDelegate].
type Delegate interface {
	// withDefaults returns the delegate with unset names filled in
	// from the member name.
	withDefaults(member string) Delegate
	// serializeMember writes the member value v to w.
	serializeMember(s *Serializer, w Sink, v reflect.Value) error
	fmt.Stringer
}

// AttributeDelegate serializes a member as an attribute of the
// enclosing element.
//
// Boolean values are written as "true" or "false", other values are
// stringified. Nil values stringify to the empty string.
type AttributeDelegate struct {
	// Name is the attribute name. Defaults to the member name.
	Name string
	// KeepEmpty, if true, writes the attribute even if its value is
	// the empty string. By default, empty attributes are omitted.
	KeepEmpty bool
}

func (a AttributeDelegate) withDefaults(member string) Delegate {
	if a.Name == "" {
		a.Name = member
	}
	return a
}

func (a AttributeDelegate) serializeMember(s *Serializer, w Sink, v reflect.Value) error {
	text, err := stringify(v)
	if err != nil {
		return err
	}
	if text == "" && !a.KeepEmpty {
		return nil
	}
	return w.Attribute(a.Name, text)
}

func (a AttributeDelegate) String() string {
	if a.KeepEmpty {
		return fmt.Sprintf("attr %s (keep empty)", a.Name)
	}
	return fmt.Sprintf("attr %s", a.Name)
}

// FragmentDelegate serializes a member as raw markup.
//
// The member is stringified, and inserted without escaping into an
// element named TagName. The element is written even if the member
// is empty. If TagName is [NoTag], the markup is inserted directly
// into the enclosing element.
//
// The stringified member must be well-formed markup, or
// serialization fails with a [FragmentError].
type FragmentDelegate struct {
	// TagName is the name of the wrapping element. Defaults to the
	// member name.
	TagName string
	// Breaks, if true, escapes ampersands and inserts a "<br />"
	// element before every line break of the member text.
	Breaks bool
}

func (f FragmentDelegate) withDefaults(member string) Delegate {
	if f.TagName == "" {
		f.TagName = member
	}
	return f
}

func (f FragmentDelegate) serializeMember(s *Serializer, w Sink, v reflect.Value) error {
	text, err := stringify(v)
	if err != nil {
		return err
	}
	if f.Breaks {
		text = lineBreaks.Replace(text)
	}

	wrap := f.TagName != NoTag
	if wrap {
		if err := w.StartElement(f.TagName); err != nil {
			return err
		}
	}
	if text != "" {
		if err := w.RawFragment(text); err != nil {
			return FragmentError{text, err}
		}
	}
	if wrap {
		return w.EndElement()
	}
	return nil
}

func (f FragmentDelegate) String() string {
	if f.Breaks {
		return fmt.Sprintf("fragment %s (breaks)", f.TagName)
	}
	return fmt.Sprintf("fragment %s", f.TagName)
}

var lineBreaks = strings.NewReplacer(
	"&", "&amp;",
	"\r\n", "<br />\r\n",
	"\n\r", "<br />\n\r",
	"\n", "<br />\n",
	"\r", "<br />\r",
)

// TagDelegate serializes a member as a nested element, using the
// same rules as [Serializer.Serialize]. It is the delegate for
// members with no other configuration.
type TagDelegate struct {
	// TagName is the element name. Defaults to the member name.
	TagName string
	// ElementTagName is the element name of positional entries, if
	// the member is a collection.
	ElementTagName string
}

func (t TagDelegate) withDefaults(member string) Delegate {
	if t.TagName == "" {
		t.TagName = member
	}
	return t
}

func (t TagDelegate) serializeMember(s *Serializer, w Sink, v reflect.Value) error {
	return s.serializeValue(w, v, t.TagName, t.ElementTagName)
}

func (t TagDelegate) String() string {
	if t.ElementTagName != "" {
		return fmt.Sprintf("tag %s (elements %s)", t.TagName, t.ElementTagName)
	}
	return fmt.Sprintf("tag %s", t.TagName)
}
