package markup

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// AccessKind is how a member's value is read from an object.
type AccessKind int

const (
	// Field members are read from a struct field.
	Field AccessKind = iota
	// Accessor members are the result of calling a method with no
	// arguments.
	Accessor
)

func (k AccessKind) String() string {
	switch k {
	case Field:
		return "field"
	case Accessor:
		return "accessor"
	default:
		return fmt.Sprintf("AccessKind(%d)", int(k))
	}
}

// MemberDescriptor describes how one member of a type is serialized.
type MemberDescriptor struct {
	// Name is the Go name of the field or method.
	Name string
	// Access is how the member is read.
	Access AccessKind
	// Type is the static type of the member's value.
	Type reflect.Type
	// Delegate serializes the member's value.
	Delegate Delegate

	// index is the field index, partitioned by allocSteps. Only set
	// for fields.
	index [][]int
	// method is the index of the accessor in the method set of a
	// pointer to the type. Only set for accessors.
	method int
	// returnsErr is whether the accessor returns an error as its
	// second result.
	returnsErr bool
}

// Value reads the member from obj. obj must be a value of the type
// the member belongs to.
//
// If reading a field requires traversing a nil pointer into an
// embedded struct, Value returns the zero value of the field.
func (m *MemberDescriptor) Value(obj reflect.Value) (reflect.Value, error) {
	if m.Access == Accessor {
		out := addressable(obj).Method(m.method).Call(nil)
		if m.returnsErr && !out[1].IsNil() {
			return reflect.Value{}, out[1].Interface().(error)
		}
		return out[0], nil
	}

	v := obj
	for i, hop := range m.index {
		if i > 0 {
			if v.IsNil() {
				return reflect.Zero(m.Type), nil
			}
			v = v.Elem()
		}
		v = v.FieldByIndex(hop)
	}
	return v, nil
}

func (m *MemberDescriptor) String() string {
	return fmt.Sprintf("%s %s: %s, %s", m.Access, m.Name, m.Type, m.Delegate)
}

// ClassDescriptor describes how values of one type are serialized.
//
// ClassDescriptors are built from the type alone, and shared by all
// values of the type.
type ClassDescriptor struct {
	// Name is the type's name, for use in diagnostics.
	Name string
	// Type is the described type.
	Type reflect.Type
	// DefaultTagName is the element name used when the caller
	// provides none: the class tag name if set, otherwise the type's
	// short name.
	DefaultTagName string
	// ClassTagName is the tag name declared by the type's markers,
	// if any.
	ClassTagName string
	// ElementTagName is the declared element name for positional
	// entries, if any.
	ElementTagName string
	// Serializer is the declared custom serializer name, if any.
	Serializer string
	// NonTraversable is whether the type serializes member by member
	// even if it implements [Iterable].
	NonTraversable bool

	// Members are the type's serialized members. Fields come first
	// in declaration order, followed by accessors.
	Members []*MemberDescriptor
}

func (c *ClassDescriptor) String() string {
	var ret strings.Builder
	fmt.Fprintf(&ret, "%s: <%s>", c.Name, c.DefaultTagName)
	if c.ElementTagName != "" {
		fmt.Fprintf(&ret, ", elements <%s>", c.ElementTagName)
	}
	if c.Serializer != "" {
		fmt.Fprintf(&ret, ", serializer %q", c.Serializer)
	}
	if c.NonTraversable {
		ret.WriteString(", opaque")
	}
	ret.WriteString(", members:\n")
	for _, m := range c.Members {
		ret.WriteString("  ")
		ret.WriteString(m.String())
		ret.WriteByte('\n')
	}
	return ret.String()
}

// newClassDescriptor builds the ClassDescriptor for t, using the
// markers provided by src.
func newClassDescriptor(t reflect.Type, src MetadataSource) (*ClassDescriptor, error) {
	markers, err := src.Markers(t)
	if err != nil {
		return nil, err
	}

	ret := &ClassDescriptor{
		Name:           t.String(),
		Type:           t,
		DefaultTagName: shortName(t),
		ClassTagName:   markers.TagName,
		ElementTagName: markers.ElementTagName,
		Serializer:     markers.Serializer,
		NonTraversable: markers.NonTraversable,
	}
	if markers.TagName != "" {
		ret.DefaultTagName = markers.TagName
	}

	delegateFor := func(name string) Delegate {
		d := markers.Members[name]
		if d == nil {
			d = TagDelegate{}
		}
		return d.withDefaults(name)
	}

	if t.Kind() == reflect.Struct {
		for field := range structFields(t, nil) {
			if !field.IsExported() || field.Type == classType {
				continue
			}
			if !isVisible(t, field) {
				continue
			}
			if markers.IsIgnored(field.Name) {
				continue
			}
			ret.Members = append(ret.Members, &MemberDescriptor{
				Name:     field.Name,
				Access:   Field,
				Type:     field.Type,
				Delegate: delegateFor(field.Name),
				index:    allocSteps(t, field.Index),
			})
		}
	}

	pt := reflect.PointerTo(t)
	for _, name := range markers.Accessors {
		if markers.IsIgnored(name) {
			continue
		}
		method, ok := pt.MethodByName(name)
		if !ok {
			return nil, typeErr(t, "accessor %s is not an exported method", name)
		}
		// Method types obtained from a reflect.Type include the
		// receiver as the first argument.
		mt := method.Type
		if mt.NumIn() != 1 {
			return nil, typeErr(t, "accessor %s must not take arguments", name)
		}
		returnsErr := false
		switch {
		case mt.NumOut() == 1:
		case mt.NumOut() == 2 && mt.Out(1) == errorType:
			returnsErr = true
		default:
			return nil, typeErr(t, "accessor %s must return a value, or a value and an error", name)
		}
		ret.Members = append(ret.Members, &MemberDescriptor{
			Name:       name,
			Access:     Accessor,
			Type:       mt.Out(0),
			Delegate:   delegateFor(name),
			method:     method.Index,
			returnsErr: returnsErr,
		})
	}

	return ret, nil
}

// isVisible reports whether field is accessible by name from t,
// according to the Go rules for embedded field promotion.
func isVisible(t reflect.Type, field reflect.StructField) bool {
	vf, ok := t.FieldByName(field.Name)
	return ok && slices.Equal(vf.Index, field.Index)
}

// shortName returns the unqualified name of t, without type
// parameters.
func shortName(t reflect.Type) string {
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return objectName
	}
	return name
}
