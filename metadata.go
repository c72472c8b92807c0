package markup

import (
	"maps"
	"reflect"
	"sync"

	"github.com/creachadair/mds/mapset"
)

// Class marks a struct type with class-level markup configuration. A
// struct carries its configuration in the markup tag of a blank Class
// field:
//
//	type Feed struct {
//	    _ markup.Class `markup:"tag=feed"`
//
//	    Title string `markup:"attr=title"`
//	}
//
// The recognized class options are:
//
//   - tag=NAME: the element name used when the caller gives none,
//     instead of the type's name.
//   - elem=NAME: the element name of positional entries, for types
//     implementing [Iterable].
//   - serializer=NAME: serialize the type with the [ObjectSerializer]
//     that [Serializer.Locator] resolves for NAME.
//   - opaque: serialize the type member by member even if it
//     implements [Iterable].
//   - methods=A;B: serialize the results of the named accessor
//     methods after the fields, in the order given.
type Class struct{}

// A MetadataSource provides the markup configuration of types.
//
// Serializer calls Markers at most once per type, and caches the
// result for the lifetime of the Serializer or until
// [Serializer.Reset]. Markers must depend only on t, never on values
// of type t.
type MetadataSource interface {
	Markers(t reflect.Type) (*Markers, error)
}

// Markers is the markup configuration of one type.
type Markers struct {
	// Members maps member names to the delegate that serializes
	// them. Members without an entry use a default [TagDelegate].
	Members map[string]Delegate
	// Ignored is the set of member names that are not serialized.
	Ignored mapset.Set[string]
	// Accessors lists the methods whose results are serialized as
	// members, after all fields.
	Accessors []string

	// TagName overrides the type's default element name.
	TagName string
	// ElementTagName is the element name of positional entries, for
	// types that serialize as collections.
	ElementTagName string
	// Serializer names a custom serializer for the type, to be
	// resolved by a [Locator].
	Serializer string
	// NonTraversable, if true, serializes an [Iterable] type member
	// by member, rather than as a collection.
	NonTraversable bool
}

// IsIgnored reports whether the named member is ignored.
func (m *Markers) IsIgnored(name string) bool {
	return m.Ignored.Has(name)
}

// merge returns a copy of m overlaid with the non-zero settings of
// o.
func (m *Markers) merge(o *Markers) *Markers {
	ret := &Markers{
		Members:        maps.Clone(m.Members),
		Ignored:        mapset.New[string](),
		Accessors:      m.Accessors,
		TagName:        m.TagName,
		ElementTagName: m.ElementTagName,
		Serializer:     m.Serializer,
		NonTraversable: m.NonTraversable || o.NonTraversable,
	}
	if ret.Members == nil {
		ret.Members = map[string]Delegate{}
	}
	maps.Copy(ret.Members, o.Members)
	for name := range m.Ignored {
		ret.Ignored.Add(name)
	}
	for name := range o.Ignored {
		ret.Ignored.Add(name)
	}
	if o.Accessors != nil {
		ret.Accessors = o.Accessors
	}
	if o.TagName != "" {
		ret.TagName = o.TagName
	}
	if o.ElementTagName != "" {
		ret.ElementTagName = o.ElementTagName
	}
	if o.Serializer != "" {
		ret.Serializer = o.Serializer
	}
	return ret
}

// Registry is a [MetadataSource] for types configured in code rather
// than with struct tags, such as named slices or types from other
// packages. Registered markers are overlaid on the markers provided
// by Fallback.
//
// Overlays are additive. Registered members, ignored members and the
// opaque setting are added to those of Fallback, and non-empty names
// replace Fallback's. An overlay cannot remove a member delegate, an
// ignore or an opaque setting that Fallback provides.
//
// Types must be registered before they are first serialized.
type Registry struct {
	// Fallback provides the base markers for all types. If nil,
	// [StructTags] is used.
	Fallback MetadataSource

	mu sync.RWMutex
	m  map[reflect.Type]*Markers
}

// Register sets the markers for type t.
func (r *Registry) Register(t reflect.Type, m *Markers) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.m == nil {
		r.m = map[reflect.Type]*Markers{}
	}
	r.m[derefType(t)] = m
}

// RegisterType sets the markers for type T.
func RegisterType[T any](r *Registry, m *Markers) {
	r.Register(reflect.TypeFor[T](), m)
}

func (r *Registry) Markers(t reflect.Type) (*Markers, error) {
	fallback := r.Fallback
	if fallback == nil {
		fallback = StructTags{}
	}
	base, err := fallback.Markers(t)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	m := r.m[t]
	r.mu.RUnlock()
	if m == nil {
		return base, nil
	}
	return base.merge(m), nil
}
