package markup

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/creachadair/mds/mapset"
)

const tagKey = "markup"

// StructTags is the default [MetadataSource]. It reads member
// configuration from the "markup" struct tags of fields, and class
// configuration from the tag of a blank [Class] field.
//
// The recognized member tags are:
//
//	`markup:"-"`                     don't serialize the field
//	`markup:"tag=NAME,elem=ITEM"`    serialize with a TagDelegate
//	`markup:"attr=NAME,keepempty"`   serialize with an AttributeDelegate
//	`markup:"fragment=NAME,breaks"`  serialize with a FragmentDelegate
//
// All options are optional: `markup:"attr"` is an attribute named
// after the field, and `markup:"fragment=-"` is a fragment inserted
// without a wrapping element.
type StructTags struct{}

func (StructTags) Markers(t reflect.Type) (*Markers, error) {
	ret := &Markers{
		Members: map[string]Delegate{},
		Ignored: mapset.New[string](),
	}
	t = derefType(t)
	if t.Kind() != reflect.Struct {
		return ret, nil
	}

	for field := range structFields(t, nil) {
		if field.Type == classType {
			if len(field.Index) > 1 {
				// Class markers of embedded structs configure
				// the embedded type, not the outer one.
				continue
			}
			if err := parseClassTag(ret, field.Tag.Get(tagKey)); err != nil {
				return nil, typeErr(t, "invalid class tag: %w", err)
			}
			continue
		}
		if !field.IsExported() {
			continue
		}

		tag, ok := field.Tag.Lookup(tagKey)
		if !ok {
			continue
		}
		if tag == "-" {
			ret.Ignored.Add(field.Name)
			continue
		}
		d, err := parseMemberTag(tag)
		if err != nil {
			return nil, typeErr(t, "invalid tag on field %s: %w", field.Name, err)
		}
		ret.Members[field.Name] = d
	}

	return ret, nil
}

// parseMemberTag returns the delegate described by a member's markup
// tag.
func parseMemberTag(tag string) (Delegate, error) {
	var (
		kind    string
		name    string
		elem    string
		options []string
	)
	for _, f := range strings.Split(tag, ",") {
		k, v, hasVal := strings.Cut(f, "=")
		switch k {
		case "tag", "attr", "fragment":
			if kind != "" {
				return nil, fmt.Errorf("conflicting options %q and %q", kind, k)
			}
			kind, name = k, v
			if hasVal && v == "" {
				return nil, fmt.Errorf("empty name for %q", k)
			}
		case "elem":
			if v == "" {
				return nil, errors.New("empty name for \"elem\"")
			}
			elem = v
		case "keepempty", "breaks":
			options = append(options, k)
		case "":
		default:
			return nil, fmt.Errorf("unknown option %q", k)
		}
	}

	checkOpts := func(allowed ...string) error {
		for _, o := range options {
			if !slices.Contains(allowed, o) {
				return fmt.Errorf("option %q not valid for %s", o, kind)
			}
		}
		return nil
	}

	switch kind {
	case "attr":
		if err := checkOpts("keepempty"); err != nil {
			return nil, err
		}
		if elem != "" {
			return nil, errors.New(`option "elem" not valid for attr`)
		}
		return AttributeDelegate{
			Name:      name,
			KeepEmpty: slices.Contains(options, "keepempty"),
		}, nil
	case "fragment":
		if err := checkOpts("breaks"); err != nil {
			return nil, err
		}
		if elem != "" {
			return nil, errors.New(`option "elem" not valid for fragment`)
		}
		return FragmentDelegate{
			TagName: name,
			Breaks:  slices.Contains(options, "breaks"),
		}, nil
	default:
		kind = "tag"
		if err := checkOpts(); err != nil {
			return nil, err
		}
		return TagDelegate{
			TagName:        name,
			ElementTagName: elem,
		}, nil
	}
}

// parseClassTag stores the configuration in a Class field's markup
// tag into m.
func parseClassTag(m *Markers, tag string) error {
	if tag == "" {
		return nil
	}
	for _, f := range strings.Split(tag, ",") {
		k, v, _ := strings.Cut(f, "=")
		switch k {
		case "tag":
			m.TagName = v
		case "elem":
			m.ElementTagName = v
		case "serializer":
			if v == "" {
				return errors.New(`empty name for "serializer"`)
			}
			m.Serializer = v
		case "opaque":
			m.NonTraversable = true
		case "methods":
			for _, name := range strings.Split(v, ";") {
				if name == "" {
					return errors.New("empty method name")
				}
				m.Accessors = append(m.Accessors, name)
			}
		case "":
		default:
			return fmt.Errorf("unknown option %q", k)
		}
	}
	return nil
}
