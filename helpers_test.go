package markup_test

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/danderson/markup"
)

// Foo is a struct with a tag member, an attribute member and an
// ignored member.
type Foo struct {
	Bar      int    `markup:"tag=bar"`
	Scalar   string `markup:"attr=bar"`
	IgnoreMe string `markup:"-"`
}

// Color is a named string type.
type Color string

// Point is a struct with no markup configuration.
type Point struct {
	X, Y int
}

// Shape is a struct with a class tag, and collection and pointer
// members.
type Shape struct {
	_ markup.Class `markup:"tag=shape"`

	Name   string  `markup:"attr=name"`
	Points []Point `markup:"tag=points,elem=point"`
	Origin *Point
}

// AttrEmpty is a struct with empty attributes.
type AttrEmpty struct {
	A string `markup:"attr=a"`
	B string `markup:"attr=b,keepempty"`
}

// Flags is a struct with boolean attributes.
type Flags struct {
	On  bool `markup:"attr=on"`
	Off bool `markup:"attr"`
}

// Base is a struct that other structs embed.
type Base struct {
	ID      string `markup:"attr=id"`
	Created string
}

// Post is a struct that embeds another struct by value.
type Post struct {
	Base
	Title string
}

// PostP is a struct that embeds another struct by pointer.
type PostP struct {
	*Base
	Title string
}

// Shadow is a struct that embeds another struct, with one of the
// embedded fields shadowed by an outer field.
type Shadow struct {
	Base
	Created int
}

// Order is a struct with accessor members, one with a value receiver
// and one with a pointer receiver.
type Order struct {
	_ markup.Class `markup:"tag=order,methods=Total;Label"`

	Items []int `markup:"tag=items,elem=item"`
}

func (o Order) Total() int {
	ret := 0
	for _, i := range o.Items {
		ret += i
	}
	return ret
}

func (o *Order) Label() (string, error) {
	return "order", nil
}

var errBroken = errors.New("broken")

// Broken is a struct with an accessor that fails.
type Broken struct {
	_ markup.Class `markup:"methods=Value"`
}

func (Broken) Value() (int, error) {
	return 0, errBroken
}

// Article is a struct with fragment members.
type Article struct {
	Body    string `markup:"fragment=body"`
	Summary string `markup:"fragment=-"`
	Notes   string `markup:"fragment=notes,breaks"`
}

// Temp is a struct that names a custom serializer.
type Temp struct {
	_ markup.Class `markup:"serializer=temp"`

	C float64
}

var tempSerializer = markup.SerializerFunc(func(s *markup.Serializer, w markup.Sink, v Temp, tag string) error {
	if tag == "" {
		tag = "temp"
	}
	if err := w.StartElement(tag); err != nil {
		return err
	}
	if err := w.Attribute("unit", "C"); err != nil {
		return err
	}
	if err := w.Text(fmt.Sprint(v.C)); err != nil {
		return err
	}
	return w.EndElement()
})

// Celsius implements Marshaler with a value receiver.
type Celsius float64

func (c Celsius) MarshalMarkup(s *markup.Serializer, w markup.Sink, tag string) error {
	if tag == "" {
		tag = "celsius"
	}
	if err := w.StartElement(tag); err != nil {
		return err
	}
	if err := w.Text(fmt.Sprintf("%gC", float64(c))); err != nil {
		return err
	}
	return w.EndElement()
}

// Secret implements Marshaler with a pointer receiver.
type Secret struct {
	V string
}

func (*Secret) MarshalMarkup(s *markup.Serializer, w markup.Sink, tag string) error {
	if err := w.StartElement("secret"); err != nil {
		return err
	}
	return w.EndElement()
}

// Bag is an Iterable struct with positional entries.
type Bag struct {
	_ markup.Class `markup:"tag=bag,elem=thing"`

	items []string
}

func (b Bag) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for i, s := range b.items {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Attrs is an Iterable struct with keyed entries.
type Attrs struct {
	keys []string
	vals []any
}

func (a *Attrs) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for i, k := range a.keys {
			if !yield(k, a.vals[i]) {
				return
			}
		}
	}
}

// OpaqueBag is an Iterable struct that is marked opaque.
type OpaqueBag struct {
	_ markup.Class `markup:"opaque"`

	Name string
}

func (OpaqueBag) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		yield(0, "unused")
	}
}

// Rect is a struct configured through a Registry.
type Rect struct {
	W, H int
}

func (r Rect) Area() int {
	return r.W * r.H
}

// BadTag is a struct with an invalid markup tag.
type BadTag struct {
	A string `markup:"attr,elem=x"`
}

// BadAccessor is a struct that names a method it doesn't have.
type BadAccessor struct {
	_ markup.Class `markup:"methods=Missing"`
}

func ptr[T any](v T) *T {
	return &v
}

// Names is a named slice, configured through a Registry.
type Names []string

// Scores is a named map with no configuration.
type Scores map[string]int

// Tags is a named slice with a located serializer.
type Tags []string

var tagsSerializer = markup.SerializerFunc(func(s *markup.Serializer, w markup.Sink, v Tags, tag string) error {
	if tag == "" {
		tag = "tags"
	}
	if err := w.StartElement(tag); err != nil {
		return err
	}
	if err := w.Text(strings.Join(v, ",")); err != nil {
		return err
	}
	return w.EndElement()
})
