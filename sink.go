package markup

// A Sink receives the elements, attributes and text produced by a
// [Serializer].
//
// The Sink tracks the currently open element. Attribute and Text
// apply to it, and StartElement opens a new element nested inside
// it. The Serializer never reads back from the Sink.
//
// [github.com/danderson/markup/tree.Document] is the standard
// implementation.
type Sink interface {
	// StartElement opens a new element named name.
	StartElement(name string) error
	// EndElement closes the currently open element.
	EndElement() error
	// Attribute sets an attribute on the currently open element.
	Attribute(name, value string) error
	// Text appends character data to the currently open element.
	Text(text string) error
	// RawFragment appends markup to the currently open element
	// without escaping. RawFragment must return an error, and leave
	// the Sink unchanged, if markup is not well-formed.
	RawFragment(markup string) error
}
