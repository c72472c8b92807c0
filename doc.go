// Package markup converts Go values into trees of elements,
// attributes and text.
//
// A [Serializer] walks a value recursively and writes it to a
// [Sink]. Scalars become elements containing their text, collections
// become elements containing one element per entry, and structs
// become elements containing their members:
//
//	type Entry struct {
//	    _ markup.Class `markup:"tag=entry"`
//
//	    ID      string   `markup:"attr=id"`
//	    Title   string   `markup:"tag=title"`
//	    Tags    []string `markup:"tag=tags,elem=tag"`
//	    Body    string   `markup:"fragment=content,breaks"`
//	    Private string   `markup:"-"`
//	}
//
// serializes as:
//
//	<entry id="1">
//	  <title>Hello</title>
//	  <tags><tag>go</tag><tag>markup</tag></tags>
//	  <content>First line<br />
//	second line</content>
//	</entry>
//
// Each member of a struct is serialized by a [Delegate]:
// [TagDelegate] writes the member as a nested element using the same
// rules as the top-level value, [AttributeDelegate] writes it as an
// attribute of the enclosing element, and [FragmentDelegate] inserts
// it as raw, pre-formed markup.
//
// Fields are serialized in declaration order, followed by the
// accessor methods named in the type's [Class] marker. Members are
// configured by a [MetadataSource]. The default source, [StructTags],
// reads struct tags. A [Registry] configures types in code.
//
// The configuration of each type is computed once, the first time a
// value of that type is serialized, and reused for all values of the
// type.
//
// Types that need full control over their encoding can implement
// [Marshaler], or be given an [ObjectSerializer].
//
// The [github.com/danderson/markup/tree] package provides the
// in-memory document that [Marshal] renders.
package markup
