// Package tree provides an in-memory markup document.
//
// A [Document] is built by a sequence of calls that open and close
// elements, and add attributes, text and raw markup to the currently
// open element. It renders to text with [Document.WriteTo].
package tree

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// A Node is a node of a document tree. It is one of *[Element],
// [Text], [Comment] or [ProcInst].
type Node interface {
	isNode()
}

// Attr is an attribute of an element.
type Attr struct {
	Name  string
	Value string
}

// Element is a named node, with attributes and child nodes.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []Node
}

// Attr returns the value of the attribute with the given name.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets the value of an attribute, replacing any existing
// value.
func (e *Element) SetAttr(name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{name, value})
}

// Elements returns the element children of e.
func (e *Element) Elements() []*Element {
	var ret []*Element
	for _, c := range e.Children {
		if ce, ok := c.(*Element); ok {
			ret = append(ret, ce)
		}
	}
	return ret
}

// Text is character data.
type Text string

// Comment is a comment.
type Comment string

// ProcInst is a processing instruction.
type ProcInst struct {
	Target string
	Inst   string
}

func (*Element) isNode() {}
func (Text) isNode()     {}
func (Comment) isNode()  {}
func (ProcInst) isNode() {}

// ErrInvalidName is returned for element and attribute names that are
// not valid markup names.
var ErrInvalidName = errors.New("invalid name")

// checkName returns an error if name is not a valid markup name.
func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	first, _ := utf8.DecodeRuneInString(name)
	if !isNameStart(first) {
		return fmt.Errorf("%w %q", ErrInvalidName, name)
	}
	for _, r := range name {
		if !isNameStart(r) && !isNameChar(r) {
			return fmt.Errorf("%w %q", ErrInvalidName, name)
		}
	}
	return nil
}

func isNameStart(r rune) bool {
	return r == '_' || r == ':' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return r == '-' || r == '.' || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}
