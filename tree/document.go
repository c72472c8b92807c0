package tree

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Document is an in-memory markup document. The zero value is an
// empty document.
//
// Document implements the Sink interface of
// [github.com/danderson/markup].
type Document struct {
	// Nodes are the top-level nodes of the document.
	Nodes []Node
	// Indent, if set, is the string used to indent nested elements
	// when rendering. Elements containing text are never indented
	// inside.
	Indent string

	// open is the stack of currently open elements.
	open []*Element
}

// Root returns the first top-level element of the document, or nil.
func (d *Document) Root() *Element {
	for _, n := range d.Nodes {
		if e, ok := n.(*Element); ok {
			return e
		}
	}
	return nil
}

// Depth returns the number of currently open elements.
func (d *Document) Depth() int {
	return len(d.open)
}

// Reset empties the document.
func (d *Document) Reset() {
	d.Nodes = nil
	d.open = nil
}

func (d *Document) current() *Element {
	if len(d.open) == 0 {
		return nil
	}
	return d.open[len(d.open)-1]
}

func (d *Document) appendNode(n Node) {
	if e := d.current(); e != nil {
		e.Children = append(e.Children, n)
	} else {
		d.Nodes = append(d.Nodes, n)
	}
}

// StartElement opens a new element, nested in the currently open
// element.
func (d *Document) StartElement(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	e := &Element{Name: name}
	d.appendNode(e)
	d.open = append(d.open, e)
	return nil
}

// EndElement closes the currently open element.
func (d *Document) EndElement() error {
	if len(d.open) == 0 {
		return errors.New("EndElement with no open element")
	}
	d.open = d.open[:len(d.open)-1]
	return nil
}

// Attribute sets an attribute on the currently open element.
func (d *Document) Attribute(name, value string) error {
	e := d.current()
	if e == nil {
		return fmt.Errorf("attribute %q with no open element", name)
	}
	if err := checkName(name); err != nil {
		return err
	}
	e.SetAttr(name, value)
	return nil
}

// Text appends text to the currently open element. Adjacent text is
// merged into a single node.
func (d *Document) Text(text string) error {
	if text == "" {
		return nil
	}
	d.appendText(text)
	return nil
}

func (d *Document) appendText(text string) {
	nodes := &d.Nodes
	if e := d.current(); e != nil {
		nodes = &e.Children
	}
	if n := len(*nodes); n > 0 {
		if prev, ok := (*nodes)[n-1].(Text); ok {
			(*nodes)[n-1] = prev + Text(text)
			return
		}
	}
	*nodes = append(*nodes, Text(text))
}

// RawFragment parses markup and appends the resulting nodes to the
// currently open element. If markup is not well-formed, RawFragment
// returns an error and leaves the document unchanged.
func (d *Document) RawFragment(markup string) error {
	nodes, err := ParseFragment(markup)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		if t, ok := n.(Text); ok {
			d.appendText(string(t))
		} else {
			d.appendNode(n)
		}
	}
	return nil
}

// WriteTo renders the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	r := renderer{out: &buf, indent: d.Indent}
	r.nodes(d.Nodes, 0)
	return buf.WriteTo(w)
}

// Bytes returns the rendered document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	d.WriteTo(&buf)
	return buf.Bytes()
}

// String returns the rendered document.
func (d *Document) String() string {
	return string(d.Bytes())
}
