package tree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// fragmentRoot is the name of the element that wraps fragments while
// parsing, so that fragments may have several top-level nodes.
const fragmentRoot = "fragment"

// ParseFragment parses markup into a sequence of nodes. markup may
// contain any number of top-level elements, text, comments and
// processing instructions, but must be otherwise well-formed.
//
// Only the predefined XML entities are recognized.
func ParseFragment(markup string) ([]Node, error) {
	nodes, err := parseFragment(markup)
	if err != nil {
		return nil, fmt.Errorf("parsing fragment: %w", err)
	}
	return nodes, nil
}

func parseFragment(markup string) ([]Node, error) {
	dec := xml.NewDecoder(strings.NewReader("<" + fragmentRoot + ">" + markup + "</" + fragmentRoot + ">"))
	dec.Strict = true

	var (
		root  = &Element{}
		stack []*Element
		done  bool
	)
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			if !done {
				return nil, errors.New("unexpected end of fragment")
			}
			return root.Children, nil
		}
		if err != nil {
			return nil, err
		}
		if done {
			return nil, errors.New("unexpected content after end of fragment")
		}

		if stack == nil {
			// The first token is always the synthetic root.
			stack = append(stack, root)
			continue
		}
		top := stack[len(stack)-1]

		switch t := tok.(type) {
		case xml.StartElement:
			e := &Element{Name: joinName(t.Name)}
			for _, a := range t.Attr {
				name := joinName(a.Name)
				if _, dup := e.Attr(name); dup {
					return nil, fmt.Errorf("duplicate attribute %q on <%s>", name, e.Name)
				}
				e.Attrs = append(e.Attrs, Attr{name, a.Value})
			}
			top.Children = append(top.Children, e)
			stack = append(stack, e)
		case xml.EndElement:
			name := joinName(t.Name)
			if len(stack) == 1 {
				if name != fragmentRoot {
					return nil, fmt.Errorf("unexpected </%s>", name)
				}
				done = true
				stack = stack[:0]
				continue
			}
			if name != top.Name {
				return nil, fmt.Errorf("element <%s> closed by </%s>", top.Name, name)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if n := len(top.Children); n > 0 {
				if prev, ok := top.Children[n-1].(Text); ok {
					top.Children[n-1] = prev + Text(t)
					continue
				}
			}
			top.Children = append(top.Children, Text(t))
		case xml.Comment:
			top.Children = append(top.Children, Comment(t))
		case xml.ProcInst:
			top.Children = append(top.Children, ProcInst{t.Target, string(t.Inst)})
		case xml.Directive:
			return nil, errors.New("directives are not allowed in fragments")
		}
	}
}

func joinName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
