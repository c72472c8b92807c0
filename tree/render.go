package tree

import (
	"bytes"
	"strings"
)

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"\t", "&#x9;",
		"\n", "&#xA;",
		"\r", "&#xD;",
	)
)

type renderer struct {
	out    *bytes.Buffer
	indent string
}

func (r *renderer) nodes(ns []Node, depth int) {
	for i, n := range ns {
		if i > 0 && r.indent != "" {
			r.out.WriteByte('\n')
		}
		r.node(n, depth)
	}
}

func (r *renderer) node(n Node, depth int) {
	switch n := n.(type) {
	case *Element:
		r.element(n, depth)
	case Text:
		textEscaper.WriteString(r.out, string(n))
	case Comment:
		r.out.WriteString("<!--")
		r.out.WriteString(string(n))
		r.out.WriteString("-->")
	case ProcInst:
		r.out.WriteString("<?")
		r.out.WriteString(n.Target)
		if n.Inst != "" {
			r.out.WriteByte(' ')
			r.out.WriteString(n.Inst)
		}
		r.out.WriteString("?>")
	}
}

func (r *renderer) element(e *Element, depth int) {
	r.out.WriteByte('<')
	r.out.WriteString(e.Name)
	for _, a := range e.Attrs {
		r.out.WriteByte(' ')
		r.out.WriteString(a.Name)
		r.out.WriteString(`="`)
		attrEscaper.WriteString(r.out, a.Value)
		r.out.WriteByte('"')
	}
	if len(e.Children) == 0 {
		r.out.WriteString("/>")
		return
	}
	r.out.WriteByte('>')

	if r.indent == "" || hasText(e) {
		for _, c := range e.Children {
			r.node(c, depth+1)
		}
	} else {
		for _, c := range e.Children {
			r.newline(depth + 1)
			r.node(c, depth+1)
		}
		r.newline(depth)
	}

	r.out.WriteString("</")
	r.out.WriteString(e.Name)
	r.out.WriteByte('>')
}

func (r *renderer) newline(depth int) {
	r.out.WriteByte('\n')
	for range depth {
		r.out.WriteString(r.indent)
	}
}

// hasText reports whether e has any text children. The content of
// such elements is rendered verbatim, since indentation would alter
// the text.
func hasText(e *Element) bool {
	for _, c := range e.Children {
		if _, ok := c.(Text); ok {
			return true
		}
	}
	return false
}
