// Package markuptest provides helpers for testing code that uses
// package markup.
package markuptest

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/danderson/markup"
	"github.com/danderson/markup/tree"
)

// Recorder is a [markup.Sink] that records the calls made to it.
//
// Each call is recorded as one event string: "<name", ">", "@name=value",
// "text", or "raw". Raw fragments are checked for well-formedness with
// [tree.ParseFragment], and are not recorded if they fail to parse.
type Recorder struct {
	Events []string

	depth int
}

var _ markup.Sink = (*Recorder)(nil)

func (r *Recorder) StartElement(name string) error {
	r.depth++
	r.Events = append(r.Events, "<"+name)
	return nil
}

func (r *Recorder) EndElement() error {
	if r.depth == 0 {
		return fmt.Errorf("EndElement with no open element")
	}
	r.depth--
	r.Events = append(r.Events, ">")
	return nil
}

func (r *Recorder) Attribute(name, value string) error {
	r.Events = append(r.Events, fmt.Sprintf("@%s=%s", name, value))
	return nil
}

func (r *Recorder) Text(text string) error {
	r.Events = append(r.Events, fmt.Sprintf("text %q", text))
	return nil
}

func (r *Recorder) RawFragment(m string) error {
	if _, err := tree.ParseFragment(m); err != nil {
		return err
	}
	r.Events = append(r.Events, fmt.Sprintf("raw %q", m))
	return nil
}

// Depth returns the number of elements opened and not yet closed.
func (r *Recorder) Depth() int {
	return r.depth
}

func (r *Recorder) String() string {
	return strings.Join(r.Events, " ")
}

// CountingSource is a [markup.MetadataSource] that counts how many
// times the markers of each type are requested.
type CountingSource struct {
	// Source provides the markers. If nil, [markup.StructTags] is
	// used.
	Source markup.MetadataSource

	mu     sync.Mutex
	counts map[reflect.Type]int
}

var _ markup.MetadataSource = (*CountingSource)(nil)

func (c *CountingSource) Markers(t reflect.Type) (*markup.Markers, error) {
	c.mu.Lock()
	if c.counts == nil {
		c.counts = map[reflect.Type]int{}
	}
	c.counts[t]++
	c.mu.Unlock()

	src := c.Source
	if src == nil {
		src = markup.StructTags{}
	}
	return src.Markers(t)
}

// Count returns the number of times the markers of t were requested.
func (c *CountingSource) Count(t reflect.Type) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[t]
}

// MustMarshal serializes v with s, and returns the rendered result.
// It panics if serialization fails.
func MustMarshal(s *markup.Serializer, v any, tag, elemTag string) string {
	bs, err := s.Marshal(v, tag, elemTag)
	if err != nil {
		panic(fmt.Sprintf("marshaling %#v: %v", v, err))
	}
	return string(bs)
}
