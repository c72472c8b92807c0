package markup_test

import (
	"fmt"

	"github.com/danderson/markup"
)

type Entry struct {
	_ markup.Class `markup:"tag=entry"`

	ID      string   `markup:"attr=id"`
	Title   string   `markup:"tag=title"`
	Tags    []string `markup:"tag=tags,elem=tag"`
	Body    string   `markup:"fragment=content,breaks"`
	Private string   `markup:"-"`
}

func ExampleMarshalIndent() {
	e := Entry{
		ID:      "1",
		Title:   "Hello",
		Tags:    []string{"go", "markup"},
		Body:    "First line\nsecond line",
		Private: "secret",
	}
	bs, err := markup.MarshalIndent(e, "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bs))
	// Output:
	// <entry id="1">
	//   <title>Hello</title>
	//   <tags>
	//     <tag>go</tag>
	//     <tag>markup</tag>
	//   </tags>
	//   <content>First line<br/>
	// second line</content>
	// </entry>
}

func ExampleMap() {
	m := markup.Map{
		{"name", "gopher"},
		{"langs", []string{"go", "c"}},
	}
	name, _ := m.Get("name")
	fmt.Println(name)

	var s markup.Serializer
	bs, err := s.Marshal(m, "person", "")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bs))
	// Output:
	// gopher
	// <person><name>gopher</name><langs><string>go</string><string>c</string></langs></person>
}
