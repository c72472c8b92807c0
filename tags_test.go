package markup

import (
	"reflect"
	"testing"

	"github.com/creachadair/mds/mapset"
	"github.com/google/go-cmp/cmp"
)

func TestParseMemberTag(t *testing.T) {
	tests := []struct {
		tag     string
		want    Delegate
		wantErr bool
	}{
		{"", TagDelegate{}, false},
		{"tag=foo", TagDelegate{TagName: "foo"}, false},
		{"tag=foo,elem=item", TagDelegate{TagName: "foo", ElementTagName: "item"}, false},
		{"elem=item", TagDelegate{ElementTagName: "item"}, false},
		{"tag=-", TagDelegate{TagName: NoTag}, false},
		{"attr", AttributeDelegate{}, false},
		{"attr=id", AttributeDelegate{Name: "id"}, false},
		{"attr=id,keepempty", AttributeDelegate{Name: "id", KeepEmpty: true}, false},
		{"fragment", FragmentDelegate{}, false},
		{"fragment=body,breaks", FragmentDelegate{TagName: "body", Breaks: true}, false},
		{"fragment=-", FragmentDelegate{TagName: NoTag}, false},

		{"attr,fragment", nil, true},
		{"attr=", nil, true},
		{"attr,elem=x", nil, true},
		{"attr,breaks", nil, true},
		{"fragment,keepempty", nil, true},
		{"tag=x,keepempty", nil, true},
		{"elem=", nil, true},
		{"bogus", nil, true},
	}

	for _, tc := range tests {
		got, err := parseMemberTag(tc.tag)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseMemberTag(%q) = %v, want error", tc.tag, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseMemberTag(%q) got err: %v", tc.tag, err)
			continue
		}
		if diff := cmp.Diff(got, tc.want); diff != "" {
			t.Errorf("parseMemberTag(%q) wrong result (-got+want):\n%s", tc.tag, diff)
		}
	}
}

func TestParseClassTag(t *testing.T) {
	var got Markers
	if err := parseClassTag(&got, "tag=feed,elem=entry,serializer=atom,opaque,methods=A;B"); err != nil {
		t.Fatal(err)
	}
	want := Markers{
		TagName:        "feed",
		ElementTagName: "entry",
		Serializer:     "atom",
		NonTraversable: true,
		Accessors:      []string{"A", "B"},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("parseClassTag wrong result (-got+want):\n%s", diff)
	}

	for _, bad := range []string{"serializer=", "methods=A;;B", "tagname=x"} {
		if err := parseClassTag(&Markers{}, bad); err == nil {
			t.Errorf("parseClassTag(%q) succeeded, want error", bad)
		}
	}
}

type tagged struct {
	_ Class `markup:"tag=t,methods=Sum"`

	A int    `markup:"attr=a"`
	B string `markup:"-"`
	C string
	d string `markup:"attr"`
	embedded
}

type embedded struct {
	_ Class `markup:"tag=ignored"`

	E []int `markup:"elem=n"`
}

func (tagged) Sum() int { return 0 }

func TestStructTags(t *testing.T) {
	got, err := StructTags{}.Markers(reflect.TypeFor[tagged]())
	if err != nil {
		t.Fatal(err)
	}
	want := &Markers{
		Members: map[string]Delegate{
			"A": AttributeDelegate{Name: "a"},
			"E": TagDelegate{ElementTagName: "n"},
		},
		Ignored:   mapset.New("B"),
		Accessors: []string{"Sum"},
		TagName:   "t",
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("StructTags.Markers wrong result (-got+want):\n%s", diff)
	}

	got, err = StructTags{}.Markers(reflect.TypeFor[[]int]())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Members) != 0 || len(got.Ignored) != 0 {
		t.Errorf("StructTags.Markers of non-struct = %+v, want empty", got)
	}
}

func TestMarkersMerge(t *testing.T) {
	base := &Markers{
		Members: map[string]Delegate{
			"A": AttributeDelegate{},
			"B": TagDelegate{},
		},
		Ignored: mapset.New("C"),
		TagName: "base",
	}
	over := &Markers{
		Members: map[string]Delegate{
			"B": FragmentDelegate{},
		},
		Ignored:        mapset.New("D"),
		Accessors:      []string{"M"},
		ElementTagName: "item",
	}
	got := base.merge(over)
	want := &Markers{
		Members: map[string]Delegate{
			"A": AttributeDelegate{},
			"B": FragmentDelegate{},
		},
		Ignored:        mapset.New("C", "D"),
		Accessors:      []string{"M"},
		TagName:        "base",
		ElementTagName: "item",
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("merge wrong result (-got+want):\n%s", diff)
	}
	if _, ok := base.Members["B"].(TagDelegate); !ok {
		t.Error("merge modified the base markers")
	}
}
