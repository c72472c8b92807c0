package main

import (
	"testing"

	"github.com/danderson/markup"
	"github.com/google/go-cmp/cmp"
)

func TestFormatFromName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a.json", "json"},
		{"a.yaml", "yaml"},
		{"dir/a.YML", "yaml"},
		{"a.toml", "toml"},
		{"-", "json"},
		{"noext", "json"},
	}
	for _, tc := range tests {
		if got := formatFromName(tc.in); got != tc.want {
			t.Errorf("formatFromName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		format string
		in     string
		want   string
	}{
		{
			name:   "json object order",
			format: "json",
			in:     `{"z": 1, "a": [true, null, 2.5], "s": "x"}`,
			want:   "<doc><z>1</z><a><boolean>true</boolean><null><null/></null><double>2.5</double></a><s>x</s></doc>",
		},
		{
			name:   "json scalar",
			format: "json",
			in:     `"hi"`,
			want:   "<doc>hi</doc>",
		},
		{
			name:   "json big number",
			format: "json",
			in:     `[1e300]`,
			want:   "<doc><double>1e+300</double></doc>",
		},
		{
			name:   "yaml mapping order",
			format: "yaml",
			in:     "z: 1\na:\n  - x\n  - y\nm:\n  k: v\n",
			want:   "<doc><z>1</z><a><string>x</string><string>y</string></a><m><k>v</k></m></doc>",
		},
		{
			name:   "toml sorted",
			format: "toml",
			in:     "z = 1\na = \"s\"\n[t]\nk = true\n[[list]]\nn = 1\n[[list]]\nn = 2\n",
			want:   "<doc><a>s</a><list><array><n>1</n></array><array><n>2</n></array></list><t><k>true</k></t><z>1</z></doc>",
		},
		{
			name:   "toml datetime",
			format: "toml",
			in:     "when = 2024-05-06T07:08:09Z\n",
			want:   "<doc><when>2024-05-06T07:08:09Z</when></doc>",
		},
	}

	var s markup.Serializer
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := decoders[tc.format]([]byte(tc.in))
			if err != nil {
				t.Fatalf("decoding %q: %v", tc.in, err)
			}
			got, err := s.Marshal(v, "doc", "")
			if err != nil {
				t.Fatalf("Marshal(%#v) got err: %v", v, err)
			}
			if diff := cmp.Diff(string(got), tc.want); diff != "" {
				t.Errorf("wrong output (-got+want):\n%s", diff)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		format, in string
	}{
		{"json", `{"a": 1`},
		{"json", `[1, 2]]`},
		{"json", `{} {}`},
		{"yaml", "a: [1, 2"},
		{"toml", "a = "},
	}
	for _, tc := range tests {
		if v, err := decoders[tc.format]([]byte(tc.in)); err == nil {
			t.Errorf("decoding %s %q = %#v, want error", tc.format, tc.in, v)
		}
	}
}

func TestDecodeJSONTypes(t *testing.T) {
	got, err := decodeJSON([]byte(`{"i": 3, "f": 0.5, "b": false, "n": null, "l": []}`))
	if err != nil {
		t.Fatal(err)
	}
	want := markup.Map{
		{Key: "i", Value: int64(3)},
		{Key: "f", Value: 0.5},
		{Key: "b", Value: false},
		{Key: "n", Value: nil},
		{Key: "l", Value: []any{}},
	}
	if diff := cmp.Diff(got, any(want)); diff != "" {
		t.Errorf("decodeJSON wrong result (-got+want):\n%s", diff)
	}
}
