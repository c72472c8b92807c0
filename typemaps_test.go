package markup

import (
	"reflect"
	"testing"
)

func TestScalarName(t *testing.T) {
	tests := []struct {
		k    reflect.Kind
		want string
	}{
		{reflect.Bool, "boolean"},
		{reflect.Int, "integer"},
		{reflect.Uint16, "integer"},
		{reflect.Uintptr, "integer"},
		{reflect.Float32, "double"},
		{reflect.String, "string"},
		{reflect.Complex128, ""},
		{reflect.Struct, ""},
		{reflect.Slice, ""},
	}
	for _, tc := range tests {
		if got := scalarName(tc.k); got != tc.want {
			t.Errorf("scalarName(%v) = %q, want %q", tc.k, got, tc.want)
		}
	}
}
