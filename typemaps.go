package markup

import (
	"reflect"

	"github.com/creachadair/mds/mapset"
)

var (
	// intKinds is the set of reflect.Kinds that serialize as
	// integers, and that make map keys positional.
	intKinds = mapset.New(
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Uintptr,
	)

	// floatKinds is the set of reflect.Kinds that serialize as
	// doubles.
	floatKinds = mapset.New(
		reflect.Float32,
		reflect.Float64,
	)

	// collectionKinds is the set of reflect.Kinds that serialize as
	// a sequence or mapping of entries.
	collectionKinds = mapset.New(
		reflect.Slice,
		reflect.Array,
		reflect.Map,
	)
)

// Canonical element names used when no tag name is given.
const (
	nullName    = "null"
	booleanName = "boolean"
	integerName = "integer"
	doubleName  = "double"
	stringName  = "string"
	arrayName   = "array"
	objectName  = "object"
)

// scalarName returns the canonical element name for a value of kind
// k, or "" if k is not a scalar kind.
func scalarName(k reflect.Kind) string {
	switch {
	case k == reflect.Bool:
		return booleanName
	case intKinds.Has(k):
		return integerName
	case floatKinds.Has(k):
		return doubleName
	case k == reflect.String:
		return stringName
	}
	return ""
}
