package coerce

import (
	"encoding"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// reflect.TypeOf constants for type checks
var (
	UUIDType            = reflect.TypeOf(uuid.UUID{})
	TimeType            = reflect.TypeOf(time.Time{})
	TextUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// DefaultTimeLayouts are tried in order when a string is coerced into a
// time.Time and CoercerOpts.TimeLayouts is empty.
var DefaultTimeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05",
}

// isSpecialStructType checks if a struct type should be treated as a scalar
// rather than being bound from an object. Special types include time.Time,
// uuid.UUID, etc.
func isSpecialStructType(t reflect.Type) bool {
	return t == TimeType || t == UUIDType
}

// isSetType reports whether t is a map used as a set, map[K]struct{}.
func isSetType(t reflect.Type) bool {
	return t.Kind() == reflect.Map &&
		t.Elem().Kind() == reflect.Struct &&
		t.Elem().NumField() == 0
}

// elementType is the structural element type of a container: the element
// of slices and arrays, the key of sets.
func elementType(t reflect.Type) (reflect.Type, bool) {
	switch {
	case t.Kind() == reflect.Slice, t.Kind() == reflect.Array:
		return t.Elem(), true
	case isSetType(t):
		return t.Key(), true
	default:
		return nil, false
	}
}
