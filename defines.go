package accessor

import (
	"reflect"
	"time"
)

// constants for property location
const (
	SetterPrefix      = "Set"
	TagNameDelimiter  = ","
	TagIgnoreValue    = "-"
	TypeNameSeparator = "."

	// runtime suffix of function-local type names, as in "pkg.Local·1"
	localTypeMarker = "·"
)

// reflect.TypeOf constants for type checks
var (
	ErrorType = reflect.TypeOf((*error)(nil)).Elem()
	AnyType   = reflect.TypeOf((*any)(nil)).Elem()
	TimeType  = reflect.TypeOf(time.Time{})
)

// predeclaredTypes seed every binding map so that type arguments such as
// List[string] resolve without the argument being reachable from the target.
var predeclaredTypes = []reflect.Type{
	reflect.TypeOf(false),
	reflect.TypeOf(""),
	reflect.TypeOf(int(0)),
	reflect.TypeOf(int8(0)),
	reflect.TypeOf(int16(0)),
	reflect.TypeOf(int32(0)),
	reflect.TypeOf(int64(0)),
	reflect.TypeOf(uint(0)),
	reflect.TypeOf(uint8(0)),
	reflect.TypeOf(uint16(0)),
	reflect.TypeOf(uint32(0)),
	reflect.TypeOf(uint64(0)),
	reflect.TypeOf(uintptr(0)),
	reflect.TypeOf(float32(0)),
	reflect.TypeOf(float64(0)),
	reflect.TypeOf(complex64(0)),
	reflect.TypeOf(complex128(0)),
	ErrorType,
	AnyType,
	TimeType,
}
