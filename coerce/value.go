package coerce

import (
	"encoding"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
)

///////////////////////////////////////////////////////////////////////////////
// Value coercion
///////////////////////////////////////////////////////////////////////////////

// Value coerces raw into a value of type typ.
//
// Currently supports:
//   - nil to the zero value of typ
//   - values assignable to typ, passed through unchanged
//   - pointers, allocated and filled with the coerced element
//   - string to every scalar kind (with overflow checking)
//   - string to uuid.UUID, time.Time and encoding.TextUnmarshaler types
//   - string to []byte (raw byte slice)
//   - numbers across numeric kinds (with overflow and integrality checking)
//   - []any to slices, arrays and map-backed sets
//   - map[string]any to structs (through Bind) and string keyed maps
//   - a single value to a list of one
func (c *Coercer) Value(raw any, typ reflect.Type) (reflect.Value, error) {
	if typ == nil {
		return reflect.Value{}, fmt.Errorf("%w: nil type", ErrUnsupportedType)
	}
	if raw == nil {
		return reflect.Zero(typ), nil
	}

	source := reflect.ValueOf(raw)
	if source.Type().AssignableTo(typ) {
		return source, nil
	}

	if typ.Kind() == reflect.Pointer {
		elem, err := c.Value(raw, typ.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(typ.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	}

	dest := reflect.New(typ).Elem()
	if err := c.set(dest, source); err != nil {
		return reflect.Value{}, err
	}
	return dest, nil
}

// set stores source into the addressable dest with type conversion
func (c *Coercer) set(dest reflect.Value, source reflect.Value) error {
	switch raw := source.Interface().(type) {
	case string:
		return c.setFieldValue(dest, raw)
	case []any:
		elem, ok := elementType(dest.Type())
		if !ok {
			return unsupported(source, dest)
		}
		return c.collect(dest, raw, elem)
	case map[string]any:
		return c.object(dest, raw)
	}

	switch source.Kind() {
	case reflect.Bool:
		if dest.Kind() != reflect.Bool {
			return c.promote(dest, source)
		}
		dest.SetBool(source.Bool())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		if !isNumberKind(dest.Kind()) {
			return c.promote(dest, source)
		}
		return setNumberValue(dest, source)
	}

	// Named types over the same kind, e.g. a type Genre string already
	// holding Genre("x") for a *Genre property.
	if source.Kind() == dest.Kind() && source.Type().ConvertibleTo(dest.Type()) {
		dest.Set(source.Convert(dest.Type()))
		return nil
	}
	return c.promote(dest, source)
}

// promote turns a single value into a list of one for list typed
// destinations.
func (c *Coercer) promote(dest reflect.Value, source reflect.Value) error {
	elem, ok := elementType(dest.Type())
	if !ok {
		return unsupported(source, dest)
	}
	return c.collect(dest, []any{source.Interface()}, elem)
}

func unsupported(source reflect.Value, dest reflect.Value) error {
	return fmt.Errorf("%w: cannot coerce %s into %s", ErrUnsupportedType, source.Type(), dest.Type())
}

///////////////////////////////////////////////////////////////////////////////
// Strings
///////////////////////////////////////////////////////////////////////////////

// setFieldValue sets a value from its string form
func (c *Coercer) setFieldValue(field reflect.Value, value string) error {
	// Handle nil/empty values
	if value == "" {
		return handleEmptyValue(field)
	}

	switch field.Type() {
	case UUIDType:
		return setUUIDValue(field, value)
	case TimeType:
		return c.setTimeValue(field, value)
	}

	// Check for pointer to TextUnmarshaler
	if reflect.PointerTo(field.Type()).Implements(TextUnmarshalerType) {
		return field.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(value))
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setIntValue(field, value)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return setUintValue(field, value)
	case reflect.Float32, reflect.Float64:
		return setFloatValue(field, value)
	case reflect.Complex64, reflect.Complex128:
		return setComplexValue(field, value)
	case reflect.Bool:
		return setBoolValue(field, value)
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.Uint8 {
			// []byte slice
			field.SetBytes([]byte(value))
			return nil
		}
		return c.promote(field, reflect.ValueOf(value))
	case reflect.Array, reflect.Map:
		return c.promote(field, reflect.ValueOf(value))
	default:
		return fmt.Errorf("%w: cannot coerce string into %s", ErrUnsupportedType, field.Type())
	}
}

// handleEmptyValue handles empty string values for different field types
func handleEmptyValue(field reflect.Value) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString("")
		return nil
	case reflect.Slice, reflect.Map, reflect.Pointer, reflect.Interface:
		field.SetZero()
		return nil
	default:
		return fmt.Errorf("%w: cannot set empty value for %s", ErrUnsupportedType, field.Type())
	}
}

// setIntValue sets integer field values with overflow checking
func setIntValue(field reflect.Value, value string) error {
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("error converting value to int: %w", err)
	}

	if field.OverflowInt(intValue) {
		return fmt.Errorf("%w: value %d overflows %s", ErrOverflow, intValue, field.Type())
	}

	field.SetInt(intValue)
	return nil
}

// setUintValue sets unsigned integer field values with overflow checking
func setUintValue(field reflect.Value, value string) error {
	uintValue, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return fmt.Errorf("error converting value to uint: %w", err)
	}

	if field.OverflowUint(uintValue) {
		return fmt.Errorf("%w: value %d overflows %s", ErrOverflow, uintValue, field.Type())
	}

	field.SetUint(uintValue)
	return nil
}

// setFloatValue sets float field values with overflow checking
func setFloatValue(field reflect.Value, value string) error {
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("error converting value to float: %w", err)
	}

	if field.OverflowFloat(floatValue) {
		return fmt.Errorf("%w: value %g overflows %s", ErrOverflow, floatValue, field.Type())
	}

	field.SetFloat(floatValue)
	return nil
}

// setComplexValue sets complex field values
func setComplexValue(field reflect.Value, value string) error {
	complexValue, err := strconv.ParseComplex(value, 128)
	if err != nil {
		return fmt.Errorf("error converting value to complex: %w", err)
	}

	if field.OverflowComplex(complexValue) {
		return fmt.Errorf("%w: value %v overflows %s", ErrOverflow, complexValue, field.Type())
	}

	field.SetComplex(complexValue)
	return nil
}

// setBoolValue sets boolean field values
//
// Many common boolean representations are supported:
//   - "true", "1", "yes", "on" (case insensitive)
//   - "false", "0", "no", "off" (case insensitive)
//   - Standard boolean parsing using strconv.ParseBool
func setBoolValue(field reflect.Value, value string) error {
	switch value {
	case "true", "1", "yes", "on", "True", "TRUE", "Yes", "YES", "On", "ON":
		field.SetBool(true)
		return nil
	case "false", "0", "no", "off", "False", "FALSE", "No", "NO", "Off", "OFF":
		field.SetBool(false)
		return nil
	default:
		// Fall back to standard parsing
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("error converting value to bool: %w", err)
		}
		field.SetBool(boolValue)
		return nil
	}
}

func setUUIDValue(field reflect.Value, value string) error {
	uuidValue, err := uuid.Parse(value)
	if err != nil {
		return fmt.Errorf("error converting value to UUID: %w", err)
	}
	field.Set(reflect.ValueOf(uuidValue))
	return nil
}

// setTimeValue tries every configured layout in order
func (c *Coercer) setTimeValue(field reflect.Value, value string) error {
	var err error
	for _, layout := range c.timeLayouts {
		var timeValue time.Time
		if timeValue, err = time.Parse(layout, value); err == nil {
			field.Set(reflect.ValueOf(timeValue))
			return nil
		}
	}
	return fmt.Errorf("error converting value to time.Time: %w", err)
}

///////////////////////////////////////////////////////////////////////////////
// Numbers
///////////////////////////////////////////////////////////////////////////////

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// setNumberValue converts between numeric kinds. Integers must fit the
// destination, floats stored into integers must have no fractional part.
func setNumberValue(field reflect.Value, source reflect.Value) error {
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := toInt64(source)
		if err != nil {
			return err
		}
		if field.OverflowInt(n) {
			return fmt.Errorf("%w: value %d overflows %s", ErrOverflow, n, field.Type())
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := toUint64(source)
		if err != nil {
			return err
		}
		if field.OverflowUint(n) {
			return fmt.Errorf("%w: value %d overflows %s", ErrOverflow, n, field.Type())
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f := toFloat64(source)
		if field.OverflowFloat(f) {
			return fmt.Errorf("%w: value %g overflows %s", ErrOverflow, f, field.Type())
		}
		field.SetFloat(f)
	case reflect.Complex64, reflect.Complex128:
		field.SetComplex(complex(toFloat64(source), 0))
	default:
		return fmt.Errorf("%w: cannot coerce %s into %s", ErrUnsupportedType, source.Type(), field.Type())
	}
	return nil
}

func toInt64(source reflect.Value) (int64, error) {
	switch source.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return source.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := source.Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("%w: value %d overflows int64", ErrOverflow, u)
		}
		return int64(u), nil
	default:
		f := source.Float()
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("%w: %g", ErrNotIntegral, f)
		}
		// float64(math.MaxInt64) rounds up to 2^63, which is out of range.
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: value %g overflows int64", ErrOverflow, f)
		}
		return int64(f), nil
	}
}

func toUint64(source reflect.Value) (uint64, error) {
	switch source.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := source.Int()
		if n < 0 {
			return 0, fmt.Errorf("%w: negative value %d for unsigned type", ErrOverflow, n)
		}
		return uint64(n), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return source.Uint(), nil
	default:
		f := source.Float()
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("%w: %g", ErrNotIntegral, f)
		}
		if f < 0 || f >= math.MaxUint64 {
			return 0, fmt.Errorf("%w: value %g overflows uint64", ErrOverflow, f)
		}
		return uint64(f), nil
	}
}

func toFloat64(source reflect.Value) float64 {
	switch source.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(source.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(source.Uint())
	default:
		return source.Float()
	}
}

///////////////////////////////////////////////////////////////////////////////
// Lists and objects
///////////////////////////////////////////////////////////////////////////////

// collect fills a slice, array or set from list, coercing every item into
// elem. elem falls back to the structural element type when it cannot be
// stored into dest.
func (c *Coercer) collect(dest reflect.Value, list []any, elem reflect.Type) error {
	typ := dest.Type()
	if structural, ok := elementType(typ); ok && (elem == nil || !elem.AssignableTo(structural)) {
		elem = structural
	}

	switch {
	case typ.Kind() == reflect.Slice:
		out := reflect.MakeSlice(typ, len(list), len(list))
		for i, item := range list {
			v, err := c.Value(item, elem)
			if err != nil {
				return atPath("["+strconv.Itoa(i)+"]", err)
			}
			out.Index(i).Set(v)
		}
		dest.Set(out)
	case typ.Kind() == reflect.Array:
		if len(list) > typ.Len() {
			return fmt.Errorf("%w: %d items for %s", ErrOverflow, len(list), typ)
		}
		out := reflect.New(typ).Elem()
		for i, item := range list {
			v, err := c.Value(item, elem)
			if err != nil {
				return atPath("["+strconv.Itoa(i)+"]", err)
			}
			out.Index(i).Set(v)
		}
		dest.Set(out)
	case isSetType(typ):
		out := reflect.MakeMapWithSize(typ, len(list))
		member := reflect.Zero(typ.Elem())
		for i, item := range list {
			v, err := c.Value(item, elem)
			if err != nil {
				return atPath("["+strconv.Itoa(i)+"]", err)
			}
			out.SetMapIndex(v, member)
		}
		dest.Set(out)
	default:
		return fmt.Errorf("%w: cannot coerce a list into %s", ErrUnsupportedType, typ)
	}
	return nil
}

// object fills a struct or a string keyed map from an argument object
func (c *Coercer) object(dest reflect.Value, args map[string]any) error {
	typ := dest.Type()

	switch {
	case typ.Kind() == reflect.Struct && !isSpecialStructType(typ):
		return c.bind(args, dest.Addr().Interface())
	case typ.Kind() == reflect.Map && typ.Key().Kind() == reflect.String:
		out := reflect.MakeMapWithSize(typ, len(args))
		for _, key := range slices.Sorted(maps.Keys(args)) {
			v, err := c.Value(args[key], typ.Elem())
			if err != nil {
				return atPath(key, err)
			}
			out.SetMapIndex(reflect.ValueOf(key).Convert(typ.Key()), v)
		}
		dest.Set(out)
		return nil
	default:
		return fmt.Errorf("%w: cannot coerce an object into %s", ErrUnsupportedType, typ)
	}
}
