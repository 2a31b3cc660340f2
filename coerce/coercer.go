// Package coerce maps loosely typed, already materialized input values
// (strings, bools, numbers, []any and map[string]any, as produced by
// encoding/json, gjson or yaml.v3) onto Go values, using an accessor to
// discover which type every property wants.
package coerce

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	accessor "github.com/SimonDaKappa/go-accessor"
)

// CoercerOpts configures a Coercer. The zero value locates exported
// setters and fields by exact name and parses times with
// DefaultTimeLayouts.
type CoercerOpts struct {
	// Accessor is handed to every accessor the coercer builds.
	Accessor accessor.AccessorOpts
	// TimeLayouts are tried in order for strings coerced into time.Time.
	TimeLayouts []string
	// IgnoreUnknown skips argument names the destination has no property
	// for instead of failing with ErrUnknownProperty.
	IgnoreUnknown bool
}

// Coercer binds argument objects onto destination values. It is safe for
// concurrent use as long as the destinations are distinct.
type Coercer struct {
	opts        CoercerOpts
	timeLayouts []string
}

// NewCoercer creates a Coercer
func NewCoercer(opts CoercerOpts) *Coercer {
	layouts := opts.TimeLayouts
	if len(layouts) == 0 {
		layouts = DefaultTimeLayouts
	}
	return &Coercer{
		opts:        opts,
		timeLayouts: slices.Clone(layouts),
	}
}

var defaultCoercer = NewCoercer(CoercerOpts{})

// Bind binds args onto dest with a Coercer built from zero CoercerOpts.
func Bind(args map[string]any, dest any) error {
	return defaultCoercer.Bind(args, dest)
}

// Bind writes every entry of args onto the property of the same name on
// dest, which must be a non-nil pointer. Entries are processed in sorted
// key order; the first failure stops the bind and is returned as a
// *PathError naming the offending argument. Properties written before the
// failure keep their new values.
//
// Once every entry is bound, a dest implementing Validatable is validated;
// a rejected dest is reset to its zero value and a *ValidationError is
// returned. Nested objects are validated the same way, innermost first.
//
// Each entry goes through the accessor in four steps: HasProperty,
// PropertyType with RawPropertyType to pick the element and container
// types, coercion of the raw value, then Set.
func (c *Coercer) Bind(args map[string]any, dest any) error {
	return c.bind(args, dest)
}

func (c *Coercer) bind(args map[string]any, dest any) error {
	acc, err := accessor.ForInstance(dest, c.opts.Accessor)
	if err != nil {
		return err
	}

	for _, name := range slices.Sorted(maps.Keys(args)) {
		if err := c.bindProperty(acc, name, args[name]); err != nil {
			return atPath(name, err)
		}
	}
	return validate(dest)
}

func (c *Coercer) bindProperty(acc *accessor.Accessor, name string, raw any) error {
	if !acc.HasProperty(name) {
		if c.opts.IgnoreUnknown {
			return nil
		}
		return fmt.Errorf("%w on type `%s`", ErrUnknownProperty, acc.Type())
	}

	effective, err := acc.PropertyType(name)
	if err != nil {
		return err
	}
	declared, err := acc.RawPropertyType(name)
	if err != nil {
		return err
	}

	value, err := c.propertyValue(raw, declared, effective)
	if err != nil {
		return err
	}
	return acc.Set(name, value)
}

// propertyValue coerces raw for a property declared as declared. Lists are
// built item by item into the effective type, which is the element type of
// single-argument containers.
func (c *Coercer) propertyValue(raw any, declared, effective reflect.Type) (any, error) {
	if raw == nil {
		return nil, nil
	}

	if list, ok := raw.([]any); ok && declared != effective {
		if _, container := elementType(declared); container {
			out := reflect.New(declared).Elem()
			if err := c.collect(out, list, effective); err != nil {
				return nil, err
			}
			return out.Interface(), nil
		}
	}

	v, err := c.Value(raw, declared)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}
