package coerce

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownProperty is returned by Bind for argument names the
	// destination has no accessor for, unless CoercerOpts.IgnoreUnknown is
	// set.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrUnsupportedType is returned when no coercion exists from the raw
	// value to the requested type.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrOverflow is returned when a number, or a list, does not fit the
	// requested type.
	ErrOverflow = errors.New("value overflows type")
	// ErrNotIntegral is returned when a float with a fractional part is
	// coerced into an integer type.
	ErrNotIntegral = errors.New("value is not integral")
)

// PathError records the argument path a coercion failed at, e.g.
// "filter.genres[2]".
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// atPath wraps err with path, extending the path of a nested PathError
// instead of stacking prefixes.
func atPath(path string, err error) error {
	if err == nil || path == "" {
		return err
	}
	if pe, ok := err.(*PathError); ok {
		if strings.HasPrefix(pe.Path, "[") {
			return &PathError{Path: path + pe.Path, Err: pe.Err}
		}
		return &PathError{Path: path + "." + pe.Path, Err: pe.Err}
	}
	return &PathError{Path: path, Err: err}
}
