package accessor

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSuchProperty is returned when a property is used without having
	// been located. It signals caller misuse: HasProperty must be checked
	// before PropertyType, RawPropertyType or TrySet.
	ErrNoSuchProperty = errors.New("no such property")
	// ErrInvalidTarget is returned when a descriptor cannot be built for a
	// type, or when a write target is not a non-nil pointer to that type.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrNotBound is returned by Set on a type-only Accessor.
	ErrNotBound = errors.New("accessor is not bound to an instance")
	// ErrInvalidInputArgument is the sentinel InvalidInputArgumentError
	// unwraps to.
	ErrInvalidInputArgument = errors.New("invalid input argument")
	// ErrSetterFailed wraps a non-nil error returned by a setter method.
	ErrSetterFailed = errors.New("setter failed")
	// ErrFieldNotSettable is returned when a field, or an embedded pointer on
	// the way to it, cannot be written without ForceAccess.
	ErrFieldNotSettable = errors.New("field is not settable")
)

// InvalidInputArgumentError reports a value that is not assignable to the
// raw declared type of the property it was written to.
type InvalidInputArgumentError struct {
	Value    any    // The offending value
	Property string // The property name as handed to TrySet
	TypeName string // Fully qualified name of the target type
}

// Error implements the error interface
func (e InvalidInputArgumentError) Error() string {
	return fmt.Sprintf(
		"Invalid input argument `%v` for field `%s` on type `%s`",
		e.Value, e.Property, e.TypeName,
	)
}

// Unwrap allows errors.Is(err, ErrInvalidInputArgument).
func (e InvalidInputArgumentError) Unwrap() error {
	return ErrInvalidInputArgument
}

func errNoSuchProperty(name, typeName string) error {
	return fmt.Errorf(
		"%w: `%s` on type `%s`, have you checked with HasProperty()?",
		ErrNoSuchProperty, name, typeName,
	)
}
