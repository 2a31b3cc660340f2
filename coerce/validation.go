package coerce

import (
	"fmt"
	"reflect"
)

// Validatable is implemented by inputs that check their own invariants
// once every argument has been bound onto them.
type Validatable interface {
	// Validate checks the fields of the struct and returns an error
	// if any of the fields are invalid.
	//
	// # It is called on the pointer handed to Bind
	//
	// # It is called after the struct has been populated
	//
	Validate() error
}

// ValidationError is returned by Bind when the populated destination
// rejected itself through Validate.
type ValidationError struct {
	Type reflect.Type
	Err  error
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return fmt.Sprintf("Failed to validate %s: %s", ve.Type, ve.Err)
}

func (ve *ValidationError) Unwrap() error {
	return ve.Err
}

// validate runs dest.Validate when dest implements Validatable. A rejected
// dest is reset to its zero value so that no half-valid input escapes.
func validate(dest any) error {
	v, ok := dest.(Validatable)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		invalidate(dest)
		return &ValidationError{Type: reflect.TypeOf(dest).Elem(), Err: err}
	}
	return nil
}

// invalidate clears a populated dest by setting it to its zero value.
// dest is a non-nil pointer, Bind checked it.
func invalidate(dest any) {
	reflect.ValueOf(dest).Elem().SetZero()
}
