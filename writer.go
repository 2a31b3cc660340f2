package accessor

import (
	"fmt"
	"reflect"
	"unsafe"
)

// TrySet writes value onto the property name of target, which must be a
// non-nil pointer to the Accessor's type.
//
// A non-nil value must be assignable to the raw declared type of the
// property (not its effective type): a []Bar property takes a []Bar, not a
// Bar. Otherwise an InvalidInputArgumentError is returned and target is left
// untouched. A nil value writes the zero value of the raw type.
//
// Setters take priority over fields. A setter whose last result is a non-nil
// error fails the write with ErrSetterFailed.
//
// TrySet fails fast with ErrNoSuchProperty when name has no accessor, for
// type-only and instance-bound accessors alike.
func (a *Accessor) TrySet(target any, name string, value any) error {
	ptr := reflect.ValueOf(target)
	if !ptr.IsValid() || ptr.Kind() != reflect.Pointer || ptr.IsNil() || ptr.Type().Elem() != a.info.typ {
		return fmt.Errorf(
			"%w: expected a non-nil *%s, got %T",
			ErrInvalidTarget, a.info.name, target,
		)
	}
	return a.trySet(ptr, name, value)
}

// trySet is TrySet with an already validated *T.
func (a *Accessor) trySet(ptr reflect.Value, name string, value any) error {
	p, err := a.property(name)
	if err != nil {
		return err
	}

	arg, ok := assignableValue(p.raw, value)
	if !ok {
		return InvalidInputArgumentError{
			Value:    value,
			Property: name,
			TypeName: a.info.name,
		}
	}

	switch p.kind {
	case setterAccessor:
		return a.callSetter(ptr, p, arg)
	case fieldAccessor:
		return a.writeField(ptr, p, arg)
	default:
		return errNoSuchProperty(name, a.info.name)
	}
}

// assignableValue converts value into something reflect can hand to a
// setter or store into a field of type raw.
func assignableValue(raw reflect.Type, value any) (reflect.Value, bool) {
	if value == nil {
		return reflect.Zero(raw), true
	}
	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(raw) {
		return reflect.Value{}, false
	}
	return v, true
}

func (a *Accessor) callSetter(ptr reflect.Value, p *property, arg reflect.Value) error {
	if len(p.embedding) > 0 {
		// Promoted methods dereference every embedded pointer on the way.
		receiver, err := embeddedValue(ptr.Elem(), p.embedding, a.info.opts.ForceAccess)
		if err == nil {
			_, err = allocated(receiver)
		}
		if err != nil {
			return fmt.Errorf("%w: `%s` on type `%s`", err, p.declaredIn(), a.info.name)
		}
	}

	out := p.method.Func.Call([]reflect.Value{ptr, arg})

	if n := len(out); n > 0 && out[n-1].Type() == ErrorType && !out[n-1].IsNil() {
		return fmt.Errorf(
			"%w: %s on type `%s`: %w",
			ErrSetterFailed, p.method.Name, a.info.name, out[n-1].Interface().(error),
		)
	}
	return nil
}

func (a *Accessor) writeField(ptr reflect.Value, p *property, arg reflect.Value) error {
	field, err := settableField(ptr.Elem(), p.field.Index, a.info.opts.ForceAccess)
	if err != nil {
		return fmt.Errorf("%w: `%s` on type `%s`", err, p.declaredIn(), a.info.name)
	}
	field.Set(arg)
	return nil
}

// settableField walks the embedding path index from v, allocating nil
// embedded pointers on the way, and returns the settable field at its end.
func settableField(v reflect.Value, index []int, force bool) (reflect.Value, error) {
	v, err := embeddedValue(v, index, force)
	if err != nil {
		return reflect.Value{}, err
	}
	if !v.CanSet() {
		return reflect.Value{}, ErrFieldNotSettable
	}
	return v, nil
}

// embeddedValue walks index from v, allocating nil embedded pointers between
// the steps. With force, read-only values (unexported fields) are re-addressed
// through unsafe.Pointer, which is sound because v is always addressable here.
func embeddedValue(v reflect.Value, index []int, force bool) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 {
			var err error
			if v, err = allocated(v); err != nil {
				return reflect.Value{}, err
			}
		}

		v = v.Field(x)
		if !v.CanSet() && force && v.CanAddr() {
			v = reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
		}
	}
	return v, nil
}

// allocated dereferences a pointer v, allocating it first when nil. Other
// values are returned as they are.
func allocated(v reflect.Value) (reflect.Value, error) {
	if v.Kind() != reflect.Pointer {
		return v, nil
	}
	if v.IsNil() {
		if !v.CanSet() {
			return reflect.Value{}, ErrFieldNotSettable
		}
		v.Set(reflect.New(v.Type().Elem()))
	}
	return v.Elem(), nil
}
