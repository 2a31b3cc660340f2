package accessor

import (
	"fmt"
	"reflect"
)

///////////////////////////////////////////////////////////////////////////////
// Options
///////////////////////////////////////////////////////////////////////////////

// AccessorOpts configures how properties are located. The zero value
// locates exported setters and exported fields by exact name only.
type AccessorOpts struct {
	// ForceAccess makes unexported fields accessors, reading and writing them
	// through unsafe.Pointer. Setters are unaffected, reflection only exposes
	// exported methods.
	ForceAccess bool
	// FieldTag names a struct tag (e.g. "graphql" or "json") whose name part
	// is matched against the property name after the exact field name lookup
	// failed.
	FieldTag string
}

///////////////////////////////////////////////////////////////////////////////
// Per-type metadata
///////////////////////////////////////////////////////////////////////////////

type typeKey struct {
	typ  reflect.Type
	opts AccessorOpts
}

// typeInfo is the memoized metadata for one concrete type under one set of
// options. It is shared by every Accessor built for that pair.
type typeInfo struct {
	typ   reflect.Type
	name  string // fully qualified, for error messages
	opts  AccessorOpts
	props *typeCache[string, *property] // located accessors only, misses are not cached
}

var typeInfos = newTypeCache[typeKey, *typeInfo]()

func infoFor(typ reflect.Type, opts AccessorOpts) *typeInfo {
	return typeInfos.GetOrCreate(typeKey{typ: typ, opts: opts}, func() *typeInfo {
		return &typeInfo{
			typ:   typ,
			name:  qualifiedName(typ),
			opts:  opts,
			props: newTypeCache[string, *property](),
		}
	})
}

// lookup returns the accessor for name, locating it on the first call.
func (ti *typeInfo) lookup(name string) (*property, bool) {
	if p, ok := ti.props.Get(name); ok {
		return p, true
	}

	p, ok := locate(ti.typ, name, ti.opts)
	if !ok {
		return nil, false
	}

	return ti.props.GetOrCreate(name, func() *property {
		p.effective = effectiveType(p.raw)
		return p
	}), true
}

///////////////////////////////////////////////////////////////////////////////
// Accessor
///////////////////////////////////////////////////////////////////////////////

// Accessor is a descriptor over one concrete type, optionally bound to a
// live instance of it. It holds no resources and is meant to be built per
// use; the expensive parts are shared through a per-type cache.
type Accessor struct {
	info   *typeInfo
	target reflect.Value // *T when bound, invalid for type-only accessors
}

// NewAccessor builds a type-only Accessor for typ. Pointer types are
// dereferenced once, so *T and T describe the same properties. nil and
// interface types are rejected with ErrInvalidTarget.
func NewAccessor(typ reflect.Type, opts AccessorOpts) (*Accessor, error) {
	if typ == nil {
		return nil, fmt.Errorf("%w: nil type", ErrInvalidTarget)
	}
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() == reflect.Interface || typ.Kind() == reflect.Pointer {
		return nil, fmt.Errorf("%w: cannot describe properties of %s", ErrInvalidTarget, typ)
	}
	return &Accessor{info: infoFor(typ, opts)}, nil
}

// AccessorFor builds a type-only Accessor for the type parameter T.
func AccessorFor[T any](opts AccessorOpts) (*Accessor, error) {
	return NewAccessor(reflect.TypeFor[T](), opts)
}

// ForInstance builds an Accessor bound to target, which must be a non-nil
// pointer. Set writes onto the pointed-to value in place.
func ForInstance(target any, opts AccessorOpts) (*Accessor, error) {
	value := reflect.ValueOf(target)
	if !value.IsValid() || value.Kind() != reflect.Pointer || value.IsNil() {
		return nil, fmt.Errorf("%w: expected a non-nil pointer, got %T", ErrInvalidTarget, target)
	}

	acc, err := NewAccessor(value.Type().Elem(), opts)
	if err != nil {
		return nil, err
	}
	acc.target = value
	return acc, nil
}

// Type returns the concrete type the Accessor describes.
func (a *Accessor) Type() reflect.Type {
	return a.info.typ
}

// HasProperty reports whether a setter or a field backs name.
func (a *Accessor) HasProperty(name string) bool {
	_, ok := a.info.lookup(name)
	return ok
}

// PropertyType returns the effective type of name: the element type of
// single-argument containers, the declared type otherwise. Nested containers
// are unwrapped one level only, [][]X yields []X.
//
// It returns an error wrapping ErrNoSuchProperty when HasProperty(name) is
// false.
func (a *Accessor) PropertyType(name string) (reflect.Type, error) {
	p, err := a.property(name)
	if err != nil {
		return nil, err
	}
	return p.effective, nil
}

// RawPropertyType returns the declared type of name without unwrapping,
// e.g. []Bar or Set[Item] rather than their element types.
//
// It returns an error wrapping ErrNoSuchProperty when HasProperty(name) is
// false.
func (a *Accessor) RawPropertyType(name string) (reflect.Type, error) {
	p, err := a.property(name)
	if err != nil {
		return nil, err
	}
	return p.raw, nil
}

// Set writes value onto the bound instance, see TrySet.
func (a *Accessor) Set(name string, value any) error {
	if !a.target.IsValid() {
		return fmt.Errorf("%w: cannot set `%s` on type `%s`", ErrNotBound, name, a.info.name)
	}
	return a.trySet(a.target, name, value)
}

func (a *Accessor) property(name string) (*property, error) {
	p, ok := a.info.lookup(name)
	if !ok {
		return nil, errNoSuchProperty(name, a.info.name)
	}
	return p, nil
}
