package accessor

import (
	"reflect"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// accessorKind tags the mechanism a property is written through.
type accessorKind uint8

const (
	setterAccessor accessorKind = iota + 1 // single-parameter Set<Name> method
	fieldAccessor                          // directly addressed struct field
)

func (k accessorKind) String() string {
	switch k {
	case setterAccessor:
		return "setter"
	case fieldAccessor:
		return "field"
	default:
		return "unknown"
	}
}

// property is the located accessor for one (type, name) pair. Exactly one
// of method and field is meaningful, depending on kind.
type property struct {
	kind      accessorKind
	name      string              // property name as requested
	method    reflect.Method      // setter method of *T, receiver is In(0)
	embedding []int               // setter promoted through embedding: path to the declaring field
	field     reflect.StructField // field of T, Index is the full embedding path
	raw       reflect.Type        // declared parameter or field type
	effective reflect.Type        // raw with one level of generic wrapping stripped
}

// declaredIn returns a short description of where the accessor lives, for
// error messages.
func (p *property) declaredIn() string {
	if p.kind == setterAccessor {
		return p.method.Name
	}
	return p.field.Name
}

// locate finds the accessor backing name on t. Setters take priority over
// fields. The effective type is left for the caller to fill in.
func locate(t reflect.Type, name string, opts AccessorOpts) (*property, bool) {
	if name == "" {
		return nil, false
	}
	if p, ok := locateSetter(t, name); ok {
		return p, true
	}
	return locateField(t, name, opts)
}

// locateSetter looks for "Set" + Capitalize(name) on the method set of *T,
// which holds value and pointer receiver methods and every method promoted
// through embedding. Promotion already resolves to the shallowest
// declaration, and ambiguous promotions are absent from the method set.
func locateSetter(t reflect.Type, name string) (*property, bool) {
	method, ok := reflect.PointerTo(t).MethodByName(setterName(name))
	if !ok {
		return nil, false
	}

	// In(0) is the receiver.
	mt := method.Type
	if mt.NumIn() != 2 || mt.IsVariadic() {
		return nil, false
	}

	return &property{
		kind:      setterAccessor,
		name:      name,
		method:    method,
		embedding: promotionPath(t, method.Name, nil),
		raw:       mt.In(1),
	}, true
}

// promotionPath returns the index path of the embedded field a method of *T
// is promoted from, nil when the method is declared on T itself. At each
// level the embedded field reaching the method at the shallowest depth wins,
// the way the method set resolves promotion. seen guards against embedding
// cycles through pointers.
func promotionPath(t reflect.Type, method string, seen []reflect.Type) []int {
	if t.Kind() != reflect.Struct || slices.Contains(seen, t) {
		return nil
	}
	seen = append(seen, t)

	var best []int
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if _, ok := reflect.PointerTo(ft).MethodByName(method); !ok {
			continue
		}

		path := append([]int{i}, promotionPath(ft, method, seen)...)
		if best == nil || len(path) < len(best) {
			best = path
		}
	}
	return best
}

// locateField looks for a field named exactly name, then, when a field tag
// is configured, for a field whose tag name is name. Unexported fields need
// ForceAccess.
func locateField(t reflect.Type, name string, opts AccessorOpts) (*property, bool) {
	if t.Kind() != reflect.Struct {
		return nil, false
	}

	field, ok := t.FieldByName(name)
	if !ok || !fieldUsable(field, opts) {
		if opts.FieldTag == "" {
			return nil, false
		}
		if field, ok = fieldByTag(t, name, opts); !ok {
			return nil, false
		}
	}

	return &property{
		kind:  fieldAccessor,
		name:  name,
		field: field,
		raw:   field.Type,
	}, true
}

func fieldUsable(field reflect.StructField, opts AccessorOpts) bool {
	return opts.ForceAccess || field.IsExported()
}

// fieldByTag returns the shallowest visible field tagged with name under
// opts.FieldTag. Fields at equal depth are ambiguous and match nothing,
// the way FieldByName treats duplicate names.
func fieldByTag(t reflect.Type, name string, opts AccessorOpts) (reflect.StructField, bool) {
	var (
		best      reflect.StructField
		found     bool
		ambiguous bool
	)

	for _, field := range reflect.VisibleFields(t) {
		if !fieldUsable(field, opts) || tagName(field.Tag, opts.FieldTag) != name {
			continue
		}
		switch {
		case !found || len(field.Index) < len(best.Index):
			best, found, ambiguous = field, true, false
		case len(field.Index) == len(best.Index):
			ambiguous = true
		}
	}

	if !found || ambiguous {
		return reflect.StructField{}, false
	}
	return best, true
}

// tagName returns the name part of a struct tag, the text before the first
// comma. Ignored fields ("-") have no name.
func tagName(tag reflect.StructTag, key string) string {
	value, ok := tag.Lookup(key)
	if !ok || value == TagIgnoreValue {
		return ""
	}
	name, _, _ := strings.Cut(value, TagNameDelimiter)
	return name
}

// setterName builds the setter method name for a property. Only the first
// rune is upper-cased; the rest of name is kept as-is.
func setterName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return SetterPrefix + string(unicode.ToUpper(r)) + name[size:]
}
