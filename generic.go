package accessor

import (
	"reflect"
	"strings"
	"unicode"
)

///////////////////////////////////////////////////////////////////////////////
// Binding Map
///////////////////////////////////////////////////////////////////////////////

// bindingMap indexes every type reachable from a concrete target type by
// the spellings the runtime uses for type arguments. It is how the argument
// names inside an instantiated type name, e.g. "Set[github.com/acme/input.Item]",
// are substituted by the reflect.Type they denote.
//
// Go reifies instantiations: a field declared as T on Base[T] and promoted
// through SortBy{ Base[FieldEnum] } already reflects as FieldEnum. What stays
// symbolic at runtime are the argument names of the instantiations
// themselves, which the map resolves.
type bindingMap struct {
	types map[string]reflect.Type // qualified and short spellings -> type
}

// newBindingMap walks root bottom-up: root itself first, then its fields
// and embedded ancestors, their element and key types, and the signatures
// of their method sets.
func newBindingMap(root reflect.Type) *bindingMap {
	bm := &bindingMap{
		types: make(map[string]reflect.Type, 64),
	}
	for _, t := range predeclaredTypes {
		bm.add(t)
	}
	bm.walk(root)
	return bm
}

func (bm *bindingMap) add(t reflect.Type) bool {
	key := qualifiedName(t)
	if _, seen := bm.types[key]; seen {
		return false
	}
	bm.types[key] = t

	// Fallback spellings: package names instead of paths, and linker-escaped
	// paths whose last element contains a dot (gopkg.in/yaml.v3).
	for _, alias := range []string{t.String(), escapedName(t)} {
		if alias == "" || alias == key {
			continue
		}
		if _, taken := bm.types[alias]; !taken {
			bm.types[alias] = t
		}
	}
	return true
}

func (bm *bindingMap) walk(root reflect.Type) {
	stack := []reflect.Type{root}

	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if t == nil || !bm.add(t) {
			continue
		}

		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
			stack = append(stack, t.Elem())
		case reflect.Map:
			stack = append(stack, t.Key(), t.Elem())
		case reflect.Struct:
			for i := 0; i < t.NumField(); i++ {
				stack = append(stack, t.Field(i).Type)
			}
		case reflect.Func:
			for i := 0; i < t.NumIn(); i++ {
				stack = append(stack, t.In(i))
			}
			for i := 0; i < t.NumOut(); i++ {
				stack = append(stack, t.Out(i))
			}
		}

		switch {
		case t.Kind() == reflect.Interface:
			for i := 0; i < t.NumMethod(); i++ {
				stack = append(stack, t.Method(i).Type)
			}
		case t.Name() != "":
			// The pointer method set is a superset of the value method set.
			pt := reflect.PointerTo(t)
			for i := 0; i < pt.NumMethod(); i++ {
				stack = append(stack, pt.Method(i).Type)
			}
		}
	}
}

// lookup substitutes a type argument name by its reflect.Type. Types
// declared inside functions are spelled "pkg.Local·1" by the runtime, the
// numbered suffix is tried without as a fallback.
func (bm *bindingMap) lookup(name string) (reflect.Type, bool) {
	if t, ok := bm.types[name]; ok {
		return t, true
	}
	if bare := stripLocalSuffixes(name); bare != name {
		t, ok := bm.types[bare]
		return t, ok
	}
	return nil, false
}

// stripLocalSuffixes removes every "·N" suffix the runtime appends to the
// names of function-local types.
func stripLocalSuffixes(name string) string {
	if !strings.Contains(name, localTypeMarker) {
		return name
	}

	var b strings.Builder
	b.Grow(len(name))
	for {
		i := strings.Index(name, localTypeMarker)
		if i < 0 {
			b.WriteString(name)
			return b.String()
		}
		b.WriteString(name[:i])
		name = name[i+len(localTypeMarker):]
		name = strings.TrimLeftFunc(name, unicode.IsDigit)
	}
}

// bindingMaps holds one binding map per instantiated type, shared by every
// accessor declaring a property of that type.
var bindingMaps = newTypeCache[reflect.Type, *bindingMap]()

func bindingsFor(t reflect.Type) *bindingMap {
	return bindingMaps.GetOrCreate(t, func() *bindingMap {
		return newBindingMap(t)
	})
}

///////////////////////////////////////////////////////////////////////////////
// Effective Type Resolution
///////////////////////////////////////////////////////////////////////////////

// effectiveType strips at most one level of single-argument generic
// wrapping from declared:
//   - slices, arrays and channels yield their element type, named or not
//   - named sets (map[K]struct{}) with one type argument yield their key type
//   - other instantiated named generics with exactly one type argument yield
//     that argument, e.g. Box[Bar]
//   - everything else, including unnamed maps and multi-argument generics,
//     is returned as declared
//
// Arguments of the last group are resolved against the types reachable from
// declared alone, so a property type resolves the same in every target.
func effectiveType(declared reflect.Type) reflect.Type {
	named := declared.Name() != ""
	var args []string
	if named {
		var ok bool
		if _, args, ok = splitTypeArgs(declared.Name()); !ok || len(args) != 1 {
			return declared
		}
	}

	switch declared.Kind() {
	case reflect.Slice, reflect.Array, reflect.Chan:
		return declared.Elem()
	case reflect.Map:
		if named && isSetType(declared) {
			return declared.Key()
		}
	}
	if !named {
		return declared
	}

	// A phantom parameter is not reachable from the type graph and
	// resolves to nothing; fall back to the declared type.
	if arg, found := bindingsFor(declared).lookup(args[0]); found {
		return arg
	}
	return declared
}

// isSetType reports whether t is a map with empty struct values.
func isSetType(t reflect.Type) bool {
	elem := t.Elem()
	return elem.Kind() == reflect.Struct && elem.NumField() == 0
}
