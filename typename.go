package accessor

import (
	"reflect"
	"strconv"
	"strings"
)

// qualifiedName spells t the way the Go runtime spells type arguments inside
// instantiated generic type names: named types are prefixed with their full
// package path, composite types are built from their components.
//
// Examples:
//   - "string" for a predeclared type
//   - "github.com/acme/input.Bar" for a named type
//   - "[]*github.com/acme/input.Bar" for a slice of pointers
//   - "github.com/acme/input.List[github.com/acme/input.Bar]" for an instantiation
func qualifiedName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if name := t.Name(); name != "" {
		if pkg := t.PkgPath(); pkg != "" {
			return pkg + TypeNameSeparator + name
		}
		return name
	}

	switch t.Kind() {
	case reflect.Pointer:
		return "*" + qualifiedName(t.Elem())
	case reflect.Slice:
		return "[]" + qualifiedName(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + qualifiedName(t.Elem())
	case reflect.Map:
		return "map[" + qualifiedName(t.Key()) + "]" + qualifiedName(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + qualifiedName(t.Elem())
		case reflect.SendDir:
			return "chan<- " + qualifiedName(t.Elem())
		default:
			return "chan " + qualifiedName(t.Elem())
		}
	case reflect.Struct:
		return structName(t)
	default:
		// Unnamed interfaces and funcs are rare as type arguments, reflect's
		// own spelling is close enough for them.
		return t.String()
	}
}

// structName spells an unnamed struct with qualified field types, e.g.
// "struct { B github.com/acme/input.Bar "json:\"b\"" }".
func structName(t reflect.Type) string {
	if t.NumField() == 0 {
		return "struct {}"
	}

	fields := make([]string, t.NumField())
	for i := range fields {
		f := t.Field(i)
		spelled := qualifiedName(f.Type)
		if !f.Anonymous {
			spelled = f.Name + " " + spelled
		}
		if f.Tag != "" {
			spelled += " " + strconv.Quote(string(f.Tag))
		}
		fields[i] = spelled
	}
	return "struct { " + strings.Join(fields, "; ") + " }"
}

// escapedName is qualifiedName for named types with the last element of
// the package path escaped the way the linker does, "" when nothing needs
// escaping.
func escapedName(t reflect.Type) string {
	pkg := t.PkgPath()
	if t.Name() == "" || pkg == "" {
		return ""
	}
	slash := strings.LastIndexByte(pkg, '/')
	last := pkg[slash+1:]
	if !strings.Contains(last, ".") {
		return ""
	}
	return pkg[:slash+1] + strings.ReplaceAll(last, ".", "%2e") + TypeNameSeparator + t.Name()
}

// splitTypeArgs splits an instantiated generic type name into its origin and
// its top-level type arguments. ok is false for names without a type
// argument list.
//
//	splitTypeArgs("Pair[string,map[string]int]")
//	    -> "Pair", ["string", "map[string]int"], true
func splitTypeArgs(name string) (origin string, args []string, ok bool) {
	open := strings.IndexByte(name, '[')
	if open <= 0 || !strings.HasSuffix(name, "]") {
		return name, nil, false
	}

	origin = name[:open]
	inner := name[open+1 : len(name)-1]

	depth := 0
	start := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(inner[start:]))

	for _, arg := range args {
		if arg == "" {
			return name, nil, false
		}
	}
	return origin, args, true
}
