// Package accessor provides runtime property introspection and type-checked
// writes onto Go values whose shape is not known to the caller at compile time.
//
// It is meant to sit underneath an input coercion layer: given loosely typed,
// already materialized input (parsed request arguments, decoded documents),
// the caller asks an Accessor whether a property exists, which type the
// incoming value should be coerced into, and finally commits the write.
//
// The full surface of an Accessor is:
//   - HasProperty(name): reports whether a setter or a field backs name.
//   - PropertyType(name): the effective type of the property. Single-argument
//     containers are unwrapped one level ([]Bar and List[Bar] yield Bar).
//   - RawPropertyType(name): the declared type without unwrapping, used to
//     tell container shapes apart (a slice versus a map-backed Set[T]).
//   - TrySet(target, name, value): validates that value is assignable to the
//     raw declared type and writes it through the setter or the field.
//
// Properties are located in the following order:
//   - A method on *T named "Set" + Capitalize(name) taking exactly one
//     parameter. Methods promoted from embedded types count, and Go's
//     shallowest-embedding-wins rule picks the most derived declaration.
//   - A struct field named exactly name, searched through embedded structs.
//     When AccessorOpts.FieldTag is set, a field whose tag name equals name
//     also matches.
//
// Unexported fields are only reachable when AccessorOpts.ForceAccess is set.
// Setters always take priority over fields for every operation.
//
// Accessors come in two flavors:
//   - Type-only, built with NewAccessor or AccessorFor. Used for queries and
//     for TrySet against any *T handed in by the caller.
//   - Instance-bound, built with ForInstance. Set writes onto the bound value.
//
// Located accessors and resolved types are memoized per concrete type, so
// building an Accessor per use is cheap. Read-only queries are safe for
// concurrent use; concurrent writes to the same target need external locking.
//
// Two error kinds are returned:
//   - ErrNoSuchProperty: PropertyType, RawPropertyType or TrySet was called
//     for a property that does not exist. This is caller misuse; check with
//     HasProperty first.
//   - InvalidInputArgumentError: the value handed to TrySet is not assignable
//     to the property. Nothing is written when this is returned.
package accessor
