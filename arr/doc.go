// Package arr provides the raw ordered-mapping primitive ([Map]) and
// standalone, stateless helper functions used by the collections package,
// together with dotted-path resolution over nested containers.
//
// # Ordered mapping
//
// [Map] preserves insertion order and accepts int or string keys:
//
//	m := arr.NewMap()
//	m.Set("name", "Alice")
//	m.Append("first entry")       // stored under key 0
//	m.Keys()                      // → ["name", 0]
//
// # Helpers
//
// All helpers are pure: they never keep hidden state, and the ones that
// take a *Map do not mutate it unless documented (only [Pull] does).
//
//	arr.Pluck(users, "address.city", "id")
//	arr.Flatten([]any{1, []any{2, []any{3}}}, -1)  // → [1 2 3]
//	arr.CrossJoin([]any{1, 2}, []any{"a", "b"})    // → [[1 a] [1 b] [2 a] [2 b]]
//
// # Path resolution
//
// [Get] walks dot-separated segments through maps, slices, structs, [Map]
// values and anything implementing [Resolvable]. A "*" segment fans out
// across every element of the current level:
//
//	arr.Get(order, "lines.*.sku")      // → ["A1", "B7"]
//	arr.Get(order, "customer.name")    // → "Alice"
//	arr.Get(order, "missing.key", 0)  // → 0, never an error
//
// Traversal is read-only; a missing segment yields the supplied default.
package arr
