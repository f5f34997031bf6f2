// Package collections provides an insertion-ordered key/value Collection
// with a fluent, chainable transformation API.
//
// # Overview
//
// The central type is [Collection], an ordered mapping from int or string
// keys to values of any type:
//
//	result := collections.Of(1, 2, 3, 4, 5, 6).
//	    Filter(func(v, _ any) bool { return v.(int)%2 == 0 }).
//	    SortByDesc(nil).
//	    Take(2).
//	    Implode(", ") // → "6, 4"
//
// # Mutating vs. derived operations
//
// A documented subset of operations mutates the receiver (Set, Remove,
// Clear, Push, Pop, Shift, Prepend, Forget, Pull, Splice, Transform,
// Each, Tap). Everything else returns a freshly allocated Collection that
// shares item references with its source: the container is new, the items
// are not copied.
//
// # Key specs and dotted paths
//
// Key-parameterized operations (SortBy, GroupBy, KeyBy, Unique, Where, …)
// accept either a callable or a dotted path string resolved against each
// item, wildcard segments included:
//
//	users.SortBy("address.city")
//	orders.Pluck("lines.*.sku")
//	people.GroupBy([]string{"dept", "role"})
//
// # Higher-order proxies
//
// A proxy defers an operation so it is applied through each item's own
// behavior, naming a method or readable field instead of passing a
// closure:
//
//	p, _ := users.Proxy("map")
//	names, _ := p.Call("DisplayName")
//
// # Macros (runtime extension)
//
// Named operations can be registered on a [MacroRegistry] and dispatched
// by name via [Collection.Call]; registries chain to ancestors the way a
// derived type falls back to its base:
//
//	collections.RegisterMacro("evens", func(c *collections.Collection, _ ...any) (any, error) {
//	    return c.Filter(func(v, _ any) bool { return v.(int)%2 == 0 }), nil
//	})
//	evens, _ := collections.Of(1, 2, 3, 4).Call("evens")
//
// # Serialization
//
// String and ToJSON render the collection as a JSON array when it is
// list-shaped (keys 0 … n-1) and as an ordered JSON object otherwise;
// ToYAML does the same for YAML. The [EscapeUnicode] option switches the
// JSON form to \uXXXX escapes for non-ASCII text.
//
// The package is fully synchronous and performs no I/O. Collections are
// not safe for concurrent mutation; derived collections never share
// backing storage with their source beyond the item references
// themselves.
package collections
