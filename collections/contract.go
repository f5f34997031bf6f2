package collections

import (
	"iter"

	"github.com/AEngine/entity/arr"
)

// Enumerable is the capability set a Collection exposes to consumers that
// do not need the full transformation API: keyed access, bulk replace,
// materialization, counting, forward iteration and a JSON string form.
//
// Accept Enumerable in your own functions so callers can substitute
// alternative implementations without depending on the concrete
// *Collection type.
type Enumerable interface {
	// Get returns the value under key, or def[0] (nil) when absent.
	Get(key any, def ...any) any

	// Set stores value under key; a nil key appends.
	Set(key, value any) *Collection

	// Has reports whether every given key is present.
	Has(keys ...any) bool

	// Remove deletes the given keys.
	Remove(keys ...any) *Collection

	// Replace swaps the backing store for the materialized form of src.
	Replace(src any) *Collection

	// All materializes the collection into a raw ordered mapping.
	All() *arr.Map

	// Count returns the number of entries.
	Count() int

	// Entries iterates key/value pairs in insertion order.
	Entries() iter.Seq2[any, any]

	// String returns the JSON rendering.
	String() string
}

var _ Enumerable = (*Collection)(nil)
