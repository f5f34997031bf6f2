package collections

import (
	"iter"
	"reflect"
	"sort"

	"github.com/spf13/cast"

	"github.com/AEngine/entity/arr"
)

// Collection is an insertion-ordered key/value container with a fluent,
// chainable transformation API. Keys are non-negative integers or strings;
// values may be anything, including nested Collections and model records.
//
// # Creating a collection
//
//	c := collections.Of(1, 2, 3, 4, 5)
//	c := collections.New([]any{"a", "b", "c"})
//	c := collections.New(map[string]any{"name": "Alice"})
//
// # Method chaining
//
//	result := collections.Of(1, 2, 3, 4, 5, 6).
//	    Filter(func(v, _ any) bool { return v.(int)%2 == 0 }).
//	    SortByDesc(nil).
//	    Take(2)
//
// A documented subset of operations (Set, Remove, Clear, Push, Pop, Shift,
// Prepend, Forget, Pull, Splice, Transform, Each, Tap) mutates the
// receiver. Every other operation returns a freshly allocated Collection
// that shares item references with its source; no deep copy is made.
type Collection struct {
	items  *arr.Map
	macros *MacroRegistry // nil means the package default registry
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

// New creates a Collection from any key/value source: a slice or array, a
// map, an *arr.Map, another Collection (or anything arr.Mappable), or a
// single scalar, which is wrapped as the sole element. nil yields an empty
// collection.
func New(src any) *Collection {
	return &Collection{items: materialize(src)}
}

// Of creates a list-shaped Collection from a variadic list of values.
func Of(values ...any) *Collection {
	return &Collection{items: arr.FromValues(values)}
}

// Empty creates an empty Collection.
func Empty() *Collection {
	return &Collection{items: arr.NewMap()}
}

// Wrap boxes a value into a Collection unless it already is one: nil
// yields an empty collection, a *Collection passes through, anything else
// becomes the sole element.
func Wrap(value any) *Collection {
	switch v := value.(type) {
	case nil:
		return Empty()
	case *Collection:
		return v
	default:
		return &Collection{items: arr.FromValues(arr.Wrap(value))}
	}
}

// Times creates a Collection by invoking fn with each index from 0 to n-1.
func Times(n int, fn func(i int) any) *Collection {
	out := arr.NewMap()
	for i := 0; i < n; i++ {
		out.Append(fn(i))
	}
	return &Collection{items: out}
}

// materialize converts an arbitrary source into a fresh ordered map.
// Unordered Go maps are keyed deterministically: integer keys first in
// numeric order, then string keys in lexical order.
func materialize(src any) *arr.Map {
	switch s := src.(type) {
	case nil:
		return arr.NewMap()
	case *Collection:
		return s.items.Clone()
	case *arr.Map:
		return s.Clone()
	case arr.Mappable:
		return s.All()
	case []any:
		return arr.FromValues(s)
	case map[string]any:
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := arr.NewMap()
		for _, k := range keys {
			out.Set(k, s[k])
		}
		return out
	case map[any]any:
		return materializeAnyMap(s)
	}

	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := arr.NewMap()
		for i := 0; i < rv.Len(); i++ {
			out.Append(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		converted := make(map[any]any, rv.Len())
		mi := rv.MapRange()
		for mi.Next() {
			converted[mi.Key().Interface()] = mi.Value().Interface()
		}
		return materializeAnyMap(converted)
	}

	out := arr.NewMap()
	out.Append(src)
	return out
}

func materializeAnyMap(s map[any]any) *arr.Map {
	ints := make([]int, 0, len(s))
	strs := make([]string, 0, len(s))
	byKey := make(map[any]any, len(s))
	for k, v := range s {
		nk := arr.NormalizeKey(k)
		byKey[nk] = v
		if i, ok := nk.(int); ok {
			ints = append(ints, i)
		} else {
			strs = append(strs, nk.(string))
		}
	}
	sort.Ints(ints)
	sort.Strings(strs)
	out := arr.NewMap()
	for _, i := range ints {
		out.Set(i, byKey[i])
	}
	for _, k := range strs {
		out.Set(k, byKey[k])
	}
	return out
}

// derive wraps a backing map in a new Collection that inherits the
// receiver's macro registry.
func (c *Collection) derive(m *arr.Map) *Collection {
	return &Collection{items: m, macros: c.macros}
}

// ─────────────────────────────────────────────────────────────────────────────
// Accessors
// ─────────────────────────────────────────────────────────────────────────────

// All materializes the collection into a raw ordered mapping. The returned
// map is a fresh container sharing item references.
func (c *Collection) All() *arr.Map { return c.items.Clone() }

// ToArray materializes the collection recursively: nested Collections and
// anything exposing ToArray() *arr.Map are converted too.
func (c *Collection) ToArray() *arr.Map {
	out := arr.NewMap()
	c.items.Each(func(k, v any) bool {
		out.Set(k, rawValue(v))
		return true
	})
	return out
}

func rawValue(v any) any {
	switch val := v.(type) {
	case *Collection:
		return val.ToArray()
	case interface{ ToArray() *arr.Map }:
		return val.ToArray()
	default:
		return v
	}
}

// Count returns the number of entries.
func (c *Collection) Count() int { return c.items.Len() }

// IsEmpty reports whether the collection contains no entries.
func (c *Collection) IsEmpty() bool { return c.items.Len() == 0 }

// IsNotEmpty reports whether the collection has at least one entry.
func (c *Collection) IsNotEmpty() bool { return c.items.Len() > 0 }

// Get returns the value stored under key, or def[0] (nil when absent)
// when the key does not exist.
func (c *Collection) Get(key any, def ...any) any {
	if v, ok := c.items.Get(key); ok {
		return v
	}
	if len(def) > 0 {
		return def[0]
	}
	return nil
}

// Has reports whether every given key is present.
func (c *Collection) Has(keys ...any) bool {
	for _, k := range keys {
		if !c.items.Has(k) {
			return false
		}
	}
	return len(keys) > 0
}

// Keys returns a new list-shaped Collection of the keys.
func (c *Collection) Keys() *Collection {
	return c.derive(arr.FromValues(c.items.Keys()))
}

// Values returns a new Collection of the values reindexed from zero.
func (c *Collection) Values() *Collection {
	return c.derive(arr.FromValues(c.items.Values()))
}

// Entries returns a restartable iterator over key/value pairs in
// insertion order.
func (c *Collection) Entries() iter.Seq2[any, any] { return c.items.Entries() }

// Resolve implements arr.Resolvable so collections participate in dotted
// path resolution.
func (c *Collection) Resolve(segment string) (any, bool) {
	if v, ok := c.items.Get(segment); ok {
		return v, true
	}
	if n, err := cast.ToIntE(segment); err == nil {
		return c.items.Get(n)
	}
	return nil, false
}

// ─────────────────────────────────────────────────────────────────────────────
// Mutators — these operate on the receiver in place
// ─────────────────────────────────────────────────────────────────────────────

// Set stores value under key, appending when the key is new, and returns
// the receiver. A nil key assigns the next unused non-negative integer
// index.
func (c *Collection) Set(key, value any) *Collection {
	if key == nil {
		c.items.Append(value)
		return c
	}
	c.items.Set(key, value)
	return c
}

// Put is an alias for [Collection.Set].
func (c *Collection) Put(key, value any) *Collection { return c.Set(key, value) }

// Push appends values under fresh integer keys and returns the receiver.
func (c *Collection) Push(values ...any) *Collection {
	for _, v := range values {
		c.items.Append(v)
	}
	return c
}

// Remove deletes the given keys and returns the receiver.
func (c *Collection) Remove(keys ...any) *Collection {
	for _, k := range keys {
		c.items.Forget(k)
	}
	return c
}

// Forget is an alias for [Collection.Remove].
func (c *Collection) Forget(keys ...any) *Collection { return c.Remove(keys...) }

// Clear removes every entry and returns the receiver.
func (c *Collection) Clear() *Collection {
	c.items.Clear()
	return c
}

// Pop removes and returns the last value, or nil when empty.
func (c *Collection) Pop() any {
	n := c.items.Len()
	if n == 0 {
		return nil
	}
	k, v := c.items.At(n - 1)
	c.items.Forget(k)
	return v
}

// Shift removes and returns the first value, or nil when empty. The
// remaining integer keys are reindexed sequentially; string keys survive.
func (c *Collection) Shift() any {
	if c.items.Len() == 0 {
		return nil
	}
	k, v := c.items.At(0)
	c.items.Forget(k)
	out := arr.NewMap()
	c.items.Each(func(k, v any) bool {
		if _, isInt := k.(int); isInt {
			out.Append(v)
		} else {
			out.Set(k, v)
		}
		return true
	})
	c.items = out
	return v
}

// Prepend inserts value at position 0 and returns the receiver. Without an
// explicit key, integer keys are reindexed sequentially.
func (c *Collection) Prepend(value any, key ...any) *Collection {
	c.items = arr.Prepend(c.items, value, key...)
	return c
}

// Pull removes key and returns its value, or def[0] (nil) when absent.
func (c *Collection) Pull(key any, def ...any) any {
	var fallback any
	if len(def) > 0 {
		fallback = def[0]
	}
	return arr.Pull(c.items, key, fallback)
}

// Splice removes a slice of entries starting at the given position,
// mutating the receiver, and returns the removed portion as a new
// Collection. args may carry a length (int) and a replacement sequence
// spliced in at the cut; integer keys are reindexed, string keys survive.
func (c *Collection) Splice(offset int, args ...any) *Collection {
	total := c.items.Len()
	if offset < 0 {
		offset = total + offset
	}
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	length := total - offset
	if len(args) > 0 {
		if l, ok := args[0].(int); ok {
			length = l
		}
	}
	if length < 0 {
		length = 0
	}
	end := offset + length
	if end > total {
		end = total
	}
	var replacement []any
	if len(args) > 1 {
		replacement = materialize(args[1]).Values()
	}

	removed := arr.NewMap()
	remaining := arr.NewMap()
	for i := 0; i < total; i++ {
		k, v := c.items.At(i)
		if i == offset {
			for _, r := range replacement {
				remaining.Append(r)
			}
		}
		target := remaining
		if i >= offset && i < end {
			target = removed
		}
		if _, isInt := k.(int); isInt {
			target.Append(v)
		} else {
			target.Set(k, v)
		}
	}
	if offset == total {
		for _, r := range replacement {
			remaining.Append(r)
		}
	}
	c.items = remaining
	return c.derive(removed)
}

// Replace swaps the backing store for the materialized form of src and
// returns the receiver.
func (c *Collection) Replace(src any) *Collection {
	c.items = materialize(src)
	return c
}

// Transform rewrites every value in place via fn(value, key) and returns
// the receiver. It is the mutating counterpart of [Collection.Map].
func (c *Collection) Transform(fn func(value, key any) any) *Collection {
	c.items.Each(func(k, v any) bool {
		c.items.Set(k, fn(v, k))
		return true
	})
	return c
}

// Each calls fn(value, key) for every entry in order, stopping early when
// fn returns false, and returns the receiver.
func (c *Collection) Each(fn func(value, key any) bool) *Collection {
	c.items.Each(func(k, v any) bool { return fn(v, k) })
	return c
}

// Tap calls fn(c) for side effects and returns the receiver unchanged.
func (c *Collection) Tap(fn func(*Collection)) *Collection {
	fn(c)
	return c
}
