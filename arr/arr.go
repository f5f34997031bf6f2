package arr

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrSampleTooLarge is returned by Random when more elements are requested
// than the input holds.
var ErrSampleTooLarge = errors.New("arr: requested sample size exceeds item count")

// ─────────────────────────────────────────────────────────────────────────────
// Searching
// ─────────────────────────────────────────────────────────────────────────────

// First returns the first value for which fn(value, key) is true, walking
// entries in insertion order. A nil fn matches the first entry. Returns
// def when nothing matches.
func First(m *Map, fn func(value, key any) bool, def any) any {
	result := def
	m.Each(func(k, v any) bool {
		if fn == nil || fn(v, k) {
			result = v
			return false
		}
		return true
	})
	return result
}

// Last returns the last value for which fn(value, key) is true, or def.
// A nil fn matches the last entry.
func Last(m *Map, fn func(value, key any) bool, def any) any {
	result := def
	m.Each(func(k, v any) bool {
		if fn == nil || fn(v, k) {
			result = v
		}
		return true
	})
	return result
}

// Exists reports whether key is present in m.
func Exists(m *Map, key any) bool { return m.Has(key) }

// ─────────────────────────────────────────────────────────────────────────────
// Restructuring
// ─────────────────────────────────────────────────────────────────────────────

// Pluck resolves the value path against every item (wildcard-aware) and
// returns the results as an ordered map. When key is non-empty each result
// is stored under the item's resolved key path instead of a running index.
func Pluck(items []any, value, key string) *Map {
	out := NewMap()
	for _, item := range items {
		v := Get(item, value)
		if key == "" {
			out.Append(v)
			continue
		}
		out.Set(NormalizeKey(Get(item, key)), v)
	}
	return out
}

// Flatten merges nested sequences into a single flat sequence, descending
// at most depth levels. A negative depth flattens without limit.
// Non-sequence values pass through unchanged.
func Flatten(items []any, depth int) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		nested, ok := sequence(item)
		if !ok {
			out = append(out, item)
			continue
		}
		if depth == 1 {
			out = append(out, nested...)
			continue
		}
		out = append(out, Flatten(nested, depth-1)...)
	}
	return out
}

// Collapse flattens a sequence of sequences one level, skipping values
// that are not sequences.
func Collapse(items []any) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		if nested, ok := sequence(item); ok {
			out = append(out, nested...)
		}
	}
	return out
}

// sequence extracts the element values of slice-like and map-like items.
func sequence(item any) ([]any, bool) {
	switch v := item.(type) {
	case []any:
		return v, true
	case *Map:
		return v.Values(), true
	case Mappable:
		return v.All().Values(), true
	}
	return nil, false
}

// CrossJoin returns the cartesian product of the given lists. The result
// holds one tuple per combination, ordered lexicographically by input
// order; the tuple count is the product of the input lengths.
func CrossJoin(lists ...[]any) [][]any {
	results := [][]any{{}}
	for _, list := range lists {
		next := make([][]any, 0, len(results)*len(list))
		for _, existing := range results {
			for _, item := range list {
				tuple := make([]any, len(existing)+1)
				copy(tuple, existing)
				tuple[len(existing)] = item
				next = append(next, tuple)
			}
		}
		results = next
	}
	return results
}

// Except returns a new map without the given keys, preserving the order of
// the survivors.
func Except(m *Map, keys ...any) *Map {
	drop := make(map[any]struct{}, len(keys))
	for _, k := range keys {
		drop[NormalizeKey(k)] = struct{}{}
	}
	out := NewMap()
	m.Each(func(k, v any) bool {
		if _, skip := drop[k]; !skip {
			out.Set(k, v)
		}
		return true
	})
	return out
}

// Only returns a new map retaining just the given keys, in their original
// order.
func Only(m *Map, keys ...any) *Map {
	keep := make(map[any]struct{}, len(keys))
	for _, k := range keys {
		keep[NormalizeKey(k)] = struct{}{}
	}
	out := NewMap()
	m.Each(func(k, v any) bool {
		if _, ok := keep[k]; ok {
			out.Set(k, v)
		}
		return true
	})
	return out
}

// Prepend returns a new map with value inserted at position 0. Without an
// explicit key the integer keys of the result are reindexed sequentially;
// string keys are preserved. With an explicit key already present in m,
// the prepended value wins over the old one.
func Prepend(m *Map, value any, key ...any) *Map {
	out := NewMap()
	var pk any
	if len(key) > 0 {
		pk = NormalizeKey(key[0])
		out.Set(pk, value)
	} else {
		out.Append(value)
	}
	m.Each(func(k, v any) bool {
		if len(key) > 0 && k == pk {
			return true
		}
		if _, isInt := k.(int); isInt && len(key) == 0 {
			out.Append(v)
		} else {
			out.Set(k, v)
		}
		return true
	})
	return out
}

// Pull removes key from m and returns its value, or def when absent.
func Pull(m *Map, key, def any) any {
	v, ok := m.Get(key)
	if !ok {
		return def
	}
	m.Forget(key)
	return v
}

// ─────────────────────────────────────────────────────────────────────────────
// Randomness
// ─────────────────────────────────────────────────────────────────────────────

// Random samples n items without replacement. Returns ErrSampleTooLarge
// when n exceeds the item count. An optional seed makes the sample
// reproducible.
func Random(items []any, n int, seed ...int64) ([]any, error) {
	if n > len(items) {
		return nil, fmt.Errorf("%w: requested %d of %d", ErrSampleTooLarge, n, len(items))
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: requested %d", ErrSampleTooLarge, n)
	}
	return Shuffle(items, seed...)[:n], nil
}

// RandomOne samples a single item. Returns ErrSampleTooLarge when items is
// empty.
func RandomOne(items []any, seed ...int64) (any, error) {
	sample, err := Random(items, 1, seed...)
	if err != nil {
		return nil, err
	}
	return sample[0], nil
}

// Shuffle returns a permuted copy of items. The same seed reproduces the
// same order across runs; without a seed the shared source is used.
func Shuffle(items []any, seed ...int64) []any {
	out := make([]any, len(items))
	copy(out, items)
	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if len(seed) > 0 {
		rand.New(rand.NewSource(seed[0])).Shuffle(len(out), swap)
	} else {
		rand.Shuffle(len(out), swap)
	}
	return out
}

// Wrap boxes a value into a slice: nil becomes an empty slice, a []any is
// returned as-is, anything else becomes a single-element slice.
func Wrap(value any) []any {
	switch v := value.(type) {
	case nil:
		return []any{}
	case []any:
		return v
	default:
		return []any{value}
	}
}
