package collections

import (
	"fmt"

	"github.com/AEngine/entity/arr"
)

// ─────────────────────────────────────────────────────────────────────────────
// Mapping
// ─────────────────────────────────────────────────────────────────────────────

// Map returns a new Collection with every value replaced by
// fn(value, key). Keys survive unchanged, so result.Keys() equals
// source.Keys().
func (c *Collection) Map(fn func(value, key any) any) *Collection {
	out := arr.NewMap()
	c.items.Each(func(k, v any) bool {
		out.Set(k, fn(v, k))
		return true
	})
	return c.derive(out)
}

// MapWithKeys builds a new Collection from the single key/value pair each
// fn(value, key) invocation yields. A repeated key overwrites the earlier
// value but keeps the position of its first occurrence.
func (c *Collection) MapWithKeys(fn func(value, key any) (any, any)) *Collection {
	out := arr.NewMap()
	c.items.Each(func(k, v any) bool {
		nk, nv := fn(v, k)
		out.Set(nk, nv)
		return true
	})
	return c.derive(out)
}

// MapToDictionary groups the pairs yielded by fn(value, key) into a
// dictionary: each key maps to the plain slice of values produced for it.
func (c *Collection) MapToDictionary(fn func(value, key any) (any, any)) *Collection {
	out := arr.NewMap()
	c.items.Each(func(k, v any) bool {
		nk, nv := fn(v, k)
		nk = arr.NormalizeKey(nk)
		bucket, _ := out.Get(nk)
		if bucket == nil {
			bucket = []any{}
		}
		out.Set(nk, append(bucket.([]any), nv))
		return true
	})
	return c.derive(out)
}

// MapToGroups groups the pairs yielded by fn(value, key), wrapping each
// group in a Collection.
func (c *Collection) MapToGroups(fn func(value, key any) (any, any)) *Collection {
	return c.MapToDictionary(fn).Map(func(v, _ any) any {
		return c.derive(arr.FromValues(v.([]any)))
	})
}

// MapSpread treats every value as a sequence and spreads its elements as
// the arguments of fn.
func (c *Collection) MapSpread(fn func(args ...any) any) *Collection {
	return c.Map(func(v, _ any) any {
		return fn(materialize(v).Values()...)
	})
}

// FlatMap maps every entry through fn and collapses the result one level.
func (c *Collection) FlatMap(fn func(value, key any) any) *Collection {
	return c.Map(fn).Collapse()
}

// MapInto constructs a new value per item through the given factory,
// typically a model constructor.
func (c *Collection) MapInto(factory func(value any) any) *Collection {
	return c.Map(func(v, _ any) any { return factory(v) })
}

// ─────────────────────────────────────────────────────────────────────────────
// Filtering
// ─────────────────────────────────────────────────────────────────────────────

// Filter returns a new Collection with only the entries for which
// fn(value, key) is true, preserving keys and relative order. A nil fn
// keeps truthy values.
func (c *Collection) Filter(fn func(value, key any) bool) *Collection {
	if fn == nil {
		fn = func(v, _ any) bool { return truthy(v) }
	}
	out := arr.NewMap()
	c.items.Each(func(k, v any) bool {
		if fn(v, k) {
			out.Set(k, v)
		}
		return true
	})
	return c.derive(out)
}

// Reject is the complement of [Collection.Filter].
func (c *Collection) Reject(fn func(value, key any) bool) *Collection {
	if fn == nil {
		fn = func(v, _ any) bool { return truthy(v) }
	}
	return c.Filter(func(v, k any) bool { return !fn(v, k) })
}

// Where filters by an operator comparison on the value resolved at key.
// With no extra arguments the resolved value is tested for truthiness;
// with one argument the operator defaults to "="; with two the first is
// the operator and the second the comparison value.
func (c *Collection) Where(key string, args ...any) *Collection {
	op, value, bare := whereArgs(args)
	return c.Filter(func(v, _ any) bool {
		retrieved := arr.Get(v, key)
		if bare {
			return truthy(retrieved)
		}
		return Compare(retrieved, op, value)
	})
}

// WhereStrict filters with type-exact equality on the value at key.
func (c *Collection) WhereStrict(key string, value any) *Collection {
	return c.Where(key, "===", value)
}

// WhereIn keeps entries whose value at key loosely equals one of values.
func (c *Collection) WhereIn(key string, values []any) *Collection {
	return c.Filter(func(v, _ any) bool {
		retrieved := arr.Get(v, key)
		for _, candidate := range values {
			if looseEqual(retrieved, candidate) {
				return true
			}
		}
		return false
	})
}

// WhereNotIn is the complement of [Collection.WhereIn].
func (c *Collection) WhereNotIn(key string, values []any) *Collection {
	in := c.WhereIn(key, values)
	return c.Filter(func(_, k any) bool { return !in.items.Has(k) })
}

func whereArgs(args []any) (op string, value any, bare bool) {
	switch len(args) {
	case 0:
		return "", nil, true
	case 1:
		return "=", args[0], false
	default:
		if s, ok := args[0].(string); ok {
			return s, args[1], false
		}
		return "=", args[1], false
	}
}

// Unique keeps the first entry per resolved key value, using loose
// equality; survivors retain their original keys.
func (c *Collection) Unique(specs ...any) *Collection {
	return c.uniqueBy(specFrom(specs), looseEqual)
}

// UniqueStrict keeps the first entry per resolved key value, using
// type-exact equality.
func (c *Collection) UniqueStrict(specs ...any) *Collection {
	return c.uniqueBy(specFrom(specs), strictEqual)
}

func (c *Collection) uniqueBy(spec any, equal func(a, b any) bool) *Collection {
	fn := ValueRetriever(spec)
	var seen []any
	return c.Filter(func(v, _ any) bool {
		key := fn(v)
		for _, s := range seen {
			if equal(s, key) {
				return false
			}
		}
		seen = append(seen, key)
		return true
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Structural reshaping
// ─────────────────────────────────────────────────────────────────────────────

// Flatten merges nested sequences into a single list, descending at most
// depth[0] levels (unlimited by default).
func (c *Collection) Flatten(depth ...int) *Collection {
	d := -1
	if len(depth) > 0 {
		d = depth[0]
	}
	return c.derive(arr.FromValues(arr.Flatten(c.items.Values(), d)))
}

// Collapse flattens a collection of sequences one level into a list.
func (c *Collection) Collapse() *Collection {
	return c.derive(arr.FromValues(arr.Collapse(c.items.Values())))
}

// Pluck resolves the value path against every item; a second path re-keys
// the result.
func (c *Collection) Pluck(value string, key ...string) *Collection {
	k := ""
	if len(key) > 0 {
		k = key[0]
	}
	return c.derive(arr.Pluck(c.items.Values(), value, k))
}

// Flip swaps keys and values. Values become keys through the usual key
// normalization.
func (c *Collection) Flip() *Collection {
	out := arr.NewMap()
	c.items.Each(func(k, v any) bool {
		out.Set(arr.NormalizeKey(v), k)
		return true
	})
	return c.derive(out)
}

// Reverse returns the entries in reverse insertion order, keys preserved.
func (c *Collection) Reverse() *Collection {
	out := arr.NewMap()
	for i := c.items.Len() - 1; i >= 0; i-- {
		k, v := c.items.At(i)
		out.Set(k, v)
	}
	return c.derive(out)
}

// Pad pads the list with value up to the absolute size given; a negative
// size pads on the left. A collection already that long is returned as a
// reindexed copy.
func (c *Collection) Pad(size int, value any) *Collection {
	values := c.items.Values()
	missing := size
	if missing < 0 {
		missing = -missing
	}
	missing -= len(values)
	if missing <= 0 {
		return c.derive(arr.FromValues(values))
	}
	pad := make([]any, missing)
	for i := range pad {
		pad[i] = value
	}
	if size < 0 {
		return c.derive(arr.FromValues(append(pad, values...)))
	}
	return c.derive(arr.FromValues(append(values, pad...)))
}

// ─────────────────────────────────────────────────────────────────────────────
// Combination
// ─────────────────────────────────────────────────────────────────────────────

// Zip pairwise-combines this collection's values with one or more other
// sequences into tuple Collections. The result length is the length of
// the shortest input.
func (c *Collection) Zip(others ...any) *Collection {
	columns := make([][]any, 0, len(others)+1)
	columns = append(columns, c.items.Values())
	shortest := len(columns[0])
	for _, other := range others {
		col := materialize(other).Values()
		if len(col) < shortest {
			shortest = len(col)
		}
		columns = append(columns, col)
	}
	out := arr.NewMap()
	for i := 0; i < shortest; i++ {
		tuple := make([]any, len(columns))
		for j, col := range columns {
			tuple[j] = col[i]
		}
		out.Append(c.derive(arr.FromValues(tuple)))
	}
	return c.derive(out)
}

// Combine uses this collection's values as keys and the given sequence as
// values. The lengths must correspond one to one.
func (c *Collection) Combine(values any) (*Collection, error) {
	keys := c.items.Values()
	vals := materialize(values).Values()
	if len(keys) != len(vals) {
		return nil, fmt.Errorf("%w: combine expects %d values, got %d",
			ErrInvalidArgument, len(keys), len(vals))
	}
	out := arr.NewMap()
	for i, k := range keys {
		out.Set(arr.NormalizeKey(k), vals[i])
	}
	return c.derive(out), nil
}

// CrossJoin crosses this collection's values with the given sequences,
// returning all possible tuple permutations in lexicographic input order.
func (c *Collection) CrossJoin(others ...any) *Collection {
	lists := make([][]any, 0, len(others)+1)
	lists = append(lists, c.items.Values())
	for _, other := range others {
		lists = append(lists, materialize(other).Values())
	}
	out := arr.NewMap()
	for _, tuple := range arr.CrossJoin(lists...) {
		out.Append(c.derive(arr.FromValues(tuple)))
	}
	return c.derive(out)
}

// Diff returns the entries whose values are absent from other, keys
// preserved.
func (c *Collection) Diff(other any) *Collection {
	values := materialize(other).Values()
	return c.Filter(func(v, _ any) bool {
		for _, ov := range values {
			if looseEqual(v, ov) {
				return false
			}
		}
		return true
	})
}

// DiffKeys returns the entries whose keys are absent from other.
func (c *Collection) DiffKeys(other any) *Collection {
	m := materialize(other)
	return c.Filter(func(_, k any) bool { return !m.Has(k) })
}

// DiffAssoc returns the entries whose key/value pair is absent from other.
func (c *Collection) DiffAssoc(other any) *Collection {
	m := materialize(other)
	return c.Filter(func(v, k any) bool {
		ov, ok := m.Get(k)
		return !ok || !looseEqual(v, ov)
	})
}

// Intersect returns the entries whose values are present in other, keys
// preserved.
func (c *Collection) Intersect(other any) *Collection {
	values := materialize(other).Values()
	return c.Filter(func(v, _ any) bool {
		for _, ov := range values {
			if looseEqual(v, ov) {
				return true
			}
		}
		return false
	})
}

// IntersectByKeys returns the entries whose keys are present in other.
func (c *Collection) IntersectByKeys(other any) *Collection {
	m := materialize(other)
	return c.Filter(func(_, k any) bool { return m.Has(k) })
}

// Union adds the entries of other whose keys this collection lacks;
// existing keys keep this collection's values.
func (c *Collection) Union(other any) *Collection {
	out := c.items.Clone()
	materialize(other).Each(func(k, v any) bool {
		if !out.Has(k) {
			out.Set(k, v)
		}
		return true
	})
	return c.derive(out)
}

// Merge merges other into a copy of this collection: string keys from
// other overwrite, integer-keyed values are appended under fresh indexes.
func (c *Collection) Merge(other any) *Collection {
	out := c.items.Clone()
	materialize(other).Each(func(k, v any) bool {
		if _, isInt := k.(int); isInt {
			out.Append(v)
		} else {
			out.Set(k, v)
		}
		return true
	})
	return c.derive(out)
}

// Concat appends every value of other under fresh integer keys.
func (c *Collection) Concat(other any) *Collection {
	out := c.items.Clone()
	for _, v := range materialize(other).Values() {
		out.Append(v)
	}
	return c.derive(out)
}
