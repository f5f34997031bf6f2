package collections

import (
	"fmt"
	"sort"

	"github.com/AEngine/entity/arr"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sorting — every sort here is stable: entries with equal comparator
// values keep their original relative order.
// ─────────────────────────────────────────────────────────────────────────────

// Criterion is one ordering rule for a multi-criteria [Collection.SortBy]:
// a key spec plus direction.
type Criterion struct {
	Spec       any
	Descending bool
}

// Desc builds a descending Criterion for a multi-criteria sort.
func Desc(spec any) Criterion { return Criterion{Spec: spec, Descending: true} }

// Asc builds an ascending Criterion for a multi-criteria sort.
func Asc(spec any) Criterion { return Criterion{Spec: spec} }

// Sort returns a new Collection ordered by the natural ascending
// comparison of values (numeric when both sides coerce, lexical
// otherwise). An optional less function overrides the comparison.
func (c *Collection) Sort(less ...func(a, b any) bool) *Collection {
	cmp := func(a, b any) bool { return orderOf(a, b) < 0 }
	if len(less) > 0 && less[0] != nil {
		cmp = less[0]
	}
	return c.sortEntries(func(a, b entry) bool { return cmp(a.value, b.value) })
}

// SortBy returns a new Collection ordered ascending by the resolved
// comparator value. spec is a key spec (path string or callable), a
// Criterion, or a sequence of either for multi-criteria sorting where
// earlier criteria dominate.
func (c *Collection) SortBy(spec any) *Collection {
	criteria := normalizeCriteria(spec, false)
	return c.sortEntries(func(a, b entry) bool {
		for _, cr := range criteria {
			fn := ValueRetriever(cr.Spec)
			o := orderOf(fn(a.value), fn(b.value))
			if o == 0 {
				continue
			}
			if cr.Descending {
				return o > 0
			}
			return o < 0
		}
		return false
	})
}

// SortByDesc is [Collection.SortBy] with every criterion descending.
func (c *Collection) SortByDesc(spec any) *Collection {
	criteria := normalizeCriteria(spec, true)
	specs := make([]any, len(criteria))
	for i, cr := range criteria {
		specs[i] = cr
	}
	return c.SortBy(specs)
}

// SortKeys returns a new Collection ordered ascending by key: integer
// keys first in numeric order, then string keys lexically.
func (c *Collection) SortKeys() *Collection {
	return c.sortEntries(func(a, b entry) bool { return keyLess(a.key, b.key) })
}

// SortKeysDesc is [Collection.SortKeys] in reverse.
func (c *Collection) SortKeysDesc() *Collection {
	return c.sortEntries(func(a, b entry) bool { return keyLess(b.key, a.key) })
}

type entry struct {
	key   any
	value any
}

func (c *Collection) sortEntries(less func(a, b entry) bool) *Collection {
	entries := make([]entry, 0, c.items.Len())
	c.items.Each(func(k, v any) bool {
		entries = append(entries, entry{key: k, value: v})
		return true
	})
	sort.SliceStable(entries, func(i, j int) bool { return less(entries[i], entries[j]) })
	out := arr.NewMap()
	for _, e := range entries {
		out.Set(e.key, e.value)
	}
	return c.derive(out)
}

func normalizeCriteria(spec any, descending bool) []Criterion {
	switch s := spec.(type) {
	case Criterion:
		if descending {
			s.Descending = true
		}
		return []Criterion{s}
	case []Criterion:
		if !descending {
			return s
		}
		out := make([]Criterion, len(s))
		for i, cr := range s {
			cr.Descending = true
			out[i] = cr
		}
		return out
	case []any:
		out := make([]Criterion, 0, len(s))
		for _, item := range s {
			out = append(out, normalizeCriteria(item, descending)...)
		}
		return out
	default:
		return []Criterion{{Spec: spec, Descending: descending}}
	}
}

// Shuffle returns a new list-shaped Collection with the values permuted.
// The same seed reproduces the same order; without one the shared source
// is used.
func (c *Collection) Shuffle(seed ...int64) *Collection {
	return c.derive(arr.FromValues(arr.Shuffle(c.items.Values(), seed...)))
}

// Random samples n values without replacement into a new list-shaped
// Collection. Requesting more values than the collection holds is an
// error.
func (c *Collection) Random(n int, seed ...int64) (*Collection, error) {
	sample, err := arr.Random(c.items.Values(), n, seed...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return c.derive(arr.FromValues(sample)), nil
}

// RandomOne samples a single value; an empty collection is an error.
func (c *Collection) RandomOne(seed ...int64) (any, error) {
	v, err := arr.RandomOne(c.items.Values(), seed...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return v, nil
}

// keyLess orders integer keys before string keys.
func keyLess(a, b any) bool {
	ai, aInt := a.(int)
	bi, bInt := b.(int)
	switch {
	case aInt && bInt:
		return ai < bi
	case aInt:
		return true
	case bInt:
		return false
	}
	return a.(string) < b.(string)
}
