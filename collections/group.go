package collections

import (
	"github.com/AEngine/entity/arr"
)

// ─────────────────────────────────────────────────────────────────────────────
// Grouping & partitioning
// ─────────────────────────────────────────────────────────────────────────────

// GroupBy groups entries by the resolved key value. spec may be a single
// key spec or a sequence of key specs; with a sequence each group is
// itself grouped recursively by the remaining specs. Boolean group keys
// are normalized to 0/1. Groups are list-shaped unless preserveKeys[0] is
// true.
func (c *Collection) GroupBy(spec any, preserveKeys ...bool) *Collection {
	keep := len(preserveKeys) > 0 && preserveKeys[0]

	specs, multi := spec.([]any)
	if !multi {
		if paths, ok := spec.([]string); ok {
			specs = make([]any, len(paths))
			for i, p := range paths {
				specs[i] = p
			}
		} else {
			specs = []any{spec}
		}
	}

	fn := ValueRetriever(specs[0])
	out := arr.NewMap()
	c.items.Each(func(k, v any) bool {
		gk := groupKey(fn(v))
		bucket, ok := out.Get(gk)
		if !ok {
			bucket = c.derive(arr.NewMap())
			out.Set(gk, bucket)
		}
		group := bucket.(*Collection)
		if keep {
			group.items.Set(k, v)
		} else {
			group.items.Append(v)
		}
		return true
	})
	result := c.derive(out)

	if len(specs) > 1 {
		rest := specs[1:]
		result = result.Map(func(group, _ any) any {
			return group.(*Collection).GroupBy(rest, preserveKeys...)
		})
	}
	return result
}

// groupKey folds a resolved grouping value into a usable key: booleans
// become 0/1, everything else goes through the usual key normalization.
func groupKey(v any) any {
	if b, ok := v.(bool); ok {
		if b {
			return 1
		}
		return 0
	}
	return arr.NormalizeKey(v)
}

// KeyBy returns a new Collection keyed by the resolved value of each
// entry. Later entries with a repeated key overwrite earlier ones.
func (c *Collection) KeyBy(spec any) *Collection {
	fn := ValueRetriever(spec)
	out := arr.NewMap()
	c.items.Each(func(_, v any) bool {
		out.Set(arr.NormalizeKey(fn(v)), v)
		return true
	})
	return c.derive(out)
}

// Partition splits the collection in two: the first return holds the
// failing entries, the second the passing ones. Keys are preserved in
// both halves. spec is a predicate func(value, key) bool or any key spec
// accepted by [ValueRetriever], whose resolved value is tested for
// truthiness.
func (c *Collection) Partition(spec any) (failed, passed *Collection) {
	pred, ok := spec.(func(value, key any) bool)
	if !ok {
		fn := ValueRetriever(spec)
		pred = func(v, _ any) bool { return truthy(fn(v)) }
	}
	failed = c.derive(arr.NewMap())
	passed = c.derive(arr.NewMap())
	c.items.Each(func(k, v any) bool {
		if pred(v, k) {
			passed.items.Set(k, v)
		} else {
			failed.items.Set(k, v)
		}
		return true
	})
	return failed, passed
}

// ─────────────────────────────────────────────────────────────────────────────
// Positional partitioning
// ─────────────────────────────────────────────────────────────────────────────

// Chunk splits the entries into consecutive groups of the given size; the
// last group may be smaller. Keys are preserved inside each group. A
// non-positive size yields an empty collection.
func (c *Collection) Chunk(size int) *Collection {
	out := arr.NewMap()
	if size <= 0 {
		return c.derive(out)
	}
	var current *Collection
	i := 0
	c.items.Each(func(k, v any) bool {
		if i%size == 0 {
			current = c.derive(arr.NewMap())
			out.Append(current)
		}
		current.items.Set(k, v)
		i++
		return true
	})
	return c.derive(out)
}

// Split divides the entries into n groups: each holds count/n entries,
// and the first count%n groups take one extra. Groups that would be empty
// are omitted.
func (c *Collection) Split(n int) *Collection {
	out := arr.NewMap()
	if n <= 0 || c.items.Len() == 0 {
		return c.derive(out)
	}
	total := c.items.Len()
	base := total / n
	remainder := total % n
	pos := 0
	for g := 0; g < n; g++ {
		size := base
		if g < remainder {
			size++
		}
		if size == 0 {
			continue
		}
		group := c.derive(arr.NewMap())
		for i := 0; i < size; i++ {
			k, v := c.items.At(pos)
			group.items.Set(k, v)
			pos++
		}
		out.Append(group)
	}
	return c.derive(out)
}

// Slice returns entries starting at offset with at most length[0] entries
// (to the end by default). A negative offset counts from the end. Keys
// are preserved.
func (c *Collection) Slice(offset int, length ...int) *Collection {
	total := c.items.Len()
	if offset < 0 {
		offset = total + offset
	}
	if offset < 0 {
		offset = 0
	}
	end := total
	if len(length) > 0 {
		if l := length[0]; l >= 0 {
			end = offset + l
		}
	}
	if end > total {
		end = total
	}
	out := arr.NewMap()
	for i := offset; i < end; i++ {
		k, v := c.items.At(i)
		out.Set(k, v)
	}
	return c.derive(out)
}

// ForPage returns the entries for the given 1-based page of perPage
// entries each.
func (c *Collection) ForPage(page, perPage int) *Collection {
	if page < 1 {
		page = 1
	}
	return c.Slice((page-1)*perPage, perPage)
}

// Take returns the first n entries; a negative n takes from the end.
func (c *Collection) Take(n int) *Collection {
	if n < 0 {
		return c.Slice(n)
	}
	return c.Slice(0, n)
}

// Skip returns the entries after the first n.
func (c *Collection) Skip(n int) *Collection {
	if n < 0 {
		n = 0
	}
	return c.Slice(n)
}

// Nth returns every step-th value starting at the given offset, reindexed
// from zero.
func (c *Collection) Nth(step int, offset ...int) *Collection {
	out := arr.NewMap()
	if step <= 0 {
		return c.derive(out)
	}
	start := 0
	if len(offset) > 0 {
		start = offset[0]
	}
	position := 0
	c.items.Each(func(_, v any) bool {
		if position >= start && (position-start)%step == 0 {
			out.Append(v)
		}
		position++
		return true
	})
	return c.derive(out)
}
