package collections

import (
	"sort"

	"github.com/spf13/cast"
)

// ─────────────────────────────────────────────────────────────────────────────
// Aggregation
// ─────────────────────────────────────────────────────────────────────────────

// Reduce folds the collection into a single value, calling
// fn(carry, value, key) for every entry in order.
func (c *Collection) Reduce(fn func(carry, value, key any) any, initial any) any {
	carry := initial
	c.items.Each(func(k, v any) bool {
		carry = fn(carry, v, k)
		return true
	})
	return carry
}

// Sum totals the values resolved by the optional key spec, coercing each
// to a number. Unconvertible values count as zero.
func (c *Collection) Sum(specs ...any) float64 {
	fn := ValueRetriever(specFrom(specs))
	var sum float64
	c.items.Each(func(_, v any) bool {
		sum += cast.ToFloat64(fn(v))
		return true
	})
	return sum
}

// Avg returns the arithmetic mean of the resolved values, ignoring
// entries that resolve to nil. Returns nil for an empty collection or
// when every entry resolved to nil.
func (c *Collection) Avg(specs ...any) any {
	values := c.numericValues(specFrom(specs))
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Average is an alias for [Collection.Avg].
func (c *Collection) Average(specs ...any) any { return c.Avg(specs...) }

// Max returns the largest resolved value, or nil when empty. nil-resolved
// entries are skipped.
func (c *Collection) Max(specs ...any) any {
	fn := ValueRetriever(specFrom(specs))
	var best any
	c.items.Each(func(_, v any) bool {
		rv := fn(v)
		if rv == nil {
			return true
		}
		if best == nil || orderOf(rv, best) > 0 {
			best = rv
		}
		return true
	})
	return best
}

// Min returns the smallest resolved value, or nil when empty.
func (c *Collection) Min(specs ...any) any {
	fn := ValueRetriever(specFrom(specs))
	var best any
	c.items.Each(func(_, v any) bool {
		rv := fn(v)
		if rv == nil {
			return true
		}
		if best == nil || orderOf(rv, best) < 0 {
			best = rv
		}
		return true
	})
	return best
}

// Median returns the middle resolved value for odd counts, or the mean of
// the two middle values for even counts. nil-resolved entries are ignored
// first; an empty input yields nil.
func (c *Collection) Median(specs ...any) any {
	values := c.numericValues(specFrom(specs))
	if len(values) == 0 {
		return nil
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return (values[mid-1] + values[mid]) / 2
}

// Mode returns the set of resolved values tied for the highest frequency,
// sorted ascending. An empty collection yields nil.
func (c *Collection) Mode(specs ...any) []any {
	fn := ValueRetriever(specFrom(specs))
	counts := make(map[float64]int)
	order := make([]float64, 0)
	c.items.Each(func(_, v any) bool {
		rv := fn(v)
		if rv == nil {
			return true
		}
		f := cast.ToFloat64(rv)
		if _, seen := counts[f]; !seen {
			order = append(order, f)
		}
		counts[f]++
		return true
	})
	if len(order) == 0 {
		return nil
	}
	highest := 0
	for _, n := range counts {
		if n > highest {
			highest = n
		}
	}
	winners := make([]float64, 0, len(order))
	for _, f := range order {
		if counts[f] == highest {
			winners = append(winners, f)
		}
	}
	sort.Float64s(winners)
	out := make([]any, len(winners))
	for i, f := range winners {
		out[i] = f
	}
	return out
}

// numericValues resolves the spec against every entry and keeps the
// non-nil results as floats.
func (c *Collection) numericValues(spec any) []float64 {
	fn := ValueRetriever(spec)
	out := make([]float64, 0, c.items.Len())
	c.items.Each(func(_, v any) bool {
		rv := fn(v)
		if rv == nil {
			return true
		}
		out = append(out, cast.ToFloat64(rv))
		return true
	})
	return out
}
