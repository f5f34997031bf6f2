package collections_test

import (
	"testing"

	"github.com/AEngine/entity/collections"
)

// makeInts builds a list-shaped collection of size n for benchmarks.
func makeInts(n int) *collections.Collection {
	items := make([]any, n)
	for i := range items {
		items[i] = i + 1
	}
	return collections.New(items)
}

func BenchmarkFilter(b *testing.B) {
	c := makeInts(10_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Filter(func(v, _ any) bool { return v.(int)%2 == 0 })
	}
}

func BenchmarkMap(b *testing.B) {
	c := makeInts(10_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Map(func(v, _ any) any { return v.(int) * 2 })
	}
}

func BenchmarkReduce(b *testing.B) {
	c := makeInts(10_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Reduce(func(carry, v, _ any) any { return carry.(int) + v.(int) }, 0)
	}
}

func BenchmarkGet(b *testing.B) {
	c := makeInts(10_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(i % 10_000)
	}
}

func BenchmarkSortBy(b *testing.B) {
	c := makeInts(1_000).Map(func(v, _ any) any {
		return map[string]any{"n": v}
	})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.SortBy("n")
	}
}
