package collections_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AEngine/entity/collections"
)

func TestFirstLast(t *testing.T) {
	c := collections.Of(1, 2, 3, 4)
	even := func(v, _ any) bool { return v.(int)%2 == 0 }

	assert.Equal(t, 1, c.First(nil))
	assert.Equal(t, 2, c.First(even))
	assert.Equal(t, 4, c.Last(nil))
	assert.Equal(t, 4, c.Last(even))

	none := func(v, _ any) bool { return false }
	assert.Equal(t, "d", c.First(none, "d"), "no match resolves to the supplied default")
	assert.Nil(t, collections.Empty().First(nil))
}

func TestFirstOrFail(t *testing.T) {
	c := collections.Of(1, 2, 3)

	v, err := c.FirstOrFail(func(v, _ any) bool { return v.(int) > 2 })
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = c.FirstOrFail(func(v, _ any) bool { return false })
	require.ErrorIs(t, err, collections.ErrNoMatchingItems)
}

func TestFirstWhere(t *testing.T) {
	c := collections.Of(
		map[string]any{"name": "Alice", "age": 25},
		map[string]any{"name": "Bob", "age": 31},
		map[string]any{"name": "Cara", "age": 31},
	)

	got := c.FirstWhere("age", 31)
	assert.Equal(t, "Bob", got.(map[string]any)["name"])

	got = c.FirstWhere("age", ">", 25)
	assert.Equal(t, "Bob", got.(map[string]any)["name"])

	assert.Nil(t, c.FirstWhere("age", 99))
}

func TestSearch(t *testing.T) {
	c := collections.Of(2, 4, 6, 8)

	assert.Equal(t, 1, c.Search(4))
	assert.Equal(t, 1, c.Search("4"), "loose by default")
	assert.Nil(t, c.Search("4", true))
	assert.Equal(t, 2, c.Search(func(v, _ any) bool { return v.(int) > 5 }))
	assert.Nil(t, c.Search(99))

	keyed := collections.Empty().Set("a", 1).Set("b", 2)
	assert.Equal(t, "b", keyed.Search(2))
}

func TestContains(t *testing.T) {
	c := collections.Of(
		map[string]any{"product": "desk", "price": 200},
		map[string]any{"product": "chair", "price": 100},
	)

	assert.True(t, c.Contains(func(v, _ any) bool {
		return v.(map[string]any)["price"].(int) < 150
	}))
	assert.True(t, c.Contains("product", "desk"))
	assert.True(t, c.Contains("price", ">", 150))
	assert.False(t, c.Contains("product", "lamp"))

	flat := collections.Of(1, 2, 3)
	assert.True(t, flat.Contains(2))
	assert.True(t, flat.Contains("2"))
	assert.False(t, flat.ContainsStrict("2"))
	assert.True(t, flat.ContainsStrict(2))
}

func TestEvery(t *testing.T) {
	c := collections.Of(
		map[string]any{"age": 25},
		map[string]any{"age": 31},
	)

	assert.True(t, c.Every("age", ">", 18))
	assert.False(t, c.Every("age", ">", 30))
	assert.True(t, c.Every(func(v, _ any) bool { return v != nil }))
	assert.True(t, collections.Empty().Every("age", ">", 18), "vacuously true when empty")
}

func TestConditionalPipeline(t *testing.T) {
	double := func(c *collections.Collection) *collections.Collection {
		return c.Map(func(v, _ any) any { return v.(int) * 2 })
	}

	c := collections.Of(1, 2)
	assert.Equal(t, []any{2, 4}, c.When(true, double).All().Values())
	assert.Equal(t, []any{1, 2}, c.When(false, double).All().Values())
	assert.Equal(t, []any{2, 4}, c.Unless(false, double).All().Values())
	assert.Equal(t, []any{1, 2}, c.WhenEmpty(double).All().Values())
	assert.Equal(t, []any{2, 4}, c.WhenNotEmpty(double).All().Values())
}

func TestImplode(t *testing.T) {
	assert.Equal(t, "1, 2, 3", collections.Of(1, 2, 3).Implode(", "))

	users := collections.Of(
		map[string]any{"name": "Alice"},
		map[string]any{"name": "Bob"},
	)
	assert.Equal(t, "Alice-Bob", users.Implode("-", "name"))
}
