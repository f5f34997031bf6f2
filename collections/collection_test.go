package collections_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AEngine/entity/arr"
	"github.com/AEngine/entity/collections"
)

func TestNewFromSources(t *testing.T) {
	tests := []struct {
		name       string
		src        any
		wantKeys   []any
		wantValues []any
	}{
		{
			name:       "nil is empty",
			src:        nil,
			wantKeys:   []any{},
			wantValues: []any{},
		},
		{
			name:       "slice of any",
			src:        []any{"a", "b"},
			wantKeys:   []any{0, 1},
			wantValues: []any{"a", "b"},
		},
		{
			name:       "typed slice",
			src:        []int{1, 2, 3},
			wantKeys:   []any{0, 1, 2},
			wantValues: []any{1, 2, 3},
		},
		{
			name:       "string map sorted for determinism",
			src:        map[string]any{"b": 2, "a": 1},
			wantKeys:   []any{"a", "b"},
			wantValues: []any{1, 2},
		},
		{
			name:       "scalar wrapped",
			src:        "solo",
			wantKeys:   []any{0},
			wantValues: []any{"solo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := collections.New(tt.src)
			m := c.All()
			if len(tt.wantKeys) == 0 {
				assert.Equal(t, 0, c.Count())
				return
			}
			assert.Equal(t, tt.wantKeys, m.Keys())
			assert.Equal(t, tt.wantValues, m.Values())
		})
	}
}

func TestNewFromCollectionSharesItemsNotStore(t *testing.T) {
	src := collections.Of(1, 2, 3)
	dst := collections.New(src)

	dst.Set(0, 99)
	assert.Equal(t, 1, src.Get(0), "backing stores are independent")
}

func TestWrap(t *testing.T) {
	assert.Equal(t, 0, collections.Wrap(nil).Count())
	assert.Equal(t, []any{"solo"}, collections.Wrap("solo").All().Values())
	assert.Equal(t, []any{1, 2}, collections.Wrap([]any{1, 2}).All().Values())

	c := collections.Of(1)
	assert.Same(t, c, collections.Wrap(c))
}

func TestSetGetHas(t *testing.T) {
	c := collections.Empty()
	c.Set("name", "desk").Set(nil, "appended")

	assert.Equal(t, "desk", c.Get("name"))
	assert.Equal(t, "appended", c.Get(0), "nil key appends at the next integer index")
	assert.Equal(t, "fallback", c.Get("missing", "fallback"))
	assert.Nil(t, c.Get("missing"))
	assert.True(t, c.Has("name", 0))
	assert.False(t, c.Has("name", "missing"))
}

func TestPushPopShift(t *testing.T) {
	c := collections.Of(1, 2, 3)

	assert.Equal(t, 3, c.Pop())
	assert.Equal(t, 1, c.Shift())
	assert.Equal(t, []any{2}, c.All().Values())

	c.Push(4, 5)
	assert.Equal(t, []any{2, 4, 5}, c.All().Values())

	empty := collections.Empty()
	assert.Nil(t, empty.Pop())
	assert.Nil(t, empty.Shift())
}

func TestPopThenPushKeepsListShape(t *testing.T) {
	c := collections.Of(1, 2, 3)
	c.Pop()
	c.Push(9)

	assert.Equal(t, []any{0, 1, 2}, c.All().Keys())
	assert.Equal(t, `[1,2,9]`, c.String())
}

func TestShiftReindexes(t *testing.T) {
	c := collections.Of("a", "b", "c")
	assert.Equal(t, "a", c.Shift())

	assert.Equal(t, []any{0, 1}, c.All().Keys())
	assert.Equal(t, `["b","c"]`, c.String())

	mixed := collections.Of("x", "y").Set("label", "kept")
	mixed.Shift()
	assert.Equal(t, []any{0, "label"}, mixed.All().Keys(), "string keys survive the reindex")
}

func TestPrependReindexes(t *testing.T) {
	c := collections.Of("b", "c")
	c.Prepend("a")

	assert.Equal(t, []any{0, 1, 2}, c.All().Keys())
	assert.Equal(t, []any{"a", "b", "c"}, c.All().Values())

	c.Prepend("zero", "z")
	k, v := c.All().At(0)
	assert.Equal(t, "z", k)
	assert.Equal(t, "zero", v)
}

func TestPull(t *testing.T) {
	c := collections.New(map[string]any{"name": "desk", "price": 100})

	assert.Equal(t, 100, c.Pull("price"))
	assert.False(t, c.Has("price"))
	assert.Equal(t, "none", c.Pull("price", "none"))
}

func TestRemoveClear(t *testing.T) {
	c := collections.Of("a", "b", "c")
	c.Remove(1)
	assert.Equal(t, []any{0, 2}, c.All().Keys())

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.False(t, c.IsNotEmpty())
}

func TestSplice(t *testing.T) {
	c := collections.Of(1, 2, 3, 4, 5)
	removed := c.Splice(1, 2)

	assert.Equal(t, []any{2, 3}, removed.All().Values())
	assert.Equal(t, []any{1, 4, 5}, c.All().Values())
	assert.Equal(t, []any{0, 1, 2}, c.All().Keys(), "integer keys reindex")

	c = collections.Of(1, 2, 3)
	c.Splice(1, 1, []any{"x", "y"})
	assert.Equal(t, []any{1, "x", "y", 3}, c.All().Values())
}

func TestTransformMutatesInPlace(t *testing.T) {
	c := collections.Of(1, 2, 3)
	got := c.Transform(func(v, _ any) any { return v.(int) * 10 })

	assert.Same(t, c, got)
	assert.Equal(t, []any{10, 20, 30}, c.All().Values())
}

func TestEachStopsOnFalse(t *testing.T) {
	var seen []any
	collections.Of(1, 2, 3, 4).Each(func(v, _ any) bool {
		seen = append(seen, v)
		return v.(int) < 2
	})
	assert.Equal(t, []any{1, 2}, seen)
}

func TestTap(t *testing.T) {
	tapped := false
	c := collections.Of(1)
	got := c.Tap(func(inner *collections.Collection) {
		tapped = true
		assert.Same(t, c, inner)
	})
	assert.True(t, tapped)
	assert.Same(t, c, got)
}

func TestKeysValues(t *testing.T) {
	c := collections.Empty().Set("a", 1).Set("b", 2)

	assert.Equal(t, []any{"a", "b"}, c.Keys().All().Values())

	values := c.Values()
	assert.Equal(t, []any{0, 1}, values.All().Keys(), "values reindex from zero")
	assert.Equal(t, []any{1, 2}, values.All().Values())
}

func TestEntriesIteration(t *testing.T) {
	c := collections.Empty().Set("a", 1).Set("b", 2)

	var keys, values []any
	for k, v := range c.Entries() {
		keys = append(keys, k)
		values = append(values, v)
	}
	assert.Equal(t, []any{"a", "b"}, keys)
	assert.Equal(t, []any{1, 2}, values)
}

func TestToArrayRoundTrip(t *testing.T) {
	c := collections.Empty().
		Set("name", "desk").
		Set("dims", collections.Of(10, 20)).
		Set(3, "third")

	raw := c.ToArray()
	rebuilt := collections.New(raw)

	if diff := cmp.Diff(c.All().Keys(), rebuilt.All().Keys()); diff != "" {
		t.Fatalf("round trip keys mismatch (-want +got):\n%s", diff)
	}
	nested, ok := raw.Get("dims")
	require.True(t, ok)
	_, isMap := nested.(*arr.Map)
	assert.True(t, isMap, "nested collections materialize recursively")

	assert.Equal(t, c.ToArray().String(), rebuilt.ToArray().String())
}

func TestReplace(t *testing.T) {
	c := collections.Of(1, 2, 3)
	c.Replace(map[string]any{"a": 1})

	assert.Equal(t, []any{"a"}, c.All().Keys())
}
