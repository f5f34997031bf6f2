package arr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AEngine/entity/arr"
)

func TestMapInsertionOrder(t *testing.T) {
	m := arr.NewMap()
	m.Set("b", 2)
	m.Set("a", 1)
	m.Set(7, "seven")
	m.Set("c", 3)

	assert.Equal(t, []any{"b", "a", 7, "c"}, m.Keys())
	assert.Equal(t, []any{2, 1, "seven", 3}, m.Values())
}

func TestMapSetExistingKeepsPosition(t *testing.T) {
	m := arr.NewMap()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 10)

	assert.Equal(t, []any{"a", "b"}, m.Keys())
	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestMapAppendAssignsNextInteger(t *testing.T) {
	m := arr.NewMap()
	assert.Equal(t, 0, m.Append("first"))
	assert.Equal(t, 1, m.Append("second"))

	m.Set(10, "jump")
	assert.Equal(t, 11, m.Append("after jump"))

	m.Set("name", "x")
	assert.Equal(t, 12, m.Append("still numeric"))
}

func TestMapKeyNormalization(t *testing.T) {
	m := arr.NewMap()
	m.Set(int64(3), "a")

	v, ok := m.Get(3)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	m.Set(uint8(3), "b")
	assert.Equal(t, 1, m.Len(), "int64(3) and uint8(3) are the same key")
	v, _ = m.Get(3)
	assert.Equal(t, "b", v)
}

func TestMapForgetHighestReleasesAppendKey(t *testing.T) {
	m := arr.FromValues([]any{1, 2, 3})
	require.True(t, m.Forget(2))

	assert.Equal(t, 2, m.Append(9), "the released index is handed out again")
	assert.Equal(t, []any{0, 1, 2}, m.Keys())
	assert.True(t, m.IsList())

	// Removing a middle key leaves the highest in place.
	m.Forget(1)
	assert.Equal(t, 3, m.Append("x"))
}

func TestMapForget(t *testing.T) {
	m := arr.FromValues([]any{"a", "b", "c"})
	require.True(t, m.Forget(1))
	assert.False(t, m.Forget(1))
	assert.Equal(t, []any{0, 2}, m.Keys())
	assert.Equal(t, []any{"a", "c"}, m.Values())
}

func TestMapCloneIsIndependent(t *testing.T) {
	m := arr.FromValues([]any{1, 2})
	clone := m.Clone()
	clone.Set(0, 99)

	v, _ := m.Get(0)
	assert.Equal(t, 1, v)
	v, _ = clone.Get(0)
	assert.Equal(t, 99, v)
}

func TestMapEntriesRestartable(t *testing.T) {
	m := arr.FromValues([]any{"x", "y"})

	for range 2 {
		var keys []any
		for k, v := range m.Entries() {
			keys = append(keys, k)
			_ = v
		}
		assert.Equal(t, []any{0, 1}, keys)
	}
}

func TestMapIsList(t *testing.T) {
	assert.True(t, arr.FromValues([]any{1, 2, 3}).IsList())

	m := arr.FromValues([]any{1, 2, 3})
	m.Forget(1)
	assert.False(t, m.IsList())

	withName := arr.NewMap()
	withName.Set("name", 1)
	assert.False(t, withName.IsList())
}
