package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AEngine/entity/arr"
	"github.com/AEngine/entity/model"
)

func userSchema() *model.Schema {
	return model.NewSchema("User",
		model.Field{Name: "id"},
		model.Field{Name: "name", Default: ""},
		model.Field{Name: "tags", Default: []any{}},
	)
}

func TestSchemaDeclaration(t *testing.T) {
	s := userSchema()

	assert.Equal(t, "User", s.Name())
	assert.Equal(t, []string{"id", "name", "tags"}, s.Fields())
	assert.True(t, s.Declares("name"))
	assert.False(t, s.Declares("email"))
}

func TestSchemaRepeatedFieldKeepsFirstPosition(t *testing.T) {
	s := model.NewSchema("Conf",
		model.Field{Name: "a", Default: 1},
		model.Field{Name: "b", Default: 2},
		model.Field{Name: "a", Default: 9},
	)

	assert.Equal(t, []string{"a", "b"}, s.Fields())
	assert.Equal(t, 9, s.New().MustGet("a"), "later declaration wins the default")
}

func TestModelGetSet(t *testing.T) {
	m := userSchema().New()

	assert.Nil(t, m.MustGet("id"))
	assert.Equal(t, "", m.MustGet("name"))

	_, err := m.Set("name", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", m.MustGet("name"))

	_, err = m.Get("email")
	require.ErrorIs(t, err, model.ErrUndeclaredField)
	_, err = m.Set("email", "a@example.com")
	require.ErrorIs(t, err, model.ErrUndeclaredField)
	require.ErrorIs(t, m.Delete("email"), model.ErrUndeclaredField)
}

func TestModelHasChecksDeclarationNotValue(t *testing.T) {
	m := userSchema().New()

	assert.True(t, m.Has("id"), "declared fields are present even while nil")
	assert.False(t, m.Has("email"))
}

func TestModelDeleteResetsToDefault(t *testing.T) {
	m := userSchema().New()
	_, err := m.Set("name", "Alice")
	require.NoError(t, err)

	require.NoError(t, m.Delete("name"))
	assert.Equal(t, "", m.MustGet("name"))
	assert.True(t, m.Has("name"), "deletion never shrinks the declared set")
}

func TestModelClear(t *testing.T) {
	m := userSchema().New()
	_, err := m.Set("id", 7)
	require.NoError(t, err)
	_, err = m.Set("name", "Alice")
	require.NoError(t, err)

	m.Clear()

	assert.Nil(t, m.MustGet("id"))
	assert.Equal(t, "", m.MustGet("name"))
	assert.Equal(t, []string{"id", "name", "tags"}, m.Schema().Fields())
}

func TestDefaultsAreNotShared(t *testing.T) {
	s := userSchema()
	a, b := s.New(), s.New()

	tags := a.MustGet("tags").([]any)
	_, err := a.Set("tags", append(tags, "admin"))
	require.NoError(t, err)

	assert.Empty(t, b.MustGet("tags"), "mutating one record's default leaves siblings untouched")
}

func TestModelClone(t *testing.T) {
	m := userSchema().New()
	_, err := m.Set("tags", []any{"x"})
	require.NoError(t, err)

	c := m.Clone()
	ctags := c.MustGet("tags").([]any)
	ctags[0] = "y"

	assert.Equal(t, []any{"x"}, m.MustGet("tags"), "clone copies structured values")
}

func TestModelToArrayOrder(t *testing.T) {
	m := userSchema().New()
	_, err := m.Set("name", "Alice")
	require.NoError(t, err)

	out := m.ToArray()
	assert.Equal(t, []any{"id", "name", "tags"}, out.Keys())
	name, ok := out.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Alice", name)
}

func TestModelPathResolution(t *testing.T) {
	m := userSchema().New()
	_, err := m.Set("name", "Alice")
	require.NoError(t, err)

	holder := map[string]any{"user": m}
	assert.Equal(t, "Alice", arr.Get(holder, "user.name"))
	assert.Nil(t, arr.Get(holder, "user.email"))
}

func TestModelJSON(t *testing.T) {
	m := userSchema().New()
	_, err := m.Set("id", 1)
	require.NoError(t, err)
	_, err = m.Set("name", "Алиса")
	require.NoError(t, err)

	b, err := m.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"name":"Алиса","tags":[]}`, string(b))
	assert.Equal(t, string(b), m.String())

	b, err = m.ToJSON(true)
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"name":"Алиса","tags":[]}`, string(b))
}

func TestModelYAML(t *testing.T) {
	m := userSchema().New()
	_, err := m.Set("id", 1)
	require.NoError(t, err)
	_, err = m.Set("name", "Alice")
	require.NoError(t, err)

	b, err := m.ToYAML()
	require.NoError(t, err)
	assert.Equal(t, "id: 1\nname: Alice\ntags: []\n", string(b))
}
