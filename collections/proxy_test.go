package collections_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AEngine/entity/collections"
)

type account struct {
	name   string
	active bool
}

func (a account) DisplayName() string { return strings.ToUpper(a.name) }

func (a account) Active() bool { return a.active }

func (a account) Rename(name string) account { return account{name: name, active: a.active} }

func (a account) Describe(prefix string, notes ...any) string {
	out := prefix + ":" + a.name
	for _, n := range notes {
		out += fmt.Sprintf(" %v", n)
	}
	return out
}

func (a account) Validate() error {
	if a.name == "" {
		return errors.New("account has no name")
	}
	return nil
}

func TestProxiesListsNames(t *testing.T) {
	names := collections.Proxies()
	assert.Contains(t, names, "map")
	assert.Contains(t, names, "sum")
	assert.IsIncreasing(t, names)
}

func TestProxyUnknownOperation(t *testing.T) {
	_, err := collections.Of(1).Proxy("explode")
	require.ErrorIs(t, err, collections.ErrUnknownProxy)
}

func TestProxyMapInvokesMethod(t *testing.T) {
	c := collections.Of(account{name: "alice"}, account{name: "bob"})

	p, err := c.Proxy("map")
	require.NoError(t, err)

	out, err := p.Call("DisplayName")
	require.NoError(t, err)
	assert.Equal(t, []any{"ALICE", "BOB"}, out.(*collections.Collection).All().Values())
}

func TestProxyMapForwardsArguments(t *testing.T) {
	c := collections.Of(account{name: "alice"})

	p, err := c.Proxy("map")
	require.NoError(t, err)

	out, err := p.Call("Rename", "carol")
	require.NoError(t, err)
	renamed := out.(*collections.Collection).All().Values()[0].(account)
	assert.Equal(t, "carol", renamed.name)
}

func TestProxyFilterAndReject(t *testing.T) {
	c := collections.Of(
		account{name: "alice", active: true},
		account{name: "bob"},
	)

	p, err := c.Proxy("filter")
	require.NoError(t, err)
	out, err := p.Call("Active")
	require.NoError(t, err)
	assert.Equal(t, 1, out.(*collections.Collection).Count())

	p, err = c.Proxy("reject")
	require.NoError(t, err)
	out, err = p.Call("Active")
	require.NoError(t, err)
	kept := out.(*collections.Collection).All().Values()[0].(account)
	assert.Equal(t, "bob", kept.name)
}

func TestProxyPropagatesMethodError(t *testing.T) {
	c := collections.Of(account{name: "alice"}, account{})

	p, err := c.Proxy("each")
	require.NoError(t, err)

	_, err = p.Call("Validate")
	require.EqualError(t, err, "account has no name")
}

func TestProxyVariadicMethod(t *testing.T) {
	c := collections.Of(account{name: "alice"})
	p, err := c.Proxy("map")
	require.NoError(t, err)

	out, err := p.Call("Describe", "user")
	require.NoError(t, err)
	assert.Equal(t, "user:alice", out.(*collections.Collection).Get(0))

	// A nil arg at a variadic position takes the element type's zero value.
	out, err = p.Call("Describe", "user", nil)
	require.NoError(t, err)
	assert.Equal(t, "user:alice <nil>", out.(*collections.Collection).Get(0))

	// Too few fixed arguments is an error, not a panic.
	_, err = p.Call("Describe")
	require.ErrorIs(t, err, collections.ErrInvalidArgument)
}

func TestProxyMissingMethod(t *testing.T) {
	p, err := collections.Of(account{name: "alice"}).Proxy("map")
	require.NoError(t, err)

	_, err = p.Call("NoSuchMethod")
	require.ErrorIs(t, err, collections.ErrInvalidArgument)
}

func TestProxyValueOperations(t *testing.T) {
	c := collections.Of(
		map[string]any{"name": "desk", "price": 200},
		map[string]any{"name": "chair", "price": 100},
	)

	p, err := c.Proxy("sum")
	require.NoError(t, err)
	total, err := p.Call("price")
	require.NoError(t, err)
	assert.InDelta(t, 300.0, total, 1e-9)

	p, err = c.Proxy("sortBy")
	require.NoError(t, err)
	out, err := p.Call("price")
	require.NoError(t, err)
	first := out.(*collections.Collection).All().Values()[0].(map[string]any)
	assert.Equal(t, "chair", first["name"])

	p, err = c.Proxy("contains")
	require.NoError(t, err)
	found, err := p.Call("price")
	require.NoError(t, err)
	assert.Equal(t, true, found)
}

func TestRegisterProxyExtendsNameSet(t *testing.T) {
	_, err := collections.Of(1).Proxy("pluckEach")
	require.ErrorIs(t, err, collections.ErrUnknownProxy)

	collections.RegisterProxy("pluckEach")

	c := collections.Of(
		map[string]any{"sku": "A-1"},
		map[string]any{"sku": "B-2"},
	)
	p, err := c.Proxy("pluckEach")
	require.NoError(t, err)
	out, err := p.Call("sku")
	require.NoError(t, err)
	assert.Equal(t, []any{"A-1", "B-2"}, out.(*collections.Collection).All().Values())
}
