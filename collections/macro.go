package collections

import (
	"fmt"
	"sync"
)

// MacroFunc is the signature of a registered extension operation. The
// collection the call was dispatched on is bound as the first argument.
type MacroFunc func(c *Collection, args ...any) (any, error)

// MacroRegistry is a named-operation table consulted when an unrecognized
// operation name is invoked through [Collection.Call]. Registries form a
// chain: a lookup that misses on a registry continues on its parent, the
// way a derived type falls back to its ancestors. Safe for concurrent
// use.
type MacroRegistry struct {
	parent *MacroRegistry
	mu     sync.RWMutex
	macros map[string]MacroFunc
}

// NewMacroRegistry creates an empty registry, optionally chained to a
// parent consulted on lookup misses.
func NewMacroRegistry(parent ...*MacroRegistry) *MacroRegistry {
	r := &MacroRegistry{macros: make(map[string]MacroFunc)}
	if len(parent) > 0 {
		r.parent = parent[0]
	}
	return r
}

// Register adds a named macro, replacing any existing one with that name.
func (r *MacroRegistry) Register(name string, fn MacroFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.macros[name] = fn
}

// Has reports whether name resolves on this registry or an ancestor.
func (r *MacroRegistry) Has(name string) bool {
	_, ok := r.lookup(name)
	return ok
}

// Flush removes every macro registered directly on this registry.
// Ancestors are untouched.
func (r *MacroRegistry) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.macros = make(map[string]MacroFunc)
}

func (r *MacroRegistry) lookup(name string) (MacroFunc, bool) {
	for reg := r; reg != nil; reg = reg.parent {
		reg.mu.RLock()
		fn, ok := reg.macros[name]
		reg.mu.RUnlock()
		if ok {
			return fn, true
		}
	}
	return nil, false
}

// defaultMacros is the registry used by collections not scoped to their
// own via [Collection.WithMacros].
var defaultMacros = NewMacroRegistry()

// RegisterMacro adds a named macro to the default registry.
//
//	collections.RegisterMacro("evens", func(c *collections.Collection, _ ...any) (any, error) {
//	    return c.Filter(func(v, _ any) bool { return v.(int)%2 == 0 }), nil
//	})
//
//	evens, _ := collections.Of(1, 2, 3, 4).Call("evens")
func RegisterMacro(name string, fn MacroFunc) { defaultMacros.Register(name, fn) }

// HasMacro reports whether name is registered on the default registry.
func HasMacro(name string) bool { return defaultMacros.Has(name) }

// FlushMacros removes all macros from the default registry. Intended for
// tests.
func FlushMacros() { defaultMacros.Flush() }

// WithMacros returns a collection sharing this one's backing store but
// dispatching unrecognized operations through the given registry.
func (c *Collection) WithMacros(r *MacroRegistry) *Collection {
	return &Collection{items: c.items, macros: r}
}

// Call dispatches a named operation with no built-in meaning through the
// collection's macro registry and its ancestors. An unregistered name
// yields ErrUnknownOperation.
func (c *Collection) Call(name string, args ...any) (any, error) {
	registry := c.macros
	if registry == nil {
		registry = defaultMacros
	}
	fn, ok := registry.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	return fn(c, args...)
}
