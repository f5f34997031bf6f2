package collections

import (
	"strings"

	"github.com/AEngine/entity/arr"
	"github.com/spf13/cast"
)

// ─────────────────────────────────────────────────────────────────────────────
// Search & lookup
// ─────────────────────────────────────────────────────────────────────────────

// First returns the first value, optionally the first matching
// fn(value, key), or def[0] (nil) when nothing matches.
func (c *Collection) First(fn func(value, key any) bool, def ...any) any {
	var fallback any
	if len(def) > 0 {
		fallback = def[0]
	}
	return arr.First(c.items, fn, fallback)
}

// FirstOrFail returns the first value matching fn, or ErrNoMatchingItems.
func (c *Collection) FirstOrFail(fn func(value, key any) bool) (any, error) {
	marker := new(struct{})
	v := c.First(fn, marker)
	if v == any(marker) {
		return nil, ErrNoMatchingItems
	}
	return v, nil
}

// FirstWhere returns the first item whose value at key passes the
// operator comparison, or nil. Argument handling matches
// [Collection.Where].
func (c *Collection) FirstWhere(key string, args ...any) any {
	op, value, bare := whereArgs(args)
	return c.First(func(v, _ any) bool {
		retrieved := arr.Get(v, key)
		if bare {
			return truthy(retrieved)
		}
		return Compare(retrieved, op, value)
	})
}

// Last returns the last value, optionally the last matching
// fn(value, key), or def[0] (nil) when nothing matches.
func (c *Collection) Last(fn func(value, key any) bool, def ...any) any {
	var fallback any
	if len(def) > 0 {
		fallback = def[0]
	}
	return arr.Last(c.items, fn, fallback)
}

// Search returns the key of the first entry loosely equal to value, or
// nil. value may also be a predicate func(value, key) bool. strict[0]
// switches to type-exact equality.
func (c *Collection) Search(value any, strict ...bool) any {
	equal := looseEqual
	if len(strict) > 0 && strict[0] {
		equal = strictEqual
	}
	pred, isPred := value.(func(any, any) bool)
	var found any
	c.items.Each(func(k, v any) bool {
		if isPred {
			if pred(v, k) {
				found = k
				return false
			}
			return true
		}
		if equal(v, value) {
			found = k
			return false
		}
		return true
	})
	return found
}

// Contains reports whether the collection holds a matching entry:
//
//	c.Contains(fn)                 // predicate func(value, key) bool
//	c.Contains(value)              // loose value containment
//	c.Contains(key, value)         // loose comparison at a path
//	c.Contains(key, op, value)     // operator comparison at a path
func (c *Collection) Contains(args ...any) bool {
	return c.contains(args, false)
}

// ContainsStrict is [Collection.Contains] with type-exact equality.
func (c *Collection) ContainsStrict(args ...any) bool {
	return c.contains(args, true)
}

func (c *Collection) contains(args []any, strict bool) bool {
	pred := containsPredicate(args, strict)
	if pred == nil {
		return false
	}
	found := false
	c.items.Each(func(k, v any) bool {
		if pred(v, k) {
			found = true
			return false
		}
		return true
	})
	return found
}

// Every reports whether every entry matches. Argument handling follows
// [Collection.Contains]; an empty collection satisfies any condition.
func (c *Collection) Every(args ...any) bool {
	pred := containsPredicate(args, false)
	if pred == nil {
		return false
	}
	ok := true
	c.items.Each(func(k, v any) bool {
		if !pred(v, k) {
			ok = false
			return false
		}
		return true
	})
	return ok
}

func containsPredicate(args []any, strict bool) func(v, k any) bool {
	equal := looseEqual
	if strict {
		equal = strictEqual
	}
	switch len(args) {
	case 0:
		return nil
	case 1:
		if fn, ok := args[0].(func(any, any) bool); ok {
			return fn
		}
		target := args[0]
		return func(v, _ any) bool { return equal(v, target) }
	default:
		key := cast.ToString(args[0])
		op, value, bare := whereArgs(args[1:])
		return func(v, _ any) bool {
			retrieved := arr.Get(v, key)
			if bare {
				return truthy(retrieved)
			}
			if strict && (op == "=" || op == "==") {
				op = "==="
			}
			return Compare(retrieved, op, value)
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Conditional pipeline
// ─────────────────────────────────────────────────────────────────────────────

// When calls fn(c) if condition is true and returns the result; otherwise
// returns c unchanged.
func (c *Collection) When(condition bool, fn func(*Collection) *Collection) *Collection {
	if condition {
		return fn(c)
	}
	return c
}

// Unless calls fn(c) if condition is false; otherwise returns c.
func (c *Collection) Unless(condition bool, fn func(*Collection) *Collection) *Collection {
	return c.When(!condition, fn)
}

// WhenEmpty calls fn(c) if c is empty; otherwise returns c.
func (c *Collection) WhenEmpty(fn func(*Collection) *Collection) *Collection {
	return c.When(c.IsEmpty(), fn)
}

// WhenNotEmpty calls fn(c) if c is not empty; otherwise returns c.
func (c *Collection) WhenNotEmpty(fn func(*Collection) *Collection) *Collection {
	return c.When(c.IsNotEmpty(), fn)
}

// Implode joins the values (or the values resolved by the optional key
// spec) into a string using sep.
func (c *Collection) Implode(sep string, specs ...any) string {
	fn := ValueRetriever(specFrom(specs))
	parts := make([]string, 0, c.items.Len())
	c.items.Each(func(_, v any) bool {
		parts = append(parts, cast.ToString(fn(v)))
		return true
	})
	return strings.Join(parts, sep)
}
