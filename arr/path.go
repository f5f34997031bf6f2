package arr

import (
	"reflect"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// ─────────────────────────────────────────────────────────────────────────────
// Dotted-path resolution over nested containers
//
// Paths are dot-separated segments; a segment of "*" fans the remaining
// path out over every element of the current container. Traversal is
// read-only: a missing segment yields the caller-supplied default (or nil)
// and never creates intermediate containers.
//
//	Get(m, "user.address.city")          // "London"
//	Get(users, "*.name")                 // ["Alice", "Bob"]
//	Get(m, "user.missing", "default")    // "default"
// ─────────────────────────────────────────────────────────────────────────────

// Wildcard is the path segment that fans resolution out across every
// element of the current container.
const Wildcard = "*"

// Resolvable lets container types participate in path resolution without
// this package knowing their concrete shape.
type Resolvable interface {
	// Resolve returns the value stored under a single path segment and
	// whether the segment exists.
	Resolve(segment string) (any, bool)
}

// Get resolves a dotted path against target and returns the value, or
// def[0] (nil when absent) if any non-wildcard segment is missing.
func Get(target any, path string, def ...any) any {
	if path == "" {
		return target
	}
	segments := strings.Split(path, ".")
	segs := make([]any, len(segments))
	for i, s := range segments {
		segs[i] = s
	}
	return GetSegments(target, segs, def...)
}

// GetSegments resolves a pre-split path against target. Segments are
// strings in the common case but may be any stringable value.
func GetSegments(target any, segments []any, def ...any) any {
	fallback := func() any {
		if len(def) > 0 {
			return def[0]
		}
		return nil
	}

	current := target
	for i, raw := range segments {
		seg := cast.ToString(raw)
		if seg == Wildcard {
			elems, ok := enumerate(current)
			if !ok {
				return fallback()
			}
			rest := segments[i+1:]
			out := make([]any, 0, len(elems))
			for _, el := range elems {
				if len(rest) == 0 {
					out = append(out, el)
					continue
				}
				out = append(out, GetSegments(el, rest, def...))
			}
			if containsWildcard(rest) {
				return Collapse(out)
			}
			return out
		}

		next, ok := step(current, seg)
		if !ok {
			return fallback()
		}
		current = next
	}
	return current
}

// step descends one non-wildcard segment into current.
func step(current any, seg string) (any, bool) {
	switch c := current.(type) {
	case nil:
		return nil, false
	case map[string]any:
		v, ok := c[seg]
		return v, ok
	case map[any]any:
		if v, ok := c[seg]; ok {
			return v, true
		}
		if n, err := cast.ToIntE(seg); err == nil {
			v, ok := c[n]
			return v, ok
		}
		return nil, false
	case *Map:
		if v, ok := c.Get(seg); ok {
			return v, true
		}
		if n, err := cast.ToIntE(seg); err == nil {
			return c.Get(n)
		}
		return nil, false
	case []any:
		n, err := cast.ToIntE(seg)
		if err != nil || n < 0 || n >= len(c) {
			return nil, false
		}
		return c[n], true
	case Resolvable:
		return c.Resolve(seg)
	case Mappable:
		return step(c.All(), seg)
	}
	return reflectStep(current, seg)
}

// reflectStep handles plain structs, typed maps and typed slices.
func reflectStep(current any, seg string) (any, bool) {
	rv := reflect.ValueOf(current)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		f := rv.FieldByName(seg)
		if !f.IsValid() && seg != "" {
			f = rv.FieldByName(strings.ToUpper(seg[:1]) + seg[1:])
		}
		if !f.IsValid() || !f.CanInterface() {
			return nil, false
		}
		return f.Interface(), true
	case reflect.Map:
		kv := reflect.ValueOf(seg)
		if !kv.Type().AssignableTo(rv.Type().Key()) {
			n, err := cast.ToIntE(seg)
			if err != nil {
				return nil, false
			}
			kv = reflect.ValueOf(n)
			if !kv.Type().AssignableTo(rv.Type().Key()) {
				return nil, false
			}
		}
		v := rv.MapIndex(kv)
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Slice, reflect.Array:
		n, err := cast.ToIntE(seg)
		if err != nil || n < 0 || n >= rv.Len() {
			return nil, false
		}
		return rv.Index(n).Interface(), true
	}
	return nil, false
}

// enumerate lists the element values of a container for wildcard fan-out.
func enumerate(current any) ([]any, bool) {
	switch c := current.(type) {
	case nil:
		return nil, false
	case []any:
		return c, true
	case *Map:
		return c.Values(), true
	case Mappable:
		return c.All().Values(), true
	case map[string]any:
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = c[k]
		}
		return out, true
	}
	rv := reflect.ValueOf(current)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	}
	return nil, false
}

func containsWildcard(segments []any) bool {
	for _, s := range segments {
		if cast.ToString(s) == Wildcard {
			return true
		}
	}
	return false
}

// Has reports whether the dotted path resolves on target.
func Has(target any, path string) bool {
	marker := new(struct{})
	return Get(target, path, marker) != any(marker)
}

// HasAll reports whether every path resolves on target.
func HasAll(target any, paths ...string) bool {
	for _, p := range paths {
		if !Has(target, p) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one path resolves on target.
func HasAny(target any, paths ...string) bool {
	for _, p := range paths {
		if Has(target, p) {
			return true
		}
	}
	return false
}
