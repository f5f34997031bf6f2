package arr

import (
	"bytes"
	"fmt"
	"iter"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
)

// Map is an insertion-ordered mapping from keys (int or string) to values
// of any type. It is the raw backing store shared by the helpers in this
// package and by collections.Collection.
//
// Keys are normalised on the way in: every Go integer kind collapses to
// int, everything else is rendered as a string. Setting an existing key
// overwrites its value but keeps the key's original position.
type Map struct {
	keys []any
	vals map[any]any
	next int // next integer key handed out by Append
}

// NewMap creates an empty ordered map.
func NewMap() *Map {
	return &Map{vals: make(map[any]any)}
}

// FromValues creates a list-shaped map: values keyed 0 … len-1.
func FromValues(values []any) *Map {
	m := &Map{
		keys: make([]any, len(values)),
		vals: make(map[any]any, len(values)),
		next: len(values),
	}
	for i, v := range values {
		m.keys[i] = i
		m.vals[i] = v
	}
	return m
}

// NormalizeKey folds a candidate key into the canonical int-or-string form.
// Integer kinds (including integral floats) become int; everything else is
// stringified.
func NormalizeKey(key any) any {
	switch k := key.(type) {
	case int:
		return k
	case string:
		return k
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return cast.ToInt(k)
	case float32, float64:
		f := cast.ToFloat64(k)
		if f == float64(int(f)) {
			return int(f)
		}
		return cast.ToString(k)
	default:
		return cast.ToString(k)
	}
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Get returns the value stored under key together with a presence flag.
func (m *Map) Get(key any) (any, bool) {
	v, ok := m.vals[NormalizeKey(key)]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key any) bool {
	_, ok := m.vals[NormalizeKey(key)]
	return ok
}

// Set stores value under key. A new key is appended at the end; an
// existing key keeps its position and only its value changes.
func (m *Map) Set(key, value any) {
	k := NormalizeKey(key)
	if _, ok := m.vals[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.vals[k] = value
	if i, isInt := k.(int); isInt && i >= m.next {
		m.next = i + 1
	}
}

// Append stores value under the next unused non-negative integer key,
// mirroring list-append semantics, and returns that key.
func (m *Map) Append(value any) int {
	k := m.next
	m.Set(k, value)
	return k
}

// Forget removes key and reports whether it was present. Removing the
// highest integer key releases it, so a later Append reuses it.
func (m *Map) Forget(key any) bool {
	k := NormalizeKey(key)
	if _, ok := m.vals[k]; !ok {
		return false
	}
	delete(m.vals, k)
	for i, existing := range m.keys {
		if existing == k {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	if i, isInt := k.(int); isInt && i == m.next-1 {
		m.next = m.maxIntKey() + 1
	}
	return true
}

// maxIntKey returns the highest integer key present, or -1 when there is
// none.
func (m *Map) maxIntKey() int {
	highest := -1
	for _, k := range m.keys {
		if i, ok := k.(int); ok && i > highest {
			highest = i
		}
	}
	return highest
}

// Clear removes every entry and resets the append counter.
func (m *Map) Clear() {
	m.keys = m.keys[:0]
	m.vals = make(map[any]any)
	m.next = 0
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []any {
	out := make([]any, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in insertion order.
func (m *Map) Values() []any {
	out := make([]any, len(m.keys))
	for i, k := range m.keys {
		out[i] = m.vals[k]
	}
	return out
}

// At returns the key and value at position i (insertion order).
func (m *Map) At(i int) (any, any) {
	k := m.keys[i]
	return k, m.vals[k]
}

// Clone returns a shallow copy: a fresh backing store holding the same
// value references.
func (m *Map) Clone() *Map {
	out := &Map{
		keys: make([]any, len(m.keys)),
		vals: make(map[any]any, len(m.keys)),
		next: m.next,
	}
	copy(out.keys, m.keys)
	for k, v := range m.vals {
		out.vals[k] = v
	}
	return out
}

// Each calls fn(key, value) in insertion order, stopping early when fn
// returns false.
func (m *Map) Each(fn func(key, value any) bool) {
	for _, k := range m.keys {
		if !fn(k, m.vals[k]) {
			return
		}
	}
}

// Entries returns a restartable iterator over key/value pairs in
// insertion order.
func (m *Map) Entries() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for _, k := range m.keys {
			if !yield(k, m.vals[k]) {
				return
			}
		}
	}
}

// IsList reports whether the keys are exactly 0 … Len()-1 in order.
func (m *Map) IsList() bool {
	for i, k := range m.keys {
		if k != i {
			return false
		}
	}
	return true
}

var jsonAPI = jsoniter.Config{EscapeHTML: false, SortMapKeys: true}.Froze()

// MarshalJSON renders the map as a JSON array when it is list-shaped and
// as an object in insertion order otherwise.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if m.IsList() {
		buf.WriteByte('[')
		for i, v := range m.Values() {
			if i > 0 {
				buf.WriteByte(',')
			}
			ev, err := jsonAPI.Marshal(v)
			if err != nil {
				return nil, err
			}
			buf.Write(ev)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	}
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		ek, err := jsonAPI.Marshal(cast.ToString(k))
		if err != nil {
			return nil, err
		}
		buf.Write(ek)
		buf.WriteByte(':')
		ev, err := jsonAPI.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(ev)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String returns the JSON rendering. It implements fmt.Stringer.
func (m *Map) String() string {
	b, err := m.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("%v", m.vals)
	}
	return string(b)
}

// Mappable is implemented by container types (such as a Collection) that
// can expose their backing ordered map to the helpers in this package.
type Mappable interface {
	All() *Map
}
