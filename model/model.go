package model

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/AEngine/entity/arr"
)

// ErrUndeclaredField is returned when Get, Set or Delete is attempted on
// a field name outside the schema's declared set.
var ErrUndeclaredField = errors.New("model: undeclared field")

var jsonAPI = jsoniter.Config{EscapeHTML: false, SortMapKeys: true}.Froze()

// Field declares one named slot of a schema together with its default
// value. Defaults are structurally copied into each new record, so a
// slice or map default is never shared between instances.
type Field struct {
	Name    string
	Default any
}

// Schema is the fixed, per-type field table of a record. The declared
// set is closed at definition time: records built from a schema accept
// exactly these names, nothing else.
type Schema struct {
	name     string
	order    []string
	defaults map[string]any
}

// NewSchema declares a record type with the given fields. A repeated
// field name keeps its first position and takes the later default.
func NewSchema(name string, fields ...Field) *Schema {
	s := &Schema{
		name:     name,
		defaults: make(map[string]any, len(fields)),
	}
	for _, f := range fields {
		if _, seen := s.defaults[f.Name]; !seen {
			s.order = append(s.order, f.Name)
		}
		s.defaults[f.Name] = f.Default
	}
	return s
}

// Name returns the schema's type name.
func (s *Schema) Name() string { return s.name }

// Fields returns the declared field names in declaration order.
func (s *Schema) Fields() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Declares reports whether name is part of the declared set.
func (s *Schema) Declares(name string) bool {
	_, ok := s.defaults[name]
	return ok
}

// New builds a record with every field at its default.
func (s *Schema) New() *Model {
	m := &Model{schema: s, values: make(map[string]any, len(s.order))}
	for _, name := range s.order {
		m.values[name] = copyValue(s.defaults[name])
	}
	return m
}

// Model is a structured record whose field set is fixed by its schema.
// Get, Set, Has and Delete only operate on declared names; anything else
// is an error, never a silent no-op.
type Model struct {
	schema *Schema
	values map[string]any
}

// Schema returns the record's schema.
func (m *Model) Schema() *Schema { return m.schema }

// Get returns the value of a declared field.
func (m *Model) Get(name string) (any, error) {
	if !m.schema.Declares(name) {
		return nil, m.undeclared(name)
	}
	return m.values[name], nil
}

// MustGet is Get for fields known to be declared; it panics otherwise.
func (m *Model) MustGet(name string) any {
	v, err := m.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Set assigns a declared field and returns the record for chaining.
func (m *Model) Set(name string, value any) (*Model, error) {
	if !m.schema.Declares(name) {
		return nil, m.undeclared(name)
	}
	m.values[name] = value
	return m, nil
}

// Has reports whether name is a declared field of this record's type.
func (m *Model) Has(name string) bool { return m.schema.Declares(name) }

// Delete resets a declared field to its default. The field stays part of
// the declared set.
func (m *Model) Delete(name string) error {
	if !m.schema.Declares(name) {
		return m.undeclared(name)
	}
	m.values[name] = copyValue(m.schema.defaults[name])
	return nil
}

// Clear resets every declared field to its default.
func (m *Model) Clear() {
	for _, name := range m.schema.order {
		m.values[name] = copyValue(m.schema.defaults[name])
	}
}

// ToArray materializes the record into a raw ordered mapping of its
// declared fields, in declaration order.
func (m *Model) ToArray() *arr.Map {
	out := arr.NewMap()
	for _, name := range m.schema.order {
		out.Set(name, m.values[name])
	}
	return out
}

// Clone returns a new record of the same schema with structurally copied
// field values.
func (m *Model) Clone() *Model {
	out := &Model{schema: m.schema, values: make(map[string]any, len(m.values))}
	for _, name := range m.schema.order {
		out.values[name] = copyValue(m.values[name])
	}
	return out
}

// Resolve implements arr.Resolvable so records participate in dotted
// path resolution.
func (m *Model) Resolve(segment string) (any, bool) {
	if !m.schema.Declares(segment) {
		return nil, false
	}
	return m.values[segment], true
}

func (m *Model) undeclared(name string) error {
	return fmt.Errorf("%w: %q is not declared on %s", ErrUndeclaredField, name, m.schema.name)
}

// ─────────────────────────────────────────────────────────────────────────────
// Serialization
// ─────────────────────────────────────────────────────────────────────────────

// MarshalJSON renders the declared fields as a JSON object in declaration
// order.
func (m *Model) MarshalJSON() ([]byte, error) { return m.encodeJSON() }

// ToJSON renders the record as JSON. Passing true escapes non-ASCII text
// as \uXXXX sequences (off by default).
func (m *Model) ToJSON(escapeUnicode ...bool) ([]byte, error) {
	b, err := m.encodeJSON()
	if err != nil {
		return nil, err
	}
	if len(escapeUnicode) > 0 && escapeUnicode[0] {
		b = escapeNonASCII(b)
	}
	return b, nil
}

// String returns the JSON rendering of the declared fields. It implements
// fmt.Stringer.
func (m *Model) String() string {
	b, err := m.encodeJSON()
	if err != nil {
		return fmt.Sprintf("%s{%v}", m.schema.name, m.values)
	}
	return string(b)
}

func (m *Model) encodeJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.schema.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		ek, err := jsonAPI.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(ek)
		buf.WriteByte(':')
		ev, err := jsonAPI.Marshal(m.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(ev)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML renders the declared fields as an ordered YAML mapping.
func (m *Model) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range m.schema.order {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: name}
		value := &yaml.Node{}
		if err := value.Encode(m.values[name]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// ToYAML renders the record as YAML in declaration order.
func (m *Model) ToYAML() ([]byte, error) {
	node, err := m.MarshalYAML()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// escapeNonASCII rewrites every rune above 0x7F in a JSON document as a
// \uXXXX escape (surrogate pairs beyond the basic plane).
func escapeNonASCII(b []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(b))
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r < utf8.RuneSelf {
			out.WriteByte(b[i])
			i++
			continue
		}
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&out, `\u%04x\u%04x`, hi, lo)
		} else {
			fmt.Fprintf(&out, `\u%04x`, r)
		}
		i += size
	}
	return out.Bytes()
}

// copyValue copies a field value structurally: slices, maps and ordered
// maps are duplicated recursively, records are cloned, scalars pass
// through.
func copyValue(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = copyValue(item)
		}
		return out
	case *arr.Map:
		out := arr.NewMap()
		val.Each(func(k, item any) bool {
			out.Set(k, copyValue(item))
			return true
		})
		return out
	case *Model:
		return val.Clone()
	default:
		return v
	}
}
