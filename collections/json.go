package collections

import (
	"bytes"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// jsonAPI is the value-level codec. HTML escaping is off so the textual
// form matches the raw content.
var jsonAPI = jsoniter.Config{EscapeHTML: false, SortMapKeys: true}.Froze()

// EncodeOption adjusts the JSON rendering of a Collection.
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	escapeUnicode bool
}

// EscapeUnicode renders every non-ASCII character as a \uXXXX escape.
// Off by default.
func EscapeUnicode() EncodeOption {
	return func(o *encodeOptions) { o.escapeUnicode = true }
}

// ToJSON renders the collection as JSON: a JSON array when the keys are
// exactly 0 … n-1, a JSON object in insertion order otherwise. Nested
// Collections and models render recursively.
func (c *Collection) ToJSON(opts ...EncodeOption) ([]byte, error) {
	var o encodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	b, err := c.encodeJSON()
	if err != nil {
		return nil, err
	}
	if o.escapeUnicode {
		b = EscapeNonASCII(b)
	}
	return b, nil
}

// MarshalJSON implements json.Marshaler with default options.
func (c *Collection) MarshalJSON() ([]byte, error) { return c.encodeJSON() }

// String returns the JSON rendering. It implements fmt.Stringer.
func (c *Collection) String() string {
	b, err := c.encodeJSON()
	if err != nil {
		return fmt.Sprintf("%v", c.items.Values())
	}
	return string(b)
}

func (c *Collection) encodeJSON() ([]byte, error) {
	var buf bytes.Buffer
	if c.items.IsList() {
		buf.WriteByte('[')
		for i, v := range c.items.Values() {
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
	first := true
	var encodeErr error
	c.items.Each(func(k, v any) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		ek, err := jsonAPI.Marshal(cast.ToString(k))
		if err != nil {
			encodeErr = err
			return false
		}
		buf.Write(ek)
		buf.WriteByte(':')
		ev, err := jsonAPI.Marshal(v)
		if err != nil {
			encodeErr = err
			return false
		}
		buf.Write(ev)
		return true
	})
	if encodeErr != nil {
		return nil, encodeErr
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EscapeNonASCII rewrites every rune above 0x7F in a JSON document as a
// \uXXXX escape (surrogate pairs beyond the basic plane). Non-ASCII bytes
// only occur inside JSON strings, so a whole-document pass is safe.
func EscapeNonASCII(b []byte) []byte {
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

// ─────────────────────────────────────────────────────────────────────────────
// YAML
// ─────────────────────────────────────────────────────────────────────────────

// ToYAML renders the collection as YAML, preserving entry order.
func (c *Collection) ToYAML() ([]byte, error) {
	node, err := c.yamlNode()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// MarshalYAML implements yaml.Marshaler so nested collections render in
// order.
func (c *Collection) MarshalYAML() (any, error) { return c.yamlNode() }

func (c *Collection) yamlNode() (*yaml.Node, error) {
	if c.items.IsList() {
		node := &yaml.Node{Kind: yaml.SequenceNode}
		for _, v := range c.items.Values() {
			child, err := yamlValue(v)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	}
	node := &yaml.Node{Kind: yaml.MappingNode}
	var buildErr error
	c.items.Each(func(k, v any) bool {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: cast.ToString(k)}
		child, err := yamlValue(v)
		if err != nil {
			buildErr = err
			return false
		}
		node.Content = append(node.Content, key, child)
		return true
	})
	if buildErr != nil {
		return nil, buildErr
	}
	return node, nil
}

func yamlValue(v any) (*yaml.Node, error) {
	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, err
	}
	return node, nil
}
