// Package fields models block field values produced by the authoring system:
// a closed recursive variant of scalars, lists and nested maps with typed
// path lookup.
package fields

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Kind is the discriminator of Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Map is a field-value map, the shape of block fields and nested groups.
type Map map[string]Value

// Value is a single field value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	list []Value
	m    Map
}

func Null() Value                  { return Value{} }
func NewBool(b bool) Value         { return Value{kind: KindBool, b: b} }
func NewNumber(n float64) Value    { return Value{kind: KindNumber, n: n} }
func NewString(s string) Value     { return Value{kind: KindString, s: s} }
func NewList(items ...Value) Value { return Value{kind: KindList, list: items} }
func NewMap(m Map) Value {
	if m == nil {
		m = Map{}
	}
	return Value{kind: KindMap, m: m}
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) Bool() bool     { return v.kind == KindBool && v.b }
func (v Value) Number() float64 {
	if v.kind == KindNumber {
		return v.n
	}
	return 0
}

// List returns list items, nil for any other kind.
func (v Value) List() []Value {
	if v.kind == KindList {
		return v.list
	}
	return nil
}

// Map returns nested map, nil for any other kind.
func (v Value) Map() Map {
	if v.kind == KindMap {
		return v.m
	}
	return nil
}

// Text returns string form of scalar values, empty string for null and
// composite values.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindList, KindMap:
		data, _ := json.Marshal(v)
		return string(data)
	default:
		return v.Text()
	}
}

// Truthy follows the authoring runtime rules: null, false, 0, NaN and empty
// string are false, everything else (including empty lists and maps) is true.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n != 0 && !math.IsNaN(v.n)
	case KindString:
		return v.s != ""
	case KindList, KindMap:
		return true
	default:
		return false
	}
}

// Equal is strict equality for scalars. Composite values are never equal
// to anything, including themselves, same as identity comparison of
// separately decoded documents.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindString:
		return v.s == o.s
	default:
		return false
	}
}

// Get returns direct child of a map value.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	c, ok := v.m[key]
	return c, ok
}

// Lookup walks dot separated path. Numeric segments index lists. Empty
// segments are ignored so "a..b" is the same as "a.b".
func (v Value) Lookup(path string) (Value, bool) {
	cur := v
	for seg := range strings.SplitSeq(path, ".") {
		if seg == "" {
			continue
		}
		switch cur.kind {
		case KindMap:
			next, ok := cur.m[seg]
			if !ok {
				return Value{}, false
			}
			cur = next
		case KindList:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(cur.list) {
				return Value{}, false
			}
			cur = cur.list[i]
		default:
			return Value{}, false
		}
	}
	return cur, true
}

// Lookup walks dot separated path starting at the map.
func (m Map) Lookup(path string) (Value, bool) {
	return NewMap(m).Lookup(path)
}

// Native converts value into plain Go values (nil, bool, float64, string,
// []any, map[string]any) suitable for templates and JSON.
func (v Value) Native() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Native()
		}
		return out
	case KindMap:
		return v.m.Native()
	default:
		return nil
	}
}

// Native converts map into map[string]any.
func (m Map) Native() map[string]any {
	out := make(map[string]any, len(m))
	for k, item := range m {
		out[k] = item.Native()
	}
	return out
}

// Keys returns sorted map keys.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FromNative converts decoded JSON/YAML values into Value.
func FromNative(in any) (Value, error) {
	switch t := in.(type) {
	case nil:
		return Value{}, nil
	case bool:
		return NewBool(t), nil
	case string:
		return NewString(t), nil
	case float64:
		return NewNumber(t), nil
	case float32:
		return NewNumber(float64(t)), nil
	case int:
		return NewNumber(float64(t)), nil
	case int64:
		return NewNumber(float64(t)), nil
	case uint64:
		return NewNumber(float64(t)), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("bad number %q: %w", t, err)
		}
		return NewNumber(n), nil
	case []any:
		items := make([]Value, 0, len(t))
		for i, item := range t {
			iv, err := FromNative(item)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items = append(items, iv)
		}
		return NewList(items...), nil
	case map[string]any:
		m := make(Map, len(t))
		for k, item := range t {
			iv, err := FromNative(item)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			m[k] = iv
		}
		return NewMap(m), nil
	case Value:
		return t, nil
	case Map:
		return NewMap(t), nil
	default:
		return Value{}, fmt.Errorf("unsupported field value type %T", in)
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindMap:
		return json.Marshal(v.m)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return json.Marshal(v.Native())
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	nv, err := FromNative(raw)
	if err != nil {
		return err
	}
	*v = nv
	return nil
}

func (m *Map) UnmarshalJSON(data []byte) error {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	switch v.kind {
	case KindMap:
		*m = v.m
	case KindNull:
		*m = nil
	default:
		return fmt.Errorf("expected object, got %s", v.kind)
	}
	return nil
}

func (v Value) MarshalYAML() (any, error) {
	return v.Native(), nil
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	nv, err := FromNative(normalizeYAML(raw))
	if err != nil {
		return err
	}
	*v = nv
	return nil
}

func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	var v Value
	if err := v.UnmarshalYAML(node); err != nil {
		return err
	}
	switch v.kind {
	case KindMap:
		*m = v.m
	case KindNull:
		*m = nil
	default:
		return fmt.Errorf("line %d: expected mapping, got %s", node.Line, v.kind)
	}
	return nil
}

// yaml.v3 decodes mappings with non string keys into map[any]any.
func normalizeYAML(in any) any {
	switch t := in.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalizeYAML(item)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = normalizeYAML(item)
		}
		return t
	default:
		return in
	}
}
