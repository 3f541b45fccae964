// Package jsliteral parses relaxed JavaScript object/array literals into a
// tagged Value tree. It accepts a superset of JSON as emitted by minifiers:
// unquoted keys, single-quoted strings, trailing commas, comments, and the
// `void 0` / `undefined` spellings of null. It never evaluates code.
package jsliteral

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single key/value pair of an object, in source order.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable literal value. The zero Value is null.
type Value struct {
	kind    Kind
	b       bool
	num     float64
	raw     string // number literal text or string contents
	items   []Value
	members []Member
	index   map[string]int // key -> position in members
}

// NullValue returns the null value.
func NullValue() Value { return Value{} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: String, raw: s} }

// NumberValue wraps a number. literal is the source text used by String();
// if empty, the shortest decimal form of f is used.
func NumberValue(f float64, literal string) Value {
	if literal == "" {
		literal = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return Value{kind: Number, num: f, raw: literal}
}

// ArrayValue wraps a sequence of values.
func ArrayValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: Array, items: items}
}

// ObjectValue builds an object from members. Duplicate keys keep the
// position of the first occurrence and the value of the last.
func ObjectValue(members ...Member) Value {
	v := Value{kind: Object, members: make([]Member, 0, len(members)), index: make(map[string]int, len(members))}
	for _, m := range members {
		v.set(m.Key, m.Value)
	}
	return v
}

func (v *Value) set(key string, val Value) {
	if i, ok := v.index[key]; ok {
		v.members[i].Value = val
		return
	}
	v.index[key] = len(v.members)
	v.members = append(v.members, Member{Key: key, Value: val})
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == Null }

// Str returns the string contents when v is a String.
func (v Value) Str() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.raw, true
}

// Bool returns the boolean when v is a Bool.
func (v Value) Bool() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.b, true
}

// Num returns the numeric value when v is a Number.
func (v Value) Num() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	return v.num, true
}

// Len returns the number of elements of an Array or members of an Object.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.items)
	case Object:
		return len(v.members)
	default:
		return 0
	}
}

// Index returns the i-th element of an Array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != Array || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Items returns the elements of an Array, or nil.
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	return v.items
}

// Get returns the member named key of an Object.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	i, ok := v.index[key]
	if !ok {
		return Value{}, false
	}
	return v.members[i].Value, true
}

// Keys returns the member names of an Object in source order.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns the members of an Object in source order.
func (v Value) Members() []Member {
	if v.kind != Object {
		return nil
	}
	return v.members
}

// String returns the scalar string form of v: string contents as-is,
// numbers as their source literal, booleans as true/false, null as the
// empty string, and containers as compact JSON.
func (v Value) String() string {
	switch v.kind {
	case Null:
		return ""
	case Bool:
		return strconv.FormatBool(v.b)
	case Number, String:
		return v.raw
	default:
		b, err := v.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// Interface converts v into plain Go values: nil, bool, float64, string,
// []any and map[string]any. This is the shape gojq and encoding/json expect.
func (v Value) Interface() any {
	switch v.kind {
	case Bool:
		return v.b
	case Number:
		return v.num
	case String:
		return v.raw
	case Array:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes v as JSON, preserving object member order.
func (v Value) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	if err := v.writeJSON(&sb); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func (v Value) writeJSON(sb *strings.Builder) error {
	switch v.kind {
	case Null:
		sb.WriteString("null")
	case Bool:
		sb.WriteString(strconv.FormatBool(v.b))
	case Number:
		b, err := json.Marshal(v.num)
		if err != nil {
			return err
		}
		sb.Write(b)
	case String:
		sb.WriteString(Quote(v.raw))
	case Array:
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := item.writeJSON(sb); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case Object:
		sb.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(Quote(m.Key))
			sb.WriteByte(':')
			if err := m.Value.writeJSON(sb); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
	}
	return nil
}
