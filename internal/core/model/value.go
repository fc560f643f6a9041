package model

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Kind identifies which member of the Value union is populated.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value is a typed attribute value: a string, number, bool, list of values or
// string-keyed map of values. The zero Value is null.
//
// Values are immutable once built; the accessors return copies of list and
// map contents.
type Value struct {
	kind Kind
	str  string
	num  float64
	flag bool
	list []Value
	dict map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// String builds a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number builds a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int builds a numeric value from an integer.
func Int(i int) Value { return Value{kind: KindNumber, num: float64(i)} }

// Bool builds a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// List builds a list value. An empty list is stored without a backing slice
// so that encoded and decoded empty lists compare equal.
func List(items ...Value) Value {
	if len(items) == 0 {
		return Value{kind: KindList}
	}
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: cp}
}

// Strings builds a list of string values.
func Strings(items ...string) Value {
	vals := make([]Value, len(items))
	for i, s := range items {
		vals[i] = String(s)
	}
	return List(vals...)
}

// Map builds a map value.
func Map(m map[string]Value) Value {
	if len(m) == 0 {
		return Value{kind: KindMap}
	}
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: KindMap, dict: cp}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsInt truncates a numeric value towards zero.
func (v Value) AsInt() (int, bool) {
	return int(v.num), v.kind == KindNumber
}

func (v Value) AsBool() (bool, bool) {
	return v.flag, v.kind == KindBool
}

func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	cp := make([]Value, len(v.list))
	copy(cp, v.list)
	return cp, true
}

// AsStrings returns the string members of a list value, skipping others.
func (v Value) AsStrings() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	out := make([]string, 0, len(v.list))
	for _, item := range v.list {
		if s, ok := item.AsString(); ok {
			out = append(out, s)
		}
	}
	return out, true
}

func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	cp := make(map[string]Value, len(v.dict))
	for k, item := range v.dict {
		cp[k] = item
	}
	return cp, true
}

// Len reports the number of members of a list or map value, zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.dict)
	}
	return 0
}

// Equal reports deep equality. Numbers compare by bit pattern so that NaN
// equals itself and the round-trip guarantee is exact.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == o.str
	case KindNumber:
		return math.Float64bits(v.num) == math.Float64bits(o.num)
	case KindBool:
		return v.flag == o.flag
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.dict) != len(o.dict) {
			return false
		}
		for k, item := range v.dict {
			other, ok := o.dict[k]
			if !ok || !item.Equal(other) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return v.str
	case KindNumber:
		return fmt.Sprintf("%g", v.num)
	case KindBool:
		return fmt.Sprintf("%t", v.flag)
	}
	b, _ := json.Marshal(v)
	return string(b)
}

// Interface converts the value to plain Go values (string, float64, bool,
// []any, map[string]any or nil).
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.flag
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.dict))
		for k, item := range v.dict {
			out[k] = item.Interface()
		}
		return out
	}
	return nil
}

// FromInterface converts decoded plain Go values into a Value. Integer types
// become numbers; anything else is rejected.
func FromInterface(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", t, err)
		}
		return Number(f), nil
	case []string:
		return Strings(t...), nil
	case []any:
		items := make([]Value, len(t))
		for i, raw := range t {
			item, err := FromInterface(raw)
			if err != nil {
				return Value{}, fmt.Errorf("list[%d]: %w", i, err)
			}
			items[i] = item
		}
		return List(items...), nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, raw := range t {
			item, err := FromInterface(raw)
			if err != nil {
				return Value{}, fmt.Errorf("map[%s]: %w", k, err)
			}
			m[k] = item
		}
		return Map(m), nil
	case map[any]any:
		m := make(map[string]Value, len(t))
		for rk, raw := range t {
			k, ok := rk.(string)
			if !ok {
				return Value{}, fmt.Errorf("map key %v is not a string", rk)
			}
			item, err := FromInterface(raw)
			if err != nil {
				return Value{}, fmt.Errorf("map[%s]: %w", k, err)
			}
			m[k] = item
		}
		return Map(m), nil
	}
	return Value{}, fmt.Errorf("unsupported attribute type %T", x)
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case KindMap:
		if v.dict == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.dict)
	}
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out, err := FromInterface(raw)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	out, err := FromInterface(raw)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

var (
	_ msgpack.CustomEncoder = Value{}
	_ msgpack.CustomDecoder = (*Value)(nil)
)

func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	switch v.kind {
	case KindNull:
		return enc.EncodeNil()
	case KindString:
		return enc.EncodeString(v.str)
	case KindNumber:
		return enc.EncodeFloat64(v.num)
	case KindBool:
		return enc.EncodeBool(v.flag)
	case KindList:
		if err := enc.EncodeArrayLen(len(v.list)); err != nil {
			return err
		}
		for _, item := range v.list {
			if err := item.EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	case KindMap:
		if err := enc.EncodeMapLen(len(v.dict)); err != nil {
			return err
		}
		for _, k := range sortedKeys(v.dict) {
			if err := enc.EncodeString(k); err != nil {
				return err
			}
			if err := v.dict[k].EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("cannot encode value of kind %s", v.kind)
}

func (v *Value) DecodeMsgpack(dec *msgpack.Decoder) error {
	raw, err := dec.DecodeInterface()
	if err != nil {
		return err
	}
	out, err := FromInterface(raw)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
