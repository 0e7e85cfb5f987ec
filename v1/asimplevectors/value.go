package asimplevectors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindMap
	KindList
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
	case KindMap:
		return "map"
	case KindList:
		return "list"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is one JSON value of vector metadata. The zero Value is null.
//
// Numbers are kept as json.Number so that integers larger than 2^53 and
// the exact textual form sent by the server survive a round trip.
type Value struct {
	kind Kind
	str  string
	num  json.Number
	b    bool
	m    map[string]Value
	l    []Value
}

// Metadata is the free-form key/value document attached to a vector.
type Metadata map[string]Value

// Null returns the null Value.
func Null() Value { return Value{} }

// NewString returns a string Value.
func NewString(s string) Value { return Value{kind: KindString, str: s} }

// NewNumber returns a number Value. n must be a valid JSON number.
func NewNumber(n json.Number) Value { return Value{kind: KindNumber, num: n} }

// NewInt returns a number Value holding i.
func NewInt(i int64) Value { return NewNumber(json.Number(strconv.FormatInt(i, 10))) }

// NewFloat returns a number Value holding f. NaN and infinities have no
// JSON representation and become null.
func NewFloat(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return NewNumber(json.Number(strconv.FormatFloat(f, 'g', -1, 64)))
}

// NewBool returns a bool Value.
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// NewMap returns a map Value.
func NewMap(m map[string]Value) Value { return Value{kind: KindMap, m: m} }

// NewList returns a list Value.
func NewList(items ...Value) Value { return Value{kind: KindList, l: items} }

// ValueOf converts plain Go values (as produced by encoding/json or written
// by hand) into a Value. Supported are nil, string, bool, json.Number, all
// integer and float types, map[string]interface{}, []interface{}, Value,
// map[string]Value and []Value.
func ValueOf(v interface{}) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return val, nil
	case string:
		return NewString(val), nil
	case bool:
		return NewBool(val), nil
	case json.Number:
		return NewNumber(val), nil
	case int:
		return NewInt(int64(val)), nil
	case int8:
		return NewInt(int64(val)), nil
	case int16:
		return NewInt(int64(val)), nil
	case int32:
		return NewInt(int64(val)), nil
	case int64:
		return NewInt(val), nil
	case uint:
		return NewNumber(json.Number(strconv.FormatUint(uint64(val), 10))), nil
	case uint8:
		return NewInt(int64(val)), nil
	case uint16:
		return NewInt(int64(val)), nil
	case uint32:
		return NewInt(int64(val)), nil
	case uint64:
		return NewNumber(json.Number(strconv.FormatUint(val, 10))), nil
	case float32:
		return NewFloat(float64(val)), nil
	case float64:
		return NewFloat(val), nil
	case map[string]Value:
		return NewMap(val), nil
	case []Value:
		return NewList(val...), nil
	case map[string]interface{}:
		m := make(map[string]Value, len(val))
		for k, item := range val {
			converted, err := ValueOf(item)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			m[k] = converted
		}
		return NewMap(m), nil
	case []interface{}:
		l := make([]Value, len(val))
		for i, item := range val {
			converted, err := ValueOf(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			l[i] = converted
		}
		return NewList(l...), nil
	}
	return Value{}, fmt.Errorf("%w: unsupported metadata type %T", ErrInvalidArgument, v)
}

// MetadataOf converts a plain map into Metadata.
func MetadataOf(m map[string]interface{}) (Metadata, error) {
	if m == nil {
		return nil, nil
	}
	md := make(Metadata, len(m))
	for k, v := range m {
		val, err := ValueOf(v)
		if err != nil {
			return nil, fmt.Errorf("metadata key %q: %w", k, err)
		}
		md[k] = val
	}
	return md, nil
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString, AsNumber, AsBool, AsMap and AsList return the payload of v and
// whether v holds that variant.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

func (v Value) AsNumber() (json.Number, bool) { return v.num, v.kind == KindNumber }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) AsMap() (map[string]Value, bool) { return v.m, v.kind == KindMap }

func (v Value) AsList() ([]Value, bool) { return v.l, v.kind == KindList }

// AsInt64 returns the number as an int64. It fails for non-numbers and for
// numbers with a fractional part or exponent.
func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	i, err := v.num.Int64()
	return i, err == nil
}

// AsFloat64 returns the number as a float64.
func (v Value) AsFloat64() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := v.num.Float64()
	return f, err == nil
}

// Interface returns v as the plain Go value encoding/json would produce
// with UseNumber enabled.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindMap:
		m := make(map[string]interface{}, len(v.m))
		for k, item := range v.m {
			m[k] = item.Interface()
		}
		return m
	case KindList:
		l := make([]interface{}, len(v.l))
		for i, item := range v.l {
			l[i] = item.Interface()
		}
		return l
	}
	return nil
}

// Equal reports whether v and other hold the same JSON value. Numbers are
// compared by their textual form.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	case KindMap:
		if len(v.m) != len(other.m) {
			return false
		}
		for k, item := range v.m {
			o, ok := other.m[k]
			if !ok || !item.Equal(o) {
				return false
			}
		}
		return true
	case KindList:
		if len(v.l) != len(other.l) {
			return false
		}
		for i := range v.l {
			if !v.l[i].Equal(other.l[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if v.num == "" {
			return []byte("0"), nil
		}
		return []byte(v.num), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindMap:
		if v.m == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.m)
	case KindList:
		if v.l == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.l)
	}
	return nil, fmt.Errorf("asimplevectors: cannot marshal value of %s", v.kind)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	converted, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = converted
	return nil
}

// Equal reports whether both documents hold the same keys and values.
func (m Metadata) Equal(other Metadata) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		o, ok := other[k]
		if !ok || !v.Equal(o) {
			return false
		}
	}
	return true
}
