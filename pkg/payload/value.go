package payload

import (
	"math"
	"slices"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindObject
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindList:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Value is a tagged union over the JSON data model.
// The zero Value is Null.
type Value struct {
	kind    Kind
	str     string
	num     float64
	boolean bool
	items   []Value
	members []Member
}

// Null returns the null value.
func Null() Value { return Value{} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a float64.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool wraps a bool.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// List builds a list value from its elements.
func List(items ...Value) Value {
	return Value{kind: KindList, items: slices.Clone(items)}
}

// Object builds an object value. When a key repeats, the last occurrence wins
// but keeps the position of the first one.
func Object(members ...Member) Value {
	out := make([]Member, 0, len(members))
	index := make(map[string]int, len(members))
	for _, m := range members {
		if i, ok := index[m.Key]; ok {
			out[i].Value = m.Value
			continue
		}
		index[m.Key] = len(out)
		out = append(out, m)
	}
	return Value{kind: KindObject, members: out}
}

// Field is shorthand for building a Member.
func Field(key string, v Value) Member {
	return Member{Key: key, Value: v}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string held by v.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Num returns the number held by v.
func (v Value) Num() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Boolean returns the bool held by v.
func (v Value) Boolean() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// IsInteger reports whether v is a number without a fractional part.
func (v Value) IsInteger() bool {
	if v.kind != KindNumber || math.IsInf(v.num, 0) || math.IsNaN(v.num) {
		return false
	}
	return v.num == math.Trunc(v.num)
}

// Items returns a copy of the list elements. Nil for non-list values.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return slices.Clone(v.items)
}

// Members returns a copy of the object members in order. Nil for non-object values.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return slices.Clone(v.members)
}

// Keys returns the object keys in order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Get looks up an object member by key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	if i := indexOf(v.members, key); i >= 0 {
		return v.members[i].Value, true
	}
	return Value{}, false
}

// Has reports whether an object has the given own key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Len returns the number of elements of a list, members of an object,
// or runes of a string. Zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.items)
	case KindObject:
		return len(v.members)
	case KindString:
		return len([]rune(v.str))
	default:
		return 0
	}
}

// Text renders a scalar the way it would appear inside a JSON document,
// without quotes for strings. Lists and objects render as their JSON encoding.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.boolean)
	default:
		b, _ := v.MarshalJSON()
		return string(b)
	}
}

// Equal reports deep equality. Object member order is significant.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindString:
		return a.str == b.str
	case KindNumber:
		return a.num == b.num
	case KindBool:
		return a.boolean == b.boolean
	case KindList:
		return slices.EqualFunc(a.items, b.items, Equal)
	case KindObject:
		return slices.EqualFunc(a.members, b.members, func(x, y Member) bool {
			return x.Key == y.Key && Equal(x.Value, y.Value)
		})
	}
	return false
}

func indexOf(members []Member, key string) int {
	for i, m := range members {
		if m.Key == key {
			return i
		}
	}
	return -1
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
