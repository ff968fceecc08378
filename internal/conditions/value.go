package conditions

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindBool
	KindSequence
)

// Value is a closed variant over the dynamic values that appear in form
// fields and rule targets: String | Number | Bool | Sequence | Absent.
// Anything outside the variant (objects, functions after JSON decoding)
// collapses to Absent, which keeps every operator fail-closed.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	seq  []Value
}

// Absent is the zero Value: a missing or null field.
var Absent = Value{}

func StringValue(s string) Value  { return Value{kind: KindString, str: s} }
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }
func BoolValue(b bool) Value      { return Value{kind: KindBool, b: b} }

func SequenceValue(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindSequence, seq: items}
}

// ValueOf converts an arbitrary JSON-decoded value into the closed variant.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Absent
	case string:
		return StringValue(x)
	case bool:
		return BoolValue(x)
	case int:
		return NumberValue(float64(x))
	case int32:
		return NumberValue(float64(x))
	case int64:
		return NumberValue(float64(x))
	case float32:
		return NumberValue(float64(x))
	case float64:
		return NumberValue(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Absent
		}
		return NumberValue(f)
	case []any:
		items := make([]Value, 0, len(x))
		for _, item := range x {
			items = append(items, ValueOf(item))
		}
		return SequenceValue(items)
	case []string:
		items := make([]Value, 0, len(x))
		for _, item := range x {
			items = append(items, StringValue(item))
		}
		return SequenceValue(items)
	case []float64:
		items := make([]Value, 0, len(x))
		for _, item := range x {
			items = append(items, NumberValue(item))
		}
		return SequenceValue(items)
	case []int:
		items := make([]Value, 0, len(x))
		for _, item := range x {
			items = append(items, NumberValue(float64(item)))
		}
		return SequenceValue(items)
	case Value:
		return x
	default:
		return Absent
	}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether the value is absent, an empty string, or an empty
// sequence. Zero numbers and false booleans are not empty.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindAbsent:
		return true
	case KindString:
		return v.str == ""
	case KindSequence:
		return len(v.seq) == 0
	default:
		return false
	}
}

// Equal implements strict equality: values of different kinds are never
// equal, scalars compare by content, sequences compare element-wise.
// Two absent values compare equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindAbsent:
		return true
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	case KindSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(other.seq[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// AsNumber coerces the value to a float64. Strings parse via
// strconv.ParseFloat after trimming whitespace; booleans, sequences, and
// absent values yield NaN so that any comparison against them is false.
func (v Value) AsNumber() float64 {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// AsText renders the value's string form for textual containment checks.
// The second result is false for sequences and absent values, which have
// no usable string form.
func (v Value) AsText() (string, bool) {
	switch v.kind {
	case KindString:
		return v.str, true
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64), true
	case KindBool:
		return strconv.FormatBool(v.b), true
	default:
		return "", false
	}
}

// Contains implements the contains operator: sequences check membership by
// strict equality; text checks case-insensitive substring containment of
// the target's string form. Other kinds never contain anything.
func (v Value) Contains(target Value) bool {
	switch v.kind {
	case KindSequence:
		for _, item := range v.seq {
			if item.Equal(target) {
				return true
			}
		}
		return false
	case KindString:
		needle, ok := target.AsText()
		if !ok {
			return false
		}
		return strings.Contains(strings.ToLower(v.str), strings.ToLower(needle))
	default:
		return false
	}
}

// Items returns the sequence elements, or nil for non-sequence values.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.seq
}
