// Package value defines the closed set of values the BFast codec can encode and decode.
//
// A Value is an immutable tagged union. Construct values with the package level
// constructors (Null, Bool, Int, Text, Record, ...) and inspect them with Kind and the
// typed accessors. Host specific types such as sets, tuples and enums are not part of
// the model: an adapter normalizes them (sets and tuples to Sequence, enums to their
// wrapped value) before encoding.
package value

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindText
	KindBytes
	KindSequence
	KindRecord
	KindNumericArray
	KindTimestamp
	KindUUID
	KindDecimal
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindText:
		return "Text"
	case KindBytes:
		return "Bytes"
	case KindSequence:
		return "Sequence"
	case KindRecord:
		return "Record"
	case KindNumericArray:
		return "NumericArray"
	case KindTimestamp:
		return "Timestamp"
	case KindUUID:
		return "Uuid"
	case KindDecimal:
		return "Decimal"
	default:
		return "Unknown"
	}
}

// TimestampKind distinguishes the three ISO-8601 shapes a Timestamp can carry.
type TimestampKind uint8

const (
	DateTime TimestampKind = iota + 1
	Date
	Time
)

func (k TimestampKind) String() string {
	switch k {
	case DateTime:
		return "DateTime"
	case Date:
		return "Date"
	case Time:
		return "Time"
	default:
		return "Unknown"
	}
}

// Field is one (key, value) pair of a Record.
type Field struct {
	Key   string
	Value Value
}

// Value is a BFast value. The zero Value is Null.
type Value struct {
	kind   Kind
	tsKind TimestampKind
	b      bool
	i      int64
	f      float64
	s      string // Text, Timestamp, Uuid and Decimal text
	raw    []byte
	elems  []Value
	fields []Field
	nums   []float64
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns a signed 64-bit integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a 64-bit floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Text returns a UTF-8 text value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Bytes returns a raw byte blob value. The slice is not copied.
func Bytes(b []byte) Value { return Value{kind: KindBytes, raw: b} }

// Sequence returns an ordered list of values. The slice is not copied.
func Sequence(elems ...Value) Value { return Value{kind: KindSequence, elems: elems} }

// Record returns an ordered record. Keys are expected to be unique; the codec encodes
// fields in the order given and does not check for duplicates.
func Record(fields ...Field) Value { return Value{kind: KindRecord, fields: fields} }

// F is shorthand for building a Field.
func F(key string, v Value) Field { return Field{Key: key, Value: v} }

// NumericArray returns a homogeneous float64 array value. The slice is not copied.
func NumericArray(nums []float64) Value { return Value{kind: KindNumericArray, nums: nums} }

// Timestamp returns a timestamp value holding ISO-8601 text of the given kind.
func Timestamp(kind TimestampKind, iso string) Value {
	return Value{kind: KindTimestamp, tsKind: kind, s: iso}
}

// UUID returns a UUID value holding its hex text.
func UUID(hex string) Value { return Value{kind: KindUUID, s: hex} }

// Decimal returns an arbitrary-precision decimal value holding its canonical text.
func Decimal(text string) Value { return Value{kind: KindDecimal, s: text} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; false for other kinds.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload; 0 for other kinds.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload; 0 for other kinds.
func (v Value) Float() float64 { return v.f }

// Text returns the text payload of Text, Timestamp, Uuid and Decimal values.
func (v Value) Text() string { return v.s }

// Bytes returns the byte payload; nil for other kinds.
func (v Value) Bytes() []byte { return v.raw }

// Elems returns the elements of a Sequence.
func (v Value) Elems() []Value { return v.elems }

// Fields returns the fields of a Record in order.
func (v Value) Fields() []Field { return v.fields }

// Floats returns the payload of a NumericArray.
func (v Value) Floats() []float64 { return v.nums }

// TimestampKind returns the kind of a Timestamp value.
func (v Value) TimestampKind() TimestampKind { return v.tsKind }

// Len returns the element count of a Sequence or NumericArray, the field count of a
// Record and the byte length of Text, Bytes and the textual kinds.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.elems)
	case KindRecord:
		return len(v.fields)
	case KindNumericArray:
		return len(v.nums)
	case KindBytes:
		return len(v.raw)
	case KindText, KindTimestamp, KindUUID, KindDecimal:
		return len(v.s)
	default:
		return 0
	}
}

// Get returns the value stored under key in a Record.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}

	return Value{}, false
}

// Equal reports whether a and b hold the same variant and payload, recursively.
// Floats are compared by bit pattern so NaN payloads compare equal to themselves.
// Nil and empty slices are equal.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return math.Float64bits(a.f) == math.Float64bits(b.f)
	case KindText, KindUUID, KindDecimal:
		return a.s == b.s
	case KindTimestamp:
		return a.tsKind == b.tsKind && a.s == b.s
	case KindBytes:
		return string(a.raw) == string(b.raw)
	case KindNumericArray:
		if len(a.nums) != len(b.nums) {
			return false
		}
		for i := range a.nums {
			if math.Float64bits(a.nums[i]) != math.Float64bits(b.nums[i]) {
				return false
			}
		}

		return true
	case KindSequence:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !Equal(a.elems[i], b.elems[i]) {
				return false
			}
		}

		return true
	case KindRecord:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for i := range a.fields {
			if a.fields[i].Key != b.fields[i].Key || !Equal(a.fields[i].Value, b.fields[i].Value) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// String renders v in a compact debugging notation.
func (v Value) String() string {
	var sb strings.Builder
	v.writeTo(&sb)

	return sb.String()
}

func (v Value) writeTo(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		fmt.Fprintf(sb, "%t", v.b)
	case KindInt:
		fmt.Fprintf(sb, "%d", v.i)
	case KindFloat:
		fmt.Fprintf(sb, "%g", v.f)
	case KindText:
		fmt.Fprintf(sb, "%q", v.s)
	case KindBytes:
		fmt.Fprintf(sb, "bytes(%d)", len(v.raw))
	case KindNumericArray:
		fmt.Fprintf(sb, "f64%v", v.nums)
	case KindTimestamp:
		fmt.Fprintf(sb, "%s(%s)", v.tsKind, v.s)
	case KindUUID:
		fmt.Fprintf(sb, "uuid(%s)", v.s)
	case KindDecimal:
		fmt.Fprintf(sb, "decimal(%s)", v.s)
	case KindSequence:
		sb.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.writeTo(sb)
		}
		sb.WriteByte(']')
	case KindRecord:
		sb.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%s: ", f.Key)
			f.Value.writeTo(sb)
		}
		sb.WriteByte('}')
	}
}
