/*
Package value implements the runtime values of the language.

A Value is one of null, number (float64), string, boolean or array. There
are no other runtime types. Arrays are reference values: copies of a Value
share the array's storage.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package value

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the runtime type tag of a value.
type Kind int8

// The zero Kind is Null, making the zero Value null.
const (
	NullKind Kind = iota
	NumberKind
	StringKind
	BooleanKind
	ArrayKind
)

var kindNames = [...]string{"null", "number", "string", "boolean", "array"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// Value is a dynamically tagged runtime value.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	arr  []Value
}

// Null is the null value.
var Null = Value{}

// Number wraps a float64.
func Number(n float64) Value {
	return Value{kind: NumberKind, num: n}
}

// String wraps a string.
func String(s string) Value {
	return Value{kind: StringKind, str: s}
}

// Bool wraps a boolean.
func Bool(b bool) Value {
	return Value{kind: BooleanKind, b: b}
}

// Array creates an array value. The array takes ownership of elems.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: ArrayKind, arr: elems}
}

// Kind returns the runtime type tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull is a predicate.
func (v Value) IsNull() bool {
	return v.kind == NullKind
}

// Num returns the number payload; 0 for other kinds.
func (v Value) Num() float64 {
	return v.num
}

// Str returns the string payload; "" for other kinds.
func (v Value) Str() string {
	return v.str
}

// Elems returns the array payload; nil for other kinds.
// The slice shares storage with v.
func (v Value) Elems() []Value {
	return v.arr
}

// Truthy coerces a value to a boolean for control flow conditions:
// booleans as themselves, numbers if nonzero, strings and arrays if
// nonempty. Null is false.
func (v Value) Truthy() bool {
	switch v.kind {
	case BooleanKind:
		return v.b
	case NumberKind:
		return v.num != 0
	case StringKind:
		return v.str != ""
	case ArrayKind:
		return len(v.arr) != 0
	case NullKind:
		return false
	}
	return true
}

// Equal is defined between numbers, strings and booleans of the same kind.
// Everything else, including null and arrays, compares unequal.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case NumberKind:
		return v.num == w.num
	case StringKind:
		return v.str == w.str
	case BooleanKind:
		return v.b == w.b
	}
	return false
}

// String renders a value for output. Arrays render as [a, b, c].
func (v Value) String() string {
	var sb strings.Builder
	v.render(&sb)
	return sb.String()
}

func (v Value) render(sb *strings.Builder) {
	switch v.kind {
	case NullKind:
		sb.WriteString("null")
	case NumberKind:
		sb.WriteString(FormatNumber(v.num))
	case StringKind:
		sb.WriteString(v.str)
	case BooleanKind:
		sb.WriteString(strconv.FormatBool(v.b))
	case ArrayKind:
		sb.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.render(sb)
		}
		sb.WriteByte(']')
	}
}

// Debug renders a value for tracing, quoting strings.
func (v Value) Debug() string {
	if v.kind == StringKind {
		return strconv.Quote(v.str)
	}
	return v.String()
}

// FormatNumber formats a float in its shortest round-tripping form. Very large
// and very small magnitudes use an exponent.
func FormatNumber(n float64) string {
	if a := math.Abs(n); a != 0 && (a < 1e-6 || a >= 1e21) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
