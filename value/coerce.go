package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/prettylisp"
)

// AsNumber returns the number payload or fails with a coercion error.
func AsNumber(v Value) (float64, error) {
	if v.kind != NumberKind {
		return 0, prettylisp.Errorf(prettylisp.TypeCoercion, "expected number, got %s %s",
			v.kind, v.Debug())
	}
	return v.num, nil
}

// AsString returns the string payload or fails with a coercion error.
func AsString(v Value) (string, error) {
	if v.kind != StringKind {
		return "", prettylisp.Errorf(prettylisp.TypeCoercion, "expected string, got %s %s",
			v.kind, v.Debug())
	}
	return v.str, nil
}

// AsIndex converts a number to an integer index, truncating toward zero.
func AsIndex(v Value) (int, error) {
	n, err := AsNumber(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, prettylisp.Errorf(prettylisp.TypeCoercion, "%s is not a valid index", FormatNumber(n))
	}
	return int(n), nil
}

// ToArray normalizes a value to a sequence of values: arrays are returned
// as they are (sharing storage), strings are split into their character
// codes, any other value becomes a one-element array.
func ToArray(v Value) []Value {
	switch v.kind {
	case ArrayKind:
		return v.arr
	case StringKind:
		runes := []rune(v.str)
		elems := make([]Value, len(runes))
		for i, r := range runes {
			elems[i] = Number(float64(r))
		}
		return elems
	}
	return []Value{v}
}

// Length is the length of an array or the number of characters of a string.
func Length(v Value) (int, error) {
	switch v.kind {
	case ArrayKind:
		return len(v.arr), nil
	case StringKind:
		return len([]rune(v.str)), nil
	}
	return 0, prettylisp.Errorf(prettylisp.TypeCoercion, "cannot take length of %s", v.kind)
}

// Index resolves a possibly negative index against a length. Negative indices
// count from the end.
func Index(i, length int) (int, error) {
	j := i
	if j < 0 {
		j += length
	}
	if j < 0 || j >= length {
		return 0, prettylisp.Errorf(prettylisp.IndexOutOfRange, "index %d out of range [0,%d)",
			i, length)
	}
	return j, nil
}

// Char converts a character code to a one-character string.
func Char(v Value) (Value, error) {
	n, err := AsNumber(v)
	if err != nil {
		return Null, err
	}
	if n < 0 || n > math.MaxInt32 || math.IsNaN(n) {
		return Null, prettylisp.Errorf(prettylisp.TypeCoercion, "%s is not a character code",
			FormatNumber(n))
	}
	return String(string(rune(int32(n)))), nil
}

// ParseNumber converts a string to a number.
func ParseNumber(v Value) (Value, error) {
	s, err := AsString(v)
	if err != nil {
		return Null, err
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Null, prettylisp.Errorf(prettylisp.TypeCoercion, "cannot parse %q as a number", s)
	}
	return Number(n), nil
}

// Concat concatenates the display forms of a sequence of values.
func Concat(vals ...Value) Value {
	var sb strings.Builder
	for _, v := range vals {
		v.render(&sb)
	}
	return String(sb.String())
}
