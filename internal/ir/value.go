package ir

import (
	"fmt"
	"strconv"
)

// LiteralValue is a sealed interface over the primitive values a Literal
// expression may carry. Undefined and Null are distinct variants: the
// lowering engine renders them differently and must never confuse either
// with a string.
type LiteralValue interface {
	literalValue()
}

// Undefined is the JavaScript undefined value.
type Undefined struct{}

func (Undefined) literalValue() {}

// Null is the JavaScript null value.
type Null struct{}

func (Null) literalValue() {}

// Str is a string literal value.
type Str string

func (Str) literalValue() {}

// Num is a numeric literal value. The output language has a single number
// kind, so float64 covers every representable literal.
type Num float64

func (Num) literalValue() {}

// Bool is a boolean literal value.
type Bool bool

func (Bool) literalValue() {}

// FormatLiteral renders the value for diagnostics. Not an output-language
// serialization.
func FormatLiteral(v LiteralValue) string {
	switch val := v.(type) {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case Str:
		return strconv.Quote(string(val))
	case Num:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(bool(val))
	default:
		return fmt.Sprintf("<unknown literal %T>", v)
	}
}
