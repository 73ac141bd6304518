package translate

import "github.com/slate-compiler/slate/internal/ir"

// Fixed operator-kind to concrete-token tables. A lookup miss is a fatal
// producer bug: every operator the IR can construct must have an entry.

var unaryOperators = map[ir.UnaryOperator]string{
	ir.UnaryMinus: "-",
	ir.UnaryPlus:  "+",
}

var binaryOperators = map[ir.BinaryOperator]string{
	ir.BinaryEquals:       "==",
	ir.BinaryNotEquals:    "!=",
	ir.BinaryIdentical:    "===",
	ir.BinaryNotIdentical: "!==",
	ir.BinaryMinus:        "-",
	ir.BinaryPlus:         "+",
	ir.BinaryDivide:       "/",
	ir.BinaryMultiply:     "*",
	ir.BinaryModulo:       "%",
	ir.BinaryAnd:          "&&",
	ir.BinaryOr:           "||",
	ir.BinaryBitwiseAnd:   "&",
	ir.BinaryLower:        "<",
	ir.BinaryLowerEquals:  "<=",
	ir.BinaryBigger:       ">",
	ir.BinaryBiggerEquals: ">=",
}

func unaryToken(op ir.UnaryOperator) (string, error) {
	if tok, ok := unaryOperators[op]; ok {
		return tok, nil
	}
	return "", &UnsupportedOperatorError{Operator: op.String()}
}

func binaryToken(op ir.BinaryOperator) (string, error) {
	if tok, ok := binaryOperators[op]; ok {
		return tok, nil
	}
	return "", &UnsupportedOperatorError{Operator: op.String()}
}
