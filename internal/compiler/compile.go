// Package compiler parses CUE documents describing IR trees into ir nodes.
//
// CUE is the authoring format for IR fixtures and CLI inputs. Each node is
// a struct with a required "kind" discriminator and per-kind fields, e.g.:
//
//	statement: {
//		kind:  "declareVar"
//		name:  "greeting"
//		final: true
//		value: {kind: "literal", value: "hello"}
//	}
//
// The lowering engine itself never parses source text; this package is
// tooling in front of it.
package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/slate-compiler/slate/internal/ir"
)

// Compiler turns CUE values into IR nodes. Source-file descriptors named by
// span fields are interned per compiler so identical URLs share one
// ir.SourceFile.
type Compiler struct {
	files map[string]*ir.SourceFile
}

// New creates a Compiler.
func New() *Compiler {
	return &Compiler{files: make(map[string]*ir.SourceFile)}
}

// CompileStatement parses a CUE value into an IR statement.
func (c *Compiler) CompileStatement(v cue.Value) (ir.Statement, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	kind, err := nodeKind(v)
	if err != nil {
		return nil, err
	}

	base, err := c.stmtBase(v)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "declareVar":
		name, err := stringField(v, "name")
		if err != nil {
			return nil, err
		}
		if final, _ := boolField(v, "final"); final {
			base.Modifiers |= ir.ModifierFinal
		}
		stmt := &ir.DeclareVar{StmtBase: base, Name: name}
		if valueVal := v.LookupPath(cue.MakePath(cue.Str("value"))); valueVal.Exists() {
			stmt.Value, err = c.CompileExpression(valueVal)
			if err != nil {
				return nil, err
			}
		}
		return stmt, nil

	case "declareFunction":
		name, err := stringField(v, "name")
		if err != nil {
			return nil, err
		}
		params, err := c.params(v)
		if err != nil {
			return nil, err
		}
		body, err := c.statementList(v, "body")
		if err != nil {
			return nil, err
		}
		return &ir.DeclareFunction{StmtBase: base, Name: name, Params: params, Statements: body}, nil

	case "declareClass":
		name, err := stringField(v, "name")
		if err != nil {
			return nil, err
		}
		return &ir.DeclareClass{StmtBase: base, Name: name}, nil

	case "exprStmt":
		expr, err := c.expressionField(v, "expr")
		if err != nil {
			return nil, err
		}
		return &ir.ExpressionStatement{StmtBase: base, Expr: expr}, nil

	case "return":
		value, err := c.expressionField(v, "value")
		if err != nil {
			return nil, err
		}
		return &ir.Return{StmtBase: base, Value: value}, nil

	case "if":
		cond, err := c.expressionField(v, "condition")
		if err != nil {
			return nil, err
		}
		trueCase, err := c.statementList(v, "then")
		if err != nil {
			return nil, err
		}
		falseCase, err := c.statementList(v, "else")
		if err != nil {
			return nil, err
		}
		return &ir.If{StmtBase: base, Condition: cond, TrueCase: trueCase, FalseCase: falseCase}, nil

	case "tryCatch":
		body, err := c.statementList(v, "body")
		if err != nil {
			return nil, err
		}
		catch, err := c.statementList(v, "catch")
		if err != nil {
			return nil, err
		}
		errorVar, _ := optionalString(v, "errorVar")
		return &ir.TryCatch{StmtBase: base, Body: body, ErrorVar: errorVar, CatchStmts: catch}, nil

	case "throw":
		value, err := c.expressionField(v, "error")
		if err != nil {
			return nil, err
		}
		return &ir.Throw{StmtBase: base, Error: value}, nil

	default:
		return nil, &CompileError{
			Field:   "kind",
			Message: fmt.Sprintf("unknown statement kind %q", kind),
			Pos:     v.Pos(),
		}
	}
}

// CompileExpression parses a CUE value into an IR expression.
func (c *Compiler) CompileExpression(v cue.Value) (ir.Expression, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	kind, err := nodeKind(v)
	if err != nil {
		return nil, err
	}

	base, err := c.exprBase(v)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "readVar":
		name, err := stringField(v, "name")
		if err != nil {
			return nil, err
		}
		return &ir.ReadVar{ExprBase: base, Name: name}, nil

	case "writeVar":
		name, err := stringField(v, "name")
		if err != nil {
			return nil, err
		}
		value, err := c.expressionField(v, "value")
		if err != nil {
			return nil, err
		}
		return &ir.WriteVar{ExprBase: base, Name: name, Value: value}, nil

	case "writeKey":
		receiver, err := c.expressionField(v, "receiver")
		if err != nil {
			return nil, err
		}
		index, err := c.expressionField(v, "index")
		if err != nil {
			return nil, err
		}
		value, err := c.expressionField(v, "value")
		if err != nil {
			return nil, err
		}
		return &ir.WriteKey{ExprBase: base, Receiver: receiver, Index: index, Value: value}, nil

	case "writeProp":
		receiver, err := c.expressionField(v, "receiver")
		if err != nil {
			return nil, err
		}
		name, err := stringField(v, "name")
		if err != nil {
			return nil, err
		}
		value, err := c.expressionField(v, "value")
		if err != nil {
			return nil, err
		}
		return &ir.WriteProp{ExprBase: base, Receiver: receiver, Name: name, Value: value}, nil

	case "invokeMethod":
		receiver, err := c.expressionField(v, "receiver")
		if err != nil {
			return nil, err
		}
		method, _ := optionalString(v, "method")
		args, err := c.expressionList(v, "args")
		if err != nil {
			return nil, err
		}
		return &ir.InvokeMethod{ExprBase: base, Receiver: receiver, Method: method, Args: args}, nil

	case "invokeFunction":
		fn, err := c.expressionField(v, "fn")
		if err != nil {
			return nil, err
		}
		args, err := c.expressionList(v, "args")
		if err != nil {
			return nil, err
		}
		pure, _ := boolField(v, "pure")
		return &ir.InvokeFunction{ExprBase: base, Fn: fn, Args: args, Pure: pure}, nil

	case "instantiate":
		class, err := c.expressionField(v, "class")
		if err != nil {
			return nil, err
		}
		args, err := c.expressionList(v, "args")
		if err != nil {
			return nil, err
		}
		return &ir.Instantiate{ExprBase: base, Class: class, Args: args}, nil

	case "literal":
		value, err := literalValue(v)
		if err != nil {
			return nil, err
		}
		return &ir.Literal{ExprBase: base, Value: value}, nil

	case "localized":
		return c.localizedString(v, base)

	case "external":
		module, _ := optionalString(v, "module")
		name, _ := optionalString(v, "name")
		return &ir.External{ExprBase: base, Module: module, Name: name}, nil

	case "conditional":
		cond, err := c.expressionField(v, "condition")
		if err != nil {
			return nil, err
		}
		trueCase, err := c.expressionField(v, "then")
		if err != nil {
			return nil, err
		}
		falseCase, err := c.expressionField(v, "else")
		if err != nil {
			return nil, err
		}
		return &ir.Conditional{ExprBase: base, Condition: cond, TrueCase: trueCase, FalseCase: falseCase}, nil

	case "not":
		cond, err := c.expressionField(v, "condition")
		if err != nil {
			return nil, err
		}
		return &ir.Not{ExprBase: base, Condition: cond}, nil

	case "assertNotNull":
		expr, err := c.expressionField(v, "expr")
		if err != nil {
			return nil, err
		}
		return &ir.AssertNotNull{ExprBase: base, Expr: expr}, nil

	case "cast":
		expr, err := c.expressionField(v, "expr")
		if err != nil {
			return nil, err
		}
		return &ir.Cast{ExprBase: base, Expr: expr}, nil

	case "function":
		name, _ := optionalString(v, "name")
		params, err := c.params(v)
		if err != nil {
			return nil, err
		}
		body, err := c.statementList(v, "body")
		if err != nil {
			return nil, err
		}
		return &ir.Function{ExprBase: base, Name: name, Params: params, Statements: body}, nil

	case "unary":
		opName, err := stringField(v, "op")
		if err != nil {
			return nil, err
		}
		op, ok := unaryOps[opName]
		if !ok {
			return nil, &CompileError{Field: "op", Message: fmt.Sprintf("unknown unary operator %q", opName), Pos: v.Pos()}
		}
		expr, err := c.expressionField(v, "expr")
		if err != nil {
			return nil, err
		}
		return &ir.UnaryOp{ExprBase: base, Op: op, Expr: expr}, nil

	case "binary":
		opName, err := stringField(v, "op")
		if err != nil {
			return nil, err
		}
		op, ok := binaryOps[opName]
		if !ok {
			return nil, &CompileError{Field: "op", Message: fmt.Sprintf("unknown binary operator %q", opName), Pos: v.Pos()}
		}
		lhs, err := c.expressionField(v, "lhs")
		if err != nil {
			return nil, err
		}
		rhs, err := c.expressionField(v, "rhs")
		if err != nil {
			return nil, err
		}
		return &ir.BinaryOp{ExprBase: base, Op: op, Lhs: lhs, Rhs: rhs}, nil

	case "readProp":
		receiver, err := c.expressionField(v, "receiver")
		if err != nil {
			return nil, err
		}
		name, err := stringField(v, "name")
		if err != nil {
			return nil, err
		}
		return &ir.ReadProp{ExprBase: base, Receiver: receiver, Name: name}, nil

	case "readKey":
		receiver, err := c.expressionField(v, "receiver")
		if err != nil {
			return nil, err
		}
		index, err := c.expressionField(v, "index")
		if err != nil {
			return nil, err
		}
		return &ir.ReadKey{ExprBase: base, Receiver: receiver, Index: index}, nil

	case "array":
		entries, err := c.expressionList(v, "entries")
		if err != nil {
			return nil, err
		}
		return &ir.LiteralArray{ExprBase: base, Entries: entries}, nil

	case "map":
		entries, err := c.mapEntries(v)
		if err != nil {
			return nil, err
		}
		return &ir.LiteralMap{ExprBase: base, Entries: entries}, nil

	case "comma":
		parts, err := c.expressionList(v, "parts")
		if err != nil {
			return nil, err
		}
		return &ir.Comma{ExprBase: base, Parts: parts}, nil

	case "typeof":
		expr, err := c.expressionField(v, "expr")
		if err != nil {
			return nil, err
		}
		return &ir.Typeof{ExprBase: base, Expr: expr}, nil

	default:
		return nil, &CompileError{
			Field:   "kind",
			Message: fmt.Sprintf("unknown expression kind %q", kind),
			Pos:     v.Pos(),
		}
	}
}

var unaryOps = map[string]ir.UnaryOperator{
	"-": ir.UnaryMinus,
	"+": ir.UnaryPlus,
}

var binaryOps = map[string]ir.BinaryOperator{
	"==":  ir.BinaryEquals,
	"!=":  ir.BinaryNotEquals,
	"===": ir.BinaryIdentical,
	"!==": ir.BinaryNotIdentical,
	"-":   ir.BinaryMinus,
	"+":   ir.BinaryPlus,
	"/":   ir.BinaryDivide,
	"*":   ir.BinaryMultiply,
	"%":   ir.BinaryModulo,
	"&&":  ir.BinaryAnd,
	"||":  ir.BinaryOr,
	"&":   ir.BinaryBitwiseAnd,
	"<":   ir.BinaryLower,
	"<=":  ir.BinaryLowerEquals,
	">":   ir.BinaryBigger,
	">=":  ir.BinaryBiggerEquals,
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
