package testutil

import "github.com/slate-compiler/slate/internal/ir"

// The builders below keep test trees terse. They construct IR nodes without
// spans; use WithSpan to attach one where a test needs provenance.

func ReadVar(name string) *ir.ReadVar {
	return &ir.ReadVar{Name: name}
}

func Str(s string) *ir.Literal {
	return &ir.Literal{Value: ir.Str(s)}
}

func Num(f float64) *ir.Literal {
	return &ir.Literal{Value: ir.Num(f)}
}

func Bool(b bool) *ir.Literal {
	return &ir.Literal{Value: ir.Bool(b)}
}

func Null() *ir.Literal {
	return &ir.Literal{Value: ir.Null{}}
}

func Undefined() *ir.Literal {
	return &ir.Literal{Value: ir.Undefined{}}
}

func WriteVar(name string, value ir.Expression) *ir.WriteVar {
	return &ir.WriteVar{Name: name, Value: value}
}

func Binary(op ir.BinaryOperator, lhs, rhs ir.Expression) *ir.BinaryOp {
	return &ir.BinaryOp{Op: op, Lhs: lhs, Rhs: rhs}
}

func Cond(condition, trueCase, falseCase ir.Expression) *ir.Conditional {
	return &ir.Conditional{Condition: condition, TrueCase: trueCase, FalseCase: falseCase}
}

func Call(fn ir.Expression, args ...ir.Expression) *ir.InvokeFunction {
	return &ir.InvokeFunction{Fn: fn, Args: args}
}

func PureCall(fn ir.Expression, args ...ir.Expression) *ir.InvokeFunction {
	return &ir.InvokeFunction{Fn: fn, Args: args, Pure: true}
}

func Params(names ...string) []ir.FnParam {
	params := make([]ir.FnParam, len(names))
	for i, name := range names {
		params[i] = ir.FnParam{Name: name}
	}
	return params
}

func Return(value ir.Expression) *ir.Return {
	return &ir.Return{Value: value}
}

func ExprStmt(expr ir.Expression) *ir.ExpressionStatement {
	return &ir.ExpressionStatement{Expr: expr}
}

func DeclareFinal(name string, value ir.Expression) *ir.DeclareVar {
	return &ir.DeclareVar{
		StmtBase: ir.StmtBase{Modifiers: ir.ModifierFinal},
		Name:     name,
		Value:    value,
	}
}

// Span builds a span into file url with the given offsets. Each call makes a
// fresh SourceFile; tests that need descriptor sharing build spans by hand.
func Span(url string, start, end int) *ir.SourceSpan {
	return &ir.SourceSpan{
		File:  &ir.SourceFile{URL: url},
		Start: start,
		End:   end,
	}
}

// Localized builds a localized string from alternating parts and
// placeholder names with the given expressions.
func Localized(meta ir.MessageMeta, parts []string, placeholders []string, exprs ...ir.Expression) *ir.LocalizedString {
	return ir.NewLocalizedString(ir.ExprBase{}, meta, parts, placeholders, exprs)
}
