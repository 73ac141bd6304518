package translate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slate-compiler/slate/internal/ir"
	"github.com/slate-compiler/slate/internal/jsast"
	"github.com/slate-compiler/slate/internal/testutil"
	"github.com/slate-compiler/slate/internal/translate"
)

func lowerExpr(t *testing.T, expr ir.Expression, tier translate.Tier) jsast.Expr {
	t.Helper()
	node, err := translate.TranslateExpression(expr, testutil.NewTableResolver(nil), testutil.NopRecorder{}, tier)
	require.NoError(t, err)
	return node
}

func lowerStmt(t *testing.T, stmt ir.Statement, tier translate.Tier) jsast.Stmt {
	t.Helper()
	node, err := translate.TranslateStatement(stmt, testutil.NewTableResolver(nil), testutil.NopRecorder{}, tier)
	require.NoError(t, err)
	return node
}

func TestReadVarLowersToIdentifier(t *testing.T) {
	node := lowerExpr(t, testutil.ReadVar("count"), translate.TierModern)
	assert.Equal(t, "(id count)", jsast.Dump(node))
}

func TestLiteralLowering(t *testing.T) {
	tests := []struct {
		name string
		expr ir.Expression
		want string
	}{
		{"string", testutil.Str("hello"), `(str "hello")`},
		{"number", testutil.Num(42.5), "(num 42.5)"},
		{"bool", testutil.Bool(true), "(bool true)"},
		{"null", testutil.Null(), "(null)"},
		{"undefined", testutil.Undefined(), "(id undefined)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := lowerExpr(t, tt.expr, translate.TierModern)
			assert.Equal(t, tt.want, jsast.Dump(node))
		})
	}
}

func TestDeclareVarTierMatrix(t *testing.T) {
	tests := []struct {
		name  string
		tier  translate.Tier
		final bool
		want  string
	}{
		{"legacy mutable", translate.TierLegacy, false, `(var x (num 1))`},
		{"legacy final", translate.TierLegacy, true, `(var x (num 1))`},
		{"modern mutable", translate.TierModern, false, `(let x (num 1))`},
		{"modern final", translate.TierModern, true, `(const x (num 1))`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl := &ir.DeclareVar{Name: "x", Value: testutil.Num(1)}
			if tt.final {
				decl.Modifiers = ir.ModifierFinal
			}
			node := lowerStmt(t, decl, tt.tier)
			assert.Equal(t, tt.want, jsast.Dump(node))
		})
	}
}

func TestDeclareVarWithoutInitializer(t *testing.T) {
	node := lowerStmt(t, &ir.DeclareVar{Name: "pending"}, translate.TierModern)
	assert.Equal(t, "(let pending)", jsast.Dump(node))
}

// Variable and keyed writes take grouping parentheses in expression
// position; property writes never do. The asymmetry is part of the output
// contract.
func TestWriteParenthesization(t *testing.T) {
	writeVar := testutil.WriteVar("x", testutil.Num(1))
	writeKey := &ir.WriteKey{
		Receiver: testutil.ReadVar("arr"),
		Index:    testutil.Num(0),
		Value:    testutil.Num(1),
	}
	writeProp := &ir.WriteProp{
		Receiver: testutil.ReadVar("obj"),
		Name:     "field",
		Value:    testutil.Num(1),
	}

	t.Run("write var in expression position", func(t *testing.T) {
		node := lowerExpr(t, writeVar, translate.TierModern)
		assert.Equal(t, "(paren (assign (id x) (num 1)))", jsast.Dump(node))
	})
	t.Run("write var as statement", func(t *testing.T) {
		node := lowerStmt(t, testutil.ExprStmt(writeVar), translate.TierModern)
		assert.Equal(t, "(expr-stmt (assign (id x) (num 1)))", jsast.Dump(node))
	})
	t.Run("write key in expression position", func(t *testing.T) {
		node := lowerExpr(t, writeKey, translate.TierModern)
		assert.Equal(t, "(paren (assign (key (id arr) (num 0)) (num 1)))", jsast.Dump(node))
	})
	t.Run("write prop in expression position", func(t *testing.T) {
		node := lowerExpr(t, writeProp, translate.TierModern)
		assert.Equal(t, "(assign (prop (id obj) field) (num 1))", jsast.Dump(node))
	})
}

func TestNestedWritePropagatesContext(t *testing.T) {
	// The outer write is a statement, so neither assignment needs grouping:
	// the inner write var inherits the statement context through the value
	// slot.
	inner := testutil.WriteVar("tmp", testutil.Num(1))
	outer := testutil.ExprStmt(testutil.WriteVar("x", inner))
	node := lowerStmt(t, outer, translate.TierModern)
	assert.Equal(t, "(expr-stmt (assign (id x) (assign (id tmp) (num 1))))", jsast.Dump(node))
}

func TestWriteKeyForcesExpressionModeOnComponents(t *testing.T) {
	// Keyed writes visit all three components in expression mode even when
	// the write itself is a statement, so a write var in the index slot is
	// parenthesized.
	write := &ir.WriteKey{
		Receiver: testutil.ReadVar("arr"),
		Index:    testutil.WriteVar("i", testutil.Num(0)),
		Value:    testutil.Num(1),
	}
	node := lowerStmt(t, testutil.ExprStmt(write), translate.TierModern)
	assert.Equal(t,
		"(expr-stmt (assign (key (id arr) (paren (assign (id i) (num 0)))) (num 1)))",
		jsast.Dump(node))
}

func TestConditionalParenthesization(t *testing.T) {
	simple := testutil.Cond(testutil.ReadVar("a"), testutil.Num(1), testutil.Num(2))

	t.Run("plain condition is bare", func(t *testing.T) {
		node := lowerExpr(t, simple, translate.TierModern)
		assert.Equal(t, "(cond (id a) (num 1) (num 2))", jsast.Dump(node))
	})

	t.Run("conditional condition is grouped", func(t *testing.T) {
		nested := testutil.Cond(simple, testutil.Num(3), testutil.Num(4))
		node := lowerExpr(t, nested, translate.TierModern)
		assert.Equal(t,
			"(cond (paren (cond (id a) (num 1) (num 2))) (num 3) (num 4))",
			jsast.Dump(node))
	})

	t.Run("conditional branch is bare", func(t *testing.T) {
		nested := testutil.Cond(testutil.ReadVar("b"), simple, testutil.Num(4))
		node := lowerExpr(t, nested, translate.TierModern)
		assert.Equal(t,
			"(cond (id b) (cond (id a) (num 1) (num 2)) (num 4))",
			jsast.Dump(node))
	})
}

func TestInvokeMethodCallThrough(t *testing.T) {
	t.Run("named method", func(t *testing.T) {
		call := &ir.InvokeMethod{
			Receiver: testutil.ReadVar("obj"),
			Method:   "run",
			Args:     []ir.Expression{testutil.Num(1)},
		}
		node := lowerExpr(t, call, translate.TierModern)
		assert.Equal(t, "(call (prop (id obj) run) (num 1))", jsast.Dump(node))
	})
	t.Run("empty method calls the receiver", func(t *testing.T) {
		call := &ir.InvokeMethod{
			Receiver: testutil.ReadVar("fn"),
			Args:     []ir.Expression{testutil.Num(1)},
		}
		node := lowerExpr(t, call, translate.TierModern)
		assert.Equal(t, "(call (id fn) (num 1))", jsast.Dump(node))
	})
}

func TestPureCallCarriesAnnotation(t *testing.T) {
	node := lowerExpr(t, testutil.PureCall(testutil.ReadVar("make")), translate.TierModern)
	assert.Equal(t, `(commented ((block "@__PURE__")) (call (id make)))`, jsast.Dump(node))

	plain := lowerExpr(t, testutil.Call(testutil.ReadVar("make")), translate.TierModern)
	assert.Equal(t, "(call (id make))", jsast.Dump(plain))
}

func TestInstantiate(t *testing.T) {
	node := lowerExpr(t, &ir.Instantiate{
		Class: testutil.ReadVar("Point"),
		Args:  []ir.Expression{testutil.Num(1), testutil.Num(2)},
	}, translate.TierModern)
	assert.Equal(t, "(new (id Point) (num 1) (num 2))", jsast.Dump(node))
}

func TestExternalReferences(t *testing.T) {
	t.Run("missing name fails", func(t *testing.T) {
		_, err := translate.TranslateExpression(
			&ir.External{Module: "@angular/core"},
			testutil.NewTableResolver(nil), testutil.NopRecorder{}, translate.TierModern)
		var unknownErr *translate.UnknownSymbolError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "@angular/core", unknownErr.Module)
	})

	t.Run("empty module renders bare without resolver", func(t *testing.T) {
		resolver := testutil.NewTableResolver(nil)
		node, err := translate.TranslateExpression(
			&ir.External{Name: "Math"},
			resolver, testutil.NopRecorder{}, translate.TierModern)
		require.NoError(t, err)
		assert.Equal(t, "(id Math)", jsast.Dump(node))
		assert.Empty(t, resolver.Requests)
	})

	t.Run("aliased module renders qualified", func(t *testing.T) {
		resolver := testutil.NewTableResolver(map[string]string{"@angular/core": "core"})
		node, err := translate.TranslateExpression(
			&ir.External{Module: "@angular/core", Name: "Injectable"},
			resolver, testutil.NopRecorder{}, translate.TierModern)
		require.NoError(t, err)
		assert.Equal(t, "(prop (id core) Injectable)", jsast.Dump(node))
		require.Len(t, resolver.Requests, 1)
		assert.Equal(t, testutil.ImportRequest{Module: "@angular/core", Symbol: "Injectable"}, resolver.Requests[0])
	})

	t.Run("ambient resolution renders bare", func(t *testing.T) {
		node, err := translate.TranslateExpression(
			&ir.External{Module: "globals", Name: "setTimeout"},
			testutil.AmbientResolver{}, testutil.NopRecorder{}, translate.TierModern)
		require.NoError(t, err)
		assert.Equal(t, "(id setTimeout)", jsast.Dump(node))
	})
}

func TestIfStatement(t *testing.T) {
	t.Run("empty else is omitted", func(t *testing.T) {
		node := lowerStmt(t, &ir.If{
			Condition: testutil.ReadVar("ok"),
			TrueCase:  []ir.Statement{testutil.Return(testutil.Num(1))},
		}, translate.TierModern)
		assert.Equal(t, "(if (id ok) (then (return (num 1))))", jsast.Dump(node))
	})

	t.Run("else branch present", func(t *testing.T) {
		node := lowerStmt(t, &ir.If{
			Condition: testutil.ReadVar("ok"),
			TrueCase:  []ir.Statement{testutil.Return(testutil.Num(1))},
			FalseCase: []ir.Statement{testutil.Return(testutil.Num(2))},
		}, translate.TierModern)
		assert.Equal(t,
			"(if (id ok) (then (return (num 1))) (else (return (num 2))))",
			jsast.Dump(node))
	})

	t.Run("condition keeps statement context", func(t *testing.T) {
		// A write var in the condition slot of a top-level if stays bare:
		// the condition inherits the statement context instead of being
		// forced into expression mode.
		node := lowerStmt(t, &ir.If{
			Condition: testutil.WriteVar("ok", testutil.Bool(true)),
			TrueCase:  []ir.Statement{testutil.Return(testutil.Num(1))},
		}, translate.TierModern)
		assert.Equal(t,
			"(if (assign (id ok) (bool true)) (then (return (num 1))))",
			jsast.Dump(node))
	})
}

// Function-literal bodies inherit the surrounding context while function
// declarations force their bodies into statement mode. The divergence is
// observable through if-condition parenthesization inside the body.
func TestFunctionBodyContextDivergence(t *testing.T) {
	ifStmt := &ir.If{
		Condition: testutil.WriteVar("ok", testutil.Bool(true)),
		TrueCase:  []ir.Statement{testutil.Return(testutil.Num(1))},
	}

	t.Run("function literal keeps expression context", func(t *testing.T) {
		fn := &ir.Function{Name: "f", Statements: []ir.Statement{ifStmt}}
		node := lowerExpr(t, fn, translate.TierModern)
		assert.Equal(t,
			"(func f () (if (paren (assign (id ok) (bool true))) (then (return (num 1)))))",
			jsast.Dump(node))
	})

	t.Run("function declaration forces statement mode", func(t *testing.T) {
		decl := &ir.DeclareFunction{Name: "f", Statements: []ir.Statement{ifStmt}}
		node := lowerStmt(t, decl, translate.TierModern)
		assert.Equal(t,
			"(func-decl f () (if (assign (id ok) (bool true)) (then (return (num 1)))))",
			jsast.Dump(node))
	})
}

func TestOperators(t *testing.T) {
	node := lowerExpr(t, testutil.Binary(ir.BinaryPlus, testutil.ReadVar("a"), testutil.ReadVar("b")), translate.TierModern)
	assert.Equal(t, `(binary "+" (id a) (id b))`, jsast.Dump(node))

	neg := lowerExpr(t, &ir.UnaryOp{Op: ir.UnaryMinus, Expr: testutil.ReadVar("a")}, translate.TierModern)
	assert.Equal(t, `(unary "-" (id a))`, jsast.Dump(neg))

	not := lowerExpr(t, &ir.Not{Condition: testutil.ReadVar("a")}, translate.TierModern)
	assert.Equal(t, `(unary "!" (id a))`, jsast.Dump(not))

	tof := lowerExpr(t, &ir.Typeof{Expr: testutil.ReadVar("a")}, translate.TierModern)
	assert.Equal(t, `(unary "typeof" (id a))`, jsast.Dump(tof))
}

func TestAnnotationsAreIdentity(t *testing.T) {
	assertion := lowerExpr(t, &ir.AssertNotNull{Expr: testutil.ReadVar("a")}, translate.TierModern)
	assert.Equal(t, "(id a)", jsast.Dump(assertion))

	cast := lowerExpr(t, &ir.Cast{Expr: testutil.ReadVar("a")}, translate.TierModern)
	assert.Equal(t, "(id a)", jsast.Dump(cast))
}

func TestCollectionLiterals(t *testing.T) {
	arr := lowerExpr(t, &ir.LiteralArray{
		Entries: []ir.Expression{testutil.Num(1), testutil.Str("x")},
	}, translate.TierModern)
	assert.Equal(t, `(array (num 1) (str "x"))`, jsast.Dump(arr))

	obj := lowerExpr(t, &ir.LiteralMap{
		Entries: []ir.MapEntry{
			{Key: "plain", Value: testutil.Num(1)},
			{Key: "quoted key", Quoted: true, Value: testutil.Num(2)},
		},
	}, translate.TierModern)
	assert.Equal(t, `(object (entry plain (num 1)) (entry "quoted key" (num 2)))`, jsast.Dump(obj))
}

func TestUnsupportedConstructs(t *testing.T) {
	resolver := testutil.NewTableResolver(nil)

	t.Run("class declaration on modern tier", func(t *testing.T) {
		_, err := translate.TranslateStatement(
			&ir.DeclareClass{Name: "Widget"},
			resolver, testutil.NopRecorder{}, translate.TierModern)
		var unsupported *translate.UnsupportedError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "class declaration", unsupported.Construct)
		assert.Empty(t, unsupported.Detail)
	})

	t.Run("class declaration on legacy tier names the gap", func(t *testing.T) {
		_, err := translate.TranslateStatement(
			&ir.DeclareClass{Name: "Widget"},
			resolver, testutil.NopRecorder{}, translate.TierLegacy)
		var unsupported *translate.UnsupportedError
		require.ErrorAs(t, err, &unsupported)
		assert.Contains(t, unsupported.Detail, "legacy")
	})

	t.Run("try catch", func(t *testing.T) {
		_, err := translate.TranslateStatement(
			&ir.TryCatch{}, resolver, testutil.NopRecorder{}, translate.TierModern)
		var unsupported *translate.UnsupportedError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "try/catch statement", unsupported.Construct)
	})

	t.Run("comma expression", func(t *testing.T) {
		_, err := translate.TranslateExpression(
			&ir.Comma{}, resolver, testutil.NopRecorder{}, translate.TierModern)
		var unsupported *translate.UnsupportedError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "comma expression", unsupported.Construct)
	})

	t.Run("failure inside a subtree aborts the run", func(t *testing.T) {
		_, err := translate.TranslateExpression(
			testutil.Call(testutil.ReadVar("f"), &ir.Comma{}),
			resolver, testutil.NopRecorder{}, translate.TierModern)
		require.Error(t, err)
	})
}

func TestWrappedNode(t *testing.T) {
	t.Run("passthrough expression", func(t *testing.T) {
		pre := &jsast.Binary{Op: "+", Lhs: &jsast.NumberLit{Value: 1}, Rhs: &jsast.NumberLit{Value: 2}}
		node := lowerExpr(t, &ir.WrappedNode{Node: pre}, translate.TierModern)
		assert.Same(t, jsast.Expr(pre), node)
	})

	t.Run("identifier is recorded", func(t *testing.T) {
		recorder := &testutil.RecordingRecorder{}
		id := &jsast.Identifier{Name: "injected"}
		_, err := translate.TranslateExpression(
			&ir.WrappedNode{Node: id},
			testutil.NewTableResolver(nil), recorder, translate.TierModern)
		require.NoError(t, err)
		assert.Equal(t, []string{"injected"}, recorder.Names)
	})

	t.Run("non expression payload fails", func(t *testing.T) {
		_, err := translate.TranslateExpression(
			&ir.WrappedNode{Node: "not a node"},
			testutil.NewTableResolver(nil), testutil.NopRecorder{}, translate.TierModern)
		var unsupported *translate.UnsupportedError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "wrapped node", unsupported.Construct)
	})
}

func TestCommentAttachment(t *testing.T) {
	t.Run("block comment is one unit", func(t *testing.T) {
		stmt := &ir.Return{
			StmtBase: ir.StmtBase{LeadingComments: []ir.LeadingComment{
				{Text: "first\nsecond", Multiline: true},
			}},
			Value: testutil.Num(1),
		}
		node := lowerStmt(t, stmt, translate.TierModern)
		assert.Equal(t,
			`(commented ((block "first\nsecond")) (return (num 1)))`,
			jsast.Dump(node))
	})

	t.Run("line comment splits per line", func(t *testing.T) {
		stmt := &ir.Return{
			StmtBase: ir.StmtBase{LeadingComments: []ir.LeadingComment{
				{Text: "first\nsecond\nthird", TrailingNewline: true},
			}},
			Value: testutil.Num(1),
		}
		node := lowerStmt(t, stmt, translate.TierModern)
		assert.Equal(t,
			`(commented ((line "first" +nl) (line "second" +nl) (line "third" +nl)) (return (num 1)))`,
			jsast.Dump(node))
	})
}

func TestSourceMappings(t *testing.T) {
	t.Run("span carries through", func(t *testing.T) {
		expr := &ir.ReadVar{
			ExprBase: ir.ExprBase{SourceSpan: testutil.Span("app.html", 4, 9)},
			Name:     "count",
		}
		node := lowerExpr(t, expr, translate.TierModern)
		assert.Equal(t, "(id count)@app.html[4:9]", jsast.Dump(node))
	})

	t.Run("one run shares file descriptors", func(t *testing.T) {
		file := &ir.SourceFile{URL: "app.html"}
		lhs := &ir.ReadVar{
			ExprBase: ir.ExprBase{SourceSpan: &ir.SourceSpan{File: file, Start: 0, End: 1}},
			Name:     "a",
		}
		rhs := &ir.ReadVar{
			ExprBase: ir.ExprBase{SourceSpan: &ir.SourceSpan{File: file, Start: 4, End: 5}},
			Name:     "b",
		}
		node := lowerExpr(t, testutil.Binary(ir.BinaryPlus, lhs, rhs), translate.TierModern)

		bin := node.(*jsast.Binary)
		left := bin.Lhs.(*jsast.Identifier)
		right := bin.Rhs.(*jsast.Identifier)
		require.NotNil(t, left.Mapping)
		require.NotNil(t, right.Mapping)
		assert.Same(t, left.Mapping.File, right.Mapping.File)
	})
}
