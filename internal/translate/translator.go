package translate

import (
	"fmt"

	"github.com/slate-compiler/slate/internal/ir"
	"github.com/slate-compiler/slate/internal/jsast"
)

// translator is one translation run. It owns the source-file descriptor
// cache; the cache and the translator are discarded together, so separate
// runs never share mutable state.
type translator struct {
	tier     Tier
	imports  ImportResolver
	recorder ImportRecorder
	files    map[string]*jsast.SourceFile
}

func newTranslator(imports ImportResolver, recorder ImportRecorder, tier Tier) *translator {
	return &translator{
		tier:     tier,
		imports:  imports,
		recorder: recorder,
		files:    make(map[string]*jsast.SourceFile),
	}
}

func (t *translator) translateStatement(stmt ir.Statement, ctx Context) (jsast.Stmt, error) {
	switch s := stmt.(type) {
	case *ir.DeclareVar:
		return t.declareVar(s, ctx)

	case *ir.DeclareFunction:
		body, err := t.translateStatements(s.Statements, ctx.WithStatementMode())
		if err != nil {
			return nil, err
		}
		decl := &jsast.FuncDecl{Name: s.Name, Params: paramNames(s.Params), Body: body}
		jsast.SetMapping(decl, t.mapping(s.Span()))
		attachComments(decl, s.Comments())
		return decl, nil

	case *ir.DeclareClass:
		// Class lowering is not implemented at any tier; on the legacy
		// tier the message also names the capability gap.
		detail := ""
		if t.tier < TierModern {
			detail = fmt.Sprintf("class statements are not available on the %s tier", t.tier)
		}
		return nil, &UnsupportedError{Construct: "class declaration", Detail: detail}

	case *ir.ExpressionStatement:
		// The contained expression is in statement position, so assignments
		// inside it stay unparenthesized.
		expr, err := t.translateExpression(s.Expr, ctx.WithStatementMode())
		if err != nil {
			return nil, err
		}
		node := &jsast.ExprStmt{Expr: expr}
		jsast.SetMapping(node, t.mapping(s.Span()))
		attachComments(node, s.Comments())
		return node, nil

	case *ir.Return:
		value, err := t.translateExpression(s.Value, ctx.WithExpressionMode())
		if err != nil {
			return nil, err
		}
		node := &jsast.Return{Value: value}
		jsast.SetMapping(node, t.mapping(s.Span()))
		attachComments(node, s.Comments())
		return node, nil

	case *ir.If:
		// The condition keeps the incoming context on purpose.
		cond, err := t.translateExpression(s.Condition, ctx)
		if err != nil {
			return nil, err
		}
		then, err := t.translateStatements(s.TrueCase, ctx.WithStatementMode())
		if err != nil {
			return nil, err
		}
		node := &jsast.If{Test: cond, Then: then}
		if len(s.FalseCase) > 0 {
			node.Else, err = t.translateStatements(s.FalseCase, ctx.WithStatementMode())
			if err != nil {
				return nil, err
			}
		}
		jsast.SetMapping(node, t.mapping(s.Span()))
		attachComments(node, s.Comments())
		return node, nil

	case *ir.TryCatch:
		return nil, &UnsupportedError{Construct: "try/catch statement"}

	case *ir.Throw:
		value, err := t.translateExpression(s.Error, ctx.WithExpressionMode())
		if err != nil {
			return nil, err
		}
		node := &jsast.Throw{Value: value}
		jsast.SetMapping(node, t.mapping(s.Span()))
		attachComments(node, s.Comments())
		return node, nil

	default:
		return nil, &UnsupportedError{Construct: fmt.Sprintf("statement %T", stmt)}
	}
}

func (t *translator) declareVar(s *ir.DeclareVar, ctx Context) (jsast.Stmt, error) {
	// Block-scoped bindings only exist on the modern tier; below it every
	// declaration degrades to var regardless of the final flag.
	kind := jsast.DeclVar
	if t.tier >= TierModern {
		if s.HasModifier(ir.ModifierFinal) {
			kind = jsast.DeclConst
		} else {
			kind = jsast.DeclLet
		}
	}
	node := &jsast.VarDecl{Kind: kind, Name: s.Name}
	if s.Value != nil {
		init, err := t.translateExpression(s.Value, ctx.WithExpressionMode())
		if err != nil {
			return nil, err
		}
		node.Init = init
	}
	jsast.SetMapping(node, t.mapping(s.Span()))
	attachComments(node, s.Comments())
	return node, nil
}

func (t *translator) translateStatements(stmts []ir.Statement, ctx Context) ([]jsast.Stmt, error) {
	out := make([]jsast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		node, err := t.translateStatement(s, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

func (t *translator) translateExpression(expr ir.Expression, ctx Context) (jsast.Expr, error) {
	switch e := expr.(type) {
	case *ir.ReadVar:
		id := &jsast.Identifier{Name: e.Name}
		jsast.SetMapping(id, t.mapping(e.Span()))
		return id, nil

	case *ir.WriteVar:
		value, err := t.translateExpression(e.Value, ctx)
		if err != nil {
			return nil, err
		}
		target := &jsast.Identifier{Name: e.Name}
		jsast.SetMapping(target, t.mapping(e.Span()))
		return parenInExprPosition(&jsast.Assign{Target: target, Value: value}, ctx), nil

	case *ir.WriteKey:
		exprCtx := ctx.WithExpressionMode()
		receiver, err := t.translateExpression(e.Receiver, exprCtx)
		if err != nil {
			return nil, err
		}
		index, err := t.translateExpression(e.Index, exprCtx)
		if err != nil {
			return nil, err
		}
		value, err := t.translateExpression(e.Value, exprCtx)
		if err != nil {
			return nil, err
		}
		target := &jsast.KeyAccess{Receiver: receiver, Key: index}
		return parenInExprPosition(&jsast.Assign{Target: target, Value: value}, ctx), nil

	case *ir.WriteProp:
		// Unlike variable and keyed writes, property writes are never
		// parenthesized in expression position.
		receiver, err := t.translateExpression(e.Receiver, ctx)
		if err != nil {
			return nil, err
		}
		value, err := t.translateExpression(e.Value, ctx)
		if err != nil {
			return nil, err
		}
		target := &jsast.PropAccess{Receiver: receiver, Name: e.Name}
		return &jsast.Assign{Target: target, Value: value}, nil

	case *ir.InvokeMethod:
		receiver, err := t.translateExpression(e.Receiver, ctx)
		if err != nil {
			return nil, err
		}
		args, err := t.translateExpressions(e.Args, ctx)
		if err != nil {
			return nil, err
		}
		// An empty method name means the receiver itself is the callee.
		callee := receiver
		if e.Method != "" {
			callee = &jsast.PropAccess{Receiver: receiver, Name: e.Method}
		}
		call := &jsast.Call{Callee: callee, Args: args}
		jsast.SetMapping(call, t.mapping(e.Span()))
		return call, nil

	case *ir.InvokeFunction:
		fn, err := t.translateExpression(e.Fn, ctx)
		if err != nil {
			return nil, err
		}
		args, err := t.translateExpressions(e.Args, ctx)
		if err != nil {
			return nil, err
		}
		call := &jsast.Call{Callee: fn, Args: args}
		if e.Pure {
			jsast.AttachTrivia(call, jsast.Trivia{Text: "@__PURE__", Multiline: true})
		}
		jsast.SetMapping(call, t.mapping(e.Span()))
		return call, nil

	case *ir.Instantiate:
		class, err := t.translateExpression(e.Class, ctx)
		if err != nil {
			return nil, err
		}
		args, err := t.translateExpressions(e.Args, ctx)
		if err != nil {
			return nil, err
		}
		node := &jsast.New{Callee: class, Args: args}
		jsast.SetMapping(node, t.mapping(e.Span()))
		return node, nil

	case *ir.Literal:
		return t.literal(e)

	case *ir.LocalizedString:
		return t.localizedString(e, ctx)

	case *ir.External:
		return t.external(e)

	case *ir.Conditional:
		cond, err := t.translateExpression(e.Condition, ctx)
		if err != nil {
			return nil, err
		}
		// Output ternaries are right-associative. A conditional in the
		// condition slot encodes a left-associative chain; explicit
		// grouping keeps its meaning.
		if _, nested := e.Condition.(*ir.Conditional); nested {
			cond = &jsast.Paren{Expr: cond}
		}
		trueCase, err := t.translateExpression(e.TrueCase, ctx)
		if err != nil {
			return nil, err
		}
		falseCase, err := t.translateExpression(e.FalseCase, ctx)
		if err != nil {
			return nil, err
		}
		node := &jsast.Conditional{Test: cond, Consequent: trueCase, Alternate: falseCase}
		jsast.SetMapping(node, t.mapping(e.Span()))
		return node, nil

	case *ir.Not:
		operand, err := t.translateExpression(e.Condition, ctx)
		if err != nil {
			return nil, err
		}
		return &jsast.Unary{Op: "!", Operand: operand}, nil

	case *ir.AssertNotNull:
		// Compile-time annotation with no runtime form; lowering is the
		// identity on the inner expression.
		return t.translateExpression(e.Expr, ctx)

	case *ir.Cast:
		return t.translateExpression(e.Expr, ctx)

	case *ir.Function:
		body, err := t.translateStatements(e.Statements, ctx)
		if err != nil {
			return nil, err
		}
		node := &jsast.FuncExpr{Name: e.Name, Params: paramNames(e.Params), Body: body}
		jsast.SetMapping(node, t.mapping(e.Span()))
		return node, nil

	case *ir.UnaryOp:
		tok, err := unaryToken(e.Op)
		if err != nil {
			return nil, err
		}
		operand, err := t.translateExpression(e.Expr, ctx)
		if err != nil {
			return nil, err
		}
		node := &jsast.Unary{Op: tok, Operand: operand}
		jsast.SetMapping(node, t.mapping(e.Span()))
		return node, nil

	case *ir.BinaryOp:
		tok, err := binaryToken(e.Op)
		if err != nil {
			return nil, err
		}
		lhs, err := t.translateExpression(e.Lhs, ctx)
		if err != nil {
			return nil, err
		}
		rhs, err := t.translateExpression(e.Rhs, ctx)
		if err != nil {
			return nil, err
		}
		node := &jsast.Binary{Op: tok, Lhs: lhs, Rhs: rhs}
		jsast.SetMapping(node, t.mapping(e.Span()))
		return node, nil

	case *ir.ReadProp:
		receiver, err := t.translateExpression(e.Receiver, ctx)
		if err != nil {
			return nil, err
		}
		return &jsast.PropAccess{Receiver: receiver, Name: e.Name}, nil

	case *ir.ReadKey:
		receiver, err := t.translateExpression(e.Receiver, ctx)
		if err != nil {
			return nil, err
		}
		key, err := t.translateExpression(e.Index, ctx)
		if err != nil {
			return nil, err
		}
		return &jsast.KeyAccess{Receiver: receiver, Key: key}, nil

	case *ir.LiteralArray:
		elements, err := t.translateExpressions(e.Entries, ctx)
		if err != nil {
			return nil, err
		}
		node := &jsast.ArrayLit{Elements: elements}
		jsast.SetMapping(node, t.mapping(e.Span()))
		return node, nil

	case *ir.LiteralMap:
		entries := make([]jsast.ObjectEntry, 0, len(e.Entries))
		for _, entry := range e.Entries {
			value, err := t.translateExpression(entry.Value, ctx)
			if err != nil {
				return nil, err
			}
			entries = append(entries, jsast.ObjectEntry{Key: entry.Key, Quoted: entry.Quoted, Value: value})
		}
		node := &jsast.ObjectLit{Entries: entries}
		jsast.SetMapping(node, t.mapping(e.Span()))
		return node, nil

	case *ir.Comma:
		return nil, &UnsupportedError{Construct: "comma expression"}

	case *ir.WrappedNode:
		node, ok := e.Node.(jsast.Expr)
		if !ok {
			return nil, &UnsupportedError{
				Construct: "wrapped node",
				Detail:    fmt.Sprintf("%T is not an output expression", e.Node),
			}
		}
		if id, isID := node.(*jsast.Identifier); isID && t.recorder != nil {
			t.recorder.RecordUsedIdentifier(id)
		}
		return node, nil

	case *ir.Typeof:
		operand, err := t.translateExpression(e.Expr, ctx)
		if err != nil {
			return nil, err
		}
		node := &jsast.Unary{Op: "typeof", Operand: operand}
		jsast.SetMapping(node, t.mapping(e.Span()))
		return node, nil

	default:
		return nil, &UnsupportedError{Construct: fmt.Sprintf("expression %T", expr)}
	}
}

func (t *translator) translateExpressions(exprs []ir.Expression, ctx Context) ([]jsast.Expr, error) {
	out := make([]jsast.Expr, 0, len(exprs))
	for _, e := range exprs {
		node, err := t.translateExpression(e, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

func (t *translator) literal(e *ir.Literal) (jsast.Expr, error) {
	var node jsast.Expr
	switch v := e.Value.(type) {
	case ir.Undefined:
		// undefined has no literal form; it renders as the global
		// identifier.
		node = &jsast.Identifier{Name: "undefined"}
	case ir.Null:
		node = &jsast.NullLit{}
	case ir.Str:
		node = &jsast.StringLit{Value: string(v)}
	case ir.Num:
		node = &jsast.NumberLit{Value: float64(v)}
	case ir.Bool:
		node = &jsast.BoolLit{Value: bool(v)}
	default:
		return nil, &UnsupportedError{
			Construct: "literal value",
			Detail:    ir.FormatLiteral(e.Value),
		}
	}
	jsast.SetMapping(node, t.mapping(e.Span()))
	return node, nil
}

func (t *translator) external(e *ir.External) (jsast.Expr, error) {
	if e.Name == "" {
		return nil, &UnknownSymbolError{Module: e.Module}
	}
	if e.Module == "" {
		// No module name: the symbol is ambient and renders bare, with no
		// resolver involvement.
		return &jsast.Identifier{Name: e.Name}, nil
	}
	resolved := t.imports.ImportSymbol(e.Module, e.Name)
	if resolved.Alias == "" {
		return &jsast.Identifier{Name: resolved.Symbol}, nil
	}
	return &jsast.PropAccess{
		Receiver: &jsast.Identifier{Name: resolved.Alias},
		Name:     resolved.Symbol,
	}, nil
}

// parenInExprPosition wraps an assignment in grouping parentheses unless it
// stands as a full statement, where the bare form is always valid.
func parenInExprPosition(assign *jsast.Assign, ctx Context) jsast.Expr {
	if ctx.IsStatement() {
		return assign
	}
	return &jsast.Paren{Expr: assign}
}

func paramNames(params []ir.FnParam) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}
