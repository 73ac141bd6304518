package translate

import (
	"github.com/slate-compiler/slate/internal/ir"
	"github.com/slate-compiler/slate/internal/jsast"
)

// The well-known localization tag recognized by the output runtime, and the
// runtime support helper used to reconstruct a tagged-template object on
// tiers without template-literal syntax.
const (
	localizeName         = "$localize"
	runtimeModule        = "tslib"
	templateObjectHelper = "__makeTemplateObject"
)

// localizedString lowers a localized message. The capability tier is the
// only decision variable: both forms carry identical cooked/raw segments
// and splice the same expressions in the same order.
func (t *translator) localizedString(ls *ir.LocalizedString, ctx Context) (jsast.Expr, error) {
	if t.tier >= TierModern {
		return t.localizeTaggedTemplate(ls, ctx)
	}
	return t.localizeHelperCall(ls, ctx)
}

// localizeTaggedTemplate renders $localize`...` with one template element
// per message segment and one spliced expression per placeholder.
func (t *translator) localizeTaggedTemplate(ls *ir.LocalizedString, ctx Context) (jsast.Expr, error) {
	head := ls.SerializeHead()
	elements := []jsast.TemplateElement{{
		Cooked:  head.Cooked,
		Raw:     head.Raw,
		Mapping: t.mapping(head.SourceSpan),
	}}
	expressions := make([]jsast.Expr, 0, len(ls.Expressions))
	for i, expr := range ls.Expressions {
		spliced, err := t.translateExpression(expr, ctx)
		if err != nil {
			return nil, err
		}
		jsast.SetMapping(spliced, t.mapping(ls.PlaceholderSpan(i)))
		expressions = append(expressions, spliced)

		part := ls.SerializePart(i + 1)
		elements = append(elements, jsast.TemplateElement{
			Cooked:  part.Cooked,
			Raw:     part.Raw,
			Mapping: t.mapping(part.SourceSpan),
		})
	}
	node := &jsast.TaggedTemplate{
		Tag:      &jsast.Identifier{Name: localizeName},
		Template: &jsast.TemplateLiteral{Elements: elements, Expressions: expressions},
	}
	jsast.SetMapping(node, t.mapping(ls.Span()))
	return node, nil
}

// localizeHelperCall renders the legacy function-call form:
//
//	$localize(__makeTemplateObject(cooked, raw), expr...)
//
// reconstructing the tagged-template object through the runtime support
// helper resolved by the import collaborator.
func (t *translator) localizeHelperCall(ls *ir.LocalizedString, ctx Context) (jsast.Expr, error) {
	head := ls.SerializeHead()
	cooked := []jsast.Expr{t.segmentLiteral(head.Cooked, head.SourceSpan)}
	raw := []jsast.Expr{t.segmentLiteral(head.Raw, head.SourceSpan)}
	args := make([]jsast.Expr, 0, len(ls.Expressions)+1)
	for i, expr := range ls.Expressions {
		spliced, err := t.translateExpression(expr, ctx)
		if err != nil {
			return nil, err
		}
		jsast.SetMapping(spliced, t.mapping(ls.PlaceholderSpan(i)))
		args = append(args, spliced)

		part := ls.SerializePart(i + 1)
		cooked = append(cooked, t.segmentLiteral(part.Cooked, part.SourceSpan))
		raw = append(raw, t.segmentLiteral(part.Raw, part.SourceSpan))
	}

	resolved := t.imports.ImportSymbol(runtimeModule, templateObjectHelper)
	var helper jsast.Expr
	if resolved.Alias == "" {
		helper = &jsast.Identifier{Name: resolved.Symbol}
	} else {
		helper = &jsast.PropAccess{
			Receiver: &jsast.Identifier{Name: resolved.Alias},
			Name:     resolved.Symbol,
		}
	}
	templateObject := &jsast.Call{
		Callee: helper,
		Args: []jsast.Expr{
			&jsast.ArrayLit{Elements: cooked},
			&jsast.ArrayLit{Elements: raw},
		},
	}
	node := &jsast.Call{
		Callee: &jsast.Identifier{Name: localizeName},
		Args:   append([]jsast.Expr{templateObject}, args...),
	}
	jsast.SetMapping(node, t.mapping(ls.Span()))
	return node, nil
}

func (t *translator) segmentLiteral(text string, span *ir.SourceSpan) jsast.Expr {
	lit := &jsast.StringLit{Value: text}
	jsast.SetMapping(lit, t.mapping(span))
	return lit
}
