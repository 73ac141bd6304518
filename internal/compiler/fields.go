package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/slate-compiler/slate/internal/ir"
)

func nodeKind(v cue.Value) (string, error) {
	return stringField(v, "kind")
}

func stringField(v cue.Value, field string) (string, error) {
	fieldVal := v.LookupPath(cue.MakePath(cue.Str(field)))
	if !fieldVal.Exists() {
		return "", &CompileError{
			Field:   field,
			Message: "required field missing",
			Pos:     v.Pos(),
		}
	}
	s, err := fieldVal.String()
	if err != nil {
		return "", &CompileError{
			Field:   field,
			Message: fmt.Sprintf("must be a string: %v", err),
			Pos:     fieldVal.Pos(),
		}
	}
	return s, nil
}

func optionalString(v cue.Value, field string) (string, bool) {
	fieldVal := v.LookupPath(cue.MakePath(cue.Str(field)))
	if !fieldVal.Exists() {
		return "", false
	}
	s, err := fieldVal.String()
	if err != nil {
		return "", false
	}
	return s, true
}

func boolField(v cue.Value, field string) (bool, error) {
	fieldVal := v.LookupPath(cue.MakePath(cue.Str(field)))
	if !fieldVal.Exists() {
		return false, nil
	}
	b, err := fieldVal.Bool()
	if err != nil {
		return false, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("must be a bool: %v", err),
			Pos:     fieldVal.Pos(),
		}
	}
	return b, nil
}

func stringList(v cue.Value, field string) ([]string, error) {
	fieldVal := v.LookupPath(cue.MakePath(cue.Str(field)))
	if !fieldVal.Exists() {
		return nil, nil
	}
	iter, err := fieldVal.List()
	if err != nil {
		return nil, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("must be a list: %v", err),
			Pos:     fieldVal.Pos(),
		}
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{
				Field:   field,
				Message: fmt.Sprintf("entries must be strings: %v", err),
				Pos:     iter.Value().Pos(),
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func (c *Compiler) expressionField(v cue.Value, field string) (ir.Expression, error) {
	fieldVal := v.LookupPath(cue.MakePath(cue.Str(field)))
	if !fieldVal.Exists() {
		return nil, &CompileError{
			Field:   field,
			Message: "required field missing",
			Pos:     v.Pos(),
		}
	}
	return c.CompileExpression(fieldVal)
}

func (c *Compiler) expressionList(v cue.Value, field string) ([]ir.Expression, error) {
	fieldVal := v.LookupPath(cue.MakePath(cue.Str(field)))
	if !fieldVal.Exists() {
		return nil, nil
	}
	iter, err := fieldVal.List()
	if err != nil {
		return nil, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("must be a list: %v", err),
			Pos:     fieldVal.Pos(),
		}
	}
	var out []ir.Expression
	for iter.Next() {
		expr, err := c.CompileExpression(iter.Value())
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

func (c *Compiler) statementList(v cue.Value, field string) ([]ir.Statement, error) {
	fieldVal := v.LookupPath(cue.MakePath(cue.Str(field)))
	if !fieldVal.Exists() {
		return nil, nil
	}
	iter, err := fieldVal.List()
	if err != nil {
		return nil, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("must be a list: %v", err),
			Pos:     fieldVal.Pos(),
		}
	}
	var out []ir.Statement
	for iter.Next() {
		stmt, err := c.CompileStatement(iter.Value())
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func (c *Compiler) params(v cue.Value) ([]ir.FnParam, error) {
	names, err := stringList(v, "params")
	if err != nil {
		return nil, err
	}
	params := make([]ir.FnParam, len(names))
	for i, name := range names {
		params[i] = ir.FnParam{Name: name}
	}
	return params, nil
}

func (c *Compiler) mapEntries(v cue.Value) ([]ir.MapEntry, error) {
	fieldVal := v.LookupPath(cue.MakePath(cue.Str("entries")))
	if !fieldVal.Exists() {
		return nil, nil
	}
	iter, err := fieldVal.List()
	if err != nil {
		return nil, &CompileError{
			Field:   "entries",
			Message: fmt.Sprintf("must be a list: %v", err),
			Pos:     fieldVal.Pos(),
		}
	}
	var out []ir.MapEntry
	for iter.Next() {
		entryVal := iter.Value()
		key, err := stringField(entryVal, "key")
		if err != nil {
			return nil, err
		}
		quoted, err := boolField(entryVal, "quoted")
		if err != nil {
			return nil, err
		}
		value, err := c.expressionField(entryVal, "value")
		if err != nil {
			return nil, err
		}
		out = append(out, ir.MapEntry{Key: key, Quoted: quoted, Value: value})
	}
	return out, nil
}

// literalValue decodes the "value" field of a literal node. An absent field
// means undefined; CUE null means null.
func literalValue(v cue.Value) (ir.LiteralValue, error) {
	fieldVal := v.LookupPath(cue.MakePath(cue.Str("value")))
	if !fieldVal.Exists() {
		return ir.Undefined{}, nil
	}
	switch fieldVal.Kind() {
	case cue.NullKind:
		return ir.Null{}, nil
	case cue.StringKind:
		s, err := fieldVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.Str(s), nil
	case cue.BoolKind:
		b, err := fieldVal.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.Bool(b), nil
	case cue.IntKind, cue.FloatKind, cue.NumberKind:
		f, err := fieldVal.Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.Num(f), nil
	default:
		return nil, &CompileError{
			Field:   "value",
			Message: fmt.Sprintf("unsupported literal kind %v", fieldVal.Kind()),
			Pos:     fieldVal.Pos(),
		}
	}
}

func (c *Compiler) exprBase(v cue.Value) (ir.ExprBase, error) {
	span, err := c.span(v)
	if err != nil {
		return ir.ExprBase{}, err
	}
	return ir.ExprBase{SourceSpan: span}, nil
}

func (c *Compiler) stmtBase(v cue.Value) (ir.StmtBase, error) {
	span, err := c.span(v)
	if err != nil {
		return ir.StmtBase{}, err
	}
	comments, err := c.comments(v)
	if err != nil {
		return ir.StmtBase{}, err
	}
	return ir.StmtBase{SourceSpan: span, LeadingComments: comments}, nil
}

// span parses an optional {url, content?, start, end} struct and interns the
// source-file descriptor by URL.
func (c *Compiler) span(v cue.Value) (*ir.SourceSpan, error) {
	spanVal := v.LookupPath(cue.MakePath(cue.Str("span")))
	if !spanVal.Exists() {
		return nil, nil
	}
	url, err := stringField(spanVal, "url")
	if err != nil {
		return nil, err
	}
	file, ok := c.files[url]
	if !ok {
		content, _ := optionalString(spanVal, "content")
		file = &ir.SourceFile{URL: url, Content: content}
		c.files[url] = file
	}
	start, err := intField(spanVal, "start")
	if err != nil {
		return nil, err
	}
	end, err := intField(spanVal, "end")
	if err != nil {
		return nil, err
	}
	return &ir.SourceSpan{File: file, Start: start, End: end}, nil
}

func intField(v cue.Value, field string) (int, error) {
	fieldVal := v.LookupPath(cue.MakePath(cue.Str(field)))
	if !fieldVal.Exists() {
		return 0, &CompileError{
			Field:   field,
			Message: "required field missing",
			Pos:     v.Pos(),
		}
	}
	n, err := fieldVal.Int64()
	if err != nil {
		return 0, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("must be an integer: %v", err),
			Pos:     fieldVal.Pos(),
		}
	}
	return int(n), nil
}

func (c *Compiler) comments(v cue.Value) ([]ir.LeadingComment, error) {
	fieldVal := v.LookupPath(cue.MakePath(cue.Str("comments")))
	if !fieldVal.Exists() {
		return nil, nil
	}
	iter, err := fieldVal.List()
	if err != nil {
		return nil, &CompileError{
			Field:   "comments",
			Message: fmt.Sprintf("must be a list: %v", err),
			Pos:     fieldVal.Pos(),
		}
	}
	var out []ir.LeadingComment
	for iter.Next() {
		entryVal := iter.Value()
		text, err := stringField(entryVal, "text")
		if err != nil {
			return nil, err
		}
		multiline, err := boolField(entryVal, "multiline")
		if err != nil {
			return nil, err
		}
		trailingNewline, err := boolField(entryVal, "trailingNewline")
		if err != nil {
			return nil, err
		}
		out = append(out, ir.LeadingComment{Text: text, Multiline: multiline, TrailingNewline: trailingNewline})
	}
	return out, nil
}

// localizedString parses a "localized" node. Message parts and metadata come
// in authored form; cooked and raw variants are derived at construction so
// downstream lowering sees both.
func (c *Compiler) localizedString(v cue.Value, base ir.ExprBase) (ir.Expression, error) {
	parts, err := stringList(v, "messageParts")
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, &CompileError{
			Field:   "messageParts",
			Message: "localized string needs at least one message part",
			Pos:     v.Pos(),
		}
	}
	placeholders, err := stringList(v, "placeholderNames")
	if err != nil {
		return nil, err
	}
	exprs, err := c.expressionList(v, "expressions")
	if err != nil {
		return nil, err
	}
	if len(placeholders) != len(exprs) || len(parts) != len(exprs)+1 {
		return nil, &CompileError{
			Field:   "expressions",
			Message: fmt.Sprintf("message shape mismatch: %d parts, %d placeholders, %d expressions",
				len(parts), len(placeholders), len(exprs)),
			Pos: v.Pos(),
		}
	}

	meta := ir.MessageMeta{}
	if metaVal := v.LookupPath(cue.MakePath(cue.Str("meta"))); metaVal.Exists() {
		meta.Meaning, _ = optionalString(metaVal, "meaning")
		meta.Description, _ = optionalString(metaVal, "description")
		meta.CustomID, _ = optionalString(metaVal, "customId")
		meta.LegacyIDs, err = stringList(metaVal, "legacyIds")
		if err != nil {
			return nil, err
		}
	}

	return ir.NewLocalizedString(base, meta, parts, placeholders, exprs), nil
}
