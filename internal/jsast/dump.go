package jsast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders a stable, fully parenthesized s-expression view of a node,
// including attached trivia and source mappings. The format exists for
// golden tests and CLI inspection; it is not JavaScript source.
func Dump(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

// DumpStatements renders a statement list one statement per line.
func DumpStatements(stmts []Stmt) string {
	var sb strings.Builder
	for _, s := range stmts {
		writeNode(&sb, s)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node) {
	b := n.base()
	if len(b.Leading) > 0 {
		sb.WriteString("(commented (")
		for i, tr := range b.Leading {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeTrivia(sb, tr)
		}
		sb.WriteString(") ")
		writeBare(sb, n)
		sb.WriteByte(')')
	} else {
		writeBare(sb, n)
	}
	if b.Mapping != nil {
		fmt.Fprintf(sb, "@%s[%d:%d]", b.Mapping.File.URL, b.Mapping.Start, b.Mapping.End)
	}
}

func writeTrivia(sb *strings.Builder, tr Trivia) {
	kind := "line"
	if tr.Multiline {
		kind = "block"
	}
	fmt.Fprintf(sb, "(%s %s", kind, strconv.Quote(tr.Text))
	if tr.TrailingNewline {
		sb.WriteString(" +nl")
	}
	sb.WriteByte(')')
}

func writeBare(sb *strings.Builder, n Node) {
	switch node := n.(type) {
	case *Identifier:
		fmt.Fprintf(sb, "(id %s)", node.Name)
	case *NullLit:
		sb.WriteString("(null)")
	case *StringLit:
		fmt.Fprintf(sb, "(str %s)", strconv.Quote(node.Value))
	case *NumberLit:
		fmt.Fprintf(sb, "(num %s)", strconv.FormatFloat(node.Value, 'g', -1, 64))
	case *BoolLit:
		fmt.Fprintf(sb, "(bool %t)", node.Value)
	case *TemplateLiteral:
		sb.WriteString("(template")
		for i, el := range node.Elements {
			sb.WriteByte(' ')
			writeTemplateElement(sb, el)
			if i < len(node.Expressions) {
				sb.WriteByte(' ')
				writeNode(sb, node.Expressions[i])
			}
		}
		sb.WriteByte(')')
	case *TaggedTemplate:
		sb.WriteString("(tagged-template ")
		writeNode(sb, node.Tag)
		sb.WriteByte(' ')
		writeNode(sb, node.Template)
		sb.WriteByte(')')
	case *Call:
		sb.WriteString("(call ")
		writeNode(sb, node.Callee)
		writeArgs(sb, node.Args)
		sb.WriteByte(')')
	case *New:
		sb.WriteString("(new ")
		writeNode(sb, node.Callee)
		writeArgs(sb, node.Args)
		sb.WriteByte(')')
	case *Assign:
		sb.WriteString("(assign ")
		writeNode(sb, node.Target)
		sb.WriteByte(' ')
		writeNode(sb, node.Value)
		sb.WriteByte(')')
	case *Paren:
		sb.WriteString("(paren ")
		writeNode(sb, node.Expr)
		sb.WriteByte(')')
	case *Conditional:
		sb.WriteString("(cond ")
		writeNode(sb, node.Test)
		sb.WriteByte(' ')
		writeNode(sb, node.Consequent)
		sb.WriteByte(' ')
		writeNode(sb, node.Alternate)
		sb.WriteByte(')')
	case *Unary:
		fmt.Fprintf(sb, "(unary %q ", node.Op)
		writeNode(sb, node.Operand)
		sb.WriteByte(')')
	case *Binary:
		fmt.Fprintf(sb, "(binary %q ", node.Op)
		writeNode(sb, node.Lhs)
		sb.WriteByte(' ')
		writeNode(sb, node.Rhs)
		sb.WriteByte(')')
	case *PropAccess:
		sb.WriteString("(prop ")
		writeNode(sb, node.Receiver)
		fmt.Fprintf(sb, " %s)", node.Name)
	case *KeyAccess:
		sb.WriteString("(key ")
		writeNode(sb, node.Receiver)
		sb.WriteByte(' ')
		writeNode(sb, node.Key)
		sb.WriteByte(')')
	case *ArrayLit:
		sb.WriteString("(array")
		writeArgs(sb, node.Elements)
		sb.WriteByte(')')
	case *ObjectLit:
		sb.WriteString("(object")
		for _, e := range node.Entries {
			key := e.Key
			if e.Quoted {
				key = strconv.Quote(e.Key)
			}
			fmt.Fprintf(sb, " (entry %s ", key)
			writeNode(sb, e.Value)
			sb.WriteByte(')')
		}
		sb.WriteByte(')')
	case *FuncExpr:
		sb.WriteString("(func")
		if node.Name != "" {
			sb.WriteByte(' ')
			sb.WriteString(node.Name)
		}
		writeParams(sb, node.Params)
		writeBody(sb, node.Body)
		sb.WriteByte(')')
	case *VarDecl:
		fmt.Fprintf(sb, "(%s %s", node.Kind, node.Name)
		if node.Init != nil {
			sb.WriteByte(' ')
			writeNode(sb, node.Init)
		}
		sb.WriteByte(')')
	case *FuncDecl:
		fmt.Fprintf(sb, "(func-decl %s", node.Name)
		writeParams(sb, node.Params)
		writeBody(sb, node.Body)
		sb.WriteByte(')')
	case *ExprStmt:
		sb.WriteString("(expr-stmt ")
		writeNode(sb, node.Expr)
		sb.WriteByte(')')
	case *Return:
		sb.WriteString("(return ")
		writeNode(sb, node.Value)
		sb.WriteByte(')')
	case *Throw:
		sb.WriteString("(throw ")
		writeNode(sb, node.Value)
		sb.WriteByte(')')
	case *If:
		sb.WriteString("(if ")
		writeNode(sb, node.Test)
		sb.WriteString(" (then")
		for _, s := range node.Then {
			sb.WriteByte(' ')
			writeNode(sb, s)
		}
		sb.WriteByte(')')
		if node.Else != nil {
			sb.WriteString(" (else")
			for _, s := range node.Else {
				sb.WriteByte(' ')
				writeNode(sb, s)
			}
			sb.WriteByte(')')
		}
		sb.WriteByte(')')
	default:
		fmt.Fprintf(sb, "(!unknown %T)", n)
	}
}

func writeTemplateElement(sb *strings.Builder, el TemplateElement) {
	fmt.Fprintf(sb, "(seg %s %s", strconv.Quote(el.Cooked), strconv.Quote(el.Raw))
	if el.Mapping != nil {
		fmt.Fprintf(sb, " @%s[%d:%d]", el.Mapping.File.URL, el.Mapping.Start, el.Mapping.End)
	}
	sb.WriteByte(')')
}

func writeArgs(sb *strings.Builder, args []Expr) {
	for _, a := range args {
		sb.WriteByte(' ')
		writeNode(sb, a)
	}
}

func writeParams(sb *strings.Builder, params []string) {
	sb.WriteString(" (")
	sb.WriteString(strings.Join(params, " "))
	sb.WriteByte(')')
}

func writeBody(sb *strings.Builder, body []Stmt) {
	for _, s := range body {
		sb.WriteByte(' ')
		writeNode(sb, s)
	}
}
