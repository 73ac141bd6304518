package jsast

// SourceFile is a mapping descriptor for one originating file. The lowering
// engine creates exactly one descriptor per distinct URL per run; all
// mappings into the same file share the descriptor by pointer.
type SourceFile struct {
	URL     string
	Content string
}

// Mapping ties an output node to a byte-offset range of a source file.
type Mapping struct {
	File  *SourceFile
	Start int
	End   int
}

// Trivia is non-semantic text attached ahead of a node. Multiline selects
// block (/* */) over single-line (//) form; the text never contains the
// comment delimiters themselves.
type Trivia struct {
	Text            string
	Multiline       bool
	TrailingNewline bool
}

// Node is implemented by every syntax tree node.
type Node interface {
	base() *NodeBase
}

// Expr is the sealed interface over expression nodes.
type Expr interface {
	Node
	jsExpr()
}

// Stmt is the sealed interface over statement nodes.
type Stmt interface {
	Node
	jsStmt()
}

// NodeBase carries provenance shared by all nodes.
type NodeBase struct {
	Mapping *Mapping
	Leading []Trivia
}

func (b *NodeBase) base() *NodeBase { return b }

// SetMapping attaches a source mapping to n. A nil mapping is a no-op, so
// callers can pass through unmapped nodes unconditionally.
func SetMapping(n Node, m *Mapping) {
	if m != nil {
		n.base().Mapping = m
	}
}

// AttachTrivia appends leading trivia to n in order.
func AttachTrivia(n Node, trivia ...Trivia) {
	b := n.base()
	b.Leading = append(b.Leading, trivia...)
}

// Identifier is a bare name reference.
type Identifier struct {
	NodeBase
	Name string
}

func (*Identifier) jsExpr() {}

// NullLit is the null literal.
type NullLit struct {
	NodeBase
}

func (*NullLit) jsExpr() {}

// StringLit is a string literal.
type StringLit struct {
	NodeBase
	Value string
}

func (*StringLit) jsExpr() {}

// NumberLit is a numeric literal.
type NumberLit struct {
	NodeBase
	Value float64
}

func (*NumberLit) jsExpr() {}

// BoolLit is a boolean literal.
type BoolLit struct {
	NodeBase
	Value bool
}

func (*BoolLit) jsExpr() {}

// TemplateElement is one literal segment of a template literal. Cooked is
// the interpreted text, Raw the text exactly as it would appear in source.
type TemplateElement struct {
	Cooked  string
	Raw     string
	Mapping *Mapping
}

// TemplateLiteral is a backtick template string. Invariant:
// len(Elements) == len(Expressions)+1.
type TemplateLiteral struct {
	NodeBase
	Elements    []TemplateElement
	Expressions []Expr
}

func (*TemplateLiteral) jsExpr() {}

// TaggedTemplate applies Tag to a template literal.
type TaggedTemplate struct {
	NodeBase
	Tag      Expr
	Template *TemplateLiteral
}

func (*TaggedTemplate) jsExpr() {}

// Call invokes Callee with Args.
type Call struct {
	NodeBase
	Callee Expr
	Args   []Expr
}

func (*Call) jsExpr() {}

// New constructs an instance of Callee with Args.
type New struct {
	NodeBase
	Callee Expr
	Args   []Expr
}

func (*New) jsExpr() {}

// Assign assigns Value to Target.
type Assign struct {
	NodeBase
	Target Expr
	Value  Expr
}

func (*Assign) jsExpr() {}

// Paren is an explicit grouping of Expr.
type Paren struct {
	NodeBase
	Expr Expr
}

func (*Paren) jsExpr() {}

// Conditional is the ternary Test ? Consequent : Alternate.
type Conditional struct {
	NodeBase
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

func (*Conditional) jsExpr() {}

// Unary is a prefix operator application. Op is the concrete token,
// e.g. "!", "-", "typeof".
type Unary struct {
	NodeBase
	Op      string
	Operand Expr
}

func (*Unary) jsExpr() {}

// Binary is an infix operator application. Op is the concrete token.
type Binary struct {
	NodeBase
	Op  string
	Lhs Expr
	Rhs Expr
}

func (*Binary) jsExpr() {}

// PropAccess reads Receiver.Name.
type PropAccess struct {
	NodeBase
	Receiver Expr
	Name     string
}

func (*PropAccess) jsExpr() {}

// KeyAccess reads Receiver[Key].
type KeyAccess struct {
	NodeBase
	Receiver Expr
	Key      Expr
}

func (*KeyAccess) jsExpr() {}

// ArrayLit is an array literal.
type ArrayLit struct {
	NodeBase
	Elements []Expr
}

func (*ArrayLit) jsExpr() {}

// ObjectEntry is one property of an object literal. Quoted renders the key
// as a string literal instead of a bare identifier.
type ObjectEntry struct {
	Key    string
	Quoted bool
	Value  Expr
}

// ObjectLit is an object literal.
type ObjectLit struct {
	NodeBase
	Entries []ObjectEntry
}

func (*ObjectLit) jsExpr() {}

// FuncExpr is a function expression. An empty Name makes it anonymous.
type FuncExpr struct {
	NodeBase
	Name   string
	Params []string
	Body   []Stmt
}

func (*FuncExpr) jsExpr() {}

// DeclKind selects the binding keyword of a variable declaration.
type DeclKind int

const (
	DeclVar DeclKind = iota
	DeclLet
	DeclConst
)

// String returns the concrete keyword.
func (k DeclKind) String() string {
	switch k {
	case DeclLet:
		return "let"
	case DeclConst:
		return "const"
	default:
		return "var"
	}
}

// VarDecl declares a single variable, optionally initialized.
type VarDecl struct {
	NodeBase
	Kind DeclKind
	Name string
	Init Expr
}

func (*VarDecl) jsStmt() {}

// FuncDecl declares a named function.
type FuncDecl struct {
	NodeBase
	Name   string
	Params []string
	Body   []Stmt
}

func (*FuncDecl) jsStmt() {}

// ExprStmt evaluates Expr for its side effects.
type ExprStmt struct {
	NodeBase
	Expr Expr
}

func (*ExprStmt) jsStmt() {}

// Return returns Value from the enclosing function.
type Return struct {
	NodeBase
	Value Expr
}

func (*Return) jsStmt() {}

// Throw throws Value.
type Throw struct {
	NodeBase
	Value Expr
}

func (*Throw) jsStmt() {}

// If branches on Test. A nil Else slice renders with no else block; the
// lowering engine only produces a non-nil Else for a non-empty false branch.
type If struct {
	NodeBase
	Test Expr
	Then []Stmt
	Else []Stmt
}

func (*If) jsStmt() {}
