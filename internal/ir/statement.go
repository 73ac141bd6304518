package ir

// StmtModifier is a bitmask of declaration modifiers.
type StmtModifier int

const (
	ModifierNone  StmtModifier = 0
	ModifierFinal StmtModifier = 1 << 0
)

// Statement is the sealed interface over all IR statement variants.
type Statement interface {
	irStmt()
	Span() *SourceSpan
	Comments() []LeadingComment
}

// StmtBase carries the fields shared by every statement variant.
type StmtBase struct {
	SourceSpan      *SourceSpan
	Modifiers       StmtModifier
	LeadingComments []LeadingComment
}

// Span returns the statement's source span, or nil when unmapped.
func (b *StmtBase) Span() *SourceSpan { return b.SourceSpan }

// Comments returns the leading comments in source order.
func (b *StmtBase) Comments() []LeadingComment { return b.LeadingComments }

// HasModifier reports whether the given modifier bit is set.
func (b *StmtBase) HasModifier(m StmtModifier) bool { return b.Modifiers&m != 0 }

// DeclareVar declares a variable, optionally with an initializer.
// The ModifierFinal bit requests an immutable binding where the capability
// tier allows one.
type DeclareVar struct {
	StmtBase
	Name  string
	Value Expression
}

func (*DeclareVar) irStmt() {}

// DeclareFunction declares a named function.
type DeclareFunction struct {
	StmtBase
	Name       string
	Params     []FnParam
	Statements []Statement
}

func (*DeclareFunction) irStmt() {}

// DeclareClass declares a class. Class lowering is not implemented by this
// engine; producers must lower classes before reaching it.
type DeclareClass struct {
	StmtBase
	Name string
}

func (*DeclareClass) irStmt() {}

// ExpressionStatement evaluates Expr for its side effects.
type ExpressionStatement struct {
	StmtBase
	Expr Expression
}

func (*ExpressionStatement) irStmt() {}

// Return returns Value from the enclosing function.
type Return struct {
	StmtBase
	Value Expression
}

func (*Return) irStmt() {}

// If branches on Condition. An empty FalseCase renders with no else block.
type If struct {
	StmtBase
	Condition Expression
	TrueCase  []Statement
	FalseCase []Statement
}

func (*If) irStmt() {}

// TryCatch is a try/catch block. Producers must not emit it; the lowering
// engine rejects it.
type TryCatch struct {
	StmtBase
	Body       []Statement
	ErrorVar   string
	CatchStmts []Statement
}

func (*TryCatch) irStmt() {}

// Throw throws Error.
type Throw struct {
	StmtBase
	Error Expression
}

func (*Throw) irStmt() {}
