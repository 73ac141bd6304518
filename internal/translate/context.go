package translate

// Context tracks whether the current visit position expects a full
// statement or a nested expression. It is a pure value: children are always
// visited in a context derived from the parent's, never by mutation.
type Context struct {
	isStatement bool
}

// StatementContext is the context for a top-level statement visit.
func StatementContext() Context { return Context{isStatement: true} }

// ExpressionContext is the context for a top-level expression visit.
func ExpressionContext() Context { return Context{isStatement: false} }

// WithStatementMode derives a context for statement position.
func (c Context) WithStatementMode() Context { return Context{isStatement: true} }

// WithExpressionMode derives a context for expression position.
func (c Context) WithExpressionMode() Context { return Context{isStatement: false} }

// IsStatement reports whether the current position is a full statement.
func (c Context) IsStatement() bool { return c.isStatement }
