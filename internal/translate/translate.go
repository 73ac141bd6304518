package translate

import (
	"github.com/slate-compiler/slate/internal/ir"
	"github.com/slate-compiler/slate/internal/jsast"
)

// Tier is the output-runtime capability tier. Tiers are ordered: a higher
// tier is a superset of every lower one. The tier is fixed for a whole
// translation call and never escalated mid-tree.
type Tier int

const (
	// TierLegacy targets runtimes without block-scoped bindings or
	// template literals.
	TierLegacy Tier = iota
	// TierModern unlocks const/let and template-literal syntax.
	TierModern
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierModern:
		return "modern"
	default:
		return "legacy"
	}
}

// ResolvedImport is the import resolver's answer for one symbol. An empty
// Alias means the symbol resolved to be globally ambient and renders bare.
type ResolvedImport struct {
	Alias  string
	Symbol string
}

// ImportResolver is the narrow capability interface to the module-import
// bookkeeping engine. Implementations assign local aliases to modules and
// may rename symbols to avoid collisions.
type ImportResolver interface {
	ImportSymbol(module, symbol string) ResolvedImport
}

// ImportRecorder is notified whenever a passthrough output identifier is
// used, so default-import elision bookkeeping stays accurate. Bookkeeping
// only; it never alters translation.
type ImportRecorder interface {
	RecordUsedIdentifier(id *jsast.Identifier)
}

// TranslateExpression lowers one IR expression to an output expression.
// The returned tree is newly allocated and owned by the caller.
func TranslateExpression(expr ir.Expression, imports ImportResolver, recorder ImportRecorder, tier Tier) (jsast.Expr, error) {
	t := newTranslator(imports, recorder, tier)
	return t.translateExpression(expr, ExpressionContext())
}

// TranslateStatement lowers one IR statement to an output statement.
func TranslateStatement(stmt ir.Statement, imports ImportResolver, recorder ImportRecorder, tier Tier) (jsast.Stmt, error) {
	t := newTranslator(imports, recorder, tier)
	return t.translateStatement(stmt, StatementContext())
}
