package harness

import (
	"fmt"
	"os"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/slate-compiler/slate/internal/compiler"
	"github.com/slate-compiler/slate/internal/jsast"
	"github.com/slate-compiler/slate/internal/translate"
)

// Result is the outcome of one scenario run.
type Result struct {
	// Output is the dump of the lowered tree, newline terminated.
	Output string

	// Modules lists the modules the lowering asked the resolver for,
	// sorted.
	Modules []string
}

// Run compiles the scenario fixture to IR, lowers it at the scenario tier,
// and renders the output tree.
func Run(s *Scenario) (*Result, error) {
	src, err := os.ReadFile(s.FixturePath())
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	ctx := cuecontext.New()
	v := ctx.CompileString(string(src), cue.Filename(s.FixturePath()))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compiling fixture: %w", err)
	}

	tier := translate.TierLegacy
	if s.Tier == "modern" {
		tier = translate.TierModern
	}
	resolver := NewStaticResolver(s.Imports)
	c := compiler.New()

	var node jsast.Node
	switch s.Kind {
	case "expression":
		expr, err := c.CompileExpression(v)
		if err != nil {
			return nil, err
		}
		node, err = translate.TranslateExpression(expr, resolver, nopRecorder{}, tier)
		if err != nil {
			return nil, err
		}
	default:
		stmt, err := c.CompileStatement(v)
		if err != nil {
			return nil, err
		}
		node, err = translate.TranslateStatement(stmt, resolver, nopRecorder{}, tier)
		if err != nil {
			return nil, err
		}
	}

	return &Result{
		Output:  jsast.Dump(node) + "\n",
		Modules: resolver.Modules(),
	}, nil
}

// StaticResolver resolves imports from a fixed module-to-alias table,
// assigning sequential aliases to modules the table does not cover. Alias
// assignment depends only on resolution order, so a fixed scenario always
// produces the same output.
type StaticResolver struct {
	aliases map[string]string
	next    int
}

// NewStaticResolver creates a resolver seeded from table. A nil table is
// allowed.
func NewStaticResolver(table map[string]string) *StaticResolver {
	aliases := make(map[string]string, len(table))
	for module, alias := range table {
		aliases[module] = alias
	}
	return &StaticResolver{aliases: aliases}
}

// ImportSymbol implements translate.ImportResolver.
func (r *StaticResolver) ImportSymbol(module, symbol string) translate.ResolvedImport {
	alias, ok := r.aliases[module]
	if !ok {
		alias = fmt.Sprintf("i%d", r.next)
		r.next++
		r.aliases[module] = alias
	}
	return translate.ResolvedImport{Alias: alias, Symbol: symbol}
}

// Modules returns the modules known to the resolver, sorted.
func (r *StaticResolver) Modules() []string {
	modules := make([]string, 0, len(r.aliases))
	for module := range r.aliases {
		modules = append(modules, module)
	}
	sort.Strings(modules)
	return modules
}

type nopRecorder struct{}

func (nopRecorder) RecordUsedIdentifier(*jsast.Identifier) {}
