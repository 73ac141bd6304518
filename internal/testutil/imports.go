// Package testutil provides deterministic fakes and IR builders shared by
// the package tests.
package testutil

import (
	"fmt"
	"sort"
	"sync"

	"github.com/slate-compiler/slate/internal/jsast"
	"github.com/slate-compiler/slate/internal/translate"
)

// TableResolver resolves imports from a fixed module-to-alias table.
//
// The same table always produces the same aliases, so golden snapshots of
// lowered output are byte-stable across runs. Modules missing from the table
// are assigned sequential aliases ("i0", "i1", ...) in first-use order.
type TableResolver struct {
	mu      sync.Mutex
	aliases map[string]string
	next    int

	// Requests records every (module, symbol) pair resolved, in order.
	Requests []ImportRequest
}

// ImportRequest is one recorded call to ImportSymbol.
type ImportRequest struct {
	Module string
	Symbol string
}

// NewTableResolver creates a resolver seeded with a module-to-alias table.
// The table may be nil.
func NewTableResolver(table map[string]string) *TableResolver {
	aliases := make(map[string]string, len(table))
	for module, alias := range table {
		aliases[module] = alias
	}
	return &TableResolver{aliases: aliases}
}

// ImportSymbol implements translate.ImportResolver.
func (r *TableResolver) ImportSymbol(module, symbol string) translate.ResolvedImport {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Requests = append(r.Requests, ImportRequest{Module: module, Symbol: symbol})
	alias, ok := r.aliases[module]
	if !ok {
		alias = fmt.Sprintf("i%d", r.next)
		r.next++
		r.aliases[module] = alias
	}
	return translate.ResolvedImport{Alias: alias, Symbol: symbol}
}

// Modules returns the modules resolved so far, sorted.
func (r *TableResolver) Modules() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	modules := make([]string, 0, len(r.aliases))
	for module := range r.aliases {
		modules = append(modules, module)
	}
	sort.Strings(modules)
	return modules
}

// AmbientResolver resolves every symbol as globally ambient: no alias, the
// symbol renders bare under its own name.
type AmbientResolver struct{}

// ImportSymbol implements translate.ImportResolver.
func (AmbientResolver) ImportSymbol(module, symbol string) translate.ResolvedImport {
	return translate.ResolvedImport{Symbol: symbol}
}

// RecordingRecorder captures every identifier reported through the recorder
// hook so tests can assert on passthrough bookkeeping.
type RecordingRecorder struct {
	mu    sync.Mutex
	Names []string
}

// RecordUsedIdentifier implements translate.ImportRecorder.
func (r *RecordingRecorder) RecordUsedIdentifier(id *jsast.Identifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Names = append(r.Names, id.Name)
}

// NopRecorder discards all recorded identifiers.
type NopRecorder struct{}

// RecordUsedIdentifier implements translate.ImportRecorder.
func (NopRecorder) RecordUsedIdentifier(*jsast.Identifier) {}
