// Package translate lowers the backend-neutral IR to the concrete
// JavaScript syntax tree in package jsast.
//
// The engine is a recursive-descent visitor over the sealed ir variant set.
// Three values thread through every recursive step:
//
//   - Context: one immutable bit saying whether the current position is a
//     full statement or a nested expression. It decides, for example,
//     whether an assignment must be wrapped in grouping parentheses to stay
//     valid as a sub-expression.
//   - Tier: the output-runtime capability tier, fixed for the whole call.
//     Modern unlocks block-scoped bindings and template literals; legacy
//     degrades to var declarations and a helper-call localization form.
//   - the translator instance, which owns the per-run source-file
//     descriptor cache and the two injected collaborators.
//
// Failures are producer-contract violations: IR shapes this engine declares
// unsupported, unknown operators, or a module reference without a symbol
// name. There is no recoverable-error path and no partial output; a failed
// call yields nothing usable.
package translate
