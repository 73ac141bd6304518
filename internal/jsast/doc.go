// Package jsast defines the concrete JavaScript syntax tree produced by the
// lowering engine.
//
// Expr and Stmt are sealed interfaces using the marker method pattern, the
// same shape as the ir package on the input side. Every node embeds
// NodeBase, which carries the two provenance channels:
//
//   - Mapping: a byte-offset range into an originating source file, for
//     source-map generation downstream.
//   - Leading: comment trivia attached ahead of the node.
//
// The package deliberately does NOT render JavaScript source text; a
// pretty-printer is a downstream concern. Dump produces a stable
// s-expression view of a tree for golden tests and CLI inspection.
package jsast
