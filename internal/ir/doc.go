// Package ir defines the backend-neutral intermediate representation
// consumed by the lowering engine.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps the IR the foundational
// layer with no circular dependencies.
//
// SEALED INTERFACES:
//
// Statement and Expression are sealed interfaces using the marker method
// pattern. Only types in this package implement them, so consumers can
// dispatch with exhaustive type switches:
//
//	switch e := expr.(type) {
//	case *ReadVar:
//	    // bare identifier read
//	case *BinaryOp:
//	    // infix operator
//	default:
//	    // producer bug - every variant is known
//	}
//
// IR nodes are produced and owned by an upstream producer and are read-only
// to the rest of the system. Nodes optionally carry a SourceSpan pointing
// back into an originating file; statements optionally carry leading
// comments. Neither affects semantics, only provenance of the output tree.
package ir
