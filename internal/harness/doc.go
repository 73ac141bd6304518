// Package harness provides a conformance testing framework for the lowering
// engine.
//
// Scenarios are YAML files pairing a CUE fixture with a capability tier and
// an import table. Running a scenario compiles the fixture to IR, lowers it,
// and renders the output tree in the stable dump format; golden files under
// testdata/golden pin the result byte for byte.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
package harness
