package translate

import "fmt"

// UnsupportedError reports an IR shape this engine declares unsupported.
// It always indicates an upstream producer bug, never a runtime condition.
type UnsupportedError struct {
	Construct string
	Detail    string
}

func (e *UnsupportedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("unsupported construct %s: %s", e.Construct, e.Detail)
	}
	return fmt.Sprintf("unsupported construct %s", e.Construct)
}

// UnsupportedOperatorError reports an operator kind missing from the
// operator tables.
type UnsupportedOperatorError struct {
	Operator string
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("unsupported operator %s", e.Operator)
}

// UnknownSymbolError reports an external reference without a symbol name.
type UnknownSymbolError struct {
	Module string
}

func (e *UnknownSymbolError) Error() string {
	if e.Module != "" {
		return fmt.Sprintf("import of unknown symbol from module %q", e.Module)
	}
	return "import of unknown symbol"
}
