package ir

// UnaryOperator enumerates the prefix operators the IR can carry.
type UnaryOperator int

const (
	UnaryMinus UnaryOperator = iota
	UnaryPlus
)

// String returns the operator name for diagnostics.
func (op UnaryOperator) String() string {
	switch op {
	case UnaryMinus:
		return "Minus"
	case UnaryPlus:
		return "Plus"
	default:
		return "UnaryOperator(?)"
	}
}

// BinaryOperator enumerates the infix operators the IR can carry.
type BinaryOperator int

const (
	BinaryEquals BinaryOperator = iota
	BinaryNotEquals
	BinaryIdentical
	BinaryNotIdentical
	BinaryMinus
	BinaryPlus
	BinaryDivide
	BinaryMultiply
	BinaryModulo
	BinaryAnd
	BinaryOr
	BinaryBitwiseAnd
	BinaryLower
	BinaryLowerEquals
	BinaryBigger
	BinaryBiggerEquals
)

// String returns the operator name for diagnostics.
func (op BinaryOperator) String() string {
	names := map[BinaryOperator]string{
		BinaryEquals:       "Equals",
		BinaryNotEquals:    "NotEquals",
		BinaryIdentical:    "Identical",
		BinaryNotIdentical: "NotIdentical",
		BinaryMinus:        "Minus",
		BinaryPlus:         "Plus",
		BinaryDivide:       "Divide",
		BinaryMultiply:     "Multiply",
		BinaryModulo:       "Modulo",
		BinaryAnd:          "And",
		BinaryOr:           "Or",
		BinaryBitwiseAnd:   "BitwiseAnd",
		BinaryLower:        "Lower",
		BinaryLowerEquals:  "LowerEquals",
		BinaryBigger:       "Bigger",
		BinaryBiggerEquals: "BiggerEquals",
	}
	if name, ok := names[op]; ok {
		return name
	}
	return "BinaryOperator(?)"
}

// Expression is the sealed interface over all IR expression variants.
type Expression interface {
	irExpr()
	Span() *SourceSpan
}

// ExprBase carries the fields shared by every expression variant.
type ExprBase struct {
	SourceSpan *SourceSpan
}

// Span returns the expression's source span, or nil when unmapped.
func (b *ExprBase) Span() *SourceSpan { return b.SourceSpan }

// ReadVar reads a variable by name.
type ReadVar struct {
	ExprBase
	Name string
}

func (*ReadVar) irExpr() {}

// WriteVar assigns Value to the named variable.
type WriteVar struct {
	ExprBase
	Name  string
	Value Expression
}

func (*WriteVar) irExpr() {}

// WriteKey assigns Value to Receiver[Index].
type WriteKey struct {
	ExprBase
	Receiver Expression
	Index    Expression
	Value    Expression
}

func (*WriteKey) irExpr() {}

// WriteProp assigns Value to Receiver.Name.
type WriteProp struct {
	ExprBase
	Receiver Expression
	Name     string
	Value    Expression
}

func (*WriteProp) irExpr() {}

// InvokeMethod calls Method on Receiver. An empty Method name means the
// receiver itself is the callee (call-through form).
type InvokeMethod struct {
	ExprBase
	Receiver Expression
	Method   string
	Args     []Expression
}

func (*InvokeMethod) irExpr() {}

// InvokeFunction calls Fn with Args. Pure marks the call as side-effect
// free so later passes may remove it when the result is unused.
type InvokeFunction struct {
	ExprBase
	Fn   Expression
	Args []Expression
	Pure bool
}

func (*InvokeFunction) irExpr() {}

// Instantiate constructs a new instance of Class with Args.
type Instantiate struct {
	ExprBase
	Class Expression
	Args  []Expression
}

func (*Instantiate) irExpr() {}

// Literal is a primitive literal value.
type Literal struct {
	ExprBase
	Value LiteralValue
}

func (*Literal) irExpr() {}

// External references a symbol from another module. An empty Module means
// the symbol is ambient in the output environment. An empty Name is a
// producer bug and fails translation.
type External struct {
	ExprBase
	Module string
	Name   string
}

func (*External) irExpr() {}

// Conditional is the ternary expression Condition ? TrueCase : FalseCase.
type Conditional struct {
	ExprBase
	Condition Expression
	TrueCase  Expression
	FalseCase Expression
}

func (*Conditional) irExpr() {}

// Not is logical negation of Condition.
type Not struct {
	ExprBase
	Condition Expression
}

func (*Not) irExpr() {}

// AssertNotNull is a compile-time not-null assertion. It has no runtime
// representation; lowering is the identity on Expr.
type AssertNotNull struct {
	ExprBase
	Expr Expression
}

func (*AssertNotNull) irExpr() {}

// Cast is a compile-time type cast. Like AssertNotNull it has no runtime
// representation.
type Cast struct {
	ExprBase
	Expr Expression
}

func (*Cast) irExpr() {}

// FnParam is a function parameter. Only the name survives to this layer.
type FnParam struct {
	Name string
}

// Function is a function literal. An empty Name makes it anonymous.
type Function struct {
	ExprBase
	Name       string
	Params     []FnParam
	Statements []Statement
}

func (*Function) irExpr() {}

// UnaryOp applies a prefix operator to Expr.
type UnaryOp struct {
	ExprBase
	Op   UnaryOperator
	Expr Expression
}

func (*UnaryOp) irExpr() {}

// BinaryOp applies an infix operator to Lhs and Rhs.
type BinaryOp struct {
	ExprBase
	Op  BinaryOperator
	Lhs Expression
	Rhs Expression
}

func (*BinaryOp) irExpr() {}

// ReadProp reads Receiver.Name.
type ReadProp struct {
	ExprBase
	Receiver Expression
	Name     string
}

func (*ReadProp) irExpr() {}

// ReadKey reads Receiver[Index].
type ReadKey struct {
	ExprBase
	Receiver Expression
	Index    Expression
}

func (*ReadKey) irExpr() {}

// LiteralArray is an array literal.
type LiteralArray struct {
	ExprBase
	Entries []Expression
}

func (*LiteralArray) irExpr() {}

// MapEntry is one key/value pair of a LiteralMap. Quoted forces the key to
// render as a string literal instead of a bare identifier.
type MapEntry struct {
	Key    string
	Quoted bool
	Value  Expression
}

// LiteralMap is an object literal.
type LiteralMap struct {
	ExprBase
	Entries []MapEntry
}

func (*LiteralMap) irExpr() {}

// Comma is the comma-sequence expression. Producers must not emit it; the
// lowering engine rejects it.
type Comma struct {
	ExprBase
	Parts []Expression
}

func (*Comma) irExpr() {}

// WrappedNode wraps an already-built output node for passthrough. The node
// is opaque to the IR; the lowering engine requires it to be one of its own
// output expression types.
type WrappedNode struct {
	ExprBase
	Node any
}

func (*WrappedNode) irExpr() {}

// Typeof applies the typeof operator to Expr.
type Typeof struct {
	ExprBase
	Expr Expression
}

func (*Typeof) irExpr() {}
