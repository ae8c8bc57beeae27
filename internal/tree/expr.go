package tree

import (
	"tempestlint/internal/source"
	"tempestlint/internal/types"
)

// ExprKind enumerates expression kinds.
type ExprKind uint8

const (
	// ExprLiteral represents literals (int, float, bool, string).
	ExprLiteral ExprKind = iota
	// ExprVarRef represents a variable reference.
	ExprVarRef
	// ExprUnary represents unary operators (-, !, &, &mut).
	ExprUnary
	// ExprCall represents a free function call.
	ExprCall
	// ExprMethodCall represents a method call expr.method(args).
	ExprMethodCall
	// ExprField represents field access expr.field.
	ExprField
	// ExprTuple represents a tuple literal (a, b, c).
	ExprTuple
)

func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprVarRef:
		return "VarRef"
	case ExprUnary:
		return "Unary"
	case ExprCall:
		return "Call"
	case ExprMethodCall:
		return "MethodCall"
	case ExprField:
		return "Field"
	case ExprTuple:
		return "Tuple"
	default:
		return "Unknown"
	}
}

// Expr represents an expression with resolved type information.
type Expr struct {
	Kind ExprKind
	Type types.TypeID // always filled by the frontend
	Span source.Span
	Data ExprData
}

// ExprData is the interface for expression-specific payloads.
type ExprData interface {
	exprData()
}

// LiteralData holds data for ExprLiteral.
type LiteralData struct {
	Text string // raw literal text
}

func (LiteralData) exprData() {}

// VarRefData holds data for ExprVarRef.
type VarRefData struct {
	Name string
}

func (VarRefData) exprData() {}

// UnaryData holds data for ExprUnary.
type UnaryData struct {
	Op      string
	Operand *Expr
}

func (UnaryData) exprData() {}

// CallData holds data for ExprCall.
type CallData struct {
	Callee *Expr
	Args   []*Expr
}

func (CallData) exprData() {}

// MethodCallData holds data for ExprMethodCall.
type MethodCallData struct {
	Recv   *Expr
	Method string
	// NameSpan covers only the method identifier.
	NameSpan source.Span
	// MethodSpan covers the method segment including its arguments, e.g.
	// `insert_resource(x)` in `app.insert_resource(x)`. Suggestions that
	// replace a whole call target this span.
	MethodSpan source.Span
	Args       []*Expr
	// TypeArgs are explicit turbofish-style type arguments, nil when absent.
	TypeArgs []*TypeRef
}

func (MethodCallData) exprData() {}

// FieldData holds data for ExprField.
type FieldData struct {
	Recv *Expr
	Name string
}

func (FieldData) exprData() {}

// TupleData holds data for ExprTuple.
type TupleData struct {
	Elems []*Expr
}

func (TupleData) exprData() {}

// MethodCall returns the method-call payload, or nil when the expression is
// not a method call.
func (e *Expr) MethodCall() *MethodCallData {
	if e == nil || e.Kind != ExprMethodCall {
		return nil
	}
	if d, ok := e.Data.(*MethodCallData); ok {
		return d
	}
	return nil
}
