package tree

import (
	"tempestlint/internal/source"
)

// StmtKind enumerates statement kinds.
type StmtKind uint8

const (
	// StmtExpr represents an expression statement.
	StmtExpr StmtKind = iota
	// StmtLet represents a variable declaration.
	StmtLet
	// StmtReturn represents an explicit return.
	StmtReturn
	// StmtBlock represents a nested block.
	StmtBlock
)

func (k StmtKind) String() string {
	switch k {
	case StmtExpr:
		return "Expr"
	case StmtLet:
		return "Let"
	case StmtReturn:
		return "Return"
	case StmtBlock:
		return "Block"
	default:
		return "Unknown"
	}
}

// Stmt represents a statement.
type Stmt struct {
	Kind StmtKind
	Span source.Span
	Data StmtData
}

// StmtData is the interface for statement-specific payloads.
type StmtData interface {
	stmtData()
}

// ExprStmtData holds data for StmtExpr.
type ExprStmtData struct {
	Expr *Expr
	// Semi is the span of the trailing statement terminator, zero-length
	// Empty span when the statement has none.
	Semi source.Span
}

func (ExprStmtData) stmtData() {}

// LetData holds data for StmtLet.
type LetData struct {
	Name  string
	Type  *TypeRef // nil when inferred
	Value *Expr    // nil when uninitialized
}

func (LetData) stmtData() {}

// ReturnData holds data for StmtReturn.
type ReturnData struct {
	Value *Expr // nil for a bare return
}

func (ReturnData) stmtData() {}

// BlockStmtData holds data for StmtBlock.
type BlockStmtData struct {
	Block *Block
}

func (BlockStmtData) stmtData() {}
