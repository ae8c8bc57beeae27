package tree

import (
	"tempestlint/internal/source"
)

// FuncFlags represents function modifiers as a bitmask.
type FuncFlags uint32

const (
	// FuncEntrypoint indicates the program entry point.
	FuncEntrypoint FuncFlags = 1 << iota
	// FuncPublic indicates a public function.
	FuncPublic
)

// HasFlag returns true if the given flag is set.
func (f FuncFlags) HasFlag(flag FuncFlags) bool {
	return f&flag != 0
}

// Param represents a function parameter.
type Param struct {
	Name string
	Span source.Span
	Type *TypeRef
}

// Func represents one function declaration with its body.
type Func struct {
	Name   string
	Span   source.Span
	Flags  FuncFlags
	Params []Param
	// Result is the declared return type reference, nil when the signature
	// declares none.
	Result *TypeRef
	// ResultSpan is where a return type would be written: the span of Result
	// when declared, otherwise a zero-length span after the parameter list.
	// Suggestion builders use it as an insertion point.
	ResultSpan source.Span
	Body       *Block
}

// IsEntrypoint returns true if this function is the program entry point.
func (f *Func) IsEntrypoint() bool {
	return f.Flags.HasFlag(FuncEntrypoint)
}

// Block represents a brace-delimited statement list.
type Block struct {
	Span  source.Span
	Stmts []*Stmt
}
