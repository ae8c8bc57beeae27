package tree

import (
	"tempestlint/internal/source"
	"tempestlint/internal/types"
)

// TypeRef is a syntactic type reference as written in source, with the
// semantic type it lowered to. The syntactic shape keeps per-argument spans,
// which suggestion builders need to extract literal text; the semantic Type
// answers identity questions.
type TypeRef struct {
	Span     source.Span
	Segments []string   // path segments as written, e.g. ["EventBuffer"]
	Args     []*TypeRef // syntactic generic arguments, nil when absent
	Type     types.TypeID
}

// ArgAt returns the nth syntactic generic argument, or nil when out of range.
func (t *TypeRef) ArgAt(n int) *TypeRef {
	if t == nil || n < 0 || n >= len(t.Args) {
		return nil
	}
	return t.Args[n]
}

// Name returns the final path segment, or "" for an empty reference.
func (t *TypeRef) Name() string {
	if t == nil || len(t.Segments) == 0 {
		return ""
	}
	return t.Segments[len(t.Segments)-1]
}
