// Package frontend supplies the semantic facts rules ask about: resolved
// types, layouts and source snippets. The Local frontend answers from an
// in-process interner; snapshots serialize the same facts for round-trips
// across processes.
package frontend

import (
	"tempestlint/internal/layout"
	"tempestlint/internal/source"
	"tempestlint/internal/tree"
	"tempestlint/internal/types"
)

// Program bundles one analyzed workspace: its files, the type interner and
// the lowered units ready for dispatch.
type Program struct {
	Files *source.FileSet
	Types *types.Interner
	Units []*tree.Unit
}

// NewProgram creates an empty program with fresh files and types.
func NewProgram() *Program {
	return &Program{
		Files: source.NewFileSet(),
		Types: types.NewInterner(),
	}
}

// Frontend builds the local frontend for this program.
func (p *Program) Frontend() *Local {
	return NewLocal(p.Files, p.Types)
}

// Local answers semantic queries from an in-process interner and layout
// engine. Expression and reference types were resolved during lowering, so
// lookups are plain field reads.
type Local struct {
	files  *source.FileSet
	engine *layout.Engine
}

// NewLocal creates a frontend over the given files and types.
func NewLocal(files *source.FileSet, in *types.Interner) *Local {
	return &Local{
		files:  files,
		engine: layout.NewEngine(in, layout.DefaultTarget()),
	}
}

// TypeOfExpr returns the resolved type recorded on the expression.
func (l *Local) TypeOfExpr(e *tree.Expr) types.TypeID {
	if e == nil {
		return types.NoTypeID
	}
	return e.Type
}

// TypeOfRef returns the semantic type a written reference lowered to.
func (l *Local) TypeOfRef(t *tree.TypeRef) types.TypeID {
	if t == nil {
		return types.NoTypeID
	}
	return t.Type
}

// LayoutOf computes size and alignment through the cached engine.
func (l *Local) LayoutOf(id types.TypeID) (layout.TypeLayout, error) {
	return l.engine.LayoutOf(id)
}

// Snippet extracts literal source text under a span.
func (l *Local) Snippet(sp source.Span) (string, bool) {
	if l.files == nil {
		return "", false
	}
	return l.files.Text(sp)
}
