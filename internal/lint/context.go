package lint

import (
	"tempestlint/internal/diag"
	"tempestlint/internal/layout"
	"tempestlint/internal/lintconfig"
	"tempestlint/internal/source"
	"tempestlint/internal/tree"
	"tempestlint/internal/types"
)

// Frontend is the semantic oracle a rule consults about the unit under
// analysis. The local frontend answers from an in-process interner and
// layout engine; snapshot-backed frontends answer from decoded payloads.
type Frontend interface {
	// TypeOfExpr returns the resolved type of an expression, or
	// types.NoTypeID when the frontend has no answer.
	TypeOfExpr(e *tree.Expr) types.TypeID
	// TypeOfRef returns the resolved type behind a written type reference.
	TypeOfRef(t *tree.TypeRef) types.TypeID
	// LayoutOf computes size and alignment, failing with
	// layout.ErrNotNormalizable for types that have no concrete layout.
	LayoutOf(id types.TypeID) (layout.TypeLayout, error)
	// Snippet extracts the source text under a span.
	Snippet(sp source.Span) (string, bool)
}

// Context carries everything a pass needs during one traversal. A fresh
// context is built per unit; rules must not retain it across units.
type Context struct {
	Types    *types.Interner
	Frontend Frontend
	Config   *lintconfig.Overlay
	Reporter diag.Reporter

	levels map[string]Level
}

// NewContext assembles a per-unit context. levels is the session's
// effective level map; a nil map means every rule runs at its default.
func NewContext(in *types.Interner, fr Frontend, cfg *lintconfig.Overlay, rep diag.Reporter, levels map[string]Level) *Context {
	if rep == nil {
		rep = diag.NopReporter{}
	}
	return &Context{
		Types:    in,
		Frontend: fr,
		Config:   cfg,
		Reporter: rep,
		levels:   levels,
	}
}

// EffectiveLevel returns the session level for a rule, falling back to the
// rule's compiled-in default.
func (c *Context) EffectiveLevel(r Rule) Level {
	if level, ok := c.levels[r.Name]; ok {
		return level
	}
	return r.Default
}

// TypeOf resolves the type of an expression through the frontend.
func (c *Context) TypeOf(e *tree.Expr) types.TypeID {
	if c.Frontend == nil || e == nil {
		return types.NoTypeID
	}
	return c.Frontend.TypeOfExpr(e)
}

// TypeOfRef resolves a written type reference through the frontend.
func (c *Context) TypeOfRef(t *tree.TypeRef) types.TypeID {
	if c.Frontend == nil || t == nil {
		return types.NoTypeID
	}
	return c.Frontend.TypeOfRef(t)
}

// SizeOf computes the layout of a type through the frontend.
func (c *Context) SizeOf(id types.TypeID) (layout.TypeLayout, error) {
	if c.Frontend == nil {
		return layout.TypeLayout{}, layout.ErrNotNormalizable
	}
	return c.Frontend.LayoutOf(id)
}

// Snippet extracts source text under a span. The second return is false
// when the span does not resolve to loaded source.
func (c *Context) Snippet(sp source.Span) (string, bool) {
	if c.Frontend == nil {
		return "", false
	}
	return c.Frontend.Snippet(sp)
}

// WithParams invokes f with the rule's configuration parameter table, or an
// empty table when the rule has no entry or no overlay is attached.
func (c *Context) WithParams(r Rule, f func(lintconfig.Params)) {
	if c.Config == nil {
		f(lintconfig.Params{})
		return
	}
	c.Config.With(r.Name, f)
}

// Emit starts a diagnostic for rule r anchored at primary. The severity is
// derived from the rule's effective level. Finish the builder with Report.
func (c *Context) Emit(r Rule, primary source.Span, msg string) *Emission {
	return &Emission{
		ctx: c,
		d:   diag.New(r.ID(), c.EffectiveLevel(r).Severity(), primary, msg),
	}
}

// Emission accumulates notes and suggestions before reporting.
type Emission struct {
	ctx *Context
	d   diag.Diagnostic
}

// WithNote attaches a secondary note.
func (e *Emission) WithNote(sp source.Span, msg string) *Emission {
	e.d = e.d.WithNote(sp, msg)
	return e
}

// WithSuggestion attaches a structured fix proposal.
func (e *Emission) WithSuggestion(s diag.Suggestion) *Emission {
	e.d = e.d.WithSuggestion(s)
	return e
}

// Report delivers the diagnostic to the session reporter.
func (e *Emission) Report() {
	e.ctx.Reporter.Report(e.d)
}
