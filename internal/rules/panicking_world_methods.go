package rules

import (
	"fmt"
	"slices"

	"tempestlint/internal/diag"
	"tempestlint/internal/lint"
	"tempestlint/internal/lintconfig"
	"tempestlint/internal/tree"
)

// PanickingWorldMethods flags World accessors that panic when the entity or
// resource is absent. Every one of them has a get_ twin returning an
// optional result the caller can handle.
type PanickingWorldMethods struct{}

// NewPanickingWorldMethods creates the pass.
func NewPanickingWorldMethods() *PanickingWorldMethods {
	return &PanickingWorldMethods{}
}

func (*PanickingWorldMethods) Rule() lint.Rule {
	return lint.Rule{
		Name:    "panicking_world_methods",
		Default: lint.LevelWarn,
		Summary: "panicking World accessors have fallible get_ alternatives",
		Groups:  []string{"restriction"},
	}
}

func (r *PanickingWorldMethods) CheckExpr(ctx *lint.Context, e *tree.Expr) {
	mc := e.MethodCall()
	if mc == nil {
		return
	}
	alt, ok := panickingWorldMethods[mc.Method]
	if !ok {
		return
	}
	if !ctx.Types.MatchPath(ctx.TypeOf(mc.Recv), worldPath) {
		return
	}

	var ignored []string
	ctx.WithParams(r.Rule(), func(p lintconfig.Params) {
		ignored, _ = p.GetStringList("ignore")
	})
	if slices.Contains(ignored, mc.Method) {
		return
	}

	old, _ := ctx.Snippet(mc.NameSpan)
	ctx.Emit(r.Rule(), mc.NameSpan,
		fmt.Sprintf("called World::%s, which panics when the target is missing", mc.Method)).
		WithNote(mc.NameSpan, fmt.Sprintf("World::%s returns an optional result instead of panicking", alt)).
		WithSuggestion(diag.Suggestion{
			Title:         fmt.Sprintf("use %s and handle the absence", alt),
			Applicability: diag.MaybeIncorrect,
			Edits: []diag.TextEdit{{
				Span:    mc.NameSpan,
				NewText: alt,
				OldText: old,
			}},
		}).
		Report()
}
