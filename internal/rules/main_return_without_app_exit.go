package rules

import (
	"tempestlint/internal/diag"
	"tempestlint/internal/lint"
	"tempestlint/internal/source"
	"tempestlint/internal/tree"
)

// MainReturnWithoutAppExit flags entry points that call App::run but
// declare no return type. App::run yields an AppExit carrying the error
// status; discarding it means a failed run still exits with code zero.
type MainReturnWithoutAppExit struct{}

// NewMainReturnWithoutAppExit creates the pass.
func NewMainReturnWithoutAppExit() *MainReturnWithoutAppExit {
	return &MainReturnWithoutAppExit{}
}

func (*MainReturnWithoutAppExit) Rule() lint.Rule {
	return lint.Rule{
		Name:    "main_return_without_app_exit",
		Default: lint.LevelWarn,
		Summary: "entry points that run an App should return its AppExit",
		Groups:  []string{"pedantic"},
	}
}

func (r *MainReturnWithoutAppExit) CheckFunc(ctx *lint.Context, fn *tree.Func) {
	if !fn.IsEntrypoint() {
		return
	}
	// A signature that already returns AppExit is exactly what the fix would
	// produce, and any other declared non-unit type means the author handles
	// the status somehow. Only missing or unit signatures are suspicious.
	if fn.Result != nil {
		id := ctx.TypeOfRef(fn.Result)
		if ctx.Types.MatchPath(id, appExitPath) {
			return
		}
		if id != ctx.Types.Builtins().Unit {
			return
		}
	}

	var runSpan source.Span
	found := false
	tree.InspectBlock(fn.Body, func(e *tree.Expr) bool {
		mc := e.MethodCall()
		if mc == nil || mc.Method != "run" {
			return true
		}
		if !ctx.Types.MatchPath(ctx.TypeOf(mc.Recv), appPath) {
			return true
		}
		runSpan = mc.NameSpan
		found = true
		return false
	})
	if !found {
		return
	}

	edits := []diag.TextEdit{r.signatureEdit(ctx, fn)}
	if semi, ok := trailingRunSemi(ctx, fn.Body); ok {
		edits = append(edits, diag.TextEdit{Span: semi, NewText: ""})
	}

	ctx.Emit(r.Rule(), runSpan, "an entry point calls App::run without returning its AppExit").
		WithNote(runSpan, "AppExit reports whether the app terminated successfully").
		WithSuggestion(diag.Suggestion{
			Title:         "propagate the exit status",
			Applicability: diag.MaybeIncorrect,
			IsPreferred:   true,
			Edits:         edits,
		}).
		Report()
}

// signatureEdit inserts the return type after the parameter list, or
// replaces a written unit type.
func (*MainReturnWithoutAppExit) signatureEdit(ctx *lint.Context, fn *tree.Func) diag.TextEdit {
	if fn.Result == nil {
		return diag.TextEdit{Span: fn.ResultSpan, NewText: " -> AppExit"}
	}
	old, _ := ctx.Snippet(fn.ResultSpan)
	return diag.TextEdit{Span: fn.ResultSpan, NewText: "AppExit", OldText: old}
}

// trailingRunSemi returns the terminator span of the final statement when
// that statement is the App::run call itself. Deleting it turns the call
// into the block's value.
func trailingRunSemi(ctx *lint.Context, body *tree.Block) (source.Span, bool) {
	if body == nil || len(body.Stmts) == 0 {
		return source.Span{}, false
	}
	last := body.Stmts[len(body.Stmts)-1]
	es, ok := last.Data.(*tree.ExprStmtData)
	if !ok || es.Semi.Empty() {
		return source.Span{}, false
	}
	mc := es.Expr.MethodCall()
	if mc == nil || mc.Method != "run" || !ctx.Types.MatchPath(ctx.TypeOf(mc.Recv), appPath) {
		return source.Span{}, false
	}
	return es.Semi, true
}
