package rules

import (
	"fmt"

	"tempestlint/internal/diag"
	"tempestlint/internal/lint"
	"tempestlint/internal/tree"
)

// InsertEventResource flags event buffers registered through the generic
// resource API. App::add_event wires the buffer and its maintenance
// schedule; insert_resource and init_resource leave the buffer unmanaged,
// so events are never cleared.
type InsertEventResource struct{}

// NewInsertEventResource creates the pass.
func NewInsertEventResource() *InsertEventResource {
	return &InsertEventResource{}
}

func (*InsertEventResource) Rule() lint.Rule {
	return lint.Rule{
		Name:    "insert_event_resource",
		Default: lint.LevelDeny,
		Summary: "event buffers inserted as plain resources are never maintained",
		Groups:  []string{"suspicious"},
	}
}

func (r *InsertEventResource) CheckExpr(ctx *lint.Context, e *tree.Expr) {
	mc := e.MethodCall()
	if mc == nil {
		return
	}
	if !ctx.Types.MatchPath(ctx.TypeOf(mc.Recv), appPath) {
		return
	}
	switch mc.Method {
	case "insert_resource":
		r.checkInsert(ctx, mc)
	case "init_resource":
		r.checkInit(ctx, mc)
	}
}

// checkInsert handles app.insert_resource(EventBuffer::<T>::default()). The
// event type is recovered from the semantic type of the argument; a
// non-generic rendering of that type is textually exact, so the replacement
// is machine applicable.
func (r *InsertEventResource) checkInsert(ctx *lint.Context, mc *tree.MethodCallData) {
	if len(mc.Args) != 1 {
		return
	}
	buf := ctx.Types.StripRefs(ctx.TypeOf(mc.Args[0]))
	if !ctx.Types.MatchPath(buf, eventBufferPath) {
		return
	}

	text := "T"
	applicability := diag.MachineApplicable
	if event, ok := ctx.Types.GenericArgAt(buf, 0); ok {
		text = ctx.Types.String(event)
	} else {
		applicability = applicability.Downgrade(diag.HasPlaceholders)
	}
	r.report(ctx, mc, "insert_resource", text, applicability)
}

// checkInit handles app.init_resource::<EventBuffer<T>>(). The event type
// text is cut straight from the written type argument when its span is
// available; otherwise the suggestion degrades to a placeholder.
func (r *InsertEventResource) checkInit(ctx *lint.Context, mc *tree.MethodCallData) {
	if len(mc.TypeArgs) != 1 {
		return
	}
	ta := mc.TypeArgs[0]
	if !ctx.Types.MatchPath(ctx.TypeOfRef(ta), eventBufferPath) {
		return
	}

	text := ""
	applicability := diag.MachineApplicable
	if inner := ta.ArgAt(0); inner != nil {
		if snippet, ok := ctx.Snippet(inner.Span); ok {
			text = snippet
		}
	}
	if text == "" {
		text = "T"
		applicability = applicability.Downgrade(diag.HasPlaceholders)
	}
	r.report(ctx, mc, "init_resource", text, applicability)
}

func (r *InsertEventResource) report(ctx *lint.Context, mc *tree.MethodCallData, method, event string, applicability diag.Applicability) {
	replacement := fmt.Sprintf("add_event::<%s>()", event)
	old, _ := ctx.Snippet(mc.MethodSpan)
	ctx.Emit(r.Rule(), mc.MethodSpan,
		fmt.Sprintf("called App::%s on an event buffer instead of App::add_event", method)).
		WithNote(mc.MethodSpan, "inserting an event buffer directly skips its maintenance setup, so stale events are never dropped").
		WithSuggestion(diag.Suggestion{
			Title:         "register the event instead",
			Applicability: applicability,
			IsPreferred:   true,
			Edits: []diag.TextEdit{{
				Span:    mc.MethodSpan,
				NewText: replacement,
				OldText: old,
			}},
		}).
		Report()
}
