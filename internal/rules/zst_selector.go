package rules

import (
	"fmt"
	"slices"
	"strings"

	"tempestlint/internal/lint"
	"tempestlint/internal/lintconfig"
	"tempestlint/internal/source"
	"tempestlint/internal/tree"
	"tempestlint/internal/types"
)

// ZstSelector flags selectors whose data shape includes a zero-sized type.
// Selecting a ZST yields no data; a filter states the intent and lets the
// scheduler skip the fetch entirely.
type ZstSelector struct{}

// NewZstSelector creates the pass.
func NewZstSelector() *ZstSelector {
	return &ZstSelector{}
}

func (*ZstSelector) Rule() lint.Rule {
	return lint.Rule{
		Name:    "zst_selector",
		Default: lint.LevelAllow,
		Summary: "selecting a zero-sized type fetches no data; use a filter",
		Groups:  []string{"restriction"},
	}
}

func (r *ZstSelector) CheckTypeRef(ctx *lint.Context, t *tree.TypeRef) {
	id := ctx.TypeOfRef(t)
	if !ctx.Types.MatchPath(id, selectorPath) {
		return
	}
	data, ok := ctx.Types.GenericArgAt(ctx.Types.StripRefs(id), selectorDataArg)
	if !ok {
		return
	}

	var ignored []string
	ctx.WithParams(r.Rule(), func(p lintconfig.Params) {
		ignored, _ = p.GetStringList("ignore")
	})

	for elem := range ctx.Types.Detuple(data) {
		bare := ctx.Types.StripRefs(elem)
		lay, err := ctx.SizeOf(bare)
		if err != nil {
			// Unsubstituted generics and opaque types have no layout to
			// judge; stay silent rather than guess.
			continue
		}
		if !lay.IsZeroSized() {
			continue
		}
		if slices.Contains(ignored, canonicalName(ctx.Types, bare)) {
			continue
		}
		name := ctx.Types.String(bare)
		ctx.Emit(r.Rule(), r.elemSpan(t, elem, bare),
			fmt.Sprintf("selector fetches zero-sized type %s", name)).
			WithNote(source.Span{}, fmt.Sprintf("consider using a filter instead: With<%s>", name)).
			Report()
	}
}

// elemSpan picks the written span of the offending element when the
// syntactic argument list carries one, falling back to the whole reference.
func (*ZstSelector) elemSpan(t *tree.TypeRef, elem, bare types.TypeID) source.Span {
	data := t.ArgAt(selectorDataArg)
	if data == nil {
		return t.Span
	}
	if data.Type == elem || data.Type == bare {
		return data.Span
	}
	for _, arg := range data.Args {
		if arg != nil && (arg.Type == elem || arg.Type == bare) {
			return arg.Span
		}
	}
	return data.Span
}

// canonicalName renders the full defining path, the form ignore lists use.
func canonicalName(in *types.Interner, id types.TypeID) string {
	info, ok := in.NamedInfo(id)
	if !ok {
		return ""
	}
	return strings.Join(info.Path, "::")
}
