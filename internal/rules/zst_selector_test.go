package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tempestlint/internal/lint"
	"tempestlint/internal/lintconfig"
	"tempestlint/internal/testkit"
	"tempestlint/internal/tree"
	"tempestlint/internal/types"
)

var warnZstSelector = map[string]lint.Level{"zst_selector": lint.LevelWarn}

// selectorFixture builds a system function whose parameter is
// Selector<Ctx, State, (&mut Position, MarkerTag)>.
func selectorFixture(t *testing.T) (*testkit.Fixture, types.TypeID) {
	t.Helper()
	src := "fn movement(sel: Selector<Ctx, State, (&mut Position, MarkerTag)>) {\n}\n"
	fx := testkit.NewFixture("movement.tp", src)

	f32 := fx.Program.Types.Intern(types.MakeFloat(types.Width32))
	position := fx.Concrete([]string{"game", "Position"}, f32, f32)
	marker := fx.Marker("game", "MarkerTag")
	ctxT := fx.Named("tempest", "query", "Ctx")
	stateT := fx.Named("tempest", "query", "State")

	data := fx.Tuple(fx.Ref(position, true), marker)
	sel := fx.NamedWith([]types.TypeID{ctxT, stateT, data}, "tempest", "query", "Selector")

	ref := &tree.TypeRef{
		Span:     fx.Span("Selector<Ctx, State, (&mut Position, MarkerTag)>"),
		Segments: []string{"Selector"},
		Type:     sel,
		Args: []*tree.TypeRef{
			{Span: fx.Span("Ctx"), Segments: []string{"Ctx"}, Type: ctxT},
			{Span: fx.Span("State"), Segments: []string{"State"}, Type: stateT},
			{
				Span: fx.Span("(&mut Position, MarkerTag)"),
				Type: data,
				Args: []*tree.TypeRef{
					{Span: fx.Span("&mut Position"), Segments: []string{"Position"}, Type: fx.Ref(position, true)},
					{Span: fx.Span("MarkerTag"), Segments: []string{"MarkerTag"}, Type: marker},
				},
			},
		},
	}
	fx.AddFunc(&tree.Func{
		Name:   "movement",
		Params: []tree.Param{{Name: "sel", Span: fx.Span("sel"), Type: ref}},
		Body:   &tree.Block{},
	})
	return fx, marker
}

func TestZstSelectorFlagsMarkerElement(t *testing.T) {
	fx, _ := selectorFixture(t)

	bag := fx.Run([]lint.Pass{NewZstSelector()}, warnZstSelector, nil)
	if bag.Len() != 1 {
		t.Fatalf("got %d diagnostics, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if d.Rule != "tempest::zst_selector" {
		t.Fatalf("rule = %q", d.Rule)
	}
	if !strings.Contains(d.Message, "MarkerTag") {
		t.Fatalf("message %q does not name the offending type", d.Message)
	}
	want := fx.Span("MarkerTag")
	if d.Primary != want {
		t.Fatalf("primary span = %v, want the written MarkerTag at %v", d.Primary, want)
	}
	if len(d.Notes) != 1 || !strings.Contains(d.Notes[0].Msg, "With<MarkerTag>") {
		t.Fatalf("notes = %v, want a With<MarkerTag> filter hint", d.Notes)
	}
}

func TestZstSelectorDefaultsToAllow(t *testing.T) {
	fx, _ := selectorFixture(t)

	bag := fx.Run([]lint.Pass{NewZstSelector()}, nil, nil)
	if bag.Len() != 0 {
		t.Fatalf("got %d diagnostics at the default level, want 0", bag.Len())
	}
}

func TestZstSelectorSkipsUnsizedElements(t *testing.T) {
	src := "fn generic(sel: Selector<Ctx, State, T>) {\n}\n"
	fx := testkit.NewFixture("generic.tp", src)

	ctxT := fx.Named("tempest", "query", "Ctx")
	stateT := fx.Named("tempest", "query", "State")
	param := fx.Program.Types.RegisterGenericParam("T")
	sel := fx.NamedWith([]types.TypeID{ctxT, stateT, param}, "tempest", "query", "Selector")

	ref := &tree.TypeRef{
		Span:     fx.Span("Selector<Ctx, State, T>"),
		Segments: []string{"Selector"},
		Type:     sel,
	}
	fx.AddFunc(&tree.Func{
		Name:   "generic",
		Params: []tree.Param{{Name: "sel", Span: fx.Span("sel"), Type: ref}},
		Body:   &tree.Block{},
	})

	bag := fx.Run([]lint.Pass{NewZstSelector()}, warnZstSelector, nil)
	if bag.Len() != 0 {
		t.Fatalf("got %d diagnostics for an unsubstituted element, want 0", bag.Len())
	}
}

func TestZstSelectorHonorsIgnoreList(t *testing.T) {
	fx, _ := selectorFixture(t)

	dir := t.TempDir()
	manifest := "[lints]\nzst_selector = { ignore = [\"game::MarkerTag\"] }\n"
	if err := os.WriteFile(filepath.Join(dir, lintconfig.ManifestName), []byte(manifest), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	overlay := lintconfig.NewOverlay()
	overlay.Load(dir)

	bag := fx.Run([]lint.Pass{NewZstSelector()}, warnZstSelector, overlay)
	if bag.Len() != 0 {
		t.Fatalf("got %d diagnostics for an ignored type, want 0", bag.Len())
	}
}

func TestZstSelectorIgnoresOtherTypes(t *testing.T) {
	src := "fn other(q: Query<Thing>) {\n}\n"
	fx := testkit.NewFixture("other.tp", src)

	marker := fx.Marker("game", "Thing")
	other := fx.NamedWith([]types.TypeID{marker}, "game", "Query")

	ref := &tree.TypeRef{Span: fx.Span("Query<Thing>"), Segments: []string{"Query"}, Type: other}
	fx.AddFunc(&tree.Func{
		Name:   "other",
		Params: []tree.Param{{Name: "q", Span: fx.Span("q:"), Type: ref}},
		Body:   &tree.Block{},
	})

	bag := fx.Run([]lint.Pass{NewZstSelector()}, warnZstSelector, nil)
	if bag.Len() != 0 {
		t.Fatalf("got %d diagnostics for a non-Selector type, want 0", bag.Len())
	}
}
