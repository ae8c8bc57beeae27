package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tempestlint/internal/frontend"
	"tempestlint/internal/lint"
	"tempestlint/internal/lintconfig"
	"tempestlint/internal/testkit"
	"tempestlint/internal/tree"
	"tempestlint/internal/types"
)

// findingProgram builds a program whose single unit inserts an event buffer
// as a resource, which the built-in catalog flags at deny level.
func findingProgram(t *testing.T) *frontend.Program {
	t.Helper()
	src := "fn setup() {\n    app.insert_resource(ev);\n}\n"
	fx := testkit.NewFixture("setup.tp", src)

	app := fx.Named("tempest", "app", "App")
	event := fx.Named("game", "MoveEvent")
	buf := fx.NamedWith([]types.TypeID{event}, "tempest", "event", "EventBuffer")

	call := &tree.Expr{
		Kind: tree.ExprMethodCall,
		Span: fx.Span("insert_resource(ev)"),
		Data: &tree.MethodCallData{
			Recv:       &tree.Expr{Kind: tree.ExprVarRef, Type: app, Data: &tree.VarRefData{Name: "app"}},
			Method:     "insert_resource",
			NameSpan:   fx.Span("insert_resource"),
			MethodSpan: fx.Span("insert_resource(ev)"),
			Args: []*tree.Expr{{
				Kind: tree.ExprVarRef,
				Type: buf,
				Span: fx.Span("ev"),
				Data: &tree.VarRefData{Name: "ev"},
			}},
		},
	}
	fx.AddFunc(&tree.Func{
		Name: "setup",
		Body: &tree.Block{Stmts: []*tree.Stmt{{
			Kind: tree.StmtExpr,
			Data: &tree.ExprStmtData{Expr: call, Semi: fx.Span(";")},
		}}},
	})
	return fx.Program
}

// writeFindingSnapshot stores findingProgram as a snapshot file.
func writeFindingSnapshot(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "setup.snapshot")
	if err := frontend.WriteSnapshot(path, findingProgram(t)); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}
	return path
}

func TestSessionRunReportsFindings(t *testing.T) {
	dir := t.TempDir()
	path := writeFindingSnapshot(t, dir)

	s := NewSession(nil, Config{SnapshotPaths: []string{path}, ManifestDir: dir})
	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Programs) != 1 {
		t.Fatalf("got %d programs, want 1", len(result.Programs))
	}
	if result.Bag.Len() != 1 {
		t.Fatalf("got %d diagnostics, want 1", result.Bag.Len())
	}
	if got := result.Bag.Items()[0].Rule; got != "tempest::insert_event_resource" {
		t.Fatalf("rule = %q", got)
	}
	if result.Levels["insert_event_resource"] != lint.LevelDeny {
		t.Fatalf("effective level = %v, want deny", result.Levels["insert_event_resource"])
	}
}

func TestAnalyzeKeepsFindingsAcrossPrograms(t *testing.T) {
	// Independent programs number their files from zero, so two findings
	// from different programs can land on identical spans. Both must
	// survive into the aggregate.
	a := findingProgram(t)
	b := findingProgram(t)

	s := NewSession(nil, Config{ManifestDir: t.TempDir()})
	result, err := s.Analyze([]*frontend.Program{a, b})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(result.Bags) != 2 {
		t.Fatalf("got %d per-program bags, want 2", len(result.Bags))
	}
	for i, bag := range result.Bags {
		if bag.Len() != 1 {
			t.Fatalf("program %d reported %d diagnostics, want 1", i, bag.Len())
		}
	}
	if result.Bag.Len() != 2 {
		t.Fatalf("got %d diagnostics for two independent programs, want 2", result.Bag.Len())
	}
}

func TestSessionTogglesSilenceRules(t *testing.T) {
	dir := t.TempDir()
	path := writeFindingSnapshot(t, dir)

	s := NewSession(nil, Config{
		SnapshotPaths: []string{path},
		ManifestDir:   dir,
		Toggles:       []lint.Toggle{{Name: "insert_event_resource", Level: lint.LevelAllow}},
	})
	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Bag.Len() != 0 {
		t.Fatalf("got %d diagnostics with the rule allowed, want 0", result.Bag.Len())
	}
}

func TestSessionManifestOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFindingSnapshot(t, dir)
	manifest := "[lints]\ninsert_event_resource = \"allow\"\n"
	if err := os.WriteFile(filepath.Join(dir, lintconfig.ManifestName), []byte(manifest), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	s := NewSession(nil, Config{SnapshotPaths: []string{path}, ManifestDir: dir})
	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Bag.Len() != 0 {
		t.Fatalf("got %d diagnostics with a manifest override, want 0", result.Bag.Len())
	}
}

func TestSessionUnknownToggleFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFindingSnapshot(t, dir)

	s := NewSession(nil, Config{
		SnapshotPaths: []string{path},
		ManifestDir:   dir,
		Toggles:       []lint.Toggle{{Name: "no_such_rule", Level: lint.LevelDeny}},
	})
	if _, err := s.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "no_such_rule") {
		t.Fatalf("err = %v, want unknown rule error", err)
	}
}

func TestSessionMissingSnapshotFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.snapshot")
	s := NewSession(nil, Config{SnapshotPaths: []string{missing}})
	if _, err := s.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "failed to load") {
		t.Fatalf("err = %v, want load failure", err)
	}
}

func TestInstallersPreserveOrder(t *testing.T) {
	extra := func(reg *lint.Registry) []lint.Pass {
		return nil
	}
	i := DefaultInstallers()
	i.Install(extra)
	i.Install(nil)

	reg := lint.NewRegistry()
	passes := i.Apply(reg)
	if len(passes) != 4 {
		t.Fatalf("got %d passes, want the built-in catalog", len(passes))
	}
	if _, ok := reg.Lookup("insert_event_resource"); !ok {
		t.Fatalf("built-in catalog missing after Apply")
	}
}
