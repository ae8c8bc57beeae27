package lint

import (
	"os"
	"path/filepath"
	"testing"

	"tempestlint/internal/lintconfig"
)

func catalogRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	reg.Register(Rule{Name: "alpha", Default: LevelDeny})
	reg.Register(Rule{Name: "beta", Default: LevelWarn})
	reg.Register(Rule{Name: "gamma", Default: LevelAllow})
	reg.Register(Rule{Name: "delta", Default: LevelForbid})
	reg.RegisterGroup("style", []string{"beta", "gamma"})
	return reg
}

func TestRegisterDuplicatePanics(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Rule{Name: "alpha"})
	defer func() {
		if recover() == nil {
			t.Fatalf("duplicate registration did not panic")
		}
	}()
	reg.Register(Rule{Name: "alpha"})
}

func TestRegisterGroupCollisionPanics(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Rule{Name: "alpha"})
	defer func() {
		if recover() == nil {
			t.Fatalf("group colliding with a rule name did not panic")
		}
	}()
	reg.RegisterGroup("alpha", []string{"alpha"})
}

func TestRegisterGroupUnknownMemberPanics(t *testing.T) {
	reg := NewRegistry()
	defer func() {
		if recover() == nil {
			t.Fatalf("group with unknown member did not panic")
		}
	}()
	reg.RegisterGroup("style", []string{"missing"})
}

func TestLookupAcceptsQualifiedNames(t *testing.T) {
	reg := catalogRegistry(t)
	if _, ok := reg.Lookup("tempest::alpha"); !ok {
		t.Fatalf("Lookup rejected the qualified spelling")
	}
	if _, ok := reg.Lookup("alpha"); !ok {
		t.Fatalf("Lookup rejected the short spelling")
	}
}

func TestExpandGroupThenRuleOverride(t *testing.T) {
	reg := catalogRegistry(t)

	out, err := reg.Expand([]Toggle{
		{Name: "style", Level: LevelDeny},
		{Name: "gamma", Level: LevelAllow},
	})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	want := []RuleLevel{
		{Rule: "beta", Level: LevelDeny},
		{Rule: "gamma", Level: LevelAllow},
	}
	if len(out) != len(want) {
		t.Fatalf("Expand returned %d entries, want %d: %v", len(out), len(want), out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("Expand[%d] = %+v, want %+v", i, out[i], want[i])
		}
	}
}

func TestExpandRuleThenGroupOverride(t *testing.T) {
	reg := catalogRegistry(t)

	out, err := reg.Expand([]Toggle{
		{Name: "gamma", Level: LevelAllow},
		{Name: "style", Level: LevelDeny},
	})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	levels := make(map[string]Level, len(out))
	for _, rl := range out {
		levels[rl.Rule] = rl.Level
	}
	if levels["gamma"] != LevelDeny {
		t.Fatalf("later group toggle did not win: gamma = %s", levels["gamma"])
	}
}

func TestExpandUnknownNameFails(t *testing.T) {
	reg := catalogRegistry(t)
	if _, err := reg.Expand([]Toggle{{Name: "nope", Level: LevelWarn}}); err == nil {
		t.Fatalf("Expand accepted an unknown toggle name")
	}
}

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, lintconfig.ManifestName), []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return dir
}

func TestEffectiveLevelsLayering(t *testing.T) {
	reg := catalogRegistry(t)
	dir := writeManifest(t, "[lints]\nalpha = \"warn\"\nbeta = \"deny\"\n")
	cfg := lintconfig.NewOverlay()
	cfg.Load(dir)

	levels, err := EffectiveLevels(reg, cfg, []Toggle{{Name: "beta", Level: LevelAllow}})
	if err != nil {
		t.Fatalf("EffectiveLevels failed: %v", err)
	}
	if levels["alpha"] != LevelWarn {
		t.Fatalf("config override lost: alpha = %s", levels["alpha"])
	}
	if levels["beta"] != LevelAllow {
		t.Fatalf("toggle did not override config: beta = %s", levels["beta"])
	}
	if levels["gamma"] != LevelAllow {
		t.Fatalf("default lost: gamma = %s", levels["gamma"])
	}
}

func TestEffectiveLevelsForbidFloor(t *testing.T) {
	reg := catalogRegistry(t)
	dir := writeManifest(t, "[lints]\ndelta = \"allow\"\n")
	cfg := lintconfig.NewOverlay()
	cfg.Load(dir)

	levels, err := EffectiveLevels(reg, cfg, []Toggle{{Name: "delta", Level: LevelAllow}})
	if err != nil {
		t.Fatalf("EffectiveLevels failed: %v", err)
	}
	if levels["delta"] != LevelForbid {
		t.Fatalf("Forbid default was downgraded to %s", levels["delta"])
	}
}

func TestEffectiveLevelsIgnoresInvalidConfigStrings(t *testing.T) {
	reg := catalogRegistry(t)
	dir := writeManifest(t, "[lints]\nalpha = \"loud\"\n")
	cfg := lintconfig.NewOverlay()
	cfg.Load(dir)

	levels, err := EffectiveLevels(reg, cfg, nil)
	if err != nil {
		t.Fatalf("EffectiveLevels failed: %v", err)
	}
	if levels["alpha"] != LevelDeny {
		t.Fatalf("invalid severity string changed alpha to %s", levels["alpha"])
	}
}

func TestParseLevel(t *testing.T) {
	for s, want := range map[string]Level{
		"allow":  LevelAllow,
		"warn":   LevelWarn,
		"deny":   LevelDeny,
		"forbid": LevelForbid,
	} {
		got, ok := ParseLevel(s)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = (%s, %v), want (%s, true)", s, got, ok, want)
		}
	}
	if _, ok := ParseLevel("Deny"); ok {
		t.Fatalf("ParseLevel accepted a capitalized level")
	}
}
