package rules

import (
	"testing"

	"tempestlint/internal/lint"
)

func TestInstallCatalog(t *testing.T) {
	reg := lint.NewRegistry()
	passes := Install(reg)

	if len(passes) != 4 {
		t.Fatalf("got %d passes, want 4", len(passes))
	}
	for _, p := range passes {
		if _, ok := reg.Lookup(p.Rule().Name); !ok {
			t.Fatalf("rule %q was not registered", p.Rule().Name)
		}
	}

	groups := map[string][]string{
		"suspicious":  {"insert_event_resource"},
		"pedantic":    {"main_return_without_app_exit"},
		"restriction": {"zst_selector", "panicking_world_methods"},
	}
	for name, want := range groups {
		members, ok := reg.Group(name)
		if !ok {
			t.Fatalf("group %q was not registered", name)
		}
		if len(members) != len(want) {
			t.Fatalf("group %q has %d members, want %d", name, len(members), len(want))
		}
		for i, m := range members {
			if m != want[i] {
				t.Fatalf("group %q member %d = %q, want %q", name, i, m, want[i])
			}
		}
	}
}

func TestInstallTwicePanics(t *testing.T) {
	reg := lint.NewRegistry()
	Install(reg)

	defer func() {
		if recover() == nil {
			t.Fatalf("double install did not panic")
		}
	}()
	Install(reg)
}
