package rules

import "tempestlint/internal/lint"

// Install registers the built-in catalog and its groups, returning the
// passes in registration order. The driver appends this to its installer
// list; external catalogs install the same way and never displace it.
func Install(reg *lint.Registry) []lint.Pass {
	passes := []lint.Pass{
		NewInsertEventResource(),
		NewMainReturnWithoutAppExit(),
		NewZstSelector(),
		NewPanickingWorldMethods(),
	}
	for _, p := range passes {
		reg.Register(p.Rule())
	}
	reg.RegisterGroup("suspicious", []string{"insert_event_resource"})
	reg.RegisterGroup("pedantic", []string{"main_return_without_app_exit"})
	reg.RegisterGroup("restriction", []string{"zst_selector", "panicking_world_methods"})
	return passes
}
