// Package driver orchestrates analysis sessions: installer lists, snapshot
// loading, configuration and dispatch.
package driver

import (
	"tempestlint/internal/lint"
	"tempestlint/internal/rules"
)

// InstallFunc registers a catalog of rules into a registry and returns the
// passes to run. Installers must not assume they are the only catalog.
type InstallFunc func(reg *lint.Registry) []lint.Pass

// Installers is an ordered, append-only list of rule catalogs. Adding a
// catalog never displaces the ones installed before it; the combined pass
// list preserves installation order, which fixes dispatch order.
type Installers struct {
	funcs []InstallFunc
}

// NewInstallers creates an empty installer list.
func NewInstallers() *Installers {
	return &Installers{}
}

// DefaultInstallers returns an installer list with the built-in catalog.
func DefaultInstallers() *Installers {
	i := NewInstallers()
	i.Install(rules.Install)
	return i
}

// Install appends a catalog to the list.
func (i *Installers) Install(f InstallFunc) {
	if f == nil {
		return
	}
	i.funcs = append(i.funcs, f)
}

// Apply runs every installer against the registry, in order, and returns
// the concatenated passes.
func (i *Installers) Apply(reg *lint.Registry) []lint.Pass {
	var passes []lint.Pass
	for _, f := range i.funcs {
		passes = append(passes, f(reg)...)
	}
	return passes
}
