package lint

import "strings"

// Namespace is the tool namespace shared by every rule and group. The fully
// qualified form "tempest::rule_name" is what diagnostics carry and what the
// host's severity-flag mechanism toggles.
const Namespace = "tempest"

// Rule describes one registered lint: its identifier, compiled-in default
// level, a one-line summary for listings, and group memberships. Rules are
// immutable once registered.
type Rule struct {
	Name    string
	Default Level
	Summary string
	Groups  []string
}

// ID returns the fully qualified rule identifier.
func (r Rule) ID() string {
	return Namespace + "::" + r.Name
}

// unqualify strips an optional "tempest::" prefix so lookups accept both
// the short and the fully qualified spelling.
func unqualify(name string) string {
	return strings.TrimPrefix(name, Namespace+"::")
}
