package lint

import (
	"fmt"

	"tempestlint/internal/lintconfig"
)

// Toggle is one severity override from the command line: a rule or group
// name (short or qualified) bound to a level. Toggles are applied in the
// order they were given, last write wins.
type Toggle struct {
	Name  string
	Level Level
}

// RuleLevel pairs an unqualified rule name with a level. Expand produces a
// flat list of these from a mixed sequence of rule and group toggles.
type RuleLevel struct {
	Rule  string
	Level Level
}

// Registry is the process-wide catalog of rules and groups. Registration
// happens once during installer setup; after that the registry is read-only
// and safe for concurrent lookups.
type Registry struct {
	rules      []Rule
	byName     map[string]int
	groups     map[string][]string
	groupOrder []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]int),
		groups: make(map[string][]string),
	}
}

// Register adds a rule. Duplicate or empty names are programming errors and
// panic; the catalog must be unambiguous before any dispatch runs.
func (r *Registry) Register(rule Rule) {
	if rule.Name == "" {
		panic("lint: cannot register rule with empty name")
	}
	if _, exists := r.byName[rule.Name]; exists {
		panic(fmt.Sprintf("lint: duplicate rule %q", rule.ID()))
	}
	if _, exists := r.groups[rule.Name]; exists {
		panic(fmt.Sprintf("lint: rule %q collides with a group of the same name", rule.ID()))
	}
	r.byName[rule.Name] = len(r.rules)
	r.rules = append(r.rules, rule)
}

// RegisterGroup adds a named group over previously registered rules. Member
// order is preserved: expanding a group applies members in this order.
func (r *Registry) RegisterGroup(name string, members []string) {
	if name == "" {
		panic("lint: cannot register group with empty name")
	}
	if _, exists := r.groups[name]; exists {
		panic(fmt.Sprintf("lint: duplicate group %q", name))
	}
	if _, exists := r.byName[name]; exists {
		panic(fmt.Sprintf("lint: group %q collides with a rule of the same name", name))
	}
	for _, m := range members {
		if _, ok := r.byName[m]; !ok {
			panic(fmt.Sprintf("lint: group %q references unknown rule %q", name, m))
		}
	}
	r.groups[name] = append([]string(nil), members...)
	r.groupOrder = append(r.groupOrder, name)
}

// Rules returns all rules in registration order.
func (r *Registry) Rules() []Rule {
	return r.rules
}

// Lookup finds a rule by short or qualified name.
func (r *Registry) Lookup(name string) (Rule, bool) {
	idx, ok := r.byName[unqualify(name)]
	if !ok {
		return Rule{}, false
	}
	return r.rules[idx], true
}

// Group returns the members of a named group.
func (r *Registry) Group(name string) ([]string, bool) {
	members, ok := r.groups[unqualify(name)]
	return members, ok
}

// GroupNames returns group names in registration order.
func (r *Registry) GroupNames() []string {
	return r.groupOrder
}

// Expand flattens a toggle sequence into per-rule levels. Group toggles
// expand to their members in group order; later toggles override earlier
// ones for the same rule, so "-warn pedantic -allow zst_selector" keeps the
// group at warn while the single rule drops back to allow. Unknown names
// are an error: a misspelled toggle silently doing nothing would be worse.
func (r *Registry) Expand(toggles []Toggle) ([]RuleLevel, error) {
	levels := make(map[string]Level)
	var order []string

	set := func(rule string, level Level) {
		if _, seen := levels[rule]; !seen {
			order = append(order, rule)
		}
		levels[rule] = level
	}

	for _, t := range toggles {
		name := unqualify(t.Name)
		if members, ok := r.groups[name]; ok {
			for _, m := range members {
				set(m, t.Level)
			}
			continue
		}
		if _, ok := r.byName[name]; ok {
			set(name, t.Level)
			continue
		}
		return nil, fmt.Errorf("unknown rule or group %q", t.Name)
	}

	out := make([]RuleLevel, 0, len(order))
	for _, rule := range order {
		out = append(out, RuleLevel{Rule: rule, Level: levels[rule]})
	}
	return out, nil
}

// EffectiveLevels computes the final per-rule level for a session. Defaults
// come first, then the configuration overlay, then explicit toggles, each
// layer overriding the previous one. Rules whose compiled-in default is
// Forbid ignore every downgrade attempt. Overlay severity strings that do
// not parse are ignored, matching the overlay's drop-malformed policy.
func EffectiveLevels(reg *Registry, cfg *lintconfig.Overlay, toggles []Toggle) (map[string]Level, error) {
	levels := make(map[string]Level, len(reg.rules))
	for _, rule := range reg.rules {
		levels[rule.Name] = rule.Default
	}

	if cfg != nil {
		for _, rule := range reg.rules {
			raw, ok := cfg.Level(rule.Name)
			if !ok {
				continue
			}
			if level, valid := ParseLevel(raw); valid {
				levels[rule.Name] = level
			}
		}
	}

	expanded, err := reg.Expand(toggles)
	if err != nil {
		return nil, err
	}
	for _, rl := range expanded {
		levels[rl.Rule] = rl.Level
	}

	for _, rule := range reg.rules {
		if rule.Default == LevelForbid {
			levels[rule.Name] = LevelForbid
		}
	}
	return levels, nil
}
