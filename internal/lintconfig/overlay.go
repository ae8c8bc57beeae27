// Package lintconfig holds the per-project rule configuration overlay.
//
// Configuration lives in the [lints] section of the nearest tempest.toml,
// located by walking up from the directory of the unit being analyzed. Each
// key is a rule name; each value is either a severity string or a table with
// an optional "level" key plus arbitrary rule-specific parameters:
//
//	[lints]
//	insert_event_resource = "deny"
//	zst_selector = { level = "warn", ignore = ["game::ui::Anchor"] }
//
// The overlay is rebuilt from scratch at the start of every analysis session
// so configuration never leaks between independently configured projects
// compiled in one process.
package lintconfig

import (
	"sync"

	"github.com/BurntSushi/toml"
)

// Entry is the stored configuration for one rule.
type Entry struct {
	// Level is the raw severity string from the manifest ("allow", "warn",
	// "deny", "forbid"). Validation happens when effective levels are
	// computed, so the overlay itself stays a dumb store.
	Level  string
	Params Params
}

// Overlay is the process-wide configuration store. Load takes the write
// lock and replaces the whole map; With takes the read lock. Sessions are
// expected to call Load before dispatch starts, never during a traversal.
type Overlay struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewOverlay creates an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{entries: make(map[string]Entry)}
}

type manifestLints struct {
	Lints map[string]toml.Primitive `toml:"lints"`
}

// Load locates the nearest manifest relative to startDir, reads its [lints]
// section and atomically replaces the in-memory map. Every failure mode —
// no manifest, unreadable manifest, missing section — degrades to an empty
// overlay rather than an error: lookups then see empty-default behavior.
// Malformed entries are dropped silently; see DESIGN.md for the open
// question around surfacing them.
func (o *Overlay) Load(startDir string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// Clear first so stale values never survive a failed load.
	o.entries = make(map[string]Entry)

	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return
	}

	var cfg manifestLints
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return
	}
	if !meta.IsDefined("lints") {
		return
	}

	for name, prim := range cfg.Lints {
		if entry, ok := decodeEntry(meta, prim); ok {
			o.entries[name] = entry
		}
	}
}

// decodeEntry interprets one [lints] value: a bare string is a severity with
// no parameters; a table contributes an optional "level" key (removed) plus
// the remaining keys as parameters. Anything else is malformed and dropped.
func decodeEntry(meta toml.MetaData, prim toml.Primitive) (Entry, bool) {
	var level string
	if err := meta.PrimitiveDecode(prim, &level); err == nil {
		return Entry{Level: level}, true
	}

	var table map[string]any
	if err := meta.PrimitiveDecode(prim, &table); err != nil {
		return Entry{}, false
	}
	entry := Entry{Params: make(Params, len(table))}
	for k, v := range table {
		if k == "level" {
			if s, ok := v.(string); ok {
				entry.Level = s
			}
			continue
		}
		entry.Params[k] = v
	}
	return entry, true
}

// With looks up the entry for rule and invokes f with its parameter table.
// Absent rules get an empty table, so callers never special-case "no
// configuration". The read lock is held for the duration of f.
func (o *Overlay) With(rule string, f func(Params)) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if entry, ok := o.entries[rule]; ok && entry.Params != nil {
		f(entry.Params)
		return
	}
	f(Params{})
}

// Level returns the raw severity override string for rule, if configured.
func (o *Overlay) Level(rule string) (string, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	entry, ok := o.entries[rule]
	if !ok || entry.Level == "" {
		return "", false
	}
	return entry.Level, true
}

// Names returns the rule names with configuration entries, unordered.
func (o *Overlay) Names() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]string, 0, len(o.entries))
	for name := range o.entries {
		out = append(out, name)
	}
	return out
}

// Len returns the number of configured rules.
func (o *Overlay) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.entries)
}

// Reset clears the overlay, as if no manifest existed.
func (o *Overlay) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries = make(map[string]Entry)
}
