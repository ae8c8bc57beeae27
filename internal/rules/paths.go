// Package rules implements the built-in rule catalog for the Tempest
// framework. Each rule is a self-contained pass; Install registers all of
// them plus the rule groups.
package rules

// Canonical defining paths of the framework types the catalog keys on.
// Matching is nominal: a user type that merely shares the final segment
// never matches.
var (
	appPath         = []string{"tempest", "app", "App"}
	appExitPath     = []string{"tempest", "app", "AppExit"}
	eventBufferPath = []string{"tempest", "event", "EventBuffer"}
	selectorPath    = []string{"tempest", "query", "Selector"}
	worldPath       = []string{"tempest", "world", "World"}
)

// selectorDataArg is the position of the selected-data shape among
// Selector's generic arguments (Ctx, State, Data, Filter).
const selectorDataArg = 2

// panickingWorldMethods maps World accessors that panic on absence to
// their fallible get_ alternatives.
var panickingWorldMethods = map[string]string{
	"entity":                "get_entity",
	"entity_mut":            "get_entity_mut",
	"resource":              "get_resource",
	"resource_mut":          "get_resource_mut",
	"non_send_resource":     "get_non_send_resource",
	"non_send_resource_mut": "get_non_send_resource_mut",
}
