package lint

import (
	"tempestlint/internal/diag"
)

// Level is the severity assigned to a rule. Levels are ordered:
// Allow < Warn < Deny < Forbid. A Forbid default can never be lowered by
// configuration or command-line toggles.
type Level uint8

const (
	// LevelAllow silences the rule entirely.
	LevelAllow Level = iota
	// LevelWarn reports findings without failing the session.
	LevelWarn
	// LevelDeny reports findings as errors.
	LevelDeny
	// LevelForbid is Deny that configuration cannot downgrade.
	LevelForbid
)

func (l Level) String() string {
	switch l {
	case LevelAllow:
		return "allow"
	case LevelWarn:
		return "warn"
	case LevelDeny:
		return "deny"
	case LevelForbid:
		return "forbid"
	default:
		return "unknown"
	}
}

// ParseLevel converts a severity string from configuration or flags.
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "allow":
		return LevelAllow, true
	case "warn":
		return LevelWarn, true
	case "deny":
		return LevelDeny, true
	case "forbid":
		return LevelForbid, true
	default:
		return LevelAllow, false
	}
}

// Severity maps a level onto the diagnostic severity used for rendering.
func (l Level) Severity() diag.Severity {
	switch l {
	case LevelWarn:
		return diag.SevWarning
	case LevelDeny, LevelForbid:
		return diag.SevError
	default:
		return diag.SevInfo
	}
}
