package diag

import (
	"tempestlint/internal/source"
)

// Applicability is the confidence tag on a suggested edit. It governs
// whether the fix engine may apply the edit without a human in the loop.
type Applicability uint8

const (
	// ApplicabilityUnspecified means the producer made no claim.
	ApplicabilityUnspecified Applicability = iota
	// MachineApplicable edits are semantically exact and safe to apply
	// automatically.
	MachineApplicable
	// MaybeIncorrect edits are syntactically valid but may change semantics
	// or style.
	MaybeIncorrect
	// HasPlaceholders edits contain non-literal placeholder text (such as a
	// bare type parameter name) and must never be auto-applied.
	HasPlaceholders
)

func (a Applicability) String() string {
	switch a {
	case MachineApplicable:
		return "machine-applicable"
	case MaybeIncorrect:
		return "maybe-incorrect"
	case HasPlaceholders:
		return "has-placeholders"
	default:
		return "unspecified"
	}
}

// TextEdit is one concrete replacement inside a file. OldText, when set,
// acts as a guard: the fix engine refuses the edit if the file content at
// Span no longer matches.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// Suggestion is a possible correction: a title for listings, a confidence
// level, and the edits to perform.
type Suggestion struct {
	Title         string
	Applicability Applicability
	Edits         []TextEdit
	IsPreferred   bool
}

// Downgrade lowers a MachineApplicable claim to the given level. Producers
// call it on the path where exact replacement text could not be recovered;
// stronger claims than the current one are never granted.
func (a Applicability) Downgrade(to Applicability) Applicability {
	if a == MachineApplicable {
		return to
	}
	return a
}
