package diag

import (
	"tempestlint/internal/source"
)

// Note is a secondary span with context for a diagnostic. Notes should add
// new information ("declared here"), not restate the message.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one reported finding.
type Diagnostic struct {
	// Rule is the fully qualified identifier of the rule that produced the
	// finding, e.g. "tempest::insert_event_resource".
	Rule        string
	Severity    Severity
	Message     string
	Primary     source.Span
	Notes       []Note
	Suggestions []Suggestion
}

// New constructs a diagnostic with the required fields.
func New(rule string, sev Severity, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Rule:     rule,
		Severity: sev,
		Primary:  primary,
		Message:  msg,
	}
}

// WithNote appends a note.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithSuggestion appends a suggested edit.
func (d Diagnostic) WithSuggestion(s Suggestion) Diagnostic {
	d.Suggestions = append(d.Suggestions, s)
	return d
}
