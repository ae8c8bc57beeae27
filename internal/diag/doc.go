// Package diag defines the diagnostic model shared by all lint rules.
//
//   - Diagnostic is the central record: the producing rule, a severity, a
//     message, the primary span, optional notes and optional suggestions.
//   - Suggestion models a possible correction as concrete text edits tagged
//     with an Applicability confidence level; only MachineApplicable
//     suggestions may be applied without review, and any producer that
//     cannot recover exact replacement text must downgrade its claim.
//   - Bag aggregates diagnostics with a limit and supports deterministic
//     sorting and deduplication.
//   - Reporter decouples emission from storage so rules never depend on a
//     concrete sink.
//
// Rendering lives in internal/diagfmt; edit application lives in
// internal/fix. The data model stays deterministic and side-effect free so
// diagnostics can be serialized for testing.
package diag
