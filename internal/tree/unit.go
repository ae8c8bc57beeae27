// Package tree defines the typed program tree the analysis engine walks.
//
// The tree arrives fully elaborated from the host frontend: every expression
// carries a resolved semantic type and every node carries a source span. The
// engine never parses source text and never mutates the tree.
package tree

import (
	"tempestlint/internal/source"
)

// Unit is one compilation unit: the functions of a single analyzed file.
type Unit struct {
	Name  string
	File  source.FileID
	Funcs []*Func
}
