package layout

import (
	"tempestlint/internal/types"
)

// TypeLayout captures the computed size and alignment of a type in bytes.
type TypeLayout struct {
	Size  int
	Align int
}

// IsZeroSized reports whether the type occupies no storage.
func (l TypeLayout) IsZeroSized() bool {
	return l.Size == 0
}

// Engine computes byte layouts for semantic types against a target pointer
// model. Results are cached per TypeID; the cache is valid for the lifetime
// of the interner it was created with.
type Engine struct {
	Types  *types.Interner
	Target Target

	cache map[types.TypeID]TypeLayout
}

// NewEngine creates a layout engine for the given interner and target.
func NewEngine(in *types.Interner, target Target) *Engine {
	return &Engine{
		Types:  in,
		Target: target,
		cache:  make(map[types.TypeID]TypeLayout, 32),
	}
}

// LayoutOf returns the layout for id, computing and caching it on first use.
// It returns ErrNotNormalizable when the type's size cannot be determined.
func (e *Engine) LayoutOf(id types.TypeID) (TypeLayout, error) {
	if e == nil || e.Types == nil {
		return TypeLayout{}, ErrNotNormalizable
	}
	if l, ok := e.cache[id]; ok {
		return l, nil
	}
	l, err := e.compute(id, make(map[types.TypeID]bool, 8))
	if err != nil {
		return TypeLayout{}, err
	}
	e.cache[id] = l
	return l, nil
}
