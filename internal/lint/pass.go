package lint

import "tempestlint/internal/tree"

// Pass is the minimal contract of a rule implementation. Concrete passes
// additionally implement one or more checker interfaces below; the
// dispatcher inspects which ones a pass satisfies and calls only those.
type Pass interface {
	Rule() Rule
}

// FuncChecker is invoked once per function definition, before the
// function's body is traversed.
type FuncChecker interface {
	Pass
	CheckFunc(ctx *Context, fn *tree.Func)
}

// ExprChecker is invoked for every expression in pre-order.
type ExprChecker interface {
	Pass
	CheckExpr(ctx *Context, e *tree.Expr)
}

// TypeRefChecker is invoked for every written type reference, including
// those nested inside generic argument lists.
type TypeRefChecker interface {
	Pass
	CheckTypeRef(ctx *Context, t *tree.TypeRef)
}
