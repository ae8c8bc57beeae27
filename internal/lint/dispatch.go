package lint

import (
	"fmt"
	"io"
	"os"

	"tempestlint/internal/tree"
)

// Dispatcher fans one pre-order traversal of a unit out to every active
// pass. Passes are invoked in registration order at each node, so rules
// cost one walk total regardless of how many are enabled.
type Dispatcher struct {
	funcs    []FuncChecker
	exprs    []ExprChecker
	typeRefs []TypeRefChecker

	// ErrOut receives one line per recovered pass failure. Defaults to
	// stderr.
	ErrOut io.Writer
}

// NewDispatcher indexes the given passes by the checker interfaces they
// implement. Passes whose effective level is Allow are skipped entirely:
// a silenced rule costs nothing during traversal. levels may be nil, in
// which case rule defaults decide.
func NewDispatcher(passes []Pass, levels map[string]Level) *Dispatcher {
	d := &Dispatcher{ErrOut: os.Stderr}
	for _, p := range passes {
		rule := p.Rule()
		level := rule.Default
		if l, ok := levels[rule.Name]; ok {
			level = l
		}
		if level == LevelAllow {
			continue
		}
		if fc, ok := p.(FuncChecker); ok {
			d.funcs = append(d.funcs, fc)
		}
		if ec, ok := p.(ExprChecker); ok {
			d.exprs = append(d.exprs, ec)
		}
		if tc, ok := p.(TypeRefChecker); ok {
			d.typeRefs = append(d.typeRefs, tc)
		}
	}
	return d
}

// Active reports whether any checker survived level filtering.
func (d *Dispatcher) Active() bool {
	return len(d.funcs)+len(d.exprs)+len(d.typeRefs) > 0
}

// Run walks the unit once, dispatching each node to every matching checker.
// A panicking hook is recovered, logged and skipped for that node; the
// traversal and the remaining hooks continue unaffected.
func (d *Dispatcher) Run(ctx *Context, unit *tree.Unit) {
	if unit == nil || !d.Active() {
		return
	}
	tree.Walk(unit, &dispatchVisitor{d: d, ctx: ctx})
}

type dispatchVisitor struct {
	d   *Dispatcher
	ctx *Context
}

func (v *dispatchVisitor) VisitFunc(fn *tree.Func) {
	for _, fc := range v.d.funcs {
		v.d.safely(fc.Rule(), func() { fc.CheckFunc(v.ctx, fn) })
	}
}

func (v *dispatchVisitor) VisitExpr(e *tree.Expr) {
	for _, ec := range v.d.exprs {
		v.d.safely(ec.Rule(), func() { ec.CheckExpr(v.ctx, e) })
	}
}

func (v *dispatchVisitor) VisitTypeRef(t *tree.TypeRef) {
	for _, tc := range v.d.typeRefs {
		v.d.safely(tc.Rule(), func() { tc.CheckTypeRef(v.ctx, t) })
	}
}

func (d *Dispatcher) safely(rule Rule, hook func()) {
	defer func() {
		if r := recover(); r != nil {
			out := d.ErrOut
			if out == nil {
				out = os.Stderr
			}
			fmt.Fprintf(out, "tempestlint: rule %s failed on a node and was skipped: %v\n", rule.ID(), r)
		}
	}()
	hook()
}
