package tree

// Visitor receives nodes during a pre-order walk of a unit. Implementations
// must not mutate the tree.
type Visitor interface {
	VisitFunc(*Func)
	VisitExpr(*Expr)
	VisitTypeRef(*TypeRef)
}

// Walk performs exactly one pre-order traversal of the unit, visiting each
// function, then its parameter and result type references, then its body.
// Sibling order follows source order throughout.
func Walk(u *Unit, v Visitor) {
	if u == nil || v == nil {
		return
	}
	for _, fn := range u.Funcs {
		walkFunc(fn, v)
	}
}

func walkFunc(fn *Func, v Visitor) {
	if fn == nil {
		return
	}
	v.VisitFunc(fn)
	for i := range fn.Params {
		walkTypeRef(fn.Params[i].Type, v)
	}
	walkTypeRef(fn.Result, v)
	walkBlock(fn.Body, v)
}

func walkBlock(b *Block, v Visitor) {
	if b == nil {
		return
	}
	for _, st := range b.Stmts {
		walkStmt(st, v)
	}
}

func walkStmt(st *Stmt, v Visitor) {
	if st == nil {
		return
	}
	switch d := st.Data.(type) {
	case *ExprStmtData:
		walkExpr(d.Expr, v)
	case *LetData:
		walkTypeRef(d.Type, v)
		walkExpr(d.Value, v)
	case *ReturnData:
		walkExpr(d.Value, v)
	case *BlockStmtData:
		walkBlock(d.Block, v)
	}
}

func walkExpr(e *Expr, v Visitor) {
	if e == nil {
		return
	}
	v.VisitExpr(e)
	switch d := e.Data.(type) {
	case *UnaryData:
		walkExpr(d.Operand, v)
	case *CallData:
		walkExpr(d.Callee, v)
		for _, arg := range d.Args {
			walkExpr(arg, v)
		}
	case *MethodCallData:
		walkExpr(d.Recv, v)
		for _, ta := range d.TypeArgs {
			walkTypeRef(ta, v)
		}
		for _, arg := range d.Args {
			walkExpr(arg, v)
		}
	case *FieldData:
		walkExpr(d.Recv, v)
	case *TupleData:
		for _, elem := range d.Elems {
			walkExpr(elem, v)
		}
	}
}

func walkTypeRef(t *TypeRef, v Visitor) {
	if t == nil {
		return
	}
	v.VisitTypeRef(t)
	for _, arg := range t.Args {
		walkTypeRef(arg, v)
	}
}

// Inspect walks the expression subtree rooted at e in pre-order, calling f
// for every expression. When f returns false the walk stops early.
func Inspect(e *Expr, f func(*Expr) bool) {
	inspect(e, f, new(bool))
}

func inspect(e *Expr, f func(*Expr) bool, stopped *bool) {
	if e == nil || *stopped {
		return
	}
	if !f(e) {
		*stopped = true
		return
	}
	switch d := e.Data.(type) {
	case *UnaryData:
		inspect(d.Operand, f, stopped)
	case *CallData:
		inspect(d.Callee, f, stopped)
		for _, arg := range d.Args {
			inspect(arg, f, stopped)
		}
	case *MethodCallData:
		inspect(d.Recv, f, stopped)
		for _, arg := range d.Args {
			inspect(arg, f, stopped)
		}
	case *FieldData:
		inspect(d.Recv, f, stopped)
	case *TupleData:
		for _, elem := range d.Elems {
			inspect(elem, f, stopped)
		}
	}
}

// InspectBlock applies Inspect to every expression in the block, in source
// order.
func InspectBlock(b *Block, f func(*Expr) bool) {
	if b == nil {
		return
	}
	for _, st := range b.Stmts {
		inspectStmt(st, f)
	}
}

func inspectStmt(st *Stmt, f func(*Expr) bool) {
	if st == nil {
		return
	}
	switch d := st.Data.(type) {
	case *ExprStmtData:
		Inspect(d.Expr, f)
	case *LetData:
		Inspect(d.Value, f)
	case *ReturnData:
		Inspect(d.Value, f)
	case *BlockStmtData:
		InspectBlock(d.Block, f)
	}
}
