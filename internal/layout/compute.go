package layout

import (
	"tempestlint/internal/types"
)

func (e *Engine) compute(id types.TypeID, active map[types.TypeID]bool) (TypeLayout, error) {
	if id == types.NoTypeID {
		return TypeLayout{}, notNormalizable(e.Types, id)
	}
	if active[id] {
		// Recursive type without indirection; refuse rather than loop.
		return TypeLayout{}, notNormalizable(e.Types, id)
	}
	active[id] = true
	defer delete(active, id)

	tt, ok := e.Types.Lookup(id)
	if !ok {
		return TypeLayout{}, notNormalizable(e.Types, id)
	}

	switch tt.Kind {
	case types.KindUnit:
		return TypeLayout{Size: 0, Align: 1}, nil

	case types.KindBool:
		return TypeLayout{Size: 1, Align: 1}, nil

	case types.KindInt, types.KindUint, types.KindFloat:
		if tt.Width == types.WidthAny {
			return e.ptrLayout(), nil
		}
		return scalarLayoutBytes(int(tt.Width) / 8), nil

	case types.KindString, types.KindRef, types.KindOwn:
		return e.ptrLayout(), nil

	case types.KindTuple:
		return e.tupleLayout(id, active)

	case types.KindNamed:
		return e.namedLayout(id, active)

	case types.KindAlias:
		target, ok := e.Types.AliasTarget(id)
		if !ok {
			return TypeLayout{}, notNormalizable(e.Types, id)
		}
		return e.compute(target, active)

	default:
		// KindInvalid, KindGenericParam and anything unknown: the layout
		// question has no answer yet.
		return TypeLayout{}, notNormalizable(e.Types, id)
	}
}

func (e *Engine) namedLayout(id types.TypeID, active map[types.TypeID]bool) (TypeLayout, error) {
	info, ok := e.Types.NamedInfo(id)
	if !ok || !info.FieldsKnown {
		return TypeLayout{}, notNormalizable(e.Types, id)
	}
	return e.fieldsLayout(info.Fields, active)
}

func (e *Engine) tupleLayout(id types.TypeID, active map[types.TypeID]bool) (TypeLayout, error) {
	info, ok := e.Types.TupleInfo(id)
	if !ok {
		return TypeLayout{}, notNormalizable(e.Types, id)
	}
	return e.fieldsLayout(info.Elems, active)
}

func (e *Engine) fieldsLayout(fields []types.TypeID, active map[types.TypeID]bool) (TypeLayout, error) {
	size := 0
	align := 1
	for _, f := range fields {
		fl, err := e.compute(f, active)
		if err != nil {
			return TypeLayout{}, err
		}
		fAlign := fl.Align
		if fAlign <= 0 {
			fAlign = 1
		}
		size = roundUp(size, fAlign)
		size += fl.Size
		align = maxInt(align, fAlign)
	}
	size = roundUp(size, align)
	return TypeLayout{Size: size, Align: align}, nil
}

func (e *Engine) ptrLayout() TypeLayout {
	ptrSize := e.Target.PtrSize
	ptrAlign := e.Target.PtrAlign
	if ptrSize <= 0 {
		ptrSize = 8
	}
	if ptrAlign <= 0 {
		ptrAlign = ptrSize
	}
	return TypeLayout{Size: ptrSize, Align: ptrAlign}
}

func scalarLayoutBytes(size int) TypeLayout {
	if size <= 0 {
		return TypeLayout{Size: 0, Align: 1}
	}
	return TypeLayout{Size: size, Align: size}
}

func roundUp(n, align int) int {
	if align <= 1 {
		return n
	}
	r := n % align
	if r == 0 {
		return n
	}
	return n + (align - r)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
