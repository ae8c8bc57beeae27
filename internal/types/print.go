package types

import (
	"fmt"
	"strings"
)

// String renders the type the way it would be written in source: named types
// print their final path segment plus generic arguments, references keep
// their mutability marker, tuples print positionally. The rendering of a
// non-generic named type is therefore textually exact, which suggestion
// builders rely on when claiming machine applicability.
func (in *Interner) String(id TypeID) string {
	return in.render(id, make(map[TypeID]bool, 4))
}

func (in *Interner) render(id TypeID, active map[TypeID]bool) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	if active[id] {
		return "..."
	}
	active[id] = true
	defer delete(active, id)

	switch tt.Kind {
	case KindUnit:
		return "()"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return numericName("int", tt.Width)
	case KindUint:
		return numericName("uint", tt.Width)
	case KindFloat:
		return numericName("float", tt.Width)
	case KindRef:
		if tt.Mutable {
			return "&mut " + in.render(tt.Elem, active)
		}
		return "&" + in.render(tt.Elem, active)
	case KindOwn:
		return "own " + in.render(tt.Elem, active)
	case KindTuple:
		info, ok := in.TupleInfo(id)
		if !ok {
			return "(?)"
		}
		parts := make([]string, len(info.Elems))
		for i, elem := range info.Elems {
			parts[i] = in.render(elem, active)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindNamed:
		info := in.namedInfo(id)
		if info == nil || len(info.Path) == 0 {
			return "<named?>"
		}
		name := info.Path[len(info.Path)-1]
		if len(info.Args) == 0 {
			return name
		}
		parts := make([]string, len(info.Args))
		for i, arg := range info.Args {
			parts[i] = in.render(arg, active)
		}
		return name + "<" + strings.Join(parts, ", ") + ">"
	case KindAlias:
		info := in.aliasInfo(id)
		if info == nil {
			return "<alias?>"
		}
		return info.Name
	case KindGenericParam:
		if name, ok := in.GenericParamName(id); ok && name != "" {
			return name
		}
		return "T"
	default:
		return fmt.Sprintf("<%s>", tt.Kind)
	}
}

func numericName(base string, w Width) string {
	if w == WidthAny {
		return base
	}
	return fmt.Sprintf("%s%d", base, w)
}
