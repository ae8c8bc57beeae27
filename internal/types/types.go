package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of semantic types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindString
	KindInt
	KindUint
	KindFloat
	// KindRef is a reference layer (&T or &mut T). References never affect
	// nominal identity and are the only layer the path matcher strips.
	KindRef
	// KindOwn is an owning-pointer layer. Deliberately opaque to matching.
	KindOwn
	// KindTuple is a positional aggregate; element types live in a side table.
	KindTuple
	// KindNamed is a nominal type identified by its canonical defining path.
	KindNamed
	// KindAlias is a nominal alias; it masks the target's shape on purpose.
	KindAlias
	// KindGenericParam is an unsubstituted type parameter.
	KindGenericParam
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindRef:
		return "ref"
	case KindOwn:
		return "own"
	case KindTuple:
		return "tuple"
	case KindNamed:
		return "named"
	case KindAlias:
		return "alias"
	case KindGenericParam:
		return "generic-param"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of integers/floats.
type Width uint8

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
)

// Type is a compact descriptor for any supported type. Aggregate metadata
// (named paths, tuple elements, alias targets) lives in interner side tables
// addressed via Payload.
type Type struct {
	Kind    Kind
	Elem    TypeID
	Width   Width  // for numeric primitives
	Mutable bool   // for references
	Payload uint32 // side-table slot for named/tuple/alias/generic-param
}

// MakeInt describes a signed integer of the given width (WidthAny for "int").
func MakeInt(width Width) Type {
	return Type{Kind: KindInt, Width: width}
}

// MakeUint describes an unsigned integer type.
func MakeUint(width Width) Type {
	return Type{Kind: KindUint, Width: width}
}

// MakeFloat describes a floating-point type.
func MakeFloat(width Width) Type {
	return Type{Kind: KindFloat, Width: width}
}

// MakeRef describes &T or &mut T depending on the mutable flag.
func MakeRef(elem TypeID, mutable bool) Type {
	return Type{Kind: KindRef, Elem: elem, Mutable: mutable}
}

// MakeOwn describes an owning pointer to elem.
func MakeOwn(elem TypeID) Type {
	return Type{Kind: KindOwn, Elem: elem}
}
