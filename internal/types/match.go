package types

import (
	"iter"
	"slices"
)

// StripRefs removes any number of reference layers from the type, mutable or
// not. Owning pointers, aliases and generic containers are left alone:
// references are the only layer that never changes what a value nominally is.
func (in *Interner) StripRefs(id TypeID) TypeID {
	for {
		tt, ok := in.Lookup(id)
		if !ok || tt.Kind != KindRef {
			return id
		}
		id = tt.Elem
	}
}

// MatchPath reports whether the type's nominal definition resolves to exactly
// the given canonical path. References are stripped first; generic arguments
// are ignored, so EventBuffer<A> and EventBuffer<B> match the same path.
// Aliases do not match their target's path: an alias is a distinct name.
func (in *Interner) MatchPath(id TypeID, path []string) bool {
	if len(path) == 0 {
		return false
	}
	info := in.namedInfo(in.StripRefs(id))
	if info == nil {
		return false
	}
	return slices.Equal(info.Path, path)
}

// SuffixMatch reports whether the final segments of the type's canonical path
// equal suffix. Useful when the importing location is not statically known;
// production rules use MatchPath against registered canonical paths.
func (in *Interner) SuffixMatch(id TypeID, suffix []string) bool {
	if len(suffix) == 0 {
		return false
	}
	info := in.namedInfo(in.StripRefs(id))
	if info == nil || len(info.Path) < len(suffix) {
		return false
	}
	tail := info.Path[len(info.Path)-len(suffix):]
	return slices.Equal(tail, suffix)
}

// GenericArgAt returns the nth (0-based) generic argument of a nominal type.
// It reports false when the type is not nominal, carries fewer arguments, or
// is an alias masking the expected shape — never a default TypeID that could
// be mistaken for success.
func (in *Interner) GenericArgAt(id TypeID, n int) (TypeID, bool) {
	info := in.namedInfo(id)
	if info == nil || n < 0 || n >= len(info.Args) {
		return NoTypeID, false
	}
	arg := info.Args[n]
	if arg == NoTypeID {
		return NoTypeID, false
	}
	return arg, true
}

// Detuple yields the element types of a tuple in declaration order, or the
// type itself when it is not a tuple. The sequence is a pure function of the
// interner: iterating it again produces identical results.
func (in *Interner) Detuple(id TypeID) iter.Seq[TypeID] {
	return func(yield func(TypeID) bool) {
		if info, ok := in.TupleInfo(id); ok {
			for _, elem := range info.Elems {
				if !yield(elem) {
					return
				}
			}
			return
		}
		yield(id)
	}
}
