package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Invalid TypeID
	Unit    TypeID
	Bool    TypeID
	String  TypeID
	Int     TypeID
	Uint    TypeID
	Float   TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Nominal types (named, alias, generic-param) are never deduplicated: every
// registration produces a distinct identity.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	named    []NamedInfo
	tuples   []TupleInfo
	aliases  []AliasInfo
	params   []string
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 64),
	}
	// Slot 0 of every side table is reserved as an invalid sentinel.
	in.named = append(in.named, NamedInfo{})
	in.tuples = append(in.tuples, TupleInfo{})
	in.aliases = append(in.aliases, AliasInfo{})
	in.params = append(in.params, "")
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Int = in.Intern(MakeInt(WidthAny))
	in.builtins.Uint = in.Intern(MakeUint(WidthAny))
	in.builtins.Float = in.Intern(MakeFloat(WidthAny))
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided structural descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Len returns the number of interned descriptors, including the invalid
// sentinel at slot 0.
func (in *Interner) Len() int {
	return len(in.types)
}

// RegisterGenericParam allocates a fresh unsubstituted type parameter.
func (in *Interner) RegisterGenericParam(name string) TypeID {
	in.params = append(in.params, name)
	slot, err := safecast.Conv[uint32](len(in.params) - 1)
	if err != nil {
		panic(fmt.Errorf("generic param overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindGenericParam, Payload: slot})
}

// GenericParamName returns the declared name of a generic parameter type.
func (in *Interner) GenericParamName(id TypeID) (string, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindGenericParam {
		return "", false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.params) {
		return "", false
	}
	return in.params[tt.Payload], true
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Width   Width
	Mutable bool
	Payload uint32
}
