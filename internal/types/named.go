package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// NamedInfo stores metadata for a nominal type: its canonical defining path,
// the generic arguments of this instantiation, and (when known) the types of
// its fields for layout purposes.
type NamedInfo struct {
	Path []string // e.g. ["tempest", "event", "EventBuffer"]
	Args []TypeID // generic arguments, nil for non-generic types
	// Fields lists field types when the definition is visible to the
	// frontend. FieldsKnown stays false for opaque or still-generic
	// definitions, which makes the layout engine refuse to normalize them.
	Fields      []TypeID
	FieldsKnown bool
}

// AliasInfo stores metadata for a nominal alias type.
type AliasInfo struct {
	Name   string
	Target TypeID
}

// RegisterNamed allocates a nominal type with the given canonical path and
// generic arguments. Every call produces a distinct TypeID: nominal identity
// is defined by the registration, not by the descriptor shape.
func (in *Interner) RegisterNamed(path []string, args []TypeID) TypeID {
	info := NamedInfo{
		Path: slices.Clone(path),
		Args: slices.Clone(args),
	}
	in.named = append(in.named, info)
	slot, err := safecast.Conv[uint32](len(in.named) - 1)
	if err != nil {
		panic(fmt.Errorf("named info overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindNamed, Payload: slot})
}

// SetNamedFields stores the resolved field types for a named type and marks
// its layout as computable.
func (in *Interner) SetNamedFields(id TypeID, fields []TypeID) {
	info := in.namedInfo(id)
	if info == nil {
		return
	}
	info.Fields = slices.Clone(fields)
	info.FieldsKnown = true
}

// SetNamedArgs replaces the generic arguments of a named type. Used by
// decoders that register shells before argument types exist.
func (in *Interner) SetNamedArgs(id TypeID, args []TypeID) {
	info := in.namedInfo(id)
	if info == nil {
		return
	}
	info.Args = slices.Clone(args)
}

// NamedInfo returns metadata for the provided named TypeID.
func (in *Interner) NamedInfo(id TypeID) (*NamedInfo, bool) {
	info := in.namedInfo(id)
	if info == nil {
		return nil, false
	}
	return info, true
}

// RegisterAlias allocates a nominal alias type.
func (in *Interner) RegisterAlias(name string, target TypeID) TypeID {
	in.aliases = append(in.aliases, AliasInfo{Name: name, Target: target})
	slot, err := safecast.Conv[uint32](len(in.aliases) - 1)
	if err != nil {
		panic(fmt.Errorf("alias info overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindAlias, Payload: slot})
}

// SetAliasTarget sets the aliased target type.
func (in *Interner) SetAliasTarget(id, target TypeID) {
	info := in.aliasInfo(id)
	if info == nil {
		return
	}
	info.Target = target
}

// AliasTarget retrieves the aliased target type.
func (in *Interner) AliasTarget(id TypeID) (TypeID, bool) {
	info := in.aliasInfo(id)
	if info == nil || info.Target == NoTypeID {
		return NoTypeID, false
	}
	return info.Target, true
}

// AliasInfo returns metadata for the provided alias TypeID.
func (in *Interner) AliasInfo(id TypeID) (*AliasInfo, bool) {
	info := in.aliasInfo(id)
	if info == nil {
		return nil, false
	}
	return info, true
}

func (in *Interner) namedInfo(id TypeID) *NamedInfo {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindNamed {
		return nil
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.named) {
		return nil
	}
	return &in.named[tt.Payload]
}

func (in *Interner) aliasInfo(id TypeID) *AliasInfo {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindAlias {
		return nil
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.aliases) {
		return nil
	}
	return &in.aliases[tt.Payload]
}
