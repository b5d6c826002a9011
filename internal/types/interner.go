package types

import (
	"fmt"

	"fortio.org/safecast"

	"datacheck/internal/source"
)

// Builtins stores TypeIDs for the primitive types every fixture can name.
type Builtins struct {
	Invalid TypeID
	None    TypeID
	Bool    TypeID
	Int     TypeID
	Float   TypeID
	Str     TypeID
	Any     TypeID
}

// ClassInfo stores metadata for a nominal class type.
type ClassInfo struct {
	Name source.StringID
	Decl source.Span
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
	classes  []ClassInfo
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Type]TypeID, 16),
	}
	in.classes = append(in.classes, ClassInfo{}) // reserve 0 as invalid sentinel
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.None = in.Intern(Type{Kind: KindNone})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.Float = in.Intern(Type{Kind: KindFloat})
	in.builtins.Str = in.Intern(Type{Kind: KindStr})
	in.builtins.Any = in.Intern(Type{Kind: KindAny})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
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
	in.index[t] = id
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

// InternInitOnly wraps inner into an init-only annotation type.
func (in *Interner) InternInitOnly(inner TypeID) TypeID {
	return in.Intern(MakeInitOnly(inner))
}

// Unwrap strips one init-only wrapper. The second result reports whether a
// wrapper was present.
func (in *Interner) Unwrap(id TypeID) (TypeID, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindInitOnly {
		return id, false
	}
	return t.Elem, true
}

// RegisterClass allocates a nominal class type slot and returns its TypeID.
func (in *Interner) RegisterClass(name source.StringID, decl source.Span) TypeID {
	slot, err := safecast.Conv[uint32](len(in.classes))
	if err != nil {
		panic(fmt.Errorf("len(classes) overflow: %w", err))
	}
	in.classes = append(in.classes, ClassInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindClass, Payload: slot})
}

// ClassInfo returns metadata for the provided class TypeID.
func (in *Interner) ClassInfo(id TypeID) (*ClassInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindClass || t.Payload == 0 || int(t.Payload) >= len(in.classes) {
		return nil, false
	}
	return &in.classes[t.Payload], true
}

// Label renders a type for diagnostics, resolving class names through the
// provided string interner.
func (in *Interner) Label(id TypeID, strs *source.Interner) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "<unknown>"
	}
	switch t.Kind {
	case KindInitOnly:
		return fmt.Sprintf("InitVar[%s]", in.Label(t.Elem, strs))
	case KindClass:
		if info, ok := in.ClassInfo(id); ok && strs != nil {
			if name, ok := strs.Lookup(info.Name); ok && name != "" {
				return name
			}
		}
		return "class"
	default:
		return t.Kind.String()
	}
}
