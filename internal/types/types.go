package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNone
	KindBool
	KindInt
	KindFloat
	KindStr
	// KindAny is the permissive top type: everything converts both ways.
	KindAny
	// KindInitOnly wraps Elem and marks a constructor-only field annotation.
	// The wrapper exists only on declarations; the field-table builder
	// unwraps it once, so signatures and binding never see it.
	KindInitOnly
	// KindClass is a nominal class type; Payload indexes class metadata.
	KindClass
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNone:
		return "None"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindAny:
		return "Any"
	case KindInitOnly:
		return "InitVar"
	case KindClass:
		return "class"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind    Kind
	Elem    TypeID // wrapped type for KindInitOnly
	Payload uint32 // class metadata slot for KindClass
}

// MakeInitOnly describes an init-only wrapper around inner.
func MakeInitOnly(inner TypeID) Type {
	return Type{Kind: KindInitOnly, Elem: inner}
}
