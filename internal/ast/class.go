package ast

import (
	"datacheck/internal/source"
	"datacheck/internal/types"
)

// MemberKind separates annotated fields from plain class-body assignments.
type MemberKind uint8

const (
	// MemberField carries an explicit type annotation and contributes a
	// constructor parameter.
	MemberField MemberKind = iota
	// MemberAssign is an unannotated class-body assignment. It establishes
	// a class-level value and never becomes a parameter.
	MemberAssign
)

// Member is one class-body declaration. For MemberField, Annotation holds
// the declared type (possibly an init-only wrapper) and Init the optional
// default expression. For MemberAssign, Annotation is NoTypeID and Init is
// the assigned value.
type Member struct {
	Kind       MemberKind
	Name       source.StringID
	Span       source.Span
	Annotation types.TypeID
	Init       ExprID
}

// HasDefault reports whether a field member carries an initializer.
func (m *Member) HasDefault() bool {
	return m.Kind == MemberField && m.Init.IsValid()
}

// Class is a named declaration with members in source order. Order is
// semantically significant: it fixes the synthesized parameter order and
// drives the default-ordering check.
type Class struct {
	Name    source.StringID
	Span    source.Span
	Type    types.TypeID // nominal class type registered on declaration
	Members []MemberID
}

// KeywordArg is one name=value argument at a call site.
type KeywordArg struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
}

// CallSite is a construction expression: ordered positional arguments plus
// keyword arguments, validated against the callee's synthesized signature.
type CallSite struct {
	Callee     source.StringID
	Span       source.Span
	Positional []ExprID
	Keywords   []KeywordArg
}
