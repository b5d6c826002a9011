package ast

import (
	"fmt"

	"fortio.org/safecast"

	"datacheck/internal/source"
	"datacheck/internal/types"
)

// Module owns the arenas for one analyzed input: classes, members, call
// sites and expressions, addressed by compact IDs. Index 0 of every arena is
// a reserved sentinel so the zero ID stays invalid. A Module is built once
// by a front end and read-only during analysis.
type Module struct {
	Strings *source.Interner
	Types   *types.Interner

	classes []Class
	members []Member
	calls   []CallSite
	exprs   []Expr

	byName map[source.StringID]ClassID
}

// NewModule creates an empty module sharing the given interners.
func NewModule(strs *source.Interner, ts *types.Interner) *Module {
	return &Module{
		Strings: strs,
		Types:   ts,
		classes: make([]Class, 1),
		members: make([]Member, 1),
		calls:   make([]CallSite, 1),
		exprs:   make([]Expr, 1),
		byName:  make(map[source.StringID]ClassID),
	}
}

func arenaIndex[T any](arena []T, what string) uint32 {
	idx, err := safecast.Conv[uint32](len(arena))
	if err != nil {
		panic(fmt.Errorf("%s arena overflow: %w", what, err))
	}
	return idx
}

// AddClass declares a class, registers its nominal type and returns its ID.
// A redeclared name keeps the first class in the lookup index.
func (m *Module) AddClass(name source.StringID, span source.Span) ClassID {
	id := ClassID(arenaIndex(m.classes, "class"))
	m.classes = append(m.classes, Class{
		Name: name,
		Span: span,
		Type: m.Types.RegisterClass(name, span),
	})
	if _, exists := m.byName[name]; !exists {
		m.byName[name] = id
	}
	return id
}

// AddField appends an annotated field member to the class. defaultExpr may
// be NoExprID.
func (m *Module) AddField(class ClassID, name source.StringID, span source.Span, annotation types.TypeID, defaultExpr ExprID) MemberID {
	return m.addMember(class, Member{
		Kind:       MemberField,
		Name:       name,
		Span:       span,
		Annotation: annotation,
		Init:       defaultExpr,
	})
}

// AddAssign appends a plain (unannotated) assignment member to the class.
func (m *Module) AddAssign(class ClassID, name source.StringID, span source.Span, value ExprID) MemberID {
	return m.addMember(class, Member{
		Kind: MemberAssign,
		Name: name,
		Span: span,
		Init: value,
	})
}

func (m *Module) addMember(class ClassID, member Member) MemberID {
	id := MemberID(arenaIndex(m.members, "member"))
	m.members = append(m.members, member)
	c := m.ClassMut(class)
	c.Members = append(c.Members, id)
	return id
}

// AddExpr stores a typed expression node.
func (m *Module) AddExpr(span source.Span, ty types.TypeID) ExprID {
	id := ExprID(arenaIndex(m.exprs, "expr"))
	m.exprs = append(m.exprs, Expr{Span: span, Type: ty})
	return id
}

// AddCall records a construction call site.
func (m *Module) AddCall(callee source.StringID, span source.Span, positional []ExprID, keywords []KeywordArg) CallID {
	id := CallID(arenaIndex(m.calls, "call"))
	m.calls = append(m.calls, CallSite{
		Callee:     callee,
		Span:       span,
		Positional: positional,
		Keywords:   keywords,
	})
	return id
}

// Class returns the class for the ID, or nil for the sentinel.
func (m *Module) Class(id ClassID) *Class {
	if !id.IsValid() || int(id) >= len(m.classes) {
		return nil
	}
	return &m.classes[id]
}

// ClassMut is Class for builders; panics on an invalid ID.
func (m *Module) ClassMut(id ClassID) *Class {
	c := m.Class(id)
	if c == nil {
		panic(fmt.Errorf("invalid class ID %d", id))
	}
	return c
}

// Member returns the member for the ID, or nil for the sentinel.
func (m *Module) Member(id MemberID) *Member {
	if !id.IsValid() || int(id) >= len(m.members) {
		return nil
	}
	return &m.members[id]
}

// Call returns the call site for the ID, or nil for the sentinel.
func (m *Module) Call(id CallID) *CallSite {
	if !id.IsValid() || int(id) >= len(m.calls) {
		return nil
	}
	return &m.calls[id]
}

// Expr returns the expression for the ID, or nil for the sentinel.
func (m *Module) Expr(id ExprID) *Expr {
	if !id.IsValid() || int(id) >= len(m.exprs) {
		return nil
	}
	return &m.exprs[id]
}

// LookupClass resolves a class name to its first declaration.
func (m *Module) LookupClass(name source.StringID) (ClassID, bool) {
	id, ok := m.byName[name]
	return id, ok
}

// Classes iterates declared class IDs in declaration order.
func (m *Module) Classes() []ClassID {
	out := make([]ClassID, 0, len(m.classes)-1)
	for i := 1; i < len(m.classes); i++ {
		out = append(out, ClassID(i))
	}
	return out
}

// Calls iterates call-site IDs in declaration order.
func (m *Module) Calls() []CallID {
	out := make([]CallID, 0, len(m.calls)-1)
	for i := 1; i < len(m.calls); i++ {
		out = append(out, CallID(i))
	}
	return out
}
