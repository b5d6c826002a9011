package dataclass

import (
	"datacheck/internal/ast"
	"datacheck/internal/diag"
	"datacheck/internal/source"
	"datacheck/internal/types"
)

// Field is one entry of a field table: an annotated class member that
// occupies a constructor parameter slot. Type is the effective type, with
// any init-only wrapper already stripped.
type Field struct {
	Name       source.StringID
	Span       source.Span
	Type       types.TypeID
	HasDefault bool
	InitOnly   bool
	Member     ast.MemberID
}

// FieldTable is the ordered field sequence derived from one class. It is
// immutable after construction; declaration order is preserved exactly.
type FieldTable struct {
	Class  ast.ClassID
	Fields []Field

	values []ast.MemberID // plain assignments, in declaration order
}

// BuildFieldTable derives the field table for the class, emitting ordering
// and duplicate diagnostics through r as it goes. A violation never stops
// the walk: later members are still classified so one pass surfaces every
// problem in the class body.
func BuildFieldTable(m *ast.Module, class ast.ClassID, r diag.Reporter) *FieldTable {
	table := &FieldTable{Class: class}
	c := m.Class(class)
	if c == nil {
		return table
	}

	firstByName := make(map[source.StringID]int)
	defaultSeen := false
	var firstDefault source.Span

	for _, memberID := range c.Members {
		member := m.Member(memberID)
		if member == nil {
			continue
		}
		if member.Kind == ast.MemberAssign {
			// Class-level value: no annotation, no parameter slot, and no
			// participation in the default-ordering check.
			table.values = append(table.values, memberID)
			continue
		}

		effective, initOnly := m.Types.Unwrap(member.Annotation)
		field := Field{
			Name:       member.Name,
			Span:       member.Span,
			Type:       effective,
			HasDefault: member.HasDefault(),
			InitOnly:   initOnly,
			Member:     memberID,
		}

		if firstIdx, dup := firstByName[member.Name]; dup {
			name := m.Strings.MustLookup(member.Name)
			diag.ReportError(r, diag.DataDuplicateFieldName, member.Span,
				"field \""+name+"\" is already declared").
				WithNote(table.Fields[firstIdx].Span, "first declared here").
				Emit()
			// First declaration wins for type purposes; the duplicate does
			// not get a slot and does not disturb the ordering state.
			continue
		}

		if field.HasDefault {
			if !defaultSeen {
				defaultSeen = true
				firstDefault = member.Span
			}
		} else if defaultSeen {
			name := m.Strings.MustLookup(member.Name)
			diag.ReportError(r, diag.DataDefaultOrderingViolation, member.Span,
				"field \""+name+"\" without a default cannot follow fields with defaults").
				WithNote(firstDefault, "first field with a default is here").
				Emit()
			// Still a field: it keeps its slot so later checks stay useful.
		}

		firstByName[member.Name] = len(table.Fields)
		table.Fields = append(table.Fields, field)
	}

	return table
}

// StoredFields returns the fields retained as instance attributes, i.e.
// everything except init-only fields.
func (t *FieldTable) StoredFields() []Field {
	out := make([]Field, 0, len(t.Fields))
	for _, f := range t.Fields {
		if !f.InitOnly {
			out = append(out, f)
		}
	}
	return out
}

// ClassValues returns the plain-assignment members, in declaration order.
// They are class-level values: addressable as attributes, never parameters.
func (t *FieldTable) ClassValues() []ast.MemberID {
	return t.values
}
