package dataclass

import (
	"datacheck/internal/ast"
	"datacheck/internal/source"
	"datacheck/internal/types"
)

// Param is one parameter of a synthesized constructor.
type Param struct {
	Name     source.StringID
	Type     types.TypeID
	Required bool
	Span     source.Span // span of the declaring field
}

// Signature is the implicit constructor derived from a field table. The
// parameter order equals the field order: positional index and keyword name
// address the same slot.
type Signature struct {
	Class  ast.ClassID
	Name   source.StringID // class name, for diagnostics
	Params []Param
}

// Synthesize maps a field table onto a signature: one parameter per field,
// same order, required iff the field has no default. Plain assignments were
// never in the table, so they cannot appear here.
func Synthesize(m *ast.Module, table *FieldTable) *Signature {
	sig := &Signature{
		Class:  table.Class,
		Params: make([]Param, 0, len(table.Fields)),
	}
	if c := m.Class(table.Class); c != nil {
		sig.Name = c.Name
	}
	for _, f := range table.Fields {
		sig.Params = append(sig.Params, Param{
			Name:     f.Name,
			Type:     f.Type,
			Required: !f.HasDefault,
			Span:     f.Span,
		})
	}
	return sig
}

// paramIndex finds a parameter by name, bound or not. Returns -1 when the
// name addresses no slot.
func (s *Signature) paramIndex(name source.StringID) int {
	for i := range s.Params {
		if s.Params[i].Name == name {
			return i
		}
	}
	return -1
}
