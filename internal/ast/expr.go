package ast

import (
	"datacheck/internal/source"
	"datacheck/internal/types"
)

// Expr is a leaf expression node. The surrounding front end (fixture loader
// in this repo, a real parser in a host checker) has already resolved its
// inferred type; the engine only reads Span and Type.
type Expr struct {
	Span source.Span
	Type types.TypeID
}
