package dataclass

import (
	"sync"

	"datacheck/internal/ast"
	"datacheck/internal/diag"
)

// Cache memoizes field tables and signatures per class. Derivation is a
// pure function of the declaration, so concurrent callers analyzing
// independent classes may share one cache.
//
// Declaration diagnostics (ordering, duplicates) are emitted only on the
// first build of a class; repeated lookups return the cached table without
// re-reporting.
type Cache struct {
	mu     sync.Mutex
	tables map[ast.ClassID]*FieldTable
	sigs   map[ast.ClassID]*Signature
}

func NewCache() *Cache {
	return &Cache{
		tables: make(map[ast.ClassID]*FieldTable),
		sigs:   make(map[ast.ClassID]*Signature),
	}
}

// FieldTable returns the memoized table for the class, building it on first
// use with diagnostics sent to r.
func (c *Cache) FieldTable(m *ast.Module, class ast.ClassID, r diag.Reporter) *FieldTable {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tables[class]; ok {
		return t
	}
	t := BuildFieldTable(m, class, r)
	c.tables[class] = t
	return t
}

// Seed installs an externally recovered signature for the class, bypassing
// derivation (and with it, declaration diagnostics). Seeding a class whose
// signature already exists is a no-op.
func (c *Cache) Seed(class ast.ClassID, sig *Signature) {
	if sig == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.sigs[class]; ok {
		return
	}
	c.sigs[class] = sig
}

// Signature returns the memoized signature, deriving the field table first
// when needed.
func (c *Cache) Signature(m *ast.Module, class ast.ClassID, r diag.Reporter) *Signature {
	c.mu.Lock()
	if s, ok := c.sigs[class]; ok {
		c.mu.Unlock()
		return s
	}
	c.mu.Unlock()

	// Build through the table path so first-build diagnostics fire once.
	table := c.FieldTable(m, class, r)

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sigs[class]; ok {
		return s
	}
	s := Synthesize(m, table)
	c.sigs[class] = s
	return s
}
