// Package decor implements TreeDecoration: a sparse side table that
// attaches {scope, type, is-lvalue} to parse-tree nodes by pointer
// identity, rather than mutating the node itself.
//
// Grounded on the arena-addressed-by-id design note in spec.md §9 and on
// _examples/hhramberg-go-vslc/src/ir/nodetype.go's Node.Entry field, which
// attaches symbol metadata directly to the node; this package keeps that
// idea but externalises it into its own map so internal/ast stays a pure
// tree shape with no semantic-pass fields.
package decor

import (
	"aslc/internal/ast"
	"aslc/internal/symtab"
	"aslc/internal/types"
)

type entry struct {
	scope    symtab.ScopeId
	hasScope bool
	typ      types.TypeId
	hasType  bool
	isLValue bool
	hasLV    bool
}

// Table is the decoration side table for one compilation. Created empty
// and populated incrementally by passes 1 and 2, consulted by pass 3. It
// is never cleared or mutated after a key is first written except to
// refine isLValue on the rare node that needs two writes (none currently
// do; writes are idempotent in this compiler).
type Table struct {
	m map[*ast.Node]*entry
}

// NewTable returns an empty decoration table.
func NewTable() *Table {
	return &Table{m: make(map[*ast.Node]*entry)}
}

func (t *Table) entryFor(n *ast.Node) *entry {
	e, ok := t.m[n]
	if !ok {
		e = &entry{}
		t.m[n] = e
	}
	return e
}

// PutScope attaches a ScopeId to program/function node n.
func (t *Table) PutScope(n *ast.Node, sid symtab.ScopeId) {
	e := t.entryFor(n)
	e.scope, e.hasScope = sid, true
}

// GetScope returns the ScopeId attached to n.
func (t *Table) GetScope(n *ast.Node) symtab.ScopeId {
	if e, ok := t.m[n]; ok && e.hasScope {
		return e.scope
	}
	return symtab.GlobalScope
}

// PutType attaches a TypeId to an expression/type/ident node n.
func (t *Table) PutType(n *ast.Node, ty types.TypeId) {
	e := t.entryFor(n)
	e.typ, e.hasType = ty, true
}

// GetType returns the TypeId attached to n.
func (t *Table) GetType(n *ast.Node) types.TypeId {
	if e, ok := t.m[n]; ok && e.hasType {
		return e.typ
	}
	return 0
}

// HasType reports whether n has had a type decoration attached.
func (t *Table) HasType(n *ast.Node) bool {
	e, ok := t.m[n]
	return ok && e.hasType
}

// PutIsLValue attaches the lvalue flag to an expression-level node n.
func (t *Table) PutIsLValue(n *ast.Node, b bool) {
	e := t.entryFor(n)
	e.isLValue, e.hasLV = b, true
}

// GetIsLValue returns the lvalue flag attached to n.
func (t *Table) GetIsLValue(n *ast.Node) bool {
	if e, ok := t.m[n]; ok && e.hasLV {
		return e.isLValue
	}
	return false
}
