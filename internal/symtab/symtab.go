// Package symtab implements SymTable: a stack of lexical scopes that binds
// identifiers to (kind, type) entries. Scope 0 is the global scope and
// holds function symbols only; every function opens a scope whose parent
// is global.
//
// Scopes are persistent objects keyed by ScopeId and stored in a flat
// slice rather than a tree of back-pointers, per the design note in
// spec.md §9 ("Parent/child references in scopes"). Grounded on the
// linked-list Stack of _examples/hhramberg-go-vslc/src/util/stack.go,
// reduced to a plain []ScopeId slice with no internal mutex, since this
// compiler's scope stack is single-threaded (spec.md §5).
package symtab

import "aslc/internal/types"

// Kind differentiates what an Entry binds to.
type Kind int

const (
	KindVariable Kind = iota
	KindParameter
	KindFunction
)

// Entry is a single binding within a scope.
type Entry struct {
	Name string
	Kind Kind
	Type types.TypeId
}

// ScopeId identifies a scope instance. The global scope is always 0.
type ScopeId int

// GlobalScope is the well-known id of the single global scope.
const GlobalScope ScopeId = 0

type scope struct {
	parent  ScopeId
	hasPar  bool
	entries map[string]Entry
	order   []string // insertion order, for deterministic dumps
}

// Table owns every scope created during compilation. Scopes live for the
// entire compilation; nothing is removed once created. A Table is shared
// by reference across all three passes.
type Table struct {
	scopes []scope
	stack  []ScopeId // the currently pushed lexical stack (LIFO)
	mainOK bool
}

// NewTable returns a Table with the global scope already created.
func NewTable() *Table {
	t := &Table{}
	t.scopes = append(t.scopes, scope{entries: make(map[string]Entry)})
	return t
}

// PushNewScope creates a brand new scope whose parent is the scope
// currently on top of the stack (or global if the stack is empty), pushes
// it, and returns its id.
func (t *Table) PushNewScope() ScopeId {
	parent := GlobalScope
	if len(t.stack) > 0 {
		parent = t.stack[len(t.stack)-1]
	}
	id := ScopeId(len(t.scopes))
	t.scopes = append(t.scopes, scope{parent: parent, hasPar: true, entries: make(map[string]Entry)})
	t.stack = append(t.stack, id)
	return id
}

// PushThisScope re-pushes a previously created scope id onto the stack.
// Passes 2 and 3 use this to restore the scope nesting recorded on
// program/function nodes during pass 1, instead of recomputing resolution.
func (t *Table) PushThisScope(id ScopeId) {
	t.stack = append(t.stack, id)
}

// PopScope pops the innermost scope off the stack. Callers must guarantee
// this runs on every exit path from a scope-owning node, including
// error-suppression paths (spec.md §5).
func (t *Table) PopScope() {
	if len(t.stack) == 0 {
		return
	}
	t.stack = t.stack[:len(t.stack)-1]
}

// CurrentScope returns the innermost scope on the stack, or GlobalScope if
// the stack is empty.
func (t *Table) CurrentScope() ScopeId {
	if len(t.stack) == 0 {
		return GlobalScope
	}
	return t.stack[len(t.stack)-1]
}

// AddSymbol binds name in the current scope. It returns false if name is
// already bound in that scope (redeclaration).
func (t *Table) AddSymbol(name string, kind Kind, ty types.TypeId) bool {
	return t.AddSymbolIn(t.CurrentScope(), name, kind, ty)
}

// AddSymbolIn binds name in the given scope explicitly; used by
// SymbolsVisitor to insert a function binding into the global scope while
// the current scope on the stack is the function's own body scope.
func (t *Table) AddSymbolIn(sid ScopeId, name string, kind Kind, ty types.TypeId) bool {
	sc := &t.scopes[sid]
	if _, dup := sc.entries[name]; dup {
		return false
	}
	sc.entries[name] = Entry{Name: name, Kind: kind, Type: ty}
	sc.order = append(sc.order, name)
	return true
}

// FindInCurrentScope looks up name only in the innermost scope.
func (t *Table) FindInCurrentScope(name string) (Entry, bool) {
	e, ok := t.scopes[t.CurrentScope()].entries[name]
	return e, ok
}

// FindInStack returns the innermost enclosing definition of name, walking
// from the top of the stack down to global. The second return is false on
// a miss (the spec's "-1" sentinel, expressed idiomatically).
func (t *Table) FindInStack(name string) (Entry, bool) {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if e, ok := t.scopes[t.stack[i]].entries[name]; ok {
			return e, true
		}
	}
	if e, ok := t.scopes[GlobalScope].entries[name]; ok {
		return e, true
	}
	return Entry{}, false
}

// IsFunctionClass reports whether name resolves to a Function binding.
func (t *Table) IsFunctionClass(name string) bool {
	e, ok := t.FindInStack(name)
	return ok && e.Kind == KindFunction
}

// IsParameterClass reports whether name resolves to a Parameter binding.
func (t *Table) IsParameterClass(name string) bool {
	e, ok := t.FindInStack(name)
	return ok && e.Kind == KindParameter
}

// MarkMainDeclared records that a function named "main" taking no
// parameters and returning nothing was seen during pass 1.
func (t *Table) MarkMainDeclared() { t.mainOK = true }

// NoMainProperlyDeclared reports whether the well-formedness rule "exactly
// one main() taking no parameters, returning nothing" failed to hold.
func (t *Table) NoMainProperlyDeclared() bool { return !t.mainOK }

// Names returns the names bound directly in scope sid, in declaration
// order, for symbol table dumps.
func (t *Table) Names(sid ScopeId) []string {
	return append([]string(nil), t.scopes[sid].order...)
}

// Get returns the entry bound to name directly in scope sid.
func (t *Table) Get(sid ScopeId, name string) (Entry, bool) {
	e, ok := t.scopes[sid].entries[name]
	return e, ok
}

// Parent returns the parent scope of sid and whether it has one (only
// GlobalScope has none).
func (t *Table) Parent(sid ScopeId) (ScopeId, bool) {
	sc := t.scopes[sid]
	return sc.parent, sc.hasPar
}
