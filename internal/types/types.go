// Package types implements TypesMgr: an interning pool of type descriptors
// and the predicates/coercion rules that the type checker and code
// generator consult.
//
// Interning is the core design choice: constructing the same structural
// type twice returns the same TypeId, so structural equality collapses to
// id equality. Grounded on the lookup-table technique in
// _examples/hhramberg-go-vslc/src/ir/validate.go (lutExp/lutAssign) and on
// the exact predicate surface exercised by
// _examples/original_source/.../TypeCheckVisitor.cpp (Types.isFloatTy,
// Types.copyableTypes, Types.comparableTypes, ...).
package types

import "fmt"

// Kind differentiates the shape of a type descriptor.
type Kind int

const (
	KindError Kind = iota
	KindVoid
	KindInteger
	KindFloat
	KindBoolean
	KindCharacter
	KindArray
	KindFunction
)

// TypeId is an opaque handle into a Mgr's intern pool.
type TypeId int

// descriptor is the structural shape a TypeId resolves to.
type descriptor struct {
	kind   Kind
	elem   TypeId   // Array: element type (always primitive)
	size   int      // Array: element count
	params []TypeId // Function: ordered parameter types
	ret    TypeId   // Function: return type
}

// Mgr interns type descriptors and answers type predicates. The zero value
// is not ready for use; call NewMgr. A Mgr carries no global state and is
// passed by reference to the visitors, per spec.
type Mgr struct {
	pool []descriptor
	// cache de-duplicates structurally identical descriptors so
	// constructing the same type twice returns the same TypeId.
	cache map[string]TypeId

	errorTy, voidTy, intTy, floatTy, boolTy, charTy TypeId
}

// NewMgr returns a Mgr pre-populated with the six singleton kinds.
func NewMgr() *Mgr {
	m := &Mgr{cache: make(map[string]TypeId)}
	m.errorTy = m.intern(descriptor{kind: KindError})
	m.voidTy = m.intern(descriptor{kind: KindVoid})
	m.intTy = m.intern(descriptor{kind: KindInteger})
	m.floatTy = m.intern(descriptor{kind: KindFloat})
	m.boolTy = m.intern(descriptor{kind: KindBoolean})
	m.charTy = m.intern(descriptor{kind: KindCharacter})
	return m
}

// intern returns the TypeId for d, creating a new pool entry only if an
// equal descriptor hasn't already been interned.
func (m *Mgr) intern(d descriptor) TypeId {
	key := d.key()
	if id, ok := m.cache[key]; ok {
		return id
	}
	id := TypeId(len(m.pool))
	m.pool = append(m.pool, d)
	m.cache[key] = id
	return id
}

func (d descriptor) key() string {
	switch d.kind {
	case KindArray:
		return fmt.Sprintf("array(%d,%d)", d.elem, d.size)
	case KindFunction:
		return fmt.Sprintf("func(%v,%d)", d.params, d.ret)
	default:
		return fmt.Sprintf("prim(%d)", d.kind)
	}
}

func (m *Mgr) get(id TypeId) descriptor {
	if int(id) < 0 || int(id) >= len(m.pool) {
		return descriptor{kind: KindError}
	}
	return m.pool[id]
}

// ---------------------------
// ----- Constructors ---------
// ---------------------------

// Error returns the sentinel Error TypeId.
func (m *Mgr) Error() TypeId { return m.errorTy }

// Void returns the Void TypeId, legal only as a function return type.
func (m *Mgr) Void() TypeId { return m.voidTy }

// Integer returns the Integer TypeId.
func (m *Mgr) Integer() TypeId { return m.intTy }

// Float returns the Float TypeId.
func (m *Mgr) Float() TypeId { return m.floatTy }

// Boolean returns the Boolean TypeId.
func (m *Mgr) Boolean() TypeId { return m.boolTy }

// Character returns the Character TypeId.
func (m *Mgr) Character() TypeId { return m.charTy }

// Array interns and returns Array(elem, size). elem must already be a
// primitive TypeId; violating this is a programmer error (array elements
// are never arrays, per spec invariant).
func (m *Mgr) Array(elem TypeId, size int) TypeId {
	if !m.IsPrimitive(elem) {
		panic("types: array element type must be primitive")
	}
	if size <= 0 {
		panic("types: array size must be positive")
	}
	return m.intern(descriptor{kind: KindArray, elem: elem, size: size})
}

// Function interns and returns Function(params, ret). Each param must be
// primitive or array; ret must be Void or primitive.
func (m *Mgr) Function(params []TypeId, ret TypeId) TypeId {
	for _, p := range params {
		if !m.IsPrimitive(p) && !m.IsArray(p) {
			panic("types: function parameter type must be primitive or array")
		}
	}
	if !m.IsVoid(ret) && !m.IsPrimitive(ret) {
		panic("types: function return type must be void or primitive")
	}
	cp := make([]TypeId, len(params))
	copy(cp, params)
	return m.intern(descriptor{kind: KindFunction, params: cp, ret: ret})
}

// ---------------------------
// ----- Predicates ------------
// ---------------------------

func (m *Mgr) IsError(t TypeId) bool  { return m.get(t).kind == KindError }
func (m *Mgr) IsVoid(t TypeId) bool   { return m.get(t).kind == KindVoid }
func (m *Mgr) IsBoolean(t TypeId) bool { return m.get(t).kind == KindBoolean }
func (m *Mgr) IsCharacter(t TypeId) bool { return m.get(t).kind == KindCharacter }
func (m *Mgr) IsInteger(t TypeId) bool { return m.get(t).kind == KindInteger }
func (m *Mgr) IsFloat(t TypeId) bool   { return m.get(t).kind == KindFloat }
func (m *Mgr) IsArray(t TypeId) bool   { return m.get(t).kind == KindArray }
func (m *Mgr) IsFunction(t TypeId) bool { return m.get(t).kind == KindFunction }

// IsNumeric reports whether t is Integer or Float.
func (m *Mgr) IsNumeric(t TypeId) bool {
	k := m.get(t).kind
	return k == KindInteger || k == KindFloat
}

// IsPrimitive reports whether t is one of the four scalar kinds.
func (m *Mgr) IsPrimitive(t TypeId) bool {
	switch m.get(t).kind {
	case KindInteger, KindFloat, KindBoolean, KindCharacter:
		return true
	default:
		return false
	}
}

// GetArrayElem returns the element type of an Array TypeId.
func (m *Mgr) GetArrayElem(t TypeId) TypeId { return m.get(t).elem }

// GetArraySize returns the declared element count of an Array TypeId.
func (m *Mgr) GetArraySize(t TypeId) int { return m.get(t).size }

// GetFuncParams returns the ordered parameter types of a Function TypeId.
func (m *Mgr) GetFuncParams(t TypeId) []TypeId { return m.get(t).params }

// GetFuncReturn returns the return type of a Function TypeId.
func (m *Mgr) GetFuncReturn(t TypeId) TypeId { return m.get(t).ret }

// SizeOf returns 1 for a primitive type and the declared array size for an
// Array type; this is the unit CodeGenVisitor uses to size local variables.
func (m *Mgr) SizeOf(t TypeId) int {
	d := m.get(t)
	if d.kind == KindArray {
		return d.size
	}
	return 1
}

// Equal reports structural equality; since types are interned this is id
// equality.
func (m *Mgr) Equal(a, b TypeId) bool { return a == b }

// Copyable holds when an expression of type src may initialise or be
// assigned into a destination of type dst: equal types, Integer widening to
// Float, or two arrays of equal element type and size.
func (m *Mgr) Copyable(dst, src TypeId) bool {
	if m.Equal(dst, src) {
		return true
	}
	if m.IsFloat(dst) && m.IsInteger(src) {
		return true
	}
	if m.IsArray(dst) && m.IsArray(src) {
		da, sa := m.get(dst), m.get(src)
		return da.elem == sa.elem && da.size == sa.size
	}
	return false
}

// RelOp identifies a relational operator for Comparable.
type RelOp int

const (
	OpEq RelOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

// Comparable holds for the given relational operator between a and b.
// == and != accept two numerics, or two equal non-numeric primitives.
// <,<=,>,>= require both operands numeric (Integer<->Float included).
func (m *Mgr) Comparable(a, b TypeId, op RelOp) bool {
	switch op {
	case OpEq, OpNe:
		if m.IsNumeric(a) && m.IsNumeric(b) {
			return true
		}
		return m.IsPrimitive(a) && m.Equal(a, b)
	default:
		return m.IsNumeric(a) && m.IsNumeric(b)
	}
}
