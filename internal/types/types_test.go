package types

import "testing"

func TestPrimitivesAreDistinctAndInterned(t *testing.T) {
	m := NewMgr()
	if m.Integer() == m.Float() {
		t.Fatalf("Integer and Float must not collapse to the same TypeId")
	}
	if !m.IsInteger(m.Integer()) || !m.IsFloat(m.Float()) {
		t.Fatalf("predicate mismatch for the singleton primitives")
	}
}

func TestArrayInterning(t *testing.T) {
	m := NewMgr()
	a1 := m.Array(m.Integer(), 4)
	a2 := m.Array(m.Integer(), 4)
	if a1 != a2 {
		t.Fatalf("two structurally identical array types must intern to the same TypeId")
	}
	a3 := m.Array(m.Integer(), 5)
	if a1 == a3 {
		t.Fatalf("arrays of different sizes must not collapse")
	}
	if m.GetArrayElem(a1) != m.Integer() || m.GetArraySize(a1) != 4 {
		t.Errorf("got elem %v size %v, want Integer/4", m.GetArrayElem(a1), m.GetArraySize(a1))
	}
}

func TestFunctionInterning(t *testing.T) {
	m := NewMgr()
	f1 := m.Function([]TypeId{m.Integer(), m.Float()}, m.Boolean())
	f2 := m.Function([]TypeId{m.Integer(), m.Float()}, m.Boolean())
	if f1 != f2 {
		t.Fatalf("two structurally identical function types must intern to the same TypeId")
	}
	if len(m.GetFuncParams(f1)) != 2 || m.GetFuncReturn(f1) != m.Boolean() {
		t.Errorf("unexpected function shape: %v -> %v", m.GetFuncParams(f1), m.GetFuncReturn(f1))
	}
}

func TestArrayElementMustBePrimitive(t *testing.T) {
	m := NewMgr()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic constructing an array of arrays")
		}
	}()
	inner := m.Array(m.Integer(), 2)
	m.Array(inner, 2)
}

func TestSizeOf(t *testing.T) {
	m := NewMgr()
	if m.SizeOf(m.Integer()) != 1 {
		t.Errorf("expected a scalar size of 1")
	}
	a := m.Array(m.Float(), 10)
	if m.SizeOf(a) != 10 {
		t.Errorf("expected an array size of 10, got %d", m.SizeOf(a))
	}
}

func TestCopyableEqualTypes(t *testing.T) {
	m := NewMgr()
	if !m.Copyable(m.Integer(), m.Integer()) {
		t.Errorf("a type must be copyable to itself")
	}
}

func TestCopyableIntegerWidensToFloat(t *testing.T) {
	m := NewMgr()
	if !m.Copyable(m.Float(), m.Integer()) {
		t.Errorf("Integer must be copyable into a Float destination")
	}
	if m.Copyable(m.Integer(), m.Float()) {
		t.Errorf("Float must not be copyable into an Integer destination")
	}
}

func TestCopyableArraysRequireMatchingShape(t *testing.T) {
	m := NewMgr()
	a := m.Array(m.Integer(), 4)
	same := m.Array(m.Integer(), 4)
	diffSize := m.Array(m.Integer(), 5)
	diffElem := m.Array(m.Float(), 4)
	if !m.Copyable(a, same) {
		t.Errorf("arrays with matching element type and size must be copyable")
	}
	if m.Copyable(a, diffSize) {
		t.Errorf("arrays of different sizes must not be copyable")
	}
	if m.Copyable(a, diffElem) {
		t.Errorf("arrays of different element types must not be copyable")
	}
}

func TestCopyableBooleanAndCharacterDoNotMix(t *testing.T) {
	m := NewMgr()
	if m.Copyable(m.Boolean(), m.Character()) || m.Copyable(m.Character(), m.Boolean()) {
		t.Errorf("Boolean and Character must not be copyable to one another")
	}
}

func TestComparableEqualityAcceptsMixedNumerics(t *testing.T) {
	m := NewMgr()
	if !m.Comparable(m.Integer(), m.Float(), OpEq) {
		t.Errorf("Integer and Float must be comparable with ==")
	}
}

func TestComparableEqualityRejectsMismatchedPrimitives(t *testing.T) {
	m := NewMgr()
	if m.Comparable(m.Boolean(), m.Character(), OpEq) {
		t.Errorf("Boolean and Character must not be comparable")
	}
}

func TestComparableOrderingRequiresNumeric(t *testing.T) {
	m := NewMgr()
	if !m.Comparable(m.Integer(), m.Float(), OpLt) {
		t.Errorf("Integer and Float must be orderable")
	}
	if m.Comparable(m.Boolean(), m.Boolean(), OpLt) {
		t.Errorf("Boolean must not be orderable")
	}
}
