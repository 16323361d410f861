package symtab

import (
	"testing"

	"aslc/internal/types"
)

func TestAddSymbolRejectsRedeclaration(t *testing.T) {
	st := NewTable()
	st.PushNewScope()
	if !st.AddSymbol("x", KindVariable, types.TypeId(0)) {
		t.Fatalf("first binding of x must succeed")
	}
	if st.AddSymbol("x", KindVariable, types.TypeId(0)) {
		t.Fatalf("redeclaring x in the same scope must fail")
	}
}

func TestFindInStackWalksEnclosingScopesThenGlobal(t *testing.T) {
	st := NewTable()
	st.AddSymbolIn(GlobalScope, "f", KindFunction, types.TypeId(0))
	inner := st.PushNewScope()
	st.AddSymbolIn(inner, "x", KindVariable, types.TypeId(1))

	if _, ok := st.FindInCurrentScope("f"); ok {
		t.Errorf("f is bound in global, not in the current scope; FindInCurrentScope must miss")
	}
	if e, ok := st.FindInStack("f"); !ok || e.Kind != KindFunction {
		t.Errorf("FindInStack must fall back to the global scope for f")
	}
	if e, ok := st.FindInStack("x"); !ok || e.Kind != KindVariable {
		t.Errorf("FindInStack must find x in the current scope")
	}
	if _, ok := st.FindInStack("nope"); ok {
		t.Errorf("FindInStack must miss an unbound name")
	}
}

func TestPushPopScopeIsLIFO(t *testing.T) {
	st := NewTable()
	outer := st.PushNewScope()
	st.AddSymbolIn(outer, "a", KindVariable, types.TypeId(0))
	inner := st.PushNewScope()
	if st.CurrentScope() != inner {
		t.Fatalf("expected CurrentScope to be the innermost pushed scope")
	}
	st.PopScope()
	if st.CurrentScope() != outer {
		t.Fatalf("expected popping to restore the outer scope")
	}
	st.PopScope()
	if st.CurrentScope() != GlobalScope {
		t.Fatalf("expected popping the last scope to fall back to global")
	}
}

func TestPushThisScopeRestoresARecordedScope(t *testing.T) {
	st := NewTable()
	sid := st.PushNewScope()
	st.AddSymbolIn(sid, "p", KindParameter, types.TypeId(0))
	st.PopScope()

	st.PushThisScope(sid)
	defer st.PopScope()
	if e, ok := st.FindInCurrentScope("p"); !ok || e.Kind != KindParameter {
		t.Errorf("expected PushThisScope to restore the same bindings")
	}
}

func TestIsFunctionClassAndIsParameterClass(t *testing.T) {
	st := NewTable()
	st.AddSymbolIn(GlobalScope, "f", KindFunction, types.TypeId(0))
	sid := st.PushNewScope()
	st.AddSymbolIn(sid, "p", KindParameter, types.TypeId(0))
	st.AddSymbolIn(sid, "v", KindVariable, types.TypeId(0))

	if !st.IsFunctionClass("f") {
		t.Errorf("f should resolve as a function")
	}
	if st.IsFunctionClass("v") {
		t.Errorf("v should not resolve as a function")
	}
	if !st.IsParameterClass("p") {
		t.Errorf("p should resolve as a parameter")
	}
	if st.IsParameterClass("v") {
		t.Errorf("v should not resolve as a parameter")
	}
}

func TestMainDeclaredFlag(t *testing.T) {
	st := NewTable()
	if !st.NoMainProperlyDeclared() {
		t.Fatalf("a fresh table must report no main declared")
	}
	st.MarkMainDeclared()
	if st.NoMainProperlyDeclared() {
		t.Fatalf("expected main to be recorded as declared")
	}
}

func TestNamesPreservesDeclarationOrder(t *testing.T) {
	st := NewTable()
	sid := st.PushNewScope()
	st.AddSymbolIn(sid, "b", KindVariable, types.TypeId(0))
	st.AddSymbolIn(sid, "a", KindVariable, types.TypeId(0))
	st.AddSymbolIn(sid, "c", KindVariable, types.TypeId(0))

	got := st.Names(sid)
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestParentReportsHierarchyAndGlobalHasNone(t *testing.T) {
	st := NewTable()
	outer := st.PushNewScope()
	inner := st.PushNewScope()

	if parent, ok := st.Parent(inner); !ok || parent != outer {
		t.Errorf("expected inner's parent to be outer, got %v (ok=%v)", parent, ok)
	}
	if _, ok := st.Parent(GlobalScope); ok {
		t.Errorf("the global scope must report no parent")
	}
}
