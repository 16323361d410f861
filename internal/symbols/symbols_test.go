package symbols

import (
	"testing"

	"aslc/internal/ast"
	"aslc/internal/decor"
	"aslc/internal/diag"
	"aslc/internal/parser"
	"aslc/internal/symtab"
	"aslc/internal/types"
)

func run(t *testing.T, src string) (*ast.Node, *types.Mgr, *symtab.Table, *decor.Table, *diag.Sink) {
	t.Helper()
	tree, synErrs := parser.Parse(src)
	if len(synErrs) > 0 {
		t.Fatalf("unexpected syntax errors: %v", synErrs)
	}
	tm := types.NewMgr()
	st := symtab.NewTable()
	dt := decor.NewTable()
	var errs diag.Sink
	New(tm, st, dt, &errs).Run(tree)
	return tree, tm, st, dt, &errs
}

func TestWellFormedMainIsAccepted(t *testing.T) {
	_, _, _, _, errs := run(t, "func main() endfunc")
	if errs.Total() != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs.All())
	}
}

func TestMissingMainIsRejected(t *testing.T) {
	_, _, _, _, errs := run(t, "func helper() endfunc")
	if errs.Total() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", errs.Total(), errs.All())
	}
}

func TestMainWithParametersDoesNotCount(t *testing.T) {
	_, _, _, _, errs := run(t, "func main(x: int) endfunc")
	if errs.Total() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", errs.Total(), errs.All())
	}
}

func TestDuplicateFunctionIsRejected(t *testing.T) {
	src := `func main() endfunc
func main() endfunc`
	_, _, _, _, errs := run(t, src)
	if errs.Total() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", errs.Total(), errs.All())
	}
}

func TestDuplicateParameterIsRejected(t *testing.T) {
	src := `func f(x: int, x: float) endfunc
func main() endfunc`
	_, _, _, _, errs := run(t, src)
	if errs.Total() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", errs.Total(), errs.All())
	}
}

func TestParametersThenLocalsInDeclarationOrder(t *testing.T) {
	src := `func f(a: int, b: int)
var c: int;
var d: int;
return;
endfunc
func main() endfunc`
	tree, _, st, dt, errs := run(t, src)
	if errs.Total() != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs.All())
	}
	fn := tree.Children[0]
	sid := dt.GetScope(fn)
	got := st.Names(sid)
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestArrayTypeIsResolved(t *testing.T) {
	src := `func main()
var a: array[4] of int;
endfunc`
	tree, tm, st, dt, errs := run(t, src)
	if errs.Total() != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs.All())
	}
	fn := tree.Children[0]
	sid := dt.GetScope(fn)
	e, ok := st.Get(sid, "a")
	if !ok {
		t.Fatalf("expected symbol a to be bound")
	}
	if !tm.IsArray(e.Type) {
		t.Fatalf("expected an array type, got %v", e.Type)
	}
	if got := tm.GetArraySize(e.Type); got != 4 {
		t.Errorf("expected size 4, got %d", got)
	}
	if elem := tm.GetArrayElem(e.Type); !tm.IsInteger(elem) {
		t.Errorf("expected an integer element type, got %v", elem)
	}
	if e.Kind != symtab.KindVariable {
		t.Errorf("expected KindVariable, got %v", e.Kind)
	}
}

func TestNonPositiveArraySizeIsRejected(t *testing.T) {
	src := `func main()
var a: array[0] of int;
endfunc`
	_, _, _, _, errs := run(t, src)
	if errs.Total() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", errs.Total(), errs.All())
	}
}
