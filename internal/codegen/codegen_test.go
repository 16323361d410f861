package codegen

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"aslc/internal/decor"
	"aslc/internal/diag"
	"aslc/internal/parser"
	"aslc/internal/symbols"
	"aslc/internal/symtab"
	"aslc/internal/tac"
	"aslc/internal/typecheck"
	"aslc/internal/types"
)

// compile runs the full front end over src and returns the emitted
// program, failing the test if any pass reported a diagnostic.
func compile(t *testing.T, src string) tac.Program {
	t.Helper()
	tree, synErrs := parser.Parse(src)
	if len(synErrs) > 0 {
		t.Fatalf("unexpected syntax errors: %v", synErrs)
	}
	tm := types.NewMgr()
	st := symtab.NewTable()
	dt := decor.NewTable()
	var errs diag.Sink

	symbols.New(tm, st, dt, &errs).Run(tree)
	typecheck.New(tm, st, dt, &errs).Run(tree)
	if errs.Total() != 0 {
		t.Fatalf("unexpected semantic diagnostics: %v", errs.All())
	}
	return New(tm, st, dt).Run(tree)
}

// compileExpectErr runs passes 1-2 only and returns the diagnostic count,
// for scenarios that must fail before code generation runs.
func compileExpectErr(t *testing.T, src string) int {
	t.Helper()
	tree, synErrs := parser.Parse(src)
	if len(synErrs) > 0 {
		t.Fatalf("unexpected syntax errors: %v", synErrs)
	}
	tm := types.NewMgr()
	st := symtab.NewTable()
	dt := decor.NewTable()
	var errs diag.Sink

	symbols.New(tm, st, dt, &errs).Run(tree)
	typecheck.New(tm, st, dt, &errs).Run(tree)
	return errs.Total()
}

func TestHelloMain(t *testing.T) {
	prog := compile(t, "func main() endfunc")
	if len(prog.Subroutines) != 1 {
		t.Fatalf("expected one subroutine, got %d", len(prog.Subroutines))
	}
	sub := prog.Subroutines[0]
	if sub.Name != "main" {
		t.Errorf("got name %q, want main", sub.Name)
	}
	if len(sub.Params) != 0 {
		t.Errorf("expected no params, got %v", sub.Params)
	}
	if len(sub.Locals) != 0 {
		t.Errorf("expected no locals, got %v", sub.Locals)
	}
	if len(sub.Code) != 1 || sub.Code[0].Op != tac.RETURN {
		t.Errorf("expected a single RETURN, got %v", sub.Code)
	}
	snaps.MatchSnapshot(t, prog.String())
}

func TestIntegerPromotionOnAssign(t *testing.T) {
	src := `func main()
var x: float;
var y: int;
x := y + 1;
endfunc`
	prog := compile(t, src)
	sub := prog.Subroutines[0]

	var ops []tac.Op
	for _, ins := range sub.Code {
		ops = append(ops, ins.Op)
	}
	want := []tac.Op{tac.ILOAD, tac.ADD, tac.FLOAT, tac.LOAD, tac.RETURN}
	if len(ops) != len(want) {
		t.Fatalf("got ops %v, want %v", ops, want)
	}
	for i, op := range want {
		if ops[i] != op {
			t.Errorf("instruction %d: got %s, want %s", i, ops[i], op)
		}
	}
	// the final LOAD must target x with the FLOAT instruction's destination.
	floatIns := sub.Code[2]
	loadIns := sub.Code[3]
	if loadIns.Args[0] != "x" || loadIns.Args[1] != floatIns.Args[0] {
		t.Errorf("LOAD does not consume the FLOAT result: %v / %v", loadIns, floatIns)
	}
	snaps.MatchSnapshot(t, prog.String())
}

func TestArrayCopyLoop(t *testing.T) {
	src := `func main()
var a,b: array[4] of int;
a := b;
endfunc`
	prog := compile(t, src)
	sub := prog.Subroutines[0]

	var ops []tac.Op
	for _, ins := range sub.Code {
		ops = append(ops, ins.Op)
	}
	want := []tac.Op{
		tac.ILOAD, tac.ILOAD, tac.ILOAD,
		tac.LABEL,
		tac.LT, tac.FJUMP,
		tac.LOADX, tac.XLOAD,
		tac.ADD,
		tac.UJUMP,
		tac.LABEL,
		tac.RETURN,
	}
	if len(ops) != len(want) {
		t.Fatalf("got ops %v, want %v", ops, want)
	}
	for i, op := range want {
		if ops[i] != op {
			t.Errorf("instruction %d: got %s, want %s", i, ops[i], op)
		}
	}
	if sub.Code[0].Args[1] != "4" {
		t.Errorf("expected size constant 4, got %v", sub.Code[0])
	}
	if sub.Code[1].Args[1] != "0" || sub.Code[2].Args[1] != "1" {
		t.Errorf("expected i=0, k=1, got %v / %v", sub.Code[1], sub.Code[2])
	}
	snaps.MatchSnapshot(t, prog.String())
}

func TestModuloTypeErrorProducesNoTAC(t *testing.T) {
	src := `func main()
var a: int;
var b: float;
a := a % b;
endfunc`
	n := compileExpectErr(t, src)
	if n != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", n)
	}
}

func TestUndeclaredInCondition(t *testing.T) {
	src := `func main()
if foo then
endif
endfunc`
	n := compileExpectErr(t, src)
	if n != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", n)
	}
}

func TestWriteString(t *testing.T) {
	src := `func main()
write "hi\n";
endfunc`
	prog := compile(t, src)
	sub := prog.Subroutines[0]
	if len(sub.Code) != 2 {
		t.Fatalf("expected WRITES followed by RETURN, got %v", sub.Code)
	}
	ins := sub.Code[0]
	if ins.Op != tac.WRITES {
		t.Fatalf("expected WRITES, got %s", ins.Op)
	}
	if ins.Args[0] != `"hi\n"` {
		t.Errorf("got %q, want %q", ins.Args[0], `"hi\n"`)
	}
	if !strings.Contains(prog.String(), `WRITES "hi\n"`) {
		t.Errorf("rendered program missing literal WRITES line:\n%s", prog.String())
	}
}

func TestArrayParameterMaterialisation(t *testing.T) {
	src := `func sum(a: array[4] of int): int
var i: int;
var total: int;
return total;
endfunc

func main()
var v: array[4] of int;
var r: int;
r := sum(v);
endfunc`
	prog := compile(t, src)
	var main tac.Subroutine
	for _, s := range prog.Subroutines {
		if s.Name == "main" {
			main = s
		}
	}
	var sawALOAD bool
	for _, ins := range main.Code {
		if ins.Op == tac.ALOAD {
			sawALOAD = true
		}
	}
	if !sawALOAD {
		t.Errorf("expected an ALOAD materialising local array v's address for the call, got %v", main.Code)
	}
}

func TestArrayParameterArgumentForwardedWithoutDoubleLoad(t *testing.T) {
	src := `func inner(a: array[4] of int)
endfunc

func outer(a: array[4] of int)
inner(a);
endfunc

func main() endfunc`
	prog := compile(t, src)
	var outer tac.Subroutine
	for _, s := range prog.Subroutines {
		if s.Name == "outer" {
			outer = s
		}
	}
	var loads int
	for _, ins := range outer.Code {
		if ins.Op == tac.LOAD {
			loads++
		}
	}
	// genIdent materialises parameter a's address into a temporary once
	// (for use as inner's argument); genCall must reuse that temporary
	// rather than loading a a second time.
	if loads != 1 {
		t.Errorf("expected exactly one LOAD materialising parameter a, got %d in %v", loads, outer.Code)
	}
}

func TestFunctionCallCallingConvention(t *testing.T) {
	src := `func inc(x: int): int
return x + 1;
endfunc

func main()
var r: int;
r := inc(2);
endfunc`
	prog := compile(t, src)
	var main tac.Subroutine
	for _, s := range prog.Subroutines {
		if s.Name == "main" {
			main = s
		}
	}
	var ops []tac.Op
	for _, ins := range main.Code {
		ops = append(ops, ins.Op)
	}
	// PUSH (result slot), compute the literal argument, PUSH it, CALL,
	// POP (argument), POP (result into a temporary), LOAD r.
	want := []tac.Op{tac.PUSH, tac.ILOAD, tac.PUSH, tac.CALL, tac.POP, tac.POP, tac.LOAD, tac.RETURN}
	if len(ops) != len(want) {
		t.Fatalf("got ops %v, want %v", ops, want)
	}
	for i, op := range want {
		if ops[i] != op {
			t.Errorf("instruction %d: got %s, want %s", i, ops[i], op)
		}
	}
}
