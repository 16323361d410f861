// Package codegen implements CodeGenVisitor, the third semantic pass: it
// traverses a decorated parse tree and emits a tac.Program, synthesising
// temporaries and labels, inserting integer-to-float widening, and
// expanding array-to-array assignment into a counted copy loop.
//
// Grounded line-for-line on original_source/.../CodeGenVisitor.cpp's
// visit* methods: visitFunction (the "_result" preamble and per-function
// counter reset), visitAssignStmt (the four lowering cases), visitIfStmt
// /visitWhileStmt (the FJUMP/UJUMP/LABEL shapes), visitProcCall/
// visitExprFunc (the PUSH/POP calling convention and array-address
// argument passing), visitReadStmt/visitWriteExpr/writeString,
// visitReturnStmt, visitArithmetic/visitRelational/visitUnaryOps (the
// FLOAT widening and operand-swap rules), and visitIdent (array-
// parameter base-address materialisation).
package codegen

import (
	"fmt"
	"strconv"

	"aslc/internal/ast"
	"aslc/internal/decor"
	"aslc/internal/symtab"
	"aslc/internal/tac"
	"aslc/internal/types"
)

// Visitor runs pass 3 over a fully decorated parse tree, assuming zero
// diagnostics were emitted in passes 1-2 (spec.md §7: "if any error was
// emitted across passes 1-2, pass 3 is skipped").
type Visitor struct {
	types *types.Mgr
	syms  *symtab.Table
	dec   *decor.Table

	// tempN/ifN/whileN reset to zero on every function entry, per
	// spec.md §9 ("Counters per function... a testable invariant").
	tempN, ifN, whileN int
}

// New creates a pass-3 visitor sharing the tables built by passes 1-2.
func New(tm *types.Mgr, st *symtab.Table, dt *decor.Table) *Visitor {
	return &Visitor{types: tm, syms: st, dec: dt}
}

// Run emits the whole program, one subroutine per function, in source
// order.
func (v *Visitor) Run(program *ast.Node) tac.Program {
	var subs []tac.Subroutine
	for _, fn := range program.Children {
		subs = append(subs, v.genFunction(fn))
	}
	return tac.Program{Subroutines: subs}
}

func (v *Visitor) newTemp() string {
	v.tempN++
	return fmt.Sprintf("%%%d", v.tempN)
}

func (v *Visitor) newIfLabel() int {
	v.ifN++
	return v.ifN
}

func (v *Visitor) newWhileLabel() int {
	v.whileN++
	return v.whileN
}

func (v *Visitor) genFunction(fn *ast.Node) tac.Subroutine {
	name := fn.Data.(string)
	sid := v.dec.GetScope(fn)
	v.syms.PushThisScope(sid)
	defer v.syms.PopScope()

	v.tempN, v.ifN, v.whileN = 0, 0, 0

	entry, _ := v.syms.FindInStack(name)
	retTy := v.types.GetFuncReturn(entry.Type)
	hasResult := !v.types.IsVoid(retTy)

	paramsNode := fn.Children[0]
	paramCount := len(paramsNode.Children)
	order := v.syms.Names(sid)

	var params []string
	if hasResult {
		params = append(params, "_result")
	}
	for i := 0; i < paramCount && i < len(order); i++ {
		params = append(params, order[i])
	}

	var locals []tac.Var
	for i := paramCount; i < len(order); i++ {
		e, _ := v.syms.Get(sid, order[i])
		locals = append(locals, tac.Var{Name: order[i], Size: v.types.SizeOf(e.Type)})
	}

	stmts := fn.Children[len(fn.Children)-1]
	code := v.genStatements(stmts)
	code = code.Append(tac.RETURNi())

	return tac.Subroutine{Name: name, Params: params, Locals: locals, Code: code}
}

func (v *Visitor) genStatements(n *ast.Node) tac.InstructionList {
	var code tac.InstructionList
	for _, s := range n.Children {
		code = code.Concat(v.genStatement(s))
	}
	return code
}

func (v *Visitor) genStatement(n *ast.Node) tac.InstructionList {
	switch n.Typ {
	case ast.ASSIGN_STMT:
		return v.genAssign(n)
	case ast.IF_STMT:
		return v.genIf(n)
	case ast.WHILE_STMT:
		return v.genWhile(n)
	case ast.PROC_CALL_STMT:
		return v.genProcCallStmt(n)
	case ast.READ_STMT:
		return v.genRead(n)
	case ast.WRITE_EXPR_STMT:
		return v.genWriteExpr(n)
	case ast.WRITE_STRING_STMT:
		return v.genWriteString(n)
	case ast.RETURN_STMT:
		return v.genReturn(n)
	default:
		return nil
	}
}

// exprVal is the result of translating an expression: the address that
// holds its value (a temporary, a variable name, or a literal) and the
// code that computes it.
type exprVal struct {
	Addr string
	Code tac.InstructionList
}

// widenToFloat appends a FLOAT widening of ev into a fresh temporary
// when srcTy is Integer, per spec.md §4.5's coercion-insertion rule; it
// is a no-op (returns ev unchanged) for any other source type.
func (v *Visitor) widenToFloat(ev exprVal, srcTy types.TypeId) exprVal {
	if !v.types.IsInteger(srcTy) {
		return ev
	}
	t := v.newTemp()
	return exprVal{Addr: t, Code: ev.Code.Append(tac.FLOATi(t, ev.Addr))}
}

func (v *Visitor) genAssign(n *ast.Node) tac.InstructionList {
	target, rhs := n.Children[0], n.Children[1]
	ident := target.Children[0]
	name := ident.Data.(string)
	targetTy := v.dec.GetType(target)
	rhsTy := v.dec.GetType(rhs)

	if len(target.Children) == 2 {
		// Case 1: array-element target.
		idx := target.Children[1]
		rEval := v.genExpr(rhs)
		iEval := v.genExpr(idx)
		code := rEval.Code.Concat(iEval.Code)
		addr := rEval.Addr
		if v.types.IsFloat(targetTy) && v.types.IsInteger(rhsTy) {
			w := v.widenToFloat(exprVal{Addr: addr}, rhsTy)
			code = code.Concat(w.Code)
			addr = w.Addr
		}
		return code.Append(tac.XLOADi(name, iEval.Addr, addr))
	}

	if v.types.IsArray(targetTy) && v.types.IsArray(rhsTy) {
		// Case 3: whole-array assignment, lowered to a counted copy loop.
		return v.genArrayCopy(name, rhs, v.types.SizeOf(targetTy))
	}

	// Cases 2 and 4: scalar assignment, optionally widened.
	rEval := v.genExpr(rhs)
	code := rEval.Code
	addr := rEval.Addr
	if v.types.IsFloat(targetTy) && v.types.IsInteger(rhsTy) {
		w := v.widenToFloat(exprVal{Addr: addr}, rhsTy)
		code = code.Concat(w.Code)
		addr = w.Addr
	}
	return code.Append(tac.LOADi(name, addr))
}

// genArrayCopy lowers "dst := src;" for two equal-shaped arrays into the
// counted loop of spec.md §4.5 / §8's scenario 3: ILOAD size/i/k, a
// label, LT/FJUMP exit test, LOADX/XLOAD through a temporary, ADD, UJUMP
// back to the head, end label. The source goes through genIdent, so a
// parameter array (which holds the caller's base address) is first
// loaded into a temporary, exactly as for an indexed read, while a local
// array's bare name is used directly as the LOADX base. The destination
// name is used as the XLOAD base as is, as in genAssign's array-element
// case.
func (v *Visitor) genArrayCopy(dstName string, src *ast.Node, size int) tac.InstructionList {
	srcEval := v.genIdent(src.Children[0])

	sizeT, iT, kT, tT, condT := v.newTemp(), v.newTemp(), v.newTemp(), v.newTemp(), v.newTemp()
	n := v.newWhileLabel()
	head := fmt.Sprintf("copyhead%d", n)
	end := fmt.Sprintf("copyend%d", n)

	code := srcEval.Code
	code = code.Append(
		tac.ILOADi(sizeT, strconv.Itoa(size)),
		tac.ILOADi(iT, "0"),
		tac.ILOADi(kT, "1"),
		tac.LABELi(head),
		tac.LTi(condT, iT, sizeT),
		tac.FJUMPi(condT, end),
		tac.LOADXi(tT, srcEval.Addr, iT),
		tac.XLOADi(dstName, iT, tT),
		tac.ADDi(iT, iT, kT),
		tac.UJUMPi(head),
		tac.LABELi(end),
	)
	return code
}

func (v *Visitor) genIf(n *ast.Node) tac.InstructionList {
	cond := n.Children[0]
	condEval := v.genExpr(cond)
	thenCode := v.genStatements(n.Children[1])

	id := v.newIfLabel()
	endLabel := fmt.Sprintf("endif%d", id)

	if len(n.Children) > 2 {
		elseLabel := fmt.Sprintf("else%d", id)
		elseCode := v.genStatements(n.Children[2])
		code := condEval.Code.Append(tac.FJUMPi(condEval.Addr, elseLabel))
		code = code.Concat(thenCode)
		code = code.Append(tac.UJUMPi(endLabel), tac.LABELi(elseLabel))
		code = code.Concat(elseCode)
		return code.Append(tac.LABELi(endLabel))
	}

	code := condEval.Code.Append(tac.FJUMPi(condEval.Addr, endLabel))
	code = code.Concat(thenCode)
	return code.Append(tac.LABELi(endLabel))
}

func (v *Visitor) genWhile(n *ast.Node) tac.InstructionList {
	cond := n.Children[0]
	bodyCode := v.genStatements(n.Children[1])

	id := v.newWhileLabel()
	head := fmt.Sprintf("while%d", id)
	end := fmt.Sprintf("endwhile%d", id)

	condEval := v.genExpr(cond)
	var code tac.InstructionList
	code = code.Append(tac.LABELi(head))
	code = code.Concat(condEval.Code)
	code = code.Append(tac.FJUMPi(condEval.Addr, end))
	code = code.Concat(bodyCode)
	return code.Append(tac.UJUMPi(head), tac.LABELi(end))
}

func (v *Visitor) genProcCallStmt(n *ast.Node) tac.InstructionList {
	name := n.Data.(string)
	args := n.Children[0].Children
	return v.genCall(name, args, false).Code
}

// genCall implements the calling convention of spec.md §4.5: reserve a
// return slot, push each argument (widened to Float or converted to an
// address for array parameters), call, pop every argument slot, then
// pop the result slot into a temporary (expression form) or discard it
// (statement form).
func (v *Visitor) genCall(name string, args []*ast.Node, exprForm bool) exprVal {
	entry, _ := v.syms.FindInStack(name)
	paramTypes := v.types.GetFuncParams(entry.Type)

	var code tac.InstructionList
	code = code.Append(tac.PUSHi(""))

	for i, a := range args {
		aEval := v.genExpr(a)
		code = code.Concat(aEval.Code)
		addr := aEval.Addr
		switch {
		case i < len(paramTypes) && v.types.IsArray(paramTypes[i]):
			// A caller-side array parameter was already materialised into
			// aEval.Addr by genIdent's own LOAD; reuse it instead of
			// re-deriving the identifier and emitting a second, redundant
			// LOAD. A local array has no such address yet — its bare name
			// is not itself loadable — so it still needs an ALOAD here.
			if !v.syms.IsParameterClass(arrayArgIdent(a)) {
				t := v.newTemp()
				code = code.Append(tac.ALOADi(t, arrayArgIdent(a)))
				addr = t
			}
		case i < len(paramTypes) && v.types.IsFloat(paramTypes[i]):
			aTy := v.dec.GetType(a)
			w := v.widenToFloat(exprVal{Addr: addr}, aTy)
			code = code.Concat(w.Code)
			addr = w.Addr
		}
		code = code.Append(tac.PUSHi(addr))
	}

	code = code.Append(tac.CALLi(name))
	for range args {
		code = code.Append(tac.POPi(""))
	}

	if exprForm {
		result := v.newTemp()
		code = code.Append(tac.POPi(result))
		return exprVal{Addr: result, Code: code}
	}
	code = code.Append(tac.POPi(""))
	return exprVal{Code: code}
}

// arrayArgIdent extracts the bare identifier name passed as an
// array-typed call argument; the grammar only allows a bare identifier
// there (there is no array-valued expression form).
func arrayArgIdent(a *ast.Node) string {
	if a.Typ == ast.EXPR_IDENT {
		return a.Children[0].Data.(string)
	}
	return a.Data.(string)
}

func (v *Visitor) genRead(n *ast.Node) tac.InstructionList {
	target := n.Children[0]
	ident := target.Children[0]
	name := ident.Data.(string)
	targetTy := v.dec.GetType(target)

	if len(target.Children) == 2 {
		idx := target.Children[1]
		iEval := v.genExpr(idx)
		t := v.newTemp()
		code := iEval.Code.Append(v.readInstr(targetTy, t))
		return code.Append(tac.XLOADi(name, iEval.Addr, t))
	}
	return tac.InstructionList{v.readInstr(targetTy, name)}
}

// readInstr dispatches "read" on the target's type, per spec.md §4.5:
// READI/READF/READC; Boolean reads as READI, mirroring write's "WRITEI
// (also used for Boolean)".
func (v *Visitor) readInstr(ty types.TypeId, dest string) tac.Instruction {
	switch {
	case v.types.IsFloat(ty):
		return tac.READFi(dest)
	case v.types.IsCharacter(ty):
		return tac.READCi(dest)
	default:
		return tac.READIi(dest)
	}
}

func (v *Visitor) genWriteExpr(n *ast.Node) tac.InstructionList {
	e := n.Children[0]
	eval := v.genExpr(e)
	ty := v.dec.GetType(e)
	return eval.Code.Append(v.writeInstr(ty, eval.Addr))
}

// writeInstr dispatches "write E" on E's type: WRITEI (also used for
// Boolean), WRITEF, WRITEC.
func (v *Visitor) writeInstr(ty types.TypeId, addr string) tac.Instruction {
	switch {
	case v.types.IsFloat(ty):
		return tac.WRITEFi(addr)
	case v.types.IsCharacter(ty):
		return tac.WRITECi(addr)
	default:
		return tac.WRITEIi(addr)
	}
}

// genWriteString emits the literal's raw source text, quotes included,
// unmodified: the lexer already kept escape sequences un-decoded, so
// wrapping (not re-escaping) it reproduces the source exactly, per
// spec.md §6's "string literals ... as they appear in source including
// quotes."
func (v *Visitor) genWriteString(n *ast.Node) tac.InstructionList {
	lit := n.Data.(string)
	return tac.InstructionList{tac.WRITESi(`"` + lit + `"`)}
}

func (v *Visitor) genReturn(n *ast.Node) tac.InstructionList {
	if len(n.Children) == 0 {
		return nil
	}
	e := n.Children[0]
	eval := v.genExpr(e)
	ty := v.dec.GetType(e)
	code := eval.Code
	addr := eval.Addr

	switch {
	case v.types.IsFloat(ty):
		code = code.Append(tac.FLOADi("_result", addr))
	case v.types.IsCharacter(ty):
		code = code.Append(tac.CHLOADi("_result", addr))
	default:
		code = code.Append(tac.ILOADi("_result", addr))
	}
	return code
}

// genExpr translates an expression node into its address and the code
// that computes it.
func (v *Visitor) genExpr(n *ast.Node) exprVal {
	switch n.Typ {
	case ast.EXPR_IDENT:
		return v.genIdent(n.Children[0])
	case ast.ARRAY_ACCESS:
		return v.genArrayAccess(n)
	case ast.UNARY_OP:
		return v.genUnary(n)
	case ast.ARITHMETIC:
		return v.genArithmetic(n)
	case ast.RELATIONAL:
		return v.genRelational(n)
	case ast.LOGICAL:
		return v.genLogical(n)
	case ast.PARENS:
		return v.genExpr(n.Children[0])
	case ast.EXPR_FUNC:
		args := n.Children[0].Children
		return v.genCall(n.Data.(string), args, true)
	case ast.INT_LIT:
		t := v.newTemp()
		return exprVal{Addr: t, Code: tac.InstructionList{tac.ILOADi(t, n.Data.(string))}}
	case ast.FLOAT_LIT:
		t := v.newTemp()
		return exprVal{Addr: t, Code: tac.InstructionList{tac.FLOADi(t, n.Data.(string))}}
	case ast.CHAR_LIT:
		t := v.newTemp()
		return exprVal{Addr: t, Code: tac.InstructionList{tac.CHLOADi(t, n.Data.(string))}}
	case ast.BOOL_LIT:
		t := v.newTemp()
		lit := "0"
		if n.Data.(string) == "true" {
			lit = "1"
		}
		return exprVal{Addr: t, Code: tac.InstructionList{tac.ILOADi(t, lit)}}
	default:
		return exprVal{}
	}
}

// genIdent materialises a bare identifier's value. A local array or
// array-parameter identifier denotes an address, not a scalar value:
// per spec.md §4.5's "array-parameter identifier materialisation," a
// parameter array is loaded into a fresh temporary so later indexed
// accesses use that temporary, while a local array's bare name is
// already usable as its base address and needs no load. A scalar
// identifier is its own address (the VM addresses variables by name).
func (v *Visitor) genIdent(ident *ast.Node) exprVal {
	name := ident.Data.(string)
	ty := v.dec.GetType(ident)
	if v.types.IsArray(ty) && v.syms.IsParameterClass(name) {
		t := v.newTemp()
		return exprVal{Addr: t, Code: tac.InstructionList{tac.LOADi(t, name)}}
	}
	return exprVal{Addr: name}
}

func (v *Visitor) genArrayAccess(n *ast.Node) exprVal {
	ident := n.Children[0]
	idx := n.Children[1]
	base := v.genIdent(ident)
	iEval := v.genExpr(idx)
	t := v.newTemp()
	code := base.Code.Concat(iEval.Code)
	code = code.Append(tac.LOADXi(t, base.Addr, iEval.Addr))
	return exprVal{Addr: t, Code: code}
}

func (v *Visitor) genUnary(n *ast.Node) exprVal {
	op := n.Data.(string)
	operand := n.Children[0]
	resTy := v.dec.GetType(n)
	oEval := v.genExpr(operand)

	if op == "not" {
		t := v.newTemp()
		return exprVal{Addr: t, Code: oEval.Code.Append(tac.NOTi(t, oEval.Addr))}
	}

	// Unary "+" is materialised as ADD/FADD with a zero operand loaded
	// into a temporary, matching spec.md §4.5; unary "-" uses the
	// dedicated NEG/FNEG opcode.
	addr := oEval.Addr
	code := oEval.Code
	if v.types.IsFloat(resTy) {
		w := v.widenToFloat(exprVal{Addr: addr, Code: code}, v.dec.GetType(operand))
		addr, code = w.Addr, w.Code
		t := v.newTemp()
		if op == "+" {
			zero := v.newTemp()
			code = code.Append(tac.FLOADi(zero, "0.0"))
			return exprVal{Addr: t, Code: code.Append(tac.FADDi(t, zero, addr))}
		}
		return exprVal{Addr: t, Code: code.Append(tac.FNEGi(t, addr))}
	}
	t := v.newTemp()
	if op == "+" {
		zero := v.newTemp()
		code = code.Append(tac.ILOADi(zero, "0"))
		return exprVal{Addr: t, Code: code.Append(tac.ADDi(t, zero, addr))}
	}
	return exprVal{Addr: t, Code: code.Append(tac.NEGi(t, addr))}
}

func (v *Visitor) genArithmetic(n *ast.Node) exprVal {
	op := n.Data.(string)
	l, r := n.Children[0], n.Children[1]
	lEval, rEval := v.genExpr(l), v.genExpr(r)
	resTy := v.dec.GetType(n)
	code := lEval.Code.Concat(rEval.Code)
	lAddr, rAddr := lEval.Addr, rEval.Addr

	isFloat := v.types.IsFloat(resTy)
	if isFloat {
		lw := v.widenToFloat(exprVal{Addr: lAddr}, v.dec.GetType(l))
		code = code.Concat(lw.Code)
		lAddr = lw.Addr
		rw := v.widenToFloat(exprVal{Addr: rAddr}, v.dec.GetType(r))
		code = code.Concat(rw.Code)
		rAddr = rw.Addr
	}

	t := v.newTemp()
	switch op {
	case "+":
		if isFloat {
			return exprVal{Addr: t, Code: code.Append(tac.FADDi(t, lAddr, rAddr))}
		}
		return exprVal{Addr: t, Code: code.Append(tac.ADDi(t, lAddr, rAddr))}
	case "-":
		if isFloat {
			return exprVal{Addr: t, Code: code.Append(tac.FSUBi(t, lAddr, rAddr))}
		}
		return exprVal{Addr: t, Code: code.Append(tac.SUBi(t, lAddr, rAddr))}
	case "*":
		if isFloat {
			return exprVal{Addr: t, Code: code.Append(tac.FMULi(t, lAddr, rAddr))}
		}
		return exprVal{Addr: t, Code: code.Append(tac.MULi(t, lAddr, rAddr))}
	case "/":
		if isFloat {
			return exprVal{Addr: t, Code: code.Append(tac.FDIVi(t, lAddr, rAddr))}
		}
		return exprVal{Addr: t, Code: code.Append(tac.DIVi(t, lAddr, rAddr))}
	case "%":
		// Integer modulo lowers to DIV/MUL/SUB. The type checker accepts
		// '%' only on two operands of the same type, so a Float result
		// means float % float, which lowers to FDIV/FMUL/FSUB with no
		// widening involved.
		q := v.newTemp()
		m := v.newTemp()
		if isFloat {
			code = code.Append(tac.FDIVi(q, lAddr, rAddr), tac.FMULi(m, q, rAddr))
			return exprVal{Addr: t, Code: code.Append(tac.FSUBi(t, lAddr, m))}
		}
		code = code.Append(tac.DIVi(q, lAddr, rAddr), tac.MULi(m, q, rAddr))
		return exprVal{Addr: t, Code: code.Append(tac.SUBi(t, lAddr, m))}
	default:
		return exprVal{Addr: t, Code: code}
	}
}

func (v *Visitor) genRelational(n *ast.Node) exprVal {
	op := n.Data.(string)
	l, r := n.Children[0], n.Children[1]
	lEval, rEval := v.genExpr(l), v.genExpr(r)
	code := lEval.Code.Concat(rEval.Code)
	lAddr, rAddr := lEval.Addr, rEval.Addr

	lt, rt := v.dec.GetType(l), v.dec.GetType(r)
	useFloat := v.types.IsFloat(lt) || v.types.IsFloat(rt)
	if useFloat {
		lw := v.widenToFloat(exprVal{Addr: lAddr}, lt)
		code = code.Concat(lw.Code)
		lAddr = lw.Addr
		rw := v.widenToFloat(exprVal{Addr: rAddr}, rt)
		code = code.Concat(rw.Code)
		rAddr = rw.Addr
	}

	t := v.newTemp()
	// '>' and '>=' are produced by swapping operands and emitting the
	// corresponding LT/LE; '!=' is EQ followed by NOT; the rest have
	// direct opcodes, float variants used when either operand is Float.
	switch op {
	case "==":
		if useFloat {
			return exprVal{Addr: t, Code: code.Append(tac.FEQi(t, lAddr, rAddr))}
		}
		return exprVal{Addr: t, Code: code.Append(tac.EQi(t, lAddr, rAddr))}
	case "!=":
		eq := v.newTemp()
		if useFloat {
			code = code.Append(tac.FEQi(eq, lAddr, rAddr))
		} else {
			code = code.Append(tac.EQi(eq, lAddr, rAddr))
		}
		return exprVal{Addr: t, Code: code.Append(tac.NOTi(t, eq))}
	case "<":
		if useFloat {
			return exprVal{Addr: t, Code: code.Append(tac.FLTi(t, lAddr, rAddr))}
		}
		return exprVal{Addr: t, Code: code.Append(tac.LTi(t, lAddr, rAddr))}
	case "<=":
		if useFloat {
			return exprVal{Addr: t, Code: code.Append(tac.FLEi(t, lAddr, rAddr))}
		}
		return exprVal{Addr: t, Code: code.Append(tac.LEi(t, lAddr, rAddr))}
	case ">":
		if useFloat {
			return exprVal{Addr: t, Code: code.Append(tac.FLTi(t, rAddr, lAddr))}
		}
		return exprVal{Addr: t, Code: code.Append(tac.LTi(t, rAddr, lAddr))}
	case ">=":
		if useFloat {
			return exprVal{Addr: t, Code: code.Append(tac.FLEi(t, rAddr, lAddr))}
		}
		return exprVal{Addr: t, Code: code.Append(tac.LEi(t, rAddr, lAddr))}
	default:
		return exprVal{Addr: t, Code: code}
	}
}

func (v *Visitor) genLogical(n *ast.Node) exprVal {
	op := n.Data.(string)
	l, r := n.Children[0], n.Children[1]
	lEval, rEval := v.genExpr(l), v.genExpr(r)
	code := lEval.Code.Concat(rEval.Code)
	t := v.newTemp()
	if op == "and" {
		return exprVal{Addr: t, Code: code.Append(tac.ANDi(t, lEval.Addr, rEval.Addr))}
	}
	return exprVal{Addr: t, Code: code.Append(tac.ORi(t, lEval.Addr, rEval.Addr))}
}
