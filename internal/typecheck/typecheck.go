// Package typecheck implements TypeCheckVisitor, the second semantic
// pass: it computes a TypeId and an isLValue flag for every expression
// node and reports every rule violation in spec.md §4.4's table.
//
// Grounded line-for-line on original_source/.../TypeCheckVisitor.cpp's
// visit* methods (visitAssignStmt, visitIfStmt, visitWhileStmt,
// visitProcCall, visitReadStmt, visitWriteExpr, visitReturnStmt,
// visitLeft_expr, visitArrayAccess, visitUnaryOps, visitArithmetic,
// visitRelational, visitLogical, visitValue, visitExprFunc,
// visitExprIdent, visitIdent), with Go error values standing in for the
// visitor's Errors.print() diagnostic sink.
package typecheck

import (
	"aslc/internal/ast"
	"aslc/internal/decor"
	"aslc/internal/diag"
	"aslc/internal/symtab"
	"aslc/internal/types"
)

// Visitor runs pass 2 over a decorated parse tree.
type Visitor struct {
	types   *types.Mgr
	syms    *symtab.Table
	dec     *decor.Table
	errs    *diag.Sink
	curRet  types.TypeId
}

// New creates a pass-2 visitor sharing the long-lived tables built by
// pass 1.
func New(tm *types.Mgr, st *symtab.Table, dt *decor.Table, errs *diag.Sink) *Visitor {
	return &Visitor{types: tm, syms: st, dec: dt, errs: errs}
}

// Run walks every function body, re-pushing the scope pass 1 recorded on
// each function node.
func (v *Visitor) Run(program *ast.Node) {
	for _, fn := range program.Children {
		v.visitFunction(fn)
	}
}

func (v *Visitor) visitFunction(fn *ast.Node) {
	sid := v.dec.GetScope(fn)
	v.syms.PushThisScope(sid)
	defer v.syms.PopScope()

	name := fn.Data.(string)
	entry, _ := v.syms.FindInStack(name)
	v.curRet = v.types.GetFuncReturn(entry.Type)

	stmts := fn.Children[len(fn.Children)-1]
	v.visitStatements(stmts)
}

func (v *Visitor) visitStatements(n *ast.Node) {
	for _, s := range n.Children {
		v.visitStatement(s)
	}
}

func (v *Visitor) visitStatement(n *ast.Node) {
	switch n.Typ {
	case ast.ASSIGN_STMT:
		v.visitAssign(n)
	case ast.IF_STMT:
		v.visitIf(n)
	case ast.WHILE_STMT:
		v.visitWhile(n)
	case ast.PROC_CALL_STMT:
		v.visitProcCall(n)
	case ast.READ_STMT:
		v.visitRead(n)
	case ast.WRITE_EXPR_STMT:
		v.visitWriteExpr(n)
	case ast.WRITE_STRING_STMT:
		// nothing to type-check: the literal carries no expression.
	case ast.RETURN_STMT:
		v.visitReturn(n)
	}
}

func (v *Visitor) visitAssign(n *ast.Node) {
	target, rhs := n.Children[0], n.Children[1]
	tt := v.visitLeftExpr(target)
	rt := v.visitExpr(rhs)
	if v.types.IsVoid(rt) {
		v.errs.Addf(n.Line, n.Pos, "cannot assign the result of a void call")
		return
	}
	if !v.dec.GetIsLValue(target) {
		v.errs.Addf(target.Line, target.Pos, "non-referenceable left expression")
	}
	if !v.types.IsError(tt) && !v.types.IsError(rt) && !v.types.Copyable(tt, rt) {
		v.errs.Addf(n.Line, n.Pos, "cannot assign a value of this type to the left expression")
	}
}

func (v *Visitor) visitIf(n *ast.Node) {
	cond := n.Children[0]
	ct := v.visitExpr(cond)
	if !v.types.IsError(ct) && !v.types.IsBoolean(ct) {
		v.errs.Addf(cond.Line, cond.Pos, "condition of if must be boolean")
	}
	v.visitStatements(n.Children[1])
	if len(n.Children) > 2 {
		v.visitStatements(n.Children[2])
	}
}

func (v *Visitor) visitWhile(n *ast.Node) {
	cond := n.Children[0]
	ct := v.visitExpr(cond)
	if !v.types.IsError(ct) && !v.types.IsBoolean(ct) {
		v.errs.Addf(cond.Line, cond.Pos, "condition of while must be boolean")
	}
	v.visitStatements(n.Children[1])
}

func (v *Visitor) visitProcCall(n *ast.Node) {
	name := n.Data.(string)
	args := n.Children[0]
	v.checkCall(n, name, args.Children)
}

// checkCall implements the shared arity/type rule used by both
// procedure-call statements and function-call expressions.
func (v *Visitor) checkCall(at *ast.Node, name string, args []*ast.Node) types.TypeId {
	entry, ok := v.syms.FindInStack(name)
	if !ok {
		v.errs.Addf(at.Line, at.Pos, "undeclared identifier %q", name)
		for _, a := range args {
			v.visitExpr(a)
		}
		return v.types.Error()
	}
	if !v.types.IsFunction(entry.Type) {
		v.errs.Addf(at.Line, at.Pos, "%q is not callable", name)
		for _, a := range args {
			v.visitExpr(a)
		}
		return v.types.Error()
	}
	params := v.types.GetFuncParams(entry.Type)
	if len(args) != len(params) {
		v.errs.Addf(at.Line, at.Pos, "%q expects %d argument(s), found %d", name, len(params), len(args))
	}
	for i, a := range args {
		at := v.visitExpr(a)
		if i < len(params) && !v.types.IsError(at) && !v.types.Copyable(params[i], at) {
			v.errs.Addf(a.Line, a.Pos, "argument %d of %q has an incompatible type", i+1, name)
		}
	}
	return v.types.GetFuncReturn(entry.Type)
}

func (v *Visitor) visitRead(n *ast.Node) {
	target := n.Children[0]
	tt := v.visitLeftExpr(target)
	if !v.types.IsError(tt) && (!v.types.IsPrimitive(tt)) {
		v.errs.Addf(target.Line, target.Pos, "read target must have a primitive type")
	}
	if !v.dec.GetIsLValue(target) {
		v.errs.Addf(target.Line, target.Pos, "non-referenceable left expression")
	}
}

func (v *Visitor) visitWriteExpr(n *ast.Node) {
	e := n.Children[0]
	et := v.visitExpr(e)
	if !v.types.IsError(et) && !v.types.IsPrimitive(et) {
		v.errs.Addf(e.Line, e.Pos, "write expects a primitive-typed expression")
	}
}

func (v *Visitor) visitReturn(n *ast.Node) {
	et := v.types.Void()
	var site *ast.Node = n
	if len(n.Children) > 0 {
		site = n.Children[0]
		et = v.visitExpr(site)
	}
	if !v.types.IsError(et) && !v.types.Copyable(v.curRet, et) {
		v.errs.Addf(site.Line, site.Pos, "returned value is not compatible with the function's return type")
	}
}

// visitLeftExpr types a LEFT_EXPR node: a bare identifier, or an
// identifier with an index. Per spec.md §4.4, the element type of a
// left-side array access becomes the type of the whole left_expr, and it
// is an lvalue iff the identifier itself is.
func (v *Visitor) visitLeftExpr(n *ast.Node) types.TypeId {
	ident := n.Children[0]
	identTy, identLV := v.visitIdentCore(ident)
	if len(n.Children) == 1 {
		v.dec.PutType(n, identTy)
		v.dec.PutIsLValue(n, identLV)
		return identTy
	}
	idx := n.Children[1]
	idxTy := v.visitExpr(idx)
	if !v.types.IsError(idxTy) && !v.types.IsInteger(idxTy) {
		v.errs.Addf(idx.Line, idx.Pos, "array index must be an integer")
	}
	elemTy := v.types.Error()
	if !v.types.IsError(identTy) {
		if v.types.IsArray(identTy) {
			elemTy = v.types.GetArrayElem(identTy)
		} else {
			v.errs.Addf(ident.Line, ident.Pos, "%q is not an array", ident.Data.(string))
		}
	}
	v.dec.PutType(n, elemTy)
	v.dec.PutIsLValue(n, identLV)
	return elemTy
}

// visitIdentCore resolves a bare IDENT node used as storage (inside a
// left_expr or array access), decorating it and returning its type and
// lvalue flag. Per original_source/.../TypeCheckVisitor.cpp's
// visitIdent, an unresolved name still decorates isLValue=true (the
// diagnostic is the only signal, not a suppressed lvalue flag).
func (v *Visitor) visitIdentCore(n *ast.Node) (types.TypeId, bool) {
	name := n.Data.(string)
	entry, ok := v.syms.FindInStack(name)
	if !ok {
		v.errs.Addf(n.Line, n.Pos, "undeclared identifier %q", name)
		v.dec.PutType(n, v.types.Error())
		v.dec.PutIsLValue(n, true)
		return v.types.Error(), true
	}
	isLV := entry.Kind != symtab.KindFunction
	v.dec.PutType(n, entry.Type)
	v.dec.PutIsLValue(n, isLV)
	return entry.Type, isLV
}

// visitExpr dispatches an expression-position node, decorating it with a
// type and an lvalue flag, and returns the type for callers that need it
// immediately.
func (v *Visitor) visitExpr(n *ast.Node) types.TypeId {
	switch n.Typ {
	case ast.EXPR_IDENT:
		ty, lv := v.visitIdentCore(n.Children[0])
		v.dec.PutType(n, ty)
		v.dec.PutIsLValue(n, lv)
		return ty
	case ast.ARRAY_ACCESS:
		return v.visitArrayAccess(n)
	case ast.UNARY_OP:
		return v.visitUnary(n)
	case ast.ARITHMETIC:
		return v.visitArithmetic(n)
	case ast.RELATIONAL:
		return v.visitRelational(n)
	case ast.LOGICAL:
		return v.visitLogical(n)
	case ast.PARENS:
		inner := v.visitExpr(n.Children[0])
		v.dec.PutType(n, inner)
		v.dec.PutIsLValue(n, v.dec.GetIsLValue(n.Children[0]))
		return inner
	case ast.EXPR_FUNC:
		return v.visitExprFunc(n)
	case ast.INT_LIT:
		v.dec.PutType(n, v.types.Integer())
		v.dec.PutIsLValue(n, false)
		return v.types.Integer()
	case ast.FLOAT_LIT:
		v.dec.PutType(n, v.types.Float())
		v.dec.PutIsLValue(n, false)
		return v.types.Float()
	case ast.BOOL_LIT:
		v.dec.PutType(n, v.types.Boolean())
		v.dec.PutIsLValue(n, false)
		return v.types.Boolean()
	case ast.CHAR_LIT:
		v.dec.PutType(n, v.types.Character())
		v.dec.PutIsLValue(n, false)
		return v.types.Character()
	default:
		v.dec.PutType(n, v.types.Error())
		v.dec.PutIsLValue(n, false)
		return v.types.Error()
	}
}

// visitArrayAccess types an expression-position "a[i]". Distinct from
// visitLeftExpr's array-access case: this one is never an lvalue, per
// spec.md §4.4 and original_source/.../TypeCheckVisitor.cpp's
// visitArrayAccess (putIsLValueDecor(ctx, false) unconditionally).
func (v *Visitor) visitArrayAccess(n *ast.Node) types.TypeId {
	ident := n.Children[0]
	idx := n.Children[1]
	identTy, _ := v.visitIdentCore(ident)
	idxTy := v.visitExpr(idx)
	if !v.types.IsError(idxTy) && !v.types.IsInteger(idxTy) {
		v.errs.Addf(idx.Line, idx.Pos, "array index must be an integer")
	}
	elemTy := v.types.Error()
	if !v.types.IsError(identTy) {
		if v.types.IsArray(identTy) {
			elemTy = v.types.GetArrayElem(identTy)
		} else {
			v.errs.Addf(ident.Line, ident.Pos, "%q is not an array", ident.Data.(string))
		}
	}
	v.dec.PutType(n, elemTy)
	v.dec.PutIsLValue(n, false)
	return elemTy
}

func (v *Visitor) visitUnary(n *ast.Node) types.TypeId {
	op := n.Data.(string)
	operand := n.Children[0]
	ot := v.visitExpr(operand)
	var result types.TypeId
	switch {
	case v.types.IsError(ot):
		result = v.types.Error()
	case op == "not":
		if !v.types.IsBoolean(ot) {
			v.errs.Addf(n.Line, n.Pos, "operand of 'not' must be boolean")
			result = v.types.Error()
		} else {
			result = v.types.Boolean()
		}
	default: // "+" or "-"
		if !v.types.IsNumeric(ot) {
			v.errs.Addf(n.Line, n.Pos, "operand of unary %q must be numeric", op)
			result = v.types.Error()
		} else if v.types.IsFloat(ot) {
			result = v.types.Float()
		} else {
			result = v.types.Integer()
		}
	}
	v.dec.PutType(n, result)
	v.dec.PutIsLValue(n, false)
	return result
}

func (v *Visitor) visitArithmetic(n *ast.Node) types.TypeId {
	op := n.Data.(string)
	l, r := n.Children[0], n.Children[1]
	lt := v.visitExpr(l)
	rt := v.visitExpr(r)
	var result types.TypeId
	switch {
	case v.types.IsError(lt) || v.types.IsError(rt):
		result = v.types.Error()
	case !v.types.IsNumeric(lt) || !v.types.IsNumeric(rt):
		v.errs.Addf(n.Line, n.Pos, "operands of %q must be numeric", op)
		result = v.types.Error()
	case op == "%" && !v.types.Equal(lt, rt):
		v.errs.Addf(n.Line, n.Pos, "operands of '%%' must have the same type")
		result = v.types.Error()
	case v.types.IsFloat(lt) || v.types.IsFloat(rt):
		result = v.types.Float()
	default:
		result = v.types.Integer()
	}
	v.dec.PutType(n, result)
	v.dec.PutIsLValue(n, false)
	return result
}

func (v *Visitor) visitRelational(n *ast.Node) types.TypeId {
	op := n.Data.(string)
	l, r := n.Children[0], n.Children[1]
	lt := v.visitExpr(l)
	rt := v.visitExpr(r)
	result := v.types.Boolean()
	if !v.types.IsError(lt) && !v.types.IsError(rt) {
		relOp := relOpFor(op)
		if !v.types.Comparable(lt, rt, relOp) {
			v.errs.Addf(n.Line, n.Pos, "operands of %q are not comparable", op)
		}
	} else if v.types.IsError(lt) || v.types.IsError(rt) {
		result = v.types.Error()
	}
	v.dec.PutType(n, result)
	v.dec.PutIsLValue(n, false)
	return result
}

func relOpFor(op string) types.RelOp {
	switch op {
	case "==":
		return types.OpEq
	case "!=":
		return types.OpNe
	case "<":
		return types.OpLt
	case "<=":
		return types.OpLe
	case ">":
		return types.OpGt
	default:
		return types.OpGe
	}
}

func (v *Visitor) visitLogical(n *ast.Node) types.TypeId {
	op := n.Data.(string)
	l, r := n.Children[0], n.Children[1]
	lt := v.visitExpr(l)
	rt := v.visitExpr(r)
	var result types.TypeId
	switch {
	case v.types.IsError(lt) || v.types.IsError(rt):
		result = v.types.Error()
	case !v.types.IsBoolean(lt) || !v.types.IsBoolean(rt):
		v.errs.Addf(n.Line, n.Pos, "operands of %q must be boolean", op)
		result = v.types.Error()
	default:
		result = v.types.Boolean()
	}
	v.dec.PutType(n, result)
	v.dec.PutIsLValue(n, false)
	return result
}

// visitExprFunc types a function call used as an expression: same arity
// and argument-type checks as visitProcCall, but requires a non-Void
// return to be usable as a value (spec.md §4.4's "function-expression"
// row).
func (v *Visitor) visitExprFunc(n *ast.Node) types.TypeId {
	name := n.Data.(string)
	args := n.Children[0]
	ret := v.checkCall(n, name, args.Children)
	if !v.types.IsError(ret) && v.types.IsVoid(ret) {
		v.errs.Addf(n.Line, n.Pos, "%q does not return a value", name)
		ret = v.types.Error()
	}
	v.dec.PutType(n, ret)
	v.dec.PutIsLValue(n, false)
	return ret
}
