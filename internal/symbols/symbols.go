// Package symbols implements SymbolsVisitor, the first semantic pass:
// it builds the scope tree and binds every declared name, detecting
// redeclaration and checking that a program declares exactly one
// well-formed main function. It never resolves a use site — that is
// internal/typecheck's job.
//
// Grounded on original_source/.../TypeCheckVisitor.cpp's visitProgram and
// visitFunction (which interleave scope push/pop with symbol insertion
// the same way, even though that file's name suggests pass 2 — the
// reference implementation merges passes 1 and 2 into one visitor; this
// repository keeps them split per spec.md §2's dependency-ordered
// component list).
package symbols

import (
	"aslc/internal/ast"
	"aslc/internal/decor"
	"aslc/internal/diag"
	"aslc/internal/symtab"
	"aslc/internal/types"
)

// Visitor runs pass 1 over a parse tree.
type Visitor struct {
	types *types.Mgr
	syms  *symtab.Table
	dec   *decor.Table
	errs  *diag.Sink
}

// New creates a pass-1 visitor sharing the given long-lived tables.
func New(tm *types.Mgr, st *symtab.Table, dt *decor.Table, errs *diag.Sink) *Visitor {
	return &Visitor{types: tm, syms: st, dec: dt, errs: errs}
}

// Run walks the program node, recording the global scope on it and one
// function scope per function, then checks the "exactly one well-formed
// main" rule.
func (v *Visitor) Run(program *ast.Node) {
	sid := v.syms.CurrentScope() // global scope, already current on a fresh Table
	v.dec.PutScope(program, sid)
	for _, fn := range program.Children {
		v.visitFunction(fn)
	}
	if v.syms.NoMainProperlyDeclared() {
		v.errs.Addf(program.Line, program.Pos, "program does not declare a proper main function")
	}
}

func (v *Visitor) visitFunction(fn *ast.Node) {
	name := fn.Data.(string)
	params := fn.Children[0]
	rest := fn.Children[1:]
	var retTypeNode *ast.Node
	if len(rest) == 3 {
		retTypeNode = rest[0]
		rest = rest[1:]
	}
	decls, stmts := rest[0], rest[1]
	_ = stmts

	paramTypes := make([]types.TypeId, 0, len(params.Children))
	for _, p := range params.Children {
		paramTypes = append(paramTypes, v.resolveType(p.Children[0]))
	}
	retType := v.types.Void()
	if retTypeNode != nil {
		retType = v.resolveType(retTypeNode)
	}
	funcTy := v.types.Function(paramTypes, retType)

	global := v.syms.CurrentScope()
	sid := v.syms.PushNewScope()
	v.dec.PutScope(fn, sid)

	if !v.syms.AddSymbolIn(global, name, symtab.KindFunction, funcTy) {
		v.errs.Addf(fn.Line, fn.Pos, "function %q already declared", name)
	}
	if name == "main" && len(paramTypes) == 0 && v.types.IsVoid(retType) {
		v.syms.MarkMainDeclared()
	}

	for i, p := range params.Children {
		pname := p.Data.(string)
		if !v.syms.AddSymbol(pname, symtab.KindParameter, paramTypes[i]) {
			v.errs.Addf(p.Line, p.Pos, "parameter %q already declared", pname)
		}
	}
	for _, d := range decls.Children {
		dname := d.Data.(string)
		dty := v.resolveType(d.Children[0])
		if !v.syms.AddSymbol(dname, symtab.KindVariable, dty) {
			v.errs.Addf(d.Line, d.Pos, "variable %q already declared", dname)
		}
	}

	v.syms.PopScope()
}

// resolveType computes a TypeId for a TYPE/BASIC_TYPE/ARRAY_TYPE node and
// decorates it, per spec.md §3 ("Type is attached to ... type/basic_type
// /array_type nodes").
func (v *Visitor) resolveType(n *ast.Node) types.TypeId {
	var ty types.TypeId
	switch n.Typ {
	case ast.BASIC_TYPE:
		ty = v.basicType(n.Data.(string))
	case ast.ARRAY_TYPE:
		size := n.Data.(int)
		elem := v.basicType(n.Children[0].Data.(string))
		if !v.types.IsPrimitive(elem) {
			v.errs.Addf(n.Line, n.Pos, "array element type must be primitive")
			ty = v.types.Error()
			break
		}
		if size <= 0 {
			v.errs.Addf(n.Line, n.Pos, "array size must be positive")
			ty = v.types.Error()
			break
		}
		ty = v.types.Array(elem, size)
	default:
		ty = v.types.Error()
	}
	v.dec.PutType(n, ty)
	return ty
}

func (v *Visitor) basicType(name string) types.TypeId {
	switch name {
	case "int":
		return v.types.Integer()
	case "float":
		return v.types.Float()
	case "bool":
		return v.types.Boolean()
	case "char":
		return v.types.Character()
	default:
		return v.types.Error()
	}
}
