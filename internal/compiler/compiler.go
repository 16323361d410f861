// Package compiler wires the four passes together: parse, SymbolsVisitor,
// TypeCheckVisitor, CodeGenVisitor, matching the pipeline shape of
// _examples/hhramberg-go-vslc/src/main.go's run function, reduced to this
// compiler's single-threaded, four-stage pipeline.
package compiler

import (
	"fmt"
	"io"

	"aslc/internal/ast"
	"aslc/internal/codegen"
	"aslc/internal/decor"
	"aslc/internal/diag"
	"aslc/internal/lexer"
	"aslc/internal/parser"
	"aslc/internal/symbols"
	"aslc/internal/symtab"
	"aslc/internal/typecheck"
	"aslc/internal/types"
)

// Options selects which intermediate artefacts to emit, mirroring the
// compiler's flag surface (token stream, parse tree, symbol dump,
// decorated tree, TAC).
type Options struct {
	Tokens    bool
	Tree      bool
	Symbols   bool
	Decorated bool
	Verbose   bool
}

// Result carries the compilation's output text (whichever artefact was
// requested, TAC by default) and whether it succeeded.
type Result struct {
	Output string
	OK     bool
}

// Run compiles src end to end, writing diagnostics to log at the end of
// each pass. opt.Verbose is accepted but has no effect on what is
// written.
func Run(src string, opt Options, log io.Writer) Result {
	if opt.Tokens {
		return Result{Output: dumpTokens(src), OK: true}
	}

	tree, syntaxErrs := parser.Parse(src)
	if len(syntaxErrs) > 0 {
		for _, e := range syntaxErrs {
			fmt.Fprintln(log, e)
		}
		return Result{OK: false}
	}
	if opt.Tree {
		return Result{Output: tree.Dump(0), OK: true}
	}

	tm := types.NewMgr()
	st := symtab.NewTable()
	dt := decor.NewTable()
	var errs diag.Sink

	symbols.New(tm, st, dt, &errs).Run(tree)
	errs.Flush(log)
	if opt.Symbols {
		return Result{Output: dumpSymbols(tree, st, dt), OK: errs.Total() == 0}
	}

	typecheck.New(tm, st, dt, &errs).Run(tree)
	errs.Flush(log)
	if opt.Decorated {
		// The same dump as opt.Tree, taken after pass 2; it does not show
		// the type or lvalue decorations.
		return Result{Output: tree.Dump(0), OK: errs.Total() == 0}
	}

	if errs.Total() > 0 {
		// spec.md §7: "if any error was emitted across passes 1-2, pass 3
		// is skipped and the program is reported failed."
		return Result{OK: false}
	}

	program := codegen.New(tm, st, dt).Run(tree)
	return Result{Output: program.String(), OK: true}
}

func dumpTokens(src string) string {
	l := lexer.New(src)
	var out string
	for {
		tok := l.Next()
		out += tok.String() + "\n"
		if tok.Type == lexer.EOF || tok.Type == lexer.ERROR {
			break
		}
	}
	return out
}

func dumpSymbols(tree *ast.Node, st *symtab.Table, dt *decor.Table) string {
	var out string
	sid := dt.GetScope(tree)
	out += dumpScope(st, sid, 0)
	for _, fn := range tree.Children {
		fsid := dt.GetScope(fn)
		out += dumpScope(st, fsid, 1)
	}
	return out
}

func dumpScope(st *symtab.Table, sid symtab.ScopeId, depth int) string {
	pad := ""
	for i := 0; i < depth; i++ {
		pad += "  "
	}
	var out string
	for _, name := range st.Names(sid) {
		e, _ := st.Get(sid, name)
		out += fmt.Sprintf("%s%s : %v (%v)\n", pad, e.Name, e.Type, e.Kind)
	}
	return out
}
