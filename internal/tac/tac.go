// Package tac implements the three-address code model CodeGenVisitor
// emits: instructions, instruction lists, subroutines and the final
// program value, per spec.md §3's "TAC model" and §6's output syntax.
//
// Grounded on the "Value defines a three-address code operand" doc comment
// of _examples/hhramberg-go-vslc/src/ir/lir/lir.go, flattened from that
// package's register-allocated SSA Value interface down to the spec's
// unlimited-temporary, no-register-allocation model: every instruction
// here is a fixed opcode plus up to three bare operand strings, printed
// with the Ins1/Ins2/Ins3 helpers of
// _examples/hhramberg-go-vslc/src/util/io.go.
package tac

import (
	"fmt"
	"strings"
)

// Op is one of the fixed opcodes of spec.md §3.
type Op string

const (
	ADD  Op = "ADD"
	SUB  Op = "SUB"
	MUL  Op = "MUL"
	DIV  Op = "DIV"
	NEG  Op = "NEG"
	FADD Op = "FADD"
	FSUB Op = "FSUB"
	FMUL Op = "FMUL"
	FDIV Op = "FDIV"
	FNEG Op = "FNEG"
	FLOAT Op = "FLOAT"

	ILOAD  Op = "ILOAD"
	FLOAD  Op = "FLOAD"
	CHLOAD Op = "CHLOAD"
	LOAD   Op = "LOAD"
	LOADX  Op = "LOADX"
	XLOAD  Op = "XLOAD"
	ALOAD  Op = "ALOAD"

	EQ  Op = "EQ"
	LT  Op = "LT"
	LE  Op = "LE"
	FEQ Op = "FEQ"
	FLT Op = "FLT"
	FLE Op = "FLE"

	AND Op = "AND"
	OR  Op = "OR"
	NOT Op = "NOT"

	LABEL Op = "LABEL"
	UJUMP Op = "UJUMP"
	FJUMP Op = "FJUMP"

	READI  Op = "READI"
	READF  Op = "READF"
	READC  Op = "READC"
	WRITEI Op = "WRITEI"
	WRITEF Op = "WRITEF"
	WRITEC Op = "WRITEC"
	WRITES Op = "WRITES"

	PUSH Op = "PUSH"
	POP  Op = "POP"
	CALL Op = "CALL"

	RETURN Op = "RETURN"
)

// Instruction is one opcode with 0-3 operands (temporaries "%n", literals,
// labels, or variable names).
type Instruction struct {
	Op   Op
	Args []string
}

func ins(op Op, args ...string) Instruction { return Instruction{Op: op, Args: args} }

func ADDi(d, a, b string) Instruction    { return ins(ADD, d, a, b) }
func SUBi(d, a, b string) Instruction    { return ins(SUB, d, a, b) }
func MULi(d, a, b string) Instruction    { return ins(MUL, d, a, b) }
func DIVi(d, a, b string) Instruction    { return ins(DIV, d, a, b) }
func NEGi(d, a string) Instruction       { return ins(NEG, d, a) }
func FADDi(d, a, b string) Instruction   { return ins(FADD, d, a, b) }
func FSUBi(d, a, b string) Instruction   { return ins(FSUB, d, a, b) }
func FMULi(d, a, b string) Instruction   { return ins(FMUL, d, a, b) }
func FDIVi(d, a, b string) Instruction   { return ins(FDIV, d, a, b) }
func FNEGi(d, a string) Instruction      { return ins(FNEG, d, a) }
func FLOATi(d, a string) Instruction     { return ins(FLOAT, d, a) }
func ILOADi(d, v string) Instruction     { return ins(ILOAD, d, v) }
func FLOADi(d, v string) Instruction     { return ins(FLOAD, d, v) }
func CHLOADi(d, v string) Instruction    { return ins(CHLOAD, d, v) }
func LOADi(d, a string) Instruction      { return ins(LOAD, d, a) }
func LOADXi(d, base, idx string) Instruction { return ins(LOADX, d, base, idx) }
func XLOADi(base, idx, v string) Instruction { return ins(XLOAD, base, idx, v) }
func ALOADi(d, a string) Instruction     { return ins(ALOAD, d, a) }
func EQi(d, a, b string) Instruction     { return ins(EQ, d, a, b) }
func LTi(d, a, b string) Instruction     { return ins(LT, d, a, b) }
func LEi(d, a, b string) Instruction     { return ins(LE, d, a, b) }
func FEQi(d, a, b string) Instruction    { return ins(FEQ, d, a, b) }
func FLTi(d, a, b string) Instruction    { return ins(FLT, d, a, b) }
func FLEi(d, a, b string) Instruction    { return ins(FLE, d, a, b) }
func ANDi(d, a, b string) Instruction    { return ins(AND, d, a, b) }
func ORi(d, a, b string) Instruction     { return ins(OR, d, a, b) }
func NOTi(d, a string) Instruction       { return ins(NOT, d, a) }
func LABELi(name string) Instruction     { return ins(LABEL, name) }
func UJUMPi(name string) Instruction     { return ins(UJUMP, name) }
func FJUMPi(cond, name string) Instruction { return ins(FJUMP, cond, name) }
func READIi(d string) Instruction        { return ins(READI, d) }
func READFi(d string) Instruction        { return ins(READF, d) }
func READCi(d string) Instruction        { return ins(READC, d) }
func WRITEIi(a string) Instruction       { return ins(WRITEI, a) }
func WRITEFi(a string) Instruction       { return ins(WRITEF, a) }
func WRITECi(a string) Instruction       { return ins(WRITEC, a) }
func WRITESi(lit string) Instruction     { return ins(WRITES, lit) }
func PUSHi(a string) Instruction         { return ins(PUSH, a) }
func POPi(a string) Instruction          { return ins(POP, a) }
func CALLi(name string) Instruction      { return ins(CALL, name) }
func RETURNi() Instruction               { return ins(RETURN) }

// String renders an instruction per spec.md §6: opcode and operands
// separated by spaces; a LABEL is printed as "name:".
func (i Instruction) String() string {
	if i.Op == LABEL {
		return i.Args[0] + ":"
	}
	parts := append([]string{string(i.Op)}, i.Args...)
	return strings.Join(parts, " ")
}

// InstructionList is an ordered instruction sequence. Concat stands in for the
// source's "||" concatenation operator and never mutates either operand.
type InstructionList []Instruction

// Concat returns a new InstructionList holding l's instructions followed by more's.
func (l InstructionList) Concat(more InstructionList) InstructionList {
	out := make(InstructionList, 0, len(l)+len(more))
	out = append(out, l...)
	out = append(out, more...)
	return out
}

// Append is sugar for l.Concat(InstructionList{instructions...}).
func (l InstructionList) Append(instructions ...Instruction) InstructionList {
	out := make(InstructionList, 0, len(l)+len(instructions))
	out = append(out, l...)
	out = append(out, instructions...)
	return out
}

// Var is a local variable slot, sized by types.Mgr.SizeOf.
type Var struct {
	Name string
	Size int
}

// Subroutine is one compiled function: name, ordered parameters, ordered
// locals (each carrying a byte size), and its instruction list.
type Subroutine struct {
	Name   string
	Params []string
	Locals []Var
	Code   InstructionList
}

// Program is the final emitted value: every subroutine, in source order.
type Program struct {
	Subroutines []Subroutine
}

// String renders the whole program in the textual syntax of spec.md §6:
// one subroutine per function, a "# <name>" header with parameter list,
// local variable declarations with sizes, then one instruction per line.
func (p Program) String() string {
	var b strings.Builder
	for _, s := range p.Subroutines {
		fmt.Fprintf(&b, "# %s %s\n", s.Name, strings.Join(s.Params, " "))
		for _, v := range s.Locals {
			fmt.Fprintf(&b, "var %s %d\n", v.Name, v.Size)
		}
		for _, ins := range s.Code {
			fmt.Fprintln(&b, ins.String())
		}
	}
	return b.String()
}
