// Package parser implements a hand-written recursive-descent parser that
// turns a lexer.Lexer's token stream into an internal/ast.Node tree.
//
// There is no grammar file to generate a table-driven parser from (the
// original implementation's AslParser.cpp is itself ANTLR-generated from
// a grammar not included in the retrieved sources), and spec.md's
// implementation budget explicitly excludes generated parser tables from
// its line count — so a hand-rolled descent parser is written in the
// teacher's manual style rather than wiring goyacc, which would need a
// grammar file that does not exist here. Node shapes mirror
// original_source/.../AslParser.cpp's productions: program, function,
// declarations, variable_decl, parameters, statements, one node per
// statement kind, left_expr, ident, array access, arithmetic,
// relational, logical, unary, literal, function-call expression.
package parser

import (
	"fmt"
	"strconv"

	"aslc/internal/ast"
	"aslc/internal/diag"
	"aslc/internal/lexer"
)

// Parser consumes a token stream and builds a parse tree. A Parser is
// single-use: create one per source file with New.
type Parser struct {
	lex  *lexer.Lexer
	tok  lexer.Token
	errs []error
	// diags collects diagnostics triggered by an underlying Go error
	// (currently just a malformed array-size literal), so the cause is
	// preserved for %+v reporting per spec.md §7, instead of being
	// discarded the way a plain errorf call would.
	diags diag.Sink
}

// New creates a Parser over src, priming the first token.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.advance()
	return p
}

// Errors returns every syntax error accumulated while parsing.
func (p *Parser) Errors() []error { return p.errs }

func (p *Parser) advance() {
	p.tok = p.lex.Next()
	if p.tok.Type == lexer.ERROR {
		p.errorf("%s", p.tok.Val)
	}
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errs = append(p.errs, fmt.Errorf("L%d:%d: %s", p.tok.Line, p.tok.Pos, fmt.Sprintf(format, args...)))
}

func (p *Parser) at(tt lexer.TokenType) bool { return p.tok.Type == tt }

// expect consumes the current token if it has type tt. Otherwise it
// reports a syntax error and still consumes the offending token (unless
// it is EOF), returning that token.
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	if p.tok.Type != tt {
		p.errorf("expected %s, found %s", tt, p.tok.Type)
		tok := p.tok
		if p.tok.Type != lexer.EOF {
			p.advance()
		}
		return tok
	}
	tok := p.tok
	p.advance()
	return tok
}

// Parse parses a whole program: zero or more functions, returning the
// root node and any syntax errors accumulated.
func Parse(src string) (*ast.Node, []error) {
	p := New(src)
	prog := p.parseProgram()
	for _, d := range p.diags.All() {
		p.errs = append(p.errs, d)
	}
	return prog, p.errs
}

func (p *Parser) parseProgram() *ast.Node {
	line, pos := p.tok.Line, p.tok.Pos
	var functions []*ast.Node
	for p.at(lexer.FUNC) {
		functions = append(functions, p.parseFunction())
	}
	if !p.at(lexer.EOF) {
		p.errorf("expected function or end of file, found %s", p.tok.Type)
	}
	return ast.New(ast.PROGRAM, line, pos, nil, functions...)
}

func (p *Parser) parseFunction() *ast.Node {
	line, pos := p.tok.Line, p.tok.Pos
	p.expect(lexer.FUNC)
	name := p.expect(lexer.IDENT).Val
	params := p.parseParameters()
	var retType *ast.Node
	if p.at(lexer.COLON) {
		p.advance()
		retType = p.parseType()
	}
	decls := p.parseDeclarations()
	stmts := p.parseStatements()
	p.expect(lexer.ENDFUNC)
	children := []*ast.Node{params}
	if retType != nil {
		children = append(children, retType)
	}
	children = append(children, decls, stmts)
	return ast.New(ast.FUNCTION, line, pos, name, children...)
}

// parseParameters parses "( [ID : type (, ID : type)*] )". Each
// parameter becomes a VARIABLE_DECL node carrying its name, matching the
// shape variable declarations use so SymbolsVisitor can treat both
// uniformly when it computes a TypeId per entry.
func (p *Parser) parseParameters() *ast.Node {
	line, pos := p.tok.Line, p.tok.Pos
	p.expect(lexer.LPAREN)
	var decls []*ast.Node
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		nameTok := p.expect(lexer.IDENT)
		p.expect(lexer.COLON)
		ty := p.parseType()
		decls = append(decls, ast.New(ast.VARIABLE_DECL, nameTok.Line, nameTok.Pos, nameTok.Val, ty))
		if p.at(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return ast.New(ast.PARAMETERS, line, pos, nil, decls...)
}

// parseDeclarations parses "(var ID (, ID)* : type ;)*".
func (p *Parser) parseDeclarations() *ast.Node {
	line, pos := p.tok.Line, p.tok.Pos
	var decls []*ast.Node
	for p.at(lexer.VAR) {
		p.advance()
		var names []lexer.Token
		names = append(names, p.expect(lexer.IDENT))
		for p.at(lexer.COMMA) {
			p.advance()
			names = append(names, p.expect(lexer.IDENT))
		}
		p.expect(lexer.COLON)
		ty := p.parseType()
		for _, n := range names {
			tyCopy := *ty
			decls = append(decls, ast.New(ast.VARIABLE_DECL, n.Line, n.Pos, n.Val, &tyCopy))
		}
		p.expect(lexer.SEMI)
	}
	return ast.New(ast.DECLARATIONS, line, pos, nil, decls...)
}

// parseType parses a basic_type or "array [ size ] of basic_type".
func (p *Parser) parseType() *ast.Node {
	line, pos := p.tok.Line, p.tok.Pos
	if p.at(lexer.ARRAY) {
		p.advance()
		p.expect(lexer.LBRACKET)
		sizeTok := p.expect(lexer.INT_LIT)
		size, err := strconv.Atoi(sizeTok.Val)
		if err != nil {
			p.diags.Wrap(sizeTok.Line, sizeTok.Pos, err, fmt.Sprintf("invalid array size %q", sizeTok.Val))
		}
		p.expect(lexer.RBRACKET)
		p.expect(lexer.OF)
		elem := p.parseBasicType()
		return ast.New(ast.ARRAY_TYPE, line, pos, size, elem)
	}
	return p.parseBasicType()
}

func (p *Parser) parseBasicType() *ast.Node {
	line, pos := p.tok.Line, p.tok.Pos
	switch p.tok.Type {
	case lexer.INT, lexer.FLOAT, lexer.BOOL, lexer.CHAR:
		name := p.tok.Val
		p.advance()
		return ast.New(ast.BASIC_TYPE, line, pos, name)
	default:
		p.errorf("expected a type, found %s", p.tok.Type)
		return ast.New(ast.BASIC_TYPE, line, pos, "int")
	}
}

// parseStatements parses statements until a block terminator keyword
// (endfunc/endif/else/endwhile) or end of file.
func (p *Parser) parseStatements() *ast.Node {
	line, pos := p.tok.Line, p.tok.Pos
	var stmts []*ast.Node
	for !p.atBlockEnd() {
		s := p.parseStatement()
		if s == nil {
			break
		}
		stmts = append(stmts, s)
	}
	return ast.New(ast.STATEMENTS, line, pos, nil, stmts...)
}

func (p *Parser) atBlockEnd() bool {
	switch p.tok.Type {
	case lexer.ENDFUNC, lexer.ENDIF, lexer.ELSE, lexer.ENDWHILE, lexer.EOF:
		return true
	default:
		return false
	}
}

func (p *Parser) parseStatement() *ast.Node {
	switch p.tok.Type {
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.READ:
		return p.parseReadStmt()
	case lexer.WRITE:
		return p.parseWriteStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.IDENT:
		return p.parseAssignOrCallStmt()
	default:
		p.errorf("unexpected token %s at start of statement", p.tok.Type)
		p.advance()
		return nil
	}
}

func (p *Parser) parseIfStmt() *ast.Node {
	line, pos := p.tok.Line, p.tok.Pos
	p.advance()
	cond := p.parseExpr()
	p.expect(lexer.THEN)
	then := p.parseStatements()
	children := []*ast.Node{cond, then}
	if p.at(lexer.ELSE) {
		p.advance()
		els := p.parseStatements()
		children = append(children, els)
	}
	p.expect(lexer.ENDIF)
	return ast.New(ast.IF_STMT, line, pos, nil, children...)
}

func (p *Parser) parseWhileStmt() *ast.Node {
	line, pos := p.tok.Line, p.tok.Pos
	p.advance()
	cond := p.parseExpr()
	p.expect(lexer.DO)
	body := p.parseStatements()
	p.expect(lexer.ENDWHILE)
	return ast.New(ast.WHILE_STMT, line, pos, nil, cond, body)
}

func (p *Parser) parseReadStmt() *ast.Node {
	line, pos := p.tok.Line, p.tok.Pos
	p.advance()
	target := p.parseLeftExpr()
	p.expect(lexer.SEMI)
	return ast.New(ast.READ_STMT, line, pos, nil, target)
}

func (p *Parser) parseWriteStmt() *ast.Node {
	line, pos := p.tok.Line, p.tok.Pos
	p.advance()
	// spec.md §9: "write" has two distinct grammar productions, a string
	// literal form and an expression form; they must not be conflated.
	if p.at(lexer.STRING_LIT) {
		lit := p.tok.Val
		p.advance()
		p.expect(lexer.SEMI)
		return ast.New(ast.WRITE_STRING_STMT, line, pos, lit)
	}
	e := p.parseExpr()
	p.expect(lexer.SEMI)
	return ast.New(ast.WRITE_EXPR_STMT, line, pos, nil, e)
}

func (p *Parser) parseReturnStmt() *ast.Node {
	line, pos := p.tok.Line, p.tok.Pos
	p.advance()
	var children []*ast.Node
	if !p.at(lexer.SEMI) {
		children = append(children, p.parseExpr())
	}
	p.expect(lexer.SEMI)
	return ast.New(ast.RETURN_STMT, line, pos, nil, children...)
}

// parseAssignOrCallStmt disambiguates "ident := expr;" and
// "ident[expr] := expr;" (assignment) from "ident(args);" (a procedure
// call used as a statement) by looking one token ahead after the name.
func (p *Parser) parseAssignOrCallStmt() *ast.Node {
	line, pos := p.tok.Line, p.tok.Pos
	name := p.tok.Val
	p.advance()
	if p.at(lexer.LPAREN) {
		args := p.parseArgs()
		p.expect(lexer.SEMI)
		return ast.New(ast.PROC_CALL_STMT, line, pos, name, args)
	}
	target := p.parseLeftExprTail(line, pos, name)
	p.expect(lexer.ASSIGN)
	rhs := p.parseExpr()
	p.expect(lexer.SEMI)
	return ast.New(ast.ASSIGN_STMT, line, pos, nil, target, rhs)
}

// parseLeftExpr parses an lvalue position: a bare identifier or an
// identifier with a single index, used by read statements. Assignment,
// whose leading identifier the caller's one-token lookahead has already
// consumed, calls parseLeftExprTail directly.
func (p *Parser) parseLeftExpr() *ast.Node {
	line, pos := p.tok.Line, p.tok.Pos
	name := p.expect(lexer.IDENT).Val
	return p.parseLeftExprTail(line, pos, name)
}

func (p *Parser) parseLeftExprTail(line, pos int, name string) *ast.Node {
	ident := ast.New(ast.IDENT, line, pos, name)
	if p.at(lexer.LBRACKET) {
		p.advance()
		idx := p.parseExpr()
		p.expect(lexer.RBRACKET)
		return ast.New(ast.LEFT_EXPR, line, pos, name, ident, idx)
	}
	return ast.New(ast.LEFT_EXPR, line, pos, name, ident)
}

func (p *Parser) parseArgs() *ast.Node {
	line, pos := p.tok.Line, p.tok.Pos
	p.expect(lexer.LPAREN)
	var args []*ast.Node
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		args = append(args, p.parseExpr())
		if p.at(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return ast.New(ast.LIST_EXPR, line, pos, nil, args...)
}

// ---------------------------
// ----- Expression grammar ---
// ---------------------------
//
// expr        := logicalOr
// logicalOr   := logicalAnd ( "or" logicalAnd )*
// logicalAnd  := relational ( "and" relational )*
// relational  := additive ( relOp additive )?
// additive    := multiplicative ( ("+"|"-") multiplicative )*
// multiplicative := unary ( ("*"|"/"|"%") unary )*
// unary       := ("not"|"+"|"-") unary | primary
// primary     := literal | "(" expr ")" | identOrCallOrIndex

func (p *Parser) parseExpr() *ast.Node { return p.parseLogicalOr() }

func (p *Parser) parseLogicalOr() *ast.Node {
	left := p.parseLogicalAnd()
	for p.at(lexer.OR) {
		line, pos := p.tok.Line, p.tok.Pos
		p.advance()
		right := p.parseLogicalAnd()
		left = ast.New(ast.LOGICAL, line, pos, "or", left, right)
	}
	return left
}

func (p *Parser) parseLogicalAnd() *ast.Node {
	left := p.parseRelational()
	for p.at(lexer.AND) {
		line, pos := p.tok.Line, p.tok.Pos
		p.advance()
		right := p.parseRelational()
		left = ast.New(ast.LOGICAL, line, pos, "and", left, right)
	}
	return left
}

var relOps = map[lexer.TokenType]string{
	lexer.EQ: "==", lexer.NEQ: "!=", lexer.LT: "<", lexer.LE: "<=",
	lexer.GT: ">", lexer.GE: ">=",
}

func (p *Parser) parseRelational() *ast.Node {
	left := p.parseAdditive()
	if op, ok := relOps[p.tok.Type]; ok {
		line, pos := p.tok.Line, p.tok.Pos
		p.advance()
		right := p.parseAdditive()
		return ast.New(ast.RELATIONAL, line, pos, op, left, right)
	}
	return left
}

func (p *Parser) parseAdditive() *ast.Node {
	left := p.parseMultiplicative()
	for p.at(lexer.PLUS) || p.at(lexer.MINUS) {
		op := "+"
		if p.tok.Type == lexer.MINUS {
			op = "-"
		}
		line, pos := p.tok.Line, p.tok.Pos
		p.advance()
		right := p.parseMultiplicative()
		left = ast.New(ast.ARITHMETIC, line, pos, op, left, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() *ast.Node {
	left := p.parseUnary()
	for p.at(lexer.STAR) || p.at(lexer.SLASH) || p.at(lexer.PERCENT) {
		var op string
		switch p.tok.Type {
		case lexer.STAR:
			op = "*"
		case lexer.SLASH:
			op = "/"
		case lexer.PERCENT:
			op = "%"
		}
		line, pos := p.tok.Line, p.tok.Pos
		p.advance()
		right := p.parseUnary()
		left = ast.New(ast.ARITHMETIC, line, pos, op, left, right)
	}
	return left
}

func (p *Parser) parseUnary() *ast.Node {
	switch p.tok.Type {
	case lexer.NOT:
		line, pos := p.tok.Line, p.tok.Pos
		p.advance()
		operand := p.parseUnary()
		return ast.New(ast.UNARY_OP, line, pos, "not", operand)
	case lexer.PLUS, lexer.MINUS:
		op := "+"
		if p.tok.Type == lexer.MINUS {
			op = "-"
		}
		line, pos := p.tok.Line, p.tok.Pos
		p.advance()
		operand := p.parseUnary()
		return ast.New(ast.UNARY_OP, line, pos, op, operand)
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() *ast.Node {
	line, pos := p.tok.Line, p.tok.Pos
	switch p.tok.Type {
	case lexer.INT_LIT:
		v := p.tok.Val
		p.advance()
		return ast.New(ast.INT_LIT, line, pos, v)
	case lexer.FLOAT_LIT:
		v := p.tok.Val
		p.advance()
		return ast.New(ast.FLOAT_LIT, line, pos, v)
	case lexer.CHAR_LIT:
		v := p.tok.Val
		p.advance()
		return ast.New(ast.CHAR_LIT, line, pos, v)
	case lexer.TRUE:
		p.advance()
		return ast.New(ast.BOOL_LIT, line, pos, "true")
	case lexer.FALSE:
		p.advance()
		return ast.New(ast.BOOL_LIT, line, pos, "false")
	case lexer.LPAREN:
		p.advance()
		e := p.parseExpr()
		p.expect(lexer.RPAREN)
		return ast.New(ast.PARENS, line, pos, nil, e)
	case lexer.IDENT:
		name := p.tok.Val
		p.advance()
		switch p.tok.Type {
		case lexer.LPAREN:
			args := p.parseArgs()
			return ast.New(ast.EXPR_FUNC, line, pos, name, args)
		case lexer.LBRACKET:
			p.advance()
			idx := p.parseExpr()
			p.expect(lexer.RBRACKET)
			ident := ast.New(ast.IDENT, line, pos, name)
			return ast.New(ast.ARRAY_ACCESS, line, pos, name, ident, idx)
		default:
			return ast.New(ast.EXPR_IDENT, line, pos, name, ast.New(ast.IDENT, line, pos, name))
		}
	default:
		p.errorf("unexpected token %s in expression", p.tok.Type)
		tok := p.tok
		if p.tok.Type != lexer.EOF {
			p.advance()
		}
		return ast.New(ast.EXPR_IDENT, tok.Line, tok.Pos, "", ast.New(ast.IDENT, tok.Line, tok.Pos, ""))
	}
}
