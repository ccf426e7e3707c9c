package parser

import (
	"github.com/dfrunza/p4c/internal/ast"
	"github.com/dfrunza/p4c/internal/token"
)

// startsStatementOrDecl mirrors token_is_statementOrDeclaration: a
// typeRef start, `const`, or anything token_is_statement accepts.
func (p *parser) startsStatementOrDecl() bool {
	switch p.tok.Kind {
	case token.KW_CONST, token.IDENT, token.DOT, token.KW_IF, token.SEMICOLON,
		token.LBRACE, token.KW_EXIT, token.KW_RETURN, token.KW_SWITCH:
		return true
	default:
		return p.startsTypeRef()
	}
}

// parseBlockStatement parses `{ <statementOrDeclList> }`.
func (p *parser) parseBlockStatement() ast.Ref {
	pos := p.expect(token.LBRACE)
	list := p.parseStatementOrDeclList()
	p.expect(token.RBRACE)
	return p.tree.New(ast.KindBlockStatement, pos, &ast.BlockStatementData{Statements: list})
}

func (p *parser) parseStatementOrDeclList() ast.Ref {
	list, lb := p.tree.NewList(ast.KindStatementList, p.tok.Pos)
	for p.startsStatementOrDecl() {
		lb.Append(p.parseStatementOrDeclaration())
	}
	return list
}

// parseStatementOrDeclaration is grounded on parse_statementOrDeclaration:
// a typeRef-starting token commits to either an instantiation (followed
// by '('), a local variable declaration (followed by a name), or a
// direct-application statement (anything else); `const` commits to a
// local constant declaration; everything else falls through to
// parseStatement.
func (p *parser) parseStatementOrDeclaration() ast.Ref {
	if p.startsTypeRef() {
		ty := p.parseTypeRef()
		switch {
		case p.tok.Kind == token.LPAREN:
			return p.parseInstantiation(ty)
		case p.tok.Kind == token.IDENT || p.tok.Kind == token.TYPE_IDENT:
			return p.parseVariableDeclTail(ty)
		default:
			return p.parseDirectApplication(ty)
		}
	}
	if p.tok.Kind == token.KW_CONST {
		// The source's is_const flag has no home on VariableDeclData (no
		// downstream pass checks mutability); `const` is consumed here
		// purely as a syntax accept and otherwise has no effect.
		p.next()
		ty := p.parseTypeRef()
		return p.parseVariableDeclTail(ty)
	}
	return p.parseStatement()
}

// parseVariableDeclTail parses the `<name> [= <init>];` tail of a local
// variable declaration, given its already-parsed type.
func (p *parser) parseVariableDeclTail(ty ast.Ref) ast.Ref {
	pos := p.tok.Pos
	name := p.parseName()
	init := ast.NoRef
	if p.accept(token.ASSIGN) {
		init = p.parseExpr(1)
	}
	p.expect(token.SEMICOLON)
	return p.tree.New(ast.KindVariableDecl, pos, &ast.VariableDeclData{Type: ty, Name: name, Init: init})
}

// parseStatement is grounded on parse_statement(0): no type-ref branch
// is carried in from a caller here, but a TYPE_IDENT still commits to a
// direct-application (it parses its own typeRef), since bare statement
// positions (if/else bodies, switch-case bodies) never admit a
// variable declaration or instantiation — only parseStatementOrDeclaration
// does.
func (p *parser) parseStatement() ast.Ref {
	switch p.tok.Kind {
	case token.TYPE_IDENT:
		ty := p.parseTypeRef()
		return p.parseDirectApplication(ty)
	case token.IDENT, token.DOT:
		return p.parseAssignmentOrMethodCallStatement()
	case token.KW_IF:
		return p.parseIfStmt()
	case token.SEMICOLON:
		pos := p.tok.Pos
		p.next()
		return p.tree.New(ast.KindEmptyStmt, pos, nil)
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.KW_EXIT:
		pos := p.tok.Pos
		p.next()
		p.expect(token.SEMICOLON)
		return p.tree.New(ast.KindExitStmt, pos, nil)
	case token.KW_RETURN:
		return p.parseReturnStmt()
	case token.KW_SWITCH:
		return p.parseSwitchStmt()
	default:
		p.errorExpected(p.tok.Pos, "statement")
		return ast.NoRef
	}
}

// parseLValue parses a name followed by any number of `.member` or
// `[index]` selectors (spec §4.3's assignment/method-call target);
// unlike parsePostfix, it never consumes a call — the caller decides
// whether the following '(' turns the whole lvalue into a method-call
// statement or an assignment follows instead.
func (p *parser) parseLValue() ast.Ref {
	p.accept(token.DOT)
	base := p.parseName()
	for {
		pos := p.tok.Pos
		switch p.tok.Kind {
		case token.DOT:
			p.next()
			if p.tok.Kind != token.IDENT && p.tok.Kind != token.TYPE_IDENT {
				p.errorExpected(p.tok.Pos, "member name")
			}
			name := p.tok.Lexeme
			p.next()
			base = p.tree.New(ast.KindMemberExpr, pos, &ast.MemberExprData{Base: base, Name: name})
		case token.LBRACKET:
			p.next()
			hi := p.parseExpr(1)
			if p.accept(token.COLON) {
				lo := p.parseExpr(1)
				p.expect(token.RBRACKET)
				base = p.tree.New(ast.KindSliceExpr, pos, &ast.SliceExprData{Base: base, Hi: hi, Lo: lo})
			} else {
				p.expect(token.RBRACKET)
				base = p.tree.New(ast.KindIndexExpr, pos, &ast.IndexExprData{Base: base, Index: hi})
			}
		default:
			return base
		}
	}
}

// parseAssignmentOrMethodCallStatement parses an lvalue and then either
// a call's argument list or an assignment's right-hand side.
func (p *parser) parseAssignmentOrMethodCallStatement() ast.Ref {
	pos := p.tok.Pos
	lhs := p.parseLValue()
	switch p.tok.Kind {
	case token.LPAREN:
		args := p.parseArgumentList()
		p.expect(token.SEMICOLON)
		call := p.tree.New(ast.KindCallExpr, pos, &ast.CallExprData{Callee: lhs, Args: args})
		return p.tree.New(ast.KindExprStmt, pos, &ast.ExprStmtData{Expr: call})
	case token.ASSIGN:
		p.next()
		rhs := p.parseExpr(1)
		p.expect(token.SEMICOLON)
		return p.tree.New(ast.KindAssignmentStmt, pos, &ast.AssignmentStmtData{LHS: lhs, RHS: rhs})
	default:
		p.errorExpected(p.tok.Pos, "'=' or '('")
		return ast.NoRef
	}
}

// parseDirectApplication parses `<typeRef> . apply ( <args> ) ;`. The
// grounded grammar gives direct application its own AST node only so
// its type checker can special-case the callee; structurally it is
// exactly a method call, so it is represented here the same way any
// other `x.method(args);` statement is: an ExprStmt wrapping a
// MemberExpr/CallExpr pair, reusing the typeRef's own Base as the
// member-access base.
func (p *parser) parseDirectApplication(ty ast.Ref) ast.Ref {
	pos := p.tok.Pos
	base := p.tree.Get(ty).Payload.(*ast.TypeRefData).Base
	p.expect(token.DOT)
	p.expect(token.KW_APPLY)
	member := p.tree.New(ast.KindMemberExpr, pos, &ast.MemberExprData{Base: base, Name: "apply"})
	args := p.parseArgumentList()
	p.expect(token.SEMICOLON)
	call := p.tree.New(ast.KindCallExpr, pos, &ast.CallExprData{Callee: member, Args: args})
	return p.tree.New(ast.KindExprStmt, pos, &ast.ExprStmtData{Expr: call})
}

func (p *parser) parseIfStmt() ast.Ref {
	pos := p.expect(token.KW_IF)
	p.expect(token.LPAREN)
	cond := p.parseExpr(1)
	p.expect(token.RPAREN)
	then := p.parseStatement()
	elseRef := ast.NoRef
	if p.accept(token.KW_ELSE) {
		elseRef = p.parseStatement()
	}
	return p.tree.New(ast.KindIfStmt, pos, &ast.IfStmtData{Cond: cond, Then: then, Else: elseRef})
}

func (p *parser) parseReturnStmt() ast.Ref {
	pos := p.expect(token.KW_RETURN)
	expr := ast.NoRef
	if p.tok.Kind != token.SEMICOLON {
		expr = p.parseExpr(1)
	}
	p.expect(token.SEMICOLON)
	return p.tree.New(ast.KindReturnStmt, pos, &ast.ReturnStmtData{Expr: expr})
}

func (p *parser) parseSwitchStmt() ast.Ref {
	pos := p.expect(token.KW_SWITCH)
	p.expect(token.LPAREN)
	expr := p.parseExpr(1)
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	list, lb := p.tree.NewList(ast.KindSwitchCaseList, p.tok.Pos)
	for p.tok.Kind == token.IDENT || p.tok.Kind == token.TYPE_IDENT || p.tok.Kind == token.KW_DEFAULT {
		lb.Append(p.parseSwitchCase())
	}
	p.expect(token.RBRACE)
	return p.tree.New(ast.KindSwitchStmt, pos, &ast.SwitchStmtData{Expr: expr, Cases: list})
}

// parseSwitchCase parses `<name-or-default> : [<block>]`; the body is
// omitted for fallthrough cases (spec §4.4's switch-case fallthrough).
// A `default` label is recorded as ast.NoRef on SwitchCaseData.Label,
// since `default` is a keyword, never a name the label could otherwise
// hold.
func (p *parser) parseSwitchCase() ast.Ref {
	pos := p.tok.Pos
	label := ast.NoRef
	if p.tok.Kind == token.KW_DEFAULT {
		p.next()
	} else {
		label = p.parseName()
	}
	p.expect(token.COLON)
	body := ast.NoRef
	if p.tok.Kind == token.LBRACE {
		body = p.parseBlockStatement()
	}
	return p.tree.New(ast.KindSwitchCase, pos, &ast.SwitchCaseData{Label: label, Body: body})
}
