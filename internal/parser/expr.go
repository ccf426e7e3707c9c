package parser

import (
	"github.com/dfrunza/p4c/internal/ast"
	"github.com/dfrunza/p4c/internal/token"
)

// binaryPriority returns the operator_priority() table of
// original_source/parse.c (also spec §4.3's precedence-climbing table),
// or 0 if k is not a binary operator. There is no right-shift entry:
// internal/token has no RSHIFT kind, since the scanner never merges
// consecutive '>' runs into one token (each '>' is scanned on its own),
// which incidentally means a type argument list can close two levels
// deep (`tuple<tuple<int>>`) without the C++-style ">>"-splitting
// ambiguity this grammar would otherwise have to resolve.
func binaryPriority(k token.Kind) int {
	switch k {
	case token.LAND, token.LOR:
		return 1
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		return 2
	case token.PLUS, token.MINUS, token.AND, token.OR, token.XOR, token.LSHIFT:
		return 3
	case token.STAR, token.SLASH:
		return 4
	case token.MASK:
		return 5
	default:
		return 0
	}
}

// parseExpr implements spec §4.3's precedence climbing: parse_expression
// in the original recurses with threshold = priority + 1 for the right
// operand of every binary operator it consumes.
func (p *parser) parseExpr(threshold int) ast.Ref {
	left := p.parseUnary()
	for {
		prio := binaryPriority(p.tok.Kind)
		if prio == 0 || prio < threshold {
			return left
		}
		opKind := p.tok.Kind
		opPos := p.tok.Pos
		p.next()
		right := p.parseExpr(prio + 1)
		if opKind == token.MASK {
			left = p.tree.New(ast.KindMaskExpr, opPos, &ast.MaskExprData{Value: left, Mask: right})
		} else {
			left = p.tree.New(ast.KindBinaryExpr, opPos, &ast.BinaryExprData{Op: int(opKind), Left: left, Right: right})
		}
	}
}

// parseUnary parses one primary expression plus its postfix chain
// (member access, indexing/slicing, calls), which together form the
// operand a prefix unary operator (!, ~, unary -) or a cast applies to.
func (p *parser) parseUnary() ast.Ref {
	return p.parsePostfix(p.parseExpressionPrimary())
}

// parseExpressionPrimary is grounded on parse_expressionPrimary: unary
// prefix operators, literals, `this`, qualified top-level references
// (`.name`), brace-list expressions, and the parenthesized-expression /
// cast / `(TypeName.member)` three-way disambiguation.
func (p *parser) parseExpressionPrimary() ast.Ref {
	pos := p.tok.Pos
	switch p.tok.Kind {
	case token.NOT:
		p.next()
		return p.tree.New(ast.KindUnaryExpr, pos, &ast.UnaryExprData{Op: int(token.NOT), Operand: p.parseUnary()})
	case token.TILDE:
		p.next()
		return p.tree.New(ast.KindUnaryExpr, pos, &ast.UnaryExprData{Op: int(token.TILDE), Operand: p.parseUnary()})
	case token.MINUS, token.UMINUS:
		// Both kinds mean unary minus here: a MINUS token only ever
		// reaches a primary position (the binary loop in parseExpr
		// consumes a binary MINUS itself before calling back in), and
		// UMINUS is the scanner's own feedback for '-' right after '('.
		p.next()
		return p.tree.New(ast.KindUnaryExpr, pos, &ast.UnaryExprData{Op: int(token.MINUS), Operand: p.parseUnary()})
	case token.INT_LITERAL:
		lit := p.tok.Lexeme
		p.next()
		return p.tree.New(ast.KindIntLiteral, pos, &ast.IntLiteralData{Lexeme: lit})
	case token.STRING_LITERAL:
		lit := p.tok.Lexeme
		p.next()
		return p.tree.New(ast.KindStringLiteral, pos, &ast.StringLiteralData{Lexeme: lit})
	case token.KW_TRUE:
		p.next()
		return p.tree.New(ast.KindBoolLiteral, pos, &ast.BoolLiteralData{Value: true})
	case token.KW_FALSE:
		p.next()
		return p.tree.New(ast.KindBoolLiteral, pos, &ast.BoolLiteralData{Value: false})
	case token.KW_THIS:
		p.next()
		return p.tree.New(ast.KindThisExpr, pos, &ast.ThisExprData{})
	case token.DOT:
		p.next()
		if p.tok.Kind == token.TYPE_IDENT {
			return p.parseTypeIdent()
		}
		return p.parseIdent()
	case token.LBRACE:
		return p.parseListExpr()
	case token.LPAREN:
		return p.parseParenOrCast()
	case token.TYPE_IDENT:
		return p.parseTypeIdent()
	case token.IDENT:
		return p.parseIdent()
	default:
		p.errorExpected(pos, "expression")
		return ast.NoRef
	}
}

// parseParenOrCast resolves the three meanings a '(' can start, exactly
// as original_source/parse.c's parse_expressionPrimary does with a
// single token of lookahead past the '(': `(TypeName.member)` is a
// parenthesized member access (checked via peek() for the '.'), a
// typeRef-starting token is a cast, anything else is an ordinary
// parenthesized expression — in the latter two cases the parens
// themselves introduce no AST node, matching how parseExpr needs none
// for grouping either.
func (p *parser) parseParenOrCast() ast.Ref {
	pos := p.expect(token.LPAREN)
	if p.tok.Kind == token.TYPE_IDENT && p.peek().Kind == token.DOT {
		inner := p.parsePostfix(p.parseTypeIdent())
		p.expect(token.RPAREN)
		return inner
	}
	if p.startsTypeRef() {
		ty := p.parseTypeRef()
		p.expect(token.RPAREN)
		operand := p.parseUnary()
		return p.tree.New(ast.KindCastExpr, pos, &ast.CastExprData{Type: ty, Expr: operand})
	}
	inner := p.parseExpr(1)
	p.expect(token.RPAREN)
	return inner
}

// parseListExpr parses a brace-delimited expression list (`{ e1, e2 }`,
// used for header/struct/tuple initializers). KindListExpr is a plain
// list-kind node, the same representation KindArgList uses.
func (p *parser) parseListExpr() ast.Ref {
	pos := p.expect(token.LBRACE)
	list, lb := p.tree.NewList(ast.KindListExpr, pos)
	if p.tok.Kind != token.RBRACE {
		lb.Append(p.parseExpr(1))
		for p.accept(token.COMMA) {
			lb.Append(p.parseExpr(1))
		}
	}
	p.expect(token.RBRACE)
	return list
}

// parsePostfix chains member access, indexing, slicing, and calls onto
// base, all left-associative at any precedence level (spec §4.3:
// "postfix primaries chained independently of the binary-operator
// precedence climb"). Explicit type arguments on a call
// (`extract<H>(hdr)`) have no grammar production in the grounded
// source's expression operator loop, so CallExprData.TypeArgs is never
// populated here; it stays NoRef for every call the parser builds.
func (p *parser) parsePostfix(base ast.Ref) ast.Ref {
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
		case token.LPAREN:
			args := p.parseArgumentList()
			base = p.tree.New(ast.KindCallExpr, pos, &ast.CallExprData{Callee: base, Args: args})
		default:
			return base
		}
	}
}

// parseArgumentList parses `( arg (, arg)* )`, where each arg is a full
// expression (named arguments, `.name = expr`, are not part of this
// grammar's argument grammar per original_source/parse.c's
// parse_argument).
func (p *parser) parseArgumentList() ast.Ref {
	p.expect(token.LPAREN)
	list, lb := p.tree.NewList(ast.KindArgList, p.tok.Pos)
	if p.tok.Kind != token.RPAREN {
		lb.Append(p.parseExpr(1))
		for p.accept(token.COMMA) {
			lb.Append(p.parseExpr(1))
		}
	}
	p.expect(token.RPAREN)
	return list
}
