package parser

import (
	"github.com/dfrunza/p4c/internal/ast"
	"github.com/dfrunza/p4c/internal/token"
)

// startsTypeRef reports whether the current token can begin a typeRef,
// grounded on original_source/parse.c's token_is_typeRef predicate.
func (p *parser) startsTypeRef() bool {
	switch p.tok.Kind {
	case token.KW_BOOL, token.KW_INT, token.KW_BIT, token.KW_VARBIT, token.KW_STRING,
		token.KW_VOID, token.KW_ERROR, token.KW_MATCH_KIND, token.KW_TUPLE, token.TYPE_IDENT:
		return true
	default:
		return false
	}
}

// parseTypeRef parses a typeRef: a base type (optionally specialized
// with a width, e.g. bit<8>), a tuple type, or a previously bound type
// identifier (optionally specialized with type arguments), followed by
// zero or more `[size]` header-stack suffixes.
func (p *parser) parseTypeRef() ast.Ref {
	base := p.parseAtomicTypeRef()
	for p.tok.Kind == token.LBRACKET {
		pos := p.tok.Pos
		p.next()
		size := p.parseExpr(1)
		p.expect(token.RBRACKET)
		stack := p.tree.New(ast.KindHeaderStackType, pos, &ast.HeaderStackTypeData{ElemType: base, Size: size})
		base = p.tree.New(ast.KindTypeRef, pos, &ast.TypeRefData{Base: stack})
	}
	return base
}

func (p *parser) parseAtomicTypeRef() ast.Ref {
	pos := p.tok.Pos
	switch p.tok.Kind {
	case token.KW_BOOL:
		p.next()
		return p.tree.New(ast.KindTypeRef, pos, &ast.TypeRefData{Base: p.tree.New(ast.KindBaseTypeBool, pos, nil)})
	case token.KW_VOID:
		p.next()
		return p.tree.New(ast.KindTypeRef, pos, &ast.TypeRefData{Base: p.tree.New(ast.KindBaseTypeVoid, pos, nil)})
	case token.KW_STRING:
		p.next()
		return p.tree.New(ast.KindTypeRef, pos, &ast.TypeRefData{Base: p.tree.New(ast.KindBaseTypeString, pos, nil)})
	case token.KW_ERROR:
		p.next()
		return p.tree.New(ast.KindTypeRef, pos, &ast.TypeRefData{Base: p.tree.New(ast.KindBaseTypeError, pos, nil)})
	case token.KW_MATCH_KIND:
		p.next()
		return p.tree.New(ast.KindTypeRef, pos, &ast.TypeRefData{Base: p.tree.New(ast.KindBaseTypeMatchKind, pos, nil)})
	case token.KW_INT:
		p.next()
		base := p.tree.New(ast.KindBaseTypeInt, pos, nil)
		args := ast.NoRef
		if p.tok.Kind == token.LT {
			args = p.parseTypeArgList(p.parseIntegerTypeSize)
		}
		return p.tree.New(ast.KindTypeRef, pos, &ast.TypeRefData{Base: base, Args: args})
	case token.KW_BIT:
		p.next()
		base := p.tree.New(ast.KindBaseTypeBit, pos, nil)
		args := ast.NoRef
		if p.tok.Kind == token.LT {
			args = p.parseTypeArgList(p.parseIntegerTypeSize)
		}
		return p.tree.New(ast.KindTypeRef, pos, &ast.TypeRefData{Base: base, Args: args})
	case token.KW_VARBIT:
		p.next()
		base := p.tree.New(ast.KindBaseTypeVarbit, pos, nil)
		args := ast.NoRef
		if p.tok.Kind == token.LT {
			args = p.parseTypeArgList(p.parseIntegerTypeSize)
		}
		return p.tree.New(ast.KindTypeRef, pos, &ast.TypeRefData{Base: base, Args: args})
	case token.KW_TUPLE:
		p.next()
		args := p.parseTypeArgList(p.parseTypeRef)
		tuple := p.tree.New(ast.KindTupleType, pos, &ast.TupleTypeData{Elems: args})
		return p.tree.New(ast.KindTypeRef, pos, &ast.TypeRefData{Base: tuple})
	case token.TYPE_IDENT:
		if p.tok.Lexeme == "_" {
			p.next()
			return p.tree.New(ast.KindTypeRef, pos, &ast.TypeRefData{Base: p.tree.New(ast.KindDontCareType, pos, nil)})
		}
		name := p.parseTypeIdent()
		args := ast.NoRef
		if p.tok.Kind == token.LT {
			args = p.parseTypeArgList(p.parseTypeRef)
		}
		return p.tree.New(ast.KindTypeRef, pos, &ast.TypeRefData{Base: name, Args: args})
	default:
		p.errorExpected(pos, "type")
		return ast.NoRef
	}
}

// parseIntegerTypeSize parses the `<N>` of bit<N>/int<N>/varbit<N>. N
// may be an integer literal or a const expression (spec §4.4).
func (p *parser) parseIntegerTypeSize() ast.Ref {
	pos := p.tok.Pos
	size := p.parseExpr(1)
	return p.tree.New(ast.KindIntegerTypeSize, pos, &ast.IntegerTypeSizeData{Size: size})
}

// parseTypeArgList parses `< elem (, elem)* >`, wrapping each elem in a
// KindTypeArg node so spec §3's type-argument representation stays
// uniform between width arguments (bit<N>) and type arguments (T<U>).
func (p *parser) parseTypeArgList(elem func() ast.Ref) ast.Ref {
	p.expect(token.LT)
	list, lb := p.tree.NewList(ast.KindTypeArgList, p.tok.Pos)
	lb.Append(p.parseTypeArg(elem))
	for p.accept(token.COMMA) {
		lb.Append(p.parseTypeArg(elem))
	}
	p.expect(token.GT)
	return list
}

func (p *parser) parseTypeArg(elem func() ast.Ref) ast.Ref {
	pos := p.tok.Pos
	return p.tree.New(ast.KindTypeArg, pos, &ast.TypeArgData{Arg: elem()})
}
