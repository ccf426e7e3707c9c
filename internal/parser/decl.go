package parser

import (
	"github.com/dfrunza/p4c/internal/ast"
	"github.com/dfrunza/p4c/internal/token"
)

// nameText reads the lexeme back out of an already-built Ident or
// TypeIdent node, needed wherever a just-parsed name must also be
// bound into typeScope.
func (p *parser) nameText(r ast.Ref) string {
	switch d := p.tree.Get(r).Payload.(type) {
	case *ast.IdentData:
		return d.Name
	case *ast.TypeIdentData:
		return d.Name
	default:
		return ""
	}
}

// startsExpr mirrors token_is_expression: every token
// parseExpressionPrimary switches on.
func (p *parser) startsExpr() bool {
	switch p.tok.Kind {
	case token.NOT, token.TILDE, token.MINUS, token.UMINUS, token.INT_LITERAL,
		token.STRING_LITERAL, token.KW_TRUE, token.KW_FALSE, token.KW_THIS,
		token.DOT, token.LBRACE, token.LPAREN, token.TYPE_IDENT, token.IDENT:
		return true
	default:
		return false
	}
}

// parseProgram is the grammar's start symbol: parse_p4program skips
// stray leading ';' (empty top-level declarations), parses the
// declaration list, then requires the scanner to be exhausted. There is
// no scope push/pop here, unlike the original — this port's parser
// seeds a single flat typeScope for the whole file (see the parser
// struct's doc comment in parser.go); the real nested scope tree is
// built afterward by internal/scope.
func (p *parser) parseProgram() ast.Ref {
	pos := p.tok.Pos
	decls := p.parseDeclList()
	if p.tok.Kind != token.ENDOFINPUT {
		p.errorExpected(p.tok.Pos, "end of input")
	}
	return p.tree.New(ast.KindProgram, pos, &ast.ProgramData{Decls: decls})
}

func (p *parser) startsDeclaration() bool {
	switch p.tok.Kind {
	case token.KW_CONST, token.KW_EXTERN, token.KW_ACTION, token.KW_PARSER, token.KW_CONTROL,
		token.KW_HEADER, token.KW_HEADER_UNION, token.KW_STRUCT, token.KW_ENUM,
		token.KW_TYPEDEF, token.KW_PACKAGE, token.KW_ERROR, token.KW_MATCH_KIND:
		return true
	default:
		return p.startsTypeRef()
	}
}

// parseDeclList mirrors parse_declarationList/token_is_declaration: a
// bare ';' between (or before) declarations is a silently-skipped empty
// declaration.
func (p *parser) parseDeclList() ast.Ref {
	list, lb := p.tree.NewList(ast.KindDeclList, p.tok.Pos)
	for p.startsDeclaration() || p.tok.Kind == token.SEMICOLON {
		if p.tok.Kind == token.SEMICOLON {
			p.next()
			continue
		}
		lb.Append(p.parseDeclaration())
	}
	return list
}

// parseDeclaration is grounded on parse_declaration's dispatch order.
// A standalone free function (`<type> name(params) { ... }`) has no
// home in this port's Kind set — p4c's only top-level callables are
// actions, externs, and instantiated objects — so a typeRef not
// immediately followed by '(' falls through to an error here rather
// than the original's parse_functionDeclaration.
func (p *parser) parseDeclaration() ast.Ref {
	switch p.tok.Kind {
	case token.KW_CONST:
		return p.parseConstantDecl()
	case token.KW_EXTERN:
		return p.parseExternDecl()
	case token.KW_ACTION:
		return p.parseActionDecl()
	case token.KW_PARSER:
		proto := p.parseParserTypeDecl()
		if p.accept(token.SEMICOLON) {
			return proto
		}
		return p.parseParserDecl(proto)
	case token.KW_CONTROL:
		proto := p.parseControlTypeDecl()
		if p.accept(token.SEMICOLON) {
			return proto
		}
		return p.parseControlDecl(proto)
	case token.KW_HEADER, token.KW_HEADER_UNION, token.KW_STRUCT, token.KW_ENUM:
		return p.parseDerivedTypeDecl()
	case token.KW_TYPEDEF:
		return p.parseTypedefDecl()
	case token.KW_PACKAGE:
		decl := p.parsePackageTypeDecl()
		p.expect(token.SEMICOLON)
		return decl
	case token.KW_ERROR:
		return p.parseErrorDecl()
	case token.KW_MATCH_KIND:
		return p.parseMatchKindDecl()
	default:
		if p.startsTypeRef() {
			ty := p.parseTypeRef()
			if p.tok.Kind == token.LPAREN {
				return p.parseInstantiation(ty)
			}
			p.errorExpected(p.tok.Pos, "'(' (instantiation)")
			return ast.NoRef
		}
		p.errorExpected(p.tok.Pos, "top-level declaration")
		return ast.NoRef
	}
}

// parseConstantDecl is `const <type> <name> = <expr>;`. The original
// reuses parse_variableDeclaration(0) for this (there is no separate
// top-level-constant grammar function), but this port's ConstantDeclData
// is a distinct Kind from VariableDeclData, so the tail is parsed
// directly rather than through parseVariableDeclTail — and unlike a
// local variable declaration, the initializer is mandatory.
func (p *parser) parseConstantDecl() ast.Ref {
	pos := p.expect(token.KW_CONST)
	ty := p.parseTypeRef()
	name := p.parseName()
	p.expect(token.ASSIGN)
	init := p.parseExpr(1)
	p.expect(token.SEMICOLON)
	return p.tree.New(ast.KindConstantDecl, pos, &ast.ConstantDeclData{Name: name, Type: ty, Init: init})
}

// parseTypedefDecl is `typedef (<typeRef> | <derivedTypeDecl>) <name>;`.
func (p *parser) parseTypedefDecl() ast.Ref {
	pos := p.expect(token.KW_TYPEDEF)
	var target ast.Ref
	if p.startsDerivedTypeDecl() {
		target = p.parseDerivedTypeDecl()
	} else {
		target = p.parseTypeRef()
	}
	name := p.parseName()
	p.bindType(p.nameText(name), name)
	p.expect(token.SEMICOLON)
	return p.tree.New(ast.KindTypedefDecl, pos, &ast.TypedefDeclData{Name: name, Type: target})
}

func (p *parser) startsDerivedTypeDecl() bool {
	switch p.tok.Kind {
	case token.KW_HEADER, token.KW_HEADER_UNION, token.KW_STRUCT, token.KW_ENUM:
		return true
	default:
		return false
	}
}

func (p *parser) parseDerivedTypeDecl() ast.Ref {
	switch p.tok.Kind {
	case token.KW_HEADER:
		return p.parseHeaderTypeDecl()
	case token.KW_HEADER_UNION:
		return p.parseHeaderUnionDecl()
	case token.KW_STRUCT:
		return p.parseStructTypeDecl()
	case token.KW_ENUM:
		return p.parseEnumDecl()
	default:
		p.errorExpected(p.tok.Pos, "structured type declaration")
		return ast.NoRef
	}
}

func (p *parser) parseHeaderTypeDecl() ast.Ref {
	pos := p.expect(token.KW_HEADER)
	name := p.parseName()
	p.bindType(p.nameText(name), name)
	p.expect(token.LBRACE)
	fields := p.parseStructFieldList()
	p.expect(token.RBRACE)
	return p.tree.New(ast.KindHeaderTypeDecl, pos, &ast.HeaderTypeDeclData{Name: name, Fields: fields})
}

func (p *parser) parseHeaderUnionDecl() ast.Ref {
	pos := p.expect(token.KW_HEADER_UNION)
	name := p.parseName()
	p.bindType(p.nameText(name), name)
	p.expect(token.LBRACE)
	fields := p.parseStructFieldList()
	p.expect(token.RBRACE)
	return p.tree.New(ast.KindHeaderUnionDecl, pos, &ast.HeaderUnionDeclData{Name: name, Fields: fields})
}

func (p *parser) parseStructTypeDecl() ast.Ref {
	pos := p.expect(token.KW_STRUCT)
	name := p.parseName()
	p.bindType(p.nameText(name), name)
	p.expect(token.LBRACE)
	fields := p.parseStructFieldList()
	p.expect(token.RBRACE)
	return p.tree.New(ast.KindStructTypeDecl, pos, &ast.StructTypeDeclData{Name: name, Fields: fields})
}

func (p *parser) parseStructFieldList() ast.Ref {
	list, lb := p.tree.NewList(ast.KindStructFieldList, p.tok.Pos)
	for p.startsTypeRef() {
		lb.Append(p.parseStructField())
	}
	return list
}

func (p *parser) parseStructField() ast.Ref {
	pos := p.tok.Pos
	ty := p.parseTypeRef()
	name := p.parseName()
	p.expect(token.SEMICOLON)
	return p.tree.New(ast.KindStructField, pos, &ast.StructFieldData{Type: ty, Name: name})
}

// parseEnumDecl is `enum [bit<N>] <name> { <members> }`. The original
// hand-parses the underlying width as a bare integer literal
// (`bit < TK_INTEGER_LITERAL >`), narrower than bit<N>'s usual grammar;
// this port reuses the general parseIntegerTypeSize (a full const
// expression) instead, since there is no separate AST representation
// to preserve the narrower restriction. Enum members always go through
// specifiedIdentifier (name with an optional `= value`), never the
// plain identifier list — the original's parse_enumDeclaration has no
// branch for a bare identifierList despite EnumDeclData's doc comment
// allowing one.
func (p *parser) parseEnumDecl() ast.Ref {
	pos := p.expect(token.KW_ENUM)
	underType := ast.NoRef
	if p.tok.Kind == token.KW_BIT {
		underType = p.parseEnumUnderlyingType()
	}
	name := p.parseName()
	p.bindType(p.nameText(name), name)
	p.expect(token.LBRACE)
	members := p.parseSpecifiedIdentifierList()
	p.expect(token.RBRACE)
	return p.tree.New(ast.KindEnumDecl, pos, &ast.EnumDeclData{Name: name, UnderType: underType, Members: members})
}

func (p *parser) parseEnumUnderlyingType() ast.Ref {
	pos := p.expect(token.KW_BIT)
	base := p.tree.New(ast.KindBaseTypeBit, pos, nil)
	p.expect(token.LT)
	size := p.parseIntegerTypeSize()
	p.expect(token.GT)
	arg := p.tree.New(ast.KindTypeArg, pos, &ast.TypeArgData{Arg: size})
	args, lb := p.tree.NewList(ast.KindTypeArgList, pos)
	lb.Append(arg)
	return p.tree.New(ast.KindTypeRef, pos, &ast.TypeRefData{Base: base, Args: args})
}

func (p *parser) parseErrorDecl() ast.Ref {
	pos := p.expect(token.KW_ERROR)
	p.expect(token.LBRACE)
	members := p.parseIdentifierList()
	p.expect(token.RBRACE)
	return p.tree.New(ast.KindErrorDecl, pos, &ast.ErrorDeclData{Members: members})
}

func (p *parser) parseMatchKindDecl() ast.Ref {
	pos := p.expect(token.KW_MATCH_KIND)
	p.expect(token.LBRACE)
	members := p.parseIdentifierList()
	p.expect(token.RBRACE)
	return p.tree.New(ast.KindMatchKindDecl, pos, &ast.MatchKindDeclData{Members: members})
}

func (p *parser) parseIdentifierList() ast.Ref {
	list, lb := p.tree.NewList(ast.KindIdentifierList, p.tok.Pos)
	lb.Append(p.parseName())
	for p.accept(token.COMMA) {
		lb.Append(p.parseName())
	}
	return list
}

func (p *parser) parseSpecifiedIdentifierList() ast.Ref {
	list, lb := p.tree.NewList(ast.KindSpecifiedIdentifierList, p.tok.Pos)
	lb.Append(p.parseSpecifiedIdentifier())
	for p.accept(token.COMMA) {
		lb.Append(p.parseSpecifiedIdentifier())
	}
	return list
}

func (p *parser) parseSpecifiedIdentifier() ast.Ref {
	pos := p.tok.Pos
	name := p.parseName()
	init := ast.NoRef
	if p.accept(token.ASSIGN) {
		init = p.parseExpr(1)
	}
	return p.tree.New(ast.KindSpecifiedIdentifier, pos, &ast.SpecifiedIdentifierData{Name: name, Init: init})
}

// --- Parameters, instantiation, constructor parameters -------------

func (p *parser) startsParameter() bool {
	switch p.tok.Kind {
	case token.KW_IN, token.KW_OUT, token.KW_INOUT:
		return true
	default:
		return p.startsTypeRef()
	}
}

func (p *parser) parseParameterList() ast.Ref {
	list, lb := p.tree.NewList(ast.KindParameterList, p.tok.Pos)
	if p.startsParameter() {
		lb.Append(p.parseParameter())
		for p.accept(token.COMMA) {
			lb.Append(p.parseParameter())
		}
	}
	return list
}

func (p *parser) parseDirection() string {
	switch p.tok.Kind {
	case token.KW_IN:
		p.next()
		return "in"
	case token.KW_OUT:
		p.next()
		return "out"
	case token.KW_INOUT:
		p.next()
		return "inout"
	default:
		return ""
	}
}

func (p *parser) parseParameter() ast.Ref {
	pos := p.tok.Pos
	dir := p.parseDirection()
	ty := p.parseTypeRef()
	name := p.parseName()
	def := ast.NoRef
	if p.accept(token.ASSIGN) {
		def = p.parseExpr(1)
	}
	return p.tree.New(ast.KindParameter, pos, &ast.ParameterData{Direction: dir, Type: ty, Name: name, Default: def})
}

func (p *parser) parseParenParameterList() ast.Ref {
	p.expect(token.LPAREN)
	list := p.parseParameterList()
	p.expect(token.RPAREN)
	return list
}

// parseOptConstructorParams consumes an optional constructor parameter
// list after a parser/control prototype reference. Neither
// ParserDeclData nor ControlDeclData has a field for it — real p4c's
// constructor parameters only matter to instantiation-time argument
// checking, which this port's two-phase checker (spec §4.6) does not
// model — so the parameters are parsed (to keep the token stream
// synchronized) and discarded.
func (p *parser) parseOptConstructorParams() {
	if p.tok.Kind == token.LPAREN {
		p.parseParenParameterList()
	}
}

// parseInstantiation is `<type> ( <args> ) <name> ;`, given the
// typeRef already parsed by the caller (stmt.go's
// parseStatementOrDeclaration, parser/control local-element parsing,
// and parseDeclaration all disambiguate instantiation the same way:
// parse a typeRef, then check for '(').
func (p *parser) parseInstantiation(ty ast.Ref) ast.Ref {
	pos := p.tok.Pos
	args := p.parseArgumentList()
	name := p.parseName()
	p.expect(token.SEMICOLON)
	return p.tree.New(ast.KindInstantiation, pos, &ast.InstantiationData{Type: ty, Args: args, Name: name})
}

func (p *parser) parsePackageTypeDecl() ast.Ref {
	pos := p.expect(token.KW_PACKAGE)
	name := p.parseName()
	p.bindType(p.nameText(name), name)
	params := p.parseParenParameterList()
	return p.tree.New(ast.KindPackageTypeDecl, pos, &ast.PackageTypeDeclData{Name: name, Params: params})
}

// --- Parser declarations --------------------------------------------

func (p *parser) parseParserTypeDecl() ast.Ref {
	pos := p.expect(token.KW_PARSER)
	name := p.parseName()
	p.bindType(p.nameText(name), name)
	params := p.parseParenParameterList()
	return p.tree.New(ast.KindParserTypeDecl, pos, &ast.ParserTypeDeclData{Name: name, Params: params})
}

func (p *parser) parseParserDecl(proto ast.Ref) ast.Ref {
	pos := p.tree.Get(proto).Pos
	p.parseOptConstructorParams()
	p.expect(token.LBRACE)
	locals := p.parseParserLocalElementList()
	states := p.parseParserStateList()
	p.expect(token.RBRACE)
	return p.tree.New(ast.KindParserDecl, pos, &ast.ParserDeclData{Type: proto, Locals: locals, States: states})
}

func (p *parser) startsParserLocalElement() bool {
	return p.tok.Kind == token.KW_CONST || p.startsTypeRef()
}

// parseParserLocalElementList has no per-element wrapper kind (unlike
// the original's AST_parserLocalElement): each element — a variable
// declaration or an instantiation — is appended directly.
func (p *parser) parseParserLocalElementList() ast.Ref {
	list, lb := p.tree.NewList(ast.KindParserLocalElementList, p.tok.Pos)
	for p.startsParserLocalElement() {
		lb.Append(p.parseParserLocalElement())
	}
	return list
}

func (p *parser) parseParserLocalElement() ast.Ref {
	if p.tok.Kind == token.KW_CONST {
		p.next()
		ty := p.parseTypeRef()
		return p.parseVariableDeclTail(ty)
	}
	ty := p.parseTypeRef()
	if p.tok.Kind == token.LPAREN {
		return p.parseInstantiation(ty)
	}
	return p.parseVariableDeclTail(ty)
}

// parseParserStateList requires at least one state, per
// parse_parserDeclaration's unconditional error when no TK_STATE
// follows the local elements.
func (p *parser) parseParserStateList() ast.Ref {
	if p.tok.Kind != token.KW_STATE {
		p.errorExpected(p.tok.Pos, "'state'")
	}
	list, lb := p.tree.NewList(ast.KindParserStateList, p.tok.Pos)
	for p.tok.Kind == token.KW_STATE {
		lb.Append(p.parseParserState())
	}
	return list
}

// parseParserState's transition is mandatory: parse_parserState calls
// parse_transitionStatement unconditionally after the statement list,
// with no guard for its absence.
func (p *parser) parseParserState() ast.Ref {
	pos := p.expect(token.KW_STATE)
	name := p.parseName()
	p.expect(token.LBRACE)
	stmts := p.parseParserStatementList()
	transition := p.parseTransitionStmt()
	p.expect(token.RBRACE)
	return p.tree.New(ast.KindParserState, pos, &ast.ParserStateData{Name: name, Statements: stmts, Transition: transition})
}

func (p *parser) startsParserStatement() bool {
	switch p.tok.Kind {
	case token.KW_CONST, token.LBRACE, token.SEMICOLON, token.IDENT, token.DOT:
		return true
	default:
		return p.startsTypeRef()
	}
}

// parseParserStatement omits the instantiation alternative
// startsStatementOrDecl carries at block-statement scope: a parser
// state body may declare locals or apply a typeRef directly, but
// instantiation belongs only to parserLocalElement position.
func (p *parser) parseParserStatement() ast.Ref {
	switch {
	case p.tok.Kind == token.KW_CONST:
		p.next()
		ty := p.parseTypeRef()
		return p.parseVariableDeclTail(ty)
	case p.startsTypeRef():
		ty := p.parseTypeRef()
		if p.tok.Kind == token.IDENT || p.tok.Kind == token.TYPE_IDENT {
			return p.parseVariableDeclTail(ty)
		}
		return p.parseDirectApplication(ty)
	case p.tok.Kind == token.IDENT || p.tok.Kind == token.DOT:
		return p.parseAssignmentOrMethodCallStatement()
	case p.tok.Kind == token.LBRACE:
		return p.parseParserBlockStatement()
	case p.tok.Kind == token.SEMICOLON:
		pos := p.tok.Pos
		p.next()
		return p.tree.New(ast.KindEmptyStmt, pos, nil)
	default:
		p.errorExpected(p.tok.Pos, "parser statement")
		return ast.NoRef
	}
}

func (p *parser) parseParserStatementList() ast.Ref {
	list, lb := p.tree.NewList(ast.KindParserStatementList, p.tok.Pos)
	for p.startsParserStatement() {
		lb.Append(p.parseParserStatement())
	}
	return list
}

// parseParserBlockStatement is a nested `{ ... }` inside a parser
// state. KindParserBlockStatement has no dedicated payload struct in
// this port's design (unlike KindBlockStatement's BlockStatementData);
// it is built as a plain list node whose children are the nested
// statements directly, the same representation parserLocalElementList
// and controlLocalDeclList use for their own wrapper-less elements.
func (p *parser) parseParserBlockStatement() ast.Ref {
	pos := p.expect(token.LBRACE)
	list, lb := p.tree.NewList(ast.KindParserBlockStatement, pos)
	for p.startsParserStatement() {
		lb.Append(p.parseParserStatement())
	}
	p.expect(token.RBRACE)
	return list
}

// parseTransitionStmt is `transition (<name> ; | <selectExpr>)`. Only
// the bare-name alternative consumes its own trailing ';' here —
// select's closing '}' ends the statement, matching
// parse_stateExpression/parse_selectExpression exactly. Neither
// alternative is wrapped in an extra "state expression" node: this
// port's TransitionStmtData.Target holds the StateExprName or
// SelectExpr node directly, skipping the original's AST_stateExpression
// indirection.
func (p *parser) parseTransitionStmt() ast.Ref {
	pos := p.expect(token.KW_TRANSITION)
	var target ast.Ref
	if p.tok.Kind == token.KW_SELECT {
		target = p.parseSelectExpr()
	} else {
		namePos := p.tok.Pos
		name := p.parseName()
		p.expect(token.SEMICOLON)
		target = p.tree.New(ast.KindStateExprName, namePos, &ast.StateExprNameData{Name: name})
	}
	return p.tree.New(ast.KindTransitionStmt, pos, &ast.TransitionStmtData{Target: target})
}

// parseSelectExpr is `select ( <exprs> ) { <cases> }`. The
// parenthesized list here is ordinary expressions (parse_expressionList
// in the original), unlike a select case's own keyset keys — but both
// happen to share this port's KindSimpleExprList kind, since no
// separate plain-expression-list kind exists for this one use; a
// downstream pass tells them apart by their parent (SelectExprData.Exprs
// vs KeysetExprTupleData.Exprs), not by the list's own Kind.
func (p *parser) parseSelectExpr() ast.Ref {
	pos := p.expect(token.KW_SELECT)
	p.expect(token.LPAREN)
	exprs := p.parseSelectExprList()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	cases := p.parseSelectCaseList()
	p.expect(token.RBRACE)
	return p.tree.New(ast.KindSelectExpr, pos, &ast.SelectExprData{Exprs: exprs, Cases: cases})
}

func (p *parser) parseSelectExprList() ast.Ref {
	list, lb := p.tree.NewList(ast.KindSimpleExprList, p.tok.Pos)
	lb.Append(p.parseExpr(1))
	for p.accept(token.COMMA) {
		lb.Append(p.parseExpr(1))
	}
	return list
}

func (p *parser) startsKeysetExpr() bool {
	return p.tok.Kind == token.LPAREN || p.tok.Kind == token.KW_DEFAULT || p.startsExpr()
}

func (p *parser) parseSelectCaseList() ast.Ref {
	list, lb := p.tree.NewList(ast.KindSelectCaseList, p.tok.Pos)
	for p.startsKeysetExpr() {
		lb.Append(p.parseSelectCase())
	}
	return list
}

func (p *parser) parseSelectCase() ast.Ref {
	pos := p.tok.Pos
	keyset := p.parseKeysetExpr()
	p.expect(token.COLON)
	namePos := p.tok.Pos
	name := p.parseName()
	p.expect(token.SEMICOLON)
	state := p.tree.New(ast.KindStateExprName, namePos, &ast.StateExprNameData{Name: name})
	return p.tree.New(ast.KindSelectCase, pos, &ast.SelectCaseData{Keyset: keyset, State: state})
}

func (p *parser) parseKeysetExpr() ast.Ref {
	if p.tok.Kind == token.LPAREN {
		pos := p.tok.Pos
		p.next()
		exprs := p.parseSimpleExprList()
		p.expect(token.RPAREN)
		return p.tree.New(ast.KindKeysetExprTuple, pos, &ast.KeysetExprTupleData{Exprs: exprs})
	}
	return p.parseKeysetExprSimple()
}

func (p *parser) parseSimpleExprList() ast.Ref {
	list, lb := p.tree.NewList(ast.KindSimpleExprList, p.tok.Pos)
	lb.Append(p.parseKeysetExprSimple())
	for p.accept(token.COMMA) {
		lb.Append(p.parseKeysetExprSimple())
	}
	return list
}

func (p *parser) parseKeysetExprSimple() ast.Ref {
	pos := p.tok.Pos
	expr := p.parseSimpleKeysetValue()
	return p.tree.New(ast.KindKeysetExprSimple, pos, &ast.KeysetExprSimpleData{Expr: expr})
}

// parseSimpleKeysetValue is an expression, `default`, or `_`. `_` needs
// no special handling: a bare "_" already lexes as TYPE_IDENT and
// parseExpressionPrimary already turns it into a plain TypeIdentData
// node via parseTypeIdent (the same node a type-position "don't care"
// builds from, minus the TypeRef wrapper types.go adds there) — there
// is no dedicated value-position dontcare Kind, so downstream code
// recognizes it by name ("_") the same way it recognizes `default` by
// name below. `default` is not itself a valid expression-starting
// token, so it is represented the same minimal way: a synthetic Ident
// node carrying the literal name "default", rather than adding a Kind
// for what is semantically just a reserved marker value.
func (p *parser) parseSimpleKeysetValue() ast.Ref {
	if p.tok.Kind == token.KW_DEFAULT {
		pos := p.tok.Pos
		p.next()
		return p.tree.New(ast.KindIdent, pos, &ast.IdentData{Name: "default"})
	}
	return p.parseExpr(1)
}

// --- Control declarations --------------------------------------------

func (p *parser) parseControlTypeDecl() ast.Ref {
	pos := p.expect(token.KW_CONTROL)
	name := p.parseName()
	p.bindType(p.nameText(name), name)
	params := p.parseParenParameterList()
	return p.tree.New(ast.KindControlTypeDecl, pos, &ast.ControlTypeDeclData{Name: name, Params: params})
}

func (p *parser) parseControlDecl(proto ast.Ref) ast.Ref {
	pos := p.tree.Get(proto).Pos
	p.parseOptConstructorParams()
	p.expect(token.LBRACE)
	locals := p.parseControlLocalDeclList()
	p.expect(token.KW_APPLY)
	apply := p.parseBlockStatement()
	p.expect(token.RBRACE)
	return p.tree.New(ast.KindControlDecl, pos, &ast.ControlDeclData{Type: proto, Locals: locals, Apply: apply})
}

func (p *parser) startsControlLocalDecl() bool {
	switch p.tok.Kind {
	case token.KW_CONST, token.KW_ACTION, token.KW_TABLE:
		return true
	default:
		return p.startsTypeRef()
	}
}

// parseControlLocalDeclList, like parseParserLocalElementList, has no
// per-element wrapper kind: each element is appended directly.
func (p *parser) parseControlLocalDeclList() ast.Ref {
	list, lb := p.tree.NewList(ast.KindControlLocalDeclList, p.tok.Pos)
	for p.startsControlLocalDecl() {
		lb.Append(p.parseControlLocalDecl())
	}
	return list
}

func (p *parser) parseControlLocalDecl() ast.Ref {
	switch {
	case p.tok.Kind == token.KW_CONST:
		p.next()
		ty := p.parseTypeRef()
		return p.parseVariableDeclTail(ty)
	case p.tok.Kind == token.KW_ACTION:
		return p.parseActionDecl()
	case p.tok.Kind == token.KW_TABLE:
		return p.parseTableDecl()
	default:
		ty := p.parseTypeRef()
		if p.tok.Kind == token.LPAREN {
			return p.parseInstantiation(ty)
		}
		return p.parseVariableDeclTail(ty)
	}
}

func (p *parser) parseActionDecl() ast.Ref {
	pos := p.expect(token.KW_ACTION)
	name := p.parseName()
	params := p.parseParenParameterList()
	body := p.parseBlockStatement()
	return p.tree.New(ast.KindActionDecl, pos, &ast.ActionDeclData{Name: name, Params: params, Body: body})
}

// --- Extern declarations ----------------------------------------------

// parseExternDecl disambiguates a standalone extern function prototype
// from an extern type declaration by one token of lookahead past the
// return-type-starting token, grounded on parse_externDeclaration's
// is_function_type check: a TYPE_IDENT is ambiguous (it could be a
// return type or the extern type's own name) and is resolved by
// peeking for a following name; any other type-starting token (a base
// type or void) can only be a return type; anything else is the
// extern type's own (necessarily fresh, plain-IDENT) name.
func (p *parser) parseExternDecl() ast.Ref {
	pos := p.expect(token.KW_EXTERN)
	isFunc := false
	switch {
	case p.tok.Kind == token.TYPE_IDENT:
		nxt := p.peek().Kind
		isFunc = nxt == token.IDENT || nxt == token.TYPE_IDENT
	case p.startsTypeRef():
		isFunc = true
	default:
		isFunc = false
	}
	if isFunc {
		proto := p.parseFunctionPrototype(ast.NoRef)
		p.expect(token.SEMICOLON)
		return p.tree.New(ast.KindExternFunctionDecl, pos, &ast.ExternFunctionDeclData{Proto: proto})
	}
	name := p.parseIdent()
	p.bindType(p.nameText(name), name)
	p.expect(token.LBRACE)
	methods := p.parseMethodPrototypeList()
	p.expect(token.RBRACE)
	return p.tree.New(ast.KindExternTypeDecl, pos, &ast.ExternTypeDeclData{Name: name, Methods: methods})
}

func (p *parser) parseMethodPrototypeList() ast.Ref {
	list, lb := p.tree.NewList(ast.KindMethodPrototypeList, p.tok.Pos)
	for p.startsTypeRef() {
		lb.Append(p.parseMethodPrototype())
	}
	return list
}

// parseMethodPrototype recognizes a constructor (no return type) by a
// one-token peek: a TYPE_IDENT immediately followed by '('. Any other
// method has an ordinary return type.
func (p *parser) parseMethodPrototype() ast.Ref {
	if p.tok.Kind == token.TYPE_IDENT && p.peek().Kind == token.LPAREN {
		pos := p.tok.Pos
		name := p.parseTypeIdent()
		params := p.parseParenParameterList()
		p.expect(token.SEMICOLON)
		return p.tree.New(ast.KindFunctionPrototype, pos, &ast.FunctionPrototypeData{ReturnType: ast.NoRef, Name: name, Params: params})
	}
	proto := p.parseFunctionPrototype(ast.NoRef)
	p.expect(token.SEMICOLON)
	return proto
}

// parseFunctionPrototype parses `<retType> <name> ( <params> )`. retType
// is ast.NoRef when the caller has not already parsed it itself (every
// caller in this file passes NoRef; the parameter exists so a future
// caller that has already committed to a typeRef, the way the original
// occasionally does, can still reuse this helper).
func (p *parser) parseFunctionPrototype(retType ast.Ref) ast.Ref {
	pos := p.tok.Pos
	if retType == ast.NoRef {
		retType = p.parseTypeRef()
	}
	name := p.parseName()
	params := p.parseParenParameterList()
	return p.tree.New(ast.KindFunctionPrototype, pos, &ast.FunctionPrototypeData{ReturnType: retType, Name: name, Params: params})
}

// --- Table declarations -------------------------------------------------

func (p *parser) parseTableDecl() ast.Ref {
	pos := p.expect(token.KW_TABLE)
	name := p.parseName()
	p.expect(token.LBRACE)
	props := p.parseTablePropertyList()
	p.expect(token.RBRACE)
	return p.tree.New(ast.KindTableDecl, pos, &ast.TableDeclData{Name: name, Properties: props})
}

func (p *parser) startsTableProperty() bool {
	return p.tok.Kind == token.KW_CONST || p.tok.Kind == token.IDENT || p.tok.Kind == token.TYPE_IDENT
}

func (p *parser) parseTablePropertyList() ast.Ref {
	list, lb := p.tree.NewList(ast.KindTablePropertyList, p.tok.Pos)
	for p.startsTableProperty() {
		lb.Append(p.parseTableProperty())
	}
	return list
}

// parseTableProperty dispatches on the property name's lexeme rather
// than its token kind: neither key/actions/entries nor
// default_action/size has a dedicated keyword in this port's
// internal/token (the original reserves key/actions/entries as fixed
// tokens but, like this port, treats default_action/size as plain
// names recognized only by the table-property grammar — see
// parse_tableProperty's simpleProperty fallback). `entries` is left
// unsupported, matching the existing decision recorded in DESIGN.md.
func (p *parser) parseTableProperty() ast.Ref {
	pos := p.tok.Pos
	// `const` may prefix any table property in the source grammar but
	// this port's property payloads carry no const flag, so (like a
	// local `const` variable declaration) it is accepted and dropped.
	p.accept(token.KW_CONST)
	if p.tok.Kind != token.IDENT && p.tok.Kind != token.TYPE_IDENT {
		p.errorExpected(pos, "table property")
		return ast.NoRef
	}
	name := p.tok.Lexeme
	switch name {
	case "key":
		p.next()
		p.expect(token.ASSIGN)
		p.expect(token.LBRACE)
		elems := p.parseTableKeyElemList()
		p.expect(token.RBRACE)
		return p.tree.New(ast.KindTableKeyProperty, pos, &ast.TableKeyPropertyData{Elems: elems})
	case "actions":
		p.next()
		p.expect(token.ASSIGN)
		p.expect(token.LBRACE)
		refs := p.parseActionRefList()
		p.expect(token.RBRACE)
		return p.tree.New(ast.KindTableActionsProperty, pos, &ast.TableActionsPropertyData{Refs: refs})
	case "default_action":
		p.next()
		p.expect(token.ASSIGN)
		ref := p.parseActionRef()
		p.expect(token.SEMICOLON)
		return p.tree.New(ast.KindTableDefaultActionProperty, pos, &ast.TableDefaultActionPropertyData{Ref: ref})
	case "size":
		p.next()
		p.expect(token.ASSIGN)
		expr := p.parseExpr(1)
		p.expect(token.SEMICOLON)
		return p.tree.New(ast.KindTableSizeProperty, pos, &ast.TableSizePropertyData{Expr: expr})
	default:
		p.errf(pos, "table property %q is not supported", name)
		return ast.NoRef
	}
}

func (p *parser) parseTableKeyElemList() ast.Ref {
	list, lb := p.tree.NewList(ast.KindTableKeyElemList, p.tok.Pos)
	for p.startsExpr() {
		lb.Append(p.parseTableKeyElem())
	}
	return list
}

func (p *parser) parseTableKeyElem() ast.Ref {
	pos := p.tok.Pos
	expr := p.parseExpr(1)
	p.expect(token.COLON)
	mk := p.parseName()
	p.expect(token.SEMICOLON)
	return p.tree.New(ast.KindTableKeyElem, pos, &ast.TableKeyElemData{Expr: expr, MatchKind: mk})
}

// parseActionRefList requires a trailing ';' after every entry, even
// the last one, per parse_actionList.
func (p *parser) parseActionRefList() ast.Ref {
	list, lb := p.tree.NewList(ast.KindActionRefList, p.tok.Pos)
	for p.tok.Kind == token.IDENT {
		lb.Append(p.parseActionRef())
		p.expect(token.SEMICOLON)
	}
	return list
}

// parseActionRef uses a plain IDENT for the action name (like
// parse_nonTypeName in the original), never parseName's IDENT-or-
// TYPE_IDENT fallback: an actions-list entry is always a reference to
// an action declared in the same control, which this port's flat
// typeScope never retags (actions are never bound into Type
// namespace).
func (p *parser) parseActionRef() ast.Ref {
	pos := p.tok.Pos
	if p.tok.Kind != token.IDENT {
		p.errorExpected(pos, "action name")
	}
	lit := p.tok.Lexeme
	p.next()
	name := p.tree.New(ast.KindIdent, pos, &ast.IdentData{Name: lit})
	args := ast.NoRef
	if p.tok.Kind == token.LPAREN {
		args = p.parseArgumentList()
	}
	return p.tree.New(ast.KindActionRef, pos, &ast.ActionRefData{Name: name, Args: args})
}
