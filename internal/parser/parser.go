// Package parser implements the recursive-descent parser for P4-16
// source text described in spec.md §4.3.
//
// Its (tok, next, expect, errorExpected) skeleton is grounded on
// cue/parser/parser.go's one-token-lookahead parser struct; the grammar
// production set, the lexer-feedback protocol (an identifier is
// retagged TYPE_IDENT the moment its name has a Type-namespace binding
// in the scope the parser is seeding as it goes), and the precedence
// table are grounded on original_source/parse.c, which CUE's grammar
// has no equivalent for.
package parser

import (
	"github.com/dfrunza/p4c/internal/ast"
	"github.com/dfrunza/p4c/internal/container"
	"github.com/dfrunza/p4c/internal/errors"
	"github.com/dfrunza/p4c/internal/scanner"
	"github.com/dfrunza/p4c/internal/scope"
	"github.com/dfrunza/p4c/internal/token"
)

// parser holds all state for one parse of one source file. Unlike
// cue/parser's parser, it carries a typeScope: P4-16 restricts every
// type-introducing declaration (typedef, struct, header, header union,
// enum, parser/control/package type, extern type) to the top level of
// the program, so one flat scope seeded as each is parsed is
// sufficient to drive lexer feedback for the rest of the file; the
// full nested scope tree is built afterward by internal/scope's
// ScopeHierarchyPass, which nests its scopes under this same root, so
// the Type bindings made here are the ones NameBindingPass later
// resolves type names against.
//
// tokens is the whole file's token stream, materialized once by
// scanner.ScanAll before parsing starts (spec §3, §4.3; invariant L1,
// §8): idx is the position of the next token scanRaw has not yet
// handed out. The parser never calls a Scanner directly — it only
// indexes into tokens — so lexer feedback (retagging IDENT to
// TYPE_IDENT) is the only thing left to apply at consumption time,
// since it depends on typeScope's state as parsing proceeds, not on
// anything the tokens vector itself can precompute.
type parser struct {
	tree      *ast.Tree
	tokens    *container.Vector[token.Token]
	idx       int
	file      *token.File
	filename  string
	typeScope *scope.Scope

	tok    token.Token
	peeked *token.Token
}

// abort unwinds the parser's call stack the moment an unexpected token
// is found. Spec §4.3: "the parser does not attempt recovery; partial
// trees are never handed to semantic analysis" — so a single panic/
// recover at the Parse entry point stands in for cue/parser's
// bounded-error-count recovery loop, which has no job to do here.
type abort struct{ err *errors.Error }

func (p *parser) errf(pos token.Pos, format string, args ...any) {
	panic(abort{errors.New(errors.Syntactic, p.filename, pos, format, args...)})
}

func (p *parser) errorExpected(pos token.Pos, want string) {
	if p.tok.Lexeme != "" {
		p.errf(pos, "expected %s, found %q", want, p.tok.Lexeme)
	} else {
		p.errf(pos, "expected %s, found '%s'", want, p.tok.Kind)
	}
}

// scanRaw hands out the next token of the materialized stream and
// applies lexer feedback: a plain IDENT whose lexeme already has a
// Type-namespace (or Keyword-namespace) binding in typeScope is
// retagged TYPE_IDENT before the parser ever sees it, exactly as spec
// §4.3 describes. Fixed lexical keywords never reach here as IDENT in
// the first place — token.Lookup already retags those inside the
// scanner, before the token is even appended to tokens.
//
// This retagging cannot be precomputed when tokens is built: typeScope
// is seeded incrementally by bindType as declarations are parsed, so
// whether a given IDENT is "really" a TYPE_IDENT depends on how much of
// the file has been parsed already, not on the source text alone.
// idx only ever advances (the parser never re-derives a token it has
// already handed out), so each token is retagged exactly once, at the
// same point in typeScope's evolution the old on-demand scanner call
// would have seen.
func (p *parser) scanRaw() token.Token {
	tok := p.tokens.Get(p.idx)
	if p.idx < p.tokens.Len()-1 {
		p.idx++
	}
	if tok.Kind == token.IDENT {
		if decl, _ := scope.Resolve(p.typeScope, tok.Lexeme, scope.Type|scope.Keyword); decl != nil {
			tok.Kind = token.TYPE_IDENT
		}
	}
	return tok
}

// next advances to the next token, consuming a buffered peek if one is
// pending.
func (p *parser) next() {
	if p.peeked != nil {
		p.tok = *p.peeked
		p.peeked = nil
		return
	}
	p.tok = p.scanRaw()
}

// peek returns the token after the current one without consuming it.
// It disambiguates `(TypeName.member)` from a cast at the start of a
// parenthesized expression (spec §4.3's `parse_expression` case for
// `(<typeName>.<name>)`), an extern function from an extern type in
// parseExternDecl, and a constructor from an ordinary method in
// parseMethodPrototype.
func (p *parser) peek() token.Token {
	if p.peeked == nil {
		t := p.scanRaw()
		p.peeked = &t
	}
	return *p.peeked
}

func (p *parser) expect(k token.Kind) token.Pos {
	pos := p.tok.Pos
	if p.tok.Kind != k {
		p.errorExpected(pos, "'"+k.String()+"'")
	}
	p.next()
	return pos
}

func (p *parser) accept(k token.Kind) bool {
	if p.tok.Kind == k {
		p.next()
		return true
	}
	return false
}

// bindType installs an identifier's Type-namespace binding into
// typeScope the moment its declaration is parsed (spec §4.3's "scope
// seeding"), so every subsequent occurrence of the name lexes as
// TYPE_IDENT for the remainder of the file.
func (p *parser) bindType(name string, declNode ast.Ref) {
	p.typeScope.Bind(name, scope.Type, declNode)
}

// parseIdent consumes an IDENT token and returns an Ident node; callers
// that already know the use is in the type namespace call
// parseTypeIdent instead.
func (p *parser) parseIdent() ast.Ref {
	if p.tok.Kind != token.IDENT {
		p.errorExpected(p.tok.Pos, "identifier")
	}
	pos, lit := p.tok.Pos, p.tok.Lexeme
	p.next()
	return p.tree.New(ast.KindIdent, pos, &ast.IdentData{Name: lit})
}

// parseName consumes a name token in Var-namespace position: either
// IDENT, or TYPE_IDENT when the name happens to collide with a type
// name bound elsewhere in typeScope (spec §4.3's lexer feedback has no
// notion of lexical scope nesting while parsing, so a local variable
// can legitimately be declared with the same spelling as an unrelated
// top-level type — original_source/parse.c's token_is_name accepts
// both for exactly this reason). The returned node is always an Ident,
// never a TypeIdent, since the use is in the value namespace regardless
// of which token kind the scanner guessed.
func (p *parser) parseName() ast.Ref {
	if p.tok.Kind != token.IDENT && p.tok.Kind != token.TYPE_IDENT {
		p.errorExpected(p.tok.Pos, "name")
	}
	pos, lit := p.tok.Pos, p.tok.Lexeme
	p.next()
	return p.tree.New(ast.KindIdent, pos, &ast.IdentData{Name: lit})
}

func (p *parser) parseTypeIdent() ast.Ref {
	if p.tok.Kind != token.TYPE_IDENT {
		p.errorExpected(p.tok.Pos, "type identifier")
	}
	pos, lit := p.tok.Pos, p.tok.Lexeme
	p.next()
	return p.tree.New(ast.KindTypeIdent, pos, &ast.TypeIdentData{Name: lit})
}

// newParser prepares a parser over src (filename is used only for
// diagnostics), seeded with root as the sole scope the parser itself
// binds type declarations into. The whole file is tokenized up front by
// scanner.ScanAll, bookended by START_OF_INPUT/END_OF_INPUT per
// invariant L1; idx starts at 1 to skip the leading START_OF_INPUT
// sentinel, which the parser itself never needs to see (it exists for
// the token stream's own shape, not for anything the grammar matches
// on).
func newParser(tree *ast.Tree, filename string, src []byte, root *scope.Scope) *parser {
	file := token.NewFile(filename, len(src))
	eh := func(pos token.Pos, msg string) {
		panic(abort{errors.New(errors.Lexical, filename, pos, "%s", msg)})
	}
	tokens := scanner.ScanAll(tree.Arena(), file, src, eh, 0)
	p := &parser{tree: tree, tokens: tokens, idx: 1, file: file, filename: filename, typeScope: root}
	p.next()
	return p
}

// Parse parses src (one compilation unit, per spec §6) into tree, using
// root as the scope type declarations are bound into as they are
// parsed. It returns the Program node's Ref, or a located Error the
// moment parsing cannot continue.
func Parse(tree *ast.Tree, filename string, src []byte, root *scope.Scope) (program ast.Ref, err *errors.Error) {
	defer func() {
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok {
				panic(r)
			}
			err = a.err
		}
	}()
	p := newParser(tree, filename, src, root)
	return p.parseProgram(), nil
}
