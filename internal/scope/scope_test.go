package scope

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/dfrunza/p4c/internal/arena"
	"github.com/dfrunza/p4c/internal/ast"
	"github.com/dfrunza/p4c/internal/token"
)

func TestRootPreloadsBuiltinTypes(t *testing.T) {
	a := arena.New()
	defer a.Free()
	root := NewRoot(a)

	decl, found := Resolve(root, "bit", Type)
	qt.Assert(t, qt.IsTrue(found != nil))
	qt.Assert(t, qt.Equals(decl.Namespace, Type))

	_, parentlessFound := root.Entry("bit")
	qt.Assert(t, qt.IsTrue(parentlessFound))
}

func TestBuiltinStatesPreloadedAsVar(t *testing.T) {
	a := arena.New()
	defer a.Free()
	root := NewRoot(a)

	decl, _ := Resolve(root, "accept", Var)
	qt.Assert(t, qt.IsTrue(decl != nil))
	qt.Assert(t, qt.Equals(decl.Namespace, Var))
}

func TestShadowingIsNewestFirst(t *testing.T) {
	a := arena.New()
	defer a.Free()
	root := NewRoot(a)
	child := Push(a, root)

	outer := child.Bind("x", Var, ast.Ref(1))
	inner := child.Bind("x", Var, ast.Ref(2))

	decls := child.Declarations("x", Var)
	qt.Assert(t, qt.HasLen(decls, 2))
	qt.Assert(t, qt.Equals(decls[0], inner))
	qt.Assert(t, qt.Equals(decls[1], outer))
}

func TestResolveWalksParentChain(t *testing.T) {
	a := arena.New()
	defer a.Free()
	root := NewRoot(a)
	child := Push(a, root)
	grandchild := Push(a, child)

	child.Bind("y", Var, ast.Ref(7))

	decl, found := Resolve(grandchild, "y", Var)
	qt.Assert(t, qt.IsTrue(decl != nil))
	qt.Assert(t, qt.Equals(found, child))
}

func TestNamespacesCoexistForSameName(t *testing.T) {
	a := arena.New()
	defer a.Free()
	root := NewRoot(a)
	s := Push(a, root)

	s.Bind("hdr", Var, ast.Ref(1))
	s.Bind("hdr", Type, ast.Ref(2))

	varDecl, _ := Resolve(s, "hdr", Var)
	typeDecl, _ := Resolve(s, "hdr", Type)
	qt.Assert(t, qt.Equals(varDecl.Namespace, Var))
	qt.Assert(t, qt.Equals(typeDecl.Namespace, Type))
}

func TestHierarchyPassCreatesNestedScopesWithRootAncestor(t *testing.T) {
	a := arena.New()
	defer a.Free()
	tr := ast.NewTree(a)
	root := NewRoot(a)

	stmts, _ := tr.NewList(ast.KindStatementList, token.NoPos)
	block := tr.New(ast.KindBlockStatement, token.NoPos, &ast.BlockStatementData{Statements: stmts})

	program := tr.New(ast.KindProgram, token.NoPos, &ast.ProgramData{Decls: block})

	scopeMap := Run(a, tr, program, root)

	progScope, ok := scopeMap[program]
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(progScope.Parent, root))

	blockScope, ok := scopeMap[block]
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(blockScope.Parent, progScope))
}

func TestBindingPassResolvesVariableUse(t *testing.T) {
	a := arena.New()
	defer a.Free()
	tr := ast.NewTree(a)
	root := NewRoot(a)

	typeRef := tr.New(ast.KindTypeRef, token.NoPos, &ast.TypeRefData{Base: tr.New(ast.KindBaseTypeBool, token.NoPos, nil)})
	name := tr.New(ast.KindIdent, token.NoPos, &ast.IdentData{Name: "ok"})
	decl := tr.New(ast.KindVariableDecl, token.NoPos, &ast.VariableDeclData{Type: typeRef, Name: name, Init: ast.NoRef})

	use := tr.New(ast.KindIdent, token.NoPos, &ast.IdentData{Name: "ok"})
	exprStmt := tr.New(ast.KindExprStmt, token.NoPos, &ast.ExprStmtData{Expr: use})

	stmts, sb := tr.NewList(ast.KindStatementList, token.NoPos)
	sb.Append(decl)
	sb.Append(exprStmt)
	block := tr.New(ast.KindBlockStatement, token.NoPos, &ast.BlockStatementData{Statements: stmts})
	program := tr.New(ast.KindProgram, token.NoPos, &ast.ProgramData{Decls: block})

	scopeMap := Run(a, tr, program, root)
	declMap, _, _ := RunBinding(tr, scopeMap, root, program)

	resolved, found := declMap[use]
	qt.Assert(t, qt.IsTrue(found))
	qt.Assert(t, qt.Equals(resolved.Node, decl))
}

func TestErrorDeclMembersBindToRootScope(t *testing.T) {
	a := arena.New()
	defer a.Free()
	tr := ast.NewTree(a)
	root := NewRoot(a)

	members, mb := tr.NewList(ast.KindIdentifierList, token.NoPos)
	member := tr.New(ast.KindIdent, token.NoPos, &ast.IdentData{Name: "PacketTooShort"})
	mb.Append(member)
	errDecl := tr.New(ast.KindErrorDecl, token.NoPos, &ast.ErrorDeclData{Members: members})

	program := tr.New(ast.KindProgram, token.NoPos, &ast.ProgramData{Decls: errDecl})

	scopeMap := Run(a, tr, program, root)
	RunBinding(tr, scopeMap, root, program)

	decl, found := root.Entry("PacketTooShort")
	qt.Assert(t, qt.IsTrue(found))
	qt.Assert(t, qt.IsTrue(decl.Var != nil))
}
