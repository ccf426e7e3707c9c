package types

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/dfrunza/p4c/internal/arena"
	"github.com/dfrunza/p4c/internal/ast"
	"github.com/dfrunza/p4c/internal/scope"
	"github.com/dfrunza/p4c/internal/token"
)

func TestEquivBitWidthMustMatch(t *testing.T) {
	qt.Assert(t, qt.IsTrue(Equiv(BitType(8), BitType(8))))
	qt.Assert(t, qt.IsFalse(Equiv(BitType(8), BitType(16))))
}

func TestEquivAnyMatchesEverything(t *testing.T) {
	qt.Assert(t, qt.IsTrue(Equiv(AnyType, BitType(32))))
}

func TestEquivNominalTypesAreIdentityOnly(t *testing.T) {
	a := &Type{Kind: Struct, Name: "metadata_t"}
	b := &Type{Kind: Struct, Name: "metadata_t"}
	qt.Assert(t, qt.IsTrue(Equiv(a, a)))
	qt.Assert(t, qt.IsFalse(Equiv(a, b)))
}

func TestActualAndEffectiveTypeUnwrap(t *testing.T) {
	bit8 := BitType(8)
	ref := &Type{Kind: NameRef, Target: bit8}
	qt.Assert(t, qt.Equals(ActualType(ref), bit8))

	alias := &Type{Kind: Typedef, Name: "byte_t", Target: ref}
	qt.Assert(t, qt.Equals(EffectiveType(alias), bit8))
}

func TestBinaryResultTypesArithmetic(t *testing.T) {
	out := BinaryResultTypes(int(token.PLUS), []*Type{BitType(8)}, []*Type{BitType(8)})
	qt.Assert(t, qt.HasLen(out, 1))
	qt.Assert(t, qt.IsTrue(Equiv(out[0], BitType(8))))

	none := BinaryResultTypes(int(token.PLUS), []*Type{BitType(8)}, []*Type{BitType(16)})
	qt.Assert(t, qt.HasLen(none, 0))
}

func TestBinaryResultTypesComparison(t *testing.T) {
	out := BinaryResultTypes(int(token.EQ), []*Type{BitType(8)}, []*Type{BitType(8)})
	qt.Assert(t, qt.HasLen(out, 1))
	qt.Assert(t, qt.Equals(out[0], BoolType))
}

func TestPotentialTypeSetCanonicalizesDuplicates(t *testing.T) {
	pt := SetOf(BitType(8), BitType(8), BoolType)
	qt.Assert(t, qt.HasLen(pt.Set, 2))
}

func TestSynthesisAndSelectionOfLiteralBinaryExpr(t *testing.T) {
	a := arena.New()
	defer a.Free()
	tr := ast.NewTree(a)
	root := scope.NewRoot(a)

	one := tr.New(ast.KindIntLiteral, token.NoPos, &ast.IntLiteralData{Lexeme: "1"})
	two := tr.New(ast.KindIntLiteral, token.NoPos, &ast.IntLiteralData{Lexeme: "2"})
	bin := tr.New(ast.KindBinaryExpr, token.NoPos, &ast.BinaryExprData{Op: int(token.PLUS), Left: one, Right: two})
	exprStmt := tr.New(ast.KindExprStmt, token.NoPos, &ast.ExprStmtData{Expr: bin})
	program := tr.New(ast.KindProgram, token.NoPos, &ast.ProgramData{Decls: exprStmt})

	scopeMap := scope.Run(a, tr, program, root)
	declMap, useScopeMap, declNameRefs := scope.RunBinding(tr, scopeMap, root, program)
	ix := NewIndex(tr, declMap)
	potentials := RunSynthesis(tr, useScopeMap, declMap, declNameRefs, ix, program)

	binPt := potentials[bin]
	qt.Assert(t, qt.IsTrue(binPt != nil))
	qt.Assert(t, qt.HasLen(binPt.Set, 1))

	env, errs := RunSelection(tr, potentials, ix, "test.p4", program)
	qt.Assert(t, qt.Equals(errs.Len(), 0))
	qt.Assert(t, qt.IsTrue(Equiv(env[bin], IntType())))
	qt.Assert(t, qt.IsTrue(Equiv(env[one], IntType())))
}

func TestSelectionReportsAmbiguousSite(t *testing.T) {
	a := arena.New()
	defer a.Free()
	tr := ast.NewTree(a)

	r := tr.New(ast.KindIntLiteral, token.NoPos, &ast.IntLiteralData{Lexeme: "1"})
	potentials := Env{r: SetOf(BitType(8), BitType(16))}
	ix := NewIndex(tr, nil)

	p := NewSelectTypePass(tr, potentials, ix, "test.p4")
	got := p.Select(r, nil)
	qt.Assert(t, qt.Equals(p.Errs.Len(), 1))
	qt.Assert(t, qt.IsTrue(got != nil))
}
