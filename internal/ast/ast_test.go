package ast

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/dfrunza/p4c/internal/arena"
	"github.com/dfrunza/p4c/internal/token"
)

func TestListBuilderAppendsInOrder(t *testing.T) {
	a := arena.New()
	defer a.Free()
	tr := NewTree(a)

	list, b := tr.NewList(KindIdentifierList, token.NoPos)
	id1 := tr.New(KindIdent, token.NoPos, &IdentData{Name: "a"})
	id2 := tr.New(KindIdent, token.NoPos, &IdentData{Name: "b"})
	id3 := tr.New(KindIdent, token.NoPos, &IdentData{Name: "c"})
	b.Append(id1)
	b.Append(id2)
	b.Append(id3)

	kids := tr.Children(list)
	qt.Assert(t, qt.HasLen(kids, 3))
	qt.Assert(t, qt.Equals(kids[0], id1))
	qt.Assert(t, qt.Equals(kids[1], id2))
	qt.Assert(t, qt.Equals(kids[2], id3))
}

func TestPayloadChildrenDispatch(t *testing.T) {
	a := arena.New()
	defer a.Free()
	tr := NewTree(a)

	left := tr.New(KindIntLiteral, token.NoPos, &IntLiteralData{Lexeme: "1"})
	right := tr.New(KindIntLiteral, token.NoPos, &IntLiteralData{Lexeme: "2"})
	bin := tr.New(KindBinaryExpr, token.NoPos, &BinaryExprData{Op: int(token.PLUS), Left: left, Right: right})

	kids := tr.Children(bin)
	qt.Assert(t, qt.DeepEquals(kids, []Ref{left, right}))
}

func TestWalkVisitsEveryNodeOnce(t *testing.T) {
	a := arena.New()
	defer a.Free()
	tr := NewTree(a)

	left := tr.New(KindIntLiteral, token.NoPos, &IntLiteralData{Lexeme: "1"})
	right := tr.New(KindIntLiteral, token.NoPos, &IntLiteralData{Lexeme: "2"})
	bin := tr.New(KindBinaryExpr, token.NoPos, &BinaryExprData{Op: int(token.PLUS), Left: left, Right: right})

	var visited []Kind
	Walk(tr, bin, &collector{visited: &visited})
	qt.Assert(t, qt.DeepEquals(visited, []Kind{KindIntLiteral, KindIntLiteral, KindBinaryExpr}))
}

type collector struct {
	BaseVisitor
	visited *[]Kind
}

func (c *collector) Leave(t *Tree, r Ref) {
	*c.visited = append(*c.visited, t.Get(r).Kind)
}

func TestOptionalChildSkippedWhenNoRef(t *testing.T) {
	a := arena.New()
	defer a.Free()
	tr := NewTree(a)

	cond := tr.New(KindBoolLiteral, token.NoPos, &BoolLiteralData{Value: true})
	then := tr.New(KindBlockStatement, token.NoPos, &BlockStatementData{Statements: NoRef})
	ifStmt := tr.New(KindIfStmt, token.NoPos, &IfStmtData{Cond: cond, Then: then, Else: NoRef})

	kids := tr.Children(ifStmt)
	qt.Assert(t, qt.HasLen(kids, 2))
}
