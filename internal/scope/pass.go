package scope

import (
	"github.com/dfrunza/p4c/internal/arena"
	"github.com/dfrunza/p4c/internal/ast"
)

// scopeOpeningKinds is the fixed node-kind set spec §4.5 names:
// "program root; parser, control, package, extern, header,
// header-union, struct, enum, error, match-kind, parser state, parser
// block, function prototype, action, table, switch block, general
// block statement".
var scopeOpeningKinds = map[ast.Kind]bool{
	ast.KindProgram:             true,
	ast.KindParserDecl:          true,
	ast.KindControlDecl:         true,
	ast.KindPackageTypeDecl:     true,
	ast.KindExternTypeDecl:      true,
	ast.KindHeaderTypeDecl:      true,
	ast.KindHeaderUnionDecl:     true,
	ast.KindStructTypeDecl:      true,
	ast.KindEnumDecl:            true,
	ast.KindErrorDecl:           true,
	ast.KindMatchKindDecl:       true,
	ast.KindParserState:         true,
	ast.KindParserBlockStatement: true,
	ast.KindFunctionPrototype:   true,
	ast.KindActionDecl:          true,
	ast.KindTableDecl:           true,
	ast.KindSwitchStmt:          true,
	ast.KindBlockStatement:      true,
}

// Map records, for every node that opens a scope, the Scope created for
// it (spec §3's "scope map", used by later passes to recover the scope
// active at any point in the tree).
type Map map[ast.Ref]*Scope

// HierarchyPass implements ScopeHierarchyPass (spec §4.5): it walks the
// tree in source order, pushing a new Scope at every scope-opening node
// (child of whatever scope was active) and popping it on the way back
// out, recording every pushed scope into ScopeMap.
type HierarchyPass struct {
	ast.BaseVisitor
	a        *arena.Arena
	ScopeMap Map
	stack    []*Scope
}

// NewHierarchyPass prepares a pass that nests new scopes under root.
func NewHierarchyPass(a *arena.Arena, root *Scope) *HierarchyPass {
	return &HierarchyPass{a: a, ScopeMap: make(Map), stack: []*Scope{root}}
}

func (p *HierarchyPass) current() *Scope { return p.stack[len(p.stack)-1] }

func (p *HierarchyPass) Enter(t *ast.Tree, r ast.Ref) bool {
	n := t.Get(r)
	if scopeOpeningKinds[n.Kind] {
		s := Push(p.a, p.current())
		p.ScopeMap[r] = s
		p.stack = append(p.stack, s)
	}
	return true
}

func (p *HierarchyPass) Leave(t *ast.Tree, r ast.Ref) {
	n := t.Get(r)
	if scopeOpeningKinds[n.Kind] {
		p.stack = p.stack[:len(p.stack)-1]
	}
}

// Run executes the pass over root's subtree and returns the populated
// scope map.
func Run(a *arena.Arena, t *ast.Tree, program ast.Ref, root *Scope) Map {
	p := NewHierarchyPass(a, root)
	ast.Walk(t, program, p)
	return p.ScopeMap
}
