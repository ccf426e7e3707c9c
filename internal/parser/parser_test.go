package parser

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/dfrunza/p4c/internal/arena"
	"github.com/dfrunza/p4c/internal/ast"
	"github.com/dfrunza/p4c/internal/scope"
	"github.com/dfrunza/p4c/internal/token"
)

// mustParse parses src and fails the test with the located error message
// if parsing does not succeed.
func mustParse(t *testing.T, src string) (*ast.Tree, ast.Ref) {
	t.Helper()
	a := arena.New()
	t.Cleanup(a.Free)
	tree := ast.NewTree(a)
	root := scope.NewRoot(a)
	prog, err := Parse(tree, "test.p4", []byte(src), root)
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err.Error())
	}
	return tree, prog
}

// declsOf returns the Program node's top-level declaration list as a
// slice of child Refs, in source order.
func declsOf(tree *ast.Tree, prog ast.Ref) []ast.Ref {
	data := tree.Get(prog).Payload.(*ast.ProgramData)
	return tree.ListChildren(data.Decls)
}

// TestTokenStreamBookends checks invariant L1 (spec §8): the
// materialized token stream newParser builds always begins with
// START_OF_INPUT and ends with exactly one END_OF_INPUT, regardless of
// what the source text contains.
func TestTokenStreamBookends(t *testing.T) {
	a := arena.New()
	t.Cleanup(a.Free)
	tree := ast.NewTree(a)
	root := scope.NewRoot(a)

	p := newParser(tree, "test.p4", []byte(`const bit<8> x = 1;`), root)
	qt.Assert(t, qt.IsTrue(p.tokens.Len() > 2))
	qt.Assert(t, qt.Equals(p.tokens.Get(0).Kind, token.STARTOFINPUT))
	qt.Assert(t, qt.Equals(p.tokens.Get(p.tokens.Len()-1).Kind, token.ENDOFINPUT))

	for i := 0; i < p.tokens.Len()-1; i++ {
		qt.Assert(t, qt.IsTrue(p.tokens.Get(i).Kind != token.ENDOFINPUT))
	}
}

func TestParseConstantDecl(t *testing.T) {
	tree, prog := mustParse(t, `const bit<8> VERSION = 1;`)
	decls := declsOf(tree, prog)
	qt.Assert(t, qt.HasLen(decls, 1))
	node := tree.Get(decls[0])
	qt.Assert(t, qt.Equals(node.Kind, ast.KindConstantDecl))
	data := node.Payload.(*ast.ConstantDeclData)
	name := tree.Get(data.Name).Payload.(*ast.IdentData)
	qt.Assert(t, qt.Equals(name.Name, "VERSION"))
	lit := tree.Get(data.Init).Payload.(*ast.IntLiteralData)
	qt.Assert(t, qt.Equals(lit.Lexeme, "1"))
}

func TestParseHeaderAndStructCrossReference(t *testing.T) {
	src := `
header Ethernet_h {
    bit<48> dstAddr;
    bit<48> srcAddr;
    bit<16> etherType;
}

struct Headers {
    Ethernet_h ethernet;
}
`
	tree, prog := mustParse(t, src)
	decls := declsOf(tree, prog)
	qt.Assert(t, qt.HasLen(decls, 2))

	hdr := tree.Get(decls[0])
	qt.Assert(t, qt.Equals(hdr.Kind, ast.KindHeaderTypeDecl))
	hdrData := hdr.Payload.(*ast.HeaderTypeDeclData)
	fields := tree.ListChildren(hdrData.Fields)
	qt.Assert(t, qt.HasLen(fields, 3))

	st := tree.Get(decls[1])
	qt.Assert(t, qt.Equals(st.Kind, ast.KindStructTypeDecl))
	stData := st.Payload.(*ast.StructTypeDeclData)
	stFields := tree.ListChildren(stData.Fields)
	qt.Assert(t, qt.HasLen(stFields, 1))
	field := tree.Get(stFields[0]).Payload.(*ast.StructFieldData)
	ty := tree.Get(field.Type).Payload.(*ast.TypeRefData)
	base := tree.Get(ty.Base).Payload.(*ast.TypeIdentData)
	qt.Assert(t, qt.Equals(base.Name, "Ethernet_h"))
}

func TestParseEnumWithUnderlyingType(t *testing.T) {
	src := `
enum bit<8> Color {
    RED = 0,
    GREEN = 1,
    BLUE = 2
}
`
	tree, prog := mustParse(t, src)
	decls := declsOf(tree, prog)
	qt.Assert(t, qt.HasLen(decls, 1))
	node := tree.Get(decls[0])
	qt.Assert(t, qt.Equals(node.Kind, ast.KindEnumDecl))
	data := node.Payload.(*ast.EnumDeclData)
	qt.Assert(t, qt.IsTrue(data.UnderType != ast.NoRef))
	members := tree.ListChildren(data.Members)
	qt.Assert(t, qt.HasLen(members, 3))
	for i, want := range []string{"RED", "GREEN", "BLUE"} {
		m := tree.Get(members[i]).Payload.(*ast.SpecifiedIdentifierData)
		name := tree.Get(m.Name).Payload.(*ast.IdentData)
		qt.Assert(t, qt.Equals(name.Name, want))
		qt.Assert(t, qt.IsTrue(m.Init != ast.NoRef))
	}
}

func TestParseErrorAndMatchKindDecls(t *testing.T) {
	src := `
error {
    NoError,
    PacketTooShort
}

match_kind {
    exact,
    ternary,
    lpm
}
`
	tree, prog := mustParse(t, src)
	decls := declsOf(tree, prog)
	qt.Assert(t, qt.HasLen(decls, 2))
	errData := tree.Get(decls[0]).Payload.(*ast.ErrorDeclData)
	qt.Assert(t, qt.HasLen(tree.ListChildren(errData.Members), 2))
	mkData := tree.Get(decls[1]).Payload.(*ast.MatchKindDeclData)
	qt.Assert(t, qt.HasLen(tree.ListChildren(mkData.Members), 3))
}

func TestParseTypedefOfHeaderStack(t *testing.T) {
	src := `
header Raw_h {
    bit<8> b;
}

typedef Raw_h[4] RawStack;
`
	tree, prog := mustParse(t, src)
	decls := declsOf(tree, prog)
	qt.Assert(t, qt.HasLen(decls, 2))
	data := tree.Get(decls[1]).Payload.(*ast.TypedefDeclData)
	ty := tree.Get(data.Type).Payload.(*ast.TypeRefData)
	qt.Assert(t, qt.Equals(tree.Get(ty.Base).Kind, ast.KindHeaderStackType))
}

// TestParseParserWithExternAndSelect exercises an extern type with a
// method prototype, a parser type/declaration pair with a local
// variable, a member-expression call chain, and a select transition
// whose default case targets the builtin "accept" state.
func TestParseParserWithExternAndSelect(t *testing.T) {
	src := `
extern Checksum {
    Checksum();
    void update(in bit<32> data);
    bool verify();
}

extern packet_in {
}

header Ethernet_h {
    bit<16> etherType;
}

struct Headers {
    Ethernet_h ethernet;
}

parser EthParser(packet_in pkt, out Headers hdr) {
    Checksum() ck;
    bit<16> next_type;

    state start {
        pkt.extract(hdr.ethernet);
        next_type = hdr.ethernet.etherType;
        transition select(next_type) {
            0x0800: accept;
            default: accept;
        }
    }
}
`
	tree, prog := mustParse(t, src)
	decls := declsOf(tree, prog)
	qt.Assert(t, qt.HasLen(decls, 6))

	ext := tree.Get(decls[0])
	qt.Assert(t, qt.Equals(ext.Kind, ast.KindExternTypeDecl))
	extData := ext.Payload.(*ast.ExternTypeDeclData)
	methods := tree.ListChildren(extData.Methods)
	qt.Assert(t, qt.HasLen(methods, 3))

	parserProto := tree.Get(decls[4])
	qt.Assert(t, qt.Equals(parserProto.Kind, ast.KindParserTypeDecl))

	parserDecl := tree.Get(decls[5])
	qt.Assert(t, qt.Equals(parserDecl.Kind, ast.KindParserDecl))
	pData := parserDecl.Payload.(*ast.ParserDeclData)
	locals := tree.ListChildren(pData.Locals)
	qt.Assert(t, qt.HasLen(locals, 2))
	qt.Assert(t, qt.Equals(tree.Get(locals[0]).Kind, ast.KindInstantiation))
	qt.Assert(t, qt.Equals(tree.Get(locals[1]).Kind, ast.KindVariableDecl))

	states := tree.ListChildren(pData.States)
	qt.Assert(t, qt.HasLen(states, 1))
	state := tree.Get(states[0]).Payload.(*ast.ParserStateData)
	stmts := tree.ListChildren(state.Statements)
	qt.Assert(t, qt.HasLen(stmts, 2))

	transition := tree.Get(state.Transition).Payload.(*ast.TransitionStmtData)
	sel := tree.Get(transition.Target).Payload.(*ast.SelectExprData)
	cases := tree.ListChildren(sel.Cases)
	qt.Assert(t, qt.HasLen(cases, 2))
	defaultCase := tree.Get(cases[1]).Payload.(*ast.SelectCaseData)
	keyset := tree.Get(defaultCase.Keyset).Payload.(*ast.KeysetExprSimpleData)
	ident := tree.Get(keyset.Expr).Payload.(*ast.IdentData)
	qt.Assert(t, qt.Equals(ident.Name, "default"))
	stateName := tree.Get(defaultCase.State).Payload.(*ast.StateExprNameData)
	targetName := tree.Get(stateName.Name).Payload.(*ast.IdentData)
	qt.Assert(t, qt.Equals(targetName.Name, "accept"))
}

// TestParseControlWithTableAndApply exercises an action declaration, a
// table declaration with all four supported properties, and an apply
// block whose body applies the table by calling its instance name as
// an ordinary method — never via the typeRef-keyed direct-application
// path, since table names are never bound into type scope.
func TestParseControlWithTableAndApply(t *testing.T) {
	src := `
struct Headers {
    bit<8> x;
}

control Pipe(inout Headers hdr) {
    action drop() {
        exit;
    }

    action forward(bit<9> port) {
        hdr.x = port;
    }

    table t {
        key = {
            hdr.x : exact;
        }
        actions = {
            drop;
            forward;
        }
        default_action = drop();
        size = 1024;
    }

    apply {
        t.apply();
    }
}
`
	tree, prog := mustParse(t, src)
	decls := declsOf(tree, prog)
	qt.Assert(t, qt.HasLen(decls, 2))

	control := tree.Get(decls[1])
	qt.Assert(t, qt.Equals(control.Kind, ast.KindControlDecl))
	cData := control.Payload.(*ast.ControlDeclData)
	locals := tree.ListChildren(cData.Locals)
	qt.Assert(t, qt.HasLen(locals, 3))
	qt.Assert(t, qt.Equals(tree.Get(locals[0]).Kind, ast.KindActionDecl))
	qt.Assert(t, qt.Equals(tree.Get(locals[1]).Kind, ast.KindActionDecl))
	qt.Assert(t, qt.Equals(tree.Get(locals[2]).Kind, ast.KindTableDecl))

	table := tree.Get(locals[2]).Payload.(*ast.TableDeclData)
	props := tree.ListChildren(table.Properties)
	qt.Assert(t, qt.HasLen(props, 4))
	qt.Assert(t, qt.Equals(tree.Get(props[0]).Kind, ast.KindTableKeyProperty))
	qt.Assert(t, qt.Equals(tree.Get(props[1]).Kind, ast.KindTableActionsProperty))
	qt.Assert(t, qt.Equals(tree.Get(props[2]).Kind, ast.KindTableDefaultActionProperty))
	qt.Assert(t, qt.Equals(tree.Get(props[3]).Kind, ast.KindTableSizeProperty))

	actionsProp := tree.Get(props[1]).Payload.(*ast.TableActionsPropertyData)
	refs := tree.ListChildren(actionsProp.Refs)
	qt.Assert(t, qt.HasLen(refs, 2))

	apply := tree.Get(cData.Apply).Payload.(*ast.BlockStatementData)
	stmts := tree.ListChildren(apply.Statements)
	qt.Assert(t, qt.HasLen(stmts, 1))
	exprStmt := tree.Get(stmts[0]).Payload.(*ast.ExprStmtData)
	call := tree.Get(exprStmt.Expr).Payload.(*ast.CallExprData)
	member := tree.Get(call.Callee).Payload.(*ast.MemberExprData)
	qt.Assert(t, qt.Equals(member.Name, "apply"))
	baseName := tree.Get(member.Base).Payload.(*ast.IdentData)
	qt.Assert(t, qt.Equals(baseName.Name, "t"))
}

func TestParseRejectsUnsupportedTableProperty(t *testing.T) {
	src := `
control Pipe() {
    table t {
        entries = {
            8w1 : noop();
        }
    }

    apply {
    }
}
`
	a := arena.New()
	defer a.Free()
	tree := ast.NewTree(a)
	root := scope.NewRoot(a)
	_, err := Parse(tree, "test.p4", []byte(src), root)
	qt.Assert(t, qt.IsTrue(err != nil))
}

func TestParseRejectsFreeFunctionDeclaration(t *testing.T) {
	src := `bit<8> identity(bit<8> x) { return x; }`
	a := arena.New()
	defer a.Free()
	tree := ast.NewTree(a)
	root := scope.NewRoot(a)
	_, err := Parse(tree, "test.p4", []byte(src), root)
	qt.Assert(t, qt.IsTrue(err != nil))
}

func TestParseRejectsParserStateMissingTransition(t *testing.T) {
	src := `
parser P(packet_in pkt) {
    state start {
    }
}
`
	a := arena.New()
	defer a.Free()
	tree := ast.NewTree(a)
	root := scope.NewRoot(a)
	_, err := Parse(tree, "test.p4", []byte(src), root)
	qt.Assert(t, qt.IsTrue(err != nil))
}
