// Package types implements the Type representation and two-phase
// checker described in spec.md §4.6: potential-type synthesis followed
// by type selection.
package types

import "fmt"

// Kind discriminates Type's variant, the fixed set spec §3 names:
// "{void, bool, int, bit, varbit, string, any, enum, typedef, function,
// extern, package, parser, control, table, struct, header, union,
// stack, state, field, error, match_kind, nameref, type, tuple,
// product}".
type Kind int

const (
	Void Kind = iota
	Bool
	Int
	Bit
	Varbit
	String
	Any
	Enum
	Typedef
	Function
	Extern
	Package
	Parser
	Control
	Table
	Struct
	Header
	Union
	Stack
	State
	Field
	ErrorType
	MatchKind
	NameRef
	TypeKind
	Tuple
	Product
)

var kindNames = map[Kind]string{
	Void: "void", Bool: "bool", Int: "int", Bit: "bit", Varbit: "varbit",
	String: "string", Any: "any", Enum: "enum", Typedef: "typedef",
	Function: "function", Extern: "extern", Package: "package",
	Parser: "parser", Control: "control", Table: "table", Struct: "struct",
	Header: "header", Union: "union", Stack: "stack", State: "state",
	Field: "field", ErrorType: "error", MatchKind: "match_kind",
	NameRef: "nameref", TypeKind: "type", Tuple: "tuple", Product: "product",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Type is a tagged variant over Kind, carrying only the fields its kind
// uses. Named types (struct, header, union, enum, extern, parser,
// control, package, table) are nominal — Name is their identity.
type Type struct {
	Kind Kind
	Name string // nominal types, and field/member names where relevant

	Width  int  // bit<Width>, int<Width>, varbit<Width>; 0 means unparameterized
	Signed bool // true for the signed "int" family, false for "bit"/"varbit"

	Elem *Type // Stack: element type

	Target *Type // NameRef: resolved target, filled in once known; Typedef: underlying type

	Return *Type // Function: return type
	Params *Type // Function: parameter Product

	Members     []*Type  // Struct/Header/Union: field types; Product/Tuple: element types
	MemberNames []string // parallel to Members for Struct/Header/Union/Product-as-params
}

// Array owns every Type allocated while compiling one unit (spec §3's
// "type array"), used so types can additionally be compared by
// identity where that is cheaper than structural comparison.
type Array struct {
	types []*Type
}

func NewArray() *Array { return &Array{} }

func (a *Array) New(t *Type) *Type {
	a.types = append(a.types, t)
	return t
}

func (a *Array) All() []*Type { return a.types }

// Builtins are the singleton instances for the width-parameterless
// primitives, so identity comparison ("identical pointers are
// equivalent", spec §4.6) works for them without re-interning.
var (
	VoidType   = &Type{Kind: Void}
	BoolType   = &Type{Kind: Bool}
	StringType = &Type{Kind: String}
	AnyType    = &Type{Kind: Any}
)

// IntType returns the arbitrary-precision signed "int" type (P4's bare
// `int`, distinct from the width-parameterized `int<n>`).
func IntType() *Type { return &Type{Kind: Int, Signed: true} }

// BitType returns `bit<width>`.
func BitType(width int) *Type { return &Type{Kind: Bit, Width: width} }

// SignedIntType returns `int<width>`.
func SignedIntType(width int) *Type { return &Type{Kind: Int, Width: width, Signed: true} }

// VarbitType returns `varbit<width>`.
func VarbitType(width int) *Type { return &Type{Kind: Varbit, Width: width} }

// ActualType walks NameRef links once to reach the concrete type a
// deferred binding refers to, per spec §4.6's actual_type().
func ActualType(t *Type) *Type {
	if t != nil && t.Kind == NameRef && t.Target != nil {
		return t.Target
	}
	return t
}

// EffectiveType additionally unwraps typedefs on top of ActualType, per
// spec §4.6's effective_type(): "all other algorithms assume they work
// on effective types."
func EffectiveType(t *Type) *Type {
	t = ActualType(t)
	for t != nil && t.Kind == Typedef && t.Target != nil {
		t = ActualType(t.Target)
	}
	return t
}

// Equiv implements spec §4.6's type_equiv structural/nominal rules.
func Equiv(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	a, b = EffectiveType(a), EffectiveType(b)
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind == Any || b.Kind == Any {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Void, Bool, String:
		return true
	case Bit, Varbit:
		return a.Width == b.Width
	case Int:
		return a.Width == b.Width && a.Signed == b.Signed
	case Struct, Header, Union, Enum, Extern, Parser, Control, Package, Table:
		// Named types are nominal: equivalent only by identity, already
		// ruled out above (a == b).
		return false
	case Function:
		return Equiv(a.Return, b.Return) && Equiv(a.Params, b.Params)
	case Product, Tuple:
		if len(a.Members) != len(b.Members) {
			return false
		}
		for i := range a.Members {
			if !Equiv(a.Members[i], b.Members[i]) {
				return false
			}
		}
		return true
	case ErrorType, MatchKind, State:
		return true
	default:
		return false
	}
}
