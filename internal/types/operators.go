package types

import "github.com/dfrunza/p4c/internal/token"

func isNumeric(t *Type) bool {
	t = EffectiveType(t)
	return t != nil && (t.Kind == Int || t.Kind == Bit || t.Kind == Varbit)
}

// BinaryResultTypes implements the relevant part of spec §4.6 phase 1:
// "binary expressions collect, from both operand sets, all type pairs
// for which a built-in operator is defined, producing the operator's
// result type." Each (left, right) candidate pair from the two operand
// sets is tried independently; the returned set is the union of
// results across every pair for which op is defined, later
// canonicalized by the caller via SetOf.
func BinaryResultTypes(op int, left, right []*Type) []*Type {
	var out []*Type
	for _, l := range left {
		for _, r := range right {
			if t, ok := binaryResult(token.Kind(op), l, r); ok {
				out = append(out, t)
			}
		}
	}
	return out
}

func binaryResult(op token.Kind, l, r *Type) (*Type, bool) {
	switch op {
	case token.LAND, token.LOR:
		if EffectiveType(l).Kind == Bool && EffectiveType(r).Kind == Bool {
			return BoolType, true
		}
	case token.EQ, token.NE, token.LT, token.LE, token.GT, token.GE:
		if Equiv(l, r) {
			return BoolType, true
		}
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.AND, token.OR, token.XOR:
		if isNumeric(l) && Equiv(l, r) {
			return l, true
		}
	case token.LSHIFT:
		if isNumeric(l) && isNumeric(r) {
			return l, true
		}
	case token.MASK:
		if isNumeric(l) && Equiv(l, r) {
			return l, true
		}
	}
	return nil, false
}

// UnaryResultTypes implements the unary-operator part of synthesis:
// `!` requires bool, `~` and unary `-` require a numeric operand, each
// yielding the operand's own type (`!`: bool).
func UnaryResultTypes(op int, operand []*Type) []*Type {
	var out []*Type
	for _, t := range operand {
		switch token.Kind(op) {
		case token.NOT:
			if EffectiveType(t).Kind == Bool {
				out = append(out, BoolType)
			}
		case token.TILDE, token.MINUS, token.UMINUS:
			if isNumeric(t) {
				out = append(out, t)
			}
		}
	}
	return out
}

// MatchFunctions filters candidates to Function types whose parameter
// product matches args pointwise (spec §4.6's match_params): same
// arity, and for each position some candidate in args[i] is type_equiv
// to the parameter's type.
func MatchFunctions(candidates []*Type, args [][]*Type) []*Type {
	var out []*Type
	for _, c := range candidates {
		fn := EffectiveType(c)
		if fn == nil || fn.Kind != Function {
			continue
		}
		params := fn.Params
		if params == nil || len(params.Members) != len(args) {
			continue
		}
		ok := true
		for i, paramTy := range params.Members {
			if !anyEquiv(args[i], paramTy) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	return out
}

func anyEquiv(candidates []*Type, want *Type) bool {
	for _, c := range candidates {
		if Equiv(c, want) {
			return true
		}
	}
	return false
}
