// Package literal decodes the lexeme text the scanner captures for
// integer and string tokens into the structured values the rest of the
// front end needs: an {signed, width, value} triple for integers (spec
// §3, §4.2) and an unescaped run of bytes for strings.
package literal

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Int is the decoded form of an integer literal token. Width is nil
// when the literal had no <width><w|s> prefix (a plain decimal/hex/oct/
// bin constant with machine-dependent width, per the P4-16 grammar).
// Value is an arbitrary-precision decimal rather than a fixed Go
// integer because bit<n> widths are not bounded at 64 bits by the
// grammar (see SPEC_FULL.md's domain-stack entry for apd).
type Int struct {
	Signed bool
	Width  *int
	Value  *apd.Decimal
	Base   int // 2, 8, 10, or 16 — invariant L2
}

// ParseError describes a malformed literal with the offset (relative to
// the start of the lexeme) where the problem was detected.
type ParseError struct {
	Offset  int
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// ParseInt decodes lexeme — the verbatim text the scanner captured for
// an INT_LITERAL token — into an Int. lexeme may begin with a
// <width><w|s> prefix (e.g. "8w0xFF", "16s10"); digits may contain '_'
// separators which are ignored per spec §4.2.
func ParseInt(lexeme string) (Int, error) {
	rest := lexeme
	signed := false
	var width *int

	if w, sign, tail, ok := splitWidthPrefix(rest); ok {
		width = &w
		signed = sign
		rest = tail
	}

	base := 10
	switch {
	case strings.HasPrefix(rest, "0x") || strings.HasPrefix(rest, "0X"):
		base, rest = 16, rest[2:]
	case strings.HasPrefix(rest, "0o") || strings.HasPrefix(rest, "0O"):
		base, rest = 8, rest[2:]
	case strings.HasPrefix(rest, "0b") || strings.HasPrefix(rest, "0B"):
		base, rest = 2, rest[2:]
	}

	digits := strings.ReplaceAll(rest, "_", "")
	if digits == "" {
		return Int{}, &ParseError{Offset: 0, Message: fmt.Sprintf("malformed integer literal %q: no digits", lexeme)}
	}
	for _, r := range digits {
		if !isDigitInBase(r, base) {
			return Int{}, &ParseError{
				Offset:  strings.IndexRune(lexeme, r),
				Message: fmt.Sprintf("malformed integer literal %q: %q is not a valid base-%d digit", lexeme, r, base),
			}
		}
	}

	value, _, err := apd.NewFromString(digits)
	if base != 10 {
		// apd only parses decimal text directly; non-decimal digit runs
		// are folded into a decimal value by hand so the rest of the
		// front end always deals with one numeric representation.
		value = decodeNonDecimal(digits, base)
		err = nil
	}
	if err != nil {
		return Int{}, &ParseError{Message: fmt.Sprintf("malformed integer literal %q: %v", lexeme, err)}
	}

	return Int{Signed: signed, Width: width, Value: value, Base: base}, nil
}

func decodeNonDecimal(digits string, base int) *apd.Decimal {
	acc := apd.New(0, 0)
	radix := apd.New(int64(base), 0)
	ctx := apd.BaseContext.WithPrecision(200)
	for _, r := range digits {
		d := apd.New(int64(digitVal(r)), 0)
		ctx.Mul(acc, acc, radix)
		ctx.Add(acc, acc, d)
	}
	return acc
}

func digitVal(r rune) int {
	switch {
	case '0' <= r && r <= '9':
		return int(r - '0')
	case 'a' <= r && r <= 'f':
		return int(r-'a') + 10
	case 'A' <= r && r <= 'F':
		return int(r-'A') + 10
	}
	return -1
}

func isDigitInBase(r rune, base int) bool {
	v := digitVal(r)
	return v >= 0 && v < base
}

// splitWidthPrefix recognizes a leading "<digits><w|s>" prefix (e.g.
// "8w", "16s") and returns the parsed width, signedness, and the
// remainder of the lexeme after the prefix.
func splitWidthPrefix(s string) (width int, signed bool, rest string, ok bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) {
		return 0, false, s, false
	}
	switch s[i] {
	case 'w':
		signed = false
	case 's':
		signed = true
	default:
		return 0, false, s, false
	}
	width = 0
	for _, r := range s[:i] {
		width = width*10 + int(r-'0')
	}
	return width, signed, s[i+1:], true
}
