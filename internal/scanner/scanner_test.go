package scanner

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/dfrunza/p4c/internal/arena"
	"github.com/dfrunza/p4c/internal/token"
)

func scanAll(t *testing.T, src string) ([]token.Token, []string) {
	t.Helper()
	file := token.NewFile("test.p4", len(src))
	var errs []string
	var s Scanner
	s.Init(file, []byte(src), func(pos token.Pos, msg string) {
		errs = append(errs, msg)
	}, 0)

	var toks []token.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.ENDOFINPUT {
			break
		}
	}
	return toks, errs
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks, errs := scanAll(t, "a <= b << c &&& d != e")
	qt.Assert(t, qt.HasLen(errs, 0))

	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	qt.Assert(t, qt.DeepEquals(kinds, []token.Kind{
		token.IDENT, token.LE, token.IDENT, token.LSHIFT, token.IDENT,
		token.MASK, token.IDENT, token.NE, token.IDENT, token.ENDOFINPUT,
	}))
}

func TestMinusReclassification(t *testing.T) {
	toks, _ := scanAll(t, "(-1) a - b")
	// tokens: ( UMINUS 1 ) a MINUS b EOF
	qt.Assert(t, qt.Equals(toks[0].Kind, token.LPAREN))
	qt.Assert(t, qt.Equals(toks[1].Kind, token.UMINUS))
	qt.Assert(t, qt.Equals(toks[5].Kind, token.MINUS))
}

func TestIntegerLiteralLexemes(t *testing.T) {
	toks, errs := scanAll(t, "8w0xFF 16s10 0b1010 1_000")
	qt.Assert(t, qt.HasLen(errs, 0))
	qt.Assert(t, qt.Equals(toks[0].Lexeme, "8w0xFF"))
	qt.Assert(t, qt.Equals(toks[1].Lexeme, "16s10"))
	qt.Assert(t, qt.Equals(toks[2].Lexeme, "0b1010"))
	qt.Assert(t, qt.Equals(toks[3].Lexeme, "1_000"))
}

func TestStringLiteralAndUnterminated(t *testing.T) {
	toks, errs := scanAll(t, `"hello\n" "oops`)
	qt.Assert(t, qt.Equals(toks[0].Lexeme, `"hello\n"`))
	qt.Assert(t, qt.IsTrue(len(errs) >= 1))
}

func TestCommentsSkippedByDefault(t *testing.T) {
	toks, errs := scanAll(t, "a // comment\nb /* block */ c")
	qt.Assert(t, qt.HasLen(errs, 0))
	var idents []string
	for _, tk := range toks {
		if tk.Kind == token.IDENT {
			idents = append(idents, tk.Lexeme)
		}
	}
	qt.Assert(t, qt.DeepEquals(idents, []string{"a", "b", "c"}))
}

func TestKeywordLookup(t *testing.T) {
	toks, _ := scanAll(t, "parser control header")
	qt.Assert(t, qt.Equals(toks[0].Kind, token.KW_PARSER))
	qt.Assert(t, qt.Equals(toks[1].Kind, token.KW_CONTROL))
	qt.Assert(t, qt.Equals(toks[2].Kind, token.KW_HEADER))
}

func TestIllegalCharacter(t *testing.T) {
	_, errs := scanAll(t, "a $ b")
	qt.Assert(t, qt.IsTrue(len(errs) >= 1))
}

// TestScanAllBookendsTokenStream checks that ScanAll's materialized
// stream satisfies invariant L1 (spec §8) independent of the source:
// index 0 is START_OF_INPUT and the last index is END_OF_INPUT, with
// every real scanned token — including the keyword/IDENT/operator mix
// package-level tests above exercise one token at a time — in between.
func TestScanAllBookendsTokenStream(t *testing.T) {
	a := arena.New()
	t.Cleanup(a.Free)
	src := "parser P(packet_in pkt) { state start { transition accept; } }"
	file := token.NewFile("test.p4", len(src))
	toks := ScanAll(a, file, []byte(src), func(token.Pos, string) {}, 0)

	qt.Assert(t, qt.Equals(toks.Get(0).Kind, token.STARTOFINPUT))
	qt.Assert(t, qt.Equals(toks.Get(toks.Len()-1).Kind, token.ENDOFINPUT))
	qt.Assert(t, qt.Equals(toks.Get(1).Kind, token.KW_PARSER))
}
