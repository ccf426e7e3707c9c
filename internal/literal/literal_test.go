package literal

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestParseIntWidthAndBase(t *testing.T) {
	v, err := ParseInt("8w0xff")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(v.Signed))
	qt.Assert(t, qt.Equals(*v.Width, 8))
	qt.Assert(t, qt.Equals(v.Base, 16))
	qt.Assert(t, qt.Equals(v.Value.String(), "255"))
}

func TestParseIntSignedDecimal(t *testing.T) {
	v, err := ParseInt("16s10")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(v.Signed))
	qt.Assert(t, qt.Equals(*v.Width, 16))
	qt.Assert(t, qt.Equals(v.Value.String(), "10"))
}

func TestParseIntNoWidthPrefix(t *testing.T) {
	v, err := ParseInt("42")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(v.Width == nil))
	qt.Assert(t, qt.Equals(v.Value.String(), "42"))
}

func TestParseIntDigitSeparators(t *testing.T) {
	v, err := ParseInt("1_000_000")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.Value.String(), "1000000"))
}

func TestParseIntMalformedDigit(t *testing.T) {
	_, err := ParseInt("0xG")
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseStringEscapes(t *testing.T) {
	s, err := ParseString(`"a\tb\n\"c\"\\"`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(s, "a\tb\n\"c\"\\"))
}

func TestParseStringUnknownEscape(t *testing.T) {
	_, err := ParseString(`"\q"`)
	qt.Assert(t, qt.IsNotNil(err))
}
