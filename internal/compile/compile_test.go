package compile

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/dfrunza/p4c/internal/ast"
	"github.com/dfrunza/p4c/internal/config"
)

func TestSourceCompilesHeaderAndAssignment(t *testing.T) {
	src := `
header Ethernet_h {
    bit<48> dstAddr;
    bit<48> srcAddr;
    bit<16> etherType;
}

struct Headers {
    Ethernet_h ethernet;
}

control Pipe(inout Headers hdr) {
    apply {
        hdr.ethernet.etherType = 16w0x0800;
    }
}
`
	res, err := Source(config.Default(), "test.p4", []byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	qt.Assert(t, qt.IsTrue(res.Program != ast.NoRef))
	qt.Assert(t, qt.IsTrue(len(res.Types) > 0))
}

func TestSourceReportsParseError(t *testing.T) {
	_, err := Source(config.Default(), "test.p4", []byte(`header {`))
	qt.Assert(t, qt.IsTrue(err != nil))
}

func TestSourceReportsTypeMismatch(t *testing.T) {
	src := `
struct Headers {
    bit<8> x;
}

control Pipe(inout Headers hdr) {
    apply {
        hdr.x = true;
    }
}
`
	_, err := Source(config.Default(), "test.p4", []byte(src))
	qt.Assert(t, qt.IsTrue(err != nil))
}
