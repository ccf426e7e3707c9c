// Package diag renders a front-end error.List to stderr in the format
// spec §6 requires: one "file:line:col: error: message" line per
// diagnostic, followed by a pluralized summary line.
package diag

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dfrunza/p4c/internal/errors"
)

// Print writes list to w, one diagnostic per line, followed by a
// summary such as "1 error" or "3 errors". The per-diagnostic line
// format itself is fixed by spec §6 and is never pluralized or
// otherwise reworded; only the trailing summary uses
// golang.org/x/text/message; this is deliberately the one spot in the
// module where that dependency earns its place; the diagnostics
// themselves stay exactly as terse as the spec demands.
func Print(w io.Writer, list *errors.List) {
	for _, e := range list.All() {
		fmt.Fprintln(w, e.Error())
	}
	noun := "errors"
	if n := len(list.All()); n == 1 {
		noun = "error"
	}
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "%d %s\n", len(list.All()), noun)
}
