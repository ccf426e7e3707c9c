// Package errors implements the front end's diagnostic taxonomy (spec
// §7): lexical, syntactic, scoping, and type errors, each fatal at
// first occurrence and reported as one "file:line:col: error: message"
// line (spec §6).
//
// The shape is grounded on cue/errors/errors.go's Error interface and
// List accumulator, condensed: CUE supports multiple simultaneous
// errors with rich multi-position rendering because CUE's evaluator
// keeps going after an error; this front end does not (spec §7, "all
// are reported with source location and cause immediate termination"),
// so List here only collects the type errors SelectTypePass records
// (internal/compile reports the first of them) and carries the
// driver's single fatal Error to diag.Print.
package errors

import (
	"fmt"
	"strings"

	"github.com/dfrunza/p4c/internal/token"
)

// Kind distinguishes the four fatal diagnostic categories spec §7
// names. It exists so a single Error type can carry what would
// otherwise be four parallel error types, the way the teacher's own
// posError carries one message regardless of which CUE subsystem
// raised it.
type Kind int

const (
	Lexical Kind = iota
	Syntactic
	Scoping
	Type
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntactic:
		return "syntactic"
	case Scoping:
		return "scoping"
	case Type:
		return "type"
	default:
		return "error"
	}
}

// Error is a single located diagnostic.
type Error struct {
	Kind     Kind
	Filename string
	Pos      token.Pos
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%s: error: %s", e.Filename, e.Pos, e.Message)
}

// New constructs an Error of the given kind at pos.
func New(kind Kind, filename string, pos token.Pos, format string, args ...any) *Error {
	return &Error{Kind: kind, Filename: filename, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// List accumulates errors. SelectTypePass records every type error it
// finds in a List, and the CLI driver wraps the single fatal Error it
// gets back in a List for diag.Print; the scanner and parser report
// their single fatal Error directly.
type List struct {
	errs []*Error
}

// Add appends e to the list.
func (l *List) Add(e *Error) { l.errs = append(l.errs, e) }

// Len reports how many errors have been added.
func (l *List) Len() int { return len(l.errs) }

// All returns the accumulated errors in the order they were added.
func (l *List) All() []*Error { return l.errs }

// Error renders every accumulated error, one per line.
func (l *List) Error() string {
	lines := make([]string, len(l.errs))
	for i, e := range l.errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}
