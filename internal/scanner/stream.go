package scanner

import (
	"github.com/dfrunza/p4c/internal/arena"
	"github.com/dfrunza/p4c/internal/container"
	"github.com/dfrunza/p4c/internal/token"
)

// ScanAll tokenizes src in full and returns it as a materialized,
// arena-backed token stream: a container.Vector[token.Token] beginning
// with a synthetic START_OF_INPUT and ending with a synthetic
// END_OF_INPUT, exactly the shape spec.md §3 and §4.3 describe and
// invariant L1 (§8) tests for (tokens[0].kind = START_OF_INPUT ∧
// tokens.last.kind = END_OF_INPUT). internal/parser indexes into the
// result instead of pulling tokens from a live Scanner one at a time, so
// the whole front end — not just the scanner's internal prevKind
// bookkeeping — actually has a token stream to point invariant L1 at.
func ScanAll(a *arena.Arena, file *token.File, src []byte, err ErrorHandler, mode Mode) *container.Vector[token.Token] {
	toks := container.NewVector[token.Token](a)
	toks.Append(token.Token{Kind: token.STARTOFINPUT, Pos: token.NoPos})

	var s Scanner
	s.Init(file, src, err, mode)
	for {
		tok := s.Scan()
		if tok.Kind == token.COMMENT {
			continue
		}
		toks.Append(tok)
		if tok.Kind == token.ENDOFINPUT {
			break
		}
	}
	return toks
}
