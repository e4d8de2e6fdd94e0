package parser

import (
	"github.com/tu6ge/parser-1/ast"
	"github.com/tu6ge/parser-1/lexer"
)

// state is the mutable cursor spec.md §4.3 describes: current token, one
// token of lookahead, the lexer producing further tokens, a pending-comments
// buffer, and the pair of scope flags that let self/static/parent be
// validated at expression roots without threading a context object through
// every call (spec.md §9).
type state struct {
	lx *lexer.Lexer

	current lexer.Token
	peek    lexer.Token

	// lookahead buffers tokens already pulled from lx for peekAt, so the
	// bounded `function &` disambiguation (spec.md §9) never has to clone
	// the lexer or rewind it.
	lookahead []lexer.Token

	pendingComments []ast.CommentStmt

	hasClassScope       bool
	hasClassParentScope bool
}

func newState(lx *lexer.Lexer) *state {
	s := &state{lx: lx}
	s.current = s.rawNext()
	s.peek = s.rawNext()
	return s
}

// rawNext pulls the next syntactic token directly from the lexer, stashing
// any comments it skips along the way into pendingComments.
func (s *state) rawNext() lexer.Token {
	for {
		tok := s.lx.Next()
		for _, c := range s.lx.DrainComments() {
			s.pendingComments = append(s.pendingComments, commentFromToken(c))
		}
		return tok
	}
}

func commentFromToken(t lexer.Token) ast.CommentStmt {
	var form ast.CommentKind
	switch t.Kind {
	case lexer.CommentLine:
		if len(t.Value) > 0 && t.Value[0] == '#' {
			form = ast.CommentHash
		} else {
			form = ast.CommentSingleLine
		}
	case lexer.CommentDoc:
		form = ast.CommentDoc
	default:
		form = ast.CommentMultiLine
	}
	return ast.CommentStmt{
		BaseNode: ast.BaseNode{NodeKind: ast.KComment, NodeSpan: ast.Span{Start: t.Start, End: t.End}},
		Form:     form,
		Text:     t.Value,
	}
}

// next advances the cursor by one token.
func (s *state) next() {
	s.current = s.peek
	if n := len(s.lookahead); n > 0 {
		s.peek = s.lookahead[0]
		s.lookahead = s.lookahead[1:]
		return
	}
	s.peek = s.rawNext()
}

// peekAt returns the token n positions beyond peek (peekAt(0) == peek)
// without disturbing current/peek, buffering any tokens it has to pull so a
// later `next` drains the buffer before hitting the lexer again. This is the
// real bounded lookahead spec.md §9 calls for in place of a cloned iterator.
func (s *state) peekAt(n int) lexer.Token {
	for len(s.lookahead) < n {
		s.lookahead = append(s.lookahead, s.rawNext())
	}
	if n == 0 {
		return s.peek
	}
	return s.lookahead[n-1]
}

func (s *state) isEOF() bool { return s.current.Kind == lexer.EOF }

// gatherComments pulls any pending comment tokens and returns them as
// Comment statements in source order; the statement recognizer surfaces
// these between top-level statements (spec.md §4.3).
func (s *state) gatherComments() []ast.CommentStmt {
	if len(s.pendingComments) == 0 {
		return nil
	}
	out := s.pendingComments
	s.pendingComments = nil
	return out
}

// skipComments discards any pending comments silently; used within
// expression parsing, where comments are not surfaced as nodes.
func (s *state) skipComments() {
	s.pendingComments = nil
}

func (s *state) clearComments() {
	s.pendingComments = nil
}

func (s *state) span(start lexer.Position) ast.Span {
	return ast.Span{Start: start, End: s.current.End}
}

// enterClassScope sets the class-scope flags for the duration of parsing a
// class-like body, returning a restore func the caller defers so the flags
// are always released, even on an error return (spec.md §9's scoped
// acquisition with guaranteed release).
func (s *state) enterClassScope(hasParent bool) func() {
	prevScope, prevParent := s.hasClassScope, s.hasClassParentScope
	s.hasClassScope = true
	s.hasClassParentScope = hasParent
	return func() {
		s.hasClassScope = prevScope
		s.hasClassParentScope = prevParent
	}
}
