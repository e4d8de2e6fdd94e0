// Package parser implements the PHP core parser: a recursive-descent
// statement/declaration recognizer paired with a Pratt-style expression
// engine (spec.md §2). It consumes tokens from the lexer package and
// produces an *ast.Program. Parser state is single-threaded and exclusively
// owned by the driving call stack (spec.md §5); independent invocations over
// independent token streams may run concurrently with no shared state.
package parser

import (
	"github.com/tu6ge/parser-1/ast"
	perrors "github.com/tu6ge/parser-1/errors"
	"github.com/tu6ge/parser-1/lexer"
)

// Parser drives a single parse from source bytes to a program tree.
type Parser struct {
	s *state

	// pendingAttributes holds attribute groups consumed before a statement
	// that turns out to need them (spec.md §4.6); cleared by whichever
	// declaration recognizer claims them.
	pendingAttributes []ast.AttributeGroup
}

// New creates a Parser reading tokens from lx.
func New(lx *lexer.Lexer) *Parser {
	return &Parser{s: newState(lx)}
}

// Parse runs a Parser given raw PHP source bytes to completion, returning the
// program tree or the first diagnostic encountered (spec.md §6: no partial
// tree is ever returned alongside an error).
func Parse(src []byte) (*ast.Program, error) {
	p := New(lexer.New(src))
	return p.ParseProgram()
}

// ParseProgram parses the whole token stream into an *ast.Program, the
// top-level loop spec.md §2 describes: repeatedly ask the statement
// recognizer for one top-level statement, surfacing gathered comments as
// Comment statements in source order.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	// A leading OpenTag/OpenTagWithEcho is consumed like any other token by
	// the statement dispatch below; InlineHtml before it is its own
	// statement kind.
	for !p.s.isEOF() {
		for _, c := range p.s.gatherComments() {
			c := c
			prog.Statements = append(prog.Statements, &c)
		}
		if p.s.isEOF() {
			break
		}
		stmt, err := p.parseTopLevelStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	for _, c := range p.s.gatherComments() {
		c := c
		prog.Statements = append(prog.Statements, &c)
	}
	return prog, nil
}

// parseTopLevelStatement wraps statement() with the "absorb a trailing ?>
// silently" rule spec.md §4.6 states applies after every top-level
// statement.
func (p *Parser) parseTopLevelStatement() (ast.Statement, error) {
	if p.s.current.Kind == lexer.OpenTag || p.s.current.Kind == lexer.OpenTagWithEcho {
		p.s.next()
		if p.s.isEOF() {
			return nil, nil
		}
	}
	if p.s.current.Kind == lexer.InlineHTML {
		tok := p.s.current
		p.s.next()
		return &ast.InlineHTMLStmt{
			BaseNode: ast.BaseNode{NodeKind: ast.KInlineHTML, NodeSpan: tokenSpan(tok)},
			Value:    tok.Value,
		}, nil
	}
	stmt, err := p.statement()
	if err != nil {
		return nil, err
	}
	if p.s.current.Kind == lexer.CloseTag {
		p.s.next()
	}
	return stmt, nil
}

// ---- token matching helpers shared by stmt.go, decl.go, expr.go ----

func (p *Parser) at(k lexer.Kind) bool { return p.s.current.Kind == k }

func (p *Parser) currentSpan() ast.Span { return tokenSpan(p.s.current) }

// expect requires the current token to be kind k, advancing past it; it
// reports ExpectedToken (or UnexpectedEndOfFile at EOF) otherwise.
func (p *Parser) expect(k lexer.Kind) (lexer.Token, error) {
	if p.s.current.Kind == lexer.EOF {
		return lexer.Token{}, perrors.NewUnexpectedEndOfFile(p.s.current.Start)
	}
	if p.s.current.Kind != k {
		return lexer.Token{}, perrors.NewExpectedToken([]string{k.String()}, p.s.current.Kind.String(), p.currentSpan())
	}
	tok := p.s.current
	p.s.next()
	return tok, nil
}

// expectOneOf requires the current token to be one of ks.
func (p *Parser) expectOneOf(ks ...lexer.Kind) (lexer.Token, error) {
	if p.s.current.Kind == lexer.EOF {
		return lexer.Token{}, perrors.NewUnexpectedEndOfFile(p.s.current.Start)
	}
	for _, k := range ks {
		if p.s.current.Kind == k {
			tok := p.s.current
			p.s.next()
			return tok, nil
		}
	}
	names := make([]string, len(ks))
	for i, k := range ks {
		names[i] = k.String()
	}
	return lexer.Token{}, perrors.NewExpectedToken(names, p.s.current.Kind.String(), p.currentSpan())
}

func (p *Parser) unexpectedToken() error {
	if p.s.current.Kind == lexer.EOF {
		return perrors.NewUnexpectedEndOfFile(p.s.current.Start)
	}
	return perrors.NewUnexpectedToken(p.s.current.Kind.String(), p.currentSpan())
}
