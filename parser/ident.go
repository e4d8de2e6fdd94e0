package parser

import (
	"github.com/tu6ge/parser-1/ast"
	perrors "github.com/tu6ge/parser-1/errors"
	"github.com/tu6ge/parser-1/lexer"
)

// reservedAsIdent is the fixed set of keywords spec.md §4.2's
// ident_maybe_reserved additionally accepts when they appear in identifier
// position (after ::, ->, ?->, or in class-member contexts), taken from
// original_source/trunk_parser/src/parser/ident.rs's reserved-word list.
var reservedAsIdent = map[lexer.Kind]bool{
	lexer.KwStatic: true, lexer.KwAbstract: true, lexer.KwFinal: true,
	lexer.KwFor: true, lexer.KwPrivate: true, lexer.KwProtected: true,
	lexer.KwPublic: true, lexer.KwRequire: true, lexer.KwRequireOnce: true,
	lexer.KwNew: true, lexer.KwClone: true, lexer.KwIf: true, lexer.KwElse: true,
	lexer.KwElseif: true, lexer.KwDefault: true, lexer.KwEnum: true,
	lexer.KwMatch: true, lexer.KwCatch: true, lexer.KwFinally: true,
	lexer.KwNamespace: true,
}

// ident accepts a bare identifier token only (spec.md §4.2).
func (p *Parser) ident() (ast.Identifier, error) {
	if p.s.current.Kind != lexer.Identifier {
		return ast.Identifier{}, p.expectedTokenErr("identifier")
	}
	tok := p.s.current
	p.s.next()
	return ast.NewIdentifier(tokenSpan(tok), tok.Value), nil
}

// name accepts a bare or qualified (A\B) identifier (spec.md §4.2).
func (p *Parser) name() (ast.Identifier, error) {
	switch p.s.current.Kind {
	case lexer.Identifier, lexer.QualifiedIdentifier:
		tok := p.s.current
		p.s.next()
		return ast.NewIdentifier(tokenSpan(tok), tok.Value), nil
	default:
		return ast.Identifier{}, p.expectedTokenErr("identifier")
	}
}

// fullName accepts bare, qualified, or fully-qualified (\A\B) identifiers
// (spec.md §4.2).
func (p *Parser) fullName() (ast.Identifier, error) {
	switch p.s.current.Kind {
	case lexer.Identifier, lexer.QualifiedIdentifier, lexer.FullyQualifiedIdentifier:
		tok := p.s.current
		p.s.next()
		return ast.NewIdentifier(tokenSpan(tok), tok.Value), nil
	default:
		return ast.Identifier{}, p.expectedTokenErr("identifier")
	}
}

// variable accepts a variable token, yielding its name bytes without the
// leading `$` (spec.md §4.2).
func (p *Parser) variable() (ast.Variable, error) {
	if p.s.current.Kind != lexer.Variable {
		return ast.Variable{}, p.expectedTokenErr("variable")
	}
	tok := p.s.current
	p.s.next()
	return *ast.NewVariable(tokenSpan(tok), tok.Value), nil
}

// identMaybeReserved additionally accepts the reserved-word-as-identifier
// set (spec.md §4.2), returning the keyword text verbatim.
func (p *Parser) identMaybeReserved() (ast.Identifier, error) {
	if reservedAsIdent[p.s.current.Kind] {
		tok := p.s.current
		p.s.next()
		return ast.NewIdentifier(tokenSpan(tok), tok.Value), nil
	}
	return p.ident()
}

// fullNameMaybeTypeKeyword additionally accepts `array` and `callable`
// verbatim (spec.md §4.2).
func (p *Parser) fullNameMaybeTypeKeyword() (ast.Identifier, error) {
	switch p.s.current.Kind {
	case lexer.KwArray, lexer.KwCallable:
		tok := p.s.current
		p.s.next()
		return ast.NewIdentifier(tokenSpan(tok), tok.Value), nil
	default:
		return p.fullName()
	}
}

// typeWithStatic additionally accepts `static` verbatim (spec.md §4.2).
func (p *Parser) typeWithStatic() (ast.Identifier, error) {
	if p.s.current.Kind == lexer.KwStatic {
		tok := p.s.current
		p.s.next()
		return ast.NewIdentifier(tokenSpan(tok), tok.Value), nil
	}
	return p.fullNameMaybeTypeKeyword()
}

func tokenSpan(t lexer.Token) ast.Span {
	return ast.Span{Start: t.Start, End: t.End}
}

func (p *Parser) expectedTokenErr(expected string) error {
	return perrors.NewExpectedToken([]string{expected}, p.s.current.Kind.String(), tokenSpan(p.s.current))
}
