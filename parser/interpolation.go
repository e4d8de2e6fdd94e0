package parser

import (
	"bytes"

	"github.com/tu6ge/parser-1/ast"
	"github.com/tu6ge/parser-1/lexer"
)

// parseShellExec parses a backtick `...` literal (spec.md §4.5).
func (p *Parser) parseShellExec() (ast.Expression, error) {
	start := p.s.current.Start
	p.s.next() // `
	parts, err := p.parseInterpolationParts(lexer.Backtick)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Backtick); err != nil {
		return nil, err
	}
	return &ast.ShellExecExpr{BaseNode: ast.BaseNode{NodeKind: ast.KShellExec, NodeSpan: p.s.span(start)}, Parts: parts}, nil
}

// parseInterpolatedString parses a double-quoted "..." literal.
func (p *Parser) parseInterpolatedString() (ast.Expression, error) {
	start := p.s.current.Start
	p.s.next() // "
	parts, err := p.parseInterpolationParts(lexer.DoubleQuote)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DoubleQuote); err != nil {
		return nil, err
	}
	return &ast.InterpolatedStringExpr{BaseNode: ast.BaseNode{NodeKind: ast.KInterpolatedString, NodeSpan: p.s.span(start)}, Parts: parts}, nil
}

// parseHeredocOrNowdoc parses a <<<LABEL ... LABEL block, dispatching on the
// Nowdoc flag the lexer's StartHeredoc token carries.
func (p *Parser) parseHeredocOrNowdoc() (ast.Expression, error) {
	start := p.s.current.Start
	startTok := p.s.current
	p.s.next() // StartHeredoc

	if startTok.Nowdoc {
		var raw []byte
		for p.s.current.Kind != lexer.EndHeredoc {
			if p.s.current.Kind == lexer.EOF {
				return nil, p.unexpectedToken()
			}
			raw = append(raw, p.s.current.Value...)
			p.s.next()
		}
		endTok := p.s.current
		p.s.next() // EndHeredoc
		value := dedentNowdoc(raw, endTok.IndentChar, endTok.IndentAmount)
		return &ast.NowdocExpr{
			BaseNode: ast.BaseNode{NodeKind: ast.KNowdoc, NodeSpan: p.s.span(start)},
			Label:    string(startTok.Value),
			Value:    value,
		}, nil
	}

	parts, err := p.parseInterpolationParts(lexer.EndHeredoc)
	if err != nil {
		return nil, err
	}
	endTok, err := p.expect(lexer.EndHeredoc)
	if err != nil {
		return nil, err
	}
	dedentParts(parts, endTok.IndentChar, endTok.IndentAmount)
	return &ast.HeredocExpr{
		BaseNode: ast.BaseNode{NodeKind: ast.KHeredoc, NodeSpan: p.s.span(start)},
		Label:    string(startTok.Value),
		Parts:    parts,
	}, nil
}

// parseInterpolationParts reads the shared part-by-part body spec.md §4.5
// describes until terminator is reached (terminator itself is left
// unconsumed for the caller to expect()).
func (p *Parser) parseInterpolationParts(terminator lexer.Kind) ([]ast.StringPart, error) {
	var parts []ast.StringPart
	for p.s.current.Kind != terminator {
		switch p.s.current.Kind {
		case lexer.EOF:
			return nil, p.unexpectedToken()
		case lexer.StringPart:
			if len(p.s.current.Value) > 0 {
				parts = append(parts, ast.StringPart{Const: p.s.current.Value})
			}
			p.s.next()
		case lexer.DollarOpenBrace:
			part, err := p.parseDollarBraceInterpolation()
			if err != nil {
				return nil, err
			}
			parts = append(parts, part)
		case lexer.CurlyOpen:
			// `{$…}` form: the lexer only emits CurlyOpen when `{` is
			// immediately followed by `$`; see scanStringPart.
			p.s.next()
			expr, err := p.expression(Lowest)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBrace); err != nil {
				return nil, err
			}
			p.s.lx.PopInterpolation()
			parts = append(parts, ast.StringPart{Expr: expr})
		case lexer.Variable:
			part, err := p.parseSimpleVariableInterpolation()
			if err != nil {
				return nil, err
			}
			parts = append(parts, part)
		default:
			return nil, p.unexpectedToken()
		}
	}
	return parts, nil
}

// parseDollarBraceInterpolation handles `${name}`, `${name[expr]}`, and
// `${expr}` (spec.md §4.5).
func (p *Parser) parseDollarBraceInterpolation() (ast.StringPart, error) {
	start := p.s.current.Start
	p.s.next() // ${
	if p.s.current.Kind == lexer.Identifier {
		nameTok := p.s.current
		p.s.next()
		v := ast.NewVariable(tokenSpan(nameTok), nameTok.Value)
		var expr ast.Expression = v
		if p.s.current.Kind == lexer.LBracket {
			p.s.next()
			idx, err := p.expression(Lowest)
			if err != nil {
				return ast.StringPart{}, err
			}
			if _, err := p.expect(lexer.RBracket); err != nil {
				return ast.StringPart{}, err
			}
			expr = &ast.ArrayIndexExpr{BaseNode: ast.BaseNode{NodeKind: ast.KArrayIndex, NodeSpan: p.s.span(start)}, Target: v, Index: idx}
		}
		if _, err := p.expect(lexer.RBrace); err != nil {
			return ast.StringPart{}, err
		}
		p.s.lx.PopInterpolation()
		return ast.StringPart{Expr: expr}, nil
	}
	inner, err := p.expression(Lowest)
	if err != nil {
		return ast.StringPart{}, err
	}
	if _, err := p.expect(lexer.RBrace); err != nil {
		return ast.StringPart{}, err
	}
	p.s.lx.PopInterpolation()
	dyn := &ast.DynamicVariable{BaseNode: ast.BaseNode{NodeKind: ast.KDynamicVariable, NodeSpan: p.s.span(start)}, NameExpr: inner}
	return ast.StringPart{Expr: dyn}, nil
}

// parseSimpleVariableInterpolation handles the bare `$variable` simple-syntax
// position, which permits at most one postfix: `[int|-int|ident|var]`,
// `->ident`, or `?->ident` — full expressions are not permitted here
// (spec.md §4.5).
func (p *Parser) parseSimpleVariableInterpolation() (ast.StringPart, error) {
	start := p.s.current.Start
	v, err := p.variable()
	if err != nil {
		return ast.StringPart{}, err
	}
	var expr ast.Expression = &v

	switch p.s.current.Kind {
	case lexer.LBracket:
		p.s.next()
		var index ast.Expression
		switch p.s.current.Kind {
		case lexer.Integer:
			tok := p.s.current
			p.s.next()
			index = &ast.IntegerLit{BaseNode: ast.BaseNode{NodeKind: ast.KInteger, NodeSpan: tokenSpan(tok)}, Raw: tok.Value}
		case lexer.Minus:
			minusTok := p.s.current
			p.s.next()
			numTok, err := p.expect(lexer.Integer)
			if err != nil {
				return ast.StringPart{}, err
			}
			raw := append([]byte("-"), numTok.Value...)
			index = &ast.IntegerLit{BaseNode: ast.BaseNode{NodeKind: ast.KInteger, NodeSpan: ast.Span{Start: minusTok.Start, End: numTok.End}}, Raw: raw}
		case lexer.Identifier:
			tok := p.s.current
			p.s.next()
			id := ast.NewIdentifier(tokenSpan(tok), tok.Value)
			index = &ast.ConstFetchExpr{BaseNode: ast.BaseNode{NodeKind: ast.KConstFetch, NodeSpan: id.Span()}, Name: id}
		case lexer.Variable:
			iv, err := p.variable()
			if err != nil {
				return ast.StringPart{}, err
			}
			index = &iv
		default:
			return ast.StringPart{}, p.unexpectedToken()
		}
		if _, err := p.expect(lexer.RBracket); err != nil {
			return ast.StringPart{}, err
		}
		expr = &ast.ArrayIndexExpr{BaseNode: ast.BaseNode{NodeKind: ast.KArrayIndex, NodeSpan: p.s.span(start)}, Target: expr, Index: index}
	case lexer.Arrow:
		p.s.next()
		id, err := p.ident()
		if err != nil {
			return ast.StringPart{}, err
		}
		expr = &ast.PropertyFetchExpr{BaseNode: ast.BaseNode{NodeKind: ast.KPropertyFetch, NodeSpan: p.s.span(start)}, Target: expr, Property: ast.Member{Ident: &id}}
	case lexer.NullsafeArrow:
		p.s.next()
		id, err := p.ident()
		if err != nil {
			return ast.StringPart{}, err
		}
		expr = &ast.NullsafePropertyFetchExpr{BaseNode: ast.BaseNode{NodeKind: ast.KNullsafePropertyFetch, NodeSpan: p.s.span(start)}, Target: expr, Property: ast.Member{Ident: &id}}
	}
	return ast.StringPart{Expr: expr}, nil
}

// dedentParts strips up to amount leading occurrences of ch from the start
// of each Const part (spec.md §4.5's heredoc dedent rule). Only the first
// line of a part needs the strip applied at its head; embedded newlines
// within a Const segment get the same treatment per line, since the lexer
// may have coalesced multiple source lines into one StringPart.
func dedentParts(parts []ast.StringPart, ch byte, amount int) {
	if amount == 0 {
		return
	}
	for i := range parts {
		if parts[i].Const == nil {
			continue
		}
		parts[i].Const = dedentLines(parts[i].Const, ch, amount)
	}
}

func dedentNowdoc(raw []byte, ch byte, amount int) []byte {
	if amount == 0 {
		return raw
	}
	return dedentLines(raw, ch, amount)
}

func dedentLines(src []byte, ch byte, amount int) []byte {
	lines := bytes.Split(src, []byte("\n"))
	for i, line := range lines {
		n := 0
		for n < amount && n < len(line) && line[n] == ch {
			n++
		}
		lines[i] = line[n:]
	}
	return bytes.Join(lines, []byte("\n"))
}
