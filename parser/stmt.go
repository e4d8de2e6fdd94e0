package parser

import (
	"github.com/tu6ge/parser-1/ast"
	perrors "github.com/tu6ge/parser-1/errors"
	"github.com/tu6ge/parser-1/lexer"
)

// statement is the keyword-indexed dispatch spec.md §4.6 describes, falling
// through to an expression statement when nothing more specific matches.
func (p *Parser) statement() (ast.Statement, error) {
	start := p.s.current.Start

	if p.s.current.Kind == lexer.Attribute {
		groups, err := p.parseAttributeGroups()
		if err != nil {
			return nil, err
		}
		p.pendingAttributes = groups
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if len(p.pendingAttributes) > 0 {
			// The recognizer that ran didn't claim them.
			return nil, perrors.NewExpectedItemDefinitionAfterAttributes(p.currentSpan())
		}
		return stmt, nil
	}

	switch p.s.current.Kind {
	case lexer.KwNamespace:
		return p.parseNamespace()
	case lexer.KwUse:
		return p.parseUse()
	case lexer.KwConst:
		return p.parseConstStatement()
	case lexer.KwHaltCompiler:
		return p.parseHaltCompiler()
	case lexer.KwAbstract, lexer.KwFinal, lexer.KwReadonly, lexer.KwClass:
		return p.parseClassDecl(nil)
	case lexer.KwInterface:
		return p.parseInterfaceDecl(nil)
	case lexer.KwTrait:
		return p.parseTraitDecl(nil)
	case lexer.KwEnum:
		return p.parseEnumDecl(nil)
	case lexer.KwFunction:
		if isFunctionDeclLookahead(p.s) {
			return p.parseFunctionDecl(nil)
		}
		return p.parseExpressionStatement()
	case lexer.KwGoto:
		return p.parseGoto()
	case lexer.KwDeclare:
		return p.parseDeclare()
	case lexer.KwGlobal:
		return p.parseGlobal()
	case lexer.KwStatic:
		if p.s.peek.Kind == lexer.Variable {
			return p.parseStaticVars()
		}
		return p.parseExpressionStatement()
	case lexer.KwDo:
		return p.parseDoWhile()
	case lexer.KwWhile:
		return p.parseWhile()
	case lexer.KwFor:
		return p.parseFor()
	case lexer.KwForeach:
		return p.parseForeach()
	case lexer.KwSwitch:
		return p.parseSwitch()
	case lexer.KwContinue:
		return p.parseBreakContinue(false)
	case lexer.KwBreak:
		return p.parseBreakContinue(true)
	case lexer.KwIf:
		return p.parseIf()
	case lexer.KwEcho:
		return p.parseEcho()
	case lexer.KwReturn:
		return p.parseReturn()
	case lexer.KwThrow:
		return p.parseThrowStatement()
	case lexer.KwTry:
		return p.parseTry()
	case lexer.Semicolon:
		p.s.next()
		return &ast.NoopStmt{BaseNode: ast.BaseNode{NodeKind: ast.KNoop, NodeSpan: p.s.span(start)}}, nil
	case lexer.LBrace:
		return p.parseBlock()
	case lexer.Identifier:
		if p.s.peek.Kind == lexer.Colon {
			return p.parseLabel()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// isFunctionDeclLookahead implements the bounded peek spec.md §4.6 and §9
// describe for the `function` declaration-vs-expression ambiguity: peek past
// a possible `&` and check whether an identifier follows.
func isFunctionDeclLookahead(s *state) bool {
	n := 0
	if s.peekAt(n).Kind == lexer.Amp {
		n++
	}
	return s.peekAt(n).Kind == lexer.Identifier
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	start := p.s.current.Start
	expr, err := p.expression(Lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{BaseNode: ast.BaseNode{NodeKind: ast.KExpressionStmt, NodeSpan: p.s.span(start)}, Expr: expr}, nil
}

// ---- namespace / use ----

func (p *Parser) parseNamespace() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next() // namespace
	var name *ast.Identifier
	if p.s.current.Kind == lexer.Identifier || p.s.current.Kind == lexer.QualifiedIdentifier {
		n, err := p.name()
		if err != nil {
			return nil, err
		}
		name = &n
	}
	if p.s.current.Kind == lexer.LBrace {
		body, err := p.parseBlockStatements()
		if err != nil {
			return nil, err
		}
		return &ast.NamespaceStmt{BaseNode: ast.BaseNode{NodeKind: ast.KNamespace, NodeSpan: p.s.span(start)}, Name: name, Body: body}, nil
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.NamespaceStmt{BaseNode: ast.BaseNode{NodeKind: ast.KNamespace, NodeSpan: p.s.span(start)}, Name: name}, nil
}

func (p *Parser) useKindPrefix() ast.UseKind {
	switch p.s.current.Kind {
	case lexer.KwFunction:
		p.s.next()
		return ast.UseFunction
	case lexer.KwConst:
		p.s.next()
		return ast.UseConst
	default:
		return ast.UseNormal
	}
}

func (p *Parser) parseUse() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next() // use
	kind := p.useKindPrefix()

	prefix, err := p.name()
	if err != nil {
		return nil, err
	}
	if p.s.current.Kind == lexer.Backslash {
		p.s.next()
	}
	if p.s.current.Kind == lexer.LBrace {
		p.s.next()
		var uses []ast.UseItem
		for p.s.current.Kind != lexer.RBrace {
			item, err := p.parseUseItem()
			if err != nil {
				return nil, err
			}
			uses = append(uses, item)
			if p.s.current.Kind == lexer.Comma {
				p.s.next()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.RBrace); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Semicolon); err != nil {
			return nil, err
		}
		return &ast.GroupUseStmt{BaseNode: ast.BaseNode{NodeKind: ast.KGroupUse, NodeSpan: p.s.span(start)}, Prefix: prefix, Kind_: kind, Uses: uses}, nil
	}

	uses := []ast.UseItem{{Name: prefix}}
	if p.s.current.Kind == lexer.KwAs {
		p.s.next()
		alias, err := p.ident()
		if err != nil {
			return nil, err
		}
		uses[0].Alias = &alias
	}
	for p.s.current.Kind == lexer.Comma {
		p.s.next()
		item, err := p.parseUseItem()
		if err != nil {
			return nil, err
		}
		uses = append(uses, item)
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.UseStmt{BaseNode: ast.BaseNode{NodeKind: ast.KUse, NodeSpan: p.s.span(start)}, Kind_: kind, Uses: uses}, nil
}

func (p *Parser) parseUseItem() (ast.UseItem, error) {
	name, err := p.name()
	if err != nil {
		return ast.UseItem{}, err
	}
	item := ast.UseItem{Name: name}
	if p.s.current.Kind == lexer.KwAs {
		p.s.next()
		alias, err := p.ident()
		if err != nil {
			return ast.UseItem{}, err
		}
		item.Alias = &alias
	}
	return item, nil
}

// ---- const ----

func (p *Parser) parseConstStatement() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next() // const
	var consts []ast.ConstDeclarator
	for {
		name, err := p.ident()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Assign); err != nil {
			return nil, err
		}
		val, err := p.expression(Lowest)
		if err != nil {
			return nil, err
		}
		consts = append(consts, ast.ConstDeclarator{Name: name, Value: val})
		if p.s.current.Kind == lexer.Comma {
			p.s.next()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.ConstantStmt{BaseNode: ast.BaseNode{NodeKind: ast.KConstant, NodeSpan: p.s.span(start)}, Constants: consts}, nil
}

// ---- __halt_compiler ----

func (p *Parser) parseHaltCompiler() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next()
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.HaltCompilerStmt{BaseNode: ast.BaseNode{NodeKind: ast.KHaltCompiler, NodeSpan: p.s.span(start)}}, nil
}

// ---- goto / label ----

func (p *Parser) parseGoto() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next()
	label, err := p.ident()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.GotoStmt{BaseNode: ast.BaseNode{NodeKind: ast.KGoto, NodeSpan: p.s.span(start)}, Label: label}, nil
}

func (p *Parser) parseLabel() (ast.Statement, error) {
	start := p.s.current.Start
	label, err := p.ident()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	return &ast.LabelStmt{BaseNode: ast.BaseNode{NodeKind: ast.KLabel, NodeSpan: p.s.span(start)}, Label: label}, nil
}

// ---- declare ----

func (p *Parser) parseDeclare() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next()
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	var declares []ast.DeclareDirective
	for {
		key, err := p.ident()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Assign); err != nil {
			return nil, err
		}
		val, err := p.expression(Lowest)
		if err != nil {
			return nil, err
		}
		declares = append(declares, ast.DeclareDirective{Key: key, Value: val})
		if p.s.current.Kind == lexer.Comma {
			p.s.next()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}

	switch p.s.current.Kind {
	case lexer.Semicolon:
		p.s.next()
		return &ast.DeclareStmt{BaseNode: ast.BaseNode{NodeKind: ast.KDeclare, NodeSpan: p.s.span(start)}, Declares: declares}, nil
	case lexer.Colon:
		p.s.next()
		body, err := p.parseStatementsUntil(lexer.KwEnddeclare)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.KwEnddeclare); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Semicolon); err != nil {
			return nil, err
		}
		return &ast.DeclareStmt{BaseNode: ast.BaseNode{NodeKind: ast.KDeclare, NodeSpan: p.s.span(start)}, Declares: declares, Body: body}, nil
	default:
		body, err := p.parseBlockStatements()
		if err != nil {
			return nil, err
		}
		return &ast.DeclareStmt{BaseNode: ast.BaseNode{NodeKind: ast.KDeclare, NodeSpan: p.s.span(start)}, Declares: declares, Body: body}, nil
	}
}

// ---- global / static ----

func (p *Parser) parseGlobal() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next()
	var vars []ast.Variable
	for {
		v, err := p.variable()
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
		if p.s.current.Kind == lexer.Comma {
			p.s.next()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.GlobalStmt{BaseNode: ast.BaseNode{NodeKind: ast.KGlobal, NodeSpan: p.s.span(start)}, Vars: vars}, nil
}

func (p *Parser) parseStaticVars() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next() // static
	var vars []ast.StaticVar
	for {
		v, err := p.variable()
		if err != nil {
			return nil, err
		}
		sv := ast.StaticVar{Var: v}
		if p.s.current.Kind == lexer.Assign {
			p.s.next()
			val, err := p.expression(Lowest)
			if err != nil {
				return nil, err
			}
			sv.Default = val
		}
		vars = append(vars, sv)
		if p.s.current.Kind == lexer.Comma {
			p.s.next()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.StaticStmt{BaseNode: ast.BaseNode{NodeKind: ast.KStaticVars, NodeSpan: p.s.span(start)}, Vars: vars}, nil
}

// ---- blocks / bodies ----

func (p *Parser) parseBlock() (ast.Statement, error) {
	start := p.s.current.Start
	stmts, err := p.parseBlockStatements()
	if err != nil {
		return nil, err
	}
	return &ast.BlockStmt{BaseNode: ast.BaseNode{NodeKind: ast.KBlock, NodeSpan: p.s.span(start)}, Statements: stmts}, nil
}

// parseBlockStatements expects the current token to be `{`, and consumes
// through the matching `}`.
func (p *Parser) parseBlockStatements() ([]ast.Statement, error) {
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for p.s.current.Kind != lexer.RBrace {
		for _, c := range p.s.gatherComments() {
			c := c
			stmts = append(stmts, &c)
		}
		if p.s.current.Kind == lexer.RBrace {
			break
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return stmts, nil
}

// parseStatementsUntil reads statements until the current token matches one
// of ends (exclusive, not consumed) — used by the alternate `:`...`endX`
// syntax, where an `elseif`/`else` clause can also terminate the run.
func (p *Parser) parseStatementsUntil(ends ...lexer.Kind) ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !containsKind(ends, p.s.current.Kind) {
		for _, c := range p.s.gatherComments() {
			c := c
			stmts = append(stmts, &c)
		}
		if containsKind(ends, p.s.current.Kind) {
			break
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// parseBody parses a control-flow body: `{ ... }`, the alternate
// `: ... endKeyword` form, or (if neither) a single statement.
func (p *Parser) parseBody(altEnd lexer.Kind) ([]ast.Statement, error) {
	switch p.s.current.Kind {
	case lexer.LBrace:
		return p.parseBlockStatements()
	case lexer.Colon:
		p.s.next()
		stmts, err := p.parseStatementsUntil(altEnd)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(altEnd); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Semicolon); err != nil {
			return nil, err
		}
		return stmts, nil
	default:
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		return []ast.Statement{stmt}, nil
	}
}

// ---- control flow ----

func (p *Parser) parseIf() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next() // if
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	cond, err := p.expression(Lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}

	alt := p.s.current.Kind == lexer.Colon
	var thenBody []ast.Statement
	if alt {
		p.s.next()
		thenBody, err = p.parseStatementsUntil(lexer.KwElseif, lexer.KwElse, lexer.KwEndif)
	} else {
		thenBody, err = p.parseBody(lexer.KwEndif)
	}
	if err != nil {
		return nil, err
	}

	var elseifs []ast.ElseIf
	var elseBody []ast.Statement
	for p.s.current.Kind == lexer.KwElseif {
		p.s.next()
		if _, err := p.expect(lexer.LParen); err != nil {
			return nil, err
		}
		econd, err := p.expression(Lowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		var ebody []ast.Statement
		if alt {
			p.s.next() // :
			ebody, err = p.parseStatementsUntil(lexer.KwElseif, lexer.KwElse, lexer.KwEndif)
		} else {
			ebody, err = p.parseBody(lexer.KwEndif)
		}
		if err != nil {
			return nil, err
		}
		elseifs = append(elseifs, ast.ElseIf{Condition: econd, Body: ebody})
	}
	if p.s.current.Kind == lexer.KwElse {
		p.s.next()
		if alt {
			if _, err := p.expect(lexer.Colon); err != nil {
				return nil, err
			}
			elseBody, err = p.parseStatementsUntil(lexer.KwEndif)
		} else {
			elseBody, err = p.parseBody(lexer.KwEndif)
		}
		if err != nil {
			return nil, err
		}
	}
	if alt {
		if _, err := p.expect(lexer.KwEndif); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Semicolon); err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{
		BaseNode: ast.BaseNode{NodeKind: ast.KIf, NodeSpan: p.s.span(start)},
		Condition: cond, Then: thenBody, ElseIfs: elseifs, Else: elseBody,
	}, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next()
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	cond, err := p.expression(Lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	body, err := p.parseBody(lexer.KwEndwhile)
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{BaseNode: ast.BaseNode{NodeKind: ast.KWhile, NodeSpan: p.s.span(start)}, Condition: cond, Body: body}, nil
}

func (p *Parser) parseDoWhile() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next() // do
	body, err := p.parseBody(lexer.KwEndwhile)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KwWhile); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	cond, err := p.expression(Lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.DoWhileStmt{BaseNode: ast.BaseNode{NodeKind: ast.KDoWhile, NodeSpan: p.s.span(start)}, Body: body, Condition: cond}, nil
}

func (p *Parser) parseExprList(terminators ...lexer.Kind) ([]ast.Expression, error) {
	if containsKind(terminators, p.s.current.Kind) {
		return nil, nil
	}
	var exprs []ast.Expression
	for {
		e, err := p.expression(Lowest)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if p.s.current.Kind == lexer.Comma {
			p.s.next()
			continue
		}
		break
	}
	return exprs, nil
}

func containsKind(ks []lexer.Kind, k lexer.Kind) bool {
	for _, x := range ks {
		if x == k {
			return true
		}
	}
	return false
}

func (p *Parser) parseFor() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next()
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	init, err := p.parseExprList(lexer.Semicolon)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	cond, err := p.parseExprList(lexer.Semicolon)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	loop, err := p.parseExprList(lexer.RParen)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	body, err := p.parseBody(lexer.KwEndfor)
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{BaseNode: ast.BaseNode{NodeKind: ast.KFor, NodeSpan: p.s.span(start)}, Init: init, Cond: cond, Loop: loop, Body: body}, nil
}

func (p *Parser) parseForeach() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next()
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	subject, err := p.expression(Lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KwAs); err != nil {
		return nil, err
	}
	byRef := false
	if p.s.current.Kind == lexer.Amp {
		byRef = true
		p.s.next()
	}
	first, err := p.expression(Lowest)
	if err != nil {
		return nil, err
	}
	var keyVar, valueVar ast.Expression
	if p.s.current.Kind == lexer.DoubleArrow {
		p.s.next()
		if p.s.current.Kind == lexer.Amp {
			byRef = true
			p.s.next()
		}
		value, err := p.expression(Lowest)
		if err != nil {
			return nil, err
		}
		keyVar = first
		valueVar = value
	} else {
		valueVar = first
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	body, err := p.parseBody(lexer.KwEndforeach)
	if err != nil {
		return nil, err
	}
	return &ast.ForeachStmt{
		BaseNode: ast.BaseNode{NodeKind: ast.KForeach, NodeSpan: p.s.span(start)},
		Subject:  subject, KeyVar: keyVar, ValueVar: valueVar, ByRef: byRef, Body: body,
	}, nil
}

func (p *Parser) parseSwitch() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next()
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	cond, err := p.expression(Lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	alt := false
	switch p.s.current.Kind {
	case lexer.LBrace:
		p.s.next()
	case lexer.Colon:
		alt = true
		p.s.next()
	default:
		return nil, p.expectedTokenErr("'{' or ':'")
	}
	if p.s.current.Kind == lexer.Semicolon {
		p.s.next()
	}
	var cases []ast.SwitchCase
	closing := lexer.RBrace
	if alt {
		closing = lexer.KwEndswitch
	}
	for p.s.current.Kind != closing {
		var caseCond ast.Expression
		switch p.s.current.Kind {
		case lexer.KwCase:
			p.s.next()
			c, err := p.expression(Lowest)
			if err != nil {
				return nil, err
			}
			caseCond = c
		case lexer.KwDefault:
			p.s.next()
		default:
			return nil, p.unexpectedToken()
		}
		if p.s.current.Kind == lexer.Colon || p.s.current.Kind == lexer.Semicolon {
			p.s.next()
		} else {
			return nil, p.expectedTokenErr("':'")
		}
		var body []ast.Statement
		for p.s.current.Kind != lexer.KwCase && p.s.current.Kind != lexer.KwDefault && p.s.current.Kind != closing {
			for _, c := range p.s.gatherComments() {
				c := c
				body = append(body, &c)
			}
			if p.s.current.Kind == lexer.KwCase || p.s.current.Kind == lexer.KwDefault || p.s.current.Kind == closing {
				break
			}
			stmt, err := p.statement()
			if err != nil {
				return nil, err
			}
			body = append(body, stmt)
		}
		cases = append(cases, ast.SwitchCase{Condition: caseCond, Body: body})
	}
	if alt {
		if _, err := p.expect(lexer.KwEndswitch); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Semicolon); err != nil {
			return nil, err
		}
	} else {
		if _, err := p.expect(lexer.RBrace); err != nil {
			return nil, err
		}
	}
	return &ast.SwitchStmt{BaseNode: ast.BaseNode{NodeKind: ast.KSwitch, NodeSpan: p.s.span(start)}, Condition: cond, Cases: cases}, nil
}

func (p *Parser) parseBreakContinue(isBreak bool) (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next()
	var level ast.Expression
	if p.s.current.Kind != lexer.Semicolon {
		l, err := p.expression(Lowest)
		if err != nil {
			return nil, err
		}
		level = l
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	if isBreak {
		return &ast.BreakStmt{BaseNode: ast.BaseNode{NodeKind: ast.KBreak, NodeSpan: p.s.span(start)}, Level: level}, nil
	}
	return &ast.ContinueStmt{BaseNode: ast.BaseNode{NodeKind: ast.KContinue, NodeSpan: p.s.span(start)}, Level: level}, nil
}

func (p *Parser) parseEcho() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next()
	var values []ast.Expression
	for {
		v, err := p.expression(Lowest)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if p.s.current.Kind == lexer.Comma {
			p.s.next()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.EchoStmt{BaseNode: ast.BaseNode{NodeKind: ast.KEcho, NodeSpan: p.s.span(start)}, Values: values}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next()
	var value ast.Expression
	if p.s.current.Kind != lexer.Semicolon {
		v, err := p.expression(Lowest)
		if err != nil {
			return nil, err
		}
		value = v
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{BaseNode: ast.BaseNode{NodeKind: ast.KReturn, NodeSpan: p.s.span(start)}, Value: value}, nil
}

func (p *Parser) parseThrowStatement() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next()
	val, err := p.expression(Lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.ThrowStmt{BaseNode: ast.BaseNode{NodeKind: ast.KThrowStmt, NodeSpan: p.s.span(start)}, Value: val}, nil
}

func (p *Parser) parseTry() (ast.Statement, error) {
	start := p.s.current.Start
	p.s.next()
	body, err := p.parseBlockStatements()
	if err != nil {
		return nil, err
	}
	var catches []ast.CatchClause
	for p.s.current.Kind == lexer.KwCatch {
		cStart := p.s.current.Start
		p.s.next()
		if _, err := p.expect(lexer.LParen); err != nil {
			return nil, err
		}
		var types []ast.Identifier
		for {
			t, err := p.fullName()
			if err != nil {
				return nil, err
			}
			types = append(types, t)
			if p.s.current.Kind == lexer.Pipe {
				p.s.next()
				continue
			}
			break
		}
		var varname *ast.Variable
		if p.s.current.Kind == lexer.Variable {
			v, err := p.variable()
			if err != nil {
				return nil, err
			}
			varname = &v
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		cbody, err := p.parseBlockStatements()
		if err != nil {
			return nil, err
		}
		catches = append(catches, ast.CatchClause{
			BaseNode: ast.BaseNode{NodeKind: ast.KCatchClause, NodeSpan: p.s.span(cStart)},
			Types:    types, Varname: varname, Body: cbody,
		})
	}
	var finallyBody []ast.Statement
	if p.s.current.Kind == lexer.KwFinally {
		p.s.next()
		finallyBody, err = p.parseBlockStatements()
		if err != nil {
			return nil, err
		}
	}
	return &ast.TryStmt{BaseNode: ast.BaseNode{NodeKind: ast.KTry, NodeSpan: p.s.span(start)}, Body: body, Catches: catches, Finally: finallyBody}, nil
}
