package parser

import (
	"github.com/tu6ge/parser-1/ast"
	perrors "github.com/tu6ge/parser-1/errors"
	"github.com/tu6ge/parser-1/lexer"
)

// expression is the Pratt engine's single entry point (spec.md §4.4): parse
// a prefix form, then repeatedly fold in postfix/infix operators whose
// precedence clears min.
func (p *Parser) expression(min Precedence) (ast.Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	return p.parseInfixPostfix(left, min)
}

func (p *Parser) parseInfixPostfix(left ast.Expression, min Precedence) (ast.Expression, error) {
	for {
		p.s.skipComments()
		if postPrec, ok := postfixPrecedence(p.s.current.Kind); ok && postPrec >= min {
			next, err := p.parsePostfix(left)
			if err != nil {
				return nil, err
			}
			if next == left {
				// Postfix rule declined (e.g. `::` wasn't actually postfix
				// here); stop rather than loop forever.
				break
			}
			left = next
			continue
		}

		if infixPrec, ok := infixPrecedence(p.s.current.Kind); ok {
			assoc := infixPrec.Associativity()
			switch {
			case infixPrec > min:
				next, err := p.parseInfix(left, infixPrec)
				if err != nil {
					return nil, err
				}
				left = next
				continue
			case infixPrec == min && assoc == AssocRight:
				next, err := p.parseInfix(left, infixPrec)
				if err != nil {
					return nil, err
				}
				left = next
				continue
			case infixPrec == min && assoc == AssocNonAssociative:
				return nil, perrors.NewUnexpectedToken(p.s.current.Kind.String(), p.currentSpan())
			default:
				return left, nil
			}
		}
		return left, nil
	}
	return left, nil
}

// ---- prefix dispatch ----

func (p *Parser) parsePrefix() (ast.Expression, error) {
	if p.at(lexer.Attribute) {
		groups, err := p.parseAttributeGroups()
		if err != nil {
			return nil, err
		}
		switch p.s.current.Kind {
		case lexer.KwFunction:
			return p.parseAnonymousFunction(false, groups)
		case lexer.KwFn:
			return p.parseArrowFunction(false, groups)
		case lexer.KwStatic:
			if p.s.peek.Kind == lexer.KwFunction {
				p.s.next()
				return p.parseAnonymousFunction(true, groups)
			}
			if p.s.peek.Kind == lexer.KwFn {
				p.s.next()
				return p.parseArrowFunction(true, groups)
			}
		case lexer.KwClass:
			return p.parseAnonymousClass(groups)
		}
		return nil, perrors.NewExpectedItemDefinitionAfterAttributes(p.currentSpan())
	}

	start := p.s.current.Start
	tok := p.s.current

	switch tok.Kind {
	case lexer.Integer:
		p.s.next()
		return &ast.IntegerLit{BaseNode: ast.BaseNode{NodeKind: ast.KInteger, NodeSpan: p.s.span(start)}, Raw: tok.Value}, nil
	case lexer.Float:
		p.s.next()
		return &ast.FloatLit{BaseNode: ast.BaseNode{NodeKind: ast.KFloat, NodeSpan: p.s.span(start)}, Raw: tok.Value}, nil
	case lexer.Str:
		p.s.next()
		return &ast.StringLit{BaseNode: ast.BaseNode{NodeKind: ast.KString, NodeSpan: p.s.span(start)}, Value: tok.Value}, nil
	case lexer.Variable:
		v, err := p.variable()
		if err != nil {
			return nil, err
		}
		return &v, nil
	case lexer.Dollar:
		return p.parseDynamicVariable()

	case lexer.KwSelf:
		if !p.s.hasClassScope {
			return nil, perrors.NewCannotFindTypeInCurrentScope("self", tokenSpan(tok))
		}
		p.s.next()
		return &ast.SelfExpr{BaseNode: ast.BaseNode{NodeKind: ast.KSelf, NodeSpan: p.s.span(start)}}, nil
	case lexer.KwStatic:
		if p.s.peek.Kind == lexer.KwFunction {
			p.s.next()
			return p.parseAnonymousFunction(true, nil)
		}
		if p.s.peek.Kind == lexer.KwFn {
			p.s.next()
			return p.parseArrowFunction(true, nil)
		}
		if !p.s.hasClassScope {
			return nil, perrors.NewCannotFindTypeInCurrentScope("static", tokenSpan(tok))
		}
		p.s.next()
		return &ast.StaticExpr{BaseNode: ast.BaseNode{NodeKind: ast.KStatic, NodeSpan: p.s.span(start)}}, nil
	case lexer.KwParent:
		if !p.s.hasClassScope || !p.s.hasClassParentScope {
			return nil, perrors.NewCannotFindTypeInCurrentScope("parent", tokenSpan(tok))
		}
		p.s.next()
		return &ast.ParentExpr{BaseNode: ast.BaseNode{NodeKind: ast.KParent, NodeSpan: p.s.span(start)}}, nil

	case lexer.LParen:
		p.s.next()
		inner, err := p.expression(Lowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return inner, nil

	case lexer.KwMatch:
		return p.parseMatch()
	case lexer.KwArray:
		return p.parseArrayExpr(false)
	case lexer.LBracket:
		return p.parseArrayExpr(true)
	case lexer.KwList:
		return p.parseListExpression()
	case lexer.KwNew:
		return p.parseNew()
	case lexer.KwClone:
		p.s.next()
		val, err := p.expression(CloneOrNew)
		if err != nil {
			return nil, err
		}
		return &ast.CloneExpr{BaseNode: ast.BaseNode{NodeKind: ast.KClone, NodeSpan: p.s.span(start)}, Value: val}, nil
	case lexer.KwThrow:
		p.s.next()
		val, err := p.expression(Lowest)
		if err != nil {
			return nil, err
		}
		return &ast.ThrowExpr{BaseNode: ast.BaseNode{NodeKind: ast.KThrowExpr, NodeSpan: p.s.span(start)}, Value: val}, nil
	case lexer.KwYield:
		return p.parseYield()
	case lexer.KwInclude:
		return p.parseInclude(ast.IncludeInclude)
	case lexer.KwIncludeOnce:
		return p.parseInclude(ast.IncludeIncludeOnce)
	case lexer.KwRequire:
		return p.parseInclude(ast.IncludeRequire)
	case lexer.KwRequireOnce:
		return p.parseInclude(ast.IncludeRequireOnce)
	case lexer.MagicDir, lexer.MagicLine, lexer.MagicFile, lexer.MagicClass,
		lexer.MagicTrait, lexer.MagicMethod, lexer.MagicFunction, lexer.MagicNamespace:
		return p.parseMagicConst()
	case lexer.Backtick:
		return p.parseShellExec()
	case lexer.DoubleQuote:
		return p.parseInterpolatedString()
	case lexer.StartHeredoc:
		return p.parseHeredocOrNowdoc()

	case lexer.Plus:
		p.s.next()
		val, err := p.expression(Prefix)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryPlusExpr{BaseNode: ast.BaseNode{NodeKind: ast.KUnaryPlus, NodeSpan: p.s.span(start)}, Value: val}, nil
	case lexer.Minus:
		p.s.next()
		val, err := p.expression(Prefix)
		if err != nil {
			return nil, err
		}
		return &ast.NegateExpr{BaseNode: ast.BaseNode{NodeKind: ast.KNegate, NodeSpan: p.s.span(start)}, Value: val}, nil
	case lexer.Bang:
		p.s.next()
		val, err := p.expression(Bang)
		if err != nil {
			return nil, err
		}
		return &ast.BooleanNotExpr{BaseNode: ast.BaseNode{NodeKind: ast.KBooleanNot, NodeSpan: p.s.span(start)}, Value: val}, nil
	case lexer.Tilde:
		p.s.next()
		val, err := p.expression(Prefix)
		if err != nil {
			return nil, err
		}
		return &ast.BitwiseNotExpr{BaseNode: ast.BaseNode{NodeKind: ast.KBitwiseNot, NodeSpan: p.s.span(start)}, Value: val}, nil
	case lexer.At:
		p.s.next()
		val, err := p.expression(Prefix)
		if err != nil {
			return nil, err
		}
		return &ast.ErrorSuppressExpr{BaseNode: ast.BaseNode{NodeKind: ast.KErrorSuppress, NodeSpan: p.s.span(start)}, Value: val}, nil
	case lexer.Inc:
		p.s.next()
		val, err := p.expression(Prefix)
		if err != nil {
			return nil, err
		}
		return &ast.PreIncExpr{BaseNode: ast.BaseNode{NodeKind: ast.KPreInc, NodeSpan: p.s.span(start)}, Value: val}, nil
	case lexer.Dec:
		p.s.next()
		val, err := p.expression(Prefix)
		if err != nil {
			return nil, err
		}
		return &ast.PreDecExpr{BaseNode: ast.BaseNode{NodeKind: ast.KPreDec, NodeSpan: p.s.span(start)}, Value: val}, nil
	case lexer.KwPrint:
		p.s.next()
		val, err := p.expression(Print)
		if err != nil {
			return nil, err
		}
		return &ast.PrintExpr{BaseNode: ast.BaseNode{NodeKind: ast.KPrint, NodeSpan: p.s.span(start)}, Value: val}, nil

	case lexer.IntCast, lexer.DoubleCast, lexer.StringCast, lexer.ArrayCast,
		lexer.ObjectCast, lexer.BoolCast, lexer.UnsetCast:
		p.s.next()
		val, err := p.expression(Prefix)
		if err != nil {
			return nil, err
		}
		return &ast.CastExpr{BaseNode: ast.BaseNode{NodeKind: ast.KCast, NodeSpan: p.s.span(start)}, To: castKindFor(tok.Kind), Value: val}, nil

	case lexer.KwFunction:
		return p.parseAnonymousFunction(false, nil)
	case lexer.KwFn:
		return p.parseArrowFunction(false, nil)

	case lexer.Identifier, lexer.QualifiedIdentifier, lexer.FullyQualifiedIdentifier:
		id, err := p.fullName()
		if err != nil {
			return nil, err
		}
		return &ast.ConstFetchExpr{BaseNode: ast.BaseNode{NodeKind: ast.KConstFetch, NodeSpan: id.Span()}, Name: id}, nil

	default:
		return nil, p.unexpectedToken()
	}
}

func castKindFor(k lexer.Kind) ast.CastKind {
	switch k {
	case lexer.IntCast:
		return ast.CastInt
	case lexer.DoubleCast:
		return ast.CastFloat
	case lexer.StringCast:
		return ast.CastString
	case lexer.ArrayCast:
		return ast.CastArray
	case lexer.ObjectCast:
		return ast.CastObject
	case lexer.BoolCast:
		return ast.CastBool
	default:
		return ast.CastUnset
	}
}

func (p *Parser) parseDynamicVariable() (ast.Expression, error) {
	start := p.s.current.Start
	p.s.next() // $
	switch p.s.current.Kind {
	case lexer.LBrace:
		p.s.next()
		inner, err := p.expression(Lowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBrace); err != nil {
			return nil, err
		}
		return &ast.DynamicVariable{BaseNode: ast.BaseNode{NodeKind: ast.KDynamicVariable, NodeSpan: p.s.span(start)}, NameExpr: inner}, nil
	case lexer.Variable:
		inner, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		return &ast.DynamicVariable{BaseNode: ast.BaseNode{NodeKind: ast.KDynamicVariable, NodeSpan: p.s.span(start)}, NameExpr: inner}, nil
	case lexer.Dollar:
		inner, err := p.parseDynamicVariable()
		if err != nil {
			return nil, err
		}
		return &ast.DynamicVariable{BaseNode: ast.BaseNode{NodeKind: ast.KDynamicVariable, NodeSpan: p.s.span(start)}, NameExpr: inner}, nil
	default:
		return nil, p.unexpectedToken()
	}
}

// ---- infix ----

func (p *Parser) parseInfix(left ast.Expression, prec Precedence) (ast.Expression, error) {
	start := left.Span().Start
	op := p.s.current

	switch {
	case op.Kind == lexer.Question:
		return p.parseTernary(left, start)
	case isAssignOp(op.Kind):
		return p.parseAssignment(left, op, start)
	default:
		p.s.next()
		right, err := p.expression(prec)
		if err != nil {
			return nil, err
		}
		if op.Kind == lexer.QuestionQuestion {
			return &ast.CoalesceExpr{BaseNode: ast.BaseNode{NodeKind: ast.KCoalesce, NodeSpan: p.s.span(start)}, Left: left, Right: right}, nil
		}
		return &ast.InfixExpr{
			BaseNode: ast.BaseNode{NodeKind: ast.KInfix, NodeSpan: p.s.span(start)},
			Left:     left, Op: string(op.Value), Right: right,
		}, nil
	}
}

// parseTernary handles `?` as the start of a ternary or Elvis form
// (spec.md §4.4).
func (p *Parser) parseTernary(cond ast.Expression, start lexer.Position) (ast.Expression, error) {
	p.s.next() // consume `?`
	if p.s.current.Kind == lexer.Colon {
		p.s.next()
		elseExpr, err := p.expression(Ternary)
		if err != nil {
			return nil, err
		}
		return &ast.TernaryExpr{
			BaseNode:  ast.BaseNode{NodeKind: ast.KTernary, NodeSpan: p.s.span(start)},
			Condition: cond, Then: nil, Else: elseExpr,
		}, nil
	}
	thenExpr, err := p.expression(Lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	elseExpr, err := p.expression(Ternary)
	if err != nil {
		return nil, err
	}
	return &ast.TernaryExpr{
		BaseNode:  ast.BaseNode{NodeKind: ast.KTernary, NodeSpan: p.s.span(start)},
		Condition: cond, Then: thenExpr, Else: elseExpr,
	}, nil
}

// parseAssignment handles the `=`-family, including `= &` reference
// assignment (spec.md §4.4).
func (p *Parser) parseAssignment(left ast.Expression, op lexer.Token, start lexer.Position) (ast.Expression, error) {
	p.s.next() // consume the assignment operator
	byRef := false
	if op.Kind == lexer.Assign && p.s.current.Kind == lexer.Amp {
		byRef = true
		p.s.next()
	}
	right, err := p.expression(Assignment)
	if err != nil {
		return nil, err
	}
	return &ast.InfixExpr{
		BaseNode: ast.BaseNode{NodeKind: ast.KInfix, NodeSpan: p.s.span(start)},
		Left:     left, Op: string(op.Value), Right: right, ByRef: byRef,
	}, nil
}

// ---- postfix ----

func (p *Parser) parsePostfix(left ast.Expression) (ast.Expression, error) {
	start := left.Span().Start
	switch p.s.current.Kind {
	case lexer.QuestionQuestion:
		p.s.next()
		right, err := p.expression(NullCoalesce)
		if err != nil {
			return nil, err
		}
		return &ast.CoalesceExpr{BaseNode: ast.BaseNode{NodeKind: ast.KCoalesce, NodeSpan: p.s.span(start)}, Left: left, Right: right}, nil
	case lexer.LParen:
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{BaseNode: ast.BaseNode{NodeKind: ast.KCall, NodeSpan: p.s.span(start)}, Target: left, Args: args}, nil
	case lexer.LBracket:
		p.s.next()
		var index ast.Expression
		if p.s.current.Kind != lexer.RBracket {
			var err error
			index, err = p.expression(Lowest)
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(lexer.RBracket); err != nil {
			return nil, err
		}
		return &ast.ArrayIndexExpr{BaseNode: ast.BaseNode{NodeKind: ast.KArrayIndex, NodeSpan: p.s.span(start)}, Target: left, Index: index}, nil
	case lexer.DoubleColon:
		return p.parseStaticAccess(left, start)
	case lexer.Arrow, lexer.NullsafeArrow:
		return p.parseObjectAccess(left, start)
	case lexer.Inc:
		p.s.next()
		return &ast.PostIncExpr{BaseNode: ast.BaseNode{NodeKind: ast.KPostInc, NodeSpan: p.s.span(start)}, Value: left}, nil
	case lexer.Dec:
		p.s.next()
		return &ast.PostDecExpr{BaseNode: ast.BaseNode{NodeKind: ast.KPostDec, NodeSpan: p.s.span(start)}, Value: left}, nil
	default:
		return left, nil
	}
}

// parseMember parses the right-hand side of -> / ?-> / ::: an identifier
// (including reserved-as-identifier and `class`), a `$var`, a `${expr}`, or a
// `{expr}` (spec.md §4.4).
func (p *Parser) parseMember() (ast.Member, error) {
	switch p.s.current.Kind {
	case lexer.Variable:
		v, err := p.variable()
		if err != nil {
			return ast.Member{}, err
		}
		return ast.Member{Var: &v}, nil
	case lexer.Dollar:
		expr, err := p.parsePrefix()
		if err != nil {
			return ast.Member{}, err
		}
		return ast.Member{Expr: expr}, nil
	case lexer.LBrace:
		p.s.next()
		expr, err := p.expression(Lowest)
		if err != nil {
			return ast.Member{}, err
		}
		if _, err := p.expect(lexer.RBrace); err != nil {
			return ast.Member{}, err
		}
		return ast.Member{Expr: expr}, nil
	case lexer.KwClass:
		tok := p.s.current
		p.s.next()
		id := ast.NewIdentifier(tokenSpan(tok), []byte("class"))
		return ast.Member{Ident: &id}, nil
	default:
		id, err := p.identMaybeReserved()
		if err != nil {
			return ast.Member{}, err
		}
		return ast.Member{Ident: &id}, nil
	}
}

// parseStaticAccess implements the `::` postfix rule (spec.md §4.4).
func (p *Parser) parseStaticAccess(left ast.Expression, start lexer.Position) (ast.Expression, error) {
	p.s.next() // consume ::
	if p.s.current.Kind == lexer.Variable {
		member, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		return &ast.StaticPropertyFetchExpr{BaseNode: ast.BaseNode{NodeKind: ast.KStaticPropertyFetch, NodeSpan: p.s.span(start)}, Class: left, Property: member}, nil
	}
	if p.s.current.Kind == lexer.LBrace {
		member, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		if p.s.current.Kind == lexer.LParen {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return &ast.StaticMethodCallExpr{BaseNode: ast.BaseNode{NodeKind: ast.KStaticMethodCall, NodeSpan: p.s.span(start)}, Class: left, Method: member, Args: args}, nil
		}
		return &ast.StaticPropertyFetchExpr{BaseNode: ast.BaseNode{NodeKind: ast.KStaticPropertyFetch, NodeSpan: p.s.span(start)}, Class: left, Property: member}, nil
	}
	member, err := p.parseMember()
	if err != nil {
		return nil, err
	}
	if p.s.current.Kind == lexer.LParen {
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return &ast.StaticMethodCallExpr{BaseNode: ast.BaseNode{NodeKind: ast.KStaticMethodCall, NodeSpan: p.s.span(start)}, Class: left, Method: member, Args: args}, nil
	}
	if member.Ident != nil {
		return &ast.ConstFetchExpr{BaseNode: ast.BaseNode{NodeKind: ast.KConstFetch, NodeSpan: p.s.span(start)}, Class: &left, Name: *member.Ident}, nil
	}
	return &ast.StaticPropertyFetchExpr{BaseNode: ast.BaseNode{NodeKind: ast.KStaticPropertyFetch, NodeSpan: p.s.span(start)}, Class: left, Property: member}, nil
}

// parseObjectAccess implements -> and ?-> (spec.md §4.4).
func (p *Parser) parseObjectAccess(left ast.Expression, start lexer.Position) (ast.Expression, error) {
	nullsafe := p.s.current.Kind == lexer.NullsafeArrow
	p.s.next()
	member, err := p.parseMember()
	if err != nil {
		return nil, err
	}
	if p.s.current.Kind == lexer.LParen {
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		if nullsafe {
			return &ast.NullsafeMethodCallExpr{BaseNode: ast.BaseNode{NodeKind: ast.KNullsafeMethodCall, NodeSpan: p.s.span(start)}, Target: left, Method: member, Args: args}, nil
		}
		return &ast.MethodCallExpr{BaseNode: ast.BaseNode{NodeKind: ast.KMethodCall, NodeSpan: p.s.span(start)}, Target: left, Method: member, Args: args}, nil
	}
	if nullsafe {
		return &ast.NullsafePropertyFetchExpr{BaseNode: ast.BaseNode{NodeKind: ast.KNullsafePropertyFetch, NodeSpan: p.s.span(start)}, Target: left, Property: member}, nil
	}
	return &ast.PropertyFetchExpr{BaseNode: ast.BaseNode{NodeKind: ast.KPropertyFetch, NodeSpan: p.s.span(start)}, Target: left, Property: member}, nil
}

// ---- call arguments ----

func (p *Parser) parseArgs() ([]ast.Arg, error) {
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	var args []ast.Arg
	for p.s.current.Kind != lexer.RParen {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.s.current.Kind == lexer.Comma {
			p.s.next()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseArg() (ast.Arg, error) {
	start := p.s.current.Start
	if p.s.current.Kind == lexer.Ellipsis {
		p.s.next()
		val, err := p.expression(Lowest)
		if err != nil {
			return ast.Arg{}, err
		}
		return ast.Arg{BaseNode: ast.BaseNode{NodeKind: ast.KArg, NodeSpan: p.s.span(start)}, Value: val, Spread: true}, nil
	}
	// Named argument: `ident: expr`. Bounded lookahead distinguishes this
	// from a bare expression starting with an identifier.
	if (p.s.current.Kind == lexer.Identifier || reservedAsIdent[p.s.current.Kind]) && p.s.peek.Kind == lexer.Colon {
		name, err := p.identMaybeReserved()
		if err != nil {
			return ast.Arg{}, err
		}
		if _, err := p.expect(lexer.Colon); err != nil {
			return ast.Arg{}, err
		}
		val, err := p.expression(Lowest)
		if err != nil {
			return ast.Arg{}, err
		}
		return ast.Arg{BaseNode: ast.BaseNode{NodeKind: ast.KArg, NodeSpan: p.s.span(start)}, Name: &name, Value: val}, nil
	}
	val, err := p.expression(Lowest)
	if err != nil {
		return ast.Arg{}, err
	}
	return ast.Arg{BaseNode: ast.BaseNode{NodeKind: ast.KArg, NodeSpan: p.s.span(start)}, Value: val}, nil
}

// ---- array / list literals ----

func (p *Parser) parseArrayExpr(short bool) (ast.Expression, error) {
	start := p.s.current.Start
	closing := lexer.RParen
	if short {
		p.s.next() // [
		closing = lexer.RBracket
	} else {
		p.s.next() // array
		if _, err := p.expect(lexer.LParen); err != nil {
			return nil, err
		}
	}
	var items []ast.ArrayItem
	for p.s.current.Kind != closing {
		item, err := p.parseArrayItem(false)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.s.current.Kind == lexer.Comma {
			p.s.next()
			continue
		}
		break
	}
	if _, err := p.expect(closing); err != nil {
		return nil, err
	}
	return &ast.ArrayExpr{BaseNode: ast.BaseNode{NodeKind: ast.KArray, NodeSpan: p.s.span(start)}, Items: items, Short: short}, nil
}

// parseArrayItem parses one array-literal / list() entry. allowEmpty permits
// a bare comma to stand for a sparse destructuring slot (spec.md §9,
// list(...) open question).
func (p *Parser) parseArrayItem(allowEmpty bool) (ast.ArrayItem, error) {
	start := p.s.current.Start
	if allowEmpty && (p.s.current.Kind == lexer.Comma || p.s.current.Kind == lexer.RParen) {
		return ast.ArrayItem{BaseNode: ast.BaseNode{NodeKind: ast.KArrayItem, NodeSpan: p.s.span(start)}}, nil
	}
	spread := false
	if p.s.current.Kind == lexer.Ellipsis {
		spread = true
		p.s.next()
	}
	if p.s.current.Kind == lexer.Amp {
		if spread {
			return ast.ArrayItem{}, perrors.NewUnexpectedToken("&", p.currentSpan())
		}
		ampSpan := p.currentSpan()
		p.s.next()
		val, err := p.expression(Lowest)
		if err != nil {
			return ast.ArrayItem{}, err
		}
		if p.s.current.Kind == lexer.DoubleArrow {
			return ast.ArrayItem{}, perrors.NewUnexpectedToken("&", ampSpan)
		}
		return ast.ArrayItem{BaseNode: ast.BaseNode{NodeKind: ast.KArrayItem, NodeSpan: p.s.span(start)}, Value: val, ByRef: true}, nil
	}
	first, err := p.expression(Lowest)
	if err != nil {
		return ast.ArrayItem{}, err
	}
	if p.s.current.Kind == lexer.DoubleArrow {
		if spread {
			return ast.ArrayItem{}, perrors.NewUnexpectedToken("=>", p.currentSpan())
		}
		p.s.next()
		byRef := false
		if p.s.current.Kind == lexer.Amp {
			byRef = true
			p.s.next()
		}
		val, err := p.expression(Lowest)
		if err != nil {
			return ast.ArrayItem{}, err
		}
		return ast.ArrayItem{BaseNode: ast.BaseNode{NodeKind: ast.KArrayItem, NodeSpan: p.s.span(start)}, Key: first, Value: val, ByRef: byRef}, nil
	}
	return ast.ArrayItem{BaseNode: ast.BaseNode{NodeKind: ast.KArrayItem, NodeSpan: p.s.span(start)}, Value: first, Spread: spread}, nil
}

// parseListExpression implements `list(...)` with sparse-slot support
// (spec.md §9's resolved Open Question).
func (p *Parser) parseListExpression() (ast.Expression, error) {
	start := p.s.current.Start
	p.s.next() // list
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	var items []ast.ArrayItem
	for p.s.current.Kind != lexer.RParen {
		item, err := p.parseArrayItem(true)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.s.current.Kind == lexer.Comma {
			p.s.next()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return &ast.ArrayExpr{BaseNode: ast.BaseNode{NodeKind: ast.KArray, NodeSpan: p.s.span(start)}, Items: items, Short: false}, nil
}

// ---- match ----

func (p *Parser) parseMatch() (ast.Expression, error) {
	start := p.s.current.Start
	p.s.next() // match
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
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	var arms []ast.MatchArm
	var defaultBody *ast.Expression
	for p.s.current.Kind != lexer.RBrace {
		armStart := p.s.current.Start
		if p.s.current.Kind == lexer.KwDefault {
			if defaultBody != nil {
				return nil, perrors.NewMatchExpressionWithMultipleDefaultArms(p.currentSpan())
			}
			p.s.next()
			if _, err := p.expect(lexer.DoubleArrow); err != nil {
				return nil, err
			}
			body, err := p.expression(Lowest)
			if err != nil {
				return nil, err
			}
			defaultBody = &body
			arms = append(arms, ast.MatchArm{
				BaseNode: ast.BaseNode{NodeKind: ast.KMatchArm, NodeSpan: p.s.span(armStart)},
				Body:     body,
			})
		} else {
			var conds []ast.Expression
			for {
				c, err := p.expression(Lowest)
				if err != nil {
					return nil, err
				}
				conds = append(conds, c)
				if p.s.current.Kind == lexer.Comma {
					p.s.next()
					if p.s.current.Kind == lexer.DoubleArrow {
						break
					}
					continue
				}
				break
			}
			if _, err := p.expect(lexer.DoubleArrow); err != nil {
				return nil, err
			}
			body, err := p.expression(Lowest)
			if err != nil {
				return nil, err
			}
			arms = append(arms, ast.MatchArm{
				BaseNode:   ast.BaseNode{NodeKind: ast.KMatchArm, NodeSpan: p.s.span(armStart)},
				Conditions: conds, Body: body,
			})
		}
		if p.s.current.Kind == lexer.Comma {
			p.s.next()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return &ast.MatchExpr{
		BaseNode:  ast.BaseNode{NodeKind: ast.KMatch, NodeSpan: p.s.span(start)},
		Condition: cond, Arms: arms, Default: defaultBody,
	}, nil
}

// ---- new ----

func (p *Parser) parseNew() (ast.Expression, error) {
	start := p.s.current.Start
	p.s.next() // new
	if p.s.current.Kind == lexer.KwClass {
		anon, err := p.parseAnonymousClassBody(start, nil)
		if err != nil {
			return nil, err
		}
		return &ast.NewExpr{BaseNode: ast.BaseNode{NodeKind: ast.KNew, NodeSpan: p.s.span(start)}, Class: anon}, nil
	}

	var target ast.Expression
	var err error
	switch p.s.current.Kind {
	case lexer.KwSelf, lexer.KwStatic, lexer.KwParent:
		target, err = p.parsePrefix()
	case lexer.LParen:
		p.s.next()
		target, err = p.expression(Lowest)
		if err == nil {
			_, err = p.expect(lexer.RParen)
		}
	case lexer.Variable, lexer.Dollar:
		target, err = p.parsePrefix()
		if err == nil {
			target, err = p.parseInfixPostfix(target, ObjectAccess)
		}
	default:
		var id ast.Identifier
		id, err = p.fullName()
		if err == nil {
			target = &ast.ConstFetchExpr{BaseNode: ast.BaseNode{NodeKind: ast.KConstFetch, NodeSpan: id.Span()}, Name: id}
		}
	}
	if err != nil {
		return nil, err
	}
	var args []ast.Arg
	if p.s.current.Kind == lexer.LParen {
		args, err = p.parseArgs()
		if err != nil {
			return nil, err
		}
	}
	return &ast.NewExpr{BaseNode: ast.BaseNode{NodeKind: ast.KNew, NodeSpan: p.s.span(start)}, Target: target, Args: args}, nil
}

// ---- yield ----

func (p *Parser) parseYield() (ast.Expression, error) {
	start := p.s.current.Start
	p.s.next() // yield

	if p.s.current.Kind == lexer.Identifier && string(p.s.current.Value) == "from" {
		p.s.next()
		val, err := p.expression(YieldFrom)
		if err != nil {
			return nil, err
		}
		if p.s.current.Kind == lexer.DoubleArrow {
			return nil, p.unexpectedToken()
		}
		return &ast.YieldFromExpr{BaseNode: ast.BaseNode{NodeKind: ast.KYieldFrom, NodeSpan: p.s.span(start)}, Value: val}, nil
	}

	if p.s.current.Kind == lexer.Semicolon || p.s.current.Kind == lexer.RParen ||
		p.s.current.Kind == lexer.RBracket || p.s.current.Kind == lexer.Comma ||
		p.s.current.Kind == lexer.EOF {
		return &ast.YieldExpr{BaseNode: ast.BaseNode{NodeKind: ast.KYield, NodeSpan: p.s.span(start)}}, nil
	}

	val, err := p.expression(Yield)
	if err != nil {
		return nil, err
	}
	if p.s.current.Kind == lexer.DoubleArrow {
		p.s.next()
		value, err := p.expression(Yield)
		if err != nil {
			return nil, err
		}
		return &ast.YieldExpr{BaseNode: ast.BaseNode{NodeKind: ast.KYield, NodeSpan: p.s.span(start)}, Key: val, Value: value}, nil
	}
	return &ast.YieldExpr{BaseNode: ast.BaseNode{NodeKind: ast.KYield, NodeSpan: p.s.span(start)}, Value: val}, nil
}

// ---- include/require ----

func (p *Parser) parseInclude(kind ast.IncludeKind) (ast.Expression, error) {
	start := p.s.current.Start
	p.s.next()
	path, err := p.expression(Lowest)
	if err != nil {
		return nil, err
	}
	return &ast.IncludeExpr{BaseNode: ast.BaseNode{NodeKind: ast.KInclude, NodeSpan: p.s.span(start)}, Which: kind, Path: path}, nil
}

// ---- magic constants ----

func (p *Parser) parseMagicConst() (ast.Expression, error) {
	start := p.s.current.Start
	var which ast.MagicConstKind
	switch p.s.current.Kind {
	case lexer.MagicLine:
		which = ast.MagicLine
	case lexer.MagicFile:
		which = ast.MagicFile
	case lexer.MagicDir:
		which = ast.MagicDir
	case lexer.MagicClass:
		which = ast.MagicClass
	case lexer.MagicTrait:
		which = ast.MagicTrait
	case lexer.MagicMethod:
		which = ast.MagicMethod
	case lexer.MagicFunction:
		which = ast.MagicFunction
	case lexer.MagicNamespace:
		which = ast.MagicNamespace
	}
	p.s.next()
	return &ast.MagicConstExpr{BaseNode: ast.BaseNode{NodeKind: ast.KMagicConst, NodeSpan: p.s.span(start)}, Which: which}, nil
}

// ---- types ----

// parseType parses a param/return/property type hint into an Expression
// (nullable/union/intersection wrappers around ConstFetchExpr leaves; see
// ast/node.go's NullableTypeExpr doc comment).
func (p *Parser) parseType() (ast.Expression, error) {
	start := p.s.current.Start
	if p.s.current.Kind == lexer.Question {
		p.s.next()
		inner, err := p.parseTypeAtom()
		if err != nil {
			return nil, err
		}
		return &ast.NullableTypeExpr{BaseNode: ast.BaseNode{NodeKind: ast.KNullableType, NodeSpan: p.s.span(start)}, Type: inner}, nil
	}
	first, err := p.parseTypeAtom()
	if err != nil {
		return nil, err
	}
	if p.s.current.Kind == lexer.Pipe {
		types := []ast.Expression{first}
		for p.s.current.Kind == lexer.Pipe {
			p.s.next()
			next, err := p.parseTypeAtom()
			if err != nil {
				return nil, err
			}
			types = append(types, next)
		}
		return &ast.UnionTypeExpr{BaseNode: ast.BaseNode{NodeKind: ast.KUnionType, NodeSpan: p.s.span(start)}, Types: types}, nil
	}
	if p.s.current.Kind == lexer.Amp && (p.s.peek.Kind == lexer.Identifier || p.s.peek.Kind == lexer.QualifiedIdentifier || p.s.peek.Kind == lexer.FullyQualifiedIdentifier) {
		types := []ast.Expression{first}
		for p.s.current.Kind == lexer.Amp {
			p.s.next()
			next, err := p.parseTypeAtom()
			if err != nil {
				return nil, err
			}
			types = append(types, next)
		}
		return &ast.IntersectionTypeExpr{BaseNode: ast.BaseNode{NodeKind: ast.KIntersectionType, NodeSpan: p.s.span(start)}, Types: types}, nil
	}
	return first, nil
}

func (p *Parser) parseTypeAtom() (ast.Expression, error) {
	switch p.s.current.Kind {
	case lexer.KwSelf:
		tok := p.s.current
		p.s.next()
		id := ast.NewIdentifier(tokenSpan(tok), []byte("self"))
		return &ast.ConstFetchExpr{BaseNode: ast.BaseNode{NodeKind: ast.KConstFetch, NodeSpan: id.Span()}, Name: id}, nil
	case lexer.KwParent:
		tok := p.s.current
		p.s.next()
		id := ast.NewIdentifier(tokenSpan(tok), []byte("parent"))
		return &ast.ConstFetchExpr{BaseNode: ast.BaseNode{NodeKind: ast.KConstFetch, NodeSpan: id.Span()}, Name: id}, nil
	default:
		id, err := p.typeWithStatic()
		if err != nil {
			return nil, err
		}
		return &ast.ConstFetchExpr{BaseNode: ast.BaseNode{NodeKind: ast.KConstFetch, NodeSpan: id.Span()}, Name: id}, nil
	}
}
