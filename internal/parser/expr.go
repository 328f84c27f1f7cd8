package parser

import (
	"strings"

	"pycheck/internal/ast"
	"pycheck/internal/source"
	"pycheck/internal/token"
)

// parseTestList parses `expr (',' expr)* [',']`, folding multiple items
// into a tuple. Used for assignment values, return values and subjects.
func (p *Parser) parseTestList() *ast.Expr {
	start := p.tok.Span
	first := p.parseStarOrExpr()
	if !p.at(token.Comma) {
		return first
	}
	elements := []*ast.Expr{first}
	for p.eat(token.Comma) {
		if p.exprListEnds() {
			break
		}
		elements = append(elements, p.parseStarOrExpr())
	}
	return &ast.Expr{Kind: ast.ExprTuple, Span: start.Cover(p.lastSpan),
		Data: ast.SequenceData{Elements: elements}}
}

// parseTargetList is parseTestList for assignment target position. The
// `in` of a for target is not a comparison, so it is disabled while the
// targets are read; validity of targets is checked downstream.
func (p *Parser) parseTargetList() *ast.Expr {
	p.noIn = true
	e := p.parseTestList()
	p.noIn = false
	return e
}

func (p *Parser) exprListEnds() bool {
	switch p.tok.Kind {
	case token.Newline, token.Semicolon, token.EOF, token.Dedent, token.Assign,
		token.Colon, token.RParen, token.RBracket, token.RBrace, token.KwIn:
		return true
	default:
		return p.tok.IsAugAssign()
	}
}

func (p *Parser) parseStarOrExpr() *ast.Expr {
	if p.at(token.Star) {
		start := p.tok.Span
		p.advance()
		value := p.parseExpr()
		return &ast.Expr{Kind: ast.ExprStarred, Span: start.Cover(p.lastSpan),
			Data: ast.StarredData{Value: value}}
	}
	return p.parseExpr()
}

// parseNamedExpr parses an expression that may be a walrus binding, as in
// `if (n := read()) > 0:`.
func (p *Parser) parseNamedExpr() *ast.Expr {
	e := p.parseExpr()
	return e
}

// parseExpr parses a single expression: lambda, ternary, yield, or the
// boolean-operator chain downward.
func (p *Parser) parseExpr() *ast.Expr {
	switch p.tok.Kind {
	case token.KwLambda:
		return p.parseLambda()
	case token.KwYield:
		return p.parseYield()
	}

	start := p.tok.Span
	e := p.parseOr()

	if p.at(token.Walrus) {
		p.advance()
		value := p.parseExpr()
		if e.Kind != ast.ExprName {
			p.errAt(e.Span, "cannot use walrus operator with this target")
		}
		return &ast.Expr{Kind: ast.ExprNamed, Span: start.Cover(p.lastSpan),
			Data: ast.NamedData{Target: e, Value: value}}
	}

	if p.at(token.KwIf) {
		p.advance()
		cond := p.parseOr()
		if _, ok := p.expect(token.KwElse, "'else'"); !ok {
			return e
		}
		orElse := p.parseExpr()
		return &ast.Expr{Kind: ast.ExprTernary, Span: start.Cover(p.lastSpan),
			Data: ast.TernaryData{Cond: cond, Then: e, OrElse: orElse}}
	}
	return e
}

func (p *Parser) parseLambda() *ast.Expr {
	start := p.tok.Span
	p.advance() // lambda
	var params []string
	for p.at(token.Ident) || p.at(token.Star) || p.at(token.StarStar) {
		p.eat(token.Star)
		p.eat(token.StarStar)
		if tok, ok := p.expect(token.Ident, "parameter name"); ok {
			params = append(params, tok.Text)
		} else {
			break
		}
		if p.eat(token.Assign) {
			p.parseExpr() // default value, not retained
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.Colon, "':'"); !ok {
		return &ast.Expr{Kind: ast.ExprLambda, Span: start.Cover(p.lastSpan),
			Data: ast.LambdaData{Params: params}}
	}
	body := p.parseExpr()
	return &ast.Expr{Kind: ast.ExprLambda, Span: start.Cover(p.lastSpan),
		Data: ast.LambdaData{Params: params, Body: body}}
}

func (p *Parser) parseYield() *ast.Expr {
	start := p.tok.Span
	p.advance() // yield
	if p.eat(token.KwFrom) {
		value := p.parseExpr()
		return &ast.Expr{Kind: ast.ExprYieldFrom, Span: start.Cover(p.lastSpan),
			Data: ast.YieldFromData{Value: value}}
	}
	var value *ast.Expr
	if !p.yieldEnds() {
		value = p.parseTestList()
	}
	return &ast.Expr{Kind: ast.ExprYield, Span: start.Cover(p.lastSpan),
		Data: ast.YieldData{Value: value}}
}

func (p *Parser) yieldEnds() bool {
	switch p.tok.Kind {
	case token.Newline, token.Semicolon, token.EOF, token.Dedent,
		token.RParen, token.RBracket, token.RBrace, token.Comma, token.Colon:
		return true
	default:
		return false
	}
}

func (p *Parser) parseOr() *ast.Expr {
	start := p.tok.Span
	e := p.parseAnd()
	if !p.at(token.KwOr) {
		return e
	}
	values := []*ast.Expr{e}
	for p.eat(token.KwOr) {
		values = append(values, p.parseAnd())
	}
	return &ast.Expr{Kind: ast.ExprBoolOp, Span: start.Cover(p.lastSpan),
		Data: ast.BoolOpData{Op: ast.BoolOr, Values: values}}
}

func (p *Parser) parseAnd() *ast.Expr {
	start := p.tok.Span
	e := p.parseNot()
	if !p.at(token.KwAnd) {
		return e
	}
	values := []*ast.Expr{e}
	for p.eat(token.KwAnd) {
		values = append(values, p.parseNot())
	}
	return &ast.Expr{Kind: ast.ExprBoolOp, Span: start.Cover(p.lastSpan),
		Data: ast.BoolOpData{Op: ast.BoolAnd, Values: values}}
}

func (p *Parser) parseNot() *ast.Expr {
	if p.at(token.KwNot) {
		start := p.tok.Span
		p.advance()
		operand := p.parseNot()
		return &ast.Expr{Kind: ast.ExprUnaryOp, Span: start.Cover(p.lastSpan),
			Data: ast.UnaryOpData{Op: "not", Operand: operand}}
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() *ast.Expr {
	start := p.tok.Span
	left := p.parseBitOr()

	var ops []string
	var comparators []*ast.Expr
	for {
		op, ok := p.comparisonOp()
		if !ok {
			break
		}
		ops = append(ops, op)
		comparators = append(comparators, p.parseBitOr())
	}
	if len(ops) == 0 {
		return left
	}
	return &ast.Expr{Kind: ast.ExprCompare, Span: start.Cover(p.lastSpan),
		Data: ast.CompareData{Left: left, Ops: ops, Comparators: comparators}}
}

// comparisonOp consumes one comparison operator, including the two-word
// forms `not in` and `is not`.
func (p *Parser) comparisonOp() (string, bool) {
	switch p.tok.Kind {
	case token.Lt, token.LtEq, token.Gt, token.GtEq, token.EqEq, token.BangEq:
		return p.advance().Text, true
	case token.KwIn:
		if p.noIn {
			return "", false
		}
		p.advance()
		return "in", true
	case token.KwNot:
		if !p.noIn && p.lx.Peek().Kind == token.KwIn {
			p.advance()
			p.advance()
			return "not in", true
		}
		return "", false
	case token.KwIs:
		p.advance()
		if p.eat(token.KwNot) {
			return "is not", true
		}
		return "is", true
	default:
		return "", false
	}
}

func (p *Parser) parseBitOr() *ast.Expr {
	return p.parseBinaryChain(p.parseBitXor, token.Pipe)
}

func (p *Parser) parseBitXor() *ast.Expr {
	return p.parseBinaryChain(p.parseBitAnd, token.Caret)
}

func (p *Parser) parseBitAnd() *ast.Expr {
	return p.parseBinaryChain(p.parseShift, token.Amp)
}

func (p *Parser) parseShift() *ast.Expr {
	return p.parseBinaryChain(p.parseArith, token.Shl, token.Shr)
}

func (p *Parser) parseArith() *ast.Expr {
	return p.parseBinaryChain(p.parseTerm, token.Plus, token.Minus)
}

func (p *Parser) parseTerm() *ast.Expr {
	return p.parseBinaryChain(p.parseFactor,
		token.Star, token.Slash, token.SlashSlash, token.Percent, token.At)
}

func (p *Parser) parseBinaryChain(next func() *ast.Expr, kinds ...token.Kind) *ast.Expr {
	start := p.tok.Span
	left := next()
	for {
		matched := false
		for _, k := range kinds {
			if p.at(k) {
				matched = true
				break
			}
		}
		if !matched {
			return left
		}
		op := p.advance().Text
		right := next()
		left = &ast.Expr{Kind: ast.ExprBinOp, Span: start.Cover(p.lastSpan),
			Data: ast.BinOpData{Op: op, Left: left, Right: right}}
	}
}

func (p *Parser) parseFactor() *ast.Expr {
	switch p.tok.Kind {
	case token.Plus, token.Minus, token.Tilde:
		start := p.tok.Span
		op := p.advance().Text
		operand := p.parseFactor()
		return &ast.Expr{Kind: ast.ExprUnaryOp, Span: start.Cover(p.lastSpan),
			Data: ast.UnaryOpData{Op: op, Operand: operand}}
	}
	return p.parsePower()
}

func (p *Parser) parsePower() *ast.Expr {
	start := p.tok.Span
	left := p.parseAwaitPrimary()
	if !p.at(token.StarStar) {
		return left
	}
	p.advance()
	right := p.parseFactor() // right associative
	return &ast.Expr{Kind: ast.ExprBinOp, Span: start.Cover(p.lastSpan),
		Data: ast.BinOpData{Op: "**", Left: left, Right: right}}
}

func (p *Parser) parseAwaitPrimary() *ast.Expr {
	if p.at(token.KwAwait) {
		start := p.tok.Span
		p.advance()
		value := p.parseAwaitPrimary()
		return &ast.Expr{Kind: ast.ExprAwait, Span: start.Cover(p.lastSpan),
			Data: ast.AwaitData{Value: value}}
	}
	return p.parsePostfix()
}

// parsePostfix parses an atom followed by attribute access, calls and
// subscripts.
func (p *Parser) parsePostfix() *ast.Expr {
	start := p.tok.Span
	e := p.parseAtom()
	for {
		switch p.tok.Kind {
		case token.Dot:
			p.advance()
			tok, ok := p.expect(token.Ident, "attribute name")
			if !ok {
				return e
			}
			e = &ast.Expr{Kind: ast.ExprAttribute, Span: start.Cover(p.lastSpan),
				Data: ast.AttributeData{Object: e, Name: tok.Text}}
		case token.LParen:
			e = p.parseCall(start, e)
		case token.LBracket:
			p.advance()
			index := p.parseSubscriptIndex()
			p.expect(token.RBracket, "']'")
			e = &ast.Expr{Kind: ast.ExprSubscript, Span: start.Cover(p.lastSpan),
				Data: ast.SubscriptData{Object: e, Index: index}}
		default:
			return e
		}
	}
}

// parsePostfixTarget parses a restricted target (name, attribute or
// subscript chains, or a parenthesized/tuple of those) for `with ... as`.
func (p *Parser) parsePostfixTarget() *ast.Expr {
	return p.parsePostfix()
}

func (p *Parser) parseCall(start source.Span, callee *ast.Expr) *ast.Expr {
	p.advance() // (
	var args []*ast.Expr
	var keywords []ast.Keyword

	for !p.at(token.RParen) && !p.at(token.EOF) {
		switch {
		case p.at(token.StarStar):
			kstart := p.tok.Span
			p.advance()
			value := p.parseExpr()
			keywords = append(keywords, ast.Keyword{Value: value, Span: kstart.Cover(p.lastSpan)})
		case p.at(token.Star):
			args = append(args, p.parseStarOrExpr())
		case p.at(token.Ident) && p.lx.Peek().Kind == token.Assign:
			kstart := p.tok.Span
			name := p.advance().Text
			p.advance() // =
			value := p.parseExpr()
			keywords = append(keywords, ast.Keyword{Name: name, Value: value, Span: kstart.Cover(p.lastSpan)})
		default:
			arg := p.parseExpr()
			if p.at(token.KwFor) || (p.at(token.KwAsync) && p.lx.Peek().Kind == token.KwFor) {
				arg = p.parseComprehensionTail(ast.CompGenerator, start, nil, arg)
			}
			args = append(args, arg)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, "')'")
	return &ast.Expr{Kind: ast.ExprCall, Span: start.Cover(p.lastSpan),
		Data: ast.CallData{Callee: callee, Args: args, Keywords: keywords}}
}

// parseSubscriptIndex parses the bracket interior: an index, a slice, or a
// comma list of those (folded into a tuple).
func (p *Parser) parseSubscriptIndex() *ast.Expr {
	start := p.tok.Span
	first := p.parseSliceItem()
	if !p.at(token.Comma) {
		return first
	}
	elements := []*ast.Expr{first}
	for p.eat(token.Comma) {
		if p.at(token.RBracket) {
			break
		}
		elements = append(elements, p.parseSliceItem())
	}
	return &ast.Expr{Kind: ast.ExprTuple, Span: start.Cover(p.lastSpan),
		Data: ast.SequenceData{Elements: elements}}
}

func (p *Parser) parseSliceItem() *ast.Expr {
	start := p.tok.Span
	var lower *ast.Expr
	if !p.at(token.Colon) {
		lower = p.parseStarOrExpr()
		if !p.at(token.Colon) {
			return lower
		}
	}
	p.advance() // :
	var upper, step *ast.Expr
	if !p.at(token.Colon) && !p.at(token.RBracket) && !p.at(token.Comma) {
		upper = p.parseExpr()
	}
	if p.eat(token.Colon) {
		if !p.at(token.RBracket) && !p.at(token.Comma) {
			step = p.parseExpr()
		}
	}
	return &ast.Expr{Kind: ast.ExprSlice, Span: start.Cover(p.lastSpan),
		Data: ast.SliceData{Lower: lower, Upper: upper, Step: step}}
}

// parseComprehensionTail parses `for target in iter [if cond]* ...` after
// the element (and key, for dict comprehensions) has been parsed.
func (p *Parser) parseComprehensionTail(kind ast.CompKind, start source.Span, key, element *ast.Expr) *ast.Expr {
	var generators []ast.CompFor
	for {
		isAsync := false
		if p.at(token.KwAsync) && p.lx.Peek().Kind == token.KwFor {
			p.advance()
			isAsync = true
		}
		if !p.eat(token.KwFor) {
			break
		}
		target := p.parseTargetList()
		if _, ok := p.expect(token.KwIn, "'in'"); !ok {
			break
		}
		iter := p.parseOr()
		var conds []*ast.Expr
		for p.eat(token.KwIf) {
			conds = append(conds, p.parseOr())
		}
		generators = append(generators, ast.CompFor{Target: target, Iter: iter, Conds: conds, IsAsync: isAsync})
	}
	return &ast.Expr{Kind: ast.ExprComprehension, Span: start.Cover(p.lastSpan),
		Data: ast.ComprehensionData{Kind: kind, Key: key, Element: element, Generators: generators}}
}

func (p *Parser) parseAtom() *ast.Expr {
	start := p.tok.Span

	switch p.tok.Kind {
	case token.Ident:
		tok := p.advance()
		return &ast.Expr{Kind: ast.ExprName, Span: tok.Span, Data: ast.NameData{Name: tok.Text}}

	case token.NoneLit:
		tok := p.advance()
		return &ast.Expr{Kind: ast.ExprConstant, Span: tok.Span,
			Data: ast.ConstantData{Kind: ast.ConstNone, Text: tok.Text}}

	case token.TrueLit, token.FalseLit:
		tok := p.advance()
		return &ast.Expr{Kind: ast.ExprConstant, Span: tok.Span,
			Data: ast.ConstantData{Kind: ast.ConstBool, Text: tok.Text, Bool: tok.Kind == token.TrueLit}}

	case token.IntLit:
		tok := p.advance()
		return &ast.Expr{Kind: ast.ExprConstant, Span: tok.Span,
			Data: ast.ConstantData{Kind: ast.ConstInt, Text: tok.Text}}

	case token.FloatLit:
		tok := p.advance()
		return &ast.Expr{Kind: ast.ExprConstant, Span: tok.Span,
			Data: ast.ConstantData{Kind: ast.ConstFloat, Text: tok.Text}}

	case token.Ellipsis:
		tok := p.advance()
		return &ast.Expr{Kind: ast.ExprConstant, Span: tok.Span,
			Data: ast.ConstantData{Kind: ast.ConstEllipsis, Text: tok.Text}}

	case token.StringLit, token.FStringLit:
		return p.parseStringGroup()

	case token.LParen:
		return p.parseParenAtom()

	case token.LBracket:
		return p.parseListAtom()

	case token.LBrace:
		return p.parseBraceAtom()

	default:
		p.errHere("expected an expression")
		sp := p.diagSpan()
		if !p.atLineEnd() {
			p.advance()
		}
		return &ast.Expr{Kind: ast.ExprConstant, Span: sp.Cover(start),
			Data: ast.ConstantData{Kind: ast.ConstNone}}
	}
}

// parseStringGroup parses one or more adjacent string literals, which
// Python concatenates. Any f-string in the group makes the result an
// f-string.
func (p *Parser) parseStringGroup() *ast.Expr {
	start := p.tok.Span
	isF := false
	var decoded strings.Builder
	var raw strings.Builder
	for p.at(token.StringLit) || p.at(token.FStringLit) {
		tok := p.advance()
		if tok.Kind == token.FStringLit {
			isF = true
		}
		raw.WriteString(tok.Text)
		decoded.WriteString(unquoteString(tok.Text))
	}
	if isF {
		return &ast.Expr{Kind: ast.ExprFString, Span: start.Cover(p.lastSpan),
			Data: ast.FStringData{}}
	}
	kind := ast.ConstString
	if strings.ContainsAny(prefixOf(raw.String()), "bB") {
		kind = ast.ConstBytes
	}
	return &ast.Expr{Kind: ast.ExprConstant, Span: start.Cover(p.lastSpan),
		Data: ast.ConstantData{Kind: kind, Text: raw.String(), Str: decoded.String()}}
}

func prefixOf(lit string) string {
	for i := 0; i < len(lit); i++ {
		if lit[i] == '"' || lit[i] == '\'' {
			return lit[:i]
		}
	}
	return ""
}

// unquoteString strips the prefix and quotes from a string literal and
// resolves the common escapes. Unknown escapes are kept verbatim.
func unquoteString(lit string) string {
	prefix := prefixOf(lit)
	raw := strings.ContainsAny(prefix, "rR")
	body := lit[len(prefix):]

	if len(body) >= 6 && (strings.HasPrefix(body, `"""`) || strings.HasPrefix(body, "'''")) {
		body = body[3 : len(body)-3]
	} else if len(body) >= 2 {
		body = body[1 : len(body)-1]
	}
	if raw || !strings.ContainsRune(body, '\\') {
		return body
	}

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\', '\'', '"':
			b.WriteByte(body[i])
		case '\n':
			// escaped newline disappears
		default:
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

// parseParenAtom parses '()' (empty tuple), a parenthesized expression, a
// tuple display, a generator expression, or a parenthesized yield.
func (p *Parser) parseParenAtom() *ast.Expr {
	start := p.tok.Span
	p.advance() // (

	if p.at(token.RParen) {
		p.advance()
		return &ast.Expr{Kind: ast.ExprTuple, Span: start.Cover(p.lastSpan), Data: ast.SequenceData{}}
	}

	first := p.parseStarOrExpr()

	if p.at(token.KwFor) || (p.at(token.KwAsync) && p.lx.Peek().Kind == token.KwFor) {
		gen := p.parseComprehensionTail(ast.CompGenerator, start, nil, first)
		p.expect(token.RParen, "')'")
		gen.Span = start.Cover(p.lastSpan)
		return gen
	}

	if p.at(token.Comma) {
		elements := []*ast.Expr{first}
		for p.eat(token.Comma) {
			if p.at(token.RParen) {
				break
			}
			elements = append(elements, p.parseStarOrExpr())
		}
		p.expect(token.RParen, "')'")
		return &ast.Expr{Kind: ast.ExprTuple, Span: start.Cover(p.lastSpan),
			Data: ast.SequenceData{Elements: elements}}
	}

	p.expect(token.RParen, "')'")
	return first
}

func (p *Parser) parseListAtom() *ast.Expr {
	start := p.tok.Span
	p.advance() // [

	if p.at(token.RBracket) {
		p.advance()
		return &ast.Expr{Kind: ast.ExprList, Span: start.Cover(p.lastSpan), Data: ast.SequenceData{}}
	}

	first := p.parseStarOrExpr()

	if p.at(token.KwFor) || (p.at(token.KwAsync) && p.lx.Peek().Kind == token.KwFor) {
		comp := p.parseComprehensionTail(ast.CompList, start, nil, first)
		p.expect(token.RBracket, "']'")
		comp.Span = start.Cover(p.lastSpan)
		return comp
	}

	elements := []*ast.Expr{first}
	for p.eat(token.Comma) {
		if p.at(token.RBracket) {
			break
		}
		elements = append(elements, p.parseStarOrExpr())
	}
	p.expect(token.RBracket, "']'")
	return &ast.Expr{Kind: ast.ExprList, Span: start.Cover(p.lastSpan),
		Data: ast.SequenceData{Elements: elements}}
}

// parseBraceAtom parses dict and set displays and their comprehensions.
func (p *Parser) parseBraceAtom() *ast.Expr {
	start := p.tok.Span
	p.advance() // {

	if p.at(token.RBrace) {
		p.advance()
		return &ast.Expr{Kind: ast.ExprDict, Span: start.Cover(p.lastSpan), Data: ast.DictData{}}
	}

	// ** expansion means a dict
	if p.at(token.StarStar) {
		p.advance()
		value := p.parseOr()
		items := []ast.DictItem{{Value: value}}
		items = append(items, p.parseDictRest()...)
		p.expect(token.RBrace, "'}'")
		return &ast.Expr{Kind: ast.ExprDict, Span: start.Cover(p.lastSpan), Data: ast.DictData{Items: items}}
	}

	first := p.parseStarOrExpr()

	if p.eat(token.Colon) {
		value := p.parseExpr()
		if p.at(token.KwFor) || (p.at(token.KwAsync) && p.lx.Peek().Kind == token.KwFor) {
			comp := p.parseComprehensionTail(ast.CompDict, start, first, value)
			p.expect(token.RBrace, "'}'")
			comp.Span = start.Cover(p.lastSpan)
			return comp
		}
		items := []ast.DictItem{{Key: first, Value: value}}
		items = append(items, p.parseDictRest()...)
		p.expect(token.RBrace, "'}'")
		return &ast.Expr{Kind: ast.ExprDict, Span: start.Cover(p.lastSpan), Data: ast.DictData{Items: items}}
	}

	if p.at(token.KwFor) || (p.at(token.KwAsync) && p.lx.Peek().Kind == token.KwFor) {
		comp := p.parseComprehensionTail(ast.CompSet, start, nil, first)
		p.expect(token.RBrace, "'}'")
		comp.Span = start.Cover(p.lastSpan)
		return comp
	}

	elements := []*ast.Expr{first}
	for p.eat(token.Comma) {
		if p.at(token.RBrace) {
			break
		}
		elements = append(elements, p.parseStarOrExpr())
	}
	p.expect(token.RBrace, "'}'")
	return &ast.Expr{Kind: ast.ExprSet, Span: start.Cover(p.lastSpan),
		Data: ast.SequenceData{Elements: elements}}
}

func (p *Parser) parseDictRest() []ast.DictItem {
	var items []ast.DictItem
	for p.eat(token.Comma) {
		if p.at(token.RBrace) {
			break
		}
		if p.eat(token.StarStar) {
			items = append(items, ast.DictItem{Value: p.parseOr()})
			continue
		}
		key := p.parseExpr()
		if _, ok := p.expect(token.Colon, "':'"); !ok {
			break
		}
		items = append(items, ast.DictItem{Key: key, Value: p.parseExpr()})
	}
	return items
}
