package parser

import (
	"strings"

	"pycheck/internal/ast"
	"pycheck/internal/token"
)

// parseBlock parses the suite after a compound statement header: either an
// indented block or simple statements on the same line.
func (p *Parser) parseBlock() []*ast.Stmt {
	if _, ok := p.expect(token.Colon, "':'"); !ok {
		p.resyncLine()
		return nil
	}

	var body []*ast.Stmt
	if p.eat(token.Newline) {
		if _, ok := p.expect(token.Indent, "an indented block"); !ok {
			return body
		}
		for !p.at(token.Dedent) && !p.at(token.EOF) {
			if p.eat(token.Newline) {
				continue
			}
			p.parseStatement(&body)
		}
		p.eat(token.Dedent)
		return body
	}

	// inline suite: stmt (';' stmt)* Newline
	for {
		if s := p.parseSimpleStatement(); s != nil {
			body = append(body, s)
		}
		if p.eat(token.Semicolon) {
			if p.at(token.Newline) || p.at(token.EOF) {
				break
			}
			continue
		}
		break
	}
	if !p.eat(token.Newline) && !p.at(token.EOF) {
		p.errHere("expected end of statement")
		p.resyncLine()
	}
	return body
}

func (p *Parser) parseIf() *ast.Stmt {
	start := p.tok.Span
	p.advance() // if / elif
	cond := p.parseNamedExpr()
	body := p.parseBlock()

	var orElse []*ast.Stmt
	switch p.tok.Kind {
	case token.KwElif:
		orElse = []*ast.Stmt{p.parseIf()}
	case token.KwElse:
		p.advance()
		orElse = p.parseBlock()
	}
	return &ast.Stmt{Kind: ast.StmtIf, Span: start.Cover(p.lastSpan),
		Data: ast.IfData{Cond: cond, Body: body, OrElse: orElse}}
}

func (p *Parser) parseWhile() *ast.Stmt {
	start := p.tok.Span
	p.advance()
	cond := p.parseNamedExpr()
	body := p.parseBlock()
	var orElse []*ast.Stmt
	if p.eat(token.KwElse) {
		orElse = p.parseBlock()
	}
	return &ast.Stmt{Kind: ast.StmtWhile, Span: start.Cover(p.lastSpan),
		Data: ast.WhileData{Cond: cond, Body: body, OrElse: orElse}}
}

func (p *Parser) parseFor(isAsync bool) *ast.Stmt {
	start := p.tok.Span
	p.advance()
	target := p.parseTargetList()
	if _, ok := p.expect(token.KwIn, "'in'"); !ok {
		p.resyncLine()
		return &ast.Stmt{Kind: ast.StmtPass, Span: start, Data: ast.MarkerData{}}
	}
	iter := p.parseTestList()
	body := p.parseBlock()
	var orElse []*ast.Stmt
	if p.eat(token.KwElse) {
		orElse = p.parseBlock()
	}
	return &ast.Stmt{Kind: ast.StmtFor, Span: start.Cover(p.lastSpan),
		Data: ast.ForData{Target: target, Iter: iter, Body: body, OrElse: orElse, IsAsync: isAsync}}
}

func (p *Parser) parseWith(isAsync bool) *ast.Stmt {
	start := p.tok.Span
	p.advance()
	var items []ast.WithItem
	for {
		ctx := p.parseExpr()
		var target *ast.Expr
		if p.eat(token.KwAs) {
			target = p.parsePostfixTarget()
		}
		items = append(items, ast.WithItem{Context: ctx, Target: target})
		if !p.eat(token.Comma) {
			break
		}
	}
	body := p.parseBlock()
	return &ast.Stmt{Kind: ast.StmtWith, Span: start.Cover(p.lastSpan),
		Data: ast.WithData{Items: items, Body: body, IsAsync: isAsync}}
}

func (p *Parser) parseTry() *ast.Stmt {
	start := p.tok.Span
	p.advance()
	body := p.parseBlock()

	var handlers []ast.ExceptHandler
	for p.at(token.KwExcept) {
		hstart := p.tok.Span
		p.advance()
		p.eat(token.Star) // except* groups analyzed like plain except
		var typ *ast.Expr
		name := ""
		if !p.at(token.Colon) {
			typ = p.parseExpr()
			if p.eat(token.KwAs) {
				if tok, ok := p.expect(token.Ident, "name"); ok {
					name = tok.Text
				}
			}
		}
		hbody := p.parseBlock()
		handlers = append(handlers, ast.ExceptHandler{
			Type: typ, Name: name, Body: hbody, Span: hstart.Cover(p.lastSpan),
		})
	}

	var orElse, finally []*ast.Stmt
	if p.eat(token.KwElse) {
		orElse = p.parseBlock()
	}
	if p.eat(token.KwFinally) {
		finally = p.parseBlock()
	}
	if len(handlers) == 0 && finally == nil {
		p.errAt(start, "try statement must have at least one except or finally clause")
	}
	return &ast.Stmt{Kind: ast.StmtTry, Span: start.Cover(p.lastSpan),
		Data: ast.TryData{Body: body, Handlers: handlers, OrElse: orElse, Finally: finally}}
}

func (p *Parser) parseMatch() *ast.Stmt {
	start := p.tok.Span
	p.advance() // 'match' identifier
	subject := p.parseTestList()
	if _, ok := p.expect(token.Colon, "':'"); !ok {
		p.resyncLine()
		return &ast.Stmt{Kind: ast.StmtPass, Span: start, Data: ast.MarkerData{}}
	}
	if !p.eat(token.Newline) {
		p.errHere("match body must be an indented block")
		p.resyncLine()
	}
	if _, ok := p.expect(token.Indent, "an indented block"); !ok {
		return &ast.Stmt{Kind: ast.StmtMatch, Span: start.Cover(p.lastSpan),
			Data: ast.MatchData{Subject: subject}}
	}

	var cases []ast.MatchCase
	for !p.at(token.Dedent) && !p.at(token.EOF) {
		if p.eat(token.Newline) {
			continue
		}
		cstart := p.tok.Span
		if !p.at(token.Ident) || p.tok.Text != "case" {
			p.errHere("expected 'case'")
			p.resyncLine()
			continue
		}
		p.advance()
		pattern := p.parsePattern()
		var guard *ast.Expr
		if p.eat(token.KwIf) {
			guard = p.parseNamedExpr()
		}
		cbody := p.parseBlock()
		cases = append(cases, ast.MatchCase{
			Pattern: pattern, Guard: guard, Body: cbody, Span: cstart.Cover(p.lastSpan),
		})
	}
	p.eat(token.Dedent)
	return &ast.Stmt{Kind: ast.StmtMatch, Span: start.Cover(p.lastSpan),
		Data: ast.MatchData{Subject: subject, Cases: cases}}
}

// parsePattern parses a case pattern. Patterns are kept as ordinary
// expressions; '_' parses as a name and capture semantics are left to the
// analysis, which only descends into case bodies.
func (p *Parser) parsePattern() *ast.Expr {
	return p.parseTestList()
}

func (p *Parser) parseDecorated() *ast.Stmt {
	var decorators []*ast.Expr
	for p.at(token.At) {
		p.advance()
		decorators = append(decorators, p.parseNamedExpr())
		if !p.eat(token.Newline) {
			p.errHere("expected newline after decorator")
			p.resyncLine()
		}
	}
	switch p.tok.Kind {
	case token.KwDef:
		return p.parseFunctionDef(decorators, false)
	case token.KwClass:
		return p.parseClassDef(decorators)
	case token.KwAsync:
		p.advance()
		if p.at(token.KwDef) {
			return p.parseFunctionDef(decorators, true)
		}
		p.errHere("expected 'def' after decorators and 'async'")
	default:
		p.errHere("expected a function or class definition after decorators")
	}
	p.resyncLine()
	return &ast.Stmt{Kind: ast.StmtPass, Span: p.lastSpan, Data: ast.MarkerData{}}
}

func (p *Parser) parseAsync() *ast.Stmt {
	start := p.tok.Span
	p.advance()
	switch p.tok.Kind {
	case token.KwDef:
		return p.parseFunctionDef(nil, true)
	case token.KwFor:
		return p.parseFor(true)
	case token.KwWith:
		return p.parseWith(true)
	default:
		p.errAt(start, "expected 'def', 'for' or 'with' after 'async'")
		p.resyncLine()
		return &ast.Stmt{Kind: ast.StmtPass, Span: start, Data: ast.MarkerData{}}
	}
}

func (p *Parser) parseFunctionDef(decorators []*ast.Expr, isAsync bool) *ast.Stmt {
	start := p.tok.Span
	p.advance() // def
	nameTok, ok := p.expect(token.Ident, "function name")
	if !ok {
		p.resyncLine()
		return &ast.Stmt{Kind: ast.StmtPass, Span: start, Data: ast.MarkerData{}}
	}

	if _, ok := p.expect(token.LParen, "'('"); !ok {
		p.resyncLine()
		return &ast.Stmt{Kind: ast.StmtPass, Span: start, Data: ast.MarkerData{}}
	}
	params := p.parseParams()

	var returns *ast.Expr
	if p.eat(token.Arrow) {
		returns = p.parseExpr()
	}
	body := p.parseBlock()

	return &ast.Stmt{Kind: ast.StmtFunctionDef, Span: start.Cover(p.lastSpan),
		Data: ast.FunctionDefData{
			Name:       nameTok.Text,
			Params:     params,
			Returns:    returns,
			Body:       body,
			Decorators: decorators,
			IsAsync:    isAsync,
		}}
}

// parseParams parses the parameter list up to and including ')'. Bare '*'
// and '/' separators are consumed; *args and **kwargs lose their stars, the
// names alone matter downstream.
func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.eat(token.Star) || p.eat(token.StarStar) || p.eat(token.Slash) {
			if p.at(token.Comma) || p.at(token.RParen) {
				p.eat(token.Comma)
				continue
			}
		}
		pstart := p.tok.Span
		tok, ok := p.expect(token.Ident, "parameter name")
		if !ok {
			p.resyncLine()
			return params
		}
		param := ast.Param{Name: tok.Text, Span: pstart}
		if p.eat(token.Colon) {
			param.Annotation = p.parseExpr()
		}
		if p.eat(token.Assign) {
			param.Default = p.parseExpr()
		}
		param.Span = pstart.Cover(p.lastSpan)
		params = append(params, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, "')'")
	return params
}

func (p *Parser) parseClassDef(decorators []*ast.Expr) *ast.Stmt {
	start := p.tok.Span
	p.advance() // class
	nameTok, ok := p.expect(token.Ident, "class name")
	if !ok {
		p.resyncLine()
		return &ast.Stmt{Kind: ast.StmtPass, Span: start, Data: ast.MarkerData{}}
	}

	var bases []*ast.Expr
	var keywords []ast.Keyword
	if p.eat(token.LParen) {
		for !p.at(token.RParen) && !p.at(token.EOF) {
			if p.at(token.Ident) && p.lx.Peek().Kind == token.Assign {
				kstart := p.tok.Span
				name := p.advance().Text
				p.advance() // =
				value := p.parseExpr()
				keywords = append(keywords, ast.Keyword{Name: name, Value: value, Span: kstart.Cover(p.lastSpan)})
			} else if p.eat(token.StarStar) {
				kstart := p.lastSpan
				value := p.parseExpr()
				keywords = append(keywords, ast.Keyword{Value: value, Span: kstart.Cover(p.lastSpan)})
			} else {
				bases = append(bases, p.parseExpr())
			}
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.RParen, "')'")
	}
	body := p.parseBlock()

	return &ast.Stmt{Kind: ast.StmtClassDef, Span: start.Cover(p.lastSpan),
		Data: ast.ClassDefData{
			Name:       nameTok.Text,
			Bases:      bases,
			Keywords:   keywords,
			Body:       body,
			Decorators: decorators,
		}}
}

func (p *Parser) parseImport() *ast.Stmt {
	start := p.tok.Span
	p.advance() // import
	var aliases []ast.ImportAlias
	for {
		astart := p.tok.Span
		module, ok := p.parseDottedName()
		if !ok {
			p.resyncLine()
			return nil
		}
		alias := ""
		if p.eat(token.KwAs) {
			if tok, ok := p.expect(token.Ident, "name"); ok {
				alias = tok.Text
			}
		}
		aliases = append(aliases, ast.ImportAlias{Module: module, Alias: alias, Span: astart.Cover(p.lastSpan)})
		if !p.eat(token.Comma) {
			break
		}
	}
	return &ast.Stmt{Kind: ast.StmtImport, Span: start.Cover(p.lastSpan), Data: ast.ImportData{Aliases: aliases}}
}

func (p *Parser) parseImportFrom() *ast.Stmt {
	start := p.tok.Span
	p.advance() // from

	var dots strings.Builder
	for {
		if p.eat(token.Dot) {
			dots.WriteByte('.')
			continue
		}
		if p.eat(token.Ellipsis) {
			dots.WriteString("...")
			continue
		}
		break
	}
	module := dots.String()
	if p.at(token.Ident) {
		name, ok := p.parseDottedName()
		if !ok {
			p.resyncLine()
			return nil
		}
		module += name
	}
	if module == "" {
		p.errHere("expected module name")
		p.resyncLine()
		return nil
	}

	if _, ok := p.expect(token.KwImport, "'import'"); !ok {
		p.resyncLine()
		return nil
	}

	var names []ast.ImportAlias
	if p.eat(token.Star) {
		names = append(names, ast.ImportAlias{Module: "*", Span: p.lastSpan})
	} else {
		paren := p.eat(token.LParen)
		for {
			nstart := p.tok.Span
			tok, ok := p.expect(token.Ident, "name")
			if !ok {
				p.resyncLine()
				return nil
			}
			alias := ""
			if p.eat(token.KwAs) {
				if atok, ok := p.expect(token.Ident, "name"); ok {
					alias = atok.Text
				}
			}
			names = append(names, ast.ImportAlias{Module: tok.Text, Alias: alias, Span: nstart.Cover(p.lastSpan)})
			if !p.eat(token.Comma) {
				break
			}
			if paren && p.at(token.RParen) {
				break
			}
		}
		if paren {
			p.expect(token.RParen, "')'")
		}
	}
	return &ast.Stmt{Kind: ast.StmtImportFrom, Span: start.Cover(p.lastSpan),
		Data: ast.ImportFromData{Module: module, Names: names}}
}

func (p *Parser) parseDottedName() (string, bool) {
	tok, ok := p.expect(token.Ident, "module name")
	if !ok {
		return "", false
	}
	name := tok.Text
	for p.eat(token.Dot) {
		part, ok := p.expect(token.Ident, "name after '.'")
		if !ok {
			return name, false
		}
		name += "." + part.Text
	}
	return name, true
}
