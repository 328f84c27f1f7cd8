package parser

import (
	"strings"

	"pycheck/internal/ast"
	"pycheck/internal/token"
)

// parseStatement parses one logical line (which may carry several simple
// statements joined by ';') or one compound statement, appending to dst.
func (p *Parser) parseStatement(dst *[]*ast.Stmt) {
	switch p.tok.Kind {
	case token.KwIf:
		*dst = append(*dst, p.parseIf())
		return
	case token.KwWhile:
		*dst = append(*dst, p.parseWhile())
		return
	case token.KwFor:
		*dst = append(*dst, p.parseFor(false))
		return
	case token.KwWith:
		*dst = append(*dst, p.parseWith(false))
		return
	case token.KwTry:
		*dst = append(*dst, p.parseTry())
		return
	case token.KwDef:
		*dst = append(*dst, p.parseFunctionDef(nil, false))
		return
	case token.KwClass:
		*dst = append(*dst, p.parseClassDef(nil))
		return
	case token.At:
		*dst = append(*dst, p.parseDecorated())
		return
	case token.KwAsync:
		*dst = append(*dst, p.parseAsync())
		return
	case token.Ident:
		if p.tok.Text == "match" && p.startsMatchStatement() {
			*dst = append(*dst, p.parseMatch())
			return
		}
	}

	// simple statement line
	for {
		if s := p.parseSimpleStatement(); s != nil {
			*dst = append(*dst, s)
		}
		if p.eat(token.Semicolon) {
			if p.at(token.Newline) || p.at(token.EOF) {
				break
			}
			continue
		}
		break
	}
	if !p.eat(token.Newline) && !p.at(token.EOF) && !p.at(token.Dedent) {
		p.errHere("expected end of statement")
		p.resyncLine()
	}
}

// startsMatchStatement decides whether an identifier 'match' opens a match
// statement. The token after it must be able to start a subject expression;
// tokens that continue an expression ('=', '.', '(', ...) mean 'match' is a
// plain name.
func (p *Parser) startsMatchStatement() bool {
	next := p.lx.Peek()
	switch next.Kind {
	case token.Ident, token.IntLit, token.FloatLit, token.StringLit, token.FStringLit,
		token.NoneLit, token.TrueLit, token.FalseLit, token.KwNot, token.KwLambda,
		token.KwAwait, token.Minus, token.Plus, token.Tilde, token.Star:
		return true
	default:
		return false
	}
}

// parseSimpleStatement parses one statement that fits on a line segment.
func (p *Parser) parseSimpleStatement() *ast.Stmt {
	start := p.tok.Span

	switch p.tok.Kind {
	case token.KwPass:
		p.advance()
		return &ast.Stmt{Kind: ast.StmtPass, Span: start, Data: ast.MarkerData{}}
	case token.KwBreak:
		p.advance()
		return &ast.Stmt{Kind: ast.StmtBreak, Span: start, Data: ast.MarkerData{}}
	case token.KwContinue:
		p.advance()
		return &ast.Stmt{Kind: ast.StmtContinue, Span: start, Data: ast.MarkerData{}}

	case token.KwReturn:
		p.advance()
		var value *ast.Expr
		if !p.atLineEnd() {
			value = p.parseTestList()
		}
		return &ast.Stmt{Kind: ast.StmtReturn, Span: start.Cover(p.lastSpan), Data: ast.ReturnData{Value: value}}

	case token.KwRaise:
		p.advance()
		var exc, from *ast.Expr
		if !p.atLineEnd() {
			exc = p.parseExpr()
			if p.eat(token.KwFrom) {
				from = p.parseExpr()
			}
		}
		return &ast.Stmt{Kind: ast.StmtRaise, Span: start.Cover(p.lastSpan), Data: ast.RaiseData{Exc: exc, From: from}}

	case token.KwAssert:
		p.advance()
		test := p.parseExpr()
		var msg *ast.Expr
		if p.eat(token.Comma) {
			msg = p.parseExpr()
		}
		return &ast.Stmt{Kind: ast.StmtAssert, Span: start.Cover(p.lastSpan),
			Data: ast.AssertData{Test: test, Msg: msg, Origin: ast.OriginAssertion}}

	case token.KwDel:
		p.advance()
		targets := []*ast.Expr{p.parseExpr()}
		for p.eat(token.Comma) {
			if p.atLineEnd() {
				break
			}
			targets = append(targets, p.parseExpr())
		}
		return &ast.Stmt{Kind: ast.StmtDelete, Span: start.Cover(p.lastSpan), Data: ast.DeleteData{Targets: targets}}

	case token.KwGlobal, token.KwNonlocal:
		kind := ast.StmtGlobal
		if p.tok.Kind == token.KwNonlocal {
			kind = ast.StmtNonlocal
		}
		p.advance()
		var names []string
		for {
			tok, ok := p.expect(token.Ident, "name")
			if !ok {
				p.resyncLine()
				return nil
			}
			names = append(names, tok.Text)
			if !p.eat(token.Comma) {
				break
			}
		}
		return &ast.Stmt{Kind: kind, Span: start.Cover(p.lastSpan), Data: ast.NamesData{Names: names}}

	case token.KwImport:
		return p.parseImport()
	case token.KwFrom:
		return p.parseImportFrom()
	}

	return p.parseExprLikeStatement()
}

func (p *Parser) atLineEnd() bool {
	return p.at(token.Newline) || p.at(token.Semicolon) || p.at(token.EOF) || p.at(token.Dedent)
}

// parseExprLikeStatement parses assignments, augmented assignments,
// annotated assignments and bare expression statements.
func (p *Parser) parseExprLikeStatement() *ast.Stmt {
	start := p.tok.Span
	first := p.parseTargetList()
	if first == nil {
		p.resyncLine()
		return nil
	}

	switch {
	case p.at(token.Colon):
		p.advance()
		annotation := p.parseExpr()
		var value *ast.Expr
		if p.eat(token.Assign) {
			value = p.parseTestList()
		}
		return &ast.Stmt{Kind: ast.StmtAssign, Span: start.Cover(p.lastSpan),
			Data: ast.AssignData{Targets: []*ast.Expr{first}, Annotation: annotation, Value: value}}

	case p.at(token.Assign):
		// chained assignment: every list but the last is a target
		targets := []*ast.Expr{first}
		var value *ast.Expr
		for p.eat(token.Assign) {
			e := p.parseTargetList()
			if e == nil {
				p.resyncLine()
				return nil
			}
			if p.at(token.Assign) {
				targets = append(targets, e)
			} else {
				value = e
			}
		}
		return &ast.Stmt{Kind: ast.StmtAssign, Span: start.Cover(p.lastSpan),
			Data: ast.AssignData{Targets: targets, Value: value}}

	case p.tok.IsAugAssign():
		op := strings.TrimSuffix(p.tok.Text, "=")
		p.advance()
		value := p.parseTestList()
		return &ast.Stmt{Kind: ast.StmtAugAssign, Span: start.Cover(p.lastSpan),
			Data: ast.AugAssignData{Target: first, Op: op, Value: value}}

	default:
		return &ast.Stmt{Kind: ast.StmtExpr, Span: start.Cover(p.lastSpan), Data: ast.ExprStmtData{Value: first}}
	}
}
