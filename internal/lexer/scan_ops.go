package lexer

import (
	"pycheck/internal/token"
)

// scanOperatorOrPunct scans operators and punctuation, longest match first.
// Bracket depth is tracked here so the line machinery knows when newlines
// are implicit joins.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	m := lx.cursor.Mark()
	var kind token.Kind

	switch {
	case lx.try3('*', '*', '='):
		kind = token.StarStarAssign
	case lx.try3('/', '/', '='):
		kind = token.SlashSlashAssign
	case lx.try3('<', '<', '='):
		kind = token.ShlAssign
	case lx.try3('>', '>', '='):
		kind = token.ShrAssign
	case lx.try3('.', '.', '.'):
		kind = token.Ellipsis

	case lx.try2('*', '*'):
		kind = token.StarStar
	case lx.try2('/', '/'):
		kind = token.SlashSlash
	case lx.try2('<', '<'):
		kind = token.Shl
	case lx.try2('>', '>'):
		kind = token.Shr
	case lx.try2('<', '='):
		kind = token.LtEq
	case lx.try2('>', '='):
		kind = token.GtEq
	case lx.try2('=', '='):
		kind = token.EqEq
	case lx.try2('!', '='):
		kind = token.BangEq
	case lx.try2('+', '='):
		kind = token.PlusAssign
	case lx.try2('-', '='):
		kind = token.MinusAssign
	case lx.try2('*', '='):
		kind = token.StarAssign
	case lx.try2('/', '='):
		kind = token.SlashAssign
	case lx.try2('%', '='):
		kind = token.PercentAssign
	case lx.try2('&', '='):
		kind = token.AmpAssign
	case lx.try2('|', '='):
		kind = token.PipeAssign
	case lx.try2('^', '='):
		kind = token.CaretAssign
	case lx.try2('@', '='):
		kind = token.AtAssign
	case lx.try2(':', '='):
		kind = token.Walrus
	case lx.try2('-', '>'):
		kind = token.Arrow

	default:
		switch b := lx.cursor.Bump(); b {
		case '+':
			kind = token.Plus
		case '-':
			kind = token.Minus
		case '*':
			kind = token.Star
		case '/':
			kind = token.Slash
		case '%':
			kind = token.Percent
		case '@':
			kind = token.At
		case '&':
			kind = token.Amp
		case '|':
			kind = token.Pipe
		case '^':
			kind = token.Caret
		case '~':
			kind = token.Tilde
		case '<':
			kind = token.Lt
		case '>':
			kind = token.Gt
		case '=':
			kind = token.Assign
		case ':':
			kind = token.Colon
		case ';':
			kind = token.Semicolon
		case ',':
			kind = token.Comma
		case '.':
			kind = token.Dot
		case '(':
			lx.parens++
			kind = token.LParen
		case ')':
			lx.decParens()
			kind = token.RParen
		case '[':
			lx.parens++
			kind = token.LBracket
		case ']':
			lx.decParens()
			kind = token.RBracket
		case '{':
			lx.parens++
			kind = token.LBrace
		case '}':
			lx.decParens()
			kind = token.RBrace
		default:
			sp := lx.cursor.SpanFrom(m)
			lx.report(ReportSyntax, sp, "unexpected character")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
		}
	}

	sp := lx.cursor.SpanFrom(m)
	return token.Token{Kind: kind, Span: sp, Text: lx.textFrom(sp)}
}

func (lx *Lexer) decParens() {
	if lx.parens > 0 {
		lx.parens--
	}
}
