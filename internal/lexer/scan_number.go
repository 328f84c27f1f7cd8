package lexer

import (
	"pycheck/internal/source"
	"pycheck/internal/token"
)

// scanNumber scans integer and float literals: decimal with underscores,
// 0x/0o/0b radix forms, floats with optional exponent, and imaginary
// literals (lexed as floats).
func (lx *Lexer) scanNumber() token.Token {
	m := lx.cursor.Mark()
	kind := token.IntLit

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X' || b1 == 'o' || b1 == 'O' || b1 == 'b' || b1 == 'B') {
		lx.cursor.Bump()
		base := lx.cursor.Bump()
		valid := isHex
		switch base {
		case 'o', 'O':
			valid = isOct
		case 'b', 'B':
			valid = isBin
		}
		n := 0
		for !lx.cursor.EOF() {
			b := lx.cursor.Peek()
			if b == '_' {
				lx.cursor.Bump()
				continue
			}
			if !valid(b) {
				break
			}
			lx.cursor.Bump()
			n++
		}
		sp := lx.cursor.SpanFrom(m)
		if n == 0 {
			lx.report(ReportSyntax, sp, "invalid numeric literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
		}
		return token.Token{Kind: token.IntLit, Span: sp, Text: lx.textFrom(sp)}
	}

	lx.eatDigits()

	if lx.cursor.Peek() == '.' {
		// a dot starts the fraction only when followed by a digit or when
		// digits precede it ("1." is a float, "1 . x" never reaches here)
		lx.cursor.Bump()
		lx.eatDigits()
		kind = token.FloatLit
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		save := lx.cursor.Mark()
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			lx.eatDigits()
			kind = token.FloatLit
		} else {
			// "1e" alone is the int 1 followed by the ident e
			lx.cursor.Reset(save)
		}
	}

	if b := lx.cursor.Peek(); b == 'j' || b == 'J' {
		lx.cursor.Bump()
		kind = token.FloatLit
	}

	sp := lx.cursor.SpanFrom(m)
	return token.Token{Kind: kind, Span: sp, Text: lx.textFrom(sp)}
}

func (lx *Lexer) eatDigits() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b != '_' && !isDec(b) {
			return
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) textFrom(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
