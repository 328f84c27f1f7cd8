package lexer

import (
	"pycheck/internal/token"
)

// stringPrefixes are identifier-like prefixes that glue onto a following
// quote: r"...", b'...', f"...", rb"..." and case/order variants.
var stringPrefixes = map[string]bool{
	"r": true, "b": true, "f": true, "u": true,
	"rb": true, "br": true, "rf": true, "fr": true,
	"R": true, "B": true, "F": true, "U": true,
	"Rb": true, "rB": true, "RB": true, "bR": true, "Br": true, "BR": true,
	"Rf": true, "rF": true, "RF": true, "fR": true, "Fr": true, "FR": true,
}

// scanIdentOrKeyword scans an identifier, keyword, or prefixed string
// literal.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	m := lx.cursor.Mark()

	r, _ := lx.peekRune()
	if !isIdentStartRune(r) {
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(m)
		lx.report(ReportSyntax, sp, "unexpected character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(m)
	text := string(lx.file.Content[sp.Start:sp.End])

	// A string prefix directly followed by a quote is part of the literal.
	if stringPrefixes[text] && !lx.cursor.EOF() {
		if q := lx.cursor.Peek(); q == '"' || q == '\'' {
			lx.cursor.Reset(m)
			return lx.scanString(text)
		}
	}

	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
