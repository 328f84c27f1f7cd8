package lexer

import (
	"strings"

	"pycheck/internal/token"
)

// scanString scans a string literal, including its prefix when the caller
// already consumed an identifier that turned out to be one. Handles single
// and triple quoting and backslash escapes (raw prefixes disable escapes
// only as far as termination is concerned: a trailing backslash still
// cannot escape the closing quote of a raw string, matching CPython).
func (lx *Lexer) scanString(prefix string) token.Token {
	m := lx.cursor.Mark()
	for range prefix {
		lx.cursor.Bump()
	}
	isF := strings.ContainsAny(prefix, "fF")
	raw := strings.ContainsAny(prefix, "rR")

	quote := lx.cursor.Bump()
	triple := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == quote && b1 == quote {
		lx.cursor.Bump()
		lx.cursor.Bump()
		triple = true
	}

	closed := false
scan:
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\' && !raw:
			lx.cursor.Bump()
			lx.cursor.Bump()
		case b == quote:
			if !triple {
				lx.cursor.Bump()
				closed = true
				break scan
			}
			if lx.try3(quote, quote, quote) {
				closed = true
				break scan
			}
			lx.cursor.Bump()
		case b == '\n' && !triple:
			break scan
		default:
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(m)
	if !closed {
		lx.report(ReportSyntax, sp, "unterminated string literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
	}

	kind := token.StringLit
	if isF {
		kind = token.FStringLit
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.textFrom(sp)}
}
