package lexer

import (
	"strings"

	"pycheck/internal/token"
)

// collectLeadingTrivia consumes whitespace, comments, explicit line joins
// and, inside brackets, physical newlines. It stops at the first byte that
// starts a significant token.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			lx.takeTrivia(token.TriviaSpace, func() {
				for !lx.cursor.EOF() {
					b := lx.cursor.Peek()
					if b != ' ' && b != '\t' && b != '\r' {
						return
					}
					lx.cursor.Bump()
				}
			})
		case ch == '#':
			lx.scanComment()
		case ch == '\\':
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '\\' && b1 == '\n' {
				lx.takeTrivia(token.TriviaLineJoin, func() {
					lx.cursor.Bump()
					lx.cursor.Bump()
				})
				continue
			}
			return
		case ch == '\n' && lx.parens > 0:
			lx.takeTrivia(token.TriviaNewline, func() { lx.cursor.Bump() })
		default:
			return
		}
	}
}

const directivePrefix = "pycheck-"

// scanComment consumes "#..." to end of line. Checker control comments are
// recorded as directives.
func (lx *Lexer) scanComment() {
	m := lx.cursor.Mark()
	lx.skipToLineEnd()
	sp := lx.cursor.SpanFrom(m)
	text := string(lx.file.Content[sp.Start:sp.End])

	tr := token.Trivia{Kind: token.TriviaComment, Span: sp, Text: text}
	if d, ok := parseDirective(text); ok {
		tr.Kind = token.TriviaDirective
		tr.Directive = &d
		lx.directives = append(lx.directives, tr)
	}
	lx.hold = append(lx.hold, tr)
}

// parseDirective recognizes "# pycheck-<name>" and
// "# pycheck-<name>[payload]" comments.
func parseDirective(comment string) (token.Directive, bool) {
	body := strings.TrimSpace(strings.TrimPrefix(comment, "#"))
	if !strings.HasPrefix(body, directivePrefix) {
		return token.Directive{}, false
	}
	body = body[len(directivePrefix):]

	name := body
	payload := ""
	if i := strings.IndexByte(body, '['); i >= 0 {
		j := strings.IndexByte(body[i:], ']')
		if j < 0 {
			return token.Directive{}, false
		}
		name = body[:i]
		payload = body[i+1 : i+j]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return token.Directive{}, false
	}
	return token.Directive{Name: name, Payload: strings.TrimSpace(payload)}, true
}
