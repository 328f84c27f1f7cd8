package lexer

import (
	"pycheck/internal/source"
	"pycheck/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	queue []token.Token  // tokens produced ahead of consumption (indents, dedents)
	hold  []token.Trivia // accumulated leading trivia

	indents     []uint32
	parens      int
	atLineStart bool
	finished    bool
	sawToken    bool // a significant token was produced on the current line

	directives []token.Trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		indents:     []uint32{0},
		atLineStart: true,
	}
}

// Next returns the next significant token with its Leading trivia attached.
// Logical line structure is part of the stream: Newline closes a line,
// Indent and Dedent open and close blocks. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	for {
		if len(lx.queue) > 0 {
			tok := lx.queue[0]
			lx.queue = lx.queue[1:]
			if len(lx.hold) > 0 && tok.Kind != token.EOF {
				tok.Leading = lx.hold
				lx.hold = nil
			}
			return tok
		}

		if lx.finished {
			return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
		}

		if lx.atLineStart && lx.parens == 0 {
			lx.scanLineStart()
			continue
		}

		lx.collectLeadingTrivia()

		if lx.cursor.EOF() {
			lx.finish()
			continue
		}

		ch := lx.cursor.Peek()

		if ch == '\n' && lx.parens == 0 {
			m := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.atLineStart = true
			lx.sawToken = false
			tok := token.Token{Kind: token.Newline, Span: lx.cursor.SpanFrom(m), Text: "\n"}
			tok.Leading = lx.hold
			lx.hold = nil
			return tok
		}

		var tok token.Token
		switch {
		case isIdentStartByte(ch) || ch >= utf8RuneSelf:
			tok = lx.scanIdentOrKeyword()
		case isDec(ch):
			tok = lx.scanNumber()
		case ch == '.' && lx.isNumberAfterDot():
			tok = lx.scanNumber()
		case ch == '"' || ch == '\'':
			tok = lx.scanString("")
		default:
			tok = lx.scanOperatorOrPunct()
		}

		tok.Leading = lx.hold
		lx.hold = nil
		lx.sawToken = true
		return tok
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.queue = append([]token.Token{t}, lx.queue...)
	return t
}

// Directives returns every checker control comment seen so far, in source
// order. Complete only once EOF has been returned.
func (lx *Lexer) Directives() []token.Trivia {
	return lx.directives
}

// scanLineStart measures indentation at the start of a logical line and
// enqueues Indent/Dedent tokens. Blank and comment-only lines produce no
// tokens.
func (lx *Lexer) scanLineStart() {
	for {
		m := lx.cursor.Mark()
		width := lx.measureIndent()

		if lx.cursor.EOF() {
			lx.finish()
			return
		}

		ch := lx.cursor.Peek()
		if ch == '\n' {
			// blank line
			lx.cursor.Reset(m)
			lx.takeTrivia(token.TriviaNewline, func() { lx.skipToLineEnd(); lx.cursor.Eat('\n') })
			continue
		}
		if ch == '#' {
			// comment-only line
			lx.cursor.Reset(m)
			lx.skipIndentBytes()
			lx.scanComment()
			lx.cursor.Eat('\n')
			continue
		}

		top := lx.indents[len(lx.indents)-1]
		switch {
		case width > top:
			lx.indents = append(lx.indents, width)
			lx.queue = append(lx.queue, token.Token{Kind: token.Indent, Span: lx.cursor.SpanFrom(m)})
		case width < top:
			for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > width {
				lx.indents = lx.indents[:len(lx.indents)-1]
				lx.queue = append(lx.queue, token.Token{Kind: token.Dedent, Span: lx.cursor.SpanFrom(m)})
			}
			if lx.indents[len(lx.indents)-1] != width {
				lx.report(ReportIndent, lx.cursor.SpanFrom(m), "unindent does not match any outer indentation level")
				lx.indents[len(lx.indents)-1] = width
			}
		}
		lx.atLineStart = false
		return
	}
}

// measureIndent consumes leading spaces and tabs, returning the column
// width. Tabs advance to the next multiple of TabWidth.
func (lx *Lexer) measureIndent() uint32 {
	tab := lx.opts.TabWidth
	if tab == 0 {
		tab = 8
	}
	var width uint32
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ':
			width++
		case '\t':
			width = (width/tab + 1) * tab
		default:
			return width
		}
		lx.cursor.Bump()
	}
	return width
}

func (lx *Lexer) skipIndentBytes() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b != ' ' && b != '\t' {
			return
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) skipToLineEnd() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) takeTrivia(kind token.TriviaKind, consume func()) {
	m := lx.cursor.Mark()
	consume()
	sp := lx.cursor.SpanFrom(m)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

// finish closes the token stream: a trailing Newline when the last line had
// tokens, a Dedent for every open block, then EOF.
func (lx *Lexer) finish() {
	if lx.finished {
		return
	}
	lx.finished = true
	if lx.sawToken {
		lx.queue = append(lx.queue, token.Token{Kind: token.Newline, Span: lx.emptySpan()})
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.queue = append(lx.queue, token.Token{Kind: token.Dedent, Span: lx.emptySpan()})
	}
	lx.queue = append(lx.queue, token.Token{Kind: token.EOF, Span: lx.emptySpan()})
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
