// Package token defines lexical token kinds and trivia for the Python
// frontend.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Indentation is tokenized: the lexer emits Newline, Indent and Dedent
//     tokens so the parser never counts spaces.
//   - Comments are leading Trivia and never appear in the main token stream.
//     Checker control comments (# pycheck-...) are TriviaDirective.
//   - Built-in names (int, str, list, print, ...) are identifiers. They are
//     recognized by the resolver, not the lexer.
package token
