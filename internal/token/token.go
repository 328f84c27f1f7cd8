package token

import (
	"pycheck/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, string or
// singleton literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NoneLit, TrueLit, FalseLit, IntLit, FloatLit, StringLit, FStringLit, Ellipsis:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwDef && t.Kind <= KwCase
}

// IsAugAssign reports whether the token is an augmented assignment operator.
func (t Token) IsAugAssign() bool {
	switch t.Kind {
	case PlusAssign, MinusAssign, StarAssign, StarStarAssign, SlashAssign,
		SlashSlashAssign, PercentAssign, AmpAssign, PipeAssign, CaretAssign,
		ShlAssign, ShrAssign, AtAssign:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// EndsLogicalLine reports whether the token terminates a statement.
func (t Token) EndsLogicalLine() bool {
	return t.Kind == Newline || t.Kind == Semicolon || t.Kind == EOF
}
