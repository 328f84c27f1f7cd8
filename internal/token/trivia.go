package token

import "pycheck/internal/source"

// Directive is a parsed checker control comment: "# pycheck-<name>" with an
// optional bracketed payload, e.g. "# pycheck-ignore[3101, 3105]".
type Directive struct {
	Name    string
	Payload string
}

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaComment
	TriviaDirective
	TriviaLineJoin
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaComment:
		return "Comment"
	case TriviaDirective:
		return "Directive"
	case TriviaLineJoin:
		return "LineJoin"
	default:
		return "TriviaKind(?)"
	}
}

type Trivia struct {
	Kind      TriviaKind
	Span      source.Span
	Text      string
	Directive *Directive // only when Kind == TriviaDirective
}
