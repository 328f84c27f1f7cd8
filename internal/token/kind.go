package token

import "strconv"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline marks the end of a logical line.
	Newline
	// Indent opens an indented block.
	Indent
	// Dedent closes an indented block.
	Dedent

	// Ident represents an identifier token.
	Ident

	// KwDef represents the 'def' keyword.
	KwDef // def
	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElif represents the 'elif' keyword.
	KwElif // elif
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwNot represents the 'not' keyword.
	KwNot // not
	// KwAnd represents the 'and' keyword.
	KwAnd // and
	// KwOr represents the 'or' keyword.
	KwOr // or
	// KwIs represents the 'is' keyword.
	KwIs // is
	// KwDel represents the 'del' keyword.
	KwDel // del
	// KwPass represents the 'pass' keyword.
	KwPass // pass
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwFrom represents the 'from' keyword.
	KwFrom // from
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwGlobal represents the 'global' keyword.
	KwGlobal // global
	// KwNonlocal represents the 'nonlocal' keyword.
	KwNonlocal // nonlocal
	// KwAssert represents the 'assert' keyword.
	KwAssert // assert
	// KwRaise represents the 'raise' keyword.
	KwRaise // raise
	// KwTry represents the 'try' keyword.
	KwTry // try
	// KwExcept represents the 'except' keyword.
	KwExcept // except
	// KwFinally represents the 'finally' keyword.
	KwFinally // finally
	// KwWith represents the 'with' keyword.
	KwWith // with
	// KwLambda represents the 'lambda' keyword.
	KwLambda // lambda
	// KwYield represents the 'yield' keyword.
	KwYield // yield
	// KwAwait represents the 'await' keyword.
	KwAwait // await
	// KwAsync represents the 'async' keyword.
	KwAsync // async
	// KwMatch represents the soft 'match' keyword.
	KwMatch // match
	// KwCase represents the soft 'case' keyword.
	KwCase // case

	// NoneLit represents the 'None' literal.
	NoneLit // None
	// TrueLit represents the 'True' literal.
	TrueLit // True
	// FalseLit represents the 'False' literal.
	FalseLit // False
	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// StringLit represents a string literal.
	StringLit
	// FStringLit represents a formatted string literal.
	FStringLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// StarStar represents the double star operator token.
	StarStar // **
	// Slash represents the slash operator token.
	Slash // /
	// SlashSlash represents the floor division operator token.
	SlashSlash // //
	// Percent represents the percent operator token.
	Percent // %
	// At represents the at operator token (decorators and matmul).
	At // @
	// Amp represents the amp operator token.
	Amp // &
	// Pipe represents the pipe operator token.
	Pipe // |
	// Caret represents the caret operator token.
	Caret // ^
	// Tilde represents the tilde operator token.
	Tilde // ~
	// Shl represents the left shift operator token.
	Shl // <<
	// Shr represents the right shift operator token.
	Shr // >>
	// Lt represents the lt operator token.
	Lt // <
	// LtEq represents the lt eq operator token.
	LtEq // <=
	// Gt represents the gt operator token.
	Gt // >
	// GtEq represents the gt eq operator token.
	GtEq // >=
	// EqEq represents the eq eq operator token.
	EqEq // ==
	// BangEq represents the not equal operator token.
	BangEq // !=
	// Assign represents the assign operator token.
	Assign // =
	// PlusAssign represents the plus assign operator token.
	PlusAssign // +=
	// MinusAssign represents the minus assign operator token.
	MinusAssign // -=
	// StarAssign represents the star assign operator token.
	StarAssign // *=
	// StarStarAssign represents the double star assign operator token.
	StarStarAssign // **=
	// SlashAssign represents the slash assign operator token.
	SlashAssign // /=
	// SlashSlashAssign represents the floor division assign operator token.
	SlashSlashAssign // //=
	// PercentAssign represents the percent assign operator token.
	PercentAssign // %=
	// AmpAssign represents the amp assign operator token.
	AmpAssign // &=
	// PipeAssign represents the pipe assign operator token.
	PipeAssign // |=
	// CaretAssign represents the caret assign operator token.
	CaretAssign // ^=
	// ShlAssign represents the left shift assign operator token.
	ShlAssign // <<=
	// ShrAssign represents the right shift assign operator token.
	ShrAssign // >>=
	// AtAssign represents the matmul assign operator token.
	AtAssign // @=
	// Walrus represents the assignment expression operator token.
	Walrus // :=
	// Arrow represents the return annotation operator token.
	Arrow // ->
	// Colon represents the colon operator token.
	Colon // :
	// Semicolon represents the semicolon operator token.
	Semicolon // ;
	// Comma represents the comma operator token.
	Comma // ,
	// Dot represents the dot operator token.
	Dot // .
	// Ellipsis represents the '...' literal token.
	Ellipsis // ...
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }

	kindCount
)

var kindNames = [...]string{
	Invalid:          "Invalid",
	EOF:              "EOF",
	Newline:          "Newline",
	Indent:           "Indent",
	Dedent:           "Dedent",
	Ident:            "Ident",
	KwDef:            "def",
	KwClass:          "class",
	KwReturn:         "return",
	KwIf:             "if",
	KwElif:           "elif",
	KwElse:           "else",
	KwWhile:          "while",
	KwFor:            "for",
	KwIn:             "in",
	KwNot:            "not",
	KwAnd:            "and",
	KwOr:             "or",
	KwIs:             "is",
	KwDel:            "del",
	KwPass:           "pass",
	KwBreak:          "break",
	KwContinue:       "continue",
	KwImport:         "import",
	KwFrom:           "from",
	KwAs:             "as",
	KwGlobal:         "global",
	KwNonlocal:       "nonlocal",
	KwAssert:         "assert",
	KwRaise:          "raise",
	KwTry:            "try",
	KwExcept:         "except",
	KwFinally:        "finally",
	KwWith:           "with",
	KwLambda:         "lambda",
	KwYield:          "yield",
	KwAwait:          "await",
	KwAsync:          "async",
	KwMatch:          "match",
	KwCase:           "case",
	NoneLit:          "None",
	TrueLit:          "True",
	FalseLit:         "False",
	IntLit:           "IntLit",
	FloatLit:         "FloatLit",
	StringLit:        "StringLit",
	FStringLit:       "FStringLit",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	StarStar:         "**",
	Slash:            "/",
	SlashSlash:       "//",
	Percent:          "%",
	At:               "@",
	Amp:              "&",
	Pipe:             "|",
	Caret:            "^",
	Tilde:            "~",
	Shl:              "<<",
	Shr:              ">>",
	Lt:               "<",
	LtEq:             "<=",
	Gt:               ">",
	GtEq:             ">=",
	EqEq:             "==",
	BangEq:           "!=",
	Assign:           "=",
	PlusAssign:       "+=",
	MinusAssign:      "-=",
	StarAssign:       "*=",
	StarStarAssign:   "**=",
	SlashAssign:      "/=",
	SlashSlashAssign: "//=",
	PercentAssign:    "%=",
	AmpAssign:        "&=",
	PipeAssign:       "|=",
	CaretAssign:      "^=",
	ShlAssign:        "<<=",
	ShrAssign:        ">>=",
	AtAssign:         "@=",
	Walrus:           ":=",
	Arrow:            "->",
	Colon:            ":",
	Semicolon:        ";",
	Comma:            ",",
	Dot:              ".",
	Ellipsis:         "...",
	LParen:           "(",
	RParen:           ")",
	LBracket:         "[",
	RBracket:         "]",
	LBrace:           "{",
	RBrace:           "}",
}

func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}
