package token

var keywords = map[string]Kind{
	"def":      KwDef,
	"class":    KwClass,
	"return":   KwReturn,
	"if":       KwIf,
	"elif":     KwElif,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"in":       KwIn,
	"not":      KwNot,
	"and":      KwAnd,
	"or":       KwOr,
	"is":       KwIs,
	"del":      KwDel,
	"pass":     KwPass,
	"break":    KwBreak,
	"continue": KwContinue,
	"import":   KwImport,
	"from":     KwFrom,
	"as":       KwAs,
	"global":   KwGlobal,
	"nonlocal": KwNonlocal,
	"assert":   KwAssert,
	"raise":    KwRaise,
	"try":      KwTry,
	"except":   KwExcept,
	"finally":  KwFinally,
	"with":     KwWith,
	"lambda":   KwLambda,
	"yield":    KwYield,
	"await":    KwAwait,
	"async":    KwAsync,
	"None":     NoneLit,
	"True":     TrueLit,
	"False":    FalseLit,
}

// LookupKeyword returns the keyword kind for an identifier, when it is one.
// Keywords are case sensitive. 'match' and 'case' are soft keywords and stay
// identifiers here; the parser recognizes them by position.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
