package lexer

import (
	"pycheck/internal/source"
)

// Reporter is a thin interface so the lexer does not depend on diag.
// The lexer only calls it; the outer layer turns calls into diagnostics.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

// Report kinds handed to Reporter.
const (
	ReportSyntax = "syntax"
	ReportIndent = "indent"
)

type Options struct {
	Reporter Reporter // may be nil; errors are dropped but lexing continues
	// TabWidth is the column width of a tab when measuring indentation.
	// Zero means 8, matching CPython's tokenizer.
	TabWidth uint32
}

func (lx *Lexer) report(kind string, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, sp, msg)
	}
}
