package lexer

import (
	"pycheck/internal/diag"
	"pycheck/internal/source"
)

// DiagReporter adapts a diag.Reporter to the lexer's thin Reporter.
type DiagReporter struct {
	R diag.Reporter
}

func (a DiagReporter) Report(kind string, span source.Span, msg string) {
	if a.R == nil {
		return
	}
	switch kind {
	case ReportIndent:
		a.R.Report(diag.InconsistentIndentation{Message: msg}, diag.SevError, span, nil)
	default:
		a.R.Report(diag.ParseFailure{Message: msg}, diag.SevError, span, nil)
	}
}
