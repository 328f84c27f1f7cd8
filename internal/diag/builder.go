package diag

import "pycheck/internal/source"

func New(sev Severity, kind Kind, primary source.Span) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Kind:     kind,
		Primary:  primary,
		Notes:    nil,
	}
}

// NewError builds a diagnostic at the kind's default severity.
func NewError(kind Kind, primary source.Span) Diagnostic {
	return New(DefaultSeverity(kind), kind, primary)
}

func (d Diagnostic) WithSignature(sig Signature) Diagnostic {
	d.Signature = sig
	return d
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
