package diag

import (
	"pycheck/internal/ast"
	"pycheck/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Signature identifies the definition a diagnostic was produced in.
type Signature struct {
	Definition ast.Reference
	Method     bool
}

type Diagnostic struct {
	Severity  Severity
	Kind      Kind
	Primary   source.Span
	Signature Signature
	Notes     []Note
}

// Code returns the numeric code of the underlying kind.
func (d Diagnostic) Code() Code {
	if d.Kind == nil {
		return UnknownCode
	}
	return d.Kind.Code()
}

// Description returns the long-form message of the underlying kind.
func (d Diagnostic) Description() string {
	if d.Kind == nil {
		return ""
	}
	return d.Kind.Description()
}

// Concise returns the short message of the underlying kind.
func (d Diagnostic) Concise() string {
	if d.Kind == nil {
		return ""
	}
	return d.Kind.Concise()
}

// DefaultSeverity picks the severity a kind carries unless a caller
// overrides it.
func DefaultSeverity(k Kind) Severity {
	switch k.(type) {
	case RedundantCast:
		return SevWarning
	default:
		return SevError
	}
}
