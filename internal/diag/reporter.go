package diag

import "pycheck/internal/source"

// Reporter is the minimal contract for phases to hand over diagnostics.
// Implementations: BagReporter (collects into a Bag), NopReporter,
// DedupReporter (suppresses duplicates before forwarding).
type Reporter interface {
	Report(kind Kind, sev Severity, primary source.Span, notes []Note)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, kind Kind, primary source.Span) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, kind, primary),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, kind Kind, primary source.Span) *ReportBuilder {
	return NewReportBuilder(r, SevError, kind, primary)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, kind Kind, primary source.Span) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, kind, primary)
}

// WithNote appends a note to the diagnostic.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Notes = append(b.diag.Notes, Note{Span: sp, Msg: msg})
	return b
}

// WithSignature records the enclosing definition.
func (b *ReportBuilder) WithSignature(sig Signature) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Signature = sig
	return b
}

// Emit sends the diagnostic to the underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag.Kind, b.diag.Severity, b.diag.Primary, b.diag.Notes)
	}
	b.emitted = true
}

// Diagnostic returns the accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(kind Kind, sev Severity, primary source.Span, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev,
		Kind:     kind,
		Primary:  primary,
		Notes:    notes,
	})
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Kind, Severity, source.Span, []Note) {}
