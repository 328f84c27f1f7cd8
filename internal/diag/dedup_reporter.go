package diag

import "pycheck/internal/source"

type dedupKey struct {
	code    Code
	sev     Severity
	file    source.FileID
	start   uint32
	end     uint32
	concise string
}

// DedupReporter wraps another Reporter and suppresses duplicate diagnostics
// with the same code, severity, primary span and concise message.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique diagnostics to the provided reporter.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(kind Kind, sev Severity, primary source.Span, notes []Note) {
	if r == nil {
		return
	}
	key := dedupKey{
		sev:   sev,
		file:  primary.File,
		start: primary.Start,
		end:   primary.End,
	}
	if kind != nil {
		key.code = kind.Code()
		key.concise = kind.Concise()
	}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(kind, sev, primary, notes)
	}
}
