package driver

import (
	"strconv"
	"strings"

	"pycheck/internal/diag"
	"pycheck/internal/source"
	"pycheck/internal/token"
)

// buildIgnoreSet folds project-wide ignored codes and the file's checker
// control comments into one suppression set. Recognized directives:
//
//	# pycheck-strict            switch the file to strict mode
//	# pycheck-unsafe            switch the file to unsafe mode
//	# pycheck-ignore            suppress every code on this line
//	# pycheck-ignore[3101]      suppress the listed codes on this line
func buildIgnoreSet(directives []token.Trivia, projectCodes []diag.Code, f *source.File) *diag.IgnoreSet {
	s := diag.NewIgnoreSet()
	for _, c := range projectCodes {
		s.IgnoreCode(c)
	}
	for _, tr := range directives {
		if tr.Directive == nil {
			continue
		}
		switch tr.Directive.Name {
		case "strict":
			s.SetFileMode(diag.ModeStrict)
		case "unsafe":
			s.SetFileMode(diag.ModeUnsafe)
		case "ignore":
			line := f.Resolve(tr.Span.Start).Line
			s.IgnoreLine(line, parseCodes(tr.Directive.Payload)...)
		}
	}
	return s
}

// parseCodes reads a comma-separated payload like "3101, 3105". Entries
// that are not numbers are dropped.
func parseCodes(payload string) []diag.Code {
	if strings.TrimSpace(payload) == "" {
		return nil
	}
	var out []diag.Code
	for _, part := range strings.Split(payload, ",") {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 16)
		if err != nil {
			continue
		}
		out = append(out, diag.Code(n))
	}
	return out
}
