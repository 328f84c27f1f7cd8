package diag

import (
	"slices"

	"pycheck/internal/source"
)

// Mode controls which diagnostics of a file survive suppression.
type Mode uint8

const (
	// ModeDefault hides strict-only diagnostics.
	ModeDefault Mode = iota
	// ModeStrict surfaces everything, including strict-only diagnostics.
	ModeStrict
	// ModeUnsafe hides everything except diagnostics that are always
	// reported (parse and analysis failures).
	ModeUnsafe
)

func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeUnsafe:
		return "unsafe"
	default:
		return "default"
	}
}

// IgnoreSet collects the suppressions in effect for one file: project-wide
// ignored codes, per-line ignore comments, and a mode override from a file
// header comment.
type IgnoreSet struct {
	codes    map[Code]struct{}
	lines    map[uint32][]Code
	fileMode *Mode
}

func NewIgnoreSet() *IgnoreSet {
	return &IgnoreSet{
		codes: make(map[Code]struct{}),
		lines: make(map[uint32][]Code),
	}
}

// IgnoreCode suppresses a code everywhere in the file.
func (s *IgnoreSet) IgnoreCode(c Code) {
	s.codes[c] = struct{}{}
}

// IgnoreLine suppresses codes on one line. An empty code list suppresses
// every code on that line.
func (s *IgnoreSet) IgnoreLine(line uint32, codes ...Code) {
	s.lines[line] = append(s.lines[line], codes...)
	if len(codes) == 0 {
		s.lines[line] = []Code{}
	}
}

// SetFileMode records a mode override from a header comment.
func (s *IgnoreSet) SetFileMode(m Mode) {
	s.fileMode = &m
}

// Mode resolves the effective mode given the project default.
func (s *IgnoreSet) Mode(projectMode Mode) Mode {
	if s != nil && s.fileMode != nil {
		return *s.fileMode
	}
	return projectMode
}

func (s *IgnoreSet) ignoredAt(line uint32, c Code) bool {
	if s == nil {
		return false
	}
	if _, ok := s.codes[c]; ok {
		return true
	}
	codes, ok := s.lines[line]
	if !ok {
		return false
	}
	return len(codes) == 0 || slices.Contains(codes, c)
}

// Suppressed reports whether a diagnostic should be hidden given the
// effective mode and the file's ignores. Always-reported codes survive
// every mode and every ignore. Suppression only ever removes diagnostics:
// anything visible under strict mode with ignores is visible under strict
// mode without them.
func Suppressed(d Diagnostic, mode Mode, ignores *IgnoreSet, file *source.File) bool {
	code := d.Code()
	if code.alwaysReported() {
		return false
	}
	switch mode {
	case ModeUnsafe:
		return true
	case ModeDefault:
		if code.strictOnly() {
			return true
		}
	}
	if ignores == nil || file == nil {
		return false
	}
	line := file.Resolve(d.Primary.Start).Line
	return ignores.ignoredAt(line, code)
}
