package version

import (
	"strings"
	"testing"
)

func TestVersionDefault(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestPlainStripsEscapes(t *testing.T) {
	plain := Plain()
	if strings.Contains(plain, "\x1b") {
		t.Errorf("Plain() still contains escapes: %q", plain)
	}
	if !strings.Contains(plain, "0.1.0-dev") {
		t.Errorf("Plain() = %q, want it to contain 0.1.0-dev", plain)
	}
}

func TestPlainPassthrough(t *testing.T) {
	if got := stripEscapes("1.2.3"); got != "1.2.3" {
		t.Errorf("stripEscapes(plain) = %q", got)
	}
}
