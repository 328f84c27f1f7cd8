package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pycheck/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadManifestWalksUp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pycheck.toml"), `
[project]
name = "demo"
root = "src"

[check]
mode = "strict"
ignore = [3103, 3105]
jobs = 4
`)
	nested := filepath.Join(dir, "src", "pkg")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := LoadManifest(nested)
	if err != nil || !ok {
		t.Fatalf("LoadManifest: ok=%v err=%v", ok, err)
	}
	if m.Config.Project.Name != "demo" {
		t.Errorf("name = %q", m.Config.Project.Name)
	}
	if m.Root != dir {
		t.Errorf("root = %q, want %q", m.Root, dir)
	}
	if got := m.SourceRoot(); got != filepath.Join(dir, "src") {
		t.Errorf("source root = %q", got)
	}
	if m.Mode() != diag.ModeStrict {
		t.Errorf("mode = %v", m.Mode())
	}
	codes := m.IgnoredCodes()
	if len(codes) != 2 || codes[0] != diag.WriteToLocalVariableCode || codes[1] != diag.ReturnOfGlobalVariableCode {
		t.Errorf("ignored codes = %v", codes)
	}
	if m.Config.Check.Jobs != 4 {
		t.Errorf("jobs = %d", m.Config.Check.Jobs)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	_, ok, err := LoadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if ok {
		t.Fatal("found a manifest in an empty tree")
	}
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"no_project": "[check]\nmode = \"strict\"\n",
		"no_name":    "[project]\nroot = \"src\"\n",
		"bad_mode":   "[project]\nname = \"x\"\n[check]\nmode = \"pedantic\"\n",
		"neg_jobs":   "[project]\nname = \"x\"\n[check]\njobs = -1\n",
	}
	for name, content := range cases {
		path := filepath.Join(dir, name+".toml")
		writeFile(t, path, content)
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestParseMode(t *testing.T) {
	for s, want := range map[string]diag.Mode{
		"":        diag.ModeDefault,
		"default": diag.ModeDefault,
		"strict":  diag.ModeStrict,
		"unsafe":  diag.ModeUnsafe,
	} {
		got, err := ParseMode(s)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseMode("loose"); err == nil {
		t.Error("ParseMode accepted an unknown mode")
	}
}

func TestDiscoverFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.py"), "x = 1\n")
	writeFile(t, filepath.Join(dir, "pkg", "b.py"), "y = 2\n")
	writeFile(t, filepath.Join(dir, "pkg", "b.pyi"), "y: int\n")
	writeFile(t, filepath.Join(dir, "__pycache__", "a.cpython-312.py"), "")
	writeFile(t, filepath.Join(dir, ".venv", "lib", "c.py"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not python")
	writeFile(t, filepath.Join(dir, "gen", "out.py"), "z = 3\n")

	files, err := DiscoverFiles(dir, []string{"gen/*"})
	if err != nil {
		t.Fatalf("DiscoverFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.py"),
		filepath.Join(dir, "pkg", "b.pyi"),
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Fatalf("discovered files mismatch (-want +got):\n%s", diff)
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	a := HashContent([]byte("a"))
	b := HashContent([]byte("b"))
	c := HashContent([]byte("content"))
	if Combine(c, a, b) == Combine(c, b, a) {
		t.Error("Combine ignores part order")
	}
	if Combine(c) == c {
		t.Error("Combine of a bare digest should rehash")
	}
	if len(a.Hex()) != 64 {
		t.Errorf("hex digest length = %d", len(a.Hex()))
	}
}
