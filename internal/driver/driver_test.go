package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pycheck/internal/diag"
	"pycheck/internal/observ"
	"pycheck/internal/source"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func codesOf(bag *diag.Bag) []uint16 {
	out := make([]uint16, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, uint16(d.Code()))
	}
	return out
}

const leakySource = "state = []\n\ndef touch(x):\n    state.append(x)\n"

func TestCheckReportsLeaks(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.py"), leakySource)
	b := writeFile(t, filepath.Join(dir, "b.py"), "def pure(x):\n    return x + 1\n")

	d := New(source.NewFileSet(), Options{})
	bag, err := d.Check(context.Background(), []string{a, b})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	got := codesOf(bag)
	if len(got) != 1 || got[0] != 3101 {
		t.Fatalf("codes = %v, want [3101]", got)
	}
}

func TestCheckParseError(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, filepath.Join(dir, "broken.py"), "def f(:\n    pass\n")

	d := New(source.NewFileSet(), Options{})
	bag, err := d.Check(context.Background(), []string{p})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !bag.HasErrors() {
		t.Fatal("expected parse diagnostics")
	}
	for _, dg := range bag.Items() {
		if dg.Code() != diag.ParseError && dg.Code() != diag.IndentationError {
			t.Errorf("unexpected code %v", dg.Code())
		}
	}
}

func TestLineDirectiveSuppresses(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, filepath.Join(dir, "mod.py"),
		"state = []\n\ndef touch(x):\n    state.append(x)  # pycheck-ignore[3101]\n\ndef other(x):\n    state.append(x)\n")

	d := New(source.NewFileSet(), Options{})
	bag, err := d.Check(context.Background(), []string{p})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("items = %v, want exactly the unsuppressed leak", items)
	}
	if line := lineOf(t, d.fs, items[0]); line != 7 {
		t.Errorf("surviving diagnostic on line %d, want 7", line)
	}
}

func lineOf(t *testing.T, fs *source.FileSet, d diag.Diagnostic) uint32 {
	t.Helper()
	start, _ := fs.Resolve(d.Primary)
	return start.Line
}

func TestUnsafeFileModeKeepsOnlyFailures(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, filepath.Join(dir, "mod.py"), "# pycheck-unsafe\n"+leakySource)

	d := New(source.NewFileSet(), Options{})
	bag, err := d.Check(context.Background(), []string{p})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if bag.Len() != 0 {
		t.Fatalf("unsafe file still reports %v", bag.Items())
	}
}

func TestUnsafeFileModeKeepsParseErrors(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, filepath.Join(dir, "mod.py"), "# pycheck-unsafe\ndef f(:\n    pass\n")

	d := New(source.NewFileSet(), Options{})
	bag, err := d.Check(context.Background(), []string{p})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !bag.HasErrors() {
		t.Fatal("parse errors must survive unsafe mode")
	}
}

func TestProjectIgnoreCodes(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, filepath.Join(dir, "mod.py"), leakySource)

	d := New(source.NewFileSet(), Options{IgnoreCodes: []diag.Code{diag.WriteToGlobalVariableCode}})
	bag, err := d.Check(context.Background(), []string{p})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if bag.Len() != 0 {
		t.Fatalf("ignored code still reported: %v", bag.Items())
	}
}

func TestMissingFileFailsRun(t *testing.T) {
	d := New(source.NewFileSet(), Options{})
	if _, err := d.Check(context.Background(), []string{"/nonexistent/mod.py"}); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, filepath.Join(dir, "mod.py"), leakySource)
	cacheDir := filepath.Join(dir, ".pycheck-cache")

	first := New(source.NewFileSet(), Options{CacheDir: cacheDir, Jobs: 1})
	bagA, err := first.Check(context.Background(), []string{p})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	events := make(chan Event, 64)
	second := New(source.NewFileSet(), Options{CacheDir: cacheDir, Jobs: 1, Events: events})
	bagB, err := second.Check(context.Background(), []string{p})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	close(events)

	var sawCached bool
	for ev := range events {
		if ev.Status == StatusCached {
			sawCached = true
		}
	}
	if !sawCached {
		t.Error("second run did not hit the cache")
	}

	if bagA.Len() != bagB.Len() {
		t.Fatalf("cached run: %d diagnostics, fresh run: %d", bagB.Len(), bagA.Len())
	}
	for i := range bagA.Items() {
		fresh, cached := bagA.Items()[i], bagB.Items()[i]
		if fresh.Code() != cached.Code() || fresh.Concise() != cached.Concise() ||
			fresh.Primary.Start != cached.Primary.Start || fresh.Primary.End != cached.Primary.End {
			t.Errorf("cached diagnostic %d differs: %v vs %v", i, cached, fresh)
		}
		if fresh.Signature.Definition.String() != cached.Signature.Definition.String() {
			t.Errorf("cached signature %d differs", i)
		}
	}
}

func TestCacheInvalidatedByConfig(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, filepath.Join(dir, "mod.py"), leakySource)
	cacheDir := filepath.Join(dir, ".pycheck-cache")

	first := New(source.NewFileSet(), Options{CacheDir: cacheDir})
	if _, err := first.Check(context.Background(), []string{p}); err != nil {
		t.Fatalf("first run: %v", err)
	}

	second := New(source.NewFileSet(), Options{
		CacheDir:    cacheDir,
		IgnoreCodes: []diag.Code{diag.WriteToGlobalVariableCode},
	})
	bag, err := second.Check(context.Background(), []string{p})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if bag.Len() != 0 {
		t.Fatalf("stale cache entry served under a new config: %v", bag.Items())
	}
}

func TestTimerRecordsPhases(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, filepath.Join(dir, "mod.py"), leakySource)

	timer := observ.NewTimer()
	d := New(source.NewFileSet(), Options{Timer: timer})
	if _, err := d.Check(context.Background(), []string{p}); err != nil {
		t.Fatalf("Check: %v", err)
	}
	report := timer.Report()
	names := make(map[string]bool)
	for _, ph := range report.Phases {
		names[ph.Name] = true
	}
	for _, want := range []string{"load", "analyze", "merge"} {
		if !names[want] {
			t.Errorf("missing phase %q in %v", want, report.Phases)
		}
	}
}

func TestParseCodes(t *testing.T) {
	cases := []struct {
		payload string
		want    []diag.Code
	}{
		{"", nil},
		{"3101", []diag.Code{3101}},
		{"3101, 3105", []diag.Code{3101, 3105}},
		{"3101, nope, 3105", []diag.Code{3101, 3105}},
	}
	for _, tc := range cases {
		got := parseCodes(tc.payload)
		if len(got) != len(tc.want) {
			t.Errorf("parseCodes(%q) = %v, want %v", tc.payload, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("parseCodes(%q)[%d] = %v, want %v", tc.payload, i, got[i], tc.want[i])
			}
		}
	}
}
