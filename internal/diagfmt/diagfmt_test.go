package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"pycheck/internal/ast"
	"pycheck/internal/diag"
	"pycheck/internal/pytype"
	"pycheck/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("mod.py", []byte("def f():\n    state = 1\n"))
	span := source.Span{File: id, Start: 13, End: 18}

	bag := diag.NewBag(100)
	d := diag.NewError(diag.LeakToGlobal{Detail: diag.WriteToGlobalVariable{
		Target: ast.ParseReference("mod.state"),
		Type:   pytype.DictOf(),
	}}, span).WithSignature(diag.Signature{Definition: ast.ParseReference("mod.f")})
	bag.Add(d.WithNote(span, "declared global here"))
	return bag, fs
}

func TestPrettyPlain(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	out := buf.String()

	for _, want := range []string{
		"mod.py:2:5",
		"error",
		"PCK3101",
		"mod.state",
		"(in mod.f)",
		"state = 1",
		"^~~~",
		"note:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("plain output contains ANSI escapes:\n%s", out)
	}
}

func TestPrettyUnderlineWidth(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	lines := strings.Split(buf.String(), "\n")
	var marks string
	for _, l := range lines {
		if strings.Contains(l, "^") {
			marks = strings.TrimLeft(l, " ")
			break
		}
	}
	// span covers the five bytes of "state"
	if marks != "^~~~~" {
		t.Fatalf("underline = %q, want ^~~~~", marks)
	}
}

func TestJSONRendering(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out Output
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Path != "mod.py" || d.Line != 2 || d.Col != 5 {
		t.Errorf("location = %s:%d:%d", d.Path, d.Line, d.Col)
	}
	if d.Code != 3101 || d.Name != "PCK3101" || d.Severity != "error" {
		t.Errorf("identity = %d %s %s", d.Code, d.Name, d.Severity)
	}
}

func TestJSONTruncation(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("mod.py", []byte("x\ny\nz\n"))
	bag := diag.NewBag(100)
	for i := uint32(0); i < 3; i++ {
		bag.Add(diag.NewError(diag.AnalysisFailure{Message: "boom"},
			source.Span{File: id, Start: 2 * i, End: 2*i + 1}))
	}
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 2}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out Output
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 3 || len(out.Diagnostics) != 2 || !out.Truncated {
		t.Fatalf("count=%d listed=%d truncated=%v", out.Count, len(out.Diagnostics), out.Truncated)
	}
}

func TestSarifRendering(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "pycheck", ToolVersion: "0.1.0", InvocationArgs: []string{"pycheck", "check", "."}}
	if err := Sarif(&buf, bag, fs, meta); err != nil {
		t.Fatalf("Sarif: %v", err)
	}
	var log map[string]any
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if log["version"] != "2.1.0" {
		t.Errorf("version = %v", log["version"])
	}
	out := buf.String()
	for _, want := range []string{`"ruleId": "PCK3101"`, `"level": "error"`, `"startLine": 2`, `"pycheck check ."`} {
		if !strings.Contains(out, want) {
			t.Errorf("sarif output missing %q", want)
		}
	}
}

func TestShortRendering(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	Short(&buf, bag, fs, false)
	out := buf.String()
	if !strings.Contains(out, "error PCK3101 mod.py:2:5") {
		t.Errorf("short output = %q", out)
	}
}
