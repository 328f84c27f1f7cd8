package diag

import (
	"strings"
	"testing"

	"pycheck/internal/ast"
	"pycheck/internal/pytype"
	"pycheck/internal/source"
)

func span(f source.FileID, start, end uint32) source.Span {
	return source.Span{File: f, Start: start, End: end}
}

func TestLeakMessages(t *testing.T) {
	cases := []struct {
		kind Kind
		code Code
		want string
	}{
		{
			kind: LeakToGlobal{Detail: WriteToGlobalVariable{
				Target: ast.ParseReference("server.state"),
				Type:   pytype.ListOf(),
				Via:    "append",
			}},
			code: WriteToGlobalVariableCode,
			want: "global `server.state` (of category MutableDataStructure) is mutated via `append`",
		},
		{
			kind: LeakToGlobal{Detail: WriteToLocalVariable{
				Source: ast.ParseReference("cfg.flags"),
				Type:   pytype.DictOf(),
				Target: "local_flags",
			}},
			code: WriteToLocalVariableCode,
			want: "global `cfg.flags` (of category MutableDataStructure) escapes into local `local_flags`",
		},
		{
			kind: LeakToGlobal{Detail: WriteToMethodArgument{
				Source: ast.ParseReference("registry"),
				Type:   pytype.AnyType,
				Callee: "handler.process",
			}},
			code: WriteToMethodArgumentCode,
			want: "global `registry` (of category Unknown) is passed to `handler.process`, which may mutate it",
		},
		{
			kind: LeakToGlobal{Detail: ReturnOfGlobalVariable{
				Source: ast.ParseReference("pool"),
				Type:   pytype.InstanceOf("Pool"),
			}},
			code: ReturnOfGlobalVariableCode,
			want: "global `pool` is returned",
		},
		{
			kind: LeakToGlobal{Detail: WriteToClassAttribute{
				Target:    ast.ParseReference("app.Config"),
				Type:      pytype.ClassOf("Config"),
				Attribute: "debug",
			}},
			code: WriteToClassAttributeCode,
			want: "attribute `debug` of class `app.Config` is mutated",
		},
	}

	for _, tc := range cases {
		if got := tc.kind.Code(); got != tc.code {
			t.Errorf("code: got %d, want %d", got, tc.code)
		}
		if got := tc.kind.Concise(); got != tc.want {
			t.Errorf("concise:\n got %q\nwant %q", got, tc.want)
		}
		if desc := tc.kind.Description(); !strings.Contains(desc, tc.code.ID()[3:]) {
			t.Errorf("description %q does not embed code %d", desc, tc.code)
		}
	}
}

func TestCodeIDs(t *testing.T) {
	if got := WriteToGlobalVariableCode.ID(); got != "PCK3101" {
		t.Fatalf("ID: got %q, want PCK3101", got)
	}
	if got := ParseError.ID(); got != "PCK1001" {
		t.Fatalf("ID: got %q, want PCK1001", got)
	}
}

func TestBagDedupIdempotent(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.AddVirtual("main.py", []byte("x = 1\n"))

	kind := LeakToGlobal{Detail: WriteToGlobalVariable{
		Target: ast.NewReference("x"),
		Type:   pytype.ListOf(),
	}}
	other := UndefinedName{Name: ast.NewReference("y")}

	bag := NewBag(16)
	bag.Add(NewError(kind, span(f, 0, 1)))
	bag.Add(NewError(kind, span(f, 0, 1)))
	bag.Add(NewError(kind, span(f, 4, 5)))
	bag.Add(NewError(other, span(f, 0, 1)))

	bag.Dedup()
	if bag.Len() != 3 {
		t.Fatalf("after dedup: got %d items, want 3", bag.Len())
	}
	first := append([]Diagnostic(nil), bag.Items()...)

	bag.Dedup()
	if bag.Len() != len(first) {
		t.Fatalf("second dedup changed length: %d -> %d", len(first), bag.Len())
	}
	for i, d := range bag.Items() {
		if d.Concise() != first[i].Concise() || d.Primary != first[i].Primary {
			t.Fatalf("second dedup changed item %d", i)
		}
	}
}

func TestBagFilterMonotone(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.AddVirtual("main.py", []byte("x = 1\n"))

	bag := NewBag(8)
	bag.Add(NewError(UndefinedName{Name: ast.NewReference("a")}, span(f, 0, 1)))
	bag.Add(NewError(UndefinedName{Name: ast.NewReference("b")}, span(f, 2, 3)))
	bag.Add(NewError(ParseFailure{Message: "unexpected token"}, span(f, 4, 5)))

	before := bag.Len()
	bag.Filter(func(d Diagnostic) bool { return d.Code() != UndefinedNameCode })
	if bag.Len() >= before {
		t.Fatalf("filter did not shrink bag: %d -> %d", before, bag.Len())
	}
	for _, d := range bag.Items() {
		if d.Code() == UndefinedNameCode {
			t.Fatalf("filtered code survived: %v", d.Code())
		}
	}

	// Filtering again with the same predicate is a no-op.
	after := bag.Len()
	bag.Filter(func(d Diagnostic) bool { return d.Code() != UndefinedNameCode })
	if bag.Len() != after {
		t.Fatalf("repeated filter changed length: %d -> %d", after, bag.Len())
	}
}

func TestJoinWidensMismatchedActuals(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.AddVirtual("main.py", []byte("x = 1\n"))
	sp := span(f, 0, 1)

	a := NewError(IncompatibleVariableType{
		Name:     ast.NewReference("x"),
		Expected: pytype.PrimitiveOf("int"),
		Actual:   pytype.PrimitiveOf("str"),
	}, sp)
	b := NewError(IncompatibleVariableType{
		Name:     ast.NewReference("x"),
		Expected: pytype.PrimitiveOf("int"),
		Actual:   pytype.PrimitiveOf("float"),
	}, sp)

	joined := Join(a, b)
	kind, ok := joined.Kind.(IncompatibleVariableType)
	if !ok {
		t.Fatalf("joined kind is %T", joined.Kind)
	}
	if !kind.Actual.IsAny() {
		t.Fatalf("joined actual: got %s, want Any", kind.Actual)
	}

	// Joining with itself changes nothing.
	same := Join(a, a)
	if same.Concise() != a.Concise() {
		t.Fatalf("self-join changed diagnostic: %q -> %q", a.Concise(), same.Concise())
	}
}

func TestJoinKeepsLeftForLeaks(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.AddVirtual("main.py", []byte("x = 1\n"))
	sp := span(f, 0, 1)

	a := NewError(LeakToGlobal{Detail: WriteToGlobalVariable{
		Target: ast.NewReference("x"),
		Type:   pytype.ListOf(),
		Via:    "append",
	}}, sp)
	b := NewError(LeakToGlobal{Detail: WriteToGlobalVariable{
		Target: ast.NewReference("x"),
		Type:   pytype.ListOf(),
		Via:    "extend",
	}}, sp)

	if got := Join(a, b).Concise(); got != a.Concise() {
		t.Fatalf("leak join: got %q, want left operand %q", got, a.Concise())
	}
}

func TestSuppressedByMode(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("main.py", []byte("x = 1\ny = 2\n"))
	file := fs.Get(fid)

	strictOnly := NewError(MissingGlobalAnnotation{Name: ast.NewReference("x")}, span(fid, 0, 1))
	regular := NewError(UndefinedName{Name: ast.NewReference("z")}, span(fid, 0, 1))
	parse := NewError(ParseFailure{Message: "bad"}, span(fid, 0, 1))

	if !Suppressed(strictOnly, ModeDefault, nil, file) {
		t.Error("strict-only diagnostic visible in default mode")
	}
	if Suppressed(strictOnly, ModeStrict, nil, file) {
		t.Error("strict-only diagnostic hidden in strict mode")
	}
	if Suppressed(regular, ModeDefault, nil, file) {
		t.Error("regular diagnostic hidden in default mode")
	}
	if !Suppressed(regular, ModeUnsafe, nil, file) {
		t.Error("regular diagnostic visible in unsafe mode")
	}
	if Suppressed(parse, ModeUnsafe, nil, file) {
		t.Error("parse failure hidden in unsafe mode")
	}
}

func TestSuppressedByIgnores(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("main.py", []byte("x = 1\ny = 2\n"))
	file := fs.Get(fid)

	onLine1 := NewError(UndefinedName{Name: ast.NewReference("a")}, span(fid, 0, 1))
	onLine2 := NewError(UndefinedName{Name: ast.NewReference("b")}, span(fid, 6, 7))
	parse := NewError(ParseFailure{Message: "bad"}, span(fid, 0, 1))

	ig := NewIgnoreSet()
	ig.IgnoreLine(1, UndefinedNameCode)

	if !Suppressed(onLine1, ModeStrict, ig, file) {
		t.Error("line ignore did not suppress")
	}
	if Suppressed(onLine2, ModeStrict, ig, file) {
		t.Error("line ignore leaked to another line")
	}
	if Suppressed(parse, ModeStrict, ig, file) {
		t.Error("ignore suppressed a parse failure")
	}

	ig.IgnoreLine(2)
	if !Suppressed(onLine2, ModeStrict, ig, file) {
		t.Error("bare line ignore did not suppress")
	}

	ig2 := NewIgnoreSet()
	ig2.IgnoreCode(UndefinedNameCode)
	if !Suppressed(onLine2, ModeStrict, ig2, file) {
		t.Error("project-wide code ignore did not suppress")
	}
}

func TestIgnoreSetFileMode(t *testing.T) {
	ig := NewIgnoreSet()
	if got := ig.Mode(ModeDefault); got != ModeDefault {
		t.Fatalf("mode: got %v, want default", got)
	}
	ig.SetFileMode(ModeStrict)
	if got := ig.Mode(ModeDefault); got != ModeStrict {
		t.Fatalf("mode: got %v, want strict override", got)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: bag})

	fs := source.NewFileSet()
	f := fs.AddVirtual("main.py", []byte("x = 1\n"))
	kind := UndefinedName{Name: ast.NewReference("x")}

	r.Report(kind, SevError, span(f, 0, 1), nil)
	r.Report(kind, SevError, span(f, 0, 1), nil)
	r.Report(kind, SevError, span(f, 2, 3), nil)

	if bag.Len() != 2 {
		t.Fatalf("dedup reporter: got %d items, want 2", bag.Len())
	}
}

func TestInstantiate(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("pkg/main.py", []byte("items = []\n\ndef f():\n    items.append(1)\n"))

	d := NewError(LeakToGlobal{Detail: WriteToGlobalVariable{
		Target: ast.NewReference("items"),
		Type:   pytype.ListOf(),
		Via:    "append",
	}}, span(fid, 30, 35))

	got := Instantiate(fs, d, "basename", "")
	if got.Path != "main.py" {
		t.Errorf("path: got %q", got.Path)
	}
	if got.Line != 4 || got.Col != 5 {
		t.Errorf("position: got %d:%d, want 4:5", got.Line, got.Col)
	}
	if got.Code != 3101 || got.Name != "PCK3101" {
		t.Errorf("code: got %d/%q", got.Code, got.Name)
	}
	if got.Severity != "error" {
		t.Errorf("severity: got %q", got.Severity)
	}
	if !strings.Contains(got.Description, "MutableDataStructure") {
		t.Errorf("description lacks category: %q", got.Description)
	}
}

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/app/main.py", []byte("a\nb\n"), 0)
	vendored := fs.Add("/workspace/typeshed/builtins.pyi", []byte("x\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Kind:     ParseFailure{Message: "first line\nsecond"},
			Primary:  span(userFile, 0, 1),
			Notes: []Note{
				{Span: span(vendored, 0, 0), Msg: "skip me"},
				{Span: span(userFile, 2, 3), Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Kind:     RedundantCast{Type: pytype.PrimitiveOf("int")},
			Primary:  span(userFile, 2, 3),
		},
	}

	expected := "error PCK1001 app/main.py:1:1 syntax error: first line second\n" +
		"note PCK1001 app/main.py:2:1 note line\n" +
		"warning PCK3007 app/main.py:2:1 " + diags[1].Concise()

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}
