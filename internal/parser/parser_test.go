package parser

import (
	"testing"

	"pycheck/internal/ast"
	"pycheck/internal/diag"
	"pycheck/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Module, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	bag := diag.NewBag(64)
	res := ParseFile(fs, id, Options{Reporter: diag.BagReporter{Bag: bag}})
	if res.Module == nil {
		t.Fatalf("ParseFile returned nil module")
	}
	return res.Module, bag
}

func parseClean(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, bag := parseSource(t, src)
	if bag.Len() != 0 {
		for _, d := range bag.Items() {
			t.Errorf("unexpected diagnostic: %s %s", d.Code().ID(), d.Concise())
		}
		t.FailNow()
	}
	return mod
}

func exprOfStmt(t *testing.T, s *ast.Stmt) *ast.Expr {
	t.Helper()
	d, ok := s.Data.(ast.ExprStmtData)
	if !ok {
		t.Fatalf("statement is %v, want expression statement", s.Kind)
	}
	return d.Value
}

// parseExprOnly parses a single expression statement and returns the
// expression.
func parseExprOnly(t *testing.T, src string) *ast.Expr {
	t.Helper()
	mod := parseClean(t, src+"\n")
	if len(mod.Body) != 1 {
		t.Fatalf("got %d statements, want 1", len(mod.Body))
	}
	return exprOfStmt(t, mod.Body[0])
}

func TestExprStrings(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"x", "x"},
		{"x.y.z", "x.y.z"},
		{"xs[0]", "xs[0]"},
		{"xs[1:2]", "xs[1:2]"},
		{"xs[::2]", "xs[::2]"},
		{"f(a, b, key=1, *rest, **kw)", "f(a, b, *rest, key=1, **kw)"},
		{"[1, 2, 3]", "[1, 2, 3]"},
		{"(1,)", "(1,)"},
		{"{1, 2}", "{1, 2}"},
		{"{'a': 1, **extra}", "{\"a\": 1, **extra}"},
		{"[x for x in xs if x]", "[x for x in xs if x]"},
		{"{k: v for k, v in items}", "{k: v for (k, v) in items}"},
		{"a < b <= c", "a < b <= c"},
		{"x not in xs", "x not in xs"},
		{"x is not None", "x is not None"},
		{"a if cond else b", "a if cond else b"},
		{"lambda a, b: a", "lambda a, b: a"},
		{"not flag", "not flag"},
		{"-n", "-n"},
		{"a and b or c", "a and b or c"},
		{"'ab' 'cd'", "\"abcd\""},
	}
	for _, tc := range cases {
		got := ast.ExprString(parseExprOnly(t, tc.src))
		if got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.src, got, tc.want)
		}
	}
}

func TestPowerIsRightAssociative(t *testing.T) {
	e := parseExprOnly(t, "a ** b ** c")
	top, ok := e.Data.(ast.BinOpData)
	if !ok || top.Op != "**" {
		t.Fatalf("top node is %v, want **", e.Kind)
	}
	if _, ok := top.Left.Data.(ast.NameData); !ok {
		t.Errorf("left of top ** should be the name a")
	}
	right, ok := top.Right.Data.(ast.BinOpData)
	if !ok || right.Op != "**" {
		t.Fatalf("right of top ** should be b ** c")
	}
}

func TestArithPrecedence(t *testing.T) {
	e := parseExprOnly(t, "a + b * c")
	top, ok := e.Data.(ast.BinOpData)
	if !ok || top.Op != "+" {
		t.Fatalf("top node should be +")
	}
	inner, ok := top.Right.Data.(ast.BinOpData)
	if !ok || inner.Op != "*" {
		t.Fatalf("right of + should be b * c")
	}
}

func TestWalrus(t *testing.T) {
	e := parseExprOnly(t, "(n := read())")
	d, ok := e.Data.(ast.NamedData)
	if !ok {
		t.Fatalf("expression is %v, want walrus binding", e.Kind)
	}
	if ast.ExprString(d.Target) != "n" || ast.ExprString(d.Value) != "read()" {
		t.Errorf("got %s, want (n := read())", ast.ExprString(e))
	}
}

func TestAssignForms(t *testing.T) {
	mod := parseClean(t, "x = 1\nx: int = 2\na = b = c\npair = 1, 2\nn += 1\n")

	first := mod.Body[0].Data.(ast.AssignData)
	if len(first.Targets) != 1 || first.Annotation != nil {
		t.Errorf("plain assign parsed wrong: %+v", first)
	}

	ann := mod.Body[1].Data.(ast.AssignData)
	if ann.Annotation == nil || ast.ExprString(ann.Annotation) != "int" {
		t.Errorf("annotated assign lost its annotation")
	}

	chain := mod.Body[2].Data.(ast.AssignData)
	if len(chain.Targets) != 2 || ast.ExprString(chain.Value) != "c" {
		t.Errorf("chained assign: got %d targets, value %s", len(chain.Targets), ast.ExprString(chain.Value))
	}

	tuple := mod.Body[3].Data.(ast.AssignData)
	if tuple.Value.Kind != ast.ExprTuple {
		t.Errorf("bare tuple value should fold into a tuple expression")
	}

	aug, ok := mod.Body[4].Data.(ast.AugAssignData)
	if !ok || aug.Op != "+" {
		t.Errorf("augmented assign: got %+v", mod.Body[4].Data)
	}
}

func TestAnnotationOnly(t *testing.T) {
	mod := parseClean(t, "x: int\n")
	d := mod.Body[0].Data.(ast.AssignData)
	if d.Value != nil || d.Annotation == nil {
		t.Errorf("bare annotation should have annotation and no value")
	}
}

func TestFunctionDef(t *testing.T) {
	mod := parseClean(t, "def add(a: int, b: int = 0, *args, **kw) -> int:\n    return a + b\n")
	fn := mod.Body[0].Data.(ast.FunctionDefData)
	if fn.Name != "add" {
		t.Fatalf("name: got %q", fn.Name)
	}
	if len(fn.Params) != 4 {
		t.Fatalf("params: got %d, want 4", len(fn.Params))
	}
	if fn.Params[1].Default == nil || fn.Params[0].Annotation == nil {
		t.Errorf("parameter annotation or default lost")
	}
	if fn.Returns == nil || ast.ExprString(fn.Returns) != "int" {
		t.Errorf("return annotation lost")
	}
	if len(fn.Body) != 1 || fn.Body[0].Kind != ast.StmtReturn {
		t.Errorf("body should hold one return statement")
	}
}

func TestDecoratorsAndAsync(t *testing.T) {
	mod := parseClean(t, "@cache\n@app.route('/x')\nasync def handler(req):\n    await req.drain()\n")
	fn := mod.Body[0].Data.(ast.FunctionDefData)
	if !fn.IsAsync {
		t.Errorf("async flag lost")
	}
	if len(fn.Decorators) != 2 {
		t.Fatalf("decorators: got %d, want 2", len(fn.Decorators))
	}
	if ast.ExprString(fn.Decorators[1]) != "app.route(\"/x\")" {
		t.Errorf("second decorator: got %s", ast.ExprString(fn.Decorators[1]))
	}
}

func TestClassDef(t *testing.T) {
	mod := parseClean(t, "class Point(Base, total=False):\n    x: int\n    y: int\n")
	cls := mod.Body[0].Data.(ast.ClassDefData)
	if cls.Name != "Point" {
		t.Fatalf("name: got %q", cls.Name)
	}
	if len(cls.Bases) != 1 || ast.ExprString(cls.Bases[0]) != "Base" {
		t.Errorf("bases: got %v", cls.Bases)
	}
	if len(cls.Keywords) != 1 || cls.Keywords[0].Name != "total" {
		t.Errorf("class keywords lost")
	}
	if len(cls.Body) != 2 {
		t.Errorf("body: got %d statements", len(cls.Body))
	}
}

func TestIfElifElse(t *testing.T) {
	mod := parseClean(t, "if a:\n    x = 1\nelif b:\n    x = 2\nelse:\n    x = 3\n")
	top := mod.Body[0].Data.(ast.IfData)
	if len(top.OrElse) != 1 || top.OrElse[0].Kind != ast.StmtIf {
		t.Fatalf("elif should nest an if in OrElse")
	}
	inner := top.OrElse[0].Data.(ast.IfData)
	if len(inner.OrElse) != 1 {
		t.Errorf("else branch lost")
	}
}

func TestForLoop(t *testing.T) {
	mod := parseClean(t, "for k, v in items:\n    print(k)\nelse:\n    done()\n")
	loop := mod.Body[0].Data.(ast.ForData)
	if loop.Target.Kind != ast.ExprTuple {
		t.Errorf("tuple target should fold: got %v", loop.Target.Kind)
	}
	if ast.ExprString(loop.Iter) != "items" {
		t.Errorf("iter: got %s", ast.ExprString(loop.Iter))
	}
	if len(loop.OrElse) != 1 {
		t.Errorf("for-else branch lost")
	}
}

func TestWhileAndWith(t *testing.T) {
	mod := parseClean(t, "while not done:\n    step()\nwith open(p) as f, lock:\n    f.read()\n")
	if _, ok := mod.Body[0].Data.(ast.WhileData); !ok {
		t.Fatalf("first statement should be a while loop")
	}
	w := mod.Body[1].Data.(ast.WithData)
	if len(w.Items) != 2 {
		t.Fatalf("with items: got %d, want 2", len(w.Items))
	}
	if w.Items[0].Target == nil || w.Items[1].Target != nil {
		t.Errorf("as-targets parsed wrong")
	}
}

func TestTryExcept(t *testing.T) {
	mod := parseClean(t, "try:\n    risky()\nexcept ValueError as e:\n    handle(e)\nexcept Exception:\n    pass\nelse:\n    ok()\nfinally:\n    close()\n")
	tr := mod.Body[0].Data.(ast.TryData)
	if len(tr.Handlers) != 2 {
		t.Fatalf("handlers: got %d, want 2", len(tr.Handlers))
	}
	if tr.Handlers[0].Name != "e" || tr.Handlers[1].Name != "" {
		t.Errorf("handler names parsed wrong")
	}
	if len(tr.OrElse) != 1 || len(tr.Finally) != 1 {
		t.Errorf("else or finally branch lost")
	}
}

func TestMatchStatement(t *testing.T) {
	mod := parseClean(t, "match cmd:\n    case 0:\n        stop()\n    case n if n > 0:\n        run(n)\n")
	m := mod.Body[0].Data.(ast.MatchData)
	if ast.ExprString(m.Subject) != "cmd" {
		t.Errorf("subject: got %s", ast.ExprString(m.Subject))
	}
	if len(m.Cases) != 2 {
		t.Fatalf("cases: got %d, want 2", len(m.Cases))
	}
	if m.Cases[0].Guard != nil || m.Cases[1].Guard == nil {
		t.Errorf("guards parsed wrong")
	}
}

func TestMatchAsName(t *testing.T) {
	// Without a subject expression after it, match is a plain identifier.
	mod := parseClean(t, "match = 1\nmatch.group(0)\n")
	if mod.Body[0].Kind != ast.StmtAssign {
		t.Errorf("match as a target should assign, got %v", mod.Body[0].Kind)
	}
	if mod.Body[1].Kind != ast.StmtExpr {
		t.Errorf("match.group call should be an expression statement")
	}
}

func TestImports(t *testing.T) {
	mod := parseClean(t, "import os, sys as system\nfrom collections import OrderedDict, defaultdict as dd\nfrom . import sibling\nfrom ..pkg import thing\nfrom typing import *\n")

	imp := mod.Body[0].Data.(ast.ImportData)
	if len(imp.Aliases) != 2 || imp.Aliases[1].Alias != "system" {
		t.Errorf("plain import: got %+v", imp.Aliases)
	}

	from := mod.Body[1].Data.(ast.ImportFromData)
	if from.Module != "collections" || len(from.Names) != 2 {
		t.Errorf("from import: got module %q, %d names", from.Module, len(from.Names))
	}

	rel := mod.Body[2].Data.(ast.ImportFromData)
	if rel.Module != "." {
		t.Errorf("relative import module: got %q, want %q", rel.Module, ".")
	}

	rel2 := mod.Body[3].Data.(ast.ImportFromData)
	if rel2.Module != "..pkg" {
		t.Errorf("relative import module: got %q, want %q", rel2.Module, "..pkg")
	}

	star := mod.Body[4].Data.(ast.ImportFromData)
	if len(star.Names) != 1 || star.Names[0].Module != "*" {
		t.Errorf("star import: got %+v", star.Names)
	}
}

func TestSimpleStatementsOnOneLine(t *testing.T) {
	mod := parseClean(t, "x = 1; y = 2; del x\n")
	if len(mod.Body) != 3 {
		t.Fatalf("got %d statements, want 3", len(mod.Body))
	}
	if mod.Body[2].Kind != ast.StmtDelete {
		t.Errorf("third statement should be del")
	}
}

func TestGlobalNonlocalAssert(t *testing.T) {
	mod := parseClean(t, "def f():\n    global total, seen\n    nonlocal_marker = 0\n    assert total >= 0, 'negative'\n")
	fn := mod.Body[0].Data.(ast.FunctionDefData)
	g := fn.Body[0].Data.(ast.NamesData)
	if len(g.Names) != 2 || g.Names[0] != "total" {
		t.Errorf("global names: got %v", g.Names)
	}
	a := fn.Body[2].Data.(ast.AssertData)
	if a.Msg == nil || a.Origin != ast.OriginAssertion {
		t.Errorf("assert message or origin lost")
	}
}

func TestRaiseFrom(t *testing.T) {
	mod := parseClean(t, "raise ValueError('bad') from err\n")
	r := mod.Body[0].Data.(ast.RaiseData)
	if r.Exc == nil || r.From == nil {
		t.Errorf("raise from parsed wrong: %+v", r)
	}
}

func TestYieldForms(t *testing.T) {
	mod := parseClean(t, "def gen():\n    yield\n    yield 1\n    yield from inner()\n")
	fn := mod.Body[0].Data.(ast.FunctionDefData)
	if exprOfStmt(t, fn.Body[0]).Kind != ast.ExprYield {
		t.Errorf("bare yield lost")
	}
	if exprOfStmt(t, fn.Body[2]).Kind != ast.ExprYieldFrom {
		t.Errorf("yield from lost")
	}
}

func TestImplicitLineJoin(t *testing.T) {
	mod := parseClean(t, "total = (1 +\n         2 +\n         3)\nitems = [\n    'a',\n    'b',\n]\n")
	if len(mod.Body) != 2 {
		t.Fatalf("got %d statements, want 2", len(mod.Body))
	}
	items := mod.Body[1].Data.(ast.AssignData)
	seq := items.Value.Data.(ast.SequenceData)
	if len(seq.Elements) != 2 {
		t.Errorf("trailing comma list: got %d elements", len(seq.Elements))
	}
}

func TestGeneratorArgument(t *testing.T) {
	e := parseExprOnly(t, "sum(x * x for x in xs)")
	call := e.Data.(ast.CallData)
	if len(call.Args) != 1 || call.Args[0].Kind != ast.ExprComprehension {
		t.Fatalf("generator argument should parse as a comprehension")
	}
	comp := call.Args[0].Data.(ast.ComprehensionData)
	if comp.Kind != ast.CompGenerator {
		t.Errorf("comprehension kind: got %v", comp.Kind)
	}
}

func TestFStringIsOpaque(t *testing.T) {
	e := parseExprOnly(t, "f'total: {n}'")
	if e.Kind != ast.ExprFString {
		t.Fatalf("got %v, want f-string", e.Kind)
	}
}

func TestParseErrorRecovery(t *testing.T) {
	mod, bag := parseSource(t, "x = = 1\ny = 2\n")
	if bag.Len() == 0 {
		t.Fatalf("expected a parse diagnostic")
	}
	for _, d := range bag.Items() {
		if d.Code() != diag.ParseError {
			t.Errorf("code: got %s, want %s", d.Code().ID(), diag.ParseError.ID())
		}
	}
	// The next line still parses.
	last := mod.Body[len(mod.Body)-1]
	if last.Kind != ast.StmtAssign {
		t.Errorf("recovery should reach the y = 2 statement, got %v", last.Kind)
	}
}

func TestMissingColonReported(t *testing.T) {
	_, bag := parseSource(t, "if cond\n    x = 1\n")
	if bag.Len() == 0 {
		t.Fatalf("expected a diagnostic for the missing colon")
	}
}

func TestDirectivesSurface(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte("# pycheck-strict\nx = 1  # pycheck-ignore[3101]\n"))
	res := ParseFile(fs, id, Options{Reporter: diag.NopReporter{}})
	if len(res.Directives) != 2 {
		t.Fatalf("directives: got %d, want 2", len(res.Directives))
	}
	if res.Directives[0].Directive.Name != "strict" {
		t.Errorf("first directive: got %q", res.Directives[0].Directive.Name)
	}
	if res.Directives[1].Directive.Payload != "3101" {
		t.Errorf("ignore payload: got %q", res.Directives[1].Directive.Payload)
	}
}

func TestModuleName(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"mod.py", "mod"},
		{"pkg/sub/mod.py", "mod"},
		{"pkg/__init__.py", "pkg"},
		{"stubs/mod.pyi", "mod"},
	}
	for _, tc := range cases {
		if got := moduleName(tc.path); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.path, got, tc.want)
		}
	}
}
