package cfg

import (
	"testing"

	"pycheck/internal/ast"
	"pycheck/internal/diag"
	"pycheck/internal/parser"
	"pycheck/internal/source"
)

func parseBody(t *testing.T, src string) []*ast.Stmt {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.py", []byte(src))
	res := parser.ParseFile(fs, id, parser.Options{Reporter: diag.NopReporter{}})
	if res.Errors != 0 {
		t.Fatalf("parse reported %d errors", res.Errors)
	}
	return res.Module.Body
}

// walkStmts runs a unit-lattice forward walk and returns every visited
// statement in visit order.
func walkStmts(t *testing.T, g *Graph) []*ast.Stmt {
	t.Helper()
	var seen []*ast.Stmt
	_, err := Forward(g, UnitLattice{}, Unit{}, func(s Unit, id StmtID, g *Graph) Unit {
		seen = append(seen, g.Stmt(id))
		return s
	})
	if err != nil {
		t.Fatalf("forward walk: %v", err)
	}
	return seen
}

func asserts(stmts []*ast.Stmt) []ast.AssertData {
	var out []ast.AssertData
	for _, s := range stmts {
		if d, ok := s.Data.(ast.AssertData); ok {
			out = append(out, d)
		}
	}
	return out
}

func TestStraightLine(t *testing.T) {
	g := New(parseBody(t, "x = 1\ny = 2\nreturn_value = x\n"))
	stmts := walkStmts(t, g)
	if len(stmts) != 3 {
		t.Fatalf("visited %d statements, want 3", len(stmts))
	}
	if _, ok := (&Result[Unit]{g: g, Reached: make([]bool, len(g.Blocks))}).Exit(); ok {
		t.Errorf("fresh result should not report a reached exit")
	}
}

func TestIfLowersBothBranches(t *testing.T) {
	g := New(parseBody(t, "if flag:\n    a = 1\nelse:\n    b = 2\nc = 3\n"))
	stmts := walkStmts(t, g)

	as := asserts(stmts)
	if len(as) != 2 {
		t.Fatalf("got %d synthetic asserts, want 2", len(as))
	}
	var sawTrue, sawFalse bool
	for _, a := range as {
		switch a.Origin {
		case ast.OriginIfTrue:
			sawTrue = true
			if a.Test.Kind != ast.ExprName {
				t.Errorf("true edge should assert the bare condition")
			}
		case ast.OriginIfFalse:
			sawFalse = true
			if a.Test.Kind != ast.ExprUnaryOp {
				t.Errorf("false edge should assert the negated condition")
			}
		}
	}
	if !sawTrue || !sawFalse {
		t.Errorf("both branch asserts should be emitted")
	}
}

func TestWhileLowersEntryAndExit(t *testing.T) {
	g := New(parseBody(t, "while pending:\n    step()\ndone()\n"))
	stmts := walkStmts(t, g)
	as := asserts(stmts)
	if len(as) != 2 {
		t.Fatalf("got %d synthetic asserts, want 2", len(as))
	}
	origins := map[ast.AssertOrigin]bool{}
	for _, a := range as {
		origins[a.Origin] = true
	}
	if !origins[ast.OriginWhileTrue] || !origins[ast.OriginWhileFalse] {
		t.Errorf("while should assert on both edges: %v", origins)
	}
}

func TestForDesugarsToAssignment(t *testing.T) {
	g := New(parseBody(t, "for item in rows:\n    use(item)\n"))
	stmts := walkStmts(t, g)

	var assign *ast.Stmt
	for _, s := range stmts {
		if s.Kind == ast.StmtAssign {
			assign = s
		}
	}
	if assign == nil {
		t.Fatalf("for header should become a synthetic assignment")
	}
	d := assign.Data.(ast.AssignData)
	if ast.ExprString(d.Targets[0]) != "item" {
		t.Errorf("target: got %s", ast.ExprString(d.Targets[0]))
	}
	if ast.ExprString(d.Value) != "rows.__iter__().__next__()" {
		t.Errorf("value: got %s", ast.ExprString(d.Value))
	}
}

func TestWithDesugarsToEnter(t *testing.T) {
	g := New(parseBody(t, "with open(p) as f:\n    f.read()\nwith lock:\n    go()\n"))
	stmts := walkStmts(t, g)

	var sawAssign, sawBare bool
	for _, s := range stmts {
		switch d := s.Data.(type) {
		case ast.AssignData:
			if ast.ExprString(d.Value) == "open(p).__enter__()" {
				sawAssign = true
			}
		case ast.ExprStmtData:
			if ast.ExprString(d.Value) == "lock.__enter__()" {
				sawBare = true
			}
		}
	}
	if !sawAssign || !sawBare {
		t.Errorf("with items should lower to __enter__ forms")
	}
}

func TestReturnTerminatesBlock(t *testing.T) {
	g := New(parseBody(t, "return early\nunreachable = 1\n"))
	stmts := walkStmts(t, g)
	if len(stmts) != 1 {
		t.Fatalf("visited %d statements, want 1 (code after return is dead)", len(stmts))
	}
	if stmts[0].Kind != ast.StmtReturn {
		t.Errorf("the surviving statement should be the return")
	}
}

func TestBreakAndContinueEdges(t *testing.T) {
	g := New(parseBody(t, "while True:\n    if stop:\n        break\n    continue\nafter = 1\n"))
	res, err := Forward(g, UnitLattice{}, Unit{}, func(s Unit, id StmtID, g *Graph) Unit { return s })
	if err != nil {
		t.Fatalf("forward walk: %v", err)
	}
	if _, ok := res.Exit(); !ok {
		t.Errorf("break should make the code after the loop reachable")
	}
}

func TestTryHandlersReachable(t *testing.T) {
	g := New(parseBody(t, "try:\n    risky()\nexcept ValueError:\n    a = 1\nexcept KeyError:\n    b = 2\nfinally:\n    c = 3\n"))
	stmts := walkStmts(t, g)

	var names []string
	for _, s := range stmts {
		if d, ok := s.Data.(ast.AssignData); ok {
			names = append(names, ast.ExprString(d.Targets[0]))
		}
	}
	if len(names) != 3 {
		t.Fatalf("all handler bodies and finally must be visited: got %v", names)
	}
}

func TestMatchCasesReachable(t *testing.T) {
	g := New(parseBody(t, "match cmd:\n    case 0:\n        a = 1\n    case n:\n        b = 2\nafter = 3\n"))
	stmts := walkStmts(t, g)

	count := 0
	for _, s := range stmts {
		if s.Kind == ast.StmtAssign {
			count++
		}
	}
	if count != 3 {
		t.Errorf("both case bodies and the after statement should be visited, got %d assigns", count)
	}
}

func TestEveryReachableStatementVisitedOnce(t *testing.T) {
	g := New(parseBody(t, "x = 1\nwhile x:\n    x = f(x)\n    if x:\n        y = 2\nz = 3\n"))
	counts := make(map[StmtID]int)
	_, err := Forward(g, UnitLattice{}, Unit{}, func(s Unit, id StmtID, g *Graph) Unit {
		counts[id]++
		return s
	})
	if err != nil {
		t.Fatalf("forward walk: %v", err)
	}
	for id, n := range counts {
		if n != 1 {
			t.Errorf("statement %d visited %d times under the unit lattice, want 1", id, n)
		}
	}
	if len(counts) != len(g.Stmts) {
		t.Errorf("visited %d of %d statements", len(counts), len(g.Stmts))
	}
}
