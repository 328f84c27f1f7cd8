package cfg_test

import (
	"testing"

	"pycheck/internal/ast"
	"pycheck/internal/cfg"
	"pycheck/internal/diag"
	"pycheck/internal/parser"
	"pycheck/internal/source"
	"pycheck/internal/testkit"
)

func lowerFunction(t *testing.T, src string) *cfg.Graph {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("mod.py", []byte(src))
	bag := diag.NewBag(100)
	res := parser.ParseFile(fs, id, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("parse diagnostics: %v", bag.Items())
	}
	for _, s := range res.Module.Body {
		if fn, ok := s.Data.(ast.FunctionDefData); ok {
			return cfg.New(fn.Body)
		}
	}
	t.Fatal("no function in source")
	return nil
}

func TestGraphInvariantsHold(t *testing.T) {
	sources := []string{
		"def f():\n    x = 1\n    return x\n",
		"def f(a):\n    if a:\n        return 1\n    return 2\n",
		"def f(xs):\n    total = 0\n    for x in xs:\n        if x:\n            continue\n        total = total + x\n    return total\n",
		"def f(x):\n    while x:\n        try:\n            x = g(x)\n        except ValueError:\n            break\n    else:\n        x = 0\n    return x\n",
		"def f(v):\n    match v:\n        case 0:\n            return 'zero'\n        case _:\n            return 'other'\n",
		"def f(path):\n    with open(path) as fh:\n        return fh.read()\n",
	}
	for _, src := range sources {
		g := lowerFunction(t, src)
		if err := testkit.CheckGraphInvariants(g); err != nil {
			t.Errorf("invariants violated for %q: %v", src, err)
		}
	}
}
