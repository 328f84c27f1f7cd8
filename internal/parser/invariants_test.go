package parser_test

import (
	"testing"

	"pycheck/internal/diag"
	"pycheck/internal/parser"
	"pycheck/internal/source"
	"pycheck/internal/testkit"
)

func TestParsedSpansAreWellFormed(t *testing.T) {
	src := "import os\n\n" +
		"limit = 10\n\n" +
		"class Worker:\n" +
		"    retries: int = 3\n\n" +
		"    def run(self, jobs):\n" +
		"        for job in jobs:\n" +
		"            try:\n" +
		"                self.handle(job)\n" +
		"            except RuntimeError as exc:\n" +
		"                print(exc)\n" +
		"            finally:\n" +
		"                self.retries -= 1\n" +
		"        with open('log') as fh:\n" +
		"            fh.write('done')\n" +
		"        while self.retries:\n" +
		"            match job:\n" +
		"                case None:\n" +
		"                    break\n" +
		"                case _:\n" +
		"                    return job\n"

	fs := source.NewFileSet()
	id := fs.AddVirtual("worker.py", []byte(src))
	bag := diag.NewBag(100)
	res := parser.ParseFile(fs, id, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("parse diagnostics: %v", bag.Items())
	}
	if err := testkit.CheckSpanInvariants(res.Module, fs.Get(id)); err != nil {
		t.Fatalf("span invariants violated: %v", err)
	}
}
