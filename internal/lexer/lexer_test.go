package lexer

import (
	"testing"

	"pycheck/internal/source"
	"pycheck/internal/token"
)

type reportSink struct {
	kinds []string
	msgs  []string
}

func (r *reportSink) Report(kind string, _ source.Span, msg string) {
	r.kinds = append(r.kinds, kind)
	r.msgs = append(r.msgs, msg)
}

func lexAll(t *testing.T, src string) ([]token.Token, *reportSink, *Lexer) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	sink := &reportSink{}
	lx := New(fs.Get(id), Options{Reporter: sink})

	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, sink, lx
		}
		if len(toks) > 10000 {
			t.Fatal("lexer did not terminate")
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func expectKinds(t *testing.T, src string, want ...token.Kind) {
	t.Helper()
	toks, sink, _ := lexAll(t, src)
	got := kinds(toks)
	if len(sink.msgs) > 0 {
		t.Fatalf("unexpected lex errors: %v", sink.msgs)
	}
	if len(got) != len(want) {
		t.Fatalf("token kinds:\n got %v\nwant %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v\nfull: %v", i, got[i], want[i], got)
		}
	}
}

func TestSimpleAssignment(t *testing.T) {
	expectKinds(t, "x = 1\n",
		token.Ident, token.Assign, token.IntLit, token.Newline, token.EOF)
}

func TestKeywordsAndSoftKeywords(t *testing.T) {
	expectKinds(t, "def f(): pass\n",
		token.KwDef, token.Ident, token.LParen, token.RParen, token.Colon,
		token.KwPass, token.Newline, token.EOF)

	// match is a soft keyword and lexes as an identifier
	expectKinds(t, "match = 1\n",
		token.Ident, token.Assign, token.IntLit, token.Newline, token.EOF)
}

func TestIndentDedent(t *testing.T) {
	src := "def f():\n    x = 1\n    return x\n"
	expectKinds(t, src,
		token.KwDef, token.Ident, token.LParen, token.RParen, token.Colon, token.Newline,
		token.Indent,
		token.Ident, token.Assign, token.IntLit, token.Newline,
		token.KwReturn, token.Ident, token.Newline,
		token.Dedent,
		token.EOF)
}

func TestNestedDedents(t *testing.T) {
	src := "if a:\n    if b:\n        x = 1\ny = 2\n"
	expectKinds(t, src,
		token.KwIf, token.Ident, token.Colon, token.Newline,
		token.Indent,
		token.KwIf, token.Ident, token.Colon, token.Newline,
		token.Indent,
		token.Ident, token.Assign, token.IntLit, token.Newline,
		token.Dedent, token.Dedent,
		token.Ident, token.Assign, token.IntLit, token.Newline,
		token.EOF)
}

func TestBlankAndCommentLinesProduceNoTokens(t *testing.T) {
	src := "x = 1\n\n# comment\n   \ny = 2\n"
	expectKinds(t, src,
		token.Ident, token.Assign, token.IntLit, token.Newline,
		token.Ident, token.Assign, token.IntLit, token.Newline,
		token.EOF)
}

func TestImplicitLineJoinInsideBrackets(t *testing.T) {
	src := "x = [\n    1,\n    2,\n]\n"
	expectKinds(t, src,
		token.Ident, token.Assign, token.LBracket,
		token.IntLit, token.Comma, token.IntLit, token.Comma,
		token.RBracket, token.Newline, token.EOF)
}

func TestExplicitLineJoin(t *testing.T) {
	src := "x = 1 + \\\n    2\n"
	expectKinds(t, src,
		token.Ident, token.Assign, token.IntLit, token.Plus, token.IntLit,
		token.Newline, token.EOF)
}

func TestMissingTrailingNewline(t *testing.T) {
	expectKinds(t, "x = 1",
		token.Ident, token.Assign, token.IntLit, token.Newline, token.EOF)
}

func TestDedentAtEOF(t *testing.T) {
	expectKinds(t, "if a:\n    x = 1",
		token.KwIf, token.Ident, token.Colon, token.Newline,
		token.Indent,
		token.Ident, token.Assign, token.IntLit, token.Newline,
		token.Dedent,
		token.EOF)
}

func TestOperators(t *testing.T) {
	expectKinds(t, "x //= y ** 2\n",
		token.Ident, token.SlashSlashAssign, token.Ident, token.StarStar, token.IntLit,
		token.Newline, token.EOF)

	expectKinds(t, "if (n := 10) > 5: pass\n",
		token.KwIf, token.LParen, token.Ident, token.Walrus, token.IntLit, token.RParen,
		token.Gt, token.IntLit, token.Colon, token.KwPass, token.Newline, token.EOF)

	expectKinds(t, "def f() -> None: ...\n",
		token.KwDef, token.Ident, token.LParen, token.RParen, token.Arrow, token.NoneLit,
		token.Colon, token.Ellipsis, token.Newline, token.EOF)
}

func TestStrings(t *testing.T) {
	toks, sink, _ := lexAll(t, `s = "hi"` + "\n" + `r = r'\d+'` + "\n" + `f = f"{x}"` + "\n" + `t = """a
b"""` + "\n")
	if len(sink.msgs) > 0 {
		t.Fatalf("unexpected lex errors: %v", sink.msgs)
	}
	var lits []token.Token
	for _, tok := range toks {
		if tok.Kind == token.StringLit || tok.Kind == token.FStringLit {
			lits = append(lits, tok)
		}
	}
	if len(lits) != 4 {
		t.Fatalf("got %d string literals, want 4: %v", len(lits), kinds(toks))
	}
	if lits[0].Text != `"hi"` {
		t.Errorf("plain string text: %q", lits[0].Text)
	}
	if lits[1].Text != `r'\d+'` {
		t.Errorf("raw string text: %q", lits[1].Text)
	}
	if lits[2].Kind != token.FStringLit {
		t.Errorf("f-string kind: %v", lits[2].Kind)
	}
	if lits[3].Text != "\"\"\"a\nb\"\"\"" {
		t.Errorf("triple string text: %q", lits[3].Text)
	}
}

func TestNumbers(t *testing.T) {
	toks, sink, _ := lexAll(t, "a = 1_000\nb = 0xFF\nc = 3.14\nd = 1e-9\ne = 2j\n")
	if len(sink.msgs) > 0 {
		t.Fatalf("unexpected lex errors: %v", sink.msgs)
	}
	var lits []token.Token
	for _, tok := range toks {
		if tok.Kind == token.IntLit || tok.Kind == token.FloatLit {
			lits = append(lits, tok)
		}
	}
	wantKind := []token.Kind{token.IntLit, token.IntLit, token.FloatLit, token.FloatLit, token.FloatLit}
	if len(lits) != len(wantKind) {
		t.Fatalf("got %d numeric literals, want %d", len(lits), len(wantKind))
	}
	for i := range lits {
		if lits[i].Kind != wantKind[i] {
			t.Errorf("literal %d (%q): got %v, want %v", i, lits[i].Text, lits[i].Kind, wantKind[i])
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	_, sink, _ := lexAll(t, "s = 'oops\n")
	if len(sink.msgs) == 0 {
		t.Fatal("expected a lex error")
	}
	if sink.kinds[0] != ReportSyntax {
		t.Errorf("report kind: %q", sink.kinds[0])
	}
}

func TestBadDedentReported(t *testing.T) {
	_, sink, _ := lexAll(t, "if a:\n        x = 1\n    y = 2\n")
	found := false
	for _, k := range sink.kinds {
		if k == ReportIndent {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an indentation error, got %v", sink.msgs)
	}
}

func TestDirectives(t *testing.T) {
	src := "# pycheck-strict\nx = 1  # pycheck-ignore[3101, 3105]\ny = 2  # plain comment\nz = 3  # pycheck-ignore\n"
	_, sink, lx := lexAll(t, src)
	if len(sink.msgs) > 0 {
		t.Fatalf("unexpected lex errors: %v", sink.msgs)
	}
	ds := lx.Directives()
	if len(ds) != 3 {
		t.Fatalf("got %d directives, want 3", len(ds))
	}
	if ds[0].Directive.Name != "strict" || ds[0].Directive.Payload != "" {
		t.Errorf("directive 0: %+v", ds[0].Directive)
	}
	if ds[1].Directive.Name != "ignore" || ds[1].Directive.Payload != "3101, 3105" {
		t.Errorf("directive 1: %+v", ds[1].Directive)
	}
	if ds[2].Directive.Name != "ignore" || ds[2].Directive.Payload != "" {
		t.Errorf("directive 2: %+v", ds[2].Directive)
	}
}

func TestCommentTriviaAttached(t *testing.T) {
	toks, _, _ := lexAll(t, "x = 1  # note\ny = 2\n")
	// the comment rides as leading trivia on the Newline token
	var found bool
	for _, tok := range toks {
		for _, tr := range tok.Leading {
			if tr.Kind == token.TriviaComment && tr.Text == "# note" {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("comment trivia not attached to any token")
	}
}

func TestUnicodeIdentifiers(t *testing.T) {
	toks, sink, _ := lexAll(t, "π = 3.14\n")
	if len(sink.msgs) > 0 {
		t.Fatalf("unexpected lex errors: %v", sink.msgs)
	}
	if toks[0].Kind != token.Ident || toks[0].Text != "π" {
		t.Fatalf("unicode ident: got %v %q", toks[0].Kind, toks[0].Text)
	}
}
