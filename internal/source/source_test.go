package source

import (
	"testing"
)

func TestSpanCoverAndContains(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}

	got := a.Cover(b)
	want := Span{File: 1, Start: 2, End: 8}
	if got != want {
		t.Fatalf("Cover mismatch: got %v, want %v", got, want)
	}
	if !got.Contains(a) || !got.Contains(b) {
		t.Fatalf("covered span must contain both inputs")
	}

	other := Span{File: 2, Start: 0, End: 100}
	if a.Cover(other) != a {
		t.Fatalf("Cover must ignore spans from another file")
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.py", []byte("a = 1\nbb = 2\n\nccc = 3"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{4, LineCol{Line: 1, Col: 5}},
		{5, LineCol{Line: 1, Col: 6}}, // the newline ends line 1
		{6, LineCol{Line: 2, Col: 1}},
		{13, LineCol{Line: 3, Col: 1}},
		{14, LineCol{Line: 4, Col: 1}},
		{20, LineCol{Line: 4, Col: 7}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestFileLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.py", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.Line(1); got != "first" {
		t.Errorf("line 1: got %q", got)
	}
	if got := f.Line(2); got != "second" {
		t.Errorf("line 2: got %q", got)
	}
	if got := f.Line(3); got != "third" {
		t.Errorf("line 3: got %q", got)
	}
	if got := f.Line(4); got != "" {
		t.Errorf("line 4: got %q, want empty", got)
	}
	if got := f.Line(0); got != "" {
		t.Errorf("line 0: got %q, want empty", got)
	}
}

func TestLoadNormalization(t *testing.T) {
	content := []byte("x = 1\r\ny = 2\r\n")
	normalized, changed := normalizeCRLF(content)
	if !changed {
		t.Fatalf("expected CRLF normalization")
	}
	if string(normalized) != "x = 1\ny = 2\n" {
		t.Fatalf("unexpected normalized content: %q", normalized)
	}

	bom := []byte{0xEF, 0xBB, 0xBF, 'x'}
	stripped, had := removeBOM(bom)
	if !had || string(stripped) != "x" {
		t.Fatalf("BOM not stripped: %q", stripped)
	}
}

func TestInternerReusesIDs(t *testing.T) {
	in := NewInterner()
	a := in.Intern("config")
	b := in.Intern("config")
	if a != b {
		t.Fatalf("same string interned twice: %d != %d", a, b)
	}
	if a == NoStringID {
		t.Fatalf("non-empty string must not map to NoStringID")
	}
	if s := in.MustLookup(a); s != "config" {
		t.Fatalf("lookup: got %q", s)
	}
	if in.Intern("") != NoStringID {
		t.Fatalf("empty string must map to NoStringID")
	}
}

func TestInternIdentNormalizesNFKC(t *testing.T) {
	in := NewInterner()
	// U+FF41 FULLWIDTH LATIN SMALL LETTER A normalizes to "a" under NFKC,
	// which is how Python itself treats identifier spellings.
	plain := in.InternIdent("a")
	fullwidth := in.InternIdent("ａ")
	if plain != fullwidth {
		t.Fatalf("NFKC-equivalent identifiers got distinct IDs: %d != %d", plain, fullwidth)
	}
}
