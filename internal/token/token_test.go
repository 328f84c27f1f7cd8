package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := []struct {
		ident string
		kind  Kind
		ok    bool
	}{
		{"def", KwDef, true},
		{"class", KwClass, true},
		{"global", KwGlobal, true},
		{"None", NoneLit, true},
		{"True", TrueLit, true},
		{"match", 0, false}, // soft keyword
		{"case", 0, false},  // soft keyword
		{"Def", 0, false},   // case sensitive
		{"print", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		k, ok := LookupKeyword(tc.ident)
		if ok != tc.ok || (ok && k != tc.kind) {
			t.Errorf("LookupKeyword(%q) = %v, %v; want %v, %v", tc.ident, k, ok, tc.kind, tc.ok)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := KwLambda.String(); got != "lambda" {
		t.Errorf("KwLambda.String() = %q", got)
	}
	if got := Walrus.String(); got != ":=" {
		t.Errorf("Walrus.String() = %q", got)
	}
	if got := Indent.String(); got != "Indent" {
		t.Errorf("Indent.String() = %q", got)
	}
}

func TestTokenPredicates(t *testing.T) {
	if !(Token{Kind: NoneLit}).IsLiteral() {
		t.Error("None is a literal")
	}
	if !(Token{Kind: KwYield}).IsKeyword() {
		t.Error("yield is a keyword")
	}
	if (Token{Kind: Ident}).IsKeyword() {
		t.Error("Ident is not a keyword")
	}
	if !(Token{Kind: SlashSlashAssign}).IsAugAssign() {
		t.Error("//= is an augmented assignment")
	}
	if (Token{Kind: Assign}).IsAugAssign() {
		t.Error("= is not an augmented assignment")
	}
	if !(Token{Kind: Newline}).EndsLogicalLine() || !(Token{Kind: EOF}).EndsLogicalLine() {
		t.Error("Newline and EOF end a logical line")
	}
}
