package source

import (
	"slices"

	"golang.org/x/text/unicode/norm"
)

// StringID is a handle to an interned string.
type StringID uint32

// NoStringID is the reserved ID of the empty string.
const NoStringID StringID = 0

// Interner deduplicates strings and hands out stable integer handles.
// ID 0 is always the empty string.
type Interner struct {
	byID  []string
	index map[string]StringID
}

// NewInterner creates an interner pre-seeded with the empty string.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern stores s and returns its ID, reusing the existing ID when s was
// interned before.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}
	// Copy so the interner does not pin the caller's backing buffer.
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternIdent interns a Python identifier. Identifiers are normalized to NFKC
// first, matching the language's own identifier equivalence rule, so that
// lookalike spellings resolve to the same ID.
func (i *Interner) InternIdent(s string) StringID {
	if !norm.NFKC.IsNormalString(s) {
		s = norm.NFKC.String(s)
	}
	return i.Intern(s)
}

// Lookup returns the string for id, with ok=false for an unknown ID.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup returns the string for id and panics on an unknown ID.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("source: invalid string ID")
	}
	return s
}

// Has reports whether id is valid for this interner.
func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len returns the number of interned strings, counting the empty string.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of all interned strings in ID order.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
