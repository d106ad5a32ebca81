package core

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// symbolEntry pairs a folded and a display spelling; symbolTable does
// not store it. A canonical-symbol node is a string Series holding the
// first-interned spelling, shared by every spelling of a word that
// differs only by case, so binding lookups (Context.IndexOf) can compare
// NodeIDs instead of re-folding strings at every step. Grounded on hivekit's use of golang.org/x/text for
// encoding-aware text normalization, repurposed here for WORD!
// case-insensitive canonicalization instead of charmap decoding.
type symbolEntry struct {
	canonical string // case-folded spelling
	display   string // spelling as first interned, used by mold
}

// symbolTable interns word spellings into canonical NodeIDs. It is
// process-wide and append-only; canon symbols are never recycled by the
// GC even though they live in the node arena, since a live WORD-family
// cell's First always points at one.
type symbolTable struct {
	mu      sync.Mutex
	arena   *nodeArena
	byFold  map[string]NodeID
	caser   cases.Caser
}

func newSymbolTable(arena *nodeArena) *symbolTable {
	return &symbolTable{
		arena:  arena,
		byFold: make(map[string]NodeID),
		caser:  cases.Fold(),
	}
}

// Intern returns the canonical NodeID for spelling, creating a fresh
// symbol node the first time a given case-fold is seen. Subsequent
// spellings differing only in case resolve to the same NodeID, matching
// Rebol-family "words are case-insensitive for binding purposes" while
// preserving the first-seen display spelling for mold output.
func (t *symbolTable) Intern(spelling string) NodeID {
	fold := t.caser.String(spelling)

	t.mu.Lock()
	defer t.mu.Unlock()

	if id, ok := t.byFold[fold]; ok {
		return id
	}
	entry := &Series{Flags: SeriesFlagString, Str: []rune(spelling)}
	id := t.arena.AllocSeries(entry)
	t.arena.SetFlags(id, NodeFlagManaged|NodeFlagRoot)
	t.byFold[fold] = id
	return id
}

// Spelling returns the display spelling first interned for a canonical
// symbol NodeID.
func (t *symbolTable) Spelling(id NodeID) string {
	s := t.arena.Series(id)
	if s == nil {
		return ""
	}
	return string(s.Str)
}

// foldLanguage is kept distinct from the Caser above so callers that need
// a locale-sensitive fold (rather than the identity-locale default used
// for binding) have one available; the language tag intentionally tracks
// language.Und since word binding must not vary by host locale.
var foldLanguage = language.Und
