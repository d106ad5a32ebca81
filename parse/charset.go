package parse

import "github.com/homoiconic-lang/core"

// Charset matching delegates directly to core.Series's BITSET! storage
// (core/series.go) rather than maintaining a parallel bitmap type: the
// teacher's charset (vm_charset.go) is a standalone bitmap distinct from
// its value model, but this interpreter already has a BITSET! series
// that is exactly that bitmap, so PARSE charset rules reuse it instead
// of duplicating the representation.

// CharsetHasRune reports whether r belongs to a BITSET! rule operand,
// used when the PARSE input is a string (§4.3 rule token
// "DATATYPE!/TYPESET!: element kind membership" extended to character
// sets for string input).
func CharsetHasRune(bitset *core.Series, r rune) bool {
	return bitset.BitsetTest(int(r))
}

// KindInTypeset reports whether a value's Kind is a member of a
// TYPESET! rule operand, used when the PARSE input is a block.
func KindInTypeset(typeset *core.Series, k core.Kind) bool {
	return typeset.BitsetTest(int(k))
}
