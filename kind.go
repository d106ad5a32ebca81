package core

// Kind is the tag byte that occupies the first field of every Cell (the
// "kind byte" of §3.2). It is deliberately a small integer, not an
// interface type, so that dispatch tables (mold, compare, evaluator
// per-kind handlers) can be flat arrays indexed by Kind instead of a type
// switch or class hierarchy.
type Kind uint8

const (
	KindEnd Kind = iota
	KindNulled
	KindVoid
	KindBlank
	KindLogic
	KindInteger
	KindDecimal
	KindChar
	KindText
	KindBinary
	KindBlock
	KindGroup
	KindPath
	KindWord
	KindSetWord
	KindGetWord
	KindLitWord
	KindRefinement
	KindTag
	KindFile
	KindURL
	KindEmail
	KindBitset
	KindTypeset
	KindDatatype
	KindAction
	KindFrame
	KindHandle
	KindQuoted
	kindCount
)

var kindNames = [kindCount]string{
	KindEnd:        "end",
	KindNulled:     "nulled",
	KindVoid:       "void",
	KindBlank:      "blank",
	KindLogic:      "logic",
	KindInteger:    "integer",
	KindDecimal:    "decimal",
	KindChar:       "char",
	KindText:       "text",
	KindBinary:     "binary",
	KindBlock:      "block",
	KindGroup:      "group",
	KindPath:       "path",
	KindWord:       "word",
	KindSetWord:    "set-word",
	KindGetWord:    "get-word",
	KindLitWord:    "lit-word",
	KindRefinement: "refinement",
	KindTag:        "tag",
	KindFile:       "file",
	KindURL:        "url",
	KindEmail:      "email",
	KindBitset:     "bitset",
	KindTypeset:    "typeset",
	KindDatatype:   "datatype",
	KindAction:     "action",
	KindFrame:      "frame",
	KindHandle:     "handle",
	KindQuoted:     "quoted",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown-kind"
}

// inertKinds records whether a value of this kind evaluates to itself
// (§4.2 "Value semantics by kind" / Inert list). Indexed as a flat table
// per the Design Notes "dynamic dispatch on kind byte" guidance, rather
// than a switch repeated at every call site.
var inertKinds = [kindCount]bool{
	KindBlank:      true,
	KindLogic:      true,
	KindInteger:    true,
	KindDecimal:    true,
	KindChar:       true,
	KindText:       true,
	KindBinary:     true,
	KindBitset:     true,
	KindBlock:      true,
	KindTag:        true,
	KindFile:       true,
	KindURL:        true,
	KindEmail:      true,
	KindDatatype:   true,
	KindTypeset:    true,
	KindHandle:     true,
	KindRefinement: true,
}

// IsInert reports whether values of this kind copy to `out` unevaluated
// (§4.2). QUOTED values at quote depth >= 1 are inert regardless of their
// unescaped kind; callers should check Cell.QuoteDepth before consulting
// this table for a QUOTED cell.
func (k Kind) IsInert() bool {
	return int(k) < len(inertKinds) && inertKinds[k]
}

// IsWordFamily reports whether this kind carries a Binding (§3.2).
func (k Kind) IsWordFamily() bool {
	switch k {
	case KindWord, KindSetWord, KindGetWord, KindLitWord, KindRefinement:
		return true
	default:
		return false
	}
}

// IsPathFamily reports whether this kind is one of the PATH! variants.
func (k Kind) IsPathFamily() bool {
	return k == KindPath
}

// HoldsNode reports whether this kind's payload is carried by one or two
// node references (FIRST_IS_NODE/SECOND_IS_NODE) rather than inline bits.
func (k Kind) HoldsNode() bool {
	switch k {
	case KindText, KindBinary, KindBlock, KindGroup, KindPath,
		KindWord, KindSetWord, KindGetWord, KindLitWord, KindRefinement,
		KindTag, KindFile, KindURL, KindEmail, KindBitset, KindTypeset,
		KindAction, KindFrame, KindHandle, KindQuoted:
		return true
	default:
		return false
	}
}
