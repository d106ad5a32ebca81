package core

import "math"

// BindingID is the weak reference from a WORD-family cell to the context
// in which it resolves (§3.2 "binding"), modeled as a (context-node, slot
// index) pair instead of an owning pointer, per the Design Notes
// "cyclic references" re-architecture: the GC resolves the id on mark
// rather than the cell owning the context.
type BindingID struct {
	Context NodeID
	Index   int32
}

// Unbound is the zero BindingID: a WORD-family cell with no context.
var Unbound = BindingID{}

func (b BindingID) IsUnbound() bool { return b.Context == NilNode }

// CellFlags are the header flags of §3.2.
type CellFlags uint16

const (
	CellFlagNewlineBefore CellFlags = 1 << iota
	CellFlagEvalFlip                // API "evaluator-active" splice marker
	CellFlagUnevaluated
	CellFlagProtected
)

func (f CellFlags) Has(bit CellFlags) bool { return f&bit != 0 }

// Cell is the fixed-width tagged value record of §3.2. Every value in the
// system -- whether sitting in an Array slot, a frame argument slot, or
// the data stack -- is a Cell. Kinds whose payload is "inline" (INTEGER,
// DECIMAL, CHAR, LOGIC, DATATYPE-kind) use Bits; kinds whose payload is
// one or two node references (FIRST_IS_NODE/SECOND_IS_NODE in the source
// tradition) use First/Second.
type Cell struct {
	Kind       Kind
	QuoteDepth uint8
	Flags      CellFlags
	Binding    BindingID

	// Bits carries INTEGER (as int64 bit pattern), DECIMAL (as float64 bit
	// pattern), CHAR (rune), LOGIC (0/1), and DATATYPE-kind payloads
	// inline, with no node allocation.
	Bits uint64

	// First/Second address node-bearing payloads: series node for
	// TEXT!/BINARY!/BLOCK!/GROUP!/PATH!/TAG!/FILE!/URL!/EMAIL!/BITSET!/
	// TYPESET!, symbol node for WORD-family, paramlist/varlist node for
	// ACTION!/FRAME!, handle node for HANDLE!, and (for QUOTED! cells
	// whose quote depth would otherwise require an extra allocation to
	// store only a kind+depth pair) the unescaped payload's own First.
	First  NodeID
	Second NodeID
}

// EndCell is the END sentinel of §3.2: "no value here".
var EndCell = Cell{Kind: KindEnd}

// IsEnd reports whether c denotes "no value here" (§3.2).
func (c Cell) IsEnd() bool { return c.Kind == KindEnd }

// NulledCell is the first-class absence value of §3.2. It must never be
// placed into a user-visible Array; it is legal only in variable slots,
// frame argument slots, and API out-parameters.
var NulledCell = Cell{Kind: KindNulled}

// IsNulled reports whether c is the first-class absence value.
func (c Cell) IsNulled() bool { return c.Kind == KindNulled }

// VoidCell is distinct from both END and NULLED: an evaluation result
// that is "nothing" but was produced by an expression running to
// completion (as opposed to END's "no expression ran at all").
var VoidCell = Cell{Kind: KindVoid}

// Unescaped returns the kind this cell would report if its quote depth
// were zero, without allocating -- the `VAL_UNESCAPED` semantics of §3.2:
// "quoted forms of any kind share the kind byte of their unquoted
// payload."
func (c Cell) Unescaped() Kind {
	if c.Kind == KindQuoted {
		// At every quote depth a QUOTED cell keeps the unescaped
		// payload's Kind in the top byte of Bits (set by Quote); its
		// First/Second are the payload's own.
		return Kind(c.Bits >> 56)
	}
	return c.Kind
}

// Quote returns a copy of c with its quote depth incremented by one,
// without allocating: per §3.2, "an unquoted view is obtained without
// allocation," and the reverse -- adding a quote level -- is likewise
// representation-only.
func (c Cell) Quote() Cell {
	base := c
	if c.Kind != KindQuoted {
		base.Bits = (base.Bits &^ (0xFF << 56)) | uint64(c.Kind)<<56
	}
	base.Kind = KindQuoted
	base.QuoteDepth = c.QuoteDepth + 1
	return base
}

// Unquote returns a copy of c with its quote depth decremented by one. It
// panics if c is not quoted; callers should check QuoteDepth > 0 first.
func (c Cell) Unquote() Cell {
	if c.QuoteDepth == 0 {
		panic("core: Unquote of a cell at quote depth 0")
	}
	out := c
	out.QuoteDepth--
	if out.QuoteDepth == 0 {
		out.Kind = Kind(c.Bits >> 56)
		out.Bits &^= 0xFF << 56
	}
	return out
}

// --- inline-payload constructors/accessors ---

func NewInteger(v int64) Cell {
	return Cell{Kind: KindInteger, Bits: uint64(v)}
}

func (c Cell) AsInteger() int64 {
	if c.Kind != KindInteger {
		panic("core: AsInteger on non-INTEGER! cell")
	}
	return int64(c.Bits)
}

func NewDecimal(v float64) Cell {
	return Cell{Kind: KindDecimal, Bits: math.Float64bits(v)}
}

func (c Cell) AsDecimal() float64 {
	if c.Kind != KindDecimal {
		panic("core: AsDecimal on non-DECIMAL! cell")
	}
	return math.Float64frombits(c.Bits)
}

func NewChar(r rune) Cell {
	return Cell{Kind: KindChar, Bits: uint64(r)}
}

func (c Cell) AsChar() rune {
	if c.Kind != KindChar {
		panic("core: AsChar on non-CHAR! cell")
	}
	return rune(c.Bits)
}

func NewLogic(v bool) Cell {
	if v {
		return Cell{Kind: KindLogic, Bits: 1}
	}
	return Cell{Kind: KindLogic, Bits: 0}
}

func (c Cell) AsLogic() bool {
	if c.Kind != KindLogic {
		panic("core: AsLogic on non-LOGIC! cell")
	}
	return c.Bits != 0
}

func NewBlank() Cell { return Cell{Kind: KindBlank} }

func NewDatatype(k Kind) Cell {
	return Cell{Kind: KindDatatype, Bits: uint64(k)}
}

func (c Cell) AsDatatype() Kind {
	if c.Kind != KindDatatype {
		panic("core: AsDatatype on non-DATATYPE! cell")
	}
	return Kind(c.Bits)
}

// IsTruthy implements Rebol-family "everything but BLANK!/NULLED/false
// LOGIC! is truthy" semantics, used by the evaluator's conditional natives
// and PARSE's GROUP! result handling.
func (c Cell) IsTruthy() bool {
	switch c.Kind {
	case KindBlank, KindNulled, KindEnd:
		return false
	case KindLogic:
		return c.AsLogic()
	default:
		return true
	}
}
