package core

// Feed abstracts the evaluator's input source (§4.2 "Feed abstraction"):
// either an array+index+specifier walked in place, or a va_list that
// yields pointers one at a time until an END sentinel. Both shapes cache
// the current value, a "gotten" WORD! lookup, and a lookback cell so the
// evaluator never re-derives them mid-step.
//
// Grounded on the teacher's MemInput (vm_input.go): a cursor over a
// backing buffer with Peek/Read/Advance, generalized from byte/rune
// addressing to Cell addressing, plus the va_list variant the teacher
// has no analogue for (added per §4.2's variadic feed requirement).
type Feed struct {
	// array/index/specifier form.
	array     *Series
	index     int32
	specifier NodeID // binding context cells from this feed inherit

	// va_list form: a callback that returns the next raw pointer
	// argument, or nil at the end. variadic is nil for array-backed
	// feeds.
	variadic VariadicSource

	current    Cell
	atEnd      bool
	gotten     *Cell // cached binding lookup for a WORD! current value
	gottenFor  NodeID
	lookback   Cell
	pending    *Cell // one-cell pushback installed by PushPending
}

// VariadicSource supplies the next raw argument to a va_list-backed feed.
// Each element is one of: an END sentinel (nil, ok=false) or a prebuilt
// Cell (splice) -- the "pointer classification" of §4.1. The feed does
// not scan text: an item without a Cell ends the feed.
type VariadicSource interface {
	Next() (VariadicItem, bool)
}

// VariadicItem is one element of a VariadicSource.
type VariadicItem struct {
	Cell     *Cell  // non-nil for a spliced value
	Text     string // non-empty for UTF-8 source text to scan
	EvalFlip bool   // true if Cell should run through the evaluator rather than being inert-quoted
}

// NewArrayFeed builds a Feed walking series starting at index 0, bound
// under specifier.
func NewArrayFeed(series *Series, specifier NodeID) *Feed {
	f := &Feed{array: series, specifier: specifier}
	f.fetch()
	return f
}

// NewVariadicFeed builds a Feed drawing from src until it yields an END
// item.
func NewVariadicFeed(src VariadicSource, specifier NodeID) *Feed {
	f := &Feed{variadic: src, specifier: specifier}
	f.fetch()
	return f
}

func (f *Feed) IsVariadic() bool { return f.variadic != nil }

// Current returns the feed's current value, or an END cell if the feed
// is exhausted.
func (f *Feed) Current() Cell {
	if f.atEnd {
		return EndCell
	}
	return f.current
}

func (f *Feed) AtEnd() bool { return f.atEnd }

// Index returns an array-backed feed's current position, used by PARSE's
// DO rule to recover how far a single evaluator step advanced the input
// (§4.3 "DO: evaluate one expression from array input"). Meaningless for
// a variadic feed.
func (f *Feed) Index() int32 { return f.index }

// Specifier returns the binding context new WORD-family cells drawn from
// this feed should resolve against.
func (f *Feed) Specifier() NodeID { return f.specifier }

// fetch advances the cached Current() to the feed's next element,
// consulting pending (a one-cell pushback) first.
func (f *Feed) fetch() {
	f.gotten = nil
	f.gottenFor = NilNode

	if f.pending != nil {
		f.current = *f.pending
		f.pending = nil
		f.atEnd = false
		return
	}

	if f.array != nil {
		if f.array.Tail(f.index) {
			f.atEnd = true
			return
		}
		f.current = *f.array.At(f.index)
		f.atEnd = false
		return
	}

	item, ok := f.variadic.Next()
	if !ok {
		f.atEnd = true
		return
	}
	if item.Cell != nil {
		f.current = *item.Cell
		f.atEnd = false
		return
	}
	// An item with no Cell (including a Text-only item, which is not
	// scanned here) ends the feed.
	f.atEnd = true
}

// Next advances the feed past Current and returns the new Current.
func (f *Feed) Next() Cell {
	f.lookback = f.current
	if f.array != nil && !f.atEnd && f.pending == nil {
		f.index++
	}
	f.fetch()
	return f.Current()
}

// Lookback returns the value the feed was on before the last Next call,
// used by SET-WORD!/enfix lookahead bookkeeping.
func (f *Feed) Lookback() Cell { return f.lookback }

// PushPending installs c as the value Current() reports; the value that
// was current is pushed back and is what the following Next() reports,
// without disturbing the underlying array index or va_list position.
func (f *Feed) PushPending(c Cell) {
	if !f.atEnd {
		old := f.current
		f.pending = &old
	}
	f.current = c
	f.atEnd = false
}

// CachedGotten returns the binding lookup cached for the current WORD!
// value, if Current is still the same word the cache was computed for.
func (f *Feed) CachedGotten(symbol NodeID) (*Cell, bool) {
	if f.gotten != nil && f.gottenFor == symbol {
		return f.gotten, true
	}
	return nil, false
}

func (f *Feed) SetCachedGotten(symbol NodeID, cell *Cell) {
	f.gottenFor = symbol
	f.gotten = cell
}

// Reify converts a live va_list-backed feed into an array-backed one
// (§4.2 "Variadic feed reification"): required before the GC marks a
// live feed, since a va_list cannot be rewound. The current value and
// the unread tail are drained eagerly into an Array series; the
// already-consumed portion is dropped without any marker, and sym and
// arena are not used.
func (f *Feed) Reify(sym *symbolTable, arena *nodeArena) {
	if f.variadic == nil {
		return
	}
	out := NewArraySeries()
	if !f.atEnd {
		out.AppendCell(f.current)
	}
	for {
		item, ok := f.variadic.Next()
		if !ok {
			break
		}
		if item.Cell != nil {
			out.AppendCell(*item.Cell)
		}
	}
	f.variadic = nil
	f.array = out
	f.index = 0
	if !f.atEnd {
		f.atEnd = false
	}
}
