package parse

import "github.com/homoiconic-lang/core"

// Cursor addresses one position in a PARSE input any-series (§4.3
// "Inputs"): an array, string, or binary, each advancing and comparing
// differently. Grounded on the teacher's MemInput (vm_input.go): a
// position plus Peek/Advance/Seek, generalized from byte/rune addressing
// to whichever element width the backing core.Series uses.
type Cursor struct {
	Series *core.Series
	Index  int32
}

func NewCursor(s *core.Series, index int32) Cursor { return Cursor{Series: s, Index: index} }

func (c Cursor) AtEnd() bool { return c.Series.Tail(c.Index) }

// PeekCell returns the array element under the cursor (BLOCK!/GROUP!
// input).
func (c Cursor) PeekCell() core.Cell {
	if c.AtEnd() {
		return core.EndCell
	}
	return *c.Series.At(c.Index)
}

// PeekRune returns the string character under the cursor (TEXT! input).
func (c Cursor) PeekRune() (rune, bool) {
	if c.AtEnd() {
		return 0, false
	}
	return c.Series.RuneAt(c.Index), true
}

// PeekByte returns the binary byte under the cursor (BINARY! input).
func (c Cursor) PeekByte() (byte, bool) {
	if c.AtEnd() {
		return 0, false
	}
	return c.Series.ByteAt(c.Index), true
}

func (c Cursor) Advance(n int32) Cursor { return Cursor{Series: c.Series, Index: c.Index + n} }

func (c Cursor) Seek(index int32) Cursor { return Cursor{Series: c.Series, Index: index} }

func (c Cursor) Len() int32 { return int32(c.Series.Len()) }
