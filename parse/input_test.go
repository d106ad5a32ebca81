package parse

import (
	"testing"

	"github.com/homoiconic-lang/core"
	"github.com/stretchr/testify/assert"
)

func TestCursor_PeekCellAndAdvance(t *testing.T) {
	s := charSeries('a', 'b', 'c')
	c := NewCursor(s, 0)

	assert.False(t, c.AtEnd())
	assert.Equal(t, 'a', c.PeekCell().AsChar())

	c = c.Advance(1)
	assert.Equal(t, 'b', c.PeekCell().AsChar())

	c = c.Seek(2)
	assert.Equal(t, 'c', c.PeekCell().AsChar())

	c = c.Advance(1)
	assert.True(t, c.AtEnd())
	assert.Equal(t, core.EndCell, c.PeekCell())
}

func TestCursor_PeekRune(t *testing.T) {
	s := core.NewStringSeries("abc")
	c := NewCursor(s, 0)

	r, ok := c.PeekRune()
	assert.True(t, ok)
	assert.Equal(t, 'a', r)

	c = c.Seek(3)
	_, ok = c.PeekRune()
	assert.False(t, ok)
}

func TestCursor_PeekByte(t *testing.T) {
	s := core.NewBinarySeries([]byte{1, 2, 3})
	c := NewCursor(s, 1)

	b, ok := c.PeekByte()
	assert.True(t, ok)
	assert.Equal(t, byte(2), b)

	assert.EqualValues(t, 3, c.Len())
}
