package parse

import (
	"testing"

	"github.com/homoiconic-lang/core"
	"github.com/stretchr/testify/assert"
)

func TestCharsetHasRune(t *testing.T) {
	bitset := core.NewBitsetSeries(256)
	bitset.BitsetSet('a')
	bitset.BitsetSet('z')

	assert.True(t, CharsetHasRune(bitset, 'a'))
	assert.True(t, CharsetHasRune(bitset, 'z'))
	assert.False(t, CharsetHasRune(bitset, 'm'))
}

func TestKindInTypeset(t *testing.T) {
	typeset := core.NewBitsetSeries(256)
	typeset.BitsetSet(int(core.KindInteger))

	assert.True(t, KindInTypeset(typeset, core.KindInteger))
	assert.False(t, KindInTypeset(typeset, core.KindText))
}
