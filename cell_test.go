package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_InlinePayloads(t *testing.T) {
	t.Run("integer round trip", func(t *testing.T) {
		c := NewInteger(-42)
		assert.Equal(t, KindInteger, c.Kind)
		assert.Equal(t, int64(-42), c.AsInteger())
	})

	t.Run("decimal round trip", func(t *testing.T) {
		c := NewDecimal(3.5)
		assert.Equal(t, KindDecimal, c.Kind)
		assert.Equal(t, 3.5, c.AsDecimal())
	})

	t.Run("char round trip", func(t *testing.T) {
		c := NewChar('λ')
		assert.Equal(t, KindChar, c.Kind)
		assert.Equal(t, 'λ', c.AsChar())
	})

	t.Run("logic round trip", func(t *testing.T) {
		assert.True(t, NewLogic(true).AsLogic())
		assert.False(t, NewLogic(false).AsLogic())
	})

	t.Run("datatype round trip", func(t *testing.T) {
		c := NewDatatype(KindBlock)
		assert.Equal(t, KindBlock, c.AsDatatype())
	})

	t.Run("wrong-kind accessor panics", func(t *testing.T) {
		assert.Panics(t, func() { NewBlank().AsInteger() })
		assert.Panics(t, func() { NewInteger(1).AsDecimal() })
		assert.Panics(t, func() { NewInteger(1).AsChar() })
		assert.Panics(t, func() { NewInteger(1).AsLogic() })
		assert.Panics(t, func() { NewInteger(1).AsDatatype() })
	})
}

func TestCell_EndNullVoid(t *testing.T) {
	assert.True(t, EndCell.IsEnd())
	assert.False(t, NulledCell.IsEnd())

	assert.True(t, NulledCell.IsNulled())
	assert.False(t, EndCell.IsNulled())

	assert.NotEqual(t, VoidCell.Kind, EndCell.Kind)
	assert.NotEqual(t, VoidCell.Kind, NulledCell.Kind)
}

func TestCell_QuoteUnquote(t *testing.T) {
	base := NewInteger(7)

	once := base.Quote()
	require.Equal(t, KindQuoted, once.Kind)
	assert.Equal(t, uint8(1), once.QuoteDepth)
	assert.Equal(t, KindInteger, once.Unescaped())

	twice := once.Quote()
	assert.Equal(t, uint8(2), twice.QuoteDepth)
	assert.Equal(t, KindInteger, twice.Unescaped())

	back := twice.Unquote()
	assert.Equal(t, uint8(1), back.QuoteDepth)
	assert.Equal(t, KindQuoted, back.Kind)

	unwrapped := back.Unquote()
	assert.Equal(t, uint8(0), unwrapped.QuoteDepth)
	assert.Equal(t, KindInteger, unwrapped.Kind)
	assert.Equal(t, int64(7), unwrapped.AsInteger())
}

func TestCell_UnquoteAtZeroDepthPanics(t *testing.T) {
	assert.Panics(t, func() { NewInteger(1).Unquote() })
}

func TestCell_IsTruthy(t *testing.T) {
	tests := []struct {
		name     string
		c        Cell
		expected bool
	}{
		{"blank is falsy", NewBlank(), false},
		{"nulled is falsy", NulledCell, false},
		{"end is falsy", EndCell, false},
		{"false logic is falsy", NewLogic(false), false},
		{"true logic is truthy", NewLogic(true), true},
		{"integer zero is truthy", NewInteger(0), true},
		{"text is truthy", Cell{Kind: KindText}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.c.IsTruthy())
		})
	}
}

func TestBindingID_IsUnbound(t *testing.T) {
	assert.True(t, Unbound.IsUnbound())
	assert.True(t, BindingID{}.IsUnbound())
	assert.False(t, BindingID{Context: NodeID(1), Index: 2}.IsUnbound())
}
