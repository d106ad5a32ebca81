package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArraySeriesOf(cells ...Cell) *Series {
	s := NewArraySeries()
	for _, c := range cells {
		s.AppendCell(c)
	}
	return s
}

func TestArrayFeed_WalksInOrder(t *testing.T) {
	series := newArraySeriesOf(NewInteger(1), NewInteger(2), NewInteger(3))
	f := NewArrayFeed(series, NilNode)

	assert.False(t, f.IsVariadic())
	assert.False(t, f.AtEnd())
	assert.Equal(t, int64(1), f.Current().AsInteger())

	f.Next()
	assert.Equal(t, int64(2), f.Current().AsInteger())
	assert.Equal(t, int64(1), f.Lookback().AsInteger())

	f.Next()
	assert.Equal(t, int64(3), f.Current().AsInteger())

	f.Next()
	assert.True(t, f.AtEnd())
	assert.True(t, f.Current().IsEnd())
}

func TestArrayFeed_EmptySeriesAtEnd(t *testing.T) {
	f := NewArrayFeed(NewArraySeries(), NilNode)
	assert.True(t, f.AtEnd())
}

func TestArrayFeed_Index(t *testing.T) {
	series := newArraySeriesOf(NewInteger(1), NewInteger(2))
	f := NewArrayFeed(series, NilNode)
	assert.Equal(t, int32(0), f.Index())
	f.Next()
	assert.Equal(t, int32(1), f.Index())
}

func TestArrayFeed_PushPending(t *testing.T) {
	series := newArraySeriesOf(NewInteger(1), NewInteger(2))
	f := NewArrayFeed(series, NilNode)

	f.PushPending(NewInteger(99))
	assert.Equal(t, int64(99), f.Current().AsInteger())

	next := f.Next()
	assert.Equal(t, int64(1), next.AsInteger(), "index must not have advanced while pending was consumed")
}

func TestArrayFeed_CachedGotten(t *testing.T) {
	series := newArraySeriesOf(NewInteger(1))
	f := NewArrayFeed(series, NilNode)

	_, ok := f.CachedGotten(NodeID(5))
	assert.False(t, ok)

	cell := NewInteger(42)
	f.SetCachedGotten(NodeID(5), &cell)
	got, ok := f.CachedGotten(NodeID(5))
	require.True(t, ok)
	assert.Equal(t, int64(42), got.AsInteger())

	_, ok = f.CachedGotten(NodeID(6))
	assert.False(t, ok, "cache must be keyed by symbol")
}

type sliceVariadicSource struct {
	items []VariadicItem
	pos   int
}

func (s *sliceVariadicSource) Next() (VariadicItem, bool) {
	if s.pos >= len(s.items) {
		return VariadicItem{}, false
	}
	item := s.items[s.pos]
	s.pos++
	return item, true
}

func TestVariadicFeed_WalksSplicedCells(t *testing.T) {
	a, b := NewInteger(1), NewInteger(2)
	src := &sliceVariadicSource{items: []VariadicItem{
		{Cell: &a, EvalFlip: true},
		{Cell: &b, EvalFlip: true},
	}}

	f := NewVariadicFeed(src, NilNode)
	assert.True(t, f.IsVariadic())
	assert.Equal(t, int64(1), f.Current().AsInteger())

	f.Next()
	assert.Equal(t, int64(2), f.Current().AsInteger())

	f.Next()
	assert.True(t, f.AtEnd())
}

func TestVariadicFeed_Reify(t *testing.T) {
	a, b, c := NewInteger(1), NewInteger(2), NewInteger(3)
	src := &sliceVariadicSource{items: []VariadicItem{{Cell: &b}, {Cell: &c}}}

	f := NewVariadicFeed(src, NilNode)
	require.False(t, f.AtEnd())
	assert.True(t, f.IsVariadic())

	// Current is `a`'s value only if fetched via PushPending; here Current
	// is whatever the source yielded first (b), matching normal fetch.
	_ = a

	arena := newNodeArena()
	st := newSymbolTable(arena)
	f.Reify(st, arena)

	assert.False(t, f.IsVariadic(), "Reify must convert the feed to array-backed")
	assert.False(t, f.AtEnd())
	assert.Equal(t, int64(2), f.Current().AsInteger())

	f.Next()
	assert.Equal(t, int64(3), f.Current().AsInteger())

	f.Next()
	assert.True(t, f.AtEnd())
}

func TestVariadicFeed_ReifyOnExhaustedFeed(t *testing.T) {
	src := &sliceVariadicSource{}
	f := NewVariadicFeed(src, NilNode)
	require.True(t, f.AtEnd())

	arena := newNodeArena()
	st := newSymbolTable(arena)
	f.Reify(st, arena)
	assert.True(t, f.AtEnd())
}
