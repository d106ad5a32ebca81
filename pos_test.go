package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineIndex_LocationAt(t *testing.T) {
	input := []byte("one\ntwo\nthree")
	li := NewLineIndex(input)

	tests := []struct {
		name       string
		cursor     int
		line, col  int32
	}{
		{"start of first line", 0, 1, 1},
		{"mid first line", 1, 1, 2},
		{"start of second line", 4, 2, 1},
		{"mid second line", 5, 2, 2},
		{"start of third line", 8, 3, 1},
		{"end of input", len(input), 3, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := li.LocationAt(tt.cursor)
			assert.Equal(t, tt.line, loc.Line)
			assert.Equal(t, tt.col, loc.Column)
		})
	}
}

func TestLineIndex_LocationAtClampsOutOfRange(t *testing.T) {
	input := []byte("abc")
	li := NewLineIndex(input)

	assert.Equal(t, int32(1), li.LocationAt(-5).Line)
	loc := li.LocationAt(1000)
	assert.Equal(t, len(input), loc.Cursor)
}

func TestLineIndex_LineText(t *testing.T) {
	input := []byte("first\nsecond\nthird")
	li := NewLineIndex(input)

	assert.Equal(t, "first", li.LineText(0))
	assert.Equal(t, "second", li.LineText(6))
	assert.Equal(t, "third", li.LineText(len(input)))
}

func TestLineIndex_Span(t *testing.T) {
	input := []byte("abc\ndef")
	li := NewLineIndex(input)
	sp := li.Span(0, 3)
	assert.Equal(t, int32(1), sp.Start.Line)
	assert.Equal(t, int32(1), sp.Start.Column)
	assert.Equal(t, int32(1), sp.End.Line)
	assert.Equal(t, int32(4), sp.End.Column)
}

func TestSpan_String(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		expected string
	}{
		{
			name:     "same point on line 1",
			span:     NewSpan(Location{Line: 1, Column: 3}, Location{Line: 1, Column: 3}),
			expected: "3",
		},
		{
			name:     "range on line 1",
			span:     NewSpan(Location{Line: 1, Column: 3}, Location{Line: 1, Column: 7}),
			expected: "3..7",
		},
		{
			name:     "same point off line 1",
			span:     NewSpan(Location{Line: 4, Column: 2}, Location{Line: 4, Column: 2}),
			expected: "4:2",
		},
		{
			name:     "range across lines",
			span:     NewSpan(Location{Line: 2, Column: 1}, Location{Line: 3, Column: 5}),
			expected: "2:1..3:5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.span.String())
		})
	}
}
