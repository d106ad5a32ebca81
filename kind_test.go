package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		name     string
		k        Kind
		expected string
	}{
		{"end", KindEnd, "end"},
		{"integer", KindInteger, "integer"},
		{"block", KindBlock, "block"},
		{"quoted", KindQuoted, "quoted"},
		{"out of range", Kind(250), "unknown-kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.k.String())
		})
	}
}

func TestKind_IsInert(t *testing.T) {
	tests := []struct {
		name     string
		k        Kind
		expected bool
	}{
		{"integer is inert", KindInteger, true},
		{"text is inert", KindText, true},
		{"word is not inert", KindWord, false},
		{"setword is not inert", KindSetWord, false},
		{"action is not inert", KindAction, false},
		{"path is not inert", KindPath, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.k.IsInert())
		})
	}
}

func TestKind_IsWordFamily(t *testing.T) {
	wordKinds := []Kind{KindWord, KindSetWord, KindGetWord, KindLitWord, KindRefinement}
	for _, k := range wordKinds {
		assert.True(t, k.IsWordFamily(), "expected %s to be word family", k)
	}

	nonWordKinds := []Kind{KindInteger, KindBlock, KindPath, KindAction}
	for _, k := range nonWordKinds {
		assert.False(t, k.IsWordFamily(), "expected %s not to be word family", k)
	}
}

func TestKind_IsPathFamily(t *testing.T) {
	assert.True(t, KindPath.IsPathFamily())
	assert.False(t, KindWord.IsPathFamily())
	assert.False(t, KindBlock.IsPathFamily())
}

func TestKind_HoldsNode(t *testing.T) {
	tests := []struct {
		name     string
		k        Kind
		expected bool
	}{
		{"integer inline", KindInteger, false},
		{"logic inline", KindLogic, false},
		{"char inline", KindChar, false},
		{"datatype inline", KindDatatype, false},
		{"text holds node", KindText, true},
		{"block holds node", KindBlock, true},
		{"word holds node", KindWord, true},
		{"action holds node", KindAction, true},
		{"frame holds node", KindFrame, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.k.HoldsNode())
		})
	}
}
