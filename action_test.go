package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAction_IsEnfixIsInvisible(t *testing.T) {
	enfix := NewNative(NodeID(1), nil, ActionFlagEnfix, nil)
	assert.True(t, enfix.IsEnfix())
	assert.False(t, enfix.IsInvisible())

	invisible := NewNative(NodeID(2), nil, ActionFlagInvisible, nil)
	assert.False(t, invisible.IsEnfix())
	assert.True(t, invisible.IsInvisible())

	plain := NewNative(NodeID(3), nil, 0, nil)
	assert.False(t, plain.IsEnfix())
	assert.False(t, plain.IsInvisible())
}

func TestAction_ParamCount_ExcludesSynthesizedReturn(t *testing.T) {
	act := NewNative(NodeID(1), []Param{
		{Symbol: NodeID(10), Class: ParamNormal},
		{Symbol: NodeID(11), Class: ParamNormal},
		{Symbol: NodeID(12), Class: ParamReturn},
	}, 0, nil)

	assert.Equal(t, 2, act.ParamCount())
}

func TestAction_ParamCount_Empty(t *testing.T) {
	act := NewNative(NodeID(1), nil, 0, nil)
	assert.Equal(t, 0, act.ParamCount())
}

func TestActionFlags_Has(t *testing.T) {
	flags := ActionFlagEnfix | ActionFlagNative
	assert.True(t, flags.Has(ActionFlagEnfix))
	assert.True(t, flags.Has(ActionFlagNative))
	assert.False(t, flags.Has(ActionFlagInvisible))
	assert.False(t, flags.Has(ActionFlagDefer))
}
