package hostapi

import (
	"errors"
	"testing"

	"github.com/homoiconic-lang/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRescue_SuccessReturnsHandle(t *testing.T) {
	vm := core.NewInterpreter(nil)

	result, errHandle, err := Rescue(vm, func() (core.Cell, error) {
		return core.NewInteger(7), nil
	})

	require.NoError(t, err)
	assert.Nil(t, errHandle)
	require.NotNil(t, result)
	assert.Equal(t, int64(7), result.Value().AsInteger())
}

func TestRescue_CoreErrorBecomesErrorHandle(t *testing.T) {
	vm := core.NewInterpreter(nil)

	result, errHandle, err := Rescue(vm, func() (core.Cell, error) {
		return core.Cell{}, core.NewTypeError("expected integer", core.Span{})
	})

	require.NoError(t, err)
	assert.Nil(t, result)
	require.NotNil(t, errHandle)

	v := errHandle.Value()
	require.Equal(t, core.KindFrame, v.Kind)
	s := vm.Arena.Series(v.First)
	require.Equal(t, 2, s.Len(), "archetype slot plus one message slot")
	assert.Equal(t, core.KindText, s.At(1).Kind)
}

func TestRescue_PanicBecomesErrorHandle(t *testing.T) {
	vm := core.NewInterpreter(nil)

	result, errHandle, err := Rescue(vm, func() (core.Cell, error) {
		panic("unexpected state")
	})

	require.NoError(t, err)
	assert.Nil(t, result)
	require.NotNil(t, errHandle)
	assert.Equal(t, core.KindFrame, errHandle.Value().Kind)
}

func TestRescue_NonCoreErrorEscapesUnchanged(t *testing.T) {
	vm := core.NewInterpreter(nil)
	sentinel := errors.New("escaping throw")

	result, errHandle, err := Rescue(vm, func() (core.Cell, error) {
		return core.Cell{}, sentinel
	})

	assert.Nil(t, result)
	assert.Nil(t, errHandle)
	assert.Equal(t, sentinel, err)
}
