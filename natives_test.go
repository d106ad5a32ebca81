package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNatives_EqualCompares(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "3 = 3")
	assert.True(t, out.AsLogic())

	out = evalText(t, vm, lib, "3 = 4")
	assert.False(t, out.AsLogic())
}

func TestNatives_MultiplicationAndSubtraction(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	assert.Equal(t, int64(20), evalText(t, vm, lib, "4 * 5").AsInteger())
	assert.Equal(t, int64(-1), evalText(t, vm, lib, "4 - 5").AsInteger())
}

func TestNatives_TypeErrorOnNonIntegerOperand(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	scanner := NewScanner([]byte(`"x" + 1`), "<test>", vm.Config, vm.Symbols, vm.Arena, vm.Stack)
	series, err := scanner.ScanAll()
	require.NoError(t, err)
	Bind(vm, series, lib)

	_, err = vm.Run(context.Background(), series, vm.trackContext(lib))
	require.Error(t, err)
	ce, ok := err.(CoreError)
	require.True(t, ok)
	assert.Equal(t, ErrType, ce.Kind())
}

func TestNatives_ReturnThrowsToTopLevel(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	scanner := NewScanner([]byte("return 5"), "<test>", vm.Config, vm.Symbols, vm.Arena, vm.Stack)
	series, err := scanner.ScanAll()
	require.NoError(t, err)
	Bind(vm, series, lib)

	_, err = vm.Run(context.Background(), series, vm.trackContext(lib))
	require.Error(t, err, "an unhandled RETURN throw reaching top level must surface as an error")
}

func TestNatives_IfFalseConditionYieldsNull(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "if false [1]")
	assert.True(t, out.IsNulled())
}

func TestNatives_ElseRunsOnNull(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "if false [10] else [20]")
	assert.Equal(t, int64(20), out.AsInteger())
}

func TestNatives_ElseSkipsOnNonNull(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "if true [10] else [20]")
	assert.Equal(t, int64(10), out.AsInteger())
}

func TestNatives_ElseDefersPastArgumentPosition(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "x: if false [1] else [2]")
	assert.Equal(t, int64(2), out.AsInteger())
}

func TestNatives_ThenRunsOnNonNull(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "if true [1] then [2]")
	assert.Equal(t, int64(2), out.AsInteger())
}

func TestNatives_CatchLoopThrow(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "catch [loop 10 [throw 'done]]")
	assert.Equal(t, vm.Symbols.Intern("done"), out.First)
}

func TestNatives_LoopBreakStopsEarly(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "x: 0 loop 10 [x: x + 1 if x = 3 [break]] x")
	assert.Equal(t, int64(3), out.AsInteger())
}
