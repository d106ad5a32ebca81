package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalText(t *testing.T, vm *Interpreter, lib *Context, text string) Cell {
	t.Helper()
	scanner := NewScanner([]byte(text), "<test>", vm.Config, vm.Symbols, vm.Arena, vm.Stack)
	series, err := scanner.ScanAll()
	require.NoError(t, err)
	Bind(vm, series, lib)
	out, err := vm.Run(context.Background(), series, vm.trackContext(lib))
	require.NoError(t, err)
	return out
}

func newTestLib(vm *Interpreter) *Context {
	lib := NewContext(16)
	RegisterNatives(vm, lib)
	return lib
}

func TestInterpreter_RunEnfixArithmetic(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "1 + 2")
	assert.Equal(t, int64(3), out.AsInteger())
}

func TestInterpreter_RunEnfixChaining(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "1 + 2 * 3")
	assert.Equal(t, int64(9), out.AsInteger(), "left-to-right enfix chaining: (1 + 2) * 3")
}

func TestInterpreter_RunComparisonAndNot(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "not 1 < 2")
	assert.False(t, out.AsLogic())
}

func TestInterpreter_RunIfEither(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "either 1 < 2 [10] [20]")
	assert.Equal(t, int64(10), out.AsInteger())

	out = evalText(t, vm, lib, "if 1 < 0 [99]")
	assert.True(t, out.IsNulled())
}

func TestInterpreter_RunDivisionByZero(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	scanner := NewScanner([]byte("1 / 0"), "<test>", vm.Config, vm.Symbols, vm.Arena, vm.Stack)
	series, err := scanner.ScanAll()
	require.NoError(t, err)
	Bind(vm, series, lib)

	_, err = vm.Run(context.Background(), series, vm.trackContext(lib))
	require.Error(t, err)
	ce, ok := err.(CoreError)
	require.True(t, ok)
	assert.Equal(t, ErrMath, ce.Kind())
}

func TestInterpreter_HaltStopsEvaluation(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	scanner := NewScanner([]byte("1 + 2"), "<test>", vm.Config, vm.Symbols, vm.Arena, vm.Stack)
	series, err := scanner.ScanAll()
	require.NoError(t, err)
	Bind(vm, series, lib)

	vm.Halt()
	_, err = vm.Run(context.Background(), series, vm.trackContext(lib))
	require.Error(t, err)
	assert.Implements(t, (*CoreError)(nil), err)
}

func TestInterpreter_RunSetWordAndWordLookup(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "x: 5 x + 1")
	assert.Equal(t, int64(6), out.AsInteger())
}

func TestInterpreter_CommentIsInvisible(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "1 comment 999 + 2")
	assert.Equal(t, int64(3), out.AsInteger(), "comment must not interrupt the enfix chain between 1 and +")
}
