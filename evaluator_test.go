package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_PathPicksBlockElement(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "blk: [10 20 30] blk/2")
	assert.Equal(t, int64(20), out.AsInteger())
}

func TestEvaluator_PathPicksTextCharacter(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, `s: "abc" s/1`)
	assert.Equal(t, 'a', out.AsChar())
}

func TestEvaluator_PathPickOutOfRangeErrors(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	scanner := NewScanner([]byte("blk: [1 2] blk/9"), "<test>", vm.Config, vm.Symbols, vm.Arena, vm.Stack)
	series, err := scanner.ScanAll()
	require.NoError(t, err)
	Bind(vm, series, lib)

	_, err = vm.Run(context.Background(), series, vm.trackContext(lib))
	require.Error(t, err)
	ce, ok := err.(CoreError)
	require.True(t, ok)
	assert.Equal(t, ErrBounds, ce.Kind())
}

func TestEvaluator_PathDispatchesActionWithRefinement(t *testing.T) {
	vm := NewInterpreter(nil)
	valueSym := vm.Symbols.Intern("value")
	flagSym := vm.Symbols.Intern("flag")

	action := NewNative(vm.Symbols.Intern("maybe-negate"), []Param{
		{Symbol: valueSym, Class: ParamNormal},
		{Symbol: flagSym, Class: ParamRefinement},
	}, 0, func(f *Frame) error {
		v := f.Varlist.Slot(1).AsInteger()
		if f.Varlist.Slot(2).IsTruthy() {
			v = -v
		}
		*f.Out = NewInteger(v)
		return nil
	})
	actionNode := vm.RegisterAction(action)

	pathSeries := newArraySeriesOf(
		Cell{Kind: KindWord, First: action.Label},
		Cell{Kind: KindRefinement, First: flagSym},
	)
	argSeries := newArraySeriesOf(
		Cell{Kind: KindPath, First: vm.Arena.AllocSeries(pathSeries)},
		NewInteger(5),
	)

	lib := NewContext(4)
	lib.AddSlot(action.Label, Cell{Kind: KindAction, First: actionNode})
	Bind(vm, argSeries, lib)

	feed := NewArrayFeed(argSeries, NilNode)
	out, err := vm.RunFeed(context.Background(), feed)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), out.AsInteger())
}
