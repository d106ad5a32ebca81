package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnfix_SimpleCall(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "3 + 4")
	assert.Equal(t, int64(7), out.AsInteger())
}

func TestEnfix_LeftToRightChaining(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "2 * 3 + 4")
	assert.Equal(t, int64(10), out.AsInteger(), "(2 * 3) + 4, not 2 * (3 + 4)")
}

func TestEnfix_NonActionWordDoesNotChain(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "x: 10 x")
	assert.Equal(t, int64(10), out.AsInteger())
}

func TestEnfix_PrefixActionNotTreatedAsEnfix(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "not false")
	assert.True(t, out.AsLogic())
}

func TestEnfix_ComparisonOperator(t *testing.T) {
	vm := NewInterpreter(nil)
	lib := newTestLib(vm)

	out := evalText(t, vm, lib, "1 < 2")
	assert.True(t, out.AsLogic())
}
