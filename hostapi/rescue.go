package hostapi

import (
	"fmt"

	"github.com/homoiconic-lang/core"
)

// Rescue runs fn under a recovered-panic/error trap (§4.5 "Rescue runs a
// host Go callback under a recovered-panic/error trap"). A Go panic or a
// returned CoreError is converted into a rooted ERROR!-shaped context
// handle; a throw that escapes fn's own evaluation (rather than being
// caught inside it) is re-raised to Rescue's own caller rather than
// swallowed, since only CATCH should ever consume a throw; any other
// non-nil result is rooted fresh and returned as a Handle.
func Rescue(vm *core.Interpreter, fn func() (core.Cell, error)) (result *Handle, errHandle *Handle, err error) {
	defer func() {
		if r := recover(); r != nil {
			errHandle = errorHandle(vm, fmt.Sprintf("%v", r))
			result = nil
		}
	}()

	value, callErr := fn()
	if callErr != nil {
		if ce, ok := callErr.(core.CoreError); ok {
			errHandle = errorHandle(vm, ce.Error())
			return nil, errHandle, nil
		}
		// An error that isn't a CoreError (e.g. an escaping throw wrapped
		// by the caller) is not something Rescue can classify into an
		// ERROR! object; re-raise it unchanged.
		return nil, nil, callErr
	}

	return NewHandle(vm, value), nil, nil
}

// errorHandle builds a minimal ERROR!-shaped context (§3.6 "error objects
// are just contexts") carrying a single "message" field, rooted as a
// Handle.
func errorHandle(vm *core.Interpreter, message string) *Handle {
	ctx := core.NewContext(1)
	ctx.SetArchetype(core.Cell{Kind: core.KindFrame})
	msgSym := vm.Symbols.Intern("message")
	s := core.NewStringSeries(message)
	node := vm.Arena.AllocSeries(s)
	vm.Arena.SetFlags(node, core.NodeFlagManaged)
	ctx.AddSlot(msgSym, core.Cell{Kind: core.KindText, First: node})
	ctxNode := vm.Arena.AllocSeries(ctx.Series())
	vm.Arena.SetFlags(ctxNode, core.NodeFlagManaged)
	return NewHandle(vm, core.Cell{Kind: core.KindFrame, First: ctxNode})
}
