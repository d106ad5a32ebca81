package core

// natives.go registers the built-in actions every corescript program can
// call without a user-level DO of a function spec: arithmetic,
// comparison, conditional, and throw/catch/loop control. PARSE is
// registered separately by the parse package. Grounded on the
// Dispatcher shape of action.go/dispatch.go; there is no teacher
// analogue (the PEG generator has no such standard library), so these
// are authored directly against §4.2's action-dispatch contract.

// RegisterNatives installs the standard action set into vm and binds
// each action's word in the given context, the same wiring a host
// program does for its own user-defined words (§3.6 "objects/contexts").
func RegisterNatives(vm *Interpreter, lib *Context) {
	bind := func(name string, params []Param, flags ActionFlags, d Dispatcher) {
		sym := vm.Symbols.Intern(name)
		action := NewNative(sym, params, flags, d)
		action.Label = sym
		lib.AddSlot(sym, vm.ActionValue(action))
	}

	arg := func(name string) Param { return Param{Symbol: vm.Symbols.Intern(name)} }

	bind("+", []Param{arg("a"), arg("b")}, ActionFlagEnfix, nativeAdd)
	bind("-", []Param{arg("a"), arg("b")}, ActionFlagEnfix, nativeSub)
	bind("*", []Param{arg("a"), arg("b")}, ActionFlagEnfix, nativeMul)
	bind("/", []Param{arg("a"), arg("b")}, ActionFlagEnfix, nativeDiv)
	bind("=", []Param{arg("a"), arg("b")}, ActionFlagEnfix, nativeEqual)
	bind("<", []Param{arg("a"), arg("b")}, ActionFlagEnfix, nativeLess)
	bind("not", []Param{arg("value")}, 0, nativeNot)
	bind("if", []Param{arg("condition"), arg("branch")}, 0, nativeIf)
	bind("either", []Param{arg("condition"), arg("true-branch"), arg("false-branch")}, 0, nativeEither)
	bind("return", []Param{arg("value")}, 0, nativeReturn)
	bind("comment", []Param{{Symbol: vm.Symbols.Intern("ignored"), Class: ParamHardQuote}}, ActionFlagInvisible, nativeComment)

	bind("else", []Param{arg("left"), arg("branch")}, ActionFlagEnfix|ActionFlagDefer, nativeElse)
	bind("then", []Param{arg("left"), arg("branch")}, ActionFlagEnfix|ActionFlagDefer, nativeThen)
	bind("also", []Param{arg("left"), arg("branch")}, ActionFlagEnfix|ActionFlagDefer, nativeAlso)

	bind("throw", []Param{arg("value")}, 0, nativeThrow)
	bind("catch", []Param{arg("body")}, 0, nativeCatch)
	bind("loop", []Param{arg("count"), arg("body")}, 0, nativeLoop)
	bind("break", nil, 0, nativeBreak)
	bind("continue", nil, 0, nativeContinue)
	bind("quit", []Param{arg("value")}, 0, nativeQuit)
}

func binaryInts(f *Frame) (int64, int64, bool) {
	a := f.Varlist.Slot(1)
	b := f.Varlist.Slot(2)
	if a.Kind != KindInteger || b.Kind != KindInteger {
		return 0, 0, false
	}
	return a.AsInteger(), b.AsInteger(), true
}

func nativeAdd(f *Frame) error {
	a, b, ok := binaryInts(f)
	if !ok {
		return NewTypeError("+ expects INTEGER! operands", Span{})
	}
	*f.Out = NewInteger(a + b)
	return nil
}

func nativeSub(f *Frame) error {
	a, b, ok := binaryInts(f)
	if !ok {
		return NewTypeError("- expects INTEGER! operands", Span{})
	}
	*f.Out = NewInteger(a - b)
	return nil
}

func nativeMul(f *Frame) error {
	a, b, ok := binaryInts(f)
	if !ok {
		return NewTypeError("* expects INTEGER! operands", Span{})
	}
	*f.Out = NewInteger(a * b)
	return nil
}

func nativeDiv(f *Frame) error {
	a, b, ok := binaryInts(f)
	if !ok {
		return NewTypeError("/ expects INTEGER! operands", Span{})
	}
	if b == 0 {
		return NewMathError("division by zero", Span{})
	}
	*f.Out = NewInteger(a / b)
	return nil
}

func nativeEqual(f *Frame) error {
	a := *f.Varlist.Slot(1)
	b := *f.Varlist.Slot(2)
	*f.Out = NewLogic(cellsEqual(a, b))
	return nil
}

func cellsEqual(a, b Cell) bool {
	return a.Unescaped() == b.Unescaped() && a.Bits == b.Bits && a.First == b.First
}

func nativeLess(f *Frame) error {
	a, b, ok := binaryInts(f)
	if !ok {
		return NewTypeError("< expects INTEGER! operands", Span{})
	}
	*f.Out = NewLogic(a < b)
	return nil
}

func nativeNot(f *Frame) error {
	*f.Out = NewLogic(!f.Varlist.Slot(1).IsTruthy())
	return nil
}

func nativeIf(f *Frame) error {
	cond := f.Varlist.Slot(1)
	branch := f.Varlist.Slot(2)
	if !cond.IsTruthy() {
		*f.Out = NulledCell
		return nil
	}
	return runBranch(f, branch)
}

func nativeEither(f *Frame) error {
	cond := f.Varlist.Slot(1)
	if cond.IsTruthy() {
		return runBranch(f, f.Varlist.Slot(2))
	}
	return runBranch(f, f.Varlist.Slot(3))
}

// runBranch DOes a BLOCK! branch value in place, the same single-
// expression-at-a-time loop Interpreter.Run uses for top-level code.
func runBranch(f *Frame, branch *Cell) error {
	if branch.Kind != KindBlock && branch.Kind != KindGroup {
		*f.Out = *branch
		return nil
	}
	series := f.vm.Arena.Series(branch.First)
	inner := NewArrayFeed(series, branch.Binding.Context)
	*f.Out = EndCell
	for !inner.AtEnd() {
		sub := f.vm.NewFrame(inner, f.Out, f)
		threw, err := sub.Step()
		if err != nil {
			return err
		}
		if threw {
			f.Propagate(sub)
			return nil
		}
	}
	return nil
}

func nativeReturn(f *Frame) error {
	f.Throw(ThrowReturn, *f.Varlist.Slot(1))
	return nil
}

func nativeComment(f *Frame) error {
	return nil
}

// nativeElse implements the DEFER-enfix ELSE of §4.2/§8 scenario 2: if the
// left side resolved to NULL (the IF/EITHER "no branch taken" signal),
// run the branch and take its result; otherwise pass the left value
// straight through untouched.
func nativeElse(f *Frame) error {
	left := *f.Varlist.Slot(1)
	branch := f.Varlist.Slot(2)
	if left.IsNulled() {
		return runBranch(f, branch)
	}
	*f.Out = left
	return nil
}

// nativeThen is ELSE's opposite polarity: run the branch only when the
// left side is NOT null, otherwise pass the NULL through.
func nativeThen(f *Frame) error {
	left := *f.Varlist.Slot(1)
	branch := f.Varlist.Slot(2)
	if left.IsNulled() {
		*f.Out = left
		return nil
	}
	return runBranch(f, branch)
}

// nativeAlso runs the branch for its side effect when the left side is
// not null, discarding the branch's own result and yielding the original
// left value -- chaining without replacing it.
func nativeAlso(f *Frame) error {
	left := *f.Varlist.Slot(1)
	branch := f.Varlist.Slot(2)
	if left.IsNulled() {
		*f.Out = left
		return nil
	}
	var discard Cell
	saved := f.Out
	f.Out = &discard
	err := runBranch(f, branch)
	f.Out = saved
	if err != nil {
		return err
	}
	if f.Thrown != nil {
		return nil
	}
	*f.Out = left
	return nil
}

// nativeThrow implements a bare (unnamed) THROW of §4.2 "Throw protocol":
// unwinds to the nearest bare CATCH, carrying value as its payload.
func nativeThrow(f *Frame) error {
	f.Throw(ThrowUser, *f.Varlist.Slot(1))
	return nil
}

// nativeCatch runs body and intercepts a bare ThrowUser throw, yielding
// its payload; any other throw (RETURN, BREAK/CONTINUE escaping their
// loop, another CATCH's target) passes through unconsumed, per §4.2
// "CATCH consumes a throw whose label matches its name set."
func nativeCatch(f *Frame) error {
	body := f.Varlist.Slot(1)
	if body.Kind != KindBlock && body.Kind != KindGroup {
		*f.Out = *body
		return nil
	}
	series := f.vm.Arena.Series(body.First)
	inner := NewArrayFeed(series, body.Binding.Context)
	*f.Out = EndCell
	for !inner.AtEnd() {
		sub := f.vm.NewFrame(inner, f.Out, f)
		threw, err := sub.Step()
		if err != nil {
			return err
		}
		if threw {
			if payload, ok := sub.Catch(ThrowUser); ok {
				*f.Out = payload
				return nil
			}
			f.Propagate(sub)
			return nil
		}
	}
	return nil
}

// runLoopBody DOes body once, leaving any throw on f.Thrown (via
// Propagate) rather than deciding here whether it is a BREAK/CONTINUE
// LOOP should swallow or some other throw that must keep unwinding.
func runLoopBody(f *Frame, body *Cell) (bool, error) {
	if body.Kind != KindBlock && body.Kind != KindGroup {
		*f.Out = *body
		return false, nil
	}
	series := f.vm.Arena.Series(body.First)
	inner := NewArrayFeed(series, body.Binding.Context)
	*f.Out = EndCell
	for !inner.AtEnd() {
		sub := f.vm.NewFrame(inner, f.Out, f)
		threw, err := sub.Step()
		if err != nil {
			return false, err
		}
		if threw {
			f.Propagate(sub)
			return true, nil
		}
	}
	return false, nil
}

// nativeLoop implements the fixed-count LOOP of §8 scenario 8: run body
// count times, catching BREAK (stop immediately) and CONTINUE (skip to
// the next iteration) itself; any other throw -- a bare user THROW
// included -- is left on f.Thrown for an outer CATCH or unwinder to
// handle.
func nativeLoop(f *Frame) error {
	count := f.Varlist.Slot(1)
	body := f.Varlist.Slot(2)
	if count.Kind != KindInteger {
		return NewTypeError("loop expects an INTEGER! count", Span{})
	}
	*f.Out = NulledCell
	for i := int64(0); i < count.AsInteger(); i++ {
		threw, err := runLoopBody(f, body)
		if err != nil {
			return err
		}
		if !threw {
			continue
		}
		if _, ok := f.Catch(ThrowBreak); ok {
			return nil
		}
		if payload, ok := f.Catch(ThrowContinue); ok {
			*f.Out = payload
			continue
		}
		return nil
	}
	return nil
}

func nativeBreak(f *Frame) error {
	f.Throw(ThrowBreak, NulledCell)
	return nil
}

func nativeContinue(f *Frame) error {
	f.Throw(ThrowContinue, NulledCell)
	return nil
}

func nativeQuit(f *Frame) error {
	f.Throw(ThrowQuit, *f.Varlist.Slot(1))
	return nil
}
