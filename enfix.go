package core

// lookAheadEnfix implements §4.2 "Enfix (infix) operators": after a step
// produces a result, peek the next feed value; if it resolves to an
// enfix action, the just-produced value becomes that action's first
// argument (NEXT_ARG_FROM_OUT) and the enfix call runs immediately.
// Chaining is left to right: the frame evaluating an enfix action's
// right-hand argument does not consume a following enfix operator, so
// `1 + 2 * 3` is (1 + 2) * 3. DEFER-marked enfix actions (ELSE/THEN/ALSO)
// are refused inside any argument-fulfilling frame, leaving them on the
// feed for the enclosing expression's own lookahead.
func (f *Frame) lookAheadEnfix() (bool, error) {
	for {
		next := f.Feed.Current()
		if next.Kind != KindWord {
			return false, nil
		}
		v, err := f.lookup(next)
		if err != nil {
			// An unbound lookahead word is not an error here -- it simply
			// means there is no enfix operator to chain, and the error
			// will resurface (or not) when the next Step actually visits it.
			return false, nil
		}
		if v.Kind != KindAction {
			return false, nil
		}
		action := f.vm.actionAt(v.First)
		if action == nil || !action.IsEnfix() {
			return false, nil
		}
		if f.Flags.Has(FrameFlagArgFulfill) && f.Parent != nil && f.Parent.Flags.Has(FrameFlagNextArgFromOut) {
			// This frame is filling an enfix call's right-hand argument:
			// the operator that follows belongs to the outer chain.
			return false, nil
		}
		if action.IsDeferred() && f.Flags.Has(FrameFlagArgFulfill) {
			// A DEFER-marked enfix op (ELSE/THEN/ALSO) never binds inside
			// the frame evaluating a single argument slot -- leave it
			// unconsumed on the feed so the call this frame's result feeds
			// into finishes first, and let *that* frame's own post-dispatch
			// lookAheadEnfix pick it up instead (§4.2 "DEFER").
			return false, nil
		}

		f.Feed.Next()
		carried := *f.Out
		threw, err := f.dispatchEnfix(action, next.First, carried)
		if err != nil || threw {
			return threw, err
		}
		// Loop again: the enfix call's own result may itself be followed
		// by another enfix operator (left-to-right chaining).
	}
}

// dispatchEnfix runs action with its first (NEXT_ARG_FROM_OUT) argument
// already supplied as carried, then fulfills any remaining parameters
// normally.
func (f *Frame) dispatchEnfix(action *Action, label NodeID, carried Cell) (bool, error) {
	sub := f.vm.NewFrame(f.Feed, f.Out, f)
	sub.Original = action
	sub.Phase = action
	sub.Label = label
	sub.Flags |= FrameFlagNextArgFromOut
	sub.Varlist = NewContext(len(action.Params))
	sub.Varlist.SetArchetype(Cell{Kind: KindFrame})
	for i := range action.Params {
		sub.Varlist.AddSlot(action.Params[i].Symbol, NulledCell)
	}
	if len(action.Params) > 0 {
		*sub.Varlist.Slot(1) = carried
	}

	if err := sub.fulfillArgsFrom(action, 1); err != nil {
		return false, err
	}
	if err := sub.doPickups(action); err != nil {
		return false, err
	}
	if err := action.Dispatch(sub); err != nil {
		return false, err
	}
	if sub.Thrown != nil {
		f.Thrown = sub.Thrown
		return true, nil
	}
	return false, nil
}

// fulfillArgsFrom is fulfillArgs starting at parameter index `from`,
// used by enfix dispatch to skip the already-supplied first argument.
// Slots before `from` are left untouched.
func (f *Frame) fulfillArgsFrom(action *Action, from int) error {
	for i := from; i < len(action.Params); i++ {
		p := action.Params[i]
		f.ParamIdx = i
		switch p.Class {
		case ParamReturn, ParamRefinement:
			continue
		case ParamSkippable:
			if !f.paramMatchesNext(p) {
				continue
			}
			fallthrough
		case ParamNormal:
			if f.Feed.Current().IsEnd() {
				continue
			}
			var result Cell
			sub := f.vm.NewFrame(f.Feed, &result, f)
			sub.Flags |= FrameFlagArgFulfill
			threw, err := sub.Step()
			if err != nil {
				return err
			}
			if threw {
				f.Thrown = sub.Thrown
				return nil
			}
			*f.Varlist.Slot(i + 1) = result
		case ParamHardQuote:
			cur := f.Feed.Current()
			if cur.IsEnd() {
				continue
			}
			*f.Varlist.Slot(i + 1) = cur
			f.Feed.Next()
		case ParamSoftQuote:
			cur := f.Feed.Current()
			if cur.IsEnd() {
				continue
			}
			if cur.Kind == KindGroup || cur.Kind == KindGetWord {
				var result Cell
				sub := f.vm.NewFrame(f.Feed, &result, f)
				sub.Flags |= FrameFlagArgFulfill
				threw, err := sub.Step()
				if err != nil {
					return err
				}
				if threw {
					f.Thrown = sub.Thrown
					return nil
				}
				*f.Varlist.Slot(i + 1) = result
			} else {
				*f.Varlist.Slot(i + 1) = cur
				f.Feed.Next()
			}
		}
	}
	return nil
}
