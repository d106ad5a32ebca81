package core

// Dispatch performs the action-dispatch protocol of §4.2: push a new
// frame, fulfill parameters left-to-right (with a pickups pass for
// out-of-order refinements), then invoke the phase dispatcher.
//
// actionKind/actionCell/label identify which action was encountered by
// Step (inline ACTION! value vs. a WORD! bound to one); the action
// itself is resolved from the arena via actionCell.First, which for
// KindAction cells addresses an *Action stored in the interpreter's
// action table rather than the generic Series table (§3.6 "Action").
func (f *Frame) Dispatch(actionKind Kind, actionCell Cell, label NodeID) (bool, error) {
	action := f.vm.actionAt(actionCell.First)
	if action == nil {
		return false, NewTypeError("not an action", Span{})
	}

	sub := f.vm.NewFrame(f.Feed, f.Out, f)
	sub.Original = action
	sub.Phase = action
	sub.Label = label
	sub.Varlist = NewContext(len(action.Params))
	sub.Varlist.SetArchetype(Cell{Kind: KindFrame})

	for i := range action.Params {
		sub.Varlist.AddSlot(action.Params[i].Symbol, NulledCell)
	}

	if err := sub.fulfillArgs(action); err != nil {
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

	if !f.vm.Stack.Balanced(sub.DspOrig) {
		f.vm.Stack.DropTo(sub.DspOrig)
	}
	return false, nil
}

// fulfillArgs walks the paramlist left to right per §4.2 step 2: skip
// parameters, hard-quote, soft-quote, or run a normal evaluator step,
// according to each parameter's class. Out-of-order refinements are
// deferred to doPickups.
func (f *Frame) fulfillArgs(action *Action) error {
	for i, p := range action.Params {
		f.ParamIdx = i
		switch p.Class {
		case ParamReturn:
			continue
		case ParamRefinement:
			// Refinement slots are not filled from the feed here; they are
			// set before dispatch (dispatchPath pre-fills those named in a
			// PATH!) or by doPickups.
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

func (f *Frame) paramMatchesNext(p Param) bool {
	if p.Types == nil {
		return true
	}
	return p.Types.BitsetTest(int(f.Feed.Current().Kind))
}

// doPickups scans the feed for REFINEMENT! tokens already consumed out
// of positional order and fills their NULLED/positional argument slots
// (§4.2 step 3 "pickups pass").
func (f *Frame) doPickups(action *Action) error {
	f.Flags |= FrameFlagDoingPickups
	defer func() { f.Flags &^= FrameFlagDoingPickups }()

	for !f.Feed.Current().IsEnd() && f.Feed.Current().Kind == KindRefinement {
		refineSym := f.Feed.Current().First
		f.Feed.Next()
		idx := -1
		for i, p := range action.Params {
			if p.Class == ParamRefinement && p.Symbol == refineSym {
				idx = i
				break
			}
		}
		if idx < 0 {
			return NewTypeError("unknown refinement", Span{})
		}
		*f.Varlist.Slot(idx + 1) = NewLogic(true)
	}
	return nil
}
