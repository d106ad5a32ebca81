package core

// stepPath evaluates a PATH! cell (§4.2 "Path evaluation"): resolve the
// head component, then apply each remaining component as a 1-based PICK
// into the resolved value's series, until either the path is exhausted
// (yielding a plain value) or the resolved value is an ACTION!, at which
// point any trailing REFINEMENT! components select which refinements the
// dispatch fulfills. There is no teacher analogue for this (the PEG
// grammar the teacher compiles has no path-family values); the shape
// here follows dispatch.go's own Dispatch/fulfillArgs split so PATH!
// dispatch stays consistent with plain ACTION! dispatch.
func (f *Frame) stepPath(cur Cell) (bool, error) {
	series := f.vm.Arena.Series(cur.First)
	if series == nil || series.Len() == 0 {
		return false, NewTypeError("empty path", Span{})
	}

	head := series.Array[0]
	var value Cell
	if head.Kind == KindWord {
		// head carries its own Binding, set by Bind's recursive walk into
		// the path's backing series -- it must not be overwritten with
		// the outer PATH! cell's own Binding (a plain context-association
		// marker, not a resolved word slot).
		v, err := f.lookup(head)
		if err != nil {
			return false, err
		}
		value = v
	} else {
		value = head
	}

	var refinements []NodeID
	for i := 1; i < series.Len(); i++ {
		comp := series.Array[i]
		switch {
		case value.Kind == KindAction && comp.Kind == KindRefinement:
			refinements = append(refinements, comp.First)
		case comp.Kind == KindInteger:
			picked, ok := pickInto(f.vm, value, comp)
			if !ok {
				return false, NewBoundsError("path pick out of range", Span{})
			}
			value = picked
		default:
			return false, NewTypeError("path component not supported", Span{})
		}
	}

	f.Feed.Next()

	if value.Kind == KindAction {
		threw, err := f.dispatchPath(value, series.Array[0].First, refinements)
		if err != nil || threw {
			return threw, err
		}
		return f.lookAheadEnfix()
	}

	*f.Out = value
	return f.lookAheadEnfix()
}

// pickInto implements the 1-based PICK of §4.2 path evaluation over
// series-backed values; object/context picks by WORD! are not supported
// by PATH! yet (no context is reconstructible from a bare Cell without
// its owning Context's keylist), so stepPath rejects WORD! components
// other than trailing refinements rather than silently doing the wrong
// thing.
func pickInto(vm *Interpreter, value Cell, comp Cell) (Cell, bool) {
	idx := int(comp.AsInteger())
	switch value.Unescaped() {
	case KindBlock, KindGroup:
		s := vm.Arena.Series(value.First)
		if idx < 1 || idx > s.Len() {
			return Cell{}, false
		}
		return *s.At(int32(idx - 1)), true
	case KindText, KindTag, KindFile, KindURL, KindEmail:
		s := vm.Arena.Series(value.First)
		if idx < 1 || idx > s.Len() {
			return Cell{}, false
		}
		return NewChar(s.RuneAt(int32(idx - 1))), true
	case KindBinary:
		s := vm.Arena.Series(value.First)
		if idx < 1 || idx > s.Len() {
			return Cell{}, false
		}
		return NewInteger(int64(s.ByteAt(int32(idx - 1)))), true
	default:
		return Cell{}, false
	}
}

// dispatchPath runs action as Dispatch does, but with refinement flags
// taken from the PATH!'s own trailing REFINEMENT! components (already
// resolved by stepPath) instead of scanned off the feed by doPickups.
func (f *Frame) dispatchPath(action Cell, label NodeID, refinements []NodeID) (bool, error) {
	act := f.vm.actionAt(action.First)
	if act == nil {
		return false, NewTypeError("not an action", Span{})
	}

	sub := f.vm.NewFrame(f.Feed, f.Out, f)
	sub.Original = act
	sub.Phase = act
	sub.Label = label
	sub.Varlist = NewContext(len(act.Params))
	sub.Varlist.SetArchetype(Cell{Kind: KindFrame})
	for i := range act.Params {
		sub.Varlist.AddSlot(act.Params[i].Symbol, NulledCell)
	}

	for i, p := range act.Params {
		if p.Class != ParamRefinement {
			continue
		}
		for _, r := range refinements {
			if p.Symbol == r {
				*sub.Varlist.Slot(i + 1) = NewLogic(true)
				break
			}
		}
	}

	if err := sub.fulfillArgs(act); err != nil {
		return false, err
	}
	if sub.Thrown != nil {
		f.Thrown = sub.Thrown
		return true, nil
	}
	if err := act.Dispatch(sub); err != nil {
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
