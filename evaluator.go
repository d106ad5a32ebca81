package core

// FrameFlags are the per-frame bits of §3.4.
type FrameFlags uint16

const (
	FrameFlagToEnd FrameFlags = 1 << iota
	FrameFlagPathMode
	FrameFlagDoingPickups
	FrameFlagFullySpecialized
	FrameFlagNextArgFromOut
	FrameFlagProcessAction
	FrameFlagConst
	FrameFlagArgFulfill
)

func (f FrameFlags) Has(bit FrameFlags) bool { return f&bit != 0 }

// Frame represents one expression evaluation on the stack (§3.4).
// Grounded on the teacher's vm_stack.go backtracking frame (a
// choice-point with its own cursor and capture state), generalized from
// "one PEG choice point" to "one evaluator call", since both need the
// same shape: a cursor into the input, a place to stash the in-progress
// result, and a mark for unwinding back to on failure/throw.
type Frame struct {
	vm *Interpreter

	Feed *Feed
	Out  *Cell

	Spare Cell
	Cell  Cell

	Varlist *Context

	Original *Action
	Phase    *Action
	Label    NodeID
	ParamIdx int
	ArgIdx   int
	Special  *Context

	Flags   FrameFlags
	DspOrig int

	Parent  *Frame
	Thrown  *ThrowState
}

// VM returns the interpreter this frame is running under, for natives
// (like PARSE's dispatcher) implemented in another package that need
// arena/symbol access but cannot accept the interpreter as an explicit
// Dispatcher argument, since Dispatcher's signature is fixed by §3.6.
func (f *Frame) VM() *Interpreter { return f.vm }

// NewFrame pushes a new evaluation frame over feed, writing results into
// out, per §4.2 "Action dispatch" step 1.
func (vm *Interpreter) NewFrame(feed *Feed, out *Cell, parent *Frame) *Frame {
	return &Frame{
		vm:      vm,
		Feed:    feed,
		Out:     out,
		DspOrig: vm.Stack.Top(),
		Parent:  parent,
	}
}

// Step consumes one expression from the frame's feed and writes its
// result to Out, or leaves Out untouched if the step was invisible
// (§4.2 "Step contract"). It returns true if evaluation threw, in which
// case f.Thrown carries the throw payload.
func (f *Frame) Step() (threw bool, err error) {
	cur := f.Feed.Current()
	if cur.IsEnd() {
		*f.Out = EndCell
		return false, nil
	}

	if cur.QuoteDepth > 0 || cur.Kind.IsInert() {
		*f.Out = cur
		f.Out.Flags &^= CellFlagUnevaluated
		f.Feed.Next()
		return f.lookAheadEnfix()
	}

	switch cur.Kind {
	case KindWord:
		return f.stepWord(cur)
	case KindGetWord:
		v, err := f.lookup(cur)
		if err != nil {
			return false, err
		}
		*f.Out = v
		f.Feed.Next()
		return false, nil
	case KindSetWord:
		return f.stepSetWord(cur)
	case KindGroup:
		return f.stepGroup(cur)
	case KindPath, KindGetPathCompat:
		return f.stepPath(cur)
	case KindAction:
		f.Feed.Next()
		threw, err = f.Dispatch(cur.Kind, cur, f.Label)
		if err != nil || threw {
			return threw, err
		}
		return f.lookAheadEnfix()
	default:
		*f.Out = cur
		f.Feed.Next()
		return false, nil
	}
}

// KindGetPathCompat is a placeholder alias kept so a future SET-PATH!/
// GET-PATH! split (currently folded into KindPath per kind.go) has an
// obvious insertion point in the Step switch without renumbering Kind.
const KindGetPathCompat = Kind(255)

func (f *Frame) stepWord(cur Cell) (bool, error) {
	v, err := f.lookup(cur)
	if err != nil {
		return false, err
	}
	if v.Kind == KindAction {
		f.Feed.Next()
		action := f.vm.Arena.Series(v.First)
		_ = action
		threw, err := f.Dispatch(v.Kind, v, cur.First)
		if err != nil || threw {
			return threw, err
		}
		return f.lookAheadEnfix()
	}
	*f.Out = v
	f.Feed.Next()
	return f.lookAheadEnfix()
}

func (f *Frame) stepSetWord(cur Cell) (bool, error) {
	f.Feed.Next()
	sub := f.vm.NewFrame(f.Feed, f.Out, f)
	threw, err := sub.Step()
	if err != nil || threw {
		return threw, err
	}
	if err := f.assign(cur, *f.Out); err != nil {
		return false, err
	}
	return f.lookAheadEnfix()
}

func (f *Frame) stepGroup(cur Cell) (bool, error) {
	series := f.vm.Arena.Series(cur.First)
	inner := NewArrayFeed(series, cur.Binding.Context)
	var result Cell = EndCell
	for !inner.AtEnd() {
		sub := f.vm.NewFrame(inner, &result, f)
		threw, err := sub.Step()
		if err != nil {
			return false, err
		}
		if threw {
			*f.Out = result
			f.Feed.Next()
			return true, nil
		}
	}
	*f.Out = result
	f.Feed.Next()
	return f.lookAheadEnfix()
}

// lookup resolves a WORD-family cell's binding to its bound value.
func (f *Frame) lookup(cur Cell) (Cell, error) {
	if cur.Binding.IsUnbound() {
		return Cell{}, NewBindingError(f.vm.Symbols.Spelling(cur.First), Span{})
	}
	ctx := f.vm.Arena.Series(cur.Binding.Context)
	if ctx == nil || int(cur.Binding.Index) >= len(ctx.Array) {
		return Cell{}, NewBindingError(f.vm.Symbols.Spelling(cur.First), Span{})
	}
	return ctx.Array[cur.Binding.Index], nil
}

// assign resolves the SET-WORD! cell's own binding -- the one Bind()
// already attached when it walked the block this word came from -- and
// writes v into that slot. Only a word Bind() never saw (one spliced in
// live, with no pre-resolved Binding of its own) falls back to
// currentBinding's frame-local resolution.
func (f *Frame) assign(cur Cell, v Cell) error {
	binding := cur.Binding
	if binding.IsUnbound() {
		binding = f.currentBinding(cur.First)
	}
	if binding.IsUnbound() {
		return NewBindingError(f.vm.Symbols.Spelling(cur.First), Span{})
	}
	ctx := f.vm.Arena.Series(binding.Context)
	if ctx == nil || int(binding.Index) >= len(ctx.Array) {
		return NewBindingError(f.vm.Symbols.Spelling(cur.First), Span{})
	}
	ctx.Array[binding.Index] = v
	return nil
}

// currentBinding resolves symbol against the frame's active varlist,
// falling back to the feed's specifier context.
func (f *Frame) currentBinding(symbol NodeID) BindingID {
	if f.Varlist != nil {
		if idx := f.Varlist.IndexOf(symbol); idx != 0 {
			return BindingID{Context: f.varlistNode(), Index: int32(idx)}
		}
	}
	if f.Feed != nil {
		if specNode := f.Feed.Specifier(); specNode != NilNode {
			if spec := f.vm.contextAt(specNode); spec != nil {
				if idx := spec.IndexOf(symbol); idx != 0 {
					return BindingID{Context: specNode, Index: int32(idx)}
				}
			}
		}
	}
	return Unbound
}

func (f *Frame) varlistNode() NodeID {
	// Varlist contexts are tracked by the interpreter's context table so a
	// BindingID can reference them without the Frame itself living in the
	// node arena.
	return f.vm.trackContext(f.Varlist)
}
