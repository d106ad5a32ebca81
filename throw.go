package core

// ThrowLabel names the sentinel a throw is unwinding toward (§4.2
// "Throw protocol"). RETURN/BREAK/CONTINUE/QUIT and the two PARSE
// control throws are built in; ThrowNamed (installed by
// ThrowNamedValue) carries an arbitrary interned symbol.
type ThrowLabel uint8

const (
	ThrowReturn ThrowLabel = iota
	ThrowBreak
	ThrowContinue
	ThrowQuit
	ThrowParseAccept
	ThrowParseReject
	ThrowNamed
	// ThrowUser is a bare THROW with no /NAME refinement -- caught only by
	// a bare CATCH, never by CATCH/NAME or a control-flow unwinder like
	// LOOP's BREAK/CONTINUE handling.
	ThrowUser
)

// ThrowState is the two-part value a throw carries: a label identifying
// which unwinder should catch it, and a payload cell (§4.2 "A throw is a
// two-part value"). It lives on the Frame that originated it and is
// propagated by every Step/Dispatch caller that sees Frame.Thrown set
// after a call.
type ThrowState struct {
	Label   ThrowLabel
	Name    NodeID // set when Label == ThrowNamed
	Payload Cell
}

// Throw installs a throw on f, to be propagated by the caller.
func (f *Frame) Throw(label ThrowLabel, payload Cell) {
	f.Thrown = &ThrowState{Label: label, Payload: payload}
}

// ThrowNamedValue installs a CATCH/NAME-targeted throw.
func (f *Frame) ThrowNamedValue(name NodeID, payload Cell) {
	f.Thrown = &ThrowState{Label: ThrowNamed, Name: name, Payload: payload}
}

// Catch consumes f.Thrown if it matches one of the given labels,
// returning the caught payload and true; otherwise leaves Thrown
// untouched so it keeps propagating up the frame chain (§4.2 "CATCH
// consumes a throw whose label matches its name set").
func (f *Frame) Catch(labels ...ThrowLabel) (Cell, bool) {
	if f.Thrown == nil {
		return Cell{}, false
	}
	for _, l := range labels {
		if f.Thrown.Label == l {
			payload := f.Thrown.Payload
			f.Thrown = nil
			return payload, true
		}
	}
	return Cell{}, false
}

// CatchNamed consumes f.Thrown only if it is a ThrowNamed throw matching
// name.
func (f *Frame) CatchNamed(name NodeID) (Cell, bool) {
	if f.Thrown == nil || f.Thrown.Label != ThrowNamed || f.Thrown.Name != name {
		return Cell{}, false
	}
	payload := f.Thrown.Payload
	f.Thrown = nil
	return payload, true
}

// Propagate copies a throw from a completed sub-frame onto f, the
// operation every evaluator loop performs after a Step/Dispatch call
// reports threw=true (§4.2 "Any step may return 'threw'; unwinders at
// every level must propagate").
func (f *Frame) Propagate(sub *Frame) {
	f.Thrown = sub.Thrown
}
