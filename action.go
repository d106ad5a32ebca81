package core

// ParamClass selects how the evaluator fulfills one parameter slot during
// action dispatch (§4.2 "Action dispatch" step 2).
type ParamClass uint8

const (
	ParamNormal      ParamClass = iota // run one evaluator step into the arg slot
	ParamHardQuote                      // quote-grab the next feed cell verbatim
	ParamSoftQuote                      // quote unless the next cell is GROUP!/GET-WORD! (no GET-PATH! kind exists; a PATH! is quoted)
	ParamSkippable                      // peek next cell; skip this param if its kind doesn't match
	ParamRefinement                      // a refinement flag; TRUE if invoked in order, pickups otherwise
	ParamReturn                          // the synthesized RETURN parameter on HAS_RETURN actions
)

// Param describes one paramlist slot.
type Param struct {
	Symbol NodeID
	Class  ParamClass
	// Types, when non-nil, is the typeset this parameter accepts;
	// nil means "any type" (no typecheck at fulfillment).
	Types *Series // SeriesFlagBinary bitset keyed by Kind, or nil
}

// ActionFlags are the per-action bits of §3.6.
type ActionFlags uint16

const (
	ActionFlagReturn ActionFlags = 1 << iota
	ActionFlagInvisible
	ActionFlagHasReturn
	ActionFlagEnfix
	ActionFlagDefer
	ActionFlagNative
)

func (f ActionFlags) Has(bit ActionFlags) bool { return f&bit != 0 }

// Dispatcher is the per-action-phase function pointer of §3.6: "Dispatch
// is via a function pointer per action phase." It runs after all
// parameters have been fulfilled into frame.Varlist, writes its result
// (or a throw) to frame.Out, and returns an error only for a genuine
// failure (throws are signaled via frame.Thrown, not the Go error path,
// so CATCH/unwind plumbing stays uniform with evaluator step results).
type Dispatcher func(frame *Frame) error

// Action is a callable value bound to a paramlist and a dispatcher
// (§3.6). Natives, user FUNCTION!s, and specializations are all Actions
// distinguished only by which Dispatcher and Params they carry --
// mirroring the teacher's single bytecode-program shape serving both
// compiled grammars and built-in rules (vm_program.go lineage), adapted
// here to serve every callable kind instead of only PEG rules.
type Action struct {
	Label      NodeID // canonical symbol this action was last looked up under, for error messages
	Params     []Param
	ReturnType *Series // typeset bitset, or nil for unchecked/"any"
	Flags      ActionFlags
	Dispatch   Dispatcher

	// Body holds the BLOCK! series for a user-defined FUNCTION!/NATIVE
	// written in the source language itself; Dispatch for such actions
	// evaluates Body in a context derived from Varlist. Built-in natives
	// leave Body nil and supply Dispatch directly.
	Body *Series

	// Underlying, when non-nil, is the action this one specializes or
	// adapts; specializations fulfill a subset of Underlying's Params
	// and delegate dispatch to Underlying.Dispatch.
	Underlying *Action
}

// IsEnfix reports whether this action consumes its first argument from
// the evaluator's existing output cell via lookahead (§4.2 "Enfix
// (infix) operators").
func (a *Action) IsEnfix() bool { return a.Flags.Has(ActionFlagEnfix) }

// IsInvisible reports whether dispatching this action must leave the
// caller's out cell untouched (§4.2 "Invisibles").
func (a *Action) IsInvisible() bool { return a.Flags.Has(ActionFlagInvisible) }

// IsDeferred reports whether this enfix action waits for the expression
// producing its left argument to fully resolve (including any further
// enfix chaining of its own) before binding, rather than grabbing the
// immediately preceding step's result (§4.2 "DEFER"). ELSE/THEN/ALSO are
// the only built-ins marked this way.
func (a *Action) IsDeferred() bool { return a.Flags.Has(ActionFlagDefer) }

// NewNative builds an Action whose dispatch is a Go function, the shape
// used for every built-in (arithmetic, control flow, PARSE, natives that
// back the host API).
func NewNative(label NodeID, params []Param, flags ActionFlags, dispatch Dispatcher) *Action {
	return &Action{Label: label, Params: params, Flags: flags, Dispatch: dispatch}
}

// ParamCount returns the number of declared parameters, excluding the
// synthesized RETURN parameter when present.
func (a *Action) ParamCount() int {
	n := 0
	for _, p := range a.Params {
		if p.Class != ParamReturn {
			n++
		}
	}
	return n
}
