package hostapi

import (
	"context"

	"github.com/homoiconic-lang/core"
)

// Arg is one element of a variadic evaluator call (§4.1 "Pointer
// classification"): either UTF-8 source text to scan, a prebuilt Cell to
// splice in, or an instruction adjusting how the following element is
// treated (quoted passthrough vs. evaluated).
type Arg struct {
	Text  string
	Value *core.Cell
	// EvalFlip, when set alongside Value, means the spliced cell should
	// run through the evaluator rather than being quoted inert -- the
	// API's rebEVAL instruction in the source tradition.
	EvalFlip bool
}

// argSource adapts a []Arg into the core.VariadicSource a Feed consumes,
// the "pointer-list-ending-in-END" shape of §4.1 generalized to a plain
// Go slice instead of a C varargs walk. Text arguments are scanned lazily
// (only once Next reaches them) and their resulting cells are drained
// one at a time from queued, matching how a va_list interleaves scanned
// source text with spliced values in source order.
type argSource struct {
	vm     *core.Interpreter
	lib    *core.Context
	args   []Arg
	pos    int
	queued []core.Cell
	err    error
}

func (s *argSource) Next() (core.VariadicItem, bool) {
	for {
		if len(s.queued) > 0 {
			c := s.queued[0]
			s.queued = s.queued[1:]
			return core.VariadicItem{Cell: &c, EvalFlip: true}, true
		}
		if s.pos >= len(s.args) {
			return core.VariadicItem{}, false
		}
		a := s.args[s.pos]
		s.pos++

		if a.Value != nil {
			v := *a.Value
			return core.VariadicItem{Cell: &v, EvalFlip: a.EvalFlip}, true
		}

		scanner := core.NewScanner([]byte(a.Text), "<hostapi>", s.vm.Config, s.vm.Symbols, s.vm.Arena, core.NewDataStack(16))
		scanned, err := scanner.ScanAll()
		if err != nil {
			s.err = err
			return core.VariadicItem{}, false
		}
		if s.lib != nil {
			core.Bind(s.vm, scanned, s.lib)
		}
		s.queued = append(s.queued, scanned.Array...)
	}
}

// Eval runs a variadic evaluator call to completion under ctx and roots
// its result in a Handle (§4.5 "Variadic evaluator entrypoints"). Each
// Text argument is scanned by vm's own scanner into cells spliced onto
// the va_list on demand, rather than all being scanned up front, so the
// feed genuinely exercises core's variadic path (and Feed.Reify, if GC
// runs mid-call) instead of flattening everything into one array first.
// ctx cancellation is the HALT signal's carrier into vm.RunFeed (§5). lib,
// if non-nil, is the context newly scanned Text arguments are bound
// against before being spliced onto the feed (§3.6 "bind deep" wiring
// between scan and evaluation); pass nil to splice already-bound Value
// cells only.
func Eval(ctx context.Context, vm *core.Interpreter, lib *core.Context, args ...Arg) (*Handle, error) {
	src := &argSource{vm: vm, lib: lib, args: args}
	feed := core.NewVariadicFeed(src, core.NilNode)
	if src.err != nil {
		return nil, src.err
	}

	result, err := vm.RunFeed(ctx, feed)
	if err != nil {
		return nil, err
	}
	return NewHandle(vm, result), nil
}
