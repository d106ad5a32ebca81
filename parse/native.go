package parse

import "github.com/homoiconic-lang/core"

// RegisterNative installs the PARSE action into lib (§4.3 "PARSE is a
// single native that wraps SUBPARSE"). It lives in this package, rather
// than alongside the other built-ins in core/natives.go, because it is
// the one native whose dispatcher needs the parse package's own
// Subparse -- and core cannot import parse without an import cycle,
// since parse already imports core for Cell/Series/Frame.
func RegisterNative(vm *core.Interpreter, lib *core.Context) {
	sym := vm.Symbols.Intern("parse")
	params := []core.Param{
		{Symbol: vm.Symbols.Intern("input")},
		{Symbol: vm.Symbols.Intern("rules")},
	}
	action := core.NewNative(sym, params, 0, dispatchParse)
	action.Label = sym
	lib.AddSlot(sym, vm.ActionValue(action))
}

// dispatchParse implements §4.3's "final PARSE result-wrapping
// contract": a match of the whole input returns the input value itself
// (quote depth preserved); a Cell carries no series index, so the result
// is not re-positioned at the matched end. A failed or partial match
// returns NULLED.
func dispatchParse(f *core.Frame) error {
	input := *f.Varlist.Slot(1)
	rulesVal := *f.Varlist.Slot(2)

	if !input.Kind.HoldsNode() {
		return core.NewTypeError("PARSE input must be a series", core.Span{})
	}
	if rulesVal.Kind != core.KindBlock {
		return core.NewTypeError("PARSE rules must be a BLOCK!", core.Span{})
	}

	vm := f.VM()
	series := vm.Arena.Series(input.First)
	rules := vm.Arena.Series(rulesVal.First)

	result, err := Subparse(vm, f, rules, series, input.Binding.Context, 0)
	if err != nil {
		return err
	}
	if f.Thrown != nil {
		return nil
	}
	if !result.Matched || int(result.End) != series.Len() {
		*f.Out = core.NulledCell
		return nil
	}

	out := input
	out.QuoteDepth = input.QuoteDepth
	*f.Out = out
	return nil
}
