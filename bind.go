package core

// Bind walks series recursively, setting the Binding of every WORD-family
// cell whose symbol exists in ctx to reference ctx's slot -- the binder
// step that runs between scanning and evaluation so a freshly scanned
// BLOCK! (or the top-level feed a host program hands to hostapi.Eval)
// can actually resolve its words. There is no teacher analogue (the PEG
// grammar compiler has no notion of lexical binding); this follows the
// same "walk an Array series in place, mutating Cells" shape mold.go and
// the GC's drain() already use for tree-shaped series traversal.
func Bind(vm *Interpreter, series *Series, ctx *Context) {
	node := vm.trackContext(ctx)
	bindArray(vm, series, ctx, node, make(map[*Series]bool))
}

func bindArray(vm *Interpreter, series *Series, ctx *Context, node NodeID, seen map[*Series]bool) {
	if !series.Flags.Has(SeriesFlagArray) || seen[series] {
		return
	}
	seen[series] = true
	for i := range series.Array {
		c := &series.Array[i]
		if c.Kind.IsWordFamily() {
			if idx := ctx.IndexOf(c.First); idx != 0 {
				c.Binding = BindingID{Context: node, Index: int32(idx)}
			}
			continue
		}
		if c.Kind == KindBlock || c.Kind == KindGroup || c.Kind == KindPath {
			if inner := vm.Arena.Series(c.First); inner != nil {
				c.Binding = BindingID{Context: node, Index: 0}
				bindArray(vm, inner, ctx, node, seen)
			}
		}
	}
}
