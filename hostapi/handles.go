// Package hostapi is the external, variadic entry surface into the
// interpreter core (§4.5 "Host API"): the boundary a Go host program
// crosses to evaluate source text, build values, and hold onto results
// across calls without itself touching core's internal arena/Frame
// machinery. It never logs; every failure is returned as an error value
// or surfaced through Rescue, the same convention core and parse hold to.
package hostapi

import "github.com/homoiconic-lang/core"

// Handle is an opaque, GC-visible reference a host program holds onto a
// value across calls into the interpreter (§4.5 "Handles: singular
// ROOT-flagged arrays"). It stays rooted from NewHandle until Release,
// independent of the frame that created it; Manage does not change this.
type Handle struct {
	vm   *core.Interpreter
	node core.NodeID
	cell core.Cell
}

// NewHandle roots value so it survives GC collection independent of any
// live Frame, returning a Handle the host can Release when done with it.
func NewHandle(vm *core.Interpreter, value core.Cell) *Handle {
	node := vm.Arena.AllocCell(value)
	vm.Arena.SetFlags(node, core.NodeFlagManaged|core.NodeFlagRoot)
	return &Handle{vm: vm, node: node, cell: value}
}

// Value returns the handle's current cell.
func (h *Handle) Value() core.Cell {
	return *h.vm.Arena.Cell(h.node)
}

// Release clears the handle's ROOT flag, letting the next GC cycle
// reclaim its backing node if nothing else reaches it (§4.5 "Release
// frees the backing node").
func (h *Handle) Release() {
	h.vm.Arena.ClearFlags(h.node, core.NodeFlagRoot)
}

// Manage is a no-op placeholder for symmetry with Release: a Handle is
// already managed/rooted from construction, so Manage only documents
// intent at call sites that want to be explicit about handle lifetime
// rather than relying on the implicit default.
func (h *Handle) Manage() {}
