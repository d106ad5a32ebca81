package hostapi

import "github.com/homoiconic-lang/core"

// Allocation is a host-owned byte buffer backed by a BINARY! series
// (§4.5 "Malloc/Repossess: byte-series allocator reserving a
// header-sized prefix recording the backing series node"). Malloc hands
// the host a plain []byte to fill in; Repossess converts it into a
// first-class BINARY! value once the host is done writing to it.
type Allocation struct {
	vm    *core.Interpreter
	node  core.NodeID
	bytes []byte
}

// Malloc reserves n bytes the host can write into directly before
// converting the allocation into a BINARY! value with Repossess. The
// backing series node is recorded on the Allocation itself rather than
// in an out-of-band header byte prefix, since Go slices already carry
// their own bounds (the source tradition's header-byte bias trick exists
// to survive C pointer arithmetic, which Go's slice headers make moot).
func Malloc(vm *core.Interpreter, n int) *Allocation {
	s := core.NewBinarySeries(make([]byte, n))
	node := vm.Arena.AllocSeries(s)
	vm.Arena.SetFlags(node, core.NodeFlagManaged)
	return &Allocation{vm: vm, node: node, bytes: s.Bin}
}

// Bytes returns the allocation's backing slice for the host to fill in.
func (a *Allocation) Bytes() []byte { return a.bytes }

// Repossess converts the allocation into a rooted BINARY! Handle,
// reusing the same backing series node rather than copying (§4.5
// "Repossess converts the allocation into a BINARY! by bias adjustment"
// -- here, by handing out a Cell addressing the already-allocated node
// instead of re-slicing a biased pointer).
func (a *Allocation) Repossess() *Handle {
	a.vm.Arena.SetFlags(a.node, core.NodeFlagRoot)
	cell := core.Cell{Kind: core.KindBinary, First: a.node}
	return NewHandle(a.vm, cell)
}
