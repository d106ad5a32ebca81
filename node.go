package core

import "fmt"

// NodeID is an arena-relative handle, replacing the source tradition's
// raw tagged pointers (§9 Design Notes: "represent nodes as index handles
// into arenas ... this preserves the fast byte-classify behavior without
// unsafe pointer casting"). Index 0 is reserved and never allocated, so a
// zero NodeID can serve as a nil-equivalent sentinel.
type NodeID uint32

// NilNode is the zero handle: no node, the arena equivalent of a nil
// pointer.
const NilNode NodeID = 0

// NodeClass classifies a node without consulting its static Go type,
// mirroring the source's "inspect the leading byte" classification
// (§3.1, §4.1 "Pointer classification").
type NodeClass uint8

const (
	NodeFree NodeClass = iota
	NodeEnd
	NodeCell
	NodeSeriesHeader
)

func (c NodeClass) String() string {
	switch c {
	case NodeFree:
		return "free"
	case NodeEnd:
		return "end"
	case NodeCell:
		return "cell"
	case NodeSeriesHeader:
		return "series-header"
	default:
		return "invalid"
	}
}

// NodeFlags is the flag byte of §3.1, kept as a distinct bitset word
// rather than folded into the leading classification byte so flags can be
// mutated without touching classification.
type NodeFlags uint16

const (
	NodeFlagNode NodeFlags = 1 << iota
	NodeFlagManaged
	NodeFlagMarked
	NodeFlagRoot
	NodeFlagCell
	NodeFlagStack
	NodeFlagFree
)

func (f NodeFlags) Has(bit NodeFlags) bool { return f&bit != 0 }

// nodeArena is the fixed-size (but growable, Go-appropriately) pool of
// nodes backing every Cell payload and Series header in the interpreter.
// It is a flat arena of parallel slices, grounded directly on the
// teacher's `tree` type (tree.go): one flat node array, indexed by a
// lightweight ID, with auxiliary data kept in sibling slices instead of
// per-node pointers.
type nodeArena struct {
	class  []NodeClass
	flags  []NodeFlags
	cell   []Cell    // valid when class[i] == NodeCell
	series []*Series // valid when class[i] == NodeSeriesHeader
	free   []NodeID  // recycled slots, LIFO
}

func newNodeArena() *nodeArena {
	a := &nodeArena{}
	// index 0 reserved as NilNode
	a.class = append(a.class, NodeFree)
	a.flags = append(a.flags, 0)
	a.cell = append(a.cell, Cell{})
	a.series = append(a.series, nil)
	return a
}

func (a *nodeArena) allocRaw(class NodeClass) NodeID {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		a.class[id] = class
		a.flags[id] = NodeFlagNode
		a.cell[id] = Cell{}
		a.series[id] = nil
		return id
	}
	id := NodeID(len(a.class))
	a.class = append(a.class, class)
	a.flags = append(a.flags, NodeFlagNode)
	a.cell = append(a.cell, Cell{})
	a.series = append(a.series, nil)
	return id
}

// AllocCell reserves a node to hold a Cell (used when a Cell must be
// independently addressable by a NodeID, e.g. API handles and pairings;
// most Cells live inline in a Series/Array/data-stack slice instead).
func (a *nodeArena) AllocCell(c Cell) NodeID {
	id := a.allocRaw(NodeCell)
	a.cell[id] = c
	a.flags[id] |= NodeFlagCell
	return id
}

// AllocSeries reserves a node to hold a *Series header.
func (a *nodeArena) AllocSeries(s *Series) NodeID {
	id := a.allocRaw(NodeSeriesHeader)
	a.series[id] = s
	return id
}

func (a *nodeArena) Class(id NodeID) NodeClass { return a.class[id] }
func (a *nodeArena) Flags(id NodeID) NodeFlags { return a.flags[id] }

func (a *nodeArena) SetFlags(id NodeID, f NodeFlags) { a.flags[id] |= f }
func (a *nodeArena) ClearFlags(id NodeID, f NodeFlags) {
	a.flags[id] &^= f
}

func (a *nodeArena) Cell(id NodeID) *Cell {
	if a.class[id] != NodeCell {
		panic(fmt.Sprintf("node %d is not a cell node (class=%s)", id, a.class[id]))
	}
	return &a.cell[id]
}

func (a *nodeArena) Series(id NodeID) *Series {
	if id == NilNode {
		return nil
	}
	if a.class[id] != NodeSeriesHeader {
		panic(fmt.Sprintf("node %d is not a series node (class=%s)", id, a.class[id]))
	}
	return a.series[id]
}

// freeNode reclaims a node during GC sweep (§4.4 step 4). The caller is
// responsible for having already released any resources the node owned
// (series data, etc).
func (a *nodeArena) freeNode(id NodeID) {
	a.class[id] = NodeFree
	a.flags[id] = NodeFlagFree
	a.cell[id] = Cell{}
	a.series[id] = nil
	a.free = append(a.free, id)
}

// Len returns the number of slots the arena has ever allocated,
// including recycled ones; used by GC sweep to bound its scan.
func (a *nodeArena) Len() int { return len(a.class) }
