package core

// Context is a named-slot record (§3.6): an array whose first cell is the
// archetype (a FRAME!/object value referring back to the context itself)
// and whose remaining cells are keyed, by position, against a parallel
// keylist of canonical symbol NodeIDs. A frame's Varlist is a Context
// whose keylist is borrowed from the dispatching Action's paramlist.
//
// Grounded on the teacher's arena-of-nodes representation (tree.go):
// rather than a class hierarchy of "object" vs "frame" vs "module", one
// shape serves all three, selected by what keylist it was built against.
type Context struct {
	series *Series // SeriesFlagArray; slot 0 is the archetype cell

	// keylist maps slot index (1-based; slot 0 is the archetype) to the
	// canonical symbol NodeID naming that slot.
	keylist []NodeID

	// node caches the arena NodeID this context's series was registered
	// under, lazily assigned the first time a WORD-family cell needs to
	// bind against it (see Interpreter.trackContext). Most Varlists never
	// outlive their dispatch and are never assigned one.
	node NodeID
}

// NewContext allocates a Context with cap slots preallocated (slot 0
// reserved for the archetype), mirroring the Varlist/Paramlist
// construction step of action dispatch (§3.4, §4.2 "Action dispatch"
// step 1: "push a new frame ... scan paramlist").
func NewContext(cap int) *Context {
	s := NewArraySeries()
	s.Array = make([]Cell, 1, cap+1)
	s.Array[0] = EndCell
	return &Context{series: s, keylist: make([]NodeID, 1, cap+1)}
}

func (c *Context) Series() *Series { return c.series }

// Len returns the number of bound slots, excluding the archetype.
func (c *Context) Len() int { return len(c.keylist) - 1 }

// Archetype returns the context's self-referential slot-0 cell.
func (c *Context) Archetype() *Cell { return &c.series.Array[0] }

// SetArchetype installs the slot-0 self-reference, done once at
// construction by whichever constructor (MAKE OBJECT!, action dispatch
// frame push) owns the context.
func (c *Context) SetArchetype(archetype Cell) { c.series.Array[0] = archetype }

// AddSlot appends a new keyed slot, returning its 1-based index. Used
// when building a Varlist/Paramlist from a spec block (§3.6).
func (c *Context) AddSlot(key NodeID, value Cell) int {
	c.keylist = append(c.keylist, key)
	c.series.Array = append(c.series.Array, value)
	return len(c.keylist) - 1
}

// IndexOf returns the 1-based slot index bound to the given canonical
// symbol, or 0 if unbound in this context (the BindingID.Index zero
// value doubles as "not found" since slot 0 is always the archetype).
func (c *Context) IndexOf(symbol NodeID) int {
	for i := 1; i < len(c.keylist); i++ {
		if c.keylist[i] == symbol {
			return i
		}
	}
	return 0
}

// KeyAt returns the canonical symbol bound at 1-based slot index i.
func (c *Context) KeyAt(i int) NodeID { return c.keylist[i] }

// Slot returns the cell bound at 1-based slot index i.
func (c *Context) Slot(i int) *Cell { return &c.series.Array[i] }

// Lookup resolves symbol to its slot cell, or nil if the context has no
// such key (the word is unbound in this context, distinct from a bound
// slot holding NULLED).
func (c *Context) Lookup(symbol NodeID) *Cell {
	if i := c.IndexOf(symbol); i != 0 {
		return c.Slot(i)
	}
	return nil
}
