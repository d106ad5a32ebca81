package core

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Interpreter bundles all process-wide state: the node arena every Cell/
// Series/Context lives in, the canon symbol table, the data stack, the
// GC, and the action table. It is single-threaded-cooperative internally
// (§5 "Scheduling model"), and uses a weight-1 semaphore to serialize
// concurrent host goroutines that call into it rather than letting the
// evaluator itself be reentered concurrently.
//
// Grounded on hivekit's use of atomic/context-guarded state to bound a
// single in-flight operation at a time, adapted here from "cap concurrent
// decode work" to "only one goroutine runs the evaluator loop at once",
// using golang.org/x/sync/semaphore.Weighted(1) as the actual gate
// instead of a hand-rolled mutex, since the teacher's stack already
// favors x/sync-shaped concurrency primitives over ad hoc locking.
type Interpreter struct {
	Arena   *nodeArena
	Symbols *symbolTable
	Stack   *DataStack
	GC      *GC
	Config  *Config

	actions []*Action // index 0 reserved; KindAction cells' First indexes here

	// contexts maps a tracked Context's node back to the *Context itself,
	// so a bare specifier NodeID (e.g. Feed.Specifier(), a PATH!'s
	// Binding) can be resolved back to its keylist for an IndexOf lookup
	// -- a Context's keylist lives only on the Go struct, not in its
	// backing series, so this registry is the only way back from "just a
	// NodeID" to "a symbol-searchable context".
	contexts map[NodeID]*Context

	activeFrame *Frame

	gate   *semaphore.Weighted
	halted bool
}

func NewInterpreter(cfg *Config) *Interpreter {
	if cfg == nil {
		cfg = NewConfig()
	}
	arena := newNodeArena()
	vm := &Interpreter{
		Arena:    arena,
		Symbols:  newSymbolTable(arena),
		Stack:    NewDataStack(256),
		Config:   cfg,
		actions:  make([]*Action, 1),
		contexts: make(map[NodeID]*Context),
		gate:     semaphore.NewWeighted(1),
	}
	vm.GC = NewGC(arena, cfg)
	return vm
}

// RegisterAction interns action into the action table and returns the
// NodeID a KindAction cell should carry in its First field.
func (vm *Interpreter) RegisterAction(a *Action) NodeID {
	vm.actions = append(vm.actions, a)
	return NodeID(len(vm.actions) - 1)
}

func (vm *Interpreter) actionAt(id NodeID) *Action {
	if int(id) <= 0 || int(id) >= len(vm.actions) {
		return nil
	}
	return vm.actions[id]
}

// ActionValue builds a KindAction cell referencing a.
func (vm *Interpreter) ActionValue(a *Action) Cell {
	return Cell{Kind: KindAction, First: vm.RegisterAction(a)}
}

// trackContext registers ctx's backing series in the node arena (if not
// already registered) so its slots become reachable by a BindingID, and
// returns that NodeID.
func (vm *Interpreter) trackContext(ctx *Context) NodeID {
	if ctx == nil {
		return NilNode
	}
	if ctx.node != NilNode {
		return ctx.node
	}
	id := vm.Arena.AllocSeries(ctx.series)
	vm.Arena.SetFlags(id, NodeFlagManaged)
	ctx.node = id
	vm.contexts[id] = ctx
	return id
}

// contextAt resolves a tracked context's node back to its *Context, the
// reverse of trackContext -- used to recover a keylist from a bare
// specifier NodeID (Feed.Specifier(), a word's own Binding.Context)
// rather than requiring the caller already hold the *Context value.
func (vm *Interpreter) contextAt(id NodeID) *Context {
	if id == NilNode {
		return nil
	}
	return vm.contexts[id]
}

func (vm *Interpreter) contextNodeOf(ctx *Context) NodeID {
	if ctx == nil {
		return NilNode
	}
	return ctx.node
}

// Run evaluates series to completion under specifier, returning the
// final step's result. It acquires the single-flight gate for its
// duration so concurrent Host-API calls from multiple goroutines
// serialize rather than interleave evaluator steps (§5 "single
// evaluator stack ... at a time").
func (vm *Interpreter) Run(ctx context.Context, series *Series, specifier NodeID) (Cell, error) {
	return vm.RunFeed(ctx, NewArrayFeed(series, specifier))
}

// RunFeed is Run generalized to any Feed, including a variadic one built
// over a hostapi.argSource (§4.2 "Feed abstraction", §4.5 "Variadic
// evaluator entrypoints"): the array-backed Run above is the common case
// of this, not a separate code path.
func (vm *Interpreter) RunFeed(ctx context.Context, feed *Feed) (Cell, error) {
	if err := vm.gate.Acquire(ctx, 1); err != nil {
		return Cell{}, err
	}
	defer vm.gate.Release(1)

	var out Cell = EndCell
	var lastErr error

	for !feed.AtEnd() {
		select {
		case <-ctx.Done():
			vm.halted = true
		default:
		}
		if vm.halted {
			vm.halted = false
			return out, NewResourceError("evaluation halted")
		}

		frame := vm.NewFrame(feed, &out, nil)
		vm.activeFrame = frame
		threw, err := frame.Step()
		vm.activeFrame = nil
		if err != nil {
			lastErr = err
			break
		}
		if threw {
			lastErr = NewUserError("unhandled throw reached top level", Span{})
			break
		}
	}
	return out, lastErr
}

// Halt requests that the next evaluator step raise (§5 "HALT is a signal
// that causes the next step to raise").
func (vm *Interpreter) Halt() { vm.halted = true }
