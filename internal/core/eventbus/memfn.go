package eventbus

import (
	"sync/atomic"

	"github.com/lsevent/dispatcher/pkg/types"
)

// Token identifies one outstanding allocation made through the installed
// MemoryFuncs. It carries no real memory; the default implementation is a
// monotonic counter, standing in for the pointer a C allocator would
// return, so tests can assert on allocation/free counts without touching
// unsafe.Pointer.
type Token uintptr

// MemoryFuncs is the pluggable global (alloc, realloc, free) triple. It
// exists to let a caller inject out-of-memory failures at specific
// allocation sites — dispatcher creation, event creation, bind, trigger —
// and observe the dispatcher's rollback behavior.
type MemoryFuncs struct {
	// Alloc reserves size units and reports ok=false to simulate
	// exhaustion.
	Alloc func(size int) (tok Token, ok bool)

	// Realloc resizes an existing allocation.
	Realloc func(tok Token, size int) (newTok Token, ok bool)

	// Free releases tok. Freeing an already-freed or unknown token must
	// not panic.
	Free func(tok Token)
}

var (
	activeDispatches atomic.Int32
	memFuncs         atomic.Value
	tokenCounter     atomic.Uintptr
)

func init() {
	memFuncs.Store(defaultMemoryFuncs())
}

func defaultMemoryFuncs() MemoryFuncs {
	return MemoryFuncs{
		Alloc: func(size int) (Token, bool) {
			return Token(tokenCounter.Add(1)), true
		},
		Realloc: func(tok Token, size int) (Token, bool) {
			return tok, true
		},
		Free: func(tok Token) {},
	}
}

// SetMemoryFuncs installs fns as the process-wide allocator triple. Passing
// a zero-value MemoryFuncs (every field nil) restores the defaults.
//
// Installation is refused with types.ErrInvalidState while any dispatcher,
// anywhere in the process, is mid-trigger: swapping allocators under an
// active dispatch would let one moment's Malloc/Strdup calls observe two
// different allocators. Callers should install their test allocator before
// creating dispatchers or triggering events, not from within a callback.
func SetMemoryFuncs(fns MemoryFuncs) error {
	if activeDispatches.Load() > 0 {
		return types.NewError("set_memory_funcs", types.KindInvalidState, types.ErrInvalidState)
	}
	if fns.Alloc == nil && fns.Realloc == nil && fns.Free == nil {
		memFuncs.Store(defaultMemoryFuncs())
		return nil
	}
	memFuncs.Store(fns)
	return nil
}

func currentMemoryFuncs() MemoryFuncs {
	return memFuncs.Load().(MemoryFuncs)
}

// allocToken reserves size units through the installed allocator.
func allocToken(size int) (Token, bool) {
	return currentMemoryFuncs().Alloc(size)
}

// freeToken releases tok through the installed allocator.
func freeToken(tok Token) {
	currentMemoryFuncs().Free(tok)
}
