package util

import (
	"sync/atomic"

	"github.com/petermattis/goid"
)

// OwnerGuard detects, rather than prevents, a second goroutine calling into
// a structure declared single-threaded. Unlike ReentryLock it never blocks:
// the table it protects must not suspend, only refuse to be misused.
type OwnerGuard struct {
	owner atomic.Int64
}

// Check panics if called from a different goroutine than the one that made
// the first call.
func (g *OwnerGuard) Check() {
	id := goid.Get()
	if g.owner.CompareAndSwap(0, id) {
		return
	}
	if g.owner.Load() != id {
		panic("aggregate hash table accessed from more than one goroutine")
	}
}
