// Package perfmon tracks the core's own throughput counters (bus-slot
// occupancy by owner, blit completions, frames rendered) and, when built
// with the statsview tag, serves them as a live browser chart -- the same
// split the teacher uses between performance/performance.go's always-on
// FPS accounting and statsview's build-tag-gated HTTP server. Nothing here
// runs unless the host calls Launch; the counters themselves are free to
// maintain (a handful of atomic increments per colour clock) and stay
// available even when the chart server is never started.
package perfmon

import (
	"expvar"
	"sync/atomic"

	"github.com/agnusemu/amiga500/chipset/bus"
)

// Counters accumulates the core's running totals. The zero value is ready
// to use; a *Counters is safe for concurrent use by the run loop and any
// goroutine reading it (e.g. an expvar or statsview handler the host wires
// up itself via Publish).
type Counters struct {
	slotsByOwner [9]atomic.Int64 // indexed by bus.Owner
	frames       atomic.Int64
	blitsDone    atomic.Int64
}

// New returns an empty Counters. Every Amiga owns one; nothing is
// published or served until the host asks for it.
func New() *Counters {
	return &Counters{}
}

// Publish registers c under name in the process's expvar registry, so the
// host's own debug/vars endpoint (if it serves one) picks it up. Each name
// may only be published once per process -- call this at most once per
// long-lived Counters, not once per short-lived instance such as a test's
// throwaway Amiga.
func (c *Counters) Publish(name string) {
	expvar.Publish(name, expvar.Func(func() interface{} {
		return c.Snapshot()
	}))
}

// NoteSlot records one colour clock's bus grant, per spec.md §4.b.
func (c *Counters) NoteSlot(owner bus.Owner) {
	if int(owner) < 0 || int(owner) >= len(c.slotsByOwner) {
		return
	}
	c.slotsByOwner[owner].Add(1)
}

// NoteFrame records a completed field/frame swap (spec.md §8.8).
func (c *Counters) NoteFrame() { c.frames.Add(1) }

// NoteBlitDone records a completed Blitter operation.
func (c *Counters) NoteBlitDone() { c.blitsDone.Add(1) }

// Snapshot is a point-in-time, JSON-friendly copy of the running totals.
type Snapshot struct {
	SlotsByOwner map[string]int64 `json:"slots_by_owner"`
	Frames       int64            `json:"frames"`
	BlitsDone    int64            `json:"blits_done"`
}

// Snapshot reads the current totals without blocking the counters.
func (c *Counters) Snapshot() Snapshot {
	s := Snapshot{SlotsByOwner: make(map[string]int64, len(c.slotsByOwner))}
	for i := range c.slotsByOwner {
		s.SlotsByOwner[bus.Owner(i).String()] = c.slotsByOwner[i].Load()
	}
	s.Frames = c.frames.Load()
	s.BlitsDone = c.blitsDone.Load()
	return s
}
