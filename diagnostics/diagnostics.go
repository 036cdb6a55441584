// Package diagnostics renders a point-in-time structural dump of the
// chipset core, the role hardware/*'s MachineInfo() fills for the
// teacher's 6502 machine. It never holds a reference to the live Amiga; a
// Snapshot is taken once and handed to Dump, so a long-running graph
// render can never stall the emulation.
package diagnostics

import (
	"fmt"
	"io"

	"github.com/bradleyjkemp/memviz"

	"github.com/agnusemu/amiga500/chipset"
)

// MachineInfo is a plain, graphable snapshot of the parts of the chipset
// core a host debugger or the "inspect" lifecycle operation of spec.md §6
// cares about: beam position, current bus grant, scheduler backlog and
// Blitter/Copper progress.
type MachineInfo struct {
	BeamH, BeamV  int
	BusOwner      string
	PendingEvents int
	BlitterBusy   bool
	BlitterZero   bool
	DMACON        uint16
	CopperState   string
}

// Snapshot reads a's current structural state. Safe to call from any
// goroutine: every field it reads comes from an accessor the owning
// subsystem already treats as safe for concurrent inspection.
func Snapshot(a *chipset.Amiga) MachineInfo {
	return MachineInfo{
		BeamH:         a.Agnus.Beam.H(),
		BeamV:         a.Agnus.Beam.V(),
		BusOwner:      a.Agnus.Arbiter.Owner().String(),
		PendingEvents: a.Agnus.Scheduler.Pending(),
		BlitterBusy:   a.Blitter.Busy(),
		BlitterZero:   a.Blitter.BlitZero(),
		DMACON:        a.Agnus.DMACONR(),
		CopperState:   a.Agnus.Copper.State().String(),
	}
}

// Dump renders info as a Graphviz .dot graph via memviz -- the same
// structural-dump library the teacher's go.mod carries, used here for the
// purpose its own name suggests rather than left unwired. Pipe the result
// through `dot -Tpng` for a picture of bus/scheduler state at the moment
// Snapshot was taken.
func Dump(w io.Writer, info MachineInfo) error {
	memviz.Map(w, &info)
	return nil
}

// String renders info as a single human-readable line, for logging
// alongside the structured Dump.
func (m MachineInfo) String() string {
	return fmt.Sprintf("beam=(%d,%d) bus=%s pending=%d blitter(busy=%v zero=%v) copper=%s dmacon=%#04x",
		m.BeamH, m.BeamV, m.BusOwner, m.PendingEvents, m.BlitterBusy, m.BlitterZero, m.CopperState, m.DMACON)
}
