// Package chipset is the orchestrator of spec.md §4.j: it owns every
// subsystem (memory, Agnus, Blitter, Denise, Paula, the CPU glue) behind
// one container, wires their narrow chipset/bus collaborator interfaces
// together, and drives the single-threaded run loop. Grounded on
// hardware/vcs.go's VCS struct and two-phase "create empty, then Plumb"
// construction idiom.
package chipset

import (
	"sync"
	"sync/atomic"

	"github.com/agnusemu/amiga500/chipset/agnus"
	"github.com/agnusemu/amiga500/chipset/blitter"
	"github.com/agnusemu/amiga500/chipset/cpuglue"
	"github.com/agnusemu/amiga500/chipset/denise"
	"github.com/agnusemu/amiga500/chipset/memory"
	"github.com/agnusemu/amiga500/chipset/paula"
	"github.com/agnusemu/amiga500/config"
	"github.com/agnusemu/amiga500/display"
	"github.com/agnusemu/amiga500/message"
	"github.com/agnusemu/amiga500/perfmon"
)

// Amiga is the single owning container for every emulated subsystem
// (spec.md §9: "a single owning container holds all subsystems; each
// subsystem receives a handle to the container").
type Amiga struct {
	Config config.Config
	Live   *config.Live

	Decoder   *memory.Decoder
	Registers *memory.RegisterFile
	Bus       *memory.Bus
	Potgo     *memory.Potgo

	Agnus   *agnus.Agnus
	Blitter *blitter.Blitter
	Denise  *denise.Denise
	Paula   *paula.Paula
	Glue    *cpuglue.Glue

	Buffers  *display.Buffers
	Messages *message.Queue
	Perf     *perfmon.Counters

	bitplaneDMA *bitplaneDMA
	spriteDMA   *spriteDMA
	diskDMA     *diskDMA

	hires            bool
	ddfStrt, ddfStop uint16

	// stateMu guards state and the suspend/resume reentrancy counter.
	// spec.md §5 describes "a single mutex" covering suspend(),
	// loadSnapshot() and resume() so that a load can be sandwiched between
	// a suspend/resume pair issued by an outer caller (e.g. a debugger
	// stepping while a snapshot is loaded underneath it) without either
	// caller observing the other's transition. A real sync.Mutex would
	// deadlock if held across three separate exported calls from the same
	// goroutine, so reentrancy is modelled explicitly: suspendCounter counts
	// nested suspend() calls, and only the outermost suspend()/resume() pair
	// actually changes state.
	stateMu        sync.Mutex
	suspendCounter int
	preSuspendState message.State

	state message.State

	// runMu guards the transfer of inspect-snapshot structures the host
	// reads while the run loop is executing (spec.md §5). Run() holds it
	// across each CPU step and the colour clocks that step consumes, never
	// across a full frame, so a concurrent Inspect call cannot stall the
	// emulation for long.
	runMu sync.Mutex

	stopRequested atomic.Bool
}

// New validates cfg and builds a fully wired, powered-off Amiga. cpu is
// the host's 68000-class decoder (spec.md §1 puts the decoder itself out
// of scope; only its cpuglue.Executor contract is consumed here).
func New(cfg config.Config, spec display.Spec, cpu cpuglue.Executor) (*Amiga, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Amiga{
		Config:   cfg,
		Live:     config.NewLive(),
		Buffers:  display.NewBuffers(spec),
		Messages: message.NewQueue(32),
		Perf:     perfmon.New(),
		state:    message.PoweredOff,
	}

	a.Decoder = memory.NewDecoder(cfg)
	a.Potgo = &memory.Potgo{}

	// Two-phase construction: Bus is its own RegisterFile's BusSnapshot
	// collaborator, so it must exist (empty) before the RegisterFile that
	// references it, then be plumbed back in.
	a.Bus = memory.NewBus(a.Decoder, nil, nil, nil)
	a.Registers = memory.NewRegisterFile(a.Bus)
	a.Bus.SetRegisters(a.Registers)

	copperBus := a.Bus // *memory.Bus implements agnus.CopperBus
	a.Agnus = agnus.New(spec, copperBus)
	a.Bus.SetArbiter(a.Agnus.Arbiter)
	a.Bus.SetClockAdvancer(a.Agnus)

	a.Blitter = blitter.New(a.Bus)
	a.Blitter.SetAccuracy(config.BlitterAccurate)

	a.Denise = denise.New(spec, a.Buffers)

	a.Paula = paula.New(a.Bus, 0)

	a.Glue = cpuglue.New(cpu, a.Bus, 256)

	a.bitplaneDMA = newBitplaneDMA(a.Bus, a.Denise.Bitplanes, a.Agnus.Beam)
	a.spriteDMA = newSpriteDMA(a.Bus, &a.Denise.Sprites, a.Agnus.Beam, 0x18)
	a.diskDMA = newDiskDMA(a.Bus)
	a.diskDMA.OnBlockDone(a.Paula.RequestDiskBlockDone)

	a.Agnus.SetBlitterSource(a.Blitter)
	a.Agnus.SetBitplaneSource(a.bitplaneDMA)
	a.Agnus.SetSpriteSource(a.spriteDMA)
	a.Agnus.SetDiskSource(a.diskDMA)
	a.Agnus.SetAudioSource(a.Paula.SlotSource())
	a.Agnus.OnNoteBusValue(a.Bus.NoteBusValue)
	a.Agnus.OnVerticalBlank(a.onVerticalBlank)

	a.Blitter.OnDone(func() {
		a.Paula.RequestBlitterDone()
		a.Perf.NoteBlitDone()
	})
	a.Paula.Interrupts.OnLevelChange(a.Glue.SetInterruptLevel)

	a.wireRegisters()

	return a, nil
}

// onVerticalBlank fires the VERTB interrupt and swaps the frame buffers,
// per spec.md §4.j step 4 / §8.8.
func (a *Amiga) onVerticalBlank() {
	a.Paula.RequestVerticalBlank()
	a.Buffers.Swap(a.interlacedShortField())
	a.Paula.MixSample()
	a.Denise.Collision.ClearOnVerticalBlank()
	a.Potgo.OnVerticalBlank()
	a.Perf.NoteFrame()
}

// interlacedShortField reports which field the buffer swap should target.
// Interlace field alternation is not separately modelled; progressive mode
// (the only mode this core drives) always targets the long field.
func (a *Amiga) interlacedShortField() bool { return false }
