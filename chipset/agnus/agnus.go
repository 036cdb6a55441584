package agnus

import (
	"github.com/agnusemu/amiga500/chipset/bus"
	"github.com/agnusemu/amiga500/display"
)

// DMACON bit positions (spec.md Supplemented Feature: DMACON master DMAEN
// gate). Only the bits this core dispatches on are named.
const (
	dmaconBBUSY  = 1 << 14
	dmaconBZERO  = 1 << 13
	dmaconBLTPRI = 1 << 10
	dmaconDMAEN  = 1 << 9
	dmaconBPLEN  = 1 << 8
	dmaconCOPEN  = 1 << 7
	dmaconBLTEN  = 1 << 6
	dmaconSPREN  = 1 << 5
	dmaconDSKEN  = 1 << 4
	dmaconAUD3EN = 1 << 3
	dmaconAUD2EN = 1 << 2
	dmaconAUD1EN = 1 << 1
	dmaconAUD0EN = 1 << 0
)

// SlotSource is implemented by a DMA-driven component (disk, audio,
// sprite, bitplane, blitter) that wants to be offered this colour clock's
// bus slot, in the caller's fixed priority position.
type SlotSource interface {
	// WantsSlot reports whether the component needs the bus this colour
	// clock, given the beam position.
	WantsSlot(v, h int) bool
	// RunSlot is called once the component has been granted the bus.
	RunSlot()
}

// Agnus is the DMA arbiter, event scheduler, raster beam and Copper
// container of spec.md §4.b-e, wired together the way hardware/vcs.go wires
// the teacher's TIA/RIOT/CPU: one container, narrow collaborator
// interfaces, no back-pointers.
type Agnus struct {
	Arbiter   *Arbiter
	Scheduler *Scheduler
	Beam      *Beam
	Copper    *Copper

	dmacon uint16

	refresh  SlotSource
	disk     SlotSource
	audio    SlotSource
	sprite   SlotSource
	bitplane SlotSource
	blitter  SlotSource

	busValue     uint16
	onNoteBus    func(value uint16, ownedByDMA bool)
	onVBlank     func()
}

// New returns an Agnus for the given display timing. Collaborators are
// wired in afterward via the Set* methods once they exist, mirroring the
// teacher's two-phase VCS construction (create empty, then Plumb).
func New(spec display.Spec, copperBus CopperBus) *Agnus {
	a := &Agnus{
		Arbiter:   NewArbiter(),
		Scheduler: NewScheduler(),
		Beam:      NewBeam(spec),
	}
	a.Copper = NewCopper(copperBus)
	a.Beam.OnFrameChange(func() {
		if a.onVBlank != nil {
			a.onVBlank()
		}
	})
	return a
}

// SetDMACON applies a CPU write to DMACON, honoring the set/clear
// convention: bit 15 high ORs the incoming bits in, bit 15 low AND-NOTs
// them out. DMAEN (bit 9) is the master gate: when clear, nothing below it
// -- Copper, Blitter, bitplane, sprite, disk, audio -- requests the bus at
// all, regardless of their individual enable bits.
func (a *Agnus) SetDMACON(value uint16) {
	if value&0x8000 != 0 {
		a.dmacon |= value &^ 0x8000
	} else {
		a.dmacon &^= value
	}
}

// DMACONR returns the DMACON bits as last written through SetDMACON. Agnus
// does not track the Blitter's BBUSY/BZERO status; the orchestrator's
// DMACONR register handler merges those in from the Blitter.
func (a *Agnus) DMACONR() uint16 {
	return a.dmacon
}

func (a *Agnus) masterEnabled() bool {
	return a.dmacon&dmaconDMAEN != 0
}

// SetRefreshSource, SetDiskSource, SetAudioSource, SetSpriteSource and
// SetBitplaneSource wire the DMA-driven collaborators that fill the
// remaining priority slots of spec.md §4.b.
func (a *Agnus) SetRefreshSource(s SlotSource)  { a.refresh = s }
func (a *Agnus) SetDiskSource(s SlotSource)     { a.disk = s }
func (a *Agnus) SetAudioSource(s SlotSource)    { a.audio = s }
func (a *Agnus) SetSpriteSource(s SlotSource)   { a.sprite = s }
func (a *Agnus) SetBitplaneSource(s SlotSource) { a.bitplane = s }
func (a *Agnus) SetBlitterSource(s SlotSource)  { a.blitter = s }

// OnNoteBusValue registers the callback used to forward the colour clock's
// resolved bus value to memory.Bus.NoteBusValue, for the custom-register
// read quirk.
func (a *Agnus) OnNoteBusValue(f func(value uint16, ownedByDMA bool)) {
	a.onNoteBus = f
}

// OnVerticalBlank registers a callback fired once per frame when the beam
// wraps, used by the orchestrator to swap frame buffers and by Paula's
// Potgo pot-port simulation.
func (a *Agnus) OnVerticalBlank(f func()) {
	a.onVBlank = f
}

// AdvanceOneColorClock implements bus.ClockAdvancer: it resolves this
// colour clock's bus grant in the fixed priority order of spec.md §4.b,
// runs whichever component won, ticks the scheduler and Copper, and moves
// the beam forward by one position.
func (a *Agnus) AdvanceOneColorClock() {
	a.Arbiter.BeginColorClock()

	v, h := a.Beam.V(), a.Beam.H()

	// Refresh is unconditional -- it isn't gated by DMACON at all on real
	// hardware, and has no Non-goal excluding it.
	if a.refresh != nil && a.refresh.WantsSlot(v, h) {
		if a.Arbiter.TryAllocate(bus.Refresh) {
			a.refresh.RunSlot()
		}
	}

	if a.masterEnabled() {
		if a.dmacon&dmaconDSKEN != 0 && a.disk != nil && a.disk.WantsSlot(v, h) {
			if a.Arbiter.TryAllocate(bus.Disk) {
				a.disk.RunSlot()
			}
		}
		if a.audio != nil && a.audio.WantsSlot(v, h) {
			if a.Arbiter.TryAllocate(bus.Audio) {
				a.audio.RunSlot()
			}
		}
		if a.dmacon&dmaconSPREN != 0 && a.sprite != nil && a.sprite.WantsSlot(v, h) {
			if a.Arbiter.TryAllocate(bus.Sprite) {
				a.sprite.RunSlot()
			}
		}
		if a.dmacon&dmaconBPLEN != 0 && a.bitplane != nil && a.bitplane.WantsSlot(v, h) {
			if a.Arbiter.TryAllocate(bus.Bitplane) {
				a.bitplane.RunSlot()
			}
		}
		if a.dmacon&dmaconCOPEN != 0 {
			a.Copper.Step(a.Arbiter, v, h)
		}
		if a.dmacon&dmaconBLTEN != 0 && a.blitter != nil && a.blitter.WantsSlot(v, h) {
			if a.Arbiter.TryAllocate(bus.Blitter) {
				a.blitter.RunSlot()
			}
		}
	}

	if a.onNoteBus != nil {
		a.onNoteBus(a.busValue, !a.Arbiter.IsFree() && a.Arbiter.Owner() != bus.CPU)
	}

	a.Scheduler.Tick()
	a.Beam.Advance()
}
