package memory

import (
	"github.com/agnusemu/amiga500/chipset/bus"
	"github.com/agnusemu/amiga500/logger"
)

// Bus is the single entry point the CPU glue uses to access the whole
// 24-bit address space: Chip/Slow/Fast RAM, ROM, CIA/RTC windows and the
// custom register file, all behind one decode table (spec.md §4.a).
type Bus struct {
	decoder *Decoder
	regs    *RegisterFile

	arbiter  bus.Arbiter
	advancer bus.ClockAdvancer

	ciaRead  func(addr uint32) uint8
	ciaWrite func(addr uint32, value uint8)

	lastBusValue uint16
	lastOwnedDMA bool
}

// NewBus wires a Decoder and RegisterFile into a Bus. arbiter/advancer are
// supplied by chipset.Amiga once Agnus exists; both may be nil during unit
// tests that only exercise RAM/ROM decode.
func NewBus(decoder *Decoder, regs *RegisterFile, arbiter bus.Arbiter, advancer bus.ClockAdvancer) *Bus {
	return &Bus{decoder: decoder, regs: regs, arbiter: arbiter, advancer: advancer}
}

// SetRegisters completes two-phase construction for the case where the
// RegisterFile's BusSnapshot collaborator is the Bus itself: callers build
// an empty Bus, construct the RegisterFile against it, then plumb it back
// in, mirroring the teacher's "create empty, then Plumb" VCS idiom.
func (b *Bus) SetRegisters(regs *RegisterFile) {
	b.regs = regs
}

// SetArbiter and SetClockAdvancer complete two-phase construction for the
// arbiter/advancer collaborators, which come from Agnus and may not exist
// yet when the Bus itself is constructed.
func (b *Bus) SetArbiter(arbiter bus.Arbiter)       { b.arbiter = arbiter }
func (b *Bus) SetClockAdvancer(a bus.ClockAdvancer) { b.advancer = a }

// SetCIAHandlers attaches the CIA read/write callbacks for the CIA page
// window. A nil handler makes CIA accesses decode as unmapped.
func (b *Bus) SetCIAHandlers(read func(addr uint32) uint8, write func(addr uint32, value uint8)) {
	b.ciaRead = read
	b.ciaWrite = write
}

// NoteBusValue records the value a DMA slot drove onto the bus at the
// current color clock, for the RegisterFile read-quirk and for the
// register-change replay log's "value that was actually latched" needs.
// Agnus calls this once per color clock after resolving the slot owner.
func (b *Bus) NoteBusValue(value uint16, ownedByDMA bool) {
	b.lastBusValue = value
	b.lastOwnedDMA = ownedByDMA
}

// LastBusValue implements BusSnapshot for RegisterFile.
func (b *Bus) LastBusValue() (uint16, bool) {
	return b.lastBusValue, b.lastOwnedDMA
}

// waitForSlot implements the cooperative bus-wait of spec.md §5: a CPU
// access that loses 68000/Agnus arbitration simply advances the machine one
// color clock at a time until the arbiter grants it the bus, which from the
// guest's perspective is indistinguishable from the CPU stalling.
func (b *Bus) waitForSlot() {
	if b.arbiter == nil {
		return
	}
	for !b.arbiter.TryAllocate(bus.CPU) {
		if b.advancer != nil {
			b.advancer.AdvanceOneColorClock()
		}
	}
}

// Read8 performs a CPU byte read.
func (b *Bus) Read8(addr uint32) uint8 {
	b.waitForSlot()
	return b.read8(addr)
}

// Write8 performs a CPU byte write.
func (b *Bus) Write8(addr uint32, value uint8) {
	b.waitForSlot()
	b.write8(addr, value)
}

// Read16 performs a CPU word read. An odd address is flagged -- real 68000
// buses fault on unaligned word accesses, but this core tolerates it by
// rounding down and logging each occurrence, since unaligned 16-bit access is not a
// documented invariant either way.
func (b *Bus) Read16(addr uint32) uint16 {
	b.waitForSlot()
	if addr&1 != 0 {
		logger.Logf(logger.Allow, "memory", "unaligned 16-bit read at %#08x", addr)
		addr &^= 1
	}
	hi := b.read8(addr)
	lo := b.read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// Write16 performs a CPU word write, with the same unaligned-address
// tolerance as Read16.
func (b *Bus) Write16(addr uint32, value uint16) {
	b.waitForSlot()
	if addr&1 != 0 {
		logger.Logf(logger.Allow, "memory", "unaligned 16-bit write at %#08x", addr)
		addr &^= 1
	}
	if b.decoder.regionAt(addr).area == Custom {
		b.regs.Write(uint16(addr&0x1FE), value)
		return
	}
	b.write8(addr, uint8(value>>8))
	b.write8(addr+1, uint8(value))
}

// Read32 performs a CPU longword read as two high-word-first 16-bit
// accesses, matching the 68000's actual bus cycle decomposition.
func (b *Bus) Read32(addr uint32) uint32 {
	hi := b.Read16(addr)
	lo := b.Read16(addr + 2)
	return uint32(hi)<<16 | uint32(lo)
}

// Write32 performs a CPU longword write as two high-word-first 16-bit
// accesses.
func (b *Bus) Write32(addr uint32, value uint32) {
	b.Write16(addr, uint16(value>>16))
	b.Write16(addr+2, uint16(value))
}

// read8 is the non-arbitrating core of Read8, reused by Read16/Read32 (which
// have already waited for a slot) and by Spy8.
func (b *Bus) read8(addr uint32) uint8 {
	r := b.decoder.regionAt(addr)
	switch r.area {
	case Chip, Fast, Slow, KickstartROM, WritableOnceROM, ExtendedROM:
		if len(r.store) == 0 {
			return 0xFF
		}
		return r.store[(addr)&r.sizeMask]
	case CIA:
		if b.ciaRead != nil {
			return b.ciaRead(addr)
		}
		return 0xFF
	case RTC:
		return 0xFF // RTC is out of scope; reads float high per spec.md §1
	case Custom:
		off := uint16(addr & 0x1FE)
		word := b.regs.Read(off)
		if addr&1 == 0 {
			return uint8(word >> 8)
		}
		return uint8(word)
	default:
		return 0xFF
	}
}

// write8 is the non-arbitrating core of Write8, and of Write16/Write32
// outside the custom register page (a word write there goes to the
// register file as one 16-bit write). A byte write
// to a custom register replicates into both halves of the 16-bit register,
// per spec.md §4.a -- the real hardware has no notion of a byte-wide custom
// register write, it just drives the same byte on both halves of the data
// bus.
func (b *Bus) write8(addr uint32, value uint8) {
	r := b.decoder.regionAt(addr)
	switch r.area {
	case Chip, Fast, Slow:
		if len(r.store) != 0 {
			r.store[addr&r.sizeMask] = value
		}
	case WritableOnceROM:
		if len(r.store) != 0 && !b.decoder.womLocked {
			r.store[addr&r.sizeMask] = value
		}
	case KickstartROM, ExtendedROM:
		// ROM is not writable; ignored.
	case CIA:
		if b.ciaWrite != nil {
			b.ciaWrite(addr, value)
		}
	case Custom:
		off := uint16(addr & 0x1FE)
		word := uint16(value)<<8 | uint16(value)
		b.regs.Write(off, word)
	default:
		// Unmapped / RTC / Autoconfig writes are silently dropped.
	}
}

// Spy8 reads a byte without arbitrating for the bus or triggering register
// read side effects -- for diagnostics and snapshot dumps.
func (b *Bus) Spy8(addr uint32) uint8 {
	r := b.decoder.regionAt(addr)
	switch r.area {
	case Chip, Fast, Slow, KickstartROM, WritableOnceROM, ExtendedROM:
		if len(r.store) == 0 {
			return 0xFF
		}
		return r.store[addr&r.sizeMask]
	case Custom:
		off := uint16(addr & 0x1FE)
		word := b.regs.Peek(off)
		if addr&1 == 0 {
			return uint8(word >> 8)
		}
		return uint8(word)
	default:
		return 0xFF
	}
}

// FetchWord performs a non-arbitrating DMA word read -- the Copper, the
// Blitter and the bitplane/sprite/audio DMA channels already own this
// color clock's bus slot by construction (Agnus only runs them once
// TryAllocate has granted it), so there is nothing to wait for.
func (b *Bus) FetchWord(addr uint32) uint16 {
	hi := b.read8(addr)
	lo := b.read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// ReadWord is FetchWord under the name blitter.Memory and paula.AudioMemory
// expect; all three interfaces describe the same non-arbitrating DMA word
// access, just from a different collaborator's point of view.
func (b *Bus) ReadWord(addr uint32) uint16 { return b.FetchWord(addr) }

// WriteWord performs a non-arbitrating DMA word write, the write-side
// counterpart of FetchWord, satisfying blitter.Memory and paula.AudioMemory
// (for the Blitter's destination writes and, in principle, sample-driven
// writeback) without going through the CPU bus-wait path.
func (b *Bus) WriteWord(addr uint32, value uint16) {
	b.write8(addr, uint8(value>>8))
	b.write8(addr+1, uint8(value))
}

// WriteRegister implements agnus.CopperBus: a Copper MOVE writes directly
// to a custom register offset (0x000-0x1FE within the $DFF000 page). danger
// reports whether CDANG (Copper danger mode) is set; without it, the
// Copper is barred from writing any register below $80 (the low block
// holding COPCON, the Blitter and disk registers), matching real
// hardware's guard against a runaway Copper list.
func (b *Bus) WriteRegister(dest uint16, value uint16, danger bool) bool {
	if !danger && copperGuarded(dest) {
		return false
	}
	b.regs.Write(dest, value)
	return true
}

func copperGuarded(offset uint16) bool {
	return offset < 0x80
}

// AreaAt exposes the decoder's region classification for diagnostics.
func (b *Bus) AreaAt(addr uint32) Area {
	return b.decoder.AreaAt(addr)
}

// Decoder exposes the underlying Decoder for components (e.g. the CIA glue)
// that need to drive the overlay line directly.
func (b *Bus) Decoder() *Decoder {
	return b.decoder
}

// Registers exposes the underlying RegisterFile so components can Describe
// and register OnRead/OnWrite handlers during wiring.
func (b *Bus) Registers() *RegisterFile {
	return b.regs
}
