package blitter

import (
	"github.com/agnusemu/amiga500/config"
)

// Memory is the narrow contract the Blitter needs from chipset/memory: word
// access to Chip RAM at arbitrary addresses, with no arbitration (the
// Blitter already has the bus by the time it calls these, having been
// granted a slot by Agnus).
type Memory interface {
	ReadWord(addr uint32) uint16
	WriteWord(addr uint32, value uint16)
}

// Blitter is the micro-programmed block-transfer engine of spec.md §4.f.
type Blitter struct {
	mem Memory

	con0, con1 uint16
	control    Control

	ptrA, ptrB, ptrC, ptrD uint32
	modA, modB, modC, modD int32

	firstWordMask uint16
	lastWordMask  uint16

	width  int // words per row
	height int // rows

	x, y int // remaining column/row counters

	line lineParams

	oldA, oldB uint16
	newA, newB uint16 // raw fetched words awaiting their HOLD stage
	ahold, bhold, chold, dhold uint16
	fillCarry bool
	blitZero  bool

	busy bool

	prog []MicroOp
	pc   int

	busCyclesRemaining int

	accuracy config.BlitterAccuracy

	onDone func()
}

// New returns an idle Blitter.
func New(mem Memory) *Blitter {
	return &Blitter{mem: mem}
}

// SetAccuracy selects the cycle-accurate or fast-bus-only execution path,
// per the "Fast path" paragraph of spec.md §4.f.
func (b *Blitter) SetAccuracy(a config.BlitterAccuracy) { b.accuracy = a }

// OnDone registers the callback fired when a blit completes (BLTDONE,
// step 8): raise the Blitter-done interrupt.
func (b *Blitter) OnDone(f func()) { b.onDone = f }

// SetControl applies BLTCON0/BLTCON1.
func (b *Blitter) SetControl(con0, con1 uint16) {
	b.con0, b.con1 = con0, con1
	b.control = DecodeControl(con0, con1)
}

// SetPointers sets the four channel pointers (BLTxPTH/L).
func (b *Blitter) SetPointers(a, bb, c, d uint32) {
	b.ptrA, b.ptrB, b.ptrC, b.ptrD = a, bb, c, d
}

// SetModulos sets the four channel modulos (BLTxMOD), sign-extended from
// the 16-bit register value.
func (b *Blitter) SetModulos(a, bb, c, d int16) {
	b.modA, b.modB, b.modC, b.modD = int32(a), int32(bb), int32(c), int32(d)
}

// SetMasks sets BLTAFWM/BLTALWM, the first/last word masks applied to the A
// channel.
func (b *Blitter) SetMasks(first, last uint16) {
	b.firstWordMask, b.lastWordMask = first, last
}

// Busy reports the BBUSY status bit.
func (b *Blitter) Busy() bool { return b.busy }

// BlitZero reports the BZERO status bit: true if every D-channel write (or
// the whole blit, if D is disabled) produced only zero words.
func (b *Blitter) BlitZero() bool { return b.blitZero }

// Launch starts a blit from a BLTSIZE write: width/height give the blit's
// dimensions in words and rows (height 0 means 1024, per real hardware's
// wraparound, reproduced here as a straightforward size already resolved by
// the caller).
func (b *Blitter) Launch(width, height int) {
	b.width, b.height = width, height
	b.x, b.y = width, height
	b.oldA, b.oldB = 0, 0
	b.blitZero = true
	b.busy = true
	b.fillCarry = b.control.FillCarry

	if b.control.Line {
		b.launchLine()
		return
	}
	b.launchCopy()
}

func (b *Blitter) launchCopy() {
	mask := shapeMask(b.control)

	if b.accuracy == config.BlitterFast {
		k, tail := shapeCycleCounts(mask)
		b.runCopySynchronous()
		b.busCyclesRemaining = k*b.width*b.height + tail
		b.busy = true // runCopySynchronous cleared it; stay busy while the bus cycles burn
		b.prog = nil
		return
	}

	b.prog = buildCopyMicroprogram(mask)
	b.pc = 0
}

// runCopySynchronous executes the entire copy blit immediately, producing
// identical final memory contents and BZERO state to the accurate
// micro-programmed path (spec.md §8: the Blitter checksum law). It is used
// directly by the Fast accuracy setting and indirectly as the reference
// behaviour the accurate path's per-slot stepping must reproduce one word
// at a time.
func (b *Blitter) runCopySynchronous() {
	aPtr, bPtr, cPtr, dPtr := b.ptrA, b.ptrB, b.ptrC, b.ptrD
	oldA, oldB := uint16(0), uint16(0)

	dir := int32(2)
	if b.control.Descending {
		dir = -2
	}

	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			var aWord, bWord, cWord uint16
			if b.control.UseA {
				aWord = b.mem.ReadWord(aPtr)
				aPtr = addPtr(aPtr, dir)
			}
			if b.control.UseB {
				bWord = b.mem.ReadWord(bPtr)
				bPtr = addPtr(bPtr, dir)
			}
			if b.control.UseC {
				cWord = b.mem.ReadWord(cPtr)
				cPtr = addPtr(cPtr, dir)
			}

			wordMask := b.wordMaskFor(col)
			ahold, rem := barrelShift(aWord, oldA, wordMask, b.control.ASH, b.control.Descending)
			oldA = rem
			bhold, remB := barrelShift(bWord, oldB, 0xFFFF, b.control.BSH, b.control.Descending)
			oldB = remB

			dhold := minterm(ahold, bhold, cWord, b.control.Minterm)
			if b.control.FillEnable {
				dhold, b.fillCarry = areaFill(dhold, b.fillCarry, b.control.FillExclusive)
			}

			if dhold != 0 {
				b.blitZero = false
			}

			if b.control.UseD {
				b.mem.WriteWord(dPtr, dhold)
				dPtr = addPtr(dPtr, dir)
			}
		}

		if b.control.FillEnable && !b.control.FillCarry {
			b.fillCarry = false // fill state does not propagate across rows unless FCI forces it
		}

		aPtr = addPtr(aPtr, b.modA)
		bPtr = addPtr(bPtr, b.modB)
		cPtr = addPtr(cPtr, b.modC)
		dPtr = addPtr(dPtr, b.modD)
	}

	b.busy = false
	if b.onDone != nil {
		b.onDone()
	}
}

func addPtr(ptr uint32, delta int32) uint32 {
	return uint32(int64(ptr) + int64(delta))
}

func (b *Blitter) wordMaskFor(col int) uint16 {
	mask := uint16(0xFFFF)
	if col == 0 {
		mask &= b.firstWordMask
	}
	if col == b.width-1 {
		mask &= b.lastWordMask
	}
	return mask
}

// WantsSlot implements agnus.SlotSource: the Blitter wants the bus whenever
// a blit is in progress, whether stepping an accurate micro-program or just
// burning the Fast path's remaining bus cycles.
func (b *Blitter) WantsSlot(v, h int) bool {
	if !b.busy {
		return false
	}
	if b.prog == nil {
		return b.busCyclesRemaining > 0
	}
	return true
}

// RunSlot implements agnus.SlotSource.
func (b *Blitter) RunSlot() {
	if b.prog == nil {
		if b.busCyclesRemaining > 0 {
			b.busCyclesRemaining--
			if b.busCyclesRemaining == 0 {
				b.busy = false
				if b.control.Line && b.onDone != nil {
					b.onDone()
				}
			}
		}
		return
	}
	b.stepAccurate()
}

// stepAccurate applies one micro-instruction of the cycle-accurate copy
// micro-program, per spec.md §4.f steps 1-8. FETCH_x and its matching
// HOLD_x are usually separate instructions within the same word (the
// shapeTable in microprogram.go packs them the way real hardware's bus
// slots do), but always resolve before that word's HOLD_D and WRITE_D, so
// every word's D output is computed and written from its own A/B/C data,
// never a neighbouring word's.
func (b *Blitter) stepAccurate() {
	op := b.prog[b.pc]

	col := b.width - b.x

	if op&opFetchC != 0 {
		b.chold = b.mem.ReadWord(b.ptrC)
		b.ptrC = addPtr(b.ptrC, b.dirDelta())
	}
	if op&opFetchA != 0 {
		b.newA = b.mem.ReadWord(b.ptrA)
		b.ptrA = addPtr(b.ptrA, b.dirDelta())
	}
	if op&opFetchB != 0 {
		b.newB = b.mem.ReadWord(b.ptrB)
		b.ptrB = addPtr(b.ptrB, b.dirDelta())
	}
	if op&opHoldA != 0 {
		held, rem := barrelShift(b.newA, b.oldA, b.wordMaskFor(col), b.control.ASH, b.control.Descending)
		b.ahold, b.oldA = held, rem
	}
	if op&opHoldB != 0 {
		held, rem := barrelShift(b.newB, b.oldB, 0xFFFF, b.control.BSH, b.control.Descending)
		b.bhold, b.oldB = held, rem
	}
	if op&opHoldD != 0 {
		b.dhold = minterm(b.ahold, b.bhold, b.chold, b.control.Minterm)
		if b.control.FillEnable {
			b.dhold, b.fillCarry = areaFill(b.dhold, b.fillCarry, b.control.FillExclusive)
		}
		if b.dhold != 0 {
			b.blitZero = false
		}
	}
	if op&opWriteD != 0 {
		b.mem.WriteWord(b.ptrD, b.dhold)
		b.ptrD = addPtr(b.ptrD, b.dirDelta())
	}

	if op&opRepeat != 0 {
		b.x--
		if b.x == 0 {
			b.x = b.width
			b.y--
			b.ptrA = addPtr(b.ptrA, b.modA)
			b.ptrB = addPtr(b.ptrB, b.modB)
			b.ptrC = addPtr(b.ptrC, b.modC)
			b.ptrD = addPtr(b.ptrD, b.modD)
			if b.control.FillEnable && !b.control.FillCarry {
				b.fillCarry = false // fill state does not propagate across rows unless FCI forces it
			}
			if b.y == 0 {
				// Last word done: fall through into the shape's drain
				// tail instead of rewinding, per spec.md §4.f step 7.
				b.pc++
				return
			}
		}
		b.pc = 0
		return
	}

	if op&opDone != 0 {
		b.busy = false
		if b.onDone != nil {
			b.onDone()
		}
		return
	}

	b.pc++
}

func (b *Blitter) dirDelta() int32 {
	if b.control.Descending {
		return -2
	}
	return 2
}
