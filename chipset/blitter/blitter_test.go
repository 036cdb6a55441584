package blitter

import (
	"testing"

	"github.com/agnusemu/amiga500/config"
	"github.com/agnusemu/amiga500/internal/testhelp"
)

type fakeMemory struct {
	words map[uint32]uint16
}

func newFakeMemory() *fakeMemory {
	return &fakeMemory{words: make(map[uint32]uint16)}
}

func (m *fakeMemory) ReadWord(addr uint32) uint16   { return m.words[addr] }
func (m *fakeMemory) WriteWord(addr uint32, v uint16) { m.words[addr] = v }

func (m *fakeMemory) snapshot() map[uint32]uint16 {
	out := make(map[uint32]uint16, len(m.words))
	for k, v := range m.words {
		out[k] = v
	}
	return out
}

// runCopyBlit builds and launches a simple A-OR-B copy blit of the given
// size against fresh source data, driving the accurate path one slot at a
// time via WantsSlot/RunSlot.
func runCopyBlit(accuracy config.BlitterAccuracy, width, height int) *fakeMemory {
	mem := newFakeMemory()
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			addr := uint32(row*width*2 + col*2)
			mem.WriteWord(addr, uint16(0x1000+row*16+col))
			mem.WriteWord(addr+0x1000, uint16(0x2000+row*16+col))
		}
	}

	bl := New(mem)
	bl.SetAccuracy(accuracy)
	// con0: use A, B and D; minterm 0xFE sets D wherever A, B or C has a 1,
	// and C is off, so D = A OR B.
	con0 := uint16(con0UseA | con0UseB | con0UseD | 0xFE)
	con1 := uint16(0)
	bl.SetControl(con0, con1)
	bl.SetPointers(0, 0x1000, 0, 0x2000)
	bl.SetModulos(0, 0, 0, 0)
	bl.SetMasks(0xFFFF, 0xFFFF)

	bl.Launch(width, height)
	for bl.WantsSlot(0, 0) {
		bl.RunSlot()
	}

	return mem
}

func TestBlitterAccurateAndFastAgree(t *testing.T) {
	accurate := runCopyBlit(config.BlitterAccurate, 4, 3)
	fast := runCopyBlit(config.BlitterFast, 4, 3)

	accSnap := accurate.snapshot()
	fastSnap := fast.snapshot()

	testhelp.ExpectEquality(t, len(accSnap), len(fastSnap))
	for addr, v := range accSnap {
		got, ok := fastSnap[addr]
		testhelp.ExpectSuccess(t, ok)
		testhelp.ExpectEquality(t, got, v)
	}
}

func TestBlitterLengthLawConsumesExpectedCycles(t *testing.T) {
	mem := newFakeMemory()
	bl := New(mem)
	bl.SetAccuracy(config.BlitterAccurate)
	bl.SetControl(uint16(con0UseA|con0UseD)|0xF0, 0)
	bl.SetPointers(0, 0, 0, 0x2000)
	bl.SetMasks(0xFFFF, 0xFFFF)

	bl.Launch(2, 2)

	cycles := 0
	for bl.WantsSlot(0, 0) {
		bl.RunSlot()
		cycles++
	}

	k, tail := shapeCycleCounts(0x9) // A and D
	testhelp.ExpectEquality(t, cycles, k*2*2+tail)
	testhelp.ExpectFailure(t, bl.Busy())
}

func TestShapeOneUsesCorrectedDOnlySequence(t *testing.T) {
	// spec.md §9: shape 1 (D only) must use the corrected longer cycle
	// sequence, not the naive one-slot-per-word "D0 D1 D2" the
	// published HRM table implies.
	k, tail := shapeCycleCounts(0x1)
	testhelp.ExpectEquality(t, k, 2)
	testhelp.ExpectEquality(t, tail, 2)

	prog := buildCopyMicroprogram(0x1)
	testhelp.ExpectEquality(t, len(prog), 4)
	testhelp.ExpectEquality(t, prog[0], opBusIdle)
	testhelp.ExpectEquality(t, prog[1], opWriteD|opHoldA|opHoldB|opHoldD|opRepeat)
	testhelp.ExpectEquality(t, prog[2], MicroOp(0))
	testhelp.ExpectEquality(t, prog[3], opDone)
}

func TestDOnlyBlitWritesExpectedWordCount(t *testing.T) {
	mem := newFakeMemory()
	bl := New(mem)
	bl.SetAccuracy(config.BlitterAccurate)
	bl.SetControl(uint16(con0UseD)|0xFF, 0) // minterm 0xFF: D always all-ones
	bl.SetPointers(0, 0, 0, 0x2000)
	bl.SetModulos(0, 0, 0, 0)
	bl.SetMasks(0xFFFF, 0xFFFF)

	bl.Launch(2, 2)
	for bl.WantsSlot(0, 0) {
		bl.RunSlot()
	}

	testhelp.ExpectFailure(t, bl.Busy())
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			addr := uint32(0x2000 + row*4 + col*2)
			testhelp.ExpectEquality(t, mem.ReadWord(addr), uint16(0xFFFF))
		}
	}
}

func TestLegaliseControlClearsDescendingWhenLineSet(t *testing.T) {
	_, con1 := legaliseControl(0, lineBit|descBit)
	testhelp.ExpectEquality(t, con1&descBit, uint16(0))
	testhelp.ExpectEquality(t, con1&lineBit, uint16(lineBit))
}

func TestBlitZeroTracksOutput(t *testing.T) {
	mem := newFakeMemory()
	bl := New(mem)
	bl.SetAccuracy(config.BlitterFast)
	bl.SetControl(uint16(con0UseD), 0) // minterm 0: D always zero
	bl.SetPointers(0, 0, 0, 0x2000)
	bl.SetMasks(0xFFFF, 0xFFFF)

	bl.Launch(1, 1)
	testhelp.ExpectSuccess(t, bl.BlitZero())
}

func TestLineDrawsExpectedPixelCount(t *testing.T) {
	mem := newFakeMemory()
	bl := New(mem)
	bl.SetControl(lineBitCon0(), lineBit)
	bl.SetLineEndpoints(LineEndpoint{X: 0, Y: 0}, LineEndpoint{X: 4, Y: 0}, 2, 0)

	bl.Launch(1, 1)
	testhelp.ExpectSuccess(t, bl.Busy()) // still consuming its bus-cycle budget

	for bl.WantsSlot(0, 0) {
		bl.RunSlot()
	}
	testhelp.ExpectFailure(t, bl.Busy())

	word := mem.ReadWord(0)
	testhelp.ExpectEquality(t, word, uint16(0xF800)) // pixels x=0..4 set bits 15..11
}

func lineBitCon0() uint16 { return 0 }
