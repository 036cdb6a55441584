package paula

import (
	"testing"

	"github.com/agnusemu/amiga500/internal/testhelp"
)

func TestInterruptLevelFollowsGroupTable(t *testing.T) {
	var in Interrupts
	// spec.md §4.h scenario S4: pokeINTREQ(0x8040) then pokeINTENA(0xC040)
	// yields level 3 (BLIT, bit 6, group mask 0b0000_0000_0100_0000).
	in.PokeINTREQ(0x8040)
	in.PokeINTENA(0xC040)

	testhelp.ExpectEquality(t, in.Level(), 3)
}

func TestInterruptLevelZeroWhenNothingEnabled(t *testing.T) {
	var in Interrupts
	in.PokeINTREQ(0x8000 | SrcVERTB)

	testhelp.ExpectEquality(t, in.Level(), 0)
}

func TestInterruptLevelPicksHighestGroup(t *testing.T) {
	var in Interrupts
	in.PokeINTENA(0x8000 | SrcTBE | SrcEXTER)
	in.PokeINTREQ(0x8000 | SrcTBE | SrcEXTER)

	testhelp.ExpectEquality(t, in.Level(), 6) // EXTER outranks TBE's level 1
}

func TestPokeIdempotence(t *testing.T) {
	// spec.md §8.5: poke(v); poke(v & 0x7FFF) restores the prior value.
	var in Interrupts
	in.PokeINTENA(0x8000 | SrcCOPER | SrcBLIT)
	before := in.PeekINTENAR()

	in.PokeINTENA(0x8000 | SrcVERTB)
	in.PokeINTENA(SrcVERTB) // clear bit 15 -> AND-NOT the same bits back out

	testhelp.ExpectEquality(t, in.PeekINTENAR(), before)
}

func TestSetClrConventionClearsWithoutBit15(t *testing.T) {
	var in Interrupts
	in.PokeINTREQ(0x8000 | SrcRBF | SrcPORTS)
	in.PokeINTREQ(SrcRBF) // bit 15 clear -> AND-NOT

	testhelp.ExpectEquality(t, in.PeekINTREQR(), SrcPORTS)
}

func TestLevelChangeCallbackFires(t *testing.T) {
	var in Interrupts
	var last int
	calls := 0
	in.OnLevelChange(func(level int) {
		last = level
		calls++
	})

	in.PokeINTENA(0x8000 | SrcVERTB)
	in.PokeINTREQ(0x8000 | SrcVERTB)

	testhelp.ExpectSuccess(t, calls == 2)
	testhelp.ExpectEquality(t, last, 3)
}

type fakeAudioMemory struct {
	words map[uint32]uint16
}

func (m *fakeAudioMemory) ReadWord(addr uint32) uint16 { return m.words[addr] }

func TestAudioChannelRestartReloadsFromStart(t *testing.T) {
	mem := &fakeAudioMemory{words: map[uint32]uint16{0x1000: 0x0042, 0x1002: 0x0080}}
	c := NewAudioChannel(mem)
	c.Start = 0x1000
	c.Length = 2
	c.Period = 4
	c.Enabled = true
	c.Restart()

	testhelp.ExpectEquality(t, c.Pointer, uint32(0x1000))
	testhelp.ExpectEquality(t, c.remaining, uint16(2))
}

func TestAudioChannelWantsSlotOnlyWhenPeriodElapsed(t *testing.T) {
	mem := &fakeAudioMemory{words: map[uint32]uint16{0x1000: 0x0042}}
	c := NewAudioChannel(mem)
	c.Start = 0x1000
	c.Length = 1
	c.Period = 2
	c.Enabled = true
	c.Restart()

	testhelp.ExpectSuccess(t, c.WantsSlot(0, 0))

	c.RunSlot()
	testhelp.ExpectFailure(t, c.WantsSlot(0, 0)) // countdown just reloaded to Period

	c.tickCountdown()
	testhelp.ExpectFailure(t, c.WantsSlot(0, 0))

	c.tickCountdown()
	testhelp.ExpectSuccess(t, c.WantsSlot(0, 0))
}

func TestAudioChannelVolumeScaling(t *testing.T) {
	testhelp.ExpectEquality(t, scaleVolume(64, 64), int8(64))
	testhelp.ExpectEquality(t, scaleVolume(64, 32), int8(32))
	testhelp.ExpectEquality(t, scaleVolume(100, 0), int8(0))
}

func TestPaulaMixSampleSumsChannelsAndClamps(t *testing.T) {
	mem := &fakeAudioMemory{}
	p := New(mem, 8)
	p.Channels[0].lastSample = 100
	p.Channels[1].lastSample = 100
	p.MixSample()

	buf := p.MixBuffer()
	testhelp.ExpectEquality(t, len(buf.Data), 1)
	testhelp.ExpectEquality(t, buf.Data[0], 127) // clamped
}

func TestPaulaSlotSourcePicksLowestIndexChannelFirst(t *testing.T) {
	mem := &fakeAudioMemory{words: map[uint32]uint16{0: 0, 0x2000: 0}}
	p := New(mem, 4)
	p.Channels[0].Start = 0
	p.Channels[0].Length = 1
	p.Channels[0].Period = 0
	p.SetChannelEnable(0, true)

	p.Channels[2].Start = 0x2000
	p.Channels[2].Length = 1
	p.Channels[2].Period = 0
	p.SetChannelEnable(2, true)

	src := p.SlotSource()
	testhelp.ExpectSuccess(t, src.WantsSlot(0, 0))
	src.RunSlot()

	// channel 0 should have been drained first, leaving channel 2 still
	// wanting the bus (its own slot hasn't run yet).
	testhelp.ExpectSuccess(t, src.WantsSlot(0, 0))
	testhelp.ExpectEquality(t, p.Interrupts.PeekINTREQR(), SrcAUD0) // only channel 0's block ran out
}

func TestRequestDiskAndBlitterInterruptsSetExpectedBits(t *testing.T) {
	mem := &fakeAudioMemory{}
	p := New(mem, 4)
	p.Interrupts.PokeINTENA(0x8000 | SrcDSKBLK | SrcBLIT)

	p.RequestDiskBlockDone()
	p.RequestBlitterDone()

	req := p.Interrupts.PeekINTREQR()
	testhelp.ExpectSuccess(t, req&SrcDSKBLK != 0)
	testhelp.ExpectSuccess(t, req&SrcBLIT != 0)
}
