package denise

import (
	"testing"

	"github.com/agnusemu/amiga500/internal/testhelp"
)

func TestBitplanesTickSerialisesMSBFirst(t *testing.T) {
	bp := NewBitplanes(8)
	bp.Configure(2, false)
	bp.Load(0, 0x8000) // plane 0 MSB set
	bp.Load(1, 0x0000)

	bp.Tick()
	buf := bp.Buffer()
	testhelp.ExpectEquality(t, len(buf), 1)
	testhelp.ExpectEquality(t, buf[0], uint8(1)) // plane 0 bit set, plane 1 clear
}

func TestBitplanesHiresSamplesTwicePerTick(t *testing.T) {
	bp := NewBitplanes(8)
	bp.Configure(1, true)
	bp.Load(0, 0xC000)

	bp.Tick()
	buf := bp.Buffer()
	testhelp.ExpectEquality(t, len(buf), 2)
	testhelp.ExpectEquality(t, buf[0], uint8(1))
	testhelp.ExpectEquality(t, buf[1], uint8(1))
}

func TestPlayfieldSingleModeTreatsZeroAsTransparent(t *testing.T) {
	pf := NewPlayfield(4)
	pf.Translate([]uint8{0, 3, 0, 1}, 0, 4)

	testhelp.ExpectEquality(t, pf.ZBuffer()[0], ZTransparent)
	testhelp.ExpectEquality(t, pf.IBuffer()[1], uint8(3))
	testhelp.ExpectEquality(t, pf.ZBuffer()[1], ZPF1)
}

func TestPlayfieldDualModeDeinterleavesBitplanes(t *testing.T) {
	pf := NewPlayfield(4)
	pf.Dual = true

	// raw bit layout: bit0,2,4 -> PF1; bit1,3,5 -> PF2.
	// value 0x01 -> PF1 index 1, PF2 index 0 (transparent PF2).
	pf.Translate([]uint8{0x01}, 0, 1)
	testhelp.ExpectEquality(t, pf.IBuffer()[0], uint8(1))
	testhelp.ExpectEquality(t, pf.ZBuffer()[0], ZPF1)
}

func TestPlayfieldDualModePF2PriWinsWhenBothOpaque(t *testing.T) {
	pf := NewPlayfield(4)
	pf.Dual = true
	pf.PF2Pri = true

	// value 0x03 -> bit0 set (PF1 bit0), bit1 set (PF2 bit0): both opaque.
	pf.Translate([]uint8{0x03}, 0, 1)
	testhelp.ExpectEquality(t, pf.ZBuffer()[0], ZPF2)
	testhelp.ExpectEquality(t, pf.IBuffer()[0], uint8(1+8))
}

func TestPlayfieldDualModePF1WinsWhenPriorityFavorsIt(t *testing.T) {
	pf := NewPlayfield(4)
	pf.Dual = true
	pf.PF2Pri = false

	pf.Translate([]uint8{0x03}, 0, 1)
	testhelp.ExpectEquality(t, pf.ZBuffer()[0], ZPF1)
	testhelp.ExpectEquality(t, pf.IBuffer()[0], uint8(1))
}

func TestSpritePairCompositeNormalMode(t *testing.T) {
	var pair SpritePair
	pair.Lo.SetData(0x8000, 0x0000) // lo opaque, hi transparent
	pair.Hi.SetData(0x0000, 0x0000)

	value, opaque := pair.Composite()
	testhelp.ExpectSuccess(t, opaque)
	testhelp.ExpectEquality(t, value, uint8(1))
}

func TestSpritePairCompositeAttachedMode(t *testing.T) {
	var pair SpritePair
	pair.Hi.Attached = true
	pair.Lo.SetData(0x8000, 0x0000)
	pair.Hi.SetData(0x8000, 0x0000)

	value, opaque := pair.Composite()
	testhelp.ExpectSuccess(t, opaque)
	testhelp.ExpectEquality(t, value, uint8(0x5)) // hi bit (bit2) | lo bit (bit0)
}

func TestSpritePairCompositeTransparentWhenBothZero(t *testing.T) {
	var pair SpritePair
	pair.Lo.SetData(0, 0)
	pair.Hi.SetData(0, 0)

	_, opaque := pair.Composite()
	testhelp.ExpectFailure(t, opaque)
}

func TestCollisionGatedByControlBits(t *testing.T) {
	var c Collision
	c.NoteSpritePlayfield(0) // CLXCON bit 8 not yet set: ignored
	testhelp.ExpectEquality(t, c.Read(), uint16(0))

	c.SetControl(1 << 8)
	c.NoteSpritePlayfield(0)
	testhelp.ExpectEquality(t, c.Read(), ClxSprite0Playfield)
}

func TestCollisionClearOnVerticalBlank(t *testing.T) {
	var c Collision
	c.SetControl(1 << 8)
	c.NoteSpritePlayfield(0)
	testhelp.ExpectSuccess(t, c.Read() != 0)

	c.ClearOnVerticalBlank()
	testhelp.ExpectEquality(t, c.Read(), uint16(0))
}

func TestCollisionPlayfieldPlayfieldGatedByBit6(t *testing.T) {
	var c Collision
	c.NotePlayfieldPlayfield()
	testhelp.ExpectEquality(t, c.Read(), uint16(0))

	c.SetControl(1 << 6)
	c.NotePlayfieldPlayfield()
	testhelp.ExpectEquality(t, c.Read(), ClxPlayfield1Playfield2)
}

func TestPaletteResolveNormalMode(t *testing.T) {
	var p Palette
	p.SetColor(1, 0x0F0) // green only
	r, g, b, a := p.Resolve(1, 0, 0, 0)
	testhelp.ExpectEquality(t, r, uint8(0))
	testhelp.ExpectEquality(t, g, uint8(0xFF))
	testhelp.ExpectEquality(t, b, uint8(0))
	testhelp.ExpectEquality(t, a, uint8(0xFF))
}

func TestPaletteResolveHalfbrightHalvesChannels(t *testing.T) {
	var p Palette
	p.SetMode(ColorHalfbright)
	p.SetColor(1, 0x0F0)
	r, g, b, _ := p.Resolve(1|0x20, 0, 0, 0)
	testhelp.ExpectEquality(t, r, uint8(0))
	testhelp.ExpectEquality(t, g, uint8(0x7F))
	testhelp.ExpectEquality(t, b, uint8(0))
}

func TestPaletteResolveHAMModifiesOneChannel(t *testing.T) {
	var p Palette
	p.SetMode(ColorHAM)

	// selector bits 5-4 = 10 (2) -> modify red; low nibble supplies value.
	index := uint8(2<<4) | 0xF
	r, g, b, _ := p.Resolve(index, 0x11, 0x22, 0x33)
	testhelp.ExpectEquality(t, r, uint8(0xFF))
	testhelp.ExpectEquality(t, g, uint8(0x22))
	testhelp.ExpectEquality(t, b, uint8(0x33))
}

func TestRegisterLogReplaysChangesInPixelOrder(t *testing.T) {
	var log RegisterLog
	var order []int

	log.Record(4, func() { order = append(order, 4) })
	log.Record(8, func() { order = append(order, 8) })

	var spans [][2]int
	log.Replay(10, func(from, to int) {
		spans = append(spans, [2]int{from, to})
	})

	testhelp.ExpectEquality(t, len(spans), 3)
	testhelp.ExpectEquality(t, spans[0][0], 0)
	testhelp.ExpectEquality(t, spans[0][1], 4)
	testhelp.ExpectEquality(t, spans[1][0], 4)
	testhelp.ExpectEquality(t, spans[1][1], 8)
	testhelp.ExpectEquality(t, spans[2][0], 8)
	testhelp.ExpectEquality(t, spans[2][1], 10)
	testhelp.ExpectEquality(t, len(order), 2)
	testhelp.ExpectEquality(t, order[0], 4)
	testhelp.ExpectEquality(t, order[1], 8)
}

func TestRegisterLogReplayWithNoChangesCoversWholeLine(t *testing.T) {
	var log RegisterLog
	var spans [][2]int
	log.Replay(6, func(from, to int) {
		spans = append(spans, [2]int{from, to})
	})

	testhelp.ExpectEquality(t, len(spans), 1)
	testhelp.ExpectEquality(t, spans[0][0], 0)
	testhelp.ExpectEquality(t, spans[0][1], 6)
}
